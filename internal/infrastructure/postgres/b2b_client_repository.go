package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/Trazabilidad-api/internal/domain/entity"
	"github.com/jhoicas/Trazabilidad-api/internal/domain/repository"
)

var _ repository.B2BClientRepository = (*B2BClientRepo)(nil)

// B2BClientRepo implementación de B2BClientRepository sobre PostgreSQL.
// Solo lectura: la tabla se aprovisiona por fuera de la API.
type B2BClientRepo struct {
	q Querier
}

// NewB2BClientRepository construye el adaptador de clientes mayoristas. Pasar pool o tx (Querier).
func NewB2BClientRepository(q Querier) *B2BClientRepo {
	return &B2BClientRepo{q: q}
}

// ListAll lista los clientes mayoristas ordenados por nombre.
func (r *B2BClientRepo) ListAll() ([]*entity.B2BClient, error) {
	query := `
		SELECT id, name, contact_email, phone, address, created_at
		FROM b2b_clients ORDER BY name ASC`
	rows, err := r.q.Query(context.Background(), query)
	if err != nil {
		return nil, fmt.Errorf("list b2b clients: %w", err)
	}
	defer rows.Close()
	var list []*entity.B2BClient
	for rows.Next() {
		var c entity.B2BClient
		if err := rows.Scan(&c.ID, &c.Name, &c.ContactEmail, &c.Phone, &c.Address, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan b2b client: %w", err)
		}
		list = append(list, &c)
	}
	return list, rows.Err()
}
