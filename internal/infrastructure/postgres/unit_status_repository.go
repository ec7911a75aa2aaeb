package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/Trazabilidad-api/internal/domain/entity"
	"github.com/jhoicas/Trazabilidad-api/internal/domain/repository"
)

var _ repository.UnitStatusRepository = (*UnitStatusRepo)(nil)

// UnitStatusRepo implementación de UnitStatusRepository sobre PostgreSQL (usable con pool o tx).
type UnitStatusRepo struct {
	q Querier
}

// NewUnitStatusRepository construye el adaptador de estado por unidad. Pasar pool o tx (Querier).
func NewUnitStatusRepository(q Querier) *UnitStatusRepo {
	return &UnitStatusRepo{q: q}
}

// Upsert inserta o actualiza el estado de una unidad serializada.
func (r *UnitStatusRepo) Upsert(status *entity.UnitStatus) error {
	query := `
		INSERT INTO unit_status (serial_number, current_location, status, last_update)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (serial_number)
		DO UPDATE SET current_location = EXCLUDED.current_location,
			status = EXCLUDED.status,
			last_update = EXCLUDED.last_update`
	_, err := r.q.Exec(context.Background(), query,
		status.SerialNumber, status.CurrentLocation, status.Status, status.LastUpdate,
	)
	if err != nil {
		return fmt.Errorf("upsert unit status: %w", err)
	}
	return nil
}

// Get obtiene el estado de una unidad por serial. Devuelve nil, nil si no existe.
func (r *UnitStatusRepo) Get(serialNumber string) (*entity.UnitStatus, error) {
	query := `
		SELECT serial_number, current_location, status, last_update
		FROM unit_status WHERE serial_number = $1`
	var s entity.UnitStatus
	err := r.q.QueryRow(context.Background(), query, serialNumber).Scan(
		&s.SerialNumber, &s.CurrentLocation, &s.Status, &s.LastUpdate,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get unit status: %w", err)
	}
	return &s, nil
}

// ListAll devuelve el estado de todas las unidades ordenado por serial.
func (r *UnitStatusRepo) ListAll() ([]*entity.UnitStatus, error) {
	query := `
		SELECT serial_number, current_location, status, last_update
		FROM unit_status ORDER BY serial_number ASC`
	rows, err := r.q.Query(context.Background(), query)
	if err != nil {
		return nil, fmt.Errorf("list unit status: %w", err)
	}
	defer rows.Close()
	var list []*entity.UnitStatus
	for rows.Next() {
		var s entity.UnitStatus
		if err := rows.Scan(&s.SerialNumber, &s.CurrentLocation, &s.Status, &s.LastUpdate); err != nil {
			return nil, fmt.Errorf("scan unit status: %w", err)
		}
		list = append(list, &s)
	}
	return list, rows.Err()
}

// Clear vacía la tabla de estados (acompaña a la limpieza del log).
func (r *UnitStatusRepo) Clear() error {
	_, err := r.q.Exec(context.Background(), `TRUNCATE TABLE unit_status`)
	if err != nil {
		return fmt.Errorf("clear unit status: %w", err)
	}
	return nil
}
