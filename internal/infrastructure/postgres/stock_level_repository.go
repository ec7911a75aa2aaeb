package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/Trazabilidad-api/internal/domain/entity"
	"github.com/jhoicas/Trazabilidad-api/internal/domain/repository"
)

var _ repository.StockLevelRepository = (*StockLevelRepo)(nil)

// StockLevelRepo implementación de StockLevelRepository sobre PostgreSQL (usable con pool o tx).
type StockLevelRepo struct {
	q Querier
}

// NewStockLevelRepository construye el adaptador de existencias. Pasar pool o tx (Querier).
func NewStockLevelRepository(q Querier) *StockLevelRepo {
	return &StockLevelRepo{q: q}
}

const stockColumns = `product_id, product_name, in_warehouse, boutique_stock, marche_stock,
		saleya_stock, b2b_delivered, updated_at`

// Get obtiene la fila de existencias de un producto. Devuelve nil, nil si no existe.
func (r *StockLevelRepo) Get(productID string) (*entity.StockLevel, error) {
	query := `SELECT ` + stockColumns + ` FROM stock_levels WHERE product_id = $1`
	return r.scanOne(r.q.QueryRow(context.Background(), query, productID), "get stock level")
}

// GetForUpdate obtiene la fila y la bloquea (SELECT FOR UPDATE). Solo tiene
// sentido dentro de una transacción; devuelve nil, nil si no existe.
func (r *StockLevelRepo) GetForUpdate(productID string) (*entity.StockLevel, error) {
	query := `SELECT ` + stockColumns + ` FROM stock_levels WHERE product_id = $1 FOR UPDATE`
	return r.scanOne(r.q.QueryRow(context.Background(), query, productID), "get stock level for update")
}

func (r *StockLevelRepo) scanOne(row pgx.Row, op string) (*entity.StockLevel, error) {
	var l entity.StockLevel
	err := row.Scan(
		&l.ProductID, &l.ProductName, &l.InWarehouse, &l.BoutiqueStock,
		&l.MarcheStock, &l.SaleyaStock, &l.B2BDelivered, &l.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &l, nil
}

// Upsert inserta o actualiza los contadores de un producto.
func (r *StockLevelRepo) Upsert(level *entity.StockLevel) error {
	query := `
		INSERT INTO stock_levels (product_id, product_name, in_warehouse, boutique_stock,
			marche_stock, saleya_stock, b2b_delivered, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, now())
		ON CONFLICT (product_id)
		DO UPDATE SET product_name = EXCLUDED.product_name,
			in_warehouse = EXCLUDED.in_warehouse,
			boutique_stock = EXCLUDED.boutique_stock,
			marche_stock = EXCLUDED.marche_stock,
			saleya_stock = EXCLUDED.saleya_stock,
			b2b_delivered = EXCLUDED.b2b_delivered,
			updated_at = now()`
	_, err := r.q.Exec(context.Background(), query,
		level.ProductID, level.ProductName, level.InWarehouse, level.BoutiqueStock,
		level.MarcheStock, level.SaleyaStock, level.B2BDelivered,
	)
	if err != nil {
		return fmt.Errorf("upsert stock level: %w", err)
	}
	return nil
}

// CreateIfAbsent inserta la fila solo si el producto no tiene una. No pisa
// contadores: una fila que otro proceso haya creado (y ya incrementado) entre
// la lectura del reconciliador y esta escritura queda intacta.
func (r *StockLevelRepo) CreateIfAbsent(level *entity.StockLevel) (bool, error) {
	query := `
		INSERT INTO stock_levels (product_id, product_name, in_warehouse, boutique_stock,
			marche_stock, saleya_stock, b2b_delivered, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, now())
		ON CONFLICT (product_id) DO NOTHING`
	tag, err := r.q.Exec(context.Background(), query,
		level.ProductID, level.ProductName, level.InWarehouse, level.BoutiqueStock,
		level.MarcheStock, level.SaleyaStock, level.B2BDelivered,
	)
	if err != nil {
		return false, fmt.Errorf("create stock level if absent: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

// ListAll devuelve todas las filas de existencias ordenadas por producto.
func (r *StockLevelRepo) ListAll() ([]*entity.StockLevel, error) {
	query := `SELECT ` + stockColumns + ` FROM stock_levels ORDER BY product_id ASC`
	rows, err := r.q.Query(context.Background(), query)
	if err != nil {
		return nil, fmt.Errorf("list stock levels: %w", err)
	}
	defer rows.Close()
	var list []*entity.StockLevel
	for rows.Next() {
		var l entity.StockLevel
		if err := rows.Scan(
			&l.ProductID, &l.ProductName, &l.InWarehouse, &l.BoutiqueStock,
			&l.MarcheStock, &l.SaleyaStock, &l.B2BDelivered, &l.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan stock level: %w", err)
		}
		list = append(list, &l)
	}
	return list, rows.Err()
}

// ListProductIDs devuelve los IDs de producto que ya tienen fila de existencias
// (para que el reconciliador detecte faltantes sin traer las filas completas).
func (r *StockLevelRepo) ListProductIDs() ([]string, error) {
	rows, err := r.q.Query(context.Background(), `SELECT product_id FROM stock_levels`)
	if err != nil {
		return nil, fmt.Errorf("list stock level ids: %w", err)
	}
	defer rows.Close()
	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan stock level id: %w", err)
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

// Delete elimina la fila de existencias de un producto (cascada del borrado de catálogo).
func (r *StockLevelRepo) Delete(productID string) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM stock_levels WHERE product_id = $1`, productID)
	if err != nil {
		return fmt.Errorf("delete stock level: %w", err)
	}
	return nil
}
