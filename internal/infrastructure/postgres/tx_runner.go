package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jhoicas/Trazabilidad-api/internal/application/scan"
	"github.com/jhoicas/Trazabilidad-api/internal/domain/repository"
)

// Asegura que TxRunner implementa scan.TxRunner.
var _ scan.TxRunner = (*TxRunner)(nil)

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// Run inicia una transacción, ejecuta fn con el repo de existencias atado a la
// tx y hace Commit o Rollback. El SELECT FOR UPDATE dentro de fn serializa los
// escaneos concurrentes del mismo producto.
func (r *TxRunner) Run(ctx context.Context, fn func(stockRepo repository.StockLevelRepository) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	stockRepo := NewStockLevelRepository(tx)

	if err := fn(stockRepo); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
