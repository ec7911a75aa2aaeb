package scan

import (
	"context"

	"github.com/jhoicas/Trazabilidad-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando un
// repositorio de existencias atado a esa tx. El read-modify-write de
// contadores corre siempre dentro de Run con bloqueo de fila por producto:
// dos escaneos concurrentes del mismo producto se serializan ahí.
type TxRunner interface {
	Run(ctx context.Context, fn func(stockRepo repository.StockLevelRepository) error) error
}

// Reconciler puerto hacia la auto-reparación de la vista de existencias.
type Reconciler interface {
	EnsureLevels(ctx context.Context) error
}
