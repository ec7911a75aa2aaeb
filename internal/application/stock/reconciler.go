// Package stock contiene el reconciliador de la vista derivada de existencias.
package stock

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/jhoicas/Trazabilidad-api/internal/application/dto"
	"github.com/jhoicas/Trazabilidad-api/internal/application/ports"
	"github.com/jhoicas/Trazabilidad-api/internal/domain/entity"
	"github.com/jhoicas/Trazabilidad-api/internal/domain/repository"
	"github.com/jhoicas/Trazabilidad-api/internal/metrics"
)

// Reconciler mantiene el invariante "un registro de existencias por producto
// del catálogo": crea en cero los registros que falten. Es el mecanismo de
// auto-reparación: cualquier ruta que descubra un registro ausente lo invoca
// en lugar de fallar. Nunca elimina huérfanos; el borrado va atado al borrado
// del producto.
type Reconciler struct {
	productRepo repository.ProductRepository
	stockRepo   repository.StockLevelRepository
	cache       ports.Cache
	metrics     *metrics.Registry
	log         zerolog.Logger
}

// NewReconciler construye el reconciliador.
func NewReconciler(
	productRepo repository.ProductRepository,
	stockRepo repository.StockLevelRepository,
	cache ports.Cache,
	m *metrics.Registry,
	log zerolog.Logger,
) *Reconciler {
	return &Reconciler{productRepo: productRepo, stockRepo: stockRepo, cache: cache, metrics: m, log: log}
}

// Reconcile lee el catálogo completo y las claves existentes de la vista, y
// crea un registro en cero por cada producto ausente. Idempotente: dos pasadas
// seguidas sin cambios de catálogo dejan NewRecordsAdded = 0 en la segunda.
// Invalida la clave summary al terminar.
func (uc *Reconciler) Reconcile(ctx context.Context) (*dto.ReconcileResult, error) {
	products, err := uc.productRepo.ListAll()
	if err != nil {
		return nil, fmt.Errorf("leer catálogo: %w", err)
	}
	existingIDs, err := uc.stockRepo.ListProductIDs()
	if err != nil {
		return nil, fmt.Errorf("leer claves de existencias: %w", err)
	}
	existing := make(map[string]struct{}, len(existingIDs))
	for _, id := range existingIDs {
		existing[id] = struct{}{}
	}

	now := time.Now().UTC()
	added := 0
	for _, p := range products {
		if _, ok := existing[p.ID]; ok {
			continue
		}
		// Inserción condicional: si otro proceso creó (e incrementó) la fila
		// después de nuestra lectura de claves, no se pisa con ceros.
		level := &entity.StockLevel{ProductID: p.ID, ProductName: p.Name, UpdatedAt: now}
		created, err := uc.stockRepo.CreateIfAbsent(level)
		if err != nil {
			return nil, fmt.Errorf("crear registro de existencias %s: %w", p.ID, err)
		}
		if created {
			added++
		}
	}

	uc.metrics.ReconcileRuns.Inc()
	uc.metrics.ReconcileAdded.Add(float64(added))
	if added > 0 {
		uc.log.Info().Int("nuevos", added).Int("productos", len(products)).Msg("reconciliación creó registros faltantes")
	}
	uc.cache.Invalidate(ctx, ports.CacheKeySummary)

	return &dto.ReconcileResult{
		NewRecordsAdded: added,
		TotalProducts:   len(products),
		Message:         fmt.Sprintf("%d registros creados; %d productos en catálogo", added, len(products)),
	}, nil
}

// EnsureLevels ejecuta una pasada descartando el resumen. Implementa el puerto
// de auto-reparación que usan el procesador de escaneos y el alta de producto.
func (uc *Reconciler) EnsureLevels(ctx context.Context) error {
	_, err := uc.Reconcile(ctx)
	return err
}
