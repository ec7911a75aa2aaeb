package stock_test

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Trazabilidad-api/internal/application/ports"
	"github.com/jhoicas/Trazabilidad-api/internal/application/stock"
	"github.com/jhoicas/Trazabilidad-api/internal/domain/entity"
	"github.com/jhoicas/Trazabilidad-api/internal/infrastructure/cache"
	"github.com/jhoicas/Trazabilidad-api/internal/infrastructure/memory"
	"github.com/jhoicas/Trazabilidad-api/internal/metrics"
)

func newReconciler(products *memory.ProductStore, levels *memory.StockStore) (*stock.Reconciler, *cache.Memory) {
	c := cache.NewMemory()
	return stock.NewReconciler(products, levels, c, metrics.NewRegistry(), zerolog.Nop()), c
}

func TestReconcile_CreaRegistrosFaltantes(t *testing.T) {
	ctx := context.Background()
	products := memory.NewProductStore()
	levels := memory.NewStockStore()
	require.NoError(t, products.Create(&entity.Product{ID: "TARTE01", Name: "Tarte aux fraises"}))
	require.NoError(t, products.Create(&entity.Product{ID: "ECL02", Name: "Éclair café"}))
	require.NoError(t, products.Create(&entity.Product{ID: "MILF03", Name: "Millefeuille"}))

	uc, _ := newReconciler(products, levels)

	res, err := uc.Reconcile(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, res.NewRecordsAdded)
	assert.Equal(t, 3, res.TotalProducts)

	all, err := levels.ListAll()
	require.NoError(t, err)
	require.Len(t, all, 3)
	for _, lv := range all {
		assert.Zero(t, lv.InWarehouse, "los registros nuevos nacen con todos los contadores en cero")
		assert.Zero(t, lv.BoutiqueStock)
		assert.NotEmpty(t, lv.ProductName)
	}
}

// Idempotencia: la segunda pasada sin cambios de catálogo no crea nada.
func TestReconcile_Idempotente(t *testing.T) {
	ctx := context.Background()
	products := memory.NewProductStore()
	levels := memory.NewStockStore()
	require.NoError(t, products.Create(&entity.Product{ID: "TARTE01", Name: "Tarte aux fraises"}))

	uc, _ := newReconciler(products, levels)

	first, err := uc.Reconcile(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, first.NewRecordsAdded)

	second, err := uc.Reconcile(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, second.NewRecordsAdded, "segunda pasada sin cambios debe crear 0")
	assert.Equal(t, 1, second.TotalProducts)
}

// Tras añadir N productos al catálogo, la siguiente pasada crea exactamente N.
func TestReconcile_NNuevosProductos(t *testing.T) {
	ctx := context.Background()
	products := memory.NewProductStore()
	levels := memory.NewStockStore()
	require.NoError(t, products.Create(&entity.Product{ID: "TARTE01", Name: "Tarte"}))

	uc, _ := newReconciler(products, levels)
	_, err := uc.Reconcile(ctx)
	require.NoError(t, err)

	require.NoError(t, products.Create(&entity.Product{ID: "ECL02", Name: "Éclair"}))
	require.NoError(t, products.Create(&entity.Product{ID: "MILF03", Name: "Millefeuille"}))

	res, err := uc.Reconcile(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, res.NewRecordsAdded)
}

// El reconciliador no destruye contadores existentes ni borra huérfanos.
func TestReconcile_NoTocaRegistrosExistentes(t *testing.T) {
	ctx := context.Background()
	products := memory.NewProductStore()
	levels := memory.NewStockStore()
	require.NoError(t, products.Create(&entity.Product{ID: "TARTE01", Name: "Tarte"}))
	require.NoError(t, levels.Upsert(&entity.StockLevel{ProductID: "TARTE01", ProductName: "Tarte", InWarehouse: 7}))
	// Huérfano: registro sin producto en catálogo
	require.NoError(t, levels.Upsert(&entity.StockLevel{ProductID: "VIEJO99", ProductName: "retirado"}))

	uc, _ := newReconciler(products, levels)
	res, err := uc.Reconcile(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, res.NewRecordsAdded)

	lv, err := levels.Get("TARTE01")
	require.NoError(t, err)
	assert.Equal(t, 7, lv.InWarehouse, "los contadores existentes no deben resetearse")

	orphan, err := levels.Get("VIEJO99")
	require.NoError(t, err)
	assert.NotNil(t, orphan, "el reconciliador nunca elimina huérfanos")
}

// staleIDsStore simula la carrera entre la lectura de claves del reconciliador
// y una escritura concurrente: ListProductIDs devuelve la vista anterior al
// commit del otro proceso, aunque el almacén ya tiene la fila con contadores.
type staleIDsStore struct {
	*memory.StockStore
}

func (s *staleIDsStore) ListProductIDs() ([]string, error) { return nil, nil }

// Una pasada con vista desfasada no puede resetear a cero una fila que un
// escaneo concurrente ya creó e incrementó.
func TestReconcile_VistaDesfasadaNoPisaContadores(t *testing.T) {
	ctx := context.Background()
	products := memory.NewProductStore()
	levels := memory.NewStockStore()
	require.NoError(t, products.Create(&entity.Product{ID: "TARTE01", Name: "Tarte"}))
	require.NoError(t, levels.Upsert(&entity.StockLevel{ProductID: "TARTE01", ProductName: "Tarte", InWarehouse: 5}))

	uc := stock.NewReconciler(products, &staleIDsStore{StockStore: levels},
		cache.NewMemory(), metrics.NewRegistry(), zerolog.Nop())

	res, err := uc.Reconcile(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, res.NewRecordsAdded, "la inserción condicional no cuenta filas ya existentes")

	lv, err := levels.Get("TARTE01")
	require.NoError(t, err)
	assert.Equal(t, 5, lv.InWarehouse, "la fila creada por el escaneo concurrente debe sobrevivir")
}

func TestReconcile_InvalidaSummary(t *testing.T) {
	ctx := context.Background()
	products := memory.NewProductStore()
	levels := memory.NewStockStore()
	require.NoError(t, products.Create(&entity.Product{ID: "TARTE01", Name: "Tarte"}))

	uc, c := newReconciler(products, levels)
	c.Put(ctx, "summary", []byte(`{"stale":true}`), ports.DefaultTTL)

	_, err := uc.Reconcile(ctx)
	require.NoError(t, err)

	_, ok := c.Get(ctx, "summary")
	assert.False(t, ok, "reconcile debe invalidar la clave summary")
}
