package catalog_test

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appcatalog "github.com/jhoicas/Trazabilidad-api/internal/application/catalog"
	"github.com/jhoicas/Trazabilidad-api/internal/application/dto"
	"github.com/jhoicas/Trazabilidad-api/internal/application/ports"
	"github.com/jhoicas/Trazabilidad-api/internal/application/stock"
	"github.com/jhoicas/Trazabilidad-api/internal/domain"
	"github.com/jhoicas/Trazabilidad-api/internal/infrastructure/cache"
	"github.com/jhoicas/Trazabilidad-api/internal/infrastructure/memory"
	"github.com/jhoicas/Trazabilidad-api/internal/metrics"
)

type fixture struct {
	products *memory.ProductStore
	levels   *memory.StockStore
	cache    *cache.Memory
	uc       *appcatalog.UseCase
}

func newFixture() *fixture {
	products := memory.NewProductStore()
	levels := memory.NewStockStore()
	c := cache.NewMemory()
	reconciler := stock.NewReconciler(products, levels, c, metrics.NewRegistry(), zerolog.Nop())
	return &fixture{
		products: products,
		levels:   levels,
		cache:    c,
		uc:       appcatalog.NewUseCase(products, levels, reconciler, c, zerolog.Nop()),
	}
}

func tarta(id string) dto.CreateProductRequest {
	return dto.CreateProductRequest{
		ID:            id,
		Name:          "Tarte aux fraises",
		Category:      "tartas",
		UnitOfMeasure: "unidad",
		UnitCost:      decimal.NewFromFloat(12.5),
		SupplierName:  "Maison Martin",
		ShelfLifeDays: 3,
		IsPerishable:  true,
	}
}

// El alta corre la reconciliación de forma síncrona: el registro derivado
// existe antes de que vuelva la respuesta.
func TestAddProduct_AltaConSincronizacionInmediata(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	resp, err := f.uc.AddProduct(ctx, tarta("TARTE01"))
	require.NoError(t, err)
	assert.Equal(t, "TARTE01", resp.ID)

	lv, err := f.levels.Get("TARTE01")
	require.NoError(t, err)
	require.NotNil(t, lv, "el alta debe dejar el registro derivado creado")
	assert.Zero(t, lv.InWarehouse)
}

func TestAddProduct_Duplicado(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	_, err := f.uc.AddProduct(ctx, tarta("TARTE01"))
	require.NoError(t, err)

	_, err = f.uc.AddProduct(ctx, tarta("TARTE01"))
	assert.ErrorIs(t, err, domain.ErrDuplicate)
}

// Asignación libre de prefijos: un ID que sea prefijo de otro (o al revés)
// haría ambigua la resolución de seriales y se rechaza en el alta.
func TestAddProduct_ConflictoDePrefijo(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	_, err := f.uc.AddProduct(ctx, tarta("TARTE01"))
	require.NoError(t, err)

	_, err = f.uc.AddProduct(ctx, tarta("TARTE"))
	assert.ErrorIs(t, err, domain.ErrConflict, "prefijo de un ID existente")

	_, err = f.uc.AddProduct(ctx, tarta("TARTE01X"))
	assert.ErrorIs(t, err, domain.ErrConflict, "extensión de un ID existente")
}

func TestAddProduct_Validacion(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	_, err := f.uc.AddProduct(ctx, dto.CreateProductRequest{Name: "sin id"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	in := tarta("ECL02")
	in.UnitCost = decimal.NewFromInt(-1)
	_, err = f.uc.AddProduct(ctx, in)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	in = tarta("ECL02")
	in.ReorderLevel = -5
	_, err = f.uc.AddProduct(ctx, in)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// Cascada de borrado: cae el producto y cae su registro de existencias.
func TestDeleteProduct_Cascada(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	_, err := f.uc.AddProduct(ctx, tarta("TARTE01"))
	require.NoError(t, err)

	require.NoError(t, f.uc.DeleteProduct(ctx, "TARTE01"))

	p, err := f.products.GetByID("TARTE01")
	require.NoError(t, err)
	assert.Nil(t, p)

	lv, err := f.levels.Get("TARTE01")
	require.NoError(t, err)
	assert.Nil(t, lv, "el registro de existencias debe caer con el producto")
}

func TestDeleteProduct_NoExiste(t *testing.T) {
	f := newFixture()
	err := f.uc.DeleteProduct(context.Background(), "FANTASMA")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestMutaciones_InvalidanProductsYSummary(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	seed := func() {
		f.cache.Put(ctx, ports.CacheKeyProducts, []byte(`[]`), ports.DefaultTTL)
		f.cache.Put(ctx, ports.CacheKeySummary, []byte(`{}`), ports.DefaultTTL)
	}

	seed()
	_, err := f.uc.AddProduct(ctx, tarta("TARTE01"))
	require.NoError(t, err)
	_, ok := f.cache.Get(ctx, ports.CacheKeyProducts)
	assert.False(t, ok)
	_, ok = f.cache.Get(ctx, ports.CacheKeySummary)
	assert.False(t, ok)

	seed()
	require.NoError(t, f.uc.DeleteProduct(ctx, "TARTE01"))
	_, ok = f.cache.Get(ctx, ports.CacheKeyProducts)
	assert.False(t, ok)
	_, ok = f.cache.Get(ctx, ports.CacheKeySummary)
	assert.False(t, ok)
}
