package report_test

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Trazabilidad-api/internal/application/ports"
	"github.com/jhoicas/Trazabilidad-api/internal/application/query"
	"github.com/jhoicas/Trazabilidad-api/internal/application/report"
	"github.com/jhoicas/Trazabilidad-api/internal/domain/entity"
	"github.com/jhoicas/Trazabilidad-api/internal/infrastructure/cache"
	"github.com/jhoicas/Trazabilidad-api/internal/infrastructure/memory"
)

var ahora = time.Date(2026, 8, 31, 12, 0, 0, 0, time.UTC)

type fixture struct {
	events   *memory.EventLog
	products *memory.ProductStore
	reports  *memory.ReportStore
	cache    *cache.Memory
	uc       *report.WeeklyUseCase
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	f := &fixture{
		events:   memory.NewEventLog(),
		products: memory.NewProductStore(),
		reports:  memory.NewReportStore(),
		cache:    cache.NewMemory(),
	}
	f.uc = report.NewWeeklyUseCase(f.events, f.products, f.reports, f.cache, zerolog.Nop()).
		WithClock(func() time.Time { return ahora })
	require.NoError(t, f.products.Create(&entity.Product{ID: "TARTE01", Name: "Tarte aux fraises"}))
	require.NoError(t, f.products.Create(&entity.Product{ID: "ECL02", Name: "Éclair café"}))
	return f
}

func (f *fixture) addEvent(t *testing.T, serial, eventType string, ts time.Time) {
	t.Helper()
	require.NoError(t, f.events.Append(&entity.ScanEvent{
		ID:           serial + eventType + ts.String(),
		Timestamp:    ts,
		SerialNumber: serial,
		EventType:    eventType,
		Location:     "boutique",
	}))
}

func TestGenerate_AgrupaPorProductoYCanal(t *testing.T) {
	f := newFixture(t)
	ayer := ahora.Add(-24 * time.Hour)

	f.addEvent(t, "TARTE01-001", "SALE_BOUTIQUE", ayer)
	f.addEvent(t, "TARTE01-002", "SALE_BOUTIQUE", ayer)
	f.addEvent(t, "TARTE01-003", "SALE_MARCHE", ayer)
	f.addEvent(t, "ECL02-001", "DELIVERY_B2B", ayer)
	f.addEvent(t, "ECL02-002", "SALE_SALEYA", ayer)
	// Eventos que no son venta: fuera del reporte
	f.addEvent(t, "TARTE01-004", "PRODUCTION_SCAN", ayer)
	f.addEvent(t, "TARTE01-004", "BOUTIQUE_STOCK_SCAN", ayer)

	res, err := f.uc.Generate(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 5, res.TotalSales)
	assert.Equal(t, 2, res.ProductsReported)

	rows, err := f.reports.ListAll()
	require.NoError(t, err)
	require.Len(t, rows, 2)

	// Orden determinista por product_id
	assert.Equal(t, "ECL02", rows[0].ProductID)
	assert.Equal(t, "TARTE01", rows[1].ProductID)

	assert.Equal(t, 1, rows[0].DeliveryB2B)
	assert.Equal(t, 1, rows[0].SaleSaleya)
	assert.Equal(t, 2, rows[0].Total)

	assert.Equal(t, 2, rows[1].SaleBoutique)
	assert.Equal(t, 1, rows[1].SaleMarche)
	assert.Equal(t, 0, rows[1].DeliveryB2B)
	assert.Equal(t, 3, rows[1].Total)
}

// Borde de ventana: exactamente 7 días atrás entra; 7 días y 1 segundo, no.
func TestGenerate_BordeDeVentana(t *testing.T) {
	f := newFixture(t)

	f.addEvent(t, "TARTE01-001", "SALE_BOUTIQUE", ahora.Add(-7*24*time.Hour))
	f.addEvent(t, "TARTE01-002", "SALE_BOUTIQUE", ahora.Add(-7*24*time.Hour-time.Second))
	f.addEvent(t, "TARTE01-003", "SALE_BOUTIQUE", ahora) // borde superior inclusive

	res, err := f.uc.Generate(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, res.TotalSales,
		"incluye el evento de hace exactamente 7 días y el de ahora; excluye 7d+1s")
}

// Los eventos con serial sin producto se excluyen en silencio, no son error.
func TestGenerate_SerialesSinProductoSeExcluyen(t *testing.T) {
	f := newFixture(t)
	ayer := ahora.Add(-24 * time.Hour)

	f.addEvent(t, "HUERFANO-001", "SALE_BOUTIQUE", ayer)
	f.addEvent(t, "TARTE01-001", "SALE_BOUTIQUE", ayer)

	res, err := f.uc.Generate(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, res.TotalSales)
	assert.Equal(t, 1, res.ProductsReported)
}

// Cada generación reemplaza la tabla completa: el reporte no acumula.
func TestGenerate_ReemplazaSalidaAnterior(t *testing.T) {
	f := newFixture(t)
	f.addEvent(t, "TARTE01-001", "SALE_BOUTIQUE", ahora.Add(-time.Hour))

	_, err := f.uc.Generate(context.Background())
	require.NoError(t, err)

	// Segunda generación con el log limpio
	require.NoError(t, f.events.Clear())
	res, err := f.uc.Generate(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0, res.TotalSales)

	rows, err := f.reports.ListAll()
	require.NoError(t, err)
	assert.Empty(t, rows, "la salida anterior debe reemplazarse, no acumularse")
}

// Generar descarta la vista cacheada: una lectura inmediata (dentro de la TTL
// de la lectura anterior) ya ve el reporte recién generado, no el previo.
func TestGenerate_InvalidaVistaCacheada(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	lecturas := query.NewUseCase(
		f.events, f.products, memory.NewStockStore(), memory.NewStatusStore(),
		memory.NewUserStore(), memory.NewClientStore(), f.reports,
		f.cache,
	)

	_, err := f.uc.Generate(ctx)
	require.NoError(t, err)
	vacio, err := lecturas.GetWeeklyReport(ctx)
	require.NoError(t, err)

	f.addEvent(t, "TARTE01-001", "SALE_BOUTIQUE", ahora.Add(-time.Hour))
	res, err := f.uc.Generate(ctx)
	require.NoError(t, err)
	require.Equal(t, 1, res.TotalSales)

	conVenta, err := lecturas.GetWeeklyReport(ctx)
	require.NoError(t, err)
	assert.NotEqual(t, []byte(vacio), []byte(conVenta),
		"tras regenerar, la lectura no puede servir el reporte anterior")

	_, ok := f.cache.Get(ctx, ports.CacheKeyWeeklyReport)
	assert.True(t, ok, "la relectura recachea la salida nueva")
}

func TestGenerate_LogVacio(t *testing.T) {
	f := newFixture(t)
	res, err := f.uc.Generate(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0, res.TotalSales)
	assert.Equal(t, 0, res.ProductsReported)
	assert.Equal(t, ahora.Add(-7*24*time.Hour), res.PeriodStart)
	assert.Equal(t, ahora, res.PeriodEnd)
}
