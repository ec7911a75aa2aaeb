package scan_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Trazabilidad-api/internal/application/dto"
	"github.com/jhoicas/Trazabilidad-api/internal/application/ports"
	appscan "github.com/jhoicas/Trazabilidad-api/internal/application/scan"
	"github.com/jhoicas/Trazabilidad-api/internal/application/stock"
	"github.com/jhoicas/Trazabilidad-api/internal/domain"
	"github.com/jhoicas/Trazabilidad-api/internal/domain/entity"
	"github.com/jhoicas/Trazabilidad-api/internal/infrastructure/cache"
	"github.com/jhoicas/Trazabilidad-api/internal/infrastructure/memory"
	"github.com/jhoicas/Trazabilidad-api/internal/metrics"
)

// banco de pruebas con almacenes en memoria y reconciliador real.
type fixture struct {
	events   *memory.EventLog
	statuses *memory.StatusStore
	products *memory.ProductStore
	levels   *memory.StockStore
	cache    *cache.Memory
	uc       *appscan.RecordScanUseCase
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	f := &fixture{
		events:   memory.NewEventLog(),
		statuses: memory.NewStatusStore(),
		products: memory.NewProductStore(),
		levels:   memory.NewStockStore(),
		cache:    cache.NewMemory(),
	}
	m := metrics.NewRegistry()
	reconciler := stock.NewReconciler(f.products, f.levels, f.cache, m, zerolog.Nop())
	f.uc = appscan.NewRecordScanUseCase(
		f.events, f.statuses, f.products, f.levels,
		reconciler, memory.NewTxRunner(f.levels),
		f.cache, m, zerolog.Nop(),
	)
	return f
}

func (f *fixture) addProduct(t *testing.T, id, name string) {
	t.Helper()
	require.NoError(t, f.products.Create(&entity.Product{ID: id, Name: name}))
}

func (f *fixture) record(t *testing.T, serial, eventType string) *dto.ScanEventResponse {
	t.Helper()
	resp, err := f.uc.Record(context.Background(), dto.RecordScanRequest{
		SerialNumber: serial,
		EventType:    eventType,
		Location:     "laboratorio",
	})
	require.NoError(t, err)
	return resp
}

func (f *fixture) countEvents(t *testing.T) int {
	t.Helper()
	evs, err := f.events.List(0, 0)
	require.NoError(t, err)
	return len(evs)
}

func TestRecord_ValidacionPreviaSinEscrituras(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	cases := []dto.RecordScanRequest{
		{SerialNumber: "", EventType: "PRODUCTION_SCAN", Location: "lab"},
		{SerialNumber: "TARTE01-001", EventType: "", Location: "lab"},
		{SerialNumber: "TARTE01-001", EventType: "PRODUCTION_SCAN", Location: "   "},
	}
	for _, in := range cases {
		_, err := f.uc.Record(ctx, in)
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	}
	assert.Equal(t, 0, f.countEvents(t), "una validación fallida no debe escribir nada")
}

func TestRecord_EventoDesconocidoSeRechazaAntesDelAppend(t *testing.T) {
	f := newFixture(t)
	_, err := f.uc.Record(context.Background(), dto.RecordScanRequest{
		SerialNumber: "TARTE01-001",
		EventType:    "TELEPORT_SCAN",
		Location:     "lab",
	})
	require.ErrorIs(t, err, domain.ErrUnknownEvent)
	assert.Equal(t, 0, f.countEvents(t))
}

// El append es incondicional: un serial sin producto queda en el log y en el
// estado de unidades, con los contadores intactos.
func TestRecord_SerialSinProductoConservaAuditoria(t *testing.T) {
	f := newFixture(t)
	f.addProduct(t, "TARTE01", "Tarte aux fraises")

	resp := f.record(t, "CROIS99-000001", "PRODUCTION_SCAN")
	assert.Equal(t, "CROIS99-000001", resp.SerialNumber)

	assert.Equal(t, 1, f.countEvents(t), "el evento debe quedar en el log aunque nada coincida")

	st, err := f.statuses.Get("CROIS99-000001")
	require.NoError(t, err)
	require.NotNil(t, st)
	assert.Equal(t, "PRODUCTION SCAN", st.Status)

	ids, err := f.levels.ListProductIDs()
	require.NoError(t, err)
	assert.Empty(t, ids, "los contadores no deben tocarse para seriales sin producto")
}

// Auto-reparación: primer escaneo de un producto sin registro derivado debe
// crear exactamente un registro (vía reconciliador) y aplicar la transición.
func TestRecord_AutoReparacionConReintentoUnico(t *testing.T) {
	f := newFixture(t)
	f.addProduct(t, "TARTE01", "Tarte aux fraises")

	f.record(t, "TARTE01-000001", "PRODUCTION_SCAN")

	ids, err := f.levels.ListProductIDs()
	require.NoError(t, err)
	require.Len(t, ids, 1, "debe existir exactamente un registro derivado nuevo")

	lv, err := f.levels.Get("TARTE01")
	require.NoError(t, err)
	require.NotNil(t, lv)
	assert.Equal(t, 1, lv.InWarehouse, "la transición debe aplicarse tras la reparación")
	assert.Equal(t, "Tarte aux fraises", lv.ProductName)
}

func TestRecord_FlujoCompletoDeCanales(t *testing.T) {
	f := newFixture(t)
	f.addProduct(t, "ECL02", "Éclair café")

	f.record(t, "ECL02-000001", "PRODUCTION_SCAN")
	f.record(t, "ECL02-000002", "PRODUCTION_SCAN")
	f.record(t, "ECL02-000001", "BOUTIQUE_STOCK_SCAN")
	f.record(t, "ECL02-000002", "DELIVERY_B2B")
	f.record(t, "ECL02-000001", "SALE_BOUTIQUE")

	lv, err := f.levels.Get("ECL02")
	require.NoError(t, err)
	assert.Equal(t, 0, lv.InWarehouse)
	assert.Equal(t, 0, lv.BoutiqueStock)
	assert.Equal(t, 1, lv.B2BDelivered)
}

// Venta sin stock previo: el recorte deja el contador en cero, nunca negativo.
func TestRecord_VentaSinStockQuedaEnCero(t *testing.T) {
	f := newFixture(t)
	f.addProduct(t, "MILF03", "Millefeuille")

	f.record(t, "MILF03-000001", "SALE_MARCHE")
	f.record(t, "MILF03-000001", "SALE_MARCHE")

	lv, err := f.levels.Get("MILF03")
	require.NoError(t, err)
	assert.Equal(t, 0, lv.MarcheStock)
}

// El serial se resuelve por el prefijo más largo aunque existan IDs anidados
// (catálogos heredados previos a la regla libre de prefijos).
func TestRecord_ResuelvePorPrefijoMasLargo(t *testing.T) {
	f := newFixture(t)
	f.addProduct(t, "TARTE", "Tarte genérica")
	f.addProduct(t, "TARTE01", "Tarte aux fraises")

	f.record(t, "TARTE01-000001", "PRODUCTION_SCAN")

	lv, err := f.levels.Get("TARTE01")
	require.NoError(t, err)
	require.NotNil(t, lv)
	assert.Equal(t, 1, lv.InWarehouse)

	generic, err := f.levels.Get("TARTE")
	require.NoError(t, err)
	if generic != nil {
		assert.Zero(t, generic.InWarehouse, "el producto de prefijo corto no debe recibir el delta")
	}
}

func TestRecord_InvalidaClavesDeCache(t *testing.T) {
	f := newFixture(t)
	f.addProduct(t, "TARTE01", "Tarte")
	ctx := context.Background()

	keys := []string{
		ports.CacheKeyLogs, ports.CacheKeySummary, ports.CacheKeyCakeStatus,
		ports.CacheKeyLiveOps, ports.CacheKeyWeeklyReport,
	}
	for _, k := range keys {
		f.cache.Put(ctx, k, []byte(`{}`), ports.DefaultTTL)
	}
	f.cache.Put(ctx, ports.CacheKeyProducts, []byte(`[]`), ports.DefaultTTL)

	f.record(t, "TARTE01-000001", "PRODUCTION_SCAN")

	for _, k := range keys {
		_, ok := f.cache.Get(ctx, k)
		assert.False(t, ok, "la clave %s debe invalidarse tras un escaneo", k)
	}
	_, ok := f.cache.Get(ctx, ports.CacheKeyProducts)
	assert.True(t, ok, "products no depende del log y no debe invalidarse")
}

// statusRepo que falla siempre, para probar la postura at-least-once.
type failingStatusRepo struct {
	memory.StatusStore
}

func (f *failingStatusRepo) Upsert(*entity.UnitStatus) error {
	return errors.New("fallo transitorio del almacén")
}

func TestRecord_FalloPosteriorAlAppendNoRevierteElEvento(t *testing.T) {
	f := newFixture(t)
	f.addProduct(t, "TARTE01", "Tarte")

	m := metrics.NewRegistry()
	reconciler := stock.NewReconciler(f.products, f.levels, f.cache, m, zerolog.Nop())
	uc := appscan.NewRecordScanUseCase(
		f.events, &failingStatusRepo{}, f.products, f.levels,
		reconciler, memory.NewTxRunner(f.levels),
		f.cache, m, zerolog.Nop(),
	)

	resp, err := uc.Record(context.Background(), dto.RecordScanRequest{
		SerialNumber: "TARTE01-000001",
		EventType:    "PRODUCTION_SCAN",
		Location:     "laboratorio",
	})
	require.NoError(t, err, "el fallo de derivación se traga: la petición responde con el evento")
	assert.Equal(t, "TARTE01-000001", resp.SerialNumber)
	assert.Equal(t, 1, f.countEvents(t), "el append nunca se revierte")
}

func TestClearLogs_LimpiaLogYEstadoComoUnidad(t *testing.T) {
	f := newFixture(t)
	f.addProduct(t, "TARTE01", "Tarte")
	ctx := context.Background()

	f.record(t, "TARTE01-000001", "PRODUCTION_SCAN")
	f.record(t, "TARTE01-000001", "BOUTIQUE_STOCK_SCAN")

	res, err := f.uc.ClearLogs(ctx)
	require.NoError(t, err)
	assert.NotEmpty(t, res.Message)

	assert.Equal(t, 0, f.countEvents(t))
	sts, err := f.statuses.ListAll()
	require.NoError(t, err)
	assert.Empty(t, sts, "el estado por unidad se limpia junto con el log")

	lv, err := f.levels.Get("TARTE01")
	require.NoError(t, err)
	require.NotNil(t, lv)
	assert.Equal(t, 1, lv.BoutiqueStock, "las existencias no se resetean al limpiar el log")
}

// Borrado en cascada visto desde el procesador: sin producto y sin registro,
// el escaneo posterior queda sin efecto sobre contadores.
func TestRecord_ProductoBorradoQuedaSinEfecto(t *testing.T) {
	f := newFixture(t)
	f.addProduct(t, "TARTE01", "Tarte")
	f.record(t, "TARTE01-000001", "PRODUCTION_SCAN")

	require.NoError(t, f.products.Delete("TARTE01"))
	require.NoError(t, f.levels.Delete("TARTE01"))

	f.record(t, "TARTE01-000002", "PRODUCTION_SCAN")

	lv, err := f.levels.Get("TARTE01")
	require.NoError(t, err)
	assert.Nil(t, lv, "un producto borrado no debe resucitar por un escaneo")
	assert.Equal(t, 2, f.countEvents(t), "la auditoría conserva ambos eventos")
}

func TestRecord_TimestampDeIngestaUTC(t *testing.T) {
	f := newFixture(t)
	f.addProduct(t, "TARTE01", "Tarte")
	fixed := time.Date(2026, 3, 14, 15, 9, 26, 0, time.FixedZone("CET", 3600))
	f.uc.WithClock(func() time.Time { return fixed })

	resp := f.record(t, "TARTE01-000001", "PRODUCTION_SCAN")
	assert.Equal(t, fixed.UTC(), resp.Timestamp)
	assert.Equal(t, time.UTC, resp.Timestamp.Location())
}
