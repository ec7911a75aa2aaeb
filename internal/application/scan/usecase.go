// Package scan contiene el procesador de eventos de escaneo: la pieza que
// convierte un evento crudo en deltas de canal sobre la vista de existencias.
package scan

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/jhoicas/Trazabilidad-api/internal/application/dto"
	"github.com/jhoicas/Trazabilidad-api/internal/application/ports"
	"github.com/jhoicas/Trazabilidad-api/internal/domain"
	"github.com/jhoicas/Trazabilidad-api/internal/domain/catalog"
	"github.com/jhoicas/Trazabilidad-api/internal/domain/entity"
	"github.com/jhoicas/Trazabilidad-api/internal/domain/repository"
	domscan "github.com/jhoicas/Trazabilidad-api/internal/domain/scan"
	"github.com/jhoicas/Trazabilidad-api/internal/metrics"
)

// Claves de caché cuyo valor depende del log o de las existencias.
var invalidateOnScan = []string{
	ports.CacheKeyLogs,
	ports.CacheKeySummary,
	ports.CacheKeyCakeStatus,
	ports.CacheKeyLiveOps,
	ports.CacheKeyWeeklyReport,
}

// RecordScanUseCase procesa eventos de escaneo.
//
// Postura de consistencia: el append al log es lo único que puede rechazar la
// petición después de validar. Todo lo derivado (estado de unidad, contadores
// de canal) es best-effort: un fallo posterior al append se registra y se
// traga, nunca se revierte el evento. El log queda siempre como superconjunto
// de lo derivado; el reconciliador repara la vista en la siguiente pasada.
type RecordScanUseCase struct {
	eventRepo   repository.ScanEventRepository
	statusRepo  repository.UnitStatusRepository
	productRepo repository.ProductRepository
	stockRepo   repository.StockLevelRepository
	reconciler  Reconciler
	txRunner    TxRunner
	cache       ports.Cache
	metrics     *metrics.Registry
	log         zerolog.Logger
	now         func() time.Time
}

// NewRecordScanUseCase construye el procesador.
func NewRecordScanUseCase(
	eventRepo repository.ScanEventRepository,
	statusRepo repository.UnitStatusRepository,
	productRepo repository.ProductRepository,
	stockRepo repository.StockLevelRepository,
	reconciler Reconciler,
	txRunner TxRunner,
	cache ports.Cache,
	m *metrics.Registry,
	log zerolog.Logger,
) *RecordScanUseCase {
	return &RecordScanUseCase{
		eventRepo:   eventRepo,
		statusRepo:  statusRepo,
		productRepo: productRepo,
		stockRepo:   stockRepo,
		reconciler:  reconciler,
		txRunner:    txRunner,
		cache:       cache,
		metrics:     m,
		log:         log,
		now:         time.Now,
	}
}

// WithClock fija el reloj del procesador (tests de ventana temporal).
func (uc *RecordScanUseCase) WithClock(now func() time.Time) *RecordScanUseCase {
	uc.now = now
	return uc
}

// Record registra un evento de escaneo.
//
//  1. Valida: serial, tipo y ubicación obligatorios; el tipo debe pertenecer a
//     la enumeración cerrada. Nada se escribe si la validación falla.
//  2. Agrega el evento al log con timestamp de ingesta. El append es
//     incondicional: se conserva aunque el serial no case con ningún producto.
//  3. Deriva (best-effort): upsert del estado de la unidad, resolución del
//     producto por prefijo más largo, y transición de contadores bajo bloqueo
//     de fila. Si la vista no tiene registro para el producto, dispara el
//     reconciliador y reintenta una sola vez.
//  4. Invalida las claves de caché dependientes del log y las existencias.
func (uc *RecordScanUseCase) Record(ctx context.Context, in dto.RecordScanRequest) (*dto.ScanEventResponse, error) {
	serial := strings.TrimSpace(in.SerialNumber)
	location := strings.TrimSpace(in.Location)
	if serial == "" || location == "" || strings.TrimSpace(in.EventType) == "" {
		return nil, fmt.Errorf("%w: serial_number, event_type y location son obligatorios", domain.ErrInvalidInput)
	}
	eventType, err := domscan.Parse(in.EventType)
	if err != nil {
		return nil, err
	}

	event := &entity.ScanEvent{
		ID:           uuid.New().String(),
		Timestamp:    uc.now().UTC(),
		SerialNumber: serial,
		EventType:    string(eventType),
		Location:     location,
		ClientID:     strings.TrimSpace(in.ClientID),
	}
	if err := uc.eventRepo.Append(event); err != nil {
		return nil, fmt.Errorf("agregar evento al log: %w", err)
	}
	uc.metrics.ScansTotal.WithLabelValues(string(eventType)).Inc()

	if err := uc.derive(ctx, event, eventType); err != nil {
		// El evento ya está en el log y ahí se queda: la derivación fallida se
		// repara vía reconciliación o reproceso, no revirtiendo el append.
		uc.metrics.ScanDeriveErrors.Inc()
		uc.log.Error().Err(err).
			Str("serial", serial).
			Str("event_type", string(eventType)).
			Msg("derivación fallida tras el append; el evento se conserva")
	}

	uc.cache.Invalidate(ctx, invalidateOnScan...)

	return &dto.ScanEventResponse{
		SerialNumber: event.SerialNumber,
		Timestamp:    event.Timestamp,
		EventType:    event.EventType,
		Location:     event.Location,
		ClientID:     event.ClientID,
	}, nil
}

// derive actualiza las vistas derivadas del evento recién agregado.
func (uc *RecordScanUseCase) derive(ctx context.Context, event *entity.ScanEvent, eventType domscan.EventType) error {
	status := &entity.UnitStatus{
		SerialNumber:    event.SerialNumber,
		CurrentLocation: event.Location,
		Status:          eventType.UnitStatus(),
		LastUpdate:      event.Timestamp,
	}
	if err := uc.statusRepo.Upsert(status); err != nil {
		return fmt.Errorf("upsert estado de unidad: %w", err)
	}

	products, err := uc.productRepo.ListAll()
	if err != nil {
		return fmt.Errorf("leer catálogo: %w", err)
	}
	product := catalog.Resolve(products, event.SerialNumber)
	if product == nil {
		// Serial sin producto: el evento queda en el log como auditoría y los
		// contadores no se tocan.
		uc.metrics.ScansUnmatched.Inc()
		uc.log.Warn().Str("serial", event.SerialNumber).Msg("escaneo sin producto en catálogo")
		return nil
	}

	// Ensure-then-act con reintento acotado a 1: si falta el registro derivado,
	// una pasada del reconciliador lo crea (cubre también la vista vacía).
	level, err := uc.stockRepo.Get(product.ID)
	if err != nil {
		return fmt.Errorf("leer existencias de %s: %w", product.ID, err)
	}
	if level == nil {
		if err := uc.reconciler.EnsureLevels(ctx); err != nil {
			return fmt.Errorf("auto-reparación de existencias: %w", err)
		}
	}

	return uc.txRunner.Run(ctx, func(stockRepo repository.StockLevelRepository) error {
		locked, err := stockRepo.GetForUpdate(product.ID)
		if err != nil {
			return fmt.Errorf("bloquear existencias de %s: %w", product.ID, err)
		}
		if locked == nil {
			// El reintento único ya corrió; si sigue faltando, algo borró el
			// producto entre medias.
			return fmt.Errorf("existencias de %s ausentes tras reconciliar: %w", product.ID, domain.ErrNotFound)
		}
		domscan.Apply(locked, eventType)
		locked.UpdatedAt = event.Timestamp
		if err := stockRepo.Upsert(locked); err != nil {
			return fmt.Errorf("guardar existencias de %s: %w", product.ID, err)
		}
		return nil
	})
}

// ClearLogs limpia en bloque el log de eventos y el estado por unidad (las dos
// tablas viven y mueren juntas) e invalida las vistas dependientes. Los
// contadores de existencias no se resetean: son estado derivado persistente.
func (uc *RecordScanUseCase) ClearLogs(ctx context.Context) (*dto.ClearLogsResult, error) {
	if err := uc.eventRepo.Clear(); err != nil {
		return nil, fmt.Errorf("limpiar log de eventos: %w", err)
	}
	if err := uc.statusRepo.Clear(); err != nil {
		return nil, fmt.Errorf("limpiar estado de unidades: %w", err)
	}
	uc.cache.Invalidate(ctx, ports.CacheKeyLogs, ports.CacheKeyCakeStatus, ports.CacheKeyLiveOps, ports.CacheKeyWeeklyReport)
	uc.log.Info().Msg("log de eventos y estado de unidades limpiados")
	return &dto.ClearLogsResult{Message: "log de eventos limpiado"}, nil
}
