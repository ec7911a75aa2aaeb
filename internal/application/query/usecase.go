// Package query agrupa las lecturas de la API. Todas pasan por la caché de
// vistas con la TTL corta; las escrituras invalidan las claves que les tocan.
package query

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/jhoicas/Trazabilidad-api/internal/application/dto"
	"github.com/jhoicas/Trazabilidad-api/internal/application/ports"
	"github.com/jhoicas/Trazabilidad-api/internal/domain"
	"github.com/jhoicas/Trazabilidad-api/internal/domain/entity"
	"github.com/jhoicas/Trazabilidad-api/internal/domain/repository"
)

// liveOpsRecent cuántos eventos recientes incluye la vista de operaciones.
const liveOpsRecent = 20

// UseCase lecturas cacheadas sobre el log, el catálogo y las vistas derivadas.
type UseCase struct {
	eventRepo   repository.ScanEventRepository
	productRepo repository.ProductRepository
	stockRepo   repository.StockLevelRepository
	statusRepo  repository.UnitStatusRepository
	userRepo    repository.UserRepository
	clientRepo  repository.B2BClientRepository
	reportRepo  repository.WeeklyReportRepository
	cache       ports.Cache
	ttl         time.Duration
	now         func() time.Time
}

// NewUseCase construye las lecturas con la TTL por defecto.
func NewUseCase(
	eventRepo repository.ScanEventRepository,
	productRepo repository.ProductRepository,
	stockRepo repository.StockLevelRepository,
	statusRepo repository.UnitStatusRepository,
	userRepo repository.UserRepository,
	clientRepo repository.B2BClientRepository,
	reportRepo repository.WeeklyReportRepository,
	cache ports.Cache,
) *UseCase {
	return &UseCase{
		eventRepo:   eventRepo,
		productRepo: productRepo,
		stockRepo:   stockRepo,
		statusRepo:  statusRepo,
		userRepo:    userRepo,
		clientRepo:  clientRepo,
		reportRepo:  reportRepo,
		cache:       cache,
		ttl:         ports.DefaultTTL,
		now:         time.Now,
	}
}

// WithClock fija el reloj (tests de la vista live-ops).
func (uc *UseCase) WithClock(now func() time.Time) *UseCase {
	uc.now = now
	return uc
}

// WithTTL ajusta la vigencia de las vistas cacheadas (configurable por entorno).
func (uc *UseCase) WithTTL(ttl time.Duration) *UseCase {
	if ttl > 0 {
		uc.ttl = ttl
	}
	return uc
}

// ListLogs log de eventos, más recientes primero.
func (uc *UseCase) ListLogs(ctx context.Context) (json.RawMessage, error) {
	return ports.Through(ctx, uc.cache, ports.CacheKeyLogs, uc.ttl, func() (any, error) {
		events, err := uc.eventRepo.List(0, 0)
		if err != nil {
			return nil, fmt.Errorf("leer log: %w", err)
		}
		out := make([]dto.ScanEventResponse, 0, len(events))
		for _, ev := range events {
			out = append(out, toScanEventResponse(ev))
		}
		return out, nil
	})
}

// ListProducts catálogo completo.
func (uc *UseCase) ListProducts(ctx context.Context) (json.RawMessage, error) {
	return ports.Through(ctx, uc.cache, ports.CacheKeyProducts, uc.ttl, func() (any, error) {
		products, err := uc.productRepo.ListAll()
		if err != nil {
			return nil, fmt.Errorf("leer catálogo: %w", err)
		}
		out := make([]dto.ProductResponse, 0, len(products))
		for _, p := range products {
			out = append(out, dto.ProductResponse{
				ID:              p.ID,
				Name:            p.Name,
				Category:        p.Category,
				UnitOfMeasure:   p.UnitOfMeasure,
				UnitCost:        p.UnitCost,
				SupplierName:    p.SupplierName,
				ReorderLevel:    p.ReorderLevel,
				ReorderQuantity: p.ReorderQuantity,
				StorageLocation: p.StorageLocation,
				ShelfLifeDays:   p.ShelfLifeDays,
				IsPerishable:    p.IsPerishable,
				CreatedAt:       p.CreatedAt,
				UpdatedAt:       p.UpdatedAt,
			})
		}
		return out, nil
	})
}

// GetSummary existencias por producto más los totales de canal.
func (uc *UseCase) GetSummary(ctx context.Context) (json.RawMessage, error) {
	return ports.Through(ctx, uc.cache, ports.CacheKeySummary, uc.ttl, func() (any, error) {
		levels, err := uc.stockRepo.ListAll()
		if err != nil {
			return nil, fmt.Errorf("leer existencias: %w", err)
		}
		resp := dto.SummaryResponse{Levels: make([]dto.StockLevelDTO, 0, len(levels))}
		for _, lv := range levels {
			resp.Levels = append(resp.Levels, dto.StockLevelDTO{
				ProductID:     lv.ProductID,
				ProductName:   lv.ProductName,
				InWarehouse:   lv.InWarehouse,
				BoutiqueStock: lv.BoutiqueStock,
				MarcheStock:   lv.MarcheStock,
				SaleyaStock:   lv.SaleyaStock,
				B2BDelivered:  lv.B2BDelivered,
			})
			resp.Totals.InWarehouse += lv.InWarehouse
			resp.Totals.BoutiqueStock += lv.BoutiqueStock
			resp.Totals.MarcheStock += lv.MarcheStock
			resp.Totals.SaleyaStock += lv.SaleyaStock
			resp.Totals.B2BDelivered += lv.B2BDelivered
		}
		return resp, nil
	})
}

// GetCakeStatus estado actual de una unidad. La caché guarda la tabla completa
// bajo una sola clave lógica; la selección por serial se hace sobre la vista.
func (uc *UseCase) GetCakeStatus(ctx context.Context, serialNumber string) (*dto.UnitStatusDTO, error) {
	raw, err := ports.Through(ctx, uc.cache, ports.CacheKeyCakeStatus, uc.ttl, func() (any, error) {
		statuses, err := uc.statusRepo.ListAll()
		if err != nil {
			return nil, fmt.Errorf("leer estado de unidades: %w", err)
		}
		out := make(map[string]dto.UnitStatusDTO, len(statuses))
		for _, st := range statuses {
			out[st.SerialNumber] = dto.UnitStatusDTO{
				SerialNumber:    st.SerialNumber,
				CurrentLocation: st.CurrentLocation,
				Status:          st.Status,
				LastUpdate:      st.LastUpdate,
			}
		}
		return out, nil
	})
	if err != nil {
		return nil, err
	}
	var all map[string]dto.UnitStatusDTO
	if err := json.Unmarshal(raw, &all); err != nil {
		return nil, fmt.Errorf("decodificar vista de unidades: %w", err)
	}
	st, ok := all[serialNumber]
	if !ok {
		return nil, fmt.Errorf("%w: unidad %s sin escaneos", domain.ErrNotFound, serialNumber)
	}
	return &st, nil
}

// GetLiveOps pulso operativo del día en curso (UTC): conteo por tipo de evento
// desde medianoche más los últimos eventos.
func (uc *UseCase) GetLiveOps(ctx context.Context) (json.RawMessage, error) {
	return ports.Through(ctx, uc.cache, ports.CacheKeyLiveOps, uc.ttl, func() (any, error) {
		now := uc.now().UTC()
		dayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
		events, err := uc.eventRepo.ListByWindow(dayStart, now)
		if err != nil {
			return nil, fmt.Errorf("leer eventos del día: %w", err)
		}
		resp := dto.LiveOpsResponse{
			Date:         dayStart.Format("2006-01-02"),
			EventCounts:  make(map[string]int),
			RecentEvents: make([]dto.ScanEventResponse, 0, liveOpsRecent),
		}
		for _, ev := range events {
			resp.EventCounts[ev.EventType]++
			resp.TotalToday++
		}
		start := len(events) - liveOpsRecent
		if start < 0 {
			start = 0
		}
		for i := len(events) - 1; i >= start; i-- {
			resp.RecentEvents = append(resp.RecentEvents, toScanEventResponse(events[i]))
		}
		return resp, nil
	})
}

// GetWeeklyReport última salida del agregador semanal.
func (uc *UseCase) GetWeeklyReport(ctx context.Context) (json.RawMessage, error) {
	return ports.Through(ctx, uc.cache, ports.CacheKeyWeeklyReport, uc.ttl, func() (any, error) {
		rows, err := uc.reportRepo.ListAll()
		if err != nil {
			return nil, fmt.Errorf("leer reporte semanal: %w", err)
		}
		resp := dto.WeeklyReportResponse{Rows: make([]dto.WeeklyReportRowDTO, 0, len(rows))}
		for _, row := range rows {
			resp.PeriodStart = row.PeriodStart
			resp.PeriodEnd = row.PeriodEnd
			resp.GeneratedAt = row.GeneratedAt
			resp.Rows = append(resp.Rows, dto.WeeklyReportRowDTO{
				ProductID:    row.ProductID,
				ProductName:  row.ProductName,
				SaleBoutique: row.SaleBoutique,
				SaleMarche:   row.SaleMarche,
				SaleSaleya:   row.SaleSaleya,
				DeliveryB2B:  row.DeliveryB2B,
				Total:        row.Total,
			})
		}
		return resp, nil
	})
}

// ListUsers usuarios sin campos sensibles.
func (uc *UseCase) ListUsers(ctx context.Context) (json.RawMessage, error) {
	return ports.Through(ctx, uc.cache, ports.CacheKeyUsers, uc.ttl, func() (any, error) {
		users, err := uc.userRepo.ListAll()
		if err != nil {
			return nil, fmt.Errorf("leer usuarios: %w", err)
		}
		out := make([]dto.UserResponse, 0, len(users))
		for _, u := range users {
			out = append(out, dto.UserResponse{
				ID:        u.ID,
				Email:     u.Email,
				Name:      u.Name,
				Role:      u.Role,
				Status:    u.Status,
				CreatedAt: u.CreatedAt,
			})
		}
		return out, nil
	})
}

// ListClients clientes mayoristas.
func (uc *UseCase) ListClients(ctx context.Context) (json.RawMessage, error) {
	return ports.Through(ctx, uc.cache, ports.CacheKeyClients, uc.ttl, func() (any, error) {
		clients, err := uc.clientRepo.ListAll()
		if err != nil {
			return nil, fmt.Errorf("leer clientes B2B: %w", err)
		}
		out := make([]dto.B2BClientDTO, 0, len(clients))
		for _, c := range clients {
			out = append(out, dto.B2BClientDTO{
				ID:           c.ID,
				Name:         c.Name,
				ContactEmail: c.ContactEmail,
				Phone:        c.Phone,
				Address:      c.Address,
			})
		}
		return out, nil
	})
}

func toScanEventResponse(ev *entity.ScanEvent) dto.ScanEventResponse {
	return dto.ScanEventResponse{
		SerialNumber: ev.SerialNumber,
		Timestamp:    ev.Timestamp,
		EventType:    ev.EventType,
		Location:     ev.Location,
		ClientID:     ev.ClientID,
	}
}
