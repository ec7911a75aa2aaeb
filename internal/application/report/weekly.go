// Package report contiene el agregador de ventas semanal.
package report

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/rs/zerolog"

	"github.com/jhoicas/Trazabilidad-api/internal/application/dto"
	"github.com/jhoicas/Trazabilidad-api/internal/application/ports"
	"github.com/jhoicas/Trazabilidad-api/internal/domain/catalog"
	"github.com/jhoicas/Trazabilidad-api/internal/domain/entity"
	"github.com/jhoicas/Trazabilidad-api/internal/domain/repository"
	domscan "github.com/jhoicas/Trazabilidad-api/internal/domain/scan"
)

// reportWindow ventana de agregación hacia atrás desde "ahora".
const reportWindow = 7 * 24 * time.Hour

// WeeklyUseCase agrega las ventas de la última semana por producto y canal.
// Es una función pura del log y el catálogo: su única salida persistente es la
// tabla de filas del reporte, que se reemplaza completa en cada generación.
type WeeklyUseCase struct {
	eventRepo   repository.ScanEventRepository
	productRepo repository.ProductRepository
	reportRepo  repository.WeeklyReportRepository
	cache       ports.Cache
	log         zerolog.Logger
	now         func() time.Time
}

// NewWeeklyUseCase construye el agregador.
func NewWeeklyUseCase(
	eventRepo repository.ScanEventRepository,
	productRepo repository.ProductRepository,
	reportRepo repository.WeeklyReportRepository,
	cache ports.Cache,
	log zerolog.Logger,
) *WeeklyUseCase {
	return &WeeklyUseCase{
		eventRepo:   eventRepo,
		productRepo: productRepo,
		reportRepo:  reportRepo,
		cache:       cache,
		log:         log,
		now:         time.Now,
	}
}

// WithClock fija el reloj (tests de borde de ventana).
func (uc *WeeklyUseCase) WithClock(now func() time.Time) *WeeklyUseCase {
	uc.now = now
	return uc
}

// Generate produce el reporte de la ventana [ahora-7d, ahora], inclusive en
// ambos extremos. Cuenta solo eventos de venta/salida (SALE_* y DELIVERY_B2B),
// agrupa por producto resuelto por prefijo y excluye en silencio los eventos
// sin producto (no son errores: el log admite seriales huérfanos). Las filas
// salen ordenadas por product_id para que el reporte sea determinista.
func (uc *WeeklyUseCase) Generate(ctx context.Context) (*dto.WeeklyReportResult, error) {
	now := uc.now().UTC()
	from := now.Add(-reportWindow)

	events, err := uc.eventRepo.ListByWindow(from, now)
	if err != nil {
		return nil, fmt.Errorf("leer eventos de la ventana: %w", err)
	}
	products, err := uc.productRepo.ListAll()
	if err != nil {
		return nil, fmt.Errorf("leer catálogo: %w", err)
	}

	rows := make(map[string]*entity.WeeklyReportRow)
	totalSales := 0
	for _, ev := range events {
		eventType := domscan.EventType(ev.EventType)
		if !eventType.IsSale() {
			continue
		}
		product := catalog.Resolve(products, ev.SerialNumber)
		if product == nil {
			continue
		}
		row, ok := rows[product.ID]
		if !ok {
			row = &entity.WeeklyReportRow{
				ProductID:   product.ID,
				ProductName: product.Name,
				PeriodStart: from,
				PeriodEnd:   now,
				GeneratedAt: now,
			}
			rows[product.ID] = row
		}
		switch eventType {
		case domscan.SaleBoutique:
			row.SaleBoutique++
		case domscan.SaleMarche:
			row.SaleMarche++
		case domscan.SaleSaleya:
			row.SaleSaleya++
		case domscan.DeliveryB2B:
			row.DeliveryB2B++
		}
		row.Total++
		totalSales++
	}

	ordered := make([]*entity.WeeklyReportRow, 0, len(rows))
	for _, row := range rows {
		ordered = append(ordered, row)
	}
	sort.Slice(ordered, func(i, j int) bool { return ordered[i].ProductID < ordered[j].ProductID })

	if err := uc.reportRepo.Replace(ordered); err != nil {
		return nil, fmt.Errorf("guardar filas del reporte: %w", err)
	}
	// Escritura sobre la tabla del reporte: descarta la vista cacheada para
	// que la próxima lectura vea la salida recién generada.
	uc.cache.Invalidate(ctx, ports.CacheKeyWeeklyReport)

	uc.log.Info().
		Int("ventas", totalSales).
		Int("productos", len(ordered)).
		Time("desde", from).
		Msg("reporte semanal generado")

	return &dto.WeeklyReportResult{
		PeriodStart:      from,
		PeriodEnd:        now,
		TotalSales:       totalSales,
		ProductsReported: len(ordered),
	}, nil
}
