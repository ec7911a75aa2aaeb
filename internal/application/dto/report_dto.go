package dto

import "time"

// WeeklyReportRowDTO fila del reporte semanal: ventas por canal de un producto.
type WeeklyReportRowDTO struct {
	ProductID    string `json:"product_id"`
	ProductName  string `json:"product_name"`
	SaleBoutique int    `json:"sale_boutique"`
	SaleMarche   int    `json:"sale_marche"`
	SaleSaleya   int    `json:"sale_saleya"`
	DeliveryB2B  int    `json:"delivery_b2b"`
	Total        int    `json:"total"`
}

// WeeklyReportResult resumen devuelto al generar el reporte.
type WeeklyReportResult struct {
	PeriodStart      time.Time `json:"period_start"`
	PeriodEnd        time.Time `json:"period_end"`
	TotalSales       int       `json:"total_sales"`
	ProductsReported int       `json:"products_reported"`
}

// WeeklyReportResponse reporte completo (lectura cacheada del último generado).
type WeeklyReportResponse struct {
	PeriodStart time.Time            `json:"period_start"`
	PeriodEnd   time.Time            `json:"period_end"`
	GeneratedAt time.Time            `json:"generated_at"`
	Rows        []WeeklyReportRowDTO `json:"rows"`
}

// LiveOpsResponse pulso operativo del día: conteo por tipo de evento desde la
// medianoche local más los últimos eventos registrados.
type LiveOpsResponse struct {
	Date         string              `json:"date"`
	EventCounts  map[string]int      `json:"event_counts"`
	TotalToday   int                 `json:"total_today"`
	RecentEvents []ScanEventResponse `json:"recent_events"`
}
