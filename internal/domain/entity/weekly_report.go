package entity

import "time"

// WeeklyReportRow es una fila del reporte semanal de ventas: conteos por canal
// para un producto dentro de la ventana [ahora-7d, ahora]. El reporte completo
// reemplaza a la tabla weekly_report_rows en cada generación.
type WeeklyReportRow struct {
	ProductID    string
	ProductName  string
	SaleBoutique int
	SaleMarche   int
	SaleSaleya   int
	DeliveryB2B  int
	Total        int
	PeriodStart  time.Time
	PeriodEnd    time.Time
	GeneratedAt  time.Time
}
