package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/Trazabilidad-api/internal/domain/entity"
	"github.com/jhoicas/Trazabilidad-api/internal/domain/repository"
)

var _ repository.WeeklyReportRepository = (*WeeklyReportRepo)(nil)

// WeeklyReportRepo implementación de WeeklyReportRepository sobre PostgreSQL.
type WeeklyReportRepo struct {
	q Querier
}

// NewWeeklyReportRepository construye el adaptador del reporte semanal. Pasar pool o tx (Querier).
func NewWeeklyReportRepository(q Querier) *WeeklyReportRepo {
	return &WeeklyReportRepo{q: q}
}

// Replace sustituye el contenido completo de la tabla por las filas dadas.
// El reporte se regenera entero en cada corrida, no acumula.
func (r *WeeklyReportRepo) Replace(reportRows []*entity.WeeklyReportRow) error {
	ctx := context.Background()
	if _, err := r.q.Exec(ctx, `TRUNCATE TABLE weekly_report_rows`); err != nil {
		return fmt.Errorf("truncate weekly report: %w", err)
	}
	query := `
		INSERT INTO weekly_report_rows (product_id, product_name, sale_boutique, sale_marche,
			sale_saleya, delivery_b2b, total, period_start, period_end, generated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	for _, row := range reportRows {
		if _, err := r.q.Exec(ctx, query,
			row.ProductID, row.ProductName, row.SaleBoutique, row.SaleMarche,
			row.SaleSaleya, row.DeliveryB2B, row.Total,
			row.PeriodStart, row.PeriodEnd, row.GeneratedAt,
		); err != nil {
			return fmt.Errorf("insert weekly report row: %w", err)
		}
	}
	return nil
}

// ListAll devuelve el último reporte generado, ordenado por producto.
func (r *WeeklyReportRepo) ListAll() ([]*entity.WeeklyReportRow, error) {
	query := `
		SELECT product_id, product_name, sale_boutique, sale_marche, sale_saleya,
			delivery_b2b, total, period_start, period_end, generated_at
		FROM weekly_report_rows ORDER BY product_id ASC`
	rows, err := r.q.Query(context.Background(), query)
	if err != nil {
		return nil, fmt.Errorf("list weekly report: %w", err)
	}
	defer rows.Close()
	var list []*entity.WeeklyReportRow
	for rows.Next() {
		var row entity.WeeklyReportRow
		if err := rows.Scan(
			&row.ProductID, &row.ProductName, &row.SaleBoutique, &row.SaleMarche,
			&row.SaleSaleya, &row.DeliveryB2B, &row.Total,
			&row.PeriodStart, &row.PeriodEnd, &row.GeneratedAt,
		); err != nil {
			return nil, fmt.Errorf("scan weekly report row: %w", err)
		}
		list = append(list, &row)
	}
	return list, rows.Err()
}
