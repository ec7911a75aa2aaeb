package repository

import "github.com/jhoicas/Trazabilidad-api/internal/domain/entity"

// WeeklyReportRepository define el puerto de persistencia para la salida del
// reporte semanal. Replace sustituye el contenido completo de la tabla: el
// reporte es una función pura del log y el catálogo, sin estado incremental.
type WeeklyReportRepository interface {
	Replace(rows []*entity.WeeklyReportRow) error
	ListAll() ([]*entity.WeeklyReportRow, error)
}
