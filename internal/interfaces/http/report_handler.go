package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/Trazabilidad-api/internal/application/dto"
	"github.com/jhoicas/Trazabilidad-api/internal/application/query"
	"github.com/jhoicas/Trazabilidad-api/internal/application/report"
)

// ReportHandler maneja el reporte semanal y el pulso operativo (protegido).
type ReportHandler struct {
	weekly  *report.WeeklyUseCase
	queries *query.UseCase
}

// NewReportHandler construye el handler de reportes.
func NewReportHandler(weekly *report.WeeklyUseCase, queries *query.UseCase) *ReportHandler {
	return &ReportHandler{weekly: weekly, queries: queries}
}

// GenerateWeekly godoc
// @Summary      Generar el reporte semanal de ventas
// @Description  Agrega las ventas de la ventana [ahora-7d, ahora] por producto
//
//	y canal, y reemplaza el reporte anterior.
//
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.WeeklyReportResult
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/reports/weekly [post]
func (h *ReportHandler) GenerateWeekly(c *fiber.Ctx) error {
	out, err := h.weekly.Generate(c.Context())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}

// GetWeekly godoc
// @Summary      Último reporte semanal generado
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.WeeklyReportResponse
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/reports/weekly [get]
func (h *ReportHandler) GetWeekly(c *fiber.Ctx) error {
	raw, err := h.queries.GetWeeklyReport(c.Context())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return sendRawJSON(c, raw)
}

// GetLiveOps godoc
// @Summary      Pulso operativo del día
// @Description  Conteo de eventos por tipo desde la medianoche UTC más los
//
//	últimos eventos registrados. Lectura cacheada.
//
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.LiveOpsResponse
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/live-ops [get]
func (h *ReportHandler) GetLiveOps(c *fiber.Ctx) error {
	raw, err := h.queries.GetLiveOps(c.Context())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return sendRawJSON(c, raw)
}
