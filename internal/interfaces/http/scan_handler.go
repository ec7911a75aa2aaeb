package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/Trazabilidad-api/internal/application/dto"
	"github.com/jhoicas/Trazabilidad-api/internal/application/query"
	"github.com/jhoicas/Trazabilidad-api/internal/application/scan"
	"github.com/jhoicas/Trazabilidad-api/internal/domain"
)

// ScanHandler maneja el registro de escaneos y el log de movimientos (protegido).
type ScanHandler struct {
	record  *scan.RecordScanUseCase
	queries *query.UseCase
}

// NewScanHandler construye el handler de escaneos.
func NewScanHandler(record *scan.RecordScanUseCase, queries *query.UseCase) *ScanHandler {
	return &ScanHandler{record: record, queries: queries}
}

// Record godoc
// @Summary      Registrar evento de escaneo
// @Description  Agrega el evento al log y deriva estado de unidad y contadores de canal.
// @Tags         scans
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.RecordScanRequest  true  "serial_number, event_type, location, client_id (opcional)"
// @Success      201   {object}  dto.ScanEventResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/scans [post]
func (h *ScanHandler) Record(c *fiber.Ctx) error {
	var in dto.RecordScanRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.record.Record(c.Context(), in)
	if err != nil {
		if errors.Is(err, domain.ErrUnknownEvent) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "UNKNOWN_EVENT_TYPE", Message: err.Error()})
		}
		if errors.Is(err, domain.ErrInvalidInput) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// ListLogs godoc
// @Summary      Listar el log de movimientos
// @Description  Eventos del más reciente al más antiguo. Lectura cacheada.
// @Tags         logs
// @Security     Bearer
// @Produce      json
// @Success      200  {array}   dto.ScanEventResponse
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/logs [get]
func (h *ScanHandler) ListLogs(c *fiber.Ctx) error {
	raw, err := h.queries.ListLogs(c.Context())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return sendRawJSON(c, raw)
}

// ClearLogs godoc
// @Summary      Vaciar el log de movimientos
// @Description  Limpieza en bloque: elimina todos los eventos y los estados por
//
//	unidad. Las existencias derivadas no se tocan.
//
// @Tags         logs
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.ClearLogsResult
// @Failure      403  {object}  dto.ErrorResponse
// @Router       /api/logs [delete]
func (h *ScanHandler) ClearLogs(c *fiber.Ctx) error {
	out, err := h.record.ClearLogs(c.Context())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}

// GetUnitStatus godoc
// @Summary      Estado actual de una unidad serializada
// @Tags         units
// @Security     Bearer
// @Produce      json
// @Param        serial  path  string  true  "Número de serie completo"
// @Success      200  {object}  dto.UnitStatusDTO
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/units/{serial}/status [get]
func (h *ScanHandler) GetUnitStatus(c *fiber.Ctx) error {
	serial := c.Params("serial")
	out, err := h.queries.GetCakeStatus(c.Context(), serial)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "unidad sin eventos registrados"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}
