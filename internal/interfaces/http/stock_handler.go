package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/Trazabilidad-api/internal/application/dto"
	"github.com/jhoicas/Trazabilidad-api/internal/application/query"
	"github.com/jhoicas/Trazabilidad-api/internal/application/stock"
)

// StockHandler maneja la vista de existencias y la reconciliación (protegido).
type StockHandler struct {
	reconciler *stock.Reconciler
	queries    *query.UseCase
}

// NewStockHandler construye el handler de existencias.
func NewStockHandler(reconciler *stock.Reconciler, queries *query.UseCase) *StockHandler {
	return &StockHandler{reconciler: reconciler, queries: queries}
}

// GetSummary godoc
// @Summary      Resumen de existencias por producto
// @Description  Contadores de canal por producto más los totales agregados. Lectura cacheada.
// @Tags         stock
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.SummaryResponse
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/summary [get]
func (h *StockHandler) GetSummary(c *fiber.Ctx) error {
	raw, err := h.queries.GetSummary(c.Context())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return sendRawJSON(c, raw)
}

// Reconcile godoc
// @Summary      Reconciliar la vista de existencias con el catálogo
// @Description  Crea en cero la fila de existencias de cada producto del
//
//	catálogo que aún no la tenga. Idempotente; nunca modifica filas existentes.
//
// @Tags         stock
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.ReconcileResult
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/reconcile [post]
func (h *StockHandler) Reconcile(c *fiber.Ctx) error {
	out, err := h.reconciler.Reconcile(c.Context())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}
