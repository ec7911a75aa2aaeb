package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/Trazabilidad-api/internal/application/dto"
	"github.com/jhoicas/Trazabilidad-api/internal/application/query"
)

// DirectoryHandler maneja los directorios de solo lectura: usuarios y
// clientes mayoristas (protegido).
type DirectoryHandler struct {
	queries *query.UseCase
}

// NewDirectoryHandler construye el handler de directorios.
func NewDirectoryHandler(queries *query.UseCase) *DirectoryHandler {
	return &DirectoryHandler{queries: queries}
}

// ListUsers godoc
// @Summary      Listar usuarios
// @Tags         directory
// @Security     Bearer
// @Produce      json
// @Success      200  {array}   dto.UserResponse
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/users [get]
func (h *DirectoryHandler) ListUsers(c *fiber.Ctx) error {
	raw, err := h.queries.ListUsers(c.Context())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return sendRawJSON(c, raw)
}

// ListClients godoc
// @Summary      Listar clientes mayoristas
// @Tags         directory
// @Security     Bearer
// @Produce      json
// @Success      200  {array}   dto.B2BClientDTO
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/clients [get]
func (h *DirectoryHandler) ListClients(c *fiber.Ctx) error {
	raw, err := h.queries.ListClients(c.Context())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return sendRawJSON(c, raw)
}
