package http

import (
	"encoding/json"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/Trazabilidad-api/internal/application/auth"
	"github.com/jhoicas/Trazabilidad-api/internal/application/catalog"
	"github.com/jhoicas/Trazabilidad-api/internal/application/query"
	"github.com/jhoicas/Trazabilidad-api/internal/application/report"
	"github.com/jhoicas/Trazabilidad-api/internal/application/scan"
	"github.com/jhoicas/Trazabilidad-api/internal/application/stock"
	"github.com/jhoicas/Trazabilidad-api/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	RecordScan *scan.RecordScanUseCase
	CatalogUC  *catalog.UseCase
	Reconciler *stock.Reconciler
	WeeklyUC   *report.WeeklyUseCase
	QueryUC    *query.UseCase
	AuthUC     *auth.UseCase
	JWTSecret  string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))
	adminOnly := RequireRole(entity.RoleAdmin)

	// Escaneos y log de movimientos (protegido)
	scanHandler := NewScanHandler(deps.RecordScan, deps.QueryUC)
	protected.Post("/scans", scanHandler.Record)
	protected.Get("/logs", scanHandler.ListLogs)
	protected.Delete("/logs", adminOnly, scanHandler.ClearLogs)
	protected.Get("/units/:serial/status", scanHandler.GetUnitStatus)

	// Catálogo (protegido; altas y bajas solo admin)
	productHandler := NewProductHandler(deps.CatalogUC, deps.QueryUC)
	products := protected.Group("/products")
	products.Post("/", adminOnly, productHandler.Create)
	products.Get("/", productHandler.List)
	products.Delete("/:id", adminOnly, productHandler.Delete)

	// Existencias y reconciliación (protegido)
	stockHandler := NewStockHandler(deps.Reconciler, deps.QueryUC)
	protected.Get("/summary", stockHandler.GetSummary)
	protected.Post("/reconcile", stockHandler.Reconcile)

	// Reportes (protegido)
	reportHandler := NewReportHandler(deps.WeeklyUC, deps.QueryUC)
	reports := protected.Group("/reports")
	reports.Post("/weekly", reportHandler.GenerateWeekly)
	reports.Get("/weekly", reportHandler.GetWeekly)
	protected.Get("/live-ops", reportHandler.GetLiveOps)

	// Directorios de solo lectura (protegido)
	directoryHandler := NewDirectoryHandler(deps.QueryUC)
	protected.Get("/users", adminOnly, directoryHandler.ListUsers)
	protected.Get("/clients", directoryHandler.ListClients)
}

// sendRawJSON envía una vista ya serializada (tal como salió de la caché) sin
// re-codificarla: los bytes cacheados y los recién calculados son idénticos.
func sendRawJSON(c *fiber.Ctx, raw json.RawMessage) error {
	c.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	return c.Send(raw)
}
