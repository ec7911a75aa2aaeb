package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/jhoicas/Trazabilidad-api/internal/application/auth"
	"github.com/jhoicas/Trazabilidad-api/internal/application/catalog"
	"github.com/jhoicas/Trazabilidad-api/internal/application/ports"
	"github.com/jhoicas/Trazabilidad-api/internal/application/query"
	"github.com/jhoicas/Trazabilidad-api/internal/application/report"
	"github.com/jhoicas/Trazabilidad-api/internal/application/scan"
	"github.com/jhoicas/Trazabilidad-api/internal/application/stock"
	"github.com/jhoicas/Trazabilidad-api/internal/infrastructure/cache"
	"github.com/jhoicas/Trazabilidad-api/internal/infrastructure/postgres"
	httpRouter "github.com/jhoicas/Trazabilidad-api/internal/interfaces/http"
	"github.com/jhoicas/Trazabilidad-api/internal/metrics"
	"github.com/jhoicas/Trazabilidad-api/pkg/config"
	"github.com/jhoicas/Trazabilidad-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: "info",
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	m := metrics.NewRegistry()

	// Caché de vistas: Redis compartido si está configurado, memoria del
	// proceso si no. En ambos casos instrumentada con contadores hit/miss.
	var viewCache ports.Cache
	if cfg.Cache.RedisAddr != "" {
		redisCache, err := cache.NewRedis(cfg.Cache.RedisAddr, cfg.Cache.RedisPassword, cfg.Cache.RedisDB, log.Zerolog())
		if err != nil {
			log.Fatal().Err(err).Msg("conexión a Redis")
		}
		viewCache = redisCache
		log.Info().Str("addr", cfg.Cache.RedisAddr).Msg("caché de vistas en Redis")
	} else {
		viewCache = cache.NewMemory()
		log.Info().Msg("caché de vistas en memoria")
	}
	viewCache = cache.NewInstrumented(viewCache, m.CacheHits, m.CacheMisses)

	eventRepo := postgres.NewScanEventRepository(pool)
	productRepo := postgres.NewProductRepository(pool)
	stockRepo := postgres.NewStockLevelRepository(pool)
	statusRepo := postgres.NewUnitStatusRepository(pool)
	userRepo := postgres.NewUserRepository(pool)
	clientRepo := postgres.NewB2BClientRepository(pool)
	reportRepo := postgres.NewWeeklyReportRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	reconciler := stock.NewReconciler(productRepo, stockRepo, viewCache, m, log.Zerolog())
	recordScanUC := scan.NewRecordScanUseCase(
		eventRepo, statusRepo, productRepo, stockRepo,
		reconciler, txRunner, viewCache, m, log.Zerolog(),
	)
	catalogUC := catalog.NewUseCase(productRepo, stockRepo, reconciler, viewCache, log.Zerolog())
	weeklyUC := report.NewWeeklyUseCase(eventRepo, productRepo, reportRepo, viewCache, log.Zerolog())
	queryUC := query.NewUseCase(
		eventRepo, productRepo, stockRepo, statusRepo,
		userRepo, clientRepo, reportRepo, viewCache,
	).WithTTL(time.Duration(cfg.Cache.TTLSeconds) * time.Second)
	authUC := auth.NewUseCase(userRepo, viewCache, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})

	// Pasada inicial: garantiza una fila de existencias por producto antes de
	// servir tráfico.
	if result, err := reconciler.Reconcile(ctx); err != nil {
		log.Error().Err(err).Msg("reconciliación inicial")
	} else if result.NewRecordsAdded > 0 {
		log.Info().Int("nuevos", result.NewRecordsAdded).Msg("reconciliación inicial completó la vista de existencias")
	}

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Trazabilidad API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})
	app.Get("/metrics", adaptor.HTTPHandler(m.Handler()))

	httpRouter.Router(app, httpRouter.RouterDeps{
		RecordScan: recordScanUC,
		CatalogUC:  catalogUC,
		Reconciler: reconciler,
		WeeklyUC:   weeklyUC,
		QueryUC:    queryUC,
		AuthUC:     authUC,
		JWTSecret:  cfg.JWT.Secret,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
