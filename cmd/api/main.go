package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/shopspring/decimal"

	appbom "github.com/Macruz95/zadia-os-api/internal/application/bom"
	"github.com/Macruz95/zadia-os-api/internal/application/inventory"
	"github.com/Macruz95/zadia-os-api/internal/application/production"
	"github.com/Macruz95/zadia-os-api/internal/application/usecase"
	dombom "github.com/Macruz95/zadia-os-api/internal/domain/bom"
	infrapdf "github.com/Macruz95/zadia-os-api/internal/infrastructure/pdf"
	"github.com/Macruz95/zadia-os-api/internal/infrastructure/postgres"
	httpRouter "github.com/Macruz95/zadia-os-api/internal/interfaces/http"
	"github.com/Macruz95/zadia-os-api/pkg/config"
	"github.com/Macruz95/zadia-os-api/pkg/logger"
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

	materialRepo := postgres.NewRawMaterialRepository(pool)
	productRepo := postgres.NewFinishedProductRepository(pool)
	bomRepo := postgres.NewBOMRepository(pool)
	movementRepo := postgres.NewInventoryMovementRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	policy := bomPolicy(cfg.BOM, log)
	costSvc := dombom.NewCostService(materialRepo, policy, log.Zerolog())
	feasSvc := dombom.NewFeasibilityService(materialRepo, log.Zerolog())

	materialUC := usecase.NewRawMaterialUseCase(materialRepo)
	productUC := usecase.NewFinishedProductUseCase(productRepo)
	bomUC := appbom.NewUseCase(bomRepo, productRepo, materialRepo, costSvc, feasSvc, policy)
	bomPDFUC := appbom.NewPDFUseCase(bomRepo, costSvc, infrapdf.NewMarotoCostSheetGenerator())
	registerMovementUC := inventory.NewRegisterMovementUseCase(txRunner)
	movementHistoryUC := inventory.NewMovementHistoryUseCase(movementRepo)
	executeProductionUC := production.NewExecuteProductionUseCase(txRunner, bomRepo, policy)

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
		Title:    "ZADIA OS API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		RawMaterialUC:     materialUC,
		FinishedProductUC: productUC,
		BOMUC:             bomUC,
		BOMPDFUC:          bomPDFUC,
		RegisterMovement:  registerMovementUC,
		MovementHistory:   movementHistoryUC,
		ExecuteProduction: executeProductionUC,
		JWTSecret:         cfg.JWT.Secret,
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

// bomPolicy construye la política de validación de BOMs desde la configuración;
// un valor no numérico cae al default y queda registrado.
func bomPolicy(cfg config.BOMConfig, log *logger.Logger) dombom.Policy {
	policy := dombom.DefaultPolicy()
	if v, err := decimal.NewFromString(cfg.HighCostThreshold); err == nil {
		policy.HighCostThreshold = v
	} else {
		log.Warn().Str("valor", cfg.HighCostThreshold).Msg("BOM_HIGH_COST_THRESHOLD inválido, usando default")
	}
	if v, err := decimal.NewFromString(cfg.HighQuantityThreshold); err == nil {
		policy.HighQuantityThreshold = v
	} else {
		log.Warn().Str("valor", cfg.HighQuantityThreshold).Msg("BOM_HIGH_QTY_THRESHOLD inválido, usando default")
	}
	return policy
}
