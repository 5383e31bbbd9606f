package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	appaudit "github.com/jhoicas/CampoStock-api/internal/application/audit"
	"github.com/jhoicas/CampoStock-api/internal/application/auth"
	appcustody "github.com/jhoicas/CampoStock-api/internal/application/custody"
	"github.com/jhoicas/CampoStock-api/internal/application/reconciliation"
	"github.com/jhoicas/CampoStock-api/internal/application/registry"
	"github.com/jhoicas/CampoStock-api/internal/application/usecase"
	infraexcel "github.com/jhoicas/CampoStock-api/internal/infrastructure/excel"
	infrapdf "github.com/jhoicas/CampoStock-api/internal/infrastructure/pdf"
	"github.com/jhoicas/CampoStock-api/internal/infrastructure/postgres"
	httpRouter "github.com/jhoicas/CampoStock-api/internal/interfaces/http"
	"github.com/jhoicas/CampoStock-api/pkg/config"
	"github.com/jhoicas/CampoStock-api/pkg/logger"
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

	companyRepo := postgres.NewCompanyRepository(pool)
	userRepo := postgres.NewUserRepository(pool)
	productRepo := postgres.NewProductRepository(pool)
	serialRepo := postgres.NewSerialUnitRepository(pool)
	auditRepo := postgres.NewAuditRepository(pool)
	custodyRepo := postgres.NewCustodyRepository(pool)
	technicianRepo := postgres.NewTechnicianRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	registryUC := registry.New(serialRepo, productRepo)
	auditUC := appaudit.New(auditRepo, productRepo, serialRepo, registryUC)
	reconcileUC := reconciliation.New(txRunner, productRepo, serialRepo)
	custodyUC := appcustody.New(custodyRepo, technicianRepo, productRepo, serialRepo, registryUC)

	companyUC := usecase.NewCompanyUseCase(companyRepo)
	productUC := usecase.NewProductUseCase(productRepo, registryUC)
	technicianUC := usecase.NewTechnicianUseCase(technicianRepo)
	moduleSvc := usecase.NewModuleService(companyRepo)

	authUC := auth.NewAuthUseCase(userRepo, companyRepo, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})

	// Exportadores de la planilla de custodias
	sheetPDF := infrapdf.NewMarotoSheetGenerator()
	sheetExcel := infraexcel.NewExporter()

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		CompanyUC:      companyUC,
		ProductUC:      productUC,
		TechnicianUC:   technicianUC,
		ModuleSvc:      moduleSvc,
		RegistryUC:     registryUC,
		AuditUC:        auditUC,
		ReconcileUC:    reconcileUC,
		CustodyUC:      custodyUC,
		SheetPDF:       sheetPDF,
		SheetExcel:     sheetExcel,
		InventoryExcel: sheetExcel,
		AuthUC:         authUC,
		JWTSecret:      cfg.JWT.Secret,
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
