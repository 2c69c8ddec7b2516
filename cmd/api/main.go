// @title        Obras API
// @version      1.0
// @description  Libro de proveedores y subcontratistas por obra: facturas, pagos y resúmenes.
// @BasePath     /
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

	"github.com/jhoicas/Obras-api/docs"
	appledger "github.com/jhoicas/Obras-api/internal/application/ledger"
	infrapdf "github.com/jhoicas/Obras-api/internal/infrastructure/pdf"
	"github.com/jhoicas/Obras-api/internal/infrastructure/postgres"
	httpRouter "github.com/jhoicas/Obras-api/internal/interfaces/http"
	"github.com/jhoicas/Obras-api/pkg/config"
	"github.com/jhoicas/Obras-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.Log.Level,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("default_vat_percent", cfg.Ledger.DefaultVATPercent.String()).
		Str("currency", cfg.Ledger.Currency).
		Msg("iniciando aplicación")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	if cfg.DB.AutoMigrate {
		if err := postgres.ApplySchema(ctx, pool); err != nil {
			log.Fatal().Err(err).Msg("aplicar esquema")
		}
		log.Info().Msg("esquema del libro aplicado")
	}

	repos := postgres.NewRepos(pool)
	txRunner := postgres.NewTxRunner(pool)
	vat := appledger.NewVATResolver(postgres.NewSettingsRepository(pool), cfg.Ledger.DefaultVATPercent)

	recomputeUC := appledger.NewRecomputeUseCase(txRunner, log)
	invoiceUC := appledger.NewInvoiceUseCase(txRunner, repos, vat, recomputeUC, log)
	paymentUC := appledger.NewPaymentUseCase(txRunner, repos, vat, recomputeUC, log)
	summaryUC := appledger.NewSummaryUseCase(repos, vat)

	// PDF: estado de cuenta del proveedor
	statementUC := appledger.NewStatementUseCase(summaryUC, infrapdf.NewMarotoStatementGenerator(), cfg.Ledger.Currency)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath:    "/",
		FileContent: []byte(docs.SwaggerInfo.ReadDoc()),
		Path:        "docs",
		Title:       "Obras API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		if err := pool.Ping(c.UserContext()); err != nil {
			return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"status": "db_unavailable", "service": cfg.App.Name})
		}
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		Invoices:  invoiceUC,
		Payments:  paymentUC,
		Summary:   summaryUC,
		Statement: statementUC,
		Recompute: recomputeUC,
		Log:       log,
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
