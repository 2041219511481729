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
	"github.com/thesarya/expense/internal/application/attachments"
	"github.com/thesarya/expense/internal/application/auth"
	"github.com/thesarya/expense/internal/application/category"
	"github.com/thesarya/expense/internal/application/expense"
	"github.com/thesarya/expense/internal/application/insights"
	"github.com/thesarya/expense/internal/application/inventory"
	"github.com/thesarya/expense/internal/application/reports"
	infraexcel "github.com/thesarya/expense/internal/infrastructure/excel"
	infragcs "github.com/thesarya/expense/internal/infrastructure/gcs"
	infrapdf "github.com/thesarya/expense/internal/infrastructure/pdf"
	"github.com/thesarya/expense/internal/infrastructure/postgres"
	httpRouter "github.com/thesarya/expense/internal/interfaces/http"
	"github.com/thesarya/expense/pkg/config"
	"github.com/thesarya/expense/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("load configuration: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: "info",
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("starting application")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("PostgreSQL connection")
	}
	defer pool.Close()

	userRepo := postgres.NewUserRepository(pool)
	expenseRepo := postgres.NewExpenseRepository(pool)
	inventoryRepo := postgres.NewInventoryRepository(pool)
	categoryRepo := postgres.NewCategoryRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	authUC := auth.NewAuthUseCase(userRepo, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})
	expenseUC := expense.NewUseCase(expenseRepo, userRepo)
	inventoryUC := inventory.NewUseCase(inventoryRepo, txRunner)
	insightsUC := insights.NewUseCase(expenseRepo, inventoryRepo)
	categoryUC := category.NewUseCase(categoryRepo)
	reportsUC := reports.NewUseCase(
		expenseRepo,
		infrapdf.NewBalanceSheetGenerator(),
		infraexcel.NewBalanceSheetWriter(),
	)

	// Attachments need a bucket; without one the routes answer 503.
	var attachmentUC *attachments.UseCase
	if cfg.Storage.Bucket != "" {
		store, err := infragcs.NewStore(ctx, cfg.Storage)
		if err != nil {
			log.Fatal().Err(err).Msg("GCS bucket")
		}
		defer store.Close()
		attachmentUC = attachments.NewUseCase(store, cfg.Storage.MaxUploadBytes)
	} else {
		log.Warn().Msg("GCS_BUCKET not set, attachment uploads disabled")
	}

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI locally: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Centre Tracker API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:       authUC,
		ExpenseUC:    expenseUC,
		InventoryUC:  inventoryUC,
		InsightsUC:   insightsUC,
		ReportsUC:    reportsUC,
		CategoryUC:   categoryUC,
		AttachmentUC: attachmentUC,
		JWTSecret:    cfg.JWT.Secret,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("HTTP server stopped")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutdown signal received, stopping server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("server shutdown")
	}

	log.Info().Msg("application stopped")
}
