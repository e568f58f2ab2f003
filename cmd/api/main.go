package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/amr-devops/l10n-sa-edi-pos-direct/internal/application/pos"
	domzatca "github.com/amr-devops/l10n-sa-edi-pos-direct/internal/domain/zatca"
	"github.com/amr-devops/l10n-sa-edi-pos-direct/internal/infrastructure/posconfig"
	"github.com/amr-devops/l10n-sa-edi-pos-direct/internal/infrastructure/qrimg"
	"github.com/amr-devops/l10n-sa-edi-pos-direct/internal/infrastructure/ubl"
	httpRouter "github.com/amr-devops/l10n-sa-edi-pos-direct/internal/interfaces/http"
	"github.com/amr-devops/l10n-sa-edi-pos-direct/pkg/config"
	"github.com/amr-devops/l10n-sa-edi-pos-direct/pkg/logger"
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
		Bool("direct_mode", cfg.ZATCA.DirectModeEnabled).
		Msg("starting application")

	// Jurisdiction timezone for QR timestamps. A bad value keeps each
	// order's own timestamp location.
	tz, err := time.LoadLocation(cfg.ZATCA.Timezone)
	if err != nil {
		log.Warn().Err(err).Str("timezone", cfg.ZATCA.Timezone).Msg("invalid timezone, using order timestamps as-is")
		tz = nil
	}

	configProvider := posconfig.NewStaticProvider(cfg.ZATCA, log.Zerolog())
	generateQR := pos.NewGenerateQRUseCase(
		domzatca.NewFingerprintEngine(),
		domzatca.NewSignatureEngine(),
		pos.NewCertificateResolver(),
		qrimg.NewProber(),
		tz,
		log.Zerolog(),
	)

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
		Configs:    configProvider,
		GenerateQR: generateQR,
		Renderer:   qrimg.NewRenderer(qrimg.DefaultSize),
		UBLBuilder: ubl.NewBuilder(),
		JWTSecret:  cfg.JWT.Secret,
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
