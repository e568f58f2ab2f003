package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/amr-devops/l10n-sa-edi-pos-direct/internal/application/pos"
	"github.com/amr-devops/l10n-sa-edi-pos-direct/internal/infrastructure/qrimg"
	"github.com/amr-devops/l10n-sa-edi-pos-direct/internal/infrastructure/ubl"
)

// RouterDeps dependencies for the router.
type RouterDeps struct {
	Configs    pos.ConfigProvider
	GenerateQR *pos.GenerateQRUseCase
	Renderer   *qrimg.Renderer
	UBLBuilder *ubl.Builder
	JWTSecret  string
}

// Router registers the API routes.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	posHandler := NewPOSHandler(deps.Configs, deps.GenerateQR, deps.Renderer, deps.UBLBuilder)

	// Protected routes (Bearer token from the POS backend).
	protected := api.Group("/pos", AuthMiddleware(deps.JWTSecret))

	// Any till role may read config and generate receipts.
	tills := protected.Group("/", RequireRole("cashier", "manager"))
	tills.Get("/refund-reasons", posHandler.ListRefundReasons)
	tills.Get("/:configID/zatca-config", posHandler.GetConfig)
	tills.Post("/:configID/orders/qr", posHandler.GenerateQR)
	tills.Post("/:configID/refunds/validate", posHandler.ValidateRefund)

	// Document export is a back-office concern.
	managers := protected.Group("/", RequireRole("manager"))
	managers.Post("/:configID/orders/ubl", posHandler.ExportUBL)
}
