package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/amr-devops/l10n-sa-edi-pos-direct/internal/application/dto"
	"github.com/amr-devops/l10n-sa-edi-pos-direct/internal/application/pos"
	"github.com/amr-devops/l10n-sa-edi-pos-direct/internal/domain"
	"github.com/amr-devops/l10n-sa-edi-pos-direct/internal/infrastructure/qrimg"
	"github.com/amr-devops/l10n-sa-edi-pos-direct/internal/infrastructure/ubl"
)

// POSHandler serves the POS client endpoints: ZATCA configuration at session
// start, QR generation for receipts, refund validation and document export.
type POSHandler struct {
	configs    pos.ConfigProvider
	qr         *pos.GenerateQRUseCase
	renderer   *qrimg.Renderer
	ublBuilder *ubl.Builder
}

// NewPOSHandler builds the handler.
func NewPOSHandler(configs pos.ConfigProvider, qr *pos.GenerateQRUseCase, renderer *qrimg.Renderer, ublBuilder *ubl.Builder) *POSHandler {
	return &POSHandler{configs: configs, qr: qr, renderer: renderer, ublBuilder: ublBuilder}
}

// GetConfig returns the ZATCA configuration slice for a POS config.
// GET /api/pos/:configID/zatca-config
func (h *POSHandler) GetConfig(c *fiber.Ctx) error {
	cfg, err := h.configs.ZATCAConfig(c.Context(), c.Params("configID"))
	if err != nil {
		// Config loading is the only fallible call in this module, and the
		// client treats the failure as "direct mode off".
		return c.Status(fiber.StatusServiceUnavailable).JSON(dto.ErrorResponse{Code: "CONFIG_UNAVAILABLE", Message: "ZATCA configuration could not be loaded"})
	}
	return c.JSON(dto.ZATCAConfigResponse{
		DirectModeEnabled: cfg.DirectModeEnabled,
		SellerName:        cfg.Seller.Name,
		SellerVAT:         cfg.Seller.VAT,
		CountryCode:       cfg.Seller.CountryCode,
		HasCertificate:    cfg.Certificate != nil,
	})
}

// GenerateQR generates the receipt QR for a completed order.
// POST /api/pos/:configID/orders/qr?image=true
func (h *POSHandler) GenerateQR(c *fiber.Ctx) error {
	var in dto.OrderSnapshotRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "invalid request body"})
	}
	cfg, err := h.configs.ZATCAConfig(c.Context(), c.Params("configID"))
	if err != nil {
		// Generation never blocks on configuration; legacy fallback.
		cfg = nil
	}

	res := h.qr.Generate(in.ToEntity(), cfg, nil)
	out := dto.QRResponse{
		Payload:     res.Payload,
		Enhanced:    res.Enhanced,
		FieldCount:  res.FieldCount,
		Fingerprint: res.Fingerprint,
		Signature:   res.Signature,
		Status:      res.Status,
	}
	if c.QueryBool("image") {
		if url, err := h.renderer.DataURL(res.Payload); err == nil {
			out.ImageDataURL = url
		}
	}
	return c.JSON(out)
}

// ValidateRefund checks that a refund may complete under the active mode.
// POST /api/pos/:configID/refunds/validate
func (h *POSHandler) ValidateRefund(c *fiber.Ctx) error {
	var in dto.OrderSnapshotRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "invalid request body"})
	}
	cfg, err := h.configs.ZATCAConfig(c.Context(), c.Params("configID"))
	if err != nil {
		cfg = nil
	}

	snap := in.ToEntity()
	enhanced := cfg != nil && cfg.DirectModeEnabled
	if err := pos.ValidateRefund(snap, enhanced); err != nil {
		if errors.Is(err, domain.ErrRefundReasonRequired) {
			return c.Status(fiber.StatusUnprocessableEntity).JSON(dto.ErrorResponse{Code: "REFUND_REASON_REQUIRED", Message: "a valid refund reason is required"})
		}
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "invalid refund"})
	}
	return c.JSON(fiber.Map{"ok": true})
}

// ListRefundReasons returns the selectable refund reasons in prompt order.
// GET /api/pos/refund-reasons
func (h *POSHandler) ListRefundReasons(c *fiber.Ctx) error {
	opts := pos.RefundReasonOptions()
	out := make([]dto.RefundReasonResponse, 0, len(opts))
	for _, o := range opts {
		out = append(out, dto.RefundReasonResponse{Code: o.Code, Label: o.Label})
	}
	return c.JSON(out)
}

// ExportUBL builds the simplified-invoice UBL document for an order,
// embedding the freshly generated QR, and returns it with its canonical hash.
// POST /api/pos/:configID/orders/ubl
func (h *POSHandler) ExportUBL(c *fiber.Ctx) error {
	var in dto.OrderSnapshotRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "invalid request body"})
	}
	cfg, err := h.configs.ZATCAConfig(c.Context(), c.Params("configID"))
	if err != nil {
		cfg = nil
	}

	snap := in.ToEntity()
	res := h.qr.Generate(snap, cfg, nil)

	buildCtx := &ubl.BuildContext{
		Snapshot:  snap,
		Seller:    snap.Seller,
		QRPayload: res.Payload,
	}
	if cfg != nil && cfg.Seller.Name != "" {
		buildCtx.Seller = cfg.Seller
	}
	buildCtx.RefundReasonCode, buildCtx.RefundReasonText = pos.RefundReasonForDocument(snap, res.Enhanced)

	xmlBytes, err := h.ublBuilder.Build(buildCtx)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
	}
	hash, err := ubl.InvoiceHash(xmlBytes)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: "invoice hash failed"})
	}
	return c.JSON(dto.UBLDocumentResponse{
		XML:         string(xmlBytes),
		InvoiceHash: hash,
		QRPayload:   res.Payload,
	})
}
