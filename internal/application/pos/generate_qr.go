package pos

import (
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/amr-devops/l10n-sa-edi-pos-direct/internal/domain/entity"
	domzatca "github.com/amr-devops/l10n-sa-edi-pos-direct/internal/domain/zatca"
	"github.com/amr-devops/l10n-sa-edi-pos-direct/pkg/zatca"
)

// QRResult is the outcome of one QR generation.
type QRResult struct {
	Payload     string // base64-rendered TLV buffer, ready for the barcode
	Enhanced    bool   // true when the 9-field pipeline ran
	FieldCount  int    // 5 (legacy) or 9 (enhanced)
	Fingerprint string // empty on the legacy path
	Signature   string // empty on the legacy path
	Status      string // suggested ZATCA status for the order
}

// GenerateQRUseCase runs the tamper-evident QR pipeline for a completed POS
// transaction:
//
//	snapshot → canonical form → fingerprint → signature
//	                          → certificate resolution → TLV → base64
//
// The mode selector gates the pipeline at the entry point: the legacy 5-field
// path never touches canonicalization, the engines or the resolver. Every
// stage is synchronous and total — generation runs inline during receipt
// rendering and must never block or fail checkout.
type GenerateQRUseCase struct {
	fingerprints *domzatca.FingerprintEngine
	signatures   *domzatca.SignatureEngine
	certificates *CertificateResolver
	prober       CapabilityProber
	timezone     *time.Location
	log          zerolog.Logger
}

// NewGenerateQRUseCase wires the pipeline. timezone is the jurisdiction
// timezone used for the QR timestamp field; pass nil to keep each order's
// own timestamp location.
func NewGenerateQRUseCase(
	fingerprints *domzatca.FingerprintEngine,
	signatures *domzatca.SignatureEngine,
	certificates *CertificateResolver,
	prober CapabilityProber,
	timezone *time.Location,
	log zerolog.Logger,
) *GenerateQRUseCase {
	return &GenerateQRUseCase{
		fingerprints: fingerprints,
		signatures:   signatures,
		certificates: certificates,
		prober:       prober,
		timezone:     timezone,
		log:          log,
	}
}

// Generate produces the QR payload for the snapshot. Idempotent for
// identical inputs outside the documented time-seeded fallback branches.
func (uc *GenerateQRUseCase) Generate(snap *entity.OrderSnapshot, cfg *ZATCAPosConfig, session *SessionContext) QRResult {
	caps := uc.prober.Probe()
	if !ShouldUseEnhancedMode(snap, cfg, caps) {
		res := uc.legacy(snap, cfg)
		uc.log.Debug().
			Str("order", orderRef(snap)).
			Bool("capabilities", caps.AllAvailable()).
			Msg("legacy QR generated")
		return res
	}
	res := uc.enhanced(snap, cfg, session)
	uc.log.Debug().
		Str("order", orderRef(snap)).
		Int("fields", res.FieldCount).
		Msg("enhanced QR generated")
	return res
}

// legacy emits the 5-field payload. Seller identity comes from the snapshot
// when configuration never arrived (the accepted session-start race).
func (uc *GenerateQRUseCase) legacy(snap *entity.OrderSnapshot, cfg *ZATCAPosConfig) QRResult {
	fields := uc.baseFields(snap, cfg)
	return QRResult{
		Payload:    zatca.EncodeBase64(fields),
		Enhanced:   false,
		FieldCount: len(fields),
		Status:     entity.ZATCAStatusLegacy,
	}
}

func (uc *GenerateQRUseCase) enhanced(snap *entity.OrderSnapshot, cfg *ZATCAPosConfig, session *SessionContext) QRResult {
	canonical := domzatca.CanonicalOrFallback(snap)
	fingerprint := uc.fingerprints.Compute(canonical, snap)
	signature := uc.signatures.Sign(fingerprint, snap)

	sources := CertificateSources{Config: cfg.Certificate}
	if session != nil {
		sources.SessionRecord = session.CertificateRecord
		sources.SessionAttached = session.Certificate
	}
	cert := uc.certificates.Resolve(sources, cfg.Seller.VAT)

	fields := append(uc.baseFields(snap, cfg),
		zatca.Field{Tag: zatca.TagInvoiceHash, Value: fingerprint},
		zatca.Field{Tag: zatca.TagSignature, Value: signature},
		zatca.Field{Tag: zatca.TagPublicKey, Value: cert.PublicKey},
		zatca.Field{Tag: zatca.TagCertIdent, Value: cert.Ident},
	)
	return QRResult{
		Payload:     zatca.EncodeBase64(fields),
		Enhanced:    true,
		FieldCount:  len(fields),
		Fingerprint: fingerprint,
		Signature:   signature,
		Status:      entity.ZATCAStatusGenerated,
	}
}

// baseFields builds tags 1-5, shared by both modes. Refund amounts are
// emitted as absolute values so the QR matches the credit-note document.
func (uc *GenerateQRUseCase) baseFields(snap *entity.OrderSnapshot, cfg *ZATCAPosConfig) []zatca.Field {
	var sellerName, sellerVAT string
	var issuedAt time.Time
	total, tax := decimal.Zero, decimal.Zero
	if snap != nil {
		sellerName = snap.Seller.Name
		sellerVAT = snap.Seller.VAT
		issuedAt = snap.IssuedAt
		total, tax = snap.GrossTotal, snap.TaxTotal
		if snap.IsRefund() {
			total, tax = total.Abs(), tax.Abs()
		}
	}
	if cfg != nil {
		if cfg.Seller.Name != "" {
			sellerName = cfg.Seller.Name
		}
		if cfg.Seller.VAT != "" {
			sellerVAT = cfg.Seller.VAT
		}
	}
	return []zatca.Field{
		{Tag: zatca.TagSellerName, Value: sellerName},
		{Tag: zatca.TagVATNumber, Value: sellerVAT},
		{Tag: zatca.TagTimestamp, Value: uc.formatTimestamp(issuedAt)},
		{Tag: zatca.TagTotalWithVAT, Value: total.StringFixed(2)},
		{Tag: zatca.TagVATTotal, Value: tax.StringFixed(2)},
	}
}

// formatTimestamp renders the issue timestamp in the jurisdiction timezone.
// The trailing Z is a fixed literal of the wire format, kept regardless of
// the actual offset for compatibility with deployed verifiers.
func (uc *GenerateQRUseCase) formatTimestamp(t time.Time) string {
	if uc.timezone != nil {
		t = t.In(uc.timezone)
	}
	return t.Format("2006-01-02T15:04:05") + "Z"
}

func orderRef(snap *entity.OrderSnapshot) string {
	if snap == nil {
		return ""
	}
	if snap.Reference != "" {
		return snap.Reference
	}
	return snap.ID
}
