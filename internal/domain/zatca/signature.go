package zatca

import (
	"encoding/json"
	"time"

	"github.com/amr-devops/l10n-sa-edi-pos-direct/internal/domain/entity"
	pkgzatca "github.com/amr-devops/l10n-sa-edi-pos-direct/pkg/zatca"
)

// signingInput is the record the signature is derived from. Struct fields
// serialize in declaration order, which fixes the key order on the wire.
type signingInput struct {
	Fingerprint string `json:"fingerprint"`
	VATNumber   string `json:"vat_number"`
	Timestamp   string `json:"timestamp"`
	Reference   string `json:"reference"`
	Amount      string `json:"amount"`
}

// SignatureEngine derives the deterministic local "signature" from the
// fingerprint plus transaction metadata. Like the fingerprint this is NOT an
// asymmetric signature — it is the documented offline stand-in, prefixed
// with a scheme tag to distinguish it from a raw hash.
type SignatureEngine struct {
	now func() time.Time
}

// NewSignatureEngine creates the engine with the wall clock.
func NewSignatureEngine() *SignatureEngine {
	return &SignatureEngine{now: time.Now}
}

// NewSignatureEngineWithClock creates the engine with an injected clock.
func NewSignatureEngineWithClock(now func() time.Time) *SignatureEngine {
	return &SignatureEngine{now: now}
}

// Sign builds the signing record {fingerprint, VAT, issue timestamp,
// reference, amount}, encodes it through the alphanumeric transform,
// truncates to 88 characters and prefixes the scheme tag. A zero issue
// timestamp is replaced by the current time (time-seeded branch).
//
// On failure it falls back to encoding {VAT, reference, amount} directly:
// no fingerprint, no scheme prefix, 64 characters.
func (e *SignatureEngine) Sign(fingerprint string, snap *entity.OrderSnapshot) string {
	if snap == nil {
		return ""
	}
	if fingerprint == "" {
		return e.fallback(snap)
	}

	ts := snap.IssuedAt
	if ts.IsZero() {
		ts = e.now()
	}
	in := signingInput{
		Fingerprint: fingerprint,
		VATNumber:   snap.Seller.VAT,
		Timestamp:   ts.Format(time.RFC3339),
		Reference:   referenceOf(snap),
		Amount:      snap.GrossTotal.StringFixed(2),
	}
	raw, err := json.Marshal(in)
	if err != nil {
		return e.fallback(snap)
	}
	body := pkgzatca.EncodeAlnum(string(raw), pkgzatca.SignatureLen)
	if body == "" {
		return e.fallback(snap)
	}
	return pkgzatca.SignatureScheme + body
}

func (e *SignatureEngine) fallback(snap *entity.OrderSnapshot) string {
	seed := snap.Seller.VAT + referenceOf(snap) + snap.GrossTotal.StringFixed(2)
	return pkgzatca.EncodeAlnum(seed, pkgzatca.FingerprintLen)
}

// referenceOf prefers the POS reference over the invoice number.
func referenceOf(snap *entity.OrderSnapshot) string {
	if snap.Reference != "" {
		return snap.Reference
	}
	return snap.InvoiceNumber
}
