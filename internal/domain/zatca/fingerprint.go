package zatca

import (
	"time"

	"github.com/amr-devops/l10n-sa-edi-pos-direct/internal/domain/entity"
	pkgzatca "github.com/amr-devops/l10n-sa-edi-pos-direct/pkg/zatca"
)

// FingerprintEngine derives the fixed-length invoice fingerprint from the
// canonical form. The fingerprint is a deterministic base64-derived encoding,
// NOT a cryptographic hash; downstream verification depends on this exact
// weak behavior during the transition period.
type FingerprintEngine struct {
	now func() time.Time
}

// NewFingerprintEngine creates the engine with the wall clock.
func NewFingerprintEngine() *FingerprintEngine {
	return &FingerprintEngine{now: time.Now}
}

// NewFingerprintEngineWithClock creates the engine with an injected clock so
// tests can pin the time-seeded fallback branch.
func NewFingerprintEngineWithClock(now func() time.Time) *FingerprintEngine {
	return &FingerprintEngine{now: now}
}

// Compute returns the 64-character fingerprint of the canonical form.
// Identical canonical input always yields an identical fingerprint.
//
// When the canonical form is unusable (empty, or empty after the
// alphanumeric strip), Compute falls back to encoding {transaction id,
// seller VAT, gross total, current wall-clock time}. The fallback embeds the
// clock and is therefore NOT stable across re-generation; it only exists so
// a receipt can still print.
func (e *FingerprintEngine) Compute(canonical string, snap *entity.OrderSnapshot) string {
	if canonical != "" {
		if fp := pkgzatca.EncodeAlnum(canonical, pkgzatca.FingerprintLen); fp != "" {
			return fp
		}
	}
	return e.fallback(snap)
}

func (e *FingerprintEngine) fallback(snap *entity.OrderSnapshot) string {
	var id, vat, total string
	if snap != nil {
		id = snap.ID
		vat = snap.Seller.VAT
		total = snap.GrossTotal.StringFixed(2)
	}
	seed := id + vat + total + e.now().UTC().Format(time.RFC3339)
	return pkgzatca.EncodeAlnum(seed, pkgzatca.FingerprintLen)
}
