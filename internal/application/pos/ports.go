package pos

import (
	"context"

	"github.com/amr-devops/l10n-sa-edi-pos-direct/internal/domain/entity"
)

// ZATCAPosConfig is the configuration slice returned by the configuration
// collaborator for one POS config: the direct-mode flag, the seller identity
// and optional certificate material. Loaded once, best-effort, at session
// start; QR generation reads it without blocking — a missing load simply
// steers the pipeline into its fallbacks.
type ZATCAPosConfig struct {
	DirectModeEnabled bool
	Seller            entity.Seller
	Certificate       *entity.CertificateData // nil when onboarding is incomplete
}

// ConfigProvider resolves the ZATCA configuration for a POS config id.
// The only error the surrounding system is allowed to see from this module
// comes from here, and callers must treat it as non-fatal to checkout.
type ConfigProvider interface {
	ZATCAConfig(ctx context.Context, posConfigID string) (*ZATCAPosConfig, error)
}

// Capabilities reports the local runtime capabilities required for on-device
// QR generation. Any missing capability forces legacy mode.
type Capabilities struct {
	QRRendering bool // a local QR rendering backend is present
	LocalCrypto bool // a local secure-random/crypto source is present
}

// AllAvailable reports whether every required capability is present.
func (c Capabilities) AllAvailable() bool {
	return c.QRRendering && c.LocalCrypto
}

// CapabilityProber checks the local capabilities. Probing must never error:
// an unavailable capability is reported as false.
type CapabilityProber interface {
	Probe() Capabilities
}

// SessionContext carries the per-session certificate material visible to the
// resolver: a dedicated certificate record scoped to the session, and the
// certificate data attached to the session itself.
type SessionContext struct {
	CertificateRecord *entity.CertificateData
	Certificate       *entity.CertificateData
}
