package pos

import (
	"time"

	"github.com/amr-devops/l10n-sa-edi-pos-direct/internal/domain/entity"
	"github.com/amr-devops/l10n-sa-edi-pos-direct/pkg/zatca"
)

// CertificateSources are the prioritized places certificate material may
// live, highest priority first.
type CertificateSources struct {
	SessionRecord   *entity.CertificateData // dedicated record scoped to the session
	Config          *entity.CertificateData // POS configuration's attached material
	SessionAttached *entity.CertificateData // active session's attached material
}

// CertificateResolver locates the public key and the certificate-identifying
// value for QR tags 8 and 9. Resolution happens lazily at QR-generation time
// and is never cached here; caching, if any, belongs to the configuration
// collaborator.
//
// A missing certificate is a normal condition, not an error: the resolver
// always produces a value, degrading to derived placeholders.
type CertificateResolver struct {
	now func() time.Time
}

// NewCertificateResolver creates the resolver with the wall clock.
func NewCertificateResolver() *CertificateResolver {
	return &CertificateResolver{now: time.Now}
}

// NewCertificateResolverWithClock creates the resolver with an injected
// clock for the last-tier time-seeded placeholders.
func NewCertificateResolverWithClock(now func() time.Time) *CertificateResolver {
	return &CertificateResolver{now: now}
}

// Resolve walks the sources in priority order, independently for the public
// key and for the identifying value. Found values are truncated to 88
// characters. When nothing matches, each value falls back to a placeholder
// derived from its marker and the seller's VAT number (64 chars); without a
// VAT number the placeholder seeds from the wall clock instead (32 chars,
// non-deterministic — the documented last tier).
func (r *CertificateResolver) Resolve(src CertificateSources, sellerVAT string) entity.CertificateContext {
	ordered := []*entity.CertificateData{src.SessionRecord, src.Config, src.SessionAttached}

	var publicKey, ident string
	for _, s := range ordered {
		if publicKey == "" && s != nil && s.PublicKey != "" {
			publicKey = truncate(s.PublicKey, zatca.SignatureLen)
		}
		if ident == "" && s != nil && s.Ident() != "" {
			ident = truncate(s.Ident(), zatca.SignatureLen)
		}
	}

	if publicKey == "" {
		publicKey = r.placeholder(zatca.PublicKeyMarker, sellerVAT)
	}
	if ident == "" {
		ident = r.placeholder(zatca.CertIdentMarker, sellerVAT)
	}
	return entity.CertificateContext{PublicKey: publicKey, Ident: ident}
}

func (r *CertificateResolver) placeholder(marker, sellerVAT string) string {
	if sellerVAT != "" {
		return zatca.EncodeAlnum(marker+sellerVAT, zatca.FingerprintLen)
	}
	// Time-seeded last tier: not stable across re-generation.
	return zatca.EncodeAlnum(marker+r.now().UTC().Format(time.RFC3339), zatca.PlaceholderTailLen)
}

func truncate(s string, max int) string {
	if len(s) > max {
		return s[:max]
	}
	return s
}
