// Package zatca contains reusable primitives for ZATCA (KSA) simplified
// e-invoicing: the TLV QR codec, the weak deterministic text transform used
// by the local fingerprint/signature chain, regulatory catalogues and VAT
// registration number validation.
package zatca

import (
	"encoding/base64"
	"strings"
)

// Fixed truncation lengths of the local generation chain.
const (
	FingerprintLen     = 64 // fingerprint and first-tier fallbacks
	SignatureLen       = 88 // signature body and resolved certificate fields
	PlaceholderTailLen = 32 // last-tier time-seeded placeholders
)

// SignatureScheme prefixes locally generated signatures to distinguish them
// from raw hashes.
const SignatureScheme = "ZATCA:"

// Placeholder markers for certificate fields derived without real
// certificate material.
const (
	PublicKeyMarker = "ZATCA-PK:"
	CertIdentMarker = "ZATCA-CERT:"
)

// EncodeAlnum encodes s as standard base64 over its UTF-8 bytes, strips every
// character outside [0-9A-Za-z] and truncates the result to at most maxLen
// characters. Deterministic for a fixed input. Explicitly NOT a cryptographic
// hash: collision-prone by construction, kept for wire compatibility with the
// local/offline generation mode.
func EncodeAlnum(s string, maxLen int) string {
	b64 := base64.StdEncoding.EncodeToString([]byte(s))
	var b strings.Builder
	b.Grow(maxLen)
	for i := 0; i < len(b64) && b.Len() < maxLen; i++ {
		if isAlnum(b64[i]) {
			b.WriteByte(b64[i])
		}
	}
	return b.String()
}

func isAlnum(c byte) bool {
	return (c >= '0' && c <= '9') || (c >= 'A' && c <= 'Z') || (c >= 'a' && c <= 'z')
}
