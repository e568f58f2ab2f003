package pos

import (
	"github.com/amr-devops/l10n-sa-edi-pos-direct/internal/domain/entity"
	"github.com/amr-devops/l10n-sa-edi-pos-direct/pkg/zatca"
)

// ShouldUseEnhancedMode decides, per transaction, whether the enhanced
// 9-field QR pipeline applies. Pure predicate, no side effects. Enhanced mode
// requires ALL of:
//
//   - the seller's jurisdiction is the target jurisdiction ("SA")
//   - the direct-mode configuration flag is enabled
//   - the order is a simplified (B2C) invoice
//   - every local generation capability is available
//   - seller name and VAT number are present
//
// Any failed condition fails closed to legacy mode; this function never
// errors, because mode selection must not block receipt printing.
func ShouldUseEnhancedMode(snap *entity.OrderSnapshot, cfg *ZATCAPosConfig, caps Capabilities) bool {
	if snap == nil || cfg == nil {
		return false
	}
	if cfg.Seller.CountryCode != zatca.JurisdictionCode {
		return false
	}
	if !cfg.DirectModeEnabled {
		return false
	}
	if !snap.IsSimplified() {
		return false
	}
	if !caps.AllAvailable() {
		return false
	}
	if cfg.Seller.Name == "" || cfg.Seller.VAT == "" {
		return false
	}
	return true
}
