package pos

import (
	"fmt"

	"github.com/amr-devops/l10n-sa-edi-pos-direct/internal/domain"
	"github.com/amr-devops/l10n-sa-edi-pos-direct/internal/domain/entity"
	"github.com/amr-devops/l10n-sa-edi-pos-direct/pkg/zatca"
)

// RefundReason is one selectable option of the refund confirmation prompt.
type RefundReason struct {
	Code  string
	Label string
}

// RefundReasonOptions lists the closed set of reason codes in prompt order.
func RefundReasonOptions() []RefundReason {
	opts := make([]RefundReason, 0, len(zatca.RefundReasonCodes))
	for _, code := range zatca.RefundReasonCodes {
		opts = append(opts, RefundReason{Code: code, Label: zatca.RefundReasonLabels[code]})
	}
	return opts
}

// ValidateRefund enforces the direct-mode compliance rule: a refund under
// enhanced mode must carry a valid reason code, whether or not the original
// sale was invoiced. A refund without one must not complete. Sales and
// legacy-mode refunds always pass.
func ValidateRefund(snap *entity.OrderSnapshot, enhanced bool) error {
	if snap == nil {
		return domain.ErrInvalidInput
	}
	if !enhanced || !snap.IsRefund() {
		return nil
	}
	if !zatca.ValidRefundReasonCodes[snap.RefundReason] {
		return fmt.Errorf("%w: order %s", domain.ErrRefundReasonRequired, orderRef(snap))
	}
	return nil
}

// RefundReasonForDocument returns the code and display label embedded in the
// credit-note document. A refund that reached document generation without a
// selected reason defaults to customer request, matching the upstream
// behavior. Returns zero values for non-refunds and legacy mode.
func RefundReasonForDocument(snap *entity.OrderSnapshot, enhanced bool) (code, label string) {
	if snap == nil || !enhanced || !snap.IsRefund() {
		return "", ""
	}
	code = snap.RefundReason
	if !zatca.ValidRefundReasonCodes[code] {
		code = zatca.RefundCustomerRequest
	}
	return code, zatca.RefundReasonLabels[code]
}
