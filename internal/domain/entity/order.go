package entity

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/amr-devops/l10n-sa-edi-pos-direct/pkg/zatca"
)

// ZATCA lifecycle statuses of a POS order under direct mode.
const (
	ZATCAStatusLegacy    = "legacy"    // pre-module order, never processed
	ZATCAStatusPending   = "pending"   // awaiting local generation
	ZATCAStatusGenerated = "generated" // QR generated locally at the till
	ZATCAStatusQueued    = "queued"    // scheduled for reporting
	ZATCAStatusSubmitted = "submitted" // accepted by the authority
	ZATCAStatusError     = "error"     // rejected or failed
)

// OrderSnapshot is the immutable view of a completed POS transaction at the
// moment of receipt generation. It is owned by the calling receipt context;
// the QR pipeline only reads it.
type OrderSnapshot struct {
	ID            string // transaction UUID
	Reference     string // human-readable POS reference, e.g. "Order 00012-003-0001"
	InvoiceNumber string
	IssuedAt      time.Time
	Seller        Seller
	Customer      *Customer // nil = walk-in cash sale
	Lines         []OrderLine
	Payments      []Payment

	NetTotal   decimal.Decimal // total before VAT
	TaxTotal   decimal.Decimal // VAT amount
	GrossTotal decimal.Decimal // total including VAT

	RefundedOrderRef  string    // reference of the refunded order, if any
	RefundedOrderDate time.Time // issue date of the refunded order
	RefundReason      string    // one of zatca.RefundReasonCodes
	ZATCAStatus       string
}

// OrderLine is one sold item. Derived from the POS order, not separately
// persisted.
type OrderLine struct {
	Number      int // 1-based position on the receipt
	ProductName string
	Quantity    decimal.Decimal
	UnitPrice   decimal.Decimal
	NetTotal    decimal.Decimal // line total before VAT
	GrossTotal  decimal.Decimal // line total including VAT
	TaxAmount   decimal.Decimal
	TaxRate     decimal.Decimal // effective rate, percent
}

// Payment is one payment record attached to the order.
type Payment struct {
	Method string
	Amount decimal.Decimal
}

// IsSimplified reports whether the order produces a simplified (B2C) invoice:
// no customer attached, or the customer is an individual person rather than
// an organization.
func (o *OrderSnapshot) IsSimplified() bool {
	return o.Customer == nil || o.Customer.Classification != ClassificationOrganization
}

// IsRefund reports whether the order is a refund: it references a refunded
// order, or its gross total is negative.
func (o *OrderSnapshot) IsRefund() bool {
	return o.RefundedOrderRef != "" || o.GrossTotal.IsNegative()
}

// InvoiceTypeCode returns the UBL type code: 381 for credit notes, 388 for
// standard tax invoices.
func (o *OrderSnapshot) InvoiceTypeCode() int {
	if o.IsRefund() {
		return zatca.InvoiceTypeCreditNote
	}
	return zatca.InvoiceTypeStandard
}

// BillingReference identifies the refunded order on a credit note.
type BillingReference struct {
	ID        string
	IssueDate string // YYYY-MM-DD
}

// BillingReference returns the credit-note reference, or nil for sales and
// for refunds whose original order is unknown.
func (o *OrderSnapshot) BillingReference() *BillingReference {
	if !o.IsRefund() || o.RefundedOrderRef == "" {
		return nil
	}
	return &BillingReference{
		ID:        o.RefundedOrderRef,
		IssueDate: o.RefundedOrderDate.Format("2006-01-02"),
	}
}
