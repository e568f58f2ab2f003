package zatca

// =============================================================================
// Refund reason codes (credit notes, simplified invoices)
// A refund processed under direct mode must carry one of these codes, whether
// or not the original sale was invoiced.
// =============================================================================

const (
	RefundDescError       = "DESC_ERROR"       // Description error
	RefundQtyError        = "QTY_ERROR"        // Quantity error
	RefundPriceError      = "PRICE_ERROR"      // Price error
	RefundProductDefect   = "PRODUCT_DEFECT"   // Product defect
	RefundCustomerRequest = "CUSTOMER_REQUEST" // Cancellation at customer request
	RefundOtherReason     = "OTHER_REASON"     // Other reasons
)

// ValidRefundReasonCodes contains the closed set of accepted refund reasons.
var ValidRefundReasonCodes = map[string]bool{
	RefundDescError:       true,
	RefundQtyError:        true,
	RefundPriceError:      true,
	RefundProductDefect:   true,
	RefundCustomerRequest: true,
	RefundOtherReason:     true,
}

// RefundReasonLabels maps each code to its bilingual display label, as shown
// on the refund confirmation prompt and in the credit-note instruction note.
var RefundReasonLabels = map[string]string{
	RefundDescError:       "Description Error - عيب في الوصف",
	RefundQtyError:        "Quantity Error - خطأ في الكمية",
	RefundPriceError:      "Price Error - خطأ في السعر",
	RefundProductDefect:   "Product Defect - عطل في المنتج",
	RefundCustomerRequest: "Customer Cancellation - إلغاء بطلب العميل",
	RefundOtherReason:     "Other Reasons - أسباب أخرى",
}

// RefundReasonCodes lists the codes in prompt order.
var RefundReasonCodes = []string{
	RefundDescError,
	RefundQtyError,
	RefundPriceError,
	RefundProductDefect,
	RefundCustomerRequest,
	RefundOtherReason,
}

// =============================================================================
// UBL invoice type codes (UN/CEFACT 1001 subset used by ZATCA)
// =============================================================================

const (
	InvoiceTypeStandard   = 388 // Tax invoice
	InvoiceTypeCreditNote = 381 // Credit note (refund)
)

// InvoiceTypeNameSimplified is the InvoiceTypeCode @name attribute marking a
// simplified (B2C) document.
const InvoiceTypeNameSimplified = "0200000"

// =============================================================================
// Invoice chain
// =============================================================================

// PreviousInvoiceHashSeed is the default previous-invoice hash for the first
// simplified invoice in a chain (base64 of the sha256 hex of "0").
const PreviousInvoiceHashSeed = "NWZlY2ViNjZmZmM4NmYzOGQ5NTI3ODZjNmQ2OTZjNzljMmRiYzIzOWRkNGU5MWI0NjcyOWQ3M2EyN2ZiNTdlOQ=="

// JurisdictionCode is the country code gating direct mode.
const JurisdictionCode = "SA"
