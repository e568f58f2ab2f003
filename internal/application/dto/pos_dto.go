package dto

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/amr-devops/l10n-sa-edi-pos-direct/internal/domain/entity"
)

// OrderSnapshotRequest is the POS client's view of a completed transaction,
// posted for QR generation, refund validation or document export.
type OrderSnapshotRequest struct {
	ID                string             `json:"id"`
	Reference         string             `json:"reference"`
	InvoiceNumber     string             `json:"invoice_number"`
	IssuedAt          time.Time          `json:"issued_at"`
	SellerName        string             `json:"seller_name"`
	SellerVAT         string             `json:"seller_vat"`
	SellerCountryCode string             `json:"seller_country_code"`
	Customer          *CustomerRequest   `json:"customer,omitempty"`
	Lines             []OrderLineRequest `json:"lines"`
	Payments          []PaymentRequest   `json:"payments"`
	NetTotal          decimal.Decimal    `json:"net_total"`
	TaxTotal          decimal.Decimal    `json:"tax_total"`
	GrossTotal        decimal.Decimal    `json:"gross_total"`
	RefundedOrderRef  string             `json:"refunded_order_ref,omitempty"`
	RefundedOrderDate time.Time          `json:"refunded_order_date,omitempty"`
	RefundReason      string             `json:"refund_reason,omitempty"`
}

// CustomerRequest is the optional buyer attached to the order.
type CustomerRequest struct {
	ID             string `json:"id"`
	Name           string `json:"name"`
	TaxID          string `json:"tax_id,omitempty"`
	Classification string `json:"classification"` // "individual" | "organization"
}

// OrderLineRequest is one sold item.
type OrderLineRequest struct {
	Number      int             `json:"number"`
	ProductName string          `json:"product_name"`
	Quantity    decimal.Decimal `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	NetTotal    decimal.Decimal `json:"net_total"`
	GrossTotal  decimal.Decimal `json:"gross_total"`
	TaxAmount   decimal.Decimal `json:"tax_amount"`
	TaxRate     decimal.Decimal `json:"tax_rate"`
}

// PaymentRequest is one payment record.
type PaymentRequest struct {
	Method string          `json:"method"`
	Amount decimal.Decimal `json:"amount"`
}

// ToEntity maps the request to the domain snapshot. A missing transaction id
// gets a fresh UUID so downstream fallbacks always have a stable seed.
func (r *OrderSnapshotRequest) ToEntity() *entity.OrderSnapshot {
	snap := &entity.OrderSnapshot{
		ID:            r.ID,
		Reference:     r.Reference,
		InvoiceNumber: r.InvoiceNumber,
		IssuedAt:      r.IssuedAt,
		Seller: entity.Seller{
			Name:        r.SellerName,
			VAT:         r.SellerVAT,
			CountryCode: r.SellerCountryCode,
		},
		NetTotal:          r.NetTotal,
		TaxTotal:          r.TaxTotal,
		GrossTotal:        r.GrossTotal,
		RefundedOrderRef:  r.RefundedOrderRef,
		RefundedOrderDate: r.RefundedOrderDate,
		RefundReason:      r.RefundReason,
	}
	if snap.ID == "" {
		snap.ID = uuid.NewString()
	}
	if r.Customer != nil {
		snap.Customer = &entity.Customer{
			ID:             r.Customer.ID,
			Name:           r.Customer.Name,
			TaxID:          r.Customer.TaxID,
			Classification: r.Customer.Classification,
		}
	}
	for _, l := range r.Lines {
		snap.Lines = append(snap.Lines, entity.OrderLine{
			Number:      l.Number,
			ProductName: l.ProductName,
			Quantity:    l.Quantity,
			UnitPrice:   l.UnitPrice,
			NetTotal:    l.NetTotal,
			GrossTotal:  l.GrossTotal,
			TaxAmount:   l.TaxAmount,
			TaxRate:     l.TaxRate,
		})
	}
	for _, p := range r.Payments {
		snap.Payments = append(snap.Payments, entity.Payment{Method: p.Method, Amount: p.Amount})
	}
	return snap
}

// QRResponse is the QR generation result.
type QRResponse struct {
	Payload      string `json:"payload"`
	Enhanced     bool   `json:"enhanced"`
	FieldCount   int    `json:"field_count"`
	Fingerprint  string `json:"fingerprint,omitempty"`
	Signature    string `json:"signature,omitempty"`
	Status       string `json:"status"`
	ImageDataURL string `json:"image_data_url,omitempty"`
}

// ZATCAConfigResponse is the configuration slice served to the POS client at
// session start.
type ZATCAConfigResponse struct {
	DirectModeEnabled bool   `json:"direct_mode_enabled"`
	SellerName        string `json:"seller_name"`
	SellerVAT         string `json:"seller_vat"`
	CountryCode       string `json:"country_code"`
	HasCertificate    bool   `json:"has_certificate"`
}

// RefundReasonResponse is one selectable refund reason.
type RefundReasonResponse struct {
	Code  string `json:"code"`
	Label string `json:"label"`
}

// UBLDocumentResponse is the generated simplified-invoice document plus its
// canonical hash, chained as the next document's previous invoice hash.
type UBLDocumentResponse struct {
	XML         string `json:"xml"`
	InvoiceHash string `json:"invoice_hash"`
	QRPayload   string `json:"qr_payload"`
}
