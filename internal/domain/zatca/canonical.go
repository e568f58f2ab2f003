// Package zatca implements the deterministic local generation chain for
// ZATCA direct mode: canonical invoice content, fingerprint and signature.
// Every entry point is total — a stage that cannot complete falls back to a
// defined weaker form instead of failing, because the chain runs inline
// during receipt rendering and must never block checkout.
package zatca

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	"github.com/amr-devops/l10n-sa-edi-pos-direct/internal/domain/entity"
)

var whitespaceRuns = regexp.MustCompile(`\s+`)

// Canonicalize converts an order snapshot into its canonical textual form:
// a recursively key-sorted, whitespace-normalized, compact serialization of
// the invoice content. Two snapshots with structurally equal content produce
// byte-identical output regardless of construction order.
//
// All canonical hashing and signing must go through this single point.
func Canonicalize(snap *entity.OrderSnapshot) (string, error) {
	content, err := buildContent(snap)
	if err != nil {
		return "", err
	}
	// json.Marshal serializes map keys in sorted order at every nesting
	// level, which is exactly the recursive key sort the canonical form
	// requires. Arrays keep element order.
	raw, err := json.Marshal(content)
	if err != nil {
		return "", fmt.Errorf("serialize canonical content: %w", err)
	}
	return normalize(string(raw)), nil
}

// CanonicalOrFallback is the total form of Canonicalize: on failure it
// returns a plain, unsorted serialization of the raw snapshot. The fallback
// is still deterministic for a fixed struct shape but NOT order-independent.
func CanonicalOrFallback(snap *entity.OrderSnapshot) string {
	c, err := Canonicalize(snap)
	if err == nil {
		return c
	}
	raw, merr := json.Marshal(snap)
	if merr != nil {
		return fmt.Sprint(*snap)
	}
	return string(raw)
}

// buildContent assembles the invoice content object with the exact key set
// of the canonical form. Monetary amounts serialize as 2-decimal fixed
// strings; quantities and rates keep their natural decimal representation.
func buildContent(snap *entity.OrderSnapshot) (map[string]any, error) {
	if snap == nil {
		return nil, fmt.Errorf("nil order snapshot")
	}

	customerType := "cash"
	customerName := entity.CashCustomerName
	var customerID any
	if snap.Customer != nil {
		customerType = "named"
		if snap.Customer.Name != "" {
			customerName = snap.Customer.Name
		}
		if snap.Customer.ID != "" {
			customerID = snap.Customer.ID
		}
	}

	lines := make([]map[string]any, 0, len(snap.Lines))
	for _, l := range snap.Lines {
		if l.ProductName == "" {
			return nil, fmt.Errorf("line %d: missing product name", l.Number)
		}
		if l.Quantity.IsZero() {
			return nil, fmt.Errorf("line %d: missing quantity", l.Number)
		}
		lines = append(lines, map[string]any{
			"id":           l.Number,
			"product_name": l.ProductName,
			"quantity":     l.Quantity.String(),
			"unit_price":   l.UnitPrice.StringFixed(2),
			"net_total":    l.NetTotal.StringFixed(2),
			"gross_total":  l.GrossTotal.StringFixed(2),
			"tax_amount":   l.TaxAmount.StringFixed(2),
			"tax_rate":     l.TaxRate.String(),
		})
	}

	payments := make([]map[string]any, 0, len(snap.Payments))
	for _, p := range snap.Payments {
		payments = append(payments, map[string]any{
			"method": p.Method,
			"amount": p.Amount.StringFixed(2),
		})
	}

	return map[string]any{
		"transaction_id": snap.ID,
		"invoice_number": snap.InvoiceNumber,
		"issue_date":     snap.IssuedAt.Format("2006-01-02"),
		"issue_time":     snap.IssuedAt.Format("15:04:05"),
		"seller_name":    snap.Seller.Name,
		"seller_vat":     snap.Seller.VAT,
		"customer_type":  customerType,
		"customer_name":  customerName,
		"customer_id":    customerID,
		// The pre-tax total appears under both UBL monetary total names.
		"line_extension_amount": snap.NetTotal.StringFixed(2),
		"tax_exclusive_amount":  snap.NetTotal.StringFixed(2),
		"tax_inclusive_amount":  snap.GrossTotal.StringFixed(2),
		"tax_amount":            snap.TaxTotal.StringFixed(2),
		"payable_amount":        snap.GrossTotal.StringFixed(2),
		"lines":                 lines,
		"payments":              payments,
	}, nil
}

// normalize applies the canonical whitespace and separator rules: collapse
// whitespace runs to a single space, drop commas immediately preceding a
// closing brace or bracket, trim the ends.
func normalize(s string) string {
	s = whitespaceRuns.ReplaceAllString(s, " ")
	s = strings.ReplaceAll(s, ",}", "}")
	s = strings.ReplaceAll(s, ",]", "]")
	return strings.TrimSpace(s)
}
