package zatca_test

import (
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/amr-devops/l10n-sa-edi-pos-direct/internal/domain/entity"
	"github.com/amr-devops/l10n-sa-edi-pos-direct/internal/domain/zatca"
)

// ──────────────────────────────────────────────────────────────────────────────
// Canonicalization is the root of the whole chain: fingerprint and signature
// are derived from its output, so any instability here silently re-keys every
// invoice. These tests pin the three contract properties: order independence,
// idempotence, and the exact key set of the content object.
// ──────────────────────────────────────────────────────────────────────────────

func buildTestSnapshot() *entity.OrderSnapshot {
	issued := time.Date(2024, 3, 1, 14, 30, 0, 0, time.UTC)
	return &entity.OrderSnapshot{
		ID:            "3f2c1a9e-8a24-4a15-9e36-0a6d51f3b001",
		Reference:     "Order 00012-003-0001",
		InvoiceNumber: "INV/2024/00012",
		IssuedAt:      issued,
		Seller: entity.Seller{
			Name:        "Acme Retail",
			VAT:         "300000000000003",
			CountryCode: "SA",
		},
		Lines: []entity.OrderLine{
			{
				Number:      1,
				ProductName: "Espresso",
				Quantity:    decimal.NewFromInt(1),
				UnitPrice:   decimal.NewFromFloat(100.00),
				NetTotal:    decimal.NewFromFloat(100.00),
				GrossTotal:  decimal.NewFromFloat(115.00),
				TaxAmount:   decimal.NewFromFloat(15.00),
				TaxRate:     decimal.NewFromInt(15),
			},
		},
		Payments: []entity.Payment{
			{Method: "Cash", Amount: decimal.NewFromFloat(115.00)},
		},
		NetTotal:    decimal.NewFromFloat(100.00),
		TaxTotal:    decimal.NewFromFloat(15.00),
		GrossTotal:  decimal.NewFromFloat(115.00),
		ZATCAStatus: entity.ZATCAStatusGenerated,
	}
}

// TestCanonicalize_OrderIndependent: the content object is assembled in Go
// maps, whose iteration order is randomized per run. Repeating the call must
// always yield byte-identical output, proving the serialization does not
// depend on insertion or iteration order.
func TestCanonicalize_OrderIndependent(t *testing.T) {
	snap := buildTestSnapshot()

	first, err := zatca.Canonicalize(snap)
	require.NoError(t, err)
	for i := 0; i < 50; i++ {
		again, err := zatca.Canonicalize(snap)
		require.NoError(t, err)
		assert.Equal(t, first, again, "canonical form must be byte-identical on every run")
	}
}

// TestCanonicalize_Idempotent: re-serializing the parsed canonical structure
// yields the same canonical form.
func TestCanonicalize_Idempotent(t *testing.T) {
	canonical, err := zatca.Canonicalize(buildTestSnapshot())
	require.NoError(t, err)

	var parsed map[string]any
	require.NoError(t, json.Unmarshal([]byte(canonical), &parsed), "canonical form must parse as JSON")
	reserialized, err := json.Marshal(parsed)
	require.NoError(t, err)

	assert.JSONEq(t, canonical, string(reserialized))
}

// TestCanonicalize_ContentKeys pins the exact top-level key set and the
// derived values of the content object.
func TestCanonicalize_ContentKeys(t *testing.T) {
	canonical, err := zatca.Canonicalize(buildTestSnapshot())
	require.NoError(t, err)

	var content map[string]any
	require.NoError(t, json.Unmarshal([]byte(canonical), &content))

	wantKeys := []string{
		"customer_id", "customer_name", "customer_type",
		"invoice_number", "issue_date", "issue_time",
		"line_extension_amount", "lines", "payable_amount", "payments",
		"seller_name", "seller_vat",
		"tax_amount", "tax_exclusive_amount", "tax_inclusive_amount",
		"transaction_id",
	}
	for _, k := range wantKeys {
		assert.Contains(t, content, k)
	}
	assert.Len(t, content, len(wantKeys))

	assert.Equal(t, "2024-03-01", content["issue_date"])
	assert.Equal(t, "14:30:00", content["issue_time"])
	assert.Equal(t, "cash", content["customer_type"], "no customer attached means cash sale")
	assert.Equal(t, entity.CashCustomerName, content["customer_name"])
	assert.Nil(t, content["customer_id"])
	assert.Equal(t, "100.00", content["line_extension_amount"])
	assert.Equal(t, content["line_extension_amount"], content["tax_exclusive_amount"],
		"the pre-tax total appears under both monetary total names")
	assert.Equal(t, "115.00", content["tax_inclusive_amount"])
	assert.Equal(t, content["tax_inclusive_amount"], content["payable_amount"])
	assert.Equal(t, "15.00", content["tax_amount"])
}

// TestCanonicalize_NamedCustomer: an attached individual customer switches
// the type and carries the customer's own name and id.
func TestCanonicalize_NamedCustomer(t *testing.T) {
	snap := buildTestSnapshot()
	snap.Customer = &entity.Customer{
		ID:             "cust-001",
		Name:           "Mohammed Al-Qahtani",
		Classification: entity.ClassificationIndividual,
	}

	canonical, err := zatca.Canonicalize(snap)
	require.NoError(t, err)

	var content map[string]any
	require.NoError(t, json.Unmarshal([]byte(canonical), &content))
	assert.Equal(t, "named", content["customer_type"])
	assert.Equal(t, "Mohammed Al-Qahtani", content["customer_name"])
	assert.Equal(t, "cust-001", content["customer_id"])
}

// TestCanonicalize_NormalizationRules: compact output, no whitespace runs,
// no comma before a closing brace or bracket, trimmed ends.
func TestCanonicalize_NormalizationRules(t *testing.T) {
	snap := buildTestSnapshot()
	snap.Seller.Name = "Acme   Retail \t Trading" // whitespace runs inside a value

	canonical, err := zatca.Canonicalize(snap)
	require.NoError(t, err)

	assert.NotContains(t, canonical, "  ", "whitespace runs must collapse to one space")
	assert.NotContains(t, canonical, "\t")
	assert.NotContains(t, canonical, ",}")
	assert.NotContains(t, canonical, ",]")
	assert.Equal(t, strings.TrimSpace(canonical), canonical)
	assert.Contains(t, canonical, "Acme Retail Trading")
}

// TestCanonicalize_MissingLineData errors, and CanonicalOrFallback degrades
// to the plain unsorted serialization instead of failing.
func TestCanonicalize_MissingLineData(t *testing.T) {
	snap := buildTestSnapshot()
	snap.Lines[0].ProductName = ""

	_, err := zatca.Canonicalize(snap)
	require.Error(t, err, "a line without product name cannot be canonicalized")

	fallback := zatca.CanonicalOrFallback(snap)
	assert.NotEmpty(t, fallback)
	again := zatca.CanonicalOrFallback(snap)
	assert.Equal(t, fallback, again, "the fallback form is still deterministic for a fixed snapshot")
}

// TestCanonicalOrFallback_PrefersCanonical returns the canonical form when
// nothing is wrong.
func TestCanonicalOrFallback_PrefersCanonical(t *testing.T) {
	snap := buildTestSnapshot()
	canonical, err := zatca.Canonicalize(snap)
	require.NoError(t, err)
	assert.Equal(t, canonical, zatca.CanonicalOrFallback(snap))
}
