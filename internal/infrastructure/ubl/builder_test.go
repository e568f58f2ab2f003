package ubl_test

import (
	"testing"
	"time"

	"github.com/beevik/etree"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/amr-devops/l10n-sa-edi-pos-direct/internal/domain/entity"
	"github.com/amr-devops/l10n-sa-edi-pos-direct/internal/infrastructure/ubl"
	"github.com/amr-devops/l10n-sa-edi-pos-direct/pkg/zatca"
)

func buildContext() *ubl.BuildContext {
	seller := entity.Seller{
		Name:        "Acme Retail",
		VAT:         "300000000000003",
		CountryCode: "SA",
		City:        "Riyadh",
	}
	return &ubl.BuildContext{
		Snapshot: &entity.OrderSnapshot{
			ID:            "7d444840-9dc0-11d1-b245-5ffdce74fad2",
			Reference:     "Order 00001-001-0001",
			InvoiceNumber: "INV/2024/00001",
			IssuedAt:      time.Date(2024, 3, 1, 14, 30, 0, 0, time.UTC),
			Seller:        seller,
			Lines: []entity.OrderLine{{
				Number:      1,
				ProductName: "Widget",
				Quantity:    decimal.NewFromInt(1),
				UnitPrice:   decimal.NewFromFloat(100.00),
				NetTotal:    decimal.NewFromFloat(100.00),
				GrossTotal:  decimal.NewFromFloat(115.00),
				TaxAmount:   decimal.NewFromFloat(15.00),
				TaxRate:     decimal.NewFromInt(15),
			}},
			NetTotal:   decimal.NewFromFloat(100.00),
			TaxTotal:   decimal.NewFromFloat(15.00),
			GrossTotal: decimal.NewFromFloat(115.00),
		},
		Seller:    seller,
		QRPayload: "AQtBY21lIFJldGFpbA==",
	}
}

func parse(t *testing.T, xmlBytes []byte) *etree.Document {
	t.Helper()
	doc := etree.NewDocument()
	require.NoError(t, doc.ReadFromBytes(xmlBytes))
	return doc
}

func TestBuild_SaleDocumentStructure(t *testing.T) {
	out, err := ubl.NewBuilder().Build(buildContext())
	require.NoError(t, err)

	doc := parse(t, out)
	root := doc.Root()
	require.NotNil(t, root)
	assert.Equal(t, "Invoice", root.Tag)

	// Extensions placeholder is the first child.
	children := root.ChildElements()
	require.NotEmpty(t, children)
	assert.Equal(t, "UBLExtensions", children[0].Tag)

	typeCode := root.FindElement("./cbc:InvoiceTypeCode")
	require.NotNil(t, typeCode)
	assert.Equal(t, "388", typeCode.Text())
	assert.Equal(t, zatca.InvoiceTypeNameSimplified, typeCode.SelectAttrValue("name", ""))

	assert.Nil(t, root.FindElement("./cac:BillingReference"), "sales have no billing reference")

	vat := root.FindElement("./cac:AccountingSupplierParty/cac:Party/cac:PartyTaxScheme/cbc:CompanyID")
	require.NotNil(t, vat)
	assert.Equal(t, "300000000000003", vat.Text())

	buyer := root.FindElement("./cac:AccountingCustomerParty/cac:Party/cac:PartyLegalEntity/cbc:RegistrationName")
	require.NotNil(t, buyer)
	assert.Equal(t, entity.CashCustomerName, buyer.Text())

	payable := root.FindElement("./cac:LegalMonetaryTotal/cbc:PayableAmount")
	require.NotNil(t, payable)
	assert.Equal(t, "115.00", payable.Text())
	assert.Equal(t, "SAR", payable.SelectAttrValue("currencyID", ""))

	assert.Len(t, root.FindElements("./cac:InvoiceLine"), 1)
}

func TestBuild_DefaultPreviousHashSeed(t *testing.T) {
	out, err := ubl.NewBuilder().Build(buildContext())
	require.NoError(t, err)

	doc := parse(t, out)
	var pih string
	for _, ref := range doc.Root().FindElements("./cac:AdditionalDocumentReference") {
		if id := ref.FindElement("./cbc:ID"); id != nil && id.Text() == "PIH" {
			pih = ref.FindElement("./cac:Attachment/cbc:EmbeddedDocumentBinaryObject").Text()
		}
	}
	assert.Equal(t, zatca.PreviousInvoiceHashSeed, pih)
}

func TestBuild_CreditNoteCarriesReferenceAndNote(t *testing.T) {
	ctx := buildContext()
	ctx.Snapshot.RefundedOrderRef = "Order 00001-001-0001"
	ctx.Snapshot.RefundedOrderDate = ctx.Snapshot.IssuedAt
	ctx.Snapshot.GrossTotal = decimal.NewFromFloat(-115.00)
	ctx.Snapshot.TaxTotal = decimal.NewFromFloat(-15.00)
	ctx.Snapshot.NetTotal = decimal.NewFromFloat(-100.00)
	ctx.RefundReasonCode = zatca.RefundCustomerRequest
	ctx.RefundReasonText = zatca.RefundReasonLabels[zatca.RefundCustomerRequest]

	out, err := ubl.NewBuilder().Build(ctx)
	require.NoError(t, err)

	doc := parse(t, out)
	root := doc.Root()

	typeCode := root.FindElement("./cbc:InvoiceTypeCode")
	require.NotNil(t, typeCode)
	assert.Equal(t, "381", typeCode.Text())

	ref := root.FindElement("./cac:BillingReference/cac:InvoiceDocumentReference/cbc:ID")
	require.NotNil(t, ref)
	assert.Equal(t, "Order 00001-001-0001", ref.Text())

	note := root.FindElement("./cbc:Note")
	require.NotNil(t, note)
	assert.Equal(t, zatca.RefundReasonLabels[zatca.RefundCustomerRequest], note.Text())

	payable := root.FindElement("./cac:LegalMonetaryTotal/cbc:PayableAmount")
	require.NotNil(t, payable)
	assert.Equal(t, "115.00", payable.Text(), "credit-note amounts are absolute")
}

func TestBuild_MissingSnapshot(t *testing.T) {
	_, err := ubl.NewBuilder().Build(nil)
	assert.Error(t, err)

	_, err = ubl.NewBuilder().Build(&ubl.BuildContext{})
	assert.Error(t, err)
}

func TestInvoiceHash_StableAndBase64(t *testing.T) {
	out, err := ubl.NewBuilder().Build(buildContext())
	require.NoError(t, err)

	first, err := ubl.InvoiceHash(out)
	require.NoError(t, err)
	second, err := ubl.InvoiceHash(out)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Len(t, first, 44, "base64 of a sha256 digest")
}

func TestInvoiceHash_InvalidXML(t *testing.T) {
	_, err := ubl.InvoiceHash([]byte("<unclosed"))
	assert.Error(t, err)
}
