package pos_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/amr-devops/l10n-sa-edi-pos-direct/internal/application/pos"
	"github.com/amr-devops/l10n-sa-edi-pos-direct/pkg/zatca"
)

func TestReceiptHeaderData_EmbedsQRAndSellerIdentity(t *testing.T) {
	exporter := pos.NewReceiptExporter(newUseCase(allCaps()), buildConfig(true), nil)

	header := exporter.ReceiptHeaderData(buildSnapshot())

	assert.Equal(t, "Acme Retail", header.SellerName)
	assert.Equal(t, "300000000000003", header.VATNumber)
	assert.True(t, header.Enhanced)
	fields, err := zatca.DecodeBase64(header.QRPayload)
	require.NoError(t, err)
	assert.Len(t, fields, 9)
}

func TestExportForPrinting_SaleCarriesNoRefundDetails(t *testing.T) {
	exporter := pos.NewReceiptExporter(newUseCase(allCaps()), buildConfig(true), nil)

	export := exporter.ExportForPrinting(buildSnapshot())

	assert.Equal(t, zatca.InvoiceTypeStandard, export.InvoiceTypeCode)
	assert.Nil(t, export.BillingReference)
	assert.Empty(t, export.RefundReasonCode)
	assert.NotEmpty(t, export.Fingerprint)
	assert.NotEmpty(t, export.Signature)
}

func TestExportForPrinting_RefundCarriesCreditNoteDetails(t *testing.T) {
	exporter := pos.NewReceiptExporter(newUseCase(allCaps()), buildConfig(true), nil)

	export := exporter.ExportForPrinting(buildRefundSnapshot(zatca.RefundPriceError))

	assert.Equal(t, zatca.InvoiceTypeCreditNote, export.InvoiceTypeCode)
	require.NotNil(t, export.BillingReference)
	assert.Equal(t, "Order 00001-001-0001", export.BillingReference.ID)
	assert.Equal(t, "2024-03-01", export.BillingReference.IssueDate)
	assert.Equal(t, zatca.RefundPriceError, export.RefundReasonCode)
	assert.Equal(t, zatca.RefundReasonLabels[zatca.RefundPriceError], export.RefundReasonLabel)
}

func TestExportForPrinting_NilConfigStillPrints(t *testing.T) {
	exporter := pos.NewReceiptExporter(newUseCase(allCaps()), nil, nil)

	export := exporter.ExportForPrinting(buildSnapshot())

	assert.False(t, export.Header.Enhanced)
	assert.Equal(t, "Acme Retail", export.Header.SellerName)
	assert.NotEmpty(t, export.Header.QRPayload)
}
