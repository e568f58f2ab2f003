package pos

import (
	"github.com/amr-devops/l10n-sa-edi-pos-direct/internal/domain/entity"
	"github.com/amr-devops/l10n-sa-edi-pos-direct/pkg/zatca"
)

// ReceiptHeader is the ZATCA block of a printed receipt header.
type ReceiptHeader struct {
	SellerName string
	VATNumber  string
	QRPayload  string // base64 TLV, rendered as the scannable barcode
	Enhanced   bool
	Status     string
}

// PrintExport is the full data bundle handed to the printing context.
type PrintExport struct {
	Header            ReceiptHeader
	Fingerprint       string
	Signature         string
	InvoiceTypeCode   int
	RefundReasonCode  string
	RefundReasonLabel string
	BillingReference  *entity.BillingReference
}

// ReceiptDataSource exposes the two hooks the receipt rendering context
// calls. It replaces ad-hoc overriding of the rendering host: one explicit
// implementation composes the QR pipeline instead of patching methods onto
// the base receipt.
type ReceiptDataSource interface {
	ReceiptHeaderData(snap *entity.OrderSnapshot) ReceiptHeader
	ExportForPrinting(snap *entity.OrderSnapshot) PrintExport
}

// ReceiptExporter is the single ReceiptDataSource implementation, bound to
// one POS session's configuration.
type ReceiptExporter struct {
	qr      *GenerateQRUseCase
	cfg     *ZATCAPosConfig
	session *SessionContext
}

// NewReceiptExporter binds the exporter to the session's configuration.
// cfg may be nil when the configuration load has not completed; generation
// then degrades to legacy mode instead of waiting.
func NewReceiptExporter(qr *GenerateQRUseCase, cfg *ZATCAPosConfig, session *SessionContext) *ReceiptExporter {
	return &ReceiptExporter{qr: qr, cfg: cfg, session: session}
}

// ReceiptHeaderData generates the QR payload and returns the header block.
func (e *ReceiptExporter) ReceiptHeaderData(snap *entity.OrderSnapshot) ReceiptHeader {
	res := e.qr.Generate(snap, e.cfg, e.session)
	header := ReceiptHeader{
		QRPayload: res.Payload,
		Enhanced:  res.Enhanced,
		Status:    res.Status,
	}
	if snap != nil {
		header.SellerName = snap.Seller.Name
		header.VATNumber = snap.Seller.VAT
	}
	if e.cfg != nil {
		if e.cfg.Seller.Name != "" {
			header.SellerName = e.cfg.Seller.Name
		}
		if e.cfg.Seller.VAT != "" {
			header.VATNumber = e.cfg.Seller.VAT
		}
	}
	return header
}

// ExportForPrinting returns everything the printing context needs for the
// receipt body: the header, the locally generated chain values and the
// credit-note details.
func (e *ReceiptExporter) ExportForPrinting(snap *entity.OrderSnapshot) PrintExport {
	res := e.qr.Generate(snap, e.cfg, e.session)
	export := PrintExport{
		Header: ReceiptHeader{
			QRPayload: res.Payload,
			Enhanced:  res.Enhanced,
			Status:    res.Status,
		},
		Fingerprint:     res.Fingerprint,
		Signature:       res.Signature,
		InvoiceTypeCode: zatca.InvoiceTypeStandard,
	}
	if snap != nil {
		export.Header.SellerName = snap.Seller.Name
		export.Header.VATNumber = snap.Seller.VAT
		export.InvoiceTypeCode = snap.InvoiceTypeCode()
		export.BillingReference = snap.BillingReference()
		export.RefundReasonCode, export.RefundReasonLabel = RefundReasonForDocument(snap, res.Enhanced)
	}
	if e.cfg != nil {
		if e.cfg.Seller.Name != "" {
			export.Header.SellerName = e.cfg.Seller.Name
		}
		if e.cfg.Seller.VAT != "" {
			export.Header.VATNumber = e.cfg.Seller.VAT
		}
	}
	return export
}
