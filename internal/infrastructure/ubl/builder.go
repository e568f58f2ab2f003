// Package ubl builds the simplified-invoice UBL 2.1 document for a POS
// transaction and computes its canonical hash.
package ubl

import (
	"fmt"
	"strconv"

	"github.com/beevik/etree"

	"github.com/amr-devops/l10n-sa-edi-pos-direct/internal/domain/entity"
	"github.com/amr-devops/l10n-sa-edi-pos-direct/pkg/zatca"
)

// Official UBL 2.1 namespaces.
const (
	NsInvoice = "urn:oasis:names:specification:ubl:schema:xsd:Invoice-2"
	NsCac     = "urn:oasis:names:specification:ubl:schema:xsd:CommonAggregateComponents-2"
	NsCbc     = "urn:oasis:names:specification:ubl:schema:xsd:CommonBasicComponents-2"
	NsExt     = "urn:oasis:names:specification:ubl:schema:xsd:CommonExtensionComponents-2"
)

// Document profile values for KSA simplified invoices.
const (
	profileID       = "reporting:1.0"
	customizationID = "urn:oasis:names:specification:ubl:dsig:enveloped:xades"
	currencyCode    = "SAR"
)

// BuildContext carries everything the builder needs for one document.
type BuildContext struct {
	Snapshot         *entity.OrderSnapshot
	Seller           entity.Seller
	QRPayload        string // base64 TLV, embedded as an additional document reference
	PreviousHash     string // previous invoice hash; empty selects the chain seed
	RefundReasonCode string
	RefundReasonText string
}

// Builder assembles the simplified-invoice XML.
type Builder struct{}

// NewBuilder creates the builder.
func NewBuilder() *Builder {
	return &Builder{}
}

// Build generates the UBL Invoice document. The first UBLExtensions child is
// an empty extension content left for signature injection.
func (b *Builder) Build(ctx *BuildContext) ([]byte, error) {
	if ctx == nil || ctx.Snapshot == nil {
		return nil, fmt.Errorf("ubl: missing snapshot in build context")
	}
	snap := ctx.Snapshot

	doc := etree.NewDocument()
	doc.CreateProcInst("xml", `version="1.0" encoding="UTF-8"`)

	root := doc.CreateElement("Invoice")
	root.CreateAttr("xmlns", NsInvoice)
	root.CreateAttr("xmlns:cac", NsCac)
	root.CreateAttr("xmlns:cbc", NsCbc)
	root.CreateAttr("xmlns:ext", NsExt)

	// ext:UBLExtensions must stay the first child: the signer injects the
	// signature node into the empty extension content.
	ext := root.CreateElement("ext:UBLExtensions")
	ext.CreateElement("ext:UBLExtension").CreateElement("ext:ExtensionContent")

	root.CreateElement("cbc:ProfileID").SetText(profileID)
	root.CreateElement("cbc:CustomizationID").SetText(customizationID)
	root.CreateElement("cbc:ID").SetText(invoiceID(snap))
	root.CreateElement("cbc:UUID").SetText(snap.ID)
	root.CreateElement("cbc:IssueDate").SetText(snap.IssuedAt.Format("2006-01-02"))
	root.CreateElement("cbc:IssueTime").SetText(snap.IssuedAt.Format("15:04:05"))

	typeCode := root.CreateElement("cbc:InvoiceTypeCode")
	typeCode.CreateAttr("name", zatca.InvoiceTypeNameSimplified)
	typeCode.SetText(strconv.Itoa(snap.InvoiceTypeCode()))

	if ctx.RefundReasonText != "" {
		root.CreateElement("cbc:Note").SetText(ctx.RefundReasonText)
	}
	root.CreateElement("cbc:DocumentCurrencyCode").SetText(currencyCode)
	root.CreateElement("cbc:TaxCurrencyCode").SetText(currencyCode)

	if ref := snap.BillingReference(); ref != nil {
		invRef := root.CreateElement("cac:BillingReference").CreateElement("cac:InvoiceDocumentReference")
		invRef.CreateElement("cbc:ID").SetText(ref.ID)
		invRef.CreateElement("cbc:IssueDate").SetText(ref.IssueDate)
	}

	b.writeDocumentReferences(root, ctx)
	b.writeSupplierParty(root, ctx.Seller)
	b.writeCustomerParty(root, snap.Customer)
	b.writeTaxTotal(root, snap)
	b.writeMonetaryTotal(root, snap)
	for _, line := range snap.Lines {
		b.writeInvoiceLine(root, line)
	}

	doc.Indent(2)
	return doc.WriteToBytes()
}

// writeDocumentReferences adds the PIH and QR additional references.
func (b *Builder) writeDocumentReferences(root *etree.Element, ctx *BuildContext) {
	prev := ctx.PreviousHash
	if prev == "" {
		prev = zatca.PreviousInvoiceHashSeed
	}
	pih := root.CreateElement("cac:AdditionalDocumentReference")
	pih.CreateElement("cbc:ID").SetText("PIH")
	pihObj := pih.CreateElement("cac:Attachment").CreateElement("cbc:EmbeddedDocumentBinaryObject")
	pihObj.CreateAttr("mimeCode", "text/plain")
	pihObj.SetText(prev)

	if ctx.QRPayload != "" {
		qr := root.CreateElement("cac:AdditionalDocumentReference")
		qr.CreateElement("cbc:ID").SetText("QR")
		qrObj := qr.CreateElement("cac:Attachment").CreateElement("cbc:EmbeddedDocumentBinaryObject")
		qrObj.CreateAttr("mimeCode", "text/plain")
		qrObj.SetText(ctx.QRPayload)
	}
}

func (b *Builder) writeSupplierParty(root *etree.Element, seller entity.Seller) {
	party := root.CreateElement("cac:AccountingSupplierParty").CreateElement("cac:Party")

	if seller.CommercialRegistration != "" {
		ident := party.CreateElement("cac:PartyIdentification")
		id := ident.CreateElement("cbc:ID")
		id.CreateAttr("schemeID", "CRN")
		id.SetText(seller.CommercialRegistration)
	}

	addr := party.CreateElement("cac:PostalAddress")
	setIfPresent(addr, "cbc:StreetName", seller.Street)
	setIfPresent(addr, "cbc:BuildingNumber", seller.BuildingNumber)
	setIfPresent(addr, "cbc:CitySubdivisionName", seller.District)
	setIfPresent(addr, "cbc:CityName", seller.City)
	setIfPresent(addr, "cbc:PostalZone", seller.PostalZone)
	addr.CreateElement("cac:Country").CreateElement("cbc:IdentificationCode").SetText(seller.CountryCode)

	scheme := party.CreateElement("cac:PartyTaxScheme")
	scheme.CreateElement("cbc:CompanyID").SetText(seller.VAT)
	scheme.CreateElement("cac:TaxScheme").CreateElement("cbc:ID").SetText("VAT")

	party.CreateElement("cac:PartyLegalEntity").CreateElement("cbc:RegistrationName").SetText(seller.Name)
}

// writeCustomerParty emits the customer block. Simplified invoices allow an
// anonymous buyer; a nil customer becomes the generic cash customer.
func (b *Builder) writeCustomerParty(root *etree.Element, customer *entity.Customer) {
	party := root.CreateElement("cac:AccountingCustomerParty").CreateElement("cac:Party")

	name := entity.CashCustomerName
	if customer != nil && customer.Name != "" {
		name = customer.Name
	}
	if customer != nil && customer.TaxID != "" {
		scheme := party.CreateElement("cac:PartyTaxScheme")
		scheme.CreateElement("cbc:CompanyID").SetText(customer.TaxID)
		scheme.CreateElement("cac:TaxScheme").CreateElement("cbc:ID").SetText("VAT")
	}
	party.CreateElement("cac:PartyLegalEntity").CreateElement("cbc:RegistrationName").SetText(name)
}

func (b *Builder) writeTaxTotal(root *etree.Element, snap *entity.OrderSnapshot) {
	tax := snap.TaxTotal.Abs()
	total := root.CreateElement("cac:TaxTotal")
	amount := total.CreateElement("cbc:TaxAmount")
	amount.CreateAttr("currencyID", currencyCode)
	amount.SetText(tax.StringFixed(2))
}

func (b *Builder) writeMonetaryTotal(root *etree.Element, snap *entity.OrderSnapshot) {
	total := root.CreateElement("cac:LegalMonetaryTotal")
	writeAmount(total, "cbc:LineExtensionAmount", snap.NetTotal.Abs().StringFixed(2))
	writeAmount(total, "cbc:TaxExclusiveAmount", snap.NetTotal.Abs().StringFixed(2))
	writeAmount(total, "cbc:TaxInclusiveAmount", snap.GrossTotal.Abs().StringFixed(2))
	writeAmount(total, "cbc:PayableAmount", snap.GrossTotal.Abs().StringFixed(2))
}

func (b *Builder) writeInvoiceLine(root *etree.Element, line entity.OrderLine) {
	el := root.CreateElement("cac:InvoiceLine")
	el.CreateElement("cbc:ID").SetText(strconv.Itoa(line.Number))

	qty := el.CreateElement("cbc:InvoicedQuantity")
	qty.CreateAttr("unitCode", "PCE")
	qty.SetText(line.Quantity.Abs().String())
	writeAmount(el, "cbc:LineExtensionAmount", line.NetTotal.Abs().StringFixed(2))

	taxTotal := el.CreateElement("cac:TaxTotal")
	writeAmount(taxTotal, "cbc:TaxAmount", line.TaxAmount.Abs().StringFixed(2))
	writeAmount(taxTotal, "cbc:RoundingAmount", line.GrossTotal.Abs().StringFixed(2))

	item := el.CreateElement("cac:Item")
	item.CreateElement("cbc:Name").SetText(line.ProductName)
	category := item.CreateElement("cac:ClassifiedTaxCategory")
	category.CreateElement("cbc:ID").SetText("S")
	category.CreateElement("cbc:Percent").SetText(line.TaxRate.StringFixed(2))
	category.CreateElement("cac:TaxScheme").CreateElement("cbc:ID").SetText("VAT")

	price := el.CreateElement("cac:Price")
	writeAmount(price, "cbc:PriceAmount", line.UnitPrice.Abs().StringFixed(2))
}

func invoiceID(snap *entity.OrderSnapshot) string {
	if snap.InvoiceNumber != "" {
		return snap.InvoiceNumber
	}
	return snap.Reference
}

func writeAmount(parent *etree.Element, tag, value string) {
	el := parent.CreateElement(tag)
	el.CreateAttr("currencyID", currencyCode)
	el.SetText(value)
}

func setIfPresent(parent *etree.Element, tag, value string) {
	if value != "" {
		parent.CreateElement(tag).SetText(value)
	}
}
