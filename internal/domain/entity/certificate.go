package entity

// CertificateData is certificate material attached to a session or a POS
// configuration. All fields are optional; the resolver falls back to derived
// placeholders when a field is missing everywhere.
type CertificateData struct {
	PublicKey     string // base64 public key bytes
	Signature     string // certificate signature (preferred identifying value)
	SerialNumber  string
	CertificateID string
	IssuerName    string
}

// IsEmpty reports whether the record carries no usable material at all.
func (c *CertificateData) IsEmpty() bool {
	return c == nil || (c.PublicKey == "" && c.Signature == "" && c.SerialNumber == "" && c.CertificateID == "")
}

// Ident returns the certificate-identifying value: the signature, else the
// serial number, else the certificate id. Empty when none is present.
func (c *CertificateData) Ident() string {
	if c == nil {
		return ""
	}
	switch {
	case c.Signature != "":
		return c.Signature
	case c.SerialNumber != "":
		return c.SerialNumber
	default:
		return c.CertificateID
	}
}

// CertificateContext is the pair of values resolved for QR tags 8 and 9.
type CertificateContext struct {
	PublicKey string
	Ident     string
}
