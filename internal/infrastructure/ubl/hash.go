package ubl

import (
	"bytes"
	"crypto/sha256"
	"encoding/base64"
	"encoding/xml"
	"fmt"

	"github.com/ucarion/c14n"
)

// InvoiceHash computes the document digest: exclusive C14N of the XML, then
// SHA-256, base64-encoded. This is the value chained as the next document's
// previous invoice hash.
func InvoiceHash(xmlBytes []byte) (string, error) {
	canonical, err := canonicalize(xmlBytes)
	if err != nil {
		return "", fmt.Errorf("ubl: canonicalize invoice: %w", err)
	}
	digest := sha256.Sum256(canonical)
	return base64.StdEncoding.EncodeToString(digest[:]), nil
}

func canonicalize(data []byte) ([]byte, error) {
	dec := xml.NewDecoder(bytes.NewReader(data))
	return c14n.Canonicalize(dec)
}
