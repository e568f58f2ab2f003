package zatca

import (
	"encoding/base64"
	"fmt"
)

// QR field tags. Tags 1-5 form the legacy payload; 6-9 are appended by the
// enhanced pipeline.
const (
	TagSellerName   = 1
	TagVATNumber    = 2
	TagTimestamp    = 3
	TagTotalWithVAT = 4
	TagVATTotal     = 5
	TagInvoiceHash  = 6
	TagSignature    = 7
	TagPublicKey    = 8
	TagCertIdent    = 9
)

// Field is one tagged QR value before TLV packing.
type Field struct {
	Tag   byte
	Value string
}

// EncodeTLV packs the fields, in the given order, as tag-length-value:
// one tag byte, one length byte holding the UTF-8 byte length of the value,
// then the value bytes.
//
// The length field is a single byte. A value longer than 255 bytes wraps the
// length byte (len mod 256) while all value bytes are still emitted, which
// corrupts the payload for downstream decoders. The upstream wire format has
// this limitation; callers must keep values within 255 bytes.
func EncodeTLV(fields []Field) []byte {
	var size int
	for _, f := range fields {
		size += 2 + len(f.Value)
	}
	buf := make([]byte, 0, size)
	for _, f := range fields {
		v := []byte(f.Value)
		buf = append(buf, f.Tag, byte(len(v)))
		buf = append(buf, v...)
	}
	return buf
}

// EncodeBase64 packs the fields as TLV and renders the raw buffer through
// standard base64. This is the string embedded in the printed QR code.
func EncodeBase64(fields []Field) string {
	return base64.StdEncoding.EncodeToString(EncodeTLV(fields))
}

// DecodeTLV parses a TLV buffer back into its (tag, value) fields. Used to
// verify round-trips; fails on a truncated buffer.
func DecodeTLV(buf []byte) ([]Field, error) {
	var fields []Field
	for i := 0; i < len(buf); {
		if len(buf)-i < 2 {
			return nil, fmt.Errorf("zatca: truncated TLV header at offset %d", i)
		}
		tag := buf[i]
		length := int(buf[i+1])
		i += 2
		if len(buf)-i < length {
			return nil, fmt.Errorf("zatca: TLV value for tag %d exceeds buffer (want %d bytes, have %d)", tag, length, len(buf)-i)
		}
		fields = append(fields, Field{Tag: tag, Value: string(buf[i : i+length])})
		i += length
	}
	return fields, nil
}

// DecodeBase64 decodes a base64 QR payload and parses its TLV fields.
func DecodeBase64(payload string) ([]Field, error) {
	raw, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return nil, fmt.Errorf("zatca: decode base64 payload: %w", err)
	}
	return DecodeTLV(raw)
}
