package zatca

import (
	"fmt"
	"unicode"
)

// VATNumberLength is the fixed length of a KSA VAT registration number.
const VATNumberLength = 15

// ValidateVATNumber checks a KSA VAT registration number: exactly 15 digits,
// starting and ending with '3'. Separators (spaces, dashes, dots) are
// tolerated and stripped before validation.
func ValidateVATNumber(vat string) error {
	digits := extractDigits(vat)
	if len(digits) == 0 {
		return fmt.Errorf("zatca: VAT number is required")
	}
	if len(digits) != VATNumberLength {
		return fmt.Errorf("zatca: VAT number must have %d digits, got %d", VATNumberLength, len(digits))
	}
	if digits[0] != '3' || digits[len(digits)-1] != '3' {
		return fmt.Errorf("zatca: VAT number must start and end with 3")
	}
	return nil
}

func extractDigits(s string) []byte {
	var out []byte
	for _, r := range s {
		if unicode.IsDigit(r) {
			out = append(out, byte(r))
		}
	}
	return out
}
