// Package barcode implements the EAN-13 codec used to key the catalog.
// Construction is non-strict: the 12 payload digits are always trusted and
// the check digit is recomputed, so dirty codes from legacy exports repair
// to interoperable 13-digit barcodes.
package barcode

import (
	"strings"

	"github.com/areif-dev/product-crossref/pkg/errors"
)

// Barcode is a validated 13-digit EAN-13 code. Two barcodes are equal iff
// their repaired 13-digit strings are identical, so the type is usable
// directly as a map key.
type Barcode string

// minDigits is the shortest digit string worth repairing. Anything shorter
// is truncated junk from the legacy export.
const minDigits = 11

// String returns the 13-digit string form.
func (b Barcode) String() string {
	return string(b)
}

// CheckDigit returns the trailing check digit.
func (b Barcode) CheckDigit() byte {
	return b[len(b)-1]
}

// Valid reports whether b is 13 digits with a correct check digit.
func (b Barcode) Valid() bool {
	if len(b) != 13 || !allDigits(string(b)) {
		return false
	}
	return checkDigit(string(b[:12])) == b[12]
}

// Repair normalizes a raw digit string into a valid Barcode. Non-digit
// characters are stripped first. Returns false when the input is too short
// to repair.
//
// Repair rules:
//   - fewer than 11 digits: rejected
//   - exactly 11 digits: a placeholder digit is appended and the checksum
//     recomputed over the resulting 12-digit payload
//   - 12 or more digits: the leading 12 digits are the payload; the check
//     digit is recomputed and substituted regardless of what was supplied
func Repair(raw string) (Barcode, bool) {
	digits := stripNonDigits(raw)
	if len(digits) < minDigits {
		return "", false
	}
	if len(digits) == minDigits {
		digits += "0"
	}
	payload := digits[:12]
	return Barcode(payload + string(checkDigit(payload))), true
}

// Parse is Repair with a structured error for callers that must report the
// offending value.
func Parse(raw string) (Barcode, error) {
	b, ok := Repair(raw)
	if !ok {
		return "", errors.NewMalformedValueError("", 0, "barcode", raw, errors.ErrInvalidInput)
	}
	return b, nil
}

// CheckDigit computes the EAN-13 check digit for a 12-digit payload.
func CheckDigit(payload string) (byte, error) {
	if len(payload) != 12 || !allDigits(payload) {
		return 0, errors.NewMalformedValueError("", 0, "payload", payload, errors.ErrInvalidInput)
	}
	return checkDigit(payload), nil
}

// checkDigit assumes payload is exactly 12 digits. Odd positions (1-indexed
// from the left) weigh 1, even positions weigh 3.
func checkDigit(payload string) byte {
	sum := 0
	for i := 0; i < 12; i++ {
		d := int(payload[i] - '0')
		if i%2 == 0 {
			sum += d
		} else {
			sum += d * 3
		}
	}
	return byte((10-sum%10)%10) + '0'
}

func stripNonDigits(s string) string {
	var sb strings.Builder
	sb.Grow(len(s))
	for _, r := range s {
		if r >= '0' && r <= '9' {
			sb.WriteRune(r)
		}
	}
	return sb.String()
}

func allDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
