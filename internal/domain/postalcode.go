package domain

import "strings"

// A validated German postal code (Postleitzahl): exactly five ASCII digits.
// Values of this type only exist past ParsePostalCode; no other code
// constructs one from raw input.
type PostalCode string

// InvalidPostalCodeError reports input that failed postal code validation.
// The raw input is kept for logging but deliberately left out of the
// message so it is never echoed back into a rendered page.
type InvalidPostalCodeError struct {
	Raw string
}

func (e *InvalidPostalCodeError) Error() string {
	return "postal code must be exactly five digits"
}

// ParsePostalCode trims surrounding whitespace and validates the result
// against the PLZ format. Only ASCII digits count; signs, separators and
// non-ASCII digit runes are all rejected.
func ParsePostalCode(raw string) (PostalCode, error) {
	s := strings.TrimSpace(raw)

	if len(s) != 5 {
		return "", &InvalidPostalCodeError{Raw: raw}
	}

	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return "", &InvalidPostalCodeError{Raw: raw}
		}
	}

	return PostalCode(s), nil
}
