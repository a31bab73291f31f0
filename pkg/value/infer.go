package value

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrInvalidFlag is returned by ParseFlag for text that is not a recognised
// yes/no token.
var ErrInvalidFlag = errors.New("invalid flag")

// Infer picks the narrowest variant that the trimmed text parses as, trying
// bool, then int64, then float64. Text that parses as none of them is kept
// as a String holding raw exactly as given.
func Infer(raw string) Value {
	s := strings.TrimSpace(raw)
	switch s {
	case "true":
		return NewBool(true)
	case "false":
		return NewBool(false)
	}
	if i, ok := parseInt(s); ok {
		return NewInt(i)
	}
	if f, ok := parseFloat(s); ok {
		return NewFloat(f)
	}
	return NewString(raw)
}

// parseInt accepts an optional '-' followed by decimal digits.
func parseInt(s string) (int64, bool) {
	if s == "" || s[0] == '+' {
		return 0, false
	}
	i, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, false
	}
	return i, true
}

// parseFloat accepts decimal and exponent notation, plus the inf/nan
// spellings. Hexadecimal floats are not numbers in a filing. Out of range
// values saturate to ±Inf or zero.
func parseFloat(s string) (float64, bool) {
	digits := strings.TrimLeft(s, "+-")
	if len(digits) > 1 && digits[0] == '0' && (digits[1] == 'x' || digits[1] == 'X') {
		return 0, false
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil && !errors.Is(err, strconv.ErrRange) {
		return 0, false
	}
	return f, true
}

// ParseFlag reads the yes/no tokens used by the EDGAR schema forms:
// "1", "Y" and "TRUE" are true, "0", "N" and "FALSE" are false, ignoring
// case. Anything else is an error.
func ParseFlag(s string) (bool, error) {
	switch strings.ToUpper(s) {
	case "1", "Y", "TRUE":
		return true, nil
	case "0", "N", "FALSE":
		return false, nil
	}
	return false, fmt.Errorf("%w: %q", ErrInvalidFlag, s)
}
