package number

import (
	"math"
	"strconv"
	"strings"
)

// fractionDigits bounds the digits printed after the decimal point.
const fractionDigits = 8

// NotANumberText is the canonical rendering of a value with a NaN component.
const NotANumberText = "Not A Number"

// String returns the canonical form: "0", "3", "- 2.5", "+ 4j", "3 + 4j",
// "- 1 - 0.5j". The imaginary part always carries its sign.
func (c Complex) String() string {
	if c.IsNaN() {
		return NotANumberText
	}
	if c.IsZero() {
		return "0"
	}

	var sb strings.Builder
	if c.re != 0 {
		if c.re < 0 {
			sb.WriteString("- ")
		}
		sb.WriteString(formatMagnitude(c.re))
	}
	if c.im != 0 {
		switch {
		case sb.Len() == 0 && c.im < 0:
			sb.WriteString("- ")
		case sb.Len() == 0:
			sb.WriteString("+ ")
		case sb.Len() > 0 && c.im < 0:
			sb.WriteString(" - ")
		case sb.Len() > 0:
			sb.WriteString(" + ")
		}
		sb.WriteString(formatMagnitude(c.im))
		sb.WriteByte('j')
	}
	return sb.String()
}

func formatMagnitude(v float64) string {
	v = math.Abs(v)
	if math.IsInf(v, 0) {
		return "Inf"
	}
	s := strconv.FormatFloat(v, 'f', fractionDigits, 64)
	s = strings.TrimRight(s, "0")
	return strings.TrimSuffix(s, ".")
}
