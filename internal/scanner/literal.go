package scanner

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"nickandperla.net/rpnc/internal/number"
)

// ErrInvalidLiteral is returned for numeric-looking text that does not parse.
var ErrInvalidLiteral = errors.New("invalid numeric literal")

// decimal accepts an optionally signed decimal number with an optional
// exponent. Go's ParseFloat also accepts hex, "inf" and underscores, which
// are not literals here.
var decimal = regexp.MustCompile(`^[+-]?([0-9]+(\.[0-9]*)?|\.[0-9]+)([eE][+-]?[0-9]+)?$`)

// LooksLiteral reports whether a token must be read as a number: it contains
// a digit or is one of the bare imaginary units j, +j, -j.
func LooksLiteral(s string) bool {
	switch s {
	case "j", "+j", "-j":
		return true
	}
	return strings.ContainsAny(s, "0123456789")
}

// ParseLiteral parses a complex literal. Accepted forms include 3, -2.5,
// 4j, j4, -j4, -j, 4+10j, 5-4j, 4-j and 2j+1 (imaginary part first).
func ParseLiteral(s string) (number.Complex, error) {
	j := strings.IndexByte(s, 'j')
	if j < 0 {
		re, err := parseReal(s)
		if err != nil {
			return number.Complex{}, err
		}
		return number.Real(re), nil
	}

	sign := splitIndex(s)
	if sign < 0 {
		im, err := parseImaginary(s)
		if err != nil {
			return number.Complex{}, err
		}
		return number.New(0, im), nil
	}

	reText, imText := s[:sign], s[sign:]
	if sign > j {
		reText, imText = s[sign:], s[:sign]
	}
	re, err := parseReal(reText)
	if err != nil {
		return number.Complex{}, err
	}
	im, err := parseImaginary(imText)
	if err != nil {
		return number.Complex{}, err
	}
	return number.New(re, im), nil
}

// splitIndex finds the sign that separates the two parts: the first '+' or
// '-' after index 0 that is not the sign of an exponent.
func splitIndex(s string) int {
	for i := 1; i < len(s); i++ {
		if s[i] != '+' && s[i] != '-' {
			continue
		}
		if p := s[i-1]; p == 'e' || p == 'E' {
			continue
		}
		return i
	}
	return -1
}

func parseReal(s string) (float64, error) {
	if !decimal.MatchString(s) {
		return 0, fmt.Errorf("%w: %q", ErrInvalidLiteral, s)
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil && !errors.Is(err, strconv.ErrRange) {
		return 0, fmt.Errorf("%w: %q", ErrInvalidLiteral, s)
	}
	// Out of range values saturate to ±Inf or 0 like any IEEE-754 result.
	return v, nil
}

// parseImaginary reads the coefficient of an imaginary part written as j,
// +j, -j, jb, +jb, -jb or bj.
func parseImaginary(s string) (float64, error) {
	switch s {
	case "j", "+j":
		return 1, nil
	case "-j":
		return -1, nil
	}
	j := strings.IndexByte(s, 'j')
	var coeff string
	switch {
	case j == 0:
		coeff = s[1:]
	case j == 1 && (s[0] == '+' || s[0] == '-'):
		coeff = s[:1] + s[2:]
	case j == len(s)-1:
		coeff = s[:j]
	default:
		return 0, fmt.Errorf("%w: %q", ErrInvalidLiteral, s)
	}
	return parseReal(coeff)
}
