package number

import (
	"math"
	"testing"
)

func TestString(t *testing.T) {
	tests := []struct {
		in   Complex
		want string
	}{
		{Zero(), "0"},
		{New(12, 0), "12"},
		{New(-3, 0), "- 3"},
		{New(0, 1), "+ 1j"},
		{New(0, 4), "+ 4j"},
		{New(0, 0.5), "+ 0.5j"},
		{New(0, -1), "- 1j"},
		{New(3, 4), "3 + 4j"},
		{New(3, -4), "3 - 4j"},
		{New(-3, -4), "- 3 - 4j"},
		{New(1.5, 0.25), "1.5 + 0.25j"},
		{New(0.123456789, 0), "0.12345679"},
		{New(100, 0.00000001), "100 + 0.00000001j"},
		{New(math.NaN(), math.NaN()), NotANumberText},
		{New(math.NaN(), 1), NotANumberText},
		{New(math.Inf(1), 0), "Inf"},
		{New(0, math.Inf(-1)), "- Infj"},
	}
	for _, tt := range tests {
		if got := tt.in.String(); got != tt.want {
			t.Errorf("String(%#v): expected %q, got %q", tt.in, tt.want, got)
		}
	}
}
