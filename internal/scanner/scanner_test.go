package scanner

import (
	"errors"
	"io"
	"math"
	"testing"

	"nickandperla.net/rpnc/internal/number"
	"nickandperla.net/rpnc/internal/token"
)

func TestParseLiteral(t *testing.T) {
	tests := []struct {
		in   string
		want number.Complex
	}{
		{"4", number.New(4, 0)},
		{"-4", number.New(-4, 0)},
		{"+2.5", number.New(2.5, 0)},
		{".5", number.New(0.5, 0)},
		{"1e3", number.New(1000, 0)},
		{"j", number.New(0, 1)},
		{"+j", number.New(0, 1)},
		{"-j", number.New(0, -1)},
		{"4j", number.New(0, 4)},
		{"-4j", number.New(0, -4)},
		{"j4", number.New(0, 4)},
		{"+j4", number.New(0, 4)},
		{"-j4", number.New(0, -4)},
		{"4+10j", number.New(4, 10)},
		{"5-4j", number.New(5, -4)},
		{"-5-4j", number.New(-5, -4)},
		{"4+j", number.New(4, 1)},
		{"4-j", number.New(4, -1)},
		{"1+1j", number.New(1, 1)},
		{"3-j2", number.New(3, -2)},
		{"2j+1", number.New(1, 2)},
		{"-2j-1", number.New(-1, -2)},
		{"1e-3j", number.New(0, 0.001)},
		{"2e-1+1e+1j", number.New(0.2, 10)},
	}
	for _, tt := range tests {
		got, err := ParseLiteral(tt.in)
		if err != nil {
			t.Errorf("ParseLiteral(%q): unexpected error: %v", tt.in, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseLiteral(%q): expected %v, got %v", tt.in, tt.want, got)
		}
	}
}

func TestParseLiteralInvalid(t *testing.T) {
	for _, in := range []string{"4+", "1.2.3", "4jj", "0x10", "1_000", "4+5", "j4j", "++4", "4a", "test1"} {
		if _, err := ParseLiteral(in); !errors.Is(err, ErrInvalidLiteral) {
			t.Errorf("ParseLiteral(%q): expected ErrInvalidLiteral, got %v", in, err)
		}
	}
}

func TestParseLiteralOverflow(t *testing.T) {
	got, err := ParseLiteral("1e999")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !math.IsInf(got.Re(), 1) {
		t.Errorf("expected +Inf, got %v", got)
	}
}

func TestClassify(t *testing.T) {
	tests := []struct {
		in   string
		kind token.Kind
		v    byte
	}{
		{"", token.BLANK, 0},
		{"   ", token.BLANK, 0},
		{"12", token.LITERAL, 0},
		{"-j", token.LITERAL, 0},
		{"+j", token.LITERAL, 0},
		{"+", token.ADD, 0},
		{"-", token.SUB, 0},
		{"+-", token.NEG, 0},
		{"sqrt", token.SQRT, 0},
		{"over", token.OVER, 0},
		{">a", token.STORE_VAR, 'a'},
		{"<B", token.LOAD_VAR, 'b'},
		{"+c", token.ADD_VAR, 'c'},
		{"-d", token.SUB_VAR, 'd'},
		{"square", token.MACRO, 0},
		{"proj", token.MACRO, 0},
	}
	for _, tt := range tests {
		item, err := Classify(tt.in)
		if err != nil {
			t.Errorf("Classify(%q): unexpected error: %v", tt.in, err)
			continue
		}
		if item.Kind != tt.kind || item.Var != tt.v {
			t.Errorf("Classify(%q): expected %v/%q, got %v/%q", tt.in, tt.kind, tt.v, item.Kind, item.Var)
		}
	}

	if _, err := Classify("4x"); !errors.Is(err, ErrInvalidLiteral) {
		t.Errorf("Classify(4x): expected ErrInvalidLiteral, got %v", err)
	}
}

func TestScannerLines(t *testing.T) {
	s := NewFromString("4 8\n  +\n\n\tdup  over")
	want := []Word{{"4", 1}, {"8", 1}, {"+", 2}, {"dup", 4}, {"over", 4}}
	for i, w := range want {
		got, err := s.Next()
		if err != nil {
			t.Fatalf("token %d: unexpected error: %v", i, err)
		}
		if got != w {
			t.Errorf("token %d: expected %+v, got %+v", i, w, got)
		}
	}
	if _, err := s.Next(); err != io.EOF {
		t.Errorf("expected io.EOF, got %v", err)
	}
}
