// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) 2023-2026 Nicholas R. Perez

// Package scanner splits calculator input into tokens and classifies them.
package scanner

import (
	"bufio"
	"io"
	"strings"
	"unicode"

	"nickandperla.net/rpnc/internal/number"
	"nickandperla.net/rpnc/internal/token"
)

// Item is a classified token.
type Item struct {
	Kind  token.Kind
	Text  string
	Value number.Complex // set for LITERAL
	Var   byte           // set for the variable commands, always lower case
}

// Word is a raw token read by a Scanner.
type Word struct {
	Text string
	Line int // Line number where this token started
}

// Classify decides what a single token does. Tokens that look numeric are
// parsed as literals; everything that is not in the vocabulary is returned as
// a MACRO reference for the caller to resolve.
func Classify(text string) (Item, error) {
	t := strings.TrimSpace(text)
	if t == "" {
		return Item{Kind: token.BLANK}, nil
	}
	if LooksLiteral(t) {
		v, err := ParseLiteral(t)
		if err != nil {
			return Item{}, err
		}
		return Item{Kind: token.LITERAL, Text: t, Value: v}, nil
	}
	if k, ok := token.Lookup(t); ok {
		return Item{Kind: k, Text: t}, nil
	}
	if k, c, ok := token.VariableCommand(t); ok {
		return Item{Kind: k, Text: t, Var: c}, nil
	}
	return Item{Kind: token.MACRO, Text: t}, nil
}

// Scanner reads whitespace-separated tokens rune-by-rune.
type Scanner struct {
	reader *bufio.Reader
	buf    strings.Builder
	line   int // Current line number (1-based)
}

// New creates a new Scanner from an io.Reader.
func New(r io.Reader) *Scanner {
	return &Scanner{
		reader: bufio.NewReader(r),
		line:   1,
	}
}

// NewFromString creates a new Scanner from a string.
func NewFromString(s string) *Scanner {
	return New(strings.NewReader(s))
}

// Line returns the current line number (1-based).
func (s *Scanner) Line() int {
	return s.line
}

// Next returns the next raw token and the line it started on.
// It returns io.EOF once the input is exhausted.
func (s *Scanner) Next() (Word, error) {
	s.buf.Reset()
	startLine := s.line

	for {
		r, _, err := s.reader.ReadRune()
		if err == io.EOF {
			if s.buf.Len() > 0 {
				return Word{Text: s.buf.String(), Line: startLine}, nil
			}
			return Word{}, io.EOF
		}
		if err != nil {
			return Word{}, err
		}

		if unicode.IsSpace(r) {
			if s.buf.Len() > 0 {
				// Leave the newline for the next call so the count stays right
				s.reader.UnreadRune()
				return Word{Text: s.buf.String(), Line: startLine}, nil
			}
			if r == '\n' {
				s.line++
			}
			startLine = s.line
			continue
		}

		s.buf.WriteRune(r)
	}
}
