// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) 2023-2026 Nicholas R. Perez

// Package eval implements the calculator's stack interpreter and its macro
// registry.
package eval

import (
	"fmt"
	"strings"
	"sync"
	"unicode"

	"nickandperla.net/rpnc/internal/scanner"
	"nickandperla.net/rpnc/internal/token"
)

// Macro is a named token sequence. A removed macro keeps its tokens but can
// no longer be executed.
type Macro struct {
	Name       string
	Tokens     []string
	Executable bool
}

// Source renders the macro as "name: tok1 tok2 ...".
func (m Macro) Source() string {
	return m.Name + ": " + strings.Join(m.Tokens, " ")
}

// Parse splits "name: body" at the first ':' and validates both halves.
func Parse(text string) (Macro, error) {
	name, body, ok := strings.Cut(text, ":")
	if !ok {
		return Macro{}, fmt.Errorf("%w: missing ':' in %q", ErrInvalidMacroName, text)
	}
	name = strings.TrimSpace(name)
	if err := checkName(name); err != nil {
		return Macro{}, err
	}
	tokens := strings.Fields(body)
	if len(tokens) == 0 {
		return Macro{}, fmt.Errorf("%w: %s", ErrEmptyMacroBody, name)
	}
	return Macro{Name: name, Tokens: tokens, Executable: true}, nil
}

// checkName rejects names that the interpreter would read as something else.
func checkName(name string) error {
	if name == "" {
		return fmt.Errorf("%w: name is blank", ErrInvalidMacroName)
	}
	if strings.ContainsFunc(name, func(r rune) bool { return r == ':' || unicode.IsSpace(r) }) {
		return fmt.Errorf("%w: %q", ErrInvalidMacroName, name)
	}
	if token.IsReserved(name) {
		return fmt.Errorf("%w: %s is a reserved word", ErrInvalidMacroName, name)
	}
	if _, err := scanner.ParseLiteral(name); err == nil {
		return fmt.Errorf("%w: %s is a number", ErrInvalidMacroName, name)
	}
	return nil
}

// Registry holds macro definitions in first-definition order.
type Registry struct {
	mu     sync.RWMutex
	order  []string
	macros map[string]Macro
}

// NewRegistry creates a new empty registry.
func NewRegistry() *Registry {
	return &Registry{
		macros: make(map[string]Macro),
	}
}

// Define parses text and stores the result. Redefining a name keeps its
// position and makes it executable again.
func (r *Registry) Define(text string) (Macro, error) {
	m, err := Parse(text)
	if err != nil {
		return Macro{}, err
	}
	r.Set(m)
	return m, nil
}

// Set stores a macro as-is.
func (r *Registry) Set(m Macro) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.macros[m.Name]; !ok {
		r.order = append(r.order, m.Name)
	}
	m.Tokens = append([]string(nil), m.Tokens...)
	r.macros[m.Name] = m
}

// Lookup returns a copy of the named macro.
func (r *Registry) Lookup(name string) (Macro, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	m, ok := r.macros[name]
	if !ok {
		return Macro{}, false
	}
	m.Tokens = append([]string(nil), m.Tokens...)
	return m, true
}

// Has returns true if the name is defined, removed or not.
func (r *Registry) Has(name string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.macros[name]
	return ok
}

// Remove marks a macro as no longer executable.
func (r *Registry) Remove(name string) (Macro, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	m, ok := r.macros[name]
	if !ok {
		return Macro{}, fmt.Errorf("%w: %s", ErrUnknownMacro, name)
	}
	m.Executable = false
	r.macros[name] = m
	return m, nil
}

// Names returns every defined name, including removed ones, in the order
// they were first defined.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]string(nil), r.order...)
}

// All returns copies of every macro in definition order.
func (r *Registry) All() []Macro {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Macro, 0, len(r.order))
	for _, name := range r.order {
		m := r.macros[name]
		m.Tokens = append([]string(nil), m.Tokens...)
		out = append(out, m)
	}
	return out
}

// Source renders the named macro.
func (r *Registry) Source(name string) (string, error) {
	m, ok := r.Lookup(name)
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrUnknownMacro, name)
	}
	return m.Source(), nil
}
