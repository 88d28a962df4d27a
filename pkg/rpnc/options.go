// Package rpnc provides the public API for the rpnc calculator.
package rpnc

import (
	"nickandperla.net/rpnc/internal/eval"
	"nickandperla.net/rpnc/internal/number"
	"nickandperla.net/rpnc/internal/store"
)

// Option configures a Runtime.
type Option func(*Runtime)

// WithSQLiteStore configures SQLite persistence at the given path.
// Open failures are reported by New.
func WithSQLiteStore(path string) Option {
	return func(r *Runtime) {
		s, err := store.NewSQLite(path)
		if err != nil {
			r.initErr = err
			return
		}
		r.store = s
	}
}

// WithMemoryStore configures an in-memory store (for testing).
func WithMemoryStore() Option {
	return func(r *Runtime) {
		r.store = store.NewMemory()
	}
}

// WithStore configures a custom store.
func WithStore(s Store) Option {
	return func(r *Runtime) {
		r.store = s
	}
}

// WithPrelude sets a custom prelude source to be loaded on startup.
// If not set, DefaultPrelude is used.
func WithPrelude(source string) Option {
	return func(r *Runtime) {
		r.prelude = source
	}
}

// WithNoStdlib disables loading the standard library prelude.
func WithNoStdlib() Option {
	return func(r *Runtime) {
		r.noStdlib = true
	}
}

// WithTraceWriter receives one indented line per executed token.
func WithTraceWriter(fn func(line string)) Option {
	return func(r *Runtime) {
		r.trace = fn
	}
}

// Store interface for custom stores.
type Store = store.Store

// Record is one stored macro definition.
type Record = store.Record

// Value is a complex stack value.
type Value = number.Complex

// Macro is a named token sequence.
type Macro = eval.Macro

// PersistMode controls when macros are persisted.
type PersistMode = eval.PersistMode

// ErrStoreChanged reports that another session wrote to the store.
var ErrStoreChanged = eval.ErrStoreChanged

// Persist mode constants.
const (
	PersistOnDemand = eval.PersistOnDemand
	PersistAlways   = eval.PersistAlways
	PersistNever    = eval.PersistNever
)

// ParsePersistMode parses a string into a PersistMode.
func ParsePersistMode(s string) (PersistMode, bool) {
	return eval.ParsePersistMode(s)
}

// WithPersistMode sets the persistence mode.
func WithPersistMode(mode PersistMode) Option {
	return func(r *Runtime) {
		r.persistMode = mode
	}
}
