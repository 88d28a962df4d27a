package rpnc

import (
	"fmt"
	"io"
	"os"
	"strings"

	"nickandperla.net/rpnc/internal/eval"
	"nickandperla.net/rpnc/internal/vars"
)

// Runtime is the calculator runtime: a stack, 26 variables and a macro
// registry, optionally backed by a store.
type Runtime struct {
	evaluator   *eval.Evaluator
	store       Store
	prelude     string // Custom prelude source (if empty, uses DefaultPrelude)
	noStdlib    bool   // If true, skip loading prelude
	persistMode eval.PersistMode
	trace       func(line string)
	initErr     error
}

// New creates a new runtime with the given options. Macros already in the
// store are restored first; prelude macros only fill in names the store does
// not define.
func New(opts ...Option) (*Runtime, error) {
	r := &Runtime{}

	for _, opt := range opts {
		opt(r)
	}
	if r.initErr != nil {
		r.Close()
		return nil, r.initErr
	}

	// Build evaluator options
	evalOpts := []eval.Option{eval.WithPersistMode(r.persistMode)}
	if r.store != nil {
		evalOpts = append(evalOpts, eval.WithStore(r.store))
	}
	if r.trace != nil {
		evalOpts = append(evalOpts, eval.WithTraceWriter(r.trace))
	}
	r.evaluator = eval.New(evalOpts...)

	if r.store != nil {
		if _, err := r.evaluator.LoadStore(); err != nil {
			r.Close()
			return nil, fmt.Errorf("restoring macros: %w", err)
		}
	}

	if !r.noStdlib {
		prelude := r.prelude
		if prelude == "" {
			prelude = DefaultPrelude
		}
		if err := r.loadPrelude(prelude); err != nil {
			r.Close()
			return nil, fmt.Errorf("prelude: %w", err)
		}
	}

	return r, nil
}

// loadPrelude defines each prelude line that names a new macro. Prelude
// definitions are not written through to the store.
func (r *Runtime) loadPrelude(src string) error {
	macros := r.evaluator.Macros()
	for i, line := range strings.Split(src, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		m, err := eval.Parse(line)
		if err != nil {
			return fmt.Errorf("line %d: %w", i+1, err)
		}
		if macros.Has(m.Name) {
			continue
		}
		r.evaluator.SetPrelude(m)
	}
	return nil
}

// Submit runs a single token.
func (r *Runtime) Submit(tok string) error {
	return r.evaluator.Submit(tok)
}

// SubmitLine runs each whitespace-separated token of line.
func (r *Runtime) SubmitLine(line string) error {
	return r.evaluator.SubmitLine(line)
}

// EvalReader runs every token read from reader.
func (r *Runtime) EvalReader(reader io.Reader) error {
	return r.evaluator.EvalReader(reader)
}

// EvalFile runs every token in a file.
func (r *Runtime) EvalFile(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("%w: %w", eval.ErrIO, err)
	}
	defer f.Close()
	return r.EvalReader(f)
}

// Stack returns the stack, bottom first.
func (r *Runtime) Stack() []Value {
	return r.evaluator.Stack()
}

// Top returns the top of the stack.
func (r *Runtime) Top() (Value, bool) {
	return r.evaluator.Top()
}

// Variables returns a copy of the set variables.
func (r *Runtime) Variables() map[byte]Value {
	return r.evaluator.Variables().Snapshot()
}

// Get returns variable c.
func (r *Runtime) Get(c byte) (Value, error) {
	return r.evaluator.Variables().Get(c)
}

// Set overwrites variable c.
func (r *Runtime) Set(c byte, v Value) error {
	return r.evaluator.Variables().Set(c, v)
}

// Add adds delta to variable c.
func (r *Runtime) Add(c byte, delta Value) error {
	return r.evaluator.Variables().Accumulate(c, delta, vars.Add)
}

// Subtract subtracts delta from variable c.
func (r *Runtime) Subtract(c byte, delta Value) error {
	return r.evaluator.Variables().Accumulate(c, delta, vars.Sub)
}

// Backup snapshots the variables.
func (r *Runtime) Backup() error {
	return r.evaluator.Variables().Backup()
}

// Restore replaces the variables with the latest snapshot.
func (r *Runtime) Restore() error {
	return r.evaluator.Variables().Restore()
}

// Define stores a macro written as "name: body".
func (r *Runtime) Define(text string) error {
	return r.evaluator.Define(text)
}

// Remove soft-deletes a macro.
func (r *Runtime) Remove(name string) error {
	return r.evaluator.Remove(name)
}

// Names lists every macro, removed ones included, in definition order.
func (r *Runtime) Names() []string {
	return r.evaluator.Names()
}

// IsPrelude reports whether name still holds its built-in definition.
func (r *Runtime) IsPrelude(name string) bool {
	return r.evaluator.IsPrelude(name)
}

// Macros returns every macro in definition order.
func (r *Runtime) Macros() []Macro {
	return r.evaluator.Macros().All()
}

// Source renders a macro as "name: tok1 tok2 ...".
func (r *Runtime) Source(name string) (string, error) {
	return r.evaluator.Source(name)
}

// Save writes every macro to a text file.
func (r *Runtime) Save(path string) error {
	return r.evaluator.SaveFile(path)
}

// Load defines the macros in a text file.
func (r *Runtime) Load(path string) error {
	return r.evaluator.LoadFile(path)
}

// SaveTo writes every macro to w.
func (r *Runtime) SaveTo(w io.Writer) error {
	return r.evaluator.Save(w)
}

// LoadFrom defines the macros read from reader.
func (r *Runtime) LoadFrom(reader io.Reader) error {
	return r.evaluator.Load(reader)
}

// Persist writes every user macro to the store. It fails with
// eval.ErrStoreChanged when another session wrote to the store since this
// runtime last read or wrote it.
func (r *Runtime) Persist() error {
	return r.evaluator.Persist()
}

// ForcePersist writes every user macro to the store, overwriting changes
// made by other sessions.
func (r *Runtime) ForcePersist() error {
	return r.evaluator.ForcePersist()
}

// PersistMode returns the current persistence mode.
func (r *Runtime) PersistMode() PersistMode {
	return r.evaluator.PersistMode()
}

// SetPersistMode changes the persistence mode.
func (r *Runtime) SetPersistMode(mode PersistMode) {
	r.evaluator.SetPersistMode(mode)
}

// HasStore reports whether a store is configured.
func (r *Runtime) HasStore() bool {
	return r.store != nil
}

// Close releases resources.
func (r *Runtime) Close() error {
	if r.store != nil {
		return r.store.Close()
	}
	return nil
}
