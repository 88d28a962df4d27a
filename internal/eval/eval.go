package eval

import (
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/lithammer/fuzzysearch/fuzzy"

	"nickandperla.net/rpnc/internal/number"
	"nickandperla.net/rpnc/internal/scanner"
	"nickandperla.net/rpnc/internal/store"
	"nickandperla.net/rpnc/internal/token"
	"nickandperla.net/rpnc/internal/vars"
)

// Evaluator errors. Number, literal and variable failures come from their
// own packages and pass through unchanged.
var (
	ErrUnknownCommand   = errors.New("unknown command")
	ErrStackUnderflow   = errors.New("stack underflow")
	ErrInvalidMacroName = errors.New("invalid macro name")
	ErrEmptyMacroBody   = errors.New("empty macro body")
	ErrUnknownMacro     = errors.New("unknown macro")
	ErrMacroRemoved     = errors.New("macro has been removed")
	ErrCyclicMacro      = errors.New("macro expands into itself")
	ErrInvalidExponent  = errors.New("exponent must be a real number")
	ErrIO               = errors.New("i/o failure")
	ErrNoStore          = errors.New("no macro store configured")
	ErrStoreChanged     = errors.New("store was changed by another session")
)

// PersistMode controls when macros are written to the store.
type PersistMode int

const (
	// PersistOnDemand is the default - explicit Persist calls only.
	PersistOnDemand PersistMode = iota
	// PersistAlways writes every define and remove through to the store.
	PersistAlways
	// PersistNever makes Persist a no-op (memory-only mode).
	PersistNever
)

// String returns the string representation of a PersistMode.
func (m PersistMode) String() string {
	switch m {
	case PersistOnDemand:
		return "ON_DEMAND"
	case PersistAlways:
		return "ALWAYS"
	case PersistNever:
		return "NEVER"
	default:
		return "UNKNOWN"
	}
}

// ParsePersistMode parses a string into a PersistMode.
func ParsePersistMode(s string) (PersistMode, bool) {
	switch strings.ToUpper(s) {
	case "ON_DEMAND":
		return PersistOnDemand, true
	case "ALWAYS":
		return PersistAlways, true
	case "NEVER":
		return PersistNever, true
	default:
		return PersistOnDemand, false
	}
}

// TraceWriter receives one indented line per executed token.
type TraceWriter func(line string)

// Evaluator runs calculator tokens against a stack, the variables and the
// macro registry.
type Evaluator struct {
	stack       *Stack
	vars        *vars.Store
	macros      *Registry
	store       store.Store
	persistMode PersistMode
	trace       TraceWriter
	expanding   map[string]bool // macros currently being executed
	prelude     map[string]bool // names installed by SetPrelude and not since redefined
	revision    string          // store revision last read or written
}

// Option configures an Evaluator.
type Option func(*Evaluator)

// WithStore sets the persistence store.
func WithStore(s store.Store) Option {
	return func(e *Evaluator) { e.store = s }
}

// WithPersistMode sets the persistence mode.
func WithPersistMode(mode PersistMode) Option {
	return func(e *Evaluator) { e.persistMode = mode }
}

// WithVariables shares an existing variable store.
func WithVariables(v *vars.Store) Option {
	return func(e *Evaluator) { e.vars = v }
}

// WithTraceWriter sets the trace callback.
func WithTraceWriter(fn TraceWriter) Option {
	return func(e *Evaluator) { e.trace = fn }
}

// New creates a new Evaluator with the given options.
func New(opts ...Option) *Evaluator {
	e := &Evaluator{
		stack:     NewStack(),
		macros:    NewRegistry(),
		expanding: make(map[string]bool),
		prelude:   make(map[string]bool),
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.vars == nil {
		e.vars = vars.New()
	}
	return e
}

// Stack returns a copy of the stack, bottom first.
func (e *Evaluator) Stack() []number.Complex {
	return e.stack.Values()
}

// Top returns the top of the stack.
func (e *Evaluator) Top() (number.Complex, bool) {
	return e.stack.Top()
}

// Variables returns the variable store.
func (e *Evaluator) Variables() *vars.Store {
	return e.vars
}

// Macros returns the macro registry.
func (e *Evaluator) Macros() *Registry {
	return e.macros
}

// Store returns the configured store, or nil.
func (e *Evaluator) Store() store.Store {
	return e.store
}

// PersistMode returns the current persistence mode.
func (e *Evaluator) PersistMode() PersistMode {
	return e.persistMode
}

// SetPersistMode changes the persistence mode at runtime.
func (e *Evaluator) SetPersistMode(mode PersistMode) {
	e.persistMode = mode
}

// Submit runs a single token. Blank tokens are ignored.
func (e *Evaluator) Submit(text string) error {
	return e.submit(text, 0)
}

// SubmitLine splits a line on whitespace and submits each token in turn,
// stopping at the first error.
func (e *Evaluator) SubmitLine(line string) error {
	for _, tok := range strings.Fields(line) {
		if err := e.Submit(tok); err != nil {
			return err
		}
	}
	return nil
}

// EvalReader submits every token read from r. Errors carry the line of the
// failing token.
func (e *Evaluator) EvalReader(r io.Reader) error {
	scan := scanner.New(r)
	for {
		w, err := scan.Next()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return fmt.Errorf("%w: %w", ErrIO, err)
		}
		if err := e.Submit(w.Text); err != nil {
			return fmt.Errorf("line %d: %w", w.Line, err)
		}
	}
}

func (e *Evaluator) submit(text string, depth int) error {
	t := strings.TrimSpace(text)
	if t == "" {
		return nil
	}
	if e.trace != nil {
		e.trace(strings.Repeat("  ", depth) + t)
	}

	// Defined names win over literal parsing so "test1" can name a macro
	if e.macros.Has(t) {
		return e.execute(t, depth)
	}

	item, err := scanner.Classify(t)
	if err != nil {
		return err
	}
	if item.Kind == token.MACRO {
		return e.unknownCommand(t)
	}
	if err := e.apply(item); err != nil {
		return fmt.Errorf("%s: %w", t, err)
	}
	return nil
}

// execute replays a macro's tokens. A macro that is already expanding
// further up the call chain fails instead of recursing forever.
func (e *Evaluator) execute(name string, depth int) error {
	m, ok := e.macros.Lookup(name)
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownMacro, name)
	}
	if !m.Executable {
		return fmt.Errorf("%w: %s", ErrMacroRemoved, name)
	}
	if e.expanding[name] {
		return fmt.Errorf("%w: %s", ErrCyclicMacro, name)
	}
	e.expanding[name] = true
	defer delete(e.expanding, name)

	for _, tok := range m.Tokens {
		if err := e.submit(tok, depth+1); err != nil {
			return fmt.Errorf("macro %s: %w", name, err)
		}
	}
	return nil
}

// Execute runs a macro by name.
func (e *Evaluator) Execute(name string) error {
	return e.execute(name, 0)
}

func (e *Evaluator) unknownCommand(t string) error {
	candidates := append(token.Words(), e.macros.Names()...)
	if s := suggest(t, candidates); s != "" {
		return fmt.Errorf("%w: %s (did you mean %s?)", ErrUnknownCommand, t, s)
	}
	return fmt.Errorf("%w: %s", ErrUnknownCommand, t)
}

// suggest finds the closest candidate: first a fuzzy subsequence match,
// then anything within two edits.
func suggest(target string, candidates []string) string {
	ranks := fuzzy.RankFindFold(target, candidates)
	if len(ranks) > 0 {
		sort.Sort(ranks)
		return ranks[0].Target
	}

	best, bestDist := "", 3
	for _, c := range candidates {
		if d := fuzzy.LevenshteinDistance(strings.ToLower(target), strings.ToLower(c)); d < bestDist {
			best, bestDist = c, d
		}
	}
	return best
}
