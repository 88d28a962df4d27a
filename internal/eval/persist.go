package eval

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"nickandperla.net/rpnc/internal/store"
)

// Define parses "name: body" and stores the macro. In PersistAlways mode the
// definition is written through to the store.
func (e *Evaluator) Define(text string) error {
	m, err := e.macros.Define(text)
	if err != nil {
		return err
	}
	delete(e.prelude, m.Name)
	return e.autoPersist(m)
}

// Remove soft-deletes a macro.
func (e *Evaluator) Remove(name string) error {
	m, err := e.macros.Remove(name)
	if err != nil {
		return err
	}
	delete(e.prelude, m.Name)
	return e.autoPersist(m)
}

// SetPrelude installs a built-in macro. Prelude macros are never written to
// the store until the user redefines or removes them.
func (e *Evaluator) SetPrelude(m Macro) {
	e.macros.Set(m)
	e.prelude[m.Name] = true
}

// IsPrelude reports whether name still holds its built-in definition.
func (e *Evaluator) IsPrelude(name string) bool {
	return e.prelude[name]
}

// Names returns every macro name in definition order.
func (e *Evaluator) Names() []string {
	return e.macros.Names()
}

// Source renders a macro as "name: tok1 tok2 ...".
func (e *Evaluator) Source(name string) (string, error) {
	return e.macros.Source(name)
}

func (e *Evaluator) autoPersist(m Macro) error {
	if e.persistMode != PersistAlways || e.store == nil {
		return nil
	}
	if err := e.store.Put(record(m)); err != nil {
		return err
	}
	return e.syncRevision()
}

// storeRevision returns the store's current revision, or "" for stores
// without metadata.
func (e *Evaluator) storeRevision() (string, error) {
	ms, ok := e.store.(store.MetadataStore)
	if !ok {
		return "", nil
	}
	return ms.GetMetadata(store.RevisionKey)
}

func (e *Evaluator) syncRevision() error {
	rev, err := e.storeRevision()
	if err != nil {
		return err
	}
	e.revision = rev
	return nil
}

func record(m Macro) store.Record {
	return store.Record{Name: m.Name, Source: m.Source(), Executable: m.Executable}
}

// Save writes one source line per macro, removed ones included, in
// definition order.
func (e *Evaluator) Save(w io.Writer) error {
	bw := bufio.NewWriter(w)
	for _, m := range e.macros.All() {
		if _, err := bw.WriteString(m.Source() + "\n"); err != nil {
			return fmt.Errorf("%w: %w", ErrIO, err)
		}
	}
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("%w: %w", ErrIO, err)
	}
	return nil
}

// SaveFile writes the macros to path, replacing any existing file.
func (e *Evaluator) SaveFile(path string) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrIO, err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("%w: %w", ErrIO, cerr)
		}
	}()
	return e.Save(f)
}

// Load defines one macro per non-blank line of r. It stops at the first
// malformed line and reports its line number; earlier lines stay defined.
func (e *Evaluator) Load(r io.Reader) error {
	sc := bufio.NewScanner(r)
	line := 0
	for sc.Scan() {
		line++
		text := strings.TrimSpace(sc.Text())
		if text == "" {
			continue
		}
		if err := e.Define(text); err != nil {
			return fmt.Errorf("line %d: %w", line, err)
		}
	}
	if err := sc.Err(); err != nil {
		return fmt.Errorf("%w: %w", ErrIO, err)
	}
	return nil
}

// LoadFile loads macros from path.
func (e *Evaluator) LoadFile(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrIO, err)
	}
	defer f.Close()
	if err := e.Load(f); err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	return nil
}

// Persist writes every user macro to the store. Prelude macros are skipped.
// It is a no-op in PersistNever mode. If another session wrote to the store
// since this one last read or wrote it, Persist fails with ErrStoreChanged
// and writes nothing.
func (e *Evaluator) Persist() error {
	return e.persist(false)
}

// ForcePersist is Persist without the concurrent-change check.
func (e *Evaluator) ForcePersist() error {
	return e.persist(true)
}

func (e *Evaluator) persist(force bool) error {
	if e.persistMode == PersistNever {
		return nil
	}
	if e.store == nil {
		return ErrNoStore
	}
	if !force {
		rev, err := e.storeRevision()
		if err != nil {
			return err
		}
		if rev != e.revision {
			return fmt.Errorf("%w (revision %s, last seen %s)", ErrStoreChanged, rev, e.revision)
		}
	}
	for _, m := range e.macros.All() {
		if e.prelude[m.Name] {
			continue
		}
		if err := e.store.Put(record(m)); err != nil {
			return err
		}
	}
	return e.syncRevision()
}

// LoadStore replays the store's records into the registry, keeping their
// order and removed flags. It returns the number of macros restored.
func (e *Evaluator) LoadStore() (int, error) {
	if e.store == nil {
		return 0, ErrNoStore
	}
	// Read the revision first so a concurrent write shows up as a conflict
	rev, err := e.storeRevision()
	if err != nil {
		return 0, err
	}
	records, err := e.store.Records()
	if err != nil {
		return 0, err
	}
	for i, r := range records {
		m, err := Parse(r.Source)
		if err != nil {
			return i, fmt.Errorf("stored macro %s: %w", r.Name, err)
		}
		m.Executable = r.Executable
		e.macros.Set(m)
		delete(e.prelude, m.Name)
	}
	e.revision = rev
	return len(records), nil
}
