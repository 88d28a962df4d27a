// Package store provides persistence for calculator macros.
package store

// Record is one persisted macro definition.
type Record struct {
	Name       string
	Source     string // "name: tok1 tok2 ...", the same line the macro file holds
	Executable bool
}

// Store is the interface for macro persistence.
type Store interface {
	// Records returns every definition in first-insertion order.
	Records() ([]Record, error)
	// Put stores a definition by name, overwriting if it exists. An
	// overwritten definition keeps its position.
	Put(r Record) error
	// Close releases resources.
	Close() error
}

// MetadataStore extends Store with key/value metadata.
type MetadataStore interface {
	Store
	GetMetadata(key string) (string, error)
	SetMetadata(key, value string) error
}

// RevisionKey is the metadata key stamped with a fresh id on every Put.
const RevisionKey = "revision"
