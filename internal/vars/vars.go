// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) 2023-2026 Nicholas R. Perez

// Package vars holds the calculator's single-letter variables.
package vars

import (
	"errors"
	"fmt"

	"nickandperla.net/rpnc/internal/number"
)

// Variable errors.
var (
	ErrInvalidKey        = errors.New("variable names are the letters a to z")
	ErrUndefinedVariable = errors.New("variable is not set")
	ErrNothingToBackup   = errors.New("no variables to back up")
	ErrNoBackupAvailable = errors.New("no backup to restore")
)

// Op selects how Accumulate combines a variable with a delta.
type Op int

const (
	Add Op = iota
	Sub
)

// Store maps the letters a-z to complex values and keeps a stack of
// snapshots for Backup/Restore.
type Store struct {
	data    map[byte]number.Complex
	backups []map[byte]number.Complex
}

// New creates an empty store.
func New() *Store {
	return &Store{data: make(map[byte]number.Complex)}
}

// normalize lower-cases c and checks that it is a letter.
func normalize(c byte) (byte, error) {
	if c >= 'A' && c <= 'Z' {
		c += 'a' - 'A'
	}
	if c < 'a' || c > 'z' {
		return 0, fmt.Errorf("%w: %q", ErrInvalidKey, c)
	}
	return c, nil
}

// Get returns the value of variable c.
func (s *Store) Get(c byte) (number.Complex, error) {
	key, err := normalize(c)
	if err != nil {
		return number.Complex{}, err
	}
	v, ok := s.data[key]
	if !ok {
		return number.Complex{}, fmt.Errorf("%w: %q", ErrUndefinedVariable, key)
	}
	return v, nil
}

// Set overwrites variable c.
func (s *Store) Set(c byte, v number.Complex) error {
	key, err := normalize(c)
	if err != nil {
		return err
	}
	s.data[key] = v
	return nil
}

// Accumulate replaces c with c+delta or c-delta.
func (s *Store) Accumulate(c byte, delta number.Complex, op Op) error {
	cur, err := s.Get(c)
	if err != nil {
		return err
	}
	var next number.Complex
	switch op {
	case Add:
		next, err = cur.Add(delta)
	case Sub:
		next, err = cur.Sub(delta)
	default:
		return fmt.Errorf("unknown accumulate op %d", op)
	}
	if err != nil {
		return err
	}
	return s.Set(c, next)
}

// Backup pushes a copy of every variable onto the backup stack.
func (s *Store) Backup() error {
	if len(s.data) == 0 {
		return ErrNothingToBackup
	}
	s.backups = append(s.backups, clone(s.data))
	return nil
}

// Restore replaces all variables with the most recent backup and discards it.
func (s *Store) Restore() error {
	n := len(s.backups)
	if n == 0 {
		return ErrNoBackupAvailable
	}
	s.data = s.backups[n-1]
	s.backups = s.backups[:n-1]
	return nil
}

// Snapshot returns a copy of the current variables.
func (s *Store) Snapshot() map[byte]number.Complex {
	return clone(s.data)
}

// Depth returns the number of stored backups.
func (s *Store) Depth() int {
	return len(s.backups)
}

func clone(m map[byte]number.Complex) map[byte]number.Complex {
	out := make(map[byte]number.Complex, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}
