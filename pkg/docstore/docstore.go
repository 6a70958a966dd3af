// Package docstore defines the keyed document store the game engine persists to.
// Documents are JSON values addressed by slash separated paths (e.g. game/abc/state).
package docstore

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
)

// ErrNotFound is returned when a document does not exist
var ErrNotFound = errors.New("document not found")

// ErrConflict is returned when a transaction could not be applied because of a concurrent writer
// The transaction can be retried.
var ErrConflict = errors.New("conflicting write")

// Store is a keyed document store
type Store interface {
	// RunTransaction runs fn with exclusive access to every document under root
	// Writes staged on the Tx are applied atomically after fn returns nil. If fn returns an error,
	// nothing is written and the error is returned unchanged.
	RunTransaction(ctx context.Context, root string, fn func(ctx context.Context, tx Tx) error) error
}

// Tx is a transaction against a store
// Reads always observe committed data, never writes staged in the same transaction.
type Tx interface {
	// Get decodes the document at path into v
	Get(ctx context.Context, path string, v interface{}) error

	// List returns every document whose path starts with prefix
	List(ctx context.Context, prefix string) (map[string]json.RawMessage, error)

	// Set stages a write of v to path
	Set(path string, v interface{})

	// Delete stages a delete of path and everything below it
	Delete(path string)

	// Increment stages an atomic numeric increment of the document at path
	// A missing document is treated as zero.
	Increment(path string, delta int)
}

// Join builds a path from its segments
func Join(segments ...string) string {
	return strings.Join(segments, "/")
}

// WithinRoot returns true if path is root or below root
func WithinRoot(root, path string) bool {
	return path == root || strings.HasPrefix(path, root+"/")
}

// OpKind is the type of staged write
type OpKind int

// OpKind constants
const (
	OpSet OpKind = iota
	OpDelete
	OpIncrement
)

// Op is a single staged write
type Op struct {
	Kind  OpKind
	Path  string
	Value json.RawMessage
	Delta int
}

// Batch collects staged writes so a Tx implementation can apply them in one go
type Batch struct {
	Ops []Op
	err error
}

// Set stages a write
func (b *Batch) Set(path string, v interface{}) {
	raw, err := json.Marshal(v)
	if err != nil {
		if b.err == nil {
			b.err = err
		}

		return
	}

	b.Ops = append(b.Ops, Op{Kind: OpSet, Path: path, Value: raw})
}

// Delete stages a delete
func (b *Batch) Delete(path string) {
	b.Ops = append(b.Ops, Op{Kind: OpDelete, Path: path})
}

// Increment stages an increment
func (b *Batch) Increment(path string, delta int) {
	b.Ops = append(b.Ops, Op{Kind: OpIncrement, Path: path, Delta: delta})
}

// Err returns the first error encountered while staging writes
func (b *Batch) Err() error {
	return b.err
}

// Validate returns an error if any staged write falls outside of root
func (b *Batch) Validate(root string) error {
	if b.err != nil {
		return b.err
	}

	for _, op := range b.Ops {
		if !WithinRoot(root, op.Path) {
			return errors.New("write outside of transaction root: " + op.Path)
		}
	}

	return nil
}
