// Package db provides a thin, mutex-guarded facade over a single
// avltree.Engine instantiation, the direct generalization of the teacher's
// key-value DB facade over a B+ tree.
package db

import (
	"sync"

	"github.com/philiprodriguez/avltree/pkg/avltree"
	"github.com/philiprodriguez/avltree/pkg/codec"
)

// DB represents a thread-safe, persistent ordered set of int64 elements
// backed by an on-disk AVL tree.
type DB struct {
	tree *avltree.Engine[int64]
	mu   sync.RWMutex
}

// NewDB creates and initializes a new database instance.
// Parameters:
//   - path: The filesystem path where the database file will be stored.
//
// Returns:
//   - *DB: A pointer to the initialized database.
//   - error: Any error that occurred during initialization.
func NewDB(path string) (*DB, error) {
	tree, err := avltree.Open(path, codec.Int64())
	if err != nil {
		return nil, err
	}

	return &DB{tree: tree}, nil
}

// Put inserts v into the set. It returns true if v was newly inserted,
// false if it was already present.
func (db *DB) Put(v int64) (bool, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	return db.tree.Add(v)
}

// Contains reports whether v is present in the set.
func (db *DB) Contains(v int64) (bool, error) {
	db.mu.RLock()
	defer db.mu.RUnlock()

	return db.tree.Contains(v)
}

// Delete is explicitly unsupported: the allocator backing this database is
// append-only (see spec.md §1 Non-goals).
func (db *DB) Delete(int64) error {
	return avltree.ErrUnsupported
}

// Close safely shuts down the database, ensuring all data is properly
// saved.
func (db *DB) Close() error {
	db.mu.Lock()
	defer db.mu.Unlock()

	return db.tree.Close()
}

// Size returns the number of elements currently stored.
func (db *DB) Size() (int64, error) {
	db.mu.RLock()
	defer db.mu.RUnlock()

	return db.tree.Size()
}

// Traverse walks through all elements in the database in ascending order.
// The callback function receives each element in sorted order.
func (db *DB) Traverse(visit func(v int64)) error {
	db.mu.RLock()
	defer db.mu.RUnlock()

	it := db.tree.Iterator()
	for {
		has, err := it.HasNext()
		if err != nil {
			return err
		}
		if !has {
			return nil
		}
		v, err := it.Next()
		if err != nil {
			return err
		}
		visit(v)
	}
}
