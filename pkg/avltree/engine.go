// Package avltree implements a persistent, disk-resident ordered set: an
// append-only, height-balanced (AVL) binary search tree operated directly
// through file offsets. All state -- tree topology, payloads, and
// metadata -- lives in a single file; no significant portion of the tree
// is mirrored in memory.
//
// Deletion, multi-process concurrency, crash consistency, in-place payload
// update, and secondary indexes are explicitly out of scope: the allocator
// is append-only and the file is not journaled.
package avltree

import (
	"errors"
	"fmt"
	"sync"

	"github.com/philiprodriguez/avltree/pkg/codec"
	"github.com/philiprodriguez/avltree/pkg/fileio"
)

// ErrNoSuchElement is returned by First/Last on an empty set.
var ErrNoSuchElement = errors.New("avltree: no such element")

// ErrUnsupported is returned by the removal-family and bulk-extraction
// operations, which this append-only engine deliberately does not
// implement.
var ErrUnsupported = errors.New("avltree: unsupported operation")

// Engine is a persistent, disk-resident ordered set of elements of type T.
// A single Engine value owns exclusive use of its underlying file; all
// public operations are serialized by an internal mutex, matching the
// single-threaded-per-file-handle model the on-disk format assumes.
type Engine[T any] struct {
	file  *fileio.File
	codec codec.Codec[T]
	mu    sync.Mutex
}

// Open opens or creates the ordered set backed by the file at path. If the
// file is empty, the header is initialized (count=0, next-free=24,
// root=24); otherwise the existing header is trusted.
func Open[T any](path string, c codec.Codec[T]) (*Engine[T], error) {
	f, err := fileio.Open(path)
	if err != nil {
		return nil, err
	}

	e := &Engine[T]{file: f, codec: c}

	size, err := f.Size()
	if err != nil {
		return nil, err
	}
	if size == 0 {
		if err := e.initHeader(); err != nil {
			return nil, err
		}
	}

	return e, nil
}

// Close flushes and releases the underlying file handle.
func (e *Engine[T]) Close() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.file.Close()
}

// Add inserts v if absent. It returns true if v was inserted, false if it
// was already present. Unlike the source this engine was modeled on, I/O
// and codec failures are surfaced as a non-nil error rather than being
// conflated with "already present" -- callers must check the error, not
// just the bool.
func (e *Engine[T]) Add(v T) (bool, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	loc, err := e.locate(v)
	if err != nil {
		return false, err
	}

	switch loc.kind {
	case locatePresent:
		return false, nil

	case locateEmptyRoot:
		b, err := e.codec.Encode(v)
		if err != nil {
			return false, fmt.Errorf("avltree: encode: %w", err)
		}
		off, err := e.allocateNode(b)
		if err != nil {
			return false, err
		}
		if err := e.writeRoot(off); err != nil {
			return false, err
		}
		if err := e.writeCount(1); err != nil {
			return false, err
		}
		if err := e.rebalancePath([]int64{off}); err != nil {
			return false, err
		}
		return true, nil

	case locateMissingLeft, locateMissingRight:
		b, err := e.codec.Encode(v)
		if err != nil {
			return false, fmt.Errorf("avltree: encode: %w", err)
		}
		off, err := e.allocateNode(b)
		if err != nil {
			return false, err
		}

		parent := loc.path[len(loc.path)-1]
		if loc.kind == locateMissingLeft {
			if err := e.setLeft(parent, off); err != nil {
				return false, err
			}
		} else {
			if err := e.setRight(parent, off); err != nil {
				return false, err
			}
		}

		path := append(loc.path, off)
		if err := e.rebalancePath(path); err != nil {
			return false, err
		}

		count, err := e.readCount()
		if err != nil {
			return false, err
		}
		if err := e.writeCount(count + 1); err != nil {
			return false, err
		}
		return true, nil
	}

	panic("avltree: unreachable locate kind")
}

// Contains reports whether v is present. Cost is O(log n) node reads.
func (e *Engine[T]) Contains(v T) (bool, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	loc, err := e.locate(v)
	if err != nil {
		return false, err
	}
	return loc.kind == locatePresent, nil
}

// Size returns the number of elements currently stored.
func (e *Engine[T]) Size() (int64, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.readCount()
}

// IsEmpty reports whether the set holds no elements.
func (e *Engine[T]) IsEmpty() (bool, error) {
	n, err := e.Size()
	return n == 0, err
}

// First returns the minimum element. It returns ErrNoSuchElement if the
// set is empty.
func (e *Engine[T]) First() (T, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	var zero T
	count, err := e.readCount()
	if err != nil {
		return zero, err
	}
	if count == 0 {
		return zero, ErrNoSuchElement
	}

	cur, err := e.readRoot()
	if err != nil {
		return zero, err
	}
	for {
		left, err := e.left(cur)
		if err != nil {
			return zero, err
		}
		if left == absent {
			break
		}
		cur = left
	}
	return e.decodeValue(cur)
}

// Last returns the maximum element. It returns ErrNoSuchElement if the set
// is empty.
func (e *Engine[T]) Last() (T, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	var zero T
	count, err := e.readCount()
	if err != nil {
		return zero, err
	}
	if count == 0 {
		return zero, ErrNoSuchElement
	}

	cur, err := e.readRoot()
	if err != nil {
		return zero, err
	}
	for {
		right, err := e.right(cur)
		if err != nil {
			return zero, err
		}
		if right == absent {
			break
		}
		cur = right
	}
	return e.decodeValue(cur)
}

// Higher returns the strict successor of v: the smallest stored element
// greater than v. The second return is false if no such element exists.
func (e *Engine[T]) Higher(v T) (T, bool, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.higherFrom(v)
}

// Ceiling returns the non-strict successor of v: v itself if present,
// otherwise the smallest stored element greater than v.
func (e *Engine[T]) Ceiling(v T) (T, bool, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.ceilingFrom(v)
}

// Floor returns the non-strict predecessor of v: v itself if present,
// otherwise the largest stored element smaller than v.
func (e *Engine[T]) Floor(v T) (T, bool, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.floorFrom(v)
}

// Iterator returns a fresh in-order iterator positioned before the first
// element.
func (e *Engine[T]) Iterator() *Iterator[T] {
	return &Iterator[T]{engine: e}
}

// Remove is explicitly unsupported: the allocator is append-only.
func (e *Engine[T]) Remove(T) error { return ErrUnsupported }

// RemoveAll is explicitly unsupported.
func (e *Engine[T]) RemoveAll([]T) error { return ErrUnsupported }

// RetainAll is explicitly unsupported.
func (e *Engine[T]) RetainAll([]T) error { return ErrUnsupported }

// Clear is explicitly unsupported: the file shrinks only if the caller
// deletes and recreates it.
func (e *Engine[T]) Clear() error { return ErrUnsupported }

// ToArray is explicitly unsupported; use Iterator for ordered traversal
// without materializing the whole set in memory.
func (e *Engine[T]) ToArray() ([]T, error) { return nil, ErrUnsupported }

// ContainsAll is explicitly unsupported; call Contains per element
// instead.
func (e *Engine[T]) ContainsAll([]T) (bool, error) { return false, ErrUnsupported }
