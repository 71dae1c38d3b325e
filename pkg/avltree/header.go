package avltree

// The header manager owns the three fixed-position metadata fields at the
// start of the file: element count, next-free byte offset, and root node
// offset. Every access uses an absolute seek plus fixed-width integer I/O;
// callers never cache header values across mutating operations.

func (e *Engine[T]) readCount() (int64, error) {
	return e.file.ReadInt64(offCount)
}

func (e *Engine[T]) writeCount(n int64) error {
	return e.file.WriteInt64(offCount, n)
}

func (e *Engine[T]) readNextFree() (int64, error) {
	return e.file.ReadInt64(offNextFree)
}

func (e *Engine[T]) writeNextFree(off int64) error {
	return e.file.WriteInt64(offNextFree, off)
}

func (e *Engine[T]) readRoot() (int64, error) {
	return e.file.ReadInt64(offRoot)
}

func (e *Engine[T]) writeRoot(off int64) error {
	return e.file.WriteInt64(offRoot, off)
}

// initHeader initializes a freshly created, empty file: count=0,
// next-free=headerSize, root=headerSize (the root sentinel).
func (e *Engine[T]) initHeader() error {
	if err := e.writeCount(0); err != nil {
		return err
	}
	if err := e.writeNextFree(headerSize); err != nil {
		return err
	}
	return e.writeRoot(headerSize)
}
