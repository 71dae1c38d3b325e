package avltree

// The bump allocator appends new nodes at the "next free" offset and
// advances it past the new node's tail. Offsets are never reused and the
// file is never compacted.

// allocateNode writes a new node with no children, height 0, and the given
// payload at the current next-free offset, advances next-free past its
// tail, and returns the new node's offset.
func (e *Engine[T]) allocateNode(payload []byte) (int64, error) {
	off, err := e.readNextFree()
	if err != nil {
		return 0, err
	}

	if err := e.setLeft(off, absent); err != nil {
		return 0, err
	}
	if err := e.setRight(off, absent); err != nil {
		return 0, err
	}
	if err := e.file.WriteInt32(off+relHeight, 0); err != nil {
		return 0, err
	}

	tail, err := e.writePayload(off, payload)
	if err != nil {
		return 0, err
	}

	if err := e.writeNextFree(tail); err != nil {
		return 0, err
	}

	return off, nil
}
