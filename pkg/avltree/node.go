package avltree

// The node accessor reads and writes the fields of a node record given its
// offset. A sentinel offset of -1 ("absent") is tolerated by all read
// accessors: left/right return -1, height returns -1, payloadLen returns
// -1. Writes to -1 are forbidden.
//
// Node layout, relative to its offset:
//
//	+0  8 bytes  left child offset  (-1 = absent)
//	+8  8 bytes  right child offset (-1 = absent)
//	+16 4 bytes  subtree height     (leaf = 0)
//	+20 4 bytes  payload byte length P
//	+24 P bytes  payload

func (e *Engine[T]) left(off int64) (int64, error) {
	if off == absent {
		return absent, nil
	}
	return e.file.ReadInt64(off + relLeft)
}

func (e *Engine[T]) setLeft(off int64, val int64) error {
	if off == absent {
		panic("avltree: write to absent node")
	}
	return e.file.WriteInt64(off+relLeft, val)
}

func (e *Engine[T]) right(off int64) (int64, error) {
	if off == absent {
		return absent, nil
	}
	return e.file.ReadInt64(off + relRight)
}

func (e *Engine[T]) setRight(off int64, val int64) error {
	if off == absent {
		panic("avltree: write to absent node")
	}
	return e.file.WriteInt64(off+relRight, val)
}

func (e *Engine[T]) height(off int64) (int32, error) {
	if off == absent {
		return -1, nil
	}
	return e.file.ReadInt32(off + relHeight)
}

func (e *Engine[T]) setHeight(off int64, h int32) error {
	if off == absent {
		panic("avltree: write to absent node")
	}
	return e.file.WriteInt32(off+relHeight, h)
}

func (e *Engine[T]) payloadLen(off int64) (int32, error) {
	if off == absent {
		return -1, nil
	}
	return e.file.ReadInt32(off + relPayloadLen)
}

func (e *Engine[T]) readPayload(off int64) ([]byte, error) {
	if off == absent {
		panic("avltree: read payload of absent node")
	}
	plen, err := e.payloadLen(off)
	if err != nil {
		return nil, err
	}
	return e.file.ReadAt(off+relPayload, int(plen))
}

// writePayload writes the payload bytes for a node just allocated at off
// and returns the offset immediately following the node (its tail).
func (e *Engine[T]) writePayload(off int64, payload []byte) (int64, error) {
	if off == absent {
		panic("avltree: write to absent node")
	}
	if err := e.file.WriteInt32(off+relPayloadLen, int32(len(payload))); err != nil {
		return 0, err
	}
	if len(payload) > 0 {
		if err := e.file.WriteAt(off+relPayload, payload); err != nil {
			return 0, err
		}
	}
	return off + nodeFixedSize + int64(len(payload)), nil
}

// decodeValue reads and decodes the value stored at off.
func (e *Engine[T]) decodeValue(off int64) (T, error) {
	var zero T
	raw, err := e.readPayload(off)
	if err != nil {
		return zero, err
	}
	return e.codec.Decode(raw)
}
