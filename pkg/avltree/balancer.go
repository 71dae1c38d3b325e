package avltree

// The AVL balancer ascends the path recorded by the search walker after an
// insertion, recomputes heights, and performs single or double rotations
// when the balance invariant (|height(left) - height(right)| <= 1) is
// violated. Rotations are expressed purely in terms of offset rewrites --
// never in terms of in-memory node objects -- so the engine's memory
// footprint stays independent of tree size.

// rotateLeft promotes axis's right child to take axis's place. parent is
// axis's parent offset, or -1 if axis is the current root (in which case
// the header's root field is updated instead of a parent's child
// pointer).
func (e *Engine[T]) rotateLeft(axis, parent int64) error {
	newRoot, err := e.right(axis)
	if err != nil {
		return err
	}

	promoted, err := e.left(newRoot)
	if err != nil {
		return err
	}
	if err := e.setRight(axis, promoted); err != nil {
		return err
	}
	if err := e.setLeft(newRoot, axis); err != nil {
		return err
	}

	if err := e.recomputeHeight(axis); err != nil {
		return err
	}
	if err := e.recomputeHeight(newRoot); err != nil {
		return err
	}

	return e.attachChild(parent, axis, newRoot)
}

// rotateRight is the mirror of rotateLeft: it promotes axis's left child.
func (e *Engine[T]) rotateRight(axis, parent int64) error {
	newRoot, err := e.left(axis)
	if err != nil {
		return err
	}

	promoted, err := e.right(newRoot)
	if err != nil {
		return err
	}
	if err := e.setLeft(axis, promoted); err != nil {
		return err
	}
	if err := e.setRight(newRoot, axis); err != nil {
		return err
	}

	if err := e.recomputeHeight(axis); err != nil {
		return err
	}
	if err := e.recomputeHeight(newRoot); err != nil {
		return err
	}

	return e.attachChild(parent, axis, newRoot)
}

// recomputeHeight sets n's stored height to 1 + max(height(left), height(right)).
func (e *Engine[T]) recomputeHeight(n int64) error {
	left, err := e.left(n)
	if err != nil {
		return err
	}
	right, err := e.right(n)
	if err != nil {
		return err
	}
	hL, err := e.height(left)
	if err != nil {
		return err
	}
	hR, err := e.height(right)
	if err != nil {
		return err
	}
	return e.setHeight(n, 1+max32(hL, hR))
}

// attachChild rewires parent's child pointer that used to point at old to
// instead point at new. If parent is -1, old was the root, and the
// header's root field is updated instead.
func (e *Engine[T]) attachChild(parent, old, new int64) error {
	if parent == absent {
		return e.writeRoot(new)
	}

	left, err := e.left(parent)
	if err != nil {
		return err
	}
	if left == old {
		return e.setLeft(parent, new)
	}
	return e.setRight(parent, new)
}

// rebalancePath pops offsets top-to-bottom (leaf toward root), recomputing
// heights and rotating as needed, so that every ancestor's height is
// up-to-date even on paths where no rotation fires.
func (e *Engine[T]) rebalancePath(path []int64) error {
	for i := len(path) - 1; i >= 0; i-- {
		n := path[i]
		var parent int64 = absent
		if i > 0 {
			parent = path[i-1]
		}

		left, err := e.left(n)
		if err != nil {
			return err
		}
		right, err := e.right(n)
		if err != nil {
			return err
		}
		hL, err := e.height(left)
		if err != nil {
			return err
		}
		hR, err := e.height(right)
		if err != nil {
			return err
		}

		if abs32(hL-hR) <= 1 {
			if err := e.setHeight(n, 1+max32(hL, hR)); err != nil {
				return err
			}
			continue
		}

		if hL > hR {
			// Left-heavy.
			lc := left
			lcLeft, err := e.left(lc)
			if err != nil {
				return err
			}
			lcRight, err := e.right(lc)
			if err != nil {
				return err
			}
			hLL, err := e.height(lcLeft)
			if err != nil {
				return err
			}
			hLR, err := e.height(lcRight)
			if err != nil {
				return err
			}

			if hLL >= hLR {
				// Left-left case: single right rotation about n.
				if err := e.rotateRight(n, parent); err != nil {
					return err
				}
			} else {
				// Left-right case: left rotation about left(n), then
				// right rotation about n.
				if err := e.rotateLeft(lc, n); err != nil {
					return err
				}
				if err := e.rotateRight(n, parent); err != nil {
					return err
				}
			}
		} else {
			// Right-heavy.
			rc := right
			rcLeft, err := e.left(rc)
			if err != nil {
				return err
			}
			rcRight, err := e.right(rc)
			if err != nil {
				return err
			}
			hRL, err := e.height(rcLeft)
			if err != nil {
				return err
			}
			hRR, err := e.height(rcRight)
			if err != nil {
				return err
			}

			if hRR >= hRL {
				// Right-right case: single left rotation about n.
				if err := e.rotateLeft(n, parent); err != nil {
					return err
				}
			} else {
				// Right-left case: right rotation about right(n), then
				// left rotation about n.
				if err := e.rotateRight(rc, n); err != nil {
					return err
				}
				if err := e.rotateLeft(n, parent); err != nil {
					return err
				}
			}
		}
	}

	return nil
}

func max32(a, b int32) int32 {
	if a > b {
		return a
	}
	return b
}

func abs32(v int32) int32 {
	if v < 0 {
		return -v
	}
	return v
}
