package avltree

import "fmt"

// ValidateInvariants walks the on-disk tree from the root and verifies,
// at every reachable node, that the stored height matches 1 +
// max(height(left), height(right)) and that the AVL balance factor stays
// within [-1, 1] (spec.md §8 invariant 2), then checks that the number of
// reachable nodes equals the stored element count (invariant 4). It is
// exported only to this package's test binary -- avltree_test can call it
// because export_test.go is compiled into the same test build -- and has
// no place in the library's public surface.
func (e *Engine[T]) ValidateInvariants() error {
	e.mu.Lock()
	defer e.mu.Unlock()

	root, err := e.readRoot()
	if err != nil {
		return err
	}
	count, err := e.readCount()
	if err != nil {
		return err
	}

	reached, _, err := e.validateSubtree(root)
	if err != nil {
		return err
	}
	if reached != count {
		return fmt.Errorf("avltree: reachability mismatch: %d reachable nodes, count=%d", reached, count)
	}
	return nil
}

// validateSubtree recursively checks n's subtree and returns the number of
// reachable nodes and n's height.
func (e *Engine[T]) validateSubtree(n int64) (int64, int32, error) {
	if n == absent {
		return 0, -1, nil
	}

	left, err := e.left(n)
	if err != nil {
		return 0, 0, err
	}
	right, err := e.right(n)
	if err != nil {
		return 0, 0, err
	}

	leftCount, leftHeight, err := e.validateSubtree(left)
	if err != nil {
		return 0, 0, err
	}
	rightCount, rightHeight, err := e.validateSubtree(right)
	if err != nil {
		return 0, 0, err
	}

	storedHeight, err := e.height(n)
	if err != nil {
		return 0, 0, err
	}
	if wantHeight := 1 + max32(leftHeight, rightHeight); storedHeight != wantHeight {
		return 0, 0, fmt.Errorf("avltree: node at offset %d: stored height %d, want %d", n, storedHeight, wantHeight)
	}

	if balance := leftHeight - rightHeight; balance < -1 || balance > 1 {
		return 0, 0, fmt.Errorf("avltree: node at offset %d: balance factor %d out of [-1,1]", n, balance)
	}

	return leftCount + rightCount + 1, storedHeight, nil
}
