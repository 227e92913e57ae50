// Package nested provides a typed tree addressed by string paths.
//
// A Node is either a leaf holding a value or a branch holding named
// children. SetIn creates intermediate branches on demand; GetIn walks a path
// and reports whether a leaf was found at its end.
//
//	var sheet nested.Node[int64]
//	_ = sheet.SetIn([]string{"2024-03", "groceries"}, 40000)
//	amount, ok := sheet.GetIn([]string{"2024-03", "groceries"})
package nested

import (
	"errors"
	"fmt"
	"strings"
)

// ErrNotBranch is returned when a path runs through a leaf.
var ErrNotBranch = errors.New("path crosses a leaf")

// Node is a leaf or a branch. The zero value is an empty branch.
type Node[V any] struct {
	leaf     bool
	value    V
	children map[string]*Node[V]
}

// Leaf returns a leaf node holding v.
func Leaf[V any](v V) *Node[V] {
	return &Node[V]{leaf: true, value: v}
}

// IsLeaf reports whether n holds a value.
func (n *Node[V]) IsLeaf() bool {
	return n.leaf
}

// Value returns the leaf value and whether n is a leaf.
func (n *Node[V]) Value() (V, bool) {
	return n.value, n.leaf
}

// SetIn stores v at path, creating branches along the way. The final key is
// replaced even if it currently holds a branch. An empty path is a no-op.
func (n *Node[V]) SetIn(path []string, v V) error {
	if len(path) == 0 {
		return nil
	}
	if n.leaf {
		return fmt.Errorf("%w: at root", ErrNotBranch)
	}

	node := n
	for i, key := range path {
		if node.children == nil {
			node.children = make(map[string]*Node[V])
		}

		if i == len(path)-1 {
			node.children[key] = Leaf(v)
			return nil
		}

		child, ok := node.children[key]
		if !ok {
			child = &Node[V]{}
			node.children[key] = child
		}
		if child.leaf {
			return fmt.Errorf("%w: %s", ErrNotBranch, strings.Join(path[:i+1], "."))
		}
		node = child
	}
	return nil
}

// Branch makes sure a branch exists at path, creating it if needed.
func (n *Node[V]) Branch(path []string) error {
	if n.leaf {
		return fmt.Errorf("%w: at root", ErrNotBranch)
	}
	node := n
	for i, key := range path {
		if node.children == nil {
			node.children = make(map[string]*Node[V])
		}
		child, ok := node.children[key]
		if !ok {
			child = &Node[V]{}
			node.children[key] = child
		}
		if child.leaf {
			return fmt.Errorf("%w: %s", ErrNotBranch, strings.Join(path[:i+1], "."))
		}
		node = child
	}
	return nil
}

// GetIn returns the leaf value at path. It reports false when the path does
// not exist, ends on a branch, or runs through a leaf.
func (n *Node[V]) GetIn(path []string) (V, bool) {
	node := n.Get(path)
	if node == nil {
		var zero V
		return zero, false
	}
	return node.Value()
}

// Get returns the node at path, or nil if there is none.
func (n *Node[V]) Get(path []string) *Node[V] {
	node := n
	for _, key := range path {
		if node.leaf {
			return nil
		}
		child, ok := node.children[key]
		if !ok {
			return nil
		}
		node = child
	}
	return node
}

// Delete removes whatever is stored at path.
func (n *Node[V]) Delete(path []string) {
	if len(path) == 0 {
		return
	}
	parent := n.Get(path[:len(path)-1])
	if parent == nil || parent.leaf {
		return
	}
	delete(parent.children, path[len(path)-1])
}

// Keys returns the child keys of the branch at path.
func (n *Node[V]) Keys(path []string) []string {
	node := n.Get(path)
	if node == nil || node.leaf {
		return nil
	}
	keys := make([]string, 0, len(node.children))
	for k := range node.children {
		keys = append(keys, k)
	}
	return keys
}
