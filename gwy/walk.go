package gwy

import (
	"errors"
	"fmt"
)

// SkipNode can be returned from a WalkFunc to skip the objects nested in
// the current one. Walk itself never returns it.
var SkipNode = errors.New("skip this object")

// WalkFunc is called for each object during traversal. path is the slash
// path of the component holding the object, "" for the root; object-array
// elements get an index suffix such as "/curves[1]".
// Return nil to continue walking, SkipNode to prune, or any other error to
// stop.
type WalkFunc func(path string, n *Node) error

// Walk visits root and every object nested in it, depth first, parents
// before children, in component order.
//
// Example:
//
//	gwy.Walk(doc.Root, func(path string, n *gwy.Node) error {
//	    fmt.Println(path, n.Kind(), n.Len())
//	    return nil
//	})
func Walk(root *Node, fn WalkFunc) error {
	if root == nil {
		return nil
	}
	err := walkNode(root, "", fn)
	if errors.Is(err, SkipNode) {
		return nil
	}
	return err
}

func walkNode(n *Node, path string, fn WalkFunc) error {
	if err := fn(path, n); err != nil {
		return err
	}

	var err error
	n.Range(func(name string, v Value) bool {
		childPath := path + "/" + name
		switch x := v.v.(type) {
		case *Node:
			err = walkChild(x, childPath, fn)
		case []*Node:
			for i, child := range x {
				if err = walkChild(child, fmt.Sprintf("%s[%d]", childPath, i), fn); err != nil {
					break
				}
			}
		}
		return err == nil
	})
	return err
}

// walkChild walks one nested object, absorbing SkipNode.
func walkChild(n *Node, path string, fn WalkFunc) error {
	if n == nil {
		return nil
	}
	if err := walkNode(n, path, fn); err != nil && !errors.Is(err, SkipNode) {
		return err
	}
	return nil
}
