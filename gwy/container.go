package gwy

import "strings"

var containerContract = Contract{Kind: KindContainer}

// Container is a keyed collection of values. Gwyddion stores everything in
// one flat container keyed by slash paths such as "/0/data" and
// "/0/data/title"; nested containers are also accepted and navigated by
// Lookup.
type Container struct {
	node *Node
}

// NewContainer creates an empty container.
func NewContainer() *Container {
	return &Container{node: NewNode(KindContainer)}
}

// ContainerFromNode checks that n is a GwyContainer and takes ownership of
// it. Containers have no required components.
func ContainerFromNode(n *Node) (*Container, error) {
	if err := containerContract.Validate(n); err != nil {
		return nil, err
	}
	return &Container{node: n}, nil
}

func (c *Container) Kind() string        { return KindContainer }
func (c *Container) ToNode() *Node       { return c.node }
func (c *Container) Contract() *Contract { return &containerContract }

// Len returns the number of top-level keys.
func (c *Container) Len() int { return c.node.Len() }

// Keys returns the top-level keys in stored order.
func (c *Container) Keys() []string { return c.node.Keys() }

// Set stores v under key exactly as given. No intermediate containers are
// created.
func (c *Container) Set(key string, v Value) error {
	if key == "" {
		return badField(KindContainer, key, "empty key")
	}
	if strings.IndexByte(key, 0) >= 0 {
		return badField(KindContainer, key, "key contains NUL")
	}
	c.node.Set(key, v)
	return nil
}

// SetObject stores the node behind o under key.
func (c *Container) SetObject(key string, o Object) error {
	return c.Set(key, NewObject(o.ToNode()))
}

// Get returns the value stored under key at the top level.
func (c *Container) Get(key string) (Value, bool) {
	return c.node.Get(key)
}

// Delete removes a top-level key.
func (c *Container) Delete(key string) bool {
	return c.node.Delete(key)
}

// Lookup resolves path. A top-level key equal to path wins; otherwise the
// path is resolved component by component through nested containers, and
// at each level the remaining suffix is also tried as a direct key.
func (c *Container) Lookup(path string) (Value, bool) {
	if v, ok := c.node.Get(path); ok {
		return v, true
	}
	return lookupParts(c.node, SplitPath(path))
}

func lookupParts(n *Node, parts []string) (Value, bool) {
	if len(parts) == 0 {
		return Value{}, false
	}
	rest := strings.Join(parts, "/")
	for _, key := range []string{"/" + rest, rest} {
		if v, ok := n.Get(key); ok {
			return v, true
		}
	}
	if len(parts) == 1 {
		return Value{}, false
	}
	for _, key := range []string{parts[0], "/" + parts[0]} {
		v, ok := n.Get(key)
		if !ok || v.Type() != TypeObject {
			continue
		}
		child := v.v.(*Node)
		if child == nil || child.Kind() != KindContainer {
			continue
		}
		if v, ok := lookupParts(child, parts[1:]); ok {
			return v, true
		}
	}
	return Value{}, false
}

// Flatten returns a single-level container holding every value of c.
// Nested containers are dissolved and their keys joined onto the parent
// key; other values are shared, not copied. Two values mapping to the same
// key is an error.
func (c *Container) Flatten() (*Container, error) {
	out := NewContainer()
	if err := flattenInto(out.node, c.node, ""); err != nil {
		return nil, err
	}
	return out, nil
}

func flattenInto(dst, src *Node, prefix string) error {
	var err error
	src.Range(func(key string, v Value) bool {
		full := key
		if prefix != "" {
			full = JoinPath(prefix, key)
		}
		if v.Type() == TypeObject {
			if child := v.v.(*Node); child != nil && child.Kind() == KindContainer {
				err = flattenInto(dst, child, full)
				return err == nil
			}
		}
		if dst.Has(full) {
			err = badField(KindContainer, full, "key produced twice while flattening")
			return false
		}
		dst.Set(full, v)
		return true
	})
	return err
}

// Unflatten returns a container where every multi-component key is stored
// in nested containers named by its components. A key whose prefix is
// itself a key, such as "/0/data/title" next to "/0/data", keeps the
// remaining suffix as one key beside that value. Keys that end up at the
// top level are kept exactly as given.
func (c *Container) Unflatten() (*Container, error) {
	values := make(map[string]bool, c.node.Len())
	for _, key := range c.node.Keys() {
		values[CleanPath(key)] = true
	}

	out := NewContainer()
	var err error
	c.node.Range(func(key string, v Value) bool {
		parts := SplitPath(key)
		split := max(len(parts)-1, 0)
		for i := 1; i < len(parts); i++ {
			if values[JoinPath(parts[:i]...)] {
				split = i - 1
				break
			}
		}
		leaf := key
		if split > 0 {
			leaf = strings.Join(parts[split:], "/")
		}
		err = unflattenSet(out.node, key, parts[:split], leaf, v)
		return err == nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func unflattenSet(n *Node, key string, dir []string, leaf string, v Value) error {
	for _, p := range dir {
		cur, ok := n.Get(p)
		if !ok {
			child := NewNode(KindContainer)
			n.Set(p, NewObject(child))
			n = child
			continue
		}
		child, _ := cur.Object()
		if child == nil || child.Kind() != KindContainer {
			return badField(KindContainer, key, "component %q is not a container", p)
		}
		n = child
	}
	if n.Has(leaf) {
		return badField(KindContainer, key, "key produced twice while unflattening")
	}
	n.Set(leaf, v)
	return nil
}

// objectAt resolves path to a nested node.
func (c *Container) objectAt(path string) (*Node, error) {
	v, ok := c.Lookup(path)
	if !ok {
		return nil, badField(KindContainer, path, "no such key")
	}
	n, err := v.Object()
	if err != nil {
		return nil, &TypeMismatchError{Field: path, Want: TypeObject, Got: v.Type()}
	}
	return n, nil
}

// DataField returns the grid data at path.
func (c *Container) DataField(path string) (*DataField, error) {
	n, err := c.objectAt(path)
	if err != nil {
		return nil, err
	}
	return DataFieldFromNode(n)
}

func (c *Container) DataLine(path string) (*DataLine, error) {
	n, err := c.objectAt(path)
	if err != nil {
		return nil, err
	}
	return DataLineFromNode(n)
}

func (c *Container) Brick(path string) (*Brick, error) {
	n, err := c.objectAt(path)
	if err != nil {
		return nil, err
	}
	return BrickFromNode(n)
}

func (c *Container) Surface(path string) (*Surface, error) {
	n, err := c.objectAt(path)
	if err != nil {
		return nil, err
	}
	return SurfaceFromNode(n)
}

func (c *Container) SIUnit(path string) (*SIUnit, error) {
	n, err := c.objectAt(path)
	if err != nil {
		return nil, err
	}
	return SIUnitFromNode(n)
}

func (c *Container) GraphModel(path string) (*GraphModel, error) {
	n, err := c.objectAt(path)
	if err != nil {
		return nil, err
	}
	return GraphModelFromNode(n)
}
