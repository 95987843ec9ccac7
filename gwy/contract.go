package gwy

// Object kind names understood by Wrap.
const (
	KindContainer  = "GwyContainer"
	KindDataField  = "GwyDataField"
	KindDataLine   = "GwyDataLine"
	KindBrick      = "GwyBrick"
	KindSurface    = "GwySurface"
	KindSIUnit     = "GwySIUnit"
	KindGraphModel = "GwyGraphModel"
	KindGraphCurve = "GwyGraphCurveModel"
)

// FieldSpec describes one component of an object kind.
type FieldSpec struct {
	Name     string
	Type     Type
	Required bool

	// Kind, for object components, is the kind the nested object must have.
	Kind string

	// Default is reported by accessors when an optional component is absent.
	// It is never written into the node.
	Default Value
}

// Contract is the set of components an object kind defines. Components not
// listed are allowed and preserved untouched.
type Contract struct {
	Kind   string
	Fields []FieldSpec
}

// Field returns the spec for name.
func (c *Contract) Field(name string) (FieldSpec, bool) {
	for _, f := range c.Fields {
		if f.Name == name {
			return f, true
		}
	}
	return FieldSpec{}, false
}

// Required returns the names of all required components.
func (c *Contract) Required() []string {
	var names []string
	for _, f := range c.Fields {
		if f.Required {
			names = append(names, f.Name)
		}
	}
	return names
}

// Validate checks that n has the contract's kind, that every required
// component is present, and that every listed component that is present has
// the declared type. Nested objects with a declared kind must carry it.
func (c *Contract) Validate(n *Node) error {
	if n == nil {
		return &FieldError{Kind: c.Kind, Reason: "nil object"}
	}
	if n.Kind() != c.Kind {
		return &FieldError{Kind: c.Kind, Reason: "object is a " + n.Kind()}
	}
	for _, f := range c.Fields {
		v, ok := n.Get(f.Name)
		if !ok {
			if f.Required {
				return missingField(c.Kind, f.Name)
			}
			continue
		}
		if v.Type() != f.Type {
			return badField(c.Kind, f.Name, "expected %v, got %v", f.Type, v.Type())
		}
		if f.Type == TypeObject && f.Kind != "" {
			child := v.v.(*Node)
			if child == nil {
				return badField(c.Kind, f.Name, "nil object")
			}
			if child.Kind() != f.Kind {
				return badField(c.Kind, f.Name, "expected %s, got %s", f.Kind, child.Kind())
			}
		}
	}
	return nil
}

// Object is a typed view over a node of a known kind.
type Object interface {
	// Kind returns the object-kind name.
	Kind() string

	// ToNode returns the underlying node, including components this
	// package does not interpret. The node is shared, not copied.
	ToNode() *Node

	// Contract returns the component contract of the kind.
	Contract() *Contract
}

// Wrap validates n against the contract of its kind and returns the
// matching typed view. Kinds without a wrapper yield *Unknown.
func Wrap(n *Node) (Object, error) {
	if n == nil {
		return nil, &FieldError{Reason: "nil object"}
	}
	switch n.Kind() {
	case KindContainer:
		return ContainerFromNode(n)
	case KindDataField:
		return DataFieldFromNode(n)
	case KindDataLine:
		return DataLineFromNode(n)
	case KindBrick:
		return BrickFromNode(n)
	case KindSurface:
		return SurfaceFromNode(n)
	case KindSIUnit:
		return SIUnitFromNode(n)
	case KindGraphModel:
		return GraphModelFromNode(n)
	case KindGraphCurve:
		return GraphCurveFromNode(n)
	default:
		return &Unknown{node: n}, nil
	}
}

// Unknown is an object of a kind without a typed wrapper. It has an empty
// contract and is kept verbatim.
type Unknown struct {
	node *Node
}

func (u *Unknown) Kind() string  { return u.node.Kind() }
func (u *Unknown) ToNode() *Node { return u.node }

func (u *Unknown) Contract() *Contract {
	return &Contract{Kind: u.node.Kind()}
}

// optionalUnit wraps the named unit component if present.
func optionalUnit(n *Node, name string) (*SIUnit, error) {
	v, ok := n.Get(name)
	if !ok {
		return nil, nil
	}
	child, err := v.Object()
	if err != nil {
		return nil, badField(n.Kind(), name, "%v", err)
	}
	u, err := SIUnitFromNode(child)
	if err != nil {
		return nil, badField(n.Kind(), name, "%v", err)
	}
	return u, nil
}

// validateUnits checks that every listed unit component that is present is
// itself a valid unit.
func validateUnits(n *Node, names ...string) error {
	for _, name := range names {
		if _, err := optionalUnit(n, name); err != nil {
			return err
		}
	}
	return nil
}

// setUnit stores u under name, or removes the component when u is nil.
func setUnit(n *Node, name string, u *SIUnit) {
	if u == nil {
		n.Delete(name)
		return
	}
	n.Set(name, NewObject(u.ToNode()))
}
