package gwy

import "strings"

var siUnitContract = Contract{
	Kind: KindSIUnit,
	Fields: []FieldSpec{
		// Gwyddion omits the string for dimensionless units.
		{Name: "unitstr", Type: TypeString, Default: NewString("")},
	},
}

// SIUnit is a physical unit such as "m" or "A/V".
type SIUnit struct {
	node *Node
}

// NewSIUnit creates a unit from its textual form. The text is stored as
// given; no normalization is applied.
func NewSIUnit(unit string) (*SIUnit, error) {
	if strings.IndexByte(unit, 0) >= 0 {
		return nil, badField(KindSIUnit, "unitstr", "contains NUL")
	}
	n := NewNode(KindSIUnit)
	n.Set("unitstr", NewString(unit))
	return &SIUnit{node: n}, nil
}

// SIUnitFromNode validates n and takes ownership of it.
func SIUnitFromNode(n *Node) (*SIUnit, error) {
	if err := siUnitContract.Validate(n); err != nil {
		return nil, err
	}
	return &SIUnit{node: n}, nil
}

func (u *SIUnit) Kind() string        { return KindSIUnit }
func (u *SIUnit) ToNode() *Node       { return u.node }
func (u *SIUnit) Contract() *Contract { return &siUnitContract }

// Unit returns the unit text, "" for dimensionless.
func (u *SIUnit) Unit() string {
	s, _ := u.node.textOr("unitstr", "")
	return s
}

// SetUnit replaces the unit text.
func (u *SIUnit) SetUnit(unit string) error {
	if strings.IndexByte(unit, 0) >= 0 {
		return badField(KindSIUnit, "unitstr", "contains NUL")
	}
	u.node.Set("unitstr", NewString(unit))
	return nil
}

func (u *SIUnit) String() string {
	return u.Unit()
}
