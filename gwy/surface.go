package gwy

import "math"

var surfaceContract = Contract{
	Kind: KindSurface,
	Fields: []FieldSpec{
		{Name: "si_unit_xy", Type: TypeObject, Kind: KindSIUnit},
		{Name: "si_unit_z", Type: TypeObject, Kind: KindSIUnit},
		{Name: "data", Type: TypeDoubleArray, Required: true},
	},
}

// Point is one XYZ sample of a surface.
type Point struct {
	X, Y, Z float64
}

// Surface is an irregular point cloud of XYZ samples, stored as
// consecutive x, y, z triples.
type Surface struct {
	node *Node
}

// NewSurface creates a point cloud from points.
func NewSurface(points []Point) (*Surface, error) {
	data := make([]float64, 0, 3*len(points))
	for _, p := range points {
		data = append(data, p.X, p.Y, p.Z)
	}
	n := NewNode(KindSurface)
	n.Set("data", NewDoubleArray(data))
	return SurfaceFromNode(n)
}

// SurfaceFromNode validates n and takes ownership of it.
func SurfaceFromNode(n *Node) (*Surface, error) {
	s := &Surface{node: n}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Surface) Validate() error {
	if err := surfaceContract.Validate(s.node); err != nil {
		return err
	}
	data, _ := s.node.DoubleArray("data")
	if len(data)%3 != 0 {
		return badField(KindSurface, "data", "length %d is not a multiple of 3", len(data))
	}
	return validateUnits(s.node, "si_unit_xy", "si_unit_z")
}

func (s *Surface) Kind() string        { return KindSurface }
func (s *Surface) ToNode() *Node       { return s.node }
func (s *Surface) Contract() *Contract { return &surfaceContract }

// Len returns the number of points.
func (s *Surface) Len() int {
	data, _ := s.node.DoubleArray("data")
	return len(data) / 3
}

// Point returns point i.
func (s *Surface) Point(i int) Point {
	data, _ := s.node.DoubleArray("data")
	return Point{X: data[3*i], Y: data[3*i+1], Z: data[3*i+2]}
}

// Points returns a copy of all points.
func (s *Surface) Points() []Point {
	out := make([]Point, s.Len())
	for i := range out {
		out[i] = s.Point(i)
	}
	return out
}

// Bounds returns the componentwise minimum and maximum over all points.
// ok is false for an empty surface.
func (s *Surface) Bounds() (lo, hi Point, ok bool) {
	if s.Len() == 0 {
		return Point{}, Point{}, false
	}
	lo = Point{math.Inf(1), math.Inf(1), math.Inf(1)}
	hi = Point{math.Inf(-1), math.Inf(-1), math.Inf(-1)}
	for _, p := range s.Points() {
		lo = Point{math.Min(lo.X, p.X), math.Min(lo.Y, p.Y), math.Min(lo.Z, p.Z)}
		hi = Point{math.Max(hi.X, p.X), math.Max(hi.Y, p.Y), math.Max(hi.Z, p.Z)}
	}
	return lo, hi, true
}

func (s *Surface) UnitXY() *SIUnit {
	u, _ := optionalUnit(s.node, "si_unit_xy")
	return u
}

func (s *Surface) UnitZ() *SIUnit {
	u, _ := optionalUnit(s.node, "si_unit_z")
	return u
}

func (s *Surface) SetUnits(xy, z *SIUnit) {
	setUnit(s.node, "si_unit_xy", xy)
	setUnit(s.node, "si_unit_z", z)
}
