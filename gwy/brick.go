package gwy

var brickContract = Contract{
	Kind: KindBrick,
	Fields: []FieldSpec{
		{Name: "xres", Type: TypeInt32, Required: true},
		{Name: "yres", Type: TypeInt32, Required: true},
		{Name: "zres", Type: TypeInt32, Required: true},
		{Name: "xreal", Type: TypeDouble, Required: true},
		{Name: "yreal", Type: TypeDouble, Required: true},
		{Name: "zreal", Type: TypeDouble, Required: true},
		{Name: "xoff", Type: TypeDouble, Default: NewDouble(0)},
		{Name: "yoff", Type: TypeDouble, Default: NewDouble(0)},
		{Name: "zoff", Type: TypeDouble, Default: NewDouble(0)},
		{Name: "si_unit_x", Type: TypeObject, Kind: KindSIUnit},
		{Name: "si_unit_y", Type: TypeObject, Kind: KindSIUnit},
		{Name: "si_unit_z", Type: TypeObject, Kind: KindSIUnit},
		{Name: "si_unit_w", Type: TypeObject, Kind: KindSIUnit},
		{Name: "data", Type: TypeDoubleArray, Required: true},
		{Name: "calibration", Type: TypeObject, Kind: KindDataLine},
	},
}

var brickAxes = [3]string{"x", "y", "z"}

// Brick is a three-dimensional regular grid (volume data). Samples are
// stored plane by plane: index (z*yres + y)*xres + x.
type Brick struct {
	node *Node
}

// NewBrick creates a volume of xres × yres × zres samples. data is not copied.
func NewBrick(xres, yres, zres int, xreal, yreal, zreal float64, data []float64) (*Brick, error) {
	var res [3]int32
	for i, r := range []int{xres, yres, zres} {
		v, err := toRes(KindBrick, brickAxes[i]+"res", r)
		if err != nil {
			return nil, err
		}
		res[i] = v
	}
	n := NewNode(KindBrick)
	n.Set("xres", NewInt32(res[0]))
	n.Set("yres", NewInt32(res[1]))
	n.Set("zres", NewInt32(res[2]))
	n.Set("xreal", NewDouble(xreal))
	n.Set("yreal", NewDouble(yreal))
	n.Set("zreal", NewDouble(zreal))
	n.Set("data", NewDoubleArray(data))
	return BrickFromNode(n)
}

// BrickFromNode validates n and takes ownership of it.
func BrickFromNode(n *Node) (*Brick, error) {
	b := &Brick{node: n}
	if err := b.Validate(); err != nil {
		return nil, err
	}
	return b, nil
}

func (b *Brick) Validate() error {
	n := b.node
	if err := brickContract.Validate(n); err != nil {
		return err
	}
	var res [3]int32
	for i, axis := range brickAxes {
		res[i], _ = n.Int32(axis + "res")
		extent, _ := n.Double(axis + "real")
		if err := checkExtent(KindBrick, axis+"res", axis+"real", res[i], extent); err != nil {
			return err
		}
	}
	data, _ := n.DoubleArray("data")
	if err := checkDataLen(KindBrick, len(data), res[0], res[1], res[2]); err != nil {
		return err
	}
	if err := validateUnits(n, "si_unit_x", "si_unit_y", "si_unit_z", "si_unit_w"); err != nil {
		return err
	}
	if v, ok := n.Get("calibration"); ok {
		child, _ := v.Object()
		cal, err := DataLineFromNode(child)
		if err != nil {
			return badField(KindBrick, "calibration", "%v", err)
		}
		if int32(cal.Res()) != res[2] {
			return badField(KindBrick, "calibration", "expected %d samples, got %d", res[2], cal.Res())
		}
	}
	return nil
}

func (b *Brick) Kind() string        { return KindBrick }
func (b *Brick) ToNode() *Node       { return b.node }
func (b *Brick) Contract() *Contract { return &brickContract }

// Res returns the resolutions along x, y and z.
func (b *Brick) Res() (xres, yres, zres int) {
	x, _ := b.node.Int32("xres")
	y, _ := b.node.Int32("yres")
	z, _ := b.node.Int32("zres")
	return int(x), int(y), int(z)
}

// Real returns the physical extents along x, y and z.
func (b *Brick) Real() (xreal, yreal, zreal float64) {
	xreal, _ = b.node.Double("xreal")
	yreal, _ = b.node.Double("yreal")
	zreal, _ = b.node.Double("zreal")
	return xreal, yreal, zreal
}

// Offsets returns the physical origin.
func (b *Brick) Offsets() (xoff, yoff, zoff float64) {
	xoff, _ = b.node.doubleOr("xoff", 0)
	yoff, _ = b.node.doubleOr("yoff", 0)
	zoff, _ = b.node.doubleOr("zoff", 0)
	return xoff, yoff, zoff
}

func (b *Brick) SetOffsets(xoff, yoff, zoff float64) {
	b.node.Set("xoff", NewDouble(xoff))
	b.node.Set("yoff", NewDouble(yoff))
	b.node.Set("zoff", NewDouble(zoff))
}

// Data returns the samples. The slice is shared with the node.
func (b *Brick) Data() []float64 {
	v, _ := b.node.DoubleArray("data")
	return v
}

// At returns the sample at column x, row y, level z.
func (b *Brick) At(x, y, z int) float64 {
	xres, yres, _ := b.Res()
	return b.Data()[(z*yres+y)*xres+x]
}

// Plane returns a copy of level z as a data field.
func (b *Brick) Plane(z int) (*DataField, error) {
	xres, yres, zres := b.Res()
	if z < 0 || z >= zres {
		return nil, badField(KindBrick, "data", "level %d out of range [0, %d)", z, zres)
	}
	xreal, yreal, _ := b.Real()
	start := z * xres * yres
	plane := append([]float64(nil), b.Data()[start:start+xres*yres]...)
	return NewDataField(xres, yres, xreal, yreal, plane)
}

// Calibration returns the non-linear z axis calibration, or nil.
func (b *Brick) Calibration() *DataLine {
	v, ok := b.node.Get("calibration")
	if !ok {
		return nil
	}
	child, _ := v.Object()
	l, _ := DataLineFromNode(child)
	return l
}

// SetCalibration stores a z calibration with one sample per level. A nil
// line removes it.
func (b *Brick) SetCalibration(l *DataLine) error {
	if l == nil {
		b.node.Delete("calibration")
		return nil
	}
	if _, _, zres := b.Res(); l.Res() != zres {
		return badField(KindBrick, "calibration", "expected %d samples, got %d", zres, l.Res())
	}
	b.node.Set("calibration", NewObject(l.ToNode()))
	return nil
}

// Unit returns the unit stored under axis "x", "y", "z" or "w" (values).
func (b *Brick) Unit(axis string) *SIUnit {
	u, _ := optionalUnit(b.node, "si_unit_"+axis)
	return u
}

// SetUnit stores the unit for axis "x", "y", "z" or "w".
func (b *Brick) SetUnit(axis string, u *SIUnit) error {
	switch axis {
	case "x", "y", "z", "w":
	default:
		return badField(KindBrick, "si_unit_"+axis, "unknown axis")
	}
	setUnit(b.node, "si_unit_"+axis, u)
	return nil
}
