package gwy

var dataLineContract = Contract{
	Kind: KindDataLine,
	Fields: []FieldSpec{
		{Name: "res", Type: TypeInt32, Required: true},
		{Name: "real", Type: TypeDouble, Required: true},
		{Name: "off", Type: TypeDouble, Default: NewDouble(0)},
		{Name: "si_unit_x", Type: TypeObject, Kind: KindSIUnit},
		{Name: "si_unit_y", Type: TypeObject, Kind: KindSIUnit},
		{Name: "data", Type: TypeDoubleArray, Required: true},
	},
}

// DataLine is a one-dimensional regular profile.
type DataLine struct {
	node *Node
}

// NewDataLine creates a profile of len(data) samples spanning length
// physical units.
func NewDataLine(length float64, data []float64) (*DataLine, error) {
	res, err := toRes(KindDataLine, "res", len(data))
	if err != nil {
		return nil, err
	}
	n := NewNode(KindDataLine)
	n.Set("res", NewInt32(res))
	n.Set("real", NewDouble(length))
	n.Set("data", NewDoubleArray(data))
	return DataLineFromNode(n)
}

// DataLineFromNode validates n and takes ownership of it.
func DataLineFromNode(n *Node) (*DataLine, error) {
	l := &DataLine{node: n}
	if err := l.Validate(); err != nil {
		return nil, err
	}
	return l, nil
}

func (l *DataLine) Validate() error {
	n := l.node
	if err := dataLineContract.Validate(n); err != nil {
		return err
	}
	res, _ := n.Int32("res")
	length, _ := n.Double("real")
	if err := checkExtent(KindDataLine, "res", "real", res, length); err != nil {
		return err
	}
	data, _ := n.DoubleArray("data")
	if err := checkDataLen(KindDataLine, len(data), res); err != nil {
		return err
	}
	return validateUnits(n, "si_unit_x", "si_unit_y")
}

func (l *DataLine) Kind() string        { return KindDataLine }
func (l *DataLine) ToNode() *Node       { return l.node }
func (l *DataLine) Contract() *Contract { return &dataLineContract }

func (l *DataLine) Res() int {
	v, _ := l.node.Int32("res")
	return int(v)
}

func (l *DataLine) Real() float64 {
	v, _ := l.node.Double("real")
	return v
}

func (l *DataLine) Offset() float64 {
	v, _ := l.node.doubleOr("off", 0)
	return v
}

func (l *DataLine) SetOffset(off float64) {
	l.node.Set("off", NewDouble(off))
}

// Measure returns the physical length of one sample.
func (l *DataLine) Measure() float64 {
	return l.Real() / float64(l.Res())
}

// Data returns the samples. The slice is shared with the node.
func (l *DataLine) Data() []float64 {
	v, _ := l.node.DoubleArray("data")
	return v
}

func (l *DataLine) UnitX() *SIUnit {
	u, _ := optionalUnit(l.node, "si_unit_x")
	return u
}

func (l *DataLine) UnitY() *SIUnit {
	u, _ := optionalUnit(l.node, "si_unit_y")
	return u
}

// SetUnits stores the abscissa and value units. A nil unit removes it.
func (l *DataLine) SetUnits(x, y *SIUnit) {
	setUnit(l.node, "si_unit_x", x)
	setUnit(l.node, "si_unit_y", y)
}
