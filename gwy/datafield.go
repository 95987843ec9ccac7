package gwy

import "slices"

var dataFieldContract = Contract{
	Kind: KindDataField,
	Fields: []FieldSpec{
		{Name: "xres", Type: TypeInt32, Required: true},
		{Name: "yres", Type: TypeInt32, Required: true},
		{Name: "xreal", Type: TypeDouble, Required: true},
		{Name: "yreal", Type: TypeDouble, Required: true},
		{Name: "xoff", Type: TypeDouble, Default: NewDouble(0)},
		{Name: "yoff", Type: TypeDouble, Default: NewDouble(0)},
		{Name: "si_unit_xy", Type: TypeObject, Kind: KindSIUnit},
		{Name: "si_unit_z", Type: TypeObject, Kind: KindSIUnit},
		{Name: "data", Type: TypeDoubleArray, Required: true},
	},
}

// DataField is a two-dimensional regular grid of samples, stored row by row.
type DataField struct {
	node *Node
}

// NewDataField creates a grid of xres columns and yres rows covering
// xreal × yreal physical units. data is stored row-major and is not copied.
func NewDataField(xres, yres int, xreal, yreal float64, data []float64) (*DataField, error) {
	xr, err := toRes(KindDataField, "xres", xres)
	if err != nil {
		return nil, err
	}
	yr, err := toRes(KindDataField, "yres", yres)
	if err != nil {
		return nil, err
	}
	n := NewNode(KindDataField)
	n.Set("xres", NewInt32(xr))
	n.Set("yres", NewInt32(yr))
	n.Set("xreal", NewDouble(xreal))
	n.Set("yreal", NewDouble(yreal))
	n.Set("data", NewDoubleArray(data))
	return DataFieldFromNode(n)
}

// NewDataFieldFromRows creates a grid from a slice of equally long rows.
func NewDataFieldFromRows(rows [][]float64, xreal, yreal float64) (*DataField, error) {
	if len(rows) == 0 || len(rows[0]) == 0 {
		return nil, badField(KindDataField, "data", "no samples")
	}
	xres := len(rows[0])
	data := make([]float64, 0, xres*len(rows))
	for i, row := range rows {
		if len(row) != xres {
			return nil, badField(KindDataField, "data", "row %d has %d samples, expected %d", i, len(row), xres)
		}
		data = append(data, row...)
	}
	return NewDataField(xres, len(rows), xreal, yreal, data)
}

// DataFieldFromNode validates n and takes ownership of it.
func DataFieldFromNode(n *Node) (*DataField, error) {
	f := &DataField{node: n}
	if err := f.Validate(); err != nil {
		return nil, err
	}
	return f, nil
}

// Validate re-checks the contract and the sampling invariants, e.g. after
// the node was modified directly.
func (f *DataField) Validate() error {
	n := f.node
	if err := dataFieldContract.Validate(n); err != nil {
		return err
	}
	xres, _ := n.Int32("xres")
	yres, _ := n.Int32("yres")
	xreal, _ := n.Double("xreal")
	yreal, _ := n.Double("yreal")
	if err := checkExtent(KindDataField, "xres", "xreal", xres, xreal); err != nil {
		return err
	}
	if err := checkExtent(KindDataField, "yres", "yreal", yres, yreal); err != nil {
		return err
	}
	data, _ := n.DoubleArray("data")
	if err := checkDataLen(KindDataField, len(data), xres, yres); err != nil {
		return err
	}
	return validateUnits(n, "si_unit_xy", "si_unit_z")
}

func (f *DataField) Kind() string        { return KindDataField }
func (f *DataField) ToNode() *Node       { return f.node }
func (f *DataField) Contract() *Contract { return &dataFieldContract }

// XRes returns the number of columns.
func (f *DataField) XRes() int {
	v, _ := f.node.Int32("xres")
	return int(v)
}

// YRes returns the number of rows.
func (f *DataField) YRes() int {
	v, _ := f.node.Int32("yres")
	return int(v)
}

// XReal returns the physical width.
func (f *DataField) XReal() float64 {
	v, _ := f.node.Double("xreal")
	return v
}

// YReal returns the physical height.
func (f *DataField) YReal() float64 {
	v, _ := f.node.Double("yreal")
	return v
}

// XOffset returns the physical x coordinate of the top-left corner.
func (f *DataField) XOffset() float64 {
	v, _ := f.node.doubleOr("xoff", 0)
	return v
}

// YOffset returns the physical y coordinate of the top-left corner.
func (f *DataField) YOffset() float64 {
	v, _ := f.node.doubleOr("yoff", 0)
	return v
}

// SetOffsets sets the physical position of the top-left corner.
func (f *DataField) SetOffsets(xoff, yoff float64) {
	f.node.Set("xoff", NewDouble(xoff))
	f.node.Set("yoff", NewDouble(yoff))
}

// XMeasure returns the physical width of one column.
func (f *DataField) XMeasure() float64 {
	return f.XReal() / float64(f.XRes())
}

// YMeasure returns the physical height of one row.
func (f *DataField) YMeasure() float64 {
	return f.YReal() / float64(f.YRes())
}

// Data returns the samples row by row. The slice is shared with the node.
func (f *DataField) Data() []float64 {
	v, _ := f.node.DoubleArray("data")
	return v
}

// At returns the sample in column col of row row.
func (f *DataField) At(col, row int) float64 {
	return f.Data()[row*f.XRes()+col]
}

// Row returns row i. The slice is shared with the node.
func (f *DataField) Row(i int) []float64 {
	xres := f.XRes()
	return f.Data()[i*xres : (i+1)*xres : (i+1)*xres]
}

// Rows returns a copy of the samples as yres rows of xres values.
func (f *DataField) Rows() [][]float64 {
	data := slices.Clone(f.Data())
	xres, yres := f.XRes(), f.YRes()
	rows := make([][]float64, yres)
	for i := range rows {
		rows[i] = data[i*xres : (i+1)*xres : (i+1)*xres]
	}
	return rows
}

// UnitXY returns the lateral unit, or nil when none is stored.
func (f *DataField) UnitXY() *SIUnit {
	u, _ := optionalUnit(f.node, "si_unit_xy")
	return u
}

// UnitZ returns the value unit, or nil when none is stored.
func (f *DataField) UnitZ() *SIUnit {
	u, _ := optionalUnit(f.node, "si_unit_z")
	return u
}

// SetUnits stores the lateral and value units. A nil unit removes it.
// The units become owned by the field.
func (f *DataField) SetUnits(xy, z *SIUnit) {
	setUnit(f.node, "si_unit_xy", xy)
	setUnit(f.node, "si_unit_z", z)
}
