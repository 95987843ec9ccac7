package gwy

import (
	"fmt"
	"strings"
)

var graphModelContract = Contract{
	Kind: KindGraphModel,
	Fields: []FieldSpec{
		{Name: "curves", Type: TypeObjectArray, Required: true},
		{Name: "title", Type: TypeString, Default: NewString("")},
		{Name: "top_label", Type: TypeString, Default: NewString("")},
		{Name: "bottom_label", Type: TypeString, Default: NewString("")},
		{Name: "left_label", Type: TypeString, Default: NewString("")},
		{Name: "right_label", Type: TypeString, Default: NewString("")},
		{Name: "x_unit", Type: TypeObject, Kind: KindSIUnit},
		{Name: "y_unit", Type: TypeObject, Kind: KindSIUnit},
		{Name: "x_is_logarithmic", Type: TypeBool, Default: NewBool(false)},
		{Name: "y_is_logarithmic", Type: TypeBool, Default: NewBool(false)},
		{Name: "label.visible", Type: TypeBool, Default: NewBool(true)},
	},
}

var graphCurveContract = Contract{
	Kind: KindGraphCurve,
	Fields: []FieldSpec{
		{Name: "xdata", Type: TypeDoubleArray, Required: true},
		{Name: "ydata", Type: TypeDoubleArray, Required: true},
		{Name: "description", Type: TypeString, Default: NewString("")},
		{Name: "color.red", Type: TypeDouble, Default: NewDouble(0)},
		{Name: "color.green", Type: TypeDouble, Default: NewDouble(0)},
		{Name: "color.blue", Type: TypeDouble, Default: NewDouble(0)},
		{Name: "type", Type: TypeInt32, Default: NewInt32(int32(CurveLine))},
		{Name: "point_type", Type: TypeInt32, Default: NewInt32(0)},
		{Name: "point_size", Type: TypeInt32, Default: NewInt32(5)},
		{Name: "line_style", Type: TypeInt32, Default: NewInt32(0)},
		{Name: "line_size", Type: TypeInt32, Default: NewInt32(1)},
	},
}

// CurveMode is how a graph curve is drawn.
type CurveMode int32

const (
	CurveHidden CurveMode = iota
	CurvePoints
	CurveLine
	CurveLinePoints
)

func (m CurveMode) Valid() bool {
	return m >= CurveHidden && m <= CurveLinePoints
}

func (m CurveMode) String() string {
	switch m {
	case CurveHidden:
		return "hidden"
	case CurvePoints:
		return "points"
	case CurveLine:
		return "line"
	case CurveLinePoints:
		return "line-points"
	default:
		return fmt.Sprintf("CurveMode(%d)", int32(m))
	}
}

// Color is an RGB color with components in [0, 1].
type Color struct {
	R, G, B float64
}

// GraphCurve is one curve of a graph: paired x and y samples plus
// presentation attributes.
type GraphCurve struct {
	node *Node
}

// NewGraphCurve creates a line curve. x and y must have equal length and
// are not copied.
func NewGraphCurve(description string, x, y []float64) (*GraphCurve, error) {
	if strings.IndexByte(description, 0) >= 0 {
		return nil, badField(KindGraphCurve, "description", "contains NUL")
	}
	n := NewNode(KindGraphCurve)
	n.Set("xdata", NewDoubleArray(x))
	n.Set("ydata", NewDoubleArray(y))
	n.Set("description", NewString(description))
	n.Set("type", NewInt32(int32(CurveLine)))
	return GraphCurveFromNode(n)
}

// GraphCurveFromNode validates n and takes ownership of it.
func GraphCurveFromNode(n *Node) (*GraphCurve, error) {
	c := &GraphCurve{node: n}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

func (c *GraphCurve) Validate() error {
	n := c.node
	if err := graphCurveContract.Validate(n); err != nil {
		return err
	}
	x, _ := n.DoubleArray("xdata")
	y, _ := n.DoubleArray("ydata")
	if len(x) != len(y) {
		return badField(KindGraphCurve, "ydata", "has %d points, xdata has %d", len(y), len(x))
	}
	mode, _ := n.int32Or("type", int32(CurveLine))
	if !CurveMode(mode).Valid() {
		return badField(KindGraphCurve, "type", "unknown curve mode %d", mode)
	}
	return nil
}

func (c *GraphCurve) Kind() string        { return KindGraphCurve }
func (c *GraphCurve) ToNode() *Node       { return c.node }
func (c *GraphCurve) Contract() *Contract { return &graphCurveContract }

// Len returns the number of points.
func (c *GraphCurve) Len() int {
	x, _ := c.node.DoubleArray("xdata")
	return len(x)
}

// XData returns the abscissae. The slice is shared with the node.
func (c *GraphCurve) XData() []float64 {
	v, _ := c.node.DoubleArray("xdata")
	return v
}

// YData returns the ordinates. The slice is shared with the node.
func (c *GraphCurve) YData() []float64 {
	v, _ := c.node.DoubleArray("ydata")
	return v
}

func (c *GraphCurve) Description() string {
	v, _ := c.node.textOr("description", "")
	return v
}

func (c *GraphCurve) Mode() CurveMode {
	v, _ := c.node.int32Or("type", int32(CurveLine))
	return CurveMode(v)
}

func (c *GraphCurve) SetMode(m CurveMode) error {
	if !m.Valid() {
		return badField(KindGraphCurve, "type", "unknown curve mode %d", int32(m))
	}
	c.node.Set("type", NewInt32(int32(m)))
	return nil
}

func (c *GraphCurve) Color() Color {
	r, _ := c.node.doubleOr("color.red", 0)
	g, _ := c.node.doubleOr("color.green", 0)
	b, _ := c.node.doubleOr("color.blue", 0)
	return Color{R: r, G: g, B: b}
}

func (c *GraphCurve) SetColor(col Color) {
	c.node.Set("color.red", NewDouble(col.R))
	c.node.Set("color.green", NewDouble(col.G))
	c.node.Set("color.blue", NewDouble(col.B))
}

// GraphModel is a set of curves sharing axes, units and labels.
type GraphModel struct {
	node *Node
}

// AxisLabels holds the four axis captions of a graph.
type AxisLabels struct {
	Top, Bottom, Left, Right string
}

// NewGraphModel creates a graph holding curves. The curves become owned by
// the graph.
func NewGraphModel(title string, curves ...*GraphCurve) (*GraphModel, error) {
	if strings.IndexByte(title, 0) >= 0 {
		return nil, badField(KindGraphModel, "title", "contains NUL")
	}
	nodes := make([]*Node, len(curves))
	for i, c := range curves {
		nodes[i] = c.ToNode()
	}
	n := NewNode(KindGraphModel)
	n.Set("curves", NewObjectArray(nodes))
	n.Set("title", NewString(title))
	return GraphModelFromNode(n)
}

// GraphModelFromNode validates n, including every curve, and takes
// ownership of it.
func GraphModelFromNode(n *Node) (*GraphModel, error) {
	g := &GraphModel{node: n}
	if err := g.Validate(); err != nil {
		return nil, err
	}
	return g, nil
}

func (g *GraphModel) Validate() error {
	n := g.node
	if err := graphModelContract.Validate(n); err != nil {
		return err
	}
	curves, _ := n.ObjectArray("curves")
	for i, cn := range curves {
		if _, err := GraphCurveFromNode(cn); err != nil {
			return badField(KindGraphModel, fmt.Sprintf("curves[%d]", i), "%v", err)
		}
	}
	return validateUnits(n, "x_unit", "y_unit")
}

func (g *GraphModel) Kind() string        { return KindGraphModel }
func (g *GraphModel) ToNode() *Node       { return g.node }
func (g *GraphModel) Contract() *Contract { return &graphModelContract }

// Curves returns views of the graph's curves.
func (g *GraphModel) Curves() []*GraphCurve {
	nodes, _ := g.node.ObjectArray("curves")
	out := make([]*GraphCurve, len(nodes))
	for i, cn := range nodes {
		out[i] = &GraphCurve{node: cn}
	}
	return out
}

// AddCurve appends c, which becomes owned by the graph.
func (g *GraphModel) AddCurve(c *GraphCurve) {
	nodes, _ := g.node.ObjectArray("curves")
	g.node.Set("curves", NewObjectArray(append(nodes, c.ToNode())))
}

func (g *GraphModel) Title() string {
	v, _ := g.node.textOr("title", "")
	return v
}

func (g *GraphModel) SetTitle(title string) error {
	if strings.IndexByte(title, 0) >= 0 {
		return badField(KindGraphModel, "title", "contains NUL")
	}
	g.node.Set("title", NewString(title))
	return nil
}

func (g *GraphModel) Labels() AxisLabels {
	var l AxisLabels
	l.Top, _ = g.node.textOr("top_label", "")
	l.Bottom, _ = g.node.textOr("bottom_label", "")
	l.Left, _ = g.node.textOr("left_label", "")
	l.Right, _ = g.node.textOr("right_label", "")
	return l
}

func (g *GraphModel) SetLabels(l AxisLabels) error {
	for _, s := range []string{l.Top, l.Bottom, l.Left, l.Right} {
		if strings.IndexByte(s, 0) >= 0 {
			return badField(KindGraphModel, "labels", "contains NUL")
		}
	}
	g.node.Set("top_label", NewString(l.Top))
	g.node.Set("bottom_label", NewString(l.Bottom))
	g.node.Set("left_label", NewString(l.Left))
	g.node.Set("right_label", NewString(l.Right))
	return nil
}

// Logarithmic reports whether the x and y axes use a logarithmic scale.
func (g *GraphModel) Logarithmic() (x, y bool) {
	x, _ = g.node.boolOr("x_is_logarithmic", false)
	y, _ = g.node.boolOr("y_is_logarithmic", false)
	return x, y
}

func (g *GraphModel) SetLogarithmic(x, y bool) {
	g.node.Set("x_is_logarithmic", NewBool(x))
	g.node.Set("y_is_logarithmic", NewBool(y))
}

func (g *GraphModel) UnitX() *SIUnit {
	u, _ := optionalUnit(g.node, "x_unit")
	return u
}

func (g *GraphModel) UnitY() *SIUnit {
	u, _ := optionalUnit(g.node, "y_unit")
	return u
}

func (g *GraphModel) SetUnits(x, y *SIUnit) {
	setUnit(g.node, "x_unit", x)
	setUnit(g.node, "y_unit", y)
}
