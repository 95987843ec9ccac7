package gwy

// Magic is the four-byte file header selecting the framing variant.
type Magic string

const (
	// MagicComponent is written by Gwyddion 2 and is the default.
	MagicComponent Magic = "GWYP"

	// MagicLegacy is the header of Gwyddion 1 files.
	MagicLegacy Magic = "GWYO"
)

// MagicLen is the length of the file header.
const MagicLen = 4

// Valid reports whether m is a recognized header.
func (m Magic) Valid() bool {
	return m == MagicComponent || m == MagicLegacy
}

// Document is a complete file payload: a header and exactly one root object.
type Document struct {
	Magic Magic
	Root  *Node
}

// NewDocument wraps root with the default header.
func NewDocument(root *Node) *Document {
	return &Document{Magic: MagicComponent, Root: root}
}

// Equal reports whether both documents have the same header and trees.
func (d *Document) Equal(o *Document) bool {
	if d == nil || o == nil {
		return d == o
	}
	return d.Magic == o.Magic && d.Root.Equal(o.Root)
}

// Container interprets the root object as a GwyContainer.
func (d *Document) Container() (*Container, error) {
	return ContainerFromNode(d.Root)
}
