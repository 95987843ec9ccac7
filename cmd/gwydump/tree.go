package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/robert-malhotra/go-gwy/gwy"
)

// maxInline is the number of array elements printed before eliding.
const maxInline = 6

func newTreeCmd(a *app) *cobra.Command {
	var depth int
	cmd := &cobra.Command{
		Use:   "tree FILE",
		Short: "Print the object tree with component types and values",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := a.load(args[0])
			if err != nil {
				return err
			}
			p := newTreePrinter(cmd.OutOrStdout(), depth)
			fmt.Fprintf(p.w, "%s %s\n", f.doc.Magic, p.kind(f.doc.Root.Kind()))
			p.node(f.doc.Root, 1)
			return nil
		},
	}
	cmd.Flags().IntVarP(&depth, "depth", "d", 0, "Maximum nesting to print (0 for all)")
	return cmd
}

type treePrinter struct {
	w        io.Writer
	maxDepth int

	kind  func(a ...any) string
	name  func(a ...any) string
	tag   func(a ...any) string
	value func(a ...any) string
}

func newTreePrinter(w io.Writer, maxDepth int) *treePrinter {
	return &treePrinter{
		w:        w,
		maxDepth: maxDepth,
		kind:     color.New(color.FgCyan, color.Bold).SprintFunc(),
		name:     color.New(color.FgYellow).SprintFunc(),
		tag:      color.New(color.FgHiBlack).SprintFunc(),
		value:    color.New(color.FgGreen).SprintFunc(),
	}
}

func (p *treePrinter) node(n *gwy.Node, depth int) {
	indent := strings.Repeat("  ", depth)
	n.Range(func(name string, v gwy.Value) bool {
		fmt.Fprintf(p.w, "%s%s %s", indent, p.name(name), p.tag(string(rune(v.Type()))))
		switch v.Type() {
		case gwy.TypeObject:
			child, _ := v.Object()
			fmt.Fprintf(p.w, " %s\n", p.kind(child.Kind()))
			if p.maxDepth == 0 || depth < p.maxDepth {
				p.node(child, depth+1)
			}
		case gwy.TypeObjectArray:
			children, _ := v.ObjectArray()
			fmt.Fprintf(p.w, " [%d]\n", len(children))
			for i, child := range children {
				fmt.Fprintf(p.w, "%s  [%d] %s\n", indent, i, p.kind(child.Kind()))
				if p.maxDepth == 0 || depth < p.maxDepth {
					p.node(child, depth+2)
				}
			}
		default:
			fmt.Fprintf(p.w, " %s\n", p.value(formatValue(v)))
		}
		return true
	})
}

// formatValue renders scalars in full and arrays as a short prefix.
func formatValue(v gwy.Value) string {
	switch v.Type() {
	case gwy.TypeBool:
		b, _ := v.Bool()
		return fmt.Sprint(b)
	case gwy.TypeChar:
		c, _ := v.Char()
		return fmt.Sprintf("%q", c)
	case gwy.TypeInt32:
		i, _ := v.Int32()
		return fmt.Sprint(i)
	case gwy.TypeInt64:
		i, _ := v.Int64()
		return fmt.Sprint(i)
	case gwy.TypeDouble:
		d, _ := v.Double()
		return fmt.Sprint(d)
	case gwy.TypeString:
		s, _ := v.Text()
		return fmt.Sprintf("%q", s)
	case gwy.TypeCharArray:
		b, _ := v.CharArray()
		return fmt.Sprintf("[%d] %s", len(b), humanize.Bytes(uint64(len(b))))
	case gwy.TypeInt32Array:
		a, _ := v.Int32Array()
		return elide(len(a), func(i int) string { return fmt.Sprint(a[i]) })
	case gwy.TypeInt64Array:
		a, _ := v.Int64Array()
		return elide(len(a), func(i int) string { return fmt.Sprint(a[i]) })
	case gwy.TypeDoubleArray:
		a, _ := v.DoubleArray()
		return elide(len(a), func(i int) string { return fmt.Sprint(a[i]) })
	case gwy.TypeStringArray:
		a, _ := v.TextArray()
		return elide(len(a), func(i int) string { return fmt.Sprintf("%q", a[i]) })
	default:
		return v.String()
	}
}

func elide(n int, item func(int) string) string {
	shown := min(n, maxInline)
	parts := make([]string, shown)
	for i := range parts {
		parts[i] = item(i)
	}
	s := fmt.Sprintf("[%s] {%s", humanize.Comma(int64(n)), strings.Join(parts, ", "))
	if n > shown {
		s += ", ..."
	}
	return s + "}"
}
