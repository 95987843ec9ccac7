package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/robert-malhotra/go-gwy/gwy"
)

func newGetCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "get FILE KEY",
		Short: "Print the value stored under a container key such as /0/data/title",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := a.load(args[0])
			if err != nil {
				return err
			}
			c, err := f.doc.Container()
			if err != nil {
				return err
			}
			v, ok := c.Lookup(args[1])
			if !ok {
				return fmt.Errorf("%s: no key %q", f.path, args[1])
			}
			out := cmd.OutOrStdout()
			if v.Type() != gwy.TypeObject {
				fmt.Fprintln(out, formatValue(v))
				return nil
			}
			child, _ := v.Object()
			p := newTreePrinter(out, 0)
			fmt.Fprintln(out, p.kind(child.Kind()))
			p.node(child, 1)
			return nil
		},
	}
}
