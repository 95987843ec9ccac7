package main

import (
	"fmt"
	"io"
	"sort"
	"strconv"

	"github.com/dustin/go-humanize"
	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/robert-malhotra/go-gwy/gwy"
	"github.com/robert-malhotra/go-gwy/internal/filter"
)

func newInfoCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "info FILE...",
		Short: "Summarize files: header, object counts and data channels",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			for i, path := range args {
				if i > 0 {
					fmt.Fprintln(cmd.OutOrStdout())
				}
				f, err := a.load(path)
				if err != nil {
					return err
				}
				if err := printInfo(cmd.OutOrStdout(), f); err != nil {
					return err
				}
			}
			return nil
		},
	}
}

func printInfo(w io.Writer, f *loaded) error {
	bold := color.New(color.Bold).SprintFunc()

	fmt.Fprintf(w, "%s\n", bold(f.path))
	size := humanize.Bytes(uint64(len(f.raw)))
	if f.compression != filter.None {
		size += " (" + f.compression.String() + ")"
	}
	fmt.Fprintf(w, "  size:    %s\n", size)
	fmt.Fprintf(w, "  header:  %s\n", f.doc.Magic)
	fmt.Fprintf(w, "  root:    %s, %d components\n", f.doc.Root.Kind(), f.doc.Root.Len())

	counts := map[string]int{}
	err := gwy.Walk(f.doc.Root, func(_ string, n *gwy.Node) error {
		counts[n.Kind()]++
		return nil
	})
	if err != nil {
		return err
	}
	kinds := make([]string, 0, len(counts))
	for k := range counts {
		kinds = append(kinds, k)
	}
	sort.Strings(kinds)
	fmt.Fprintln(w, "  objects:")
	for _, k := range kinds {
		fmt.Fprintf(w, "    %-22s %s\n", k, humanize.Comma(int64(counts[k])))
	}

	c, err := f.doc.Container()
	if err != nil {
		// Not a container file; the object summary is all there is.
		return nil
	}
	ids := channels(c)
	if len(ids) == 0 {
		return nil
	}
	fmt.Fprintln(w, "  channels:")
	for _, id := range ids {
		key := gwy.JoinPath(fmt.Sprint(id), "data")
		field, err := c.DataField(key)
		if err != nil {
			fmt.Fprintf(w, "    %-10s %s\n", key, color.RedString("invalid: %v", err))
			continue
		}
		fmt.Fprintf(w, "    %-10s %s\n", key, describeField(field, channelTitle(c, key)))
	}
	return nil
}

func describeField(f *gwy.DataField, title string) string {
	unit := ""
	if u := f.UnitXY(); u != nil {
		unit = u.Unit()
	}
	s := fmt.Sprintf("%d×%d  %s × %s",
		f.XRes(), f.YRes(),
		humanize.SIWithDigits(f.XReal(), 3, unit),
		humanize.SIWithDigits(f.YReal(), 3, unit))
	if title != "" {
		s += "  " + title
	}
	return s
}

// channelTitle returns the title stored next to a channel, if any.
func channelTitle(c *gwy.Container, key string) string {
	v, ok := c.Lookup(key + "/title")
	if !ok {
		return ""
	}
	s, _ := v.Text()
	return s
}

// channels returns the numeric ids of keys of the form "/<id>/data" that
// hold a data field, in ascending order.
func channels(c *gwy.Container) []int {
	var ids []int
	for _, key := range c.Keys() {
		parts := gwy.SplitPath(key)
		if len(parts) != 2 || parts[1] != "data" {
			continue
		}
		v, _ := c.Get(key)
		if n, err := v.Object(); err != nil || n == nil || n.Kind() != gwy.KindDataField {
			continue
		}
		if id, err := strconv.Atoi(parts[0]); err == nil && id >= 0 {
			ids = append(ids, id)
		}
	}
	sort.Ints(ids)
	return ids
}
