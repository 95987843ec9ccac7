package main

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/robert-malhotra/go-gwy/gwy"
	"github.com/robert-malhotra/go-gwy/internal/filter"
)

var errVerify = errors.New("verification failed")

func newVerifyCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "verify FILE...",
		Short: "Check that files decode, satisfy their object contracts and re-encode unchanged",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			failed := 0
			for _, path := range args {
				problems := a.verify(path)
				report(cmd.OutOrStdout(), path, problems)
				if len(problems) > 0 {
					failed++
				}
			}
			if failed > 0 {
				return fmt.Errorf("%w: %d of %d files", errVerify, failed, len(args))
			}
			return nil
		},
	}
}

// verify returns every problem found in the file at path.
func (a *app) verify(path string) []error {
	f, err := a.load(path)
	if err != nil {
		return []error{err}
	}

	var problems []error
	err = gwy.Walk(f.doc.Root, func(p string, n *gwy.Node) error {
		if _, err := gwy.Wrap(n); err != nil {
			problems = append(problems, fmt.Errorf("%s: %w", displayPath(p), err))
		}
		return nil
	})
	if err != nil {
		problems = append(problems, err)
	}

	data, _, err := filter.Unwrap(f.raw)
	if err != nil {
		return append(problems, err)
	}
	again, err := gwy.Encode(f.doc, a.readOptions()...)
	if err != nil {
		return append(problems, fmt.Errorf("re-encode: %w", err))
	}
	if !bytes.Equal(data, again) {
		problems = append(problems, fmt.Errorf("re-encoded document differs from input (%d vs %d bytes)", len(again), len(data)))
	}
	a.log.Debug().Str("file", path).Int("problems", len(problems)).Msg("verified")
	return problems
}

func report(w io.Writer, path string, problems []error) {
	if len(problems) == 0 {
		fmt.Fprintf(w, "%s %s\n", color.GreenString("OK  "), path)
		return
	}
	fmt.Fprintf(w, "%s %s\n", color.RedString("FAIL"), path)
	for _, p := range problems {
		fmt.Fprintf(w, "     %v\n", p)
	}
}

func displayPath(p string) string {
	if p == "" {
		return "/"
	}
	return p
}
