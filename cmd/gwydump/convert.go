package main

import (
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/robert-malhotra/go-gwy/gwy"
)

func newConvertCmd(a *app) *cobra.Command {
	var (
		magic       string
		compression string
		level       int
	)
	cmd := &cobra.Command{
		Use:   "convert IN OUT",
		Short: "Rewrite a file, optionally changing its header or compression",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Flags().Changed("magic") {
				a.cfg.Encode.Magic = magic
			}
			if cmd.Flags().Changed("compress") {
				a.cfg.Encode.Compression = compression
			}
			if cmd.Flags().Changed("level") {
				a.cfg.Encode.Level = level
			}

			f, err := a.load(args[0])
			if err != nil {
				return err
			}
			doc := &gwy.Document{Magic: gwy.Magic(a.cfg.Encode.Magic), Root: f.doc.Root}
			if !doc.Magic.Valid() {
				return fmt.Errorf("unknown header %q", a.cfg.Encode.Magic)
			}
			opts, err := a.writeOptions()
			if err != nil {
				return err
			}
			if err := gwy.Save(args[1], doc, opts...); err != nil {
				return err
			}

			a.log.Info().
				Str("in", args[0]).
				Str("out", args[1]).
				Str("magic", a.cfg.Encode.Magic).
				Str("compression", a.cfg.Encode.Compression).
				Msg("converted")
			fmt.Fprintf(cmd.OutOrStdout(), "%s -> %s (%s read)\n", args[0], args[1], humanize.Bytes(uint64(len(f.raw))))
			return nil
		},
	}
	cmd.Flags().StringVar(&magic, "magic", "GWYP", "Output header: GWYP or GWYO")
	cmd.Flags().StringVar(&compression, "compress", "none", "Output compression: none, gzip or zstd")
	cmd.Flags().IntVar(&level, "level", -1, "Compression level (-1 for the default)")
	return cmd
}
