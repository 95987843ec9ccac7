package main

import (
	"bytes"
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/robert-malhotra/go-gwy/gwy"
	"github.com/robert-malhotra/go-gwy/internal/config"
	"github.com/robert-malhotra/go-gwy/internal/filter"
	"github.com/robert-malhotra/go-gwy/internal/logging"
)

// app carries the settings shared by all subcommands.
type app struct {
	configPath string
	logLevel   string
	noColor    bool

	cfg config.Config
	log zerolog.Logger
}

func newRootCmd() *cobra.Command {
	a := &app{log: zerolog.Nop()}

	root := &cobra.Command{
		Use:           "gwydump",
		Short:         "Inspect, verify and convert Gwyddion .gwy files",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup()
		},
	}
	root.PersistentFlags().StringVarP(&a.configPath, "config", "c", "", "Path to TOML configuration")
	root.PersistentFlags().StringVar(&a.logLevel, "log-level", "", "Log level (trace, debug, info, warn, error)")
	root.PersistentFlags().BoolVar(&a.noColor, "no-color", false, "Disable colored output")

	root.AddCommand(
		newInfoCmd(a),
		newTreeCmd(a),
		newGetCmd(a),
		newVerifyCmd(a),
		newConvertCmd(a),
	)
	return root
}

func (a *app) setup() error {
	cfg, err := config.Load(a.configPath)
	if err != nil {
		return err
	}
	if a.logLevel != "" {
		if _, ok := logging.ParseLevel(a.logLevel); !ok {
			return fmt.Errorf("unknown log level %q", a.logLevel)
		}
		cfg.Log.Level = a.logLevel
	}
	if a.noColor {
		cfg.Log.NoColor = true
		color.NoColor = true
	}
	a.cfg = cfg
	a.log = logging.Configure(logging.ProfileRuntime, cfg.LogSettings())
	return nil
}

// readOptions returns the decode options selected by the configuration.
func (a *app) readOptions() []gwy.Option {
	return []gwy.Option{
		gwy.WithMaxDepth(a.cfg.Decode.MaxDepth),
		gwy.WithLogger(a.log),
	}
}

// writeOptions returns the encode options selected by the configuration.
func (a *app) writeOptions() ([]gwy.Option, error) {
	id, err := filter.ParseID(a.cfg.Encode.Compression)
	if err != nil {
		return nil, err
	}
	return append(a.readOptions(), gwy.WithCompression(id, a.cfg.Encode.Level)), nil
}

// loaded is a decoded file plus what the container on disk looked like.
type loaded struct {
	path        string
	doc         *gwy.Document
	raw         []byte
	compression filter.ID
}

func (a *app) load(path string) (*loaded, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	doc, err := gwy.Read(bytes.NewReader(raw), a.readOptions()...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	a.log.Debug().Str("file", path).Str("root", doc.Root.Kind()).Msg("loaded")
	return &loaded{
		path:        path,
		doc:         doc,
		raw:         raw,
		compression: filter.Detect(raw),
	}, nil
}
