package cli

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
	"github.com/spf13/cobra"

	"github.com/picbook/picbook/pkg/pipeline"
)

// applyConfig reads pipeline options from a TOML config file and applies them
// to opts. Precedence is flags > config file > built-in defaults: a field is
// only taken from the file when its flag was not set on the command line.
//
// When path is empty, picbook.toml in the working directory is used if it
// exists; a missing default config is not an error. An explicit --config path
// that does not exist is.
func applyConfig(cmd *cobra.Command, path string, opts *pipeline.Options) error {
	explicit := path != ""
	if !explicit {
		path = configFileName
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) && !explicit {
			return nil
		}
		return fmt.Errorf("read config %s: %w", path, err)
	}

	fileOpts := *opts
	meta, err := toml.Decode(string(data), &fileOpts)
	if err != nil {
		return fmt.Errorf("parse config %s: %w", path, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return fmt.Errorf("config %s: unknown key %q", path, undecoded[0].String())
	}

	// Restore fields whose flags were set explicitly.
	restore := []struct {
		flag  string
		apply func()
	}{
		{"page-size", func() { fileOpts.PageSize = opts.PageSize }},
		{"orientation", func() { fileOpts.Orientation = opts.Orientation }},
		{"scale", func() { fileOpts.Scale = opts.Scale }},
		{"spacing", func() { fileOpts.Spacing = opts.Spacing }},
		{"max-per-page", func() { fileOpts.MaxPerPage = opts.MaxPerPage }},
		{"font-size", func() { fileOpts.FontSize = opts.FontSize }},
		{"captions", func() { fileOpts.Captions = opts.Captions }},
		{"format", func() { fileOpts.Formats = opts.Formats }},
	}
	for _, r := range restore {
		if cmd.Flags().Changed(r.flag) {
			r.apply()
		}
	}

	*opts = fileOpts
	return nil
}
