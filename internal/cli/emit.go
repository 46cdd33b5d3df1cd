package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/picbook/picbook/pkg/layout"
	"github.com/picbook/picbook/pkg/pipeline"
)

// emitCommand creates the emit command for generating output from a layout.
func (c *CLI) emitCommand() *cobra.Command {
	var (
		formatsStr string
		output     string
		noCache    bool
		configPath string
	)
	opts := pipeline.Options{}
	setCLIDefaults(&opts)

	cmd := &cobra.Command{
		Use:   "emit [layout.json]",
		Short: "Generate LaTeX source from a computed layout",
		Long: `Generate LaTeX source from a computed layout.

The emit command takes a layout.json file (produced by 'layout') and emits
the document source. The layout contains all sizing and page assignment
information, so this step is purely about markup.

Results are cached locally for faster subsequent runs.

Use 'build' as a shortcut to go directly from an image directory to output.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			// Parse the flag before the config file so applyConfig can keep
			// the flag value on top of a formats key from the file.
			if cmd.Flags().Changed("format") {
				opts.Formats = parseFormats(formatsStr)
			}
			if err := applyConfig(cmd, configPath, &opts); err != nil {
				return err
			}
			if err := pipeline.ValidateFormats(opts.Formats); err != nil {
				return err
			}
			return c.runEmit(cmd.Context(), args[0], opts, output, noCache)
		},
	}

	// Common flags
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (single format) or base path (multiple)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	cmd.Flags().StringVar(&configPath, "config", "", "config file (default: picbook.toml if present)")

	// Emit flags
	cmd.Flags().StringVarP(&formatsStr, "format", "f", "", "output format(s): tex (default), json (comma-separated)")
	cmd.Flags().IntVar(&opts.FontSize, "font-size", opts.FontSize, "caption font size in points")
	cmd.Flags().BoolVar(&opts.Captions, "captions", opts.Captions, "show filename captions under images")

	return cmd
}

// runEmit loads the layout and emits artifacts.
func (c *CLI) runEmit(ctx context.Context, input string, opts pipeline.Options, output string, noCache bool) error {
	doc, err := layout.ReadDocumentFile(input)
	if err != nil {
		return fmt.Errorf("load layout %s: %w", input, err)
	}

	runner, err := c.newRunner(noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	opts.Logger = loggerFromContext(ctx)

	spinner := newSpinnerWithContext(ctx, "Emitting document...")
	spinner.Start()

	artifacts, cacheHit, err := runner.RenderWithCacheInfo(ctx, doc, opts)
	if err != nil {
		spinner.StopWithError("Emit failed")
		return fmt.Errorf("emit: %w", err)
	}
	spinner.Stop()

	if ctx.Err() != nil {
		return ctx.Err()
	}

	paths, err := writeArtifacts(artifacts, opts.Formats, input, output)
	if err != nil {
		return err
	}

	printSuccess("Emit complete")
	for _, p := range paths {
		printFile(p)
	}
	printStats(doc.ImageCount(), doc.PageCount(), cacheHit)

	return nil
}

// writeArtifacts writes each rendered artifact to disk and returns the paths.
// With a single format, output is used verbatim when set; with multiple
// formats, output acts as a base path and the format is appended as the
// extension.
func writeArtifacts(artifacts map[string][]byte, formats []string, input, output string) ([]string, error) {
	base := strings.TrimSuffix(input, filepath.Ext(input))
	if output != "" {
		base = strings.TrimSuffix(output, filepath.Ext(output))
	}

	var paths []string
	for _, format := range formats {
		data, ok := artifacts[format]
		if !ok {
			continue
		}
		path := base + "." + format
		if output != "" && len(formats) == 1 {
			path = output
		}
		if err := os.WriteFile(path, data, 0644); err != nil {
			return nil, fmt.Errorf("write output %s: %w", path, err)
		}
		paths = append(paths, path)
	}
	return paths, nil
}
