package cli

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/picbook/picbook/pkg/album"
	"github.com/picbook/picbook/pkg/layout"
	"github.com/picbook/picbook/pkg/pipeline"
)

// layoutCommand creates the layout command for computing page layouts.
func (c *CLI) layoutCommand() *cobra.Command {
	var (
		output     string
		noCache    bool
		configPath string
	)
	opts := pipeline.Options{}
	setCLIDefaults(&opts)

	cmd := &cobra.Command{
		Use:   "layout [album.json]",
		Short: "Compute the page layout for an album",
		Long: `Compute the page layout for an album.

The layout command takes an album.json file (produced by 'scan'), resolves
each image's printable size from its pixel dimensions, and packs the images
onto pages in order. The output is a layout.json file that can be turned into
LaTeX with the 'emit' command.

Images are scaled from pixels at 96 DPI, then shrunk uniformly if they would
overflow the usable page area. Results are cached locally for faster
subsequent runs.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := applyConfig(cmd, configPath, &opts); err != nil {
				return err
			}
			return c.runLayout(cmd.Context(), args[0], opts, output, noCache)
		},
	}

	// Common flags
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: <input>.layout.json)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	cmd.Flags().StringVar(&configPath, "config", "", "config file (default: picbook.toml if present)")

	// Layout flags
	cmd.Flags().StringVarP(&opts.PageSize, "page-size", "p", opts.PageSize, "page size: letter (default), a4, legal")
	cmd.Flags().StringVar(&opts.Orientation, "orientation", opts.Orientation, "page orientation: portrait (default), landscape")
	cmd.Flags().Float64VarP(&opts.Scale, "scale", "s", opts.Scale, "image scale factor (0.1 to 1.0)")
	cmd.Flags().Float64Var(&opts.Spacing, "spacing", opts.Spacing, "vertical spacing between images in inches")
	cmd.Flags().IntVar(&opts.MaxPerPage, "max-per-page", opts.MaxPerPage, "maximum images per page (0 = fit as many as possible)")

	return cmd
}

// runLayout loads the album, computes the layout, and writes output.
func (c *CLI) runLayout(ctx context.Context, input string, opts pipeline.Options, output string, noCache bool) error {
	a, err := album.ReadAlbumFile(input)
	if err != nil {
		return fmt.Errorf("load album %s: %w", input, err)
	}

	runner, err := c.newRunner(noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	opts.Logger = loggerFromContext(ctx)

	spinner := newSpinnerWithContext(ctx, "Computing layout...")
	spinner.Start()

	doc, cacheHit, err := runner.GenerateLayoutWithCacheInfo(ctx, a, opts)
	if err != nil {
		spinner.StopWithError("Layout failed")
		return fmt.Errorf("compute layout: %w", err)
	}
	spinner.Stop()

	if ctx.Err() != nil {
		return ctx.Err()
	}

	outputPath := output
	if outputPath == "" {
		base := strings.TrimSuffix(input, filepath.Ext(input))
		outputPath = base + ".layout.json"
	}

	if err := layout.WriteDocumentFile(doc, outputPath); err != nil {
		return fmt.Errorf("write output %s: %w", outputPath, err)
	}

	printSuccess("Layout complete")
	printFile(outputPath)
	printStats(doc.ImageCount(), doc.PageCount(), cacheHit)
	printNewline()
	printNextStep("Emit", "picbook emit "+outputPath)

	return nil
}
