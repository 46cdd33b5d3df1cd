package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/picbook/picbook/pkg/errors"
	"github.com/picbook/picbook/pkg/latex"
	"github.com/picbook/picbook/pkg/pipeline"
)

// buildCommand creates the build command running the complete pipeline.
func (c *CLI) buildCommand() *cobra.Command {
	var (
		name       string
		outputDir  string
		noCache    bool
		noPDF      bool
		refresh    bool
		configPath string
	)
	opts := pipeline.Options{}
	setCLIDefaults(&opts)

	cmd := &cobra.Command{
		Use:   "build [directory]",
		Short: "Build a picture book from an image directory",
		Long: `Build a picture book from an image directory.

The build command runs the complete pipeline: scan the directory, order the
images chronologically, compute the page layout, and emit the LaTeX source.
Unless --no-pdf is given, the source is then compiled with pdflatex.

This is the shortcut equivalent of running 'scan', 'layout', and 'emit' in
sequence. Each stage is cached locally, so rebuilding an unchanged directory
only reruns pdflatex.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := applyConfig(cmd, configPath, &opts); err != nil {
				return err
			}
			if err := errors.ValidateDocumentName(name); err != nil {
				return err
			}
			return c.runBuild(cmd.Context(), args[0], opts, buildOutput{
				dir:   outputDir,
				name:  name,
				noPDF: noPDF,
			}, noCache, refresh)
		},
	}

	// Common flags
	cmd.Flags().StringVarP(&name, "name", "n", "picture_book", "base name for output files")
	cmd.Flags().StringVarP(&outputDir, "output", "o", "", "output directory for generated files (default: current directory)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVar(&refresh, "refresh", false, "rescan even if a cached album exists")
	cmd.Flags().StringVar(&configPath, "config", "", "config file (default: picbook.toml if present)")

	// Layout flags
	cmd.Flags().StringVarP(&opts.PageSize, "page-size", "p", opts.PageSize, "page size: letter (default), a4, legal")
	cmd.Flags().StringVar(&opts.Orientation, "orientation", opts.Orientation, "page orientation: portrait (default), landscape")
	cmd.Flags().Float64VarP(&opts.Scale, "scale", "s", opts.Scale, "image scale factor (0.1 to 1.0)")
	cmd.Flags().Float64Var(&opts.Spacing, "spacing", opts.Spacing, "vertical spacing between images in inches")
	cmd.Flags().IntVar(&opts.MaxPerPage, "max-per-page", opts.MaxPerPage, "maximum images per page (0 = fit as many as possible)")

	// Emit flags
	cmd.Flags().IntVar(&opts.FontSize, "font-size", opts.FontSize, "caption font size in points")
	cmd.Flags().BoolVar(&opts.Captions, "captions", opts.Captions, "show filename captions under images")
	cmd.Flags().BoolVar(&noPDF, "no-pdf", false, "emit LaTeX source only, skip pdflatex")

	return cmd
}

// buildOutput describes where build artifacts land. Generated files go to
// dir (not the image directory, which stays untouched) under name.
type buildOutput struct {
	dir   string
	name  string
	noPDF bool
}

// runBuild runs the full pipeline and optionally compiles the PDF.
func (c *CLI) runBuild(ctx context.Context, dir string, opts pipeline.Options, out buildOutput, noCache, refresh bool) error {
	outDir := out.dir
	if outDir == "" {
		outDir = "."
	}
	if err := os.MkdirAll(outDir, 0755); err != nil {
		return fmt.Errorf("create output directory %s: %w", outDir, err)
	}

	runner, err := c.newRunner(noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	opts.Logger = loggerFromContext(ctx)
	opts.Refresh = refresh
	opts.Formats = []string{pipeline.FormatTex}

	tracker := newProgress(opts.Logger)

	spinner := newSpinnerWithContext(ctx, fmt.Sprintf("Building picture book from %s...", dir))
	spinner.Start()

	result, err := runner.Execute(ctx, dir, opts)
	if err != nil {
		spinner.StopWithError("Build failed")
		return err
	}
	spinner.Stop()

	if ctx.Err() != nil {
		return ctx.Err()
	}

	texPath := filepath.Join(outDir, out.name+".tex")
	if err := os.WriteFile(texPath, result.Artifacts[pipeline.FormatTex], 0644); err != nil {
		return fmt.Errorf("write output %s: %w", texPath, err)
	}

	tracker.done(fmt.Sprintf("Placed %d images on %d pages",
		result.Stats.ImageCount, result.Stats.PageCount))

	cached := result.CacheInfo.ScanHit && result.CacheInfo.LayoutHit && result.CacheInfo.RenderHit
	printSuccess("Build complete")
	printFile(texPath)
	printStats(result.Stats.ImageCount, result.Stats.PageCount, cached)

	if out.noPDF {
		printNewline()
		printNextStep("Compile", fmt.Sprintf("pdflatex -output-directory %s %s", outDir, texPath))
		return nil
	}

	pdfSpinner := newSpinnerWithContext(ctx, "Compiling PDF...")
	pdfSpinner.Start()
	if err := latex.CompilePDF(ctx, texPath); err != nil {
		pdfSpinner.StopWithError("PDF compilation failed")
		return err
	}
	pdfSpinner.Stop()

	pdfPath := filepath.Join(outDir, out.name+".pdf")
	printSuccess("PDF ready")
	printFile(pdfPath)

	return nil
}
