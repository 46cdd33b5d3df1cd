package cli

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/picbook/picbook/pkg/album"
	"github.com/picbook/picbook/pkg/pipeline"
)

// scanCommand creates the scan command for reading an image directory.
func (c *CLI) scanCommand() *cobra.Command {
	var (
		output  string
		noCache bool
		refresh bool
	)

	cmd := &cobra.Command{
		Use:   "scan [directory]",
		Short: "Scan an image directory into an ordered album",
		Long: `Scan an image directory into an ordered album.

The scan command reads every supported image (.jpg, .jpeg, .png, .bmp) in the
directory, records its pixel dimensions and modification time, and orders the
images chronologically. The output is an album.json file consumed by the
'layout' command.

Unreadable or unsupported files are skipped with a warning rather than
aborting the scan. Results are cached locally keyed by the directory contents,
so rescanning an unchanged directory is instant.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runScan(cmd.Context(), args[0], output, noCache, refresh)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: <directory>/album.json)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVar(&refresh, "refresh", false, "rescan even if a cached album exists")

	return cmd
}

// runScan scans the directory and writes the album file.
func (c *CLI) runScan(ctx context.Context, dir, output string, noCache, refresh bool) error {
	runner, err := c.newRunner(noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	opts := pipeline.Options{Logger: loggerFromContext(ctx), Refresh: refresh}

	spinner := newSpinnerWithContext(ctx, fmt.Sprintf("Scanning %s...", dir))
	spinner.Start()

	a, cacheHit, err := runner.ScanWithCacheInfo(ctx, dir, opts)
	if err != nil {
		spinner.StopWithError("Scan failed")
		return fmt.Errorf("scan %s: %w", dir, err)
	}
	spinner.Stop()

	if ctx.Err() != nil {
		return ctx.Err()
	}

	outputPath := output
	if outputPath == "" {
		outputPath = filepath.Join(dir, "album.json")
	}

	if err := album.WriteAlbumFile(a, outputPath); err != nil {
		return fmt.Errorf("write output %s: %w", outputPath, err)
	}

	printSuccess("Scan complete")
	printFile(outputPath)
	printStats(a.Count(), 0, cacheHit)
	printNewline()
	printNextStep("Layout", "picbook layout "+outputPath)

	return nil
}
