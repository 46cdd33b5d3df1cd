package latex

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"path/filepath"
)

// CompilePDF compiles a .tex file to PDF with pdflatex, writing output next
// to the source file. pdflatex runs twice so that page references settle,
// mirroring the usual LaTeX build convention.
func CompilePDF(ctx context.Context, texPath string) error {
	if _, err := exec.LookPath("pdflatex"); err != nil {
		return fmt.Errorf("PDF output requires pdflatex. Install with:\n  macOS:  brew install --cask mactex-no-gui\n  Linux:  apt install texlive-latex-base texlive-latex-extra")
	}

	outDir := filepath.Dir(texPath)
	for i := 0; i < 2; i++ {
		cmd := exec.CommandContext(ctx, "pdflatex",
			"-interaction=nonstopmode", "-output-directory", outDir, texPath)

		var out, errBuf bytes.Buffer
		cmd.Stdout = &out
		cmd.Stderr = &errBuf

		if err := cmd.Run(); err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			return fmt.Errorf("pdflatex: %v: %s", err, lastLines(out.String(), 20))
		}
	}
	return nil
}

// lastLines returns the final n lines of s. pdflatex reports errors at the
// end of a long transcript, so the tail is the useful part.
func lastLines(s string, n int) string {
	lines := bytes.Split([]byte(s), []byte("\n"))
	if len(lines) <= n {
		return s
	}
	return string(bytes.Join(lines[len(lines)-n:], []byte("\n")))
}
