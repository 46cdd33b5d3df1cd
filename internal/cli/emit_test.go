package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/picbook/picbook/pkg/layout"
	"github.com/picbook/picbook/pkg/page"
)

// writeLayoutFile writes a minimal one-page layout document for emit tests.
func writeLayoutFile(t *testing.T, path string) {
	t.Helper()
	g, err := page.NewGeometry(page.SizeLetter, page.Portrait)
	if err != nil {
		t.Fatal(err)
	}
	doc := &layout.Document{
		Geometry: g,
		ImageDir: "/photos",
		Scale:    1.0,
		Spacing:  layout.DefaultSpacing,
		Pages: []layout.Page{
			{Images: []layout.PlacedImage{{Filename: "a.jpg", Width: 4, Height: 3}}},
		},
	}
	if err := layout.WriteDocumentFile(doc, path); err != nil {
		t.Fatal(err)
	}
}

// runCommand executes the root command with the given args.
func runCommand(t *testing.T, args ...string) error {
	t.Helper()
	c := New(&bytes.Buffer{}, log.ErrorLevel)
	root := c.RootCommand()
	root.SetArgs(args)
	return root.Execute()
}

func TestEmitConfigFormats(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "book.layout.json")
	writeLayoutFile(t, input)

	cfg := filepath.Join(dir, configFileName)
	if err := os.WriteFile(cfg, []byte(`formats = ["json"]`), 0644); err != nil {
		t.Fatal(err)
	}

	// No --format flag: the config file's formats must win over the built-in
	// tex default.
	out := filepath.Join(dir, "out.json")
	if err := runCommand(t, "emit", "--config", cfg, "--no-cache", "-o", out, input); err != nil {
		t.Fatalf("emit: %v", err)
	}

	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatalf("json artifact not written: %v", err)
	}
	if _, err := layout.UnmarshalDocument(data); err != nil {
		t.Errorf("json artifact should be a layout document: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, "out.tex")); !os.IsNotExist(err) {
		t.Error("tex artifact should not exist when config requests json only")
	}
}

func TestEmitFormatFlagOverridesConfig(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "book.layout.json")
	writeLayoutFile(t, input)

	cfg := filepath.Join(dir, configFileName)
	if err := os.WriteFile(cfg, []byte(`formats = ["json"]`), 0644); err != nil {
		t.Fatal(err)
	}

	out := filepath.Join(dir, "out.tex")
	if err := runCommand(t, "emit", "--config", cfg, "--no-cache", "--format", "tex", "-o", out, input); err != nil {
		t.Fatalf("emit: %v", err)
	}

	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatalf("tex artifact not written: %v", err)
	}
	if !strings.Contains(string(data), "\\documentclass") {
		t.Error("tex artifact should contain LaTeX source")
	}
	if _, err := os.Stat(filepath.Join(dir, "out.json")); !os.IsNotExist(err) {
		t.Error("json artifact should not exist when the flag requests tex only")
	}
}
