package album

import (
	"image"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/charmbracelet/log"

	// Decoders for the supported image formats. Dimensions are read via
	// image.DecodeConfig, which only parses headers.
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/bmp"

	"github.com/picbook/picbook/pkg/errors"
)

// imageExtensions is the set of filename extensions accepted by the scanner,
// matched case-insensitively.
var imageExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".bmp":  true,
}

// Scan reads image metadata from every supported image file directly inside
// dir (non-recursive). Files that cannot be decoded or that report
// non-positive dimensions are logged as warnings and skipped; the scan
// succeeds with the remaining images. A directory with no images yields an
// empty album, which is valid input for layout.
//
// If logger is nil, warnings are discarded.
func Scan(dir string, logger *log.Logger) (*Album, error) {
	if logger == nil {
		logger = log.New(io.Discard)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "image directory %s", dir)
		}
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "read image directory %s", dir)
	}

	a := &Album{Dir: dir}
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		if !imageExtensions[strings.ToLower(filepath.Ext(name))] {
			continue
		}

		img, err := readImage(dir, name)
		if err != nil {
			logger.Warn("skipping image", "file", name, "code", errors.GetCode(err), "err", errors.UserMessage(err))
			continue
		}
		a.Images = append(a.Images, img)
	}

	a.Order()
	return a, nil
}

// readImage reads pixel dimensions and the modification timestamp for one file.
func readImage(dir, name string) (Image, error) {
	path := filepath.Join(dir, name)

	info, err := os.Stat(path)
	if err != nil {
		return Image{}, errors.Wrap(errors.ErrCodeUnreadableImage, err, "stat %s", name)
	}

	f, err := os.Open(path)
	if err != nil {
		return Image{}, errors.Wrap(errors.ErrCodeUnreadableImage, err, "open %s", name)
	}
	defer f.Close()

	cfg, _, err := image.DecodeConfig(f)
	if err != nil {
		return Image{}, errors.Wrap(errors.ErrCodeUnreadableImage, err, "decode %s", name)
	}
	if cfg.Width <= 0 || cfg.Height <= 0 {
		return Image{}, errors.New(errors.ErrCodeInvalidImageDimensions,
			"%s reports non-positive dimensions %dx%d", name, cfg.Width, cfg.Height)
	}

	return Image{
		Filename:    name,
		PixelWidth:  cfg.Width,
		PixelHeight: cfg.Height,
		ModTime:     info.ModTime(),
	}, nil
}

// Fingerprint returns a stable description of the directory contents for
// cache keying: one line per candidate image with name, size, and mtime.
// Touching, adding, or removing an image changes the fingerprint.
func Fingerprint(dir string) (string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return "", errors.Wrap(errors.ErrCodeFileNotFound, err, "image directory %s", dir)
		}
		return "", errors.Wrap(errors.ErrCodeInternal, err, "read image directory %s", dir)
	}

	var b strings.Builder
	for _, entry := range entries {
		if entry.IsDir() || !imageExtensions[strings.ToLower(filepath.Ext(entry.Name()))] {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		b.WriteString(entry.Name())
		b.WriteByte('\x00')
		b.WriteString(info.ModTime().UTC().Format("20060102150405.000000000"))
		b.WriteByte('\x00')
		b.WriteString(strconv.FormatInt(info.Size(), 10))
		b.WriteByte('\n')
	}
	return b.String(), nil
}
