package storage

import (
	"compress/gzip"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/emiliopalmerini/dwstyles/internal/util"
)

var unsafeChars = regexp.MustCompile(`[^a-zA-Z0-9_-]+`)

// LayerArchive keeps gzip-compressed copies of imported layer source.
type LayerArchive struct {
	baseDir string
	now     func() time.Time
	create  func(name string) (io.WriteCloser, error)
}

func createFile(name string) (io.WriteCloser, error) {
	return os.Create(name)
}

// NewLayerArchive stores layers under the XDG data directory.
func NewLayerArchive() (*LayerArchive, error) {
	baseDir, err := util.GetXDGDataDir()
	if err != nil {
		return nil, err
	}
	return NewLayerArchiveAt(filepath.Join(baseDir, "layers"))
}

// NewLayerArchiveAt stores layers under dir.
func NewLayerArchiveAt(dir string) (*LayerArchive, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create layers directory: %w", err)
	}
	return &LayerArchive{baseDir: dir, now: time.Now, create: createFile}, nil
}

// Store writes text to a new file named after the label and the time.
func (a *LayerArchive) Store(ctx context.Context, label string, text string) (string, error) {
	destPath := a.getPath(label)

	dest, err := a.create(destPath)
	if err != nil {
		return "", fmt.Errorf("failed to create archive file: %w", err)
	}

	gw := gzip.NewWriter(dest)
	gw.Name = label

	if _, err := io.Copy(gw, strings.NewReader(text)); err != nil {
		_ = gw.Close()
		_ = dest.Close()
		return "", fmt.Errorf("failed to compress layer: %w", err)
	}
	if err := gw.Close(); err != nil {
		_ = dest.Close()
		return "", fmt.Errorf("failed to close gzip writer: %w", err)
	}
	if err := dest.Close(); err != nil {
		return "", fmt.Errorf("failed to close archive file: %w", err)
	}

	return destPath, nil
}

// Load returns the layer text stored at path.
func (a *LayerArchive) Load(ctx context.Context, path string) (string, error) {
	file, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("failed to open archived layer: %w", err)
	}
	defer func() { _ = file.Close() }()

	gr, err := gzip.NewReader(file)
	if err != nil {
		return "", fmt.Errorf("failed to create gzip reader: %w", err)
	}
	defer func() { _ = gr.Close() }()

	data, err := io.ReadAll(gr)
	if err != nil {
		return "", fmt.Errorf("failed to read archived layer: %w", err)
	}
	return string(data), nil
}

func (a *LayerArchive) getPath(label string) string {
	name := unsafeChars.ReplaceAllString(label, "_")
	if name == "" {
		name = "unlabeled"
	}
	stamp := a.now().UTC().Format("20060102T150405.000000000")
	return filepath.Join(a.baseDir, name+"-"+stamp+".s2.gz")
}
