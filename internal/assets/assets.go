// Package assets loads image assets for logo layers. Sources are
// billy.Filesystem instances: a rooted on-disk directory in production, an
// in-memory filesystem in tests. Loading probes the intrinsic pixel size,
// which is what the logo updater needs to preserve rendered size.
package assets

import (
	"context"
	"fmt"
	"image"

	// Decoders for the asset formats templates reference.
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	billy "github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/osfs"
)

// Image describes a loaded asset: its source path and intrinsic pixel
// dimensions.
type Image struct {
	Path   string
	Width  int
	Height int
}

// Loader resolves an asset path into an Image. Load is single-shot: it
// returns exactly once with either the image or an error, and honors
// context cancellation.
type Loader interface {
	Load(ctx context.Context, path string) (Image, error)
}

// FS is a Loader over a billy filesystem.
type FS struct {
	fs billy.Filesystem
}

// NewFS returns a Loader reading from fsys.
func NewFS(fsys billy.Filesystem) *FS { return &FS{fs: fsys} }

// NewDir returns a Loader rooted at dir. Paths outside dir cannot be
// reached.
func NewDir(dir string) *FS { return &FS{fs: osfs.New(dir)} }

// Load opens the asset and decodes its header for pixel dimensions.
func (l *FS) Load(ctx context.Context, path string) (Image, error) {
	if err := ctx.Err(); err != nil {
		return Image{}, err
	}
	f, err := l.fs.Open(path)
	if err != nil {
		return Image{}, fmt.Errorf("open asset %s: %w", path, err)
	}
	defer func() { _ = f.Close() }() // safe to ignore

	cfg, _, err := image.DecodeConfig(f)
	if err != nil {
		return Image{}, fmt.Errorf("decode asset %s: %w", path, err)
	}
	// The caller may have been torn down while we decoded; report it
	// rather than hand back a result it must discard.
	if err := ctx.Err(); err != nil {
		return Image{}, err
	}
	return Image{Path: path, Width: cfg.Width, Height: cfg.Height}, nil
}
