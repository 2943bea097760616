// Package gallery loads the image pool a round draws its participants from.
package gallery

import (
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/image/draw"
	_ "golang.org/x/image/webp"
)

// supported is the extension allow-list, lower case.
var supported = map[string]bool{
	".png":  true,
	".jpg":  true,
	".jpeg": true,
	".webp": true,
}

// Asset is a decoded image. It is never modified after loading.
type Asset struct {
	Name   string
	Pixels *image.RGBA
}

// Size returns the native pixel dimensions.
func (a *Asset) Size() (int, int) {
	b := a.Pixels.Bounds()
	return b.Dx(), b.Dy()
}

// LoadError reports why the image pool could not be loaded.
type LoadError struct {
	Path string
	Err  error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("load %s: %v", e.Path, e.Err)
}

func (e *LoadError) Unwrap() error {
	return e.Err
}

// Supported reports whether name has an allowed image extension.
func Supported(name string) bool {
	return supported[strings.ToLower(filepath.Ext(name))]
}

// LoadAll decodes every supported file in dir, in directory listing order.
// The scan is not recursive. Any file that fails to decode aborts the load.
func LoadAll(dir string) ([]*Asset, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, &LoadError{Path: dir, Err: err}
	}

	assets := make([]*Asset, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() || !Supported(entry.Name()) {
			continue
		}
		path := filepath.Join(dir, entry.Name())
		asset, err := Load(path)
		if err != nil {
			return nil, err
		}
		assets = append(assets, asset)
	}
	return assets, nil
}

// Load decodes a single image file into an RGBA asset.
func Load(path string) (*Asset, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &LoadError{Path: path, Err: err}
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, &LoadError{Path: path, Err: fmt.Errorf("decoding image failed: %w", err)}
	}
	b := img.Bounds()
	if b.Dx() == 0 || b.Dy() == 0 {
		return nil, &LoadError{Path: path, Err: fmt.Errorf("empty image %dx%d", b.Dx(), b.Dy())}
	}

	return &Asset{
		Name:   filepath.Base(path),
		Pixels: toRGBA(img),
	}, nil
}

func toRGBA(img image.Image) *image.RGBA {
	if rgba, ok := img.(*image.RGBA); ok && rgba.Bounds().Min == (image.Point{}) {
		return rgba
	}
	b := img.Bounds()
	rgba := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(rgba, rgba.Bounds(), img, b.Min, draw.Src)
	return rgba
}
