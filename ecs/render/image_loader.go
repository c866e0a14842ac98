package render

import (
	"bytes"
	"fmt"
	"image"
	_ "image/png"
	"os"
	"path/filepath"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/tilewalker/assets"
)

// sheets caches decoded sheets by sprite sheet name; only Draw touches it.
var sheets = map[string]*ebiten.Image{}

// LoadSheet resolves a sprite sheet name ("player") to an image, caching it by
// name. Embedded assets win; the working directory is tried after.
func LoadSheet(sheet string) (*ebiten.Image, error) {
	if sheet == "" {
		return nil, fmt.Errorf("render: empty sheet name")
	}
	if img, ok := sheets[sheet]; ok {
		return img, nil
	}
	img, err := loadImageFromAssetsOrFS(assets.SheetPath(sheet))
	if err != nil {
		return nil, err
	}
	sheets[sheet] = img
	return img, nil
}

func loadImageFromAssetsOrFS(path string) (*ebiten.Image, error) {
	if im, err := assets.DecodeImage(path); err == nil {
		return ebiten.NewImageFromImage(im), nil
	}
	tried := []string{path, filepath.Join("assets", path), filepath.Base(path)}
	for _, p := range tried {
		if b, err := os.ReadFile(p); err == nil {
			if im, _, err := image.Decode(bytes.NewReader(b)); err == nil {
				return ebiten.NewImageFromImage(im), nil
			}
		}
	}
	return nil, fmt.Errorf("render: failed to load image %s", path)
}
