// Package icon draws placeholder square icons with a centered letter.
package icon

import (
	"context"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"

	"github.com/rs/zerolog/log"
	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/math/fixed"
)

// Options controls icon rendering.
type Options struct {
	Letter     string
	Background color.Color
	Foreground color.Color
	FontPath   string
	Sizes      []int
}

// DefaultOptions returns the standard #667eea icon with a white "D".
func DefaultOptions() Options {
	return Options{
		Letter:     "D",
		Background: color.RGBA{R: 0x66, G: 0x7e, B: 0xea, A: 0xff},
		Foreground: color.White,
		FontPath:   "/usr/share/fonts/truetype/dejavu/DejaVuSans-Bold.ttf",
		Sizes:      []int{16, 48, 128},
	}
}

// FileName returns the icon file name for a size.
func FileName(size int) string {
	return fmt.Sprintf("icon%d.png", size)
}

// Render draws one size x size icon. Text problems never fail the render;
// the result is then a plain background square.
func Render(size int, opts Options) (image.Image, error) {
	if size <= 0 {
		return nil, fmt.Errorf("invalid icon size %d", size)
	}
	img := image.NewRGBA(image.Rect(0, 0, size, size))
	draw.Draw(img, img.Bounds(), image.NewUniform(opts.Background), image.Point{}, draw.Src)

	if err := drawLetter(img, size, opts); err != nil {
		log.Warn().Err(err).Int("size", size).Msg("could not add text to icon")
	}
	return img, nil
}

func drawLetter(img *image.RGBA, size int, opts Options) (err error) {
	if opts.Letter == "" {
		return nil
	}
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("draw text: %v", r)
		}
	}()

	gf, err := pickFace(opts.Letter, float64(size/2), faceLoaders(opts.FontPath))
	if err != nil {
		return err
	}
	defer func() { _ = gf.Close() }()

	bounds, _ := font.BoundString(gf.face, opts.Letter)
	w := bounds.Max.X - bounds.Min.X
	h := bounds.Max.Y - bounds.Min.Y
	dim := fixed.I(size)

	// Place the glyph box at the center; Dot is the baseline origin.
	d := &font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(opts.Foreground),
		Face: gf.face,
		Dot: fixed.Point26_6{
			X: (dim-w)/2 - bounds.Min.X,
			Y: (dim-h)/2 - bounds.Min.Y,
		},
	}
	d.DrawString(opts.Letter)
	return nil
}

// Generate writes icon<size>.png for every configured size into dir.
func Generate(ctx context.Context, dir string, opts Options) ([]string, error) {
	if len(opts.Sizes) == 0 {
		return nil, fmt.Errorf("no icon sizes configured")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create icon dir: %w", err)
	}
	paths := make([]string, 0, len(opts.Sizes))
	for _, size := range opts.Sizes {
		if err := ctx.Err(); err != nil {
			return paths, err
		}
		img, err := Render(size, opts)
		if err != nil {
			return paths, err
		}
		path := filepath.Join(dir, FileName(size))
		if err := writePNG(path, img); err != nil {
			return paths, err
		}
		log.Debug().Str("path", path).Int("size", size).Msg("icon written")
		paths = append(paths, path)
	}
	return paths, nil
}

func writePNG(path string, img image.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := png.Encode(f, img); err != nil {
		_ = f.Close()
		return fmt.Errorf("encode %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close %s: %w", path, err)
	}
	return nil
}
