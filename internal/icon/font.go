package icon

import (
	"fmt"
	"os"

	"github.com/rs/zerolog/log"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/font/sfnt"
)

// glyphFace pairs a face with a coverage check, since opentype faces
// report the notdef glyph as a valid advance.
type glyphFace struct {
	name string
	face font.Face
	has  func(r rune) bool
}

func (g glyphFace) Close() error {
	return g.face.Close()
}

type faceLoader func(px float64) (glyphFace, error)

// faceLoaders lists the faces to try in order: the font at path, the
// built-in Go Bold face, then the fixed 7x13 bitmap face.
func faceLoaders(path string) []faceLoader {
	var loaders []faceLoader
	if path != "" {
		loaders = append(loaders, func(px float64) (glyphFace, error) {
			return loadTrueType(path, px)
		})
	}
	return append(loaders,
		func(px float64) (glyphFace, error) {
			return parseTrueType("gobold", gobold.TTF, px)
		},
		func(float64) (glyphFace, error) {
			return bitmapFace(), nil
		},
	)
}

// pickFace returns the first face that loads and has a glyph for every
// rune of text. The caller closes it.
func pickFace(text string, px float64, loaders []faceLoader) (glyphFace, error) {
	for _, load := range loaders {
		gf, err := load(px)
		if err != nil {
			log.Warn().Err(err).Msg("font unavailable, trying next")
			continue
		}
		if r, ok := gf.covers(text); !ok {
			log.Warn().Str("font", gf.name).Str("letter", string(r)).Msg("font has no glyph, trying next")
			_ = gf.Close()
			continue
		}
		return gf, nil
	}
	return glyphFace{}, fmt.Errorf("no font has a glyph for %q", text)
}

func (g glyphFace) covers(text string) (rune, bool) {
	for _, r := range text {
		if !g.has(r) {
			return r, false
		}
	}
	return 0, true
}

// bitmapFace wraps basicfont.Face7x13. Its GlyphAdvance reports every rune,
// so coverage is read from the face's ranges.
func bitmapFace() glyphFace {
	face := basicfont.Face7x13
	return glyphFace{
		name: "basicfont",
		face: face,
		has: func(r rune) bool {
			for _, rng := range face.Ranges {
				if r >= rng.Low && r < rng.High {
					return true
				}
			}
			return false
		},
	}
}

func loadTrueType(path string, px float64) (glyphFace, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return glyphFace{}, fmt.Errorf("read font: %w", err)
	}
	return parseTrueType(path, data, px)
}

func parseTrueType(name string, data []byte, px float64) (glyphFace, error) {
	f, err := opentype.Parse(data)
	if err != nil {
		return glyphFace{}, fmt.Errorf("parse font %s: %w", name, err)
	}
	face, err := opentype.NewFace(f, &opentype.FaceOptions{
		Size:    px,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	if err != nil {
		return glyphFace{}, fmt.Errorf("create face %s: %w", name, err)
	}
	var buf sfnt.Buffer
	return glyphFace{
		name: name,
		face: face,
		has: func(r rune) bool {
			idx, err := f.GlyphIndex(&buf, r)
			return err == nil && idx != 0
		},
	}, nil
}
