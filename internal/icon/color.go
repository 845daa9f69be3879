package icon

import (
	"fmt"
	"image/color"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
)

var named = map[string]color.RGBA{
	"white": {R: 0xff, G: 0xff, B: 0xff, A: 0xff},
	"black": {A: 0xff},
}

// ParseColor parses #rgb, #rrggbb or a named color (white, black).
func ParseColor(s string) (color.RGBA, error) {
	s = strings.TrimSpace(strings.ToLower(s))
	if c, ok := named[s]; ok {
		return c, nil
	}
	// colorful.Hex scans with Sscanf and accepts short input like "#12345".
	if !strings.HasPrefix(s, "#") || (len(s) != 4 && len(s) != 7) {
		return color.RGBA{}, fmt.Errorf("unsupported color %q", s)
	}
	c, err := colorful.Hex(s)
	if err != nil {
		return color.RGBA{}, fmt.Errorf("parse color %q: %w", s, err)
	}
	r, g, b := c.RGB255()
	return color.RGBA{R: r, G: g, B: b, A: 0xff}, nil
}
