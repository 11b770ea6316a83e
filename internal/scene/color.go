package scene

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
)

// ErrInvalidColor is returned for colour strings ParseColor does not know.
var ErrInvalidColor = errors.New("invalid color")

var namedColors = map[string]string{
	"white": "#ffffff",
	"black": "#000000",
	"gray":  "#808080",
	"grey":  "#808080",
	"red":   "#ff0000",
	"green": "#008000",
	"blue":  "#0000ff",
}

// ParseColor parses "#rgb", "#rrggbb", "rgb(r,g,b)", "rgba(r,g,b,a)",
// "transparent" and a few CSS names. It returns the colour and its alpha.
func ParseColor(s string) (colorful.Color, float64, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "transparent" {
		return colorful.Color{}, 0, nil
	}
	if hex, ok := namedColors[s]; ok {
		s = hex
	}
	if strings.HasPrefix(s, "#") {
		c, err := colorful.Hex(s)
		if err != nil {
			return colorful.Color{}, 0, fmt.Errorf("%w: %q", ErrInvalidColor, s)
		}
		return c, 1, nil
	}

	var body string
	switch {
	case strings.HasPrefix(s, "rgba(") && strings.HasSuffix(s, ")"):
		body = s[len("rgba(") : len(s)-1]
	case strings.HasPrefix(s, "rgb(") && strings.HasSuffix(s, ")"):
		body = s[len("rgb(") : len(s)-1]
	default:
		return colorful.Color{}, 0, fmt.Errorf("%w: %q", ErrInvalidColor, s)
	}

	parts := strings.Split(body, ",")
	if len(parts) != 3 && len(parts) != 4 {
		return colorful.Color{}, 0, fmt.Errorf("%w: %q", ErrInvalidColor, s)
	}
	var ch [4]float64
	ch[3] = 1
	for i, p := range parts {
		v, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return colorful.Color{}, 0, fmt.Errorf("%w: %q", ErrInvalidColor, s)
		}
		ch[i] = v
	}
	c := colorful.Color{R: ch[0] / 255, G: ch[1] / 255, B: ch[2] / 255}
	return c.Clamped(), min(max(ch[3], 0), 1), nil
}

// Flatten composites a colour string over bg, also applying opacity.
// Unparseable colours return bg and false.
func Flatten(s string, opacity float64, bg colorful.Color) (colorful.Color, bool) {
	c, a, err := ParseColor(s)
	if err != nil {
		return bg, false
	}
	return bg.BlendRgb(c, a*opacity), true
}

// MustHex returns the hex form of a colour string flattened over white,
// or fallback when it cannot be parsed.
func MustHex(s, fallback string) string {
	c, ok := Flatten(s, 1, colorful.Color{R: 1, G: 1, B: 1})
	if !ok {
		return fallback
	}
	return c.Hex()
}
