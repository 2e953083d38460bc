// Package palette resolves the color names used in body tables.
package palette

import (
	"strings"

	colorful "github.com/lucasb-eyer/go-colorful"
)

var named = map[string]string{
	"black":     "#000000",
	"white":     "#ffffff",
	"red":       "#ff0000",
	"green":     "#00ff00",
	"blue":      "#0000ff",
	"yellow":    "#ffff00",
	"orange":    "#ffa500",
	"brown":     "#a52a2a",
	"gray":      "#808080",
	"grey":      "#808080",
	"darkgray":  "#a9a9a9",
	"lightblue": "#add8e6",
	"goldenrod": "#daa520",
	"coral":     "#ff7f50",
	"cyan":      "#00ffff",
	"magenta":   "#ff00ff",
}

// Fallback is used for names the palette does not know.
var Fallback = colorful.Color{R: 1, G: 1, B: 1}

// Lookup returns the color for a name or a "#rrggbb" literal.
func Lookup(name string) colorful.Color {
	key := strings.ToLower(strings.TrimSpace(name))
	if hex, ok := named[key]; ok {
		key = hex
	}
	if strings.HasPrefix(key, "#") {
		if c, err := colorful.Hex(key); err == nil {
			return c
		}
	}
	return Fallback
}

func Hex(name string) string {
	return Lookup(name).Hex()
}

// RGB255 returns 8-bit channels, clamped.
func RGB255(name string) (r, g, b uint8) {
	return Lookup(name).Clamped().RGB255()
}

// Fade blends a color toward black; t=0 keeps it, t=1 is black.
func Fade(name string, t float64) colorful.Color {
	return Lookup(name).BlendRgb(colorful.Color{}, t).Clamped()
}

// Known reports whether name resolves without falling back.
func Known(name string) bool {
	key := strings.ToLower(strings.TrimSpace(name))
	if _, ok := named[key]; ok {
		return true
	}
	_, err := colorful.Hex(key)
	return err == nil
}
