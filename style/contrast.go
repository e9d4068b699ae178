package style

import (
	"regexp"
	"strconv"
	"strings"

	colorful "github.com/lucasb-eyer/go-colorful"
	"golang.org/x/image/colornames"
)

// Text colours picked by the contrast guard.
const (
	// ContrastWhite is used on dark and unreadable backgrounds.
	ContrastWhite = "#FFFFFF"
	// ContrastBlack is used on light backgrounds.
	ContrastBlack = "#000000"
)

// rgbChannelsPattern reads the first three channels of rgb()/rgba(), either
// comma separated or in the space separated form "rgb(255 255 255 / 50%)".
var rgbChannelsPattern = regexp.MustCompile(`(?i)^rgba?\(\s*([\d.]+)(?:\s*,\s*|\s+)([\d.]+)(?:\s*,\s*|\s+)([\d.]+)`)

// normalizeColor lower-cases and removes all whitespace.
func normalizeColor(c string) string {
	return strings.ToLower(strings.Join(strings.Fields(c), ""))
}

// SameColor reports whether two colour values normalize to the same text.
func SameColor(a, b string) bool {
	return normalizeColor(a) == normalizeColor(b)
}

// ContrastColor picks black or white text for the background using
// L = (0.299R + 0.587G + 0.114B) / 255: white when L <= 0.5, black otherwise.
// A background which cannot be read gets white.
func ContrastColor(background string) string {
	r, g, b, ok := channels(background)
	if !ok {
		return ContrastWhite
	}
	if (0.299*r+0.587*g+0.114*b)/255 <= 0.5 {
		return ContrastWhite
	}
	return ContrastBlack
}

// EnsureContrast returns the text colour to use against background. When both
// normalize to the same value the text colour is replaced and true returned.
func EnsureContrast(background, text string) (string, bool) {
	if !SameColor(background, text) {
		return text, false
	}
	return ContrastColor(background), true
}

// HealLoaded drops a text colour equal to the background colour. It is the
// load time counterpart of EnsureContrast: the text is left to inherit
// instead of being forced to a contrasting value.
func HealLoaded(p *Properties) bool {
	if p == nil || p.Color == nil || p.BackgroundColor == nil {
		return false
	}
	if !SameColor(*p.BackgroundColor, *p.Color) {
		return false
	}
	p.Color = nil
	return true
}

// channels returns 0-255 RGB channels of a hex, rgb()/rgba() or named colour.
func channels(c string) (r, g, b float64, ok bool) {
	raw := strings.TrimSpace(c)
	c = normalizeColor(c)
	switch {
	case strings.HasPrefix(c, "#"):
		if len(c) == 9 {
			// #rrggbbaa, alpha does not matter here
			c = c[:7]
		} else if len(c) == 5 {
			c = c[:4]
		}
		col, err := colorful.Hex(c)
		if err != nil {
			return 0, 0, 0, false
		}
		r8, g8, b8 := col.RGB255()
		return float64(r8), float64(g8), float64(b8), true
	case strings.HasPrefix(c, "rgb"):
		// separators matter here, raw keeps the spaces
		m := rgbChannelsPattern.FindStringSubmatch(raw)
		if m == nil {
			return 0, 0, 0, false
		}
		var vals [3]float64
		for i := range vals {
			v, err := strconv.ParseFloat(m[i+1], 64)
			if err != nil {
				return 0, 0, 0, false
			}
			vals[i] = min(v, 255)
		}
		return vals[0], vals[1], vals[2], true
	default:
		named, found := colornames.Map[c]
		if !found {
			return 0, 0, 0, false
		}
		return float64(named.R), float64(named.G), float64(named.B), true
	}
}
