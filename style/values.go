package style

import (
	"math"
	"regexp"
	"strconv"
	"strings"

	"golang.org/x/image/colornames"
)

// remPx is the fixed rem to px factor. Converting is lossy: the unit is gone
// once a value went through the parser.
const remPx = 16

var (
	lengthPattern    = regexp.MustCompile(`^(-?(?:\d+\.?\d*|\.\d+))(px|rem|em|%)?$`)
	wholePxPattern   = regexp.MustCompile(`^(\d+)px$`)
	centeringPattern = regexp.MustCompile(`(?i)^0(?:px)?\s+auto$`)
	hexColorPattern  = regexp.MustCompile(`#[0-9a-fA-F]{3,8}\b`)
	rgbColorPattern  = regexp.MustCompile(`(?i)rgba?\([^)]*\)`)
	urlPattern       = regexp.MustCompile(`url\s*\(\s*(?:["']([^"']*)["']|([^)"']*))\s*\)`)
	sansSerifPattern = regexp.MustCompile(`(?i)\s*,\s*sans-serif\s*$`)
)

// borderStyles are the only keywords the border shorthand recognizes as a
// style, they are never mistaken for a colour.
var borderStyles = map[string]bool{
	"none":   true,
	"solid":  true,
	"dashed": true,
	"dotted": true,
	"double": true,
}

// parseLength reads the first token of a value as a number with an optional
// px, rem, em or % unit. Only rem is converted, other units keep their number.
func parseLength(value string) (float64, bool) {
	first, _, _ := strings.Cut(strings.TrimSpace(value), " ")
	m := lengthPattern.FindStringSubmatch(strings.ToLower(first))
	if m == nil {
		return 0, false
	}
	v, err := strconv.ParseFloat(m[1], 64)
	if err != nil {
		return 0, false
	}
	if m[2] == "rem" {
		v *= remPx
	}
	return v, true
}

// parseWholePixels accepts integer pixel values only ("16px").
func parseWholePixels(value string) (float64, bool) {
	m := wholePxPattern.FindStringSubmatch(strings.ToLower(strings.TrimSpace(value)))
	if m == nil {
		return 0, false
	}
	v, err := strconv.ParseFloat(m[1], 64)
	return v, err == nil
}

// parseMargin is parseLength which refuses the "0 auto" centering idiom.
func parseMargin(value string) (float64, bool) {
	if isCentering(value) {
		return 0, false
	}
	return parseLength(value)
}

func isCentering(value string) bool {
	return centeringPattern.MatchString(strings.TrimSpace(value))
}

func parseOpacity(value string) (float64, bool) {
	v, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}

// keyword captures the first token of a value verbatim.
func keyword(value string) (string, bool) {
	fields := strings.Fields(value)
	if len(fields) == 0 {
		return "", false
	}
	return fields[0], true
}

// verbatim captures the whole value.
func verbatim(value string) (string, bool) {
	value = strings.TrimSpace(value)
	return value, value != ""
}

// fontFamily strips quotes from every family of the stack and drops the
// generic sans-serif fallback at its end.
func fontFamily(value string) (string, bool) {
	value = sansSerifPattern.ReplaceAllString(strings.TrimSpace(value), "")
	families := make([]string, 0, strings.Count(value, ",")+1)
	for family := range strings.SplitSeq(value, ",") {
		if family = strings.Trim(family, `"' `); family != "" {
			families = append(families, family)
		}
	}
	value = strings.Join(families, ", ")
	return value, value != ""
}

// imageURL extracts the location out of url(...).
func imageURL(value string) (string, bool) {
	m := urlPattern.FindStringSubmatch(value)
	if m == nil {
		return "", false
	}
	loc := m[1]
	if loc == "" {
		loc = m[2]
	}
	loc = strings.TrimSpace(loc)
	return loc, loc != ""
}

// findColor looks for a colour token inside a shorthand value: hex first,
// rgb()/rgba() next, then a named colour. Border style keywords and the
// content of url(...) are skipped.
func findColor(value string) (string, bool) {
	value = withoutURLs(value)
	if m := hexColorPattern.FindString(value); m != "" {
		return m, true
	}
	if m := rgbColorPattern.FindString(value); m != "" {
		return m, true
	}
	for _, word := range strings.Fields(value) {
		w := strings.ToLower(word)
		if borderStyles[w] {
			continue
		}
		if isNamedColor(w) {
			return word, true
		}
	}
	return "", false
}

// withoutURLs blanks url(...) tokens, an image location is never a colour.
func withoutURLs(value string) string {
	return urlPattern.ReplaceAllString(value, " ")
}

func isNamedColor(name string) bool {
	if name == "transparent" || name == "currentcolor" {
		return true
	}
	_, ok := colornames.Map[name]
	return ok
}

// border is what the border shorthand yields.
type border struct {
	width *float64
	style *string
	color *string
}

// parseBorder splits a border shorthand, token order does not matter.
func parseBorder(value string) border {
	var b border
	rest := withoutURLs(value)
	if c, ok := findColor(rest); ok {
		b.color = ptr(c)
		rest = strings.Replace(rest, c, " ", 1)
	}
	for _, word := range strings.Fields(rest) {
		w := strings.ToLower(word)
		switch {
		case b.style == nil && borderStyles[w]:
			b.style = ptr(w)
		case b.width == nil:
			if v, ok := parseLength(w); ok && !strings.HasSuffix(w, "%") {
				b.width = ptr(v)
			}
		}
	}
	return b
}

func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func formatPixels(v float64) string {
	return formatNumber(v) + "px"
}
