package style

import (
	"strings"

	"stylesync/css"
)

// Background image sub-properties are always written together with the
// image, unset ones fall back to these.
const (
	defaultBackgroundSize       = "cover"
	defaultBackgroundPosition   = "center"
	defaultBackgroundRepeat     = "no-repeat"
	defaultBackgroundAttachment = "scroll"
)

// Generate renders the property model as CSS text for the given editing
// context. Page (and site) CSS is a set of selector blocks. Any other context
// yields bare declarations, wrapping them into a selector is up to the caller.
func Generate(p *Properties, ctx EditingContext) string {
	if p == nil {
		return ""
	}
	sheet := &css.Stylesheet{}
	if ctx == EditingContextPage {
		generatePage(p, sheet)
	} else {
		generateScoped(p, sheet)
	}
	return sheet.String()
}

// declList accumulates declarations skipping unset values.
type declList []css.Declaration

func (d *declList) text(name string, v *string) {
	if v != nil {
		*d = append(*d, css.Declaration{Name: name, Value: *v})
	}
}

func (d *declList) pixels(name string, v *float64) {
	if v != nil {
		*d = append(*d, css.Declaration{Name: name, Value: formatPixels(*v)})
	}
}

func (d *declList) important() []css.Declaration {
	for i := range *d {
		(*d)[i].Important = true
	}
	return *d
}

func generatePage(p *Properties, sheet *css.Stylesheet) {
	var body declList
	if p.FontFamily != nil {
		if v := fontFamilyValue(*p.FontFamily); v != "" {
			body = append(body, css.Declaration{Name: "font-family", Value: v})
		}
	}
	body.pixels("font-size", p.FontSize)
	body.text("color", p.Color)
	body.text("background-color", p.BackgroundColor)
	body.pixels("padding", p.Padding)
	body.pixels("margin", p.Margin)
	sheet.Append("body", body...)

	// Links have to win against inline styles of components
	var a, hover, visited, active declList
	a.text("color", p.LinkColor)
	a.text("text-decoration", p.LinkTextDecoration)
	hover.text("color", p.LinkHoverColor)
	hover.text("text-decoration", p.LinkHoverTextDecoration)
	visited.text("color", p.LinkVisitedColor)
	active.text("color", p.LinkActiveColor)
	sheet.Append(string(LinkNormal), a.important()...)
	sheet.Append(string(LinkHover), hover.important()...)
	sheet.Append(string(LinkVisited), visited.important()...)
	sheet.Append(string(LinkActive), active.important()...)

	for _, tag := range Headers {
		h := p.Header(tag)
		var hd declList
		hd.pixels("font-size", h.FontSize)
		hd.pixels("padding", h.Padding)
		hd.pixels("margin", h.Margin)
		hd.text("color", h.Color)
		sheet.Append(tag.String(), hd...)
	}

	var para declList
	para.text("padding", p.PPadding)
	para.text("margin", p.PMargin)
	sheet.Append("p", para...)
}

func generateScoped(p *Properties, sheet *css.Stylesheet) {
	var d declList
	d.text("background-color", p.BackgroundColor)
	d.text("color", p.Color)
	d.pixels("padding", p.Padding)
	d.pixels("margin", p.Margin)
	d.pixels("border-radius", p.BorderRadius)
	d.pixels("border-width", p.BorderWidth)
	d.text("border-color", p.BorderColor)
	d.text("border-style", p.BorderStyle)
	if p.Position != nil && *p.Position != "static" {
		d.text("position", p.Position)
	}
	d.text("display", p.Display)
	d.text("overflow", p.Overflow)
	if p.Float != nil {
		switch *p.Float {
		case "none":
		case "center":
			d = append(d, css.Declaration{Name: "margin", Value: "0 auto"})
		default:
			d.text("float", p.Float)
		}
	}
	d.text("width", sizeValue(p.Width))
	d.text("height", sizeValue(p.Height))
	d.text("min-width", sizeValue(p.MinWidth))
	d.text("min-height", sizeValue(p.MinHeight))
	if p.BackgroundImage != nil {
		d = append(d,
			css.Declaration{Name: "background-image", Value: css.URL(*p.BackgroundImage)},
			css.Declaration{Name: "background-size", Value: orDefault(p.BackgroundSize, defaultBackgroundSize)},
			css.Declaration{Name: "background-position", Value: orDefault(p.BackgroundPosition, defaultBackgroundPosition)},
			css.Declaration{Name: "background-repeat", Value: orDefault(p.BackgroundRepeat, defaultBackgroundRepeat)},
			css.Declaration{Name: "background-attachment", Value: orDefault(p.BackgroundAttachment, defaultBackgroundAttachment)},
		)
	}
	if p.Opacity != nil && *p.Opacity != 1 {
		d = append(d, css.Declaration{Name: "opacity", Value: formatNumber(*p.Opacity)})
	}
	sheet.Append("", d...)
}

// fontFamilyValue quotes a single family and adds the generic fallback. In a
// family list only names with spaces are quoted, quotes already present are
// replaced so an unbalanced one never reaches the output.
func fontFamilyValue(family string) string {
	var families []string
	for f := range strings.SplitSeq(family, ",") {
		if f = strings.Trim(f, `"' `); f != "" {
			families = append(families, f)
		}
	}
	switch len(families) {
	case 0:
		return ""
	case 1:
		return "'" + families[0] + "', sans-serif"
	}
	for i, f := range families {
		if strings.ContainsAny(f, " \t") {
			families[i] = "'" + f + "'"
		}
	}
	return strings.Join(families, ", ")
}

// sizeValue drops the "none" sentinel of the size pickers.
func sizeValue(v *string) *string {
	if v == nil || *v == "none" {
		return nil
	}
	return v
}

func orDefault(v *string, def string) string {
	if v == nil {
		return def
	}
	return *v
}
