package style

import (
	"strings"

	"stylesync/css"
)

// extractor fills one or more properties from a scanned document. Entries run
// in table order; later entries may rely on what earlier ones left unset.
type extractor struct {
	sets []Property
	run  func(d *document, p *Properties)
}

// extractors is the ordered extraction table. Lookups by declaration name are
// exact, so "color" never sees "border-color" or "background-color" and
// "width" never sees "min-width" or "border-width".
var extractors = []extractor{
	{sets: []Property{PropFontFamily}, run: func(d *document, p *Properties) {
		// body wins over any other top level font-family
		if v := lastText(d.selector("body", "font-family"), fontFamily); v != nil {
			p.FontFamily = v
			return
		}
		p.FontFamily = lastText(d.main("font-family"), fontFamily)
	}},
	{sets: []Property{PropBackgroundColor}, run: func(d *document, p *Properties) {
		decls := d.main("background-color", "background")
		for i := len(decls) - 1; i >= 0; i-- {
			if decls[i].Name == "background-color" {
				p.BackgroundColor = ptr(decls[i].Value)
				return
			}
			if c, ok := findColor(decls[i].Value); ok {
				p.BackgroundColor = &c
				return
			}
		}
	}},
	{sets: []Property{PropColor}, run: func(d *document, p *Properties) {
		p.Color = lastText(d.main("color"), verbatim)
	}},
	{sets: []Property{PropFontSize}, run: func(d *document, p *Properties) {
		p.FontSize = lastNumber(d.main("font-size"), parseWholePixels)
	}},
	{sets: []Property{PropPadding}, run: func(d *document, p *Properties) {
		p.Padding = lastNumber(d.main("padding"), parseLength)
	}},
	{sets: []Property{PropMargin}, run: func(d *document, p *Properties) {
		p.Margin = lastNumber(d.main("margin"), parseMargin)
	}},
	{sets: []Property{PropBorderRadius}, run: func(d *document, p *Properties) {
		p.BorderRadius = lastNumber(d.main("border-radius"), parseLength)
	}},
	{sets: []Property{PropBorderWidth, PropBorderStyle, PropBorderColor}, run: func(d *document, p *Properties) {
		decls := d.main("border")
		if len(decls) == 0 {
			return
		}
		b := parseBorder(decls[len(decls)-1].Value)
		p.BorderWidth, p.BorderStyle, p.BorderColor = b.width, b.style, b.color
	}},
	{sets: []Property{PropBorderWidth, PropBorderStyle, PropBorderColor}, run: func(d *document, p *Properties) {
		// individual declarations only fill what the shorthand left unset
		if p.BorderWidth == nil {
			p.BorderWidth = lastNumber(d.main("border-width"), parseLength)
		}
		if p.BorderStyle == nil {
			p.BorderStyle = lastText(d.main("border-style"), keyword)
		}
		if p.BorderColor == nil {
			p.BorderColor = lastText(d.main("border-color"), verbatim)
		}
	}},
	{sets: []Property{PropPosition}, run: func(d *document, p *Properties) {
		p.Position = lastText(d.main("position"), keyword)
	}},
	{sets: []Property{PropDisplay}, run: func(d *document, p *Properties) {
		p.Display = lastText(d.main("display"), keyword)
	}},
	{sets: []Property{PropOverflow}, run: func(d *document, p *Properties) {
		p.Overflow = lastText(d.main("overflow"), keyword)
	}},
	{sets: []Property{PropFloat}, run: func(d *document, p *Properties) {
		// "margin: 0 auto" is how a centered block is written
		decls := d.main("float", "margin")
		for i := len(decls) - 1; i >= 0; i-- {
			switch {
			case decls[i].Name == "float":
				if v, ok := keyword(decls[i].Value); ok {
					p.Float = &v
					return
				}
			case isCentering(decls[i].Value):
				p.Float = ptr("center")
				return
			}
		}
	}},
	{sets: []Property{PropBackgroundImage}, run: func(d *document, p *Properties) {
		p.BackgroundImage = lastText(d.main("background-image"), imageURL)
	}},
	{sets: []Property{PropBackgroundSize}, run: func(d *document, p *Properties) {
		p.BackgroundSize = lastText(d.main("background-size"), verbatim)
	}},
	{sets: []Property{PropBackgroundPosition}, run: func(d *document, p *Properties) {
		p.BackgroundPosition = lastText(d.main("background-position"), verbatim)
	}},
	{sets: []Property{PropBackgroundRepeat}, run: func(d *document, p *Properties) {
		p.BackgroundRepeat = lastText(d.main("background-repeat"), verbatim)
	}},
	{sets: []Property{PropBackgroundAttachment}, run: func(d *document, p *Properties) {
		p.BackgroundAttachment = lastText(d.main("background-attachment"), verbatim)
	}},
	{sets: []Property{PropOpacity}, run: func(d *document, p *Properties) {
		p.Opacity = lastNumber(d.main("opacity"), parseOpacity)
	}},
	{sets: []Property{PropWidth}, run: func(d *document, p *Properties) {
		p.Width = lastText(d.main("width"), verbatim)
	}},
	{sets: []Property{PropHeight}, run: func(d *document, p *Properties) {
		p.Height = lastText(d.main("height"), verbatim)
	}},
	{sets: []Property{PropMinWidth}, run: func(d *document, p *Properties) {
		p.MinWidth = lastText(d.main("min-width"), verbatim)
	}},
	{sets: []Property{PropMinHeight}, run: func(d *document, p *Properties) {
		p.MinHeight = lastText(d.main("min-height"), verbatim)
	}},
	linkExtractor(LinkNormal, LinkColorAttr, func(p *Properties) **string { return &p.LinkColor }),
	linkExtractor(LinkHover, LinkColorAttr, func(p *Properties) **string { return &p.LinkHoverColor }),
	linkExtractor(LinkVisited, LinkColorAttr, func(p *Properties) **string { return &p.LinkVisitedColor }),
	linkExtractor(LinkActive, LinkColorAttr, func(p *Properties) **string { return &p.LinkActiveColor }),
	linkExtractor(LinkNormal, LinkDecorationAttr, func(p *Properties) **string { return &p.LinkTextDecoration }),
	linkExtractor(LinkHover, LinkDecorationAttr, func(p *Properties) **string { return &p.LinkHoverTextDecoration }),
	headerExtractor(H1),
	headerExtractor(H2),
	headerExtractor(H3),
	headerExtractor(H4),
	{sets: []Property{PropParagraphPadding, PropParagraphMargin}, run: func(d *document, p *Properties) {
		p.PPadding = lastText(d.block("p", "padding"), verbatim)
		p.PMargin = lastText(d.block("p", "margin"), verbatim)
	}},
}

// extractorsFor indexes the table by property, keeping table order.
var extractorsFor = func() map[Property][]int {
	m := make(map[Property][]int)
	for i, e := range extractors {
		for _, name := range e.sets {
			m[name] = append(m[name], i)
		}
	}
	return m
}()

func linkExtractor(state LinkState, attr LinkAttr, get func(*Properties) **string) extractor {
	name, _ := LinkProperty(state, attr)
	return extractor{sets: []Property{name}, run: func(d *document, p *Properties) {
		*get(p) = lastText(d.block(string(state), string(attr)), verbatim)
	}}
}

func headerExtractor(tag Header) extractor {
	return extractor{
		sets: []Property{
			HeaderProperty(tag, HeaderFontSize),
			HeaderProperty(tag, HeaderPadding),
			HeaderProperty(tag, HeaderMargin),
			HeaderProperty(tag, HeaderColor),
		},
		run: func(d *document, p *Properties) {
			h := p.Header(tag)
			target := tag.String()
			h.FontSize = lastNumber(d.block(target, "font-size"), parseWholePixels)
			h.Padding = lastNumber(d.block(target, "padding"), parseLength)
			h.Margin = lastNumber(d.block(target, "margin"), parseMargin)
			h.Color = lastText(d.block(target, "color"), verbatim)
		},
	}
}

// selector returns declarations from blocks whose selector is exactly sel.
func (d *document) selector(sel string, names ...string) []css.Declaration {
	var out []css.Declaration
	for _, rule := range d.sheet.Rules {
		if strings.EqualFold(rule.Selector.Raw, sel) {
			out = appendNamed(out, rule.Declarations, names)
		}
	}
	return out
}
