package style

// Properties is the property model of one CSS scope. A nil field is not set at
// this tier and defers to the cascade, it is never represented by an empty
// string.
type Properties struct {
	// Box/visual
	BackgroundColor *string  `yaml:"backgroundColor,omitempty" json:"backgroundColor,omitempty"`
	Color           *string  `yaml:"color,omitempty" json:"color,omitempty"`
	FontSize        *float64 `yaml:"fontSize,omitempty" json:"fontSize,omitempty"` // px
	FontFamily      *string  `yaml:"fontFamily,omitempty" json:"fontFamily,omitempty"`
	Padding         *float64 `yaml:"padding,omitempty" json:"padding,omitempty"`           // px
	Margin          *float64 `yaml:"margin,omitempty" json:"margin,omitempty"`             // px
	BorderRadius    *float64 `yaml:"borderRadius,omitempty" json:"borderRadius,omitempty"` // px
	BorderWidth     *float64 `yaml:"borderWidth,omitempty" json:"borderWidth,omitempty"`   // px
	BorderColor     *string  `yaml:"borderColor,omitempty" json:"borderColor,omitempty"`
	BorderStyle     *string  `yaml:"borderStyle,omitempty" json:"borderStyle,omitempty"`
	Opacity         *float64 `yaml:"opacity,omitempty" json:"opacity,omitempty"` // 0-1

	// Background image
	BackgroundImage      *string `yaml:"backgroundImage,omitempty" json:"backgroundImage,omitempty"`
	BackgroundSize       *string `yaml:"backgroundSize,omitempty" json:"backgroundSize,omitempty"`
	BackgroundPosition   *string `yaml:"backgroundPosition,omitempty" json:"backgroundPosition,omitempty"`
	BackgroundRepeat     *string `yaml:"backgroundRepeat,omitempty" json:"backgroundRepeat,omitempty"`
	BackgroundAttachment *string `yaml:"backgroundAttachment,omitempty" json:"backgroundAttachment,omitempty"`

	// Layout
	Position  *string `yaml:"position,omitempty" json:"position,omitempty"`
	Display   *string `yaml:"display,omitempty" json:"display,omitempty"`
	Overflow  *string `yaml:"overflow,omitempty" json:"overflow,omitempty"`
	Float     *string `yaml:"float,omitempty" json:"float,omitempty"` // "center" stands for margin: 0 auto
	Width     *string `yaml:"width,omitempty" json:"width,omitempty"`
	Height    *string `yaml:"height,omitempty" json:"height,omitempty"`
	MinWidth  *string `yaml:"minWidth,omitempty" json:"minWidth,omitempty"`
	MinHeight *string `yaml:"minHeight,omitempty" json:"minHeight,omitempty"`

	// Hyperlinks
	LinkColor               *string `yaml:"linkColor,omitempty" json:"linkColor,omitempty"`
	LinkHoverColor          *string `yaml:"linkHoverColor,omitempty" json:"linkHoverColor,omitempty"`
	LinkVisitedColor        *string `yaml:"linkVisitedColor,omitempty" json:"linkVisitedColor,omitempty"`
	LinkActiveColor         *string `yaml:"linkActiveColor,omitempty" json:"linkActiveColor,omitempty"`
	LinkTextDecoration      *string `yaml:"linkTextDecoration,omitempty" json:"linkTextDecoration,omitempty"`
	LinkHoverTextDecoration *string `yaml:"linkHoverTextDecoration,omitempty" json:"linkHoverTextDecoration,omitempty"`

	// Headers
	H1 HeaderStyle `yaml:"h1,omitempty" json:"h1,omitzero"`
	H2 HeaderStyle `yaml:"h2,omitempty" json:"h2,omitzero"`
	H3 HeaderStyle `yaml:"h3,omitempty" json:"h3,omitzero"`
	H4 HeaderStyle `yaml:"h4,omitempty" json:"h4,omitzero"`

	// Paragraphs, raw shorthand strings (e.g. "10px 0px 0px 10px")
	PPadding *string `yaml:"pPadding,omitempty" json:"pPadding,omitempty"`
	PMargin  *string `yaml:"pMargin,omitempty" json:"pMargin,omitempty"`
}

// HeaderStyle holds the sub-styles of one header tag.
type HeaderStyle struct {
	FontSize *float64 `yaml:"fontSize,omitempty" json:"fontSize,omitempty"` // px
	Padding  *float64 `yaml:"padding,omitempty" json:"padding,omitempty"`   // px
	Margin   *float64 `yaml:"margin,omitempty" json:"margin,omitempty"`     // px
	Color    *string  `yaml:"color,omitempty" json:"color,omitempty"`
}

// IsZero reports whether no header field is set.
func (h HeaderStyle) IsZero() bool {
	return h.FontSize == nil && h.Padding == nil && h.Margin == nil && h.Color == nil
}

// Header returns the sub-styles of the given header tag.
func (p *Properties) Header(tag Header) *HeaderStyle {
	switch tag {
	case H1:
		return &p.H1
	case H2:
		return &p.H2
	case H3:
		return &p.H3
	case H4:
		return &p.H4
	default:
		return nil
	}
}

// Clone returns a deep copy.
func (p *Properties) Clone() *Properties {
	if p == nil {
		return nil
	}
	c := *p
	for _, f := range registry {
		switch {
		case f.text != nil:
			if v := *f.text(&c); v != nil {
				*f.text(&c) = ptr(*v)
			}
		case f.number != nil:
			if v := *f.number(&c); v != nil {
				*f.number(&c) = ptr(*v)
			}
		}
	}
	return &c
}

// Count returns the number of fields which are set.
func (p *Properties) Count() int {
	n := 0
	for _, f := range registry {
		if f.isSet(p) {
			n++
		}
	}
	return n
}

func ptr[T any](v T) *T {
	return &v
}
