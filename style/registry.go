package style

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

var (
	ErrUnknownProperty = errors.New("unknown property")
	ErrInvalidValue    = errors.New("invalid property value")
)

// Property is the stable name of a Properties field, e.g. "backgroundColor" or "h2Margin".
type Property string

const (
	PropBackgroundColor      Property = "backgroundColor"
	PropColor                Property = "color"
	PropFontSize             Property = "fontSize"
	PropFontFamily           Property = "fontFamily"
	PropPadding              Property = "padding"
	PropMargin               Property = "margin"
	PropBorderRadius         Property = "borderRadius"
	PropBorderWidth          Property = "borderWidth"
	PropBorderColor          Property = "borderColor"
	PropBorderStyle          Property = "borderStyle"
	PropOpacity              Property = "opacity"
	PropBackgroundImage      Property = "backgroundImage"
	PropBackgroundSize       Property = "backgroundSize"
	PropBackgroundPosition   Property = "backgroundPosition"
	PropBackgroundRepeat     Property = "backgroundRepeat"
	PropBackgroundAttachment Property = "backgroundAttachment"
	PropPosition             Property = "position"
	PropDisplay              Property = "display"
	PropOverflow             Property = "overflow"
	PropFloat                Property = "float"
	PropWidth                Property = "width"
	PropHeight               Property = "height"
	PropMinWidth             Property = "minWidth"
	PropMinHeight            Property = "minHeight"
	PropLinkColor            Property = "linkColor"
	PropLinkHoverColor       Property = "linkHoverColor"
	PropLinkVisitedColor     Property = "linkVisitedColor"
	PropLinkActiveColor      Property = "linkActiveColor"
	PropLinkTextDecoration   Property = "linkTextDecoration"
	PropLinkHoverDecoration  Property = "linkHoverTextDecoration"
	PropParagraphPadding     Property = "pPadding"
	PropParagraphMargin      Property = "pMargin"
)

// HeaderProperty returns the name of a header sub-style, e.g. "h1FontSize".
func HeaderProperty(tag Header, attr HeaderAttr) Property {
	return Property(tag.String() + string(attr))
}

// LinkProperty returns the name of an anchor sub-style. Text decoration is
// only tracked for the normal and hover states.
func LinkProperty(state LinkState, attr LinkAttr) (Property, bool) {
	switch {
	case attr == LinkColorAttr && state == LinkNormal:
		return PropLinkColor, true
	case attr == LinkColorAttr && state == LinkHover:
		return PropLinkHoverColor, true
	case attr == LinkColorAttr && state == LinkVisited:
		return PropLinkVisitedColor, true
	case attr == LinkColorAttr && state == LinkActive:
		return PropLinkActiveColor, true
	case attr == LinkDecorationAttr && state == LinkNormal:
		return PropLinkTextDecoration, true
	case attr == LinkDecorationAttr && state == LinkHover:
		return PropLinkHoverDecoration, true
	default:
		return "", false
	}
}

// ParagraphProperty returns the name of a paragraph sub-style.
func ParagraphProperty(attr ParagraphAttr) (Property, bool) {
	switch attr {
	case ParagraphPadding:
		return PropParagraphPadding, true
	case ParagraphMargin:
		return PropParagraphMargin, true
	default:
		return "", false
	}
}

type valueKind int

const (
	kindText        valueKind = iota
	kindPixels                // float px, written with "px"
	kindWholePixels           // integer px, written with "px"
	kindNumber                // unitless float
)

// field binds a property name to its storage in Properties.
// Exactly one of text and number is set.
type field struct {
	name   Property
	kind   valueKind
	text   func(*Properties) **string
	number func(*Properties) **float64
}

var (
	registry = buildRegistry()
	byName   = indexRegistry(registry)
)

func textField(name Property, get func(*Properties) **string) *field {
	return &field{name: name, kind: kindText, text: get}
}

func numberField(name Property, kind valueKind, get func(*Properties) **float64) *field {
	return &field{name: name, kind: kind, number: get}
}

func buildRegistry() []*field {
	fields := []*field{
		textField(PropBackgroundColor, func(p *Properties) **string { return &p.BackgroundColor }),
		textField(PropColor, func(p *Properties) **string { return &p.Color }),
		numberField(PropFontSize, kindWholePixels, func(p *Properties) **float64 { return &p.FontSize }),
		textField(PropFontFamily, func(p *Properties) **string { return &p.FontFamily }),
		numberField(PropPadding, kindPixels, func(p *Properties) **float64 { return &p.Padding }),
		numberField(PropMargin, kindPixels, func(p *Properties) **float64 { return &p.Margin }),
		numberField(PropBorderRadius, kindPixels, func(p *Properties) **float64 { return &p.BorderRadius }),
		numberField(PropBorderWidth, kindPixels, func(p *Properties) **float64 { return &p.BorderWidth }),
		textField(PropBorderColor, func(p *Properties) **string { return &p.BorderColor }),
		textField(PropBorderStyle, func(p *Properties) **string { return &p.BorderStyle }),
		numberField(PropOpacity, kindNumber, func(p *Properties) **float64 { return &p.Opacity }),
		textField(PropBackgroundImage, func(p *Properties) **string { return &p.BackgroundImage }),
		textField(PropBackgroundSize, func(p *Properties) **string { return &p.BackgroundSize }),
		textField(PropBackgroundPosition, func(p *Properties) **string { return &p.BackgroundPosition }),
		textField(PropBackgroundRepeat, func(p *Properties) **string { return &p.BackgroundRepeat }),
		textField(PropBackgroundAttachment, func(p *Properties) **string { return &p.BackgroundAttachment }),
		textField(PropPosition, func(p *Properties) **string { return &p.Position }),
		textField(PropDisplay, func(p *Properties) **string { return &p.Display }),
		textField(PropOverflow, func(p *Properties) **string { return &p.Overflow }),
		textField(PropFloat, func(p *Properties) **string { return &p.Float }),
		textField(PropWidth, func(p *Properties) **string { return &p.Width }),
		textField(PropHeight, func(p *Properties) **string { return &p.Height }),
		textField(PropMinWidth, func(p *Properties) **string { return &p.MinWidth }),
		textField(PropMinHeight, func(p *Properties) **string { return &p.MinHeight }),
		textField(PropLinkColor, func(p *Properties) **string { return &p.LinkColor }),
		textField(PropLinkHoverColor, func(p *Properties) **string { return &p.LinkHoverColor }),
		textField(PropLinkVisitedColor, func(p *Properties) **string { return &p.LinkVisitedColor }),
		textField(PropLinkActiveColor, func(p *Properties) **string { return &p.LinkActiveColor }),
		textField(PropLinkTextDecoration, func(p *Properties) **string { return &p.LinkTextDecoration }),
		textField(PropLinkHoverDecoration, func(p *Properties) **string { return &p.LinkHoverTextDecoration }),
	}
	for _, tag := range Headers {
		fields = append(fields,
			numberField(HeaderProperty(tag, HeaderFontSize), kindWholePixels, func(p *Properties) **float64 { return &p.Header(tag).FontSize }),
			numberField(HeaderProperty(tag, HeaderPadding), kindPixels, func(p *Properties) **float64 { return &p.Header(tag).Padding }),
			numberField(HeaderProperty(tag, HeaderMargin), kindPixels, func(p *Properties) **float64 { return &p.Header(tag).Margin }),
			textField(HeaderProperty(tag, HeaderColor), func(p *Properties) **string { return &p.Header(tag).Color }),
		)
	}
	return append(fields,
		textField(PropParagraphPadding, func(p *Properties) **string { return &p.PPadding }),
		textField(PropParagraphMargin, func(p *Properties) **string { return &p.PMargin }),
	)
}

func indexRegistry(fields []*field) map[Property]*field {
	m := make(map[Property]*field, len(fields))
	for _, f := range fields {
		m[f.name] = f
	}
	return m
}

// AllProperties returns every known property name in model order.
func AllProperties() []Property {
	names := make([]Property, 0, len(registry))
	for _, f := range registry {
		names = append(names, f.name)
	}
	return names
}

// Known reports whether name is a property of the model.
func Known(name Property) bool {
	_, ok := byName[name]
	return ok
}

func lookup(name Property) (*field, error) {
	f, ok := byName[name]
	if !ok {
		return nil, fmt.Errorf("%q: %w", name, ErrUnknownProperty)
	}
	return f, nil
}

func (f *field) isSet(p *Properties) bool {
	if f.text != nil {
		return *f.text(p) != nil
	}
	return *f.number(p) != nil
}

// value returns the field rendered as a CSS value.
func (f *field) value(p *Properties) (string, bool) {
	if f.text != nil {
		if v := *f.text(p); v != nil {
			return *v, true
		}
		return "", false
	}
	v := *f.number(p)
	if v == nil {
		return "", false
	}
	if f.kind == kindNumber {
		return formatNumber(*v), true
	}
	return formatPixels(*v), true
}

func (f *field) set(p *Properties, raw string) error {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return fmt.Errorf("%s: empty value: %w", f.name, ErrInvalidValue)
	}

	switch f.kind {
	case kindText:
		*f.text(p) = &raw
		return nil
	case kindPixels:
		v, ok := parseLength(raw)
		if !ok {
			return fmt.Errorf("%s: %q is not a length: %w", f.name, raw, ErrInvalidValue)
		}
		*f.number(p) = &v
		return nil
	case kindWholePixels:
		v, ok := parseLength(raw)
		if !ok || v != math.Trunc(v) {
			return fmt.Errorf("%s: %q is not a whole pixel size: %w", f.name, raw, ErrInvalidValue)
		}
		*f.number(p) = &v
		return nil
	default:
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("%s: %q is not a number: %w", f.name, raw, ErrInvalidValue)
		}
		if f.name == PropOpacity && (v < 0 || v > 1) {
			return fmt.Errorf("%s: %q is out of range 0-1: %w", f.name, raw, ErrInvalidValue)
		}
		*f.number(p) = &v
		return nil
	}
}

func (f *field) unset(p *Properties) {
	if f.text != nil {
		*f.text(p) = nil
		return
	}
	*f.number(p) = nil
}

// Value returns the named property rendered as a CSS value ("16px", "#fff").
func (p *Properties) Value(name Property) (string, bool) {
	f, ok := byName[name]
	if !ok || p == nil {
		return "", false
	}
	return f.value(p)
}

// IsSet reports whether the named property has a concrete value.
func (p *Properties) IsSet(name Property) bool {
	f, ok := byName[name]
	return ok && p != nil && f.isSet(p)
}

// Set parses value according to the property kind and stores it. Length
// properties accept an optional px, rem, em or % unit, rem is converted to px.
func (p *Properties) Set(name Property, value string) error {
	f, err := lookup(name)
	if err != nil {
		return err
	}
	return f.set(p, value)
}

// Unset returns the named property to the inherited state.
func (p *Properties) Unset(name Property) error {
	f, err := lookup(name)
	if err != nil {
		return err
	}
	f.unset(p)
	return nil
}
