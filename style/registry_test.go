package style

import (
	"errors"
	"testing"
)

func TestProperties_Set(t *testing.T) {
	tests := []struct {
		name    Property
		value   string
		want    string
		wantErr error
	}{
		{PropPadding, "12", "12px", nil},
		{PropPadding, "12px", "12px", nil},
		{PropPadding, "1.5rem", "24px", nil},
		{PropFontSize, "16px", "16px", nil},
		{PropFontSize, "16.5px", "", ErrInvalidValue},
		{PropOpacity, "0.3", "0.3", nil},
		{PropOpacity, "1.3", "", ErrInvalidValue},
		{PropOpacity, "abc", "", ErrInvalidValue},
		{PropColor, "  #fff ", "#fff", nil},
		{PropColor, "   ", "", ErrInvalidValue},
		{PropMargin, "auto", "", ErrInvalidValue},
		{HeaderProperty(H4, HeaderFontSize), "28", "28px", nil},
		{"h5Color", "red", "", ErrUnknownProperty},
	}

	for _, tt := range tests {
		p := &Properties{}
		err := p.Set(tt.name, tt.value)
		if tt.wantErr != nil {
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Set(%s, %q) error = %v, want %v", tt.name, tt.value, err, tt.wantErr)
			}
			if p.IsSet(tt.name) {
				t.Errorf("Set(%s, %q) stored a value despite the error", tt.name, tt.value)
			}
			continue
		}
		if err != nil {
			t.Errorf("Set(%s, %q) error = %v", tt.name, tt.value, err)
			continue
		}
		if got, _ := p.Value(tt.name); got != tt.want {
			t.Errorf("Set(%s, %q) -> %q, want %q", tt.name, tt.value, got, tt.want)
		}
	}
}

func TestProperties_Unset(t *testing.T) {
	p := &Properties{Color: ptr("red"), H1: HeaderStyle{Padding: ptr(3.0)}}

	if err := p.Unset(PropColor); err != nil {
		t.Fatal(err)
	}
	if err := p.Unset(HeaderProperty(H1, HeaderPadding)); err != nil {
		t.Fatal(err)
	}
	if p.Count() != 0 {
		t.Errorf("Count() = %d after unsetting everything", p.Count())
	}
	if err := p.Unset("nope"); !errors.Is(err, ErrUnknownProperty) {
		t.Errorf("Unset(nope) error = %v", err)
	}
}

func TestProperties_Clone(t *testing.T) {
	p := &Properties{Color: ptr("red"), Padding: ptr(1.0), H2: HeaderStyle{Color: ptr("blue")}}

	c := p.Clone()
	*c.Color = "green"
	*c.Padding = 2
	*c.H2.Color = "black"

	if *p.Color != "red" || *p.Padding != 1 || *p.H2.Color != "blue" {
		t.Error("Clone() shares storage with the original")
	}
	if (*Properties)(nil).Clone() != nil {
		t.Error("Clone(nil) must be nil")
	}
}

func TestRegistry(t *testing.T) {
	all := AllProperties()
	// 30 flat fields, 4 headers with 4 attributes, 2 paragraph fields
	if len(all) != 30+16+2 {
		t.Errorf("AllProperties() has %d entries", len(all))
	}
	seen := make(map[Property]bool)
	for _, name := range all {
		if seen[name] {
			t.Errorf("duplicate property %s", name)
		}
		seen[name] = true
		if len(extractorsFor[name]) == 0 {
			t.Errorf("no extractor sets %s", name)
		}
	}
	if !Known("h3Margin") || Known("h3margin") {
		t.Error("property names are case sensitive camel case")
	}
}

func TestLinkProperty(t *testing.T) {
	for _, state := range LinkStates {
		if _, ok := LinkProperty(state, LinkColorAttr); !ok {
			t.Errorf("missing colour for %s", state)
		}
	}
	if _, ok := LinkProperty(LinkActive, LinkDecorationAttr); ok {
		t.Error("active text decoration is not tracked")
	}
}

func TestEditingContext(t *testing.T) {
	for _, name := range EditingContextNames() {
		ctx, err := ParseEditingContext(name)
		if err != nil {
			t.Fatalf("ParseEditingContext(%s) error = %v", name, err)
		}
		if ctx.String() != name {
			t.Errorf("String() = %s, want %s", ctx, name)
		}
	}
	if _, err := ParseEditingContext("site"); !errors.Is(err, ErrInvalidEditingContext) {
		t.Errorf("ParseEditingContext(site) error = %v", err)
	}

	var ctx EditingContext
	if err := ctx.UnmarshalText([]byte("Row")); err != nil || ctx != EditingContextRow {
		t.Errorf("UnmarshalText(Row) = %v, %v", ctx, err)
	}
	if !EditingContextColumn.nested() || EditingContextSection.nested() {
		t.Error("only rows and columns live inside a section")
	}
}
