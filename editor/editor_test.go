package editor

import (
	"errors"
	"strings"
	"testing"

	"go.uber.org/zap/zaptest"

	"stylesync/style"
)

// recorder collects onChange calls.
type recorder struct {
	calls []string
}

func (r *recorder) onChange(css string) {
	r.calls = append(r.calls, css)
}

func (r *recorder) last() string {
	if len(r.calls) == 0 {
		return ""
	}
	return r.calls[len(r.calls)-1]
}

func TestNew_HealsCollidingColours(t *testing.T) {
	var rec recorder
	e := New(style.EditingContextRow, "background-color: #FFF; color: #fff; padding: 4px;", rec.onChange,
		WithLogger(zaptest.NewLogger(t)))

	if len(rec.calls) != 1 {
		t.Fatalf("expected exactly one change on load, got %d", len(rec.calls))
	}
	if strings.Contains(rec.last(), "color: #fff") {
		t.Errorf("text colour kept: %q", rec.last())
	}
	if e.Properties().Color != nil {
		t.Error("text colour must be left to inherit")
	}
	if e.CSS() != rec.last() {
		t.Errorf("CSS() = %q, emitted %q", e.CSS(), rec.last())
	}
}

func TestNew_CleanLoadIsSilent(t *testing.T) {
	var rec recorder
	e := New(style.EditingContextRow, "background-color: #fff; color: #000;", rec.onChange)

	if len(rec.calls) != 0 {
		t.Errorf("unexpected changes on load: %q", rec.calls)
	}
	if e.CSS() != "background-color: #fff; color: #000;" {
		t.Errorf("CSS() = %q, loaded text must be kept as is", e.CSS())
	}
	if e.ID().String() == "" {
		t.Error("session id not set")
	}
}

func TestUpdateProperty(t *testing.T) {
	var rec recorder
	e := New(style.EditingContextSection, "", rec.onChange)

	if err := e.UpdateProperty(style.PropPadding, "12"); err != nil {
		t.Fatalf("UpdateProperty() error = %v", err)
	}
	if rec.last() != "padding: 12px;\n" {
		t.Errorf("emitted %q", rec.last())
	}

	if err := e.UpdateProperty("bogus", "1"); !errors.Is(err, style.ErrUnknownProperty) {
		t.Errorf("unknown property error = %v", err)
	}
	if err := e.UpdateProperty(style.PropFontSize, "big"); !errors.Is(err, style.ErrInvalidValue) {
		t.Errorf("invalid value error = %v", err)
	}
	if len(rec.calls) != 1 {
		t.Errorf("failed updates must not emit, got %d calls", len(rec.calls))
	}

	if err := e.ClearProperty(style.PropPadding); err != nil {
		t.Fatalf("ClearProperty() error = %v", err)
	}
	if rec.last() != "" || e.Properties().Padding != nil {
		t.Errorf("after clear emitted %q", rec.last())
	}
	if err := e.ClearProperty("bogus"); !errors.Is(err, style.ErrUnknownProperty) {
		t.Errorf("ClearProperty(bogus) error = %v", err)
	}
}

func TestUpdateProperty_ContrastGuard(t *testing.T) {
	tests := []struct {
		name  string
		load  string
		prop  style.Property
		value string
		want  string
	}{
		{"background collides with text", "color: #ffffff;", style.PropBackgroundColor, "#FFFFFF", style.ContrastBlack},
		{"text collides with background", "background-color: #000;", style.PropColor, " #000 ", style.ContrastWhite},
		{"dark named background", "color: navy;", style.PropBackgroundColor, "Navy", style.ContrastWhite},
		{"no collision", "background-color: #000;", style.PropColor, "#333", "#333"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := New(style.EditingContextColumn, tt.load, nil)
			if err := e.UpdateProperty(tt.prop, tt.value); err != nil {
				t.Fatal(err)
			}
			p := e.Properties()
			if p.Color == nil || *p.Color != tt.want {
				t.Errorf("Color = %v, want %s", p.Color, tt.want)
			}
			if style.SameColor(*p.Color, *p.BackgroundColor) {
				t.Error("text and background collide")
			}
			if !strings.Contains(e.CSS(), "color: "+tt.want+";") {
				t.Errorf("regenerated CSS lost the text colour: %q", e.CSS())
			}
		})
	}
}

func TestSetCSS_SuppressedWhileColourInputFocused(t *testing.T) {
	var rec recorder
	e := New(style.EditingContextRow, "padding: 1px;", rec.onChange)

	e.SetCSS("padding: 2px;")
	if p := e.Properties(); *p.Padding != 2 {
		t.Fatalf("Padding = %v after external change", *p.Padding)
	}

	e.FocusColorInput()
	e.SetCSS("padding: 3px;")
	if p := e.Properties(); *p.Padding != 2 {
		t.Errorf("model reparsed while focused: %v", *p.Padding)
	}

	e.BlurColorInput()
	if p := e.Properties(); *p.Padding != 3 {
		t.Errorf("Padding = %v after blur, want 3", *p.Padding)
	}
	if len(rec.calls) != 0 {
		t.Errorf("external changes must not be echoed, got %q", rec.calls)
	}
}

func TestEditRaw(t *testing.T) {
	var rec recorder
	e := New(style.EditingContextRow, "", rec.onChange)

	raw := "margin: 0 auto;  /* centred */"
	e.EditRaw(raw)

	if rec.last() != raw {
		t.Errorf("emitted %q, raw text must pass verbatim", rec.last())
	}
	if p := e.Properties(); p.Float == nil || *p.Float != "center" {
		t.Errorf("raw text not reparsed: %+v", p)
	}
}

func TestCascadeQueries(t *testing.T) {
	e := New(style.EditingContextRow, "margin: 3px;", nil, WithCascade(style.CascadeContext{
		SiteCSS:       "padding: 10px; margin: 1px",
		PageCSS:       "padding: 20px",
		SectionCSS:    "padding: 30px",
		OverridingCSS: "margin: 3px",
		// ignored, the session context wins
		Editing: style.EditingContextPage,
	}))

	if got := e.Inherited(style.PropPadding); got.Value != "30px" || got.Source != style.SourceSection {
		t.Errorf("Inherited(padding) = %+v", got)
	}
	if got := e.Effective(style.PropMargin); got.Value != "3px" || got.Source != style.SourceLocal {
		t.Errorf("Effective(margin) = %+v", got)
	}
	if !e.Overridden(style.PropMargin) || e.Overridden(style.PropPadding) {
		t.Error("Overridden() must reflect presence in the overriding scope")
	}
	if !e.Shadowed(style.PropMargin) {
		t.Error("local margin should be shadowed")
	}

	e.SetCascade(style.CascadeContext{SiteCSS: "padding: 5px", Editing: style.EditingContextPage})
	if e.Cascade().Editing != style.EditingContextRow {
		t.Error("SetCascade() must keep the session context")
	}
	if got := e.Effective(style.PropPadding); got.Value != "5px" || got.Source != style.SourceSite {
		t.Errorf("Effective(padding) = %+v", got)
	}
}

func TestWithParser(t *testing.T) {
	p := style.NewParser(nil, style.WithScopePrefixes(".grid"))
	e := New(style.EditingContextPage, ".grid a { color: red }", nil, WithParser(p))

	if got := e.Properties().LinkColor; got == nil || *got != "red" {
		t.Errorf("LinkColor = %v", got)
	}
}
