package style

import (
	"reflect"
	"strings"
	"testing"

	"go.uber.org/zap"
)

func TestGenerate_Nil(t *testing.T) {
	if got := Generate(nil, EditingContextRow); got != "" {
		t.Errorf("Generate(nil) = %q", got)
	}
	if got := Generate(&Properties{}, EditingContextPage); got != "" {
		t.Errorf("Generate(empty) = %q", got)
	}
}

func TestGenerate_ScopedOrder(t *testing.T) {
	p := &Properties{
		Opacity:         ptr(0.5),
		Padding:         ptr(10.0),
		Color:           ptr("#000"),
		BackgroundColor: ptr("#fff"),
		BorderStyle:     ptr("solid"),
		BorderWidth:     ptr(1.0),
		Display:         ptr("flex"),
	}

	want := "background-color: #fff;\n" +
		"color: #000;\n" +
		"padding: 10px;\n" +
		"border-width: 1px;\n" +
		"border-style: solid;\n" +
		"display: flex;\n" +
		"opacity: 0.5;\n"
	if got := Generate(p, EditingContextSection); got != want {
		t.Errorf("Generate() =\n%s\nwant:\n%s", got, want)
	}
}

func TestGenerate_FloatCenter(t *testing.T) {
	got := Generate(&Properties{Float: ptr("center")}, EditingContextRow)

	if !strings.Contains(got, "margin: 0 auto;") {
		t.Errorf("expected centering margin in %q", got)
	}
	if strings.Contains(got, "float:") {
		t.Errorf("unexpected float in %q", got)
	}
}

func TestGenerate_Omissions(t *testing.T) {
	p := &Properties{
		Float:    ptr("none"),
		Position: ptr("static"),
		Width:    ptr("none"),
		Height:   ptr("auto"),
		Opacity:  ptr(1.0),
	}

	if got := Generate(p, EditingContextColumn); got != "height: auto;\n" {
		t.Errorf("Generate() = %q", got)
	}
}

func TestGenerate_BackgroundImagePinsDefaults(t *testing.T) {
	p := &Properties{BackgroundImage: ptr("https://cdn.example.com/a.png"), BackgroundRepeat: ptr("repeat-x")}

	got := Generate(p, EditingContextSection)
	for _, want := range []string{
		`background-image: url("https://cdn.example.com/a.png");`,
		"background-size: cover;",
		"background-position: center;",
		"background-repeat: repeat-x;",
		"background-attachment: scroll;",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("missing %q in\n%s", want, got)
		}
	}
}

func TestGenerate_Page(t *testing.T) {
	p := &Properties{
		FontFamily:      ptr("Open Sans"),
		FontSize:        ptr(16.0),
		BackgroundColor: ptr("#fafafa"),
		BorderWidth:     ptr(2.0),
		LinkColor:       ptr("#00f"),
		LinkHoverColor:  ptr("#f00"),
		H2:              HeaderStyle{Margin: ptr(12.0)},
		PPadding:        ptr("10px 0px"),
	}

	want := "body {\n" +
		"  font-family: 'Open Sans', sans-serif;\n" +
		"  font-size: 16px;\n" +
		"  background-color: #fafafa;\n" +
		"}\n\n" +
		"a {\n  color: #00f !important;\n}\n\n" +
		"a:hover {\n  color: #f00 !important;\n}\n\n" +
		"h2 {\n  margin: 12px;\n}\n\n" +
		"p {\n  padding: 10px 0px;\n}\n"
	if got := Generate(p, EditingContextPage); got != want {
		t.Errorf("Generate() =\n%s\nwant:\n%s", got, want)
	}
}

func TestGenerate_RoundTrip(t *testing.T) {
	parser := NewParser(zap.NewNop())

	type entry struct {
		name  Property
		value string
	}
	scoped := []entry{
		{PropBackgroundColor, "#112233"},
		{PropColor, "#445566"},
		{PropPadding, "12px"},
		{PropMargin, "8px"},
		{PropBorderRadius, "4px"},
		{PropBorderWidth, "2px"},
		{PropBorderColor, "#d1d5db"},
		{PropBorderStyle, "dashed"},
		{PropOpacity, "0.5"},
		{PropPosition, "relative"},
		{PropDisplay, "flex"},
		{PropOverflow, "hidden"},
		{PropFloat, "left"},
		{PropWidth, "100%"},
		{PropHeight, "100vh"},
		{PropMinWidth, "fit-content"},
		{PropMinHeight, "auto"},
		{PropBackgroundImage, "https://cdn.example.com/bg.png"},
		{PropBackgroundImage, "images/hero.jpg"},
		{PropBackgroundSize, "contain"},
		{PropBackgroundPosition, "top"},
		{PropBackgroundRepeat, "repeat"},
		{PropBackgroundAttachment, "fixed"},
	}
	page := []entry{
		{PropFontFamily, "Roboto"},
		{PropFontFamily, "Open Sans"},
		{PropFontFamily, "Open Sans, Arial"},
		{PropFontFamily, "Playfair Display, Times New Roman, serif"},
		{PropFontSize, "18px"},
		{PropBackgroundColor, "#fafafa"},
		{PropColor, "#222222"},
		{PropPadding, "12px"},
		{PropMargin, "8px"},
		{PropLinkColor, "#0000ff"},
		{PropLinkHoverColor, "#ff0000"},
		{PropLinkVisitedColor, "#800080"},
		{PropLinkActiveColor, "#00ff00"},
		{PropLinkTextDecoration, "none"},
		{PropLinkHoverDecoration, "underline"},
		{HeaderProperty(H1, HeaderFontSize), "32px"},
		{HeaderProperty(H2, HeaderPadding), "6px"},
		{HeaderProperty(H3, HeaderMargin), "10px"},
		{HeaderProperty(H4, HeaderColor), "#333333"},
		{PropParagraphPadding, "10px 0px 0px 10px"},
		{PropParagraphMargin, "0px"},
	}

	check := func(ctx EditingContext, cases []entry) {
		for _, tt := range cases {
			p := &Properties{}
			if tt.name == PropBackgroundSize || tt.name == PropBackgroundPosition ||
				tt.name == PropBackgroundRepeat || tt.name == PropBackgroundAttachment {
				// only written together with an image
				p.BackgroundImage = ptr("a.png")
			}
			if err := p.Set(tt.name, tt.value); err != nil {
				t.Fatalf("Set(%s, %s) error = %v", tt.name, tt.value, err)
			}
			got := parser.Parse(Generate(p, ctx))
			if v, ok := got.Value(tt.name); !ok || v != tt.value {
				t.Errorf("%s/%s: round trip = %q, %v; want %q", ctx, tt.name, v, ok, tt.value)
			}
		}
	}
	check(EditingContextSection, scoped)
	check(EditingContextPage, page)
}

func TestGenerate_PageBodyRoundTrip(t *testing.T) {
	p := &Properties{
		FontFamily:      ptr("Open Sans, Arial"),
		FontSize:        ptr(16.0),
		Color:           ptr("#222"),
		BackgroundColor: ptr("#fafafa"),
		Padding:         ptr(4.0),
		Margin:          ptr(2.0),
		H1:              HeaderStyle{FontSize: ptr(32.0)},
	}

	got := NewParser(zap.NewNop()).Parse(Generate(p, EditingContextPage))
	if !reflect.DeepEqual(got, p) {
		t.Errorf("round trip =\n%s\nwant:\n%s", Generate(got, EditingContextPage), Generate(p, EditingContextPage))
	}
}

func TestGenerate_FontFamilyValue(t *testing.T) {
	tests := []struct {
		family string
		want   string
	}{
		{"Roboto", "'Roboto', sans-serif"},
		{"Open Sans", "'Open Sans', sans-serif"},
		{"Open Sans, Arial", "'Open Sans', Arial"},
		{"Open Sans', Arial", "'Open Sans', Arial"},
		{`"Lato",, serif`, "Lato, serif"},
		{"''", ""},
	}
	for _, tt := range tests {
		if got := fontFamilyValue(tt.family); got != tt.want {
			t.Errorf("fontFamilyValue(%q) = %q, want %q", tt.family, got, tt.want)
		}
	}
}

func TestGenerate_FloatCenterRoundTrip(t *testing.T) {
	p := &Properties{Float: ptr("center"), Margin: ptr(5.0)}

	got := NewParser(zap.NewNop()).Parse(Generate(p, EditingContextRow))
	if str(got.Float) != "center" || num(got.Margin) != 5 {
		t.Errorf("Float = %s, Margin = %v", str(got.Float), num(got.Margin))
	}
}
