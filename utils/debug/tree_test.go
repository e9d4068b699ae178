package debug

import (
	"strings"
	"testing"

	"stylesync/css"
	"stylesync/style"
)

func TestTreeWriter(t *testing.T) {
	tw := NewTreeWriter()
	if tw.String() != "" {
		t.Error("Expected empty string from new TreeWriter")
	}

	tw.Line(0, "root %d", 1)
	tw.Line(2, "leaf")
	tw.Value(1, "text", "a \"b\"")
	tw.Value(1, "empty", "")

	want := "root 1\n    leaf\n  text: \"a \\\"b\\\"\"\n  empty: \n"
	if tw.String() != want {
		t.Errorf("String() = %q, want %q", tw.String(), want)
	}
}

func TestStylesheet(t *testing.T) {
	sheet := css.NewParser(nil).Parse([]byte("padding: 1px;\n.row a { color: red !important }\n}"))
	got := Stylesheet(sheet)

	for _, want := range []string{
		"stylesheet: 2 rules\n",
		"  (bare) [line 1]\n    padding: \"1px\"\n",
		"  .row a [line 2]\n    color !important: \"red\"\n",
		"warnings: ",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("dump lacks %q:\n%s", want, got)
		}
	}
}

func TestProperties(t *testing.T) {
	p := &style.Properties{}
	if err := p.Set(style.PropPadding, "10"); err != nil {
		t.Fatal(err)
	}
	if err := p.Set(style.PropColor, "#fff"); err != nil {
		t.Fatal(err)
	}

	got := Properties(p)
	if !strings.HasPrefix(got, "properties: 2 set\n") {
		t.Errorf("header = %q", got)
	}
	if !strings.Contains(got, "  padding: \"10px\"\n") || !strings.Contains(got, "  color: \"#fff\"\n") {
		t.Errorf("dump = %q", got)
	}
}
