// Package debug renders scanned CSS and property models as indented text
// trees for the debug report.
package debug

import (
	"fmt"
	"strconv"
	"strings"

	"stylesync/css"
	"stylesync/style"
)

// TreeWriter accumulates indented lines, two spaces per level.
type TreeWriter struct {
	w *strings.Builder
}

func NewTreeWriter() *TreeWriter {
	return &TreeWriter{w: &strings.Builder{}}
}

func (tw *TreeWriter) String() string {
	return tw.w.String()
}

func (tw *TreeWriter) indent(depth int) {
	for range depth {
		tw.w.WriteString("  ")
	}
}

func (tw *TreeWriter) Line(depth int, format string, args ...any) {
	tw.indent(depth)
	fmt.Fprintf(tw.w, format, args...)
	tw.w.WriteByte('\n')
}

// Value writes a labelled value, quoted so that blanks and escapes show.
func (tw *TreeWriter) Value(depth int, label, value string) {
	tw.indent(depth)
	tw.w.WriteString(label)
	tw.w.WriteString(": ")
	if value != "" {
		value = strconv.Quote(value)
	}
	tw.w.WriteString(value)
	tw.w.WriteByte('\n')
}

// Stylesheet dumps the rules of sheet in source order followed by scanner
// warnings.
func Stylesheet(sheet *css.Stylesheet) string {
	tw := NewTreeWriter()
	tw.Line(0, "stylesheet: %d rules", len(sheet.Rules))
	for _, rule := range sheet.Rules {
		sel := rule.Selector.Raw
		if rule.IsBare() {
			sel = "(bare)"
		}
		tw.Line(1, "%s [line %d]", sel, rule.SourceLine)
		for _, d := range rule.Declarations {
			if d.Important {
				tw.Value(2, d.Name+" !important", d.Value)
				continue
			}
			tw.Value(2, d.Name, d.Value)
		}
	}
	if len(sheet.Warnings) > 0 {
		tw.Line(0, "warnings: %d", len(sheet.Warnings))
		for _, w := range sheet.Warnings {
			tw.Line(1, "%s", w)
		}
	}
	return tw.String()
}

// Properties dumps every set property of p in registry order.
func Properties(p *style.Properties) string {
	tw := NewTreeWriter()
	tw.Line(0, "properties: %d set", p.Count())
	for _, name := range style.AllProperties() {
		if v, ok := p.Value(name); ok {
			tw.Value(1, string(name), v)
		}
	}
	return tw.String()
}
