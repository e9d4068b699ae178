package css

import (
	"fmt"
	"io"
	"slices"
	"strings"
)

// cssEscapeDoubleQuoted escapes a string for use inside CSS double quotes.
// Backslashes and double quotes are escaped per CSS syntax: \" and \\.
func cssEscapeDoubleQuoted(s string) string {
	// Fast path: nothing to escape.
	if !strings.ContainsAny(s, `"\`) {
		return s
	}
	var b strings.Builder
	b.Grow(len(s) + 4)
	for _, r := range s {
		switch r {
		case '\\':
			b.WriteString(`\\`)
		case '"':
			b.WriteString(`\"`)
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}

// URL wraps a location into a double quoted url() value.
func URL(location string) string {
	return fmt.Sprintf("url(\"%s\")", cssEscapeDoubleQuoted(location))
}

// Declaration is a single "name: value" pair.
type Declaration struct {
	Name      string // Lower-cased property name (e.g., "background-color")
	Value     string // Value with whitespace collapsed and !important removed
	Important bool   // true if the value carried !important
}

// String returns the declaration as CSS text without the terminating semicolon.
func (d Declaration) String() string {
	if d.Important {
		return d.Name + ": " + d.Value + " !important"
	}
	return d.Name + ": " + d.Value
}

// Selector is a single (ungrouped) selector of a rule.
type Selector struct {
	Raw string // Selector text with whitespace collapsed, empty for bare declarations
}

// Target returns the rightmost compound of the selector, lower-cased.
// For ".row a:hover" this is "a:hover".
func (s Selector) Target() string {
	parts := strings.Fields(s.Raw)
	if len(parts) == 0 {
		return ""
	}
	return strings.ToLower(parts[len(parts)-1])
}

// Matches reports whether the selector addresses target directly or through
// exactly one of the given scoping prefixes (e.g. ".row a").
func (s Selector) Matches(target string, scopes []string) bool {
	parts := strings.Fields(s.Raw)
	switch len(parts) {
	case 1:
		return strings.EqualFold(parts[0], target)
	case 2:
		return strings.EqualFold(parts[1], target) && slices.Contains(scopes, parts[0])
	default:
		return false
	}
}

// Rule is a selector with its declarations in source order.
// A rule with an empty selector holds declarations found outside of any block.
type Rule struct {
	Selector     Selector
	Declarations []Declaration
	SourceLine   int // Line number in source for error reporting
}

// IsBare returns true for rules made of top level declarations.
func (r Rule) IsBare() bool {
	return r.Selector.Raw == ""
}

// Lookup returns the last declaration with the given name.
func (r Rule) Lookup(name string) (Declaration, bool) {
	for i := len(r.Declarations) - 1; i >= 0; i-- {
		if r.Declarations[i].Name == name {
			return r.Declarations[i], true
		}
	}
	return Declaration{}, false
}

// Stylesheet is the scanned form of a piece of CSS text.
type Stylesheet struct {
	Rules    []Rule   // Rules in source order
	Warnings []string // Things which were dropped while scanning
}

// Append adds a rule to the stylesheet, rules without declarations are ignored.
func (s *Stylesheet) Append(selector string, decls ...Declaration) {
	if len(decls) == 0 {
		return
	}
	s.Rules = append(s.Rules, Rule{Selector: Selector{Raw: selector}, Declarations: decls})
}

// RulesBySelector returns all rules whose selector text equals selector.
func (s *Stylesheet) RulesBySelector(selector string) []Rule {
	var matches []Rule
	for _, rule := range s.Rules {
		if rule.Selector.Raw == selector {
			matches = append(matches, rule)
		}
	}
	return matches
}

// WriteTo writes the stylesheet to w in source order, implementing io.WriterTo.
// Declarations keep their insertion order, bare rules are written without braces.
func (s *Stylesheet) WriteTo(w io.Writer) (int64, error) {
	var total int64
	for i := range s.Rules {
		n, err := writeRule(w, &s.Rules[i])
		total += int64(n)
		if err != nil {
			return total, err
		}

		// Add blank line between rules (except after last)
		if i < len(s.Rules)-1 {
			n, err = fmt.Fprint(w, "\n")
			total += int64(n)
			if err != nil {
				return total, err
			}
		}
	}
	return total, nil
}

// String returns the CSS text of the stylesheet.
func (s *Stylesheet) String() string {
	var sb strings.Builder
	s.WriteTo(&sb) //nolint:errcheck
	return sb.String()
}

// writeRule writes a single CSS rule to w.
func writeRule(w io.Writer, rule *Rule) (int, error) {
	if rule.IsBare() {
		return writeDeclarations(w, rule.Declarations, "")
	}

	var total int
	n, err := fmt.Fprintf(w, "%s {\n", rule.Selector.Raw)
	total += n
	if err != nil {
		return total, err
	}
	n, err = writeDeclarations(w, rule.Declarations, "  ")
	total += n
	if err != nil {
		return total, err
	}
	n, err = fmt.Fprint(w, "}\n")
	total += n
	return total, err
}

func writeDeclarations(w io.Writer, decls []Declaration, indent string) (int, error) {
	var total int
	for _, d := range decls {
		n, err := fmt.Fprintf(w, "%s%s;\n", indent, d)
		total += n
		if err != nil {
			return total, err
		}
	}
	return total, nil
}
