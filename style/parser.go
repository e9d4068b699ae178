package style

import (
	"slices"

	"go.uber.org/zap"

	"stylesync/css"
)

// DefaultScopePrefixes are the scoping selectors accepted in front of link,
// header and paragraph blocks (".row a:hover { ... }").
var DefaultScopePrefixes = []string{".row", ".section", ".column", ".canvas"}

// nestedTargets are the selectors whose blocks hold sub-styles. Their
// declarations never count as top level values.
var nestedTargets = []string{"a", "a:hover", "a:visited", "a:active", "h1", "h2", "h3", "h4", "p"}

// Parser turns CSS text into Properties.
type Parser struct {
	log     *zap.Logger
	scanner *css.Parser
	scopes  []string
}

// ParserOption configures a Parser.
type ParserOption func(*Parser)

// WithScopePrefixes replaces the scoping selectors accepted in front of nested blocks.
func WithScopePrefixes(prefixes ...string) ParserOption {
	return func(p *Parser) {
		p.scopes = slices.Clone(prefixes)
	}
}

// NewParser creates a parser. A nil logger is replaced with a no-op one.
func NewParser(log *zap.Logger, opts ...ParserOption) *Parser {
	if log == nil {
		log = zap.NewNop()
	}
	p := &Parser{
		log:     log.Named("style-parser"),
		scanner: css.NewParser(log),
		scopes:  slices.Clone(DefaultScopePrefixes),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// ScopePrefixes returns the scoping selectors this parser accepts.
func (p *Parser) ScopePrefixes() []string {
	return slices.Clone(p.scopes)
}

// Parse builds the property model of a piece of CSS. It never fails, anything
// not recognized leaves the corresponding field unset.
func (p *Parser) Parse(text string) *Properties {
	doc := p.document(text)
	props := &Properties{}
	for _, e := range extractors {
		e.run(doc, props)
	}
	p.log.Debug("Parsed properties", zap.Int("set", props.Count()), zap.Int("warnings", len(doc.sheet.Warnings)))
	return props
}

// ParseProperty extracts a single property and renders it as a CSS value.
// Only the extractors able to produce the property are run.
func (p *Parser) ParseProperty(text string, name Property) (string, bool) {
	f, ok := byName[name]
	if !ok || text == "" {
		return "", false
	}
	doc := p.document(text)
	props := &Properties{}
	for _, idx := range extractorsFor[name] {
		extractors[idx].run(doc, props)
	}
	return f.value(props)
}

func (p *Parser) document(text string) *document {
	return &document{
		sheet:  p.scanner.Parse([]byte(text)),
		scopes: p.scopes,
	}
}

// document answers declaration lookups per scope.
type document struct {
	sheet  *css.Stylesheet
	scopes []string
}

// main returns declarations with one of the given names outside of nested
// blocks, in source order.
func (d *document) main(names ...string) []css.Declaration {
	var out []css.Declaration
	for _, rule := range d.sheet.Rules {
		if !rule.IsBare() && slices.Contains(nestedTargets, rule.Selector.Target()) {
			continue
		}
		out = appendNamed(out, rule.Declarations, names)
	}
	return out
}

// block returns declarations with one of the given names from blocks
// addressing target, bare or behind a scoping prefix.
func (d *document) block(target string, names ...string) []css.Declaration {
	var out []css.Declaration
	for _, rule := range d.sheet.Rules {
		if rule.IsBare() || !rule.Selector.Matches(target, d.scopes) {
			continue
		}
		out = appendNamed(out, rule.Declarations, names)
	}
	return out
}

func appendNamed(out, decls []css.Declaration, names []string) []css.Declaration {
	for _, decl := range decls {
		if slices.Contains(names, decl.Name) {
			out = append(out, decl)
		}
	}
	return out
}

// lastText returns the last declaration value accepted by conv.
func lastText(decls []css.Declaration, conv func(string) (string, bool)) *string {
	for i := len(decls) - 1; i >= 0; i-- {
		if v, ok := conv(decls[i].Value); ok {
			return &v
		}
	}
	return nil
}

// lastNumber returns the last declaration value accepted by conv.
func lastNumber(decls []css.Declaration, conv func(string) (float64, bool)) *float64 {
	for i := len(decls) - 1; i >= 0; i-- {
		if v, ok := conv(decls[i].Value); ok {
			return &v
		}
	}
	return nil
}
