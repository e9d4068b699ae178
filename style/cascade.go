package style

// Source names the cascade tier a value came from.
type Source string

const (
	SourceNone    Source = ""
	SourceSite    Source = "Site CSS"
	SourcePage    Source = "Page CSS"
	SourceSection Source = "Section CSS"
	// SourceLocal marks a value set on the edited scope itself.
	SourceLocal Source = "Local"
)

// CascadeContext holds the peer scopes a property is resolved against.
// OverridingCSS is the scope above the edited one and is only used to flag
// shadowed local values.
type CascadeContext struct {
	SiteCSS       string         `json:"siteCSS,omitempty" yaml:"siteCSS,omitempty"`
	PageCSS       string         `json:"pageCSS,omitempty" yaml:"pageCSS,omitempty"`
	SectionCSS    string         `json:"sectionCSS,omitempty" yaml:"sectionCSS,omitempty"`
	OverridingCSS string         `json:"overridingCSS,omitempty" yaml:"overridingCSS,omitempty"`
	Editing       EditingContext `json:"editingContext" yaml:"editingContext"`
}

// Inherited is the outcome of resolving one property.
type Inherited struct {
	Value  string `json:"value,omitempty"`
	Source Source `json:"source,omitempty"`
}

// Found reports whether any tier supplied a value.
func (i Inherited) Found() bool {
	return i.Source != SourceNone
}

// Resolver computes inherited and effective values over the three tier
// cascade. It keeps no state besides its parser and is safe to share.
type Resolver struct {
	parser *Parser
}

// NewResolver returns a resolver extracting values with parser. A nil parser
// is replaced with a default one.
func NewResolver(parser *Parser) *Resolver {
	if parser == nil {
		parser = NewParser(nil)
	}
	return &Resolver{parser: parser}
}

type tier struct {
	css    string
	source Source
	active bool
}

// tiers lists the cascade lowest priority first. Editing the page hides the
// page tier, section values only count when editing rows or columns.
func tiers(ctx CascadeContext) []tier {
	return []tier{
		{css: ctx.SiteCSS, source: SourceSite, active: true},
		{css: ctx.PageCSS, source: SourcePage, active: ctx.Editing != EditingContextPage},
		{css: ctx.SectionCSS, source: SourceSection, active: ctx.Editing.nested()},
	}
}

// Inherited resolves p against the cascade. Every active tier setting the
// property overwrites what lower tiers supplied.
func (r *Resolver) Inherited(p Property, ctx CascadeContext) Inherited {
	var res Inherited
	if !Known(p) {
		return res
	}
	for _, t := range tiers(ctx) {
		if !t.active || t.css == "" {
			continue
		}
		if v, ok := r.parser.ParseProperty(t.css, p); ok {
			res = Inherited{Value: v, Source: t.source}
		}
	}
	return res
}

// Effective returns the local value when set, the inherited one otherwise.
func (r *Resolver) Effective(local *Properties, p Property, ctx CascadeContext) Inherited {
	if v, ok := local.Value(p); ok {
		return Inherited{Value: v, Source: SourceLocal}
	}
	return r.Inherited(p, ctx)
}

// Overridden reports whether overridingCSS declares p at all. The value is
// neither compared nor parsed: an identical value, a keyword or a unit the
// model cannot hold still counts as overriding.
func (r *Resolver) Overridden(p Property, overridingCSS string) bool {
	return r.parser.Declares(overridingCSS, p)
}

// Shadowed reports whether a locally set p is masked by the overriding scope.
func (r *Resolver) Shadowed(local *Properties, p Property, ctx CascadeContext) bool {
	return local.IsSet(p) && r.Overridden(p, ctx.OverridingCSS)
}
