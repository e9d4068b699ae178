package style

// Nested sub-styles live inside their own selector block. The extractors
// behind these properties only look at that block, so a top level value of
// the same CSS name never answers for them.

// InheritedHeader resolves a header sub-style, e.g. h2 margin.
func (r *Resolver) InheritedHeader(tag Header, attr HeaderAttr, ctx CascadeContext) Inherited {
	return r.Inherited(HeaderProperty(tag, attr), ctx)
}

// InheritedLink resolves an anchor sub-style. Combinations which are not
// tracked (text decoration of visited or active links) resolve to nothing.
func (r *Resolver) InheritedLink(state LinkState, attr LinkAttr, ctx CascadeContext) Inherited {
	name, ok := LinkProperty(state, attr)
	if !ok {
		return Inherited{}
	}
	return r.Inherited(name, ctx)
}

// InheritedParagraph resolves raw paragraph padding or margin.
func (r *Resolver) InheritedParagraph(attr ParagraphAttr, ctx CascadeContext) Inherited {
	name, ok := ParagraphProperty(attr)
	if !ok {
		return Inherited{}
	}
	return r.Inherited(name, ctx)
}
