package style

// presence tells whether a document declares a property, whatever the value.
type presence func(d *document) bool

func inMain(names ...string) presence {
	return func(d *document) bool {
		return len(d.main(names...)) > 0
	}
}

func inBlock(target string, names ...string) presence {
	return func(d *document) bool {
		return len(d.block(target, names...)) > 0
	}
}

var headerDeclarations = map[HeaderAttr]string{
	HeaderFontSize: "font-size",
	HeaderPadding:  "padding",
	HeaderMargin:   "margin",
	HeaderColor:    "color",
}

// declaredBy maps every property to the CSS declarations able to set it.
// Shorthands count: "background" declares backgroundColor and "border"
// declares all three border sub-properties.
var declaredBy = func() map[Property]presence {
	m := map[Property]presence{
		PropBackgroundColor:      inMain("background-color", "background"),
		PropColor:                inMain("color"),
		PropFontSize:             inMain("font-size"),
		PropFontFamily:           inMain("font-family"),
		PropPadding:              inMain("padding"),
		PropMargin:               inMain("margin"),
		PropBorderRadius:         inMain("border-radius"),
		PropBorderWidth:          inMain("border", "border-width"),
		PropBorderColor:          inMain("border", "border-color"),
		PropBorderStyle:          inMain("border", "border-style"),
		PropOpacity:              inMain("opacity"),
		PropBackgroundImage:      inMain("background-image"),
		PropBackgroundSize:       inMain("background-size"),
		PropBackgroundPosition:   inMain("background-position"),
		PropBackgroundRepeat:     inMain("background-repeat"),
		PropBackgroundAttachment: inMain("background-attachment"),
		PropPosition:             inMain("position"),
		PropDisplay:              inMain("display"),
		PropOverflow:             inMain("overflow"),
		PropWidth:                inMain("width"),
		PropHeight:               inMain("height"),
		PropMinWidth:             inMain("min-width"),
		PropMinHeight:            inMain("min-height"),
		PropParagraphPadding:     inBlock("p", string(ParagraphPadding)),
		PropParagraphMargin:      inBlock("p", string(ParagraphMargin)),
		// "margin: 0 auto" centers the block
		PropFloat: func(d *document) bool {
			for _, decl := range d.main("float", "margin") {
				if decl.Name == "float" || isCentering(decl.Value) {
					return true
				}
			}
			return false
		},
	}
	for _, state := range LinkStates {
		for _, attr := range []LinkAttr{LinkColorAttr, LinkDecorationAttr} {
			if name, ok := LinkProperty(state, attr); ok {
				m[name] = inBlock(string(state), string(attr))
			}
		}
	}
	for _, tag := range Headers {
		for attr, decl := range headerDeclarations {
			m[HeaderProperty(tag, attr)] = inBlock(tag.String(), decl)
		}
	}
	return m
}()

// Declares reports whether text holds a declaration of name in the scope the
// property lives in. Values are not looked at: "padding: inherit" declares
// padding even though it never parses into the model.
func (p *Parser) Declares(text string, name Property) bool {
	declared, ok := declaredBy[name]
	if !ok || text == "" {
		return false
	}
	return declared(p.document(text))
}
