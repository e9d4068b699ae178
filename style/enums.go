package style

import (
	"errors"
	"fmt"
	"strings"
)

// Authoring scope being edited, gates which cascade tiers apply.
// ENUM(page, section, row, column)
type EditingContext int

const (
	// EditingContextPage is the page tier, site CSS is authored in it as well.
	EditingContextPage EditingContext = iota
	EditingContextSection
	EditingContextRow
	EditingContextColumn
)

var ErrInvalidEditingContext = errors.New("not a valid EditingContext")

var editingContextNames = []string{"page", "section", "row", "column"}

// EditingContextNames returns a list of possible string values of EditingContext.
func EditingContextNames() []string {
	tmp := make([]string, len(editingContextNames))
	copy(tmp, editingContextNames)
	return tmp
}

func (x EditingContext) String() string {
	if x.IsValid() {
		return editingContextNames[x]
	}
	return fmt.Sprintf("EditingContext(%d)", x)
}

// IsValid provides a quick way to determine if the typed value is part of the
// allowed enumerated values.
func (x EditingContext) IsValid() bool {
	return x >= EditingContextPage && x <= EditingContextColumn
}

// ParseEditingContext attempts to convert a string to an EditingContext.
func ParseEditingContext(name string) (EditingContext, error) {
	for i, n := range editingContextNames {
		if strings.EqualFold(n, name) {
			return EditingContext(i), nil
		}
	}
	return EditingContext(0), fmt.Errorf("%s is %w", name, ErrInvalidEditingContext)
}

// MarshalText implements the text marshaller method.
func (x EditingContext) MarshalText() ([]byte, error) {
	return []byte(x.String()), nil
}

// UnmarshalText implements the text unmarshaller method.
func (x *EditingContext) UnmarshalText(text []byte) error {
	tmp, err := ParseEditingContext(string(text))
	if err != nil {
		return err
	}
	*x = tmp
	return nil
}

// nested reports whether section CSS applies, i.e. the scope lives inside a section.
func (x EditingContext) nested() bool {
	return x == EditingContextRow || x == EditingContextColumn
}

// Header tag with its own sub-styles.
type Header int

const (
	H1 Header = iota + 1
	H2
	H3
	H4
)

// Headers lists all supported header tags in order.
var Headers = []Header{H1, H2, H3, H4}

func (h Header) String() string {
	if h < H1 || h > H4 {
		return fmt.Sprintf("Header(%d)", int(h))
	}
	return fmt.Sprintf("h%d", int(h))
}

// HeaderAttr is one of the sub-styles of a header.
type HeaderAttr string

const (
	HeaderFontSize HeaderAttr = "FontSize"
	HeaderPadding  HeaderAttr = "Padding"
	HeaderMargin   HeaderAttr = "Margin"
	HeaderColor    HeaderAttr = "Color"
)

// LinkState selects one of the anchor blocks.
type LinkState string

const (
	LinkNormal  LinkState = "a"
	LinkHover   LinkState = "a:hover"
	LinkVisited LinkState = "a:visited"
	LinkActive  LinkState = "a:active"
)

// LinkStates lists anchor blocks in the order they are generated.
var LinkStates = []LinkState{LinkNormal, LinkHover, LinkVisited, LinkActive}

// LinkAttr is one of the sub-styles of an anchor block.
type LinkAttr string

const (
	LinkColorAttr      LinkAttr = "color"
	LinkDecorationAttr LinkAttr = "text-decoration"
)

// ParagraphAttr is one of the sub-styles of the paragraph block.
type ParagraphAttr string

const (
	ParagraphPadding ParagraphAttr = "padding"
	ParagraphMargin  ParagraphAttr = "margin"
)
