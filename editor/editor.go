// Package editor keeps one style editing session: the CSS text of a single
// scope, the property model parsed from it and the peer scopes it inherits
// from.
package editor

import (
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"stylesync/style"
)

// Editor is a single editing session. It is driven by UI callbacks and is
// not safe for concurrent use.
type Editor struct {
	log      *zap.Logger
	id       uuid.UUID
	context  style.EditingContext
	parser   *style.Parser
	resolver *style.Resolver
	cascade  style.CascadeContext
	origin   string
	onChange func(string)

	css     string
	props   *style.Properties
	focused bool
}

// Option configures an Editor.
type Option func(*Editor)

func WithLogger(log *zap.Logger) Option {
	return func(e *Editor) {
		if log != nil {
			e.log = log
		}
	}
}

// WithParser shares a parser (and its scope prefixes) with the session.
func WithParser(p *style.Parser) Option {
	return func(e *Editor) {
		if p != nil {
			e.parser = p
		}
	}
}

func WithCascade(c style.CascadeContext) Option {
	return func(e *Editor) {
		e.cascade = c
	}
}

// WithOrigin sets the site origin relative gallery paths are resolved against.
func WithOrigin(origin string) Option {
	return func(e *Editor) {
		e.origin = origin
	}
}

// New starts a session over css. Loaded CSS with equal text and background
// colours is healed by dropping the text colour, the corrected CSS is then
// reported through onChange right away.
func New(ctx style.EditingContext, css string, onChange func(string), opts ...Option) *Editor {
	e := &Editor{
		log:      zap.NewNop(),
		id:       uuid.New(),
		context:  ctx,
		onChange: onChange,
	}
	for _, opt := range opts {
		opt(e)
	}
	e.log = e.log.Named("editor").With(zap.Stringer("session", e.id), zap.Stringer("context", ctx))
	if e.parser == nil {
		e.parser = style.NewParser(e.log)
	}
	e.resolver = style.NewResolver(e.parser)
	e.cascade.Editing = ctx

	e.reparse(css)
	if style.HealLoaded(e.props) {
		e.log.Info("Dropped text colour equal to background on load")
		e.emit()
	}
	return e
}

// ID identifies the session in logs.
func (e *Editor) ID() uuid.UUID {
	return e.id
}

func (e *Editor) Context() style.EditingContext {
	return e.context
}

// CSS returns the current text of the edited scope.
func (e *Editor) CSS() string {
	return e.css
}

// Properties returns a copy of the current property model.
func (e *Editor) Properties() *style.Properties {
	return e.props.Clone()
}

// UpdateProperty sets one property from its textual value and regenerates
// the CSS. Writes to either colour go through the contrast guard.
func (e *Editor) UpdateProperty(name style.Property, value string) error {
	if err := e.props.Set(name, value); err != nil {
		return fmt.Errorf("unable to update property: %w", err)
	}
	if name == style.PropBackgroundColor || name == style.PropColor {
		e.guardContrast()
	}
	e.log.Debug("Property updated", zap.String("property", string(name)), zap.String("value", value))
	e.emit()
	return nil
}

// ClearProperty returns a property to the inherited state.
func (e *Editor) ClearProperty(name style.Property) error {
	if err := e.props.Unset(name); err != nil {
		return fmt.Errorf("unable to clear property: %w", err)
	}
	e.log.Debug("Property cleared", zap.String("property", string(name)))
	e.emit()
	return nil
}

// SetCSS takes an external change of the scope text. While a colour text
// input is focused the model is left alone, the text is reparsed on blur.
func (e *Editor) SetCSS(css string) {
	if e.focused {
		e.css = css
		e.log.Debug("Reparse postponed while colour input is focused")
		return
	}
	e.reparse(css)
}

// FocusColorInput suspends reparsing of external changes.
func (e *Editor) FocusColorInput() {
	e.focused = true
}

// BlurColorInput ends colour typing (blur or Enter) and forces a reparse of
// the latest text.
func (e *Editor) BlurColorInput() {
	e.focused = false
	e.reparse(e.css)
}

// EditRaw takes a keystroke of the raw text view. The text is passed on
// verbatim, not regenerated.
func (e *Editor) EditRaw(text string) {
	e.reparse(text)
	e.notify(text)
}

// SetCascade replaces the peer scopes, the editing context always stays the
// one of the session.
func (e *Editor) SetCascade(c style.CascadeContext) {
	c.Editing = e.context
	e.cascade = c
}

func (e *Editor) Cascade() style.CascadeContext {
	return e.cascade
}

// Inherited resolves name against the peer scopes only.
func (e *Editor) Inherited(name style.Property) style.Inherited {
	return e.resolver.Inherited(name, e.cascade)
}

// Effective is the local value when set, the inherited one otherwise.
func (e *Editor) Effective(name style.Property) style.Inherited {
	return e.resolver.Effective(e.props, name, e.cascade)
}

// Overridden reports whether the scope above declares name.
func (e *Editor) Overridden(name style.Property) bool {
	return e.resolver.Overridden(name, e.cascade.OverridingCSS)
}

// Shadowed reports whether a locally set name is masked by the scope above.
func (e *Editor) Shadowed(name style.Property) bool {
	return e.resolver.Shadowed(e.props, name, e.cascade)
}

// guardContrast replaces a text colour which collides with the background.
func (e *Editor) guardContrast() {
	if e.props.BackgroundColor == nil || e.props.Color == nil {
		return
	}
	text, changed := style.EnsureContrast(*e.props.BackgroundColor, *e.props.Color)
	if !changed {
		return
	}
	e.log.Debug("Text colour replaced for contrast",
		zap.String("background", *e.props.BackgroundColor), zap.String("color", text))
	e.props.Color = &text
}

func (e *Editor) reparse(css string) {
	e.css = css
	e.props = e.parser.Parse(css)
}

// emit regenerates the scope text from the model.
func (e *Editor) emit() {
	e.css = style.Generate(e.props, e.context)
	e.notify(e.css)
}

func (e *Editor) notify(css string) {
	if e.onChange != nil {
		e.onChange(css)
	}
}
