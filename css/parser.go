package css

import (
	"bytes"
	"regexp"
	"strings"

	parse "github.com/tdewolff/parse/v2"
	"github.com/tdewolff/parse/v2/css"
	"go.uber.org/zap"
)

// importantPattern matches a trailing !important marker, allowing whitespace
// after the exclamation mark.
var importantPattern = regexp.MustCompile(`(?i)\s*!\s*important\s*$`)

// Parser scans CSS text into rules and declarations.
type Parser struct {
	log *zap.Logger
}

// NewParser creates a new CSS parser.
func NewParser(log *zap.Logger) *Parser {
	if log == nil {
		log = zap.NewNop()
	}
	return &Parser{log: log.Named("css-parser")}
}

// token is a lexer token with its data copied out of the input buffer.
type token struct {
	tt   css.TokenType
	data string
}

// block is an open "{" on the scanner stack.
type block struct {
	selectors []string // full selectors of this block, used to prefix nested blocks
	rules     []int    // indexes into sheet.Rules receiving declarations
	skip      bool     // at-rule block or anything nested in one
}

type scanner struct {
	log     *zap.Logger
	lexer   *css.Lexer
	sheet   *Stylesheet
	stack   []block
	prelude []token
	parens  int
	line    int
	start   int // line where the current prelude started
}

// Parse scans CSS text into a Stylesheet. It never fails: anything it cannot
// make sense of is dropped and noted in Stylesheet.Warnings.
// The optional source parameter identifies what's being parsed (for debug logging).
func (p *Parser) Parse(data []byte, source ...string) *Stylesheet {
	sheet := &Stylesheet{
		Rules:    make([]Rule, 0),
		Warnings: make([]string, 0),
	}

	// Log parsing start with source identifier if provided
	if len(source) > 0 && source[0] != "" {
		p.log.Debug("Parsing CSS", zap.String("source", source[0]), zap.Int("bytes", len(data)))
	}

	s := &scanner{
		log:   p.log,
		lexer: css.NewLexer(parse.NewInput(bytes.NewReader(data))),
		sheet: sheet,
		line:  1,
	}
	s.run()
	return sheet
}

func (s *scanner) run() {
	for {
		tt, data := s.lexer.Next()

		switch tt {
		case css.ErrorToken:
			// End of input or lexer error, whatever is pending is a declaration
			if err := s.lexer.Err(); err != nil && err.Error() != "EOF" {
				s.log.Debug("CSS lexer error", zap.Error(err))
			}
			s.declaration()
			if len(s.stack) > 0 {
				s.warn("unterminated block")
			}
			return

		case css.CommentToken:
			s.line += bytes.Count(data, []byte("\n"))
			continue

		case css.WhitespaceToken:
			s.line += bytes.Count(data, []byte("\n"))

		case css.FunctionToken, css.LeftParenthesisToken:
			s.parens++

		case css.RightParenthesisToken:
			if s.parens > 0 {
				s.parens--
			}

		case css.LeftBraceToken:
			if s.parens == 0 {
				s.open()
				continue
			}

		case css.SemicolonToken:
			if s.parens == 0 {
				s.declaration()
				continue
			}

		case css.RightBraceToken:
			if s.parens == 0 {
				s.declaration()
				s.close()
				continue
			}
		}

		if len(s.prelude) == 0 {
			if tt == css.WhitespaceToken {
				continue
			}
			s.start = s.line
		}
		s.prelude = append(s.prelude, token{tt: tt, data: string(data)})
	}
}

// open turns the collected prelude into a selector and pushes a new block.
func (s *scanner) open() {
	prelude := s.takePrelude()
	parent := s.top()

	if parent != nil && parent.skip {
		s.stack = append(s.stack, block{skip: true})
		return
	}
	if len(prelude) > 0 && prelude[0].tt == css.AtKeywordToken {
		s.warn("unsupported at-rule: " + prelude[0].data)
		s.log.Debug("Skipping @-rule block", zap.String("rule", prelude[0].data))
		s.stack = append(s.stack, block{skip: true})
		return
	}

	var selectors []string
	for sel := range strings.SplitSeq(joinTokens(prelude), ",") {
		sel = strings.Join(strings.Fields(sel), " ")
		if sel == "" {
			continue
		}
		if parent == nil || len(parent.selectors) == 0 {
			selectors = append(selectors, sel)
			continue
		}
		// Nested block, flatten it into descendant selectors
		for _, outer := range parent.selectors {
			if strings.Contains(sel, "&") {
				selectors = append(selectors, strings.ReplaceAll(sel, "&", outer))
			} else {
				selectors = append(selectors, outer+" "+sel)
			}
		}
	}
	if len(selectors) == 0 {
		s.warn("block without selector")
		s.stack = append(s.stack, block{skip: true})
		return
	}

	b := block{selectors: selectors}
	for _, sel := range selectors {
		s.sheet.Rules = append(s.sheet.Rules, Rule{Selector: Selector{Raw: sel}, SourceLine: s.start})
		b.rules = append(b.rules, len(s.sheet.Rules)-1)
	}
	s.stack = append(s.stack, b)
}

// close pops the innermost block, a stray "}" is ignored.
func (s *scanner) close() {
	if len(s.stack) == 0 {
		s.warn("unexpected '}'")
		return
	}
	s.stack = s.stack[:len(s.stack)-1]
}

// declaration turns the collected prelude into a declaration of the current block.
func (s *scanner) declaration() {
	prelude := s.takePrelude()
	if len(prelude) == 0 {
		return
	}

	b := s.top()
	if b != nil && b.skip {
		return
	}
	if prelude[0].tt == css.AtKeywordToken {
		// @import, @charset and friends
		s.log.Debug("Skipping @-rule", zap.String("rule", prelude[0].data))
		return
	}

	colon := -1
	for i, t := range prelude {
		if t.tt == css.ColonToken {
			colon = i
			break
		}
	}
	name := strings.ToLower(joinTokens(prelude[:max(colon, 0)]))
	if colon <= 0 || name == "" || strings.ContainsAny(name, " \t") {
		s.warn("malformed declaration: " + joinTokens(prelude))
		return
	}
	value := joinTokens(prelude[colon+1:])
	d := Declaration{Name: name, Value: value}
	if loc := importantPattern.FindStringIndex(value); loc != nil {
		d.Value = strings.TrimSpace(value[:loc[0]])
		d.Important = true
	}
	if d.Value == "" {
		s.warn("empty declaration: " + name)
		return
	}

	if b == nil {
		s.appendBare(d)
		return
	}
	for _, idx := range b.rules {
		s.sheet.Rules[idx].Declarations = append(s.sheet.Rules[idx].Declarations, d)
	}
}

// appendBare adds a top level declaration, reusing the last rule if it is bare
// so that source order between bare declarations and blocks is kept.
func (s *scanner) appendBare(d Declaration) {
	if n := len(s.sheet.Rules); n > 0 && s.sheet.Rules[n-1].IsBare() {
		s.sheet.Rules[n-1].Declarations = append(s.sheet.Rules[n-1].Declarations, d)
		return
	}
	s.sheet.Rules = append(s.sheet.Rules, Rule{Declarations: []Declaration{d}, SourceLine: s.start})
}

func (s *scanner) top() *block {
	if len(s.stack) == 0 {
		return nil
	}
	return &s.stack[len(s.stack)-1]
}

func (s *scanner) takePrelude() []token {
	prelude := s.prelude
	s.prelude = nil
	s.parens = 0
	return prelude
}

func (s *scanner) warn(msg string) {
	s.sheet.Warnings = append(s.sheet.Warnings, msg)
	s.log.Debug("CSS scan warning", zap.String("warning", msg), zap.Int("line", s.line))
}

// joinTokens rebuilds text from tokens collapsing whitespace runs to a single space.
func joinTokens(tokens []token) string {
	var sb strings.Builder
	for _, t := range tokens {
		if t.tt == css.WhitespaceToken {
			sb.WriteByte(' ')
			continue
		}
		sb.WriteString(t.data)
	}
	return strings.Join(strings.Fields(sb.String()), " ")
}
