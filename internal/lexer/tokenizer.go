package lexer

import "unicode"

// none is the scanner's idle state: no token is being accumulated.
// It deliberately shares Kind's zero value so a freshly constructed
// scanner starts idle without extra initialization.
const none Kind = 0

var parenPairs = map[rune]rune{
	'{': '}',
	'(': ')',
	'[': ']',
}

func isKeywordTerminator(ch rune) bool {
	switch ch {
	case '\'', '"', '{', '(', '[', ';', ',':
		return true
	}
	return unicode.IsSpace(ch)
}

// scanner holds the mutable working state of a single tokenize call.
// It is never shared: each call to Tokenize or ParseArgs owns one and
// drops it on return.
type scanner struct {
	filePath  string
	rawSource string

	line, col int
	state     Kind
	tokenText []rune
	tokenPos  Position

	statement Statement
	program   Program

	// String sub-state.
	quote   rune
	escaped bool

	// Paren sub-state.
	openParen  rune
	closeParen rune
	depth      int
	inString   bool
	strQuote   rune
	strEscaped bool

	prevSlash bool
}

func (s *scanner) fail(pos Position, message string) error {
	return newSyntaxError(s.filePath, s.rawSource, pos, message)
}

func (s *scanner) appendToken() {
	s.statement = append(s.statement, newToken(s.state, s.tokenPos, string(s.tokenText)))
	s.tokenText = nil
	s.state = none
}

func (s *scanner) flushStatement() {
	if len(s.statement) != 0 {
		s.program = append(s.program, s.statement)
		s.statement = nil
	}
}

func parenKindFor(opener rune) Kind {
	switch opener {
	case '{':
		return ParenCurly
	case '(':
		return ParenRound
	case '[':
		return ParenSquare
	}
	panic("lexer: unreachable opener")
}

// Tokenize scans source (a file's worth of JMC, or a fragment handed
// to it by a caller such as ParseArgs) starting at startLine/startCol.
// In statement mode (expectSemicolon true) it returns a Program, one
// statement per top-level ';' or self-terminating curly block. In
// expression mode it returns a Program holding a single statement, and
// a top-level ';' is an error.
func Tokenize(source, filePath string, startLine, startCol int, expectSemicolon bool) (Program, error) {
	return runTokenize(source, source, filePath, startLine, startCol, expectSemicolon)
}

// TokenizeExpression is the expression-mode entry point: it returns
// the single statement produced by source, which must not contain a
// top-level ';'.
func TokenizeExpression(source, filePath string, startLine, startCol int) (Statement, error) {
	program, err := runTokenize(source, source, filePath, startLine, startCol, false)
	if err != nil {
		return nil, err
	}
	if len(program) == 0 {
		return Statement{}, nil
	}
	return program[0], nil
}

// runTokenize scans source starting at startLine/startCol, but slices
// diagnostic excerpts out of excerptSource instead. The two differ
// when a caller (ParseArgs) re-tokenizes a fragment carved out of a
// larger file: positions inside the fragment are still real positions
// in that file, so excerpts must come from the whole file, not the
// fragment.
func runTokenize(source, excerptSource, filePath string, startLine, startCol int, expectSemicolon bool) (Program, error) {
	s := &scanner{filePath: filePath, rawSource: excerptSource}
	return s.run(source, startLine, startCol, expectSemicolon)
}

func (s *scanner) run(source string, startLine, startCol int, expectSemicolon bool) (Program, error) {
	s.line = startLine
	s.col = startCol - 1
	s.state = none

	for _, ch := range source {
		s.col++

		if ch == '\n' {
			switch s.state {
			case String:
				return nil, s.fail(s.tokenPos, "string literal contains an unescaped line break")
			case kindComment:
				s.state = none
			case Keyword:
				s.appendToken()
			case kindParen:
				s.tokenText = append(s.tokenText, ch)
			}
			s.line++
			s.col = 0
			continue
		}

		// Comment detection only applies while idle or mid-keyword: a
		// bracket's contents are copied verbatim (see the kindParen
		// case below), so "//" inside one is not a comment.
		if ch == '/' && s.prevSlash && (s.state == none || s.state == Keyword) {
			if n := len(s.tokenText); n > 0 {
				s.tokenText = s.tokenText[:n-1]
			}
			if s.state == Keyword && len(s.tokenText) > 0 {
				s.appendToken()
			}
			s.tokenText = nil
			s.state = kindComment
			continue
		}

		if s.state == Keyword {
			if isKeywordTerminator(ch) {
				s.appendToken()
				// falls through: the terminator is re-dispatched below
				// against the now-idle state, same as the scanner
				// table prescribes.
			} else {
				s.tokenText = append(s.tokenText, ch)
				s.prevSlash = ch == '/'
				continue
			}
		}

		switch s.state {
		case none:
			switch {
			case ch == '\'' || ch == '"':
				s.state = String
				s.tokenPos = Position{s.line, s.col}
				s.quote = ch
				s.tokenText = append(s.tokenText, ch)
			case unicode.IsSpace(ch):
				// ignore
			case ch == ';':
				if !expectSemicolon {
					return nil, s.fail(Position{s.line, s.col}, "unexpected semicolon")
				}
				s.flushStatement()
			case ch == '{' || ch == '(' || ch == '[':
				s.state = kindParen
				s.tokenPos = Position{s.line, s.col}
				s.openParen = ch
				s.closeParen = parenPairs[ch]
				s.depth = 0
				s.tokenText = append(s.tokenText, ch)
			case ch == '}' || ch == ')' || ch == ']':
				return nil, s.fail(Position{s.line, s.col}, "unexpected closing bracket")
			case ch == '#' && s.col == 1:
				s.state = kindComment
			case ch == ',':
				s.statement = append(s.statement, newToken(Comma, Position{s.line, s.col}, ","))
			default:
				s.state = Keyword
				s.tokenPos = Position{s.line, s.col}
				s.tokenText = append(s.tokenText, ch)
			}

		case String:
			s.tokenText = append(s.tokenText, ch)
			switch {
			case ch == '\\' && !s.escaped:
				s.escaped = true
			case ch == s.quote && !s.escaped:
				decoded, err := decodeStringLiteral(string(s.tokenText))
				if err != nil {
					return nil, s.fail(s.tokenPos, err.Error())
				}
				s.statement = append(s.statement, newToken(String, s.tokenPos, decoded))
				s.tokenText = nil
				s.state = none
			case s.escaped:
				s.escaped = false
			}

		case kindParen:
			s.tokenText = append(s.tokenText, ch)
			if s.inString {
				switch {
				case ch == '\\' && !s.strEscaped:
					s.strEscaped = true
				case ch == s.strQuote && !s.strEscaped:
					s.inString = false
				case s.strEscaped:
					s.strEscaped = false
				}
			} else if ch == s.closeParen && s.depth == 0 {
				kind := parenKindFor(s.openParen)
				isCurly := s.openParen == '{'
				s.statement = append(s.statement, newToken(kind, s.tokenPos, string(s.tokenText)))
				s.tokenText = nil
				s.state = none
				if isCurly && expectSemicolon {
					s.flushStatement()
				}
				continue
			} else if ch == s.openParen {
				s.depth++
			} else if ch == s.closeParen {
				s.depth--
			} else if ch == '\'' || ch == '"' {
				s.inString = true
				s.strQuote = ch
			}

		case kindComment:
			// consume silently until newline
		}

		s.prevSlash = ch == '/'
	}

	if s.state == Keyword && len(s.tokenText) > 0 {
		s.appendToken()
	}
	if s.state == String {
		return nil, s.fail(s.tokenPos, "unterminated string literal")
	}
	if s.state == kindParen {
		return nil, s.fail(s.tokenPos, "unterminated bracket group")
	}

	if !expectSemicolon {
		return Program{s.statement}, nil
	}
	if len(s.statement) != 0 {
		last := s.statement[len(s.statement)-1]
		pos := Position{last.Pos.Line, last.Pos.Col + last.Length}
		return nil, s.fail(pos, "expected ';'")
	}
	return s.program, nil
}
