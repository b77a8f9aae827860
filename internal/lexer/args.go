package lexer

import (
	"context"
	"log/slog"
	"strings"

	"github.com/jmc-lang/jmcc/internal/util"
	"github.com/k0kubun/pp/v3"
)

const (
	arrowNone = iota
	arrowSawParens // "()" seen, waiting for "=>"
	arrowSawArrow  // "=>" seen, waiting for "{ ... }"
)

// ParseArgs reinterprets the interior of a ParenRound token as a
// function call's positional and keyword arguments. rawSource is the
// full original file text (not just the fragment the caller may have
// carved the token out of) so diagnostics point at real source lines.
func ParseArgs(token Token, filePath, rawSource string) ([]Token, map[string]Token, error) {
	if token.Kind != ParenRound {
		return nil, nil, newSyntaxError(filePath, rawSource, token.Pos, "expected (")
	}

	interior := token.Text[1 : len(token.Text)-1]
	program, err := runTokenize(interior, rawSource, filePath, token.Pos.Line, token.Pos.Col, false)
	if err != nil {
		return nil, nil, err
	}
	var statement Statement
	if len(program) > 0 {
		statement = program[0]
	}

	p := &argParser{filePath: filePath, rawSource: rawSource}
	if err := p.run(statement); err != nil {
		return nil, nil, err
	}
	traceArgs(p.positional, p.keyword)
	return p.positional, p.keyword, nil
}

// traceArgs dumps the parsed registers with pp when debug logging is
// enabled — a direct descendant of the original tokenizer's
// "pprint(args); pprint(kwargs)" at the end of parse_func_args.
func traceArgs(positional []Token, keyword map[string]Token) {
	if !slog.Default().Enabled(context.Background(), slog.LevelDebug) {
		return
	}
	pp.Println("parse_args positional:", positional)
	for k, v := range util.CanonicalMapIter(keyword) {
		pp.Println("parse_args keyword:", k, "=", v)
	}
}

type argParser struct {
	filePath  string
	rawSource string

	positional []Token
	keyword    map[string]Token

	argText string
	argKind Kind
	argPos  Position

	key string

	arrowState int
	lastToken  Token
}

func (p *argParser) fail(pos Position, message string) error {
	return newSyntaxError(p.filePath, p.rawSource, pos, message)
}

func (p *argParser) hasArg() bool { return p.argText != "" }

func (p *argParser) stageValue(tok Token) error {
	p.argText = tok.Text
	p.argKind = tok.Kind
	p.argPos = tok.Pos
	if p.key != "" {
		return p.commitKeyword()
	}
	return nil
}

func (p *argParser) commitKeyword() error {
	if p.key == "" {
		return p.fail(p.argPos, "empty key")
	}
	if c := p.key[0]; c == '{' || c == '(' || c == '[' {
		return p.fail(p.lastToken.Pos, "invalid key")
	}
	if p.keyword == nil {
		p.keyword = map[string]Token{}
	}
	if _, exists := p.keyword[p.key]; exists {
		return p.fail(p.argPos, "duplicated key")
	}
	p.keyword[p.key] = newToken(p.argKind, p.argPos, p.argText)
	p.key = ""
	p.argText = ""
	return nil
}

func (p *argParser) commitPositional(pos Position) error {
	if len(p.keyword) != 0 {
		return p.fail(Position{pos.Line, pos.Col + 1}, "positional argument follows keyword argument")
	}
	p.positional = append(p.positional, newToken(p.argKind, p.argPos, p.argText))
	p.argText = ""
	return nil
}

func (p *argParser) run(statement Statement) error {
	for _, tok := range statement {
		if p.arrowState != arrowNone {
			if p.arrowState == arrowSawParens {
				if tok.Kind == Keyword && tok.Text == "=>" {
					p.arrowState = arrowSawArrow
					p.lastToken = tok
					continue
				}
				if err := p.stageValue(p.lastToken); err != nil {
					return err
				}
				p.arrowState = arrowNone
				// fall through: re-dispatch tok below against the
				// now-idle arrow state.
			} else { // arrowSawArrow
				if tok.Kind != ParenCurly {
					return p.fail(tok.Pos, "expected {")
				}
				body := tok.Text[1 : len(tok.Text)-1]
				funcTok := newToken(Func, tok.Pos, body)
				if err := p.stageValue(funcTok); err != nil {
					return err
				}
				p.lastToken = funcTok
				p.arrowState = arrowNone
				continue
			}
		}

		switch tok.Kind {
		case Keyword:
			if err := p.dispatchKeyword(tok); err != nil {
				return err
			}
		case Comma:
			p.arrowState = arrowNone
			if p.hasArg() {
				if err := p.commitPositional(p.argPos); err != nil {
					return err
				}
			}
		case ParenRound, ParenSquare, ParenCurly:
			if tok.Kind == ParenRound && tok.Text == "()" {
				p.arrowState = arrowSawParens
				p.lastToken = tok
				continue
			}
			if err := p.stageValue(tok); err != nil {
				return err
			}
		case String:
			if err := p.stageValue(tok); err != nil {
				return err
			}
		}

		p.lastToken = tok
	}

	if p.hasArg() {
		if err := p.commitPositional(p.lastToken.Pos); err != nil {
			return err
		}
	}
	return nil
}

func (p *argParser) dispatchKeyword(tok Token) error {
	switch {
	case p.hasArg():
		if !strings.HasPrefix(tok.Text, "=") {
			return p.fail(tok.Pos, "unexpected token")
		}
		if strings.Count(tok.Text, "=") > 1 {
			return p.fail(equalSignPos(tok, strings.LastIndex(tok.Text, "=")), "duplicated equal sign")
		}
		p.key = p.argText
		p.argText = tok.Text[1:]
		p.argKind = Keyword
		p.argPos = tok.Pos
		if p.argText != "" {
			return p.commitKeyword()
		}
		return nil

	case p.key != "":
		if strings.Contains(tok.Text, "=") {
			return p.fail(equalSignPos(tok, strings.Index(tok.Text, "=")), "duplicated equal sign")
		}
		p.argText = tok.Text
		p.argKind = Keyword
		p.argPos = tok.Pos
		return p.commitKeyword()

	default:
		count := strings.Count(tok.Text, "=")
		switch {
		case count > 1:
			return p.fail(equalSignPos(tok, strings.LastIndex(tok.Text, "=")), "duplicated equal sign")
		case strings.HasSuffix(tok.Text, "="):
			p.key = tok.Text[:len(tok.Text)-1]
		case count == 1:
			parts := strings.SplitN(tok.Text, "=", 2)
			p.key = parts[0]
			p.argText = parts[1]
			p.argKind = Keyword
			p.argPos = tok.Pos
			return p.commitKeyword()
		default:
			p.argText = tok.Text
			p.argKind = Keyword
			p.argPos = tok.Pos
		}
		return nil
	}
}

func equalSignPos(tok Token, index int) Position {
	return Position{tok.Pos.Line, tok.Pos.Col + index + 1}
}
