// Package codegen lowers tokenized JMC statements into raw
// .mcfunction command lines. It implements only the slice of JMC
// semantics needed to carry a variable declaration, assignment,
// operation or increment end to end through the rest of the
// pipeline — not a general JMC command compiler.
package codegen

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/jmc-lang/jmcc/internal/lexer"
)

const (
	variableObjective = "__variable__"
	intObjective      = "__int__"
)

var (
	variableRef  = regexp.MustCompile(`^\$[A-Za-z_][A-Za-z0-9_]*$`)
	incrementRef = regexp.MustCompile(`^\$([A-Za-z_][A-Za-z0-9_]*)(\+\+|--)$`)
	scoreboardRef = regexp.MustCompile(`^([A-Za-z_][A-Za-z0-9_.]*):([A-Za-z_][A-Za-z0-9_]*)$`)
	intLiteral   = regexp.MustCompile(`^-?[0-9]+$`)
)

var assignOps = map[string]bool{
	"=": true, "+=": true, "-=": true, "*=": true, "/=": true, "->": true,
}

// FunctionDecl is a function declaration lowering stopped short of:
// the caller (internal/compile) is responsible for recursing into
// Body under Name, joined to whatever dotted prefix it is tracking.
type FunctionDecl struct {
	Name string
	Body string
}

// Result is what lowering a single statement produces.
type Result struct {
	// Lines are raw command lines to append to the current function.
	Lines []string
	// UsesVariableObjective is true if Lines reference __variable__
	// and the caller must ensure it has been declared once.
	UsesVariableObjective bool
	// IntLiterals are integer values Lines reference via __int__;
	// the caller ensures each is declared (scoreboard players set N
	// __int__ N) exactly once, in first-seen order, and that
	// __int__ itself has been declared.
	IntLiterals []string
	// FunctionDecl is non-nil if the statement was "function name()
	// { body }" rather than a command.
	FunctionDecl *FunctionDecl
}

// Lower turns one statement into a Result. It never fails: any
// statement shape it does not recognize becomes a single literal
// passthrough line, the token texts joined by a single space.
func Lower(stmt lexer.Statement) (*Result, error) {
	if decl := matchFunctionDecl(stmt); decl != nil {
		return &Result{FunctionDecl: decl}, nil
	}
	if r := matchIncrement(stmt); r != nil {
		return r, nil
	}
	if r := matchAssignment(stmt); r != nil {
		return r, nil
	}
	return &Result{Lines: []string{passthrough(stmt)}}, nil
}

func passthrough(stmt lexer.Statement) string {
	parts := make([]string, len(stmt))
	for i, tok := range stmt {
		parts[i] = tok.Text
	}
	return strings.Join(parts, " ")
}

func matchFunctionDecl(stmt lexer.Statement) *FunctionDecl {
	if len(stmt) != 4 {
		return nil
	}
	if stmt[0].Kind != lexer.Keyword || stmt[0].Text != "function" {
		return nil
	}
	if stmt[1].Kind != lexer.Keyword {
		return nil
	}
	if stmt[2].Kind != lexer.ParenRound {
		return nil
	}
	if stmt[3].Kind != lexer.ParenCurly {
		return nil
	}
	body := stmt[3].Text
	body = body[1 : len(body)-1]
	return &FunctionDecl{Name: stmt[1].Text, Body: body}
}

// matchIncrement recognizes both "$x++;"/"$x--;" (one fused token)
// and "$x ++;"/"$x --;" (two tokens, whitespace-separated).
func matchIncrement(stmt lexer.Statement) *Result {
	var varName, op string
	switch len(stmt) {
	case 1:
		m := incrementRef.FindStringSubmatch(stmt[0].Text)
		if m == nil {
			return nil
		}
		varName, op = m[1], m[2]
	case 2:
		if stmt[0].Kind != lexer.Keyword || !variableRef.MatchString(stmt[0].Text) {
			return nil
		}
		if stmt[1].Kind != lexer.Keyword || (stmt[1].Text != "++" && stmt[1].Text != "--") {
			return nil
		}
		varName, op = stmt[0].Text[1:], stmt[1].Text
	default:
		return nil
	}

	verb := "add"
	if op == "--" {
		verb = "remove"
	}
	return &Result{
		Lines:                 []string{fmt.Sprintf("scoreboard players %s $%s %s 1", verb, varName, variableObjective)},
		UsesVariableObjective: true,
	}
}

func matchAssignment(stmt lexer.Statement) *Result {
	if len(stmt) != 3 {
		return nil
	}
	lhs, opTok, rhs := stmt[0], stmt[1], stmt[2]
	if lhs.Kind != lexer.Keyword || !variableRef.MatchString(lhs.Text) {
		return nil
	}
	if opTok.Kind != lexer.Keyword || !assignOps[opTok.Text] {
		return nil
	}
	if rhs.Kind != lexer.Keyword {
		return nil
	}

	op := opTok.Text
	holder, objective, intVal, isInt := classifyOperand(rhs.Text)

	if isInt {
		return lowerLiteralOperand(lhs.Text, op, intVal)
	}
	if holder == "" {
		return nil
	}
	return lowerScoreboardOperand(lhs.Text, op, holder, objective)
}

// classifyOperand recognizes "$other" (another variable, backed by
// __variable__), "obj:name" (an arbitrary scoreboard objective/holder
// pair) or a bare integer literal.
func classifyOperand(text string) (holder, objective, intVal string, isInt bool) {
	if variableRef.MatchString(text) {
		return text, variableObjective, "", false
	}
	if m := scoreboardRef.FindStringSubmatch(text); m != nil {
		return m[2], m[1], "", false
	}
	if intLiteral.MatchString(text) {
		return "", "", text, true
	}
	return "", "", "", false
}

func lowerLiteralOperand(lhs, op, intVal string) *Result {
	switch op {
	case "+=":
		return &Result{
			Lines:                 []string{fmt.Sprintf("scoreboard players add %s %s %s", lhs, variableObjective, intVal)},
			UsesVariableObjective: true,
		}
	case "-=":
		return &Result{
			Lines:                 []string{fmt.Sprintf("scoreboard players remove %s %s %s", lhs, variableObjective, intVal)},
			UsesVariableObjective: true,
		}
	case "=":
		return &Result{
			Lines:                 []string{fmt.Sprintf("scoreboard players set %s %s %s", lhs, variableObjective, intVal)},
			UsesVariableObjective: true,
		}
	case "*=", "/=":
		return &Result{
			Lines: []string{
				fmt.Sprintf("scoreboard players operation %s %s %s %s %s", lhs, variableObjective, op, intVal, intObjective),
			},
			UsesVariableObjective: true,
			IntLiterals:           []string{intVal},
		}
	default:
		return nil
	}
}

func lowerScoreboardOperand(lhs, op, holder, objective string) *Result {
	if op == "->" {
		return &Result{
			Lines: []string{
				fmt.Sprintf("scoreboard players operation %s %s = %s %s", holder, objective, lhs, variableObjective),
			},
			UsesVariableObjective: true,
		}
	}
	return &Result{
		Lines: []string{
			fmt.Sprintf("scoreboard players operation %s %s %s %s %s", lhs, variableObjective, op, holder, objective),
		},
		UsesVariableObjective: true,
	}
}
