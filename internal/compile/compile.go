// Package compile wires the core front end (internal/lexer,
// internal/class) to the supplementary back end (internal/codegen,
// internal/datapack, internal/vfs) into a single entry point. It is
// jmcc's analogue of the teacher's sqldef.Run: one function that
// chains the pure stages together and is the only place that talks to
// the filesystem-facing VFS.
package compile

import (
	"fmt"
	"strings"

	"github.com/jmc-lang/jmcc/internal/class"
	"github.com/jmc-lang/jmcc/internal/codegen"
	"github.com/jmc-lang/jmcc/internal/datapack"
	"github.com/jmc-lang/jmcc/internal/lexer"
	"github.com/jmc-lang/jmcc/internal/vfs"
)

// Compile tokenizes source, flattens class scopes, lowers the
// surviving statements into commands, and returns a VFS holding the
// resulting datapack tree (not yet written to disk — see
// (*vfs.VFS).Materialize).
func Compile(source, filePath, namespace string) (*vfs.VFS, error) {
	program, err := lexer.Tokenize(source, filePath, 1, 1, true)
	if err != nil {
		return nil, err
	}

	pack := datapack.New(namespace)
	reg := &registrar{pack: pack, filePath: filePath, seenInt: map[string]bool{}}

	var loadLines []string
	for _, stmt := range program {
		text := joinStatementText(stmt) + ";"
		remaining, err := class.ExpandClass(text, "", reg)
		if err != nil {
			return nil, err
		}
		leftover, err := lexer.Tokenize(remaining, filePath, 1, 1, true)
		if err != nil {
			return nil, err
		}
		for _, lstmt := range leftover {
			res, err := codegen.Lower(lstmt)
			if err != nil {
				return nil, err
			}
			if res.FunctionDecl != nil {
				if err := reg.registerFunction("", res.FunctionDecl); err != nil {
					return nil, err
				}
				continue
			}
			reg.absorb(res)
			loadLines = append(loadLines, res.Lines...)
		}
	}

	var header []string
	if reg.usesVariableObjective {
		header = append(header, "scoreboard objectives add __variable__ dummy")
	}
	if reg.usesIntObjective {
		header = append(header, "scoreboard objectives add __int__ dummy")
		for _, v := range reg.intOrder {
			header = append(header, fmt.Sprintf("scoreboard players set %s __int__ %s", v, v))
		}
	}
	if len(header) > 0 || len(loadLines) > 0 {
		pack.AppendToFunction("__load__", append(header, loadLines...)...)
	}

	v := vfs.New()
	if err := pack.Write(v); err != nil {
		return nil, err
	}
	return v, nil
}

// registrar implements class.FunctionProcessor: it is handed a class
// body and a dotted prefix, and is responsible for discovering both
// nested classes (by recursing back into class.ExpandClass) and the
// function declarations inside it.
type registrar struct {
	pack     *datapack.Pack
	filePath string

	seenInt  map[string]bool
	intOrder []string

	usesVariableObjective bool
	usesIntObjective      bool
}

func (r *registrar) ProcessFunction(body, prefix string) (string, error) {
	expanded, err := class.ExpandClass(body, prefix, r)
	if err != nil {
		return "", err
	}
	return r.extractFunctions(expanded, prefix)
}

// extractFunctions scans text for "function name() { body }"
// declarations, registers each one under prefix, and returns whatever
// text did not match (so the caller can splice it back for later
// handling — ultimately the top-level __load__ function, for anything
// declared directly inside a class body with no enclosing function).
func (r *registrar) extractFunctions(text, prefix string) (string, error) {
	program, err := lexer.Tokenize(text, r.filePath, 1, 1, true)
	if err != nil {
		return "", err
	}
	var leftover []string
	for _, stmt := range program {
		res, err := codegen.Lower(stmt)
		if err != nil {
			return "", err
		}
		if res.FunctionDecl != nil {
			if err := r.registerFunction(prefix, res.FunctionDecl); err != nil {
				return "", err
			}
			continue
		}
		leftover = append(leftover, joinStatementText(stmt)+";")
	}
	return strings.Join(leftover, " "), nil
}

// registerFunction lowers decl's body statement-by-statement and
// registers the result in the pack under prefix+decl.Name. A nested
// "function" declaration inside the body registers as a further
// dotted child, e.g. a.b.c; jmcc does not support a nested "class"
// inside a function body (classes are a Non-goal everywhere except
// at class/top level).
func (r *registrar) registerFunction(prefix string, decl *codegen.FunctionDecl) error {
	name := prefix + decl.Name
	program, err := lexer.Tokenize(decl.Body, r.filePath, 1, 1, true)
	if err != nil {
		return err
	}
	var lines []string
	for _, stmt := range program {
		res, err := codegen.Lower(stmt)
		if err != nil {
			return err
		}
		if res.FunctionDecl != nil {
			if err := r.registerFunction(name+".", res.FunctionDecl); err != nil {
				return err
			}
			continue
		}
		r.absorb(res)
		lines = append(lines, res.Lines...)
	}
	r.pack.AddFunction(name, lines)
	return nil
}

func (r *registrar) absorb(res *codegen.Result) {
	if res.UsesVariableObjective {
		r.usesVariableObjective = true
	}
	for _, v := range res.IntLiterals {
		if !r.seenInt[v] {
			r.seenInt[v] = true
			r.intOrder = append(r.intOrder, v)
			r.usesIntObjective = true
		}
	}
}

// joinStatementText reconstructs an approximate source form of stmt,
// good enough for class.ExpandClass's head-anchored matching: tokens
// are joined by single spaces, with bracket and String tokens
// re-rendered with their own delimiters. Exact original whitespace is
// not preserved — jmcc does not promise byte-identical round-tripping
// past the tokenizer, only correct structure.
func joinStatementText(stmt lexer.Statement) string {
	parts := make([]string, len(stmt))
	for i, tok := range stmt {
		switch tok.Kind {
		case lexer.String:
			parts[i] = quoteString(tok.Text)
		default:
			parts[i] = tok.Text
		}
	}
	return strings.Join(parts, " ")
}

func quoteString(s string) string {
	var b strings.Builder
	b.WriteByte('"')
	for _, r := range s {
		switch r {
		case '"', '\\':
			b.WriteByte('\\')
			b.WriteRune(r)
		case '\n':
			b.WriteString(`\n`)
		default:
			b.WriteRune(r)
		}
	}
	b.WriteByte('"')
	return b.String()
}
