package lexer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func tokenTexts(stmt Statement) []string {
	out := make([]string, len(stmt))
	for i, tok := range stmt {
		out[i] = tok.Kind.String() + ":" + tok.Text
	}
	return out
}

func TestTokenizeScenarios(t *testing.T) {
	tests := []struct {
		name   string
		source string
		want   []string
	}{
		{
			name:   "simple call",
			source: `foo(1, 2);`,
			want:   []string{"Keyword:foo", "ParenRound:(1, 2)"},
		},
		{
			name:   "semicolon inside string inside parens",
			source: `foo("a;b");`,
			want:   []string{"Keyword:foo", `ParenRound:("a;b")`},
		},
		{
			name:   "class declaration is one statement",
			source: `class A { function f() { say hi; } }`,
			want:   []string{"Keyword:class", "Keyword:A", "ParenCurly:{ function f() { say hi; } }"},
		},
		{
			name:   "line comment is skipped",
			source: "// a comment\nfoo;",
			want:   []string{"Keyword:foo"},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			program, err := Tokenize(tc.source, "test.jmc", 1, 1, true)
			require.NoError(t, err)
			require.Len(t, program, 1)
			assert.Equal(t, tc.want, tokenTexts(program[0]))
		})
	}
}

func TestTokenizeMultipleStatements(t *testing.T) {
	program, err := Tokenize(`foo(1); bar(2);`, "test.jmc", 1, 1, true)
	require.NoError(t, err)
	require.Len(t, program, 2)
	assert.Equal(t, []string{"Keyword:foo", "ParenRound:(1)"}, tokenTexts(program[0]))
	assert.Equal(t, []string{"Keyword:bar", "ParenRound:(2)"}, tokenTexts(program[1]))
}

func TestTokenizeUnterminatedString(t *testing.T) {
	_, err := Tokenize(`"unterminated`, "test.jmc", 1, 1, true)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unterminated string")
	synErr := err.(*SyntaxError)
	assert.Equal(t, 1, synErr.Line)
}

func TestTokenizeUnterminatedStringViaLineBreak(t *testing.T) {
	_, err := Tokenize("\"broke\noff\";", "test.jmc", 1, 1, true)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unescaped line break")
}

func TestTokenizeMissingSemicolon(t *testing.T) {
	_, err := Tokenize(`foo(1)`, "test.jmc", 1, 1, true)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "expected ';'")
}

func TestTokenizeUnexpectedSemicolonInExpressionMode(t *testing.T) {
	_, err := TokenizeExpression(`a; b`, "test.jmc", 1, 1)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unexpected semicolon")
}

func TestTokenizeUnmatchedCloseBracket(t *testing.T) {
	_, err := Tokenize(`);`, "test.jmc", 1, 1, true)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unexpected closing bracket")
}

func TestTokenizeStrayCommentDoesNotBreakBracketTracking(t *testing.T) {
	// "//" inside a paren group is not a comment: it is copied verbatim
	// and must not disturb depth tracking.
	program, err := Tokenize("foo(a // not a comment\n);", "test.jmc", 1, 1, true)
	require.NoError(t, err)
	require.Len(t, program, 1)
	assert.Equal(t, ParenRound, program[0][1].Kind)
}

func TestTokenizeParenContentIsKeptRawIncludingEscapes(t *testing.T) {
	// Strings embedded inside a bracket group are copied verbatim, not
	// decoded: escape resolution only happens for a standalone String
	// token emitted directly by the None state.
	program, err := Tokenize(`say("a\nb");`, "test.jmc", 1, 1, true)
	require.NoError(t, err)
	require.Len(t, program, 1)
	paren := program[0][1]
	assert.Equal(t, `("a\nb")`, paren.Text)
}

func TestTokenizeStandaloneStringIsDecoded(t *testing.T) {
	tok, err := TokenizeExpression(`"a\nb"`, "test.jmc", 1, 1)
	require.NoError(t, err)
	require.Len(t, tok, 1)
	assert.Equal(t, "a\nb", tok[0].Text)
}

func TestTokenizeKeywordPositions(t *testing.T) {
	program, err := Tokenize(`foo(1);`, "test.jmc", 1, 1, true)
	require.NoError(t, err)
	tok := program[0][0]
	assert.Equal(t, Position{1, 1}, tok.Pos)
	tok2 := program[0][1]
	assert.Equal(t, Position{1, 4}, tok2.Pos)
}

func TestTokenizeStartLineAndColOffset(t *testing.T) {
	// Simulates a fragment handed in by a caller that knows its true
	// position in a larger file.
	program, err := Tokenize(`bar;`, "test.jmc", 5, 10, true)
	require.NoError(t, err)
	assert.Equal(t, Position{5, 10}, program[0][0].Pos)
}
