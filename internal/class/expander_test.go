package class

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func recordingProcessor(calls *[]string, output string) FunctionProcessor {
	return FunctionProcessorFunc(func(body, prefix string) (string, error) {
		*calls = append(*calls, prefix+"|"+body)
		return output, nil
	})
}

func TestExpandClassNoMatchReturnsInputUnchanged(t *testing.T) {
	var calls []string
	out, err := ExpandClass(`function g() {}`, "", recordingProcessor(&calls, ""))
	require.NoError(t, err)
	assert.Equal(t, `function g() {}`, out)
	assert.Empty(t, calls)
}

func TestExpandClassSingleLevel(t *testing.T) {
	var calls []string
	proc := recordingProcessor(&calls, "FN_F")
	out, err := ExpandClass(`class A { function f() {} }`, "", proc)
	require.NoError(t, err)
	require.Len(t, calls, 1)
	assert.Equal(t, "A.| function f() {} ", calls[0])
	assert.Equal(t, "FN_F", out)
}

func TestExpandClassDeliversNestedBodyWithDottedPrefix(t *testing.T) {
	// Grounded in the spec's structural-expander scenario: a nested
	// class carries its ancestors' names, dot-joined.
	var calls []string
	var proc FunctionProcessorFunc
	proc = FunctionProcessorFunc(func(body, prefix string) (string, error) {
		calls = append(calls, prefix+"|"+body)
		if prefix == "A." {
			// Simulate the function-level collaborator recursing back
			// into ExpandClass to discover the nested "class B".
			return ExpandClass(body, prefix, proc)
		}
		return "", nil
	})

	out, err := ExpandClass(`class A { class B { function f() {} } } function g() {}`, "", proc)
	require.NoError(t, err)

	require.Len(t, calls, 2)
	assert.Equal(t, "A.| class B { function f() {} } ", calls[0])
	assert.Equal(t, "A.B.| function f() {} ", calls[1])
	assert.Equal(t, "function g() {}", strings.TrimSpace(out))
}

func TestExpandClassRejectsNameLikePrefixOnly(t *testing.T) {
	var calls []string
	out, err := ExpandClass(`classify() {}`, "", recordingProcessor(&calls, ""))
	require.NoError(t, err)
	assert.Equal(t, `classify() {}`, out)
	assert.Empty(t, calls)
}

func TestExpandClassUnterminatedBodyIsError(t *testing.T) {
	_, err := ExpandClass(`class A { function f() {}`, "", recordingProcessor(&[]string{}, ""))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unterminated class body")
}

func TestExpandClassStringContentDoesNotAffectBraceBalance(t *testing.T) {
	var calls []string
	proc := recordingProcessor(&calls, "")
	_, err := ExpandClass(`class A { say "{"; }`, "", proc)
	require.NoError(t, err)
	require.Len(t, calls, 1)
	assert.Equal(t, `A.| say "{"; `, calls[0])
}

func TestExpandClassPreservesLeadingWhitespace(t *testing.T) {
	var calls []string
	proc := recordingProcessor(&calls, "OUT")
	out, err := ExpandClass("  class A { function f() {} }", "", proc)
	require.NoError(t, err)
	assert.Equal(t, "  OUT", out)
}
