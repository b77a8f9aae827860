package diag

import (
	"bytes"
	"testing"

	"github.com/jmc-lang/jmcc/internal/lexer"
	"github.com/stretchr/testify/assert"
)

func TestPrintNonTerminalUsesPlainFormat(t *testing.T) {
	var buf bytes.Buffer
	err := &lexer.SyntaxError{
		FilePath: "test.jmc",
		Line:     1,
		Col:      4,
		Message:  "unterminated bracket group",
		Excerpt:  "foo(",
	}
	Print(&buf, err)
	assert.Equal(t, err.Error()+"\n", buf.String())
}
