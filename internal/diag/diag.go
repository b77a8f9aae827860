// Package diag prints lexer.SyntaxError diagnostics to a terminal,
// adding ANSI underlining under the "<-" caret when standard error is
// actually a terminal — the same real-terminal check the teacher
// makes (via golang.org/x/term) before trying to read a password
// interactively.
package diag

import (
	"fmt"
	"io"
	"os"

	"github.com/jmc-lang/jmcc/internal/lexer"
	"golang.org/x/term"
)

const (
	ansiBold      = "\x1b[1m"
	ansiRed       = "\x1b[31m"
	ansiUnderline = "\x1b[4m"
	ansiOff       = "\x1b[0m"
)

// Print writes err's diagnostic to w. When w is an *os.File attached
// to a real terminal, the message and caret line are
// colorized; otherwise the plain SyntaxError.Error() text is used
// unmodified, since the format is tool-consumed and must stay exact
// for non-terminal output (redirected to a file, piped to another
// tool, captured by a test).
func Print(w io.Writer, err *lexer.SyntaxError) {
	if !isRealTerminal(w) {
		fmt.Fprintln(w, err.Error())
		return
	}
	fmt.Fprintf(w, "%sIn %s%s\n", ansiBold, err.FilePath, ansiOff)
	fmt.Fprintf(w, "%s%s%s at line %d col %d.\n", ansiRed, err.Message, ansiOff, err.Line, err.Col)
	fmt.Fprintf(w, "%s%s <-%s\n", ansiUnderline, err.Excerpt, ansiOff)
}

func isRealTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return term.IsTerminal(int(f.Fd()))
}
