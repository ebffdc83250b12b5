package commands

import (
	"fmt"
	"io"

	"github.com/fastygo/taskie/domain"
	"github.com/fastygo/taskie/internal/exitcode"
)

// report prints err and maps its classification to an exit code.
func report(errOut io.Writer, err error) int {
	switch domain.CodeOf(err) {
	case domain.ErrCodeUnauthorized:
		fmt.Fprintf(errOut, "error: auth error: %v (run: taskie login)\n", err)
		return exitcode.AuthError
	case domain.ErrCodeInvalid:
		fmt.Fprintf(errOut, "error: %v\n", err)
		return exitcode.UserError
	case domain.ErrCodeTransport:
		fmt.Fprintf(errOut, "error: network error: %v\n", err)
		return exitcode.BackendError
	default:
		fmt.Fprintf(errOut, "error: backend error: %v\n", err)
		return exitcode.BackendError
	}
}

func (e *Env) say(out io.Writer, format string, args ...interface{}) {
	if e.Quiet {
		return
	}
	fmt.Fprintf(out, format+"\n", args...)
}
