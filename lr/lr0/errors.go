package lr0

import (
	"errors"
	"fmt"
	"strings"

	"github.com/npillmayer/lrzero/lr"
)

// Errors a parse run may be rejected with. Clients check for them with errors.Is.
var (
	ErrUnknownTerminal = errors.New("unknown terminal")
	ErrSyntax          = errors.New("syntax error")
	ErrReduceLoop      = errors.New("reduce loop")
)

// SyntaxError is returned if the parser finds no unique action for the current
// state and lookahead.
type SyntaxError struct {
	Position int         // input position of the lookahead, starting at 0
	Terminal string      // name of the lookahead terminal
	State    uint        // state on top of the stack
	Conflict bool        // the ACTION cell held competing actions
	Actions  []lr.Action // the competing actions, if any
}

func (e *SyntaxError) Error() string {
	if e.Conflict {
		acts := make([]string, len(e.Actions))
		for n, a := range e.Actions {
			acts[n] = a.String()
		}
		return fmt.Sprintf("syntax error at position %d: conflict in state %d on %q (%s)",
			e.Position, e.State, e.Terminal, strings.Join(acts, " | "))
	}
	return fmt.Sprintf("syntax error at position %d: unexpected %q in state %d",
		e.Position, e.Terminal, e.State)
}

// Unwrap makes SyntaxError match ErrSyntax.
func (e *SyntaxError) Unwrap() error {
	return ErrSyntax
}

// ReduceLoopError is returned if the parser performed as many consecutive
// reduces without progress as the configured limit allows (see ReduceLimit).
type ReduceLoopError struct {
	Position int  // input position of the lookahead, starting at 0
	State    uint // state on top of the stack
	Limit    int  // number of reduces without progress
}

func (e *ReduceLoopError) Error() string {
	return fmt.Sprintf("reduce loop at position %d: %d reduces without shift, now in state %d",
		e.Position, e.Limit, e.State)
}

// Unwrap makes ReduceLoopError match ErrReduceLoop.
func (e *ReduceLoopError) Unwrap() error {
	return ErrReduceLoop
}
