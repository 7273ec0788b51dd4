package lr0

import (
	"bytes"
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/npillmayer/lrzero/lr"
)

// Step is an entry of a parse trace. Stack and Input are snapshots taken
// before the action has been performed.
type Step struct {
	Stack    []uint    // state IDs, bottom first
	Input    []string  // remaining input from the cursor, including #eof
	Position int       // input cursor
	Action   lr.Action // action taken
	Note     string    // e.g., "reduce by E ➞ E + T"
}

// StackString renders the stack as "0 3 8".
func (s Step) StackString() string {
	ids := make([]string, len(s.Stack))
	for n, id := range s.Stack {
		ids[n] = fmt.Sprintf("%d", id)
	}
	return strings.Join(ids, " ")
}

// Trace is the sequence of steps of a parse run.
type Trace []Step

// Accepted is true if the last step of the trace is an accept step.
func (t Trace) Accepted() bool {
	return len(t) > 0 && t[len(t)-1].Action.Kind == lr.AcceptAction
}

// Shifts counts the shift steps of a trace.
func (t Trace) Shifts() int {
	n := 0
	for _, s := range t {
		if s.Action.Kind == lr.ShiftAction {
			n++
		}
	}
	return n
}

// Reduces counts the reduce steps of a trace.
func (t Trace) Reduces() int {
	n := 0
	for _, s := range t {
		if s.Action.Kind == lr.ReduceAction {
			n++
		}
	}
	return n
}

// String renders a trace as a table with columns Stack | Input | Action | Output.
func (t Trace) String() string {
	var b bytes.Buffer
	w := tabwriter.NewWriter(&b, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "Stack\tInput\tAction\tOutput")
	for _, s := range t {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", s.StackString(), strings.Join(s.Input, " "),
			s.Action, s.Note)
	}
	w.Flush()
	return b.String()
}
