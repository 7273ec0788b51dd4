package lr0

import (
	"fmt"

	"github.com/npillmayer/lrzero/lr"
	"github.com/npillmayer/lrzero/lr/scanner"
	"github.com/npillmayer/schuko/gconf"
)

// Parser is an LR(0)-parser type. Create and initialize one with lr0.NewParser(...)
//
// A parser holds the grammar and the parse tables, which are never modified.
// The stack and input cursor live in a parse run, therefore a single parser
// may be used concurrently.
type Parser struct {
	G           *lr.Grammar
	gotoT       *lr.GotoTable   // GOTO table
	actionT     *lr.ActionTable // ACTION table
	reduceLimit int             // max. reduces without progress
	resolve     Resolver        // optional conflict resolver
}

// Resolver chooses one of the competing actions of a conflicted ACTION cell.
// It returns false if it cannot decide.
type Resolver func(state uint, lookahead *lr.Symbol, actions []lr.Action) (lr.Action, bool)

// PreferShift is a Resolver which resolves shift/reduce conflicts in favour of
// the shift. It cannot resolve reduce/reduce conflicts.
func PreferShift(state uint, lookahead *lr.Symbol, actions []lr.Action) (lr.Action, bool) {
	for _, a := range actions {
		if a.Kind == lr.ShiftAction {
			return a, true
		}
	}
	return lr.Action{}, false
}

// Option configures a parser.
type Option func(p *Parser)

// ReduceLimit sets the maximum number of consecutive reduces which make no
// progress, i.e., neither follow a shift nor pop the stack below its lowest
// height since the last shift. Unit and ε-rules are the only reduces which can
// repeat without progress. The default is the number of states of the tables.
// Values < 1 are ignored.
func ReduceLimit(n int) Option {
	return func(p *Parser) {
		if n > 0 {
			p.reduceLimit = n
		}
	}
}

// ResolveConflicts sets a resolver to be consulted for conflicted ACTION cells.
// Without a resolver, reaching a conflicted cell is a syntax error.
func ResolveConflicts(r Resolver) Option {
	return func(p *Parser) {
		p.resolve = r
	}
}

// NewParser creates an LR(0) parser.
func NewParser(g *lr.Grammar, gotoTable *lr.GotoTable, actionTable *lr.ActionTable, opts ...Option) *Parser {
	parser := &Parser{
		G:           g,
		gotoT:       gotoTable,
		actionT:     actionTable,
		reduceLimit: actionTable.StateCount(),
	}
	for _, opt := range opts {
		opt(parser)
	}
	return parser
}

// Parse starts a new parse for a sequence of terminal names. The end-of-input
// marker is appended by the parser and must not be part of the input.
//
// Parse returns the trace of all steps taken. If the input has been accepted,
// the last step of the trace is the accept step and the error is nil.
// Otherwise the error is either a *SyntaxError or a *ReduceLoopError, and the
// trace holds the steps up to the rejection.
func (p *Parser) Parse(input []string) (Trace, error) {
	if p.G == nil || p.gotoT == nil || p.actionT == nil {
		tracer().Errorf("LR(0)-parser not initialized")
		return nil, fmt.Errorf("LR(0)-parser not initialized")
	}
	terms := make([]*lr.Symbol, 0, len(input)+1)
	for pos, name := range input {
		a := p.G.Terminal(name)
		if a == nil || a == p.G.EOF() {
			return nil, fmt.Errorf("%w %q at position %d", ErrUnknownTerminal, name, pos)
		}
		terms = append(terms, a)
	}
	terms = append(terms, p.G.EOF())
	run := &parseRun{
		parser: p,
		stack:  make([]uint, 1, 64), // start with [ 0 ]
		input:  terms,
		low:    1,
	}
	return run.execute()
}

// ParseTokens reads tokens from a tokenizer up to EOF and parses them.
// See scanner.TerminalNames for how tokens are mapped to terminals.
func (p *Parser) ParseTokens(tok scanner.Tokenizer) (Trace, error) {
	names, err := scanner.TerminalNames(tok, p.G)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnknownTerminal, err)
	}
	return p.Parse(names)
}

// --- Parse runs ------------------------------------------------------------

// parseRun holds the mutable state of a single parse.
type parseRun struct {
	parser  *Parser
	stack   []uint       // stack of state IDs, bottom is state 0
	input   []*lr.Symbol // input terminals, ending with #eof
	pos     int          // input cursor
	low     int          // lowest stack height since the last shift
	reduces int          // consecutive reduces without progress
	trace   Trace
}

func (run *parseRun) tos() uint {
	return run.stack[len(run.stack)-1]
}

func (run *parseRun) execute() (Trace, error) {
	tracer().Debugf("~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~")
	for {
		state, lookahead := run.tos(), run.input[run.pos]
		action, err := run.nextAction(state, lookahead)
		if err != nil {
			tracer().Infof("%v", err)
			return run.trace, err
		}
		tracer().Debugf("action(%d, %s) = %s", state, lookahead, action)
		switch action.Kind {
		case lr.AcceptAction:
			run.record(action, "")
			tracer().Infof("input accepted after %d steps", len(run.trace))
			return run.trace, nil
		case lr.ShiftAction:
			run.record(action, "")
			run.stack = append(run.stack, action.State)
			run.pos++
			run.low, run.reduces = len(run.stack), 0
		case lr.ReduceAction:
			if run.reduces >= run.parser.reduceLimit {
				return run.trace, run.stuck(state)
			}
			rule := run.parser.G.Rule(action.Rule)
			run.record(action, "reduce by "+rule.String())
			if err = run.reduce(rule); err != nil {
				return run.trace, err
			}
			if len(run.stack) < run.low {
				run.low, run.reduces = len(run.stack), 0
			} else {
				run.reduces++
			}
		}
	}
}

// nextAction looks up the action for (state, lookahead). Empty cells and
// unresolved conflicts are syntax errors.
func (run *parseRun) nextAction(state uint, lookahead *lr.Symbol) (lr.Action, error) {
	actions := run.parser.actionT.Actions(state, lookahead)
	switch {
	case len(actions) == 1:
		return actions[0], nil
	case len(actions) > 1 && run.parser.resolve != nil:
		if a, ok := run.parser.resolve(state, lookahead, actions); ok {
			tracer().Debugf("conflict in state %d on %s resolved to %s", state, lookahead, a)
			return a, nil
		}
	}
	return lr.Action{}, &SyntaxError{
		Position: run.pos,
		Terminal: lookahead.Name,
		State:    state,
		Conflict: len(actions) > 1,
		Actions:  actions,
	}
}

// reduce performs a reduce action for a rule
//
//    LHS ➞ X1 ... Xn   (with X being terminals or non-terminals)
//
// by popping n states and pushing GOTO(TOS, LHS).
func (run *parseRun) reduce(rule *lr.Rule) error {
	tracer().Debugf("reduce %v", rule)
	if rule.Len() >= len(run.stack) {
		panic(fmt.Sprintf("parser stack underflow reducing %v", rule))
	}
	run.stack = run.stack[:len(run.stack)-rule.Len()]
	state := run.tos()
	next, ok := run.parser.gotoT.Goto(state, rule.LHS)
	if !ok {
		return &SyntaxError{
			Position: run.pos,
			Terminal: run.input[run.pos].Name,
			State:    state,
		}
	}
	run.stack = append(run.stack, next)
	return nil
}

// record appends a trace step, taking snapshots of stack and remaining input.
func (run *parseRun) record(action lr.Action, note string) {
	step := Step{
		Stack:    append([]uint(nil), run.stack...),
		Input:    make([]string, 0, len(run.input)-run.pos),
		Position: run.pos,
		Action:   action,
		Note:     note,
	}
	for _, a := range run.input[run.pos:] {
		step.Input = append(step.Input, a.Name)
	}
	run.trace = append(run.trace, step)
}

func (run *parseRun) stuck(state uint) error {
	err := &ReduceLoopError{
		Position: run.pos,
		State:    state,
		Limit:    run.parser.reduceLimit,
	}
	tracer().Errorf("%v", err)
	if gconf.GetBool("panic-on-parser-stuck") {
		panic(`LR(0)-parser is stuck in a reduce loop.

Configuration flag panic-on-parser-stuck is set to true. It is aimed at helping
to debug a parser and do a post-mortem of why it got stuck. However, if this is
a production environment and you did not expect this to panic, please unset
panic-on-parser-stuck to its default (false).

` + err.Error())
	}
	return err
}
