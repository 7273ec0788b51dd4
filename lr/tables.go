package lr

import (
	"fmt"
	"html"
	"io"
	"math"
	"sort"
	"strings"

	"github.com/npillmayer/lrzero/lr/sparse"
)

// === Parser Actions ========================================================

// ActionKind is the kind of an entry in an ACTION table.
type ActionKind int8

// Kinds of parser actions.
const (
	NoAction ActionKind = iota
	ShiftAction
	ReduceAction
	AcceptAction
)

func (k ActionKind) String() string {
	switch k {
	case ShiftAction:
		return "shift"
	case ReduceAction:
		return "reduce"
	case AcceptAction:
		return "accept"
	}
	return "error"
}

// Action is an entry of an ACTION table: shift to a state, reduce by a rule,
// or accept.
type Action struct {
	Kind  ActionKind
	State uint // target state of a shift
	Rule  int  // rule serial of a reduce
}

// Shift creates a shift action to state j.
func Shift(j uint) Action {
	return Action{Kind: ShiftAction, State: j}
}

// Reduce creates a reduce action for rule r.
func Reduce(r int) Action {
	return Action{Kind: ReduceAction, Rule: r}
}

// Accept creates an accept action.
func Accept() Action {
	return Action{Kind: AcceptAction}
}

func (a Action) String() string {
	switch a.Kind {
	case ShiftAction:
		return fmt.Sprintf("shift %d", a.State)
	case ReduceAction:
		return fmt.Sprintf("reduce %d", a.Rule)
	case AcceptAction:
		return "accept"
	}
	return "<none>"
}

// Short returns the compact textbook notation of an action (s5, r3, acc).
func (a Action) Short() string {
	switch a.Kind {
	case ShiftAction:
		return fmt.Sprintf("s%d", a.State)
	case ReduceAction:
		return fmt.Sprintf("r%d", a.Rule)
	case AcceptAction:
		return "acc"
	}
	return ""
}

// Actions are stored as int32 in the sparse table matrix:
// shift j ⇒ j, reduce r ⇒ -r (r > 0, as rule 0 is never reduced), accept ⇒ acceptCode.
const acceptCode int32 = math.MinInt32 + 1

func (a Action) encode() int32 {
	switch a.Kind {
	case ShiftAction:
		return int32(a.State)
	case ReduceAction:
		return -int32(a.Rule)
	case AcceptAction:
		return acceptCode
	}
	panic("cannot encode empty parser action")
}

func decodeAction(v int32) Action {
	switch {
	case v == acceptCode:
		return Accept()
	case v < 0:
		return Reduce(int(-v))
	}
	return Shift(uint(v))
}

// actionOrder sorts actions: shifts first, then reduces by rule serial, accept last.
func actionOrder(a1, a2 Action) bool {
	if a1.Kind != a2.Kind {
		return a1.Kind < a2.Kind
	}
	if a1.Kind == ShiftAction {
		return a1.State < a2.State
	}
	return a1.Rule < a2.Rule
}

// === Conflicts =============================================================

// ConflictKind tells shift/reduce- from reduce/reduce-conflicts.
type ConflictKind int8

// Kinds of table conflicts.
const (
	ShiftReduce ConflictKind = iota
	ReduceReduce
)

func (k ConflictKind) String() string {
	if k == ShiftReduce {
		return "shift/reduce"
	}
	return "reduce/reduce"
}

// Conflict is a cell of an ACTION table with more than one action.
// Conflicts are reported, not resolved.
type Conflict struct {
	State    uint
	Terminal *Symbol
	Actions  []Action // all competing actions, shifts first
}

// Kind returns the kind of conflict. An accept action competing with a reduce
// counts as a reduce/reduce conflict.
func (c Conflict) Kind() ConflictKind {
	for _, a := range c.Actions {
		if a.Kind == ShiftAction {
			return ShiftReduce
		}
	}
	return ReduceReduce
}

func (c Conflict) String() string {
	acts := make([]string, len(c.Actions))
	for n, a := range c.Actions {
		acts[n] = a.String()
	}
	return fmt.Sprintf("%s conflict in state %d on %q: %s", c.Kind(), c.State,
		c.Terminal.Name, strings.Join(acts, " | "))
}

// === Tables ================================================================

// Table is a parser table, backed by a sparse matrix. Rows are states, columns are
// symbol values.
type Table struct {
	matrix *sparse.IntMatrix
}

func newTable(states, symbols int) Table {
	return Table{matrix: sparse.NewIntMatrix(states, symbols, sparse.DefaultNullValue)}
}

// NullValue is the value of empty table entries.
func (t *Table) NullValue() int32 {
	return t.matrix.NullValue()
}

// Value returns the first raw value at (state, A).
func (t *Table) Value(state uint, A *Symbol) int32 {
	return t.matrix.Value(int(state), A.Value)
}

// ValueCount returns the number of non-empty cells.
func (t *Table) ValueCount() int {
	return t.matrix.ValueCount()
}

// ActionTable is the ACTION table of an LR(0) parser, indexed by state and terminal.
// Cells may contain more than one action, if the grammar is not LR(0).
type ActionTable struct {
	Table
}

// Actions returns all actions at (state, a), ordered shifts first.
func (t *ActionTable) Actions(state uint, a *Symbol) []Action {
	vals := t.matrix.Values(int(state), a.Value)
	acts := make([]Action, len(vals))
	for n, v := range vals {
		acts[n] = decodeAction(v)
	}
	sort.SliceStable(acts, func(i, j int) bool { return actionOrder(acts[i], acts[j]) })
	return acts
}

// Action returns the unique action at (state, a). It returns false if the cell is
// empty or conflicted.
func (t *ActionTable) Action(state uint, a *Symbol) (Action, bool) {
	if t.matrix.Count(int(state), a.Value) != 1 {
		return Action{}, false
	}
	return decodeAction(t.matrix.Value(int(state), a.Value)), true
}

// Conflicted is true if the cell at (state, a) holds more than one action.
func (t *ActionTable) Conflicted(state uint, a *Symbol) bool {
	return t.matrix.Count(int(state), a.Value) > 1
}

// CellString returns the cell at (state, a) in textbook notation, e.g. "s4/r2".
func (t *ActionTable) CellString(state uint, a *Symbol) string {
	acts := t.Actions(state, a)
	s := make([]string, len(acts))
	for n, act := range acts {
		s[n] = act.Short()
	}
	return strings.Join(s, "/")
}

// StateCount returns the number of rows.
func (t *ActionTable) StateCount() int {
	return t.matrix.M()
}

func (t *ActionTable) add(state uint, a *Symbol, act Action) {
	if t.matrix.Add(int(state), a.Value, act.encode()) {
		tracer().Debugf("    ACTION(%d, %s) += %s", state, a, act)
	}
}

// GotoTable is the GOTO table of an LR(0) parser, indexed by state and non-terminal.
type GotoTable struct {
	Table
}

// Goto returns the state to go to from state after a reduction to N.
func (t *GotoTable) Goto(state uint, N *Symbol) (uint, bool) {
	v := t.matrix.Value(int(state), N.Value)
	if v == t.NullValue() {
		return 0, false
	}
	return uint(v), true
}

// StateCount returns the number of rows.
func (t *GotoTable) StateCount() int {
	return t.matrix.M()
}

// ===========================================================================

// BuildTables derives the ACTION and GOTO tables from a CFSM. For every state i
// and every item in i:
//
// ▪︎ S' ➞ S • produces accept at (i, #eof)
//
// ▪︎ any other completed item A ➞ α • produces a reduce entry for every terminal,
// including #eof. LR(0) reduce entries do not depend on lookahead.
//
// ▪︎ an item A ➞ α • a β with terminal a produces a shift to goto(i, a).
//
// GOTO(i, N) is set for every transition over a non-terminal N. Cells with more than
// one action are reported as conflicts, ordered by state and terminal. Conflicts
// are not fatal; all competing actions are kept in the table.
func BuildTables(g *Grammar, cfsm *CFSM) (*ActionTable, *GotoTable, []Conflict) {
	n, m := cfsm.Size(), g.SymbolCount()
	tracer().Infof("ACTION/GOTO tables of size %d x %d", n, m)
	actions := &ActionTable{Table: newTable(n, m)}
	gotos := &GotoTable{Table: newTable(n, m)}
	for _, state := range cfsm.States() {
		tracer().Debugf("--- state %d --------------------------------", state.ID)
		for _, i := range state.items.Items() {
			A := i.PeekSymbol()
			switch {
			case A == nil && i.rule.Serial == 0:
				actions.add(state.ID, g.eof, Accept())
			case A == nil:
				for _, a := range g.terminals {
					actions.add(state.ID, a, Reduce(i.rule.Serial))
				}
			case A.IsTerminal():
				if j, ok := cfsm.Transition(state.ID, A); ok {
					actions.add(state.ID, A, Shift(j))
				}
			}
		}
		for _, N := range g.nonterminals {
			if j, ok := cfsm.Transition(state.ID, N); ok {
				gotos.matrix.Set(int(state.ID), N.Value, int32(j))
			}
		}
	}
	return actions, gotos, collectConflicts(g, actions)
}

func collectConflicts(g *Grammar, actions *ActionTable) []Conflict {
	var conflicts []Conflict
	actions.matrix.Each(func(i, j int, values []int32) {
		if len(values) < 2 {
			return
		}
		a := g.TerminalByValue(j)
		c := Conflict{
			State:    uint(i),
			Terminal: a,
			Actions:  actions.Actions(uint(i), a),
		}
		tracer().Infof("%s", c)
		conflicts = append(conflicts, c)
	})
	return conflicts
}

// ===========================================================================

// TableGenerator is a generator object to construct LR(0) parser tables.
// Clients usually create a Grammar G and then a table generator.
// TableGenerator.CreateTables() constructs the CFSM and parser tables for
// an LR(0)-parser recognizing grammar G.
type TableGenerator struct {
	g            *Grammar
	dfa          *CFSM
	gototable    *GotoTable
	actiontable  *ActionTable
	conflicts    []Conflict
	HasConflicts bool
}

// NewTableGenerator creates a new TableGenerator for a grammar.
func NewTableGenerator(g *Grammar) *TableGenerator {
	return &TableGenerator{g: g}
}

// Grammar returns the grammar of the generator.
func (lrgen *TableGenerator) Grammar() *Grammar {
	return lrgen.g
}

// CFSM returns the characteristic finite state machine (CFSM) for a grammar.
// Usually clients call lrgen.CreateTables() beforehand, but it is possible
// to call lrgen.CFSM() directly. The CFSM will be created, if it has not
// been constructed previously.
func (lrgen *TableGenerator) CFSM() *CFSM {
	if lrgen.dfa == nil {
		lrgen.dfa = BuildCFSM(lrgen.g)
	}
	return lrgen.dfa
}

// CreateTables creates the CFSM and the ACTION and GOTO tables.
func (lrgen *TableGenerator) CreateTables() {
	lrgen.actiontable, lrgen.gototable, lrgen.conflicts = BuildTables(lrgen.g, lrgen.CFSM())
	lrgen.HasConflicts = len(lrgen.conflicts) > 0
}

// GotoTable returns the GOTO table for LR-parsing a grammar. The tables have to be
// built by calling CreateTables() previously.
func (lrgen *TableGenerator) GotoTable() *GotoTable {
	if lrgen.gototable == nil {
		tracer().P("lr", "gen").Errorf("tables not yet initialized")
	}
	return lrgen.gototable
}

// ActionTable returns the ACTION table for LR-parsing a grammar. The tables have to be
// built by calling CreateTables() previously.
func (lrgen *TableGenerator) ActionTable() *ActionTable {
	if lrgen.actiontable == nil {
		tracer().P("lr", "gen").Errorf("tables not yet initialized")
	}
	return lrgen.actiontable
}

// Conflicts returns the conflicts found during table construction.
func (lrgen *TableGenerator) Conflicts() []Conflict {
	return lrgen.conflicts
}

// GotoTableAsHTML exports a GOTO-table in HTML-format.
func GotoTableAsHTML(lrgen *TableGenerator, w io.Writer) {
	if lrgen.gototable == nil {
		tracer().Errorf("GOTO table not yet created, cannot export to HTML")
		return
	}
	parserTableAsHTML(lrgen, "GOTO", lrgen.g.nonterminals[1:], func(s uint, A *Symbol) string {
		if j, ok := lrgen.gototable.Goto(s, A); ok {
			return fmt.Sprintf("%d", j)
		}
		return ""
	}, w)
}

// ActionTableAsHTML exports the LR(0) ACTION-table in HTML-format.
func ActionTableAsHTML(lrgen *TableGenerator, w io.Writer) {
	if lrgen.actiontable == nil {
		tracer().Errorf("ACTION table not yet created, cannot export to HTML")
		return
	}
	parserTableAsHTML(lrgen, "ACTION", lrgen.g.terminals, lrgen.actiontable.CellString, w)
}

func parserTableAsHTML(lrgen *TableGenerator, tname string, symvec []*Symbol,
	cell func(uint, *Symbol) string, w io.Writer) {
	//
	io.WriteString(w, "<html><body>\n")
	io.WriteString(w, fmt.Sprintf("%s table for grammar %s<p>", tname, html.EscapeString(lrgen.g.Name)))
	io.WriteString(w, "<table border=1 cellspacing=0 cellpadding=5>\n")
	io.WriteString(w, "<tr bgcolor=#cccccc><td></td>\n")
	for _, A := range symvec {
		io.WriteString(w, fmt.Sprintf("<td>%s</td>", html.EscapeString(A.Name)))
	}
	io.WriteString(w, "</tr>\n")
	var td string // table cell
	for _, state := range lrgen.dfa.States() {
		io.WriteString(w, fmt.Sprintf("<tr><td>state %d</td>\n", state.ID))
		for _, A := range symvec {
			if td = cell(state.ID, A); td == "" {
				td = "&nbsp;"
			}
			io.WriteString(w, "<td>")
			io.WriteString(w, td)
			io.WriteString(w, "</td>\n")
		}
		io.WriteString(w, "</tr>\n")
	}
	io.WriteString(w, "</table></body></html>\n")
}
