package lr

import (
	"bytes"
	"strconv"
	"strings"
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
)

// An ambiguous grammar, which is not LR(0) for more than one reason:
//
//   S ➞ E
//   E ➞ E + E  |  id
//
func makeAmbiguousGrammar(t *testing.T) *Grammar {
	b := NewGrammarBuilder("Ambiguous")
	b.LHS("S").N("E").End()
	b.LHS("E").N("E").T("+").N("E").End()
	b.LHS("E").T("id").End()
	g, err := b.Grammar()
	if err != nil {
		t.Fatal(err)
	}
	return g
}

// Columns are + * ( ) id #eof
var exprActionRows = []string{
	". . s5 . s6 .",
	". . . . . acc",
	"s7/r1 r1 r1 r1 r1 r1",
	"r3 s8/r3 r3 r3 r3 r3",
	"r5 r5 r5 r5 r5 r5",
	". . s5 . s6 .",
	"r7 r7 r7 r7 r7 r7",
	". . s5 . s6 .",
	". . s5 . s6 .",
	"s7 . . s12 . .",
	"r2 s8/r2 r2 r2 r2 r2",
	"r4 r4 r4 r4 r4 r4",
	"r6 r6 r6 r6 r6 r6",
}

// Columns are S E T F
var exprGotoRows = []string{
	"1 2 3 4",
	". . . .",
	". . . .",
	". . . .",
	". . . .",
	". 9 3 4",
	". . . .",
	". . 10 4",
	". . . 11",
	". . . .",
	". . . .",
	". . . .",
	". . . .",
}

func actionRow(g *Grammar, T *ActionTable, state uint) string {
	var cells []string
	for _, a := range g.Terminals() {
		c := T.CellString(state, a)
		if c == "" {
			c = "."
		}
		cells = append(cells, c)
	}
	return strings.Join(cells, " ")
}

func gotoRow(g *Grammar, T *GotoTable, state uint) string {
	var cells []string
	for _, N := range g.NonTerminals()[1:] {
		c := "."
		if j, ok := T.Goto(state, N); ok {
			c = strconv.Itoa(int(j))
		}
		cells = append(cells, c)
	}
	return strings.Join(cells, " ")
}

func TestExpressionGrammarTables(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lrzero.lr")
	defer teardown()
	//
	g := makeExprGrammar(t)
	lrgen := NewTableGenerator(g)
	lrgen.CreateTables()
	A, G := lrgen.ActionTable(), lrgen.GotoTable()
	if A.StateCount() != 13 || G.StateCount() != 13 {
		t.Fatalf("expected tables with 13 rows, have %d/%d", A.StateCount(), G.StateCount())
	}
	for n := range exprActionRows {
		if row := actionRow(g, A, uint(n)); row != exprActionRows[n] {
			t.Errorf("ACTION row %d: expected %q, have %q", n, exprActionRows[n], row)
		}
		if row := gotoRow(g, G, uint(n)); row != exprGotoRows[n] {
			t.Errorf("GOTO row %d: expected %q, have %q", n, exprGotoRows[n], row)
		}
	}
	id := g.Terminal("id")
	if act, ok := A.Action(0, id); !ok || act != Shift(6) {
		t.Errorf("expected ACTION(0, id) = shift 6, is %v", act)
	}
	if act, ok := A.Action(1, g.EOF()); !ok || act.Kind != AcceptAction {
		t.Errorf("expected ACTION(1, #eof) = accept, is %v", act)
	}
	if _, ok := A.Action(1, id); ok {
		t.Errorf("expected ACTION(1, id) to be empty")
	}
	if _, ok := A.Action(2, g.Terminal("+")); ok || !A.Conflicted(2, g.Terminal("+")) {
		t.Errorf("expected ACTION(2, +) to be conflicted")
	}
}

func TestExpressionGrammarConflicts(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lrzero.lr")
	defer teardown()
	//
	g := makeExprGrammar(t)
	lrgen := NewTableGenerator(g)
	lrgen.CreateTables()
	if !lrgen.HasConflicts {
		t.Fatalf("expected expression grammar to not be LR(0)")
	}
	expected := []string{
		`shift/reduce conflict in state 2 on "+": shift 7 | reduce 1`,
		`shift/reduce conflict in state 3 on "*": shift 8 | reduce 3`,
		`shift/reduce conflict in state 10 on "*": shift 8 | reduce 2`,
	}
	conflicts := lrgen.Conflicts()
	if len(conflicts) != len(expected) {
		t.Fatalf("expected %d conflicts, have %v", len(expected), conflicts)
	}
	for n, c := range conflicts {
		if c.String() != expected[n] {
			t.Errorf("conflict %d: expected %q, have %q", n, expected[n], c)
		}
		if c.Kind() != ShiftReduce {
			t.Errorf("expected shift/reduce conflict, have %v", c.Kind())
		}
	}
}

func TestListGrammarIsLR0(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lrzero.lr")
	defer teardown()
	//
	g := makeListGrammar(t)
	A, G, conflicts := BuildTables(g, BuildCFSM(g))
	if len(conflicts) != 0 {
		t.Errorf("expected no conflicts, have %v", conflicts)
	}
	if act, ok := A.Action(4, g.Terminal(",")); !ok || act != Shift(7) {
		t.Errorf("expected ACTION(4, ',') = shift 7, is %v", act)
	}
	if act, ok := A.Action(8, g.EOF()); !ok || act != Reduce(4) {
		t.Errorf("expected ACTION(8, #eof) = reduce 4, is %v", act)
	}
	if j, ok := G.Goto(7, g.SymbolByName("S")); !ok || j != 8 {
		t.Errorf("expected GOTO(7, S) = 8, is %d", j)
	}
	if _, ok := G.Goto(1, g.SymbolByName("L")); ok {
		t.Errorf("expected GOTO(1, L) to be empty")
	}
}

func TestAmbiguousGrammarKeepsAllActions(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lrzero.lr")
	defer teardown()
	//
	g := makeAmbiguousGrammar(t)
	A, _, conflicts := BuildTables(g, BuildCFSM(g))
	if len(conflicts) != 2 {
		t.Fatalf("expected 2 conflicts, have %v", conflicts)
	}
	plus := g.Terminal("+")
	for _, c := range conflicts {
		if c.Kind() != ShiftReduce || c.Terminal != plus || len(c.Actions) != 2 {
			t.Errorf("unexpected conflict %v", c)
		}
		acts := A.Actions(c.State, plus)
		if len(acts) != 2 || acts[0].Kind != ShiftAction || acts[1].Kind != ReduceAction {
			t.Errorf("expected table to keep shift and reduce, have %v", acts)
		}
	}
}

func TestReduceReduceConflict(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lrzero.lr")
	defer teardown()
	//
	b := NewGrammarBuilder("RR")
	b.LHS("S").N("A").End()
	b.LHS("S").N("B").End()
	b.LHS("A").T("x").End()
	b.LHS("B").T("x").End()
	g, err := b.Grammar()
	if err != nil {
		t.Fatal(err)
	}
	_, _, conflicts := BuildTables(g, BuildCFSM(g))
	if len(conflicts) == 0 {
		t.Fatalf("expected reduce/reduce conflicts")
	}
	for _, c := range conflicts {
		if c.Kind() != ReduceReduce {
			t.Errorf("expected reduce/reduce conflict, have %v", c)
		}
	}
	if len(conflicts) != len(g.Terminals()) {
		t.Errorf("expected a conflict for every terminal, have %d", len(conflicts))
	}
}

func TestTablesAsHTML(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lrzero.lr")
	defer teardown()
	//
	g := makeExprGrammar(t)
	lrgen := NewTableGenerator(g)
	var b bytes.Buffer
	ActionTableAsHTML(lrgen, &b)
	if b.Len() != 0 {
		t.Errorf("expected no output before tables are created")
	}
	lrgen.CreateTables()
	ActionTableAsHTML(lrgen, &b)
	out := b.String()
	if !strings.Contains(out, "<td>#eof</td>") || !strings.Contains(out, "<td>s7/r1</td>") {
		t.Errorf("unexpected ACTION table HTML:\n%s", out)
	}
	b.Reset()
	GotoTableAsHTML(lrgen, &b)
	out = b.String()
	if strings.Contains(out, "<td>S'</td>") || !strings.Contains(out, "<td>11</td>") {
		t.Errorf("unexpected GOTO table HTML:\n%s", out)
	}
}
