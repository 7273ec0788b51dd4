package lr

import (
	"errors"
	"strings"
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
)

// The expression grammar from the dragon book, with an additional start rule:
//
//   S ➞ E
//   E ➞ E + T  |  T
//   T ➞ T * F  |  F
//   F ➞ ( E )  |  id
//
func makeExprGrammar(t *testing.T) *Grammar {
	b := NewGrammarBuilder("Expr")
	b.LHS("S").N("E").End()
	b.LHS("E").N("E").T("+").N("T").End()
	b.LHS("E").N("T").End()
	b.LHS("T").N("T").T("*").N("F").End()
	b.LHS("T").N("F").End()
	b.LHS("F").T("(").N("E").T(")").End()
	b.LHS("F").T("id").End()
	g, err := b.Grammar()
	if err != nil {
		t.Fatal(err)
	}
	return g
}

// An LR(0) grammar for nested lists, from Appel's "Modern Compiler Implementation":
//
//   S ➞ ( L )  |  x
//   L ➞ S  |  L , S
//
func makeListGrammar(t *testing.T) *Grammar {
	b := NewGrammarBuilder("Lists")
	b.LHS("S").T("(").N("L").T(")").End()
	b.LHS("S").T("x").End()
	b.LHS("L").N("S").End()
	b.LHS("L").N("L").T(",").N("S").End()
	g, err := b.Grammar()
	if err != nil {
		t.Fatal(err)
	}
	return g
}

func TestGrammarAugmentation(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lrzero.lr")
	defer teardown()
	//
	g := makeExprGrammar(t)
	if g.Size() != 8 {
		t.Errorf("expected 8 rules, have %d", g.Size())
	}
	r0 := g.Rule(0)
	if r0.LHS != g.Start() || r0.LHS.Name != "S'" || r0.Len() != 1 || r0.RHS()[0] != g.UserStart() {
		t.Errorf("expected rule 0 to be S' ➞ S, is %v", r0)
	}
	if g.UserStart().Name != "S" {
		t.Errorf("expected user start symbol S, is %v", g.UserStart())
	}
	if r := g.Rule(2).String(); r != "E ➞ E + T" {
		t.Errorf("expected rule 2 to be 'E ➞ E + T', is %q", r)
	}
	if g.Rule(8) != nil || g.Rule(-1) != nil {
		t.Errorf("expected out-of-range rules to be nil")
	}
}

func TestGrammarSymbols(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lrzero.lr")
	defer teardown()
	//
	g := makeExprGrammar(t)
	var names []string
	for _, A := range g.Terminals() {
		names = append(names, A.Name)
		if !A.IsTerminal() {
			t.Errorf("expected %v to be a terminal", A)
		}
	}
	if strings.Join(names, " ") != "+ * ( ) id #eof" {
		t.Errorf("unexpected terminals %v", names)
	}
	names = names[:0]
	for _, A := range g.NonTerminals() {
		names = append(names, A.Name)
	}
	if strings.Join(names, " ") != "S' S E T F" {
		t.Errorf("unexpected non-terminals %v", names)
	}
	if g.SymbolCount() != 11 {
		t.Errorf("expected 11 symbols, have %d", g.SymbolCount())
	}
	seen := make(map[int]bool)
	g.EachSymbol(func(A *Symbol) interface{} {
		if seen[A.Value] {
			t.Errorf("symbol value %d of %v is not unique", A.Value, A)
		}
		seen[A.Value] = true
		return nil
	})
	if g.SymbolByName("E") != g.Rule(2).LHS {
		t.Errorf("expected symbols to be interned")
	}
	if g.Terminal("E") != nil || g.Terminal("id") == nil {
		t.Errorf("Terminal() should only find terminals")
	}
	if g.TerminalByValue(g.EOF().Value) != g.EOF() {
		t.Errorf("expected to find #eof by value")
	}
}

func TestProductionsWithHead(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lrzero.lr")
	defer teardown()
	//
	g := makeExprGrammar(t)
	rules := g.FindNonTermRules(g.SymbolByName("T"))
	if len(rules) != 2 || rules[0].Serial != 4 || rules[1].Serial != 5 {
		t.Errorf("expected rules 4 and 5 for T, have %v", rules)
	}
	if len(g.FindNonTermRules(g.SymbolByName("id"))) != 0 {
		t.Errorf("terminals must not have rules")
	}
}

func TestEpsilonRule(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lrzero.lr")
	defer teardown()
	//
	b := NewGrammarBuilder("Eps")
	b.LHS("S").N("A").T("a").End()
	b.LHS("A").Epsilon()
	g, err := b.Grammar()
	if err != nil {
		t.Fatal(err)
	}
	if !g.Rule(2).IsEps() || g.Rule(2).String() != "A ➞ ε" {
		t.Errorf("expected rule 2 to be an epsilon rule, is %v", g.Rule(2))
	}
}

func TestUndefinedNonTerminal(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lrzero.lr")
	defer teardown()
	//
	b := NewGrammarBuilder("Undef")
	b.LHS("S").N("A").N("B").End()
	b.LHS("A").T("a").End()
	_, err := b.Grammar()
	if !errors.Is(err, ErrUndefinedNonTerminal) {
		t.Fatalf("expected undefined non-terminal error, got %v", err)
	}
	var gerr *GrammarError
	if !errors.As(err, &gerr) || len(gerr.Symbols) != 1 || gerr.Symbols[0] != "B" {
		t.Errorf("expected error to name B, got %v", err)
	}
}

func TestNameCollisions(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lrzero.lr")
	defer teardown()
	//
	b := NewGrammarBuilder("Prime")
	b.LHS("S").N("S'").End()
	b.LHS("S'").T("x").End()
	if _, err := b.Grammar(); !errors.Is(err, ErrNameCollision) {
		t.Errorf("expected collision for S', got %v", err)
	}
	b = NewGrammarBuilder("Kinds")
	b.LHS("S").T("A").End()
	b.LHS("A").T("x").End()
	if _, err := b.Grammar(); !errors.Is(err, ErrNameCollision) {
		t.Errorf("expected collision for A used as terminal and non-terminal, got %v", err)
	}
	b = NewGrammarBuilder("EOF")
	b.LHS("S").T(EOFName).End()
	if _, err := b.Grammar(); !errors.Is(err, ErrNameCollision) {
		t.Errorf("expected collision for %s, got %v", EOFName, err)
	}
	if _, err := NewGrammarBuilder("Empty").Grammar(); !errors.Is(err, ErrEmptyGrammar) {
		t.Errorf("expected empty grammar error, got %v", err)
	}
}

func TestReadGrammar(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lrzero.lr")
	defer teardown()
	//
	literal := `
# expression grammar
S -> E
E -> E + T | T
T -> T * F | F
F -> ( E ) | id
`
	g, err := ReadGrammar("Expr", strings.NewReader(literal))
	if err != nil {
		t.Fatal(err)
	}
	if g.String() != makeExprGrammar(t).String() {
		t.Errorf("expected literal to match builder grammar, have\n%s", g)
	}
	g, err = ReadGrammar("Eps", strings.NewReader("S -> A a\nA -> b | ε\n"))
	if err != nil {
		t.Fatal(err)
	}
	if g.Size() != 4 || !g.Rule(3).IsEps() {
		t.Errorf("expected A ➞ ε as rule 3, have\n%s", g)
	}
	if _, err = ReadGrammar("Bad", strings.NewReader("S E\n")); err == nil {
		t.Errorf("expected error for missing arrow")
	}
}
