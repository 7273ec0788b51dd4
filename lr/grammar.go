package lr

import (
	"bytes"
	"fmt"

	"github.com/npillmayer/lrzero"
)

// EOFName is the name of the end-of-input marker. It is a terminal of every grammar
// and is not allowed as a user symbol.
const EOFName = "#eof"

// === Symbols ===============================================================

// SymbolKind tells terminals from non-terminals.
type SymbolKind uint8

// Kinds of grammar symbols.
const (
	TerminalKind SymbolKind = iota
	NonTerminalKind
)

func (k SymbolKind) String() string {
	if k == TerminalKind {
		return "terminal"
	}
	return "non-terminal"
}

// Symbol is a grammar symbol, either a terminal or a non-terminal.
// Symbols are interned per grammar: every name maps to exactly one *Symbol,
// thus symbols of the same grammar may be compared by pointer.
type Symbol struct {
	Name  string     // name of the symbol, unique within a grammar
	Value int        // serial value, used as table column and token type
	kind  SymbolKind // terminal or non-terminal
}

// IsTerminal returns true if this symbol is a terminal.
func (A *Symbol) IsTerminal() bool {
	return A.kind == TerminalKind
}

// Kind returns the kind of a symbol.
func (A *Symbol) Kind() SymbolKind {
	return A.kind
}

// TokenType returns the token type scanners will produce for a terminal.
func (A *Symbol) TokenType() lrzero.TokType {
	return lrzero.TokType(A.Value)
}

func (A *Symbol) String() string {
	return A.Name
}

// === Rules =================================================================

// Rule is a production of a grammar, i.e. a non-terminal LHS and a (possibly empty)
// sequence of symbols on the RHS.
type Rule struct {
	Serial int     // stable index of the rule within its grammar
	LHS    *Symbol // head of the production
	rhs    []*Symbol
}

// RHS returns the right hand side of a rule. Clients must not modify it.
func (r *Rule) RHS() []*Symbol {
	return r.rhs
}

// Len returns the number of symbols of the RHS.
func (r *Rule) Len() int {
	return len(r.rhs)
}

// IsEps returns true for an epsilon-production.
func (r *Rule) IsEps() bool {
	return len(r.rhs) == 0
}

func (r *Rule) String() string {
	var b bytes.Buffer
	b.WriteString(r.LHS.Name)
	b.WriteString(" ➞")
	if r.IsEps() {
		b.WriteString(" ε")
	}
	for _, A := range r.rhs {
		b.WriteByte(' ')
		b.WriteString(A.Name)
	}
	return b.String()
}

// === Grammars ==============================================================

// Grammar is a type for an augmented context-free grammar. Create one with a
// GrammarBuilder. Grammars are immutable after construction.
type Grammar struct {
	Name         string
	rules        []*Rule
	terminals    []*Symbol // in order of declaration, #eof last
	nonterminals []*Symbol // in order of declaration, augmented start first
	symbols      map[string]*Symbol
	byLHS        map[*Symbol][]*Rule
	start        *Symbol // augmented start symbol S'
	userStart    *Symbol // start symbol as given by the user
	eof          *Symbol
}

// Rule returns rule no. i, or nil.
func (g *Grammar) Rule(i int) *Rule {
	if i < 0 || i >= len(g.rules) {
		return nil
	}
	return g.rules[i]
}

// Size returns the number of rules, including the augmented start rule.
func (g *Grammar) Size() int {
	return len(g.rules)
}

// Start returns the augmented start symbol.
func (g *Grammar) Start() *Symbol {
	return g.start
}

// UserStart returns the start symbol of the un-augmented grammar.
func (g *Grammar) UserStart() *Symbol {
	return g.userStart
}

// EOF returns the end-of-input terminal.
func (g *Grammar) EOF() *Symbol {
	return g.eof
}

// Terminals returns the terminals of the grammar, #eof being last.
func (g *Grammar) Terminals() []*Symbol {
	return append([]*Symbol(nil), g.terminals...)
}

// NonTerminals returns the non-terminals of the grammar, the augmented start
// symbol being first.
func (g *Grammar) NonTerminals() []*Symbol {
	return append([]*Symbol(nil), g.nonterminals...)
}

// SymbolCount is the number of all symbols, i.e. terminals and non-terminals.
func (g *Grammar) SymbolCount() int {
	return len(g.symbols)
}

// SymbolByName returns the symbol for a name, or nil.
func (g *Grammar) SymbolByName(name string) *Symbol {
	return g.symbols[name]
}

// Terminal returns the terminal for a name, or nil if there is no terminal of
// that name.
func (g *Grammar) Terminal(name string) *Symbol {
	if A := g.symbols[name]; A != nil && A.IsTerminal() {
		return A
	}
	return nil
}

// TerminalByValue returns the terminal with a given serial value, or nil.
func (g *Grammar) TerminalByValue(v int) *Symbol {
	for _, A := range g.terminals {
		if A.Value == v {
			return A
		}
	}
	return nil
}

// FindNonTermRules returns all rules with LHS N, ordered by serial.
func (g *Grammar) FindNonTermRules(N *Symbol) []*Rule {
	return g.byLHS[N]
}

// EachSymbol iterates over all symbols of the grammar, terminals first.
// Iteration stops if f returns a non-nil value, which is then returned.
func (g *Grammar) EachSymbol(f func(A *Symbol) interface{}) interface{} {
	if r := g.EachTerminal(f); r != nil {
		return r
	}
	return g.EachNonTerminal(f)
}

// EachTerminal iterates over all terminals of the grammar, #eof last.
func (g *Grammar) EachTerminal(f func(A *Symbol) interface{}) interface{} {
	for _, A := range g.terminals {
		if r := f(A); r != nil {
			return r
		}
	}
	return nil
}

// EachNonTerminal iterates over all non-terminals of the grammar.
func (g *Grammar) EachNonTerminal(f func(A *Symbol) interface{}) interface{} {
	for _, A := range g.nonterminals {
		if r := f(A); r != nil {
			return r
		}
	}
	return nil
}

// Dump is a debugging helper, writing the rules to the tracer.
func (g *Grammar) Dump() {
	tracer().Debugf("--- %s --------------------------------------------", g.Name)
	for _, r := range g.rules {
		tracer().Debugf("%3d: %s", r.Serial, r)
	}
	tracer().Debugf("-------------------------------------------------------")
}

func (g *Grammar) String() string {
	var b bytes.Buffer
	for _, r := range g.rules {
		b.WriteString(fmt.Sprintf("%3d: %s\n", r.Serial, r))
	}
	return b.String()
}
