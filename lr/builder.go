package lr

import "sort"

// GrammarBuilder is a builder type for grammars. Clients create a builder,
// add rules and finally call Grammar():
//
//    b := lr.NewGrammarBuilder("G")
//    b.LHS("S").N("A").T("a").End()   // S ➞ A a
//    b.LHS("A").Epsilon()             // A ➞ ε
//    g, err := b.Grammar()
//
// The LHS of the first rule is the start symbol.
type GrammarBuilder struct {
	name  string
	rules []*ruleDraft
	decl  []symbolDecl // symbols in order of first appearance
	err   *GrammarError
}

type symbolDecl struct {
	name string
	kind SymbolKind
}

type ruleDraft struct {
	lhs string
	rhs []symbolDecl
}

// RuleBuilder collects the RHS of a single rule.
type RuleBuilder struct {
	gb    *GrammarBuilder
	draft *ruleDraft
}

// NewGrammarBuilder gets a new grammar builder, given the name of the grammar to build.
func NewGrammarBuilder(gname string) *GrammarBuilder {
	return &GrammarBuilder{name: gname}
}

// LHS starts a new rule with non-terminal name as its head.
func (gb *GrammarBuilder) LHS(name string) *RuleBuilder {
	gb.declare(name, NonTerminalKind)
	d := &ruleDraft{lhs: name}
	return &RuleBuilder{gb: gb, draft: d}
}

// N appends a non-terminal to the RHS of a rule.
func (rb *RuleBuilder) N(name string) *RuleBuilder {
	rb.gb.declare(name, NonTerminalKind)
	rb.draft.rhs = append(rb.draft.rhs, symbolDecl{name, NonTerminalKind})
	return rb
}

// T appends a terminal to the RHS of a rule.
func (rb *RuleBuilder) T(name string) *RuleBuilder {
	rb.gb.declare(name, TerminalKind)
	rb.draft.rhs = append(rb.draft.rhs, symbolDecl{name, TerminalKind})
	return rb
}

// End closes the rule and adds it to the grammar.
func (rb *RuleBuilder) End() {
	rb.gb.rules = append(rb.gb.rules, rb.draft)
}

// Epsilon closes the rule as an epsilon-production (any RHS symbols collected so
// far are dropped).
func (rb *RuleBuilder) Epsilon() {
	rb.draft.rhs = nil
	rb.End()
}

func (gb *GrammarBuilder) declare(name string, kind SymbolKind) {
	for _, d := range gb.decl {
		if d.name == name {
			if d.kind != kind && gb.err == nil {
				gb.err = grammarError(gb.name, ErrNameCollision, name)
			}
			return
		}
	}
	if name == EOFName && gb.err == nil {
		gb.err = grammarError(gb.name, ErrNameCollision, name)
	}
	gb.decl = append(gb.decl, symbolDecl{name, kind})
}

// Grammar returns the grammar, augmented by a new start rule S' ➞ S.
// It checks for undefined non-terminals and for name collisions.
func (gb *GrammarBuilder) Grammar() (*Grammar, error) {
	if gb.err != nil {
		return nil, gb.err
	}
	if len(gb.rules) == 0 {
		return nil, grammarError(gb.name, ErrEmptyGrammar)
	}
	heads := make(map[string]bool)
	for _, r := range gb.rules {
		heads[r.lhs] = true
	}
	var undefined []string
	for _, d := range gb.decl {
		if d.kind == NonTerminalKind && !heads[d.name] {
			undefined = append(undefined, d.name)
		}
	}
	if len(undefined) > 0 {
		sort.Strings(undefined)
		return nil, grammarError(gb.name, ErrUndefinedNonTerminal, undefined...)
	}
	return gb.augment()
}

// augment creates the grammar object, with rule 0 being S' ➞ S.
func (gb *GrammarBuilder) augment() (*Grammar, error) {
	start := gb.rules[0].lhs
	startPrime := start + "'"
	for _, d := range gb.decl {
		if d.name == startPrime {
			return nil, grammarError(gb.name, ErrNameCollision, startPrime)
		}
	}
	g := &Grammar{
		Name:    gb.name,
		symbols: make(map[string]*Symbol, len(gb.decl)+2),
		byLHS:   make(map[*Symbol][]*Rule),
	}
	value := 0
	for _, d := range gb.decl {
		if d.kind == TerminalKind {
			A := &Symbol{Name: d.name, Value: value, kind: TerminalKind}
			g.terminals = append(g.terminals, A)
			g.symbols[d.name] = A
			value++
		}
	}
	g.eof = &Symbol{Name: EOFName, Value: value, kind: TerminalKind}
	g.terminals = append(g.terminals, g.eof)
	g.symbols[EOFName] = g.eof
	value++
	g.start = &Symbol{Name: startPrime, Value: value, kind: NonTerminalKind}
	g.nonterminals = append(g.nonterminals, g.start)
	g.symbols[startPrime] = g.start
	value++
	for _, d := range gb.decl {
		if d.kind == NonTerminalKind {
			A := &Symbol{Name: d.name, Value: value, kind: NonTerminalKind}
			g.nonterminals = append(g.nonterminals, A)
			g.symbols[d.name] = A
			value++
		}
	}
	g.userStart = g.symbols[start]
	g.addRule(g.start, []*Symbol{g.userStart})
	for _, d := range gb.rules {
		rhs := make([]*Symbol, len(d.rhs))
		for i, s := range d.rhs {
			rhs[i] = g.symbols[s.name]
		}
		g.addRule(g.symbols[d.lhs], rhs)
	}
	g.Dump()
	return g, nil
}

func (g *Grammar) addRule(lhs *Symbol, rhs []*Symbol) {
	r := &Rule{Serial: len(g.rules), LHS: lhs, rhs: rhs}
	g.rules = append(g.rules, r)
	g.byLHS[lhs] = append(g.byLHS[lhs], r)
}
