package lr

import (
	"fmt"
	"io"
	"strings"

	"github.com/emirpasic/gods/lists/arraylist"
	"github.com/emirpasic/gods/sets/treeset"
	"github.com/emirpasic/gods/utils"
)

// === CFSM Construction =====================================================

// CFSMState is a state within the CFSM for a grammar.
type CFSMState struct {
	ID     uint                   // serial ID of this state
	items  *ItemSet               // configuration items within this state
	next   map[*Symbol]*CFSMState // transitions
	Accept bool                   // is this an accepting state?
}

// CFSM edge between 2 states, directed and with a grammar symbol
type cfsmEdge struct {
	from  *CFSMState
	to    *CFSMState
	label *Symbol
}

// Edge is a transition of the CFSM, as seen by clients.
type Edge struct {
	From, To uint
	Label    *Symbol
}

// Items returns the item set of a state. Clients must not modify it.
func (s *CFSMState) Items() *ItemSet {
	return s.items
}

// Dump is a debugging helper
func (s *CFSMState) Dump() {
	tracer().Debugf("--- state %03d -----------", s.ID)
	s.items.Dump()
	tracer().Debugf("-------------------------")
}

// Create a state from an item set
func state(id uint, iset *ItemSet) *CFSMState {
	s := &CFSMState{ID: id, next: make(map[*Symbol]*CFSMState)}
	if iset == nil {
		s.items = NewItemSet()
	} else {
		s.items = iset
	}
	return s
}

func (s *CFSMState) String() string {
	return fmt.Sprintf("(state %d | [%d])", s.ID, s.items.Size())
}

func (s *CFSMState) containsCompletedStartRule() bool {
	for _, i := range s.items.Items() {
		if i.rule.Serial == 0 && i.IsComplete() {
			return true
		}
	}
	return false
}

// symbolsAfterDot collects the symbols immediately after a dot, in order of
// the state's items, without duplicates.
func (s *CFSMState) symbolsAfterDot() []*Symbol {
	seen := make(map[*Symbol]bool)
	var syms []*Symbol
	for _, i := range s.items.Items() {
		if A := i.PeekSymbol(); A != nil && !seen[A] {
			seen[A] = true
			syms = append(syms, A)
		}
	}
	return syms
}

// Create an edge
func edge(from, to *CFSMState, label *Symbol) *cfsmEdge {
	return &cfsmEdge{
		from:  from,
		to:    to,
		label: label,
	}
}

// We need this for the worklist of states. It sorts states by serial ID.
func stateComparator(s1, s2 interface{}) int {
	c1 := s1.(*CFSMState)
	c2 := s2.(*CFSMState)
	return utils.IntComparator(int(c1.ID), int(c2.ID))
}

// CFSM is the characteristic finite state machine for a LR grammar, i.e. the
// LR(0) state diagram, also known as the canonical collection of LR(0) item sets.
// Will be constructed by a TableGenerator or by BuildCFSM.
// Clients normally do not use it directly. Nevertheless, there are some methods
// defined on it, e.g, for debugging purposes, or even to
// compute your own tables from it.
//
// A CFSM is immutable after construction.
type CFSM struct {
	g      *Grammar                // this CFSM is for Grammar g
	states *arraylist.List         // all the states, ordered by ID
	index  map[string][]*CFSMState // states by item set key
	edges  *arraylist.List         // all the edges between states
	S0     *CFSMState              // start state
}

// create an empty (initial) CFSM automata.
func emptyCFSM(g *Grammar) *CFSM {
	c := &CFSM{g: g}
	c.states = arraylist.New()
	c.index = make(map[string][]*CFSMState)
	c.edges = arraylist.New()
	return c
}

// Add a state to the CFSM. Checks first if state is present.
// Returns the state and true, if the state is new.
func (c *CFSM) addState(iset *ItemSet) (*CFSMState, bool) {
	if s := c.findStateByItems(iset); s != nil {
		return s, false
	}
	s := state(uint(c.states.Size()), iset)
	s.Accept = s.containsCompletedStartRule()
	c.states.Add(s)
	key := iset.Key()
	c.index[key] = append(c.index[key], s)
	return s, true
}

// Find a CFSM state by the contained item set.
func (c *CFSM) findStateByItems(iset *ItemSet) *CFSMState {
	for _, s := range c.index[iset.Key()] {
		if s.items.Equals(iset) {
			return s
		}
	}
	return nil
}

func (c *CFSM) addEdge(s0, s1 *CFSMState, sym *Symbol) *cfsmEdge {
	e := edge(s0, s1, sym)
	c.edges.Add(e)
	s0.next[sym] = s1
	return e
}

// Grammar returns the grammar this CFSM has been built for.
func (c *CFSM) Grammar() *Grammar {
	return c.g
}

// Size returns the number of states.
func (c *CFSM) Size() int {
	return c.states.Size()
}

// State returns state no. id, or nil.
func (c *CFSM) State(id uint) *CFSMState {
	x, ok := c.states.Get(int(id))
	if !ok {
		return nil
	}
	return x.(*CFSMState)
}

// States returns all states, ordered by ID.
func (c *CFSM) States() []*CFSMState {
	r := make([]*CFSMState, 0, c.states.Size())
	it := c.states.Iterator()
	for it.Next() {
		r = append(r, it.Value().(*CFSMState))
	}
	return r
}

// Transition returns the ID of the state reached from state id by symbol A.
func (c *CFSM) Transition(id uint, A *Symbol) (uint, bool) {
	s := c.State(id)
	if s == nil {
		return 0, false
	}
	if to, ok := s.next[A]; ok {
		return to.ID, true
	}
	return 0, false
}

// Edges returns all transitions in order of their construction.
func (c *CFSM) Edges() []Edge {
	r := make([]Edge, 0, c.edges.Size())
	it := c.edges.Iterator()
	for it.Next() {
		e := it.Value().(*cfsmEdge)
		r = append(r, Edge{From: e.from.ID, To: e.to.ID, Label: e.label})
	}
	return r
}

// AcceptingStates returns the IDs of all states containing the completed
// start rule S' ➞ S •.
func (c *CFSM) AcceptingStates() []uint {
	acc := make([]uint, 0, 1)
	for _, s := range c.States() {
		if s.Accept {
			acc = append(acc, s.ID)
		}
	}
	return acc
}

// BuildCFSM constructs the characteristic finite state machine CFSM for a grammar.
//
// State 0 is the closure of { S' ➞ • S }. States are processed in order of their
// IDs. For every state, goto-sets are computed for the symbols after the dots,
// taken in order of the state's items. A goto-set equal to an existing state
// is mapped to that state. State numbering is therefore deterministic.
func BuildCFSM(g *Grammar) *CFSM {
	tracer().Debugf("=== build CFSM ==================================================")
	cfsm := emptyCFSM(g)
	item, sym := StartItem(g.Rule(0))
	tracer().Debugf("Start item=%v/%v", item, sym)
	closure0 := Closure(g, NewItemSet(item))
	cfsm.S0, _ = cfsm.addState(closure0)
	cfsm.S0.Dump()
	S := treeset.NewWith(stateComparator)
	S.Add(cfsm.S0)
	for S.Size() > 0 {
		s := S.Values()[0].(*CFSMState)
		S.Remove(s)
		for _, A := range s.symbolsAfterDot() {
			tracer().Debugf("checking goto-set for symbol = %v", A)
			gotoset := Goto(g, s.items, A)
			if gotoset.Empty() {
				continue
			}
			snew, isNew := cfsm.addState(gotoset)
			if isNew {
				S.Add(snew)
				snew.Dump()
			}
			cfsm.addEdge(s, snew, A)
		}
		tracer().Debugf("-----------------------------------------------------------------")
	}
	tracer().Infof("CFSM for grammar %s has %d states", g.Name, cfsm.Size())
	return cfsm
}

// CFSM2GraphViz exports a CFSM to the Graphviz Dot format.
func (c *CFSM) CFSM2GraphViz(w io.Writer) error {
	var err error
	write := func(s string) {
		if err == nil {
			_, err = io.WriteString(w, s)
		}
	}
	write(`digraph {
graph [splines=true, fontname=Helvetica, fontsize=10];
node [shape=Mrecord, style=filled, fontname=Helvetica, fontsize=10];
edge [fontname=Helvetica, fontsize=10];

`)
	for _, s := range c.States() {
		write(fmt.Sprintf("s%03d [fillcolor=%s label=\"{%03d | %s}\"]\n",
			s.ID, nodecolor(s), s.ID, forGraphviz(s.items)))
	}
	for _, e := range c.Edges() {
		write(fmt.Sprintf("s%03d -> s%03d [label=\"%s\"]\n", e.From, e.To, escapeGraphviz(e.Label.Name)))
	}
	write("}\n")
	return err
}

func nodecolor(state *CFSMState) string {
	if state.Accept {
		return "lightgray"
	}
	return "white"
}

func forGraphviz(S *ItemSet) string {
	var b strings.Builder
	for n, i := range S.Items() {
		if n > 0 {
			b.WriteString("\\l")
		}
		b.WriteString(escapeGraphviz(i.String()))
	}
	b.WriteString("\\l")
	return b.String()
}

var graphvizEscaper = strings.NewReplacer(
	`"`, `\"`, `{`, `\{`, `}`, `\}`, `|`, `\|`, `<`, `\<`, `>`, `\>`,
)

func escapeGraphviz(s string) string {
	return graphvizEscaper.Replace(s)
}
