package lr0

import (
	"bytes"
	"fmt"

	"github.com/npillmayer/lrzero"
	"github.com/npillmayer/lrzero/lr"
)

// Node is a node of a parse tree. Leaves carry terminals, inner nodes carry the
// rule which has been reduced.
type Node struct {
	Symbol   *lr.Symbol
	Rule     *lr.Rule // nil for leaves
	Children []*Node
	Span     lrzero.Span // input positions covered, end exclusive
}

// IsLeaf is true for nodes of terminals.
func (n *Node) IsLeaf() bool {
	return n.Rule == nil
}

// Leaves returns the terminal names of the leaves of the tree, left to right.
func (n *Node) Leaves() []string {
	var leaves []string
	n.Walk(func(node *Node, level int) {
		if node.IsLeaf() {
			leaves = append(leaves, node.Symbol.Name)
		}
	})
	return leaves
}

// Walk visits the nodes of a tree in pre-order.
func (n *Node) Walk(f func(node *Node, level int)) {
	n.walk(f, 0)
}

func (n *Node) walk(f func(*Node, int), level int) {
	f(n, level)
	for _, ch := range n.Children {
		ch.walk(f, level+1)
	}
}

// String renders a tree as a nested term, e.g. "S(E(T(F(id))))".
func (n *Node) String() string {
	var b bytes.Buffer
	n.write(&b)
	return b.String()
}

func (n *Node) write(b *bytes.Buffer) {
	b.WriteString(n.Symbol.Name)
	if n.IsLeaf() {
		return
	}
	b.WriteByte('(')
	for i, ch := range n.Children {
		if i > 0 {
			b.WriteByte(' ')
		}
		ch.write(b)
	}
	b.WriteByte(')')
}

// BuildTree replays the shift and reduce steps of an accepted trace and
// constructs the parse tree. The root of the tree is the start symbol of the
// grammar, not the augmented start symbol.
func BuildTree(g *lr.Grammar, trace Trace) (*Node, error) {
	if !trace.Accepted() {
		return nil, fmt.Errorf("cannot build parse tree: input has not been accepted")
	}
	var stack []*Node
	for _, step := range trace {
		switch step.Action.Kind {
		case lr.ShiftAction:
			a := g.Terminal(step.Input[0])
			if a == nil {
				return nil, fmt.Errorf("cannot build parse tree: unknown terminal %q", step.Input[0])
			}
			pos := uint64(step.Position)
			stack = append(stack, &Node{Symbol: a, Span: lrzero.Span{pos, pos + 1}})
		case lr.ReduceAction:
			rule := g.Rule(step.Action.Rule)
			if rule == nil || rule.Len() > len(stack) {
				return nil, fmt.Errorf("cannot build parse tree: inconsistent reduce in step %v", step)
			}
			handle := stack[len(stack)-rule.Len():]
			node := &Node{
				Symbol:   rule.LHS,
				Rule:     rule,
				Children: append([]*Node(nil), handle...),
			}
			for _, ch := range handle {
				node.Span = node.Span.Extend(ch.Span)
			}
			if rule.IsEps() { // epsilon was just before lookahead
				pos := uint64(step.Position)
				node.Span = lrzero.Span{pos, pos}
			}
			tracer().Debugf("tree: %s covers %v", node.Symbol, node.Span)
			stack = append(stack[:len(stack)-rule.Len()], node)
		}
	}
	if len(stack) != 1 {
		return nil, fmt.Errorf("cannot build parse tree: %d nodes left after accept", len(stack))
	}
	return stack[0], nil
}
