package lr

import (
	"bytes"
	"fmt"

	"github.com/cnf/structhash"
	"github.com/emirpasic/gods/sets/treeset"
	"github.com/emirpasic/gods/utils"
)

// === Items =================================================================

// Item is an LR(0) item, i.e. a rule with a dot marking how much of the
// rule's RHS has already been recognized.
//
//    E ➞ E + T
//
//    Dot | Item
//    ----+-------------
//    0   | E ➞ • E + T
//    1   | E ➞ E • + T
//    2   | E ➞ E + • T
//    3   | E ➞ E + T •
//
// Items are values; two items are equal if they have the same rule and dot.
type Item struct {
	rule *Rule
	dot  int
}

// StartItem returns the item with the dot before the first RHS symbol of a rule,
// together with this symbol.
func StartItem(r *Rule) (Item, *Symbol) {
	i := Item{rule: r, dot: 0}
	return i, i.PeekSymbol()
}

// Rule returns the rule of an item.
func (i Item) Rule() *Rule {
	return i.rule
}

// Dot returns the dot position of an item.
func (i Item) Dot() int {
	return i.dot
}

// PeekSymbol returns the symbol after the dot, or nil for a completed item.
func (i Item) PeekSymbol() *Symbol {
	if i.dot >= len(i.rule.rhs) {
		return nil
	}
	return i.rule.rhs[i.dot]
}

// IsComplete is true if the dot is behind the last RHS symbol.
func (i Item) IsComplete() bool {
	return i.dot == len(i.rule.rhs)
}

// Advance returns a new item with the dot moved one symbol to the right.
// Advancing a completed item returns the item unchanged.
func (i Item) Advance() Item {
	if i.IsComplete() {
		return i
	}
	return Item{rule: i.rule, dot: i.dot + 1}
}

// Prefix returns the RHS symbols before the dot.
func (i Item) Prefix() []*Symbol {
	return i.rule.rhs[:i.dot]
}

func (i Item) String() string {
	var b bytes.Buffer
	b.WriteString(i.rule.LHS.Name)
	b.WriteString(" ➞")
	for n, A := range i.rule.rhs {
		if n == i.dot {
			b.WriteString(" •")
		}
		b.WriteByte(' ')
		b.WriteString(A.Name)
	}
	if i.IsComplete() {
		b.WriteString(" •")
	}
	return b.String()
}

// itemComparator orders items by rule serial, then by dot position.
func itemComparator(a, b interface{}) int {
	i1 := a.(Item)
	i2 := b.(Item)
	if c := utils.IntComparator(i1.rule.Serial, i2.rule.Serial); c != 0 {
		return c
	}
	return utils.IntComparator(i1.dot, i2.dot)
}

// === Item Sets =============================================================

// ItemSet is a set of LR(0) items. Items are kept in canonical order (by rule
// serial, then by dot), which makes equality of item sets structural.
type ItemSet struct {
	items *treeset.Set
}

// NewItemSet creates an item set containing items.
func NewItemSet(items ...Item) *ItemSet {
	S := &ItemSet{items: treeset.NewWith(itemComparator)}
	for _, i := range items {
		S.items.Add(i)
	}
	return S
}

// Add adds an item, returning true if it has not been present before.
func (S *ItemSet) Add(i Item) bool {
	if S.items.Contains(i) {
		return false
	}
	S.items.Add(i)
	return true
}

// Contains checks if an item is contained in S.
func (S *ItemSet) Contains(i Item) bool {
	return S.items.Contains(i)
}

// Size returns the number of items in S.
func (S *ItemSet) Size() int {
	return S.items.Size()
}

// Empty is true for an item set without items.
func (S *ItemSet) Empty() bool {
	return S.items.Empty()
}

// Items returns the items of S in canonical order.
func (S *ItemSet) Items() []Item {
	vals := S.items.Values()
	items := make([]Item, len(vals))
	for n, x := range vals {
		items[n] = x.(Item)
	}
	return items
}

// Copy returns a copy of S.
func (S *ItemSet) Copy() *ItemSet {
	return NewItemSet(S.Items()...)
}

// Equals compares two item sets by content.
func (S *ItemSet) Equals(other *ItemSet) bool {
	if S.Size() != other.Size() {
		return false
	}
	it1, it2 := S.items.Iterator(), other.items.Iterator()
	for it1.Next() && it2.Next() {
		if itemComparator(it1.Value(), it2.Value()) != 0 {
			return false
		}
	}
	return true
}

// itemKey is the hashable representation of an item.
type itemKey struct {
	Rule int
	Dot  int
}

// Key returns a digest of the canonical item list of S. Equal item sets have
// equal keys.
func (S *ItemSet) Key() string {
	keys := make([]itemKey, 0, S.Size())
	for _, i := range S.Items() {
		keys = append(keys, itemKey{Rule: i.rule.Serial, Dot: i.dot})
	}
	h, err := structhash.Hash(keys, 1)
	if err != nil { // cannot happen for slices of ints
		panic(fmt.Sprintf("cannot hash item set: %v", err))
	}
	return h
}

// Dump is a debugging helper
func (S *ItemSet) Dump() {
	for _, i := range S.Items() {
		tracer().Debugf("    %s", i)
	}
}

// String renders S as a multi-line list of items.
func (S *ItemSet) String() string {
	var b bytes.Buffer
	for _, i := range S.Items() {
		b.WriteString(i.String())
		b.WriteByte('\n')
	}
	return b.String()
}

func itemSetString(S *ItemSet) string {
	var b bytes.Buffer
	b.WriteString("{")
	for n, i := range S.Items() {
		if n == 0 {
			b.WriteString(" ")
		} else {
			b.WriteString(", ")
		}
		b.WriteString(i.String())
	}
	b.WriteString(" }")
	return b.String()
}

// === Closure and Goto-Set Operations =======================================

// Refer to "Crafting A Compiler" by Charles N. Fisher & Richard J. LeBlanc, Jr.
// Section 6.2.1 LR(0) Parsing

// Closure computes the closure of an item set: for every item with a
// non-terminal N after the dot, items N ➞ • α are added for all rules of N,
// until no new items appear. S is not modified.
func Closure(g *Grammar, S *ItemSet) *ItemSet {
	C := S.Copy()
	worklist := S.Items()
	for len(worklist) > 0 {
		item := worklist[0]
		worklist = worklist[1:]
		A := item.PeekSymbol()
		if A == nil || A.IsTerminal() {
			continue
		}
		for _, r := range g.FindNonTermRules(A) {
			i, _ := StartItem(r)
			if C.Add(i) {
				worklist = append(worklist, i)
			}
		}
	}
	return C
}

// Goto computes the closure of the set of items of S advanced over A.
// For every item in S of the form N ➞ … • A …, N ➞ … A • … is included.
// If no item of S has A after its dot, the result is empty.
func Goto(g *Grammar, S *ItemSet, A *Symbol) *ItemSet {
	gotoset := NewItemSet()
	for _, i := range S.Items() {
		if i.PeekSymbol() == A {
			gotoset.Add(i.Advance())
		}
	}
	if gotoset.Empty() {
		return gotoset
	}
	gclosure := Closure(g, gotoset)
	tracer().Debugf("goto(%s) --%s--> %s", itemSetString(S), A, itemSetString(gclosure))
	return gclosure
}
