/*
Package lr implements grammars, LR(0) items and LR(0) parser tables.

Building a Grammar

Grammars are specified using a grammar builder object. Clients add
rules, consisting of non-terminal symbols and terminals. Grammars may
contain epsilon-productions.

Example:

    b := lr.NewGrammarBuilder("G")
    b.LHS("S").N("E").End()                  // S  ➞  E
    b.LHS("E").N("E").T("+").N("T").End()    // E  ➞  E + T
    b.LHS("E").N("T").End()                  // E  ➞  T
    b.LHS("T").T("id").End()                 // T  ➞  id
    g, err := b.Grammar()

The builder augments the grammar with a fresh start rule, which always
has serial number 0:

   fmt.Print(g)

     0: S' ➞ S
     1: S ➞ E
     2: E ➞ E + T
     3: E ➞ T
     4: T ➞ id

Grammars may as well be read from a textual literal, see ReadGrammar.

Parser Construction

A bottom-up parser is constructed from the grammar.
First a characteristic finite state machine (CFSM) is built from the
grammar, i.e. the canonical collection of LR(0) item sets. The CFSM will then
be transformed into a GOTO table and an ACTION table. The CFSM will not be
thrown away, but is made available to the client. This is intended
for debugging purposes. It can be exported to Graphviz's Dot-format.

Example:

    lrgen := lr.NewTableGenerator(g)  // g is a Grammar, see above
    lrgen.CreateTables()              // construct LR(0) parser tables
    if lrgen.HasConflicts {
        for _, c := range lrgen.Conflicts() { … }
    }

Reduce entries of LR(0) tables do not depend on lookahead: a completed item
produces a reduce entry for every terminal. Shift/reduce- and reduce/reduce-
conflicts are not resolved, but collected and reported to the client.

___________________________________________________________________________

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package lr

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'lrzero.lr'.
func tracer() tracing.Trace {
	return tracing.Select("lrzero.lr")
}
