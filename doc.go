/*
Package lrzero is an LR(0) parser generator and driver.

Given a context-free grammar, lrzero builds the canonical collection of LR(0)
item sets, derives ACTION and GOTO tables from it, and drives a shift-reduce
automaton over a sequence of terminals, recording a trace of every step.
Package structure is as follows:

■ lr: Package lr implements grammars, LR(0) items, the characteristic finite
state machine (CFSM) and the parser tables.

■ lr/lr0: Package lr0 implements the shift-reduce parser driven by LR(0) tables.

■ lr/scanner: Package scanner defines the interface between scanners and parsers.
Sub-package lexmach derives a lexmachine lexer from the terminals of a grammar.

■ cmd/lr0: A command line tool to print item sets and tables of a grammar and
to trace parses, either one-shot or interactively.

The base package contains data types which are used throughout all the other packages.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package lrzero
