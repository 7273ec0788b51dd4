package lr

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// ReadGrammar reads a grammar literal. Every line contains the rules for one
// non-terminal, alternatives separated by '|':
//
//    # expression grammar
//    S -> E
//    E -> E + T | T
//    T -> T * F | F
//    F -> ( E ) | id
//
// Symbols are separated by white space. Every symbol which appears as the head
// of a rule is a non-terminal; all other symbols are terminals. An empty
// alternative or 'ε' denotes an epsilon-production. The head of the first
// line is the start symbol. Lines starting with '#' are ignored.
func ReadGrammar(name string, r io.Reader) (*Grammar, error) {
	type line struct {
		lhs  string
		alts [][]string
	}
	var lines []line
	heads := make(map[string]bool)
	scanner := bufio.NewScanner(r)
	lineno := 0
	for scanner.Scan() {
		lineno++
		text := strings.TrimSpace(scanner.Text())
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}
		parts := strings.SplitN(text, "->", 2)
		if len(parts) != 2 {
			parts = strings.SplitN(text, "➞", 2)
		}
		if len(parts) != 2 {
			return nil, fmt.Errorf("grammar %s, line %d: missing '->'", name, lineno)
		}
		lhs := strings.TrimSpace(parts[0])
		if lhs == "" || len(strings.Fields(lhs)) != 1 {
			return nil, fmt.Errorf("grammar %s, line %d: malformed head %q", name, lineno, lhs)
		}
		l := line{lhs: lhs}
		for _, alt := range strings.Split(parts[1], "|") {
			syms := strings.Fields(alt)
			if len(syms) == 1 && (syms[0] == "ε" || syms[0] == "eps") {
				syms = nil
			}
			l.alts = append(l.alts, syms)
		}
		heads[lhs] = true
		lines = append(lines, l)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("grammar %s: %w", name, err)
	}
	b := NewGrammarBuilder(name)
	for _, l := range lines {
		for _, alt := range l.alts {
			rb := b.LHS(l.lhs)
			if len(alt) == 0 {
				rb.Epsilon()
				continue
			}
			for _, sym := range alt {
				if heads[sym] {
					rb.N(sym)
				} else {
					rb.T(sym)
				}
			}
			rb.End()
		}
	}
	return b.Grammar()
}
