package lr

import (
	"errors"
	"fmt"
	"strings"
)

// Errors reported during grammar construction. They are wrapped into a
// *GrammarError, use errors.Is to test for them.
var (
	ErrUndefinedNonTerminal = errors.New("undefined non-terminal")
	ErrNameCollision        = errors.New("symbol name collision")
	ErrEmptyGrammar         = errors.New("grammar has no rules")
)

// GrammarError is an error found during construction of a grammar.
// Grammar errors are reported before any table construction takes place.
type GrammarError struct {
	Grammar string   // name of the grammar
	Symbols []string // offending symbols
	Cause   error
}

func (e *GrammarError) Error() string {
	if len(e.Symbols) == 0 {
		return fmt.Sprintf("grammar %s: %v", e.Grammar, e.Cause)
	}
	return fmt.Sprintf("grammar %s: %v: %s", e.Grammar, e.Cause, strings.Join(e.Symbols, ", "))
}

func (e *GrammarError) Unwrap() error {
	return e.Cause
}

func grammarError(g string, cause error, symbols ...string) *GrammarError {
	return &GrammarError{Grammar: g, Cause: cause, Symbols: symbols}
}
