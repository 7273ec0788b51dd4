/*
Package scanner defines an interface for scanners to be used with parsers of package lr.

Two default scanner implementations are provided: (1) a thin wrapper over the Go std lib
'text/scanner', and (2) an adapter for lexmachine, living in sub-package `lexmach`.

Parsers of package lr0 consume terminal names. TerminalNames reads a token stream
up to EOF and maps every token to a terminal of a grammar.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package scanner

import (
	"fmt"
	"io"
	"text/scanner"

	"github.com/npillmayer/lrzero"
	"github.com/npillmayer/lrzero/lr"
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'lrzero.scanner'.
func tracer() tracing.Trace {
	return tracing.Select("lrzero.scanner")
}

// EOF is identical to text/scanner.EOF.
// Token types are replicated here for practical reasons.
const (
	EOF       = scanner.EOF
	Ident     = scanner.Ident
	Int       = scanner.Int
	Float     = scanner.Float
	Char      = scanner.Char
	String    = scanner.String
	RawString = scanner.RawString
	Comment   = scanner.Comment
)

// Tokenizer is a scanner interface.
type Tokenizer interface {
	NextToken() lrzero.Token
	SetErrorHandler(func(error))
}

// DefaultTokenizer is a default implementation, backed by scanner.Scanner.
// Create one with GoTokenizer.
type DefaultTokenizer struct {
	scanner.Scanner
	lastToken    rune        // last token this scanner has produced
	Error        func(error) // error handler
	unifyStrings bool        // convert single chars to strings
}

var _ Tokenizer = (*DefaultTokenizer)(nil)

// Default error reporting function for scanners
func logError(e error) {
	tracer().Errorf("scanner error: " + e.Error())
}

// GoTokenizer creates a scanner/tokenizer accepting tokens similar to the Go language.
func GoTokenizer(sourceID string, input io.Reader, opts ...Option) *DefaultTokenizer {
	t := &DefaultTokenizer{}
	t.Error = logError
	t.Init(input)
	t.Filename = sourceID
	t.Scanner.Error = func(s *scanner.Scanner, msg string) {
		t.Error(fmt.Errorf("%s: %s", s.Position, msg))
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// SetErrorHandler sets an error handler for the scanner.
func (t *DefaultTokenizer) SetErrorHandler(h func(error)) {
	if h == nil {
		t.Error = logError
		return
	}
	t.Error = h
}

// NextToken is part of the Tokenizer interface.
func (t *DefaultTokenizer) NextToken() lrzero.Token {
	t.lastToken = t.Scan()
	if t.lastToken == scanner.EOF {
		tracer().Debugf("DefaultTokenizer reached end of input")
	}
	if t.unifyStrings &&
		(t.lastToken == scanner.RawString || t.lastToken == scanner.Char) {
		t.lastToken = scanner.String
	}
	return DefaultToken{
		kind:   lrzero.TokType(t.lastToken),
		lexeme: t.TokenText(),
		span:   lrzero.Span{uint64(t.Position.Offset), uint64(t.Pos().Offset)},
	}
}

// --- Default tokens --------------------------------------------------------

// DefaultToken is a very unsophisticated token type, used as default for the Go
// tokenizer as well as the LexMachine scanner.
type DefaultToken struct {
	kind   lrzero.TokType
	lexeme string
	Val    interface{}
	span   lrzero.Span
}

// MakeDefaultToken creates a token.
func MakeDefaultToken(typ lrzero.TokType, lexeme string, span lrzero.Span) DefaultToken {
	return DefaultToken{
		kind:   typ,
		lexeme: lexeme,
		span:   span,
	}
}

// TokType is part of interface lrzero.Token.
func (t DefaultToken) TokType() lrzero.TokType {
	return t.kind
}

// Value returns an optional value attached to the token.
func (t DefaultToken) Value() interface{} {
	return t.Val
}

// Lexeme is part of interface lrzero.Token.
func (t DefaultToken) Lexeme() string {
	return t.lexeme
}

// Span is part of interface lrzero.Token.
func (t DefaultToken) Span() lrzero.Span {
	return t.span
}

func (t DefaultToken) String() string {
	return fmt.Sprintf("<%d|%q %v>", t.kind, t.lexeme, t.span)
}

// --- Scanner options for the default (Go) tokenizer ---------------------------

// Option configures a default tokenier.
type Option func(p *DefaultTokenizer)

// SkipComments sets or clears mode-flag SkipComments.
func SkipComments(b bool) Option {
	return func(t *DefaultTokenizer) {
		if b {
			t.Mode |= scanner.SkipComments
		} else {
			t.Mode &^= scanner.SkipComments
		}
	}
}

// UnifyStrings sets or clears option UnifyStrings:
// treat raw strings and single chars as strings.
func UnifyStrings(b bool) Option {
	return func(t *DefaultTokenizer) {
		t.unifyStrings = b
	}
}

// --- Mapping tokens to terminals -------------------------------------------

// TokenClasses maps token types of whole token classes to the terminal names a
// grammar uses for them. A grammar with a terminal "id" accepts any identifier
// for it.
var TokenClasses = map[lrzero.TokType]string{
	Ident:  "id",
	Int:    "number",
	Float:  "number",
	String: "string",
}

// Terminal maps a token to a terminal of g. If the lexeme of the token is the
// name of a terminal, this terminal is returned. Otherwise the token's type is
// looked up in TokenClasses. Returns nil if the token does not match a terminal.
func Terminal(tok lrzero.Token, g *lr.Grammar) *lr.Symbol {
	if a := g.Terminal(tok.Lexeme()); a != nil && a != g.EOF() {
		return a
	}
	if name, ok := TokenClasses[tok.TokType()]; ok {
		return g.Terminal(name)
	}
	return nil
}

// TerminalNames reads tokens up to EOF and maps them to terminal names of g.
// An error is returned for the first token not matching a terminal.
func TerminalNames(tok Tokenizer, g *lr.Grammar) ([]string, error) {
	var names []string
	for token := tok.NextToken(); token.TokType() != EOF; token = tok.NextToken() {
		a := Terminal(token, g)
		if a == nil {
			return names, fmt.Errorf("token %q at %v is not a terminal of grammar %s",
				token.Lexeme(), token.Span(), g.Name)
		}
		tracer().Debugf("token %q ⇒ terminal %s", token.Lexeme(), a.Name)
		names = append(names, a.Name)
	}
	return names, nil
}
