package lexmach

import (
	"strings"
	"unicode"

	"github.com/npillmayer/lrzero"
	"github.com/npillmayer/lrzero/lr"
	"github.com/npillmayer/lrzero/lr/scanner"
	"github.com/npillmayer/schuko/tracing"

	"github.com/timtadh/lexmachine"
	"github.com/timtadh/lexmachine/machines"
)

// lexmachine adapter

// tracer traces with key 'lrzero.scanner'.
func tracer() tracing.Trace {
	return tracing.Select("lrzero.scanner")
}

// LMAdapter is a lexmachine adapter to use lexmachine as a scanner.
type LMAdapter struct {
	Lexer *lexmachine.Lexer
}

// NewLMAdapter creates a new lexmachine adapter. It receives a list of
// literals ('[', ';', …), a list of keywords ("if", "for", …) and a
// map for translating token strings to their values.
//
// NewLMAdapter will return an error if compiling the DFA failed.
func NewLMAdapter(init func(*lexmachine.Lexer), literals []string, keywords []string, tokenIds map[string]int) (*LMAdapter, error) {
	adapter := &LMAdapter{}
	adapter.Lexer = lexmachine.NewLexer()
	init(adapter.Lexer)
	addLiterals(adapter.Lexer, literals, keywords, tokenIds)
	if err := adapter.Lexer.Compile(); err != nil {
		tracer().Errorf("Error compiling DFA: %v", err)
		return nil, err
	}
	return adapter, nil
}

func addLiterals(lexer *lexmachine.Lexer, literals []string, keywords []string, tokenIds map[string]int) {
	for _, lit := range literals {
		r := "\\" + strings.Join(strings.Split(lit, ""), "\\")
		lexer.Add([]byte(r), MakeToken(lit, tokenIds[lit]))
	}
	for _, name := range keywords {
		lexer.Add([]byte(name), MakeToken(name, tokenIds[name]))
	}
}

// Regular expressions for terminals which stand for a whole class of tokens,
// see scanner.TokenClasses.
var classPatterns = map[string]string{
	"id":     `([a-z]|[A-Z]|_)([a-z]|[A-Z]|[0-9]|_)*`,
	"number": `[0-9]+(\.[0-9]+)?`,
	"string": `\"[^"]*\"`,
}

var classTypes = map[string]int{
	"id":     scanner.Ident,
	"number": scanner.Int,
	"string": scanner.String,
}

// ForGrammar creates a lexmachine adapter recognizing the terminals of a grammar.
//
// Terminals consisting of letters, digits and underscores are keywords, other
// terminals are literals. Terminals "id", "number" and "string" match whole
// token classes (identifiers, numbers, double-quoted strings), with keywords
// taking precedence. Whitespace is skipped.
// Tokens carry the value of their terminal as token type, except for class
// tokens, which carry the type of their class.
func ForGrammar(g *lr.Grammar) (*LMAdapter, error) {
	var literals, keywords, classes []string
	tokenIds := make(map[string]int)
	for _, a := range g.Terminals() {
		if a == g.EOF() {
			continue
		}
		switch {
		case classPatterns[a.Name] != "":
			classes = append(classes, a.Name)
		case isWord(a.Name):
			keywords = append(keywords, a.Name)
			tokenIds[a.Name] = a.Value
		default:
			literals = append(literals, a.Name)
			tokenIds[a.Name] = a.Value
		}
	}
	tracer().Debugf("lexer for %s: literals=%v, keywords=%v, classes=%v", g.Name,
		literals, keywords, classes)
	init := func(lexer *lexmachine.Lexer) {
		lexer.Add([]byte(`( |\t|\n|\r)+`), Skip)
	}
	adapter := &LMAdapter{Lexer: lexmachine.NewLexer()}
	init(adapter.Lexer)
	addLiterals(adapter.Lexer, literals, keywords, tokenIds)
	for _, class := range classes { // after keywords: equal-length matches prefer keywords
		adapter.Lexer.Add([]byte(classPatterns[class]), MakeToken(class, classTypes[class]))
	}
	if err := adapter.Lexer.Compile(); err != nil {
		tracer().Errorf("Error compiling DFA: %v", err)
		return nil, err
	}
	return adapter, nil
}

func isWord(s string) bool {
	for _, r := range s {
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '_' {
			return false
		}
	}
	return s != ""
}

// Scanner creates a scanner for a given input. The scanner will implement the
// Tokenizer interface.
func (lm *LMAdapter) Scanner(input string) (*LMScanner, error) {
	s, err := lm.Lexer.Scanner([]byte(input))
	if err != nil {
		return &LMScanner{}, err
	}
	return &LMScanner{s, logError}, nil
}

// LMScanner is a scanner type for lexmachine scanners, implementing the
// Tokenizer interface.
type LMScanner struct {
	scanner *lexmachine.Scanner
	Error   func(error)
}

var _ scanner.Tokenizer = (*LMScanner)(nil)

// SetErrorHandler sets an error handler for the scanner.
func (lms *LMScanner) SetErrorHandler(h func(error)) {
	if h == nil {
		lms.Error = logError
		return
	}
	lms.Error = h
}

// Default error reporting function for lexmachine-based scanners
func logError(e error) {
	tracer().Errorf("scanner error: " + e.Error())
}

// NextToken is part of the Tokenizer interface. Unconsumable input is reported
// to the error handler and skipped.
func (lms *LMScanner) NextToken() lrzero.Token {
	tok, err, eof := lms.scanner.Next()
	for err != nil {
		lms.Error(err)
		if ui, is := err.(*machines.UnconsumedInput); is {
			lms.scanner.TC = ui.FailTC
		}
		tok, err, eof = lms.scanner.Next()
	}
	if eof {
		return scanner.MakeDefaultToken(scanner.EOF, "", lrzero.Span{0, 0})
	}
	tracer().Debugf("tok is %T | %v", tok, tok)
	token := tok.(*lexmachine.Token)
	return scanner.MakeDefaultToken(
		lrzero.TokType(token.Type),
		string(token.Lexeme),
		lrzero.Span{uint64(token.TC), uint64(token.TC + len(token.Lexeme))},
	)
}

// ---------------------------------------------------------------------------

// Skip is a pre-defined action which ignores the scanned match.
func Skip(*lexmachine.Scanner, *machines.Match) (interface{}, error) {
	return nil, nil
}

// MakeToken is a pre-defined action which wraps a scanned match into a token.
func MakeToken(name string, id int) lexmachine.Action {
	return func(s *lexmachine.Scanner, m *machines.Match) (interface{}, error) {
		return s.Token(id, string(m.Bytes), m), nil
	}
}
