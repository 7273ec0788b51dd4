package lexmach

import (
	"strings"
	"testing"

	"github.com/npillmayer/lrzero/lr"
	"github.com/npillmayer/lrzero/lr/scanner"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/timtadh/lexmachine"
)

var inputStrings = []string{
	"1",
	"1+12",
	"Hello #World",
	`x="mystring" // commented `,
	"1,22,333",
}

var TokenCounts = []int{1, 3, 2, 3, 3}

func TestLM(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lrzero.scanner")
	defer teardown()
	//
	initTokens()
	init := func(lexer *lexmachine.Lexer) {
		lexer.Add([]byte(`//[^\n]*\n?`), Skip)
		lexer.Add([]byte(`\"[^"]*\"`), MakeToken("STRING", tokenIds["STRING"]))
		lexer.Add([]byte(`#?([a-z]|[A-Z])([a-z]|[A-Z]|[0-9]|_|-)*[!\?]?`), MakeToken("ID", tokenIds["ID"]))
		lexer.Add([]byte(`[1-9][0-9]*`), MakeToken("NUM", tokenIds["NUM"]))
		lexer.Add([]byte(`( |\,|\t|\n|\r)+`), Skip)
	}
	LM, err := NewLMAdapter(init, literals, keywords, tokenIds)
	if err != nil {
		t.Error(err)
	}
	for i, input := range inputStrings {
		t.Logf("------+-----------------+--------")
		sc, err := LM.Scanner(input)
		if err != nil {
			t.Error(err)
		}
		token := sc.NextToken()
		count := 0
		for token.TokType() != scanner.EOF {
			t.Logf(" %4d | %15s | @%5d", token.TokType(), token.Lexeme(), token.Span().From())
			token = sc.NextToken()
			count++
		}
		if count != TokenCounts[i] {
			t.Errorf("Expected token count for #%d to be %d, is %d", i, TokenCounts[i], count)
		}
	}
	t.Logf("------+-----------------+--------")
}

var literals []string       // The tokens representing literal strings
var keywords []string       // The keyword tokens
var tokens []string         // All of the tokens (including literals and keywords)
var tokenIds map[string]int // A map from the token names to their int ids

func initTokens() {
	literals = []string{
		"'",
		"(",
		")",
		"[",
		"]",
		"=",
		"+",
		"-",
		"*",
		"/",
	}
	keywords = []string{
		"nil",
		"t",
	}
	tokens = []string{
		"COMMENT",
		"ID",
		"NUM",
		"STRING",
	}
	tokens = append(tokens, keywords...)
	tokens = append(tokens, literals...)
	tokenIds = make(map[string]int)
	tokenIds["COMMENT"] = scanner.Comment
	tokenIds["ID"] = scanner.Ident
	tokenIds["NUM"] = scanner.Int
	tokenIds["STRING"] = int(scanner.String)
	for i, tok := range tokens[4:] {
		tokenIds[tok] = i + 10
	}
}

func TestForGrammar(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lrzero.scanner")
	defer teardown()
	//
	g, err := lr.ReadGrammar("Expr", strings.NewReader(`
S -> E
E -> E + T | T
T -> T * F | F
F -> ( E ) | id | number
`))
	if err != nil {
		t.Fatal(err)
	}
	LM, err := ForGrammar(g)
	if err != nil {
		t.Fatal(err)
	}
	for _, x := range []struct {
		input, names string
	}{
		{"id*id+id", "id * id + id"},
		{"alpha * (3 + beta)", "id * ( number + id )"},
		{"  ", ""},
	} {
		sc, err := LM.Scanner(x.input)
		if err != nil {
			t.Fatal(err)
		}
		names, err := scanner.TerminalNames(sc, g)
		if err != nil {
			t.Fatalf("%q: %v", x.input, err)
		}
		if strings.Join(names, " ") != x.names {
			t.Errorf("%q: expected %q, have %q", x.input, x.names, strings.Join(names, " "))
		}
	}
}

func TestForGrammarKeywords(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lrzero.scanner")
	defer teardown()
	//
	g, err := lr.ReadGrammar("Lists", strings.NewReader("S -> ( L ) | x\nL -> S | L , S\n"))
	if err != nil {
		t.Fatal(err)
	}
	LM, err := ForGrammar(g)
	if err != nil {
		t.Fatal(err)
	}
	sc, err := LM.Scanner("(x, (x,x))")
	if err != nil {
		t.Fatal(err)
	}
	token := sc.NextToken()
	if token.Lexeme() != "(" || int(token.TokType()) != g.Terminal("(").Value {
		t.Errorf("expected token for '(', have %v", token)
	}
	if token.Span().From() != 0 || token.Span().To() != 1 {
		t.Errorf("expected span (0…1), have %v", token.Span())
	}
	names, err := scanner.TerminalNames(sc, g)
	if err != nil {
		t.Fatal(err)
	}
	if strings.Join(names, " ") != "x , ( x , x ) )" {
		t.Errorf("unexpected terminals %v", names)
	}
	var errs []error
	sc, _ = LM.Scanner("x ? x")
	sc.SetErrorHandler(func(e error) { errs = append(errs, e) })
	names, _ = scanner.TerminalNames(sc, g)
	if len(errs) == 0 || len(names) != 2 {
		t.Errorf("expected '?' to be reported and skipped, have %v / %v", names, errs)
	}
}
