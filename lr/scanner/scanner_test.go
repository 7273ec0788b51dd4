package scanner

import (
	"fmt"
	"strings"
	"testing"

	"github.com/npillmayer/lrzero/lr"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
)

var inputStrings = []string{
	"1",
	"1+12",
	"Hello #World",
	`x="mystring" // commented `,
	"1,22,333",
}

var tokenCounts = []int{1, 3, 3, 3, 5}

func TestScan1(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lrzero.scanner")
	defer teardown()
	//
	for i, input := range inputStrings {
		t.Logf("------+-----------------+--------")
		reader := strings.NewReader(input)
		name := fmt.Sprintf("input #%d", i)
		scanner := GoTokenizer(name, reader)
		token := scanner.NextToken()
		count := 0
		for token.TokType() != EOF {
			t.Logf(" %4d | %15s | @%5d", token.TokType(), token.Lexeme(), token.Span().From())
			token = scanner.NextToken()
			count++
		}
		if count != tokenCounts[i] {
			t.Errorf("Expected token count for #%d to be %d, is %d", i, tokenCounts[i], count)
		}
	}
	t.Logf("------+-----------------+--------")
}

func makeExprGrammar(t *testing.T) *lr.Grammar {
	g, err := lr.ReadGrammar("Expr", strings.NewReader(`
S -> E
E -> E + T | T
T -> T * F | F
F -> ( E ) | id | number
`))
	if err != nil {
		t.Fatal(err)
	}
	return g
}

func TestTerminalNames(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lrzero.scanner")
	defer teardown()
	//
	g := makeExprGrammar(t)
	for i, x := range []struct {
		input, names string
	}{
		{"id*id+id", "id * id + id"},
		{"alpha * (beta + 7)", "id * ( id + number )"},
		{"", ""},
	} {
		scan := GoTokenizer(fmt.Sprintf("test #%d", i), strings.NewReader(x.input))
		names, err := TerminalNames(scan, g)
		if err != nil {
			t.Fatalf("test #%d: %v", i, err)
		}
		if strings.Join(names, " ") != x.names {
			t.Errorf("test #%d: expected %q, have %q", i, x.names, strings.Join(names, " "))
		}
	}
}

func TestUnknownToken(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lrzero.scanner")
	defer teardown()
	//
	g := makeExprGrammar(t)
	scan := GoTokenizer("unknown", strings.NewReader("a + b ; c"))
	names, err := TerminalNames(scan, g)
	if err == nil {
		t.Fatalf("expected ';' to be rejected")
	}
	if len(names) != 3 {
		t.Errorf("expected 3 terminals before the error, have %v", names)
	}
}

func TestTokenSpans(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lrzero.scanner")
	defer teardown()
	//
	scan := GoTokenizer("spans", strings.NewReader("ab  cde"))
	tok := scan.NextToken()
	if tok.Span().From() != 0 || tok.Span().To() != 2 {
		t.Errorf("expected first token at (0…2), is %v", tok.Span())
	}
	tok = scan.NextToken()
	if tok.Span().From() != 4 || tok.Span().Len() != 3 {
		t.Errorf("expected second token at (4…7), is %v", tok.Span())
	}
}
