package lexer

import (
	"testing"

	"github.com/avalon-lang/avalon/internal/errors"
	"github.com/avalon-lang/avalon/internal/token"
)

func collect(t *testing.T, src string) ([]token.Token, *errors.Sink) {
	t.Helper()
	sink := errors.NewSink()
	l := New([]byte(src), "test.avl", sink)
	var toks []token.Token
	for {
		tok := l.NextToken()
		toks = append(toks, tok)
		if tok.Kind == token.EOF {
			break
		}
	}
	return toks, sink
}

func kinds(toks []token.Token) []token.Kind {
	out := make([]token.Kind, len(toks))
	for i, t := range toks {
		out[i] = t.Kind
	}
	return out
}

func TestNextTokenBasics(t *testing.T) {
	toks, sink := collect(t, "val x = 5 + 10\n")
	if sink.Failed() {
		t.Fatalf("unexpected errors: %v", sink.Errors)
	}
	want := []token.Kind{
		token.VAL, token.IDENTIFIER, token.ASSIGN, token.INTEGER,
		token.PLUS, token.INTEGER, token.NEWLINE, token.EOF,
	}
	got := kinds(toks)
	if len(got) != len(want) {
		t.Fatalf("token count = %d, want %d (%v)", len(got), len(want), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("token %d = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestIndentDedent(t *testing.T) {
	src := "def f() -> int:\n    return 1\nval y = 2\n"
	toks, sink := collect(t, src)
	if sink.Failed() {
		t.Fatalf("unexpected errors: %v", sink.Errors)
	}
	got := kinds(toks)
	found := false
	for i := 0; i < len(got)-1; i++ {
		if got[i] == token.INDENT {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected an INDENT token in %v", got)
	}
	dedents := 0
	for _, k := range got {
		if k == token.DEDENT {
			dedents++
		}
	}
	if dedents == 0 {
		t.Fatalf("expected at least one DEDENT token in %v", got)
	}
}

func TestLineComment(t *testing.T) {
	toks, sink := collect(t, "val x = 1 -- trailing comment\n")
	if sink.Failed() {
		t.Fatalf("unexpected errors: %v", sink.Errors)
	}
	for _, tok := range toks {
		if tok.Kind == token.COMMENT {
			t.Fatalf("comment should be skipped, not tokenized")
		}
	}
}

func TestNestedBlockComment(t *testing.T) {
	_, sink := collect(t, "-[ outer -[ inner ]- still outer ]-\nval x = 1\n")
	if sink.Failed() {
		t.Fatalf("unexpected errors: %v", sink.Errors)
	}
}

func TestUnterminatedBlockCommentIsFatal(t *testing.T) {
	_, sink := collect(t, "-[ never closes\nval x = 1\n")
	if !sink.HasFatal() {
		t.Fatalf("expected a fatal LEX004 for unterminated block comment")
	}
}

func TestMixedTabsAndSpacesIsFatal(t *testing.T) {
	_, sink := collect(t, "def f():\n\t val x = 1\n")
	if !sink.HasFatal() {
		t.Fatalf("expected a fatal LEX002 for mixed tabs/spaces")
	}
}

func TestStringLiteralEscapes(t *testing.T) {
	toks, sink := collect(t, `val s = "a\nb"` + "\n")
	if sink.Failed() {
		t.Fatalf("unexpected errors: %v", sink.Errors)
	}
	var got string
	for _, tok := range toks {
		if tok.Kind == token.STRING {
			got = tok.Lexeme
		}
	}
	if got != "a\nb" {
		t.Fatalf("string literal = %q, want %q", got, "a\nb")
	}
}

func TestUnterminatedStringIsFatal(t *testing.T) {
	_, sink := collect(t, `val s = "never closes` + "\n")
	if !sink.HasFatal() {
		t.Fatalf("expected a fatal LEX003 for unterminated string")
	}
}

func TestBitAndQubitLiterals(t *testing.T) {
	toks, sink := collect(t, "val b = 0b1010\nval q = 0q01\n")
	if sink.Failed() {
		t.Fatalf("unexpected errors: %v", sink.Errors)
	}
	var sawBit, sawQubit bool
	for _, tok := range toks {
		if tok.Kind == token.BIT {
			sawBit = true
		}
		if tok.Kind == token.QUBIT {
			sawQubit = true
		}
	}
	if !sawBit || !sawQubit {
		t.Fatalf("expected both BIT and QUBIT literals, got %v", kinds(toks))
	}
}

func TestNumericSuffixes(t *testing.T) {
	toks, sink := collect(t, "val a = 3f\nval b = 3d\n")
	if sink.Failed() {
		t.Fatalf("unexpected errors: %v", sink.Errors)
	}
	var sawFloat, sawDecimal bool
	for _, tok := range toks {
		if tok.Kind == token.FLOAT {
			sawFloat = true
		}
		if tok.Kind == token.DECIMAL {
			sawDecimal = true
		}
	}
	if !sawFloat || !sawDecimal {
		t.Fatalf("expected both FLOAT and DECIMAL literals, got %v", kinds(toks))
	}
}
