package syntax

import (
	"strings"
	"testing"
)

func kinds(tokens []Token) []SyntaxKind {
	out := make([]SyntaxKind, len(tokens))
	for i, tok := range tokens {
		out[i] = tok.Kind
	}
	return out
}

func kindsEqual(a, b []SyntaxKind) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestTokenizeKeywords(t *testing.T) {
	tests := []struct {
		input string
		kind  SyntaxKind
	}{
		{"assert", TokenAssert},
		{"else", TokenElse},
		{"if", TokenIf},
		{"in", TokenIn},
		{"inherit", TokenInherit},
		{"let", TokenLet},
		{"or", TokenOr},
		{"rec", TokenRec},
		{"then", TokenThen},
		{"with", TokenWith},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			tokens := Tokenize(tt.input)
			if len(tokens) != 2 {
				t.Fatalf("len(tokens) = %d, want 2", len(tokens))
			}
			if tokens[0].Kind != tt.kind {
				t.Errorf("Kind = %v, want %v", tokens[0].Kind, tt.kind)
			}
			if tokens[0].Text != tt.input {
				t.Errorf("Text = %q, want %q", tokens[0].Text, tt.input)
			}
			if tokens[1].Kind != TokenEOF {
				t.Errorf("last Kind = %v, want %v", tokens[1].Kind, TokenEOF)
			}
		})
	}
}

func TestTokenizeIdentifiers(t *testing.T) {
	tests := []string{
		"foo",
		"_private",
		"camelCase",
		"with-dashes",
		"x'",
		"builtins2",
	}

	for _, input := range tests {
		t.Run(input, func(t *testing.T) {
			tokens := Tokenize(input)
			if tokens[0].Kind != TokenIdent {
				t.Errorf("Kind = %v, want %v", tokens[0].Kind, TokenIdent)
			}
			if tokens[0].Text != input {
				t.Errorf("Text = %q, want %q", tokens[0].Text, input)
			}
		})
	}
}

func TestTokenizeOperators(t *testing.T) {
	tests := []struct {
		input string
		kind  SyntaxKind
	}{
		{"++", TokenConcat},
		{"//", TokenUpdate},
		{"+", TokenAdd},
		{"-", TokenSub},
		{"*", TokenMul},
		{"->", TokenImplication},
		{"<=", TokenLessOrEq},
		{">=", TokenMoreOrEq},
		{"==", TokenEqual},
		{"!=", TokenNotEqual},
		{"&&", TokenAndAnd},
		{"||", TokenOrOr},
		{"!", TokenInvert},
		{"...", TokenEllipsis},
		{"?", TokenQuestion},
		{"@", TokenAt},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			tokens := Tokenize(tt.input)
			if tokens[0].Kind != tt.kind {
				t.Errorf("Kind = %v, want %v", tokens[0].Kind, tt.kind)
			}
			if tokens[0].Text != tt.input {
				t.Errorf("Text = %q, want %q", tokens[0].Text, tt.input)
			}
		})
	}
}

func TestTokenizeLogicalOperators(t *testing.T) {
	tokens := Tokenize("a && b || c")
	want := []SyntaxKind{
		TokenIdent,
		TokenWhitespace,
		TokenAndAnd,
		TokenWhitespace,
		TokenIdent,
		TokenWhitespace,
		TokenOrOr,
		TokenWhitespace,
		TokenIdent,
		TokenEOF,
	}
	if got := kinds(tokens); !kindsEqual(got, want) {
		t.Errorf("kinds = %v, want %v", got, want)
	}

	// A lone ampersand or pipe is not an operator.
	for _, input := range []string{"&", "|"} {
		tokens := Tokenize(input)
		if tokens[0].Kind != TokenError {
			t.Errorf("Tokenize(%q)[0].Kind = %v, want %v", input, tokens[0].Kind, TokenError)
		}
	}
}

func TestTokenizeNumbers(t *testing.T) {
	tests := []struct {
		input string
		kind  SyntaxKind
	}{
		{"0", TokenInteger},
		{"42", TokenInteger},
		{"3.14", TokenFloat},
		{".5", TokenFloat},
		{"2.5e-3", TokenFloat},
		{"1e10", TokenFloat},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			tokens := Tokenize(tt.input)
			if tokens[0].Kind != tt.kind {
				t.Errorf("Kind = %v, want %v", tokens[0].Kind, tt.kind)
			}
			if tokens[0].Text != tt.input {
				t.Errorf("Text = %q, want %q", tokens[0].Text, tt.input)
			}
		})
	}
}

func TestTokenizePaths(t *testing.T) {
	tests := []string{
		"./foo/bar",
		"../up/one",
		"/etc/nixos/configuration.nix",
		"~/projects",
	}

	for _, input := range tests {
		t.Run(input, func(t *testing.T) {
			tokens := Tokenize(input)
			if tokens[0].Kind != TokenPath {
				t.Errorf("Kind = %v, want %v", tokens[0].Kind, TokenPath)
			}
			if tokens[0].Text != input {
				t.Errorf("Text = %q, want %q", tokens[0].Text, input)
			}
		})
	}
}

func TestTokenizeSearchPath(t *testing.T) {
	tokens := Tokenize("<nixpkgs/lib>")
	if tokens[0].Kind != TokenPath {
		t.Errorf("Kind = %v, want %v", tokens[0].Kind, TokenPath)
	}
	if tokens[0].Text != "<nixpkgs/lib>" {
		t.Errorf("Text = %q, want %q", tokens[0].Text, "<nixpkgs/lib>")
	}
}

func TestTokenizeURI(t *testing.T) {
	input := "https://example.com/a?b=c"
	tokens := Tokenize(input)
	if tokens[0].Kind != TokenURI {
		t.Errorf("Kind = %v, want %v", tokens[0].Kind, TokenURI)
	}
	if tokens[0].Text != input {
		t.Errorf("Text = %q, want %q", tokens[0].Text, input)
	}
}

func TestTokenizeString(t *testing.T) {
	tokens := Tokenize(`"hi ${name}!"`)
	want := []SyntaxKind{
		TokenStringStart,
		TokenStringContent,
		TokenInterpolStart,
		TokenIdent,
		TokenInterpolEnd,
		TokenStringContent,
		TokenStringEnd,
		TokenEOF,
	}
	if got := kinds(tokens); !kindsEqual(got, want) {
		t.Errorf("kinds = %v, want %v", got, want)
	}
}

func TestTokenizeIndentedString(t *testing.T) {
	tokens := Tokenize("''\n  foo ${x}\n''")
	want := []SyntaxKind{
		TokenStringStart,
		TokenStringContent,
		TokenInterpolStart,
		TokenIdent,
		TokenInterpolEnd,
		TokenStringContent,
		TokenStringEnd,
		TokenEOF,
	}
	if got := kinds(tokens); !kindsEqual(got, want) {
		t.Errorf("kinds = %v, want %v", got, want)
	}
}

func TestTokenizeIndentedStringEscapes(t *testing.T) {
	// ''' and ''${ stay inside one content run.
	tokens := Tokenize("''a'''b''${c''")
	want := []SyntaxKind{
		TokenStringStart,
		TokenStringContent,
		TokenStringEnd,
		TokenEOF,
	}
	if got := kinds(tokens); !kindsEqual(got, want) {
		t.Errorf("kinds = %v, want %v", got, want)
	}
	if tokens[1].Text != "a'''b''${c" {
		t.Errorf("content = %q, want %q", tokens[1].Text, "a'''b''${c")
	}
}

func TestTokenizePathInterpolation(t *testing.T) {
	tokens := Tokenize("./foo/${x}/bar")
	want := []SyntaxKind{
		TokenPath,
		TokenInterpolStart,
		TokenIdent,
		TokenInterpolEnd,
		TokenPath,
		TokenEOF,
	}
	if got := kinds(tokens); !kindsEqual(got, want) {
		t.Errorf("kinds = %v, want %v", got, want)
	}
	if tokens[0].Text != "./foo/" {
		t.Errorf("first fragment = %q, want %q", tokens[0].Text, "./foo/")
	}
	if tokens[4].Text != "/bar" {
		t.Errorf("last fragment = %q, want %q", tokens[4].Text, "/bar")
	}
}

func TestTokenizeComments(t *testing.T) {
	tokens := Tokenize("# line\n/* block */ x")
	want := []SyntaxKind{
		TokenComment,
		TokenWhitespace,
		TokenComment,
		TokenWhitespace,
		TokenIdent,
		TokenEOF,
	}
	if got := kinds(tokens); !kindsEqual(got, want) {
		t.Errorf("kinds = %v, want %v", got, want)
	}
}

func TestTokenizeNestedInterpolation(t *testing.T) {
	tokens := Tokenize(`"${"${x}"}"`)
	want := []SyntaxKind{
		TokenStringStart,
		TokenInterpolStart,
		TokenStringStart,
		TokenInterpolStart,
		TokenIdent,
		TokenInterpolEnd,
		TokenStringEnd,
		TokenInterpolEnd,
		TokenStringEnd,
		TokenEOF,
	}
	if got := kinds(tokens); !kindsEqual(got, want) {
		t.Errorf("kinds = %v, want %v", got, want)
	}
}

func TestTokenizeBracesInsideInterpolation(t *testing.T) {
	// A plain attrset inside a splice must not close the splice early.
	tokens := Tokenize(`"${{ a = 1; }.a}"`)
	got := kinds(tokens)
	closes := 0
	for _, k := range got {
		if k == TokenInterpolEnd {
			closes++
		}
	}
	if closes != 1 {
		t.Errorf("TokenInterpolEnd count = %d, want 1", closes)
	}
}

// Every byte of the input must land in exactly one token, no matter how
// broken the input is.
func TestTokenizeRoundTrip(t *testing.T) {
	tests := []string{
		"",
		"let x = 1; in x",
		`{ a.b = "c"; }`,
		"''\n  multi\n  line\n''",
		"f: x: f (f x)",
		"a.b.c or d",
		"# only a comment",
		"/* unterminated",
		`"unterminated`,
		"1 + ",
		"???",
		"\x00\x01binary\xffjunk",
		"a ${'} b",
	}

	for _, input := range tests {
		t.Run(input, func(t *testing.T) {
			var sb strings.Builder
			for _, tok := range Tokenize(input) {
				sb.WriteString(tok.Text)
			}
			if sb.String() != input {
				t.Errorf("round trip = %q, want %q", sb.String(), input)
			}
		})
	}
}
