package syntax

import "sort"

// Token is one lexical unit: a kind plus the exact text it occupies in
// the source. Tokens are consumed by the parser and live on inside the
// tree as green tokens; they carry no position of their own.
type Token struct {
	Kind SyntaxKind
	Text string
}

var keywords = map[string]SyntaxKind{
	"assert":  TokenAssert,
	"else":    TokenElse,
	"if":      TokenIf,
	"in":      TokenIn,
	"inherit": TokenInherit,
	"let":     TokenLet,
	"or":      TokenOr,
	"rec":     TokenRec,
	"then":    TokenThen,
	"with":    TokenWith,
}

// LookupKeyword maps an identifier to its keyword kind, or TokenIdent
// if it is not a keyword.
func LookupKeyword(ident string) SyntaxKind {
	if kind, ok := keywords[ident]; ok {
		return kind
	}
	return TokenIdent
}

// Keywords returns every reserved word in sorted order.
func Keywords() []string {
	names := make([]string, 0, len(keywords))
	for name := range keywords {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
