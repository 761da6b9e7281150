package syntax

import "strings"

// Tokenizer is a pull-based scanner over Nix source text. Every byte of
// the input ends up in exactly one token, whitespace and comments
// included, and any byte the scanner does not recognize becomes a
// one-byte error token, so the stream always makes progress and always
// covers the whole input.
//
// String bodies, indented-string bodies and paths switch the scanner
// into a different mode; the modes nest through `${ }` interpolation
// splices and are tracked on an internal stack.
type Tokenizer struct {
	src string
	pos int
	ctx []lexCtx
	eof bool
}

type ctxKind uint8

const (
	ctxInterpol ctxKind = iota
	ctxString
	ctxIndString
	ctxPath
)

type lexCtx struct {
	kind   ctxKind
	braces int // open plain braces inside an interpolation splice
}

func NewTokenizer(src string) *Tokenizer {
	return &Tokenizer{src: src}
}

// Tokenize scans the whole input, ending with an EOF marker token.
func Tokenize(src string) []Token {
	t := NewTokenizer(src)
	var tokens []Token
	for {
		tok, ok := t.Next()
		if !ok {
			return tokens
		}
		tokens = append(tokens, tok)
	}
}

// Next returns the next token. The last token of every stream is a
// zero-length TokenEOF marker; after that Next reports false.
func (t *Tokenizer) Next() (Token, bool) {
	if t.pos >= len(t.src) {
		if t.eof {
			return Token{}, false
		}
		t.eof = true
		return Token{Kind: TokenEOF}, true
	}
	for len(t.ctx) > 0 {
		switch t.ctx[len(t.ctx)-1].kind {
		case ctxString:
			return t.nextString(), true
		case ctxIndString:
			return t.nextIndString(), true
		case ctxPath:
			if tok, ok := t.nextPath(); ok {
				return tok, true
			}
			// Path ended; fall through to expression mode.
			continue
		default:
			return t.nextExpr(), true
		}
	}
	return t.nextExpr(), true
}

func (t *Tokenizer) starts(s string) bool {
	return strings.HasPrefix(t.src[t.pos:], s)
}

func (t *Tokenizer) peekAt(n int) byte {
	if t.pos+n >= len(t.src) {
		return 0
	}
	return t.src[t.pos+n]
}

func (t *Tokenizer) push(kind ctxKind) {
	t.ctx = append(t.ctx, lexCtx{kind: kind})
}

func (t *Tokenizer) pop() {
	t.ctx = t.ctx[:len(t.ctx)-1]
}

// token consumes n bytes and returns them as a token of the given kind.
func (t *Tokenizer) token(kind SyntaxKind, n int) Token {
	text := t.src[t.pos : t.pos+n]
	t.pos += n
	return Token{Kind: kind, Text: text}
}

func (t *Tokenizer) nextExpr() Token {
	c := t.src[t.pos]

	switch {
	case c == ' ' || c == '\t' || c == '\r' || c == '\n':
		n := 0
		for isSpace(t.peekAt(n)) {
			n++
		}
		return t.token(TokenWhitespace, n)

	case c == '#':
		n := 0
		for t.pos+n < len(t.src) && t.peekAt(n) != '\n' {
			n++
		}
		return t.token(TokenComment, n)

	case t.starts("/*"):
		end := strings.Index(t.src[t.pos+2:], "*/")
		if end < 0 {
			return t.token(TokenComment, len(t.src)-t.pos)
		}
		return t.token(TokenComment, end+4)
	}

	if n := t.pathLen(true); n > 0 {
		t.push(ctxPath)
		return t.token(TokenPath, n)
	}

	switch c {
	case '"':
		t.push(ctxString)
		return t.token(TokenStringStart, 1)
	case '\'':
		if t.peekAt(1) == '\'' {
			t.push(ctxIndString)
			return t.token(TokenStringStart, 2)
		}
		return t.token(TokenError, 1)
	case '$':
		if t.peekAt(1) == '{' {
			t.push(ctxInterpol)
			return t.token(TokenInterpolStart, 2)
		}
		return t.token(TokenError, 1)
	case '{':
		if len(t.ctx) > 0 && t.ctx[len(t.ctx)-1].kind == ctxInterpol {
			t.ctx[len(t.ctx)-1].braces++
		}
		return t.token(TokenCurlyOpen, 1)
	case '}':
		if len(t.ctx) > 0 && t.ctx[len(t.ctx)-1].kind == ctxInterpol {
			if t.ctx[len(t.ctx)-1].braces == 0 {
				t.pop()
				return t.token(TokenInterpolEnd, 1)
			}
			t.ctx[len(t.ctx)-1].braces--
		}
		return t.token(TokenCurlyClose, 1)
	case '[':
		return t.token(TokenSquareOpen, 1)
	case ']':
		return t.token(TokenSquareClose, 1)
	case '(':
		return t.token(TokenParenOpen, 1)
	case ')':
		return t.token(TokenParenClose, 1)
	case ';':
		return t.token(TokenSemicolon, 1)
	case ',':
		return t.token(TokenComma, 1)
	case '@':
		return t.token(TokenAt, 1)
	case '?':
		return t.token(TokenQuestion, 1)
	case ':':
		return t.token(TokenColon, 1)
	case '.':
		if t.starts("...") {
			return t.token(TokenEllipsis, 3)
		}
		if isDigit(t.peekAt(1)) {
			return t.scanFloatFromDot()
		}
		return t.token(TokenDot, 1)
	case '=':
		if t.peekAt(1) == '=' {
			return t.token(TokenEqual, 2)
		}
		return t.token(TokenAssign, 1)
	case '!':
		if t.peekAt(1) == '=' {
			return t.token(TokenNotEqual, 2)
		}
		return t.token(TokenInvert, 1)
	case '<':
		if n := t.searchPathLen(); n > 0 {
			return t.token(TokenPath, n)
		}
		if t.peekAt(1) == '=' {
			return t.token(TokenLessOrEq, 2)
		}
		return t.token(TokenLess, 1)
	case '>':
		if t.peekAt(1) == '=' {
			return t.token(TokenMoreOrEq, 2)
		}
		return t.token(TokenMore, 1)
	case '+':
		if t.peekAt(1) == '+' {
			return t.token(TokenConcat, 2)
		}
		return t.token(TokenAdd, 1)
	case '-':
		if t.peekAt(1) == '>' {
			return t.token(TokenImplication, 2)
		}
		return t.token(TokenSub, 1)
	case '&':
		if t.peekAt(1) == '&' {
			return t.token(TokenAndAnd, 2)
		}
		return t.token(TokenError, 1)
	case '|':
		if t.peekAt(1) == '|' {
			return t.token(TokenOrOr, 2)
		}
		return t.token(TokenError, 1)
	case '*':
		return t.token(TokenMul, 1)
	case '/':
		if t.peekAt(1) == '/' {
			return t.token(TokenUpdate, 2)
		}
		return t.token(TokenDiv, 1)
	}

	if isDigit(c) {
		return t.scanNumber()
	}
	if isIdentStart(c) {
		if n := t.uriLen(); n > 0 {
			if t.pos+n < len(t.src) && t.starts2(n, "${") {
				// URI with a splice in its tail; keep lexing the
				// remainder as path fragments.
				t.push(ctxPath)
			}
			return t.token(TokenURI, n)
		}
		n := 1
		for isIdentChar(t.peekAt(n)) {
			n++
		}
		ident := t.src[t.pos : t.pos+n]
		return t.token(LookupKeyword(ident), n)
	}

	return t.token(TokenError, 1)
}

func (t *Tokenizer) starts2(off int, s string) bool {
	return strings.HasPrefix(t.src[t.pos+off:], s)
}

// nextPath emits path fragments and splice markers while the input
// still looks like a path; it reports false once the path has ended and
// the mode has been popped.
func (t *Tokenizer) nextPath() (Token, bool) {
	if t.starts("${") {
		t.push(ctxInterpol)
		return t.token(TokenInterpolStart, 2), true
	}
	if n := t.pathLen(false); n > 0 {
		return t.token(TokenPath, n), true
	}
	t.pop()
	return Token{}, false
}

// pathLen measures the longest path literal starting at the current
// position. Paths need at least one slash followed by a path character
// or a splice; requireSlash is false when continuing an already-started
// path after a splice.
func (t *Tokenizer) pathLen(requireSlash bool) int {
	i := t.pos
	n := len(t.src)
	slash := false
	for i < n {
		c := t.src[i]
		if isPathChar(c) {
			i++
			continue
		}
		if c == '/' && i+1 < n {
			next := t.src[i+1]
			if isPathChar(next) || strings.HasPrefix(t.src[i+1:], "${") {
				slash = true
				i++
				continue
			}
		}
		break
	}
	if requireSlash && !slash {
		return 0
	}
	return i - t.pos
}

// searchPathLen matches a <nixpkgs/...> style search path, or 0.
func (t *Tokenizer) searchPathLen() int {
	i := t.pos + 1
	n := len(t.src)
	for i < n && (isPathChar(t.src[i]) || t.src[i] == '/') {
		i++
	}
	if i == t.pos+1 || i >= n || t.src[i] != '>' {
		return 0
	}
	return i - t.pos + 1
}

// uriLen matches scheme:body at the current position, or 0. The body
// stops before a `${` splice so the splice lexes on its own.
func (t *Tokenizer) uriLen() int {
	i := t.pos
	n := len(t.src)
	for i < n && isSchemeChar(t.src[i]) {
		i++
	}
	if i == t.pos || i >= n || t.src[i] != ':' {
		return 0
	}
	i++
	body := 0
	for i < n && isURIChar(t.src[i]) {
		if t.src[i] == '$' && i+1 < n && t.src[i+1] == '{' {
			break
		}
		i++
		body++
	}
	if body == 0 {
		return 0
	}
	return i - t.pos
}

func (t *Tokenizer) scanNumber() Token {
	n := 0
	for isDigit(t.peekAt(n)) {
		n++
	}
	float := false
	if t.peekAt(n) == '.' && (isDigit(t.peekAt(n+1)) || !isIdentStart(t.peekAt(n+1))) && t.peekAt(n+1) != '.' {
		float = true
		n++
		for isDigit(t.peekAt(n)) {
			n++
		}
	}
	if e := t.peekAt(n); e == 'e' || e == 'E' {
		m := n + 1
		if s := t.peekAt(m); s == '+' || s == '-' {
			m++
		}
		if isDigit(t.peekAt(m)) {
			float = true
			for isDigit(t.peekAt(m)) {
				m++
			}
			n = m
		}
	}
	if float {
		return t.token(TokenFloat, n)
	}
	return t.token(TokenInteger, n)
}

func (t *Tokenizer) scanFloatFromDot() Token {
	n := 1
	for isDigit(t.peekAt(n)) {
		n++
	}
	if e := t.peekAt(n); e == 'e' || e == 'E' {
		m := n + 1
		if s := t.peekAt(m); s == '+' || s == '-' {
			m++
		}
		if isDigit(t.peekAt(m)) {
			for isDigit(t.peekAt(m)) {
				m++
			}
			n = m
		}
	}
	return t.token(TokenFloat, n)
}

// nextString lexes the body of a double-quoted string: content runs,
// splice markers and the closing quote.
func (t *Tokenizer) nextString() Token {
	if t.src[t.pos] == '"' {
		t.pop()
		return t.token(TokenStringEnd, 1)
	}
	if t.starts("${") {
		t.push(ctxInterpol)
		return t.token(TokenInterpolStart, 2)
	}
	start := t.pos
	for t.pos < len(t.src) {
		if t.src[t.pos] == '"' || t.starts("${") {
			break
		}
		if t.src[t.pos] == '\\' && t.pos+1 < len(t.src) {
			t.pos += 2
			continue
		}
		t.pos++
	}
	return Token{Kind: TokenStringContent, Text: t.src[start:t.pos]}
}

// nextIndString lexes the body of an indented ('' delimited) string.
// The escapes ''' (a literal ''), ''${ (a literal splice marker) and
// ''\X stay inside content runs; dedenting is left to the AST layer.
func (t *Tokenizer) nextIndString() Token {
	start := t.pos
	for t.pos < len(t.src) {
		if t.starts("''") {
			switch {
			case t.starts("'''"):
				t.pos += 3
				continue
			case t.starts("''${"):
				t.pos += 4
				continue
			case t.starts("''\\"):
				t.pos += 3
				if t.pos < len(t.src) {
					t.pos++
				}
				continue
			}
			break
		}
		if t.starts("${") {
			break
		}
		t.pos++
	}
	if t.pos > start {
		return Token{Kind: TokenStringContent, Text: t.src[start:t.pos]}
	}
	if t.starts("${") {
		t.push(ctxInterpol)
		return t.token(TokenInterpolStart, 2)
	}
	t.pop()
	return t.token(TokenStringEnd, 2)
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\r' || c == '\n'
}

func isDigit(c byte) bool { return c >= '0' && c <= '9' }

func isLetter(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isIdentStart(c byte) bool { return isLetter(c) || c == '_' }

func isIdentChar(c byte) bool {
	return isLetter(c) || isDigit(c) || c == '_' || c == '\'' || c == '-'
}

func isPathChar(c byte) bool {
	return isLetter(c) || isDigit(c) || c == '.' || c == '_' || c == '+' || c == '-' || c == '~'
}

func isSchemeChar(c byte) bool {
	return isLetter(c) || isDigit(c) || c == '+' || c == '-' || c == '.'
}

func isURIChar(c byte) bool {
	switch c {
	case '%', '/', '?', ':', '@', '&', '=', '+', '$', ',', '-', '_', '.', '!', '~', '*', '\'':
		return true
	}
	return isLetter(c) || isDigit(c)
}
