package syntax

import "fmt"

// parser turns the token stream into builder events. It is a recursive
// descent parser with one precedence-climbing loop for the binary
// operators, checkpoints for the prefixes that cannot be resolved with
// fixed lookahead, and token-skipping recovery for malformed input.
type parser struct {
	tokens []Token
	starts []int // byte offset of each token
	srcLen int
	pos    int
	b      *Builder
	errors []ParseError
}

type opInfo struct {
	bp       int
	right    bool
	nonAssoc bool
}

// Binding powers, loosest to tightest. Selection and application sit
// above this table; the has-attribute test is handled separately at
// bpHasAttr because its right side is an attribute path, not an
// expression.
var binOps = map[SyntaxKind]opInfo{
	TokenImplication: {bp: 10, right: true},
	TokenOrOr:        {bp: 20},
	TokenAndAnd:      {bp: 30},
	TokenEqual:       {bp: 40, nonAssoc: true},
	TokenNotEqual:    {bp: 40, nonAssoc: true},
	TokenLess:        {bp: 50, nonAssoc: true},
	TokenLessOrEq:    {bp: 50, nonAssoc: true},
	TokenMore:        {bp: 50, nonAssoc: true},
	TokenMoreOrEq:    {bp: 50, nonAssoc: true},
	TokenUpdate:      {bp: 60, right: true},
	TokenAdd:         {bp: 70},
	TokenSub:         {bp: 70},
	TokenMul:         {bp: 80},
	TokenDiv:         {bp: 80},
	TokenConcat:      {bp: 90, right: true},
}

const bpHasAttr = 95

func (p *parser) peekRaw() SyntaxKind {
	if p.pos >= len(p.tokens) {
		return TokenEOF
	}
	return p.tokens[p.pos].Kind
}

// eatTrivia emits pending whitespace and comments into the currently
// open node.
func (p *parser) eatTrivia() {
	for p.peekRaw().IsTrivia() {
		p.bump()
	}
}

// peek returns the kind of the next meaningful token, emitting any
// trivia before it into the tree.
func (p *parser) peek() SyntaxKind {
	p.eatTrivia()
	return p.peekRaw()
}

// nth looks ahead i meaningful tokens without emitting anything.
func (p *parser) nth(i int) SyntaxKind {
	seen := 0
	for j := p.pos; j < len(p.tokens); j++ {
		k := p.tokens[j].Kind
		if k.IsTrivia() {
			continue
		}
		if seen == i {
			return k
		}
		seen++
	}
	return TokenEOF
}

func (p *parser) bump() {
	if p.pos >= len(p.tokens) {
		return
	}
	tok := p.tokens[p.pos]
	p.b.Token(tok.Kind, tok.Text)
	p.pos++
}

// bumpAs emits the next token under a different kind, keeping its text.
// Used for the `or` keyword in identifier position.
func (p *parser) bumpAs(kind SyntaxKind) {
	if p.pos >= len(p.tokens) {
		return
	}
	p.b.Token(kind, p.tokens[p.pos].Text)
	p.pos++
}

func (p *parser) tokenRange() (from, to int) {
	if p.pos < len(p.tokens) {
		from = p.starts[p.pos]
		return from, from + len(p.tokens[p.pos].Text)
	}
	return p.srcLen, p.srcLen
}

func (p *parser) errorHere(msg string) {
	from, to := p.tokenRange()
	p.errors = append(p.errors, ParseError{Msg: msg, From: from, To: to})
}

func (p *parser) got() string {
	if k := p.peekRaw(); k != TokenEOF {
		return fmt.Sprintf("'%s'", p.tokens[p.pos].Text)
	}
	return "end of input"
}

// expect emits the token if it is next, and otherwise records an error
// without consuming anything: a missing token never blocks the tree
// from closing.
func (p *parser) expect(kind SyntaxKind) {
	if p.peek() == kind {
		p.bump()
		return
	}
	p.errorHere(fmt.Sprintf("expected '%s', got %s", kind, p.got()))
}

// errorToken records an error and wraps exactly one token in an error
// node so later input can still parse.
func (p *parser) errorToken(msg string) {
	p.errorHere(fmt.Sprintf("%s, got %s", msg, p.got()))
	p.b.StartNode(NodeError)
	if p.peekRaw() != TokenEOF {
		p.bump()
	}
	p.b.FinishNode()
}

// errorNode records an error and skips tokens into an error node until
// one of the sync kinds or end of input.
func (p *parser) errorNode(msg string, sync ...SyntaxKind) {
	p.errorHere(fmt.Sprintf("%s, got %s", msg, p.got()))
	p.b.StartNode(NodeError)
	if p.peekRaw() != TokenEOF {
		p.bump()
	}
loop:
	for {
		k := p.peek()
		if k == TokenEOF {
			break
		}
		for _, s := range sync {
			if k == s {
				break loop
			}
		}
		p.bump()
	}
	p.b.FinishNode()
}

func (p *parser) parseRoot() {
	p.b.StartNode(NodeRoot)
	p.parseExpr()
	if p.peek() != TokenEOF {
		p.errorHere(fmt.Sprintf("unexpected %s after the expression", p.got()))
		p.b.StartNode(NodeError)
		for p.peekRaw() != TokenEOF {
			p.bump()
		}
		p.b.FinishNode()
	}
	p.b.FinishNode()
}

func (p *parser) parseExpr() {
	switch p.peek() {
	case TokenLet:
		if p.nth(1) == TokenCurlyOpen {
			p.parseLegacyLet()
		} else {
			p.parseLetIn()
		}
	case TokenWith:
		p.b.StartNode(NodeWith)
		p.bump()
		p.parseExpr()
		p.expect(TokenSemicolon)
		p.parseExpr()
		p.b.FinishNode()
	case TokenAssert:
		p.b.StartNode(NodeAssert)
		p.bump()
		p.parseExpr()
		p.expect(TokenSemicolon)
		p.parseExpr()
		p.b.FinishNode()
	case TokenIf:
		p.parseIfElse()
	case TokenIdent:
		if k := p.nth(1); k == TokenColon || k == TokenAt {
			p.parseLambda()
		} else {
			p.parseOp(0)
		}
	case TokenCurlyOpen:
		if p.isPatternAhead() {
			p.parseLambda()
		} else {
			p.parseOp(0)
		}
	default:
		p.parseOp(0)
	}
}

func (p *parser) parseIfElse() {
	p.b.StartNode(NodeIfElse)
	p.bump() // if
	p.parseExpr()
	p.expect(TokenThen)
	p.parseExpr()
	p.expect(TokenElse)
	p.parseExpr()
	p.b.FinishNode()
}

func (p *parser) parseLetIn() {
	p.b.StartNode(NodeLetIn)
	p.bump() // let
	p.parseBindingsUntil(TokenIn)
	p.expect(TokenIn)
	p.parseExpr()
	p.b.FinishNode()
}

func (p *parser) parseLegacyLet() {
	p.b.StartNode(NodeLegacyLet)
	p.bump() // let
	p.expect(TokenCurlyOpen)
	p.parseBindingsUntil(TokenCurlyClose)
	p.expect(TokenCurlyClose)
	p.b.FinishNode()
}

// parseBindingsUntil parses attribute bindings and inherit clauses up
// to the closing token, which it leaves unconsumed.
func (p *parser) parseBindingsUntil(end SyntaxKind) {
	for {
		switch p.peek() {
		case end, TokenEOF:
			return
		case TokenInherit:
			p.parseInherit()
		case TokenIdent, TokenOr, TokenStringStart, TokenInterpolStart:
			p.parseKeyValue()
		default:
			p.errorNode("unexpected token in bindings", TokenSemicolon, end)
			if p.peek() == TokenSemicolon {
				p.bump()
			}
		}
	}
}

func (p *parser) parseKeyValue() {
	p.b.StartNode(NodeKeyValue)
	p.parseAttrPath()
	p.expect(TokenAssign)
	p.parseExpr()
	p.expect(TokenSemicolon)
	p.b.FinishNode()
}

func (p *parser) parseInherit() {
	p.b.StartNode(NodeInherit)
	p.bump() // inherit
	if p.peek() == TokenParenOpen {
		p.b.StartNode(NodeInheritFrom)
		p.bump()
		p.parseExpr()
		p.expect(TokenParenClose)
		p.b.FinishNode()
	}
names:
	for {
		switch p.peek() {
		case TokenIdent, TokenOr:
			p.parseIdent()
		case TokenStringStart:
			p.parseString()
		case TokenInterpolStart:
			p.parseDynamic()
		default:
			break names
		}
	}
	p.expect(TokenSemicolon)
	p.b.FinishNode()
}

func (p *parser) parseAttrPath() {
	p.b.StartNode(NodeAttrPath)
	p.parseAttrName()
	for p.peek() == TokenDot {
		p.bump()
		p.parseAttrName()
	}
	p.b.FinishNode()
}

func (p *parser) parseAttrName() {
	switch p.peek() {
	case TokenIdent, TokenOr:
		p.parseIdent()
	case TokenStringStart:
		p.parseString()
	case TokenInterpolStart:
		p.parseDynamic()
	default:
		p.errorToken("expected an attribute name")
	}
}

func (p *parser) parseIdent() {
	p.b.StartNode(NodeIdent)
	if p.peek() == TokenOr {
		p.bumpAs(TokenIdent)
	} else {
		p.bump()
	}
	p.b.FinishNode()
}

func (p *parser) parseDynamic() {
	p.b.StartNode(NodeDynamic)
	p.bump() // ${
	p.parseExpr()
	p.expect(TokenInterpolEnd)
	p.b.FinishNode()
}

// isPatternAhead decides, with bounded lookahead after `{`, whether a
// lambda destructuring pattern starts here rather than an attribute
// set.
func (p *parser) isPatternAhead() bool {
	switch p.nth(1) {
	case TokenCurlyClose:
		k := p.nth(2)
		return k == TokenColon || k == TokenAt
	case TokenEllipsis:
		return true
	case TokenIdent:
		switch p.nth(2) {
		case TokenComma, TokenQuestion:
			return true
		case TokenCurlyClose:
			k := p.nth(3)
			return k == TokenColon || k == TokenAt
		}
	}
	return false
}

func (p *parser) parseLambda() {
	p.b.StartNode(NodeLambda)
	if p.peek() == TokenIdent && p.nth(1) == TokenColon {
		p.b.StartNode(NodeIdentParam)
		p.parseIdent()
		p.b.FinishNode()
	} else {
		p.b.StartNode(NodePattern)
		if p.peek() == TokenIdent {
			p.parsePatBind()
			p.expect(TokenAt)
		}
		p.parsePatternBody()
		if p.peek() == TokenAt {
			p.bump()
			p.parsePatBind()
		}
		p.b.FinishNode()
	}
	p.expect(TokenColon)
	p.parseExpr()
	p.b.FinishNode()
}

func (p *parser) parsePatBind() {
	p.b.StartNode(NodePatBind)
	if p.peek() == TokenIdent {
		p.parseIdent()
	} else {
		p.errorToken("expected a name to bind the argument to")
	}
	p.b.FinishNode()
}

func (p *parser) parsePatternBody() {
	p.expect(TokenCurlyOpen)
	for {
		switch p.peek() {
		case TokenCurlyClose:
			p.bump()
			return
		case TokenEOF:
			p.errorHere("expected '}', got end of input")
			return
		case TokenEllipsis:
			p.bump()
		case TokenIdent:
			p.b.StartNode(NodePatEntry)
			p.parseIdent()
			if p.peek() == TokenQuestion {
				p.bump()
				p.parseExpr()
			}
			p.b.FinishNode()
		default:
			p.errorToken("unexpected token in pattern")
		}
		if p.peek() == TokenComma {
			p.bump()
		}
	}
}

// parseOp is the precedence climber: it parses one operand and then
// keeps folding operators whose binding power is at least minBP,
// retroactively wrapping the left side via the checkpoint.
func (p *parser) parseOp(minBP int) {
	p.eatTrivia()
	cp := p.b.Checkpoint()
	p.parseUnary()
	for {
		k := p.peek()
		if k == TokenQuestion {
			if bpHasAttr < minBP {
				return
			}
			p.b.StartNodeAt(cp, NodeHasAttr)
			p.bump()
			p.parseAttrPath()
			p.b.FinishNode()
			if p.peek() == TokenQuestion {
				p.errorHere("'?' cannot be chained")
			}
			continue
		}
		op, ok := binOps[k]
		if !ok || op.bp < minBP {
			return
		}
		p.b.StartNodeAt(cp, NodeBinOp)
		p.bump()
		next := op.bp + 1
		if op.right {
			next = op.bp
		}
		p.parseOp(next)
		p.b.FinishNode()
		if op.nonAssoc {
			if nk := p.peek(); binOps[nk].bp == op.bp {
				p.errorHere(fmt.Sprintf("'%s' cannot be chained", nk))
			}
		}
	}
}

func (p *parser) parseUnary() {
	switch p.peek() {
	case TokenSub, TokenInvert:
		p.b.StartNode(NodeUnaryOp)
		p.bump()
		p.parseUnary()
		p.b.FinishNode()
	default:
		p.parseApply()
	}
}

func (p *parser) parseApply() {
	p.eatTrivia()
	cp := p.b.Checkpoint()
	p.parseSelect()
	for p.isAtomStart() && !p.atBindingAhead() {
		p.b.StartNodeAt(cp, NodeApply)
		p.parseSelect()
		p.b.FinishNode()
	}
}

// atBindingAhead reports whether the next tokens form `name(.name)* =`.
// That shape can only be a binding whose separator went missing, never
// a valid application argument, so application stops in front of it and
// lets the binding loop recover.
func (p *parser) atBindingAhead() bool {
	if p.nth(0) != TokenIdent {
		return false
	}
	for i := 1; ; i += 2 {
		switch p.nth(i) {
		case TokenAssign:
			return true
		case TokenDot:
			if p.nth(i+1) != TokenIdent {
				return false
			}
		default:
			return false
		}
	}
}

func (p *parser) isAtomStart() bool {
	switch p.peek() {
	case TokenIdent, TokenOr, TokenInteger, TokenFloat, TokenPath, TokenURI,
		TokenStringStart, TokenParenOpen, TokenSquareOpen, TokenCurlyOpen, TokenRec:
		return true
	}
	return false
}

// parseSelect parses an atom plus any `.a.b` selection chain; an `or`
// default after the chain attaches to the whole selection.
func (p *parser) parseSelect() {
	p.eatTrivia()
	cp := p.b.Checkpoint()
	p.parseAtom()
	if p.peek() != TokenDot {
		return
	}
	p.b.StartNodeAt(cp, NodeSelect)
	p.bump() // .
	p.parseAttrPath()
	if p.peek() == TokenOr {
		p.bump()
		p.parseSelect()
	}
	p.b.FinishNode()
}

func (p *parser) parseAtom() {
	switch p.peek() {
	case TokenParenOpen:
		p.b.StartNode(NodeParen)
		p.bump()
		p.parseExpr()
		p.expect(TokenParenClose)
		p.b.FinishNode()
	case TokenSquareOpen:
		p.parseList()
	case TokenRec:
		p.parseAttrSet(true)
	case TokenCurlyOpen:
		p.parseAttrSet(false)
	case TokenIdent, TokenOr:
		p.parseIdent()
	case TokenInteger, TokenFloat:
		p.b.StartNode(NodeLiteral)
		p.bump()
		p.b.FinishNode()
	case TokenURI:
		p.parseURI()
	case TokenPath:
		p.parsePath()
	case TokenStringStart:
		p.parseString()
	default:
		p.errorToken("expected an expression")
	}
}

func (p *parser) parseList() {
	p.b.StartNode(NodeList)
	p.bump() // [
	for {
		switch {
		case p.peek() == TokenSquareClose:
			p.bump()
			p.b.FinishNode()
			return
		case p.peek() == TokenEOF:
			p.errorHere("expected ']', got end of input")
			p.b.FinishNode()
			return
		case p.isAtomStart():
			p.parseSelect()
		default:
			p.errorToken("unexpected token in list")
		}
	}
}

func (p *parser) parseAttrSet(rec bool) {
	p.b.StartNode(NodeAttrSet)
	if rec {
		p.bump() // rec
	}
	p.expect(TokenCurlyOpen)
	p.parseBindingsUntil(TokenCurlyClose)
	p.expect(TokenCurlyClose)
	p.b.FinishNode()
}

// parseURI wraps a URI literal; a URI whose tail carries interpolation
// splices continues as path fragments and becomes a path node.
func (p *parser) parseURI() {
	cp := p.b.Checkpoint()
	p.bump()
	if k := p.peekRaw(); k == TokenInterpolStart || k == TokenPath {
		p.b.StartNodeAt(cp, NodePath)
		p.parsePathTail()
	} else {
		p.b.StartNodeAt(cp, NodeLiteral)
	}
	p.b.FinishNode()
}

func (p *parser) parsePath() {
	p.b.StartNode(NodePath)
	p.bump()
	p.parsePathTail()
	p.b.FinishNode()
}

func (p *parser) parsePathTail() {
	for {
		switch p.peekRaw() {
		case TokenPath:
			p.bump()
		case TokenInterpolStart:
			p.parseInterpol()
		default:
			return
		}
	}
}

func (p *parser) parseString() {
	p.b.StartNode(NodeString)
	p.bump() // string start
	for {
		switch p.peekRaw() {
		case TokenStringContent:
			p.bump()
		case TokenInterpolStart:
			p.parseInterpol()
		case TokenStringEnd:
			p.bump()
			p.b.FinishNode()
			return
		default:
			p.errorHere("unterminated string")
			p.b.FinishNode()
			return
		}
	}
}

func (p *parser) parseInterpol() {
	p.b.StartNode(NodeInterpol)
	p.bump() // ${
	p.parseExpr()
	p.expect(TokenInterpolEnd)
	p.b.FinishNode()
}
