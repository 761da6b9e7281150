package ast

import (
	"strconv"

	"github.com/dhamidi/nixel/syntax"
)

// Root is the top of every parsed tree.
type Root struct{ node *syntax.Node }

func CastRoot(n *syntax.Node) *Root {
	if n != nil && n.Kind() == syntax.NodeRoot {
		return &Root{node: n}
	}
	return nil
}

func (r *Root) Syntax() *syntax.Node { return r.node }

// Expr returns the expression the source parses to.
func (r *Root) Expr() Expr { return CastExpr(firstChildNode(r.node)) }

// Ident is a name used as an expression or attribute.
type Ident struct{ node *syntax.Node }

func CastIdent(n *syntax.Node) *Ident {
	if n != nil && n.Kind() == syntax.NodeIdent {
		return &Ident{node: n}
	}
	return nil
}

func (i *Ident) Syntax() *syntax.Node { return i.node }
func (i *Ident) exprNode()            {}
func (i *Ident) attrName()            {}

func (i *Ident) Name() string {
	if tok := i.node.FirstChildOfKind(syntax.TokenIdent); tok != nil {
		return tok.Text()
	}
	return ""
}

// Literal is an integer, float or URI literal.
type Literal struct{ node *syntax.Node }

func CastLiteral(n *syntax.Node) *Literal {
	if n != nil && n.Kind() == syntax.NodeLiteral {
		return &Literal{node: n}
	}
	return nil
}

func (l *Literal) Syntax() *syntax.Node { return l.node }
func (l *Literal) exprNode()            {}

func (l *Literal) token() *syntax.Node {
	for _, c := range l.node.Children() {
		if c.IsToken() && !c.Kind().IsTrivia() {
			return c
		}
	}
	return nil
}

func (l *Literal) Int() (int64, bool) {
	tok := l.token()
	if tok == nil || tok.Kind() != syntax.TokenInteger {
		return 0, false
	}
	v, err := strconv.ParseInt(tok.Text(), 10, 64)
	return v, err == nil
}

func (l *Literal) Float() (float64, bool) {
	tok := l.token()
	if tok == nil || tok.Kind() != syntax.TokenFloat {
		return 0, false
	}
	v, err := strconv.ParseFloat(tok.Text(), 64)
	return v, err == nil
}

func (l *Literal) URI() (string, bool) {
	tok := l.token()
	if tok == nil || tok.Kind() != syntax.TokenURI {
		return "", false
	}
	return tok.Text(), true
}

// Apply is a function application f x.
type Apply struct{ node *syntax.Node }

func CastApply(n *syntax.Node) *Apply {
	if n != nil && n.Kind() == syntax.NodeApply {
		return &Apply{node: n}
	}
	return nil
}

func (a *Apply) Syntax() *syntax.Node { return a.node }
func (a *Apply) exprNode()            {}
func (a *Apply) Fn() Expr             { return CastExpr(nthChildNode(a.node, 0)) }
func (a *Apply) Arg() Expr            { return CastExpr(nthChildNode(a.node, 1)) }

// Select is an attribute selection a.b.c with an optional `or` default
// that covers the whole chain.
type Select struct{ node *syntax.Node }

func CastSelect(n *syntax.Node) *Select {
	if n != nil && n.Kind() == syntax.NodeSelect {
		return &Select{node: n}
	}
	return nil
}

func (s *Select) Syntax() *syntax.Node { return s.node }
func (s *Select) exprNode()            {}
func (s *Select) Expr() Expr           { return CastExpr(nthChildNode(s.node, 0)) }

func (s *Select) AttrPath() *AttrPath {
	return CastAttrPath(s.node.FirstChildOfKind(syntax.NodeAttrPath))
}

// Default returns the expression after `or`, or nil.
func (s *Select) Default() Expr {
	return exprAfterToken(s.node, syntax.TokenOr)
}

// HasAttr is the a ? b.c attribute test.
type HasAttr struct{ node *syntax.Node }

func CastHasAttr(n *syntax.Node) *HasAttr {
	if n != nil && n.Kind() == syntax.NodeHasAttr {
		return &HasAttr{node: n}
	}
	return nil
}

func (h *HasAttr) Syntax() *syntax.Node { return h.node }
func (h *HasAttr) exprNode()            {}
func (h *HasAttr) Expr() Expr           { return CastExpr(nthChildNode(h.node, 0)) }

func (h *HasAttr) AttrPath() *AttrPath {
	return CastAttrPath(h.node.FirstChildOfKind(syntax.NodeAttrPath))
}

// AttrPath is a dotted chain of attribute names.
type AttrPath struct{ node *syntax.Node }

func CastAttrPath(n *syntax.Node) *AttrPath {
	if n != nil && n.Kind() == syntax.NodeAttrPath {
		return &AttrPath{node: n}
	}
	return nil
}

func (a *AttrPath) Syntax() *syntax.Node { return a.node }

// Attr is one attribute-path segment: an identifier, a string or a
// dynamic ${...} name.
type Attr interface {
	Node
	attrName()
}

func (a *AttrPath) Attrs() []Attr {
	var attrs []Attr
	for _, c := range a.node.ChildNodes() {
		switch c.Kind() {
		case syntax.NodeIdent:
			attrs = append(attrs, &Ident{node: c})
		case syntax.NodeString:
			attrs = append(attrs, &Str{node: c})
		case syntax.NodeDynamic:
			attrs = append(attrs, &Dynamic{node: c})
		}
	}
	return attrs
}

// Dynamic is a ${...} attribute name.
type Dynamic struct{ node *syntax.Node }

func CastDynamic(n *syntax.Node) *Dynamic {
	if n != nil && n.Kind() == syntax.NodeDynamic {
		return &Dynamic{node: n}
	}
	return nil
}

func (d *Dynamic) Syntax() *syntax.Node { return d.node }
func (d *Dynamic) attrName()            {}
func (d *Dynamic) Expr() Expr           { return CastExpr(firstChildNode(d.node)) }

// Interpol is a ${...} splice inside a string or path.
type Interpol struct{ node *syntax.Node }

func CastInterpol(n *syntax.Node) *Interpol {
	if n != nil && n.Kind() == syntax.NodeInterpol {
		return &Interpol{node: n}
	}
	return nil
}

func (i *Interpol) Syntax() *syntax.Node { return i.node }
func (i *Interpol) Expr() Expr           { return CastExpr(firstChildNode(i.node)) }

// List is a [ ... ] literal.
type List struct{ node *syntax.Node }

func CastList(n *syntax.Node) *List {
	if n != nil && n.Kind() == syntax.NodeList {
		return &List{node: n}
	}
	return nil
}

func (l *List) Syntax() *syntax.Node { return l.node }
func (l *List) exprNode()            {}

func (l *List) Items() []Expr {
	var items []Expr
	for _, c := range l.node.ChildNodes() {
		if e := CastExpr(c); e != nil {
			items = append(items, e)
		}
	}
	return items
}

// AttrSet is a { ... } literal, recursive when the rec keyword is
// present.
type AttrSet struct{ node *syntax.Node }

func CastAttrSet(n *syntax.Node) *AttrSet {
	if n != nil && n.Kind() == syntax.NodeAttrSet {
		return &AttrSet{node: n}
	}
	return nil
}

func (s *AttrSet) Syntax() *syntax.Node { return s.node }
func (s *AttrSet) exprNode()            {}
func (s *AttrSet) Rec() bool            { return hasChildToken(s.node, syntax.TokenRec) }
func (s *AttrSet) Entries() []*KeyValue { return keyValues(s.node) }
func (s *AttrSet) Inherits() []*Inherit { return inherits(s.node) }

func keyValues(n *syntax.Node) []*KeyValue {
	var kvs []*KeyValue
	for _, c := range n.ChildrenOfKind(syntax.NodeKeyValue) {
		kvs = append(kvs, &KeyValue{node: c})
	}
	return kvs
}

func inherits(n *syntax.Node) []*Inherit {
	var ins []*Inherit
	for _, c := range n.ChildrenOfKind(syntax.NodeInherit) {
		ins = append(ins, &Inherit{node: c})
	}
	return ins
}

// KeyValue is one binding: an attribute path, `=`, and a value.
type KeyValue struct{ node *syntax.Node }

func CastKeyValue(n *syntax.Node) *KeyValue {
	if n != nil && n.Kind() == syntax.NodeKeyValue {
		return &KeyValue{node: n}
	}
	return nil
}

func (k *KeyValue) Syntax() *syntax.Node { return k.node }

func (k *KeyValue) Key() *AttrPath {
	return CastAttrPath(k.node.FirstChildOfKind(syntax.NodeAttrPath))
}

func (k *KeyValue) Value() Expr {
	return exprAfterToken(k.node, syntax.TokenAssign)
}

// Inherit is an inherit clause, optionally qualified by a source
// expression.
type Inherit struct{ node *syntax.Node }

func CastInherit(n *syntax.Node) *Inherit {
	if n != nil && n.Kind() == syntax.NodeInherit {
		return &Inherit{node: n}
	}
	return nil
}

func (i *Inherit) Syntax() *syntax.Node { return i.node }

// From returns the source expression of inherit (expr) a b, or nil for
// a plain inherit.
func (i *Inherit) From() Expr {
	if from := i.node.FirstChildOfKind(syntax.NodeInheritFrom); from != nil {
		return CastExpr(firstChildNode(from))
	}
	return nil
}

// Names returns the inherited names in order.
func (i *Inherit) Names() []Attr {
	var names []Attr
	for _, c := range i.node.ChildNodes() {
		switch c.Kind() {
		case syntax.NodeIdent:
			names = append(names, &Ident{node: c})
		case syntax.NodeString:
			names = append(names, &Str{node: c})
		case syntax.NodeDynamic:
			names = append(names, &Dynamic{node: c})
		}
	}
	return names
}

// Idents returns only the plain identifier names.
func (i *Inherit) Idents() []*Ident {
	var idents []*Ident
	for _, c := range i.node.ChildrenOfKind(syntax.NodeIdent) {
		idents = append(idents, &Ident{node: c})
	}
	return idents
}

// LetIn is let bindings in body.
type LetIn struct{ node *syntax.Node }

func CastLetIn(n *syntax.Node) *LetIn {
	if n != nil && n.Kind() == syntax.NodeLetIn {
		return &LetIn{node: n}
	}
	return nil
}

func (l *LetIn) Syntax() *syntax.Node { return l.node }
func (l *LetIn) exprNode()            {}
func (l *LetIn) Entries() []*KeyValue { return keyValues(l.node) }
func (l *LetIn) Inherits() []*Inherit { return inherits(l.node) }

func (l *LetIn) Body() Expr {
	return exprAfterToken(l.node, syntax.TokenIn)
}

// LegacyLet is the old let { body = ...; } form.
type LegacyLet struct{ node *syntax.Node }

func CastLegacyLet(n *syntax.Node) *LegacyLet {
	if n != nil && n.Kind() == syntax.NodeLegacyLet {
		return &LegacyLet{node: n}
	}
	return nil
}

func (l *LegacyLet) Syntax() *syntax.Node { return l.node }
func (l *LegacyLet) exprNode()            {}
func (l *LegacyLet) Entries() []*KeyValue { return keyValues(l.node) }
func (l *LegacyLet) Inherits() []*Inherit { return inherits(l.node) }

// With is with namespace; body.
type With struct{ node *syntax.Node }

func CastWith(n *syntax.Node) *With {
	if n != nil && n.Kind() == syntax.NodeWith {
		return &With{node: n}
	}
	return nil
}

func (w *With) Syntax() *syntax.Node { return w.node }
func (w *With) exprNode()            {}
func (w *With) Namespace() Expr      { return CastExpr(nthChildNode(w.node, 0)) }
func (w *With) Body() Expr           { return CastExpr(nthChildNode(w.node, 1)) }

// Assert is assert condition; body.
type Assert struct{ node *syntax.Node }

func CastAssert(n *syntax.Node) *Assert {
	if n != nil && n.Kind() == syntax.NodeAssert {
		return &Assert{node: n}
	}
	return nil
}

func (a *Assert) Syntax() *syntax.Node { return a.node }
func (a *Assert) exprNode()            {}
func (a *Assert) Condition() Expr      { return CastExpr(nthChildNode(a.node, 0)) }
func (a *Assert) Body() Expr           { return CastExpr(nthChildNode(a.node, 1)) }

// IfElse is if cond then a else b.
type IfElse struct{ node *syntax.Node }

func CastIfElse(n *syntax.Node) *IfElse {
	if n != nil && n.Kind() == syntax.NodeIfElse {
		return &IfElse{node: n}
	}
	return nil
}

func (i *IfElse) Syntax() *syntax.Node { return i.node }
func (i *IfElse) exprNode()            {}
func (i *IfElse) Condition() Expr      { return CastExpr(nthChildNode(i.node, 0)) }
func (i *IfElse) Then() Expr           { return exprAfterToken(i.node, syntax.TokenThen) }
func (i *IfElse) Else() Expr           { return exprAfterToken(i.node, syntax.TokenElse) }

// Paren is a parenthesized expression.
type Paren struct{ node *syntax.Node }

func CastParen(n *syntax.Node) *Paren {
	if n != nil && n.Kind() == syntax.NodeParen {
		return &Paren{node: n}
	}
	return nil
}

func (p *Paren) Syntax() *syntax.Node { return p.node }
func (p *Paren) exprNode()            {}
func (p *Paren) Inner() Expr          { return CastExpr(firstChildNode(p.node)) }

// Lambda is a function: a bare-name or destructuring parameter, a
// colon and a body.
type Lambda struct{ node *syntax.Node }

func CastLambda(n *syntax.Node) *Lambda {
	if n != nil && n.Kind() == syntax.NodeLambda {
		return &Lambda{node: n}
	}
	return nil
}

func (l *Lambda) Syntax() *syntax.Node { return l.node }
func (l *Lambda) exprNode()            {}

// Param is a lambda parameter: either *IdentParam or *Pattern.
type Param interface {
	Node
	lambdaParam()
}

func (l *Lambda) Param() Param {
	if p := l.node.FirstChildOfKind(syntax.NodeIdentParam); p != nil {
		return &IdentParam{node: p}
	}
	if p := l.node.FirstChildOfKind(syntax.NodePattern); p != nil {
		return &Pattern{node: p}
	}
	return nil
}

func (l *Lambda) Body() Expr {
	return exprAfterToken(l.node, syntax.TokenColon)
}

// IdentParam is a single bare parameter name.
type IdentParam struct{ node *syntax.Node }

func CastIdentParam(n *syntax.Node) *IdentParam {
	if n != nil && n.Kind() == syntax.NodeIdentParam {
		return &IdentParam{node: n}
	}
	return nil
}

func (p *IdentParam) Syntax() *syntax.Node { return p.node }
func (p *IdentParam) lambdaParam()         {}

func (p *IdentParam) Ident() *Ident {
	return CastIdent(p.node.FirstChildOfKind(syntax.NodeIdent))
}

// Pattern is a destructuring parameter: named formals with optional
// defaults, an optional ellipsis, and an optional @-bound name for the
// whole argument.
type Pattern struct{ node *syntax.Node }

func CastPattern(n *syntax.Node) *Pattern {
	if n != nil && n.Kind() == syntax.NodePattern {
		return &Pattern{node: n}
	}
	return nil
}

func (p *Pattern) Syntax() *syntax.Node { return p.node }
func (p *Pattern) lambdaParam()         {}

func (p *Pattern) Entries() []*PatEntry {
	var entries []*PatEntry
	for _, c := range p.node.ChildrenOfKind(syntax.NodePatEntry) {
		entries = append(entries, &PatEntry{node: c})
	}
	return entries
}

func (p *Pattern) HasEllipsis() bool {
	return hasChildToken(p.node, syntax.TokenEllipsis)
}

// Bind returns the @-bound name, or nil.
func (p *Pattern) Bind() *Ident {
	if b := p.node.FirstChildOfKind(syntax.NodePatBind); b != nil {
		return CastIdent(b.FirstChildOfKind(syntax.NodeIdent))
	}
	return nil
}

// PatEntry is one formal in a pattern, with an optional default.
type PatEntry struct{ node *syntax.Node }

func CastPatEntry(n *syntax.Node) *PatEntry {
	if n != nil && n.Kind() == syntax.NodePatEntry {
		return &PatEntry{node: n}
	}
	return nil
}

func (p *PatEntry) Syntax() *syntax.Node { return p.node }

func (p *PatEntry) Name() *Ident {
	return CastIdent(p.node.FirstChildOfKind(syntax.NodeIdent))
}

func (p *PatEntry) Default() Expr {
	return exprAfterToken(p.node, syntax.TokenQuestion)
}

// ErrorNode wraps the span of unparsable input the parser recovered
// over.
type ErrorNode struct{ node *syntax.Node }

func CastErrorNode(n *syntax.Node) *ErrorNode {
	if n != nil && n.Kind() == syntax.NodeError {
		return &ErrorNode{node: n}
	}
	return nil
}

func (e *ErrorNode) Syntax() *syntax.Node { return e.node }
func (e *ErrorNode) exprNode()            {}

// Path is a path literal, possibly containing interpolation splices.
type Path struct{ node *syntax.Node }

func CastPath(n *syntax.Node) *Path {
	if n != nil && n.Kind() == syntax.NodePath {
		return &Path{node: n}
	}
	return nil
}

func (p *Path) Syntax() *syntax.Node { return p.node }
func (p *Path) exprNode()            {}

// Parts returns the path's literal fragments and splices in order.
func (p *Path) Parts() []StrPart {
	var parts []StrPart
	for _, c := range p.node.Children() {
		switch c.Kind() {
		case syntax.TokenPath, syntax.TokenURI:
			parts = append(parts, TextPart{Text: c.Text()})
		case syntax.NodeInterpol:
			parts = append(parts, InterpolPart{Interpol: &Interpol{node: c}})
		}
	}
	return parts
}

// exprAfterToken returns the first child node following the first
// child token of the given kind, or nil.
func exprAfterToken(n *syntax.Node, kind syntax.SyntaxKind) Expr {
	seen := false
	for _, c := range n.Children() {
		if c.IsToken() && c.Kind() == kind {
			seen = true
			continue
		}
		if seen && c.IsNode() {
			return CastExpr(c)
		}
	}
	return nil
}
