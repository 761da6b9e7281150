// Package ast provides typed facades over the raw syntax tree. Each
// wrapper type understands nodes of one kind; casting a node into a
// wrapper checks the kind and yields nil when it does not match, and
// CastExpr dispatches one node into the right expression wrapper with
// a closed match over kinds.
package ast

import "github.com/dhamidi/nixel/syntax"

// Node is a typed view of a syntax node.
type Node interface {
	Syntax() *syntax.Node
}

// Expr is implemented by every wrapper that represents an expression.
type Expr interface {
	Node
	exprNode()
}

// CastExpr wraps a syntax node in its expression wrapper, or nil when
// the node's kind is not an expression.
func CastExpr(n *syntax.Node) Expr {
	if n == nil {
		return nil
	}
	switch n.Kind() {
	case syntax.NodeApply:
		return &Apply{node: n}
	case syntax.NodeAssert:
		return &Assert{node: n}
	case syntax.NodeAttrSet:
		return &AttrSet{node: n}
	case syntax.NodeBinOp:
		return &BinOp{node: n}
	case syntax.NodeHasAttr:
		return &HasAttr{node: n}
	case syntax.NodeIdent:
		return &Ident{node: n}
	case syntax.NodeIfElse:
		return &IfElse{node: n}
	case syntax.NodeLambda:
		return &Lambda{node: n}
	case syntax.NodeLegacyLet:
		return &LegacyLet{node: n}
	case syntax.NodeLetIn:
		return &LetIn{node: n}
	case syntax.NodeList:
		return &List{node: n}
	case syntax.NodeLiteral:
		return &Literal{node: n}
	case syntax.NodeParen:
		return &Paren{node: n}
	case syntax.NodePath:
		return &Path{node: n}
	case syntax.NodeSelect:
		return &Select{node: n}
	case syntax.NodeString:
		return &Str{node: n}
	case syntax.NodeUnaryOp:
		return &UnaryOp{node: n}
	case syntax.NodeWith:
		return &With{node: n}
	case syntax.NodeError:
		return &ErrorNode{node: n}
	}
	return nil
}

// Parse bundles the result of parsing: the shared green tree, the
// ordered error list and the intended typed root.
type Parse[T Node] struct {
	green  *syntax.GreenNode
	errors []syntax.ParseError
	cast   func(*syntax.Node) T
}

// ParseRoot parses source text with Root as the intended tree type.
// It succeeds for every input; check Errors or use Ok to find out
// whether the input was well formed.
func ParseRoot(src string) Parse[*Root] {
	green, errors := syntax.ParseText(src)
	return Parse[*Root]{green: green, errors: errors, cast: CastRoot}
}

// GreenNode returns the shared immutable tree.
func (p Parse[T]) GreenNode() *syntax.GreenNode { return p.green }

// Syntax returns a fresh navigable view over the tree.
func (p Parse[T]) Syntax() *syntax.Node { return syntax.NewRootNode(p.green) }

// Tree returns the typed root. The root kind is guaranteed by
// construction, so this never fails.
func (p Parse[T]) Tree() T { return p.cast(p.Syntax()) }

// Errors returns all parse errors in the order they were encountered.
func (p Parse[T]) Errors() []syntax.ParseError { return p.errors }

// Ok returns the typed root when there are no errors, and the first
// error otherwise.
func (p Parse[T]) Ok() (T, error) {
	if len(p.errors) > 0 {
		var zero T
		return zero, p.errors[0]
	}
	return p.Tree(), nil
}

func firstChildNode(n *syntax.Node) *syntax.Node {
	for _, c := range n.Children() {
		if c.IsNode() {
			return c
		}
	}
	return nil
}

func nthChildNode(n *syntax.Node, i int) *syntax.Node {
	for _, c := range n.Children() {
		if !c.IsNode() {
			continue
		}
		if i == 0 {
			return c
		}
		i--
	}
	return nil
}

func hasChildToken(n *syntax.Node, kind syntax.SyntaxKind) bool {
	return n.FirstChildOfKind(kind) != nil
}
