package ast

import "github.com/dhamidi/nixel/syntax"

// BinOpKind identifies a binary operator.
type BinOpKind int

const (
	BinOpInvalid BinOpKind = iota
	BinOpConcat
	BinOpUpdate
	BinOpAdd
	BinOpSub
	BinOpMul
	BinOpDiv
	BinOpAnd
	BinOpOr
	BinOpImplication
	BinOpEqual
	BinOpNotEqual
	BinOpLess
	BinOpLessOrEq
	BinOpMore
	BinOpMoreOrEq
)

var binOpNames = map[BinOpKind]string{
	BinOpInvalid:     "invalid",
	BinOpConcat:      "++",
	BinOpUpdate:      "//",
	BinOpAdd:         "+",
	BinOpSub:         "-",
	BinOpMul:         "*",
	BinOpDiv:         "/",
	BinOpAnd:         "&&",
	BinOpOr:          "||",
	BinOpImplication: "->",
	BinOpEqual:       "==",
	BinOpNotEqual:    "!=",
	BinOpLess:        "<",
	BinOpLessOrEq:    "<=",
	BinOpMore:        ">",
	BinOpMoreOrEq:    ">=",
}

func (k BinOpKind) String() string { return binOpNames[k] }

var binOpTokens = map[syntax.SyntaxKind]BinOpKind{
	syntax.TokenConcat:      BinOpConcat,
	syntax.TokenUpdate:      BinOpUpdate,
	syntax.TokenAdd:         BinOpAdd,
	syntax.TokenSub:         BinOpSub,
	syntax.TokenMul:         BinOpMul,
	syntax.TokenDiv:         BinOpDiv,
	syntax.TokenAndAnd:      BinOpAnd,
	syntax.TokenOrOr:        BinOpOr,
	syntax.TokenImplication: BinOpImplication,
	syntax.TokenEqual:       BinOpEqual,
	syntax.TokenNotEqual:    BinOpNotEqual,
	syntax.TokenLess:        BinOpLess,
	syntax.TokenLessOrEq:    BinOpLessOrEq,
	syntax.TokenMore:        BinOpMore,
	syntax.TokenMoreOrEq:    BinOpMoreOrEq,
}

// BinOp is a binary operator application.
type BinOp struct{ node *syntax.Node }

func CastBinOp(n *syntax.Node) *BinOp {
	if n != nil && n.Kind() == syntax.NodeBinOp {
		return &BinOp{node: n}
	}
	return nil
}

func (b *BinOp) Syntax() *syntax.Node { return b.node }
func (b *BinOp) exprNode()            {}
func (b *BinOp) Lhs() Expr            { return CastExpr(nthChildNode(b.node, 0)) }
func (b *BinOp) Rhs() Expr            { return CastExpr(nthChildNode(b.node, 1)) }

// Operator returns the operator between the operands, or BinOpInvalid
// for a malformed node.
func (b *BinOp) Operator() BinOpKind {
	for _, c := range b.node.Children() {
		if !c.IsToken() {
			continue
		}
		if k, ok := binOpTokens[c.Kind()]; ok {
			return k
		}
	}
	return BinOpInvalid
}

// UnaryOpKind identifies a prefix operator.
type UnaryOpKind int

const (
	UnaryOpInvalid UnaryOpKind = iota
	UnaryOpNegate
	UnaryOpInvert
)

func (k UnaryOpKind) String() string {
	switch k {
	case UnaryOpNegate:
		return "-"
	case UnaryOpInvert:
		return "!"
	}
	return "invalid"
}

// UnaryOp is a prefix operator application.
type UnaryOp struct{ node *syntax.Node }

func CastUnaryOp(n *syntax.Node) *UnaryOp {
	if n != nil && n.Kind() == syntax.NodeUnaryOp {
		return &UnaryOp{node: n}
	}
	return nil
}

func (u *UnaryOp) Syntax() *syntax.Node { return u.node }
func (u *UnaryOp) exprNode()            {}
func (u *UnaryOp) Expr() Expr           { return CastExpr(firstChildNode(u.node)) }

func (u *UnaryOp) Operator() UnaryOpKind {
	for _, c := range u.node.Children() {
		if !c.IsToken() {
			continue
		}
		switch c.Kind() {
		case syntax.TokenSub:
			return UnaryOpNegate
		case syntax.TokenInvert:
			return UnaryOpInvert
		}
	}
	return UnaryOpInvalid
}
