package syntax

import "strings"

// GreenElement is either a *GreenNode or a *GreenToken. The green tree
// is the authoritative representation of parsed text: immutable,
// position-free and shareable, so two structurally identical subtrees
// are interchangeable.
type GreenElement interface {
	Kind() SyntaxKind
	TextLen() int
	writeText(sb *strings.Builder)
}

// GreenToken is a leaf of the green tree: a kind plus the exact source
// text it covers.
type GreenToken struct {
	kind SyntaxKind
	text string
}

func NewGreenToken(kind SyntaxKind, text string) *GreenToken {
	return &GreenToken{kind: kind, text: text}
}

func (t *GreenToken) Kind() SyntaxKind { return t.kind }
func (t *GreenToken) TextLen() int     { return len(t.text) }
func (t *GreenToken) Text() string     { return t.text }

func (t *GreenToken) writeText(sb *strings.Builder) {
	sb.WriteString(t.text)
}

// GreenNode is an interior node of the green tree: a kind, an ordered
// child sequence and a cached total text length. It is constructed once
// by the builder and never mutated afterwards.
type GreenNode struct {
	kind     SyntaxKind
	children []GreenElement
	textLen  int
}

func NewGreenNode(kind SyntaxKind, children []GreenElement) *GreenNode {
	n := &GreenNode{kind: kind, children: children}
	for _, c := range children {
		n.textLen += c.TextLen()
	}
	return n
}

func (n *GreenNode) Kind() SyntaxKind { return n.kind }
func (n *GreenNode) TextLen() int     { return n.textLen }

// Children returns the child elements in source order. The returned
// slice must not be modified.
func (n *GreenNode) Children() []GreenElement { return n.children }

// Text reconstructs the exact source text this node covers by
// concatenating its tokens in order.
func (n *GreenNode) Text() string {
	var sb strings.Builder
	sb.Grow(n.textLen)
	n.writeText(&sb)
	return sb.String()
}

func (n *GreenNode) writeText(sb *strings.Builder) {
	for _, c := range n.children {
		c.writeText(sb)
	}
}
