package syntax

import (
	"fmt"
	"strings"
)

// Node is a navigable view over a green element. It adds what the green
// tree deliberately leaves out: an absolute text offset and a link to
// the parent. Views are derived on demand and never mutate the green
// tree, so any number of them may coexist over one shared tree.
//
// A Node wraps either a green node or a green token; IsToken tells the
// two apart, and traversal treats them uniformly.
type Node struct {
	green  GreenElement
	parent *Node
	offset int
	index  int
}

// NewRootNode creates a view over a green tree rooted at offset zero.
func NewRootNode(green *GreenNode) *Node {
	return &Node{green: green}
}

func (n *Node) Kind() SyntaxKind   { return n.green.Kind() }
func (n *Node) IsToken() bool      { return n.green.Kind().IsToken() }
func (n *Node) IsNode() bool       { return n.green.Kind().IsNode() }
func (n *Node) Parent() *Node      { return n.parent }
func (n *Node) Green() GreenElement { return n.green }

// Range returns the byte span [from, to) this element covers.
func (n *Node) Range() (from, to int) {
	return n.offset, n.offset + n.green.TextLen()
}

// Text returns the exact source text covered by this element.
func (n *Node) Text() string {
	switch g := n.green.(type) {
	case *GreenToken:
		return g.Text()
	case *GreenNode:
		return g.Text()
	}
	return ""
}

// Children returns views over all children, tokens included, in source
// order. Token views have no children.
func (n *Node) Children() []*Node {
	green, ok := n.green.(*GreenNode)
	if !ok {
		return nil
	}
	children := make([]*Node, len(green.Children()))
	offset := n.offset
	for i, c := range green.Children() {
		children[i] = &Node{green: c, parent: n, offset: offset, index: i}
		offset += c.TextLen()
	}
	return children
}

// ChildNodes returns only the child nodes, skipping tokens.
func (n *Node) ChildNodes() []*Node {
	var nodes []*Node
	for _, c := range n.Children() {
		if c.IsNode() {
			nodes = append(nodes, c)
		}
	}
	return nodes
}

func (n *Node) FirstChildOfKind(kind SyntaxKind) *Node {
	for _, c := range n.Children() {
		if c.Kind() == kind {
			return c
		}
	}
	return nil
}

func (n *Node) ChildrenOfKind(kind SyntaxKind) []*Node {
	var result []*Node
	for _, c := range n.Children() {
		if c.Kind() == kind {
			result = append(result, c)
		}
	}
	return result
}

func (n *Node) NextSibling() *Node {
	if n.parent == nil {
		return nil
	}
	siblings := n.parent.Children()
	if n.index+1 < len(siblings) {
		return siblings[n.index+1]
	}
	return nil
}

func (n *Node) PrevSibling() *Node {
	if n.parent == nil || n.index == 0 {
		return nil
	}
	return n.parent.Children()[n.index-1]
}

// Covering returns the deepest node or token whose span contains the
// byte offset.
func (n *Node) Covering(offset int) *Node {
	cur := n
outer:
	for cur.IsNode() {
		for _, c := range cur.Children() {
			from, to := c.Range()
			if offset >= from && offset < to {
				cur = c
				continue outer
			}
		}
		break
	}
	return cur
}

// TokenAtOffset is the result of looking up the token(s) at a byte
// offset. On the boundary between two tokens both neighbors are
// reported; a lookup that hits no token reports neither.
type TokenAtOffset struct {
	Left  *Node
	Right *Node
}

func (t TokenAtOffset) None() bool { return t.Left == nil && t.Right == nil }

// Single returns the token when the offset falls strictly inside one
// token, and nil on a boundary or a miss.
func (t TokenAtOffset) Single() *Node {
	if t.Left != nil && t.Left == t.Right {
		return t.Left
	}
	return nil
}

// TokenAtOffset finds the token(s) whose span touches the byte offset.
func (n *Node) TokenAtOffset(offset int) TokenAtOffset {
	from, to := n.Range()
	if offset < from || offset > to {
		return TokenAtOffset{}
	}
	if n.IsToken() {
		return TokenAtOffset{Left: n, Right: n}
	}
	var out TokenAtOffset
	for _, c := range n.Children() {
		cf, ct := c.Range()
		if offset < cf || offset > ct {
			continue
		}
		r := c.TokenAtOffset(offset)
		if out.Left == nil {
			out = r
		} else if r.Right != nil {
			out.Right = r.Right
		}
	}
	return out
}

// Dump renders the subtree with kinds and spans, one element per line.
func (n *Node) Dump() string {
	var sb strings.Builder
	n.dumpIndent(&sb, 0)
	return sb.String()
}

func (n *Node) dumpIndent(sb *strings.Builder, indent int) {
	for i := 0; i < indent; i++ {
		sb.WriteString("  ")
	}
	from, to := n.Range()
	fmt.Fprintf(sb, "%s [%d-%d]", n.Kind(), from, to)
	if n.IsToken() {
		fmt.Fprintf(sb, " %q", n.Text())
	}
	sb.WriteByte('\n')
	for _, c := range n.Children() {
		c.dumpIndent(sb, indent+1)
	}
}
