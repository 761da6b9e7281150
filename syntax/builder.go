package syntax

// Builder assembles a green tree from a stream of start-node, token and
// finish-node events. Checkpoint and StartNodeAt allow the parser to
// retroactively wrap already-emitted events in a new node once an
// ambiguous prefix has been resolved, without re-scanning any tokens.
type Builder struct {
	parents  []parentFrame
	children []GreenElement
}

type parentFrame struct {
	kind  SyntaxKind
	first int // index of the first child belonging to this node
}

// Checkpoint marks a position in the event stream for StartNodeAt.
type Checkpoint int

func NewBuilder() *Builder {
	return &Builder{}
}

// StartNode opens a new node of the given kind.
func (b *Builder) StartNode(kind SyntaxKind) {
	b.parents = append(b.parents, parentFrame{kind: kind, first: len(b.children)})
}

// Token appends a token to the currently open node.
func (b *Builder) Token(kind SyntaxKind, text string) {
	b.children = append(b.children, NewGreenToken(kind, text))
}

// FinishNode closes the most recently opened node, collapsing its
// children into a single green node.
func (b *Builder) FinishNode() {
	if len(b.parents) == 0 {
		panic("syntax: FinishNode without matching StartNode")
	}
	frame := b.parents[len(b.parents)-1]
	b.parents = b.parents[:len(b.parents)-1]
	children := make([]GreenElement, len(b.children)-frame.first)
	copy(children, b.children[frame.first:])
	b.children = append(b.children[:frame.first], NewGreenNode(frame.kind, children))
}

// Checkpoint records the current position in the event stream. Events
// emitted after the checkpoint can later be wrapped with StartNodeAt.
func (b *Builder) Checkpoint() Checkpoint {
	return Checkpoint(len(b.children))
}

// StartNodeAt opens a node of the given kind as if StartNode had been
// called when the checkpoint was taken: everything emitted since then
// becomes part of the new node once it is finished.
func (b *Builder) StartNodeAt(cp Checkpoint, kind SyntaxKind) {
	first := int(cp)
	if first > len(b.children) {
		panic("syntax: checkpoint out of range")
	}
	if n := len(b.parents); n > 0 && first < b.parents[n-1].first {
		panic("syntax: checkpoint crosses an unfinished node")
	}
	b.parents = append(b.parents, parentFrame{kind: kind, first: first})
}

// Finish closes the builder and returns the root node. All started
// nodes must have been finished.
func (b *Builder) Finish() *GreenNode {
	if len(b.parents) != 0 {
		panic("syntax: Finish with unfinished nodes")
	}
	if len(b.children) == 1 {
		if root, ok := b.children[0].(*GreenNode); ok {
			return root
		}
	}
	return NewGreenNode(NodeRoot, b.children)
}
