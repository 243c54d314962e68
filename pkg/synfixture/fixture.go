// Package synfixture hand-builds pkg/syntax.Node trees for tests, standing
// in for the tree-sitter-backed parser the production binary links against.
// It lets pkg/resolver and pkg/document be exercised without a real
// Modelica grammar binary.
package synfixture

import "github.com/odvcencio/modelicals/pkg/syntax"

// Node is a fixture implementation of syntax.Node.
type Node struct {
	kind     string
	text     string
	start    syntax.Position
	end      syntax.Position
	startB   int
	endB     int
	children []*Node
	named    map[*Node]bool
	fields   map[string]*Node
	parent   *Node
}

// Leaf creates a token-like node with no children, spanning [startByte,endByte)
// at the given zero-based row/column range.
func Leaf(kind, text string, startByte, endByte int, startRow, startCol, endRow, endCol int) *Node {
	return &Node{
		kind:   kind,
		text:   text,
		startB: startByte,
		endB:   endByte,
		start:  syntax.Position{Row: startRow, Column: startCol},
		end:    syntax.Position{Row: endRow, Column: endCol},
		named:  map[*Node]bool{},
		fields: map[string]*Node{},
	}
}

// Branch creates a container node with no fixed span; use SetSpan to
// override the zero-value span once children are attached.
func Branch(kind string) *Node {
	return &Node{
		kind:   kind,
		named:  map[*Node]bool{},
		fields: map[string]*Node{},
	}
}

// SetSpan overrides n's byte and row/column span.
func (n *Node) SetSpan(startByte, endByte int, startRow, startCol, endRow, endCol int) *Node {
	n.startB, n.endB = startByte, endByte
	n.start = syntax.Position{Row: startRow, Column: startCol}
	n.end = syntax.Position{Row: endRow, Column: endCol}
	return n
}

// SetText overrides n's text slice (Branch nodes have no text by default).
func (n *Node) SetText(text string) *Node {
	n.text = text
	return n
}

// AddChild appends child as an anonymous (non-named) direct child.
func (n *Node) AddChild(child *Node) *Node {
	child.parent = n
	n.children = append(n.children, child)
	return n
}

// AddNamedChild appends child as a named direct child, without registering
// it under any grammar field name.
func (n *Node) AddNamedChild(child *Node) *Node {
	child.parent = n
	n.children = append(n.children, child)
	n.named[child] = true
	return n
}

// WithField appends child as a named direct child and registers it under
// the given grammar field name.
func (n *Node) WithField(name string, child *Node) *Node {
	n.AddNamedChild(child)
	n.fields[name] = child
	return n
}

func (n *Node) Kind() string { return n.kind }
func (n *Node) Text() string { return n.text }

func (n *Node) StartByte() int { return n.startB }
func (n *Node) EndByte() int   { return n.endB }

func (n *Node) StartPosition() syntax.Position { return n.start }
func (n *Node) EndPosition() syntax.Position   { return n.end }

func (n *Node) ChildCount() int { return len(n.children) }

func (n *Node) Child(i int) syntax.Node {
	if i < 0 || i >= len(n.children) {
		return nil
	}
	return n.children[i]
}

func (n *Node) NamedChildCount() int {
	count := 0
	for _, c := range n.children {
		if n.named[c] {
			count++
		}
	}
	return count
}

func (n *Node) NamedChild(i int) syntax.Node {
	idx := 0
	for _, c := range n.children {
		if !n.named[c] {
			continue
		}
		if idx == i {
			return c
		}
		idx++
	}
	return nil
}

func (n *Node) ChildByFieldName(name string) syntax.Node {
	child, ok := n.fields[name]
	if !ok {
		return nil
	}
	return child
}

func (n *Node) Parent() syntax.Node {
	if n.parent == nil {
		return nil
	}
	return n.parent
}
