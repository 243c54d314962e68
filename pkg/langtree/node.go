package langtree

import (
	sitter "github.com/smacker/go-tree-sitter"

	"github.com/odvcencio/modelicals/pkg/syntax"
)

// Node adapts a *sitter.Node to pkg/syntax.Node. It carries the source
// buffer alongside the node because tree-sitter nodes only know their byte
// range, not their text; Content needs the buffer to slice it out.
type Node struct {
	n   *sitter.Node
	src []byte
}

// wrap adapts n, returning a nil syntax.Node (not a non-nil interface
// wrapping a nil *Node) when n is nil.
func wrap(n *sitter.Node, src []byte) syntax.Node {
	if n == nil {
		return nil
	}
	return &Node{n: n, src: src}
}

func (n *Node) Kind() string { return n.n.Type() }
func (n *Node) Text() string { return n.n.Content(n.src) }

func (n *Node) StartByte() int { return int(n.n.StartByte()) }
func (n *Node) EndByte() int   { return int(n.n.EndByte()) }

func (n *Node) StartPosition() syntax.Position { return pointToPosition(n.n.StartPoint()) }
func (n *Node) EndPosition() syntax.Position   { return pointToPosition(n.n.EndPoint()) }

func (n *Node) ChildCount() int { return int(n.n.ChildCount()) }

func (n *Node) Child(i int) syntax.Node {
	if i < 0 || i >= n.ChildCount() {
		return nil
	}
	return wrap(n.n.Child(i), n.src)
}

func (n *Node) NamedChildCount() int { return int(n.n.NamedChildCount()) }

func (n *Node) NamedChild(i int) syntax.Node {
	if i < 0 || i >= n.NamedChildCount() {
		return nil
	}
	return wrap(n.n.NamedChild(i), n.src)
}

func (n *Node) ChildByFieldName(name string) syntax.Node {
	return wrap(n.n.ChildByFieldName(name), n.src)
}

func (n *Node) Parent() syntax.Node { return wrap(n.n.Parent(), n.src) }

func pointToPosition(p sitter.Point) syntax.Position {
	return syntax.Position{Row: int(p.Row), Column: int(p.Column)}
}
