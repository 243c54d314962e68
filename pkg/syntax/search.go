package syntax

// Predicate reports whether a node matches a search.
type Predicate func(Node) bool

// WalkAction controls a ForEach traversal: WalkContinue visits a node's
// children, WalkSkip prunes them.
type WalkAction bool

const (
	WalkContinue WalkAction = true
	WalkSkip     WalkAction = false
)

// Visitor is called for every node in a pre-order walk. Returning false
// prunes that node's subtree.
type Visitor func(Node) WalkAction

// FindFirst performs a pre-order depth-first search from root and returns
// the first node for which predicate holds, or nil.
func FindFirst(root Node, predicate Predicate) Node {
	if root == nil {
		return nil
	}
	if predicate(root) {
		return root
	}
	for i, n := 0, root.ChildCount(); i < n; i++ {
		child := root.Child(i)
		if child == nil {
			continue
		}
		if found := FindFirst(child, predicate); found != nil {
			return found
		}
	}
	return nil
}

// FindParent walks parent pointers upward from node, starting at its
// immediate parent, until predicate holds or the root is passed.
func FindParent(node Node, predicate Predicate) Node {
	if node == nil {
		return nil
	}
	for cur := node.Parent(); cur != nil; cur = cur.Parent() {
		if predicate(cur) {
			return cur
		}
	}
	return nil
}

// ForEach performs a pre-order walk of root, calling visit on every node.
// A visitor returning WalkSkip prunes that node's subtree.
func ForEach(root Node, visit Visitor) {
	if root == nil {
		return
	}
	if visit(root) == WalkSkip {
		return
	}
	for i, n := 0, root.ChildCount(); i < n; i++ {
		child := root.Child(i)
		if child == nil {
			continue
		}
		ForEach(child, visit)
	}
}
