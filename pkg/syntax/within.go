package syntax

// WithinClausePath extracts the dotted path named by the first within_clause
// found under (or at) root. found is false when no within_clause is present
// at all (as if the file omitted it entirely). A present-but-empty clause
// ("within;") reports found=true with a nil path, distinguishing "no
// declared enclosing package" from "declared to have none".
func WithinClausePath(root Node) (path []Node, found bool) {
	clause := root
	if clause == nil || clause.Kind() != KindWithinClause {
		clause = FindFirst(root, func(c Node) bool { return c.Kind() == KindWithinClause })
	}
	if clause == nil {
		return nil, false
	}
	nameNode := clause.ChildByFieldName(FieldName)
	if nameNode == nil {
		return nil, true
	}
	return NameIdentifiers(nameNode), true
}
