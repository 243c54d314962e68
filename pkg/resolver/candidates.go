package resolver

import (
	"log/slog"

	"github.com/odvcencio/modelicals/pkg/reference"
	"github.com/odvcencio/modelicals/pkg/syntax"
)

// candidate is one entry the generator yields: either an absolute reference
// still to be walked, or (the import-alias declaration-site case) a
// reference that is already resolved the moment it is produced, since it
// names a node in the referencing document itself rather than anything
// reachable by walking library roots.
type candidate struct {
	abs      reference.Absolute
	resolved *reference.Resolved
}

func absCandidate(abs reference.Absolute) candidate { return candidate{abs: abs} }

func resolvedCandidate(resolved reference.Resolved) candidate { return candidate{resolved: &resolved} }

// resolveRelative implements relative-to-absolute promotion: it builds a
// lazy candidate generator from the anchor's enclosing scopes and tries
// each candidate through the absolute walk in turn, stopping at the first
// success.
func (r *Resolver) resolveRelative(rel reference.Relative) (*reference.Resolved, error) {
	doc, ok, err := r.project.GetDocument(rel.DocumentPath, true)
	if err != nil {
		return nil, internalf(err, "reloading document %s", rel.DocumentPath)
	}
	if !ok {
		return nil, internalf(nil, "document %s not loaded", rel.DocumentPath)
	}

	gen := newCandidateGenerator(doc.WithinPath(), rel.Anchor, rel.Path, rel.Kind, rel.DocumentPath)

	for {
		cand, ok := gen.next()
		if !ok {
			break
		}
		if cand.resolved != nil {
			return cand.resolved, nil
		}
		resolved, err := r.resolveAbsolute(cand.abs)
		if err == nil {
			return resolved, nil
		}
		if kindOf(err) != KindNotFound {
			slog.Warn("resolver: candidate failed", "candidate", cand.abs, "err", err)
		}
	}
	return nil, notFoundf("no candidate resolved %s", rel.Path)
}

// candidateGenerator is a lazy iterator: the idiomatic Go substitute for an
// explicit generator/iterator object is a step function that computes one
// syntax-tree level's worth of candidates at a time, only as the caller
// asks for more.
type candidateGenerator struct {
	within        reference.Path
	ancestorNodes []syntax.Node // innermost first
	ancestorNames []string      // innermost first
	symbols       reference.Path
	kind          reference.Kind
	documentPath  string

	level   int
	pending []candidate
	done    bool
}

func newCandidateGenerator(within reference.Path, anchor syntax.Node, symbols reference.Path, kind reference.Kind, documentPath string) *candidateGenerator {
	nodes, names := enclosingClasses(anchor)
	return &candidateGenerator{
		within:        within,
		ancestorNodes: nodes,
		ancestorNames: names,
		symbols:       symbols,
		kind:          kind,
		documentPath:  documentPath,
	}
}

// next returns the next candidate, computing a fresh batch from the current
// scope level only when the previous batch is exhausted.
func (g *candidateGenerator) next() (candidate, bool) {
	for {
		if len(g.pending) > 0 {
			c := g.pending[0]
			g.pending = g.pending[1:]
			return c, true
		}
		if g.done {
			return candidate{}, false
		}
		g.pending = g.computeLevel(g.level)
		g.level++
		if g.level > len(g.ancestorNames)+len(g.within) {
			g.done = true
		}
	}
}

// computeLevel produces the candidates contributed by one scope level. The
// walk realizes Modelica's rule that an unqualified name may resolve at the
// enclosing class, any further enclosing class, or any enclosing package
// named by the document's within clause, inner scopes winning: it is a
// single prefix walk over (within ++ ancestors), dropping the innermost
// remaining component one at a time until nothing is left (the bare symbol
// path, letting an unqualified name match a top-level library name
// directly). Import clauses are only attached at levels that still
// correspond to a real enclosing class node.
func (g *candidateGenerator) computeLevel(level int) []candidate {
	n := len(g.ancestorNames)
	m := len(g.within)

	var classPath reference.Path
	var imports []candidate
	if level < n {
		kept := reverseStrings(g.ancestorNames[level:])
		classPath = append(append(reference.Path{}, g.within...), kept...)
		imports = importCandidates(g.ancestorNodes[level], g.symbols, g.kind, g.documentPath)
	} else {
		dropped := level - n
		classPath = append(reference.Path{}, g.within[:m-dropped]...)
	}

	out := []candidate{absCandidate(reference.NewAbsolute(classPath.Append(g.symbols...), g.kind))}
	return append(out, imports...)
}
