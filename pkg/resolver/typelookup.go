package resolver

import "github.com/odvcencio/modelicals/pkg/reference"

// typeLookup takes a resolved variable reference, extracts its declared
// type specifier, and resolves it as a class reference. A builtin type
// (Real, Integer, Boolean, String, ...) names no class anywhere in a
// loaded library, so lookup fails not-found once every candidate is
// exhausted.
func (r *Resolver) typeLookup(v reference.Resolved) (*reference.Resolved, error) {
	if v.Kind != reference.KindVariable {
		return nil, invariantf("type-lookup requires a variable reference, got kind %s", v.Kind)
	}

	path, global, ok := typeSpecifierOf(v.Node)
	if !ok {
		return nil, notFoundf("%s has no resolvable type specifier (likely a builtin type)", v.Path)
	}

	if global {
		return r.resolveAbsolute(reference.NewAbsolute(path, reference.KindClass))
	}
	rel := reference.NewRelative(path, reference.KindClass, v.DocumentPath, v.Node)
	return r.resolveRelative(rel)
}
