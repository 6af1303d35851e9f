package typeinfer

// widenUnion collapses a set of inferred types into the type a vertex
// should actually report, applying the widening rule:
//
//   - an IntegerLiteralType always widens to IntegerType, even when it is
//     the sole contributor (assignment of an integer literal is reported
//     as Integer, not the literal value)
//   - a StringLiteralType widens to StringType only when combined with a
//     string literal of a different value; a single literal contributor
//     keeps its literal form
//   - SymbolLiteralType and BoolType have no base type in the algebra and
//     always keep their literal form
//   - AnyType contributors are dropped unless they are the only thing
//     present, since a known type always dominates an unresolved one
//   - the result is deduplicated by rendered form and, when more than one
//     distinct type remains, wrapped in a UnionType preserving first-seen
//     order
//
// Called wherever the type-vertex kind table says "widened" or "union of
// branches"/"union of dependencies": Lvar and Ivar writes, IvarRead,
// If, Array elements, and Hash entry values.
func widenUnion(types []Type) Type {
	known := make([]Type, 0, len(types))
	for _, t := range types {
		if t == nil {
			continue
		}
		if isUnknownType(t) {
			continue
		}
		known = append(known, t)
	}
	if len(known) == 0 {
		if len(types) == 0 {
			return AnyType{}
		}
		return AnyType{}
	}

	widened := make([]Type, len(known))
	for i, t := range known {
		if _, ok := t.(IntegerLiteralType); ok {
			widened[i] = IntegerType{}
			continue
		}
		widened[i] = t
	}

	if len(widened) == 1 {
		return widened[0]
	}

	seen := make(map[string]bool)
	deduped := make([]Type, 0, len(widened))
	for _, t := range widened {
		key := t.ToTS()
		if seen[key] {
			continue
		}
		seen[key] = true
		deduped = append(deduped, widenLiteralAmongPeers(t, widened))
	}

	// Re-dedupe after base-widening string/symbol/bool literals that
	// collided with a differing peer of the same kind.
	seen = make(map[string]bool)
	final := make([]Type, 0, len(deduped))
	for _, t := range deduped {
		key := t.ToTS()
		if seen[key] {
			continue
		}
		seen[key] = true
		final = append(final, t)
	}

	if len(final) == 1 {
		return final[0]
	}
	return UnionType{Members: final}
}

// widenLiteralAmongPeers widens a string literal to StringType if any other
// peer is a string literal with a different value. Symbol and bool
// literals have no base type to widen to and are returned unchanged.
func widenLiteralAmongPeers(t Type, peers []Type) Type {
	switch lit := t.(type) {
	case StringLiteralType:
		for _, p := range peers {
			if other, ok := p.(StringLiteralType); ok && other.Value != lit.Value {
				return StringType{}
			}
		}
		return lit
	case SymbolLiteralType:
		for _, p := range peers {
			if other, ok := p.(SymbolLiteralType); ok && other.Value != lit.Value {
				return SymbolLiteralType{Value: lit.Value}
			}
		}
		return lit
	case BoolType:
		for _, p := range peers {
			if other, ok := p.(BoolType); ok && other.Value != lit.Value {
				// true and false widen together, but there is no bare
				// "Bool" base type in the closed algebra, so both sides
				// stay in the union as distinct literals.
				return lit
			}
		}
		return lit
	default:
		return t
	}
}
