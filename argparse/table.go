package argparse

import "strings"

// strcmp is a small readability wrapper around strings.Compare.
func strcmp(a, b string) int { return strings.Compare(a, b) }

// compare implements the per-descriptor comparator from §4.1.b: the
// token is the key, the descriptor is the record. A zero result means
// the descriptor matches the token (for prefix-matching dispositions,
// possibly one of several matches — bsearch below continues rightward
// to find the lexicographically greatest one).
func (d *Descriptor[V]) compare(t string) int {
	if d.kind == kindFlag || d.disposition == Separated || d.disposition == CanBeConcatenated {
		return strcmp(d.name, t)
	}

	// Concatenated or CanBeSeparated: prefix-aware.
	if !d.delim.ok {
		if strings.HasPrefix(t, d.name) {
			return 0
		}
		return strcmp(d.name, t)
	}

	if len(t) > len(d.name) && strings.HasPrefix(t, d.name) {
		next := t[len(d.name)]
		if next == d.delim.b {
			return 0
		}
		return int(d.delim.b) - int(next)
	}
	return strcmp(d.name, t)
}

// bsearch is the binary search over a sorted descriptor slice, extended
// so that equality does not short-circuit: after a match at mid, it
// recurses into the right remainder and prefers any later match. This is
// the mechanism by which e.g. "-include-pch" shadows "-include" when
// both are registered.
func bsearch[V any](items []*Descriptor[V], token string) *Descriptor[V] {
	if len(items) == 0 {
		return nil
	}
	mid := len(items) / 2
	switch c := items[mid].compare(token); {
	case c == 0:
		if mid+1 < len(items) {
			if after := bsearch(items[mid+1:], token); after != nil {
				return after
			}
		}
		return items[mid]
	case c > 0:
		return bsearch(items[:mid], token)
	default:
		return bsearch(items[mid+1:], token)
	}
}

// Table is a sorted set of Descriptors, or an ordered pair of such sets
// (primary/secondary layers), queryable by prefix-aware binary search.
// Tables are immutable after construction and safe to share across
// goroutines.
type Table[V any] struct {
	primary   []*Descriptor[V]
	secondary []*Descriptor[V] // nil for a non-layered table
}

// NewTable builds a single-layer table. descriptors must already be
// sorted ascending by flag spelling; EnableDebugAssertions makes this
// checked (and panics on violation) when a Parser is constructed over
// the table.
func NewTable[V any](descriptors ...*Descriptor[V]) *Table[V] {
	return &Table[V]{primary: descriptors}
}

// NewLayeredTable builds a two-layer table: primary is the base set,
// secondary augments or overrides it. A token matching in both layers
// resolves to the descriptor with the lexicographically greater
// spelling (§4.1.b step 2).
func NewLayeredTable[V any](primary, secondary []*Descriptor[V]) *Table[V] {
	return &Table[V]{primary: primary, secondary: secondary}
}

// Search performs the lookup described in §4.1.b. It returns nil if no
// descriptor matches token.
func (t *Table[V]) Search(token string) *Descriptor[V] {
	a := bsearch(t.primary, token)
	if t.secondary == nil {
		return a
	}
	b := bsearch(t.secondary, token)
	switch {
	case a == nil:
		return b
	case b == nil:
		return a
	case a.name > b.name:
		return a
	default:
		return b
	}
}

// checkSorted is invoked by NewParser under EnableDebugAssertions. It
// panics with a ccerr.DebugAssertion-flavored message naming the first
// out-of-order pair, mirroring the Rust debug_assert! in SearchableArgInfo::check.
func (t *Table[V]) checkSorted() {
	checkLayerSorted(t.primary)
	if t.secondary != nil {
		checkLayerSorted(t.secondary)
	}
}

func checkLayerSorted[V any](descriptors []*Descriptor[V]) {
	for i := 1; i < len(descriptors); i++ {
		if descriptors[i-1].name >= descriptors[i].name {
			panic("argparse: DebugAssertion: option table is not strictly ascending: " +
				descriptors[i-1].name + " must precede " + descriptors[i].name)
		}
	}
}
