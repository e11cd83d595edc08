package grammar

import (
	"fmt"
	"sort"

	"github.com/cnf/structhash"
	"github.com/nihei9/lrforge/grammar/symbol"
)

// Item is a canonical LR(1) item [A → α·β, a] (spec §3): a production, a
// dot position into its RHS, and a lookahead terminal. Grounded on
// LR1Item.java's (production, dotPosition, lookahead) triple.
type Item struct {
	Prod      *Production
	Dot       int
	Lookahead symbol.Symbol
}

func NewItem(prod *Production, dot int, lookahead symbol.Symbol) *Item {
	return &Item{Prod: prod, Dot: dot, Lookahead: lookahead}
}

// SymbolAfterDot returns the RHS symbol immediately after the dot, or
// symbol.Nil if the dot is at the end (the item is reducible).
func (it *Item) SymbolAfterDot() symbol.Symbol {
	if it.Dot >= len(it.Prod.RHS) {
		return symbol.Nil
	}
	return it.Prod.RHS[it.Dot]
}

func (it *Item) IsReducible() bool {
	return it.Dot == len(it.Prod.RHS)
}

// kernelKey is a hashable struct identifying an item's kernel membership:
// its production and dot position, excluding the lookahead. Two LR(1) items
// with the same kernelKey but different lookaheads belong to the same LALR
// merge group.
type kernelKey struct {
	LHS string
	RHS string
	Dot int
}

func (it *Item) kernel() kernelKey {
	return kernelKey{LHS: it.Prod.LHS.Name, RHS: it.Prod.String(), Dot: it.Dot}
}

// hash returns a stable, collision-resistant string key for it, used as the
// map key backing item sets and the canonical-collection worklist. Grounded
// on vartan's lrItemID, but uses cnf/structhash instead of a hand-rolled
// sha256 digest since Item (unlike vartan's lrItem) is a small
// already-exported struct with no pointer cycles.
func (it *Item) hash() string {
	h, err := structhash.Hash(struct {
		LHS  string
		RHS  []string
		Dot  int
		Look string
	}{
		LHS:  it.Prod.LHS.Name,
		RHS:  rhsNames(it.Prod.RHS),
		Dot:  it.Dot,
		Look: it.Lookahead.Name,
	}, 1)
	if err != nil {
		// structhash only fails on unsupported field types; our shape
		// above is a plain string/int/slice struct, so this is unreachable.
		panic(fmt.Sprintf("grammar: hashing LR(1) item: %v", err))
	}
	return h
}

func rhsNames(rhs []symbol.Symbol) []string {
	names := make([]string, len(rhs))
	for i, s := range rhs {
		names[i] = s.Name
	}
	return names
}

func (it *Item) String() string {
	lhs := it.Prod.LHS.Name
	var dotted string
	for i, s := range it.Prod.RHS {
		if i == it.Dot {
			dotted += "·"
		}
		dotted += s.Name + " "
	}
	if it.Dot == len(it.Prod.RHS) {
		dotted += "·"
	}
	return fmt.Sprintf("[%v → %v, %v]", lhs, dotted, it.Lookahead.Name)
}

// ItemSet is a deduplicated, hash-keyed collection of LR(1) items,
// representing one state of the canonical collection.
type ItemSet struct {
	byHash map[string]*Item
}

func NewItemSet() *ItemSet {
	return &ItemSet{byHash: map[string]*Item{}}
}

// Add inserts it if an equal item isn't already present, reporting whether
// it was newly added.
func (s *ItemSet) Add(it *Item) bool {
	h := it.hash()
	if _, ok := s.byHash[h]; ok {
		return false
	}
	s.byHash[h] = it
	return true
}

// Items returns every item in s, ordered by (LHS, RHS, dot, lookahead)
// rather than map iteration order. Several callers depend on this:
// BuildLALR1Table's first-writer-wins conflict resolution picks whichever
// item it visits first for a given state/terminal pair, so that visit order
// must be reproducible across runs for conflict diagnostics to be
// reproducible, per spec §5.
func (s *ItemSet) Items() []*Item {
	out := make([]*Item, 0, len(s.byHash))
	for _, it := range s.byHash {
		out = append(out, it)
	}
	sort.Slice(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if a.Prod.LHS.Name != b.Prod.LHS.Name {
			return a.Prod.LHS.Name < b.Prod.LHS.Name
		}
		ar, br := rhsNames(a.Prod.RHS), rhsNames(b.Prod.RHS)
		for k := 0; k < len(ar) && k < len(br); k++ {
			if ar[k] != br[k] {
				return ar[k] < br[k]
			}
		}
		if len(ar) != len(br) {
			return len(ar) < len(br)
		}
		if a.Dot != b.Dot {
			return a.Dot < b.Dot
		}
		return a.Lookahead.Name < b.Lookahead.Name
	})
	return out
}

func (s *ItemSet) Len() int {
	return len(s.byHash)
}

// Kernels returns the set of (production, dot) pairs present in s,
// discarding lookaheads. Two ItemSets with equal Kernels belong to the same
// LALR(1) state.
func (s *ItemSet) Kernels() map[kernelKey]struct{} {
	out := map[kernelKey]struct{}{}
	for _, it := range s.byHash {
		out[it.kernel()] = struct{}{}
	}
	return out
}

// kernelSetKey canonicalizes a Kernels() map into a single comparable
// string so it can key a map of kernel groups during LALR(1) merging.
func kernelSetKey(kernels map[kernelKey]struct{}) string {
	keys := make([]kernelKey, 0, len(kernels))
	for k := range kernels {
		keys = append(keys, k)
	}
	// Sort for a deterministic key regardless of map iteration order.
	sortKey := func(k kernelKey) string { return fmt.Sprintf("%s\x00%s\x00%d", k.LHS, k.RHS, k.Dot) }
	for i := 1; i < len(keys); i++ {
		for j := i; j > 0 && sortKey(keys[j-1]) > sortKey(keys[j]); j-- {
			keys[j-1], keys[j] = keys[j], keys[j-1]
		}
	}
	h, err := structhash.Hash(keys, 1)
	if err != nil {
		panic(fmt.Sprintf("grammar: hashing kernel set: %v", err))
	}
	return h
}
