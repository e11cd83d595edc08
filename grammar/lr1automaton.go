package grammar

import (
	"github.com/emirpasic/gods/stacks/linkedliststack"
	"github.com/nihei9/lrforge/grammar/symbol"
)

// LR1Automaton is the canonical collection of LR(1) item sets (spec §4.F):
// a numbered list of states and, for each state, the GOTO transition on
// every symbol that has one. Construction is grounded directly on
// LR1Automaton.java's closure/goTo/build rather than vartan's own LR(0)
// automaton: full LR(1) item sets (with lookaheads) must materialize
// before any LALR(1) merge happens, so the canonical collection and its
// item-set equality actually exist and are observable (spec §4.F/§8).
// vartan instead builds an LR(0) automaton and propagates lookaheads onto
// it, which never produces the canonical collection itself.
type LR1Automaton struct {
	States      []*ItemSet
	Transitions []map[symbol.Symbol]int // States[i] --sym--> Transitions[i][sym]
}

// Closure computes CLOSURE(items): the smallest superset of items closed
// under expanding every item whose dotted symbol is a non-terminal B,
// adding [B → ·γ, b] for each production B → γ and each terminal b in
// FIRST(βa), where β is the rest of the dotting item's RHS and a is its own
// lookahead. Grounded on LR1Automaton.closure.
func Closure(g *Grammar, fst *FirstSet, items *ItemSet) *ItemSet {
	closure := NewItemSet()
	work := linkedliststack.New()
	for _, it := range items.Items() {
		closure.Add(it)
		work.Push(it)
	}

	for !work.Empty() {
		v, _ := work.Pop()
		it := v.(*Item)
		b := it.SymbolAfterDot()
		if b.IsNil() || b.IsTerminal() {
			continue
		}

		betaA := append(append([]symbol.Symbol{}, it.Prod.RHS[it.Dot+1:]...), it.Lookahead)
		lookaheads := fst.OfSequence(betaA)

		for _, prod := range g.Productions.ByLHS(b) {
			for la := range lookaheads {
				if la == symbol.Epsilon {
					continue
				}
				newItem := NewItem(prod, 0, la)
				if closure.Add(newItem) {
					work.Push(newItem)
				}
			}
		}
	}
	return closure
}

// goTo moves the dot of every item in state that is dotted on sym, then
// closes the result. An empty state (sym has no item dotted on it) means no
// transition exists.
func goTo(g *Grammar, fst *FirstSet, state *ItemSet, sym symbol.Symbol) *ItemSet {
	moved := NewItemSet()
	for _, it := range state.Items() {
		if it.SymbolAfterDot() == sym {
			moved.Add(NewItem(it.Prod, it.Dot+1, it.Lookahead))
		}
	}
	if moved.Len() == 0 {
		return nil
	}
	return Closure(g, fst, moved)
}

// BuildLR1Automaton constructs the full canonical collection starting from
// [S' → ·S, $], via a worklist over states discovered so far. Grounded on
// LR1Automaton.build; state numbering follows discovery order (spec §5).
func BuildLR1Automaton(g *Grammar, fst *FirstSet) *LR1Automaton {
	symbols := append(append([]symbol.Symbol{}, g.Terminals()...), g.NonTerminals()...)

	start := NewItemSet()
	start.Add(NewItem(g.StartProduction(), 0, symbol.EOF))
	i0 := Closure(g, fst, start)

	automaton := &LR1Automaton{
		States:      []*ItemSet{i0},
		Transitions: []map[symbol.Symbol]int{{}},
	}
	indexByHash := map[string]int{itemSetHash(i0): 0}

	worklist := []int{0}
	for len(worklist) > 0 {
		i := worklist[0]
		worklist = worklist[1:]

		for _, sym := range symbols {
			j := goTo(g, fst, automaton.States[i], sym)
			if j == nil || j.Len() == 0 {
				continue
			}
			key := itemSetHash(j)
			jIdx, exists := indexByHash[key]
			if !exists {
				jIdx = len(automaton.States)
				automaton.States = append(automaton.States, j)
				automaton.Transitions = append(automaton.Transitions, map[symbol.Symbol]int{})
				indexByHash[key] = jIdx
				worklist = append(worklist, jIdx)
			}
			automaton.Transitions[i][sym] = jIdx
		}
	}

	return automaton
}

// itemSetHash canonicalizes an ItemSet's member item hashes into one
// comparable key, used to detect when goTo revisits a state already in the
// collection.
func itemSetHash(set *ItemSet) string {
	hashes := map[string]struct{}{}
	for _, it := range set.Items() {
		hashes[it.hash()] = struct{}{}
	}
	keys := make([]string, 0, len(hashes))
	for h := range hashes {
		keys = append(keys, h)
	}
	for i := 1; i < len(keys); i++ {
		for j := i; j > 0 && keys[j-1] > keys[j]; j-- {
			keys[j-1], keys[j] = keys[j], keys[j-1]
		}
	}
	out := ""
	for _, k := range keys {
		out += k
	}
	return out
}
