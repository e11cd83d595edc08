package grammar

import (
	"github.com/nihei9/lrforge/grammar/symbol"
)

// firstEntry is the FIRST set of one grammar symbol: the terminals that can
// begin a string derived from it, plus a flag recording whether it can also
// derive ε. Grounded on vartan's firstEntry/firstSet shape.
type firstEntry struct {
	symbols map[symbol.Symbol]struct{}
	empty   bool
}

func newFirstEntry() *firstEntry {
	return &firstEntry{symbols: map[symbol.Symbol]struct{}{}}
}

func (e *firstEntry) add(sym symbol.Symbol) bool {
	if _, ok := e.symbols[sym]; ok {
		return false
	}
	e.symbols[sym] = struct{}{}
	return true
}

func (e *firstEntry) addEmpty() bool {
	if e.empty {
		return false
	}
	e.empty = true
	return true
}

func (e *firstEntry) mergeExceptEmpty(other *firstEntry) bool {
	changed := false
	for sym := range other.symbols {
		if e.add(sym) {
			changed = true
		}
	}
	return changed
}

// FirstSet holds FIRST(X) for every non-terminal X of a grammar, computed
// once by fixed-point iteration over all productions.
type FirstSet struct {
	set map[symbol.Symbol]*firstEntry
}

// ComputeFirstSet runs the standard worklist-free fixed-point computation:
// repeat a full pass over every production until no entry changes. Grounded
// on vartan's genFirstSet and cross-checked against
// LR1Automaton.computeFirstSets for the epsilon/terminal short-circuit
// rules.
func ComputeFirstSet(prods *ProductionSet) *FirstSet {
	fst := &FirstSet{set: map[symbol.Symbol]*firstEntry{}}
	for _, p := range prods.All() {
		if _, ok := fst.set[p.LHS]; !ok {
			fst.set[p.LHS] = newFirstEntry()
		}
	}

	for {
		changed := false
		for _, p := range prods.All() {
			acc := fst.set[p.LHS]
			if firstOfProduction(fst, acc, p) {
				changed = true
			}
		}
		if !changed {
			break
		}
	}
	return fst
}

func firstOfProduction(fst *FirstSet, acc *firstEntry, p *Production) bool {
	if p.IsEmpty() {
		return acc.addEmpty()
	}
	changed := false
	for _, sym := range p.RHS {
		if sym.IsTerminal() {
			if acc.add(sym) {
				changed = true
			}
			return changed
		}
		e, ok := fst.set[sym]
		if !ok {
			e = newFirstEntry()
			fst.set[sym] = e
		}
		if acc.mergeExceptEmpty(e) {
			changed = true
		}
		if !e.empty {
			return changed
		}
	}
	if acc.addEmpty() {
		changed = true
	}
	return changed
}

func (fst *FirstSet) entryOf(sym symbol.Symbol) *firstEntry {
	e, ok := fst.set[sym]
	if !ok {
		// An unregistered symbol is treated as an external terminal (e.g.
		// $) whose FIRST is itself, per LR1Automaton.computeFirstOfSequence.
		e = newFirstEntry()
		e.add(sym)
		fst.set[sym] = e
	}
	return e
}

// Of returns the terminals that can begin sym, and whether sym can derive
// ε. Terminal symbols trivially have FIRST(sym) = {sym}.
func (fst *FirstSet) Of(sym symbol.Symbol) ([]symbol.Symbol, bool) {
	if sym.IsTerminal() {
		return []symbol.Symbol{sym}, false
	}
	e := fst.entryOf(sym)
	out := make([]symbol.Symbol, 0, len(e.symbols))
	for s := range e.symbols {
		out = append(out, s)
	}
	return out, e.empty
}

// OfSequence computes FIRST(X1...Xn) for a sequence of symbols, including
// the trailing lookahead symbol used when closing an LR(1) item, per
// LR1Automaton.computeFirstOfSequence: if every Xi in a prefix can derive ε,
// FIRST includes the first non-nullable Xi's FIRST set; if the whole
// sequence is nullable, ε is included too.
func (fst *FirstSet) OfSequence(seq []symbol.Symbol) map[symbol.Symbol]struct{} {
	result := map[symbol.Symbol]struct{}{}
	allNullable := true
	for _, sym := range seq {
		terms, nullable := fst.Of(sym)
		for _, t := range terms {
			result[t] = struct{}{}
		}
		if !nullable {
			allNullable = false
			break
		}
	}
	if allNullable {
		result[symbol.Epsilon] = struct{}{}
	}
	return result
}
