package grammar

import (
	"fmt"

	lrerr "github.com/nihei9/lrforge/error"
	"github.com/nihei9/lrforge/grammar/symbol"
)

type ActionKind int

const (
	ActionError ActionKind = iota
	ActionShift
	ActionReduce
	ActionAccept
)

// Action is one ACTION table entry (spec §3), tagged by kind the way
// vartan's actionEntry.describe() is, rather than vartan's packed-integer
// encoding, since the table here is built and consulted in memory rather
// than serialized symbol-by-symbol.
type Action struct {
	Kind  ActionKind
	State int         // valid when Kind == ActionShift
	Prod  *Production // valid when Kind == ActionReduce
}

// Table is the ACTION/GOTO table of spec §4.G, plus every TableConflict
// accumulated while filling it.
type Table struct {
	InitialState int
	Action       []map[symbol.Symbol]*Action
	GoTo         []map[symbol.Symbol]int
	Conflicts    []*lrerr.TableConflict
}

// BuildOptions controls table construction. StrictConflicts is the
// Supplemental Feature opt-in: when true, the first conflict aborts the
// build with an error instead of being resolved first-writer-wins and
// accumulated.
type BuildOptions struct {
	StrictConflicts bool
}

// BuildLALR1Table merges the canonical LR(1) collection into LALR(1) states
// by kernel, then fills ACTION/GOTO over the merged states. Grounded on
// LALR1Table.build/fillActionGoto.
func BuildLALR1Table(g *Grammar, automaton *LR1Automaton, opts BuildOptions) (*Table, error) {
	groups, lr1ToLALR := mergeByKernel(automaton)

	merged := make([]*ItemSet, len(groups))
	for i, group := range groups {
		set := NewItemSet()
		for _, lr1Idx := range group {
			for _, it := range automaton.States[lr1Idx].Items() {
				set.Add(it)
			}
		}
		merged[i] = set
	}

	mergedTransitions := make([]map[symbol.Symbol]int, len(merged))
	for i := range mergedTransitions {
		mergedTransitions[i] = map[symbol.Symbol]int{}
	}
	for lr1Idx, row := range automaton.Transitions {
		srcLALR := lr1ToLALR[lr1Idx]
		for sym, lr1Target := range row {
			mergedTransitions[srcLALR][sym] = lr1ToLALR[lr1Target]
		}
	}

	tab := &Table{
		InitialState: lr1ToLALR[0],
		Action:       make([]map[symbol.Symbol]*Action, len(merged)),
		GoTo:         make([]map[symbol.Symbol]int, len(merged)),
	}

	for s := range merged {
		tab.Action[s] = map[symbol.Symbol]*Action{}
		tab.GoTo[s] = map[symbol.Symbol]int{}

		for sym, target := range mergedTransitions[s] {
			if sym.IsNonTerminal() {
				tab.GoTo[s][sym] = target
			}
		}

		for _, it := range merged[s].Items() {
			next := it.SymbolAfterDot()
			switch {
			case !next.IsNil() && next.IsTerminal():
				target, ok := mergedTransitions[s][next]
				if !ok {
					continue
				}
				if err := tab.setAction(s, next, &Action{Kind: ActionShift, State: target}, opts); err != nil {
					return nil, err
				}

			case next.IsNil() && it.Prod.LHS == g.AugmentedStart:
				if it.Lookahead == symbol.EOF {
					if err := tab.setAction(s, symbol.EOF, &Action{Kind: ActionAccept}, opts); err != nil {
						return nil, err
					}
				}

			case next.IsNil():
				if err := tab.setAction(s, it.Lookahead, &Action{Kind: ActionReduce, Prod: it.Prod}, opts); err != nil {
					return nil, err
				}
			}
		}
	}

	return tab, nil
}

// mergeByKernel groups LR(1) state indices sharing an identical kernel
// (production+dot, ignoring lookahead) into LALR(1) states, returning the
// groups in discovery order and a lookup from LR(1) index to its group's
// index. Grounded on LALR1Table.build's kernelToStates map.
func mergeByKernel(automaton *LR1Automaton) ([][]int, []int) {
	groupOf := map[string]int{}
	var groups [][]int
	lr1ToLALR := make([]int, len(automaton.States))

	for i, state := range automaton.States {
		key := kernelSetKey(state.Kernels())
		g, ok := groupOf[key]
		if !ok {
			g = len(groups)
			groupOf[key] = g
			groups = append(groups, nil)
		}
		groups[g] = append(groups[g], i)
		lr1ToLALR[i] = g
	}
	return groups, lr1ToLALR
}

// setAction installs action at [state, sym], resolving a collision
// first-writer-wins and recording a TableConflict, or returning an error
// immediately if opts.StrictConflicts is set. Grounded on
// LALR1Table.fillActionGoto's conflict branches.
func (t *Table) setAction(state int, sym symbol.Symbol, action *Action, opts BuildOptions) error {
	existing, occupied := t.Action[state][sym]
	if !occupied {
		t.Action[state][sym] = action
		return nil
	}
	if existing.Kind == ActionReduce && action.Kind == ActionReduce && existing.Prod.Equals(action.Prod) {
		return nil
	}
	if existing.Kind == ActionShift && action.Kind == ActionShift && existing.State == action.State {
		return nil
	}

	// Per spec §6, a Shift/Reduce message always reads "SHIFT m vs REDUCE p"
	// regardless of which of existing/action is the shift, so the two
	// descriptions are ordered by kind rather than by first-writer status.
	first, second := existing, action
	if conflictKind(existing, action) == "Shift/Reduce" && existing.Kind != ActionShift {
		first, second = action, existing
	}

	conflict := &lrerr.TableConflict{
		State:     state,
		Terminal:  sym.Name,
		Kind:      conflictKind(existing, action),
		Chosen:    describeAction(first),
		Discarded: describeAction(second),
	}
	if opts.StrictConflicts {
		return &strictConflictError{conflict}
	}
	// Several items of one merged state can collide with the same retained
	// entry (e.g. two shift items differing only in lookahead); record each
	// distinct conflict once.
	for _, c := range t.Conflicts {
		if *c == *conflict {
			return nil
		}
	}
	t.Conflicts = append(t.Conflicts, conflict)
	return nil
}

func conflictKind(a, b *Action) string {
	if a.Kind == ActionReduce && b.Kind == ActionReduce {
		return "Reduce/Reduce"
	}
	return "Shift/Reduce"
}

func describeAction(a *Action) string {
	switch a.Kind {
	case ActionShift:
		return fmt.Sprintf("SHIFT %d", a.State)
	case ActionReduce:
		return fmt.Sprintf("REDUCE %s", a.Prod.String())
	case ActionAccept:
		return "ACCEPT"
	default:
		return "ERROR"
	}
}

type strictConflictError struct {
	conflict *lrerr.TableConflict
}

func (e *strictConflictError) Error() string {
	return e.conflict.String()
}
