package lexical

import (
	"fmt"
	"sort"

	"github.com/emirpasic/gods/sets/hashset"
	"github.com/emirpasic/gods/stacks/linkedliststack"
)

// DFAState carries the set of NFA states it represents (spec §3). Its
// finality is derived by existential quantification over that set, and its
// identity within a DFA is the slot it occupies in DFA.States; set-equality
// over nfaStates is used only during construction, to decide whether a
// transition target already exists.
type DFAState struct {
	ID          int
	nfaStates   map[stateID]struct{}
	IsFinal     bool
	transitions map[byte]int // input symbol -> index into DFA.States
}

// Transitions exposes the deterministic symbol->state map (at most one
// target per symbol, by construction).
func (s *DFAState) Transitions() map[byte]int {
	return s.transitions
}

// DFA is a start state plus every DFA state reachable from it (spec §3).
type DFA struct {
	Start  int
	States []*DFAState
}

func nfaStateSetKey(set map[stateID]struct{}) string {
	ids := make([]int, 0, len(set))
	for id := range set {
		ids = append(ids, int(id))
	}
	sort.Ints(ids)
	return fmt.Sprint(ids)
}

// epsilonClosure computes the smallest set containing the seed states and
// closed under ε-transitions, via a worklist. The closure of the empty set
// is empty. Grounded on NfaToDfaConverter.epsilonClosure, using a gods
// hashset for the visited/result set and a gods stack for the worklist,
// the direct Go analogues of the Java HashSet/Stack it uses.
func epsilonClosure(nfa *NFA, seed []stateID) map[stateID]struct{} {
	closure := map[stateID]struct{}{}
	seen := hashset.New()
	work := linkedliststack.New()

	for _, s := range seed {
		work.Push(s)
	}

	for !work.Empty() {
		v, _ := work.Pop()
		s := v.(stateID)
		if seen.Contains(s) {
			continue
		}
		seen.Add(s)
		closure[s] = struct{}{}

		for _, tr := range nfa.state(s).transitions {
			if tr.eps {
				work.Push(tr.target)
			}
		}
	}
	return closure
}

// move returns the set of states reachable from states by an a-labeled
// transition.
func move(nfa *NFA, states map[stateID]struct{}, a byte) []stateID {
	result := hashset.New()
	for s := range states {
		for _, tr := range nfa.state(s).transitions {
			if !tr.eps && tr.label == a {
				result.Add(tr.target)
			}
		}
	}
	out := make([]stateID, 0, result.Size())
	for _, v := range result.Values() {
		out = append(out, v.(stateID))
	}
	return out
}

func isAnyFinal(nfa *NFA, set map[stateID]struct{}) bool {
	for s := range set {
		if nfa.state(s).isFinal {
			return true
		}
	}
	return false
}

// BuildDFA converts nfa into a DFA via subset construction over the given
// alphabet (spec §4.C). The alphabet excludes ε; characters outside it
// never appear on a DFA transition. Discovery order (and thus DFA.States
// indices) follows first-occurrence order, per spec §5.
func BuildDFA(nfa *NFA, alphabet []byte) *DFA {
	dfa := &DFA{}
	byKey := map[string]int{}

	addState := func(nfaSet map[stateID]struct{}) int {
		key := nfaStateSetKey(nfaSet)
		if idx, ok := byKey[key]; ok {
			return idx
		}
		st := &DFAState{
			ID:          len(dfa.States),
			nfaStates:   nfaSet,
			IsFinal:     isAnyFinal(nfa, nfaSet),
			transitions: map[byte]int{},
		}
		dfa.States = append(dfa.States, st)
		byKey[key] = st.ID
		return st.ID
	}

	startSet := epsilonClosure(nfa, []stateID{nfa.Start})
	dfa.Start = addState(startSet)

	var worklist []int
	worklist = append(worklist, dfa.Start)
	processed := map[int]bool{}

	for len(worklist) > 0 {
		cur := worklist[0]
		worklist = worklist[1:]
		if processed[cur] {
			continue
		}
		processed[cur] = true

		state := dfa.States[cur]
		for _, a := range alphabet {
			moved := move(nfa, state.nfaStates, a)
			if len(moved) == 0 {
				continue
			}
			closure := epsilonClosure(nfa, moved)
			if len(closure) == 0 {
				continue
			}
			key := nfaStateSetKey(closure)
			next, existed := byKey[key]
			if !existed {
				next = addState(closure)
				worklist = append(worklist, next)
			}
			dfa.States[cur].transitions[a] = next
		}
	}

	return dfa
}

// Accepts reports whether the DFA accepts the input string, following
// transitions symbol by symbol and rejecting as soon as one is missing.
func (d *DFA) Accepts(input string) bool {
	cur := d.Start
	for i := 0; i < len(input); i++ {
		next, ok := d.States[cur].transitions[input[i]]
		if !ok {
			return false
		}
		cur = next
	}
	return d.States[cur].IsFinal
}

// UncoveredRunes reports characters appearing in the postfix expansion of a
// regex that are absent from the alphabet used to build the DFA. Per
// SPEC_FULL Supplemental Feature 2 / spec §9's open question, these
// characters make part of the regex unreachable, which the subset
// constructor otherwise leaves undetected.
func UncoveredRunes(postfix string, alphabet []byte) []byte {
	in := map[byte]bool{}
	for _, a := range alphabet {
		in[a] = true
	}
	seen := map[byte]bool{}
	var missing []byte
	for i := 0; i < len(postfix); i++ {
		c := postfix[i]
		if !IsOperand(c) || seen[c] {
			continue
		}
		seen[c] = true
		if !in[c] {
			missing = append(missing, c)
		}
	}
	sort.Slice(missing, func(i, j int) bool { return missing[i] < missing[j] })
	return missing
}
