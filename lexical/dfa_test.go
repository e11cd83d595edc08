package lexical

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func buildDFA(t *testing.T, regex string, alphabet []byte) *DFA {
	t.Helper()
	nfa, err := Compile(regex)
	require.NoError(t, err)
	return BuildDFA(nfa, alphabet)
}

func TestSingleCharRegex(t *testing.T) {
	dfa := buildDFA(t, "a", []byte{'a'})
	assert.True(t, dfa.Accepts("a"))
	assert.False(t, dfa.Accepts(""))
	assert.False(t, dfa.Accepts("aa"))
}

func TestKleeneStar(t *testing.T) {
	dfa := buildDFA(t, "a*", []byte{'a', 'b'})
	assert.True(t, dfa.Accepts(""))
	assert.True(t, dfa.Accepts("a"))
	assert.True(t, dfa.Accepts("aaaa"))
	assert.False(t, dfa.Accepts("b"))
}

func TestEndToEndScenario1(t *testing.T) {
	// a(b|c)* over {a,b,c}
	dfa := buildDFA(t, "a(b|c)*", []byte{'a', 'b', 'c'})
	for _, s := range []string{"a", "abc", "acbbc"} {
		assert.True(t, dfa.Accepts(s), s)
	}
	for _, s := range []string{"", "b", "abca "} {
		assert.False(t, dfa.Accepts(s), s)
	}
}

func TestEndToEndScenario2(t *testing.T) {
	// a?b+ over {a,b}
	dfa := buildDFA(t, "a?b+", []byte{'a', 'b'})
	for _, s := range []string{"b", "ab", "bbb", "abbb"} {
		assert.True(t, dfa.Accepts(s), s)
	}
	for _, s := range []string{"", "a", "ba"} {
		assert.False(t, dfa.Accepts(s), s)
	}
}

func TestEndToEndScenario6(t *testing.T) {
	// a|b·c over {a,b,c}; postfix is abc·|
	postfix, err := ToPostfix("a|b·c")
	require.NoError(t, err)
	assert.Equal(t, "abc·|", postfix)

	nfa, err := BuildNFA(postfix)
	require.NoError(t, err)
	dfa := BuildDFA(nfa, []byte{'a', 'b', 'c'})

	assert.True(t, dfa.Accepts("a"))
	assert.True(t, dfa.Accepts("bc"))
	for _, s := range []string{"ab", "b", "c"} {
		assert.False(t, dfa.Accepts(s), s)
	}
}

func TestDFADeterminism(t *testing.T) {
	dfa := buildDFA(t, "a(b|c)*", []byte{'a', 'b', 'c'})
	for _, st := range dfa.States {
		seen := map[byte]bool{}
		for a := range st.Transitions() {
			assert.False(t, seen[a], "duplicate transition on %q in state %d", a, st.ID)
			seen[a] = true
		}
	}
}

func TestDFAFinalityMatchesNFAStates(t *testing.T) {
	nfa, err := Compile("a*")
	require.NoError(t, err)
	dfa := BuildDFA(nfa, []byte{'a'})
	for _, st := range dfa.States {
		assert.Equal(t, isAnyFinal(nfa, st.nfaStates), st.IsFinal)
	}
}

func TestUncoveredRunes(t *testing.T) {
	postfix, err := ToPostfix("a(b|c)*")
	require.NoError(t, err)
	missing := UncoveredRunes(postfix, []byte{'a', 'b'})
	assert.Equal(t, []byte{'c'}, missing)

	missing = UncoveredRunes(postfix, []byte{'a', 'b', 'c'})
	assert.Empty(t, missing)
}

func TestNFAAndDFAAgreeOnAcceptance(t *testing.T) {
	cases := []string{"", "a", "ab", "abc", "acbbc", "b"}
	alphabet := []byte{'a', 'b', 'c'}
	nfa, err := Compile("a(b|c)*")
	require.NoError(t, err)
	dfa := BuildDFA(nfa, alphabet)

	for _, w := range cases {
		assert.Equal(t, nfaAccepts(nfa, alphabet, w), dfa.Accepts(w), w)
	}
}

// nfaAccepts is a reference acceptance check over the NFA itself (via
// repeated epsilon-closure/move), used only to cross-check the DFA in
// tests per spec §8's NFA/DFA acceptance-agreement law.
func nfaAccepts(nfa *NFA, alphabet []byte, input string) bool {
	cur := epsilonClosure(nfa, []stateID{nfa.Start})
	for i := 0; i < len(input); i++ {
		moved := move(nfa, cur, input[i])
		if len(moved) == 0 {
			return false
		}
		cur = epsilonClosure(nfa, moved)
	}
	return isAnyFinal(nfa, cur)
}
