package lexical

import (
	"fmt"

	lrerr "github.com/nihei9/lrforge/error"
)

// stateID indexes into an NFA's state arena. Per Design Notes §9, states
// are addressed by stable index rather than pointer, which also gives free
// identity-equality and makes the arena trivially serializable.
type stateID int

const epsilon = rune(0) // sentinel label marking an ε-transition

type transition struct {
	label  byte // meaningless when eps is true
	eps    bool
	target stateID
}

// nfaState is a node with an outgoing transition list and a finality flag.
// Two states are never equal except by identity (their stateID).
type nfaState struct {
	isFinal     bool
	transitions []transition
}

// NFA is Thompson's (startState, endState) fragment pair, backed by a
// shared arena of states. endState.isFinal is true only for the outermost
// fragment; inner fragments clear it as they are composed (spec §3).
type NFA struct {
	states []*nfaState
	Start  stateID
	End    stateID
}

func newArena() []*nfaState {
	return []*nfaState{}
}

func (n *NFA) newState() stateID {
	n.states = append(n.states, &nfaState{})
	return stateID(len(n.states) - 1)
}

func (n *NFA) state(id stateID) *nfaState {
	return n.states[id]
}

func (n *NFA) addTransition(from, to stateID, label byte, eps bool) {
	n.state(from).transitions = append(n.state(from).transitions, transition{label: label, eps: eps, target: to})
}

// fragment is an NFA under construction sharing one arena with its
// siblings; composing two fragments never copies states, only links them.
type fragment struct {
	arena *NFA
	start stateID
	end   stateID
}

// BuildNFA runs Thompson's construction over a postfix regex (as produced
// by ToPostfix) and returns the resulting NFA. Grounded on
// original_source RegexParser.buildNfaFromPostfix.
func BuildNFA(postfix string) (*NFA, error) {
	if postfix == "" {
		return nil, &lrerr.MalformedRegexError{Regex: postfix, Cause: fmt.Errorf("empty postfix expression")}
	}

	arena := &NFA{states: newArena()}
	var stack []fragment

	pop1 := func(op byte) (fragment, error) {
		if len(stack) < 1 {
			return fragment{}, &lrerr.MalformedRegexError{Regex: postfix, Cause: fmt.Errorf("operator %q requires one operand", op)}
		}
		f := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		return f, nil
	}
	pop2 := func(op byte) (fragment, fragment, error) {
		if len(stack) < 2 {
			return fragment{}, fragment{}, &lrerr.MalformedRegexError{Regex: postfix, Cause: fmt.Errorf("operator %q requires two operands", op)}
		}
		right := stack[len(stack)-1]
		left := stack[len(stack)-2]
		stack = stack[:len(stack)-2]
		return left, right, nil
	}

	for i := 0; i < len(postfix); i++ {
		c := postfix[i]
		switch {
		case IsOperand(c):
			start := arena.newState()
			end := arena.newState()
			arena.state(end).isFinal = true
			arena.addTransition(start, end, c, false)
			stack = append(stack, fragment{arena: arena, start: start, end: end})

		case c == ConcatOp:
			left, right, err := pop2(c)
			if err != nil {
				return nil, err
			}
			arena.addTransition(left.end, right.start, 0, true)
			arena.state(left.end).isFinal = false
			stack = append(stack, fragment{arena: arena, start: left.start, end: right.end})

		case c == '|':
			left, right, err := pop2(c)
			if err != nil {
				return nil, err
			}
			start := arena.newState()
			end := arena.newState()
			arena.addTransition(start, left.start, 0, true)
			arena.addTransition(start, right.start, 0, true)
			arena.addTransition(left.end, end, 0, true)
			arena.addTransition(right.end, end, 0, true)
			arena.state(left.end).isFinal = false
			arena.state(right.end).isFinal = false
			stack = append(stack, fragment{arena: arena, start: start, end: end})

		case c == '*':
			inner, err := pop1(c)
			if err != nil {
				return nil, err
			}
			start := arena.newState()
			end := arena.newState()
			arena.addTransition(start, end, 0, true)         // zero occurrences
			arena.addTransition(start, inner.start, 0, true) // one or more
			arena.addTransition(inner.end, inner.start, 0, true)
			arena.addTransition(inner.end, end, 0, true)
			arena.state(inner.end).isFinal = false
			stack = append(stack, fragment{arena: arena, start: start, end: end})

		case c == '+':
			inner, err := pop1(c)
			if err != nil {
				return nil, err
			}
			start := arena.newState()
			end := arena.newState()
			arena.addTransition(start, inner.start, 0, true)
			arena.addTransition(inner.end, inner.start, 0, true)
			arena.addTransition(inner.end, end, 0, true)
			arena.state(inner.end).isFinal = false
			stack = append(stack, fragment{arena: arena, start: start, end: end})

		case c == '?':
			inner, err := pop1(c)
			if err != nil {
				return nil, err
			}
			start := arena.newState()
			end := arena.newState()
			arena.addTransition(start, end, 0, true) // zero occurrences
			arena.addTransition(start, inner.start, 0, true)
			arena.addTransition(inner.end, end, 0, true)
			arena.state(inner.end).isFinal = false
			stack = append(stack, fragment{arena: arena, start: start, end: end})

		default:
			return nil, &lrerr.MalformedRegexError{Regex: postfix, Cause: fmt.Errorf("unknown operator %q in postfix expression", c)}
		}
	}

	if len(stack) != 1 {
		return nil, &lrerr.MalformedRegexError{Regex: postfix, Cause: fmt.Errorf("malformed postfix expression: %d fragments remain", len(stack))}
	}

	f := stack[0]
	arena.Start = f.start
	arena.End = f.end
	arena.state(f.end).isFinal = true
	return arena, nil
}

// Compile is the convenience entry point combining shunting-yard and
// Thompson construction: Compile(r) == BuildNFA(ToPostfix(r)).
func Compile(infixRegex string) (*NFA, error) {
	postfix, err := ToPostfix(infixRegex)
	if err != nil {
		return nil, err
	}
	return BuildNFA(postfix)
}
