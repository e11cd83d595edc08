// Package lexical turns regular expressions into deterministic finite
// automata: a shunting-yard preprocessor (this file), a Thompson
// construction NFA builder (nfa.go), and a subset-construction DFA builder
// (dfa.go).
package lexical

import (
	"fmt"
	"strings"

	lrerr "github.com/nihei9/lrforge/error"
)

// ConcatOp is the explicit concatenation operator inserted between adjacent
// operands/groups so the shunting-yard algorithm never has to guess where
// concatenation applies.
const ConcatOp = '·'

const metacharacters = "|*?+()" + string(ConcatOp)

// IsOperand reports whether c is a regular character rather than one of the
// reserved metacharacters `| * ? + ( ) ·`.
func IsOperand(c byte) bool {
	return !strings.ContainsRune(metacharacters, rune(c))
}

// InsertConcatenation inserts ConcatOp between adjacent characters c1, c2
// whenever c1 can end an operand/group and c2 can start one. Applying it to
// an already-explicit string is the identity, since an inserted `·` is
// itself neither a left- nor a right-continuer by the rules below: it
// never satisfies "c1 ∈ operands ∪ {), *, +, ?}".
func InsertConcatenation(regex string) string {
	if regex == "" {
		return regex
	}

	var out strings.Builder
	for i := 0; i < len(regex); i++ {
		c1 := regex[i]
		out.WriteByte(c1)

		if i+1 >= len(regex) {
			continue
		}
		c2 := regex[i+1]

		leftCanConcat := IsOperand(c1) || c1 == ')' || c1 == '*' || c1 == '+' || c1 == '?'
		rightCanConcat := IsOperand(c2) || c2 == '('
		if leftCanConcat && rightCanConcat {
			// ConcatOp is a single byte ('·' fits in one byte, U+00B7), and
			// every downstream scan (ToPostfix, BuildNFA) walks this string
			// byte by byte; WriteRune here would instead emit '·'s two-byte
			// UTF-8 encoding and desync those scans from this byte stream.
			out.WriteByte(ConcatOp)
		}
	}
	return out.String()
}

var precedence = map[byte]int{
	'|':      1,
	ConcatOp: 2,
	'*':      3,
	'+':      3,
	'?':      3,
}

// ToPostfix converts an infix regular expression (which may have implicit
// concatenation) into postfix notation, using the shunting-yard algorithm
// with the precedence table from spec §4.A. All operators are left-
// associative, so ties are broken with `>=` when popping.
func ToPostfix(infix string) (string, error) {
	if infix == "" {
		return "", &lrerr.MalformedRegexError{Regex: infix, Cause: fmt.Errorf("empty regular expression")}
	}

	expanded := InsertConcatenation(infix)

	var out strings.Builder
	var ops []byte // operator stack, including '('

	for i := 0; i < len(expanded); i++ {
		c := expanded[i]
		switch {
		case IsOperand(c):
			out.WriteByte(c)
		case c == '(':
			ops = append(ops, c)
		case c == ')':
			found := false
			for len(ops) > 0 {
				top := ops[len(ops)-1]
				ops = ops[:len(ops)-1]
				if top == '(' {
					found = true
					break
				}
				out.WriteByte(top)
			}
			if !found {
				return "", &lrerr.MalformedRegexError{Regex: infix, Cause: fmt.Errorf("mismatched parenthesis")}
			}
		default:
			for len(ops) > 0 {
				top := ops[len(ops)-1]
				if top == '(' {
					break
				}
				if precedence[top] < precedence[c] {
					break
				}
				out.WriteByte(top)
				ops = ops[:len(ops)-1]
			}
			ops = append(ops, c)
		}
	}

	for len(ops) > 0 {
		top := ops[len(ops)-1]
		ops = ops[:len(ops)-1]
		if top == '(' {
			return "", &lrerr.MalformedRegexError{Regex: infix, Cause: fmt.Errorf("mismatched parenthesis")}
		}
		out.WriteByte(top)
	}

	return out.String(), nil
}
