// Package error defines the error kinds of spec §7: MalformedRegex and
// MalformedGrammar abort construction; TableConflict is accumulated rather
// than fatal; ParseError terminates a single parse.
package error

import (
	"fmt"
	"strings"

	"github.com/dekarrin/rosed"
)

const reflowWidth = 100

// MalformedRegexError covers an unknown metacharacter, a mismatched
// parenthesis, an operator without an operand, or a postfix stack that
// doesn't reduce to exactly one fragment.
type MalformedRegexError struct {
	Regex string
	Cause error
}

func (e *MalformedRegexError) Error() string {
	return fmt.Sprintf("malformed regex %q: %v", e.Regex, e.Cause)
}

func (e *MalformedRegexError) Unwrap() error {
	return e.Cause
}

// MalformedGrammarError covers a production's right-hand side referencing
// a symbol that belongs to neither the terminal nor the non-terminal
// partition, detected lazily when the symbol is encountered.
type MalformedGrammarError struct {
	Symbol string
	Detail string
}

func (e *MalformedGrammarError) Error() string {
	return fmt.Sprintf("malformed grammar: symbol %q %v", e.Symbol, e.Detail)
}

// TableConflict is a non-fatal shift/reduce or reduce/reduce conflict
// recorded during ACTION table construction. Conflicts accumulate on the
// table (spec §7); they never abort the build.
type TableConflict struct {
	State     int
	Terminal  string
	Kind      string // "Shift/Reduce" or "Reduce/Reduce"
	Chosen    string
	Discarded string
}

func (c *TableConflict) String() string {
	return fmt.Sprintf("%v conflict in state %d on %s: %s vs %s", c.Kind, c.State, c.Terminal, c.Chosen, c.Discarded)
}

// ParseError is fatal for the current parse: either no ACTION entry exists
// for the current state/lookahead, or a GOTO entry is missing after a
// reduce.
type ParseError struct {
	State             int
	Found             string
	ExpectedTerminals []string
}

func (e *ParseError) Error() string {
	msg := fmt.Sprintf("state %d; expected one of %s; found %s",
		e.State, strings.Join(e.ExpectedTerminals, ", "), e.Found)
	return rosed.Edit(msg).Wrap(reflowWidth).String()
}

// FormatConflicts renders a list of conflicts as the diagnostic strings
// described in spec §6, reflowed for terminal display.
func FormatConflicts(conflicts []*TableConflict) string {
	lines := make([]string, len(conflicts))
	for i, c := range conflicts {
		lines[i] = c.String()
	}
	return rosed.Edit(strings.Join(lines, "\n")).Wrap(reflowWidth).String()
}
