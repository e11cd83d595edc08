package error

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMalformedRegexErrorUnwrap(t *testing.T) {
	cause := errors.New("mismatched parenthesis")
	err := &MalformedRegexError{Regex: "(a", Cause: cause}
	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "(a")
	assert.Contains(t, err.Error(), "mismatched parenthesis")
}

func TestMalformedGrammarError(t *testing.T) {
	err := &MalformedGrammarError{Symbol: "expr", Detail: "is neither a terminal nor a non-terminal"}
	assert.Contains(t, err.Error(), "expr")
	assert.Contains(t, err.Error(), "neither a terminal nor a non-terminal")
}

func TestTableConflictString(t *testing.T) {
	c := &TableConflict{State: 3, Terminal: "+", Kind: "Shift/Reduce", Chosen: "shift", Discarded: "reduce by expr -> expr"}
	s := c.String()
	assert.Contains(t, s, "Shift/Reduce")
	assert.Contains(t, s, "state 3")
	assert.Contains(t, s, "+")
}

func TestParseErrorMessage(t *testing.T) {
	err := &ParseError{State: 7, Found: "+", ExpectedTerminals: []string{"id", "("}}
	s := err.Error()
	assert.Contains(t, s, "state 7")
	assert.Contains(t, s, "id")
	assert.Contains(t, s, "found +")
}

func TestFormatConflicts(t *testing.T) {
	conflicts := []*TableConflict{
		{State: 1, Terminal: "a", Kind: "Shift/Reduce", Chosen: "shift", Discarded: "reduce by A -> a"},
		{State: 2, Terminal: "b", Kind: "Reduce/Reduce", Chosen: "reduce by B -> b", Discarded: "reduce by C -> b"},
	}
	out := FormatConflicts(conflicts)
	assert.Contains(t, out, "state 1")
	assert.Contains(t, out, "state 2")
}
