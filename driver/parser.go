package driver

import (
	lrerr "github.com/nihei9/lrforge/error"
	"github.com/nihei9/lrforge/grammar"
)

// Parser runs the shift/reduce/accept loop of spec §4.H against a
// pre-built LALR(1) table. Grounded on LALR1Parser.parse, restyled with a
// plain state stack the way vartan's driver.Parser keeps one.
type Parser struct {
	gram *grammar.Grammar
	tab  *grammar.Table
}

func NewParser(gram *grammar.Grammar, tab *grammar.Table) *Parser {
	return &Parser{gram: gram, tab: tab}
}

// ReductionEvent records one reduce step, in case a caller wants to build
// a parse tree or trace without the driver itself doing tree-construction
// (out of scope for this package, per spec §1's non-goals).
type ReductionEvent struct {
	Production *grammar.Production
}

// Parse drives src to completion, returning the sequence of reductions
// performed on acceptance, or a *lrerr.ParseError the moment no ACTION
// entry exists for the current state/lookahead pair.
func (p *Parser) Parse(src TokenSource) ([]ReductionEvent, error) {
	stack := []int{p.tab.InitialState}
	var reductions []ReductionEvent

	tok, err := src.Next()
	if err != nil {
		return nil, err
	}

	for {
		state := stack[len(stack)-1]
		action, ok := p.tab.Action[state][tok.Symbol]
		if !ok {
			return nil, &lrerr.ParseError{
				State:             state,
				Found:             tok.String(),
				ExpectedTerminals: expectedTerminals(p.tab, state),
			}
		}

		switch action.Kind {
		case grammar.ActionShift:
			stack = append(stack, action.State)
			tok, err = src.Next()
			if err != nil {
				return nil, err
			}

		case grammar.ActionReduce:
			prod := action.Prod
			stack = stack[:len(stack)-len(prod.RHS)]
			top := stack[len(stack)-1]
			target, ok := p.tab.GoTo[top][prod.LHS]
			if !ok {
				return nil, &lrerr.ParseError{
					State:             top,
					Found:             prod.LHS.Name,
					ExpectedTerminals: expectedTerminals(p.tab, top),
				}
			}
			stack = append(stack, target)
			reductions = append(reductions, ReductionEvent{Production: prod})

		case grammar.ActionAccept:
			return reductions, nil

		default:
			return nil, &lrerr.ParseError{
				State:             state,
				Found:             tok.String(),
				ExpectedTerminals: expectedTerminals(p.tab, state),
			}
		}
	}
}

func expectedTerminals(tab *grammar.Table, state int) []string {
	names := make([]string, 0, len(tab.Action[state]))
	for sym := range tab.Action[state] {
		names = append(names, sym.Name)
	}
	return names
}

// Accepts reports whether src is a sentence of the grammar, discarding the
// reduction trace. It never returns an error for a rejected input; only an
// I/O error from src.Next propagates.
func (p *Parser) Accepts(src TokenSource) (bool, error) {
	_, err := p.Parse(src)
	if err == nil {
		return true, nil
	}
	if _, isSyntaxErr := err.(*lrerr.ParseError); isSyntaxErr {
		return false, nil
	}
	return false, err
}
