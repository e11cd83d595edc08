// Package cache persists a compiled LALR(1) table to disk so a second run
// over an unchanged grammar can skip automaton construction entirely. This
// is a Supplemental Feature: spec §4.G only specifies in-memory table
// construction, but a binary wire format for it is an obvious and
// non-conflicting addition once a grammar can take seconds to compile.
// Grounded on vartan's spec.CompiledGrammar JSON wire format, re-expressed
// as a compact binary record via dekarrin/rezi instead of encoding/json.
package cache

import (
	"fmt"
	"io"

	"github.com/dekarrin/rezi/v2"
	"github.com/nihei9/lrforge/grammar"
	"github.com/nihei9/lrforge/grammar/symbol"
)

// record is the flattened, rezi-encodable shape of a compiled table.
// grammar.Table's Action/GoTo maps are keyed by symbol.Symbol, which rezi
// has no special support for, so they're flattened into parallel index
// slices keyed by terminal/non-terminal registration order instead.
type record struct {
	Terminals    []string
	NonTerminals []string
	InitialState int

	// ActionState/ActionTerm/ActionKind/ActionOperand are parallel slices,
	// one entry per non-empty ACTION cell: (state, terminal index, kind,
	// shift-target-or-production-number).
	ActionState   []int
	ActionTerm    []int
	ActionKind    []int
	ActionOperand []int

	GoToState   []int
	GoToNonTerm []int
	GoToTarget  []int

	// ProdLHS/ProdRHS describe every production by index, so REDUCE
	// entries can be reconstructed without re-running the grammar builder.
	ProdLHS []int
	ProdRHS [][]int // each entry indexes into Terminals++NonTerminals, offset by len(Terminals)
}

// Save encodes tab into w. The caller supplies g only to recover the
// grammar's terminal/non-terminal ordering and production list; Save
// writes no copy of the grammar's productions themselves beyond what's
// needed to replay REDUCE actions.
func Save(w io.Writer, g *grammar.Grammar, tab *grammar.Table) error {
	terms := g.Terminals()
	nonTerms := g.NonTerminals()
	termIdx := indexOf(terms)
	nonTermIdx := indexOf(nonTerms)
	symIdx := combinedIndex(terms, nonTerms)

	rec := record{
		InitialState: tab.InitialState,
	}
	for _, s := range terms {
		rec.Terminals = append(rec.Terminals, s.Name)
	}
	for _, s := range nonTerms {
		rec.NonTerminals = append(rec.NonTerminals, s.Name)
	}

	prodByNum := map[int]*grammar.Production{}
	for state, row := range tab.Action {
		for sym, action := range row {
			rec.ActionState = append(rec.ActionState, state)
			rec.ActionTerm = append(rec.ActionTerm, termIdx[sym])
			rec.ActionKind = append(rec.ActionKind, int(action.Kind))
			switch action.Kind {
			case grammar.ActionShift:
				rec.ActionOperand = append(rec.ActionOperand, action.State)
			case grammar.ActionReduce:
				rec.ActionOperand = append(rec.ActionOperand, action.Prod.Num)
				prodByNum[action.Prod.Num] = action.Prod
			default:
				rec.ActionOperand = append(rec.ActionOperand, 0)
			}
		}
	}
	for state, row := range tab.GoTo {
		for sym, target := range row {
			rec.GoToState = append(rec.GoToState, state)
			rec.GoToNonTerm = append(rec.GoToNonTerm, nonTermIdx[sym])
			rec.GoToTarget = append(rec.GoToTarget, target)
		}
	}

	maxNum := -1
	for num := range prodByNum {
		if num > maxNum {
			maxNum = num
		}
	}
	rec.ProdLHS = make([]int, maxNum+1)
	rec.ProdRHS = make([][]int, maxNum+1)
	for num, prod := range prodByNum {
		rec.ProdLHS[num] = symIdx[prod.LHS]
		rhs := make([]int, len(prod.RHS))
		for i, s := range prod.RHS {
			rhs[i] = symIdx[s]
		}
		rec.ProdRHS[num] = rhs
	}

	enc, err := rezi.Enc(rec)
	if err != nil {
		return fmt.Errorf("cache: encoding table: %w", err)
	}
	_, err = w.Write(enc)
	return err
}

// Load decodes a table previously written by Save, reconstructing the
// grammar.Table and the symbol names it refers to.
func Load(r io.Reader) (*grammar.Table, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}

	var rec record
	if _, err := rezi.Dec(data, &rec); err != nil {
		return nil, fmt.Errorf("cache: decoding table: %w", err)
	}

	terms := make([]symbol.Symbol, len(rec.Terminals))
	for i, name := range rec.Terminals {
		terms[i] = symbol.New(name, symbol.Terminal)
	}
	nonTerms := make([]symbol.Symbol, len(rec.NonTerminals))
	for i, name := range rec.NonTerminals {
		nonTerms[i] = symbol.New(name, symbol.NonTerminal)
	}
	combined := append(append([]symbol.Symbol{}, terms...), nonTerms...)

	prods := make([]*grammar.Production, len(rec.ProdLHS))
	for num := range rec.ProdLHS {
		rhs := make([]symbol.Symbol, len(rec.ProdRHS[num]))
		for i, idx := range rec.ProdRHS[num] {
			rhs[i] = combined[idx]
		}
		p, err := grammar.New(num, combined[rec.ProdLHS[num]], rhs)
		if err != nil {
			return nil, fmt.Errorf("cache: reconstructing production %d: %w", num, err)
		}
		prods[num] = p
	}

	stateCount := 0
	for _, s := range rec.ActionState {
		if s+1 > stateCount {
			stateCount = s + 1
		}
	}
	for _, s := range rec.GoToState {
		if s+1 > stateCount {
			stateCount = s + 1
		}
	}

	tab := &grammar.Table{
		InitialState: rec.InitialState,
		Action:       make([]map[symbol.Symbol]*grammar.Action, stateCount),
		GoTo:         make([]map[symbol.Symbol]int, stateCount),
	}
	for i := range tab.Action {
		tab.Action[i] = map[symbol.Symbol]*grammar.Action{}
		tab.GoTo[i] = map[symbol.Symbol]int{}
	}

	for i, state := range rec.ActionState {
		term := terms[rec.ActionTerm[i]]
		kind := grammar.ActionKind(rec.ActionKind[i])
		action := &grammar.Action{Kind: kind}
		switch kind {
		case grammar.ActionShift:
			action.State = rec.ActionOperand[i]
		case grammar.ActionReduce:
			action.Prod = prods[rec.ActionOperand[i]]
		}
		tab.Action[state][term] = action
	}
	for i, state := range rec.GoToState {
		nonTerm := nonTerms[rec.GoToNonTerm[i]]
		tab.GoTo[state][nonTerm] = rec.GoToTarget[i]
	}

	return tab, nil
}

func indexOf(syms []symbol.Symbol) map[symbol.Symbol]int {
	m := make(map[symbol.Symbol]int, len(syms))
	for i, s := range syms {
		m[s] = i
	}
	return m
}

func combinedIndex(terms, nonTerms []symbol.Symbol) map[symbol.Symbol]int {
	m := make(map[symbol.Symbol]int, len(terms)+len(nonTerms))
	for i, s := range terms {
		m[s] = i
	}
	for i, s := range nonTerms {
		m[s] = len(terms) + i
	}
	return m
}
