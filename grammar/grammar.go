// Package grammar implements the grammar data model of spec §3 and the
// FIRST-set, LR(1) automaton, and LALR(1) table construction of spec §4.D–G.
// Grammar-file parsing is an external collaborator (spec §1); callers build
// a Grammar by registering symbols and productions directly.
package grammar

import (
	"fmt"

	lrerr "github.com/nihei9/lrforge/error"
	"github.com/nihei9/lrforge/grammar/symbol"
)

// Grammar is a production set plus the bookkeeping spec §3 requires to
// build an LALR(1) table from it: a distinguished start symbol and its
// augmentation S' → S.
type Grammar struct {
	SymbolTable    *symbol.Table
	Productions    *ProductionSet
	Start          symbol.Symbol
	AugmentedStart symbol.Symbol
}

// NewGrammar registers the augmented start production S' → start and
// returns a Grammar ready to receive the rest of the productions via
// AddProduction. start must already be registered as a non-terminal on
// table.
func NewGrammar(table *symbol.Table, start symbol.Symbol) (*Grammar, error) {
	if start.IsNil() || start.IsTerminal() {
		return nil, fmt.Errorf("grammar: start symbol must be a registered non-terminal")
	}
	if _, ok := table.Reader().Lookup(start.Name); !ok {
		return nil, fmt.Errorf("grammar: start symbol %q is not registered", start.Name)
	}

	augStart, err := table.Writer().RegisterNonTerminal(start.Name + "'")
	if err != nil {
		return nil, fmt.Errorf("grammar: registering augmented start symbol: %w", err)
	}

	g := &Grammar{
		SymbolTable:    table,
		Productions:    NewProductionSet(),
		Start:          start,
		AugmentedStart: augStart,
	}

	augProd, err := New(-1, augStart, []symbol.Symbol{start})
	if err != nil {
		return nil, err
	}
	g.Productions.Append(augProd)

	return g, nil
}

// AddProduction registers lhs → rhs. Every symbol in lhs and rhs must
// already exist on the grammar's symbol table; AddProduction does not
// register new symbols, since a symbol can be used on the RHS of one
// production before its own LHS production is added.
func (g *Grammar) AddProduction(lhs symbol.Symbol, rhs []symbol.Symbol) (*Production, error) {
	if lhs.IsTerminal() {
		return nil, fmt.Errorf("grammar: LHS %q must be a non-terminal", lhs.Name)
	}
	r := g.SymbolTable.Reader()
	if _, ok := r.Lookup(lhs.Name); !ok {
		return nil, fmt.Errorf("grammar: LHS %q is not registered on the symbol table", lhs.Name)
	}
	for _, s := range rhs {
		if _, ok := r.Lookup(s.Name); !ok {
			return nil, &lrerr.MalformedGrammarError{Symbol: s.Name, Detail: "is registered as neither a terminal nor a non-terminal"}
		}
	}

	prod, err := New(-1, lhs, rhs)
	if err != nil {
		return nil, err
	}
	g.Productions.Append(prod)
	return prod, nil
}

// StartProduction returns the augmented production S' → S, always
// production 0 by construction.
func (g *Grammar) StartProduction() *Production {
	return g.Productions.All()[0]
}

// Terminals and NonTerminals delegate to the symbol table in registration
// order, giving callers a stable symbol set to iterate (spec §5).
func (g *Grammar) Terminals() []symbol.Symbol {
	return g.SymbolTable.Reader().Terminals()
}

func (g *Grammar) NonTerminals() []symbol.Symbol {
	return g.SymbolTable.Reader().NonTerminals()
}
