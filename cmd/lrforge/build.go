package main

import (
	"fmt"

	"github.com/nihei9/lrforge/driver"
	"github.com/nihei9/lrforge/grammar"
	"github.com/nihei9/lrforge/grammar/symbol"
	"github.com/nihei9/lrforge/lexical"
)

// lexer pairs a terminal symbol with the compiled DFA recognizing it.
// Tokenization is whitespace-delimited, first-match-wins over DFA.Accepts,
// which checks whole-string acceptance rather than incremental scanning, so
// it is not maximal munch;
// this is a deliberate simplification for a tool whose primary job is
// table construction, not a hand-written scanner generator.
type lexer struct {
	terminals []symbol.Symbol
	dfas      []*lexical.DFA
}

func buildGrammar(cfg *Config) (*grammar.Grammar, *lexer, error) {
	table := symbol.NewTable()
	w := table.Writer()

	lx := &lexer{}
	for _, t := range cfg.Terminals {
		sym, err := w.RegisterTerminal(t.Name)
		if err != nil {
			return nil, nil, fmt.Errorf("register terminal %q: %w", t.Name, err)
		}
		nfa, err := lexical.Compile(t.Pattern)
		if err != nil {
			return nil, nil, fmt.Errorf("compile terminal %q pattern %q: %w", t.Name, t.Pattern, err)
		}
		dfa := lexical.BuildDFA(nfa, alphabetOf(t.Pattern))
		lx.terminals = append(lx.terminals, sym)
		lx.dfas = append(lx.dfas, dfa)
	}
	registered := map[string]bool{}
	for _, name := range cfg.NonTerminal {
		if _, err := w.RegisterNonTerminal(name); err != nil {
			return nil, nil, fmt.Errorf("register non-terminal %q: %w", name, err)
		}
		registered[name] = true
	}
	if !registered[cfg.Start] {
		if _, err := w.RegisterNonTerminal(cfg.Start); err != nil {
			return nil, nil, fmt.Errorf("register start symbol %q: %w", cfg.Start, err)
		}
	}

	start, _ := table.Reader().Lookup(cfg.Start)
	g, err := grammar.NewGrammar(table, start)
	if err != nil {
		return nil, nil, fmt.Errorf("build grammar: %w", err)
	}

	for _, p := range cfg.Productions {
		lhs, ok := table.Reader().Lookup(p.LHS)
		if !ok {
			return nil, nil, fmt.Errorf("production references unregistered symbol %q", p.LHS)
		}
		rhs := make([]symbol.Symbol, 0, len(p.RHS))
		for _, name := range p.RHS {
			sym, ok := table.Reader().Lookup(name)
			if !ok {
				return nil, nil, fmt.Errorf("production for %q references unregistered symbol %q", p.LHS, name)
			}
			rhs = append(rhs, sym)
		}
		if _, err := g.AddProduction(lhs, rhs); err != nil {
			return nil, nil, fmt.Errorf("add production for %q: %w", p.LHS, err)
		}
	}

	return g, lx, nil
}

// alphabetOf collects the distinct operand bytes of an infix regex, in
// first-occurrence order, for use as lexical.BuildDFA's alphabet.
func alphabetOf(pattern string) []byte {
	seen := map[byte]bool{}
	var alphabet []byte
	for i := 0; i < len(pattern); i++ {
		c := pattern[i]
		if !lexical.IsOperand(c) || seen[c] {
			continue
		}
		seen[c] = true
		alphabet = append(alphabet, c)
	}
	return alphabet
}

func buildTable(g *grammar.Grammar, strict bool) (*grammar.Table, error) {
	fst := grammar.ComputeFirstSet(g.Productions)
	automaton := grammar.BuildLR1Automaton(g, fst)
	return grammar.BuildLALR1Table(g, automaton, grammar.BuildOptions{StrictConflicts: strict})
}

// tokenize matches each already whitespace-split word against lx's
// terminals in registration order, taking the first DFA that accepts it.
func (lx *lexer) tokenize(words []string) ([]driver.Token, error) {
	tokens := make([]driver.Token, 0, len(words))
	for _, word := range words {
		matched := false
		for j, dfa := range lx.dfas {
			if dfa.Accepts(word) {
				tokens = append(tokens, driver.Token{Symbol: lx.terminals[j], Lexeme: word})
				matched = true
				break
			}
		}
		if !matched {
			return nil, fmt.Errorf("no terminal matches %q", word)
		}
	}
	return tokens, nil
}
