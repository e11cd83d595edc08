package grammar

import (
	"fmt"
	"strings"

	"github.com/nihei9/lrforge/grammar/symbol"
)

// Production is a single grammar rule, LHS → RHS (spec §3). Two productions
// are equal iff their LHS and RHS sequences are equal; RHS may be empty (an
// ε-production).
type Production struct {
	Num int
	LHS symbol.Symbol
	RHS []symbol.Symbol
}

func New(num int, lhs symbol.Symbol, rhs []symbol.Symbol) (*Production, error) {
	if lhs.IsNil() {
		return nil, fmt.Errorf("grammar: LHS must be a non-nil symbol")
	}
	for _, s := range rhs {
		if s.IsNil() {
			return nil, fmt.Errorf("grammar: a symbol of RHS must be non-nil; LHS: %v", lhs)
		}
	}
	return &Production{Num: num, LHS: lhs, RHS: rhs}, nil
}

func (p *Production) IsEmpty() bool {
	return len(p.RHS) == 0
}

// Equals compares LHS and RHS structurally, ignoring Num: two Production
// values built from the same text are interchangeable regardless of
// registration order.
func (p *Production) Equals(q *Production) bool {
	if q == nil {
		return false
	}
	if p.LHS != q.LHS || len(p.RHS) != len(q.RHS) {
		return false
	}
	for i, s := range p.RHS {
		if s != q.RHS[i] {
			return false
		}
	}
	return true
}

func (p *Production) key() string {
	var b strings.Builder
	b.WriteString(p.LHS.Name)
	for _, s := range p.RHS {
		b.WriteByte(0)
		b.WriteString(s.Name)
	}
	return b.String()
}

func (p *Production) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%v →", p.LHS.Name)
	if p.IsEmpty() {
		b.WriteString(" " + symbol.EpsilonName)
		return b.String()
	}
	for _, s := range p.RHS {
		fmt.Fprintf(&b, " %v", s.Name)
	}
	return b.String()
}

// ProductionSet holds every production of a grammar, assigning each a
// stable registration-order Num (spec §5) and rejecting structural
// duplicates.
type ProductionSet struct {
	byKey   map[string]*Production
	byLHS   map[symbol.Symbol][]*Production
	ordered []*Production
}

func NewProductionSet() *ProductionSet {
	return &ProductionSet{
		byKey: map[string]*Production{},
		byLHS: map[symbol.Symbol][]*Production{},
	}
}

// Append adds prod if no structurally-equal production is already present,
// assigning it the next Num. It reports whether prod was newly added.
func (ps *ProductionSet) Append(prod *Production) bool {
	key := prod.key()
	if _, ok := ps.byKey[key]; ok {
		return false
	}
	prod.Num = len(ps.ordered)
	ps.byKey[key] = prod
	ps.byLHS[prod.LHS] = append(ps.byLHS[prod.LHS], prod)
	ps.ordered = append(ps.ordered, prod)
	return true
}

func (ps *ProductionSet) ByLHS(lhs symbol.Symbol) []*Production {
	return ps.byLHS[lhs]
}

// All returns every production in registration order.
func (ps *ProductionSet) All() []*Production {
	return ps.ordered
}

func (ps *ProductionSet) Len() int {
	return len(ps.ordered)
}
