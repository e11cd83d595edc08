// Package report renders a compiled LALR(1) table as human-readable
// diagnostics: a state/ACTION/GOTO table dump and a conflict list. This is
// a Supplemental Feature: spec §6 only specifies the table and conflict
// data as return values, not a console rendering of them, grounded on
// vartan's spec.Report / cmd/vartan/describe.go, which serve exactly this
// purpose for compiled vartan grammars.
package report

import (
	"fmt"

	lrerr "github.com/nihei9/lrforge/error"
	"github.com/nihei9/lrforge/grammar"
	"github.com/pterm/pterm"
	"golang.org/x/exp/slices"
)

// Report is the data backing both the pretty-printed console dump and any
// future machine-readable export; it never reads from the grammar.Table
// once built, so a caller can hold onto it independent of a table's
// lifetime.
type Report struct {
	StateCount   int
	InitialState int
	States       []StateSummary
	Conflicts    []*lrerr.TableConflict
}

// StateSummary is one ACTION/GOTO row, flattened into printable strings.
type StateSummary struct {
	State   int
	Actions []string // "<terminal>: shift <n>" / "<terminal>: reduce <production>" / "<terminal>: accept"
	GoTos   []string // "<non-terminal>: <n>"
}

// Build extracts a Report from a compiled table, in state-number order.
func Build(tab *grammar.Table, conflicts []*lrerr.TableConflict) *Report {
	r := &Report{
		StateCount:   len(tab.Action),
		InitialState: tab.InitialState,
		Conflicts:    conflicts,
	}

	for state := 0; state < len(tab.Action); state++ {
		summary := StateSummary{State: state}
		for sym, action := range tab.Action[state] {
			summary.Actions = append(summary.Actions, fmt.Sprintf("%s: %s", sym.Name, describeAction(action)))
		}
		for sym, target := range tab.GoTo[state] {
			summary.GoTos = append(summary.GoTos, fmt.Sprintf("%s: %d", sym.Name, target))
		}
		slices.Sort(summary.Actions)
		slices.Sort(summary.GoTos)
		r.States = append(r.States, summary)
	}
	return r
}

func describeAction(a *grammar.Action) string {
	switch a.Kind {
	case grammar.ActionShift:
		return fmt.Sprintf("shift %d", a.State)
	case grammar.ActionReduce:
		return fmt.Sprintf("reduce %s", a.Prod.String())
	case grammar.ActionAccept:
		return "accept"
	default:
		return "error"
	}
}

// Print renders r to the terminal: one table per state listing its ACTION
// and GOTO entries, followed by a conflict summary if any were recorded.
func Print(r *Report) {
	pterm.DefaultSection.Println(fmt.Sprintf("%d states, initial state %d", r.StateCount, r.InitialState))

	for _, s := range r.States {
		rows := pterm.TableData{{"Symbol", "Action"}}
		for _, a := range s.Actions {
			rows = append(rows, splitEntry(a))
		}
		for _, g := range s.GoTos {
			parts := splitEntry(g)
			rows = append(rows, []string{parts[0], "goto " + parts[1]})
		}
		pterm.DefaultSection.WithLevel(2).Println(fmt.Sprintf("state %d", s.State))
		_ = pterm.DefaultTable.WithHasHeader().WithData(rows).Render()
	}

	if len(r.Conflicts) == 0 {
		pterm.Success.Println("no conflicts")
		return
	}
	pterm.Warning.Println(fmt.Sprintf("%d conflict(s)", len(r.Conflicts)))
	for _, c := range r.Conflicts {
		pterm.Warning.Println(c.String())
	}
}

func splitEntry(entry string) []string {
	for i := 0; i < len(entry); i++ {
		if entry[i] == ':' {
			return []string{entry[:i], entry[i+2:]}
		}
	}
	return []string{entry, ""}
}
