package main

import (
	"fmt"

	"github.com/nihei9/lrforge/lexical"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

var regexFlags = struct {
	inputs *[]string
}{}

func init() {
	cmd := &cobra.Command{
		Use:     "regex <pattern>",
		Short:   "Compile a regex into a DFA and test strings against it",
		Example: `  lrforge regex "a(b|c)*" --test ab --test axc`,
		Args:    cobra.ExactArgs(1),
		RunE:    recovering(runRegex),
	}
	regexFlags.inputs = cmd.Flags().StringArray("test", nil, "a string to test against the compiled pattern (repeatable)")
	rootCmd.AddCommand(cmd)
}

func runRegex(cmd *cobra.Command, args []string) error {
	pattern := args[0]
	nfa, err := lexical.Compile(pattern)
	if err != nil {
		return fmt.Errorf("compile %q: %w", pattern, err)
	}
	dfa := lexical.BuildDFA(nfa, alphabetOf(pattern))

	pterm.Info.Println(fmt.Sprintf("compiled %q into a DFA with %d states", pattern, len(dfa.States)))

	for _, s := range *regexFlags.inputs {
		if dfa.Accepts(s) {
			pterm.Success.Println(fmt.Sprintf("%q: accepted", s))
		} else {
			pterm.Warning.Println(fmt.Sprintf("%q: rejected", s))
		}
	}
	return nil
}
