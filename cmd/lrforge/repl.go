package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/chzyer/readline"
	"github.com/nihei9/lrforge/driver"
	"github.com/spf13/cobra"
)

func init() {
	cmd := &cobra.Command{
		Use:     "repl <grammar file>",
		Short:   "Interactively parse lines of input against a grammar",
		Example: `  lrforge repl arith.toml`,
		Args:    cobra.ExactArgs(1),
		RunE:    recovering(runREPL),
	}
	rootCmd.AddCommand(cmd)
}

func runREPL(cmd *cobra.Command, args []string) error {
	cfg, err := LoadConfig(args[0])
	if err != nil {
		return err
	}

	g, lx, err := buildGrammar(cfg)
	if err != nil {
		return err
	}

	tab, err := buildTable(g, false)
	if err != nil {
		return fmt.Errorf("build table: %w", err)
	}
	if len(tab.Conflicts) > 0 {
		fmt.Fprintf(cmd.OutOrStdout(), "warning: %d unresolved conflict(s); first-writer-wins was applied\n", len(tab.Conflicts))
	}

	rl, err := readline.NewEx(&readline.Config{
		Prompt: fmt.Sprintf("%s> ", cfg.Name),
	})
	if err != nil {
		return fmt.Errorf("create readline session: %w", err)
	}
	defer rl.Close()

	for {
		line, err := rl.Readline()
		if err != nil {
			if err == io.EOF || err == readline.ErrInterrupt {
				return nil
			}
			return err
		}

		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		tokens, err := lx.tokenize(strings.Fields(line))
		if err != nil {
			fmt.Fprintf(rl.Stderr(), "%v\n", err)
			continue
		}

		p := driver.NewParser(g, tab)
		accepted, err := p.Accepts(driver.NewSliceTokenSource(tokens))
		if err != nil {
			fmt.Fprintf(rl.Stderr(), "%v\n", err)
			continue
		}
		if accepted {
			fmt.Fprintln(rl.Stdout(), "accepted")
		} else {
			fmt.Fprintln(rl.Stdout(), "rejected")
		}
	}
}
