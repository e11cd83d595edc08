package main

import (
	"fmt"
	"os"

	"github.com/nihei9/lrforge/cache"
	"github.com/nihei9/lrforge/report"
	"github.com/spf13/cobra"
)

var grammarFlags = struct {
	out    *string
	strict *bool
}{}

func init() {
	cmd := &cobra.Command{
		Use:     "grammar <grammar file>",
		Short:   "Compile a grammar file into an LALR(1) table",
		Example: `  lrforge grammar arith.toml --out arith.tab`,
		Args:    cobra.ExactArgs(1),
		RunE:    recovering(runGrammar),
	}
	grammarFlags.out = cmd.Flags().StringP("out", "o", "", "write the compiled table to this cache file")
	grammarFlags.strict = cmd.Flags().Bool("strict", false, "abort on the first shift/reduce or reduce/reduce conflict")
	rootCmd.AddCommand(cmd)
}

func runGrammar(cmd *cobra.Command, args []string) error {
	cfg, err := LoadConfig(args[0])
	if err != nil {
		return err
	}

	g, _, err := buildGrammar(cfg)
	if err != nil {
		return err
	}

	tab, err := buildTable(g, *grammarFlags.strict)
	if err != nil {
		return fmt.Errorf("build table: %w", err)
	}

	report.Print(report.Build(tab, tab.Conflicts))

	if *grammarFlags.out != "" {
		f, err := os.Create(*grammarFlags.out)
		if err != nil {
			return fmt.Errorf("create cache file: %w", err)
		}
		defer f.Close()
		if err := cache.Save(f, g, tab); err != nil {
			return fmt.Errorf("write cache file: %w", err)
		}
	}
	return nil
}
