package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/nihei9/lrforge/cache"
	"github.com/nihei9/lrforge/driver"
	"github.com/nihei9/lrforge/grammar"
	"github.com/spf13/cobra"
)

var parseFlags = struct {
	source *string
	table  *string
}{}

func init() {
	cmd := &cobra.Command{
		Use:     "parse <grammar file>",
		Short:   "Parse a token stream against a grammar",
		Example: `  cat src.txt | lrforge parse arith.toml`,
		Args:    cobra.ExactArgs(1),
		RunE:    recovering(runParse),
	}
	parseFlags.source = cmd.Flags().StringP("source", "s", "", "source file path (default stdin)")
	parseFlags.table = cmd.Flags().String("table", "", "load a previously compiled cache file instead of rebuilding the table")
	rootCmd.AddCommand(cmd)
}

func runParse(cmd *cobra.Command, args []string) error {
	cfg, err := LoadConfig(args[0])
	if err != nil {
		return err
	}

	g, lx, err := buildGrammar(cfg)
	if err != nil {
		return err
	}

	tab, err := loadOrBuildTable(g, *parseFlags.table)
	if err != nil {
		return err
	}

	src := os.Stdin
	if *parseFlags.source != "" {
		f, err := os.Open(*parseFlags.source)
		if err != nil {
			return fmt.Errorf("open source file %s: %w", *parseFlags.source, err)
		}
		defer f.Close()
		src = f
	}

	data, err := io.ReadAll(src)
	if err != nil {
		return fmt.Errorf("read source: %w", err)
	}

	tokens, err := lx.tokenize(strings.Fields(string(data)))
	if err != nil {
		return err
	}

	p := driver.NewParser(g, tab)
	reductions, err := p.Parse(driver.NewSliceTokenSource(tokens))
	if err != nil {
		return err
	}

	for _, r := range reductions {
		fmt.Printf("reduce by %s\n", r.Production.String())
	}
	return nil
}

func loadOrBuildTable(g *grammar.Grammar, cachePath string) (*grammar.Table, error) {
	if cachePath == "" {
		return buildTable(g, false)
	}

	f, err := os.Open(cachePath)
	if err != nil {
		return nil, fmt.Errorf("open cache file: %w", err)
	}
	defer f.Close()
	return cache.Load(f)
}
