package main

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

// TerminalDef is one entry of the [[terminal]] array in a grammar file. The
// pattern is the same infix regex syntax lexical.Compile accepts.
type TerminalDef struct {
	Name    string `toml:"name"`
	Pattern string `toml:"pattern"`
}

// ProductionDef is one entry of the [[production]] array in a grammar file.
type ProductionDef struct {
	LHS string   `toml:"lhs"`
	RHS []string `toml:"rhs"`
}

// Config is the TOML shape of a grammar file accepted by the grammar and
// parse subcommands. Grounded on tqw's FileInfo/Manifest TOML structs: plain
// fields with `toml:"..."` tags decoded via toml.Unmarshal, rather than any
// hand-rolled line scanner.
type Config struct {
	Name        string          `toml:"name"`
	Start       string          `toml:"start"`
	Terminals   []TerminalDef   `toml:"terminal"`
	NonTerminal []string        `toml:"non_terminal"`
	Productions []ProductionDef `toml:"production"`
}

// LoadConfig reads and decodes a grammar file from path.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read grammar file: %w", err)
	}

	var cfg Config
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse grammar file: %w", err)
	}
	if cfg.Start == "" {
		return nil, fmt.Errorf("grammar file %s: missing start symbol", path)
	}
	return &cfg, nil
}
