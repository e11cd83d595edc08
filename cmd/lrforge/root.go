package main

import (
	"fmt"
	"os"
	"runtime/debug"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "lrforge",
	Short: "Build and drive LALR(1) parsers from a grammar file",
	Long: `lrforge provides three features:
- Compiles a regex into a DFA and tests strings against it.
- Compiles a grammar file into a canonical-LR(1)-derived LALR(1) table.
- Drives that table over a token stream, either once or interactively.`,
	SilenceErrors: true,
	SilenceUsage:  true,
}

func Execute() error {
	err := rootCmd.Execute()
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		return err
	}
	return nil
}

// recovering wraps a subcommand's RunE body with vartan-style panic
// recovery: a panic is reported with a stack trace instead of crashing the
// process, and surfaces as the command's returned error either way.
func recovering(run func(cmd *cobra.Command, args []string) error) func(cmd *cobra.Command, args []string) error {
	return func(cmd *cobra.Command, args []string) (retErr error) {
		defer func() {
			panicked := false
			if v := recover(); v != nil {
				err, ok := v.(error)
				if !ok {
					err = fmt.Errorf("an unexpected error occurred: %v", v)
				}
				retErr = err
				panicked = true
			}
			if retErr != nil && panicked {
				fmt.Fprintf(os.Stderr, "%v:\n%v", retErr, string(debug.Stack()))
			}
		}()
		return run(cmd, args)
	}
}
