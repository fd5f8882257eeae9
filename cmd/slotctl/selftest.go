package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/slotkit/slotkit/slot"
)

func init() {
	rootCmd.AddCommand(newSelftestCmd())
}

func newSelftestCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "selftest",
		Short: "Run the built-in data slot self-test",
		Long: `The selftest command drives 100 slots through a full allocate, set,
replace, destroy and free cycle, checking ordered allocation, round-trip
storage and destructor firing order along the way.

Example:
  slotctl selftest`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := slot.SelfTest(); err != nil {
				return fmt.Errorf("selftest failed: %w", err)
			}
			printInfo("selftest: ok\n")
			return nil
		},
	}
}
