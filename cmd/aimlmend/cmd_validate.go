package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

// validateCmd checks acceptability without healing.
var validateCmd = &cobra.Command{
	Use:   "validate [directory]",
	Short: "Validate corpus files without modifying them",
	Long: `Runs the structural validator over every matching file in the
directory and reports how many are acceptable: well-formed, correct root
element, at least one record. Exits non-zero when any file is invalid.`,
	Args: cobra.ExactArgs(1),
	RunE: runValidate,
}

func runValidate(cmd *cobra.Command, args []string) error {
	h := newHealer()
	sum, err := h.ValidateDir(cmd.Context(), args[0])
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), renderValidationReport(sum))
	if sum.InvalidFiles > 0 {
		return fmt.Errorf("%d of %d files are not acceptable", sum.InvalidFiles, sum.TotalFiles)
	}
	return nil
}
