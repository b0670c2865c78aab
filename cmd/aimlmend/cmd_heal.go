package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var (
	noBackup    bool
	speculative bool
)

// healCmd repairs every corpus file in a directory.
var healCmd = &cobra.Command{
	Use:   "heal [directory]",
	Short: "Repair all corpus files in a directory",
	Long: `Runs the repair pipeline over every matching file in the directory
(non-recursive). Files that needed fixes are backed up beside the original
and rewritten in place; already-clean files are left untouched. A failing
file is counted and skipped, never aborting the batch.

The directory is validated before and after healing so the improvement is
visible in the summary.`,
	Args: cobra.ExactArgs(1),
	RunE: runHeal,
}

func init() {
	healCmd.Flags().BoolVar(&noBackup, "no-backup", false, "skip sibling backups before rewriting")
	healCmd.Flags().BoolVar(&speculative, "speculative", false, "enable the bare-word tag recovery pass (may corrupt prose)")
}

func runHeal(cmd *cobra.Command, args []string) error {
	dir := args[0]
	h := newHealer()
	ctx := cmd.Context()

	before, err := h.ValidateDir(ctx, dir)
	if err != nil {
		return err
	}
	sum, err := h.HealDir(ctx, dir)
	if err != nil {
		return err
	}
	after, err := h.ValidateDir(ctx, dir)
	if err != nil {
		return err
	}

	fmt.Fprintln(cmd.OutOrStdout(), renderHealReport(before, sum, after))
	return nil
}
