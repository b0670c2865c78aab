package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"aimlmend/internal/census"
)

// censusCmd inventories tag usage across a corpus.
var censusCmd = &cobra.Command{
	Use:   "census [directory]",
	Short: "Inventory tag usage across a corpus",
	Long: `Scans every matching file in the directory with a lenient tokenizer
(malformed files included) and reports how often each tag appears, flagging
tags outside the known AIML vocabulary. Read-only: no file is modified.`,
	Args: cobra.ExactArgs(1),
	RunE: runCensus,
}

func runCensus(cmd *cobra.Command, args []string) error {
	report, err := census.ScanDir(args[0], cfg.Extension)
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), renderCensusReport(report))
	return nil
}
