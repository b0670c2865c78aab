package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"aimlmend/internal/watch"
)

// watchCmd heals files as they arrive in a drop directory.
var watchCmd = &cobra.Command{
	Use:   "watch [directory]",
	Short: "Heal corpus files as they land in a directory",
	Long: `Watches the directory and runs the repair pipeline on every matching
file that is created or modified, after a short settle window. Runs until
interrupted.`,
	Args: cobra.ExactArgs(1),
	RunE: runWatch,
}

func runWatch(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	w, err := watch.New(args[0], newHealer(), cfg.Extension, cfg.BackupSuffix, logger)
	if err != nil {
		return err
	}
	if err := w.Start(ctx); err != nil {
		return err
	}

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigCh)
	<-sigCh

	w.Stop()
	fmt.Fprintln(cmd.OutOrStdout(), renderWatchReport(w.Snapshot()))
	return nil
}
