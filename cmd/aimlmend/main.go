package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"aimlmend/internal/config"
	"aimlmend/internal/heal"
)

var (
	// Global flags
	verbose    bool
	configPath string

	cfg    *config.Config
	logger *zap.Logger
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "aimlmend",
	Short: "aimlmend - batch repair for malformed AIML corpora",
	Long: `aimlmend repairs hand-authored AIML files that are too damaged for a
strict parser to accept: unbound namespace prefixes, trailing junk after the
root element, broken tag syntax, unescaped reserved characters, unclosed
void elements, duplicate attributes and stray control bytes.

Repairs are best-effort and idempotent: rerunning over an already-healed
corpus changes nothing.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// Initialize logger
		zcfg := zap.NewProductionConfig()
		if verbose {
			zcfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
		}
		var err error
		logger, err = zcfg.Build()
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		cfg, err = config.Load(configPath)
		if err != nil {
			return err
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
}

// newHealer builds a Healer from the loaded config plus command flags.
func newHealer() *heal.Healer {
	return heal.New(heal.Options{
		RootTag:      cfg.RootTag,
		RecordTag:    cfg.RecordTag,
		Extension:    cfg.Extension,
		Backup:       cfg.Backup && !noBackup,
		BackupSuffix: cfg.BackupSuffix,
		Concurrency:  cfg.Concurrency,
		Speculative:  cfg.SpeculativeTagRecovery || speculative,
	}, logger)
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "path to yaml config file")

	rootCmd.AddCommand(healCmd)
	rootCmd.AddCommand(validateCmd)
	rootCmd.AddCommand(censusCmd)
	rootCmd.AddCommand(watchCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
