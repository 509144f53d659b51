// main.go - Beal Hunter: exhaustive Beal Conjecture counterexample search

package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// ==================== VERSION & BUILD INFO ====================

const (
	Version = "1.0.0"
)

// Exit code reserved for a verified primitive counterexample.
const exitCounterexample = 42

// ==================== COMMAND LINE INTERFACE ====================

var (
	flagConfig     string
	flagValidate   bool
	flagInitConfig bool
)

var rootCmd = &cobra.Command{
	Use:   "beal-hunter",
	Short: "High-performance Beal Conjecture search engine",
	Long: `Exhaustively searches for counterexamples to the Beal Conjecture:
tuples (A, B, C, x, y, z) with x, y, z >= 3, A^x + B^y = C^z and
gcd(A, B, C) = 1. Pairs are rejected by a 20-prime modular sieve and
survivors are verified with exact big-integer arithmetic.

Exit codes: 0 = no primitive counterexample, 42 = counterexample found.`,
	SilenceUsage:  true,
	SilenceErrors: true,

	RunE: func(cmd *cobra.Command, args []string) error {
		if flagValidate {
			os.Exit(runValidation())
		}

		if flagInitConfig {
			if err := saveDefaultConfig(flagConfig); err != nil {
				return fmt.Errorf("failed to write default config: %w", err)
			}
			fmt.Printf("Wrote default configuration to %s\n", flagConfig)
			return nil
		}

		cfg, err := loadConfig(flagConfig)
		if err != nil {
			return err
		}

		logger := setupLogger(cfg.Output)
		params := cfg.searchParams()

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		results, err := searchParallel(ctx, params, logger)
		if err != nil {
			return err
		}

		fmt.Printf("\nLog file: %s\n", params.LogPath)

		if results.PrimitiveHits > 0 {
			os.Exit(exitCounterexample)
		}
		return nil
	},
}

func init() {
	flags := rootCmd.Flags()

	// Signature
	flags.Uint32("x", 0, "Exponent x (must be >= 3)")
	flags.Uint32("y", 0, "Exponent y (must be >= 3)")
	flags.Uint32("z", 0, "Exponent z (must be >= 3)")

	// Bounds
	flags.Uint64("Amax", 1000, "Maximum A value")
	flags.Uint64("Bmax", 1000, "Maximum B value")
	flags.Uint64("Cmax", 10000000, "Maximum C value")
	flags.Uint64("Astart", 1, "Starting A value")
	flags.Uint64("Bstart", 1, "Starting B value")

	// Options
	flags.Int("threads", 0, "Number of worker threads (0 = auto)")
	flags.String("log", "", "JSONL log file path (default: search_<x>_<y>_<z>_<epoch>.jsonl)")
	flags.Int("progress", 0, "Progress interval hint (checkpoints are time-throttled)")
	flags.Bool("verbose", false, "Verbose (debug) console logging")
	flags.BoolVar(&flagValidate, "validate", false, "Run self-validation tests and exit")
	flags.StringVar(&flagConfig, "config", "beal.yaml", "Configuration file path")
	flags.BoolVar(&flagInitConfig, "init-config", false, "Write a default configuration file and exit")

	viper.BindPFlag("search.x", flags.Lookup("x"))
	viper.BindPFlag("search.y", flags.Lookup("y"))
	viper.BindPFlag("search.z", flags.Lookup("z"))
	viper.BindPFlag("search.a_max", flags.Lookup("Amax"))
	viper.BindPFlag("search.b_max", flags.Lookup("Bmax"))
	viper.BindPFlag("search.c_max", flags.Lookup("Cmax"))
	viper.BindPFlag("search.a_start", flags.Lookup("Astart"))
	viper.BindPFlag("search.b_start", flags.Lookup("Bstart"))
	viper.BindPFlag("performance.threads", flags.Lookup("threads"))
	viper.BindPFlag("performance.progress_interval", flags.Lookup("progress"))
	viper.BindPFlag("output.log_path", flags.Lookup("log"))
	viper.BindPFlag("output.verbose", flags.Lookup("verbose"))

	viper.SetEnvPrefix("BEAL")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()
}

// ==================== MAIN ENTRY POINT ====================

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
