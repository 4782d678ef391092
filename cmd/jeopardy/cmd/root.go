package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/oshokin/jeopardy/internal/config"
	"github.com/oshokin/jeopardy/internal/service/client"
	"github.com/oshokin/jeopardy/internal/version"
)

var (
	// opts is shared by every subcommand.
	opts client.Options

	// rootCmd represents the base command of the CLI client.
	rootCmd = &cobra.Command{
		Use:   "jeopardy",
		Short: "Play the trivia board from the terminal.",
		Long: `Talks to a running jeopardy-server over gRPC.

Start a new game, print the board, and reveal clues by category and clue index.
Both indices are zero-based. The first reveal of a clue shows its question, the
second shows its answer.`,
		SilenceUsage: true,
	}

	startCmd = &cobra.Command{
		Use:   "start",
		Short: "Fetch a new board, replacing the current one.",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			return run(func(ctx context.Context) error {
				return client.Start(ctx, &opts)
			})
		},
	}

	boardCmd = &cobra.Command{
		Use:   "board",
		Short: "Print the current board.",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			return run(func(ctx context.Context) error {
				return client.Board(ctx, &opts)
			})
		},
	}

	revealCmd = &cobra.Command{
		Use:   "reveal <category> <clue>",
		Short: "Reveal the next step of one clue.",
		Args:  cobra.ExactArgs(2),
		RunE: func(_ *cobra.Command, args []string) error {
			categoryIndex, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("category index: %w", err)
			}

			clueIndex, err := strconv.Atoi(args[1])
			if err != nil {
				return fmt.Errorf("clue index: %w", err)
			}

			return run(func(ctx context.Context) error {
				return client.Reveal(ctx, &opts, categoryIndex, clueIndex)
			})
		},
	}
)

// run executes fn with a context canceled on SIGINT/SIGTERM.
func run(fn func(context.Context) error) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)
	defer stop()

	return fn(ctx)
}

// Execute runs the jeopardy CLI and exits with non-zero status on error.
func Execute() {
	version.AttachCobraVersionCommand(rootCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

//nolint:gochecknoinits // Required by Cobra CLI framework architecture.
func init() {
	persistent := rootCmd.PersistentFlags()
	persistent.StringVarP(&opts.ConfigPath, "config", "c", "", "path to configuration file (default "+config.DefaultConfigFilename+" if present)")
	persistent.StringVarP(&opts.ServerAddress, "server", "s", "", "server gRPC address (overrides grpc_addr)")
	persistent.BoolVar(&opts.JSON, "json", false, "print JSON instead of the colored grid")

	revealCmd.Flags().StringVar(&opts.BoardID, "board", "", "board ID the reveal must apply to")

	rootCmd.AddCommand(startCmd, boardCmd, revealCmd)
}
