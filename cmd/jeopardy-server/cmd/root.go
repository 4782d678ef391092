package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/oshokin/jeopardy/internal/config"
	"github.com/oshokin/jeopardy/internal/logger"
	"github.com/oshokin/jeopardy/internal/service/server"
	"github.com/oshokin/jeopardy/internal/version"
)

var (
	// configPath to the configuration YAML file.
	configPath string
	// httpAddress overrides the browser UI listen address.
	httpAddress string
	// grpcAddress overrides the BoardService listen address.
	grpcAddress string
	// logLevel overrides the configured log level.
	logLevel string

	// rootCmd represents the base command for running the game server.
	rootCmd = &cobra.Command{
		Use:   "jeopardy-server",
		Short: "Serve the trivia board to browsers and CLI clients.",
		Long: `Starts the jeopardy game server.

The browser UI is served over HTTP: open the page, press Start! to fetch a fresh
board of random categories from the trivia API, then click cells to reveal the
question and then the answer. The same game is exposed over gRPC for the jeopardy CLI.

Settings come from the YAML configuration file, an optional .env file and
JEOPARDY_* environment variables. Flags override all of them.`,
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(_ *cobra.Command, _ []string) error {
			// Setup graceful shutdown handling.
			ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)
			defer stop()

			defer logger.Sync()

			return server.Run(ctx, &server.Options{
				ConfigPath:  configPath,
				HTTPAddress: httpAddress,
				GRPCAddress: grpcAddress,
				LogLevel:    logLevel,
			})
		},
	}
)

// initConfigCmd writes a settings file with the default values.
var initConfigCmd = &cobra.Command{
	Use:   "init-config",
	Short: "Write a settings file with default values.",
	Long: `Writes the default settings to the file given by --config
(jeopardy-settings.yaml when omitted). An existing file is kept unless --force is set.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		force, err := cmd.Flags().GetBool("force")
		if err != nil {
			return err
		}

		path, err := server.InitConfig(configPath, force)
		if err != nil {
			return err
		}

		_, err = fmt.Fprintln(cmd.OutOrStdout(), "Settings written to", path)

		return err
	},
}

// Execute runs the jeopardy-server CLI and exits with non-zero status on error.
func Execute() {
	version.AttachCobraVersionCommand(rootCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

//nolint:gochecknoinits // Required by Cobra CLI framework architecture.
func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "path to configuration file (default "+config.DefaultConfigFilename+" if present)")

	flags := rootCmd.Flags()
	flags.StringVar(&httpAddress, "http-addr", "", "browser UI listen address (overrides http_addr)")
	flags.StringVar(&grpcAddress, "grpc-addr", "", "gRPC listen address (overrides grpc_addr)")
	flags.StringVar(&logLevel, "log-level", "", "debug, info, warn or error (overrides log_level)")

	initConfigCmd.Flags().Bool("force", false, "overwrite an existing settings file")
	rootCmd.AddCommand(initConfigCmd)
}
