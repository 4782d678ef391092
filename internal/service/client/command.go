package client

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/fatih/color"
	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/proto"

	grpcboard "github.com/oshokin/jeopardy/internal/api/grpc/board"
	"github.com/oshokin/jeopardy/internal/config"
	"github.com/oshokin/jeopardy/internal/domain/board"
	"github.com/oshokin/jeopardy/internal/logger"
	"github.com/oshokin/jeopardy/internal/render"
	"github.com/oshokin/jeopardy/internal/service/common"
)

// Options configures the jeopardy client commands.
type Options struct {
	// ConfigPath to YAML settings file, defaults to standard filename if empty.
	ConfigPath string

	// ServerAddress overrides the gRPC address from config when specified.
	ServerAddress string

	// BoardID pins reveals to a specific board; empty means the current one.
	BoardID string

	// JSON prints protojson instead of the colored grid.
	JSON bool

	// Out receives command output; defaults to stdout.
	Out io.Writer
}

// Start asks the server for a new board and prints it.
func Start(ctx context.Context, opts *Options) error {
	return withClient(ctx, opts, func(ctx context.Context, c *common.Client) error {
		return runStart(ctx, c, opts)
	})
}

// Board prints the current board.
func Board(ctx context.Context, opts *Options) error {
	return withClient(ctx, opts, func(ctx context.Context, c *common.Client) error {
		return runBoard(ctx, c, opts)
	})
}

// Reveal advances one clue and prints what the cell now shows.
func Reveal(ctx context.Context, opts *Options, categoryIndex, clueIndex int) error {
	return withClient(ctx, opts, func(ctx context.Context, c *common.Client) error {
		return runReveal(ctx, c, opts, categoryIndex, clueIndex)
	})
}

// withClient loads settings, dials the server and runs fn.
func withClient(ctx context.Context, opts *Options, fn func(context.Context, *common.Client) error) error {
	ctx = logger.WithName(ctx, "jeopardy")

	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return err
	}

	serverAddress := cfg.GRPCAddress
	if opts.ServerAddress != "" {
		serverAddress = opts.ServerAddress
	}

	client, err := common.Dial(ctx, serverAddress,
		common.WithCallTimeout(cfg.Timeout),
		common.WithSetupTimeout(SetupTimeout(cfg)),
	)
	if err != nil {
		return err
	}

	defer func() {
		_ = client.Close()
	}()

	logger.DebugKV(ctx, "Connected to board server", "server_address", serverAddress)

	return fn(ctx, client)
}

// SetupTimeout bounds StartGame: the server fetches the catalog and then every
// category, each request limited by the configured timeout.
func SetupTimeout(cfg *config.Config) time.Duration {
	return cfg.Timeout * time.Duration(cfg.Categories+1)
}

func runStart(ctx context.Context, c *common.Client, opts *Options) error {
	snapshot, err := c.StartGame(ctx)
	if err != nil {
		return err
	}

	logger.InfoKV(ctx, "New board started", "board_id", snapshot.ID, "categories", len(snapshot.Columns))

	return printSnapshot(opts, snapshot)
}

func runBoard(ctx context.Context, c *common.Client, opts *Options) error {
	snapshot, err := c.GetBoard(ctx)
	if err != nil {
		return err
	}

	return printSnapshot(opts, snapshot)
}

func runReveal(ctx context.Context, c *common.Client, opts *Options, categoryIndex, clueIndex int) error {
	t, err := c.Reveal(ctx, opts.BoardID, categoryIndex, clueIndex)
	if err != nil {
		return err
	}

	if opts.JSON {
		return printJSON(output(opts), grpcboard.TransitionToStruct(t))
	}

	label := color.New(color.FgHiBlack).Sprintf("[%d,%d] %s", categoryIndex, clueIndex, t.State)
	if !t.Changed {
		label += color.New(color.FgHiBlack).Sprint(" (unchanged)")
	}

	text := t.Text
	switch t.State {
	case board.Question:
		text = color.New(color.FgWhite, color.Bold).Sprint(text)
	case board.Answer:
		text = color.New(color.FgGreen, color.Bold).Sprint(text)
	}

	_, err = fmt.Fprintf(output(opts), "%s %s\n", label, text)

	return err
}

func printSnapshot(opts *Options, snapshot *board.Snapshot) error {
	if opts.JSON {
		return printJSON(output(opts), grpcboard.SnapshotToStruct(snapshot))
	}

	return render.NewTerminal(render.DefaultCellWidth).Render(output(opts), snapshot)
}

func printJSON(w io.Writer, m proto.Message) error {
	raw, err := protojson.MarshalOptions{Multiline: true, Indent: "  "}.Marshal(m)
	if err != nil {
		return fmt.Errorf("encode json: %w", err)
	}

	_, err = fmt.Fprintln(w, string(raw))

	return err
}

func output(opts *Options) io.Writer {
	if opts.Out != nil {
		return opts.Out
	}

	return os.Stdout
}
