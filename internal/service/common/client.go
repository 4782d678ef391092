//nolint:revive,nolintlint // Package name "common" is intentional for shared helpers.
package common

import (
	"context"
	"errors"
	"fmt"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"

	grpcboard "github.com/oshokin/jeopardy/internal/api/grpc/board"
	"github.com/oshokin/jeopardy/internal/config"
	"github.com/oshokin/jeopardy/internal/domain/board"
)

// DefaultSetupTimeout bounds StartGame, which fetches a whole board upstream.
const DefaultSetupTimeout = time.Minute

// Client wraps the gRPC BoardService client with convenience helpers.
type Client struct {
	// conn is the underlying gRPC connection to the board server.
	conn grpc.ClientConnInterface
	// closer releases conn; nil when the connection is owned by the caller.
	closer func() error
	// api is the BoardService client.
	api *grpcboard.BoardServiceClient
	// actor is attached to every call.
	actor Actor

	// callTimeout is the default timeout for individual RPC calls.
	callTimeout time.Duration
	// setupTimeout is the timeout for StartGame.
	setupTimeout time.Duration
}

// Option configures client behaviour.
type Option func(*Client)

// WithCallTimeout sets a default timeout for service calls.
func WithCallTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		if timeout > 0 {
			c.callTimeout = timeout
		}
	}
}

// WithSetupTimeout sets the timeout for StartGame.
func WithSetupTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		if timeout > 0 {
			c.setupTimeout = timeout
		}
	}
}

// WithActor overrides the detected actor.
func WithActor(actor Actor) Option {
	return func(c *Client) {
		c.actor = actor
	}
}

// errAddressRequired is returned when a required address value is missing.
var errAddressRequired = errors.New("address must be provided")

// Dial establishes a gRPC connection to the board server.
// Note: this uses insecure transport credentials; deploy on a trusted network
// or terminate TLS in a proxy until native TLS is added.
func Dial(_ context.Context, address string, opts ...Option) (*Client, error) {
	if address == "" {
		return nil, errAddressRequired
	}

	conn, err := grpc.NewClient(address, grpc.WithTransportCredentials(insecure.NewCredentials()))
	if err != nil {
		return nil, fmt.Errorf("dial board server: %w", err)
	}

	client := NewClient(conn, opts...)
	client.closer = conn.Close

	return client, nil
}

// NewClient wraps an existing connection. The caller keeps ownership of conn.
func NewClient(conn grpc.ClientConnInterface, opts ...Option) *Client {
	client := &Client{
		conn:         conn,
		api:          grpcboard.NewBoardServiceClient(conn),
		callTimeout:  config.DefaultTimeout,
		setupTimeout: DefaultSetupTimeout,
	}

	// Actor detection is best effort; calls still work without it.
	if actor, err := DetectActor(); err == nil {
		client.actor = actor
	}

	for _, opt := range opts {
		opt(client)
	}

	return client
}

// Close releases the underlying gRPC connection.
func (c *Client) Close() error {
	if c == nil || c.closer == nil {
		return nil
	}

	return c.closer()
}

// StartGame asks the server to fetch and install a new board.
func (c *Client) StartGame(ctx context.Context) (*board.Snapshot, error) {
	callCtx, cancel := c.withTimeout(ctx, c.setupTimeout)
	defer cancel()

	resp, err := c.api.StartGame(callCtx)
	if err != nil {
		return nil, fmt.Errorf("start game: %w", err)
	}

	return grpcboard.SnapshotFromStruct(resp)
}

// GetBoard retrieves the current board.
func (c *Client) GetBoard(ctx context.Context) (*board.Snapshot, error) {
	callCtx, cancel := c.callContext(ctx)
	defer cancel()

	resp, err := c.api.GetBoard(callCtx)
	if err != nil {
		return nil, fmt.Errorf("get board: %w", err)
	}

	return grpcboard.SnapshotFromStruct(resp)
}

// Reveal advances one clue. An empty boardID addresses the current board.
func (c *Client) Reveal(ctx context.Context, boardID string, categoryIndex, clueIndex int) (board.Transition, error) {
	callCtx, cancel := c.callContext(ctx)
	defer cancel()

	resp, err := c.api.RevealClue(callCtx, grpcboard.NewRevealRequest(boardID, categoryIndex, clueIndex))
	if err != nil {
		return board.Transition{}, fmt.Errorf("reveal clue: %w", err)
	}

	return grpcboard.TransitionFromStruct(resp)
}

// callContext returns a context with the client's call timeout if configured,
// otherwise a cancellable child context without a deadline.
func (c *Client) callContext(ctx context.Context) (context.Context, context.CancelFunc) {
	return c.withTimeout(ctx, c.callTimeout)
}

func (c *Client) withTimeout(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	ctx = c.actor.outgoing(ctx)

	if timeout <= 0 {
		return context.WithCancel(ctx)
	}

	return context.WithTimeout(ctx, timeout)
}
