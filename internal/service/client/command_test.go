package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/test/bufconn"

	grpcboard "github.com/oshokin/jeopardy/internal/api/grpc/board"
	"github.com/oshokin/jeopardy/internal/config"
	"github.com/oshokin/jeopardy/internal/domain/board"
	"github.com/oshokin/jeopardy/internal/service/common"
	"github.com/oshokin/jeopardy/internal/service/game"
)

// stubTrivia serves categories titled after their IDs.
type stubTrivia struct{}

func (stubTrivia) CategoryIDs(_ context.Context, n int) ([]int, error) {
	ids := make([]int, n)
	for i := range ids {
		ids[i] = 10 + i
	}

	return ids, nil
}

func (stubTrivia) Category(_ context.Context, id int) (board.Category, error) {
	return board.Category{
		Title: fmt.Sprintf("topic %d", id),
		Clues: []board.Clue{
			{Question: fmt.Sprintf("question %d", id), Answer: fmt.Sprintf("answer %d", id)},
		},
	}, nil
}

// newTestClient returns a client wired to an in-memory board server.
func newTestClient(t *testing.T) *common.Client {
	t.Helper()

	lis := bufconn.Listen(1 << 20)
	srv := grpc.NewServer()
	svc := game.NewService(stubTrivia{}, stubTrivia{}, board.NewModel(), 2)
	grpcboard.RegisterBoardServiceServer(srv, grpcboard.NewServer(svc))

	go func() {
		_ = srv.Serve(lis)
	}()

	conn, err := grpc.NewClient(
		"passthrough:///bufnet",
		grpc.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) {
			return lis.DialContext(ctx)
		}),
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	)
	require.NoError(t, err)

	t.Cleanup(func() {
		_ = conn.Close()
		srv.Stop()
	})

	return common.NewClient(conn)
}

// TestCommands_Grid starts a game and prints the grid and a reveal.
func TestCommands_Grid(t *testing.T) {
	t.Parallel()

	c := newTestClient(t)
	ctx := context.Background()

	var out bytes.Buffer

	opts := &Options{Out: &out}

	require.NoError(t, runStart(ctx, c, opts))
	require.Contains(t, out.String(), "topic 10")
	require.Contains(t, out.String(), "topic 11")
	require.NotContains(t, out.String(), "question 10")

	out.Reset()
	require.NoError(t, runReveal(ctx, c, opts, 0, 0))
	require.Contains(t, out.String(), "question 10")
	require.NotContains(t, out.String(), "unchanged")

	out.Reset()
	require.NoError(t, runReveal(ctx, c, opts, 0, 0))
	require.NoError(t, runReveal(ctx, c, opts, 0, 0))
	require.Contains(t, out.String(), "answer 10")
	require.Contains(t, out.String(), "unchanged")

	out.Reset()
	require.NoError(t, runBoard(ctx, c, opts))
	require.Contains(t, out.String(), "answer 10")
}

// TestCommands_JSON prints machine-readable output.
func TestCommands_JSON(t *testing.T) {
	t.Parallel()

	c := newTestClient(t)
	ctx := context.Background()

	var out bytes.Buffer

	opts := &Options{Out: &out, JSON: true}

	require.NoError(t, runStart(ctx, c, opts))

	var snapshot struct {
		BoardID string `json:"board_id"`
		Rows    int    `json:"rows"`
		Columns []struct {
			Title string `json:"title"`
		} `json:"columns"`
	}

	require.NoError(t, json.Unmarshal(out.Bytes(), &snapshot))
	require.NotEmpty(t, snapshot.BoardID)
	require.Equal(t, 1, snapshot.Rows)
	require.Len(t, snapshot.Columns, 2)
	require.Equal(t, "topic 11", snapshot.Columns[1].Title)

	out.Reset()

	opts.BoardID = snapshot.BoardID
	require.NoError(t, runReveal(ctx, c, opts, 1, 0))
	require.JSONEq(t, `{"text":"question 11","state":"question","changed":true}`, out.String())
}

// TestCommands_Errors surfaces server rejections.
func TestCommands_Errors(t *testing.T) {
	t.Parallel()

	c := newTestClient(t)
	ctx := context.Background()
	opts := &Options{Out: new(bytes.Buffer)}

	require.Error(t, runBoard(ctx, c, opts))
	require.Error(t, runReveal(ctx, c, opts, 0, 0))

	require.NoError(t, runStart(ctx, c, opts))
	require.Error(t, runReveal(ctx, c, opts, 5, 0))

	opts.BoardID = "elsewhere"
	require.Error(t, runReveal(ctx, c, opts, 0, 0))
}

// TestSetupTimeout scales with the number of upstream requests a setup makes.
func TestSetupTimeout(t *testing.T) {
	t.Parallel()

	cfg := config.Default()
	cfg.Timeout = 2 * time.Second
	cfg.Categories = 6

	require.Equal(t, 14*time.Second, SetupTimeout(cfg))
}
