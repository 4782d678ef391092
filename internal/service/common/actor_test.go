//nolint:revive,nolintlint // Package name "common" is intentional for shared helpers.
package common

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"google.golang.org/grpc/metadata"

	grpcboard "github.com/oshokin/jeopardy/internal/api/grpc/board"
)

// TestDetectActor ensures hostname and username are detected and non-empty.
func TestDetectActor(t *testing.T) {
	t.Parallel()

	a, err := DetectActor()
	require.NoError(t, err)
	require.NotEmpty(t, a.Hostname)
	require.NotEmpty(t, a.Username)
}

// TestActor_outgoing checks that only known fields end up in the metadata.
func TestActor_outgoing(t *testing.T) {
	t.Parallel()

	ctx := Actor{Hostname: "quiz-host"}.outgoing(context.Background())

	md, ok := metadata.FromOutgoingContext(ctx)
	require.True(t, ok)
	require.Equal(t, []string{"quiz-host"}, md.Get(grpcboard.ActorHostKey))
	require.Empty(t, md.Get(grpcboard.ActorUserKey))

	ctx = Actor{}.outgoing(context.Background())
	_, ok = metadata.FromOutgoingContext(ctx)
	require.False(t, ok)
}
