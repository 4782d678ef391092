//nolint:revive,nolintlint // Package name "common" is intentional for shared helpers.
package common

import (
	"context"
	"fmt"
	"os"
	"os/user"

	"google.golang.org/grpc/metadata"

	grpcboard "github.com/oshokin/jeopardy/internal/api/grpc/board"
)

// Actor identifies the machine and user issuing commands.
type Actor struct {
	// Hostname is the local machine name.
	Hostname string
	// Username is the current OS user.
	Username string
}

// DetectActor gathers host and user information for the server's call log.
func DetectActor() (Actor, error) {
	hostname, err := os.Hostname()
	if err != nil {
		return Actor{}, fmt.Errorf("hostname: %w", err)
	}

	currentUser, err := user.Current()
	if err != nil {
		return Actor{}, fmt.Errorf("current user: %w", err)
	}

	return Actor{
		Hostname: hostname,
		Username: currentUser.Username,
	}, nil
}

// outgoing attaches the actor to the outgoing gRPC metadata of ctx.
func (a Actor) outgoing(ctx context.Context) context.Context {
	pairs := make([]string, 0, 4)

	if a.Hostname != "" {
		pairs = append(pairs, grpcboard.ActorHostKey, a.Hostname)
	}

	if a.Username != "" {
		pairs = append(pairs, grpcboard.ActorUserKey, a.Username)
	}

	if len(pairs) == 0 {
		return ctx
	}

	return metadata.AppendToOutgoingContext(ctx, pairs...)
}
