package board

import (
	"context"
	"errors"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"

	domain "github.com/oshokin/jeopardy/internal/domain/board"
	"github.com/oshokin/jeopardy/internal/service/game"
)

// Service abstracts the game operations the transport depends on.
type Service interface {
	Setup(ctx context.Context) (*domain.Snapshot, error)
	Board(ctx context.Context) (*domain.Snapshot, error)
	Reveal(ctx context.Context, boardID string, categoryIndex, clueIndex int) (domain.Transition, error)
}

// Server implements BoardServiceServer on top of a Service.
type Server struct {
	// service provides the game logic.
	service Service
}

// NewServer wires the provided service into a gRPC handler.
func NewServer(service Service) *Server {
	return &Server{
		service: service,
	}
}

// StartGame runs a new setup.
func (s *Server) StartGame(ctx context.Context, _ *emptypb.Empty) (*structpb.Struct, error) {
	snapshot, err := s.service.Setup(ctx)
	if err != nil {
		return nil, toStatus(err)
	}

	return SnapshotToStruct(snapshot), nil
}

// GetBoard returns the current board.
func (s *Server) GetBoard(ctx context.Context, _ *emptypb.Empty) (*structpb.Struct, error) {
	snapshot, err := s.service.Board(ctx)
	if err != nil {
		return nil, toStatus(err)
	}

	return SnapshotToStruct(snapshot), nil
}

// RevealClue advances one clue.
func (s *Server) RevealClue(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	if req == nil {
		return nil, status.Error(codes.InvalidArgument, "request is required")
	}

	boardID, categoryIndex, clueIndex, err := parseRevealRequest(req)
	if err != nil {
		return nil, status.Error(codes.InvalidArgument, err.Error())
	}

	t, err := s.service.Reveal(ctx, boardID, categoryIndex, clueIndex)
	if err != nil {
		return nil, toStatus(err)
	}

	return TransitionToStruct(t), nil
}

// toStatus maps service errors to gRPC status errors.
func toStatus(err error) error {
	switch {
	case errors.Is(err, domain.ErrOutOfRange):
		return status.Error(codes.OutOfRange, err.Error())
	case errors.Is(err, game.ErrDataUnavailable):
		return status.Error(codes.Unavailable, err.Error())
	case errors.Is(err, game.ErrSetupInProgress):
		return status.Error(codes.Aborted, err.Error())
	case errors.Is(err, game.ErrNotStarted), errors.Is(err, game.ErrStaleBoard):
		return status.Error(codes.FailedPrecondition, err.Error())
	case errors.Is(err, context.Canceled):
		return status.Error(codes.Canceled, err.Error())
	case errors.Is(err, context.DeadlineExceeded):
		return status.Error(codes.DeadlineExceeded, err.Error())
	default:
		return status.Error(codes.Internal, err.Error())
	}
}
