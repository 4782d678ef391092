package board

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"
)

const (
	// ServiceName is the fully qualified gRPC service name.
	ServiceName = "jeopardy.v1.BoardService"

	// StartGameMethod is the full method name of StartGame.
	StartGameMethod = "/" + ServiceName + "/StartGame"
	// GetBoardMethod is the full method name of GetBoard.
	GetBoardMethod = "/" + ServiceName + "/GetBoard"
	// RevealClueMethod is the full method name of RevealClue.
	RevealClueMethod = "/" + ServiceName + "/RevealClue"
)

// BoardServiceServer is the server API of BoardService.
type BoardServiceServer interface {
	// StartGame runs a new game setup and returns the board snapshot.
	StartGame(ctx context.Context, req *emptypb.Empty) (*structpb.Struct, error)
	// GetBoard returns the current board snapshot.
	GetBoard(ctx context.Context, req *emptypb.Empty) (*structpb.Struct, error)
	// RevealClue advances one clue and returns the transition.
	RevealClue(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error)
}

// ServiceDesc describes BoardService for grpc.Server.RegisterService.
//
//nolint:gochecknoglobals // Service descriptors are package-level by convention.
var ServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*BoardServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "StartGame", Handler: startGameHandler},
		{MethodName: "GetBoard", Handler: getBoardHandler},
		{MethodName: "RevealClue", Handler: revealClueHandler},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "jeopardy/v1/board.proto",
}

// RegisterBoardServiceServer registers srv on s.
func RegisterBoardServiceServer(s grpc.ServiceRegistrar, srv BoardServiceServer) {
	s.RegisterService(&ServiceDesc, srv)
}

func startGameHandler(
	srv any,
	ctx context.Context, //nolint:revive // Argument order is fixed by grpc.MethodHandler.
	dec func(any) error,
	interceptor grpc.UnaryServerInterceptor,
) (any, error) {
	in := new(emptypb.Empty)
	if err := dec(in); err != nil {
		return nil, err
	}

	if interceptor == nil {
		return srv.(BoardServiceServer).StartGame(ctx, in)
	}

	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: StartGameMethod}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(BoardServiceServer).StartGame(ctx, req.(*emptypb.Empty))
	}

	return interceptor(ctx, in, info, handler)
}

func getBoardHandler(
	srv any,
	ctx context.Context, //nolint:revive // Argument order is fixed by grpc.MethodHandler.
	dec func(any) error,
	interceptor grpc.UnaryServerInterceptor,
) (any, error) {
	in := new(emptypb.Empty)
	if err := dec(in); err != nil {
		return nil, err
	}

	if interceptor == nil {
		return srv.(BoardServiceServer).GetBoard(ctx, in)
	}

	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: GetBoardMethod}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(BoardServiceServer).GetBoard(ctx, req.(*emptypb.Empty))
	}

	return interceptor(ctx, in, info, handler)
}

func revealClueHandler(
	srv any,
	ctx context.Context, //nolint:revive // Argument order is fixed by grpc.MethodHandler.
	dec func(any) error,
	interceptor grpc.UnaryServerInterceptor,
) (any, error) {
	in := new(structpb.Struct)
	if err := dec(in); err != nil {
		return nil, err
	}

	if interceptor == nil {
		return srv.(BoardServiceServer).RevealClue(ctx, in)
	}

	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: RevealClueMethod}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(BoardServiceServer).RevealClue(ctx, req.(*structpb.Struct))
	}

	return interceptor(ctx, in, info, handler)
}

// BoardServiceClient is the client API of BoardService.
type BoardServiceClient struct {
	// cc carries the calls.
	cc grpc.ClientConnInterface
}

// NewBoardServiceClient creates a client over cc.
func NewBoardServiceClient(cc grpc.ClientConnInterface) *BoardServiceClient {
	return &BoardServiceClient{cc: cc}
}

// StartGame calls BoardService.StartGame.
func (c *BoardServiceClient) StartGame(ctx context.Context, opts ...grpc.CallOption) (*structpb.Struct, error) {
	out := new(structpb.Struct)
	if err := c.cc.Invoke(ctx, StartGameMethod, new(emptypb.Empty), out, opts...); err != nil {
		return nil, err
	}

	return out, nil
}

// GetBoard calls BoardService.GetBoard.
func (c *BoardServiceClient) GetBoard(ctx context.Context, opts ...grpc.CallOption) (*structpb.Struct, error) {
	out := new(structpb.Struct)
	if err := c.cc.Invoke(ctx, GetBoardMethod, new(emptypb.Empty), out, opts...); err != nil {
		return nil, err
	}

	return out, nil
}

// RevealClue calls BoardService.RevealClue.
func (c *BoardServiceClient) RevealClue(
	ctx context.Context,
	req *structpb.Struct,
	opts ...grpc.CallOption,
) (*structpb.Struct, error) {
	out := new(structpb.Struct)
	if err := c.cc.Invoke(ctx, RevealClueMethod, req, out, opts...); err != nil {
		return nil, err
	}

	return out, nil
}
