// Package board implements the gRPC transport for the trivia board.
//
// The BoardService descriptor is declared by hand over protobuf well-known
// types: requests and responses are google.protobuf.Empty and
// google.protobuf.Struct. Server adapts the game service to the descriptor,
// Client calls it from the CLI.
package board
