// Package client implements the jeopardy command-line client.
//
// The commands connect to the board server over gRPC to start a game, print
// the board as a colored grid (or JSON), and reveal clues.
package client
