// Package common holds helpers shared by the command-line services.
//
// It provides a gRPC client for the board service with per-call timeouts, and
// detects the local actor (hostname/username) so the server can log who is
// driving the game.
//
//nolint:revive,nolintlint // Package name "common" is intentional for shared helpers.
package common
