// Package logger wraps zap for the board server and client.
//
// A global sugared logger with a console encoder is created at init. Loggers
// travel in a context.Context (ToContext/FromContext), can be named per
// component (WithName) and decorated with key-value pairs (WithKV). The
// package-level helpers (Info, InfoKV, ErrorKV, ...) log through the logger
// found in the given context.
package logger
