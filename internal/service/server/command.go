package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"google.golang.org/grpc"

	grpcboard "github.com/oshokin/jeopardy/internal/api/grpc/board"
	"github.com/oshokin/jeopardy/internal/api/web"
	"github.com/oshokin/jeopardy/internal/config"
	"github.com/oshokin/jeopardy/internal/domain/board"
	"github.com/oshokin/jeopardy/internal/logger"
	"github.com/oshokin/jeopardy/internal/service/game"
	"github.com/oshokin/jeopardy/internal/trivia"
	"github.com/oshokin/jeopardy/internal/version"
)

// Options controls the jeopardy-server process and configuration.
type Options struct {
	// ConfigPath specifies the path to settings YAML file.
	ConfigPath string
	// HTTPAddress overrides the browser UI listen address.
	HTTPAddress string
	// GRPCAddress overrides the BoardService listen address.
	GRPCAddress string
	// LogLevel overrides the configured log level.
	LogLevel string
}

const (
	// shutdownTimeout bounds the HTTP graceful shutdown.
	shutdownTimeout = 10 * time.Second
	// readHeaderTimeout protects the HTTP server from slow clients.
	readHeaderTimeout = 10 * time.Second
)

var (
	// ErrNoServerAddress indicates missing server configuration.
	ErrNoServerAddress = errors.New("no server address configured")
	// ErrUnknownLogLevel indicates an unparsable log level.
	ErrUnknownLogLevel = errors.New("unknown log level")

	// errServerStopped is returned when a server exits before shutdown was requested.
	errServerStopped = errors.New("server stopped unexpectedly")
)

// Server owns both listeners and the game they expose.
type Server struct {
	// game is shared by both transports.
	game *game.Service

	// httpServer serves the browser UI.
	httpServer *http.Server
	// httpListener is bound to the browser UI address.
	httpListener net.Listener

	// grpcServer serves BoardService.
	grpcServer *grpc.Server
	// grpcListener is bound to the BoardService address.
	grpcListener net.Listener
}

// Run starts the HTTP and gRPC servers and blocks until ctx is canceled or a server fails.
func Run(ctx context.Context, opts *Options) error {
	ctx = logger.WithName(ctx, "jeopardy-server")

	s, err := New(ctx, opts)
	if err != nil {
		return err
	}

	return s.Serve(ctx)
}

// New loads configuration, builds the game and binds both listeners.
func New(ctx context.Context, opts *Options) (*Server, error) {
	settings, err := config.Load(opts.ConfigPath)
	if err != nil {
		return nil, fmt.Errorf("load settings: %w", err)
	}

	if err := applyLogLevel(settings.LogLevel, opts.LogLevel); err != nil {
		return nil, err
	}

	httpAddress, err := resolveListenAddress(settings.HTTPAddress, opts.HTTPAddress)
	if err != nil {
		return nil, fmt.Errorf("resolve http address: %w", err)
	}

	grpcAddress, err := resolveListenAddress(settings.GRPCAddress, opts.GRPCAddress)
	if err != nil {
		return nil, fmt.Errorf("resolve grpc address: %w", err)
	}

	svc, err := newGame(settings)
	if err != nil {
		return nil, fmt.Errorf("initialise game: %w", err)
	}

	handler, err := web.NewHandler(ctx, svc)
	if err != nil {
		return nil, fmt.Errorf("initialise web handler: %w", err)
	}

	lc := net.ListenConfig{}

	httpListener, err := lc.Listen(ctx, "tcp", httpAddress)
	if err != nil {
		return nil, fmt.Errorf("listen on %s: %w", httpAddress, err)
	}

	grpcListener, err := lc.Listen(ctx, "tcp", grpcAddress)
	if err != nil {
		_ = httpListener.Close()

		return nil, fmt.Errorf("listen on %s: %w", grpcAddress, err)
	}

	grpcServer := grpc.NewServer(grpc.UnaryInterceptor(grpcboard.LoggingInterceptor(ctx)))
	grpcboard.RegisterBoardServiceServer(grpcServer, grpcboard.NewServer(svc))

	logger.InfoKV(ctx, "Jeopardy server listening",
		"http_address", httpListener.Addr().String(),
		"grpc_address", grpcListener.Addr().String(),
		"api_url", settings.APIURL,
		"categories", settings.Categories,
		"clues_per_category", settings.CluesPerCategory,
	)

	logger.DebugKV(ctx, "Build info", version.KV()...)

	return &Server{
		game: svc,
		httpServer: &http.Server{
			Handler:           handler,
			ReadHeaderTimeout: readHeaderTimeout,
			BaseContext:       func(net.Listener) context.Context { return ctx },
		},
		httpListener: httpListener,
		grpcServer:   grpcServer,
		grpcListener: grpcListener,
	}, nil
}

// HTTPAddr returns the bound browser UI address.
func (s *Server) HTTPAddr() string {
	return s.httpListener.Addr().String()
}

// GRPCAddr returns the bound BoardService address.
func (s *Server) GRPCAddr() string {
	return s.grpcListener.Addr().String()
}

// Serve blocks until ctx is canceled or one of the servers fails, then stops both.
func (s *Server) Serve(ctx context.Context) error {
	errs := make(chan error, 2)

	go func() {
		if err := s.httpServer.Serve(s.httpListener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errs <- fmt.Errorf("serve HTTP: %w", err)

			return
		}

		errs <- nil
	}()

	go func() {
		if err := s.grpcServer.Serve(s.grpcListener); err != nil && !errors.Is(err, grpc.ErrServerStopped) {
			errs <- fmt.Errorf("serve gRPC: %w", err)

			return
		}

		errs <- nil
	}()

	var serveErr error

	select {
	case <-ctx.Done():
	case serveErr = <-errs:
		if serveErr == nil {
			serveErr = errServerStopped
		}
	}

	logger.Info(ctx, "Shutting down servers")

	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), shutdownTimeout)
	defer cancel()

	if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
		logger.ErrorKV(ctx, "HTTP shutdown failed", "error", err)
	}

	s.grpcServer.GracefulStop()

	logger.Info(ctx, "Servers stopped")

	return serveErr
}

// newGame wires the trivia client into a game service.
func newGame(settings *config.Config) (*game.Service, error) {
	client, err := trivia.NewClient(settings.APIURL,
		trivia.WithHTTPClient(&http.Client{Timeout: settings.Timeout}),
		trivia.WithCatalogSize(settings.CatalogSize),
		trivia.WithCluesPerCategory(settings.CluesPerCategory),
	)
	if err != nil {
		return nil, err
	}

	return game.NewService(client, client, board.NewModel(), settings.Categories), nil
}

// applyLogLevel sets the global level from the override, or from config when no override is given.
func applyLogLevel(configured, override string) error {
	value := configured
	if override != "" {
		value = override
	}

	lvl, ok := logger.ParseLogLevel(value)
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownLogLevel, value)
	}

	logger.SetLevel(lvl)

	return nil
}

// resolveListenAddress determines a listen address.
// If override is provided, uses it directly. Otherwise the configured address
// is validated and used as-is (e.g., ":8080" binds on all interfaces).
func resolveListenAddress(configAddr, override string) (string, error) {
	if override != "" {
		return override, nil
	}

	if configAddr == "" {
		return "", ErrNoServerAddress
	}

	if _, _, err := net.SplitHostPort(configAddr); err != nil {
		return "", fmt.Errorf("invalid server address format %q: %w", configAddr, err)
	}

	return configAddr, nil
}
