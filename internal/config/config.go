package config

import (
	"errors"
	"fmt"
	"net"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config holds the settings of the board server and its CLI client.
type Config struct {
	// HTTPAddress is where the browser UI is served.
	HTTPAddress string `yaml:"http_addr"`
	// GRPCAddress is where the BoardService listens and where the client dials.
	GRPCAddress string `yaml:"grpc_addr"`
	// APIURL is the root of the jservice-compatible trivia API.
	APIURL string `yaml:"api_url"`
	// Timeout bounds trivia API requests and client RPC calls.
	Timeout time.Duration `yaml:"timeout"`
	// Categories is the number of columns on a board.
	Categories int `yaml:"categories"`
	// CluesPerCategory is the number of clues drawn for each column.
	CluesPerCategory int `yaml:"clues_per_category"`
	// CatalogSize is how many catalog entries categories are sampled from.
	CatalogSize int `yaml:"catalog_size"`
	// LogLevel is the minimum level written by the logger.
	LogLevel string `yaml:"log_level"`
}

const (
	// DefaultConfigFilename is the settings file looked up when no path is given.
	DefaultConfigFilename = "jeopardy-settings.yaml"
	// DefaultEnvFilename is the optional dotenv file read before env overrides.
	DefaultEnvFilename = ".env"

	// DefaultHTTPAddress serves the browser UI on all interfaces.
	DefaultHTTPAddress = ":8080"
	// DefaultGRPCAddress is the BoardService address.
	DefaultGRPCAddress = "127.0.0.1:50051"
	// DefaultAPIURL is the public jservice API.
	DefaultAPIURL = "https://jservice.io/api"
	// DefaultTimeout bounds a single network operation.
	DefaultTimeout = 5 * time.Second
	// DefaultCategories is the number of board columns.
	DefaultCategories = 6
	// DefaultCluesPerCategory is the number of board rows.
	DefaultCluesPerCategory = 5
	// DefaultCatalogSize is the catalog prefix sampled from.
	DefaultCatalogSize = 100
	// DefaultLogLevel is used when none is configured.
	DefaultLogLevel = "info"

	// DefaultFilePermissions is used when writing the settings file.
	DefaultFilePermissions = 0o600

	// envPrefix prefixes every environment override.
	envPrefix = "JEOPARDY_"
)

var (
	// errConfigIsNotSet is returned when a nil configuration is provided.
	errConfigIsNotSet = errors.New("configuration is not set")
	// errAPIURLRequired is returned when the trivia API root is missing.
	errAPIURLRequired = errors.New("api_url must be provided")
	// errCatalogTooSmall is returned when fewer catalog entries than columns are requested.
	errCatalogTooSmall = errors.New("catalog_size must not be smaller than categories")
)

// Default returns a configuration with every field set to its default.
func Default() *Config {
	return &Config{
		HTTPAddress:      DefaultHTTPAddress,
		GRPCAddress:      DefaultGRPCAddress,
		APIURL:           DefaultAPIURL,
		Timeout:          DefaultTimeout,
		Categories:       DefaultCategories,
		CluesPerCategory: DefaultCluesPerCategory,
		CatalogSize:      DefaultCatalogSize,
		LogLevel:         DefaultLogLevel,
	}
}

// Load reads the settings file, applies .env and environment overrides and validates the result.
// An empty path means DefaultConfigFilename, which may be absent.
func Load(path string) (*Config, error) {
	optional := path == ""
	if optional {
		path = DefaultConfigFilename
	}

	cfg := Default()

	contents, err := os.ReadFile(filepath.Clean(path))
	switch {
	case err == nil:
		if err := yaml.Unmarshal(contents, cfg); err != nil {
			return nil, fmt.Errorf("unmarshal settings: %w", err)
		}
	case optional && errors.Is(err, os.ErrNotExist):
		// Defaults only.
	default:
		return nil, fmt.Errorf("read settings: %w", err)
	}

	// A missing .env is fine; existing variables win over the file.
	_ = godotenv.Load(DefaultEnvFilename) //nolint:errcheck // Optional file.

	if err := ApplyEnv(cfg); err != nil {
		return nil, err
	}

	if err := Validate(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Save writes the settings to path.
func Save(path string, cfg *Config) error {
	if cfg == nil {
		return errConfigIsNotSet
	}

	if path == "" {
		path = DefaultConfigFilename
	}

	if err := Validate(cfg); err != nil {
		return err
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshal settings: %w", err)
	}

	if err := os.WriteFile(filepath.Clean(path), data, DefaultFilePermissions); err != nil {
		return fmt.Errorf("write settings: %w", err)
	}

	return nil
}

// ApplyEnv overrides fields from JEOPARDY_* environment variables.
func ApplyEnv(cfg *Config) error {
	if cfg == nil {
		return errConfigIsNotSet
	}

	stringFields := map[string]*string{
		"HTTP_ADDR": &cfg.HTTPAddress,
		"GRPC_ADDR": &cfg.GRPCAddress,
		"API_URL":   &cfg.APIURL,
		"LOG_LEVEL": &cfg.LogLevel,
	}

	for name, field := range stringFields {
		if v, ok := os.LookupEnv(envPrefix + name); ok && v != "" {
			*field = v
		}
	}

	intFields := map[string]*int{
		"CATEGORIES":         &cfg.Categories,
		"CLUES_PER_CATEGORY": &cfg.CluesPerCategory,
		"CATALOG_SIZE":       &cfg.CatalogSize,
	}

	for name, field := range intFields {
		v, ok := os.LookupEnv(envPrefix + name)
		if !ok || v == "" {
			continue
		}

		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid %s%s: %w", envPrefix, name, err)
		}

		*field = n
	}

	if v, ok := os.LookupEnv(envPrefix + "TIMEOUT"); ok && v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("invalid %sTIMEOUT: %w", envPrefix, err)
		}

		cfg.Timeout = d
	}

	return nil
}

// Validate checks required fields and fills defaults for optional ones.
func Validate(cfg *Config) error {
	if cfg == nil {
		return errConfigIsNotSet
	}

	if cfg.APIURL == "" {
		return errAPIURLRequired
	}

	if _, err := url.ParseRequestURI(cfg.APIURL); err != nil {
		return fmt.Errorf("invalid api_url: %w", err)
	}

	if cfg.HTTPAddress == "" {
		cfg.HTTPAddress = DefaultHTTPAddress
	}

	if cfg.GRPCAddress == "" {
		cfg.GRPCAddress = DefaultGRPCAddress
	}

	for name, addr := range map[string]string{"http_addr": cfg.HTTPAddress, "grpc_addr": cfg.GRPCAddress} {
		if _, _, err := net.SplitHostPort(addr); err != nil {
			return fmt.Errorf("invalid %s %q: %w", name, addr, err)
		}
	}

	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}

	if cfg.Categories <= 0 {
		cfg.Categories = DefaultCategories
	}

	if cfg.CluesPerCategory <= 0 {
		cfg.CluesPerCategory = DefaultCluesPerCategory
	}

	if cfg.CatalogSize <= 0 {
		cfg.CatalogSize = DefaultCatalogSize
	}

	if cfg.CatalogSize < cfg.Categories {
		return errCatalogTooSmall
	}

	if cfg.LogLevel == "" {
		cfg.LogLevel = DefaultLogLevel
	}

	return nil
}
