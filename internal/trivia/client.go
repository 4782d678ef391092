package trivia

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math/rand/v2"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/oshokin/jeopardy/internal/domain/board"
	"github.com/oshokin/jeopardy/internal/logger"
)

const (
	// DefaultBaseURL is the public jservice API root.
	DefaultBaseURL = "https://jservice.io/api"
	// DefaultCatalogSize is how many catalog entries are considered for sampling.
	DefaultCatalogSize = 100
	// DefaultCluesPerCategory is how many clues are drawn for each category.
	DefaultCluesPerCategory = 5
	// DefaultTimeout bounds a single API request.
	DefaultTimeout = 5 * time.Second

	// maxResponseSize caps how much of a response body is read.
	maxResponseSize = 4 << 20
)

var (
	// ErrEmptyCatalog is returned when the catalog has no usable categories.
	ErrEmptyCatalog = errors.New("category catalog is empty")
	// ErrUnexpectedStatus is returned for non-2xx API responses.
	ErrUnexpectedStatus = errors.New("unexpected API status")

	// errBaseURLRequired is returned when the client is built without an API root.
	errBaseURLRequired = errors.New("API base URL must be provided")
)

// catalogEntry is one element of the categories listing.
type catalogEntry struct {
	ID         int    `json:"id"`
	Title      string `json:"title"`
	CluesCount int    `json:"clues_count"`
}

// categoryResponse is the category details payload. Other fields are ignored.
type categoryResponse struct {
	ID    int            `json:"id"`
	Title string         `json:"title"`
	Clues []clueResponse `json:"clues"`
}

// clueResponse keeps only the clue text fields.
type clueResponse struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

// Client fetches categories and clues from the trivia API.
type Client struct {
	// baseURL is the API root, e.g. https://jservice.io/api.
	baseURL *url.URL
	// httpClient performs the requests.
	httpClient *http.Client
	// catalogSize is the count parameter of the catalog request.
	catalogSize int
	// cluesPerCategory is the sample size for clues.
	cluesPerCategory int

	// rng drives sampling; guarded by rngMu since *rand.Rand is not goroutine safe.
	rng   *rand.Rand
	rngMu sync.Mutex
}

// Option configures the client.
type Option func(*Client)

// WithHTTPClient replaces the default HTTP client.
func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) {
		if httpClient != nil {
			c.httpClient = httpClient
		}
	}
}

// WithCatalogSize sets how many catalog entries are requested.
func WithCatalogSize(size int) Option {
	return func(c *Client) {
		if size > 0 {
			c.catalogSize = size
		}
	}
}

// WithCluesPerCategory sets how many clues are sampled per category.
func WithCluesPerCategory(n int) Option {
	return func(c *Client) {
		if n > 0 {
			c.cluesPerCategory = n
		}
	}
}

// WithRand sets the random source used for sampling.
func WithRand(rng *rand.Rand) Option {
	return func(c *Client) {
		if rng != nil {
			c.rng = rng
		}
	}
}

// NewClient creates a client for the API rooted at baseURL.
func NewClient(baseURL string, opts ...Option) (*Client, error) {
	if baseURL == "" {
		return nil, errBaseURLRequired
	}

	parsed, err := url.Parse(strings.TrimRight(baseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("parse API base URL: %w", err)
	}

	c := &Client{
		baseURL:          parsed,
		httpClient:       &http.Client{Timeout: DefaultTimeout},
		catalogSize:      DefaultCatalogSize,
		cluesPerCategory: DefaultCluesPerCategory,
		rng:              rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64())), //nolint:gosec // Game randomness.
	}

	for _, opt := range opts {
		opt(c)
	}

	return c, nil
}

// CategoryIDs returns n distinct category identifiers sampled from the catalog.
// Fewer are returned when the catalog is smaller than n.
func (c *Client) CategoryIDs(ctx context.Context, n int) ([]int, error) {
	var catalog []catalogEntry

	query := url.Values{"count": {strconv.Itoa(c.catalogSize)}}
	if err := c.getJSON(ctx, "categories", query, &catalog); err != nil {
		return nil, fmt.Errorf("fetch catalog: %w", err)
	}

	ids := make([]int, 0, len(catalog))

	for _, entry := range catalog {
		// A known clue count below the sample size would leave a short column.
		if entry.CluesCount > 0 && entry.CluesCount < c.cluesPerCategory {
			continue
		}

		ids = append(ids, entry.ID)
	}

	if len(ids) == 0 {
		return nil, ErrEmptyCatalog
	}

	sampled := sample(c, ids, n)

	logger.DebugKV(ctx, "Sampled categories", "catalog_size", len(catalog), "usable", len(ids), "ids", sampled)

	return sampled, nil
}

// Category loads one category and samples its clues. Every clue starts Hidden.
func (c *Client) Category(ctx context.Context, id int) (board.Category, error) {
	var payload categoryResponse

	query := url.Values{"id": {strconv.Itoa(id)}}
	if err := c.getJSON(ctx, "category", query, &payload); err != nil {
		return board.Category{}, fmt.Errorf("fetch category %d: %w", id, err)
	}

	sampled := sample(c, payload.Clues, c.cluesPerCategory)
	clues := make([]board.Clue, 0, len(sampled))

	for _, clue := range sampled {
		clues = append(clues, board.Clue{
			Question: clue.Question,
			Answer:   clue.Answer,
			State:    board.Hidden,
		})
	}

	logger.DebugKV(ctx, "Loaded category", "id", id, "title", payload.Title, "available", len(payload.Clues))

	return board.Category{
		Title: payload.Title,
		Clues: clues,
	}, nil
}

// sample draws from items under the rng lock.
func sample[T any](c *Client, items []T, n int) []T {
	c.rngMu.Lock()
	defer c.rngMu.Unlock()

	return Sample(c.rng, items, n)
}

// getJSON performs a GET on baseURL/endpoint and decodes the JSON body into out.
func (c *Client) getJSON(ctx context.Context, endpoint string, query url.Values, out any) error {
	target := c.baseURL.JoinPath(endpoint)
	target.RawQuery = query.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target.String(), nil)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}

	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request %s: %w", endpoint, err)
	}

	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return fmt.Errorf("%w: %s returned %d", ErrUnexpectedStatus, endpoint, resp.StatusCode)
	}

	if err := json.NewDecoder(io.LimitReader(resp.Body, maxResponseSize)).Decode(out); err != nil {
		return fmt.Errorf("decode %s response: %w", endpoint, err)
	}

	return nil
}
