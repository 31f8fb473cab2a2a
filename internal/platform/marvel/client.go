package marvel

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/phrazzld/hero-flashcards/internal/catalog"
	"github.com/phrazzld/hero-flashcards/internal/config"
	"github.com/phrazzld/hero-flashcards/internal/platform/logger"
)

// maxBodyBytes bounds how much of a response is read.
const maxBodyBytes = 8 << 20

// Client fetches characters from the catalog API.
type Client struct {
	baseURL    string
	publicKey  string
	privateKey string
	limit      int
	httpClient *http.Client
	logger     *slog.Logger
	now        func() time.Time
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the HTTP client. Its timeout is used as-is.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.httpClient = hc
		}
	}
}

// WithClock sets the time source used for request timestamps.
func WithClock(now func() time.Time) Option {
	return func(c *Client) {
		if now != nil {
			c.now = now
		}
	}
}

// NewClient creates a Client from configuration.
func NewClient(cfg config.MarvelConfig, log *slog.Logger, opts ...Option) (*Client, error) {
	if log == nil {
		return nil, fmt.Errorf("%w: logger cannot be nil", ErrInvalidConfig)
	}

	base, err := url.Parse(cfg.BaseURL)
	if err != nil || base.Scheme == "" || base.Host == "" {
		return nil, fmt.Errorf("%w: base URL %q", ErrInvalidConfig, cfg.BaseURL)
	}

	limit := cfg.Limit
	if limit <= 0 {
		limit = 100
	}
	timeout := time.Duration(cfg.TimeoutSeconds) * time.Second
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	c := &Client{
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		publicKey:  cfg.PublicKey,
		privateKey: cfg.PrivateKey,
		limit:      limit,
		httpClient: &http.Client{Timeout: timeout},
		logger:     log.With(slog.String("component", "marvel_client")),
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// FetchCharacters requests one page of characters ordered by name, limited
// to those with digital comics.
func (c *Client) FetchCharacters(ctx context.Context) ([]catalog.Record, error) {
	log := logger.FromContextOrDefault(ctx, c.logger)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.charactersURL(), nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrRequestFailed, err)
	}
	req.Header.Set("Accept", "application/json")

	start := c.now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrRequestFailed, err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, fmt.Errorf("%w: reading body: %w", ErrRequestFailed, err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: %d", ErrUnexpectedStatus, resp.StatusCode)
	}

	var env envelope
	if err := json.Unmarshal(body, &env); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDecode, err)
	}
	if !env.Code.ok() {
		return nil, fmt.Errorf("%w: code %s: %s", ErrAPIStatus, env.Code, env.describe())
	}

	records := make([]catalog.Record, 0, len(env.Data.Results))
	for _, r := range env.Data.Results {
		records = append(records, catalog.Record{
			ID:          r.ID,
			Name:        r.Name,
			Description: r.Description,
			Thumbnail: catalog.Thumbnail{
				Path:      r.Thumbnail.Path,
				Extension: r.Thumbnail.Extension,
			},
		})
	}

	log.DebugContext(ctx, "fetched characters",
		slog.Int("count", len(records)),
		slog.Duration("elapsed", c.now().Sub(start)))

	return records, nil
}

func (c *Client) charactersURL() string {
	ts := strconv.FormatInt(c.now().UnixMilli(), 10)

	q := url.Values{}
	q.Set("apikey", c.publicKey)
	q.Set("ts", ts)
	q.Set("hash", AuthHash(ts, c.privateKey, c.publicKey))
	q.Set("limit", strconv.Itoa(c.limit))
	q.Set("orderBy", "name")
	q.Set("hasDigitalComics", "true")

	return c.baseURL + "/characters?" + q.Encode()
}

func (e envelope) describe() string {
	switch {
	case e.Status != "":
		return e.Status
	case e.Message != "":
		return e.Message
	default:
		return "API Error"
	}
}
