package cms

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"go.uber.org/zap"

	"github.com/gtmhub/searchd/internal/domain"
)

// Client queries the headless CMS content API. The pipeline consumes the CMS
// strictly read-only; a fetch failure is the one error allowed to fail a
// whole search request.
type Client struct {
	httpClient *http.Client
	baseURL    string
	token      string
	logger     *zap.Logger
}

// Config holds CMS connection settings.
type Config struct {
	BaseURL string
	Token   string
	Timeout time.Duration
	Logger  *zap.Logger
}

// NewClient creates a CMS query client.
func NewClient(cfg *Config) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &Client{
		httpClient: &http.Client{Timeout: timeout},
		baseURL:    cfg.BaseURL,
		token:      cfg.Token,
		logger:     cfg.Logger,
	}
}

// query runs one GROQ query and decodes the "result" array into out.
// All failures wrap domain.ErrContentSource.
func (c *Client) query(ctx context.Context, groq string, out any) error {
	u := c.baseURL + "?query=" + url.QueryEscape(groq)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return fmt.Errorf("build cms request: %w: %w", err, domain.ErrContentSource)
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("cms request: %w: %w", err, domain.ErrContentSource)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("cms status %d: %s: %w", resp.StatusCode, string(body), domain.ErrContentSource)
	}

	var envelope struct {
		Result json.RawMessage `json:"result"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		return fmt.Errorf("decode cms envelope: %w: %w", err, domain.ErrContentSource)
	}
	if err := json.Unmarshal(envelope.Result, out); err != nil {
		return fmt.Errorf("decode cms result: %w: %w", err, domain.ErrContentSource)
	}
	return nil
}

// Ping verifies the CMS query endpoint is reachable.
func (c *Client) Ping(ctx context.Context) error {
	var out []json.RawMessage
	if err := c.query(ctx, `*[_id == "__ping__"]{_id}`, &out); err != nil {
		return fmt.Errorf("cms ping: %w", err)
	}
	return nil
}
