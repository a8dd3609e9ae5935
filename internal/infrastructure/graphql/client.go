package graphql

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"github.com/photogram/photogram-api/internal/pkg/metrics"
)

const (
	defaultTimeout    = 10 * time.Second
	adminSecretHeader = "X-Hasura-Admin-Secret"
	maxErrorBody      = 4 << 10
)

// Config captures the settings for talking to the GraphQL endpoint.
type Config struct {
	Endpoint    string
	AdminSecret string
	Timeout     time.Duration
	// HTTPClient overrides the transport; tests point it at httptest servers.
	HTTPClient *http.Client
}

// Client sends operation documents to the GraphQL store over HTTP.
type Client struct {
	endpoint    string
	adminSecret string
	timeout     time.Duration
	http        *http.Client
	log         zerolog.Logger
}

// NewClient builds a Client. A default timeout is applied when none is provided.
func NewClient(cfg Config, log zerolog.Logger) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	hc := cfg.HTTPClient
	if hc == nil {
		hc = &http.Client{}
	}
	return &Client{
		endpoint:    cfg.Endpoint,
		adminSecret: cfg.AdminSecret,
		timeout:     timeout,
		http:        hc,
		log:         log,
	}
}

type request struct {
	Query         string `json:"query"`
	Variables     any    `json:"variables,omitempty"`
	OperationName string `json:"operationName,omitempty"`
}

type response struct {
	Data   json.RawMessage `json:"data"`
	Errors []wireError     `json:"errors"`
}

type wireError struct {
	Message    string `json:"message"`
	Extensions struct {
		Code string `json:"code"`
		Path string `json:"path"`
	} `json:"extensions"`
}

// Do executes a single operation and decodes its data into out.
// Backend errors are returned as *Error.
func (c *Client) Do(ctx context.Context, operation, query string, variables, out any) (err error) {
	start := time.Now()
	defer func() {
		outcome := "ok"
		if err != nil {
			outcome = "error"
		}
		metrics.GraphQLRequestDuration.WithLabelValues(operation, outcome).Observe(time.Since(start).Seconds())
	}()

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	body, err := json.Marshal(request{Query: query, Variables: variables, OperationName: operation})
	if err != nil {
		return fmt.Errorf("graphql %s: encode request: %w", operation, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("graphql %s: build request: %w", operation, err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.adminSecret != "" {
		req.Header.Set(adminSecretHeader, c.adminSecret)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("graphql %s: %w", operation, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return fmt.Errorf("graphql %s: unexpected status %d: %s", operation, resp.StatusCode, bytes.TrimSpace(snippet))
	}

	var decoded response
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return fmt.Errorf("graphql %s: decode response: %w", operation, err)
	}

	c.log.Debug().
		Str("operation", operation).
		Dur("elapsed", time.Since(start)).
		Int("errors", len(decoded.Errors)).
		Msg("graphql operation")

	if len(decoded.Errors) > 0 {
		first := decoded.Errors[0]
		return &Error{
			Operation: operation,
			Code:      first.Extensions.Code,
			Path:      first.Extensions.Path,
			Message:   first.Message,
		}
	}

	if out == nil || len(decoded.Data) == 0 {
		return nil
	}
	if err := json.Unmarshal(decoded.Data, out); err != nil {
		return fmt.Errorf("graphql %s: decode data: %w", operation, err)
	}
	return nil
}

// Ping checks that the endpoint answers a trivial query.
func (c *Client) Ping(ctx context.Context) error {
	return c.Do(ctx, "ping", "query ping { __typename }", nil, nil)
}
