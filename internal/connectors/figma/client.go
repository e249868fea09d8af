package figma

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/spectrail-labs/spectrail-cli/internal/core/domain"
	"github.com/spectrail-labs/spectrail-cli/internal/core/ports/driven"
	"github.com/spectrail-labs/spectrail-cli/internal/logger"
)

// Ensure Client implements the interface.
var _ driven.NodeFetcher = (*Client)(nil)

// Client fetches design nodes from the Figma REST API.
type Client struct {
	cfg        Config
	httpClient *http.Client
	limiter    *RateLimiter

	// sleep is swapped out by tests to observe retry waits.
	sleep func(ctx context.Context, d time.Duration) error
}

// NewClient creates a fetch client. The configuration must carry a
// token; every other field defaults.
func NewClient(cfg Config) (*Client, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	cfg = cfg.withDefaults()

	return &Client{
		cfg:        cfg,
		httpClient: &http.Client{Timeout: cfg.Timeout},
		limiter:    NewRateLimiter(cfg.RequestsPerSecond, cfg.Burst),
		sleep:      sleepContext,
	}, nil
}

// FetchNodes fetches every request's nodes with bounded concurrency,
// one batched API call per file. The first unrecoverable error cancels
// the remaining fetches and is returned as-is.
func (c *Client) FetchNodes(ctx context.Context, requests []domain.FetchRequest, collector *domain.Collector) (map[string]*domain.RawNode, error) {
	if collector == nil {
		collector = domain.NewCollector()
	}

	var mu sync.Mutex
	results := make(map[string]*domain.RawNode)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(c.cfg.Concurrency)
	for _, req := range requests {
		req := req
		g.Go(func() error {
			nodes, err := c.fetchFile(gctx, req, collector)
			if err != nil {
				return err
			}
			mu.Lock()
			for id, node := range nodes {
				results[id] = node
			}
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	collector.AddNodes(len(results))
	return results, nil
}

// fetchFile issues the batched nodes request for one file, retrying
// rate-limit responses: the server's Retry-After hint when present,
// exponential backoff otherwise. A wait past the ceiling aborts
// without sleeping.
func (c *Client) fetchFile(ctx context.Context, req domain.FetchRequest, collector *domain.Collector) (map[string]*domain.RawNode, error) {
	endpoint := c.nodesURL(req)

	for attempt := 0; attempt < c.cfg.MaxRetries; attempt++ {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, err
		}

		collector.AddRequest()
		resp, err := c.get(ctx, endpoint)
		if err != nil {
			return nil, domain.NewNetworkError(fmt.Sprintf("figma: request for file %s failed", req.FileKey), err)
		}

		if resp.StatusCode != http.StatusTooManyRequests {
			return c.decodeResponse(resp, req)
		}

		hint := ParseRateLimitHint(resp.Header)
		drainAndClose(resp.Body)

		wait := backoffDelay(c.cfg.InitialBackoff, attempt)
		if hint.HasRetryAfter() {
			wait = time.Duration(hint.RetryAfterSeconds) * time.Second
		}
		if wait > c.cfg.BackoffCeiling {
			return nil, rateLimitAbort(req.FileKey, hint, wait)
		}

		logger.Warn("Rate limited on file %s, waiting %s (attempt %d/%d)", req.FileKey, wait, attempt+1, c.cfg.MaxRetries)
		collector.AddRetry()
		if err := c.sleep(ctx, wait); err != nil {
			return nil, err
		}
	}

	return nil, domain.NewServerError(fmt.Sprintf("figma: max retries (%d) exceeded fetching file %s", c.cfg.MaxRetries, req.FileKey))
}

// nodesURL builds the batched nodes endpoint for one file.
func (c *Client) nodesURL(req domain.FetchRequest) string {
	return fmt.Sprintf("%s/v1/files/%s/nodes?ids=%s",
		c.cfg.BaseURL, url.PathEscape(req.FileKey), url.QueryEscape(strings.Join(req.NodeIDs, ",")))
}

func (c *Client) get(ctx context.Context, endpoint string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set(HeaderToken, c.cfg.Token)
	return c.httpClient.Do(req)
}

// nodesResponse mirrors the API payload: nodes keyed by id, each
// wrapping its document tree.
type nodesResponse struct {
	Name  string                  `json:"name"`
	Nodes map[string]nodeEnvelope `json:"nodes"`
}

type nodeEnvelope struct {
	Document map[string]any `json:"document"`
}

// decodeResponse maps the response onto raw nodes or onto the error
// taxonomy. Every id in the request must come back; a missing id is a
// not-found error naming the node and file.
func (c *Client) decodeResponse(resp *http.Response, req domain.FetchRequest) (map[string]*domain.RawNode, error) {
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, domain.NewNetworkError(fmt.Sprintf("figma: reading response for file %s", req.FileKey), err)
	}

	if err := statusError(resp.StatusCode, req.FileKey, body); err != nil {
		return nil, err
	}

	var payload nodesResponse
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, domain.NewValidationError(fmt.Sprintf("figma: unparseable response for file %s: %v", req.FileKey, err))
	}

	nodes := make(map[string]*domain.RawNode, len(req.NodeIDs))
	for _, id := range req.NodeIDs {
		envelope, ok := payload.Nodes[id]
		if !ok || envelope.Document == nil {
			return nil, domain.NewNotFoundError(fmt.Sprintf("figma: node %s not found in file %s", id, req.FileKey), req.FileKey)
		}
		nodes[id] = &domain.RawNode{
			ID:          id,
			FileKey:     req.FileKey,
			Name:        docString(envelope.Document, "name"),
			Type:        docString(envelope.Document, "type"),
			SourceFiles: req.SourceFiles[id],
			Document:    envelope.Document,
		}
	}

	logger.Debug("Fetched %d nodes from file %s", len(nodes), req.FileKey)
	return nodes, nil
}

// statusError maps a non-success status onto the error taxonomy.
func statusError(status int, fileKey string, body []byte) error {
	switch {
	case status == http.StatusOK:
		return nil
	case status == http.StatusBadRequest:
		return domain.NewValidationError(fmt.Sprintf("figma: invalid request for file %s%s", fileKey, apiDetail(body)))
	case status == http.StatusUnauthorized || status == http.StatusForbidden:
		return domain.NewAuthenticationError(fmt.Sprintf("figma: access denied for file %s (status %d)", fileKey, status), fileKey)
	case status == http.StatusNotFound:
		return domain.NewNotFoundError(fmt.Sprintf("figma: file %s not found", fileKey), fileKey)
	default:
		return domain.NewServerError(fmt.Sprintf("figma: server error %d for file %s%s", status, fileKey, apiDetail(body)))
	}
}

// rateLimitAbort builds the rate-limit error for a wait past the
// ceiling, carrying every hint the server sent.
func rateLimitAbort(fileKey string, hint RateLimitHint, wait time.Duration) error {
	apiErr := domain.NewRateLimitError(
		fmt.Sprintf("figma: rate limited on file %s, wait of %s exceeds ceiling", fileKey, wait),
		hint.RetryAfterSeconds,
	)
	apiErr.PlanTier = hint.PlanTier
	apiErr.RateLimitType = hint.RateLimitType
	apiErr.UpgradeLink = hint.UpgradeLink
	apiErr.FileKey = fileKey
	return apiErr
}

// apiDetail extracts the API's own error message when one is present.
func apiDetail(body []byte) string {
	var payload struct {
		Err string `json:"err"`
	}
	if err := json.Unmarshal(body, &payload); err != nil || payload.Err == "" {
		return ""
	}
	return ": " + payload.Err
}

func docString(doc map[string]any, key string) string {
	s, _ := doc[key].(string)
	return s
}

// drainAndClose releases the connection for reuse.
func drainAndClose(body io.ReadCloser) {
	_, _ = io.Copy(io.Discard, body)
	_ = body.Close()
}

// sleepContext waits for d unless the context ends first.
func sleepContext(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
