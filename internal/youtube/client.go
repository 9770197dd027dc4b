// Package youtube is a minimal YouTube Data API v3 client covering the two
// calls the video feed needs: a channel search and a batch video lookup.
package youtube

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/jonesrussell/alsahih/infrastructure/circuitbreaker"
	infraerrors "github.com/jonesrussell/alsahih/infrastructure/errors"
	infrahttp "github.com/jonesrussell/alsahih/infrastructure/http"
	"github.com/jonesrussell/alsahih/infrastructure/logger"
)

// DefaultBaseURL is the Data API v3 root.
const DefaultBaseURL = "https://www.googleapis.com/youtube/v3"

const (
	endpointSearch = "search"
	endpointVideos = "videos"

	// MaxBatchSize is the most ids videos.list accepts in one call.
	MaxBatchSize = 50
)

// Outcome labels reported to the Observer.
const (
	OutcomeOK          = "ok"
	OutcomeHTTPError   = "http_error"
	OutcomeTransport   = "transport_error"
	OutcomeDecode      = "decode_error"
	OutcomeCircuitOpen = "circuit_open"
	OutcomeRateLimited = "rate_limited"
)

// ErrRateLimited is returned when no request token became available before
// the caller's context ended.
var ErrRateLimited = errors.New("youtube: local rate limit exceeded")

// Observer receives one call per upstream request attempt.
type Observer interface {
	ObserveUpstream(endpoint, outcome string, elapsed time.Duration)
}

type nopObserver struct{}

func (nopObserver) ObserveUpstream(string, string, time.Duration) {}

// Config configures a Client. Zero values take sensible defaults; a nil
// Limiter or Breaker disables that guard.
type Config struct {
	BaseURL    string
	HTTPClient *http.Client
	Limiter    *rate.Limiter
	Breaker    *circuitbreaker.Breaker
	Observer   Observer
	Logger     logger.Logger
}

// Client talks to the Data API. The API key is supplied per call so the
// client holds no credentials.
type Client struct {
	baseURL    string
	httpClient *http.Client
	limiter    *rate.Limiter
	breaker    *circuitbreaker.Breaker
	observer   Observer
	log        logger.Logger
}

// NewClient builds a Client from cfg.
func NewClient(cfg Config) *Client {
	c := &Client{
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		httpClient: cfg.HTTPClient,
		limiter:    cfg.Limiter,
		breaker:    cfg.Breaker,
		observer:   cfg.Observer,
		log:        cfg.Logger,
	}
	if c.baseURL == "" {
		c.baseURL = DefaultBaseURL
	}
	if c.httpClient == nil {
		c.httpClient = infrahttp.NewClient(nil)
	}
	if c.observer == nil {
		c.observer = nopObserver{}
	}
	if c.log == nil {
		c.log = logger.NewNop()
	}
	return c
}

// SearchRecent returns the ids of up to maxResults of the channel's most
// recent videos, newest first. Hits without a video id are skipped.
func (c *Client) SearchRecent(ctx context.Context, apiKey, channelID string, maxResults int) ([]string, error) {
	params := url.Values{}
	params.Set("part", "snippet")
	params.Set("channelId", channelID)
	params.Set("order", "date")
	params.Set("type", "video")
	params.Set("maxResults", strconv.Itoa(maxResults))
	params.Set("key", apiKey)

	var resp searchResponse
	if err := c.get(ctx, endpointSearch, params, &resp); err != nil {
		return nil, err
	}

	ids := make([]string, 0, len(resp.Items))
	for _, item := range resp.Items {
		if item.ID.VideoID == "" {
			continue
		}
		ids = append(ids, item.ID.VideoID)
	}
	return ids, nil
}

// Videos resolves ids in a single videos.list call with the snippet and
// contentDetails parts. An empty ids slice makes no request.
func (c *Client) Videos(ctx context.Context, apiKey string, ids []string) ([]Video, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	if len(ids) > MaxBatchSize {
		return nil, fmt.Errorf("youtube: %d ids exceeds batch size %d", len(ids), MaxBatchSize)
	}

	params := url.Values{}
	params.Set("part", "contentDetails,snippet")
	params.Set("id", strings.Join(ids, ","))
	params.Set("key", apiKey)

	var resp videosResponse
	if err := c.get(ctx, endpointVideos, params, &resp); err != nil {
		return nil, err
	}
	return resp.Items, nil
}

// BreakerState reports the upstream circuit state; closed when no breaker
// is configured.
func (c *Client) BreakerState() circuitbreaker.State {
	if c.breaker == nil {
		return circuitbreaker.StateClosed
	}
	return c.breaker.State()
}

func (c *Client) get(ctx context.Context, endpoint string, params url.Values, out any) error {
	start := time.Now()

	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			c.observer.ObserveUpstream(endpoint, OutcomeRateLimited, time.Since(start))
			return fmt.Errorf("%w: %s: %w", ErrRateLimited, endpoint, err)
		}
	}

	call := func() error {
		return c.do(ctx, endpoint, params, out)
	}

	var err error
	if c.breaker != nil {
		err = c.breaker.Execute(ctx, call)
	} else {
		err = call()
	}

	outcome := classify(err)
	c.observer.ObserveUpstream(endpoint, outcome, time.Since(start))
	if err != nil {
		logger.FromContextOr(ctx, c.log).Warn("YouTube API request failed",
			logger.String("endpoint", endpoint),
			logger.String("outcome", outcome),
			logger.Error(err),
		)
	}
	return err
}

func (c *Client) do(ctx context.Context, endpoint string, params url.Values, out any) error {
	reqURL := c.baseURL + "/" + endpoint + "?" + params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, http.NoBody)
	if err != nil {
		return fmt.Errorf("youtube: build %s request: %w", endpoint, redact(err))
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return &transportError{endpoint: endpoint, err: redact(err)}
	}
	defer func() { _ = resp.Body.Close() }()

	if httpErr := infraerrors.ParseHTTPError(resp); httpErr != nil {
		return fmt.Errorf("youtube: %s: %w", endpoint, httpErr)
	}

	if decodeErr := json.NewDecoder(resp.Body).Decode(out); decodeErr != nil {
		return &decodeError{endpoint: endpoint, err: decodeErr}
	}
	return nil
}

type transportError struct {
	endpoint string
	err      error
}

func (e *transportError) Error() string {
	return fmt.Sprintf("youtube: %s request: %v", e.endpoint, e.err)
}

func (e *transportError) Unwrap() error { return e.err }

type decodeError struct {
	endpoint string
	err      error
}

func (e *decodeError) Error() string {
	return fmt.Sprintf("youtube: decode %s response: %v", e.endpoint, e.err)
}

func (e *decodeError) Unwrap() error { return e.err }

func classify(err error) string {
	var (
		transportErr *transportError
		decodeErr    *decodeError
	)
	switch {
	case err == nil:
		return OutcomeOK
	case errors.Is(err, circuitbreaker.ErrCircuitOpen):
		return OutcomeCircuitOpen
	case errors.As(err, &decodeErr):
		return OutcomeDecode
	case errors.As(err, &transportErr):
		return OutcomeTransport
	default:
		if _, ok := infraerrors.GetHTTPStatusCode(err); ok {
			return OutcomeHTTPError
		}
		return OutcomeTransport
	}
}

// redact strips the query string from URLs carried in err so the API key
// never reaches logs or responses.
func redact(err error) error {
	var urlErr *url.Error
	if !errors.As(err, &urlErr) {
		return err
	}
	if u, parseErr := url.Parse(urlErr.URL); parseErr == nil {
		u.RawQuery = ""
		urlErr.URL = u.String()
	} else {
		urlErr.URL = ""
	}
	return err
}
