package feed

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/bytedance/sonic"
	"github.com/go-resty/resty/v2"
	"github.com/hashicorp/go-retryablehttp"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/GriffinCanCode/Dashboard/internal/infrastructure/logging"
	"github.com/GriffinCanCode/Dashboard/internal/infrastructure/monitoring"
	"github.com/GriffinCanCode/Dashboard/internal/infrastructure/resilience"
	"github.com/GriffinCanCode/Dashboard/internal/infrastructure/tracing"
)

var (
	// ErrStatus means the endpoint answered but did not report "ok".
	ErrStatus = errors.New("feed endpoint returned non-ok status")
	// ErrHTTP means the endpoint answered with a non-2xx code.
	ErrHTTP = errors.New("feed endpoint request failed")
	// ErrMalformed means the response body was not the expected JSON.
	ErrMalformed = errors.New("malformed feed response")
	// ErrUnavailable means the circuit breaker rejected the call.
	ErrUnavailable = errors.New("feed endpoint unavailable")
)

// Item is a single feed entry as delivered by the endpoint.
type Item struct {
	Title       string `json:"title"`
	Link        string `json:"link"`
	Description string `json:"description"`
	PubDate     string `json:"pubDate"`
}

// Feed is a decoded endpoint response.
type Feed struct {
	Status string `json:"status"`
	Items  []Item `json:"items"`
}

// Fetcher is what widgets need from a feed client.
type Fetcher interface {
	Fetch(ctx context.Context, feedURL string) (*Feed, error)
}

// Options configures a Client.
type Options struct {
	Endpoint  string
	Timeout   time.Duration
	Retries   int
	RateLimit float64 // requests per second, <= 0 means unlimited
	Logger    *logging.Logger
	Metrics   *monitoring.Metrics
	Tracer    *tracing.Tracer
}

// Client talks to the feed-to-JSON endpoint.
type Client struct {
	endpoint string
	resty    *resty.Client
	limiter  *rate.Limiter
	breaker  *resilience.Breaker
	logger   *logging.Logger
	metrics  *monitoring.Metrics
	tracer   *tracing.Tracer
}

// New builds a client from opts.
func New(opts Options) *Client {
	if opts.Timeout <= 0 {
		opts.Timeout = 15 * time.Second
	}
	if opts.Retries < 0 {
		opts.Retries = 0
	}
	logger := logging.OrNop(opts.Logger).Named("feed")

	retryClient := retryablehttp.NewClient()
	retryClient.RetryMax = opts.Retries
	retryClient.RetryWaitMin = 200 * time.Millisecond
	retryClient.RetryWaitMax = 2 * time.Second
	retryClient.Logger = nil

	restyClient := resty.NewWithClient(retryClient.StandardClient()).
		SetTimeout(opts.Timeout).
		SetHeader("Accept", "application/json").
		SetHeader("User-Agent", "Dashboard-Feed/1.0")

	limiter := rate.NewLimiter(rate.Inf, 0)
	if opts.RateLimit > 0 {
		burst := int(opts.RateLimit)
		if burst < 1 {
			burst = 1
		}
		limiter = rate.NewLimiter(rate.Limit(opts.RateLimit), burst)
	}

	breaker := resilience.New("feed-endpoint", resilience.Settings{
		MaxRequests: 3,
		Interval:    60 * time.Second,
		Timeout:     30 * time.Second,
		ReadyToTrip: func(counts resilience.Counts) bool {
			return counts.ConsecutiveFailures >= 5
		},
		// A feed the endpoint cannot convert says nothing about the endpoint's health.
		IsFailure: func(err error) bool {
			return err != nil && !errors.Is(err, ErrStatus) && !errors.Is(err, context.Canceled)
		},
		OnStateChange: func(name string, from, to resilience.State) {
			logger.Warn("Circuit breaker state changed",
				zap.String("breaker", name),
				zap.Stringer("from", from),
				zap.Stringer("to", to))
		},
	})

	return &Client{
		endpoint: opts.Endpoint,
		resty:    restyClient,
		limiter:  limiter,
		breaker:  breaker,
		logger:   logger,
		metrics:  opts.Metrics,
		tracer:   opts.Tracer,
	}
}

// BreakerState exposes the breaker state for health reporting.
func (c *Client) BreakerState() resilience.State {
	return c.breaker.State()
}

// Fetch retrieves feedURL through the endpoint.
func (c *Client) Fetch(ctx context.Context, feedURL string) (feed *Feed, err error) {
	span, ctx := c.tracer.StartSpan(ctx, "feed.fetch")
	span.SetTag("feed.url", feedURL)
	defer func() { c.tracer.End(span, err) }()

	timer := monitoring.NewTimer(c.metrics)

	if err = c.limiter.Wait(ctx); err != nil {
		timer.Stop(monitoring.OutcomeSkipped)
		return nil, fmt.Errorf("rate limit: %w", err)
	}

	feed, err = resilience.Do(ctx, c.breaker, func(ctx context.Context) (*Feed, error) {
		return c.fetch(ctx, feedURL)
	})
	if errors.Is(err, resilience.ErrCircuitOpen) || errors.Is(err, resilience.ErrTooManyRequests) {
		err = fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	if err != nil {
		elapsed := timer.Stop(monitoring.OutcomeFailure)
		c.logger.Debug("Feed fetch failed",
			zap.String("url", feedURL),
			zap.Duration("elapsed", elapsed),
			zap.Error(err))
		return nil, err
	}

	timer.Stop(monitoring.OutcomeSuccess)
	return feed, nil
}

func (c *Client) fetch(ctx context.Context, feedURL string) (*Feed, error) {
	resp, err := c.resty.R().
		SetContext(ctx).
		SetQueryParam("url", feedURL).
		Get(c.endpoint)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		return nil, fmt.Errorf("%w: %v", ErrHTTP, err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("%w: %s", ErrHTTP, resp.Status())
	}
	return decode(resp.Body())
}

type rawFeed struct {
	Status string           `json:"status"`
	Items  []map[string]any `json:"items"`
}

func decode(body []byte) (*Feed, error) {
	var raw rawFeed
	if err := sonic.Unmarshal(body, &raw); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	if raw.Status != "ok" {
		return nil, fmt.Errorf("%w: %q", ErrStatus, raw.Status)
	}

	feed := &Feed{Status: raw.Status, Items: make([]Item, 0, len(raw.Items))}
	for _, it := range raw.Items {
		feed.Items = append(feed.Items, Item{
			Title:       text(it["title"]),
			Link:        text(it["link"]),
			Description: text(it["description"]),
			PubDate:     text(it["pubDate"]),
		})
	}
	return feed, nil
}

// text renders loosely typed endpoint fields as strings.
func text(v any) string {
	switch s := v.(type) {
	case nil:
		return ""
	case string:
		return s
	case float64:
		return strconv.FormatFloat(s, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(s)
	default:
		return fmt.Sprint(s)
	}
}
