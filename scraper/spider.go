package scraper

import (
	"context"
	"fmt"
	"net/url"
	"time"

	"go.opentelemetry.io/otel/attribute"

	"github.com/kbukum/mp/database"
	"github.com/kbukum/mp/httpclient"
	"github.com/kbukum/mp/logger"
	"github.com/kbukum/mp/observability"
	"github.com/kbukum/mp/resilience"
)

// Spider fetches Config.StartURL and stores its title.
type Spider struct {
	cfg     Config
	client  *httpclient.Client
	repo    *Repository
	metrics *observability.Metrics
	log     *logger.Logger
}

// NewSpider builds a spider. metrics may be nil.
func NewSpider(cfg Config, repo *Repository, metrics *observability.Metrics) (*Spider, error) {
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	u, _ := url.Parse(cfg.StartURL)
	log := logger.WithComponent("scraper")

	retry := httpclient.DefaultRetryConfig()
	retry.MaxAttempts = cfg.MaxAttempts
	retry.OnRetry = func(attempt int, err error, backoff time.Duration) {
		log.Warn("fetch failed, retrying", logger.Fields(
			"attempt", attempt,
			logger.FieldError, err.Error(),
			"backoff_ms", backoff.Milliseconds(),
		))
	}

	breaker := httpclient.DefaultCircuitBreakerConfig(u.Host)
	breaker.OnStateChange = func(name string, from, to resilience.State) {
		log.Warn("circuit breaker state changed", logger.Fields("host", name, "from", from.String(), "to", to.String()))
	}

	client, err := httpclient.New(httpclient.Config{
		Timeout:        cfg.Timeout,
		UserAgent:      cfg.UserAgent,
		Headers:        map[string]string{"Accept": "text/html,application/xhtml+xml"},
		Retry:          retry,
		CircuitBreaker: breaker,
	})
	if err != nil {
		return nil, fmt.Errorf("scraper: %w", err)
	}

	return &Spider{cfg: cfg, client: client, repo: repo, metrics: metrics, log: log}, nil
}

// Run fetches the start page, saves its title and returns the stored row.
func (s *Spider) Run(ctx context.Context) (*Page, error) {
	ctx, span := observability.StartSpan(ctx, observability.SpanScrape)
	defer span.End()
	span.SetAttributes(attribute.String(observability.AttrURL, s.cfg.StartURL))

	log := s.log.WithContext(ctx)
	log.Info("starting request", logger.Fields("url", s.cfg.StartURL))
	start := time.Now()

	resp, err := s.client.Get(ctx, s.cfg.StartURL)
	if err != nil {
		observability.SetSpanError(ctx, err)
		s.metrics.RecordScrape(ctx, "fetch_error")
		return nil, fmt.Errorf("scraper: fetch %s: %w", s.cfg.StartURL, err)
	}

	page := &Page{Title: ExtractTitle(resp.Body), URL: s.cfg.StartURL}
	if err := s.repo.Save(ctx, page); err != nil {
		observability.SetSpanError(ctx, err)
		s.metrics.RecordScrape(ctx, "store_error")
		return nil, database.FromDatabase(err, "ScrapedData", "")
	}

	s.metrics.RecordScrape(ctx, "success")
	log.Info("saved item",
		logger.Fields("id", page.ID, "title", page.Title),
		logger.DurationFields("scrape", time.Since(start)),
	)
	return page, nil
}

// BreakerOpen reports whether the circuit breaker for the start host is
// currently rejecting fetches.
func (s *Spider) BreakerOpen() bool {
	b := s.client.Breaker()
	return b != nil && b.State() == resilience.StateOpen
}
