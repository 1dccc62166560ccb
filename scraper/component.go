package scraper

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/kbukum/mp/component"
	"github.com/kbukum/mp/database"
	"github.com/kbukum/mp/observability"
	"github.com/kbukum/mp/util"
)

// ErrNotStarted is returned by Component methods called before Start.
var ErrNotStarted = errors.New("scraper: component not started")

// DBProvider hands out the open database. *database.Component implements
// it.
type DBProvider interface {
	DB() *database.DB
}

var (
	_ component.Component   = (*Component)(nil)
	_ component.Describable = (*Component)(nil)
)

// Component builds the repository and spider once the database is open.
// Register it after the database component.
type Component struct {
	cfg     Config
	db      DBProvider
	metrics *observability.Metrics

	mu     sync.RWMutex
	repo   *Repository
	spider *Spider
}

// NewComponent creates a scraper component. metrics may be nil.
func NewComponent(cfg Config, db DBProvider, metrics *observability.Metrics) *Component {
	cfg.ApplyDefaults()
	return &Component{cfg: cfg, db: db, metrics: metrics}
}

func (c *Component) Name() string { return "scraper" }

func (c *Component) Start(context.Context) error {
	db := c.db.DB()
	if db == nil {
		return errors.New("scraper: database is not open")
	}
	repo := NewRepository(db)
	spider, err := NewSpider(c.cfg, repo, c.metrics)
	if err != nil {
		return err
	}

	c.mu.Lock()
	c.repo, c.spider = repo, spider
	c.mu.Unlock()
	return nil
}

func (c *Component) Stop(context.Context) error {
	c.mu.Lock()
	c.repo, c.spider = nil, nil
	c.mu.Unlock()
	return nil
}

func (c *Component) Health(context.Context) component.Health {
	c.mu.RLock()
	spider := c.spider
	c.mu.RUnlock()

	switch {
	case spider == nil:
		return component.Health{Name: c.Name(), Status: component.StatusUnhealthy, Message: "not started"}
	case spider.BreakerOpen():
		return component.Health{Name: c.Name(), Status: component.StatusDegraded, Message: "circuit open"}
	}
	return component.Health{Name: c.Name(), Status: component.StatusHealthy}
}

func (c *Component) Describe() component.Description {
	return component.Description{Type: "scraper", Details: util.MaskURL(c.cfg.StartURL)}
}

// Run runs one scrape.
func (c *Component) Run(ctx context.Context) (*Page, error) {
	c.mu.RLock()
	spider := c.spider
	c.mu.RUnlock()
	if spider == nil {
		return nil, ErrNotStarted
	}
	return spider.Run(ctx)
}

// Count counts pages scraped since the given time.
func (c *Component) Count(ctx context.Context, since time.Time) (int64, error) {
	c.mu.RLock()
	repo := c.repo
	c.mu.RUnlock()
	if repo == nil {
		return 0, ErrNotStarted
	}
	return repo.Count(ctx, since)
}
