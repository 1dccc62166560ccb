package task

import (
	"context"
	"fmt"
	"time"

	"github.com/kbukum/mp/logger"
	"github.com/kbukum/mp/scraper"
)

// Built-in task names.
const (
	TaskStartSpider    = "tasks.start_spider"
	TaskProcessResults = "tasks.process_results"
	TaskExample        = "tasks.example_task"
)

// SpiderRunner runs one scrape. *scraper.Spider implements it.
type SpiderRunner interface {
	Run(ctx context.Context) (*scraper.Page, error)
}

// PageCounter counts scraped pages. *scraper.Repository implements it.
type PageCounter interface {
	Count(ctx context.Context, since time.Time) (int64, error)
}

// StartSpider runs the spider and reports "spider completed".
func StartSpider(spider SpiderRunner) Handler {
	return func(ctx context.Context) (string, error) {
		if _, err := spider.Run(ctx); err != nil {
			return "", err
		}
		return "spider completed", nil
	}
}

// ProcessResults counts the pages scraped within window and reports
// "results processed".
func ProcessResults(pages PageCounter, window time.Duration) Handler {
	return func(ctx context.Context) (string, error) {
		n, err := pages.Count(ctx, time.Now().Add(-window))
		if err != nil {
			return "", fmt.Errorf("count scraped pages: %w", err)
		}
		logger.WithContext(ctx).Info("scraped results processed", logger.Fields("pages", n, "window", window.String()))
		return "results processed", nil
	}
}

// Example always reports "task completed".
func Example() Handler {
	return func(context.Context) (string, error) {
		return "task completed", nil
	}
}

// RegisterDefaults registers the built-in tasks. spider and pages may be
// nil, in which case only the example task is registered.
func RegisterDefaults(r *Registry, spider SpiderRunner, pages PageCounter) error {
	if err := r.Register(TaskExample, Example()); err != nil {
		return err
	}
	if spider != nil {
		if err := r.Register(TaskStartSpider, StartSpider(spider)); err != nil {
			return err
		}
	}
	if pages != nil {
		if err := r.Register(TaskProcessResults, ProcessResults(pages, time.Hour)); err != nil {
			return err
		}
	}
	return nil
}
