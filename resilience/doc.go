// Package resilience wraps calls to unreliable dependencies.
//
//   - Retry repeats an operation with exponential backoff and jitter.
//   - CircuitBreaker fails fast after repeated failures and probes for
//     recovery once its cool-down has elapsed.
//   - Bulkhead caps the number of concurrent executions.
//
// The scraper combines the first two around its page fetch:
//
//	page, err := resilience.Retry(ctx, cfg.Retry, func(ctx context.Context) (*Page, error) {
//	    var page *Page
//	    err := breaker.Execute(func() error {
//	        var fetchErr error
//	        page, fetchErr = s.fetch(ctx)
//	        return fetchErr
//	    })
//	    return page, err
//	})
package resilience
