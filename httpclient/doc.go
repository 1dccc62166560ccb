// Package httpclient is an outbound HTTP client with retry, circuit
// breaking and classified errors.
//
//	client, err := httpclient.New(httpclient.Config{
//	    Timeout:        10 * time.Second,
//	    UserAgent:      "mp-scraper/1.0",
//	    Retry:          httpclient.DefaultRetryConfig(),
//	    CircuitBreaker: httpclient.DefaultCircuitBreakerConfig("example.com"),
//	})
//
//	resp, err := client.Get(ctx, "https://example.com")
//
// Non-2xx responses come back as *Error alongside the response.
package httpclient
