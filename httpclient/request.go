package httpclient

import "net/http"

// Request describes an outbound request. Requests carry no body; the
// scraper only reads pages.
type Request struct {
	Method  string
	URL     string
	Headers map[string]string
}

// Response is a fully read response.
type Response struct {
	StatusCode int
	Header     http.Header
	Body       []byte
}

// IsSuccess reports a 2xx status.
func (r *Response) IsSuccess() bool {
	return r.StatusCode >= 200 && r.StatusCode < 300
}
