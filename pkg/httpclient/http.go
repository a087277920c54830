package httpclient

import (
	"context"
	"net/http"
	"strconv"
	"strings"
)

type BaseResponse struct {
	StatusCode int
	Status     string
	Body       []byte
	Headers    http.Header
}

// IsSuccess reports whether the status code is in the 2xx range.
func (r *BaseResponse) IsSuccess() bool {
	return r.StatusCode >= 200 && r.StatusCode < 300
}

// StatusText returns the reason phrase sent by the server, or the
// canonical text for the status code when the server sent none.
func (r *BaseResponse) StatusText() string {
	text := strings.TrimSpace(strings.TrimPrefix(r.Status, strconv.Itoa(r.StatusCode)))
	if text != "" {
		return text
	}
	return http.StatusText(r.StatusCode)
}

type HTTPClient interface {
	Get(ctx context.Context, endpoint string, queryParams map[string]string, headers map[string]string, result interface{}) (*BaseResponse, error)
	Post(ctx context.Context, endpoint string, body interface{}, headers map[string]string, result interface{}) (*BaseResponse, error)
}
