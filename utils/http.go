// utils/http.go
package utils

import (
	"net/http"
	"time"
)

// DefaultHTTPTimeout bounds outbound calls to collaborator services.
const DefaultHTTPTimeout = 10 * time.Second

// NewHTTPClient returns a client with timeout, or DefaultHTTPTimeout when timeout <= 0.
func NewHTTPClient(timeout time.Duration) *http.Client {
	if timeout <= 0 {
		timeout = DefaultHTTPTimeout
	}
	return &http.Client{Timeout: timeout}
}
