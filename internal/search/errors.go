package search

import (
	"errors"
	"fmt"
	"net/http"
)

// ProviderError is a non-2xx HTTP response from a search backend. It carries
// the status code and raw body so callers can decide how much to expose.
type ProviderError struct {
	Provider   string
	StatusCode int
	Body       string
}

func (e *ProviderError) Error() string {
	return fmt.Sprintf("%s API error: %d - %s", e.Provider, e.StatusCode, e.Body)
}

// IsQuotaExhausted reports whether err is a provider quota exhaustion
// response (HTTP 429).
func IsQuotaExhausted(err error) bool {
	var pe *ProviderError
	return errors.As(err, &pe) && pe.StatusCode == http.StatusTooManyRequests
}
