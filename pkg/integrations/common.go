package integrations

import (
	"errors"
	"net/http"
	"time"

	"github.com/fortrabbit/craft-plugin-list/pkg/cache"
)

const httpTimeout = 10 * time.Second

// UserAgent identifies this tool to registries.
const UserAgent = "craft-plugin-list (https://github.com/fortrabbit/craft-plugin-list)"

var (
	// ErrNotFound is returned when a package or resource doesn't exist in the registry.
	ErrNotFound = cache.ErrNotFound

	// ErrNetwork is returned for HTTP failures (timeouts, connection errors, non-200 responses).
	ErrNetwork = cache.ErrNetwork

	// ErrDecode is returned when a response body is not the expected JSON document.
	ErrDecode = errors.New("decode error")
)

// NewHTTPClient creates an HTTP client with a standard timeout for registry requests.
func NewHTTPClient() *http.Client {
	return &http.Client{Timeout: httpTimeout}
}
