// Package integrations provides HTTP clients for package registry APIs.
//
// # Overview
//
// The [Client] type carries the plumbing shared by registry clients: JSON GET
// requests, response caching through [cache.Cache], optional retries for
// transient failures, and observability hooks for every request.
//
// Registry specific clients live in subpackages:
//
//   - [packagist]: PHP Composer packages (packagist.org)
//
// # Client Pattern
//
//	base := integrations.NewClient(cache.NewNullCache(), "packagist", 0, nil)
//	var out struct{ Names []string `json:"packageNames"` }
//	err := base.Get(ctx, "https://packagist.org/packages/list.json?type=craft-plugin", &out)
//
// Requests are attempted once by default. Network errors and 5xx responses
// are wrapped with [cache.Retryable] so that [Client.SetAttempts] can enable
// retries without changing callers.
//
// # Errors
//
//   - [ErrNotFound]: 404 responses
//   - [ErrNetwork]: connection failures and other non-200 responses
//   - [ErrDecode]: bodies that are not valid JSON for the target type
//
// [packagist]: github.com/fortrabbit/craft-plugin-list/pkg/integrations/packagist
// [cache.Cache]: github.com/fortrabbit/craft-plugin-list/pkg/cache.Cache
// [cache.Retryable]: github.com/fortrabbit/craft-plugin-list/pkg/cache.Retryable
package integrations
