package packagist

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/fortrabbit/craft-plugin-list/pkg/cache"
	pkgerrors "github.com/fortrabbit/craft-plugin-list/pkg/errors"
	"github.com/fortrabbit/craft-plugin-list/pkg/integrations"
)

// DefaultBaseURL is the public Packagist package API.
const DefaultBaseURL = "https://packagist.org/packages"

// Options configures a [Client]. The zero value talks to [DefaultBaseURL]
// without caching or retries.
type Options struct {
	BaseURL    string        // Registry base URL (default DefaultBaseURL)
	Cache      cache.Cache   // Response cache (default cache.NullCache)
	CacheTTL   time.Duration // Lifetime of cached responses
	Refresh    bool          // Bypass cached responses but still store fresh ones
	Attempts   int           // Attempts for transient failures (default 1)
	HTTPClient *http.Client  // Custom HTTP client (optional)
}

// Client provides access to the Packagist package API.
//
// Every failure, whether network, HTTP status or an unexpected body, is
// reported as a [pkgerrors.Error] with code [pkgerrors.ErrCodeTransport].
type Client struct {
	*integrations.Client
	baseURL string
	refresh bool
}

// NewClient creates a Packagist client.
func NewClient(opts Options) *Client {
	base := strings.TrimSuffix(opts.BaseURL, "/")
	if base == "" {
		base = DefaultBaseURL
	}

	headers := map[string]string{"User-Agent": integrations.UserAgent}
	c := integrations.NewClient(opts.Cache, "packagist", opts.CacheTTL, headers)
	c.SetAttempts(opts.Attempts)
	c.SetHTTPClient(opts.HTTPClient)
	if u, err := url.Parse(base); err == nil {
		c.SetKeyer(cache.NewScopedKeyer(nil, u.Host+":"))
	}

	return &Client{Client: c, baseURL: base, refresh: opts.Refresh}
}

// BaseURL returns the registry base URL requests are sent to.
func (c *Client) BaseURL() string { return c.baseURL }

// ListPackageNames returns the names of all packages of packageType in the
// order the registry lists them.
func (c *Client) ListPackageNames(ctx context.Context, packageType string) ([]string, error) {
	var names []string
	err := c.Cached(ctx, "list:"+packageType, c.refresh, &names, func() error {
		u := fmt.Sprintf("%s/list.json?type=%s", c.baseURL, url.QueryEscape(packageType))
		var resp listResponse
		if err := c.Get(ctx, u, &resp); err != nil {
			return err
		}
		if resp.PackageNames == nil {
			return fmt.Errorf("%w: response has no packageNames", integrations.ErrDecode)
		}
		names = *resp.PackageNames
		return nil
	})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.ErrCodeTransport, err, "list %s packages", packageType)
	}
	return names, nil
}

// FetchPackage retrieves the detail record of one package.
//
// The name must be in "vendor/package" form as returned by
// [Client.ListPackageNames].
func (c *Client) FetchPackage(ctx context.Context, name string) (*Package, error) {
	if err := pkgerrors.ValidatePackageName(name); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.ErrCodeTransport, err, "fetch package %q", name)
	}

	var pkg Package
	err := c.Cached(ctx, "package:"+name, c.refresh, &pkg, func() error {
		return c.fetch(ctx, name, &pkg)
	})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.ErrCodeTransport, err, "fetch package %s", name)
	}
	return &pkg, nil
}

func (c *Client) fetch(ctx context.Context, name string, pkg *Package) error {
	var resp packageResponse
	if err := c.Get(ctx, fmt.Sprintf("%s/%s.json", c.baseURL, name), &resp); err != nil {
		if errors.Is(err, integrations.ErrNotFound) {
			return fmt.Errorf("%w: packagist package %s", err, name)
		}
		return err
	}
	if resp.Package == nil {
		return fmt.Errorf("%w: response has no package", integrations.ErrDecode)
	}

	p, err := resp.Package.toPackage()
	if err != nil {
		return fmt.Errorf("%w: %v", integrations.ErrDecode, err)
	}
	*pkg = p
	return nil
}
