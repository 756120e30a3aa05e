// Package gobucket is a client library for the Bitbucket Cloud REST API.
//
// A [Client] exposes typed services for the V2 resources (workspaces,
// repositories, pull requests, projects, users, source files). Requests are
// authenticated by an [Auth] strategy: app-password basic auth, OAuth1
// (two-legged or the three-legged PIN handshake), or OAuth2.
package gobucket

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"reflect"
	"strings"
	"sync"

	"github.com/google/go-querystring/query"
	"github.com/hashicorp/go-retryablehttp"
	"golang.org/x/time/rate"

	"github.com/wbratz/gobucket/internal/silog"
)

// DefaultBaseURL is the base URL for the Bitbucket Cloud V2 API.
const DefaultBaseURL = "https://api.bitbucket.org/2.0"

// Version is the version of this library.
const Version = "0.1.0"

const _defaultUserAgent = "gobucket/" + Version

// Client is a Bitbucket Cloud API client.
// Construct one with [New]; the zero value is not usable.
type Client struct {
	baseURL   string
	auth      Auth
	log       *silog.Logger
	limiter   *rate.Limiter
	userAgent string
	baseHTTP  *http.Client

	// The authenticated HTTP client is built lazily
	// on the first request and reused afterwards.
	// Only a successful build is cached: an Auth strategy
	// that is not ready yet (say, an unfinished OAuth1 handshake)
	// is retried on the next request.
	httpMu sync.Mutex
	httpC  *http.Client

	Workspaces   *WorkspacesService
	Repositories *RepositoriesService
	PullRequests *PullRequestsService
	Projects     *ProjectsService
	Users        *UsersService
	Src          *SrcService
}

// Option customizes a [Client].
type Option func(*Client)

// WithBaseURL overrides the API base URL.
// Useful for tests and for API-compatible proxies.
func WithBaseURL(u string) Option {
	return func(c *Client) { c.baseURL = u }
}

// WithAuth sets the authentication strategy.
// Without it the client makes unauthenticated requests.
func WithAuth(auth Auth) Option {
	return func(c *Client) { c.auth = auth }
}

// WithLogger sets the logger. Defaults to a no-op logger.
func WithLogger(log *silog.Logger) Option {
	return func(c *Client) { c.log = log }
}

// WithHTTPClient sets the base HTTP client
// that the Auth strategy wraps.
// Defaults to a retrying client.
func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) { c.baseHTTP = httpClient }
}

// WithRateLimit limits outgoing requests to rps requests per second
// with the given burst size. By default requests are not limited.
func WithRateLimit(rps float64, burst int) Option {
	return func(c *Client) { c.limiter = rate.NewLimiter(rate.Limit(rps), burst) }
}

// WithUserAgent overrides the User-Agent header.
func WithUserAgent(ua string) Option {
	return func(c *Client) { c.userAgent = ua }
}

// New builds a Bitbucket client with the given options.
func New(opts ...Option) (*Client, error) {
	c := &Client{
		baseURL:   DefaultBaseURL,
		auth:      Anonymous(),
		log:       silog.Nop(),
		limiter:   rate.NewLimiter(rate.Inf, 0),
		userAgent: _defaultUserAgent,
	}
	for _, opt := range opts {
		opt(c)
	}

	u, err := url.Parse(c.baseURL)
	if err != nil {
		return nil, fmt.Errorf("parse base URL: %w", err)
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("base URL %q must be absolute", c.baseURL)
	}
	c.baseURL = strings.TrimSuffix(u.String(), "/")

	c.Workspaces = &WorkspacesService{client: c}
	c.Repositories = &RepositoriesService{client: c}
	c.PullRequests = &PullRequestsService{client: c}
	c.Projects = &ProjectsService{client: c}
	c.Users = &UsersService{client: c}
	c.Src = &SrcService{client: c}
	return c, nil
}

// defaultHTTPClient returns the base HTTP client used when none is supplied.
// It retries transient transport failures and 5xx responses.
func defaultHTTPClient() *http.Client {
	rc := retryablehttp.NewClient()
	rc.RetryMax = 3
	rc.Logger = nil
	return rc.StandardClient()
}

// http returns the authenticated HTTP client,
// building it on first use.
func (c *Client) http(ctx context.Context) (*http.Client, error) {
	c.httpMu.Lock()
	defer c.httpMu.Unlock()

	if c.httpC != nil {
		return c.httpC, nil
	}

	base := c.baseHTTP
	if base == nil {
		base = defaultHTTPClient()
	}
	httpC, err := c.auth.HTTPClient(ctx, base)
	if err != nil {
		return nil, err
	}
	c.httpC = httpC
	return httpC, nil
}

func (c *Client) get(ctx context.Context, path string, out any) error {
	return c.do(ctx, http.MethodGet, path, nil, out)
}

func (c *Client) post(ctx context.Context, path string, body, out any) error {
	return c.do(ctx, http.MethodPost, path, body, out)
}

func (c *Client) put(ctx context.Context, path string, body, out any) error {
	return c.do(ctx, http.MethodPut, path, body, out)
}

func (c *Client) delete(ctx context.Context, path string) error {
	return c.do(ctx, http.MethodDelete, path, nil, nil)
}

// do executes a single API request.
// path is either relative to the base URL or an absolute URL
// (pagination "next" links are absolute).
// If out is a *string, the raw response body is returned undecoded;
// otherwise a non-nil out receives the decoded JSON response.
func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("wait for rate limiter: %w", err)
	}

	httpClient, err := c.http(ctx)
	if err != nil {
		return err
	}

	u := path
	if !strings.HasPrefix(u, "http://") && !strings.HasPrefix(u, "https://") {
		u = c.baseURL + "/" + strings.TrimPrefix(path, "/")
	}

	var reqBody io.Reader
	if body != nil {
		var buf bytes.Buffer
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			return fmt.Errorf("encode request body: %w", err)
		}
		reqBody = &buf
	}

	req, err := http.NewRequestWithContext(ctx, method, u, reqBody)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	c.log.Debug("Sending request", "method", method, "url", u)
	resp, err := httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, u, err)
	}
	defer func() { _ = resp.Body.Close() }()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response body: %w", err)
	}

	if resp.StatusCode >= 400 {
		return newError(resp.StatusCode, data)
	}

	if out == nil || len(data) == 0 {
		return nil
	}
	if raw, ok := out.(*string); ok {
		*raw = string(data)
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

// addOptions encodes opts as query parameters and appends them to path.
// A nil opts (typed or untyped) leaves path unchanged.
func addOptions(path string, opts any) (string, error) {
	if opts == nil {
		return path, nil
	}
	if v := reflect.ValueOf(opts); v.Kind() == reflect.Pointer && v.IsNil() {
		return path, nil
	}

	qs, err := query.Values(opts)
	if err != nil {
		return "", fmt.Errorf("encode query options: %w", err)
	}
	if len(qs) == 0 {
		return path, nil
	}

	sep := "?"
	if strings.Contains(path, "?") {
		sep = "&"
	}
	return path + sep + qs.Encode(), nil
}

// escape escapes a single URL path segment.
func escape(segment string) string {
	return url.PathEscape(segment)
}

// Ptr returns a pointer to v.
// Handy for the pointer fields of update requests.
func Ptr[T any](v T) *T {
	return &v
}

// ptrs converts a slice of values into a slice of pointers into it.
func ptrs[T any](values []T) []*T {
	out := make([]*T, len(values))
	for i := range values {
		out[i] = &values[i]
	}
	return out
}
