package gobucket

import (
	"context"
	"net/http"
)

// Auth configures the HTTP client a [Client] uses to talk to Bitbucket.
// Implementations wrap the base client so that outgoing requests
// carry the right credentials.
type Auth interface {
	// HTTPClient returns an HTTP client that authenticates requests.
	// base is the client to wrap; implementations must not mutate it.
	HTTPClient(ctx context.Context, base *http.Client) (*http.Client, error)
}

type anonymous struct{}

// Anonymous makes unauthenticated requests.
// Only public resources are reachable.
func Anonymous() Auth { return anonymous{} }

func (anonymous) HTTPClient(_ context.Context, base *http.Client) (*http.Client, error) {
	return base, nil
}

// BasicAuth authenticates with a username and app password
// (or an Atlassian account email and API token).
func BasicAuth(username, password string) Auth {
	return &basicAuth{username: username, password: password}
}

type basicAuth struct {
	username, password string
}

func (a *basicAuth) HTTPClient(_ context.Context, base *http.Client) (*http.Client, error) {
	wrapped := *base
	wrapped.Transport = &basicAuthTransport{
		next:     transportOf(base),
		username: a.username,
		password: a.password,
	}
	return &wrapped, nil
}

type basicAuthTransport struct {
	next               http.RoundTripper
	username, password string
}

func (t *basicAuthTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	r2 := req.Clone(req.Context())
	r2.SetBasicAuth(t.username, t.password)
	return t.next.RoundTrip(r2)
}

func transportOf(c *http.Client) http.RoundTripper {
	if c.Transport != nil {
		return c.Transport
	}
	return http.DefaultTransport
}
