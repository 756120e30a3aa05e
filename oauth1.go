package gobucket

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"sync"

	"github.com/dghubble/oauth1"
)

// Bitbucket's OAuth1 endpoints are the surviving piece of the V1 API.
const (
	oauth1RequestTokenURL = "https://bitbucket.org/api/1.0/oauth/request_token"
	oauth1AuthorizeURL    = "https://bitbucket.org/api/1.0/oauth/authenticate"
	oauth1AccessTokenURL  = "https://bitbucket.org/api/1.0/oauth/access_token"
)

// oobCallback requests out-of-band authorization:
// the user is shown a PIN instead of being redirected.
const oobCallback = "oob"

func oauth1Endpoint() oauth1.Endpoint {
	return oauth1.Endpoint{
		RequestTokenURL: oauth1RequestTokenURL,
		AuthorizeURL:    oauth1AuthorizeURL,
		AccessTokenURL:  oauth1AccessTokenURL,
	}
}

// OAuth1TwoLegged signs requests with consumer credentials only.
// No user authorization takes place; the application acts as itself.
func OAuth1TwoLegged(consumerKey, consumerSecret string) Auth {
	return &oauth1TwoLegged{
		config: &oauth1.Config{
			ConsumerKey:    consumerKey,
			ConsumerSecret: consumerSecret,
			Endpoint:       oauth1Endpoint(),
		},
	}
}

type oauth1TwoLegged struct {
	config *oauth1.Config
}

func (a *oauth1TwoLegged) HTTPClient(ctx context.Context, base *http.Client) (*http.Client, error) {
	cctx := context.WithValue(ctx, oauth1.HTTPClient, base)
	// Two-legged OAuth1 signs with an empty token.
	return oauth1.NewClient(cctx, a.config, oauth1.NewToken("", "")), nil
}

// OAuth1ThreeLegged drives the OAuth1 three-legged handshake:
// obtain a temporary request token, send the user to an authorization URL,
// then exchange the PIN they receive for a permanent access token pair.
//
//	flow := gobucket.NewOAuth1ThreeLegged(key, secret)
//	authURL, err := flow.StartAuthentication(ctx)
//	// ... user visits authURL and reads off the PIN ...
//	err = flow.AuthenticateWithPin(ctx, pin)
//
// Once authenticated, the flow doubles as an [Auth] strategy.
// A previously obtained token pair can be reinstalled with [OAuth1ThreeLegged.Restore].
//
// The flow is not safe for concurrent use during the handshake.
type OAuth1ThreeLegged struct {
	config *oauth1.Config
	base   *http.Client

	requestToken  string
	requestSecret string

	token  string
	secret string

	// The signed HTTP client is built once, on first use.
	once    sync.Once
	signedC *http.Client
}

var _ Auth = (*OAuth1ThreeLegged)(nil)

// NewOAuth1ThreeLegged prepares a three-legged handshake
// for the given consumer credentials, using out-of-band (PIN) authorization.
func NewOAuth1ThreeLegged(consumerKey, consumerSecret string) *OAuth1ThreeLegged {
	return &OAuth1ThreeLegged{
		config: &oauth1.Config{
			ConsumerKey:    consumerKey,
			ConsumerSecret: consumerSecret,
			CallbackURL:    oobCallback,
			Endpoint:       oauth1Endpoint(),
		},
	}
}

// SetHTTPClient sets the HTTP client used for the handshake requests.
// Call it before [OAuth1ThreeLegged.StartAuthentication].
// Defaults to [http.DefaultClient].
func (a *OAuth1ThreeLegged) SetHTTPClient(c *http.Client) {
	a.base = c
}

// handshakeClient wraps the base client so that the handshake requests,
// which the oauth1 library issues without a context, still honor ctx.
func (a *OAuth1ThreeLegged) handshakeClient(ctx context.Context) *http.Client {
	base := a.base
	if base == nil {
		base = http.DefaultClient
	}
	wrapped := *base
	wrapped.Transport = &contextTransport{ctx: ctx, next: transportOf(base)}
	return &wrapped
}

type contextTransport struct {
	ctx  context.Context
	next http.RoundTripper
}

func (t *contextTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	return t.next.RoundTrip(req.Clone(t.ctx))
}

// StartAuthentication obtains a temporary request token
// and returns the URL the user must visit to authorize the application.
func (a *OAuth1ThreeLegged) StartAuthentication(ctx context.Context) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	a.config.HTTPClient = a.handshakeClient(ctx)
	requestToken, requestSecret, err := a.config.RequestToken()
	if err != nil {
		return "", fmt.Errorf("obtain request token: %w", err)
	}
	if requestToken == "" || requestSecret == "" {
		return "", errors.New("request token response missing token or secret")
	}
	a.requestToken, a.requestSecret = requestToken, requestSecret

	authURL, err := a.config.AuthorizationURL(requestToken)
	if err != nil {
		return "", fmt.Errorf("build authorization URL: %w", err)
	}
	return authURL.String(), nil
}

// AuthenticateWithPin exchanges the PIN the user received after authorizing
// for a permanent access token pair, completing the handshake.
// [OAuth1ThreeLegged.StartAuthentication] must have succeeded first.
func (a *OAuth1ThreeLegged) AuthenticateWithPin(ctx context.Context, pin string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if a.requestToken == "" || a.requestSecret == "" {
		return errors.New("authentication not started")
	}
	pin = strings.TrimSpace(pin)
	if pin == "" {
		return errors.New("pin is required")
	}

	a.config.HTTPClient = a.handshakeClient(ctx)
	token, secret, err := a.config.AccessToken(a.requestToken, a.requestSecret, pin)
	if err != nil {
		return fmt.Errorf("exchange pin for access token: %w", err)
	}
	if token == "" || secret == "" {
		return errors.New("access token response missing token or secret")
	}

	a.token, a.secret = token, secret
	return nil
}

// Token returns the access token pair obtained by the handshake.
// Both values are empty until the handshake completes.
func (a *OAuth1ThreeLegged) Token() (token, secret string) {
	return a.token, a.secret
}

// Restore installs a previously obtained access token pair,
// skipping the handshake.
func (a *OAuth1ThreeLegged) Restore(token, secret string) {
	a.token, a.secret = token, secret
}

// Authenticated reports whether the flow holds a usable access token pair.
func (a *OAuth1ThreeLegged) Authenticated() bool {
	return a.token != "" && a.secret != ""
}

// HTTPClient returns an HTTP client signing requests with the access token.
// It fails with [ErrNotAuthenticated] until the handshake completes.
func (a *OAuth1ThreeLegged) HTTPClient(ctx context.Context, base *http.Client) (*http.Client, error) {
	if !a.Authenticated() {
		return nil, fmt.Errorf("oauth1: %w", ErrNotAuthenticated)
	}

	a.once.Do(func() {
		// The signed client outlives the request that triggered
		// its construction.
		cctx := context.WithValue(context.WithoutCancel(ctx), oauth1.HTTPClient, base)
		a.signedC = oauth1.NewClient(cctx, a.config, oauth1.NewToken(a.token, a.secret))
	})
	return a.signedC, nil
}
