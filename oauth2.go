package gobucket

import (
	"context"
	"net/http"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/bitbucket"
	"golang.org/x/oauth2/clientcredentials"
)

// OAuth2ClientCredentials authenticates as the OAuth consumer itself
// using the client credentials grant. Tokens are fetched and refreshed
// automatically.
func OAuth2ClientCredentials(clientID, clientSecret string) Auth {
	return &oauth2ClientCredentials{
		config: &clientcredentials.Config{
			ClientID:     clientID,
			ClientSecret: clientSecret,
			TokenURL:     bitbucket.Endpoint.TokenURL,
		},
	}
}

type oauth2ClientCredentials struct {
	config *clientcredentials.Config
}

func (a *oauth2ClientCredentials) HTTPClient(ctx context.Context, base *http.Client) (*http.Client, error) {
	// The token source outlives the request that triggered its
	// construction; detach it from that request's cancellation.
	cctx := context.WithValue(context.WithoutCancel(ctx), oauth2.HTTPClient, base)
	return a.config.Client(cctx), nil
}

// OAuth2Token authenticates with an existing OAuth2 access token.
// The token is not refreshed; use [OAuth2TokenSource] for refreshable tokens.
func OAuth2Token(accessToken string) Auth {
	return OAuth2TokenSource(oauth2.StaticTokenSource(&oauth2.Token{
		AccessToken: accessToken,
	}))
}

// OAuth2TokenSource authenticates with tokens from the given source.
func OAuth2TokenSource(source oauth2.TokenSource) Auth {
	return &oauth2TokenSource{source: source}
}

type oauth2TokenSource struct {
	source oauth2.TokenSource
}

func (a *oauth2TokenSource) HTTPClient(_ context.Context, base *http.Client) (*http.Client, error) {
	wrapped := *base
	wrapped.Transport = &oauth2.Transport{
		Base:   transportOf(base),
		Source: a.source,
	}
	return &wrapped, nil
}

// OAuth2Config builds an [oauth2.Config] for Bitbucket's
// authorization code grant. Callers run the code exchange themselves
// and pass the resulting token source to [OAuth2TokenSource].
func OAuth2Config(clientID, clientSecret, redirectURL string) *oauth2.Config {
	return &oauth2.Config{
		ClientID:     clientID,
		ClientSecret: clientSecret,
		RedirectURL:  redirectURL,
		Endpoint:     bitbucket.Endpoint,
	}
}
