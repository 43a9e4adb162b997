package services

import (
	"context"
	"fmt"
	"net/http"

	"github.com/desertthunder/moodlists/internal/shared"
	spotifyauth "github.com/zmb3/spotify/v2/auth"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/clientcredentials"
)

// ClientCredentials exchanges an application's client ID and secret for bearer tokens.
type ClientCredentials struct {
	config *clientcredentials.Config
}

// NewClientCredentials validates credentials and prepares the client-credentials flow.
//
// tokenURL defaults to the Spotify accounts token endpoint.
func NewClientCredentials(credentials map[string]string, tokenURL string) (*ClientCredentials, error) {
	clientID, ok := credentials["client_id"]
	if !ok || clientID == "" {
		return nil, fmt.Errorf("%w: missing client_id", shared.ErrMissingCredentials)
	}

	clientSecret, ok := credentials["client_secret"]
	if !ok || clientSecret == "" {
		return nil, fmt.Errorf("%w: missing client_secret", shared.ErrMissingCredentials)
	}

	if tokenURL == "" {
		tokenURL = spotifyauth.TokenURL
	}

	return &ClientCredentials{
		config: &clientcredentials.Config{
			ClientID:     clientID,
			ClientSecret: clientSecret,
			TokenURL:     tokenURL,
		},
	}, nil
}

// Token performs the exchange and returns the access token.
func (c *ClientCredentials) Token(ctx context.Context) (*oauth2.Token, error) {
	token, err := c.config.Token(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", shared.ErrAuthFailed, err)
	}
	return token, nil
}

// Client returns an [http.Client] that attaches a bearer token to every request, fetching a new one when it expires.
func (c *ClientCredentials) Client(ctx context.Context) *http.Client {
	return c.config.Client(ctx)
}
