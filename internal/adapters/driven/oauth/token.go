// Package oauth provides the Google OAuth2 token provider and the
// authorisation code exchange used by "drivesync auth login".
package oauth

import (
	"context"
	"fmt"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"

	googleconn "github.com/custodia-labs/drivesync/internal/connectors/google"
	"github.com/custodia-labs/drivesync/internal/core/domain"
	"github.com/custodia-labs/drivesync/internal/core/ports/driven"
)

// Config keys for the Google OAuth client and the stored refresh token.
const (
	KeyClientID     = "google.client_id"
	KeyClientSecret = "google.client_secret"
	KeyRefreshToken = "google.refresh_token"
)

// Ensure TokenProvider implements the interface.
var _ driven.TokenProvider = (*TokenProvider)(nil)

// Credentials are the OAuth client and refresh token read from config.
type Credentials struct {
	ClientID     string
	ClientSecret string
	RefreshToken string
}

// CredentialsFromConfig reads credentials from the config store.
func CredentialsFromConfig(store driven.ConfigStore) Credentials {
	return Credentials{
		ClientID:     store.GetString(KeyClientID),
		ClientSecret: store.GetString(KeyClientSecret),
		RefreshToken: store.GetString(KeyRefreshToken),
	}
}

// GoogleConfig returns the OAuth2 client configuration for read-only Drive access.
func GoogleConfig(clientID, clientSecret, redirectURI string) *oauth2.Config {
	return &oauth2.Config{
		ClientID:     clientID,
		ClientSecret: clientSecret,
		RedirectURL:  redirectURI,
		Endpoint:     google.Endpoint,
		Scopes:       []string{googleconn.DriveScope},
	}
}

// TokenProvider refreshes access tokens from a stored refresh token.
// Access tokens are cached until shortly before they expire.
type TokenProvider struct {
	config       *oauth2.Config
	refreshToken string
	source       oauth2.TokenSource
}

// NewTokenProvider creates a token provider. The context is used for
// token refresh requests.
func NewTokenProvider(ctx context.Context, config *oauth2.Config, refreshToken string) *TokenProvider {
	return &TokenProvider{
		config:       config,
		refreshToken: refreshToken,
		source:       config.TokenSource(ctx, &oauth2.Token{RefreshToken: refreshToken}),
	}
}

// GetToken returns a valid access token, refreshing it when needed.
func (p *TokenProvider) GetToken(_ context.Context) (string, error) {
	if !p.IsAuthenticated() {
		return "", domain.ErrAuthRequired
	}

	token, err := p.source.Token()
	if err != nil {
		return "", fmt.Errorf("refresh access token: %w", err)
	}
	return token.AccessToken, nil
}

// IsAuthenticated returns true if a client and a refresh token are configured.
func (p *TokenProvider) IsAuthenticated() bool {
	return p.config.ClientID != "" && p.refreshToken != ""
}

// AuthCodeURL returns the consent page URL for a PKCE authorisation request.
// Offline access with a consent prompt makes Google return a refresh token.
func AuthCodeURL(config *oauth2.Config, state, verifier string) string {
	return config.AuthCodeURL(state,
		oauth2.AccessTypeOffline,
		oauth2.SetAuthURLParam("prompt", "consent"),
		oauth2.S256ChallengeOption(verifier),
	)
}

// ExchangeCode exchanges an authorisation code for tokens.
func ExchangeCode(ctx context.Context, config *oauth2.Config, code, verifier string) (*oauth2.Token, error) {
	token, err := config.Exchange(ctx, code, oauth2.VerifierOption(verifier))
	if err != nil {
		return nil, fmt.Errorf("exchange authorization code: %w", err)
	}
	if token.RefreshToken == "" {
		return nil, fmt.Errorf("exchange authorization code: %w: no refresh token returned", domain.ErrAuthInvalid)
	}
	return token, nil
}
