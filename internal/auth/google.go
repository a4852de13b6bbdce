package auth

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/lyricverse-api/internal/config"
	"github.com/lyricverse-api/internal/models"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
)

const userinfoURL = "https://www.googleapis.com/oauth2/v2/userinfo"

// Provider resolves an OAuth authorization code into an identity.
// Tests swap in a fake; production uses Google.
type Provider interface {
	AuthURL(state string) string
	Exchange(ctx context.Context, code string) (models.Identity, error)
}

// googleProvider implements Provider against Google's OAuth endpoints
type googleProvider struct {
	oauth *oauth2.Config
}

// NewGoogleProvider builds the Google OAuth provider from config
func NewGoogleProvider(cfg *config.AuthConfig) Provider {
	return &googleProvider{
		oauth: &oauth2.Config{
			ClientID:     cfg.GoogleClientID,
			ClientSecret: cfg.GoogleClientSecret,
			RedirectURL:  cfg.RedirectURL,
			Scopes: []string{
				"https://www.googleapis.com/auth/userinfo.email",
				"https://www.googleapis.com/auth/userinfo.profile",
			},
			Endpoint: google.Endpoint,
		},
	}
}

// AuthURL returns the Google consent-screen URL for the login redirect
func (g *googleProvider) AuthURL(state string) string {
	return g.oauth.AuthCodeURL(state, oauth2.AccessTypeOnline)
}

// Exchange trades the authorization code for a token and fetches the
// user's email, name and picture from the userinfo endpoint
func (g *googleProvider) Exchange(ctx context.Context, code string) (models.Identity, error) {
	token, err := g.oauth.Exchange(ctx, code)
	if err != nil {
		return models.Identity{}, fmt.Errorf("oauth code exchange failed: %w", err)
	}

	client := g.oauth.Client(ctx, token)
	resp, err := client.Get(userinfoURL)
	if err != nil {
		return models.Identity{}, fmt.Errorf("userinfo request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return models.Identity{}, fmt.Errorf("userinfo request returned status %d", resp.StatusCode)
	}

	var info struct {
		Email   string `json:"email"`
		Name    string `json:"name"`
		Picture string `json:"picture"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&info); err != nil {
		return models.Identity{}, fmt.Errorf("failed to decode userinfo: %w", err)
	}
	if info.Email == "" {
		return models.Identity{}, fmt.Errorf("userinfo response carried no email")
	}

	return models.Identity{
		Email:    info.Email,
		Name:     info.Name,
		ImageURL: info.Picture,
	}, nil
}
