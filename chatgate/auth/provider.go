// Package auth talks to the identity provider: the authorization-code login
// flow, profile lookups, bearer verification and the signed session cookie.
package auth

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"chatgate/chatgate/config"
	"chatgate/chatgate/types"
	"chatgate/chatgate/utils/logging"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/oauth2"
)

var (
	ErrInvalidState = errors.New("invalid oauth state")
	ErrMissingCode  = errors.New("missing authorization code")
	ErrInvalidToken = errors.New("invalid access token")
)

// Provider is the server-side counterpart of the identity provider SDK.
type Provider struct {
	oauth      *oauth2.Config
	baseURL    string
	audience   string
	httpClient *http.Client
}

// NewProvider builds the OAuth2 client for the configured tenant. The domain
// may be a bare host ("tenant.auth0.com") or a full URL.
func NewProvider(cfg config.Config) *Provider {
	base := strings.TrimRight(cfg.AuthDomain, "/")
	if !strings.HasPrefix(base, "http://") && !strings.HasPrefix(base, "https://") {
		base = "https://" + base
	}
	return &Provider{
		oauth: &oauth2.Config{
			ClientID:     cfg.AuthClientID,
			ClientSecret: cfg.AuthClientSecret,
			RedirectURL:  cfg.AuthCallbackURL,
			Scopes:       []string{"openid", "profile", "email"},
			Endpoint: oauth2.Endpoint{
				AuthURL:  base + "/authorize",
				TokenURL: base + "/oauth/token",
			},
		},
		baseURL:    base,
		audience:   cfg.AuthAudience,
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
}

// WithHTTPClient swaps the client used for token exchange and profile calls.
func (p *Provider) WithHTTPClient(c *http.Client) *Provider {
	p.httpClient = c
	return p
}

func (p *Provider) ctx(ctx context.Context) context.Context {
	return context.WithValue(ctx, oauth2.HTTPClient, p.httpClient)
}

// NewState returns a random value for the OAuth2 state parameter.
func NewState() (string, error) {
	b := make([]byte, 16)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}

// LoginURL is where the browser goes to sign in.
func (p *Provider) LoginURL(state string) string {
	var opts []oauth2.AuthCodeOption
	if p.audience != "" {
		opts = append(opts, oauth2.SetAuthURLParam("audience", p.audience))
	}
	return p.oauth.AuthCodeURL(state, opts...)
}

// LogoutURL ends the provider session and sends the browser back to returnTo.
func (p *Provider) LogoutURL(returnTo string) string {
	q := url.Values{}
	q.Set("client_id", p.oauth.ClientID)
	q.Set("returnTo", returnTo)
	return p.baseURL + "/v2/logout?" + q.Encode()
}

// HandleRedirectCallback exchanges the authorization code and loads the profile.
func (p *Provider) HandleRedirectCallback(ctx context.Context, code string) (*types.Session, error) {
	defer logging.LogDuration(ctx, "auth_handle_redirect_callback")()
	if code == "" {
		return nil, ErrMissingCode
	}
	tok, err := p.oauth.Exchange(p.ctx(ctx), code)
	if err != nil {
		return nil, fmt.Errorf("code exchange failed: %w", err)
	}
	user, err := p.GetUser(ctx, tok.AccessToken)
	if err != nil {
		return nil, err
	}
	logging.AppLogger.Info("user signed in", zap.String("sub", user.Subject))
	return &types.Session{
		ID:              uuid.NewString(),
		IsAuthenticated: true,
		User:            user,
		AccessToken:     tok.AccessToken,
		CreatedAt:       time.Now().UTC(),
	}, nil
}

// GetUser fetches the profile that belongs to accessToken.
func (p *Provider) GetUser(ctx context.Context, accessToken string) (types.User, error) {
	if accessToken == "" {
		return types.User{}, ErrInvalidToken
	}
	client := oauth2.NewClient(p.ctx(ctx), oauth2.StaticTokenSource(&oauth2.Token{
		AccessToken: accessToken,
		TokenType:   "Bearer",
	}))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.baseURL+"/userinfo", nil)
	if err != nil {
		return types.User{}, err
	}
	resp, err := client.Do(req)
	if err != nil {
		return types.User{}, fmt.Errorf("userinfo request failed: %w", err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return types.User{}, ErrInvalidToken
	case resp.StatusCode != http.StatusOK:
		return types.User{}, fmt.Errorf("userinfo returned status %d", resp.StatusCode)
	}

	var user types.User
	if err := json.NewDecoder(resp.Body).Decode(&user); err != nil {
		return types.User{}, fmt.Errorf("failed to parse userinfo: %w", err)
	}
	if user.Subject == "" {
		return types.User{}, ErrInvalidToken
	}
	return user, nil
}
