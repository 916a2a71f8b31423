// chatgate/controllers/auth.go
package controllers

import (
	"context"

	"chatgate/chatgate/auth"
	"chatgate/chatgate/services/metrics"
	"chatgate/chatgate/sources/session"
	"chatgate/chatgate/utils/logging"

	"go.uber.org/zap"
)

// AuthErrorMessage is the banner shown when the sign-in handshake fails.
const AuthErrorMessage = "Authentication system initialization failed"

type AuthController struct {
	provider *auth.Provider
	store    *session.Store
	origin   string
}

func NewAuthController(provider *auth.Provider, store *session.Store, origin string) *AuthController {
	return &AuthController{provider: provider, store: store, origin: origin}
}

// BeginLogin returns the state to remember and the provider URL to visit.
func (c *AuthController) BeginLogin() (state string, loginURL string, err error) {
	state, err = auth.NewState()
	if err != nil {
		return "", "", err
	}
	return state, c.provider.LoginURL(state), nil
}

// CompleteLogin turns the callback code into a stored session.
func (c *AuthController) CompleteLogin(ctx context.Context, code string) (*session.Entry, error) {
	sess, err := c.provider.HandleRedirectCallback(ctx, code)
	if err != nil {
		metrics.Logins.WithLabelValues("failed").Inc()
		return nil, err
	}
	metrics.Logins.WithLabelValues("ok").Inc()
	entry := c.store.Save(sess)
	logging.AppLogger.Info("session created", zap.String("sub", sess.User.Subject), zap.Int("active_sessions", c.store.Count()))
	return entry, nil
}

// Logout forgets the session and returns the provider's logout URL.
func (c *AuthController) Logout(sessionID string) string {
	if sessionID != "" {
		c.store.Delete(sessionID)
	}
	return c.provider.LogoutURL(c.origin)
}

func (c *AuthController) Forget(sessionID string) {
	c.store.Delete(sessionID)
}
