package auth

import (
	"errors"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const (
	SessionCookieName = "chatgate_session"
	StateCookieName   = "chatgate_oauth_state"
	stateCookieTTL    = 10 * time.Minute
)

var ErrNoSession = errors.New("no session cookie")

// Claims ties the browser cookie to a server-side session.
type Claims struct {
	jwt.RegisteredClaims
	SessionID string `json:"sid"`
}

// CookieSigner issues and reads the HS256-signed session cookie.
type CookieSigner struct {
	secret []byte
	ttl    time.Duration
	secure bool
}

func NewCookieSigner(secret string, ttl time.Duration, secure bool) *CookieSigner {
	return &CookieSigner{secret: []byte(secret), ttl: ttl, secure: secure}
}

func (s *CookieSigner) Sign(sessionID string) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
		SessionID: sessionID,
	})
	return token.SignedString(s.secret)
}

func (s *CookieSigner) Parse(tokenString string) (string, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return s.secret, nil
	})
	if err != nil {
		return "", err
	}
	if !token.Valid || claims.SessionID == "" {
		return "", jwt.ErrTokenInvalidClaims
	}
	return claims.SessionID, nil
}

// Issue sets the session cookie for sessionID.
func (s *CookieSigner) Issue(w http.ResponseWriter, sessionID string) error {
	value, err := s.Sign(sessionID)
	if err != nil {
		return err
	}
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookieName,
		Value:    value,
		Path:     "/",
		MaxAge:   int(s.ttl.Seconds()),
		HttpOnly: true,
		Secure:   s.secure,
		SameSite: http.SameSiteLaxMode,
	})
	return nil
}

// SessionID returns the session id carried by the request's cookie.
func (s *CookieSigner) SessionID(r *http.Request) (string, error) {
	c, err := r.Cookie(SessionCookieName)
	if err != nil {
		return "", ErrNoSession
	}
	return s.Parse(c.Value)
}

func (s *CookieSigner) Clear(w http.ResponseWriter) {
	s.expire(w, SessionCookieName)
}

// SetState remembers the OAuth2 state until the callback comes back.
func (s *CookieSigner) SetState(w http.ResponseWriter, state string) {
	http.SetCookie(w, &http.Cookie{
		Name:     StateCookieName,
		Value:    state,
		Path:     "/auth",
		MaxAge:   int(stateCookieTTL.Seconds()),
		HttpOnly: true,
		Secure:   s.secure,
		SameSite: http.SameSiteLaxMode,
	})
}

// CheckState consumes the state cookie and compares it with the callback value.
func (s *CookieSigner) CheckState(w http.ResponseWriter, r *http.Request, state string) error {
	c, err := r.Cookie(StateCookieName)
	s.expire(w, StateCookieName)
	if err != nil || state == "" || c.Value != state {
		return ErrInvalidState
	}
	return nil
}

func (s *CookieSigner) expire(w http.ResponseWriter, name string) {
	path := "/"
	if name == StateCookieName {
		path = "/auth"
	}
	http.SetCookie(w, &http.Cookie{
		Name:     name,
		Value:    "",
		Path:     path,
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   s.secure,
		SameSite: http.SameSiteLaxMode,
	})
}
