// Package web renders the widget's login and chat views.
package web

import (
	"embed"
	"encoding/base64"
	"html/template"
	"net/http"
	"time"

	"chatgate/chatgate/types"
)

//go:embed templates/*.html
var templateFS embed.FS

const (
	FlashCookieName = "chatgate_flash"
	// ErrorBannerTTL is how long an error banner survives before it disappears.
	ErrorBannerTTL = 5 * time.Second
)

type PageData struct {
	Authenticated bool
	Email         string
	Messages      []types.ChatMessage
	InputEnabled  bool
	Error         string
}

type View struct {
	tmpl *template.Template
}

func NewView() (*View, error) {
	tmpl, err := template.ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, err
	}
	return &View{tmpl: tmpl}, nil
}

func (v *View) Render(w http.ResponseWriter, data PageData) error {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	return v.tmpl.ExecuteTemplate(w, "index.html", data)
}

// SetFlash shows message as an error banner on the next page load(s)
// within ErrorBannerTTL.
func SetFlash(w http.ResponseWriter, message string) {
	http.SetCookie(w, &http.Cookie{
		Name:     FlashCookieName,
		Value:    base64.RawURLEncoding.EncodeToString([]byte(message)),
		Path:     "/",
		MaxAge:   int(ErrorBannerTTL.Seconds()),
		Expires:  time.Now().Add(ErrorBannerTTL),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

// Flash returns the pending banner message, if any.
func Flash(r *http.Request) string {
	c, err := r.Cookie(FlashCookieName)
	if err != nil {
		return ""
	}
	b, err := base64.RawURLEncoding.DecodeString(c.Value)
	if err != nil {
		return ""
	}
	return string(b)
}
