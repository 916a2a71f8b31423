package types

import "time"

// User is the subset of the identity provider profile the widget needs.
type User struct {
	Subject string `json:"sub"`
	Email   string `json:"email"`
	Name    string `json:"name,omitempty"`
}

// Session is the server-side authentication state for one browser.
// AccessToken is never serialised to the client.
type Session struct {
	ID              string    `json:"id"`
	IsAuthenticated bool      `json:"authenticated"`
	User            User      `json:"user"`
	AccessToken     string    `json:"-"`
	CreatedAt       time.Time `json:"created_at"`
}
