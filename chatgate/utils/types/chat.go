// chatgate/utils/types/chat.go
package types

// ChatRequest is the body the widget posts to the chat function.
// Only Message is read by the function; the rest is informational.
type ChatRequest struct {
	Message   string `json:"message"`
	UserID    string `json:"userId,omitempty"`
	Timestamp string `json:"timestamp,omitempty"`
}

// ChatResponse carries the bot reply. Older deployments answer with "reply".
type ChatResponse struct {
	Response  string `json:"response,omitempty"`
	Reply     string `json:"reply,omitempty"`
	Timestamp string `json:"timestamp"`
}

// Text returns whichever reply field the server populated.
func (r ChatResponse) Text() string {
	if r.Response != "" {
		return r.Response
	}
	return r.Reply
}

type ErrorResponse struct {
	Error string `json:"error"`
}

// UserInfoResponse answers the "is this browser signed in" query.
type UserInfoResponse struct {
	Authenticated bool   `json:"authenticated"`
	Email         string `json:"email,omitempty"`
	Subject       string `json:"sub,omitempty"`
}

type TokenResponse struct {
	AccessToken string `json:"access_token"`
}
