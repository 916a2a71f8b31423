package widget

import (
	"sync"
	"time"

	"chatgate/chatgate/types"
)

// State is everything one chat widget knows: who is signed in, the
// conversation so far, and whether the input box accepts text.
// The message list only ever grows.
type State struct {
	mu           sync.Mutex
	sendMu       sync.Mutex
	session      *types.Session
	messages     []types.ChatMessage
	inputEnabled bool
	welcomed     bool
}

// NewState starts a widget for sess; a nil session means nobody is signed in.
func NewState(sess *types.Session) *State {
	return &State{
		session:      sess,
		messages:     make([]types.ChatMessage, 0, 16),
		inputEnabled: sess != nil && sess.IsAuthenticated,
	}
}

func (s *State) IsAuthenticated() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.session != nil && s.session.IsAuthenticated
}

func (s *State) User() types.User {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.session == nil {
		return types.User{}
	}
	return s.session.User
}

func (s *State) accessToken() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.session == nil || !s.session.IsAuthenticated {
		return ""
	}
	return s.session.AccessToken
}

func (s *State) InputEnabled() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.inputEnabled
}

// Messages returns a copy of the conversation.
func (s *State) Messages() []types.ChatMessage {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]types.ChatMessage, len(s.messages))
	copy(out, s.messages)
	return out
}

// Welcome greets the user the first time the chat view is shown.
// It reports whether the greeting was added.
func (s *State) Welcome(now time.Time) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.welcomed || s.session == nil || !s.session.IsAuthenticated {
		return false
	}
	s.welcomed = true
	s.messages = append(s.messages, types.ChatMessage{Content: WelcomeMessage, Sender: types.SenderBot, Timestamp: now})
	return true
}

func (s *State) append(content string, sender types.Sender, now time.Time) {
	s.mu.Lock()
	s.messages = append(s.messages, types.ChatMessage{Content: content, Sender: sender, Timestamp: now})
	s.mu.Unlock()
}

func (s *State) setInputEnabled(enabled bool) {
	s.mu.Lock()
	s.inputEnabled = enabled
	s.mu.Unlock()
}
