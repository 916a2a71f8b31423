// Package widget holds the chat widget's behaviour independent of how it is
// displayed: the browser view and the terminal client both drive it.
package widget

import (
	"context"
	"errors"
	"strings"
	"time"

	"chatgate/chatgate/types"
	"chatgate/chatgate/utils/logging"
	wire "chatgate/chatgate/utils/types"

	"go.uber.org/zap"
)

const (
	WelcomeMessage = "Welcome! How can I help you today?"
	ApologyMessage = "Sorry, I encountered an error processing your message. Please try again."
)

var ErrNotAuthenticated = errors.New("not authenticated")

type Widget struct {
	relay Relay
	now   func() time.Time
}

func New(relay Relay) *Widget {
	return &Widget{relay: relay, now: func() time.Time { return time.Now().UTC() }}
}

// Send relays input for the signed-in user of st. Blank input is ignored.
// A failed relay is answered with ApologyMessage rather than an error; the
// returned error is only for calls that never reach the network.
func (w *Widget) Send(ctx context.Context, st *State, input string) error {
	message := strings.TrimSpace(input)
	if message == "" {
		return nil
	}
	token := st.accessToken()
	if token == "" {
		return ErrNotAuthenticated
	}

	st.sendMu.Lock()
	defer st.sendMu.Unlock()

	st.setInputEnabled(false)
	defer st.setInputEnabled(true)

	sent := w.now()
	st.append(message, types.SenderUser, sent)

	reply, err := w.relay.Send(ctx, token, wire.ChatRequest{
		Message:   message,
		UserID:    st.User().Subject,
		Timestamp: sent.Format(time.RFC3339),
	})
	if err != nil {
		logging.ErrorLogger.Error("error sending message", zap.Error(err), zap.String("sub", st.User().Subject))
		st.append(ApologyMessage, types.SenderBot, w.now())
		return nil
	}
	st.append(reply, types.SenderBot, w.now())
	return nil
}
