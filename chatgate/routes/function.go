// chatgate/routes/function.go
package routes

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"net"
	"net/http"

	"chatgate/chatgate/controllers"
	"chatgate/chatgate/middlewares"
	"chatgate/chatgate/services/metrics"
	httputils "chatgate/chatgate/utils/http"
	"chatgate/chatgate/utils/logging"
	"chatgate/chatgate/utils/types"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// FunctionRoutes serves the chat function. The method is checked before the
// bearer token, so a GET is always 405 whoever sends it.
func FunctionRoutes(ctrl *controllers.ChatController, authMw func(http.Handler) http.Handler) chi.Router {
	r := chi.NewRouter()
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		metrics.ChatRequestsTotal.WithLabelValues("method_not_allowed").Inc()
		httputils.RespondError(w, http.StatusMethodNotAllowed, "Method not allowed")
	})

	var chat chi.Router = r
	if authMw != nil {
		chat = r.With(authMw)
	}
	chat.Post("/chat", func(w http.ResponseWriter, r *http.Request) {
		defer logging.LogDuration(r.Context(), "chat_function")()
		w.Header().Set("Access-Control-Allow-Origin", "*")

		user, _ := middlewares.UserFromContext(r.Context())
		identifier := user.Subject
		if identifier == "" {
			identifier = clientHost(r.RemoteAddr)
		}
		if !ctrl.Allow(r.Context(), identifier) {
			metrics.ChatRequestsTotal.WithLabelValues("rate_limited").Inc()
			httputils.RespondError(w, http.StatusTooManyRequests, "Too many requests")
			return
		}

		req, err := decodeChatRequest(r.Body)
		if err != nil {
			logging.AppLogger.Info("chat function received invalid body", zap.Error(err))
			metrics.ChatRequestsTotal.WithLabelValues("bad_request").Inc()
			httputils.RespondError(w, http.StatusInternalServerError, "Internal server error")
			return
		}
		resp, err := ctrl.Reply(r.Context(), user.Subject, req)
		if err != nil {
			logging.ErrorLogger.Error("chat function failed", zap.Error(err))
			metrics.ChatRequestsTotal.WithLabelValues("error").Inc()
			httputils.RespondError(w, http.StatusInternalServerError, "Internal server error")
			return
		}
		metrics.ChatRequestsTotal.WithLabelValues("ok").Inc()
		httputils.RespondJSON(w, http.StatusOK, resp)
	})
	return r
}

var errNullBody = errors.New("request body is null")

// decodeChatRequest accepts exactly one JSON object and nothing after it.
func decodeChatRequest(body io.Reader) (types.ChatRequest, error) {
	var req types.ChatRequest
	raw, err := io.ReadAll(body)
	if err != nil {
		return req, err
	}
	if bytes.Equal(bytes.TrimSpace(raw), []byte("null")) {
		return req, errNullBody
	}
	err = json.Unmarshal(raw, &req)
	return req, err
}

// clientHost drops the port so one client keeps one rate-limit window
// across connections.
func clientHost(remoteAddr string) string {
	host, _, err := net.SplitHostPort(remoteAddr)
	if err != nil {
		return remoteAddr
	}
	return host
}
