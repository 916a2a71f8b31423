package controllers

import (
	"context"
	"time"

	"chatgate/chatgate/services/metrics"
	"chatgate/chatgate/sources/session"
	"chatgate/chatgate/web"
	"chatgate/chatgate/widget"
)

// WidgetController backs the browser view of the chat widget.
type WidgetController struct {
	widget *widget.Widget
}

func NewWidgetController(w *widget.Widget) *WidgetController {
	return &WidgetController{widget: w}
}

// Page builds the view for entry; a nil entry gets the login view.
func (c *WidgetController) Page(entry *session.Entry, banner string) web.PageData {
	if entry == nil || !entry.State.IsAuthenticated() {
		return web.PageData{Error: banner}
	}
	entry.State.Welcome(time.Now().UTC())
	return web.PageData{
		Authenticated: true,
		Email:         entry.State.User().Email,
		Messages:      entry.State.Messages(),
		InputEnabled:  entry.State.InputEnabled(),
		Error:         banner,
	}
}

func (c *WidgetController) Send(ctx context.Context, entry *session.Entry, message string) error {
	if entry == nil {
		metrics.WidgetMessages.WithLabelValues("rejected").Inc()
		return widget.ErrNotAuthenticated
	}
	if err := c.widget.Send(ctx, entry.State, message); err != nil {
		metrics.WidgetMessages.WithLabelValues("rejected").Inc()
		return err
	}
	metrics.WidgetMessages.WithLabelValues("sent").Inc()
	return nil
}
