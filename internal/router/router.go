// Package router routes user messages to topic handlers through a dispatch
// table built once at startup. Handlers never import each other; a handler
// that declines a message does so through its return value.
package router

import (
	"context"
	"strings"

	"github.com/i474232898/weather-chat-agent/internal/common"
)

// HandlerID identifies a topic handler. The set is closed.
type HandlerID int

const (
	HandlerNone HandlerID = iota
	HandlerWeather
	HandlerUsers
)

// Handler is one conversational topic handler. handled is false when the
// message is not for this handler, in which case the router apologizes.
type Handler interface {
	Handle(ctx context.Context, message string) (reply string, handled bool)
}

const replyNoAgent = "I'm sorry, I couldn't find an agent to assist with your request."

// Router owns the keyword routing and the dispatch table.
type Router struct {
	handlers map[HandlerID]Handler
}

func New() *Router {
	return &Router{handlers: make(map[HandlerID]Handler)}
}

// Register adds a handler to the dispatch table.
func (r *Router) Register(id HandlerID, h Handler) {
	r.handlers[id] = h
}

// Route picks the handler for a message by keyword. User-data requests go
// to the users handler; the weather handler is the default topic and does
// its own intent classification (including the unrecognized apology).
func (r *Router) Route(message string) HandlerID {
	lower := strings.ToLower(message)
	if common.HasAny(lower, "user") {
		return HandlerUsers
	}
	return HandlerWeather
}

// Dispatch routes the message and returns the handler's reply, or the
// router apology when no handler takes it.
func (r *Router) Dispatch(ctx context.Context, message string) string {
	id := r.Route(message)
	h, ok := r.handlers[id]
	if !ok {
		return replyNoAgent
	}
	reply, handled := h.Handle(ctx, message)
	if !handled {
		return replyNoAgent
	}
	return reply
}
