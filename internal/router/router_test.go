package router

import (
	"context"
	"testing"
)

type stubHandler struct {
	reply   string
	handled bool
	calls   int
}

func (h *stubHandler) Handle(ctx context.Context, message string) (string, bool) {
	h.calls++
	return h.reply, h.handled
}

func TestRouteByKeyword(t *testing.T) {
	r := New()

	if got := r.Route("list all users"); got != HandlerUsers {
		t.Errorf("Route(users request) = %v, want HandlerUsers", got)
	}
	if got := r.Route("weather in london"); got != HandlerWeather {
		t.Errorf("Route(weather request) = %v, want HandlerWeather", got)
	}
	// Weather is the default topic for anything else.
	if got := r.Route("hottest cities"); got != HandlerWeather {
		t.Errorf("Route(analytics request) = %v, want HandlerWeather", got)
	}
}

func TestDispatchUsesTable(t *testing.T) {
	r := New()
	weatherHandler := &stubHandler{reply: "weather reply", handled: true}
	usersHandler := &stubHandler{reply: "users reply", handled: true}
	r.Register(HandlerWeather, weatherHandler)
	r.Register(HandlerUsers, usersHandler)

	if got := r.Dispatch(context.Background(), "weather in london"); got != "weather reply" {
		t.Errorf("Dispatch = %q", got)
	}
	if got := r.Dispatch(context.Background(), "show me the users"); got != "users reply" {
		t.Errorf("Dispatch = %q", got)
	}
	if weatherHandler.calls != 1 || usersHandler.calls != 1 {
		t.Errorf("handler calls = %d/%d, want 1/1", weatherHandler.calls, usersHandler.calls)
	}
}

func TestDispatchApologizesWhenUnhandled(t *testing.T) {
	r := New()
	r.Register(HandlerUsers, &stubHandler{handled: false})

	got := r.Dispatch(context.Background(), "tell the user agent a joke")
	if got != replyNoAgent {
		t.Errorf("Dispatch = %q, want the router apology", got)
	}

	// No weather handler registered either.
	if got := r.Dispatch(context.Background(), "anything else"); got != replyNoAgent {
		t.Errorf("Dispatch without handler = %q, want the router apology", got)
	}
}
