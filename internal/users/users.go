// Package users is the user-data topic handler: a direct pass-through query
// over the users collection with sensitive fields projected away.
package users

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/i474232898/weather-chat-agent/internal/common"
)

// User is the subset of a stored user document shown in replies. The
// password hash is excluded by the store's projection and never loaded.
type User struct {
	Username  string `bson:"username" json:"username"`
	Email     string `bson:"email" json:"email"`
	CreatedAt string `bson:"created_at" json:"created_at"`
	LastLogin string `bson:"last_login" json:"last_login"`
}

// Store is the persistence contract for the users handler.
type Store interface {
	FindUsers(ctx context.Context) ([]User, error)
}

// Handler answers user-data requests routed to it by the dispatcher.
type Handler struct {
	store Store
}

func NewHandler(store Store) *Handler {
	return &Handler{store: store}
}

// Handle lists users when the message actually asks about them; otherwise
// it reports the message as not handled so the router can apologize.
func (h *Handler) Handle(ctx context.Context, message string) (string, bool) {
	lower := strings.ToLower(message)
	if !common.HasAny(lower, "user", "users") {
		return "", false
	}

	us, err := h.store.FindUsers(ctx)
	if err != nil {
		log.Printf("users: query failed: %v", err)
		return "Sorry, I couldn't retrieve the user data.", true
	}
	if len(us) == 0 {
		return "No results found.", true
	}

	lines := make([]string, 0, len(us))
	for _, u := range us {
		lines = append(lines, fmt.Sprintf("- %s (%s), last login: %s", u.Username, u.Email, u.LastLogin))
	}
	return "Here are the registered users:\n" + strings.Join(lines, "\n"), true
}
