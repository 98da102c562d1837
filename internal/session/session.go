// Package session carries the signed-in user through a context.Context.
//
// There is no process-wide "logged in" flag: code that needs to know who the
// current user is receives a context and asks it.
package session

import (
	"context"
	"strings"

	"github.com/mmynk/quicksplit/internal/models"
)

// contextKey is a custom type for context keys to avoid collisions.
type contextKey string

const sessionKey contextKey = "session"

// Session is the signed-in user.
type Session struct {
	UserID      string
	DisplayName string
}

// New returns a session for the given user. It returns false if userID is blank.
func New(userID, displayName string) (Session, bool) {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return Session{}, false
	}
	return Session{UserID: userID, DisplayName: strings.TrimSpace(displayName)}, true
}

// NewContext returns a copy of ctx carrying s.
func NewContext(ctx context.Context, s Session) context.Context {
	return context.WithValue(ctx, sessionKey, s)
}

// FromContext extracts the session from ctx.
// The boolean is false if nobody is signed in.
func FromContext(ctx context.Context) (Session, bool) {
	s, ok := ctx.Value(sessionKey).(Session)
	return s, ok && s.UserID != ""
}

// UserID returns the signed-in user's ID, or "" if nobody is signed in.
func UserID(ctx context.Context) string {
	s, _ := FromContext(ctx)
	return s.UserID
}

// Participant returns the session user as the owning participant of a split.
func (s Session) Participant() models.Participant {
	name := s.DisplayName
	if name == "" {
		name = "You"
	}
	return models.Participant{ID: s.UserID, Name: name, Owner: true}
}
