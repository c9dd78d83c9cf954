package session

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"golang.org/x/oauth2"

	"github.com/GoSim-25-26J-441/project-admin/internal/auth"
)

var ErrSessionNotFound = errors.New("session not found")

// Session is the server-side state behind the session cookie.
type Session struct {
	ID        string        `json:"id"`
	State     string        `json:"state,omitempty"`
	ReturnTo  string        `json:"return_to,omitempty"`
	Token     *oauth2.Token `json:"token,omitempty"`
	Identity  auth.Identity `json:"identity"`
	CreatedAt time.Time     `json:"created_at"`
	UpdatedAt time.Time     `json:"updated_at"`
}

func New() *Session {
	now := time.Now()
	return &Session{
		ID:        uuid.New().String(),
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func (s *Session) Authenticated() bool {
	return s != nil && s.Token != nil && s.Token.AccessToken != ""
}

// Store persists sessions by id.
type Store interface {
	Get(ctx context.Context, id string) (*Session, error)
	Save(ctx context.Context, s *Session) error
	Delete(ctx context.Context, id string) error
	Ping(ctx context.Context) error
}
