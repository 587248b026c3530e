// Package session keeps logged-in shoppers and their carts between requests.
package session

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/safar/rakhi-store/internal/cart"
)

type Session struct {
	ID        string     `json:"id"`
	Phone     string     `json:"phone"`
	Cart      *cart.Cart `json:"cart"`
	CreatedAt time.Time  `json:"created_at"`
}

// Store persists sessions. Get returns database.ErrSessionNotFound for
// unknown or expired ids.
type Store interface {
	Create(ctx context.Context, phone string) (*Session, error)
	Get(ctx context.Context, id string) (*Session, error)
	Save(ctx context.Context, s *Session) error
	Delete(ctx context.Context, id string) error
}

func newSession(phone string) *Session {
	return &Session{
		ID:        uuid.NewString(),
		Phone:     phone,
		Cart:      cart.New(),
		CreatedAt: time.Now().UTC(),
	}
}

func clone(s *Session) *Session {
	c := *s
	c.Cart = cart.New()
	if s.Cart != nil {
		c.Cart.Lines = append(c.Cart.Lines, s.Cart.Lines...)
	}
	return &c
}
