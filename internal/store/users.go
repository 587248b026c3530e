package store

import (
	"context"
	"fmt"

	"github.com/safar/rakhi-store/internal/catalog"
	"github.com/safar/rakhi-store/internal/database"
	"github.com/safar/rakhi-store/internal/ledger"
	"github.com/safar/rakhi-store/internal/session"
)

// Login opens a session for phone. The number is trimmed but not verified.
func Login(ctx context.Context, sessions session.Store, phone string) (*session.Session, error) {
	phone = ledger.NormalizePhone(phone)
	if phone == "" {
		return nil, database.ErrInvalidPhone
	}

	s, err := sessions.Create(ctx, phone)
	if err != nil {
		return nil, fmt.Errorf("create session: %w", err)
	}
	return s, nil
}

func Logout(ctx context.Context, sessions session.Store, id string) error {
	if err := sessions.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	return nil
}

// AddToCart adds quantity of a catalog product to the session's cart and
// saves the session.
func AddToCart(ctx context.Context, sessions session.Store, c *catalog.Catalog, s *session.Session, productID string, quantity int) error {
	p, ok := c.Get(productID)
	if !ok {
		return database.ErrProductNotFound
	}

	if err := s.Cart.Add(p, quantity); err != nil {
		return err
	}

	if err := sessions.Save(ctx, s); err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	return nil
}
