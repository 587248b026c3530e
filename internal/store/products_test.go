package store

import (
	"context"
	"errors"
	"math"
	"testing"
	"time"

	"github.com/safar/rakhi-store/internal/catalog"
	"github.com/safar/rakhi-store/internal/database"
	"github.com/safar/rakhi-store/internal/session"
)

func TestPaginate(t *testing.T) {
	items := []int{1, 2, 3, 4, 5}

	tests := []struct {
		name       string
		page, size int
		want       []int
		totalPages int
	}{
		{"first page", 1, 2, []int{1, 2}, 3},
		{"last partial page", 3, 2, []int{5}, 3},
		{"past the end", 9, 2, []int{}, 3},
		{"page below one", 0, 5, []int{1, 2, 3, 4, 5}, 1},
		{"huge page", math.MaxInt64 / 50, 100, []int{}, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := Paginate(items, tt.page, tt.size)
			got := p.Items.([]int)
			if len(got) != len(tt.want) {
				t.Fatalf("Expected %v, got %v", tt.want, got)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("Expected %v, got %v", tt.want, got)
				}
			}
			if p.TotalPages != tt.totalPages {
				t.Errorf("Expected %d pages, got %d", tt.totalPages, p.TotalPages)
			}
			if p.Total != 5 {
				t.Errorf("Expected total 5, got %d", p.Total)
			}
		})
	}
}

func TestNormalizePage(t *testing.T) {
	if page, size := NormalizePage(-1, 0); page != 1 || size != DefaultPageSize {
		t.Errorf("Expected defaults, got %d/%d", page, size)
	}
	if _, size := NormalizePage(1, 1000); size != MaxPageSize {
		t.Errorf("Expected page size capped at %d, got %d", MaxPageSize, size)
	}
}

func TestListProducts(t *testing.T) {
	c := catalog.New(pearl, thread)

	page := ListProducts(c, 1, 10)
	views := page.Items.([]ProductView)
	if len(views) != 2 {
		t.Fatalf("Expected 2 products, got %d", len(views))
	}
	if views[0].ID != "pearl" {
		t.Errorf("Highest discount should list first, got %s", views[0].ID)
	}
	if views[0].EffectivePrice != 72 || views[1].EffectivePrice != 64 {
		t.Errorf("Unexpected effective prices %d, %d", views[0].EffectivePrice, views[1].EffectivePrice)
	}
}

func TestGetProduct(t *testing.T) {
	c := catalog.New(pearl)

	if _, err := GetProduct(c, "missing"); !errors.Is(err, database.ErrProductNotFound) {
		t.Errorf("Expected ErrProductNotFound, got %v", err)
	}
	v, err := GetProduct(c, "pearl")
	if err != nil {
		t.Fatalf("GetProduct: %v", err)
	}
	if v.EffectivePrice != 72 {
		t.Errorf("Expected 72, got %d", v.EffectivePrice)
	}
}

func TestLoginLogout(t *testing.T) {
	ctx := context.Background()
	sessions := session.NewMemoryStore(time.Hour)

	if _, err := Login(ctx, sessions, "   "); !errors.Is(err, database.ErrInvalidPhone) {
		t.Fatalf("Expected ErrInvalidPhone, got %v", err)
	}

	s, err := Login(ctx, sessions, " 9876543210 ")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if s.Phone != "9876543210" {
		t.Errorf("Expected trimmed phone, got %q", s.Phone)
	}

	if err := Logout(ctx, sessions, s.ID); err != nil {
		t.Fatalf("Logout: %v", err)
	}
	if _, err := sessions.Get(ctx, s.ID); !errors.Is(err, database.ErrSessionNotFound) {
		t.Errorf("Session should be gone after logout, got %v", err)
	}
}

func TestAddToCart(t *testing.T) {
	ctx := context.Background()
	sessions := session.NewMemoryStore(time.Hour)
	c := catalog.New(pearl, thread)

	s, err := Login(ctx, sessions, "9876543210")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}

	if err := AddToCart(ctx, sessions, c, s, "missing", 1); !errors.Is(err, database.ErrProductNotFound) {
		t.Errorf("Expected ErrProductNotFound, got %v", err)
	}
	if err := AddToCart(ctx, sessions, c, s, "pearl", 0); !errors.Is(err, database.ErrInvalidQuantity) {
		t.Errorf("Expected ErrInvalidQuantity, got %v", err)
	}
	if err := AddToCart(ctx, sessions, c, s, "pearl", 3); err != nil {
		t.Fatalf("AddToCart: %v", err)
	}

	stored, err := sessions.Get(ctx, s.ID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	line, ok := stored.Cart.Line("pearl")
	if !ok || line.Quantity != 3 {
		t.Errorf("Expected 3 pearls in the saved cart, got %+v", stored.Cart.Lines)
	}
}
