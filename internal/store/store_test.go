package store

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/safar/rakhi-store/internal/cart"
	"github.com/safar/rakhi-store/internal/database"
	"github.com/safar/rakhi-store/internal/ledger"
	"github.com/safar/rakhi-store/internal/models"
)

var (
	pearl  = models.Product{ID: "pearl", Title: "Pearl Rakhi", BasePrice: 120, DiscountPercent: 40}
	thread = models.Product{ID: "thread", Title: "Thread Rakhi", BasePrice: 80, DiscountPercent: 20}
)

// flakyLedger fails appends on demand. A failing append may still write a
// prefix of its rows, like a remote store that times out mid-request.
type flakyLedger struct {
	*ledger.Memory

	mu           sync.Mutex
	appendErrs   []error
	writeBefore  int
	readErr      error
	appendCalls  int
	ensureCalled int
}

func newFlakyLedger() *flakyLedger {
	return &flakyLedger{Memory: ledger.NewMemory()}
}

func (f *flakyLedger) EnsureSchema(ctx context.Context, header []string) error {
	f.mu.Lock()
	f.ensureCalled++
	f.mu.Unlock()
	return f.Memory.EnsureSchema(ctx, header)
}

func (f *flakyLedger) AppendRows(ctx context.Context, rows []ledger.Row) error {
	f.mu.Lock()
	f.appendCalls++
	var err error
	if len(f.appendErrs) > 0 {
		err = f.appendErrs[0]
		f.appendErrs = f.appendErrs[1:]
	}
	writeBefore := f.writeBefore
	f.mu.Unlock()

	if err == nil {
		return f.Memory.AppendRows(ctx, rows)
	}
	if writeBefore > len(rows) {
		writeBefore = len(rows)
	}
	if writeBefore > 0 {
		if werr := f.Memory.AppendRows(ctx, rows[:writeBefore]); werr != nil {
			return werr
		}
	}
	return err
}

func (f *flakyLedger) ReadAll(ctx context.Context) ([]ledger.Row, error) {
	f.mu.Lock()
	err := f.readErr
	f.mu.Unlock()
	if err != nil {
		return nil, err
	}
	return f.Memory.ReadAll(ctx)
}

func fastRetries(t *testing.T) {
	t.Helper()
	saved := checkoutRetry
	checkoutRetry = database.RetryOptions{MaxRetries: 3, InitialBackoff: time.Millisecond}
	t.Cleanup(func() { checkoutRetry = saved })
}

func fixedOrderIDs(t *testing.T, ids ...string) {
	t.Helper()
	saved := newOrderID
	next := 0
	newOrderID = func() string {
		id := ids[next%len(ids)]
		next++
		return id
	}
	t.Cleanup(func() { newOrderID = saved })
}

func fixedClock(t *testing.T, ts time.Time) {
	t.Helper()
	saved := now
	now = func() time.Time { return ts }
	t.Cleanup(func() { now = saved })
}

func filledCart(t *testing.T) *cart.Cart {
	t.Helper()
	c := cart.New()
	if err := c.Add(pearl, 2); err != nil {
		t.Fatalf("Add: %v", err)
	}
	if err := c.Add(thread, 1); err != nil {
		t.Fatalf("Add: %v", err)
	}
	return c
}

func checkoutRequest(phone string) CheckoutRequest {
	return CheckoutRequest{
		Phone: phone,
		Customer: models.Customer{
			Name:    "Asha",
			Address: "12 MG Road",
			Pincode: "411001",
		},
	}
}

func dataRows(t *testing.T, l *ledger.Memory) [][]string {
	t.Helper()
	values := l.Values()
	if len(values) == 0 {
		return nil
	}
	return values[1:]
}
