package store

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/safar/rakhi-store/internal/cart"
	"github.com/safar/rakhi-store/internal/database"
	"github.com/safar/rakhi-store/internal/ledger"
	"github.com/safar/rakhi-store/internal/models"
	"github.com/safar/rakhi-store/internal/notify"
)

const maxOrderIDAttempts = 5

var (
	checkoutRetry = database.DefaultRetryOptions()
	newOrderID    = func() string { return uuid.NewString()[:8] }
	now           = time.Now
)

type CheckoutRequest struct {
	Phone    string
	Customer models.Customer
}

// PlaceOrder writes one ledger row per cart line under a fresh order id and
// clears the cart. The cart is left untouched on any failure.
//
// Transient ledger failures are retried. Each attempt re-reads the ledger and
// appends only the lines of this order that are not stored yet, so a partial
// append is completed rather than duplicated.
func PlaceOrder(ctx context.Context, l ledger.Ledger, c *cart.Cart, req CheckoutRequest) (*models.Receipt, error) {
	if c == nil || c.IsEmpty() {
		return nil, database.ErrEmptyCart
	}

	phone := ledger.NormalizePhone(req.Phone)
	if phone == "" {
		return nil, database.ErrInvalidPhone
	}

	customer := models.Customer{
		Name:        strings.TrimSpace(req.Customer.Name),
		Address:     strings.TrimSpace(req.Customer.Address),
		Pincode:     strings.TrimSpace(req.Customer.Pincode),
		ReferenceBy: strings.TrimSpace(req.Customer.ReferenceBy),
	}
	if err := validateCustomer(customer); err != nil {
		return nil, err
	}

	timestamp := now().Format(models.TimestampLayout)

	var (
		orderID string
		lines   []models.OrderLine
	)

	err := database.WithRetry(ctx, checkoutRetry, func(ctx context.Context, attempt int) error {
		rows, err := l.ReadAll(ctx)
		if err != nil {
			return err
		}

		if orderID == "" {
			orderID, err = freshOrderID(rows)
			if err != nil {
				return err
			}
			lines = orderLines(orderID, phone, customer, timestamp, c)
		}

		pending := unstoredLines(rows, orderID, lines)
		if len(pending) == 0 {
			return nil
		}
		if attempt > 0 {
			slog.Warn("resuming partially written order",
				"order_id", orderID,
				"attempt", attempt,
				"pending_lines", len(pending),
			)
		}

		if err := l.EnsureSchema(ctx, ledger.Header); err != nil {
			return err
		}

		out := make([]ledger.Row, 0, len(pending))
		for _, line := range pending {
			out = append(out, ledger.RowFromLine(line))
		}
		return l.AppendRows(ctx, out)
	})
	if err != nil {
		if errors.Is(err, database.ErrOrderIDExhausted) {
			return nil, err
		}
		return nil, &database.PersistenceError{Op: "write", Err: err}
	}

	receipt := &models.Receipt{
		OrderID:   orderID,
		Phone:     phone,
		Customer:  customer,
		Timestamp: timestamp,
		Lines:     lines,
		Total:     c.Total(),
	}
	receipt.Summary = notify.Summary(receipt)

	c.Clear()
	return receipt, nil
}

func validateCustomer(c models.Customer) error {
	switch {
	case c.Name == "":
		return &database.ValidationError{Field: "name", Message: "is required"}
	case c.Address == "":
		return &database.ValidationError{Field: "address", Message: "is required"}
	case c.Pincode == "":
		return &database.ValidationError{Field: "pincode", Message: "is required"}
	}
	return nil
}

func freshOrderID(rows []ledger.Row) (string, error) {
	used := make(map[string]struct{}, len(rows))
	for _, r := range rows {
		used[strings.TrimSpace(r[ledger.ColOrderID])] = struct{}{}
	}

	for i := 0; i < maxOrderIDAttempts; i++ {
		id := newOrderID()
		if _, taken := used[id]; !taken {
			return id, nil
		}
	}
	return "", database.ErrOrderIDExhausted
}

func orderLines(orderID, phone string, customer models.Customer, timestamp string, c *cart.Cart) []models.OrderLine {
	lines := make([]models.OrderLine, 0, len(c.Lines))
	for _, cl := range c.Lines {
		lines = append(lines, models.OrderLine{
			OrderID:     orderID,
			Product:     cl.Title,
			Quantity:    cl.Quantity,
			UnitPrice:   cl.UnitPrice,
			Subtotal:    cl.Subtotal(),
			Name:        customer.Name,
			Phone:       phone,
			Address:     customer.Address,
			Pincode:     customer.Pincode,
			ReferenceBy: customer.ReferenceBy,
			Timestamp:   timestamp,
		})
	}
	return lines
}

// unstoredLines drops lines of orderID that rows already contain, matching
// by product title.
func unstoredLines(rows []ledger.Row, orderID string, lines []models.OrderLine) []models.OrderLine {
	stored := make(map[string]int)
	for _, r := range rows {
		if strings.TrimSpace(r[ledger.ColOrderID]) == orderID {
			stored[strings.TrimSpace(r[ledger.ColProduct])]++
		}
	}
	if len(stored) == 0 {
		return lines
	}

	pending := make([]models.OrderLine, 0, len(lines))
	for _, line := range lines {
		if stored[line.Product] > 0 {
			stored[line.Product]--
			continue
		}
		pending = append(pending, line)
	}
	return pending
}

// OrdersForPhone returns every ledger line placed by phone, in ledger order.
// Rows that match but cannot be parsed are logged and skipped.
func OrdersForPhone(ctx context.Context, l ledger.Ledger, phone string) (*models.OrderHistory, error) {
	phone = ledger.NormalizePhone(phone)
	if phone == "" {
		return nil, database.ErrInvalidPhone
	}

	rows, err := l.ReadAll(ctx)
	if err != nil {
		return nil, &database.PersistenceError{Op: "read", Err: err}
	}

	history := &models.OrderHistory{
		Columns: append([]string(nil), ledger.Header...),
		Lines:   []models.OrderLine{},
	}

	for i, r := range rows {
		if ledger.NormalizePhone(r[ledger.ColPhone]) != phone {
			continue
		}

		line, err := ledger.ParseLine(r)
		if err != nil {
			// data rows start on sheet row 2
			slog.Warn("skipping malformed ledger row", "row", i+2, "error", err)
			continue
		}
		history.Lines = append(history.Lines, line)
	}

	return history, nil
}

// GroupOrders partitions lines by order id. Groups keep the order in which
// each id first appears.
func GroupOrders(lines []models.OrderLine) []models.OrderGroup {
	groups := make([]models.OrderGroup, 0)
	index := make(map[string]int)

	for _, line := range lines {
		i, ok := index[line.OrderID]
		if !ok {
			i = len(groups)
			index[line.OrderID] = i
			groups = append(groups, models.OrderGroup{
				OrderID:     line.OrderID,
				Name:        line.Name,
				Phone:       line.Phone,
				Address:     line.Address,
				Pincode:     line.Pincode,
				ReferenceBy: line.ReferenceBy,
				Timestamp:   line.Timestamp,
			})
		}

		groups[i].Lines = append(groups[i].Lines, line)
		groups[i].Total += line.Subtotal
	}

	return groups
}

type OrderGroupsPage struct {
	OffsetPage
	TotalOrders int `json:"total_orders"`
	TotalItems  int `json:"total_items"`
}

// ListOrderGroups returns one page of phone's orders along with the order
// and line counts across all pages.
func ListOrderGroups(ctx context.Context, l ledger.Ledger, phone string, page, pageSize int) (*OrderGroupsPage, error) {
	history, err := OrdersForPhone(ctx, l, phone)
	if err != nil {
		return nil, err
	}

	groups := GroupOrders(history.Lines)
	return &OrderGroupsPage{
		OffsetPage:  Paginate(groups, page, pageSize),
		TotalOrders: len(groups),
		TotalItems:  len(history.Lines),
	}, nil
}
