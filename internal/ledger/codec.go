package ledger

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/safar/rakhi-store/internal/database"
	"github.com/safar/rakhi-store/internal/models"
)

func RowFromLine(l models.OrderLine) Row {
	return Row{
		ColOrderID:     l.OrderID,
		ColProduct:     l.Product,
		ColQuantity:    strconv.Itoa(l.Quantity),
		ColUnitPrice:   strconv.FormatInt(l.UnitPrice, 10),
		ColSubtotal:    strconv.FormatInt(l.Subtotal, 10),
		ColName:        l.Name,
		ColPhone:       l.Phone,
		ColAddress:     l.Address,
		ColPincode:     l.Pincode,
		ColReferenceBy: l.ReferenceBy,
		ColTimestamp:   l.Timestamp,
	}
}

// NormalizePhone is the identity key comparison used for ledger lookups.
func NormalizePhone(phone string) string {
	return strings.TrimSpace(phone)
}

// ParseLine validates a ledger row and converts it to an OrderLine. Every
// column of Header must be present; Reference By may be blank.
func ParseLine(r Row) (models.OrderLine, error) {
	var line models.OrderLine

	for _, col := range Header {
		if _, ok := r[col]; !ok {
			return line, fmt.Errorf("%w: missing column %q", database.ErrMalformedRow, col)
		}
	}

	cell := func(col string) string { return strings.TrimSpace(r[col]) }

	for _, col := range []string{ColOrderID, ColProduct, ColPhone} {
		if cell(col) == "" {
			return line, fmt.Errorf("%w: empty %q", database.ErrMalformedRow, col)
		}
	}

	quantity, err := parseNumber(cell(ColQuantity))
	if err != nil || quantity < 1 {
		return line, fmt.Errorf("%w: bad %q value %q", database.ErrMalformedRow, ColQuantity, r[ColQuantity])
	}
	unitPrice, err := parseNumber(cell(ColUnitPrice))
	if err != nil || unitPrice < 0 {
		return line, fmt.Errorf("%w: bad %q value %q", database.ErrMalformedRow, ColUnitPrice, r[ColUnitPrice])
	}
	subtotal, err := parseNumber(cell(ColSubtotal))
	if err != nil || subtotal < 0 {
		return line, fmt.Errorf("%w: bad %q value %q", database.ErrMalformedRow, ColSubtotal, r[ColSubtotal])
	}

	return models.OrderLine{
		OrderID:     cell(ColOrderID),
		Product:     cell(ColProduct),
		Quantity:    int(quantity),
		UnitPrice:   unitPrice,
		Subtotal:    subtotal,
		Name:        cell(ColName),
		Phone:       NormalizePhone(r[ColPhone]),
		Address:     cell(ColAddress),
		Pincode:     cell(ColPincode),
		ReferenceBy: cell(ColReferenceBy),
		Timestamp:   cell(ColTimestamp),
	}, nil
}

// parseNumber accepts whole numbers, including the "72.0" and "1,200" forms a
// spreadsheet may hand back for numeric cells.
func parseNumber(s string) (int64, error) {
	s = strings.ReplaceAll(s, ",", "")
	if n, err := strconv.ParseInt(s, 10, 64); err == nil {
		return n, nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, err
	}
	if f != float64(int64(f)) {
		return 0, fmt.Errorf("not a whole number: %s", s)
	}
	return int64(f), nil
}
