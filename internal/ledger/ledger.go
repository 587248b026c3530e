// Package ledger stores checked-out order lines in an append-only table whose
// first row is a header. Backends are a Google Sheets worksheet, a Postgres
// table and an in-process table.
package ledger

import (
	"context"
	"errors"
)

const (
	ColOrderID     = "Order ID"
	ColProduct     = "Product"
	ColQuantity    = "Quantity"
	ColUnitPrice   = "Unit Price"
	ColSubtotal    = "Subtotal"
	ColName        = "Name"
	ColPhone       = "Phone"
	ColAddress     = "Address"
	ColPincode     = "Pincode"
	ColReferenceBy = "Reference By"
	ColTimestamp   = "Timestamp"
)

// Header is the column layout written to an empty ledger.
var Header = []string{
	ColOrderID,
	ColProduct,
	ColQuantity,
	ColUnitPrice,
	ColSubtotal,
	ColName,
	ColPhone,
	ColAddress,
	ColPincode,
	ColReferenceBy,
	ColTimestamp,
}

var errNoHeader = errors.New("ledger has no header row")

// Row maps column name to cell text.
type Row map[string]string

type Ledger interface {
	// EnsureSchema writes header as the first row when the ledger is empty.
	EnsureSchema(ctx context.Context, header []string) error
	// AppendRows appends one row per item, cells ordered by the stored header.
	// A failure may leave a prefix of rows written.
	AppendRows(ctx context.Context, rows []Row) error
	// ReadAll returns every data row keyed by the stored header.
	ReadAll(ctx context.Context) ([]Row, error)
}

func cellsFor(header []string, row Row) []string {
	cells := make([]string, len(header))
	for i, col := range header {
		cells[i] = row[col]
	}
	return cells
}

// records turns a raw table into rows keyed by its first row. Short rows are
// padded with empty cells; cells past the header are dropped.
func records(values [][]string) []Row {
	if len(values) == 0 {
		return []Row{}
	}

	header := values[0]
	rows := make([]Row, 0, len(values)-1)
	for _, cells := range values[1:] {
		row := make(Row, len(header))
		for i, col := range header {
			if i < len(cells) {
				row[col] = cells[i]
			} else {
				row[col] = ""
			}
		}
		rows = append(rows, row)
	}
	return rows
}
