package ledger

import (
	"context"

	"golang.org/x/sync/singleflight"
)

type coalesced struct {
	Ledger
	group singleflight.Group
}

// Coalesce shares one in-flight ReadAll between concurrent callers.
func Coalesce(l Ledger) Ledger {
	return &coalesced{Ledger: l}
}

func (c *coalesced) ReadAll(ctx context.Context) ([]Row, error) {
	v, err, _ := c.group.Do("read_all", func() (interface{}, error) {
		return c.Ledger.ReadAll(ctx)
	})
	if err != nil {
		return nil, err
	}

	shared := v.([]Row)
	rows := make([]Row, len(shared))
	for i, r := range shared {
		row := make(Row, len(r))
		for k, cell := range r {
			row[k] = cell
		}
		rows[i] = row
	}
	return rows, nil
}
