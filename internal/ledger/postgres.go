package ledger

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"

	"github.com/safar/rakhi-store/internal/database"
)

// Postgres keeps one ledger per sheet name in the ledger_rows table. The
// lowest id of a sheet holds its header.
type Postgres struct {
	db    *sql.DB
	sheet string
}

func NewPostgres(db *sql.DB, sheet string) *Postgres {
	return &Postgres{db: db, sheet: sheet}
}

func (p *Postgres) EnsureSchema(ctx context.Context, header []string) error {
	err := database.WithTransaction(ctx, p.db, database.DefaultTxOptions(), func(tx *sql.Tx) error {
		if err := p.lock(ctx, tx); err != nil {
			return err
		}

		var exists bool
		err := tx.QueryRowContext(ctx,
			`SELECT EXISTS (SELECT 1 FROM ledger_rows WHERE sheet = $1)`,
			p.sheet,
		).Scan(&exists)
		if err != nil {
			return fmt.Errorf("failed to check header: %w", err)
		}
		if exists {
			return nil
		}

		_, err = tx.ExecContext(ctx,
			`INSERT INTO ledger_rows (sheet, cells) VALUES ($1, $2)`,
			p.sheet, pq.Array(header),
		)
		if err != nil {
			return fmt.Errorf("failed to write header: %w", err)
		}
		return nil
	})
	return classify(err)
}

// AppendRows writes all rows in one transaction, so a failure leaves none of
// them behind.
func (p *Postgres) AppendRows(ctx context.Context, rows []Row) error {
	err := database.WithTransaction(ctx, p.db, database.DefaultTxOptions(), func(tx *sql.Tx) error {
		if err := p.lock(ctx, tx); err != nil {
			return err
		}

		var header []string
		err := tx.QueryRowContext(ctx,
			`SELECT cells FROM ledger_rows WHERE sheet = $1 ORDER BY id LIMIT 1`,
			p.sheet,
		).Scan(pq.Array(&header))
		if errors.Is(err, sql.ErrNoRows) {
			return errNoHeader
		}
		if err != nil {
			return fmt.Errorf("failed to read header: %w", err)
		}

		for _, row := range rows {
			_, err := tx.ExecContext(ctx,
				`INSERT INTO ledger_rows (sheet, cells) VALUES ($1, $2)`,
				p.sheet, pq.Array(cellsFor(header, row)),
			)
			if err != nil {
				return fmt.Errorf("failed to append row: %w", err)
			}
		}
		return nil
	})
	return classify(err)
}

func (p *Postgres) ReadAll(ctx context.Context) ([]Row, error) {
	rows, err := p.db.QueryContext(ctx,
		`SELECT cells FROM ledger_rows WHERE sheet = $1 ORDER BY id`,
		p.sheet,
	)
	if err != nil {
		return nil, classify(fmt.Errorf("failed to query ledger: %w", err))
	}
	defer rows.Close()

	var values [][]string
	for rows.Next() {
		var cells []string
		if err := rows.Scan(pq.Array(&cells)); err != nil {
			return nil, fmt.Errorf("failed to scan ledger row: %w", err)
		}
		values = append(values, cells)
	}
	if err := rows.Err(); err != nil {
		return nil, classify(err)
	}

	return records(values), nil
}

// lock serializes writers of the same sheet until the transaction ends.
func (p *Postgres) lock(ctx context.Context, tx *sql.Tx) error {
	if _, err := tx.ExecContext(ctx, `SELECT pg_advisory_xact_lock(hashtext($1))`, p.sheet); err != nil {
		return fmt.Errorf("failed to lock sheet %s: %w", p.sheet, err)
	}
	return nil
}

func classify(err error) error {
	if err == nil {
		return nil
	}
	if database.IsRetryable(err) {
		return &database.TransientError{Err: err}
	}
	return err
}
