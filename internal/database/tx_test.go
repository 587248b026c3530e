package database

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"
)

func fastRetry() RetryOptions {
	return RetryOptions{MaxRetries: 3, InitialBackoff: time.Millisecond}
}

func TestWithRetryRecoversFromTransientErrors(t *testing.T) {
	calls := 0
	err := WithRetry(context.Background(), fastRetry(), func(ctx context.Context, attempt int) error {
		if attempt != calls {
			t.Errorf("Expected attempt %d, got %d", calls, attempt)
		}
		calls++
		if calls < 3 {
			return &TransientError{Err: errors.New("unavailable")}
		}
		return nil
	})
	if err != nil {
		t.Fatalf("WithRetry: %v", err)
	}
	if calls != 3 {
		t.Errorf("Expected 3 calls, got %d", calls)
	}
}

func TestWithRetryStopsOnPermanentError(t *testing.T) {
	permanent := errors.New("forbidden")
	calls := 0
	err := WithRetry(context.Background(), fastRetry(), func(ctx context.Context, attempt int) error {
		calls++
		return permanent
	})
	if !errors.Is(err, permanent) {
		t.Fatalf("Expected permanent error, got: %v", err)
	}
	if calls != 1 {
		t.Errorf("Permanent error should not be retried, got %d calls", calls)
	}
}

func TestWithRetryGivesUp(t *testing.T) {
	calls := 0
	err := WithRetry(context.Background(), fastRetry(), func(ctx context.Context, attempt int) error {
		calls++
		return &TransientError{Err: errors.New("unavailable")}
	})
	if err == nil {
		t.Fatal("Expected error after exhausting retries")
	}
	if calls != 4 {
		t.Errorf("Expected 1 attempt + 3 retries, got %d calls", calls)
	}
}

func TestWithRetryHonoursCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := WithRetry(ctx, fastRetry(), func(ctx context.Context, attempt int) error {
		t.Error("fn should not run on a cancelled context")
		return nil
	})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("Expected context.Canceled, got: %v", err)
	}
}

func TestWithTransactionCommitAndRollback(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectCommit()
	require.NoError(t, WithTransaction(context.Background(), db, DefaultTxOptions(), func(tx *sql.Tx) error {
		return nil
	}))

	failure := errors.New("append failed")
	mock.ExpectBegin()
	mock.ExpectRollback()
	err = WithTransaction(context.Background(), db, DefaultTxOptions(), func(tx *sql.Tx) error {
		return failure
	})
	require.ErrorIs(t, err, failure)
	require.NoError(t, mock.ExpectationsWereMet())
}
