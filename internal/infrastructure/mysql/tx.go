package mysql

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	driver "github.com/go-sql-driver/mysql"
)

const (
	errDuplicateEntry  = 1062
	errOutOfRangeValue = 1264
	errNoReferencedRow = 1452
)

type TransactionManager interface {
	BeginTx(ctx context.Context, opts *sql.TxOptions) (*sql.Tx, error)
}

// WithTx runs fn inside one transaction. The transaction is rolled back on
// every path that does not reach Commit, including a panic in fn.
func WithTx(ctx context.Context, db TransactionManager, fn func(tx *sql.Tx) error) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	// Rollback after a successful Commit is a no-op returning sql.ErrTxDone.
	defer tx.Rollback()

	if err := fn(tx); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}
	return nil
}

func IsDuplicateEntry(err error) bool {
	return hasErrorNumber(err, errDuplicateEntry)
}

// IsOutOfRange reports a value that does not fit its column in strict mode.
func IsOutOfRange(err error) bool {
	return hasErrorNumber(err, errOutOfRangeValue)
}

func IsForeignKeyViolation(err error) bool {
	return hasErrorNumber(err, errNoReferencedRow)
}

func hasErrorNumber(err error, number uint16) bool {
	var mysqlErr *driver.MySQLError
	if errors.As(err, &mysqlErr) {
		return mysqlErr.Number == number
	}
	return false
}
