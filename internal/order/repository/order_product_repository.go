package repository

import (
	"context"
	"database/sql"
	"fmt"

	apperrors "crm/internal/errors"
	"crm/internal/infrastructure/mysql"
)

type MySQLOrderProductRepository struct {
	db *sql.DB
}

func NewMySQLOrderProductRepository(db *sql.DB) *MySQLOrderProductRepository {
	return &MySQLOrderProductRepository{db: db}
}

// InsertAll links the order to each product. A product removed after it was
// resolved surfaces as NotFound.
func (r *MySQLOrderProductRepository) InsertAll(ctx context.Context, tx *sql.Tx, orderID uint, productIDs []uint) error {
	stmt, err := tx.PrepareContext(ctx, `INSERT INTO OrderProducts (orderId, productId) VALUES (?, ?)`)
	if err != nil {
		return fmt.Errorf("preparing order product insert: %w", err)
	}
	defer stmt.Close()

	for _, productID := range productIDs {
		if _, err := stmt.ExecContext(ctx, orderID, productID); err != nil {
			if mysql.IsForeignKeyViolation(err) {
				return apperrors.NewNotFoundError("Some product IDs are invalid", productID)
			}
			return fmt.Errorf("inserting order product: %w", err)
		}
	}

	return nil
}
