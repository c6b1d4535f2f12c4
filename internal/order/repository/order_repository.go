package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/shopspring/decimal"

	"crm/internal/domain"
	apperrors "crm/internal/errors"
	"crm/internal/infrastructure/mysql"
)

type MySQLOrderRepository struct {
	db *sql.DB
}

func NewMySQLOrderRepository(db *sql.DB) *MySQLOrderRepository {
	return &MySQLOrderRepository{db: db}
}

// FindAll returns every order with its product ids, both ordered by id.
func (r *MySQLOrderRepository) FindAll(ctx context.Context) ([]domain.Order, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, customerId, totalAmount, orderDate FROM Orders ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("querying orders: %w", err)
	}
	defer rows.Close()

	orders := []domain.Order{}
	index := make(map[uint]int)
	for rows.Next() {
		var o domain.Order
		if err := rows.Scan(&o.ID, &o.CustomerID, &o.TotalAmount, &o.OrderDate); err != nil {
			return nil, fmt.Errorf("scanning order row: %w", err)
		}
		index[o.ID] = len(orders)
		orders = append(orders, o)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating order rows: %w", err)
	}

	if len(orders) == 0 {
		return orders, nil
	}

	links, err := r.db.QueryContext(ctx, `SELECT orderId, productId FROM OrderProducts ORDER BY orderId, productId`)
	if err != nil {
		return nil, fmt.Errorf("querying order products: %w", err)
	}
	defer links.Close()

	for links.Next() {
		var orderID, productID uint
		if err := links.Scan(&orderID, &productID); err != nil {
			return nil, fmt.Errorf("scanning order product row: %w", err)
		}
		if i, ok := index[orderID]; ok {
			orders[i].ProductIDs = append(orders[i].ProductIDs, productID)
		}
	}
	if err := links.Err(); err != nil {
		return nil, fmt.Errorf("iterating order product rows: %w", err)
	}

	return orders, nil
}

func (r *MySQLOrderRepository) Insert(ctx context.Context, tx *sql.Tx, order domain.Order) (uint, error) {
	result, err := tx.ExecContext(ctx,
		`INSERT INTO Orders (customerId, totalAmount, orderDate) VALUES (?, ?, ?)`,
		order.CustomerID, order.TotalAmount, order.OrderDate,
	)
	if err != nil {
		if mysql.IsOutOfRange(err) {
			return 0, apperrors.NewOutOfRangeError("totalAmount", "Order total exceeds the maximum amount")
		}
		return 0, fmt.Errorf("inserting order: %w", err)
	}

	lastInsertID, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("getting last insert id: %w", err)
	}

	return uint(lastInsertID), nil
}

func (r *MySQLOrderRepository) Count(ctx context.Context) (int, error) {
	var n int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM Orders`).Scan(&n); err != nil {
		return 0, fmt.Errorf("counting orders: %w", err)
	}
	return n, nil
}

// SumTotal is invalid when there are no orders.
func (r *MySQLOrderRepository) SumTotal(ctx context.Context) (decimal.NullDecimal, error) {
	var total decimal.NullDecimal
	if err := r.db.QueryRowContext(ctx, `SELECT SUM(totalAmount) FROM Orders`).Scan(&total); err != nil {
		return decimal.NullDecimal{}, fmt.Errorf("summing order totals: %w", err)
	}
	return total, nil
}
