package repository

import (
	"context"
	"database/sql"
	"fmt"

	"crm/internal/domain"
	apperrors "crm/internal/errors"
	"crm/internal/infrastructure/mysql"
)

const insertCustomerQuery = `INSERT INTO Customers (name, email, phone) VALUES (?, ?, ?)`

type MySQLCustomerRepository struct {
	db *sql.DB
}

func NewMySQLCustomerRepository(db *sql.DB) *MySQLCustomerRepository {
	return &MySQLCustomerRepository{db: db}
}

func (r *MySQLCustomerRepository) FindAll(ctx context.Context) ([]domain.Customer, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, name, email, phone FROM Customers ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("querying customers: %w", err)
	}
	defer rows.Close()

	customers := []domain.Customer{}
	for rows.Next() {
		var c domain.Customer
		if err := rows.Scan(&c.ID, &c.Name, &c.Email, &c.Phone); err != nil {
			return nil, fmt.Errorf("scanning customer row: %w", err)
		}
		customers = append(customers, c)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating customer rows: %w", err)
	}

	return customers, nil
}

func (r *MySQLCustomerRepository) FindByID(ctx context.Context, id uint) (*domain.Customer, error) {
	var c domain.Customer
	err := r.db.QueryRowContext(ctx, `SELECT id, name, email, phone FROM Customers WHERE id = ?`, id).
		Scan(&c.ID, &c.Name, &c.Email, &c.Phone)

	if err == sql.ErrNoRows {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("customer with id %d not found", id))
	}
	if err != nil {
		return nil, fmt.Errorf("querying customer by id: %w", err)
	}

	return &c, nil
}

// FindAllEmails returns every stored email. The batch processor takes this
// snapshot once per batch.
func (r *MySQLCustomerRepository) FindAllEmails(ctx context.Context) ([]string, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT email FROM Customers`)
	if err != nil {
		return nil, fmt.Errorf("querying customer emails: %w", err)
	}
	defer rows.Close()

	var emails []string
	for rows.Next() {
		var email string
		if err := rows.Scan(&email); err != nil {
			return nil, fmt.Errorf("scanning customer email: %w", err)
		}
		emails = append(emails, email)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating customer emails: %w", err)
	}

	return emails, nil
}

func (r *MySQLCustomerRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	var exists bool
	err := r.db.QueryRowContext(ctx, `SELECT EXISTS(SELECT 1 FROM Customers WHERE email = ?)`, email).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("checking customer email: %w", err)
	}
	return exists, nil
}

func (r *MySQLCustomerRepository) Count(ctx context.Context) (int, error) {
	var count int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM Customers`).Scan(&count); err != nil {
		return 0, fmt.Errorf("counting customers: %w", err)
	}
	return count, nil
}

func (r *MySQLCustomerRepository) Insert(ctx context.Context, tx *sql.Tx, customer domain.Customer) (uint, error) {
	result, err := tx.ExecContext(ctx, insertCustomerQuery, customer.Name, customer.Email, customer.Phone)
	if err != nil {
		if mysql.IsDuplicateEntry(err) {
			return 0, apperrors.NewDuplicateKeyError("email", "Email already exists")
		}
		return 0, fmt.Errorf("inserting customer: %w", err)
	}

	lastInsertID, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("getting last insert id: %w", err)
	}

	return uint(lastInsertID), nil
}

// BulkInsert writes all customers through one prepared statement inside tx
// and returns them with their assigned ids. Any failure leaves the caller to
// roll tx back.
func (r *MySQLCustomerRepository) BulkInsert(ctx context.Context, tx *sql.Tx, customers []domain.Customer) ([]domain.Customer, error) {
	stmt, err := tx.PrepareContext(ctx, insertCustomerQuery)
	if err != nil {
		return nil, fmt.Errorf("preparing customer insert: %w", err)
	}
	defer stmt.Close()

	created := make([]domain.Customer, 0, len(customers))
	for _, c := range customers {
		result, err := stmt.ExecContext(ctx, c.Name, c.Email, c.Phone)
		if err != nil {
			return nil, fmt.Errorf("inserting customer %q: %w", c.Email, err)
		}

		lastInsertID, err := result.LastInsertId()
		if err != nil {
			return nil, fmt.Errorf("getting last insert id: %w", err)
		}

		c.ID = uint(lastInsertID)
		created = append(created, c)
	}

	return created, nil
}
