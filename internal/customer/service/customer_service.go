package service

import (
	"context"
	"database/sql"
	"fmt"

	"go.uber.org/zap"

	"crm/internal/domain"
	"crm/internal/dto"
	apperrors "crm/internal/errors"
	"crm/internal/infrastructure/mysql"
	"crm/internal/validation"
)

type Repository interface {
	FindAll(ctx context.Context) ([]domain.Customer, error)
	FindAllEmails(ctx context.Context) ([]string, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	Insert(ctx context.Context, tx *sql.Tx, customer domain.Customer) (uint, error)
	BulkInsert(ctx context.Context, tx *sql.Tx, customers []domain.Customer) ([]domain.Customer, error)
}

type Metrics interface {
	CustomersCreated(n int)
	CustomerRowsRejected(n int)
}

type CustomerService struct {
	db      mysql.TransactionManager
	repo    Repository
	metrics Metrics
	logger  *zap.Logger
}

func NewCustomerService(db mysql.TransactionManager, repo Repository, metrics Metrics, logger *zap.Logger) *CustomerService {
	if metrics == nil {
		metrics = nopMetrics{}
	}
	return &CustomerService{
		db:      db,
		repo:    repo,
		metrics: metrics,
		logger:  logger,
	}
}

func (s *CustomerService) ListCustomers(ctx context.Context) ([]domain.Customer, error) {
	return s.repo.FindAll(ctx)
}

// CreateCustomer validates one customer and persists it. The first failed
// check is returned and nothing is written.
func (s *CustomerService) CreateCustomer(ctx context.Context, in dto.CustomerInput) (*domain.Customer, error) {
	if err := validation.ValidateEmail(in.Email); err != nil {
		return nil, err
	}

	exists, err := s.repo.ExistsByEmail(ctx, in.Email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, apperrors.NewDuplicateKeyError("email", validation.MsgEmailExists)
	}

	if err := validation.ValidatePhone(in.Phone); err != nil {
		return nil, err
	}

	if err := validation.ValidateName(in.Name); err != nil {
		return nil, err
	}

	customer := toCustomer(in)
	err = mysql.WithTx(ctx, s.db, func(tx *sql.Tx) error {
		id, err := s.repo.Insert(ctx, tx, customer)
		if err != nil {
			return err
		}
		customer.ID = id
		return nil
	})
	if err != nil {
		s.logger.Warn("create customer failed", zap.String("email", in.Email), zap.Error(err))
		return nil, err
	}

	s.metrics.CustomersCreated(1)
	s.logger.Info("customer created", zap.Uint("customerId", customer.ID))
	return &customer, nil
}

// BulkCreateCustomers validates every row independently and inserts the
// accepted rows in a single transaction. Row failures are returned as data.
// A non-nil error means the insert itself failed: nothing was persisted, and
// the returned result still carries the row errors.
func (s *CustomerService) BulkCreateCustomers(ctx context.Context, inputs []dto.CustomerInput) (*dto.BulkCreateResult, error) {
	s.logger.Info("bulk create started", zap.Int("rowCount", len(inputs)))

	if len(inputs) == 0 {
		return &dto.BulkCreateResult{
			Status:    dto.BulkAllSuccess,
			Customers: []domain.Customer{},
			Errors:    []string{},
		}, nil
	}

	existing, err := s.repo.FindAllEmails(ctx)
	if err != nil {
		return nil, apperrors.NewInternalError("loading existing emails", err)
	}

	accepted, rowErrors := partitionBatch(inputs, existing)
	s.metrics.CustomerRowsRejected(len(rowErrors))

	result := &dto.BulkCreateResult{
		Status:    bulkStatus(len(accepted), len(rowErrors)),
		Customers: []domain.Customer{},
		Errors:    rowErrors,
	}

	if len(accepted) == 0 {
		s.logger.Warn("bulk create rejected every row", zap.Int("errorCount", len(rowErrors)))
		return result, nil
	}

	var created []domain.Customer
	err = mysql.WithTx(ctx, s.db, func(tx *sql.Tx) error {
		var err error
		created, err = s.repo.BulkInsert(ctx, tx, accepted)
		return err
	})
	if err != nil {
		s.logger.Error("bulk insert rolled back",
			zap.Int("acceptedCount", len(accepted)),
			zap.Int("errorCount", len(rowErrors)),
			zap.Error(err),
		)
		result.Status = dto.BulkAllFailed
		return result, apperrors.NewInternalError("bulk customer insert failed", err)
	}

	result.Customers = created
	s.metrics.CustomersCreated(len(created))
	s.logger.Info("bulk create committed",
		zap.Int("createdCount", len(created)),
		zap.Int("errorCount", len(rowErrors)),
		zap.String("status", string(result.Status)),
	)

	return result, nil
}

// partitionBatch classifies rows in input order. Checks run email format,
// email uniqueness, phone format, then name length. A row's email is checked
// against the pre-batch snapshot and the emails accepted earlier in the same
// batch; rejected rows never claim their email.
func partitionBatch(inputs []dto.CustomerInput, existing []string) ([]domain.Customer, []string) {
	known := make(map[string]struct{}, len(existing))
	for _, email := range existing {
		known[domain.EmailKey(email)] = struct{}{}
	}
	seen := make(map[string]struct{}, len(inputs))

	accepted := make([]domain.Customer, 0, len(inputs))
	rowErrors := []string{}

	for i, in := range inputs {
		row := i + 1

		if err := validation.ValidateEmail(in.Email); err != nil {
			rowErrors = append(rowErrors, rowError(row, "Invalid email format"))
			continue
		}

		key := domain.EmailKey(in.Email)
		_, inStore := known[key]
		_, inBatch := seen[key]
		if inStore || inBatch {
			rowErrors = append(rowErrors, rowError(row, "Email already exists"))
			continue
		}

		if err := validation.ValidatePhone(in.Phone); err != nil {
			rowErrors = append(rowErrors, rowError(row, "Invalid phone format"))
			continue
		}

		if err := validation.ValidateName(in.Name); err != nil {
			rowErrors = append(rowErrors, rowError(row, validation.MsgNameTooLong))
			continue
		}

		seen[key] = struct{}{}
		accepted = append(accepted, toCustomer(in))
	}

	return accepted, rowErrors
}

func rowError(row int, reason string) string {
	return fmt.Sprintf("Row %d: %s", row, reason)
}

func bulkStatus(accepted, rejected int) dto.BulkStatus {
	switch {
	case rejected == 0:
		return dto.BulkAllSuccess
	case accepted == 0:
		return dto.BulkAllFailed
	default:
		return dto.BulkPartial
	}
}

func toCustomer(in dto.CustomerInput) domain.Customer {
	phone := in.Phone
	if phone != nil && *phone == "" {
		phone = nil
	}
	return domain.Customer{Name: in.Name, Email: in.Email, Phone: phone}
}

type nopMetrics struct{}

func (nopMetrics) CustomersCreated(int)     {}
func (nopMetrics) CustomerRowsRejected(int) {}
