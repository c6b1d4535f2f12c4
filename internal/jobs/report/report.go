package report

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"crm/internal/jobs"
)

const timestampLayout = "2006-01-02 15:04:05"

type CustomerCounter interface {
	Count(ctx context.Context) (int, error)
}

type OrderStats interface {
	Count(ctx context.Context) (int, error)
	SumTotal(ctx context.Context) (decimal.NullDecimal, error)
}

// Job appends the customer count, order count and revenue to the report log.
type Job struct {
	customers CustomerCounter
	orders    OrderStats
	logPath   string
	logger    *zap.Logger
	now       func() time.Time
}

func New(customers CustomerCounter, orders OrderStats, logPath string, logger *zap.Logger) *Job {
	return &Job{
		customers: customers,
		orders:    orders,
		logPath:   logPath,
		logger:    logger,
		now:       time.Now,
	}
}

// Run writes one report line and returns it. Any failure is returned to the
// caller and nothing is written.
func (j *Job) Run(ctx context.Context) (string, error) {
	customers, err := j.customers.Count(ctx)
	if err != nil {
		return "", fmt.Errorf("counting customers: %w", err)
	}

	orders, err := j.orders.Count(ctx)
	if err != nil {
		return "", fmt.Errorf("counting orders: %w", err)
	}

	revenue, err := j.orders.SumTotal(ctx)
	if err != nil {
		return "", fmt.Errorf("summing revenue: %w", err)
	}

	line := FormatLine(j.now(), customers, orders, revenue)
	if err := jobs.AppendLine(j.logPath, line); err != nil {
		return "", err
	}

	j.logger.Info("report written",
		zap.Int("customers", customers),
		zap.Int("orders", orders),
		zap.String("path", j.logPath),
	)
	return line, nil
}

// FormatLine stamps the line in UTC and renders revenue as "0" when there are
// no orders.
func FormatLine(at time.Time, customers, orders int, revenue decimal.NullDecimal) string {
	total := "0"
	if revenue.Valid {
		total = revenue.Decimal.StringFixed(2)
	}
	return fmt.Sprintf("%s - Report: %d customers, %d orders, %s revenue",
		at.UTC().Format(timestampLayout), customers, orders, total)
}
