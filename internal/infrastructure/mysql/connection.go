package mysql

import (
	"database/sql"
	"fmt"

	driver "github.com/go-sql-driver/mysql"

	"crm/internal/config"
)

// DSN builds the driver connection string. multiStatements is only needed
// by the migration runner.
func DSN(cfg config.DatabaseConfig, multiStatements bool) string {
	dc := driver.NewConfig()
	dc.User = cfg.User
	dc.Passwd = cfg.Password
	dc.Net = "tcp"
	dc.Addr = fmt.Sprintf("%s:%d", cfg.Host, cfg.Port)
	dc.DBName = cfg.Name
	dc.ParseTime = true
	dc.MultiStatements = multiStatements
	return dc.FormatDSN()
}

func NewConnection(cfg config.DatabaseConfig) (*sql.DB, error) {
	return open(DSN(cfg, false), cfg)
}

// NewMigrationConnection opens a connection that accepts multi-statement
// migration files.
func NewMigrationConnection(cfg config.DatabaseConfig) (*sql.DB, error) {
	return open(DSN(cfg, true), cfg)
}

func open(dsn string, cfg config.DatabaseConfig) (*sql.DB, error) {
	db, err := sql.Open("mysql", dsn)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	db.SetMaxOpenConns(cfg.MaxOpenConns)
	db.SetMaxIdleConns(cfg.MaxIdleConns)
	db.SetConnMaxLifetime(cfg.ConnMaxLifetime)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("pinging database: %w", err)
	}

	return db, nil
}
