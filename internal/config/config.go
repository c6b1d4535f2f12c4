package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Log      LogConfig
	Jobs     JobsConfig
	Metrics  MetricsConfig
}

type ServerConfig struct {
	Port         int
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration
}

type DatabaseConfig struct {
	Host            string
	Port            int
	User            string
	Password        string
	Name            string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
}

type LogConfig struct {
	Level string
}

type JobsConfig struct {
	HeartbeatLog      string
	ReportLog         string
	GraphQLURL        string
	HeartbeatTimeout  time.Duration
	HeartbeatSchedule string
	ReportSchedule    string
}

type MetricsConfig struct {
	Enabled bool
	Path    string
}

// Load reads configuration from defaults, an optional YAML file and the
// environment, in increasing order of precedence.
func Load(path string) (*Config, error) {
	v := viper.New()
	v.AutomaticEnv()

	v.SetDefault("SERVER_PORT", 8000)
	v.SetDefault("SERVER_READ_TIMEOUT", "10s")
	v.SetDefault("SERVER_WRITE_TIMEOUT", "10s")
	v.SetDefault("SERVER_IDLE_TIMEOUT", "30s")
	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", 3306)
	v.SetDefault("DB_USER", "crm")
	v.SetDefault("DB_PASSWORD", "secret")
	v.SetDefault("DB_NAME", "crm")
	v.SetDefault("DB_MAX_OPEN_CONNS", 25)
	v.SetDefault("DB_MAX_IDLE_CONNS", 5)
	v.SetDefault("DB_CONN_MAX_LIFETIME", "5m")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("JOBS_HEARTBEAT_LOG", "/tmp/crm_heartbeat_log.txt")
	v.SetDefault("JOBS_REPORT_LOG", "/tmp/crm_report_log.txt")
	v.SetDefault("JOBS_GRAPHQL_URL", "http://localhost:8000/graphql")
	v.SetDefault("JOBS_HEARTBEAT_TIMEOUT", "5s")
	v.SetDefault("JOBS_HEARTBEAT_SCHEDULE", "*/5 * * * *")
	v.SetDefault("JOBS_REPORT_SCHEDULE", "0 6 * * 1")
	v.SetDefault("METRICS_ENABLED", true)
	v.SetDefault("METRICS_PATH", "/metrics")

	if path != "" {
		v.SetConfigFile(path)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
	}

	durations := map[string]time.Duration{}
	for _, key := range []string{
		"SERVER_READ_TIMEOUT",
		"SERVER_WRITE_TIMEOUT",
		"SERVER_IDLE_TIMEOUT",
		"DB_CONN_MAX_LIFETIME",
		"JOBS_HEARTBEAT_TIMEOUT",
	} {
		d, err := time.ParseDuration(v.GetString(key))
		if err != nil {
			return nil, fmt.Errorf("parsing %s: %w", key, err)
		}
		durations[key] = d
	}

	cfg := &Config{
		Server: ServerConfig{
			Port:         v.GetInt("SERVER_PORT"),
			ReadTimeout:  durations["SERVER_READ_TIMEOUT"],
			WriteTimeout: durations["SERVER_WRITE_TIMEOUT"],
			IdleTimeout:  durations["SERVER_IDLE_TIMEOUT"],
		},
		Database: DatabaseConfig{
			Host:            v.GetString("DB_HOST"),
			Port:            v.GetInt("DB_PORT"),
			User:            v.GetString("DB_USER"),
			Password:        v.GetString("DB_PASSWORD"),
			Name:            v.GetString("DB_NAME"),
			MaxOpenConns:    v.GetInt("DB_MAX_OPEN_CONNS"),
			MaxIdleConns:    v.GetInt("DB_MAX_IDLE_CONNS"),
			ConnMaxLifetime: durations["DB_CONN_MAX_LIFETIME"],
		},
		Log: LogConfig{
			Level: v.GetString("LOG_LEVEL"),
		},
		Jobs: JobsConfig{
			HeartbeatLog:      v.GetString("JOBS_HEARTBEAT_LOG"),
			ReportLog:         v.GetString("JOBS_REPORT_LOG"),
			GraphQLURL:        v.GetString("JOBS_GRAPHQL_URL"),
			HeartbeatTimeout:  durations["JOBS_HEARTBEAT_TIMEOUT"],
			HeartbeatSchedule: v.GetString("JOBS_HEARTBEAT_SCHEDULE"),
			ReportSchedule:    v.GetString("JOBS_REPORT_SCHEDULE"),
		},
		Metrics: MetricsConfig{
			Enabled: v.GetBool("METRICS_ENABLED"),
			Path:    v.GetString("METRICS_PATH"),
		},
	}

	return cfg, nil
}
