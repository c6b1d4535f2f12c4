package heartbeat

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"go.uber.org/zap"

	"crm/internal/jobs"
)

const (
	timestampLayout = "02/01/2006-15:04:05"
	helloQuery      = `{"query":"{ hello }"}`
	noResponse      = "No response"
	defaultTimeout  = 5 * time.Second
)

type Config struct {
	GraphQLURL string
	LogPath    string
	Timeout    time.Duration
}

// Job records that the process is alive and whether the GraphQL endpoint
// answers. A failing probe is written to the log line, never returned.
type Job struct {
	cfg    Config
	client *http.Client
	logger *zap.Logger
	now    func() time.Time
}

func New(cfg Config, logger *zap.Logger) *Job {
	if cfg.Timeout <= 0 {
		cfg.Timeout = defaultTimeout
	}
	return &Job{
		cfg:    cfg,
		client: &http.Client{Timeout: cfg.Timeout},
		logger: logger,
		now:    time.Now,
	}
}

// Run appends one heartbeat line. The only error it returns is a failure to
// write the log file.
func (j *Job) Run(ctx context.Context) error {
	line := j.now().Format(timestampLayout) + " CRM is alive"

	hello, err := j.probe(ctx)
	if err != nil {
		j.logger.Warn("graphql probe failed", zap.String("url", j.cfg.GraphQLURL), zap.Error(err))
		line += " | GraphQL error: " + err.Error()
	} else {
		line += " | GraphQL hello: " + hello
	}

	if err := jobs.AppendLine(j.cfg.LogPath, line); err != nil {
		j.logger.Error("writing heartbeat failed", zap.String("path", j.cfg.LogPath), zap.Error(err))
		return err
	}

	j.logger.Info(line)
	return nil
}

type helloResponse struct {
	Data *struct {
		Hello *string `json:"hello"`
	} `json:"data"`
	Errors []struct {
		Message string `json:"message"`
	} `json:"errors"`
}

func (j *Job) probe(ctx context.Context) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, j.cfg.Timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, j.cfg.GraphQLURL, bytes.NewBufferString(helloQuery))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := j.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	var body helloResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return "", fmt.Errorf("decoding response: %w", err)
	}

	if len(body.Errors) > 0 {
		return "", fmt.Errorf("%s", body.Errors[0].Message)
	}
	if body.Data == nil || body.Data.Hello == nil {
		return noResponse, nil
	}
	return *body.Data.Hello, nil
}
