package cli

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"crm/internal/gql"
	"crm/internal/scheduler"
	"crm/internal/server"
)

const shutdownTimeout = 10 * time.Second

// ServeOptions holds flags for the serve command.
type ServeOptions struct {
	*RootOptions
	WithJobs bool
}

// NewServeCommand creates the serve command.
func NewServeCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ServeOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the REST, GraphQL and metrics endpoints",
		Long: `Serve the REST API under /api/v1, GraphQL at /graphql and Prometheus
metrics, shutting down gracefully on SIGINT or SIGTERM.

Example:
  crm serve --config ./config.yaml
  SERVER_PORT=9000 crm serve --with-jobs`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServer(cmd.Context(), opts)
		},
	}

	cmd.Flags().BoolVar(&opts.WithJobs, "with-jobs", false, "also run the heartbeat and report schedules in-process")

	return cmd
}

func runServer(ctx context.Context, opts *ServeOptions) error {
	rt, err := loadRuntime(opts.RootOptions)
	if err != nil {
		return err
	}

	a, err := newApp(rt)
	if err != nil {
		rt.close()
		return err
	}
	defer a.close()

	schema, err := gql.NewSchema(gql.NewResolver(
		a.customers.Service,
		a.products.Service,
		a.orders.Service,
		a.orders.UseCase,
		a.logger.Named("graphql"),
	))
	if err != nil {
		return fmt.Errorf("parsing graphql schema: %w", err)
	}

	router := server.NewRouter(server.RouterConfig{
		Customers:   a.customers.Controller,
		Products:    a.products.Controller,
		Orders:      a.orders.Controller,
		GraphQL:     gql.Handler(schema),
		Metrics:     a.registry,
		MetricsPath: a.cfg.Metrics.Path,
		Logger:      a.logger,
	})

	srv := server.New(a.cfg.Server, router, a.logger)

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if opts.WithJobs {
		jobsCtx, cancelJobs := context.WithCancel(ctx)
		defer cancelJobs()

		s := scheduler.New(a.logger.Named("scheduler"))
		if err := scheduleJobs(jobsCtx, s, a); err != nil {
			return err
		}
		jobsDone := s.Start(jobsCtx)
		// Runs before a.close, so no job outlives the database handle.
		defer func() {
			cancelJobs()
			<-jobsDone
		}()
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Start()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}
	a.logger.Info("received shutdown signal")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	a.logger.Info("server stopped gracefully", zap.Int("port", a.cfg.Server.Port))
	return nil
}
