package cli

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"crm/internal/infrastructure/logger"
	"crm/internal/jobs/heartbeat"
	"crm/internal/jobs/report"
	"crm/internal/scheduler"
)

func newHeartbeatJob(rt *runtime) *heartbeat.Job {
	return heartbeat.New(heartbeat.Config{
		GraphQLURL: rt.cfg.Jobs.GraphQLURL,
		LogPath:    rt.cfg.Jobs.HeartbeatLog,
		Timeout:    rt.cfg.Jobs.HeartbeatTimeout,
	}, logger.Named(rt.logger, "jobs.heartbeat"))
}

func newReportJob(a *app) *report.Job {
	return report.New(a.customers.Repository, a.orders.Repository, a.cfg.Jobs.ReportLog, logger.Named(a.logger, "jobs.report"))
}

// scheduleJobs registers both jobs on their configured cron specs.
func scheduleJobs(ctx context.Context, s *scheduler.Scheduler, a *app) error {
	hb := newHeartbeatJob(a.runtime)
	if err := s.Add(ctx, "heartbeat", a.cfg.Jobs.HeartbeatSchedule, hb.Run); err != nil {
		return err
	}

	rp := newReportJob(a)
	return s.Add(ctx, "report", a.cfg.Jobs.ReportSchedule, func(ctx context.Context) error {
		_, err := rp.Run(ctx)
		return err
	})
}

// NewHeartbeatCommand creates the heartbeat command.
func NewHeartbeatCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "heartbeat",
		Short: "Append one liveness line to the heartbeat log",
		Long: `Append one liveness line to the heartbeat log.

The line records whether the GraphQL endpoint answered the hello query. A
failed probe is written to the log and does not fail the command.

Example:
  crm heartbeat
  JOBS_GRAPHQL_URL=http://crm:8000/graphql crm heartbeat`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := loadRuntime(rootOpts)
			if err != nil {
				return err
			}
			defer rt.close()

			return newHeartbeatJob(rt).Run(cmd.Context())
		},
	}
}

// NewReportCommand creates the report command.
func NewReportCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "report",
		Short: "Append customer, order and revenue totals to the report log",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := loadRuntime(rootOpts)
			if err != nil {
				return err
			}

			a, err := newApp(rt)
			if err != nil {
				rt.close()
				return err
			}
			defer a.close()

			line, err := newReportJob(a).Run(cmd.Context())
			if err != nil {
				return fmt.Errorf("generating report: %w", err)
			}

			fmt.Fprintln(cmd.OutOrStdout(), line)
			return nil
		},
	}
}

// NewScheduleCommand creates the schedule command.
func NewScheduleCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "schedule",
		Short: "Run the heartbeat and report jobs on their cron schedules",
		Long: `Run the heartbeat and report jobs on their cron schedules until interrupted.

Schedules use five-field cron syntax and default to every five minutes for the
heartbeat and Mondays at 06:00 for the report.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := loadRuntime(rootOpts)
			if err != nil {
				return err
			}

			a, err := newApp(rt)
			if err != nil {
				rt.close()
				return err
			}
			defer a.close()

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			s := scheduler.New(logger.Named(a.logger, "scheduler"))
			if err := scheduleJobs(ctx, s, a); err != nil {
				return err
			}

			s.Run(ctx)
			return nil
		},
	}
}
