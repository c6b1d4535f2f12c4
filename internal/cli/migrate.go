package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"crm/internal/infrastructure/migration"
	"crm/internal/infrastructure/mysql"
)

// NewMigrateCommand creates the migrate command with its up and down
// subcommands.
func NewMigrateCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Apply or roll back the database schema",
	}

	cmd.AddCommand(newMigrateStepCommand(rootOpts, "up", "Apply all pending migrations", (*migration.Migrator).Up))
	cmd.AddCommand(newMigrateStepCommand(rootOpts, "down", "Roll back all migrations", (*migration.Migrator).Down))

	return cmd
}

func newMigrateStepCommand(rootOpts *RootOptions, use, short string, step func(*migration.Migrator) error) *cobra.Command {
	return &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := loadRuntime(rootOpts)
			if err != nil {
				return err
			}
			defer rt.close()

			db, err := mysql.NewMigrationConnection(rt.cfg.Database)
			if err != nil {
				return fmt.Errorf("connecting to database: %w", err)
			}

			m, err := migration.New(db, rt.logger.Named("migrate"))
			if err != nil {
				db.Close()
				return err
			}
			defer m.Close()

			return step(m)
		},
	}
}
