package commands

import (
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/spf13/cobra"

	"storefront/internal/app"
	"storefront/internal/config"
	"storefront/internal/logger"
	"storefront/internal/tasks"
)

var (
	db        *pgxpool.Pool
	generator *tasks.Generator
	log       logger.Logger
)

func Execute() error {
	root := &cobra.Command{
		Use:          "taskgen",
		Short:        "Generate admin follow-up tasks",
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadJobs()
			if err != nil {
				return err
			}
			log, err = logger.New(cfg.Log)
			if err != nil {
				return err
			}
			db, err = app.NewPostgres(cfg.PG)
			if err != nil {
				return err
			}
			generator = app.NewTaskGenerator(cfg.Tasks, log, db)
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if db != nil {
				db.Close()
			}
		},
	}

	root.AddCommand(runCmd(), watchCmd())
	return root.Execute()
}
