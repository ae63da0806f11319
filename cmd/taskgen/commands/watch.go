package commands

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
)

func watchCmd() *cobra.Command {
	var interval time.Duration
	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Run the generator on an interval until interrupted",
		RunE: func(cmd *cobra.Command, args []string) error {
			if interval <= 0 {
				return errors.New("--interval must be positive")
			}
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			log.Info("task generator watching", "interval", interval.String())
			err := generator.Watch(ctx, interval)
			if errors.Is(err, context.Canceled) {
				log.Info("task generator stopped")
				return nil
			}
			return err
		},
	}
	cmd.Flags().DurationVar(&interval, "interval", 15*time.Minute, "time between runs")
	return cmd
}
