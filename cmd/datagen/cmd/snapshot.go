package cmd

import (
	"fmt"
	"sync"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"sample-dashboard/internal/models"
	"sample-dashboard/internal/services"
)

func newSnapshotCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "snapshot",
		Short: "Generate metrics and transactions for every period",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			dashboard, err := opts.dashboard()
			if err != nil {
				return err
			}

			g, ctx := errgroup.WithContext(cmd.Context())

			var mu sync.Mutex
			out := make(map[models.PeriodFilter]*services.Snapshot, len(models.Periods))
			for _, period := range models.Periods {
				g.Go(func() error {
					snap, err := dashboard.Snapshot(ctx, period)
					if err != nil {
						return fmt.Errorf("snapshot %s: %w", period, err)
					}
					mu.Lock()
					out[period] = snap
					mu.Unlock()
					return nil
				})
			}
			if err := g.Wait(); err != nil {
				return err
			}

			return opts.write(cmd.OutOrStdout(), out)
		},
	}
}
