package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"sample-dashboard/internal/handlers"
	"sample-dashboard/internal/models"
	"sample-dashboard/internal/services"
)

type options struct {
	period string
	now    string
	pretty bool
}

// NewRootCmd builds the datagen command tree.
func NewRootCmd() *cobra.Command {
	opts := &options{}

	rootCmd := &cobra.Command{
		Use:   "datagen",
		Short: "Generate dashboard fixtures",
		Long: `Datagen writes the same JSON the dashboard API serves to stdout.
Passing --now pins the reference instant so the output is reproducible.

Examples:
  datagen metrics --period 7d --now 2024-01-15T12:00:00Z
  datagen transactions --period 90d --status refunded --pretty
  datagen snapshot --now 2024-01-15T12:00:00Z`,
		Version:      handlers.Version,
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().StringVar(&opts.period, "period", string(models.DefaultPeriod), "period code: 7d, 30d or 90d")
	rootCmd.PersistentFlags().StringVar(&opts.now, "now", "", "reference instant in RFC 3339 (default: current time)")
	rootCmd.PersistentFlags().BoolVar(&opts.pretty, "pretty", false, "indent JSON output")

	rootCmd.AddCommand(
		newMetricsCmd(opts),
		newTransactionsCmd(opts),
		newSummaryCmd(opts),
		newSnapshotCmd(opts),
	)
	return rootCmd
}

// dashboard returns a dashboard pinned to --now when given.
func (o *options) dashboard() (*services.Dashboard, error) {
	if o.now == "" {
		return services.NewDashboard(services.SystemClock), nil
	}
	now, err := time.Parse(time.RFC3339Nano, o.now)
	if err != nil {
		return nil, fmt.Errorf("invalid --now %q: %w", o.now, err)
	}
	return services.NewDashboard(func() time.Time { return now }), nil
}

// parsePeriod is strict, unlike the HTTP endpoints.
func (o *options) parsePeriod() (models.PeriodFilter, error) {
	period, ok := models.ParsePeriod(o.period)
	if !ok {
		return "", fmt.Errorf("invalid --period %q, must be one of 7d, 30d, 90d", o.period)
	}
	return period, nil
}

func (o *options) write(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	if o.pretty {
		enc.SetIndent("", "  ")
	}
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("encode output: %w", err)
	}
	return nil
}

// periodCommand wires a subcommand that renders one response for --period.
func periodCommand(opts *options, use, short string, build func(*services.Dashboard, models.PeriodFilter) (any, error)) *cobra.Command {
	return &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			period, err := opts.parsePeriod()
			if err != nil {
				return err
			}
			dashboard, err := opts.dashboard()
			if err != nil {
				return err
			}
			out, err := build(dashboard, period)
			if err != nil {
				return err
			}
			return opts.write(cmd.OutOrStdout(), out)
		},
	}
}

func newMetricsCmd(opts *options) *cobra.Command {
	return periodCommand(opts, "metrics", "Generate KPI metrics and the chart series",
		func(d *services.Dashboard, p models.PeriodFilter) (any, error) {
			return d.Metrics(p), nil
		})
}

func newTransactionsCmd(opts *options) *cobra.Command {
	var status string

	cmd := periodCommand(opts, "transactions", "Generate recent transactions, newest first",
		func(d *services.Dashboard, p models.PeriodFilter) (any, error) {
			if status != "" && status != services.StatusAll {
				if _, ok := models.ParseStatus(status); !ok {
					return nil, fmt.Errorf("invalid --status %q", status)
				}
			}
			resp := d.Transactions(p)
			filtered := services.FilterByStatus(resp.Transactions, status)
			return models.TransactionsResponse{Transactions: filtered, Total: len(filtered)}, nil
		})
	cmd.Flags().StringVar(&status, "status", services.StatusAll, "keep only transactions with this status")
	return cmd
}

func newSummaryCmd(opts *options) *cobra.Command {
	return periodCommand(opts, "summary", "Generate series and transaction summaries",
		func(d *services.Dashboard, p models.PeriodFilter) (any, error) {
			return d.Summary(p), nil
		})
}
