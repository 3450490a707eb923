package cmd

import (
	"github.com/spf13/cobra"

	"github.com/vemorak/vemorak-go/internal/adapters/render/report"
	"github.com/vemorak/vemorak-go/vmp"
)

func newAdminCmd(app *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "admin",
		Short: "Read-only ledger inspection",
	}

	cmd.AddCommand(
		newAdminEventsCmd(app),
		newAdminBatchesCmd(app),
		newAdminReceiptsCmd(app),
		newAdminStatsCmd(app),
	)

	return cmd
}

func newAdminEventsCmd(app *app) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "events",
		Short: "List ledger events",
		RunE: func(cmd *cobra.Command, _ []string) error {
			conn, err := app.connect(cmd)
			if err != nil {
				return err
			}

			tenant, err := conn.tenant()
			if err != nil {
				return err
			}

			params := vmp.AdminListEventsParams{TenantID: tenant}
			if scope, _ := cmd.Flags().GetString("scope"); scope != "" {
				params.Scope = scope
			}
			if cmd.Flags().Changed("limit") {
				params.Limit = &limit
			}

			events, err := conn.client.AdminListEvents(cmd.Context(), params)
			if err != nil {
				return err
			}

			return printRendered(cmd, events, func() (string, error) {
				return report.Events(events)
			})
		},
	}

	cmd.Flags().String("scope", "", "narrow the listing to one scope")
	cmd.Flags().IntVar(&limit, "limit", 0, "maximum events to return (1..500)")

	return cmd
}

func newAdminBatchesCmd(app *app) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "batches",
		Short: "List committed batches",
		RunE: func(cmd *cobra.Command, _ []string) error {
			conn, err := app.connect(cmd)
			if err != nil {
				return err
			}

			tenant, err := conn.tenant()
			if err != nil {
				return err
			}

			params := vmp.AdminListBatchesParams{TenantID: tenant}
			if cmd.Flags().Changed("limit") {
				params.Limit = &limit
			}

			batches, err := conn.client.AdminListBatches(cmd.Context(), params)
			if err != nil {
				return err
			}

			return printRendered(cmd, batches, func() (string, error) {
				return report.Batches(batches)
			})
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 0, "maximum batches to return")

	return cmd
}

func newAdminReceiptsCmd(app *app) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "receipts",
		Short: "List deletion receipts",
		RunE: func(cmd *cobra.Command, _ []string) error {
			conn, err := app.connect(cmd)
			if err != nil {
				return err
			}

			tenant, err := conn.tenant()
			if err != nil {
				return err
			}

			params := vmp.AdminListDeletionReceiptsParams{TenantID: tenant}
			if scope, _ := cmd.Flags().GetString("scope"); scope != "" {
				params.Scope = scope
			}
			if cmd.Flags().Changed("limit") {
				params.Limit = &limit
			}

			receipts, err := conn.client.AdminListDeletionReceipts(cmd.Context(), params)
			if err != nil {
				return err
			}

			return printRendered(cmd, receipts, func() (string, error) {
				return report.Receipts(receipts)
			})
		},
	}

	cmd.Flags().String("scope", "", "narrow the listing to one scope")
	cmd.Flags().IntVar(&limit, "limit", 0, "maximum receipts to return")

	return cmd
}

func newAdminStatsCmd(app *app) *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show ledger totals for the tenant",
		RunE: func(cmd *cobra.Command, _ []string) error {
			conn, err := app.connect(cmd)
			if err != nil {
				return err
			}

			stats, err := conn.client.AdminStats(cmd.Context())
			if err != nil {
				return err
			}

			return printRendered(cmd, stats, func() (string, error) {
				return report.Stats(stats)
			})
		},
	}
}
