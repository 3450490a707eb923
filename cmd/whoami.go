package cmd

import (
	"github.com/spf13/cobra"

	"github.com/vemorak/vemorak-go/internal/adapters/render/report"
)

func newWhoAmICmd(app *app) *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the tenant and key the configured credentials resolve to",
		RunE: func(cmd *cobra.Command, _ []string) error {
			conn, err := app.connect(cmd)
			if err != nil {
				return err
			}

			identity, err := conn.client.WhoAmI(cmd.Context())
			if err != nil {
				return err
			}

			return printRendered(cmd, identity, func() (string, error) {
				return report.WhoAmI(identity)
			})
		},
	}
}
