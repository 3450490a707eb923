package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newPubkeyCmd(app *app) *cobra.Command {
	return &cobra.Command{
		Use:   "pubkey <pubkey-id>",
		Short: "Fetch one of the service's signing public keys",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			conn, err := app.connect(cmd)
			if err != nil {
				return err
			}

			key, err := conn.client.GetPubkey(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			if jsonOutput(cmd) {
				return printJSON(cmd, key)
			}

			_, err = fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\t%s\t%s\n",
				key.PubkeyID, key.Alg, key.Status, key.PubkeyBase64)
			return err
		},
	}
}
