package cmd

import (
	"github.com/spf13/cobra"

	"github.com/vemorak/vemorak-go/internal/adapters/render/report"
	"github.com/vemorak/vemorak-go/vmp"
)

func newReceiptCmd(app *app) *cobra.Command {
	var verify bool

	cmd := &cobra.Command{
		Use:   "receipt <receipt-id>",
		Short: "Fetch a deletion receipt",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			conn, err := app.connect(cmd)
			if err != nil {
				return err
			}

			receipt, err := conn.client.GetDeletionReceipt(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			var verdict *vmp.VerifyDeletionResponse
			if verify {
				verdict, err = conn.client.VerifyDeletion(cmd.Context(), args[0])
				if err != nil {
					return err
				}
			}

			return printRendered(cmd, receipt, func() (string, error) {
				return report.Receipt(receipt, verdict)
			})
		},
	}

	cmd.Flags().BoolVar(&verify, "verify", false, "also ask the server to verify the receipt signature")

	return cmd
}

func newVerifyDeletionCmd(app *app) *cobra.Command {
	return &cobra.Command{
		Use:   "verify-deletion <receipt-id>",
		Short: "Ask the server whether a deletion receipt signature is valid",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			conn, err := app.connect(cmd)
			if err != nil {
				return err
			}

			verdict, err := conn.client.VerifyDeletion(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			receipt := &vmp.DeletionReceiptResponse{
				ReceiptID:          verdict.ReceiptID,
				TenantID:           verdict.TenantID,
				Scope:              verdict.Scope,
				DeleteEventID:      verdict.DeleteEventID,
				DeleteEventHashHex: verdict.DeleteEventHashHex,
				PubkeyID:           verdict.PubkeyID,
				PubkeyBase64:       verdict.PubkeyBase64,
				PubkeyHex:          verdict.PubkeyHex,
				CreatedAt:          verdict.CreatedAt,
			}

			return printRendered(cmd, verdict, func() (string, error) {
				return report.Receipt(receipt, verdict)
			})
		},
	}
}
