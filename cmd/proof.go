package cmd

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/vemorak/vemorak-go/internal/adapters/render/report"
	"github.com/vemorak/vemorak-go/vmp"
)

func newProofCmd(app *app) *cobra.Command {
	return &cobra.Command{
		Use:   "proof <event-id>",
		Short: "Fetch the Merkle inclusion proof for an event",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			conn, err := app.connect(cmd)
			if err != nil {
				return err
			}

			proof, err := conn.client.GetProof(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			return printRendered(cmd, proof, func() (string, error) {
				return report.Proof(proof)
			})
		},
	}
}

func newWaitCmd(app *app) *cobra.Command {
	var (
		timeout  time.Duration
		interval time.Duration
	)

	cmd := &cobra.Command{
		Use:   "wait <event-id>",
		Short: "Poll until an event is committed to a batch, then print its proof",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			conn, err := app.connect(cmd)
			if err != nil {
				return err
			}

			opts := &vmp.WaitForBatchOptions{
				Timeout:      timeout,
				PollInterval: interval,
			}

			var proof *vmp.ProofResponse
			err = runWaitSpinner(cmd, "Waiting for batch inclusion...", func() error {
				var waitErr error
				proof, waitErr = conn.client.WaitForBatch(cmd.Context(), args[0], opts)
				return waitErr
			})
			if err != nil {
				return err
			}

			return printRendered(cmd, proof, func() (string, error) {
				return report.Proof(proof)
			})
		},
	}

	cmd.Flags().DurationVar(&timeout, "timeout", 0, "overall poll budget (default 30s)")
	cmd.Flags().DurationVar(&interval, "interval", 0, "delay between proof fetches (default 800ms)")

	return cmd
}
