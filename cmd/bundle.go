package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/vemorak/vemorak-go/internal/adapters/render/report"
	"github.com/vemorak/vemorak-go/vmp"
)

func newBundleCmd(app *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "bundle",
		Short: "Export self-contained verification bundles",
		Long:  "Bundles package an event or receipt together with its proof and the canonical serializations the server hashed, so a third party can verify them offline. Output is always raw JSON, suitable for archiving.",
	}

	cmd.AddCommand(
		newBundleEventCmd(app),
		newBundleReceiptCmd(app),
	)

	return cmd
}

func newBundleEventCmd(app *app) *cobra.Command {
	return &cobra.Command{
		Use:   "event <event-id>",
		Short: "Export the bundle for one event",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			conn, err := app.connect(cmd)
			if err != nil {
				return err
			}

			bundle, err := conn.client.GetEventBundle(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			return printJSON(cmd, bundle)
		},
	}
}

func newBundleReceiptCmd(app *app) *cobra.Command {
	return &cobra.Command{
		Use:   "receipt <receipt-id>",
		Short: "Export the bundle for one deletion receipt",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			conn, err := app.connect(cmd)
			if err != nil {
				return err
			}

			bundle, err := conn.client.GetDeletionReceiptBundle(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			return printJSON(cmd, bundle)
		},
	}
}

func newVerifyBundleCmd(app *app) *cobra.Command {
	var file string

	cmd := &cobra.Command{
		Use:   "verify-bundle",
		Short: "Verify an exported bundle through the unauthenticated verifier",
		Long:  "verify-bundle reads a bundle JSON file (or stdin with --file -) and submits it to the server's stateless verifier. The bundle carries everything the check requires; the request itself is unauthenticated.",
		RunE: func(cmd *cobra.Command, _ []string) error {
			conn, err := app.connect(cmd)
			if err != nil {
				return err
			}

			data, err := readBundleFile(cmd, file)
			if err != nil {
				return err
			}

			var bundle map[string]any
			if err := json.Unmarshal(data, &bundle); err != nil {
				return fmt.Errorf("decode bundle file: %w", err)
			}

			verdict, err := verifyBundle(cmd, conn, bundle)
			if err != nil {
				return err
			}

			return printRendered(cmd, verdict, func() (string, error) {
				return report.Verdict(verdict)
			})
		},
	}

	cmd.Flags().StringVar(&file, "file", "", "bundle JSON file, or '-' for stdin")
	_ = cmd.MarkFlagRequired("file")

	return cmd
}

func readBundleFile(cmd *cobra.Command, file string) ([]byte, error) {
	if file == "-" {
		return io.ReadAll(cmd.InOrStdin())
	}

	data, err := os.ReadFile(file)
	if err != nil {
		return nil, fmt.Errorf("read bundle file: %w", err)
	}
	return data, nil
}

func verifyBundle(cmd *cobra.Command, conn *connection, bundle map[string]any) (*vmp.VerifyBundleResponse, error) {
	// A receipt bundle nests the delete event bundle; the presence of the
	// receipt object is what distinguishes the two shapes.
	if _, ok := bundle["receipt"]; ok {
		return conn.client.VerifyDeletionBundleOffline(cmd.Context(), bundle)
	}

	return conn.client.VerifyEventBundleOffline(cmd.Context(), bundle)
}
