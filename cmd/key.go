package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vemorak/vemorak-go/internal/domain"
)

func newKeyCmd(app *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "key",
		Short: "Manage stored API keys",
	}

	cmd.AddCommand(
		newKeySetCmd(app),
		newKeyRmCmd(app),
	)

	return cmd
}

func newKeySetCmd(app *app) *cobra.Command {
	var value string

	cmd := &cobra.Command{
		Use:   "set <profile>",
		Short: "Store the API key for a profile",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.service.SetAPIKey(cmd.Context(), domain.ProfileName(args[0]), value); err != nil {
				return err
			}

			_, err := fmt.Fprintf(cmd.OutOrStdout(), "API key stored for profile %q\n", args[0])
			return err
		},
	}

	cmd.Flags().StringVar(&value, "value", "", "the API key secret")
	_ = cmd.MarkFlagRequired("value")

	return cmd
}

func newKeyRmCmd(app *app) *cobra.Command {
	return &cobra.Command{
		Use:   "rm <profile>",
		Short: "Remove the stored API key for a profile",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.service.RemoveAPIKey(cmd.Context(), domain.ProfileName(args[0])); err != nil {
				return err
			}

			_, err := fmt.Fprintf(cmd.OutOrStdout(), "API key removed for profile %q\n", args[0])
			return err
		},
	}
}
