package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vemorak/vemorak-go/internal/domain"
)

func newProfileCmd(app *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "profile",
		Short: "Manage connection profiles",
	}

	cmd.AddCommand(
		newProfileSetCmd(app),
		newProfileListCmd(app),
		newProfileRmCmd(app),
	)

	return cmd
}

func newProfileSetCmd(app *app) *cobra.Command {
	var (
		baseURL      string
		tenantID     string
		scopePrefix  string
		defaultScope string
		meta         map[string]string
	)

	cmd := &cobra.Command{
		Use:   "set <name>",
		Short: "Create or update a connection profile",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			profile := domain.Profile{
				Name:         domain.ProfileName(args[0]),
				BaseURL:      baseURL,
				TenantID:     tenantID,
				ScopePrefix:  scopePrefix,
				DefaultScope: defaultScope,
				DefaultMeta:  meta,
			}

			if err := app.service.SaveProfile(cmd.Context(), profile); err != nil {
				return err
			}

			_, err := fmt.Fprintf(cmd.OutOrStdout(), "profile %q saved\n", args[0])
			return err
		},
	}

	cmd.Flags().StringVar(&baseURL, "base-url", "", "VMP service base URL")
	cmd.Flags().StringVar(&tenantID, "tenant", "", "tenant id requests are made for")
	cmd.Flags().StringVar(&scopePrefix, "scope-prefix", "", "restrict request scopes to this prefix (must end with ':')")
	cmd.Flags().StringVar(&defaultScope, "default-scope", "", "scope used when a command has no --scope")
	cmd.Flags().StringToStringVar(&meta, "meta", nil, "default meta stamped on demo writes (key=value)")
	_ = cmd.MarkFlagRequired("base-url")
	_ = cmd.MarkFlagRequired("tenant")

	return cmd
}

func newProfileListCmd(app *app) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List configured profiles",
		RunE: func(cmd *cobra.Command, _ []string) error {
			profiles, err := app.service.ListProfiles(cmd.Context())
			if err != nil {
				return err
			}

			if jsonOutput(cmd) {
				return printJSON(cmd, profiles)
			}

			for _, profile := range profiles {
				key := "no key"
				if profile.HasAPIKey() {
					key = "key stored"
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\t%s\t%s\n",
					profile.Name, profile.BaseURL, profile.TenantID, key)
			}

			return nil
		},
	}
}

func newProfileRmCmd(app *app) *cobra.Command {
	return &cobra.Command{
		Use:   "rm <name>",
		Short: "Remove a profile and its stored API key",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.service.RemoveProfile(cmd.Context(), domain.ProfileName(args[0])); err != nil {
				return err
			}

			_, err := fmt.Fprintf(cmd.OutOrStdout(), "profile %q removed\n", args[0])
			return err
		},
	}
}
