package cmd

import "github.com/spf13/cobra"

func Execute() error {
	return newRootCmd().Execute()
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "vmpctl",
		Short:         "Verifiable Memory Protocol CLI: write, delete and prove memory events",
		Long:          "vmpctl talks to a Verifiable Memory Protocol service. It manages connection profiles and API keys, appends write and delete events, fetches Merkle inclusion proofs and deletion receipts, and exports offline-verifiable bundles.",
		SilenceUsage:  true,
		SilenceErrors: false,
	}

	rootCmd.PersistentFlags().String("profile", "", "connection profile name (env: VMP_PROFILE)")
	rootCmd.PersistentFlags().Bool("json", false, "print raw JSON responses")

	app, err := wireApp()
	if err != nil {
		rootCmd.RunE = func(_ *cobra.Command, _ []string) error {
			return err
		}
		return rootCmd
	}

	rootCmd.AddCommand(
		newVersionCmd(),
		newProfileCmd(app),
		newKeyCmd(app),
		newWhoAmICmd(app),
		newWriteCmd(app),
		newDeleteCmd(app),
		newRememberCmd(app),
		newForgetCmd(app),
		newRecallCmd(app),
		newProofCmd(app),
		newWaitCmd(app),
		newReceiptCmd(app),
		newVerifyDeletionCmd(app),
		newBundleCmd(app),
		newVerifyBundleCmd(app),
		newAdminCmd(app),
		newPubkeyCmd(app),
	)

	return rootCmd
}
