package cmd

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/vemorak/vemorak-go/internal/adapters/render/report"
	"github.com/vemorak/vemorak-go/internal/intent"
	"github.com/vemorak/vemorak-go/vmp"
)

const recallListLimit = 20

func newRememberCmd(app *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "remember <text>...",
		Short: "Turn a natural sentence into a memory write event",
		Long:  "remember runs the deterministic intent extractor over the given text and appends the resulting memory write. Try: vmpctl remember \"Remember that I prefer technical explanations\".",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			conn, err := app.connect(cmd)
			if err != nil {
				return err
			}

			tenant, err := conn.tenant()
			if err != nil {
				return err
			}
			scope, err := conn.scope(cmd)
			if err != nil {
				return err
			}

			extracted := intent.Extract(strings.Join(args, " "), scope)
			if extracted.Kind != intent.KindWrite {
				_, err := fmt.Fprintln(cmd.OutOrStdout(), intent.UnknownHint)
				return err
			}

			event, err := conn.client.WriteMemory(cmd.Context(), vmp.WriteMemoryParams{
				TenantID:       tenant,
				Scope:          extracted.Scope,
				Memory:         extracted.Memory,
				Meta:           map[string]any{"session": app.session},
				IdempotencyKey: uuid.NewString(),
			})
			if err != nil {
				return err
			}

			if jsonOutput(cmd) {
				return printJSON(cmd, event)
			}

			_, err = fmt.Fprintf(cmd.OutOrStdout(), "remembered %s (event %s)\n",
				extracted.Memory.MemoryID(), event.EventID)
			return err
		},
	}

	cmd.Flags().String("scope", "", "scope of the event")

	return cmd
}

func newForgetCmd(app *app) *cobra.Command {
	var targetEventID string

	cmd := &cobra.Command{
		Use:   "forget <text>...",
		Short: "Delete a remembered memory and print the deletion receipt",
		Long:  "forget derives the logical memory slot from the given text and appends a delete event for the write event named by --event. The server answers with a signed deletion receipt.",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			conn, err := app.connect(cmd)
			if err != nil {
				return err
			}

			tenant, err := conn.tenant()
			if err != nil {
				return err
			}
			scope, err := conn.scope(cmd)
			if err != nil {
				return err
			}

			text := strings.Join(args, " ")
			if !strings.HasPrefix(strings.ToLower(strings.TrimSpace(text)), "forget") {
				text = "Forget " + text
			}

			extracted := intent.Extract(text, scope)
			if extracted.Kind != intent.KindDelete {
				_, err := fmt.Fprintln(cmd.OutOrStdout(), intent.UnknownHint)
				return err
			}

			target, err := vmp.NewDeleteTarget(extracted.TargetType, extracted.TargetKey)
			if err != nil {
				return err
			}

			receipt, err := conn.client.DeleteMemoryEvent(cmd.Context(), vmp.DeleteMemoryEventParams{
				TenantID:      tenant,
				Scope:         extracted.Scope,
				TargetEventID: targetEventID,
				Target:        target,
				Meta:          map[string]any{"session": app.session},
			})
			if err != nil {
				return err
			}

			if jsonOutput(cmd) {
				return printJSON(cmd, receipt)
			}

			_, err = fmt.Fprintf(cmd.OutOrStdout(), "forgot %s: delete event %s, receipt %s\n",
				target.MemoryID, receipt.DeleteEventID, receipt.ReceiptID)
			return err
		},
	}

	cmd.Flags().StringVar(&targetEventID, "event", "", "id of the write event to delete")
	cmd.Flags().String("scope", "", "scope of the event")
	_ = cmd.MarkFlagRequired("event")

	return cmd
}

func newRecallCmd(app *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "recall",
		Short: "List recent memory events in the active scope",
		RunE: func(cmd *cobra.Command, _ []string) error {
			conn, err := app.connect(cmd)
			if err != nil {
				return err
			}

			tenant, err := conn.tenant()
			if err != nil {
				return err
			}
			scope, err := conn.scope(cmd)
			if err != nil {
				return err
			}

			limit := recallListLimit
			events, err := conn.client.AdminListEvents(cmd.Context(), vmp.AdminListEventsParams{
				TenantID: tenant,
				Scope:    scope,
				Limit:    &limit,
			})
			if err != nil {
				return err
			}

			return printRendered(cmd, events, func() (string, error) {
				return report.Events(events)
			})
		},
	}

	cmd.Flags().String("scope", "", "scope to recall from")

	return cmd
}
