package cmd

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/vemorak/vemorak-go/vmp"
)

func newWriteCmd(app *app) *cobra.Command {
	var (
		memoryType     string
		key            string
		value          string
		idempotencyKey string
	)

	cmd := &cobra.Command{
		Use:   "write",
		Short: "Append a memory write event",
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

			memory, err := buildMemory(memoryType, key, value)
			if err != nil {
				return err
			}

			if idempotencyKey == "" {
				idempotencyKey = uuid.NewString()
			}

			event, err := conn.client.WriteMemory(cmd.Context(), vmp.WriteMemoryParams{
				TenantID:       tenant,
				Scope:          scope,
				Memory:         memory,
				Meta:           map[string]any{"session": app.session},
				IdempotencyKey: idempotencyKey,
			})
			if err != nil {
				return err
			}

			if jsonOutput(cmd) {
				return printJSON(cmd, event)
			}

			_, err = fmt.Fprintf(cmd.OutOrStdout(), "event %s written (%s)\n", event.EventID, memory.MemoryID())
			return err
		},
	}

	cmd.Flags().StringVar(&memoryType, "type", "preference", "memory type: preference|fact|task|summary")
	cmd.Flags().StringVar(&key, "key", "", "memory key within the type namespace")
	cmd.Flags().StringVar(&value, "value", "", "memory payload")
	cmd.Flags().String("scope", "", "scope of the event")
	cmd.Flags().StringVar(&idempotencyKey, "idempotency-key", "", "idempotency key (defaults to a random UUID)")
	_ = cmd.MarkFlagRequired("key")
	_ = cmd.MarkFlagRequired("value")

	return cmd
}

func newDeleteCmd(app *app) *cobra.Command {
	var (
		targetEventID string
		memoryType    string
		key           string
	)

	cmd := &cobra.Command{
		Use:   "delete",
		Short: "Append a delete event and print its deletion receipt",
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

			var target vmp.DeleteTarget
			if key != "" {
				t, err := parseMemoryType(memoryType)
				if err != nil {
					return err
				}
				target, err = vmp.NewDeleteTarget(t, key)
				if err != nil {
					return err
				}
			}

			receipt, err := conn.client.DeleteMemoryEvent(cmd.Context(), vmp.DeleteMemoryEventParams{
				TenantID:      tenant,
				Scope:         scope,
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

			_, err = fmt.Fprintf(cmd.OutOrStdout(), "delete event %s, receipt %s (signed by %s)\n",
				receipt.DeleteEventID, receipt.ReceiptID, receipt.PubkeyID)
			return err
		},
	}

	cmd.Flags().StringVar(&targetEventID, "event", "", "id of the write event to delete")
	cmd.Flags().StringVar(&memoryType, "type", "preference", "memory type of the targeted slot")
	cmd.Flags().StringVar(&key, "key", "", "memory key of the targeted slot (recorded in the receipt meta)")
	cmd.Flags().String("scope", "", "scope of the event")
	_ = cmd.MarkFlagRequired("event")

	return cmd
}

func buildMemory(memoryType, key, value string) (vmp.MemoryObject, error) {
	t, err := parseMemoryType(memoryType)
	if err != nil {
		return nil, err
	}

	switch t {
	case vmp.MemoryTypePreference:
		return vmp.NewPreference(key, value)
	case vmp.MemoryTypeProfileFact:
		return vmp.NewProfileFact(key, value)
	case vmp.MemoryTypeTask:
		return vmp.NewTask(key, value)
	case vmp.MemoryTypeSummary:
		return vmp.NewSummary(key, value)
	default:
		return nil, fmt.Errorf("unhandled memory type %q", t)
	}
}

func parseMemoryType(name string) (vmp.MemoryType, error) {
	switch name {
	case "preference", "pref":
		return vmp.MemoryTypePreference, nil
	case "fact", "profile_fact":
		return vmp.MemoryTypeProfileFact, nil
	case "task":
		return vmp.MemoryTypeTask, nil
	case "summary":
		return vmp.MemoryTypeSummary, nil
	default:
		return "", fmt.Errorf("unknown memory type %q (want preference, fact, task or summary)", name)
	}
}
