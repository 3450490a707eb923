package report

import (
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vemorak/vemorak-go/vmp"
)

const hashPreviewLen = 16

// Proof renders the inclusion evidence for one event.
func Proof(proof *vmp.ProofResponse) (string, error) {
	return render(func(s styles) string {
		lines := []string{
			s.title.Render("Inclusion Proof"),
			keyValue(s, "event", proof.EventID),
			keyValue(s, "tenant", proof.TenantID),
			keyValue(s, "scope", proof.Scope),
		}

		if !proof.Batched() {
			lines = append(lines, s.pending.Render("status: pending (not batched yet)"))
			return lipgloss.JoinVertical(lipgloss.Left, lines...)
		}

		lines = append(lines,
			s.ok.Render("status: batched"),
			keyValue(s, "batch", deref(proof.BatchID)),
			keyValue(s, "leaf index", fmt.Sprintf("%d", derefInt(proof.LeafIndex))),
			hashValue(s, "leaf", deref(proof.LeafHex)),
			hashValue(s, "root", deref(proof.RootHex)),
			keyValue(s, "signed by", deref(proof.PubkeyID)),
			keyValue(s, "batched at", deref(proof.BatchCreatedAt)),
			s.header.Render(fmt.Sprintf("path: %d sibling(s)", len(proof.Path))),
		)

		for i, step := range proof.Path {
			side := "right"
			if step.SiblingIsLeft {
				side = "left"
			}
			lines = append(lines, s.hash.Render(fmt.Sprintf("  %d. %s  %s", i, side, shortHash(step.SiblingHex))))
		}

		return lipgloss.JoinVertical(lipgloss.Left, lines...)
	})
}

// Receipt renders a deletion receipt, with the server verdict when available.
func Receipt(receipt *vmp.DeletionReceiptResponse, verdict *vmp.VerifyDeletionResponse) (string, error) {
	return render(func(s styles) string {
		lines := []string{
			s.title.Render("Deletion Receipt"),
			keyValue(s, "receipt", receipt.ReceiptID),
			keyValue(s, "tenant", receipt.TenantID),
			keyValue(s, "scope", receipt.Scope),
			keyValue(s, "delete event", receipt.DeleteEventID),
			hashValue(s, "event hash", receipt.DeleteEventHashHex),
			keyValue(s, "signed by", receipt.PubkeyID),
			keyValue(s, "issued at", receipt.CreatedAt),
		}

		if verdict != nil {
			if verdict.Valid {
				lines = append(lines, s.ok.Render("signature: valid"))
			} else {
				lines = append(lines, s.invalid.Render("signature: INVALID"))
			}
		}

		return lipgloss.JoinVertical(lipgloss.Left, lines...)
	})
}

// Events renders the admin event listing.
func Events(list *vmp.AdminListEventsResponse) (string, error) {
	return render(func(s styles) string {
		lines := []string{
			s.title.Render("Events"),
			s.header.Render(fmt.Sprintf("events: %d", len(list.Items))),
		}

		if len(list.Items) == 0 {
			lines = append(lines, s.empty.Render("No events recorded."))
			return lipgloss.JoinVertical(lipgloss.Left, lines...)
		}

		for _, item := range list.Items {
			batch := "pending"
			if item.BatchID != nil {
				batch = shortHash(*item.BatchID)
			}
			lines = append(lines, s.value.Render(fmt.Sprintf(
				"%s  %-6s  %-24s  batch=%s  %s",
				item.ID, item.Op, item.Scope, batch, item.CreatedAt,
			)))
		}

		return lipgloss.JoinVertical(lipgloss.Left, lines...)
	})
}

// Batches renders the admin batch listing.
func Batches(list *vmp.AdminListBatchesResponse) (string, error) {
	return render(func(s styles) string {
		lines := []string{
			s.title.Render("Batches"),
			s.header.Render(fmt.Sprintf("batches: %d", len(list.Items))),
		}

		if len(list.Items) == 0 {
			lines = append(lines, s.empty.Render("No batches committed."))
			return lipgloss.JoinVertical(lipgloss.Left, lines...)
		}

		for _, item := range list.Items {
			lines = append(lines, s.value.Render(fmt.Sprintf(
				"%s  leaves=%-4d  root=%s  %s",
				item.ID, item.Count, shortHash(item.RootHex), item.CreatedAt,
			)))
		}

		return lipgloss.JoinVertical(lipgloss.Left, lines...)
	})
}

// Receipts renders the admin deletion receipt listing.
func Receipts(list *vmp.AdminListDeletionReceiptsResponse) (string, error) {
	return render(func(s styles) string {
		lines := []string{
			s.title.Render("Deletion Receipts"),
			s.header.Render(fmt.Sprintf("receipts: %d", len(list.Items))),
		}

		if len(list.Items) == 0 {
			lines = append(lines, s.empty.Render("No deletion receipts issued."))
			return lipgloss.JoinVertical(lipgloss.Left, lines...)
		}

		for _, item := range list.Items {
			lines = append(lines, s.value.Render(fmt.Sprintf(
				"%s  event=%s  scope=%-24s  %s",
				item.ReceiptID, item.DeleteEventID, item.Scope, item.CreatedAt,
			)))
		}

		return lipgloss.JoinVertical(lipgloss.Left, lines...)
	})
}

// Stats renders ledger totals.
func Stats(stats *vmp.AdminStatsResponse) (string, error) {
	return render(func(s styles) string {
		return lipgloss.JoinVertical(lipgloss.Left,
			s.title.Render("Ledger Stats"),
			keyValue(s, "events", fmt.Sprintf("%d", stats.EventsTotal)),
			keyValue(s, "batches", fmt.Sprintf("%d", stats.BatchesTotal)),
			keyValue(s, "receipts", fmt.Sprintf("%d", stats.ReceiptsTotal)),
		)
	})
}

// WhoAmI renders the authenticated identity.
func WhoAmI(identity *vmp.WhoAmIResponse) (string, error) {
	return render(func(s styles) string {
		lines := []string{
			s.title.Render("Identity"),
			keyValue(s, "tenant", identity.TenantID),
			keyValue(s, "key", identity.KeyID),
		}

		if identity.ScopePrefix != nil {
			lines = append(lines, keyValue(s, "scope prefix", *identity.ScopePrefix))
		}
		if len(identity.AllowedScopes) > 0 {
			lines = append(lines, keyValue(s, "scopes", strings.Join(identity.AllowedScopes, ", ")))
		}

		return lipgloss.JoinVertical(lipgloss.Left, lines...)
	})
}

// Verdict renders an offline bundle verification result. Check names are
// sorted so the output is stable.
func Verdict(verdict *vmp.VerifyBundleResponse) (string, error) {
	return render(func(s styles) string {
		lines := make([]string, 0, len(verdict.Checks)+2)
		if verdict.OK {
			lines = append(lines, s.ok.Render("bundle: verified"))
		} else {
			lines = append(lines, s.invalid.Render("bundle: FAILED"))
		}

		names := make([]string, 0, len(verdict.Checks))
		for name := range verdict.Checks {
			names = append(names, name)
		}
		sort.Strings(names)

		for _, name := range names {
			lines = append(lines, keyValue(s, name, fmt.Sprintf("%v", verdict.Checks[name])))
		}

		return lipgloss.JoinVertical(lipgloss.Left, lines...)
	})
}

func keyValue(s styles, key string, value string) string {
	return lipgloss.JoinHorizontal(lipgloss.Top,
		s.key.Render(key+": "),
		s.value.Render(value),
	)
}

func hashValue(s styles, key string, hex string) string {
	return lipgloss.JoinHorizontal(lipgloss.Top,
		s.key.Render(key+": "),
		s.hash.Render(shortHash(hex)),
	)
}

func shortHash(hex string) string {
	if len(hex) <= hashPreviewLen {
		return hex
	}

	return hex[:hashPreviewLen] + "…"
}

func deref(v *string) string {
	if v == nil {
		return ""
	}
	return *v
}

func derefInt(v *int) int {
	if v == nil {
		return 0
	}
	return *v
}
