package main

import (
	"context"
	"errors"
	"fmt"
	"text/tabwriter"

	"payzoll-audit/internal/adapter/http/dto"
	"payzoll-audit/internal/app"

	"github.com/spf13/cobra"
)

// ── pointer ──────────────────────────────────────────────────────────────────

var pointerCmd = &cobra.Command{
	Use:   "pointer",
	Short: "Inspect or move the pointer to the current index blob",
}

var pointerGetCmd = &cobra.Command{
	Use:   "get",
	Short: "Resolve the current index blob ID and the tier that answered",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(cmd, func(ctx context.Context, a *app.App) error {
			blobID, tier, err := a.Pointer.Resolve(ctx)
			if err != nil {
				return fmt.Errorf("resolve pointer: %w", err)
			}
			if outputFormat == "json" {
				return printJSON(cmd.OutOrStdout(), map[string]string{"blobId": blobID, "tier": tier})
			}
			if blobID == "" {
				fmt.Fprintf(cmd.OutOrStdout(), "No index yet (tier %s)\n", tier)
				return nil
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Index blob: %s\nTier:       %s\n", blobID, tier)
			return nil
		})
	},
}

var pointerExpected string

var pointerSetCmd = &cobra.Command{
	Use:   "set <blobId>",
	Short: "Move the pointer to an existing index blob",
	Long: `set points the audit trail at blobId. With --expected the move only happens
while the pointer still names that blob; without it the move is forced.

The blob must be a readable index document.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		next := args[0]
		return withApp(cmd, func(ctx context.Context, a *app.App) error {
			// Refuse to point at something the manager could not read back.
			if _, err := a.Audit.ReadIndex(ctx, next); err != nil {
				return fmt.Errorf("blob %s is not a usable index: %w", next, err)
			}

			var (
				tier string
				err  error
			)
			if cmd.Flags().Changed("expected") {
				tier, err = a.Pointer.Update(ctx, pointerExpected, next)
			} else {
				tier, err = a.Pointer.Force(ctx, next)
			}
			if err != nil {
				return fmt.Errorf("move pointer: %w", err)
			}
			if outputFormat == "json" {
				return printJSON(cmd.OutOrStdout(), map[string]string{"blobId": next, "tier": tier})
			}
			fmt.Fprintf(cmd.OutOrStdout(), "✓ Pointer moved to %s (%s)\n", next, tier)
			return nil
		})
	},
}

var pointerHistoryLimit int

var pointerHistoryCmd = &cobra.Command{
	Use:   "history",
	Short: "Show recent pointer moves (requires database.enabled)",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(cmd, func(ctx context.Context, a *app.App) error {
			if a.PointerSvc == nil {
				return errors.New("pointer history is kept in PostgreSQL; set database.enabled")
			}
			moves, err := a.PointerSvc.History(ctx, pointerHistoryLimit)
			if err != nil {
				return fmt.Errorf("pointer history: %w", err)
			}
			if outputFormat == "json" {
				return printJSON(cmd.OutOrStdout(), dto.PointerHistoryResponse{Moves: moves, Count: len(moves)})
			}

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintln(tw, "TIME\tFROM\tTO\tFORCED")
			for _, m := range moves {
				fmt.Fprintf(tw, "%s\t%s\t%s\t%t\n", m.CreatedAt.UTC().Format("2006-01-02T15:04:05Z"), m.PrevBlobID, m.BlobID, m.Forced)
			}
			return tw.Flush()
		})
	},
}

func init() {
	pointerSetCmd.Flags().StringVar(&pointerExpected, "expected", "", "Only move while the pointer names this blob (\"\" = unset)")
	pointerHistoryCmd.Flags().IntVar(&pointerHistoryLimit, "limit", 20, "Maximum moves to show")

	pointerCmd.AddCommand(pointerGetCmd)
	pointerCmd.AddCommand(pointerSetCmd)
	pointerCmd.AddCommand(pointerHistoryCmd)
}
