package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"text/tabwriter"
	"time"

	"payzoll-audit/config"
	"payzoll-audit/internal/adapter/http/dto"
	"payzoll-audit/internal/app"
	"payzoll-audit/internal/core/domain"
	"payzoll-audit/internal/core/ports"
	"payzoll-audit/pkg/logger"

	"github.com/spf13/cobra"
)

// version is overridden at build time via -ldflags "-X main.version=...".
var version = "dev"

var (
	cfgFile      string
	outputFormat string
	verbose      bool
)

// openApp wires the manager from configuration. Tests replace it.
var openApp = func(ctx context.Context) (*app.App, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, err
	}
	if err := requirePersistentState(cfg); err != nil {
		return nil, err
	}
	level := "warn"
	if verbose {
		level = "debug"
	}
	return app.Build(ctx, cfg, logger.NewWithWriter(level, os.Stderr))
}

// requirePersistentState rejects configurations whose blobs or pointer live
// only in this process: every auditctl run would start from an empty index.
func requirePersistentState(cfg *config.Config) error {
	if cfg.Walrus.Mode == "memory" {
		return errors.New("walrus.mode=memory keeps blobs in this process only; auditctl needs walrus.mode=http")
	}
	if cfg.Backend.BaseURL == "" && !cfg.Database.Enabled && cfg.Pointer.Fallback != "redis" {
		return fmt.Errorf("pointer.fallback=%s does not outlive this process; set backend.base_url, database.enabled or pointer.fallback=redis", cfg.Pointer.Fallback)
	}
	return nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "auditctl",
	Short: "PayZoll audit index operator CLI",
	Long: `auditctl reads and writes the PayZoll audit trail directly: record blobs
on Walrus, the index document listing them and the pointer to the current index.

It uses the same configuration as the API server (config.yaml or PZA_* variables).`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		switch outputFormat {
		case "text", "json":
			return nil
		}
		return fmt.Errorf("--format must be text or json, got %q", outputFormat)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default ./config.yaml)")
	rootCmd.PersistentFlags().StringVar(&outputFormat, "format", "text", "Output format: text or json")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Log debug output to stderr")

	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(getCmd)
	rootCmd.AddCommand(indexCmd)
	rootCmd.AddCommand(storePaymentCmd)
	rootCmd.AddCommand(updateObjectCmd)
	rootCmd.AddCommand(recordCmd)
	rootCmd.AddCommand(pointerCmd)
	rootCmd.AddCommand(recoverCmd)
	rootCmd.AddCommand(versionCmd)
}

// withApp opens the app for one command and closes it afterwards.
func withApp(cmd *cobra.Command, fn func(ctx context.Context, a *app.App) error) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	a, err := openApp(ctx)
	if err != nil {
		return err
	}
	defer a.Close()
	return fn(ctx, a)
}

// ── list ─────────────────────────────────────────────────────────────────────

var listType string

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "Fetch every indexed audit record, newest first",
	Args:  cobra.NoArgs,
	RunE:  runList,
}

func init() {
	listCmd.Flags().StringVar(&listType, "type", "", "Only records of this type: invoice, payroll, splitBill, payment")
}

func runList(cmd *cobra.Command, args []string) error {
	recordType, err := parseRecordType(listType)
	if err != nil {
		return err
	}
	return withApp(cmd, func(ctx context.Context, a *app.App) error {
		records, err := a.Audit.GetAllAuditRecords(ctx)
		if err != nil {
			return fmt.Errorf("fetch records: %w", err)
		}
		if recordType != "" {
			filtered := records[:0]
			for _, r := range records {
				if r.Type() == recordType {
					filtered = append(filtered, r)
				}
			}
			records = filtered
		}
		domain.SortRecordsNewestFirst(records)
		return printRecords(cmd.OutOrStdout(), records)
	})
}

// ── get ──────────────────────────────────────────────────────────────────────

var getCmd = &cobra.Command{
	Use:   "get <blobId>",
	Short: "Fetch one audit record blob",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(cmd, func(ctx context.Context, a *app.App) error {
			record, err := a.Audit.GetAuditRecord(ctx, args[0])
			if err != nil {
				return fmt.Errorf("get %s: %w", args[0], err)
			}
			return printRecords(cmd.OutOrStdout(), []domain.AuditRecord{*record})
		})
	},
}

// ── index ────────────────────────────────────────────────────────────────────

var indexType string

var indexCmd = &cobra.Command{
	Use:   "index",
	Short: "List index entries without fetching the records",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		recordType, err := parseRecordType(indexType)
		if err != nil {
			return err
		}
		return withApp(cmd, func(ctx context.Context, a *app.App) error {
			entries, err := a.Audit.ListIndexEntries(ctx, recordType)
			if err != nil {
				return fmt.Errorf("list index: %w", err)
			}
			return printEntries(cmd.OutOrStdout(), entries)
		})
	},
}

func init() {
	indexCmd.Flags().StringVar(&indexType, "type", "", "Only entries of this type")
}

// ── recover ──────────────────────────────────────────────────────────────────

var recoverYes bool

var recoverCmd = &cobra.Command{
	Use:   "recover",
	Short: "Point the audit trail at a fresh, empty index",
	Long: `recover writes an empty index document and forces the pointer to it.

Record blobs already stored stay on Walrus but are no longer listed. Use it
only when the current index blob is unreadable.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if !recoverYes {
			return errors.New("recover drops every existing index entry; re-run with --yes to confirm")
		}
		return withApp(cmd, func(ctx context.Context, a *app.App) error {
			blobID, err := a.Audit.RecoverAuditIndex(ctx)
			if err != nil {
				return fmt.Errorf("recover: %w", err)
			}
			if outputFormat == "json" {
				return printJSON(cmd.OutOrStdout(), dto.RecoverResponse{IndexBlobID: blobID})
			}
			fmt.Fprintf(cmd.OutOrStdout(), "✓ Audit index recovered\n\n  Index blob: %s\n", blobID)
			return nil
		})
	},
}

func init() {
	recoverCmd.Flags().BoolVar(&recoverYes, "yes", false, "Confirm the index reset")
}

// ── version ──────────────────────────────────────────────────────────────────

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the auditctl version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "auditctl %s\n", version)
	},
}

// ── output ───────────────────────────────────────────────────────────────────

func parseRecordType(s string) (domain.RecordType, error) {
	t := domain.RecordType(s)
	if s != "" && !t.Valid() {
		return "", fmt.Errorf("unknown record type %q", s)
	}
	return t, nil
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func formatTS(ms int64) string {
	return time.UnixMilli(ms).UTC().Format(time.RFC3339)
}

func printRecords(w io.Writer, records []domain.AuditRecord) error {
	if outputFormat == "json" {
		out := make([]dto.AuditRecord, len(records))
		for i, r := range records {
			out[i] = dto.FromDomain(r)
		}
		return printJSON(w, dto.RecordListResponse{Records: out, Count: len(out)})
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "TYPE\tRECORD ID\tTIME\tAMOUNT\tCHAIN\tSTATUS\tTX")
	for _, r := range records {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%g\t%s\t%s\t%s\n",
			r.Type(), r.RecordID, formatTS(r.Timestamp), r.TotalAmount, r.Chain, r.Status, r.TransactionHash)
	}
	return tw.Flush()
}

func printEntries(w io.Writer, entries []domain.IndexEntry) error {
	if outputFormat == "json" {
		return printJSON(w, dto.IndexResponse{Entries: entries, Count: len(entries)})
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "BLOB ID\tTYPE\tRECORD ID\tTIME")
	for _, e := range entries {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", e.BlobID, e.RecordType, e.RecordID, formatTS(e.Timestamp))
	}
	return tw.Flush()
}

func printReceipt(w io.Writer, receipt *ports.StoreReceipt) error {
	if outputFormat == "json" {
		return printJSON(w, receipt)
	}
	fmt.Fprintf(w, "✓ Record stored\n\n")
	fmt.Fprintf(w, "  Record blob: %s\n", receipt.RecordBlobID)
	fmt.Fprintf(w, "  Index blob:  %s\n", receipt.IndexBlobID)
	if receipt.PointerUpdated {
		fmt.Fprintf(w, "  Pointer:     updated (%s)\n", receipt.PointerTier)
	} else {
		fmt.Fprintf(w, "  Pointer:     NOT updated; the index blob above is not yet current\n")
	}
	return nil
}
