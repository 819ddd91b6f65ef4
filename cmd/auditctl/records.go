package main

import (
	"context"
	"fmt"
	"time"

	"payzoll-audit/internal/app"
	"payzoll-audit/internal/core/domain"

	"github.com/spf13/cobra"
)

// ── record ───────────────────────────────────────────────────────────────────

var (
	recID        string
	recChain     string
	recTxHash    string
	recTimestamp int64
	recStatus    string
	recPayee     string
	recAmount    float64
	recWallets   []string
	recAmounts   []float64
	recFailed    bool
	recInitiator string
	recParties   []string
	recPayer     string
)

var recordCmd = &cobra.Command{
	Use:   "record",
	Short: "Store an invoice, payroll or split bill audit record",
	Long: `record builds an audit record the way the PayZoll app does for each kind of
financial event and stores it. Timestamps default to now.`,
}

var recordInvoiceCmd = &cobra.Command{
	Use:     "invoice",
	Short:   "Record an invoice being created or changing status",
	Example: `  auditctl record invoice --id INV-7 --payee 0xPayee --amount 40 --status paid --tx-hash 0x9f...`,
	Args:    cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		rec := domain.NewInvoiceRecord(recID, recPayee, recAmount, recChain, recStatus, recTxHash, recordTS())
		return storeRecord(cmd, rec)
	},
}

var recordPayrollCmd = &cobra.Command{
	Use:     "payroll",
	Short:   "Record a payroll run",
	Example: `  auditctl record payroll --id RUN-3 --wallet 0xA,0xB --amounts 100,250 --tx-hash 0x9f...`,
	Args:    cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(recAmounts) != len(recWallets) {
			return fmt.Errorf("--amounts has %d values for %d wallets", len(recAmounts), len(recWallets))
		}
		if recID == "" && !recFailed {
			return fmt.Errorf("--id is required for a completed run")
		}
		var total float64
		for _, a := range recAmounts {
			total += a
		}
		rec := domain.NewPayrollRecord(domain.PayrollRun{
			RunID:   recID,
			Wallets: recWallets,
			Amounts: recAmounts,
			Total:   total,
			Chain:   recChain,
			TxHash:  recTxHash,
		}, recFailed, recordTS())
		return storeRecord(cmd, rec)
	},
}

var recordSplitBillCmd = &cobra.Command{
	Use:     "split-bill",
	Short:   "Record a split bill being opened",
	Example: `  auditctl record split-bill --id BILL-1 --initiator 0xA --participant 0xB,0xC --amount 90`,
	Args:    cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		rec := domain.NewSplitBillCreatedRecord(recID, recInitiator, recParties, recAmount, recChain, recordTS())
		return storeRecord(cmd, rec)
	},
}

var recordSplitPaymentCmd = &cobra.Command{
	Use:     "split-payment",
	Short:   "Record a participant settling their share of a split bill",
	Example: `  auditctl record split-payment --id BILL-1 --payer 0xB --amount 30 --tx-hash 0x9f...`,
	Args:    cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		rec := domain.NewSplitBillPaymentRecord(recID, recPayer, recAmount, recChain, recTxHash, recordTS())
		return storeRecord(cmd, rec)
	},
}

func init() {
	for _, c := range []*cobra.Command{recordInvoiceCmd, recordPayrollCmd, recordSplitBillCmd, recordSplitPaymentCmd} {
		c.Flags().StringVar(&recID, "id", "", "Record ID (invoice, run or bill ID)")
		c.Flags().StringVar(&recChain, "chain", "SUI", "Chain name")
		c.Flags().StringVar(&recTxHash, "tx-hash", "", "Transaction hash")
		c.Flags().Int64Var(&recTimestamp, "ts", 0, "Event time in Unix milliseconds (default now)")
		recordCmd.AddCommand(c)
	}

	recordInvoiceCmd.Flags().StringVar(&recPayee, "payee", "", "Payee wallet address")
	recordInvoiceCmd.Flags().Float64Var(&recAmount, "amount", 0, "Invoice amount")
	recordInvoiceCmd.Flags().StringVar(&recStatus, "status", "pending", "Invoice status: pending, paid or cancelled")
	_ = recordInvoiceCmd.MarkFlagRequired("id")
	_ = recordInvoiceCmd.MarkFlagRequired("payee")

	recordPayrollCmd.Flags().StringSliceVar(&recWallets, "wallet", nil, "Employee wallet addresses")
	recordPayrollCmd.Flags().Float64SliceVar(&recAmounts, "amounts", nil, "Amount per wallet, in the same order")
	recordPayrollCmd.Flags().BoolVar(&recFailed, "failed", false, "The run failed on chain")
	_ = recordPayrollCmd.MarkFlagRequired("wallet")

	recordSplitBillCmd.Flags().StringVar(&recInitiator, "initiator", "", "Wallet that opened the bill")
	recordSplitBillCmd.Flags().StringSliceVar(&recParties, "participant", nil, "Participant wallet addresses")
	recordSplitBillCmd.Flags().Float64Var(&recAmount, "amount", 0, "Bill total")
	_ = recordSplitBillCmd.MarkFlagRequired("id")
	_ = recordSplitBillCmd.MarkFlagRequired("initiator")

	recordSplitPaymentCmd.Flags().StringVar(&recPayer, "payer", "", "Participant wallet settling the share")
	recordSplitPaymentCmd.Flags().Float64Var(&recAmount, "amount", 0, "Share paid")
	_ = recordSplitPaymentCmd.MarkFlagRequired("id")
	_ = recordSplitPaymentCmd.MarkFlagRequired("payer")
}

func recordTS() int64 {
	if recTimestamp > 0 {
		return recTimestamp
	}
	return time.Now().UnixMilli()
}

func storeRecord(cmd *cobra.Command, rec domain.AuditRecord) error {
	return withApp(cmd, func(ctx context.Context, a *app.App) error {
		receipt, err := a.Audit.StoreAuditRecord(ctx, rec)
		if err != nil {
			return fmt.Errorf("store %s record: %w", rec.Type(), err)
		}
		return printReceipt(cmd.OutOrStdout(), receipt)
	})
}
