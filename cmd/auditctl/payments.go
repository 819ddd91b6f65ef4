package main

import (
	"context"
	"fmt"

	"payzoll-audit/internal/adapter/http/dto"
	"payzoll-audit/internal/app"
	"payzoll-audit/internal/core/domain"
	"payzoll-audit/internal/core/ports"

	"github.com/spf13/cobra"
)

// ── store-payment ────────────────────────────────────────────────────────────

var (
	payAction   string
	payID       string
	payObjectID string
	payFrom     string
	payTo       string
	payAmount   float64
	payTxHash   string
	payChain    string
)

var storePaymentCmd = &cobra.Command{
	Use:   "store-payment",
	Short: "Record one step (send, claim, reimburse) of a P2P payment",
	Example: `  auditctl store-payment --action send --payment-id 42 --from 0xA --to 0xB --amount 12.5 --tx-hash 0x9f...
  auditctl store-payment --action claim --payment-id 42 --from 0xA --to 0xB --amount 12.5`,
	Args: cobra.NoArgs,
	RunE: runStorePayment,
}

func init() {
	storePaymentCmd.Flags().StringVar(&payAction, "action", "", "Payment step: send, claim or reimburse")
	storePaymentCmd.Flags().StringVar(&payID, "payment-id", "", "Backend payment ID")
	storePaymentCmd.Flags().StringVar(&payObjectID, "object-id", "", "On-chain payment object ID, when known")
	storePaymentCmd.Flags().StringVar(&payFrom, "from", "", "Sender wallet address")
	storePaymentCmd.Flags().StringVar(&payTo, "to", "", "Receiver wallet address")
	storePaymentCmd.Flags().Float64Var(&payAmount, "amount", 0, "Amount transferred")
	storePaymentCmd.Flags().StringVar(&payTxHash, "tx-hash", "", "Transaction hash")
	storePaymentCmd.Flags().StringVar(&payChain, "chain", "", "Chain name (default from audit.default_chain)")

	_ = storePaymentCmd.MarkFlagRequired("action")
	_ = storePaymentCmd.MarkFlagRequired("payment-id")
	_ = storePaymentCmd.MarkFlagRequired("from")
	_ = storePaymentCmd.MarkFlagRequired("to")
}

func runStorePayment(cmd *cobra.Command, args []string) error {
	action := domain.PaymentAction(payAction)
	if !action.Valid() {
		return fmt.Errorf("unknown payment action %q", payAction)
	}
	return withApp(cmd, func(ctx context.Context, a *app.App) error {
		receipt, err := a.Audit.StorePaymentRecord(ctx, ports.PaymentRecordInput{
			Action:          action,
			PaymentID:       payID,
			PaymentObjectID: payObjectID,
			From:            payFrom,
			To:              payTo,
			Amount:          payAmount,
			TxHash:          payTxHash,
			Chain:           payChain,
		})
		if err != nil {
			return fmt.Errorf("store payment: %w", err)
		}
		return printReceipt(cmd.OutOrStdout(), receipt)
	})
}

// ── update-object ────────────────────────────────────────────────────────────

var updateObjectCmd = &cobra.Command{
	Use:   "update-object <paymentId> <paymentObjectId>",
	Short: "Attach the on-chain object ID to a payment's newest send record",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		paymentID, objectID := args[0], args[1]
		return withApp(cmd, func(ctx context.Context, a *app.App) error {
			updated, err := a.Audit.UpdatePaymentObjectID(ctx, paymentID, objectID)
			if err != nil {
				return fmt.Errorf("update payment %s: %w", paymentID, err)
			}
			if outputFormat == "json" {
				return printJSON(cmd.OutOrStdout(), dto.PaymentObjectResponse{PaymentID: paymentID, Updated: updated})
			}
			if !updated {
				return fmt.Errorf("no send record found for payment %s", paymentID)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "✓ Payment %s now carries object %s\n", paymentID, objectID)
			return nil
		})
	},
}
