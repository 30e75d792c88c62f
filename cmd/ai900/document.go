package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/timothywarner/ai900/internal/transport/azure"
)

func newDocumentCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "document",
		Short: "Extract invoices and receipts with Document Intelligence",
	}
	cmd.AddCommand(
		&cobra.Command{
			Use:   "invoice <file>...",
			Short: "Analyze invoices with the prebuilt-invoice model",
			Args:  cobra.MinimumNArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				return a.analyzeFiles(cmd.Context(), "Invoice Analysis", args, a.printInvoices)
			},
		},
		&cobra.Command{
			Use:   "receipt <file>...",
			Short: "Analyze receipts with the prebuilt-receipt model",
			Args:  cobra.MinimumNArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				return a.analyzeFiles(cmd.Context(), "Receipt Analysis", args, a.printReceipts)
			},
		},
	)
	return cmd
}

type analyzeFunc func(ctx context.Context, client *azure.DocumentClient, data []byte) error

// analyzeFiles runs fn over each file, reporting failures and moving on to the next file.
func (a *app) analyzeFiles(ctx context.Context, title string, paths []string, fn analyzeFunc) error {
	if err := a.cfg.RequireDocument(); err != nil {
		return err
	}
	ctx = a.demoContext(ctx, "document")
	client := azure.NewDocumentClient(
		a.azureConfig(a.cfg.Document.Endpoint, a.cfg.Document.Key),
		azure.DocumentOptions{
			PollInterval: time.Duration(a.cfg.Document.PollIntervalMS) * time.Millisecond,
			Timeout:      time.Duration(a.cfg.Document.TimeoutSec) * time.Second,
		},
	)

	a.out.Header(title)
	failed := 0
	for _, path := range paths {
		a.out.Section(path)
		data, err := os.ReadFile(path) //nolint:gosec // path comes from the command line
		if err != nil {
			a.out.Warn("File not found: %s", path)
			failed++
			continue
		}
		if err := fn(ctx, client, data); err != nil {
			a.out.Error(err)
			failed++
		}
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d documents failed", failed, len(paths))
	}
	return nil
}

func (a *app) printInvoices(ctx context.Context, client *azure.DocumentClient, data []byte) error {
	invoices, err := client.AnalyzeInvoices(ctx, data)
	if err != nil {
		return err
	}
	for i, inv := range invoices {
		a.out.Line("Invoice #%d", i+1)
		a.printField("Vendor name", inv.VendorName)
		a.printField("Vendor address", inv.VendorAddress)
		a.printField("Customer name", inv.CustomerName)
		a.printField("Invoice ID", inv.InvoiceID)
		a.printField("Invoice date", inv.InvoiceDate)
		a.printField("Due date", inv.DueDate)
		a.printField("Subtotal", inv.SubTotal)
		a.printField("Total tax", inv.TotalTax)
		a.printField("Invoice total", inv.InvoiceTotal)
		if len(inv.Items) > 0 {
			a.out.Line("Items:")
			for _, item := range inv.Items {
				a.out.Bullet("%s x%s @ %s = %s",
					item.Description.String(), item.Quantity.String(), item.UnitPrice.String(), item.Amount.String())
			}
		}
	}
	return nil
}

func (a *app) printReceipts(ctx context.Context, client *azure.DocumentClient, data []byte) error {
	receipts, err := client.AnalyzeReceipts(ctx, data)
	if err != nil {
		return err
	}
	for i, r := range receipts {
		a.out.Line("Receipt #%d", i+1)
		a.printField("Merchant", r.MerchantName)
		a.printField("Address", r.MerchantAddress)
		a.printField("Date", r.TransactionDate)
		a.printField("Subtotal", r.Subtotal)
		a.printField("Tax", r.TotalTax)
		a.printField("Total", r.Total)
		if len(r.Items) > 0 {
			a.out.Line("Items:")
			for _, item := range r.Items {
				a.out.Bullet("%s: %s", item.Name.String(), item.Price.String())
			}
		}
	}
	return nil
}

// printField prints a present field with its confidence; absent fields are skipped.
func (a *app) printField(label string, f *azure.DocumentField) {
	if f == nil {
		return
	}
	a.out.KV(label, fmt.Sprintf("%s (confidence %.2f)", f.String(), f.Confidence))
}
