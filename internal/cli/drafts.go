package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var draftsCmd = &cobra.Command{
	Use:   "drafts",
	Short: "Work on invoices offline",
	Long: `Stash invoices in a local encrypted store and push them back to the
remote service later. The store is opened on first use; its encryption key
lives in the system keyring.`,
}

var draftsStashCmd = &cobra.Command{
	Use:   "stash [id]",
	Short: "Copy a remote invoice into the local drafts store",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()

		invoice, err := appInstance.InvoiceService.GetInvoice(ctx, args[0])
		if err != nil {
			return err
		}

		if err := appInstance.OpenDrafts(); err != nil {
			return err
		}

		if err := appInstance.DraftRepo.Save(ctx, invoice); err != nil {
			return err
		}

		fmt.Printf("Invoice %s stashed locally\n", invoice.ID)
		return nil
	},
}

var draftsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List locally stashed drafts",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()

		if err := appInstance.OpenDrafts(); err != nil {
			return err
		}

		drafts, err := appInstance.DraftRepo.List(ctx)
		if err != nil {
			return err
		}

		if len(drafts) == 0 {
			fmt.Println("No stashed drafts")
			return nil
		}

		fmt.Printf("%-8s %-24s %-12s %-20s\n", "ID", "Client", "Total", "Stashed")
		fmt.Println(strings.Repeat("-", 68))
		for _, d := range drafts {
			fmt.Printf("%-8s %-24s £%-11.2f %-20s\n",
				d.InvoiceID,
				truncate(d.Invoice.ClientName, 24),
				d.Invoice.Total,
				d.UpdatedAt.Format("2006-01-02 15:04"),
			)
		}

		fmt.Printf("\nTotal: %d draft(s)\n", len(drafts))
		return nil
	},
}

var draftsShowCmd = &cobra.Command{
	Use:   "show [id]",
	Short: "Show a stashed draft",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()

		if err := appInstance.OpenDrafts(); err != nil {
			return err
		}

		draft, err := appInstance.DraftRepo.Get(ctx, args[0])
		if err != nil {
			return err
		}

		printInvoice(draft.Invoice)
		return nil
	},
}

var draftsPushCmd = &cobra.Command{
	Use:   "push [id]",
	Short: "Upload a stashed draft back to the remote service",
	Long: `Upload a stashed draft. An invoice that already exists remotely is
replaced; otherwise it is created. The local copy is removed on success.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()

		if len(args) != 1 {
			return fmt.Errorf("expected exactly one invoice id")
		}

		if err := appInstance.OpenDrafts(); err != nil {
			return err
		}

		draft, err := appInstance.DraftRepo.Get(ctx, args[0])
		if err != nil {
			return err
		}

		inv := draft.Invoice
		var saveErr error
		if _, getErr := appInstance.InvoiceService.GetInvoice(ctx, inv.ID); getErr == nil {
			_, saveErr = appInstance.InvoiceService.SaveEdit(ctx, inv)
		} else {
			_, saveErr = appInstance.InvoiceService.SaveNew(ctx, inv)
		}
		if saveErr != nil {
			return saveErr
		}

		if err := appInstance.DraftRepo.Delete(ctx, inv.ID); err != nil {
			return err
		}

		fmt.Printf("Invoice %s pushed to the remote service\n", inv.ID)
		return nil
	},
}

var draftsDeleteCmd = &cobra.Command{
	Use:   "delete [id]",
	Short: "Delete a stashed draft",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()

		if err := appInstance.OpenDrafts(); err != nil {
			return err
		}

		if err := appInstance.DraftRepo.Delete(ctx, args[0]); err != nil {
			return err
		}

		fmt.Printf("Draft %s deleted\n", args[0])
		return nil
	},
}

var draftsClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Delete all stashed drafts",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()

		if !confirmPrompt("Delete ALL stashed drafts?") {
			fmt.Println("Cancelled.")
			return nil
		}

		if err := appInstance.OpenDrafts(); err != nil {
			return err
		}

		if err := appInstance.DraftRepo.Clear(ctx); err != nil {
			return err
		}

		fmt.Println("All stashed drafts deleted.")
		return nil
	},
}

func init() {
	draftsCmd.AddCommand(draftsStashCmd)
	draftsCmd.AddCommand(draftsListCmd)
	draftsCmd.AddCommand(draftsShowCmd)
	draftsCmd.AddCommand(draftsPushCmd)
	draftsCmd.AddCommand(draftsDeleteCmd)
	draftsCmd.AddCommand(draftsClearCmd)
}
