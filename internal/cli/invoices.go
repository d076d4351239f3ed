package cli

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/andy/billfold/internal/domain"
	"github.com/andy/billfold/internal/export"
	"github.com/andy/billfold/internal/filter"
	"github.com/andy/billfold/internal/form"
)

var invoicesCmd = &cobra.Command{
	Use:   "invoices",
	Short: "Manage invoices",
	Long:  `List, create, and manage invoices on the remote invoice service.`,
}

var invoicesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List invoices",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()

		statuses, _ := cmd.Flags().GetStringSlice("status")

		invoices, err := appInstance.InvoiceService.ListInvoices(ctx)
		if err != nil {
			return err
		}

		invoices = filter.New(statuses...).Apply(invoices)

		if len(invoices) == 0 {
			fmt.Println("No invoices found")
			return nil
		}

		fmt.Printf("%-8s %-12s %-24s %-12s %-8s\n", "ID", "Due", "Client", "Total", "Status")
		fmt.Println(strings.Repeat("-", 70))

		for _, invoice := range invoices {
			fmt.Printf("%-8s %-12s %-24s £%-11.2f %-8s\n",
				invoice.ID,
				invoice.PaymentDue,
				truncate(invoice.ClientName, 24),
				invoice.Total,
				invoice.Status,
			)
		}

		fmt.Printf("\nTotal: %d invoice(s)\n", len(invoices))
		return nil
	},
}

var invoicesShowCmd = &cobra.Command{
	Use:   "show [id]",
	Short: "Show invoice details",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()

		invoice, err := appInstance.InvoiceService.GetInvoice(ctx, args[0])
		if err != nil {
			return err
		}

		printInvoice(invoice)
		return nil
	},
}

var invoicesCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a new invoice",
	Long: `Create an invoice on the remote service.

Line items are given as repeated --item flags in "name:quantity:price" form.
With --draft the invoice is saved unvalidated with status draft; otherwise
every field is validated and the invoice is created as pending.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()

		terms, _ := cmd.Flags().GetString("terms")
		f := form.New(terms)

		set := func(field, flag string) {
			if cmd.Flags().Changed(flag) {
				v, _ := cmd.Flags().GetString(flag)
				f.SetField(field, v)
			}
		}
		setAddr := func(section form.Section, field, flag string) {
			if cmd.Flags().Changed(flag) {
				v, _ := cmd.Flags().GetString(flag)
				f.SetAddressField(section, field, v)
			}
		}

		set("clientName", "client-name")
		set("clientEmail", "client-email")
		set("description", "description")
		set("createdAt", "date")

		setAddr(form.SectionSender, "street", "from-street")
		setAddr(form.SectionSender, "city", "from-city")
		setAddr(form.SectionSender, "postCode", "from-postcode")
		setAddr(form.SectionSender, "country", "from-country")
		setAddr(form.SectionClient, "street", "to-street")
		setAddr(form.SectionClient, "city", "to-city")
		setAddr(form.SectionClient, "postCode", "to-postcode")
		setAddr(form.SectionClient, "country", "to-country")

		items, _ := cmd.Flags().GetStringArray("item")
		for i, spec := range items {
			name, qty, price, err := parseItemSpec(spec)
			if err != nil {
				return err
			}
			if i > 0 {
				f.AddItem()
			}
			f.SetItem(i, "name", name)
			if err := f.SetItem(i, "quantity", qty); err != nil {
				return fmt.Errorf("item %q: %w", spec, err)
			}
			if err := f.SetItem(i, "price", price); err != nil {
				return fmt.Errorf("item %q: %w", spec, err)
			}
		}

		draft, _ := cmd.Flags().GetBool("draft")
		invoice, err := f.Submit(draft)
		if err != nil {
			if errors.Is(err, form.ErrValidation) {
				fmt.Println("Invoice is not valid:")
				for _, line := range formErrorLines(f.Errors()) {
					fmt.Printf("  %s\n", line)
				}
				return fmt.Errorf("fix the fields above or pass --draft")
			}
			return err
		}

		created, err := appInstance.InvoiceService.SaveNew(ctx, invoice)
		if err != nil {
			return err
		}

		fmt.Printf("Invoice created: %s (%s)\n", created.ID, created.Status)
		fmt.Printf("  Total: £%.2f\n", created.Total)
		return nil
	},
}

var invoicesMarkPaidCmd = &cobra.Command{
	Use:   "mark-paid [id]",
	Short: "Mark an invoice as paid",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()

		if _, err := appInstance.InvoiceService.MarkPaid(ctx, args[0]); err != nil {
			return err
		}

		fmt.Printf("Invoice %s marked as paid\n", args[0])
		return nil
	},
}

var invoicesDeleteCmd = &cobra.Command{
	Use:   "delete [id]",
	Short: "Delete an invoice",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()
		id := args[0]

		yes, _ := cmd.Flags().GetBool("yes")
		if !yes && !confirmPrompt(fmt.Sprintf("Delete invoice #%s? This cannot be undone.", id)) {
			fmt.Println("Cancelled.")
			return nil
		}

		if err := appInstance.InvoiceService.DeleteInvoice(ctx, id); err != nil {
			return err
		}

		fmt.Printf("Invoice %s deleted\n", id)
		return nil
	},
}

var invoicesItemsCmd = &cobra.Command{
	Use:   "items [id]",
	Short: "List the line items of an invoice",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()

		items, err := appInstance.InvoiceService.GetItems(ctx, args[0])
		if err != nil {
			return err
		}

		if len(items) == 0 {
			fmt.Println("No items")
			return nil
		}

		fmt.Printf("%-28s %8s %12s %12s\n", "Item", "Qty", "Price", "Total")
		fmt.Println(strings.Repeat("-", 64))
		var total float64
		for _, item := range items {
			fmt.Printf("%-28s %8g £%11.2f £%11.2f\n",
				truncate(item.Name, 28), item.Quantity, item.Price, item.LineTotal())
			total += item.LineTotal()
		}
		fmt.Printf("\nAmount due: £%.2f\n", total)
		return nil
	},
}

var invoicesExportCmd = &cobra.Command{
	Use:   "export [id]",
	Short: "Export an invoice as a PDF",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()

		invoice, err := appInstance.InvoiceService.GetInvoice(ctx, args[0])
		if err != nil {
			return err
		}

		out, _ := cmd.Flags().GetString("out")
		if out == "" {
			out = filepath.Join(appInstance.Config.Invoice.OutputDir, export.DefaultFileName(invoice.ID))
		}

		if err := export.WritePDF(invoice, out); err != nil {
			return err
		}

		fmt.Printf("PDF written to %s\n", out)
		return nil
	},
}

// parseItemSpec splits "name:quantity:price". The name may itself contain
// colons; the last two segments are the numbers.
func parseItemSpec(spec string) (name, qty, price string, err error) {
	parts := strings.Split(spec, ":")
	if len(parts) < 3 {
		return "", "", "", fmt.Errorf("invalid item %q, expected name:quantity:price", spec)
	}
	name = strings.Join(parts[:len(parts)-2], ":")
	qty = parts[len(parts)-2]
	price = parts[len(parts)-1]
	return name, qty, price, nil
}

func printInvoice(inv *domain.Invoice) {
	fmt.Println(strings.Repeat("=", 70))
	fmt.Printf("Invoice: %s (%s)\n", inv.ID, inv.Status)
	fmt.Println(strings.Repeat("=", 70))
	if inv.Description != "" {
		fmt.Printf("Description: %s\n", inv.Description)
	}
	fmt.Printf("Invoice date: %s\n", inv.CreatedAt)
	fmt.Printf("Payment due:  %s (%s)\n", inv.PaymentDue, inv.PaymentTerms)
	fmt.Println()
	fmt.Printf("From: %s, %s %s, %s\n",
		inv.SenderAddress.Street, inv.SenderAddress.City,
		inv.SenderAddress.PostCode, inv.SenderAddress.Country)
	fmt.Printf("To:   %s <%s>\n", inv.ClientName, inv.ClientEmail)
	fmt.Printf("      %s, %s %s, %s\n",
		inv.ClientAddress.Street, inv.ClientAddress.City,
		inv.ClientAddress.PostCode, inv.ClientAddress.Country)
	fmt.Println()

	if len(inv.Items) > 0 {
		fmt.Printf("%-32s %8s %12s %12s\n", "Item", "Qty", "Price", "Total")
		fmt.Println(strings.Repeat("-", 70))
		for _, item := range inv.Items {
			fmt.Printf("%-32s %8g £%11.2f £%11.2f\n",
				truncate(item.Name, 32),
				item.Quantity,
				item.Price,
				item.LineTotal(),
			)
		}
		fmt.Println(strings.Repeat("-", 70))
	}

	fmt.Printf("Total: £%.2f\n", inv.Total)
	fmt.Println(strings.Repeat("=", 70))
}

// formErrorLines flattens a field error map into printable lines
func formErrorLines(fe domain.FormErrors) []string {
	var lines []string
	add := func(path, msg string) {
		if msg != "" {
			lines = append(lines, fmt.Sprintf("%s: %s", path, msg))
		}
	}
	addAddr := func(prefix string, ae domain.AddressErrors) {
		add(prefix+".street", ae.Street)
		add(prefix+".city", ae.City)
		add(prefix+".postCode", ae.PostCode)
		add(prefix+".country", ae.Country)
	}

	addAddr("senderAddress", fe.SenderAddress)
	add("clientName", fe.ClientName)
	add("clientEmail", fe.ClientEmail)
	addAddr("clientAddress", fe.ClientAddress)
	add("createdAt", fe.CreatedAt)
	add("description", fe.Description)
	add("items", fe.ItemList)
	for i, ie := range fe.Items {
		if ie.Name {
			add(fmt.Sprintf("items[%d].name", i), "can't be empty")
		}
		if ie.Quantity {
			add(fmt.Sprintf("items[%d].quantity", i), "must be greater than zero")
		}
		if ie.Price {
			add(fmt.Sprintf("items[%d].price", i), "must be greater than zero")
		}
	}
	return lines
}

func truncate(s string, maxLen int) string {
	r := []rune(s)
	if len(r) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return string(r[:maxLen])
	}
	return string(r[:maxLen-3]) + "..."
}

func init() {
	invoicesCmd.AddCommand(invoicesListCmd)
	invoicesCmd.AddCommand(invoicesShowCmd)
	invoicesCmd.AddCommand(invoicesItemsCmd)
	invoicesCmd.AddCommand(invoicesCreateCmd)
	invoicesCmd.AddCommand(invoicesMarkPaidCmd)
	invoicesCmd.AddCommand(invoicesDeleteCmd)
	invoicesCmd.AddCommand(invoicesExportCmd)

	invoicesListCmd.Flags().StringSlice("status", nil, "Filter by status (draft, pending, paid); repeatable")

	invoicesCreateCmd.Flags().String("description", "", "Project description")
	invoicesCreateCmd.Flags().String("date", "", "Invoice date (YYYY-MM-DD)")
	invoicesCreateCmd.Flags().String("terms", "", "Payment terms (e.g. \"Net 30 Days\")")
	invoicesCreateCmd.Flags().String("client-name", "", "Client name")
	invoicesCreateCmd.Flags().String("client-email", "", "Client email")
	invoicesCreateCmd.Flags().String("from-street", "", "Sender street address")
	invoicesCreateCmd.Flags().String("from-city", "", "Sender city")
	invoicesCreateCmd.Flags().String("from-postcode", "", "Sender post code")
	invoicesCreateCmd.Flags().String("from-country", "", "Sender country")
	invoicesCreateCmd.Flags().String("to-street", "", "Client street address")
	invoicesCreateCmd.Flags().String("to-city", "", "Client city")
	invoicesCreateCmd.Flags().String("to-postcode", "", "Client post code")
	invoicesCreateCmd.Flags().String("to-country", "", "Client country")
	invoicesCreateCmd.Flags().StringArray("item", nil, "Line item as name:quantity:price; repeatable")
	invoicesCreateCmd.Flags().Bool("draft", false, "Save as draft without validation")

	invoicesDeleteCmd.Flags().Bool("yes", false, "Skip the confirmation prompt")

	invoicesExportCmd.Flags().String("out", "", "Output file path (defaults to the configured output dir)")
}
