package tui

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/andy/billfold/internal/app"
	"github.com/andy/billfold/internal/domain"
	"github.com/andy/billfold/internal/export"
	"github.com/andy/billfold/internal/filter"
	"github.com/andy/billfold/internal/service"
)

type invoiceViewMode int

const (
	invoiceViewList          invoiceViewMode = iota
	invoiceViewFilter                        // Status filter overlay
	invoiceViewDetail                        // Viewing a single invoice
	invoiceViewConfirmDelete                 // Awaiting delete confirmation
	invoiceViewForm                          // Create/edit form
)

// InvoicesModel displays invoices in list and detail views
type InvoicesModel struct {
	app          *app.App
	mode         invoiceViewMode
	invoices     []domain.Invoice
	statusFilter *filter.Filter
	filterCursor int
	cursor       int
	selected     *domain.Invoice
	form         *invoiceFormModel
	loading      bool
	err          error
	statusMsg    string
}

// IsCapturingInput returns true when the invoice form is active
func (m *InvoicesModel) IsCapturingInput() bool {
	return m.mode == invoiceViewForm
}

type invoicesDataMsg struct {
	invoices []domain.Invoice
	err      error
}

type invoiceDetailMsg struct {
	invoice *domain.Invoice
	err     error
}

type invoiceSavedMsg struct {
	invoice *domain.Invoice
	err     error
}

type invoicePaidMsg struct {
	invoice *domain.Invoice
	err     error
}

type invoiceDeletedMsg struct {
	id  string
	err error
}

type exportDoneMsg struct {
	path string
	err  error
}

// NewInvoicesModel creates a new invoices screen model
func NewInvoicesModel(a *app.App) tea.Model {
	return &InvoicesModel{
		app:          a,
		mode:         invoiceViewList,
		statusFilter: filter.New(),
		loading:      true,
	}
}

func (m *InvoicesModel) Init() tea.Cmd {
	return m.loadInvoices()
}

func (m *InvoicesModel) loadInvoices() tea.Cmd {
	return func() tea.Msg {
		invoices, err := m.app.InvoiceService.ListInvoices(context.Background())
		if err != nil {
			return invoicesDataMsg{err: err}
		}
		return invoicesDataMsg{invoices: invoices}
	}
}

func (m *InvoicesModel) loadDetail(id string) tea.Cmd {
	return func() tea.Msg {
		invoice, err := m.app.InvoiceService.GetInvoice(context.Background(), id)
		if err != nil {
			return invoiceDetailMsg{err: err}
		}
		return invoiceDetailMsg{invoice: invoice}
	}
}

func (m *InvoicesModel) markPaid(id string) tea.Cmd {
	return func() tea.Msg {
		invoice, err := m.app.InvoiceService.MarkPaid(context.Background(), id)
		if err != nil {
			return invoicePaidMsg{err: err}
		}
		return invoicePaidMsg{invoice: invoice}
	}
}

func (m *InvoicesModel) deleteInvoice(id string) tea.Cmd {
	return func() tea.Msg {
		if err := m.app.InvoiceService.DeleteInvoice(context.Background(), id); err != nil {
			return invoiceDeletedMsg{err: err}
		}
		return invoiceDeletedMsg{id: id}
	}
}

func (m *InvoicesModel) exportPDF(inv domain.Invoice) tea.Cmd {
	outputDir := m.app.Config.Invoice.OutputDir
	return func() tea.Msg {
		path := filepath.Join(outputDir, export.DefaultFileName(inv.ID))
		if err := export.WritePDF(&inv, path); err != nil {
			return exportDoneMsg{err: err}
		}
		return exportDoneMsg{path: path}
	}
}

// visible returns the invoices that pass the current status filter
func (m *InvoicesModel) visible() []domain.Invoice {
	return m.statusFilter.Apply(m.invoices)
}

func (m *InvoicesModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case RefreshDataMsg:
		m.loading = true
		return m, m.loadInvoices()

	case invoicesDataMsg:
		m.loading = false
		m.err = msg.err
		m.invoices = msg.invoices
		if n := len(m.visible()); m.cursor >= n && n > 0 {
			m.cursor = n - 1
		}
		return m, nil

	case invoiceDetailMsg:
		m.loading = false
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.selected = msg.invoice
		m.mode = invoiceViewDetail
		return m, nil

	case invoiceSavedMsg:
		m.loading = false
		if msg.err != nil {
			// Keep the form open so nothing the user typed is lost
			if m.form != nil {
				m.form.err = msg.err
			}
			return m, nil
		}
		m.statusMsg = fmt.Sprintf("Invoice %s saved", msg.invoice.ID)
		m.mode = invoiceViewList
		m.form = nil
		m.loading = true
		return m, m.loadInvoices()

	case invoicePaidMsg:
		m.loading = false
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.selected = msg.invoice
		m.statusMsg = fmt.Sprintf("Invoice %s marked as paid", msg.invoice.ID)
		return m, m.loadInvoices()

	case invoiceDeletedMsg:
		m.loading = false
		if msg.err != nil {
			m.err = msg.err
			m.mode = invoiceViewDetail
			return m, nil
		}
		m.statusMsg = fmt.Sprintf("Invoice %s deleted", msg.id)
		m.mode = invoiceViewList
		m.selected = nil
		m.loading = true
		return m, m.loadInvoices()

	case exportDoneMsg:
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.statusMsg = fmt.Sprintf("PDF written to %s", msg.path)
		return m, nil

	case tea.KeyMsg:
		if m.loading {
			return m, nil
		}

		switch m.mode {
		case invoiceViewList:
			return m.updateList(msg)
		case invoiceViewFilter:
			return m.updateFilter(msg)
		case invoiceViewDetail:
			return m.updateDetail(msg)
		case invoiceViewConfirmDelete:
			return m.updateConfirmDelete(msg)
		case invoiceViewForm:
			return m.updateForm(msg)
		}
	}

	// Forward non-key messages to the form (cursor blink, etc.)
	if m.mode == invoiceViewForm && m.form != nil {
		cmd := m.form.Update(msg)
		return m, cmd
	}

	return m, nil
}

func (m *InvoicesModel) updateList(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	m.err = nil
	visible := m.visible()

	switch {
	case key.Matches(msg, DefaultKeyMap.Up):
		if m.cursor > 0 {
			m.cursor--
		}
	case key.Matches(msg, DefaultKeyMap.Down):
		if m.cursor < len(visible)-1 {
			m.cursor++
		}
	case key.Matches(msg, DefaultKeyMap.Select):
		if m.cursor < len(visible) {
			m.loading = true
			return m, m.loadDetail(visible[m.cursor].ID)
		}
	case key.Matches(msg, DefaultKeyMap.Filter):
		m.filterCursor = 0
		m.mode = invoiceViewFilter
	case key.Matches(msg, DefaultKeyMap.New):
		m.statusMsg = ""
		m.form = newInvoiceForm(m.app, nil)
		m.mode = invoiceViewForm
		return m, m.form.Focus()
	}

	return m, nil
}

// filterOptions is the fixed set of statuses the filter overlay offers
var filterOptions = []domain.InvoiceStatus{
	domain.InvoiceStatusDraft,
	domain.InvoiceStatusPending,
	domain.InvoiceStatusPaid,
}

func (m *InvoicesModel) updateFilter(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, DefaultKeyMap.Back), key.Matches(msg, DefaultKeyMap.Filter):
		m.mode = invoiceViewList
		if n := len(m.visible()); m.cursor >= n && n > 0 {
			m.cursor = n - 1
		} else if n == 0 {
			m.cursor = 0
		}
	case key.Matches(msg, DefaultKeyMap.Up):
		if m.filterCursor > 0 {
			m.filterCursor--
		}
	case key.Matches(msg, DefaultKeyMap.Down):
		if m.filterCursor < len(filterOptions)-1 {
			m.filterCursor++
		}
	case key.Matches(msg, DefaultKeyMap.Select), msg.String() == " ":
		m.statusFilter.Toggle(string(filterOptions[m.filterCursor]))
	case msg.String() == "c":
		m.statusFilter.Clear()
	}
	return m, nil
}

func (m *InvoicesModel) updateDetail(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, DefaultKeyMap.Back):
		m.mode = invoiceViewList
		m.selected = nil
		m.err = nil
	case key.Matches(msg, DefaultKeyMap.Edit):
		if m.selected != nil {
			inv := *m.selected
			m.statusMsg = ""
			m.form = newInvoiceForm(m.app, &inv)
			m.mode = invoiceViewForm
			return m, m.form.Focus()
		}
	case key.Matches(msg, DefaultKeyMap.Paid):
		if m.selected != nil {
			m.err = nil
			m.loading = true
			return m, m.markPaid(m.selected.ID)
		}
	case key.Matches(msg, DefaultKeyMap.Delete):
		if m.selected != nil {
			m.mode = invoiceViewConfirmDelete
		}
	case key.Matches(msg, DefaultKeyMap.Export):
		if m.selected != nil {
			m.err = nil
			return m, m.exportPDF(*m.selected)
		}
	}
	return m, nil
}

func (m *InvoicesModel) updateConfirmDelete(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "y", "Y":
		m.loading = true
		return m, m.deleteInvoice(m.selected.ID)
	case "n", "N", "esc":
		m.mode = invoiceViewDetail
	}
	return m, nil
}

func (m *InvoicesModel) updateForm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.form == nil {
		m.mode = invoiceViewList
		return m, nil
	}

	cmd := m.form.Update(msg)

	if m.form.cancelled {
		m.mode = invoiceViewList
		m.form = nil
		return m, nil
	}
	if inv := m.form.submitted; inv != nil {
		m.form.submitted = nil
		m.loading = true
		edit := m.form.editing
		return m, m.saveInvoice(inv, edit)
	}

	return m, cmd
}

func (m *InvoicesModel) saveInvoice(inv *domain.Invoice, edit bool) tea.Cmd {
	svc := m.app.InvoiceService
	return func() tea.Msg {
		var saved *domain.Invoice
		var err error
		if edit {
			saved, err = svc.SaveEdit(context.Background(), inv)
		} else {
			saved, err = svc.SaveNew(context.Background(), inv)
		}
		if err != nil {
			return invoiceSavedMsg{err: err}
		}
		return invoiceSavedMsg{invoice: saved}
	}
}

func (m *InvoicesModel) View() string {
	if m.loading {
		return "Loading..."
	}

	switch m.mode {
	case invoiceViewFilter:
		return m.viewFilter()
	case invoiceViewDetail:
		return m.viewDetail()
	case invoiceViewConfirmDelete:
		return m.viewConfirmDelete()
	case invoiceViewForm:
		if m.form != nil {
			return m.form.View()
		}
		return m.viewList()
	default:
		return m.viewList()
	}
}

func (m *InvoicesModel) viewList() string {
	var s string
	s += titleStyle.Render("Invoices") + "\n\n"

	if m.statusMsg != "" {
		s += lipgloss.NewStyle().Foreground(successColor).
			Render("  "+m.statusMsg) + "\n\n"
	}

	if m.err != nil {
		s += lipgloss.NewStyle().Foreground(errorColor).
			Render(fmt.Sprintf("  Error: %v", m.err)) + "\n\n"
	}

	visible := m.visible()

	if sel := m.statusFilter.Selected(); len(sel) > 0 {
		s += subtitleStyle.Render(fmt.Sprintf("  Filtered: %v", sel)) + "\n\n"
	}

	if len(m.invoices) == 0 && m.err == nil {
		s += subtitleStyle.Render("  No invoices yet. Press 'n' to create one.")
		return s
	}
	if len(visible) == 0 {
		s += subtitleStyle.Render("  No invoices match the current filter.")
		s += "\n\n" + helpStyle.Render("  f: filter")
		return s
	}

	s += subtitleStyle.Render(fmt.Sprintf(
		"  %-8s  %-14s  %-20s  %10s  %s",
		"ID", "Due", "Client", "Total", "Status",
	)) + "\n"

	for i, inv := range visible {
		invLine := fmt.Sprintf("  %-8s  %-14s  %-20s  %10s  %s",
			inv.ID,
			formatDate(inv.PaymentDue),
			truncateStr(inv.ClientName, 20),
			formatMoney(inv.Total),
			statusBadge(inv.Status),
		)

		if i == m.cursor {
			s += selectedStyle.Render(invLine) + "\n"
		} else {
			s += invLine + "\n"
		}
	}

	s += "\n" + helpStyle.Render("  j/k: navigate  enter: view  n: new  f: filter")

	return s
}

func (m *InvoicesModel) viewFilter() string {
	var s string
	s += titleStyle.Render("Filter by Status") + "\n\n"

	for i, status := range filterOptions {
		check := "[ ]"
		if m.statusFilter.IsSelected(string(status)) {
			check = "[x]"
		}
		line := fmt.Sprintf("  %s %s", check, status.Label())
		if i == m.filterCursor {
			s += lipgloss.NewStyle().Bold(true).Foreground(primaryColor).Render(line) + "\n"
		} else {
			s += line + "\n"
		}
	}

	s += "\n" + subtitleStyle.Render("  No selection shows every invoice.") + "\n"
	s += "\n" + helpStyle.Render("  j/k: navigate  space/enter: toggle  c: clear  esc: close")

	return s
}

func (m *InvoicesModel) viewDetail() string {
	inv := m.selected
	if inv == nil {
		return "No invoice selected"
	}

	var s string

	s += titleStyle.Render(fmt.Sprintf("Invoice %s", inv.ID)) + "  " + statusBadge(inv.Status) + "\n\n"

	if m.statusMsg != "" {
		s += lipgloss.NewStyle().Foreground(successColor).
			Render("  "+m.statusMsg) + "\n\n"
	}
	if m.err != nil {
		style := errorColor
		if errors.Is(m.err, service.ErrAlreadyPaid) {
			style = warningColor
		}
		s += lipgloss.NewStyle().Foreground(style).
			Render(fmt.Sprintf("  %v", m.err)) + "\n\n"
	}

	if inv.Description != "" {
		s += fmt.Sprintf("  %s\n\n", inv.Description)
	}

	s += fmt.Sprintf("  Invoice date:  %s\n", formatDate(inv.CreatedAt))
	s += fmt.Sprintf("  Payment due:   %s\n", formatDate(inv.PaymentDue))
	s += fmt.Sprintf("  Terms:         %s\n\n", inv.PaymentTerms)

	s += fmt.Sprintf("  Bill to:  %s <%s>\n", inv.ClientName, inv.ClientEmail)
	s += fmt.Sprintf("            %s, %s %s, %s\n\n",
		inv.ClientAddress.Street, inv.ClientAddress.City,
		inv.ClientAddress.PostCode, inv.ClientAddress.Country)

	s += fmt.Sprintf("  From:     %s, %s %s, %s\n\n",
		inv.SenderAddress.Street, inv.SenderAddress.City,
		inv.SenderAddress.PostCode, inv.SenderAddress.Country)

	if len(inv.Items) == 0 {
		s += subtitleStyle.Render("  No line items") + "\n"
	} else {
		s += subtitleStyle.Render(fmt.Sprintf(
			"  %-30s  %6s  %12s  %12s",
			"Item", "Qty", "Price", "Total",
		)) + "\n"

		for _, item := range inv.Items {
			s += fmt.Sprintf("  %-30s  %6g  %12s  %12s\n",
				truncateStr(item.Name, 30),
				item.Quantity,
				formatMoney(item.Price),
				formatMoney(item.LineTotal()),
			)
		}
	}

	s += "\n"
	s += lipgloss.NewStyle().Bold(true).Render(
		fmt.Sprintf("  Amount due:  %s", formatMoney(inv.Total)),
	) + "\n"

	s += "\n" + helpStyle.Render("  e: edit  p: mark paid  d: delete  x: export pdf  esc: back")

	return s
}

func (m *InvoicesModel) viewConfirmDelete() string {
	inv := m.selected
	if inv == nil {
		return "No invoice selected"
	}

	var s string
	s += titleStyle.Render("Confirm Deletion") + "\n\n"
	s += fmt.Sprintf("  Are you sure you want to delete invoice #%s?\n", inv.ID)
	s += subtitleStyle.Render("  This action cannot be undone.") + "\n"
	s += "\n" + helpStyle.Render("  y: delete  n/esc: cancel")
	return s
}

// statusBadge renders an invoice status with color
func statusBadge(status domain.InvoiceStatus) string {
	switch status {
	case domain.InvoiceStatusDraft:
		return lipgloss.NewStyle().Foreground(mutedColor).Render("DRAFT")
	case domain.InvoiceStatusPending:
		return lipgloss.NewStyle().Foreground(warningColor).Render("PENDING")
	case domain.InvoiceStatusPaid:
		return lipgloss.NewStyle().Foreground(successColor).Render("PAID")
	default:
		return lipgloss.NewStyle().Foreground(mutedColor).Render(string(status))
	}
}
