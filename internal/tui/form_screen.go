package tui

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/andy/billfold/internal/app"
	"github.com/andy/billfold/internal/domain"
	"github.com/andy/billfold/internal/form"
)

// invoiceFormModel renders the create/edit invoice form. Field state lives
// in form.Form; the inputs here are just the text widgets in front of it.
type invoiceFormModel struct {
	app     *app.App
	fm      *form.Form
	editing bool

	paths  []string
	labels []string
	inputs []textinput.Model
	focus  int

	termsIdx int

	// Item fields that failed numeric parsing, keyed by path
	numErrs map[string]bool

	err       error
	cancelled bool
	submitted *domain.Invoice
}

// newInvoiceForm builds a form model. A nil invoice starts a fresh invoice;
// otherwise the given invoice is edited in place.
func newInvoiceForm(a *app.App, inv *domain.Invoice) *invoiceFormModel {
	m := &invoiceFormModel{app: a, numErrs: make(map[string]bool)}
	if inv == nil {
		m.fm = form.New(a.Config.Invoice.DefaultTerms)
	} else {
		m.fm = form.Edit(*inv)
		m.editing = true
	}
	m.buildInputs()
	return m
}

func (m *invoiceFormModel) Focus() tea.Cmd {
	return m.setFocus(0)
}

// buildInputs lays the fields out in form order from the current working copy
func (m *invoiceFormModel) buildInputs() {
	inv := m.fm.Invoice()

	type field struct {
		path, label, value string
		width              int
	}

	fields := []field{
		{"senderAddress.street", "Street Address", inv.SenderAddress.Street, 40},
		{"senderAddress.city", "City", inv.SenderAddress.City, 24},
		{"senderAddress.postCode", "Post Code", inv.SenderAddress.PostCode, 12},
		{"senderAddress.country", "Country", inv.SenderAddress.Country, 24},
		{"clientName", "Client's Name", inv.ClientName, 32},
		{"clientEmail", "Client's Email", inv.ClientEmail, 32},
		{"clientAddress.street", "Street Address", inv.ClientAddress.Street, 40},
		{"clientAddress.city", "City", inv.ClientAddress.City, 24},
		{"clientAddress.postCode", "Post Code", inv.ClientAddress.PostCode, 12},
		{"clientAddress.country", "Country", inv.ClientAddress.Country, 24},
		{"createdAt", "Invoice Date (YYYY-MM-DD)", inv.CreatedAt, 14},
		{"paymentTerms", "Payment Terms", inv.PaymentTerms, 16},
		{"description", "Project Description", inv.Description, 48},
	}

	for i, item := range inv.Items {
		fields = append(fields,
			field{fmt.Sprintf("items[%d].name", i), "Item Name", item.Name, 28},
			field{fmt.Sprintf("items[%d].quantity", i), "Qty", formatNum(item.Quantity), 8},
			field{fmt.Sprintf("items[%d].price", i), "Price", formatNum(item.Price), 12},
		)
	}

	m.paths = make([]string, len(fields))
	m.labels = make([]string, len(fields))
	m.inputs = make([]textinput.Model, len(fields))
	m.termsIdx = -1

	for i, f := range fields {
		m.paths[i] = f.path
		m.labels[i] = f.label
		if f.path == "paymentTerms" {
			m.termsIdx = i
			continue
		}
		in := textinput.New()
		in.CharLimit = 256
		in.Width = f.width
		in.SetValue(f.value)
		m.inputs[i] = in
	}
}

func formatNum(n float64) string {
	if n == 0 {
		return ""
	}
	return strconv.FormatFloat(n, 'f', -1, 64)
}

func (m *invoiceFormModel) setFocus(i int) tea.Cmd {
	for j := range m.inputs {
		m.inputs[j].Blur()
	}
	n := len(m.paths)
	m.focus = ((i % n) + n) % n
	if m.focus == m.termsIdx {
		return nil
	}
	return m.inputs[m.focus].Focus()
}

// focusPath moves focus to the field with the given path, if present
func (m *invoiceFormModel) focusPath(path string) tea.Cmd {
	for i, p := range m.paths {
		if p == path {
			return m.setFocus(i)
		}
	}
	return nil
}

// commitFocused pushes the focused widget's value into the form state
func (m *invoiceFormModel) commitFocused() {
	if m.focus == m.termsIdx {
		return
	}
	m.applyField(m.paths[m.focus], m.inputs[m.focus].Value())
}

// syncAll pushes every widget value into the form state
func (m *invoiceFormModel) syncAll() {
	for i, path := range m.paths {
		if i == m.termsIdx {
			continue
		}
		m.applyField(path, m.inputs[i].Value())
	}
}

func (m *invoiceFormModel) applyField(path, value string) {
	switch {
	case strings.HasPrefix(path, "senderAddress."):
		m.fm.SetAddressField(form.SectionSender, strings.TrimPrefix(path, "senderAddress."), value)
	case strings.HasPrefix(path, "clientAddress."):
		m.fm.SetAddressField(form.SectionClient, strings.TrimPrefix(path, "clientAddress."), value)
	case strings.HasPrefix(path, "items["):
		idx, fieldName, ok := splitItemPath(path)
		if !ok {
			return
		}
		if fieldName != "name" && strings.TrimSpace(value) == "" {
			// A cleared numeric field zeroes the working copy so the
			// greater-than-zero rule flags it on submit
			delete(m.numErrs, path)
			m.fm.SetItem(idx, fieldName, "0")
			return
		}
		if err := m.fm.SetItem(idx, fieldName, value); err != nil {
			if errors.Is(err, form.ErrInvalidNumber) {
				m.numErrs[path] = true
			}
			return
		}
		delete(m.numErrs, path)
	default:
		m.fm.SetField(path, value)
	}
}

func splitItemPath(path string) (int, string, bool) {
	end := strings.Index(path, "]")
	if !strings.HasPrefix(path, "items[") || end < 0 {
		return 0, "", false
	}
	idx, err := strconv.Atoi(path[len("items["):end])
	if err != nil {
		return 0, "", false
	}
	return idx, path[end+2:], true
}

// itemIndexAtFocus returns the line item the focused field belongs to, or -1
func (m *invoiceFormModel) itemIndexAtFocus() int {
	if idx, _, ok := splitItemPath(m.paths[m.focus]); ok {
		return idx
	}
	return -1
}

func (m *invoiceFormModel) cycleTerms(delta int) {
	inv := m.fm.Invoice()
	current := 0
	for i, opt := range domain.PaymentTermOptions {
		if opt == inv.PaymentTerms {
			current = i
			break
		}
	}
	n := len(domain.PaymentTermOptions)
	next := ((current+delta)%n + n) % n
	m.fm.SetPaymentTerms(domain.PaymentTermOptions[next])
}

func (m *invoiceFormModel) submit(asDraft bool) tea.Cmd {
	m.syncAll()

	if !asDraft && len(m.numErrs) > 0 {
		m.err = form.ErrInvalidNumber
		for i, p := range m.paths {
			if m.numErrs[p] {
				return m.setFocus(i)
			}
		}
		return nil
	}

	inv, err := m.fm.Submit(asDraft)
	if err != nil {
		m.err = err
		if errors.Is(err, form.ErrValidation) {
			return m.focusPath(m.fm.FirstInvalid())
		}
		return nil
	}

	m.err = nil
	m.submitted = inv
	return nil
}

// Update handles one message. Results are exposed as flags the parent
// screen inspects: cancelled, submitted.
func (m *invoiceFormModel) Update(msg tea.Msg) tea.Cmd {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		if m.focus != m.termsIdx {
			var cmd tea.Cmd
			m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)
			return cmd
		}
		return nil
	}

	switch keyMsg.String() {
	case "esc":
		m.cancelled = true
		return nil

	case "tab", "down":
		m.commitFocused()
		return m.setFocus(m.focus + 1)

	case "shift+tab", "up":
		m.commitFocused()
		return m.setFocus(m.focus - 1)

	case "enter":
		m.commitFocused()
		return m.setFocus(m.focus + 1)

	case "ctrl+s":
		return m.submit(false)

	case "ctrl+d":
		return m.submit(true)

	case "ctrl+n":
		m.syncAll()
		m.fm.AddItem()
		m.buildInputs()
		// Jump to the new item's name field
		return m.focusPath(fmt.Sprintf("items[%d].name", m.fm.ItemCount()-1))

	case "ctrl+x":
		m.syncAll()
		idx := m.itemIndexAtFocus()
		if idx < 0 {
			idx = m.fm.ItemCount() - 1
		}
		if err := m.fm.RemoveItem(idx); err != nil {
			m.err = err
			return nil
		}
		for p := range m.numErrs {
			if strings.HasPrefix(p, "items[") {
				delete(m.numErrs, p)
			}
		}
		m.err = nil
		m.buildInputs()
		if idx >= m.fm.ItemCount() {
			idx = m.fm.ItemCount() - 1
		}
		return m.focusPath(fmt.Sprintf("items[%d].name", idx))

	case "left", "right":
		if m.focus == m.termsIdx {
			if keyMsg.String() == "left" {
				m.cycleTerms(-1)
			} else {
				m.cycleTerms(1)
			}
			return nil
		}
	}

	if m.focus == m.termsIdx {
		return nil
	}
	var cmd tea.Cmd
	m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)
	// Keep the derived total current while item fields are typed into
	if strings.HasPrefix(m.paths[m.focus], "items[") {
		m.applyField(m.paths[m.focus], m.inputs[m.focus].Value())
	}
	return cmd
}

func (m *invoiceFormModel) View() string {
	inv := m.fm.Invoice()
	fe := m.fm.Errors()

	var s string
	if m.editing {
		s += titleStyle.Render(fmt.Sprintf("Edit Invoice #%s", inv.ID)) + "\n\n"
	} else {
		s += titleStyle.Render("New Invoice") + "\n\n"
	}

	section := func(name string) {
		s += lipgloss.NewStyle().Bold(true).Foreground(accentColor).Render("  "+name) + "\n\n"
	}

	renderField := func(i int) {
		indicator := "  "
		labelStyle := subtitleStyle
		if i == m.focus {
			indicator = "> "
			labelStyle = lipgloss.NewStyle().Bold(true).Foreground(primaryColor)
		}

		if i == m.termsIdx {
			s += fmt.Sprintf("%s%s\n    < %s >\n", indicator, labelStyle.Render(m.labels[i]), inv.PaymentTerms)
		} else {
			s += fmt.Sprintf("%s%s\n    %s\n", indicator, labelStyle.Render(m.labels[i]), m.inputs[i].View())
		}

		if msg := m.fieldError(m.paths[i], fe); msg != "" {
			s += lipgloss.NewStyle().Foreground(errorColor).Render("    "+msg) + "\n"
		}
		s += "\n"
	}

	section("Bill From")
	for i := 0; i < 4; i++ {
		renderField(i)
	}
	section("Bill To")
	for i := 4; i < 10; i++ {
		renderField(i)
	}
	section("Details")
	for i := 10; i < 13; i++ {
		renderField(i)
	}

	section("Item List")
	if fe.ItemList != "" {
		s += lipgloss.NewStyle().Foreground(errorColor).Render("  "+fe.ItemList) + "\n\n"
	}
	for i := 13; i < len(m.paths); i++ {
		renderField(i)
	}

	s += fmt.Sprintf("  Total: %s\n", formatMoney(inv.Total))

	if m.err != nil && !errors.Is(m.err, form.ErrValidation) {
		s += "\n" + lipgloss.NewStyle().Foreground(errorColor).
			Render(fmt.Sprintf("  Error: %v", m.err)) + "\n"
	}

	s += "\n" + helpStyle.Render("  tab: next field  ctrl+n: add item  ctrl+x: remove item") + "\n"
	s += helpStyle.Render("  ctrl+s: save & send  ctrl+d: save as draft  esc: discard")

	return s
}

// fieldError returns the inline message for one field path
func (m *invoiceFormModel) fieldError(path string, fe domain.FormErrors) string {
	if m.numErrs[path] {
		return "must be a number"
	}

	switch path {
	case "clientName":
		return fe.ClientName
	case "clientEmail":
		return fe.ClientEmail
	case "createdAt":
		return fe.CreatedAt
	case "description":
		return fe.Description
	}

	addrErr := func(ae domain.AddressErrors, field string) string {
		switch field {
		case "street":
			return ae.Street
		case "city":
			return ae.City
		case "postCode":
			return ae.PostCode
		case "country":
			return ae.Country
		}
		return ""
	}
	if strings.HasPrefix(path, "senderAddress.") {
		return addrErr(fe.SenderAddress, strings.TrimPrefix(path, "senderAddress."))
	}
	if strings.HasPrefix(path, "clientAddress.") {
		return addrErr(fe.ClientAddress, strings.TrimPrefix(path, "clientAddress."))
	}

	if idx, field, ok := splitItemPath(path); ok && idx < len(fe.Items) {
		ie := fe.Items[idx]
		flagged := (field == "name" && ie.Name) ||
			(field == "quantity" && ie.Quantity) ||
			(field == "price" && ie.Price)
		if flagged {
			if field == "name" {
				return "can't be empty"
			}
			return "must be greater than zero"
		}
	}

	return ""
}
