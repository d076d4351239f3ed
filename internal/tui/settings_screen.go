package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/andy/billfold/internal/app"
	"github.com/andy/billfold/internal/domain"
)

type settingsMode int

const (
	settingsModeView settingsMode = iota
	settingsModeEdit
)

// settings form field indices
const (
	settingsFieldBaseURL = iota
	settingsFieldTimeout
	settingsFieldTerms
	settingsFieldOutputDir
	settingsFieldCount
)

type settingsSavedMsg struct {
	err error
}

// SettingsModel manages the settings screen
type SettingsModel struct {
	app        *app.App
	mode       settingsMode
	fields     []textinput.Model
	fieldFocus int
	err        error
	statusMsg  string
}

// NewSettingsModel creates a new settings screen
func NewSettingsModel(a *app.App) tea.Model {
	return &SettingsModel{
		app:  a,
		mode: settingsModeView,
	}
}

// IsCapturingInput returns true when the edit form is active
func (m *SettingsModel) IsCapturingInput() bool {
	return m.mode == settingsModeEdit
}

func (m *SettingsModel) Init() tea.Cmd {
	return nil
}

func (m *SettingsModel) initForm() {
	m.fields = make([]textinput.Model, settingsFieldCount)
	cfg := m.app.Config

	m.fields[settingsFieldBaseURL] = textinput.New()
	m.fields[settingsFieldBaseURL].Placeholder = "http://localhost:3001/api"
	m.fields[settingsFieldBaseURL].CharLimit = 256
	m.fields[settingsFieldBaseURL].Width = 50
	m.fields[settingsFieldBaseURL].SetValue(cfg.API.BaseURL)

	m.fields[settingsFieldTimeout] = textinput.New()
	m.fields[settingsFieldTimeout].Placeholder = "10"
	m.fields[settingsFieldTimeout].CharLimit = 5
	m.fields[settingsFieldTimeout].Width = 10
	m.fields[settingsFieldTimeout].SetValue(strconv.Itoa(cfg.API.TimeoutSeconds))

	m.fields[settingsFieldTerms] = textinput.New()
	m.fields[settingsFieldTerms].Placeholder = domain.DefaultPaymentTerms
	m.fields[settingsFieldTerms].CharLimit = 20
	m.fields[settingsFieldTerms].Width = 20
	m.fields[settingsFieldTerms].SetValue(cfg.Invoice.DefaultTerms)

	m.fields[settingsFieldOutputDir] = textinput.New()
	m.fields[settingsFieldOutputDir].Placeholder = "/path/to/invoices"
	m.fields[settingsFieldOutputDir].CharLimit = 256
	m.fields[settingsFieldOutputDir].Width = 50
	m.fields[settingsFieldOutputDir].SetValue(cfg.Invoice.OutputDir)

	m.fieldFocus = settingsFieldBaseURL
	m.fields[settingsFieldBaseURL].Focus()
}

func (m *SettingsModel) saveSettings() tea.Cmd {
	return func() tea.Msg {
		baseURL := strings.TrimSpace(m.fields[settingsFieldBaseURL].Value())
		timeoutStr := m.fields[settingsFieldTimeout].Value()
		terms := strings.TrimSpace(m.fields[settingsFieldTerms].Value())
		outputDir := m.fields[settingsFieldOutputDir].Value()

		if baseURL == "" {
			return settingsSavedMsg{err: fmt.Errorf("API base URL is required")}
		}

		timeout, err := strconv.Atoi(timeoutStr)
		if err != nil || timeout <= 0 {
			return settingsSavedMsg{err: fmt.Errorf("timeout must be a positive number of seconds")}
		}

		if terms != "" && !validTerms(terms) {
			return settingsSavedMsg{err: fmt.Errorf("payment terms must be one of: %s",
				strings.Join(domain.PaymentTermOptions, ", "))}
		}
		if outputDir == "" {
			return settingsSavedMsg{err: fmt.Errorf("output directory is required")}
		}

		m.app.Config.API.BaseURL = baseURL
		m.app.Config.API.TimeoutSeconds = timeout
		m.app.Config.Invoice.DefaultTerms = terms
		m.app.Config.Invoice.OutputDir = outputDir

		if err := m.app.SaveConfig(); err != nil {
			return settingsSavedMsg{err: fmt.Errorf("failed to save config: %w", err)}
		}

		return settingsSavedMsg{}
	}
}

func validTerms(terms string) bool {
	for _, opt := range domain.PaymentTermOptions {
		if opt == terms {
			return true
		}
	}
	return false
}

// toggleTheme flips dark mode, re-applies the palette, and persists the choice
func (m *SettingsModel) toggleTheme() tea.Cmd {
	dark := !m.app.Config.DarkMode()
	m.app.Config.SetDarkMode(dark)
	applyTheme(dark)
	return func() tea.Msg {
		if err := m.app.SaveConfig(); err != nil {
			return settingsSavedMsg{err: fmt.Errorf("failed to save config: %w", err)}
		}
		return settingsSavedMsg{}
	}
}

func (m *SettingsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if m.mode == settingsModeEdit {
		return m.updateForm(msg)
	}

	switch msg := msg.(type) {
	case settingsSavedMsg:
		if msg.err != nil {
			m.err = msg.err
		}
		return m, nil

	case tea.KeyMsg:
		m.err = nil
		switch msg.String() {
		case "enter":
			m.mode = settingsModeEdit
			m.statusMsg = ""
			m.initForm()
			return m, m.fields[m.fieldFocus].Focus()
		case "t":
			m.statusMsg = "Theme saved"
			return m, m.toggleTheme()
		}
	}

	return m, nil
}

func (m *SettingsModel) updateForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case settingsSavedMsg:
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.mode = settingsModeView
		m.statusMsg = "Settings saved"
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "esc":
			m.mode = settingsModeView
			m.err = nil
			return m, nil

		case "tab", "down":
			m.fields[m.fieldFocus].Blur()
			m.fieldFocus = (m.fieldFocus + 1) % settingsFieldCount
			return m, m.fields[m.fieldFocus].Focus()

		case "shift+tab", "up":
			m.fields[m.fieldFocus].Blur()
			m.fieldFocus = (m.fieldFocus - 1 + settingsFieldCount) % settingsFieldCount
			return m, m.fields[m.fieldFocus].Focus()

		case "enter":
			if m.fieldFocus == settingsFieldCount-1 {
				return m, m.saveSettings()
			}
			m.fields[m.fieldFocus].Blur()
			m.fieldFocus++
			return m, m.fields[m.fieldFocus].Focus()

		case "ctrl+s":
			return m, m.saveSettings()
		}
	}

	// Update the focused text input
	var cmd tea.Cmd
	m.fields[m.fieldFocus], cmd = m.fields[m.fieldFocus].Update(msg)
	return m, cmd
}

func (m *SettingsModel) View() string {
	if m.mode == settingsModeEdit {
		return m.viewForm()
	}
	return m.viewSettings()
}

func (m *SettingsModel) viewSettings() string {
	var s string
	s += titleStyle.Render("Settings") + "\n\n"

	if m.statusMsg != "" {
		s += lipgloss.NewStyle().Foreground(successColor).
			Render("  "+m.statusMsg) + "\n\n"
	}
	if m.err != nil {
		s += lipgloss.NewStyle().Foreground(errorColor).
			Render(fmt.Sprintf("  Error: %v", m.err)) + "\n\n"
	}

	cfg := m.app.Config

	labelStyle := lipgloss.NewStyle().Bold(true).Width(22)
	valueStyle := lipgloss.NewStyle().Foreground(primaryColor)

	theme := "Light"
	if cfg.DarkMode() {
		theme = "Dark"
	}

	terms := cfg.Invoice.DefaultTerms
	if terms == "" {
		terms = domain.DefaultPaymentTerms
	}

	s += subtitleStyle.Render("  Appearance") + "\n\n"
	s += fmt.Sprintf("  %s %s\n\n", labelStyle.Render("Theme:"), valueStyle.Render(theme))

	s += subtitleStyle.Render("  Invoice Service") + "\n\n"
	s += fmt.Sprintf("  %s %s\n", labelStyle.Render("API Base URL:"), valueStyle.Render(cfg.API.BaseURL))
	s += fmt.Sprintf("  %s %s\n\n", labelStyle.Render("Request Timeout:"), valueStyle.Render(fmt.Sprintf("%ds", cfg.API.TimeoutSeconds)))

	s += subtitleStyle.Render("  Invoices") + "\n\n"
	s += fmt.Sprintf("  %s %s\n", labelStyle.Render("Default Terms:"), valueStyle.Render(terms))
	s += fmt.Sprintf("  %s %s\n", labelStyle.Render("PDF Output Dir:"), valueStyle.Render(cfg.Invoice.OutputDir))

	s += "\n" + helpStyle.Render("  t: toggle theme  enter: edit settings")

	return s
}

func (m *SettingsModel) viewForm() string {
	var s string
	s += titleStyle.Render("Edit Settings") + "\n\n"

	labels := []string{"API Base URL:", "Timeout (seconds):", "Default Terms:", "PDF Output Dir:"}
	for i, label := range labels {
		indicator := "  "
		if i == m.fieldFocus {
			indicator = "> "
		}
		labelStyle := subtitleStyle
		if i == m.fieldFocus {
			labelStyle = lipgloss.NewStyle().Bold(true).Foreground(primaryColor)
		}
		s += fmt.Sprintf("%s%s\n  %s\n\n", indicator, labelStyle.Render(label), m.fields[i].View())
	}

	if m.err != nil {
		s += lipgloss.NewStyle().Foreground(errorColor).
			Render(fmt.Sprintf("  Error: %v", m.err)) + "\n\n"
	}

	s += helpStyle.Render("  tab/shift+tab: navigate fields  ctrl+s: save  enter: next/save  esc: cancel")

	return s
}
