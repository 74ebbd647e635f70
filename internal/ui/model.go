package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"leadterm/internal/api"
	"leadterm/internal/board"
	"leadterm/internal/config"
	"leadterm/internal/crm"
	"leadterm/internal/theme"
)

// Program wraps the Bubble Tea program lifecycle.
type Program struct {
	program *tea.Program
}

// NewProgram constructs a new interactive session against the given API.
func NewProgram(client *api.Client, cfg *config.Store) *Program {
	m := newModel(client, cfg)
	return &Program{program: tea.NewProgram(m)}
}

// Start launches the Bubble Tea program.
func (p *Program) Start() error {
	if p == nil || p.program == nil {
		return fmt.Errorf("nil program")
	}
	return p.program.Start()
}

type viewState int

const (
	stateMainMenu viewState = iota
	stateLeads
	stateLeadDetail
	stateLeadForm
	stateCustomers
	stateCustomerForm
	stateProposal
	stateProposalItems
	stateNoteWizard
	stateTaskWizard
	stateSettings
)

type model struct {
	state       viewState
	prevStates  []viewState
	api         *api.Client
	cfg         *config.Store
	theme       theme.Theme
	width       int
	height      int
	infoMessage string
	errMessage  string
	showSplash  bool

	menuInput textinput.Model
	spin      spinner.Model
	loading   bool

	pipeline board.Pipeline
	leadList leadListModel

	leadForm leadFormModel

	customers         []crm.Contact
	filteredCustomers []crm.Contact
	groups            []crm.Group
	customerFilter    textinput.Model
	customerForm      customerFormModel

	proposal proposalModel

	detail leadDetailModel

	noteInput  textinput.Model
	taskWizard taskWizardModel

	settings settingsModel
}

type menuOption struct {
	id       string
	keywords []string
	synonyms []string
}

const (
	menuLeads       = "leads"
	menuAddLead     = "add-lead"
	menuCustomers   = "customers"
	menuAddCustomer = "add-customer"
	menuSettings    = "settings"
	menuQuit        = "quit"
)

var mainMenuOptions = []menuOption{
	{
		id:       menuLeads,
		keywords: []string{"leads", "board", "pipeline"},
		synonyms: []string{"1", "l", "leads", "lead", "board", "pipeline"},
	},
	{
		id:       menuAddLead,
		keywords: []string{"add"},
		synonyms: []string{"2", "add", "add lead", "new lead"},
	},
	{
		id:       menuCustomers,
		keywords: []string{"customers"},
		synonyms: []string{"3", "c", "customers", "customer", "contacts"},
	},
	{
		id:       menuAddCustomer,
		keywords: []string{"new"},
		synonyms: []string{"4", "add customer", "new customer"},
	},
	{
		id:       menuSettings,
		keywords: []string{"settings", "help"},
		synonyms: []string{"5", "settings", "help", "settings & help"},
	},
	{
		id:       menuQuit,
		keywords: []string{"quit", "exit"},
		synonyms: []string{"6", "quit", "exit", "exit.", "q"},
	},
}

const splashBanner = `    __               ____
   / /__  ____ _____/ / /____  _________ ___
  / / _ \/ __ '/ __  / __/ _ \/ ___/ __ '__ \
 / /  __/ /_/ / /_/ / /_/  __/ /  / / / / / /
/_/\___/\__,_/\__,_/\__/\___/_/  /_/ /_/ /_/
`

func newModel(client *api.Client, cfg *config.Store) *model {
	ti := textinput.New()
	ti.Prompt = ""
	ti.Placeholder = "Choose an option"
	ti.CharLimit = 32
	ti.Focus()

	filter := textinput.New()
	filter.Prompt = ""
	filter.Placeholder = "Type to search, / to go back"
	filter.CharLimit = 64

	custFilter := textinput.New()
	custFilter.Prompt = ""
	custFilter.Placeholder = "Type to search, / to go back"
	custFilter.CharLimit = 64

	note := textinput.New()
	note.Prompt = ""
	note.Placeholder = "Note details"
	note.CharLimit = 256

	sp := spinner.New()
	sp.Spinner = spinner.Dot

	m := model{
		state:          stateMainMenu,
		api:            client,
		cfg:            cfg,
		theme:          theme.Default(),
		menuInput:      ti,
		spin:           sp,
		customerFilter: custFilter,
		noteInput:      note,
		settings:       newSettingsModel(),
		showSplash:     true,
	}
	m.leadList = newLeadListModel(filter)
	return &m
}

func (m *model) Init() tea.Cmd {
	return textinput.Blink
}

func (m *model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			return m, tea.Quit
		}
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
	case spinner.TickMsg:
		if m.loading {
			var cmd tea.Cmd
			m.spin, cmd = m.spin.Update(msg)
			return m, cmd
		}
		return m, nil
	}

	if cmd, handled := m.handleAsync(msg); handled {
		return m, cmd
	}

	var cmd tea.Cmd
	switch m.state {
	case stateMainMenu:
		cmd = m.updateMainMenu(msg)
	case stateLeads:
		cmd = m.updateLeads(msg)
	case stateLeadDetail:
		cmd = m.updateLeadDetail(msg)
	case stateLeadForm:
		cmd = m.updateLeadForm(msg)
	case stateCustomers:
		cmd = m.updateCustomers(msg)
	case stateCustomerForm:
		cmd = m.updateCustomerForm(msg)
	case stateProposal:
		cmd = m.updateProposal(msg)
	case stateProposalItems:
		cmd = m.updateProposalItems(msg)
	case stateNoteWizard:
		cmd = m.updateNoteWizard(msg)
	case stateTaskWizard:
		cmd = m.updateTaskWizard(msg)
	case stateSettings:
		cmd = m.updateSettings(msg)
	default:
		m.state = stateMainMenu
		cmd = m.updateMainMenu(msg)
	}
	return m, cmd
}

func (m *model) View() string {
	switch m.state {
	case stateMainMenu:
		return m.viewMainMenu()
	case stateLeads:
		return m.viewLeads()
	case stateLeadDetail:
		return m.viewLeadDetail()
	case stateLeadForm:
		return m.viewLeadForm()
	case stateCustomers:
		return m.viewCustomers()
	case stateCustomerForm:
		return m.viewCustomerForm()
	case stateProposal:
		return m.viewProposal()
	case stateProposalItems:
		return m.viewProposalItems()
	case stateNoteWizard:
		return m.viewNoteWizard()
	case stateTaskWizard:
		return m.viewTaskWizard()
	case stateSettings:
		return m.viewSettings()
	default:
		return ""
	}
}

// handleAsync consumes completion messages from API commands. These arrive
// regardless of the current state; a status rollback must land even if the
// user has navigated away from the board.
func (m *model) handleAsync(msg tea.Msg) (tea.Cmd, bool) {
	switch msg := msg.(type) {
	case leadsLoadedMsg:
		m.loading = false
		m.pipeline.SetLeads(msg.leads)
		return nil, true
	case loadFailedMsg:
		m.loading = false
		m.errMessage = fmt.Sprintf("load %s: %v", msg.what, msg.err)
		// a form or detail surface is unusable without its subject
		// record, so a failed load falls back to where it was opened from
		switch m.state {
		case stateLeadForm:
			if m.leadForm.loading {
				m.leadForm = leadFormModel{}
				m.popState()
			}
		case stateCustomerForm:
			if m.customerForm.pendingLoads > 0 || (m.customerForm.editing && len(m.customerForm.form.fields) == 0) {
				m.customerForm = customerFormModel{}
				m.popState()
			}
		case stateLeadDetail:
			m.detail = leadDetailModel{}
			m.popState()
		}
		return nil, true
	case statusUpdatedMsg:
		return nil, true
	case statusUpdateFailedMsg:
		m.pipeline.Restore(msg.snapshot)
		m.errMessage = fmt.Sprintf("status update failed, board restored: %v", msg.err)
		return nil, true
	case leadSavedMsg:
		verb := "updated"
		if msg.created {
			verb = "created"
		}
		m.infoMessage = fmt.Sprintf("Lead '%s' %s", msg.name, verb)
		m.leadForm = leadFormModel{}
		m.popState()
		cmds := []tea.Cmd{m.refreshAfterLeadChange()}
		if m.state == stateLeadDetail {
			cmds = append(cmds, loadLeadDetailCmd(m.api, m.detail.lead.ID), m.setMenuInput(leadDetailPrompt, 64))
		}
		if m.state == stateMainMenu {
			cmds = append(cmds, m.setMenuInput("Choose an option", 32))
		}
		return batchCmds(cmds), true
	case leadDeletedMsg:
		m.pipeline.Remove(msg.id)
		m.infoMessage = fmt.Sprintf("Lead '%s' deleted", msg.name)
		return nil, true
	case submitFailedMsg:
		m.loading = false
		m.errMessage = fmt.Sprintf("%s failed: %v", msg.what, msg.err)
		return nil, true
	case customersLoadedMsg:
		m.loading = false
		m.customers = msg.customers
		m.applyCustomerFilter()
		return nil, true
	case groupsLoadedMsg:
		m.groups = msg.groups
		m.customerForm.groupsLoaded(msg.groups)
		return nil, true
	case customerEditLoadedMsg:
		m.loading = false
		m.customerForm.editLoaded(msg.contact)
		return nil, true
	case customerSavedMsg:
		verb := "updated"
		if msg.created {
			verb = "created"
		}
		m.infoMessage = fmt.Sprintf("Customer '%s' %s", msg.name, verb)
		m.customerForm = customerFormModel{}
		m.popState()
		cmds := []tea.Cmd{}
		if m.state == stateCustomers {
			cmds = append(cmds, loadCustomersCmd(m.api))
		}
		if m.state == stateMainMenu {
			cmds = append(cmds, m.setMenuInput("Choose an option", 32))
		}
		return batchCmds(cmds), true
	case leadEditLoadedMsg:
		m.loading = false
		m.leadForm = newLeadForm(&msg.lead)
		return nil, true
	case detailLoadedMsg:
		m.loading = false
		m.detail.lead = msg.lead
		m.detail.notes = msg.notes
		m.detail.tasks = msg.tasks
		m.detail.activity = msg.activity
		m.detail.err = ""
		return nil, true
	case noteAddedMsg:
		m.infoMessage = "Note added"
		if m.state == stateNoteWizard {
			m.popState()
		}
		return loadLeadDetailCmd(m.api, m.detail.lead.ID), true
	case taskAddedMsg:
		m.infoMessage = "Task added"
		if m.state == stateTaskWizard {
			m.popState()
		}
		return loadLeadDetailCmd(m.api, m.detail.lead.ID), true
	case taskToggledMsg:
		return loadLeadDetailCmd(m.api, m.detail.lead.ID), true
	case proposalSentMsg:
		m.infoMessage = fmt.Sprintf("Proposal '%s' created", msg.subject)
		m.proposal = proposalModel{}
		m.popState()
		if m.state == stateMainMenu {
			return m.setMenuInput("Choose an option", 32), true
		}
		return nil, true
	case exportDoneMsg:
		m.infoMessage = fmt.Sprintf("Exported %d lead(s) to %s", msg.count, msg.path)
		return nil, true
	case importDoneMsg:
		parts := []string{fmt.Sprintf("Imported %d lead(s)", msg.result.Created)}
		if msg.result.Skipped > 0 {
			parts = append(parts, fmt.Sprintf("skipped %d", msg.result.Skipped))
		}
		m.infoMessage = strings.Join(parts, ", ")
		if len(msg.result.Errors) > 0 {
			m.errMessage = strings.Join(msg.result.Errors, "; ")
		} else {
			m.errMessage = ""
		}
		m.loading = true
		return batchCmds([]tea.Cmd{loadLeadsCmd(m.api), m.spin.Tick}), true
	}
	return nil, false
}

// refreshAfterLeadChange refetches the full lead list. The board is a pure
// projection of the last fetch, so any write goes back to the server for
// the authoritative result.
func (m *model) refreshAfterLeadChange() tea.Cmd {
	m.loading = true
	return batchCmds([]tea.Cmd{loadLeadsCmd(m.api), m.spin.Tick})
}

// Navigation helpers
func (m *model) pushState(next viewState) {
	m.prevStates = append(m.prevStates, m.state)
	m.state = next
}

func (m *model) popState() {
	if len(m.prevStates) == 0 {
		m.state = stateMainMenu
		return
	}
	idx := len(m.prevStates) - 1
	m.state = m.prevStates[idx]
	m.prevStates = m.prevStates[:idx]
}

func (m *model) resetMessages() {
	m.errMessage = ""
	m.infoMessage = ""
}

func (m *model) setMenuInput(placeholder string, limit int) tea.Cmd {
	input := textinput.New()
	input.Prompt = ""
	input.Placeholder = placeholder
	if limit > 0 {
		input.CharLimit = limit
	}
	cmd := input.Focus()
	m.menuInput = input
	return cmd
}

func (m *model) ensureMenuInput(placeholder string, limit int) tea.Cmd {
	if strings.TrimSpace(m.menuInput.Placeholder) == placeholder {
		if limit <= 0 || m.menuInput.CharLimit == limit {
			if !m.menuInput.Focused() {
				return m.menuInput.Focus()
			}
			return nil
		}
	}
	return m.setMenuInput(placeholder, limit)
}

func resolveMainMenuSelection(input string) (string, bool) {
	value := strings.TrimSpace(strings.ToLower(input))
	if value == "" {
		return "", false
	}
	for _, option := range mainMenuOptions {
		for _, syn := range option.synonyms {
			if value == syn {
				return option.id, true
			}
		}
	}

	matches := make(map[string]struct{})
	for _, option := range mainMenuOptions {
		for _, keyword := range option.keywords {
			if strings.HasPrefix(keyword, value) {
				matches[option.id] = struct{}{}
				break
			}
		}
	}
	if len(matches) == 1 {
		for id := range matches {
			return id, true
		}
	}
	return "", false
}

func batchCmds(cmds []tea.Cmd) tea.Cmd {
	filtered := cmds[:0]
	for _, c := range cmds {
		if c != nil {
			filtered = append(filtered, c)
		}
	}
	switch len(filtered) {
	case 0:
		return nil
	case 1:
		return filtered[0]
	default:
		return tea.Batch(filtered...)
	}
}

// global command helpers
func isExitCommand(value string) bool {
	v := strings.TrimSpace(strings.ToLower(value))
	return v == "exit." || v == "quit"
}

func isBackCommand(value string) bool {
	v := strings.TrimSpace(strings.ToLower(value))
	return v == "/" || v == "back"
}

// MAIN MENU
func (m *model) updateMainMenu(msg tea.Msg) tea.Cmd {
	var cmds []tea.Cmd
	if focus := m.ensureMenuInput("Choose an option", 32); focus != nil {
		cmds = append(cmds, focus)
	}

	var cmd tea.Cmd
	m.menuInput, cmd = m.menuInput.Update(msg)
	if cmd != nil {
		cmds = append(cmds, cmd)
	}

	if key, ok := msg.(tea.KeyMsg); ok && key.Type == tea.KeyEnter {
		choice := strings.TrimSpace(strings.ToLower(m.menuInput.Value()))
		m.menuInput.SetValue("")
		m.showSplash = false
		action, ok := resolveMainMenuSelection(choice)
		if !ok {
			if choice == "" || choice == "0" {
				return batchCmds(cmds)
			}
			m.errMessage = "Unknown choice"
			return batchCmds(cmds)
		}
		switch action {
		case menuLeads:
			m.resetMessages()
			m.pushState(stateLeads)
			if !m.leadList.filter.Focused() {
				if focus := m.leadList.filter.Focus(); focus != nil {
					cmds = append(cmds, focus)
				}
			}
			cmds = append(cmds, m.refreshAfterLeadChange())
		case menuAddLead:
			m.resetMessages()
			m.leadForm = newLeadForm(nil)
			m.pushState(stateLeadForm)
		case menuCustomers:
			m.resetMessages()
			m.pushState(stateCustomers)
			if !m.customerFilter.Focused() {
				if focus := m.customerFilter.Focus(); focus != nil {
					cmds = append(cmds, focus)
				}
			}
			m.loading = true
			cmds = append(cmds, loadCustomersCmd(m.api), m.spin.Tick)
		case menuAddCustomer:
			m.resetMessages()
			m.customerForm = newCustomerForm(nil, nil)
			m.pushState(stateCustomerForm)
			cmds = append(cmds, loadGroupsCmd(m.api))
		case menuSettings:
			m.resetMessages()
			m.settings = newSettingsModel()
			m.pushState(stateSettings)
			cmds = append(cmds, m.setMenuInput("1=Name  2=Timezone  3=API URL  4=Back", 40))
		case menuQuit:
			cmds = append(cmds, tea.Quit)
		}
	}

	return batchCmds(cmds)
}

func (m *model) viewMainMenu() string {
	lines := []string{}
	if m.showSplash {
		lines = append(lines, splashBanner)
		lines = append(lines, "")
	}
	lines = append(lines, m.theme.Title.Render("leadterm"))
	lines = append(lines, m.theme.Secondary.Render("The lead pipeline, in your terminal"))
	if m.infoMessage != "" {
		lines = append(lines, m.theme.Success.Render(m.infoMessage))
	}
	if m.errMessage != "" {
		lines = append(lines, m.theme.Danger.Render(m.errMessage))
	}
	menu := []string{
		"1. Leads & board",
		"2. Add lead",
		"3. Customers",
		"4. Add customer",
		"5. Settings & Help",
		"6. Quit",
	}
	lines = append(lines, "")
	for _, item := range menu {
		lines = append(lines, m.theme.Primary.Render(item))
	}
	lines = append(lines, "")
	lines = append(lines, m.theme.Accent.Render("> ")+m.menuInput.View())
	return strings.Join(lines, "\n") + "\n"
}
