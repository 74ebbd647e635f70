package ui

import (
	"fmt"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"leadterm/internal/crm"
)

// CUSTOMERS LIST
func (m *model) updateCustomers(msg tea.Msg) tea.Cmd {
	var cmds []tea.Cmd
	var cmd tea.Cmd
	m.customerFilter, cmd = m.customerFilter.Update(msg)
	if cmd != nil {
		cmds = append(cmds, cmd)
	}

	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.Type {
		case tea.KeyEnter:
			value := strings.TrimSpace(m.customerFilter.Value())
			m.customerFilter.SetValue("")
			if isExitCommand(value) {
				m.prevStates = nil
				m.state = stateMainMenu
				if focus := m.setMenuInput("Choose an option", 32); focus != nil {
					cmds = append(cmds, focus)
				}
				return batchCmds(cmds)
			}
			if isBackCommand(value) {
				m.popState()
				if m.state == stateMainMenu {
					if focus := m.setMenuInput("Choose an option", 32); focus != nil {
						cmds = append(cmds, focus)
					}
				}
				return batchCmds(cmds)
			}
			if value == "refresh" {
				m.loading = true
				cmds = append(cmds, loadCustomersCmd(m.api), m.spin.Tick)
				return batchCmds(cmds)
			}
			if value == "add" || value == "new" {
				m.customerForm = newCustomerForm(nil, m.groups)
				m.pushState(stateCustomerForm)
				cmds = append(cmds, loadGroupsCmd(m.api))
				return batchCmds(cmds)
			}
			if contact, ok := m.resolveCustomerSelection(value); ok {
				if c := m.openCustomerEdit(contact.ID); c != nil {
					cmds = append(cmds, c)
				}
				return batchCmds(cmds)
			}
			m.applyCustomerFilter()
		case tea.KeyEsc:
			m.popState()
			if m.state == stateMainMenu {
				if focus := m.setMenuInput("Choose an option", 32); focus != nil {
					cmds = append(cmds, focus)
				}
			}
			return batchCmds(cmds)
		}
	}

	m.applyCustomerFilter()
	return batchCmds(cmds)
}

func (m *model) applyCustomerFilter() {
	filter := strings.ToLower(strings.TrimSpace(m.customerFilter.Value()))
	if filter == "" {
		m.filteredCustomers = m.customers
		return
	}
	filtered := make([]crm.Contact, 0, len(m.customers))
	for _, c := range m.customers {
		haystack := strings.ToLower(c.Name + " " + c.Company + " " + c.Email)
		if strings.Contains(haystack, filter) {
			filtered = append(filtered, c)
		}
	}
	m.filteredCustomers = filtered
}

// resolveCustomerSelection accepts "edit 3", "open acme", a bare number or
// a unique name prefix, like the lead list numbering.
func (m *model) resolveCustomerSelection(input string) (crm.Contact, bool) {
	var empty crm.Contact
	trimmed := strings.TrimSpace(input)
	if trimmed == "" {
		return empty, false
	}
	lower := strings.ToLower(trimmed)
	query := trimmed
	switch {
	case strings.HasPrefix(lower, "open "):
		query = strings.TrimSpace(trimmed[5:])
	case strings.HasPrefix(lower, "edit "):
		query = strings.TrimSpace(trimmed[5:])
	case strings.HasPrefix(lower, "#"):
		query = strings.TrimSpace(trimmed[1:])
	}
	if idx, err := strconv.Atoi(query); err == nil {
		if idx > 0 && idx <= len(m.filteredCustomers) {
			return m.filteredCustomers[idx-1], true
		}
		return empty, false
	}
	queryLower := strings.ToLower(query)
	var match crm.Contact
	count := 0
	for _, list := range [][]crm.Contact{m.filteredCustomers, m.customers} {
		for i := range list {
			if strings.EqualFold(list[i].Name, query) {
				return list[i], true
			}
			if strings.HasPrefix(strings.ToLower(list[i].Name), queryLower) {
				match = list[i]
				count++
			}
		}
		if count == 1 {
			return match, true
		}
	}
	return empty, false
}

func (m *model) openCustomerEdit(id int64) tea.Cmd {
	m.customerForm = customerFormModel{id: id, editing: true, pendingLoads: 2}
	m.pushState(stateCustomerForm)
	m.loading = true
	return batchCmds([]tea.Cmd{
		loadCustomerForEditCmd(m.api, id),
		loadGroupsCmd(m.api),
		m.spin.Tick,
	})
}

func (m *model) viewCustomers() string {
	lines := []string{m.theme.Title.Render("Customers")}
	lines = append(lines, m.theme.Faint.Render("Type to search. Enter a number or name to edit, 'add' for a new customer. '/' to go back, 'exit.' home."))
	lines = append(lines, "")

	if m.loading && len(m.customers) == 0 {
		lines = append(lines, m.spin.View()+" "+m.theme.Faint.Render("Loading customers..."))
		return strings.Join(lines, "\n") + "\n"
	}

	if len(m.filteredCustomers) == 0 {
		lines = append(lines, m.theme.Warning.Render("No customers found."))
	} else {
		for i, c := range m.filteredCustomers {
			header := fmt.Sprintf("%d. %s", i+1, c.Name)
			lines = append(lines, m.theme.Primary.Render(header))
			meta := []string{}
			if c.Company != "" {
				meta = append(meta, c.Company)
			}
			if c.Phone != "" {
				meta = append(meta, fmt.Sprintf("Phone: %s", c.Phone))
			}
			if c.Email != "" {
				meta = append(meta, fmt.Sprintf("Email: %s", c.Email))
			}
			if len(meta) > 0 {
				lines = append(lines, "  "+m.theme.Secondary.Render(strings.Join(meta, "  |  ")))
			}
			if c.Address != "" {
				lines = append(lines, "  "+m.theme.Faint.Render(c.Address))
			}
		}
	}
	if m.infoMessage != "" {
		lines = append(lines, "", m.theme.Success.Render(m.infoMessage))
	}
	if m.errMessage != "" {
		lines = append(lines, "", m.theme.Danger.Render(m.errMessage))
	}
	lines = append(lines, m.theme.Border.Render(strings.Repeat("─", 48)))
	lines = append(lines, m.theme.Accent.Render("find> ")+m.customerFilter.View())
	return strings.Join(lines, "\n") + "\n"
}
