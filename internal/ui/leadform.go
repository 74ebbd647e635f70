package ui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"leadterm/internal/crm"
)

type leadFormModel struct {
	form    form
	id      int64
	loading bool
}

func newLeadForm(existing *crm.Lead) leadFormModel {
	fields := []formField{
		{key: "name", label: "Lead name", required: true},
		{key: "status", label: "Status", kind: fieldSelect, options: statusNames(), required: true, value: string(crm.StatusNew)},
		{key: "source", label: "Source", kind: fieldSelect, options: sourceNames(), required: true, value: string(crm.SourceWebsite)},
		{key: "assigned_to", label: "Assigned to", kind: fieldSelect, options: crm.Assignees},
		{key: "position", label: "Position"},
		{key: "company", label: "Company"},
		{key: "email", label: "Email"},
		{key: "phone", label: "Phone"},
		{key: "website", label: "Website"},
		{key: "value", label: "Lead value", kind: fieldNumber},
		{key: "currency", label: "Currency", kind: fieldSelect, options: crm.Currencies, value: "USD"},
		{key: "tags", label: "Tags (comma separated)"},
		{key: "description", label: "Description"},
		{key: "address", label: "Address"},
		{key: "city", label: "City"},
		{key: "state", label: "State"},
		{key: "country", label: "Country", kind: fieldSelect, options: crm.Countries},
		{key: "zipcode", label: "Zip code"},
		{key: "language", label: "Default language", kind: fieldSelect, options: crm.Languages},
		{key: "is_public", label: "Public lead", kind: fieldBool, value: "n"},
		{key: "contacted_today", label: "Contacted today", kind: fieldBool, value: "n"},
	}
	lf := leadFormModel{}
	if existing != nil {
		lf.id = existing.ID
		set := func(key, value string) {
			for i := range fields {
				if fields[i].key == key {
					fields[i].value = value
					return
				}
			}
		}
		set("name", existing.Name)
		set("status", string(existing.Status))
		set("source", string(existing.Source))
		set("assigned_to", existing.AssignedTo)
		set("position", existing.Position)
		set("company", existing.Company)
		set("email", existing.Email)
		set("phone", existing.Phone)
		set("website", existing.Website)
		set("value", crm.FormatAmount(float64(existing.Value)))
		set("currency", existing.Currency)
		set("tags", existing.Tags)
		set("description", existing.Description)
		set("address", existing.Address)
		set("city", existing.City)
		set("state", existing.State)
		set("country", existing.Country)
		set("zipcode", existing.Zipcode)
		set("language", existing.Language)
		set("is_public", flagAnswer(existing.IsPublic))
		set("contacted_today", flagAnswer(existing.ContactedToday))
	}
	title := "Add Lead"
	if existing != nil {
		title = "Edit Lead"
	}
	lf.form = newForm(title, fields)
	return lf
}

func flagAnswer(f crm.Flag) string {
	if bool(f) {
		return "y"
	}
	return "n"
}

func sourceNames() []string {
	names := make([]string, len(crm.LeadSources))
	for i, s := range crm.LeadSources {
		names[i] = string(s)
	}
	return names
}

func (m *model) updateLeadForm(msg tea.Msg) tea.Cmd {
	if m.leadForm.loading {
		if m.loading {
			return nil
		}
		m.leadForm.loading = false
	}
	var cmds []tea.Cmd
	var cmd tea.Cmd
	m.leadForm.form.input, cmd = m.leadForm.form.input.Update(msg)
	if cmd != nil {
		cmds = append(cmds, cmd)
	}

	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.Type {
		case tea.KeyEnter:
			value := strings.TrimSpace(m.leadForm.form.input.Value())
			if isExitCommand(value) {
				m.leadForm = leadFormModel{}
				m.prevStates = nil
				m.state = stateMainMenu
				if focus := m.setMenuInput("Choose an option", 32); focus != nil {
					cmds = append(cmds, focus)
				}
				return batchCmds(cmds)
			}
			if isBackCommand(value) {
				if !m.leadForm.form.back() {
					m.leadForm = leadFormModel{}
					m.popState()
					if m.state == stateMainMenu {
						if focus := m.setMenuInput("Choose an option", 32); focus != nil {
							cmds = append(cmds, focus)
						}
					}
				}
				return batchCmds(cmds)
			}
			if m.leadForm.form.advance(value) {
				if c := m.submitLeadForm(); c != nil {
					cmds = append(cmds, c)
				}
			}
			return batchCmds(cmds)
		case tea.KeyEsc:
			m.leadForm = leadFormModel{}
			m.popState()
			if m.state == stateMainMenu {
				if focus := m.setMenuInput("Choose an option", 32); focus != nil {
					cmds = append(cmds, focus)
				}
			}
			return batchCmds(cmds)
		}
	}
	return batchCmds(cmds)
}

// submitLeadForm maps the walked fields onto the wire payload. Create and
// update share the payload; both value fields always carry the same number.
func (m *model) submitLeadForm() tea.Cmd {
	f := &m.leadForm.form
	amount := f.numberValue("value")
	p := crm.LeadPayload{
		Name:           f.value("name"),
		Status:         crm.LeadStatus(f.value("status")),
		Source:         crm.LeadSource(f.value("source")),
		AssignedTo:     f.value("assigned_to"),
		Position:       f.value("position"),
		Company:        f.value("company"),
		Email:          f.value("email"),
		Phone:          f.value("phone"),
		Website:        f.value("website"),
		Value:          amount,
		LeadValue:      amount,
		Currency:       f.value("currency"),
		Tags:           f.value("tags"),
		Description:    f.value("description"),
		Address:        f.value("address"),
		City:           f.value("city"),
		State:          f.value("state"),
		Country:        f.value("country"),
		Zipcode:        f.value("zipcode"),
		Language:       f.value("language"),
		IsPublic:       crm.Flag(f.boolValue("is_public")),
		ContactedToday: crm.Flag(f.boolValue("contacted_today")),
	}
	if err := crm.Validate(p); err != nil {
		f.err = fmt.Sprintf("invalid lead: %v", err)
		return nil
	}
	return saveLeadCmd(m.api, m.leadForm.id, p)
}

func (m *model) viewLeadForm() string {
	if m.leadForm.loading || m.leadForm.form.current() == nil {
		return m.spin.View() + " " + m.theme.Faint.Render("Loading lead...") + "\n"
	}
	f := &m.leadForm.form
	field := f.current()
	lines := []string{
		m.theme.Title.Render(f.title),
		m.theme.Faint.Render("Enter details. Empty keeps the shown value. '/' to go back, 'exit.' to cancel."),
		"",
		m.theme.Secondary.Render(fmt.Sprintf("%d/%d", f.index+1, len(f.fields))),
		m.theme.Primary.Render(field.label + ":"),
		f.input.View(),
	}
	if f.err != "" {
		lines = append(lines, "", m.theme.Danger.Render(f.err))
	}
	return strings.Join(lines, "\n") + "\n"
}
