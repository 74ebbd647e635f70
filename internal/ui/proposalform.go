package ui

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"leadterm/internal/crm"
)

type proposalModel struct {
	form       form
	lead       crm.Lead
	items      []crm.ProposalItem
	discount   float64
	adjustment float64
	input      textinput.Model
	err        string
}

func proposalStatusNames() []string {
	names := make([]string, len(crm.ProposalStatuses))
	for i, s := range crm.ProposalStatuses {
		names[i] = string(s)
	}
	return names
}

func newProposalModel(lead crm.Lead) proposalModel {
	currency := lead.Currency
	if currency == "" {
		currency = "USD"
	}
	fields := []formField{
		{key: "subject", label: "Subject", required: true},
		{key: "status", label: "Status", kind: fieldSelect, options: proposalStatusNames(), value: string(crm.ProposalDraft)},
		{key: "assigned_to", label: "Assigned to", kind: fieldSelect, options: crm.Assignees, value: "Admin"},
		{key: "proposal_date", label: "Proposal date (YYYY-MM-DD)", value: time.Now().Format("2006-01-02")},
		{key: "open_till", label: "Open till (YYYY-MM-DD)"},
		{key: "currency", label: "Currency", kind: fieldSelect, options: crm.Currencies, value: currency},
		{key: "to_name", label: "To", value: lead.Name},
		{key: "address", label: "Address", value: lead.Address},
		{key: "city", label: "City", value: lead.City},
		{key: "state", label: "State", value: lead.State},
		{key: "country", label: "Country", kind: fieldSelect, options: crm.Countries, value: lead.Country},
		{key: "zip", label: "Zip code", value: lead.Zipcode},
		{key: "email", label: "Email", value: lead.Email},
		{key: "phone", label: "Phone", value: lead.Phone},
	}

	input := textinput.New()
	input.Prompt = ""
	input.Placeholder = "add | desc/qty/rate <n> <v> | rm <n> | discount/adjust <v> | send"
	input.CharLimit = 128

	return proposalModel{
		form:  newForm("Create Proposal", fields),
		lead:  lead,
		items: []crm.ProposalItem{crm.NewProposalItem()},
		input: input,
	}
}

// PROPOSAL HEADER WALK
func (m *model) updateProposal(msg tea.Msg) tea.Cmd {
	var cmds []tea.Cmd
	var cmd tea.Cmd
	m.proposal.form.input, cmd = m.proposal.form.input.Update(msg)
	if cmd != nil {
		cmds = append(cmds, cmd)
	}

	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.Type {
		case tea.KeyEnter:
			value := strings.TrimSpace(m.proposal.form.input.Value())
			if isExitCommand(value) {
				m.proposal = proposalModel{}
				m.prevStates = nil
				m.state = stateMainMenu
				if focus := m.setMenuInput("Choose an option", 32); focus != nil {
					cmds = append(cmds, focus)
				}
				return batchCmds(cmds)
			}
			if isBackCommand(value) {
				if !m.proposal.form.back() {
					m.proposal = proposalModel{}
					m.popState()
					if m.state == stateMainMenu {
						if focus := m.setMenuInput("Choose an option", 32); focus != nil {
							cmds = append(cmds, focus)
						}
					}
				}
				return batchCmds(cmds)
			}
			if m.proposal.form.advance(value) {
				m.state = stateProposalItems
				if !m.proposal.input.Focused() {
					if focus := m.proposal.input.Focus(); focus != nil {
						cmds = append(cmds, focus)
					}
				}
			}
			return batchCmds(cmds)
		case tea.KeyEsc:
			m.proposal = proposalModel{}
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

func (m *model) viewProposal() string {
	f := &m.proposal.form
	field := f.current()
	lines := []string{
		m.theme.Title.Render(f.title),
		m.theme.Subtitle.Render(fmt.Sprintf("For lead: %s", m.proposal.lead.Name)),
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

// PROPOSAL LINE ITEMS
func (m *model) updateProposalItems(msg tea.Msg) tea.Cmd {
	var cmds []tea.Cmd
	var cmd tea.Cmd
	m.proposal.input, cmd = m.proposal.input.Update(msg)
	if cmd != nil {
		cmds = append(cmds, cmd)
	}

	if key, ok := msg.(tea.KeyMsg); ok && key.Type == tea.KeyEnter {
		value := strings.TrimSpace(m.proposal.input.Value())
		m.proposal.input.SetValue("")
		if isExitCommand(value) {
			m.proposal = proposalModel{}
			m.prevStates = nil
			m.state = stateMainMenu
			if focus := m.setMenuInput("Choose an option", 32); focus != nil {
				cmds = append(cmds, focus)
			}
			return batchCmds(cmds)
		}
		if isBackCommand(value) {
			m.state = stateProposal
			m.proposal.form.syncInput()
			return batchCmds(cmds)
		}
		if c := m.handleProposalItemCommand(value); c != nil {
			cmds = append(cmds, c)
		}
	}
	return batchCmds(cmds)
}

func (m *model) handleProposalItemCommand(value string) tea.Cmd {
	p := &m.proposal
	fields := strings.Fields(value)
	if len(fields) == 0 {
		return nil
	}
	head := strings.ToLower(fields[0])
	args := fields[1:]

	itemAt := func() (int, bool) {
		if len(args) == 0 {
			return 0, false
		}
		n, err := strconv.Atoi(args[0])
		if err != nil || n < 1 || n > len(p.items) {
			return 0, false
		}
		return n - 1, true
	}

	switch head {
	case "add":
		p.items = append(p.items, crm.NewProposalItem())
		p.err = ""
	case "desc":
		idx, ok := itemAt()
		if !ok || len(args) < 2 {
			p.err = "Usage: desc <item#> <text>"
			return nil
		}
		p.items[idx].Description = strings.Join(args[1:], " ")
		p.err = ""
	case "qty":
		idx, ok := itemAt()
		if !ok || len(args) < 2 {
			p.err = "Usage: qty <item#> <number>"
			return nil
		}
		p.items[idx].SetQty(args[1])
		p.err = ""
	case "rate":
		idx, ok := itemAt()
		if !ok || len(args) < 2 {
			p.err = "Usage: rate <item#> <number>"
			return nil
		}
		p.items[idx].SetRate(args[1])
		p.err = ""
	case "rm":
		idx, ok := itemAt()
		if !ok {
			p.err = "Usage: rm <item#>"
			return nil
		}
		p.items = crm.RemoveItem(p.items, idx)
		p.err = ""
	case "discount":
		if len(args) == 0 {
			p.err = "Usage: discount <number>"
			return nil
		}
		p.discount = crm.ParseAmount(args[0])
		p.err = ""
	case "adjust":
		if len(args) == 0 {
			p.err = "Usage: adjust <number>"
			return nil
		}
		p.adjustment = crm.ParseAmount(args[0])
		p.err = ""
	case "send":
		return m.submitProposal()
	default:
		p.err = "Unknown command"
	}
	return nil
}

func (m *model) submitProposal() tea.Cmd {
	p := &m.proposal
	f := &p.form
	subtotal, total := crm.Totals(p.items, p.discount, p.adjustment)
	payload := crm.ProposalPayload{
		Subject:      f.value("subject"),
		Status:       crm.ProposalStatus(f.value("status")),
		AssignedTo:   f.value("assigned_to"),
		LeadID:       p.lead.ID,
		ProposalDate: f.value("proposal_date"),
		OpenTill:     f.value("open_till"),
		Currency:     f.value("currency"),
		ToName:       f.value("to_name"),
		Address:      f.value("address"),
		City:         f.value("city"),
		State:        f.value("state"),
		Country:      f.value("country"),
		Zip:          f.value("zip"),
		Email:        f.value("email"),
		Phone:        f.value("phone"),
		Discount:     p.discount,
		Adjustment:   p.adjustment,
		Items:        p.items,
		SubTotal:     subtotal,
		TotalAmount:  total,
	}
	if err := crm.Validate(payload); err != nil {
		p.err = fmt.Sprintf("invalid proposal: %v", err)
		return nil
	}
	return sendProposalCmd(m.api, payload)
}

func (m *model) viewProposalItems() string {
	p := &m.proposal
	lines := []string{
		m.theme.Title.Render("Proposal Items"),
		m.theme.Subtitle.Render(fmt.Sprintf("%s for %s", p.form.value("subject"), p.lead.Name)),
		m.theme.Faint.Render("Commands: add, desc/qty/rate <item#> <value>, rm <item#>, discount/adjust <value>, send. '/' back to details."),
		"",
	}
	if len(p.items) == 0 {
		lines = append(lines, m.theme.Warning.Render("No items. 'add' to start."))
	}
	for i, it := range p.items {
		desc := it.Description
		if desc == "" {
			desc = "(no description)"
		}
		lines = append(lines, m.theme.Primary.Render(fmt.Sprintf("%d. %s", i+1, desc)))
		lines = append(lines, "   "+m.theme.Secondary.Render(fmt.Sprintf(
			"qty %s x rate %s = %s",
			crm.FormatAmount(it.Qty), crm.FormatAmount(it.Rate), crm.FormatAmount(crm.Round2(it.Amount)))))
	}
	subtotal, total := crm.Totals(p.items, p.discount, p.adjustment)
	lines = append(lines, "")
	lines = append(lines, m.theme.Secondary.Render(fmt.Sprintf("Subtotal: %s", crm.FormatAmount(crm.Round2(subtotal)))))
	if p.discount != 0 {
		lines = append(lines, m.theme.Secondary.Render(fmt.Sprintf("Discount: -%s", crm.FormatAmount(p.discount))))
	}
	if p.adjustment != 0 {
		lines = append(lines, m.theme.Secondary.Render(fmt.Sprintf("Adjustment: %s", crm.FormatAmount(p.adjustment))))
	}
	lines = append(lines, m.theme.Success.Render(fmt.Sprintf("Total: %s", crm.FormatAmount(crm.Round2(total)))))
	if p.err != "" {
		lines = append(lines, "", m.theme.Danger.Render(p.err))
	}
	lines = append(lines, "")
	lines = append(lines, m.theme.Accent.Render("items> ")+p.input.View())
	return strings.Join(lines, "\n") + "\n"
}
