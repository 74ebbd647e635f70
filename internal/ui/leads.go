package ui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"leadterm/internal/board"
	"leadterm/internal/crm"
)

type leadListModel struct {
	filter            textinput.Model
	boardMode         bool
	pendingDelete     int64
	pendingDeleteName string
}

func newLeadListModel(filter textinput.Model) leadListModel {
	return leadListModel{filter: filter}
}

func statusNames() []string {
	names := make([]string, len(crm.LeadStatuses))
	for i, s := range crm.LeadStatuses {
		names[i] = string(s)
	}
	return names
}

// LEADS (list and board share one state; 'board'/'list' toggles)
func (m *model) updateLeads(msg tea.Msg) tea.Cmd {
	var cmds []tea.Cmd
	var cmd tea.Cmd
	m.leadList.filter, cmd = m.leadList.filter.Update(msg)
	if cmd != nil {
		cmds = append(cmds, cmd)
	}

	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.Type {
		case tea.KeyEnter:
			value := strings.TrimSpace(m.leadList.filter.Value())
			// commands resolve against the numbering on screen, so the
			// active search stays put until the command is handled
			if looksLikeLeadCommand(value) || isExitCommand(value) || isBackCommand(value) || m.leadList.pendingDelete != 0 {
				m.leadList.filter.SetValue("")
				if c := m.handleLeadCommand(value); c != nil {
					cmds = append(cmds, c)
				}
			} else {
				m.pipeline.SetSearch(value)
			}
			return batchCmds(cmds)
		case tea.KeyEsc:
			m.pipeline.SetSearch("")
			m.leadList.filter.SetValue("")
			m.popState()
			if m.state == stateMainMenu {
				if focus := m.setMenuInput("Choose an option", 32); focus != nil {
					cmds = append(cmds, focus)
				}
			}
			return batchCmds(cmds)
		}
	}

	// live search: anything typed that is not a command narrows the view
	value := strings.TrimSpace(m.leadList.filter.Value())
	if !looksLikeLeadCommand(value) {
		m.pipeline.SetSearch(value)
	}
	return batchCmds(cmds)
}

var leadCommandWords = []string{
	"filter", "export", "import", "board", "list", "refresh",
	"y", "n", "/", "back", "exit.", "quit",
}

// leadNumberCommands take a lead number as their first argument.
var leadNumberCommands = []string{
	"view", "open", "edit", "delete", "status", "move", "proposal",
}

// looksLikeLeadCommand decides whether Enter runs a command or a search.
// Words like "view" only count as commands when followed by a lead number,
// so a search such as "view corp" still reaches the filter.
func looksLikeLeadCommand(value string) bool {
	fields := strings.Fields(strings.ToLower(strings.TrimSpace(value)))
	if len(fields) == 0 {
		return false
	}
	head := fields[0]
	for _, w := range leadCommandWords {
		if head == w {
			return true
		}
	}
	for _, w := range leadNumberCommands {
		if head != w {
			continue
		}
		if len(fields) == 1 {
			return true
		}
		_, err := strconv.Atoi(fields[1])
		return err == nil
	}
	if len(fields) == 1 {
		if _, err := strconv.Atoi(head); err == nil {
			return true
		}
	}
	return false
}

func (m *model) handleLeadCommand(value string) tea.Cmd {
	if isExitCommand(value) {
		m.prevStates = nil
		m.state = stateMainMenu
		return m.setMenuInput("Choose an option", 32)
	}
	if isBackCommand(value) {
		m.popState()
		if m.state == stateMainMenu {
			return m.setMenuInput("Choose an option", 32)
		}
		return nil
	}

	fields := strings.Fields(value)
	if len(fields) == 0 {
		return nil
	}
	head := strings.ToLower(fields[0])
	args := fields[1:]

	// a pending delete eats the next y/n
	if m.leadList.pendingDelete != 0 {
		id := m.leadList.pendingDelete
		name := m.leadList.pendingDeleteName
		m.leadList.pendingDelete = 0
		m.leadList.pendingDeleteName = ""
		if isYes(head) {
			return deleteLeadCmd(m.api, id, name)
		}
		m.infoMessage = "Delete cancelled"
		return nil
	}

	switch head {
	case "board":
		m.leadList.boardMode = true
		return nil
	case "list":
		m.leadList.boardMode = false
		return nil
	case "refresh":
		return m.refreshAfterLeadChange()
	case "filter":
		if len(args) == 0 {
			m.pipeline.SetStatusFilter(board.FilterAll)
			return nil
		}
		target := strings.Join(args, " ")
		if strings.EqualFold(target, board.FilterAll) {
			m.pipeline.SetStatusFilter(board.FilterAll)
			return nil
		}
		status, ok := resolveOption(statusNames(), target)
		if !ok {
			m.errMessage = fmt.Sprintf("Unknown status '%s'", target)
			return nil
		}
		m.pipeline.SetStatusFilter(status)
		return nil
	case "view", "open":
		if lead, ok := m.leadByArg(args); ok {
			return m.openLeadDetail(lead)
		}
		m.errMessage = "Which lead? Use its list number"
		return nil
	case "edit":
		if lead, ok := m.leadByArg(args); ok {
			return m.openLeadEdit(lead)
		}
		m.errMessage = "Which lead? Use its list number"
		return nil
	case "delete":
		if lead, ok := m.leadByArg(args); ok {
			m.leadList.pendingDelete = lead.ID
			m.leadList.pendingDeleteName = lead.Name
			m.infoMessage = ""
			m.errMessage = fmt.Sprintf("Delete '%s'? Type y to confirm, n to cancel", lead.Name)
			return nil
		}
		m.errMessage = "Which lead? Use its list number"
		return nil
	case "status":
		return m.handleStatusCommand(args)
	case "move":
		return m.handleMoveCommand(args)
	case "proposal":
		if lead, ok := m.leadByArg(args); ok {
			m.proposal = newProposalModel(lead)
			m.pushState(stateProposal)
			return nil
		}
		m.errMessage = "Which lead? Use its list number"
		return nil
	case "export":
		path := "leads.csv"
		if len(args) > 0 {
			path = strings.Join(args, " ")
		}
		return exportLeadsCmd(m.pipeline.Filtered(), path)
	case "import":
		if len(args) == 0 {
			m.errMessage = "Provide a CSV path"
			return nil
		}
		return importLeadsCmd(m.api, strings.Join(args, " "))
	}

	// bare number opens the lead
	if lead, ok := m.leadByArg(fields); ok {
		return m.openLeadDetail(lead)
	}
	m.errMessage = "Unknown command"
	return nil
}

// leadByArg resolves "<n>" against the current numbering: filtered order in
// list mode, column order in board mode.
func (m *model) leadByArg(args []string) (crm.Lead, bool) {
	if len(args) == 0 {
		return crm.Lead{}, false
	}
	n, err := strconv.Atoi(args[0])
	if err != nil || n < 1 {
		return crm.Lead{}, false
	}
	if m.leadList.boardMode {
		lead, _, _, ok := m.boardCard(n)
		return lead, ok
	}
	filtered := m.pipeline.Filtered()
	if n > len(filtered) {
		return crm.Lead{}, false
	}
	return filtered[n-1], true
}

// boardCard maps a card number to the lead plus its column and position.
// Cards are numbered top to bottom across columns in the fixed order.
func (m *model) boardCard(n int) (crm.Lead, crm.LeadStatus, int, bool) {
	count := 0
	for _, col := range m.pipeline.Columns() {
		for i, l := range col.Leads {
			count++
			if count == n {
				return l, col.Status, i, true
			}
		}
	}
	return crm.Lead{}, "", 0, false
}

// handleStatusCommand is the list view's immediate-commit status control:
// "status <n> <status>". The board applies optimistically and the snapshot
// rides along on the command for rollback.
func (m *model) handleStatusCommand(args []string) tea.Cmd {
	if len(args) < 2 {
		m.errMessage = "Usage: status <lead#> <status>"
		return nil
	}
	lead, ok := m.leadByArg(args[:1])
	if !ok {
		m.errMessage = "Which lead? Use its list number"
		return nil
	}
	target, ok := resolveOption(statusNames(), strings.Join(args[1:], " "))
	if !ok {
		m.errMessage = fmt.Sprintf("Unknown status '%s'", strings.Join(args[1:], " "))
		return nil
	}
	snap, found := m.pipeline.ApplyStatus(lead.ID, crm.LeadStatus(target))
	if !found {
		return nil
	}
	return updateStatusCmd(m.api, lead.ID, crm.LeadStatus(target), snap)
}

// handleMoveCommand is the board gesture: "move <card#> <column> [pos]".
// The drop is described to the board package, which decides whether it
// means a status change at all.
func (m *model) handleMoveCommand(args []string) tea.Cmd {
	if !m.leadList.boardMode {
		m.errMessage = "Switch to the board first ('board')"
		return nil
	}
	if len(args) < 2 {
		m.errMessage = "Usage: move <card#> <column> [pos]"
		return nil
	}
	n, err := strconv.Atoi(args[0])
	if err != nil {
		m.errMessage = "Usage: move <card#> <column> [pos]"
		return nil
	}
	lead, from, fromIdx, ok := m.boardCard(n)
	if !ok {
		m.errMessage = "No such card"
		return nil
	}

	drop := board.Drop{LeadID: lead.ID, From: from, FromIndex: fromIdx}
	if target, ok := resolveOption(statusNames(), args[1]); ok {
		drop.To = crm.LeadStatus(target)
		drop.ToIndex = m.columnLen(drop.To)
		if drop.To == drop.From {
			drop.ToIndex = fromIdx
		}
		if len(args) > 2 {
			if pos, err := strconv.Atoi(args[2]); err == nil && pos >= 1 {
				drop.ToIndex = pos - 1
			}
		}
	}

	status, ok := drop.StatusChange()
	if !ok {
		return nil
	}
	snap, found := m.pipeline.ApplyStatus(lead.ID, status)
	if !found {
		return nil
	}
	return updateStatusCmd(m.api, lead.ID, status, snap)
}

func (m *model) columnLen(status crm.LeadStatus) int {
	for _, col := range m.pipeline.Columns() {
		if col.Status == status {
			return len(col.Leads)
		}
	}
	return 0
}

func (m *model) openLeadDetail(lead crm.Lead) tea.Cmd {
	m.detail = leadDetailModel{lead: lead}
	m.pushState(stateLeadDetail)
	m.loading = true
	return batchCmds([]tea.Cmd{
		loadLeadDetailCmd(m.api, lead.ID),
		m.spin.Tick,
		m.setMenuInput(leadDetailPrompt, 64),
	})
}

func (m *model) openLeadEdit(lead crm.Lead) tea.Cmd {
	m.leadForm = leadFormModel{id: lead.ID, loading: true}
	m.pushState(stateLeadForm)
	m.loading = true
	return batchCmds([]tea.Cmd{loadLeadForEditCmd(m.api, lead.ID), m.spin.Tick})
}

func (m *model) viewLeads() string {
	if m.leadList.boardMode {
		return m.viewBoard()
	}
	return m.viewLeadList()
}

func (m *model) viewLeadList() string {
	lines := []string{m.theme.Title.Render("Leads")}
	lines = append(lines, m.viewLeadStats())
	lines = append(lines, m.theme.Faint.Render(
		"Type to search. Commands: view/edit/delete/status/proposal <n>, filter <status|All>, board, export/import <path>. '/' back, 'exit.' home."))
	lines = append(lines, "")

	if m.loading && !m.pipeline.Loaded() {
		lines = append(lines, m.spin.View()+" "+m.theme.Faint.Render("Loading leads..."))
		return strings.Join(lines, "\n") + "\n"
	}

	filtered := m.pipeline.Filtered()
	if len(filtered) == 0 {
		lines = append(lines, m.theme.Warning.Render("No leads found."))
	} else {
		for i, l := range filtered {
			header := fmt.Sprintf("%d. %s", i+1, l.Name)
			lines = append(lines, m.theme.Primary.Render(header)+"  "+m.theme.Status(l.Status).Render(string(l.Status)))
			meta := []string{}
			if l.Company != "" {
				meta = append(meta, l.Company)
			}
			if l.Value > 0 {
				meta = append(meta, fmt.Sprintf("%s %s", crm.FormatAmount(float64(l.Value)), l.Currency))
			}
			if l.Source != "" {
				meta = append(meta, fmt.Sprintf("via %s", l.Source))
			}
			if len(meta) > 0 {
				lines = append(lines, "  "+m.theme.Secondary.Render(strings.Join(meta, "  |  ")))
			}
			if l.Phone != "" || l.Email != "" {
				contact := strings.TrimSpace(strings.Join([]string{l.Phone, l.Email}, "  "))
				lines = append(lines, "  "+m.theme.Faint.Render(contact))
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
	lines = append(lines, m.theme.Accent.Render("find> ")+m.leadList.filter.View())
	return strings.Join(lines, "\n") + "\n"
}

func (m *model) viewLeadStats() string {
	stats := m.pipeline.Stats()
	parts := []string{
		fmt.Sprintf("Total: %d", stats.Total),
		fmt.Sprintf("New: %d", stats.New),
		fmt.Sprintf("Qualified: %d", stats.Qualified),
		fmt.Sprintf("Pipeline value: %s", crm.FormatAmount(stats.Value)),
	}
	if f := m.pipeline.StatusFilter(); f != board.FilterAll {
		parts = append(parts, fmt.Sprintf("Filter: %s", f))
	}
	return m.theme.Subtitle.Render(strings.Join(parts, "    "))
}

func (m *model) viewBoard() string {
	lines := []string{m.theme.Title.Render("Lead Board")}
	lines = append(lines, m.viewLeadStats())
	lines = append(lines, m.theme.Faint.Render(
		"Commands: move <card#> <column> [pos], view <n>, status <n> <status>, list. '/' back."))
	lines = append(lines, "")

	if m.loading && !m.pipeline.Loaded() {
		lines = append(lines, m.spin.View()+" "+m.theme.Faint.Render("Loading leads..."))
		return strings.Join(lines, "\n") + "\n"
	}

	columns := m.pipeline.Columns()
	rendered := make([]string, 0, len(columns))
	count := 0
	for _, col := range columns {
		body := []string{
			m.theme.Status(col.Status).Render(fmt.Sprintf("%s (%d)", col.Status, len(col.Leads))),
			m.theme.Faint.Render(crm.FormatAmount(col.Total)),
			"",
		}
		for _, l := range col.Leads {
			count++
			card := fmt.Sprintf("%d. %s", count, l.Name)
			body = append(body, m.theme.Card.Render(card))
			if l.Company != "" {
				body = append(body, m.theme.Faint.Render("   "+l.Company))
			}
		}
		if len(col.Leads) == 0 {
			body = append(body, m.theme.Faint.Render("(empty)"))
		}
		rendered = append(rendered, m.theme.Column.Render(strings.Join(body, "\n")))
	}
	lines = append(lines, lipgloss.JoinHorizontal(lipgloss.Top, rendered...))

	if m.infoMessage != "" {
		lines = append(lines, "", m.theme.Success.Render(m.infoMessage))
	}
	if m.errMessage != "" {
		lines = append(lines, "", m.theme.Danger.Render(m.errMessage))
	}
	lines = append(lines, m.theme.Accent.Render("board> ")+m.leadList.filter.View())
	return strings.Join(lines, "\n") + "\n"
}
