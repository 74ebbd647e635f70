package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"leadterm/internal/crm"
)

type leadDetailView int

const (
	leadDetailSummary leadDetailView = iota
	leadDetailActivity
)

type leadDetailModel struct {
	lead     crm.Lead
	notes    []crm.LeadNote
	tasks    []crm.LeadTask
	activity []crm.LeadActivity
	view     leadDetailView
	err      string
}

const (
	leadActionActivity = "activity"
	leadActionAddNote  = "add-note"
	leadActionAddTask  = "add-task"
	leadActionEdit     = "edit-lead"
	leadActionProposal = "proposal"
	leadActionBack     = "back"
)

var leadDetailOptions = []menuOption{
	{
		id:       leadActionActivity,
		keywords: []string{"activity", "timeline"},
		synonyms: []string{"1", "activity", "timeline"},
	},
	{
		id:       leadActionAddNote,
		keywords: []string{"note"},
		synonyms: []string{"2", "note", "add note", "create note"},
	},
	{
		id:       leadActionAddTask,
		keywords: []string{"task"},
		synonyms: []string{"3", "task", "add task", "create task"},
	},
	{
		id:       leadActionEdit,
		keywords: []string{"edit", "update"},
		synonyms: []string{"4", "edit", "update"},
	},
	{
		id:       leadActionProposal,
		keywords: []string{"proposal"},
		synonyms: []string{"5", "proposal", "create proposal"},
	},
	{
		id:       leadActionBack,
		keywords: []string{"back", "close"},
		synonyms: []string{"6", "back", "exit", "exit.", "/"},
	},
}

const leadDetailPrompt = "1=Activity  2=Note  3=Task  4=Edit  5=Proposal  6=Back"

func resolveLeadDetailAction(input string) (string, bool) {
	value := strings.TrimSpace(strings.ToLower(input))
	if value == "" {
		return "", false
	}
	for _, option := range leadDetailOptions {
		for _, syn := range option.synonyms {
			if value == syn {
				return option.id, true
			}
		}
	}
	matches := make(map[string]struct{})
	for _, option := range leadDetailOptions {
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

func (m *model) updateLeadDetail(msg tea.Msg) tea.Cmd {
	var cmds []tea.Cmd
	if focus := m.ensureMenuInput(leadDetailPrompt, 64); focus != nil {
		cmds = append(cmds, focus)
	}
	var cmd tea.Cmd
	m.menuInput, cmd = m.menuInput.Update(msg)
	if cmd != nil {
		cmds = append(cmds, cmd)
	}

	switch key := msg.(type) {
	case tea.KeyMsg:
		switch key.Type {
		case tea.KeyEnter:
			choice := strings.TrimSpace(strings.ToLower(m.menuInput.Value()))
			m.menuInput.SetValue("")
			if strings.HasPrefix(choice, "toggle ") {
				if c := m.handleTaskToggle(strings.TrimSpace(choice[len("toggle "):])); c != nil {
					cmds = append(cmds, c)
				}
				return batchCmds(cmds)
			}
			action, ok := resolveLeadDetailAction(choice)
			if !ok {
				if choice == "" {
					return batchCmds(cmds)
				}
				m.detail.err = "Unknown choice"
				return batchCmds(cmds)
			}
			m.detail.err = ""
			switch action {
			case leadActionActivity:
				if m.detail.view == leadDetailActivity {
					m.detail.view = leadDetailSummary
				} else {
					m.detail.view = leadDetailActivity
				}
			case leadActionAddNote:
				m.noteInput = textinput.New()
				m.noteInput.Prompt = ""
				m.noteInput.Placeholder = "Note details"
				m.noteInput.CharLimit = 256
				if focus := m.noteInput.Focus(); focus != nil {
					cmds = append(cmds, focus)
				}
				m.pushState(stateNoteWizard)
				return batchCmds(cmds)
			case leadActionAddTask:
				m.taskWizard = newTaskWizard()
				m.pushState(stateTaskWizard)
				return batchCmds(cmds)
			case leadActionEdit:
				lead := m.detail.lead
				if c := m.openLeadEdit(lead); c != nil {
					cmds = append(cmds, c)
				}
				return batchCmds(cmds)
			case leadActionProposal:
				m.proposal = newProposalModel(m.detail.lead)
				m.pushState(stateProposal)
				return batchCmds(cmds)
			case leadActionBack:
				m.popState()
				if m.state == stateMainMenu {
					if focus := m.setMenuInput("Choose an option", 32); focus != nil {
						cmds = append(cmds, focus)
					}
				}
				return batchCmds(cmds)
			}
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
	return batchCmds(cmds)
}

func (m *model) handleTaskToggle(arg string) tea.Cmd {
	var n int
	if _, err := fmt.Sscanf(arg, "%d", &n); err != nil || n < 1 || n > len(m.detail.tasks) {
		m.detail.err = "Usage: toggle <task#>"
		return nil
	}
	return toggleTaskCmd(m.api, m.detail.tasks[n-1].ID)
}

func (m *model) viewLeadDetail() string {
	l := m.detail.lead
	if m.loading && l.Name == "" {
		return m.spin.View() + " " + m.theme.Faint.Render("Loading lead...") + "\n"
	}
	lines := []string{m.theme.Title.Render(l.Name) + "  " + m.theme.Status(l.Status).Render(string(l.Status))}
	meta := []string{}
	if l.Company != "" {
		meta = append(meta, l.Company)
	}
	if l.Position != "" {
		meta = append(meta, l.Position)
	}
	if l.Value > 0 {
		meta = append(meta, fmt.Sprintf("%s %s", crm.FormatAmount(float64(l.Value)), l.Currency))
	}
	if l.Source != "" {
		meta = append(meta, fmt.Sprintf("via %s", l.Source))
	}
	if len(meta) > 0 {
		lines = append(lines, m.theme.Secondary.Render(strings.Join(meta, "  |  ")))
	}
	contact := []string{}
	if l.Phone != "" {
		contact = append(contact, fmt.Sprintf("Phone: %s", l.Phone))
	}
	if l.Email != "" {
		contact = append(contact, fmt.Sprintf("Email: %s", l.Email))
	}
	if l.AssignedTo != "" {
		contact = append(contact, fmt.Sprintf("Assigned: %s", l.AssignedTo))
	}
	if len(contact) > 0 {
		lines = append(lines, m.theme.Faint.Render(strings.Join(contact, "  |  ")))
	}
	if l.Description != "" {
		lines = append(lines, m.theme.Faint.Render(l.Description))
	}
	lines = append(lines, "")

	if m.detail.view == leadDetailActivity {
		lines = append(lines, m.theme.Subtitle.Render("Recent Activity"))
		if len(m.detail.activity) == 0 {
			lines = append(lines, m.theme.Faint.Render("No activity yet."))
		} else {
			for _, act := range m.detail.activity {
				typeLabel := act.Type
				if len(typeLabel) > 0 {
					typeLabel = strings.ToUpper(typeLabel[:1]) + typeLabel[1:]
				}
				lines = append(lines, m.theme.Primary.Render(fmt.Sprintf("[%s] %s", typeLabel, act.Title)))
			}
		}
		lines = append(lines, "")
	} else {
		lines = append(lines, m.theme.Subtitle.Render(fmt.Sprintf("Notes (%d)", len(m.detail.notes))))
		if len(m.detail.notes) == 0 {
			lines = append(lines, m.theme.Faint.Render("No notes yet."))
		} else {
			for _, n := range m.detail.notes {
				lines = append(lines, m.theme.Secondary.Render("- "+n.Content))
			}
		}
		lines = append(lines, "")
		lines = append(lines, m.theme.Subtitle.Render(fmt.Sprintf("Tasks (%d)", len(m.detail.tasks))))
		if len(m.detail.tasks) == 0 {
			lines = append(lines, m.theme.Faint.Render("No tasks yet."))
		} else {
			for i, t := range m.detail.tasks {
				box := "[ ]"
				if bool(t.Done) {
					box = "[x]"
				}
				entry := fmt.Sprintf("%d. %s %s", i+1, box, t.Title)
				if t.DueDate != "" {
					entry += fmt.Sprintf("  (due %s)", t.DueDate)
				}
				lines = append(lines, m.theme.Secondary.Render(entry))
			}
		}
		lines = append(lines, "")
	}

	lines = append(lines, m.theme.Subtitle.Render("Actions"))
	lines = append(lines, m.theme.Secondary.Render("1. View activity"))
	lines = append(lines, m.theme.Secondary.Render("2. Add note"))
	lines = append(lines, m.theme.Secondary.Render("3. Add task   (toggle <task#> to check off)"))
	lines = append(lines, m.theme.Secondary.Render("4. Edit lead"))
	lines = append(lines, m.theme.Secondary.Render("5. Create proposal"))
	lines = append(lines, m.theme.Faint.Render("6. Back"))
	lines = append(lines, "")
	lines = append(lines, m.theme.Accent.Render("> ")+m.menuInput.View())
	if m.detail.err != "" {
		lines = append(lines, "", m.theme.Danger.Render(m.detail.err))
	}
	if m.infoMessage != "" {
		lines = append(lines, "", m.theme.Success.Render(m.infoMessage))
	}
	if m.errMessage != "" {
		lines = append(lines, "", m.theme.Danger.Render(m.errMessage))
	}
	return strings.Join(lines, "\n") + "\n"
}

// NOTE WIZARD
func (m *model) updateNoteWizard(msg tea.Msg) tea.Cmd {
	var cmds []tea.Cmd
	if !m.noteInput.Focused() {
		if focus := m.noteInput.Focus(); focus != nil {
			cmds = append(cmds, focus)
		}
	}
	var cmd tea.Cmd
	m.noteInput, cmd = m.noteInput.Update(msg)
	if cmd != nil {
		cmds = append(cmds, cmd)
	}
	if key, ok := msg.(tea.KeyMsg); ok && key.Type == tea.KeyEnter {
		value := strings.TrimSpace(m.noteInput.Value())
		switch {
		case isExitCommand(value):
			m.prevStates = nil
			m.state = stateMainMenu
			if focus := m.setMenuInput("Choose an option", 32); focus != nil {
				cmds = append(cmds, focus)
			}
		case isBackCommand(value):
			m.popState()
		case value == "":
			m.errMessage = "Note content is required"
		default:
			cmds = append(cmds, addNoteCmd(m.api, m.detail.lead.ID, value))
		}
	}
	return batchCmds(cmds)
}

func (m *model) viewNoteWizard() string {
	lines := []string{
		m.theme.Title.Render("Add Note"),
		m.theme.Subtitle.Render(fmt.Sprintf("For lead: %s", m.detail.lead.Name)),
		m.theme.Faint.Render("'/' to go back, 'exit.' to cancel."),
		"",
		m.noteInput.View(),
	}
	if m.errMessage != "" {
		lines = append(lines, "", m.theme.Danger.Render(m.errMessage))
	}
	return strings.Join(lines, "\n") + "\n"
}

// TASK WIZARD
type taskStage int

const (
	taskStageTitle taskStage = iota
	taskStageDue
)

type taskWizardModel struct {
	stage      taskStage
	titleInput textinput.Model
	dueInput   textinput.Model
	err        string
}

func newTaskWizard() taskWizardModel {
	title := textinput.New()
	title.Prompt = ""
	title.Placeholder = "Task title"
	title.CharLimit = 128
	title.Focus()

	due := textinput.New()
	due.Prompt = ""
	due.Placeholder = "Due date YYYY-MM-DD (optional)"
	due.CharLimit = 32

	return taskWizardModel{stage: taskStageTitle, titleInput: title, dueInput: due}
}

func (m *model) updateTaskWizard(msg tea.Msg) tea.Cmd {
	var cmds []tea.Cmd
	w := &m.taskWizard
	switch w.stage {
	case taskStageTitle:
		var cmd tea.Cmd
		w.titleInput, cmd = w.titleInput.Update(msg)
		if cmd != nil {
			cmds = append(cmds, cmd)
		}
		if key, ok := msg.(tea.KeyMsg); ok && key.Type == tea.KeyEnter {
			value := strings.TrimSpace(w.titleInput.Value())
			switch {
			case isExitCommand(value):
				m.prevStates = nil
				m.state = stateMainMenu
				if focus := m.setMenuInput("Choose an option", 32); focus != nil {
					cmds = append(cmds, focus)
				}
			case isBackCommand(value):
				m.popState()
			case value == "":
				w.err = "Task title is required"
			default:
				w.err = ""
				w.stage = taskStageDue
				if focus := w.dueInput.Focus(); focus != nil {
					cmds = append(cmds, focus)
				}
			}
		}
	case taskStageDue:
		var cmd tea.Cmd
		w.dueInput, cmd = w.dueInput.Update(msg)
		if cmd != nil {
			cmds = append(cmds, cmd)
		}
		if key, ok := msg.(tea.KeyMsg); ok && key.Type == tea.KeyEnter {
			value := strings.TrimSpace(w.dueInput.Value())
			switch {
			case isExitCommand(value):
				m.prevStates = nil
				m.state = stateMainMenu
				if focus := m.setMenuInput("Choose an option", 32); focus != nil {
					cmds = append(cmds, focus)
				}
			case isBackCommand(value):
				w.stage = taskStageTitle
			default:
				p := crm.TaskPayload{Title: strings.TrimSpace(w.titleInput.Value()), DueDate: value}
				cmds = append(cmds, addTaskCmd(m.api, m.detail.lead.ID, p))
			}
		}
	}
	return batchCmds(cmds)
}

func (m *model) viewTaskWizard() string {
	w := &m.taskWizard
	lines := []string{
		m.theme.Title.Render("Add Task"),
		m.theme.Subtitle.Render(fmt.Sprintf("For lead: %s", m.detail.lead.Name)),
		m.theme.Faint.Render("'/' to go back, 'exit.' to cancel."),
		"",
	}
	switch w.stage {
	case taskStageTitle:
		lines = append(lines, m.theme.Primary.Render("Title:"), w.titleInput.View())
	case taskStageDue:
		lines = append(lines, m.theme.Primary.Render("Due date:"), w.dueInput.View())
	}
	if w.err != "" {
		lines = append(lines, "", m.theme.Danger.Render(w.err))
	}
	return strings.Join(lines, "\n") + "\n"
}
