package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

type settingsMode int

const (
	settingsViewing settingsMode = iota
	settingsEditingName
	settingsEditingTimezone
	settingsEditingAPIURL
)

type settingsModel struct {
	mode  settingsMode
	input textinput.Model
	err   string
}

func newSettingsModel() settingsModel {
	input := textinput.New()
	input.Prompt = ""
	input.CharLimit = 96
	return settingsModel{mode: settingsViewing, input: input}
}

func (m *model) updateSettings(msg tea.Msg) tea.Cmd {
	var cmds []tea.Cmd
	if m.settings.mode == settingsViewing {
		if focus := m.ensureMenuInput("1=Name  2=Timezone  3=API URL  4=Back", 40); focus != nil {
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
			switch choice {
			case "1", "name":
				m.settings.mode = settingsEditingName
				m.settings.input.Placeholder = "Your name"
				m.settings.input.SetValue(m.cfg.Config.Name)
				if focus := m.settings.input.Focus(); focus != nil {
					cmds = append(cmds, focus)
				}
			case "2", "timezone", "tz":
				m.settings.mode = settingsEditingTimezone
				m.settings.input.Placeholder = "IANA timezone, e.g. Europe/Berlin"
				m.settings.input.SetValue(m.cfg.Config.Timezone)
				if focus := m.settings.input.Focus(); focus != nil {
					cmds = append(cmds, focus)
				}
			case "3", "api", "url", "api url":
				m.settings.mode = settingsEditingAPIURL
				m.settings.input.Placeholder = "API base URL"
				m.settings.input.SetValue(m.cfg.Config.APIBaseURL)
				if focus := m.settings.input.Focus(); focus != nil {
					cmds = append(cmds, focus)
				}
			case "4", "back", "/", "exit.", "exit", "quit":
				m.popState()
				if m.state == stateMainMenu {
					if focus := m.setMenuInput("Choose an option", 32); focus != nil {
						cmds = append(cmds, focus)
					}
				}
			case "":
			default:
				m.settings.err = "Unknown choice"
			}
		}
		return batchCmds(cmds)
	}

	var cmd tea.Cmd
	m.settings.input, cmd = m.settings.input.Update(msg)
	if cmd != nil {
		cmds = append(cmds, cmd)
	}
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.Type {
		case tea.KeyEnter:
			value := strings.TrimSpace(m.settings.input.Value())
			if isBackCommand(value) || isExitCommand(value) {
				m.settings.mode = settingsViewing
				m.settings.err = ""
				return batchCmds(cmds)
			}
			if c := m.applySetting(value); c != nil {
				cmds = append(cmds, c)
			}
		case tea.KeyEsc:
			m.settings.mode = settingsViewing
			m.settings.err = ""
		}
	}
	return batchCmds(cmds)
}

func (m *model) applySetting(value string) tea.Cmd {
	switch m.settings.mode {
	case settingsEditingName:
		if value == "" {
			m.settings.err = "Name cannot be empty"
			return nil
		}
		m.cfg.Config.Name = value
	case settingsEditingTimezone:
		if value == "" {
			m.settings.err = "Timezone cannot be empty"
			return nil
		}
		if _, err := time.LoadLocation(value); err != nil {
			m.settings.err = fmt.Sprintf("Unknown timezone '%s'", value)
			return nil
		}
		m.cfg.Config.Timezone = value
	case settingsEditingAPIURL:
		if value == "" {
			m.settings.err = "API URL cannot be empty"
			return nil
		}
		m.cfg.Config.APIBaseURL = value
	}
	if err := m.cfg.Save(); err != nil {
		m.settings.err = fmt.Sprintf("save settings: %v", err)
		return nil
	}
	m.settings.mode = settingsViewing
	m.settings.err = ""
	m.infoMessage = "Settings saved"
	return m.setMenuInput("1=Name  2=Timezone  3=API URL  4=Back", 40)
}

func (m *model) viewSettings() string {
	lines := []string{m.theme.Title.Render("Settings & Help")}
	lines = append(lines, "")
	lines = append(lines, m.theme.Primary.Render(fmt.Sprintf("1. Name:     %s", m.cfg.Config.Name)))
	lines = append(lines, m.theme.Primary.Render(fmt.Sprintf("2. Timezone: %s", m.cfg.Config.Timezone)))
	lines = append(lines, m.theme.Primary.Render(fmt.Sprintf("3. API URL:  %s", m.cfg.Config.APIBaseURL)))
	lines = append(lines, m.theme.Faint.Render("4. Back"))
	lines = append(lines, "")
	lines = append(lines, m.theme.Subtitle.Render("Help"))
	lines = append(lines, m.theme.Secondary.Render("Every screen accepts '/' to go back and 'exit.' to return home."))
	lines = append(lines, m.theme.Secondary.Render("The lead list and board live in one view; 'board' and 'list' switch."))
	lines = append(lines, m.theme.Secondary.Render("An API URL change takes effect on the next start."))
	lines = append(lines, "")
	switch m.settings.mode {
	case settingsViewing:
		lines = append(lines, m.theme.Accent.Render("> ")+m.menuInput.View())
	default:
		lines = append(lines, m.theme.Accent.Render("edit> ")+m.settings.input.View())
	}
	if m.settings.err != "" {
		lines = append(lines, "", m.theme.Danger.Render(m.settings.err))
	}
	if m.infoMessage != "" {
		lines = append(lines, "", m.theme.Success.Render(m.infoMessage))
	}
	return strings.Join(lines, "\n") + "\n"
}
