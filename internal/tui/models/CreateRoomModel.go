package models

import (
	"strconv"
	"strings"

	"github.com/codequest532/vyrona-social/internal/tui/client"
	"github.com/codequest532/vyrona-social/internal/tui/styles"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// CreateRoomModel collects a room name, optional description and capacity,
// then hands the new room straight to the room view.
type CreateRoomModel struct {
	apiClient  *client.APIClient
	username   string
	returnTo   tea.Model
	inputs     []textinput.Model
	focusIndex int
	submitting bool
	width      int
	height     int
	status     string
}

type createRoomDoneMsg struct {
	room tea.Model
	err  error
}

func NewCreateRoomModel(api *client.APIClient, username string, returnTo tea.Model) CreateRoomModel {
	name := textinput.New()
	name.Placeholder = "Room name"
	name.CharLimit = 100
	name.Prompt = "> "
	name.PromptStyle = styles.InputPromptFocusedStyle
	name.TextStyle = styles.InputTextFocusedStyle
	name.PlaceholderStyle = styles.InputPlaceholderStyle
	name.Cursor.Style = styles.KeyStyle
	name.Width = 36
	name.Focus()

	description := textinput.New()
	description.Placeholder = "Description (optional)"
	description.CharLimit = 255
	description.Prompt = "> "
	description.PromptStyle = styles.InputPromptStyle
	description.TextStyle = styles.InputTextStyle
	description.PlaceholderStyle = styles.InputPlaceholderStyle
	description.Cursor.Style = styles.KeyStyle
	description.Width = 36

	capacity := textinput.New()
	capacity.Placeholder = "Capacity (default 10)"
	capacity.CharLimit = 4
	capacity.Prompt = "> "
	capacity.PromptStyle = styles.InputPromptStyle
	capacity.TextStyle = styles.InputTextStyle
	capacity.PlaceholderStyle = styles.InputPlaceholderStyle
	capacity.Cursor.Style = styles.KeyStyle
	capacity.Width = 36

	return CreateRoomModel{
		apiClient: api,
		username:  username,
		returnTo:  returnTo,
		inputs:    []textinput.Model{name, description, capacity},
	}
}

func (m CreateRoomModel) Init() tea.Cmd { return textinput.Blink }

func (m CreateRoomModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "esc":
			if m.submitting {
				return m, nil
			}
			return m.returnTo, m.returnTo.Init()

		case "ctrl+c":
			return m, tea.Quit

		case "tab", "shift+tab", "enter", "up", "down":
			if m.submitting {
				return m, nil
			}

			s := msg.String()
			if s == "enter" && m.focusIndex == len(m.inputs) {
				name := strings.TrimSpace(m.inputs[0].Value())
				if name == "" {
					m.status = "Room name is required"
					return m, nil
				}
				var capacity uint
				if raw := strings.TrimSpace(m.inputs[2].Value()); raw != "" {
					parsed, err := strconv.ParseUint(raw, 10, 32)
					if err != nil || parsed < 1 {
						m.status = "Capacity must be a positive number"
						return m, nil
					}
					capacity = uint(parsed)
				}

				m.submitting = true
				m.status = "Creating room..."
				return m, createRoomCmd(m.apiClient, m.username, name, strings.TrimSpace(m.inputs[1].Value()), capacity)
			}

			if s == "tab" || s == "enter" || s == "down" {
				m.focusIndex++
			} else {
				m.focusIndex--
			}

			if m.focusIndex < 0 {
				m.focusIndex = len(m.inputs)
			} else if m.focusIndex > len(m.inputs) {
				m.focusIndex = 0
			}

			return m, m.applyFocusStyles()
		}

	case createRoomDoneMsg:
		m.submitting = false
		if msg.err != nil {
			m.status = msg.err.Error()
			return m, nil
		}
		return msg.room, msg.room.Init()
	}

	cmds := make([]tea.Cmd, len(m.inputs))
	for i := range m.inputs {
		m.inputs[i], cmds[i] = m.inputs[i].Update(msg)
	}
	return m, tea.Batch(cmds...)
}

func (m CreateRoomModel) applyFocusStyles() tea.Cmd {
	cmds := make([]tea.Cmd, len(m.inputs))
	for i := range m.inputs {
		if i == m.focusIndex {
			m.inputs[i].PromptStyle = styles.InputPromptFocusedStyle
			m.inputs[i].TextStyle = styles.InputTextFocusedStyle
			if !m.inputs[i].Focused() {
				cmds[i] = m.inputs[i].Focus()
			}
			continue
		}
		m.inputs[i].PromptStyle = styles.InputPromptStyle
		m.inputs[i].TextStyle = styles.InputTextStyle
		if m.inputs[i].Focused() {
			m.inputs[i].Blur()
		}
	}
	return tea.Batch(cmds...)
}

func (m CreateRoomModel) View() string {
	fields := make([]string, len(m.inputs))
	for i := range m.inputs {
		view := m.inputs[i].View()
		if i == m.focusIndex {
			fields[i] = styles.InputFieldFocusedStyle.Render(view)
		} else {
			fields[i] = styles.InputFieldStyle.Render(view)
		}
	}

	form := strings.Join(fields, "\n\n")
	button := styles.RenderButton("Create", m.focusIndex == len(m.inputs))

	statusView := ""
	if m.status != "" {
		statusView = styles.StatusErrorStyle.Render(m.status)
		if m.submitting {
			statusView = styles.StatusInfoStyle.Render(m.status)
		}
	}

	help := strings.Join([]string{
		styles.RenderKeyBinding("Enter", "Create"),
		styles.RenderKeyBinding("Esc", "Cancel"),
	}, "  ")

	sections := []string{
		styles.CardTitleStyle.Render("Create Room"),
		styles.CardSubtitleStyle.Render("Your friends join with the room code."),
		form,
		button,
	}
	if statusView != "" {
		sections = append(sections, statusView)
	}
	sections = append(sections, styles.HelpStyle.Render(help))

	card := styles.CardStyle.Render(strings.Join(sections, "\n\n"))
	if m.width > 0 && m.height > 0 {
		centered := lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, card)
		return styles.AppStyle.Width(m.width).Height(m.height).Render(centered)
	}
	return styles.AppStyle.Render(card)
}

func createRoomCmd(api *client.APIClient, username, name, description string, capacity uint) tea.Cmd {
	return func() tea.Msg {
		room, err := api.CreateRoom(name, description, capacity)
		if err != nil {
			return createRoomDoneMsg{err: err}
		}
		return createRoomDoneMsg{room: NewRoomModel(username, *room, api)}
	}
}
