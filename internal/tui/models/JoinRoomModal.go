package models

import (
	"strings"

	"github.com/codequest532/vyrona-social/internal/models"
	"github.com/codequest532/vyrona-social/internal/tui/client"
	"github.com/codequest532/vyrona-social/internal/tui/styles"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// JoinRoomModal is a centered prompt for a six-character room code.
type JoinRoomModal struct {
	apiClient *client.APIClient
	username  string
	returnTo  tea.Model

	input      textinput.Model
	submitting bool
	width      int
	height     int
	status     string
	statusOkay bool
}

type joinDoneMsg struct {
	room *models.RoomSummary
	err  error
}

func NewJoinRoomModal(api *client.APIClient, username string, returnTo tea.Model) JoinRoomModal {
	in := textinput.New()
	in.Prompt = "> "
	in.Placeholder = "room code (e.g., 7K2Q9D)"
	in.CharLimit = 6
	in.PromptStyle = styles.InputPromptFocusedStyle
	in.TextStyle = styles.InputTextFocusedStyle
	in.PlaceholderStyle = styles.InputPlaceholderStyle
	in.Cursor.Style = styles.KeyStyle
	in.Focus()

	return JoinRoomModal{
		apiClient: api,
		username:  username,
		returnTo:  returnTo,
		input:     in,
	}
}

func (m JoinRoomModal) Init() tea.Cmd { return textinput.Blink }

func (m JoinRoomModal) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		fieldWidth := m.width - 20
		if fieldWidth > 48 {
			fieldWidth = 48
		}
		if fieldWidth < 28 {
			fieldWidth = 28
		}
		m.input.Width = fieldWidth
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
		case "enter":
			if m.submitting {
				return m, nil
			}
			code := strings.ToUpper(strings.TrimSpace(m.input.Value()))
			if len(code) != 6 {
				m.status = "Room codes are 6 characters"
				m.statusOkay = false
				return m, nil
			}
			m.submitting = true
			m.status = "Joining..."
			m.statusOkay = true
			return m, joinByCodeCmd(m.apiClient, code)
		}

	case joinDoneMsg:
		m.submitting = false
		if msg.err != nil {
			m.status = msg.err.Error()
			m.statusOkay = false
			return m, nil
		}
		next := NewRoomModel(m.username, *msg.room, m.apiClient)
		return next, next.Init()
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m JoinRoomModal) View() string {
	title := styles.CardTitleStyle.Render("Join Room")
	subtitle := styles.CardSubtitleStyle.Render("Enter the code your friend shared")
	field := styles.InputFieldFocusedStyle.Render(m.input.View())

	statusView := ""
	if m.status != "" {
		if m.statusOkay {
			statusView = styles.StatusSuccessStyle.Render(m.status)
		} else {
			statusView = styles.StatusErrorStyle.Render(m.status)
		}
	}

	help := styles.HelpStyle.Render(strings.Join([]string{
		styles.RenderKeyBinding("Enter", "Join"),
		styles.RenderKeyBinding("Esc", "Cancel"),
	}, "  "))

	content := strings.Join([]string{title, subtitle, field, statusView, help}, "\n\n")
	card := styles.CardStyle.Render(content)
	if m.width > 0 && m.height > 0 {
		centered := lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, card)
		return styles.AppStyle.Width(m.width).Height(m.height).Render(centered)
	}
	return styles.AppStyle.Render(card)
}

func joinByCodeCmd(api *client.APIClient, code string) tea.Cmd {
	return func() tea.Msg {
		room, err := api.JoinRoomByCode(code)
		if err != nil {
			return joinDoneMsg{err: err}
		}
		return joinDoneMsg{room: room}
	}
}
