package models

import (
	"fmt"
	"strings"
	"time"

	"github.com/codequest532/vyrona-social/internal/models"
	"github.com/codequest532/vyrona-social/internal/tui/client"
	"github.com/codequest532/vyrona-social/internal/tui/styles"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

const roomListPollInterval = 3 * time.Second

// RoomListModel is the home screen: the caller's rooms (or the full
// directory) refreshed on a polling tick, with live member counts and cart
// totals straight from the server.
type RoomListModel struct {
	apiClient   *client.APIClient
	username    string
	rooms       []models.RoomSummary
	selectedIdx int
	mineOnly    bool
	width       int
	height      int
	status      string
	statusOkay  bool
}

type roomListMsg struct {
	rooms []models.RoomSummary
	err   error
}

type roomListTickMsg struct{}

func NewRoomListModel(username string, apiClient *client.APIClient) RoomListModel {
	return RoomListModel{
		apiClient: apiClient,
		username:  username,
		mineOnly:  true,
	}
}

func (m RoomListModel) Init() tea.Cmd {
	return tea.Batch(fetchRooms(m.apiClient, m.mineOnly), roomListTick())
}

func roomListTick() tea.Cmd {
	return tea.Tick(roomListPollInterval, func(time.Time) tea.Msg {
		return roomListTickMsg{}
	})
}

func fetchRooms(api *client.APIClient, mine bool) tea.Cmd {
	return func() tea.Msg {
		rooms, err := api.GetRooms(mine)
		return roomListMsg{rooms: rooms, err: err}
	}
}

func (m RoomListModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case roomListTickMsg:
		return m, tea.Batch(fetchRooms(m.apiClient, m.mineOnly), roomListTick())

	case roomListMsg:
		if msg.err != nil {
			m.status = msg.err.Error()
			m.statusOkay = false
			return m, nil
		}
		m.rooms = msg.rooms
		if m.selectedIdx >= len(m.rooms) {
			m.selectedIdx = len(m.rooms) - 1
		}
		if m.selectedIdx < 0 {
			m.selectedIdx = 0
		}
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "up", "k":
			if m.selectedIdx > 0 {
				m.selectedIdx--
			}

		case "down", "j":
			if m.selectedIdx < len(m.rooms)-1 {
				m.selectedIdx++
			}

		case "tab":
			m.mineOnly = !m.mineOnly
			m.selectedIdx = 0
			m.status = ""
			return m, fetchRooms(m.apiClient, m.mineOnly)

		case "enter":
			if len(m.rooms) == 0 {
				return m, nil
			}
			next := NewRoomModel(m.username, m.rooms[m.selectedIdx], m.apiClient)
			return next, next.Init()

		case "c":
			return NewCreateRoomModel(m.apiClient, m.username, m), textinput.Blink

		case "g":
			return NewJoinRoomModal(m.apiClient, m.username, m), textinput.Blink

		case "r":
			return m, fetchRooms(m.apiClient, m.mineOnly)

		case "q", "ctrl+c":
			return m, tea.Quit
		}
	}

	return m, nil
}

func (m RoomListModel) View() string {
	var sb strings.Builder

	sb.WriteString(styles.TitleStyle.Render(fmt.Sprintf("Welcome %s", m.username)) + "\n\n")
	if m.mineOnly {
		sb.WriteString("Your Rooms\n")
	} else {
		sb.WriteString("All Active Rooms\n")
	}
	sb.WriteString(strings.Repeat("-", 44) + "\n")

	if len(m.rooms) == 0 {
		sb.WriteString(styles.MutedTextStyle.Render("No rooms yet. Press c to create one or g to join by code.") + "\n")
	}

	for i, room := range m.rooms {
		line := fmt.Sprintf("%-24s %s  %d/%d  %s",
			truncate(room.Name, 24),
			room.Code,
			room.MemberCount,
			room.MaxMembers,
			formatPrice(room.CartTotal),
		)
		if i == m.selectedIdx {
			sb.WriteString(styles.SelectedItemStyle.Render("> "+line) + "\n")
		} else {
			sb.WriteString("  " + line + "\n")
		}
	}

	if m.status != "" {
		style := styles.StatusErrorStyle
		if m.statusOkay {
			style = styles.StatusSuccessStyle
		}
		sb.WriteString("\n" + style.Render(m.status) + "\n")
	}

	help := strings.Join([]string{
		styles.RenderKeyBinding("Enter", "Open"),
		styles.RenderKeyBinding("c", "Create"),
		styles.RenderKeyBinding("g", "Join by code"),
		styles.RenderKeyBinding("Tab", "Mine/All"),
		styles.RenderKeyBinding("q", "Quit"),
	}, "  ")
	sb.WriteString("\n" + styles.HelpStyle.Render(help))

	return styles.ContainerStyle.Render(sb.String())
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max-1] + "…"
}

// formatPrice renders a minor-unit amount as a decimal string.
func formatPrice(amount int64) string {
	sign := ""
	if amount < 0 {
		sign = "-"
		amount = -amount
	}
	return fmt.Sprintf("%s%d.%02d", sign, amount/100, amount%100)
}
