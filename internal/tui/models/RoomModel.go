package models

import (
	"fmt"
	"strings"
	"time"

	"github.com/codequest532/vyrona-social/internal/api/ws"
	"github.com/codequest532/vyrona-social/internal/models"
	"github.com/codequest532/vyrona-social/internal/tui/client"
	"github.com/codequest532/vyrona-social/internal/tui/styles"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

const roomPollInterval = 2 * time.Second

const (
	paneMembers = iota
	paneCart
)

// RoomModel is the shared room view: the member roster on the left, the
// shared cart with its running total on the right. State is re-fetched on a
// short poll and on every event the room feed pushes.
type RoomModel struct {
	apiClient *client.APIClient
	username  string
	room      models.RoomSummary

	members []models.Membership
	items   []models.CartItemWithProduct
	total   int64

	focusPane int
	memberIdx int
	cartIdx   int

	pickerOpen bool
	pickerIdx  int
	products   []models.Product

	promptOpen bool
	prompt     textinput.Model

	events   <-chan ws.Event
	cancelWS func()

	width  int
	height int
	status string
}

type roomStateMsg struct {
	room    *models.RoomSummary
	members []models.Membership
	items   []models.CartItemWithProduct
	total   int64
	err     error
}

type roomTickMsg struct{}

type roomEventMsg struct {
	event ws.Event
	ok    bool
}

type roomActionMsg struct{ err error }

type productsMsg struct {
	products []models.Product
	err      error
}

func NewRoomModel(username string, room models.RoomSummary, apiClient *client.APIClient) RoomModel {
	prompt := textinput.New()
	prompt.Prompt = "> "
	prompt.Placeholder = "username to add"
	prompt.CharLimit = 48
	prompt.PromptStyle = styles.InputPromptFocusedStyle
	prompt.TextStyle = styles.InputTextFocusedStyle
	prompt.PlaceholderStyle = styles.InputPlaceholderStyle
	prompt.Cursor.Style = styles.KeyStyle

	m := RoomModel{
		apiClient: apiClient,
		username:  username,
		room:      room,
		prompt:    prompt,
	}

	// Polling alone keeps the view correct; the event feed just makes it
	// snappier, so a failed subscribe is not an error.
	if ch, cancel, err := apiClient.SubscribeRoom(room.Id); err == nil {
		m.events = ch
		m.cancelWS = cancel
	}
	return m
}

func (m RoomModel) Init() tea.Cmd {
	cmds := []tea.Cmd{fetchRoomState(m.apiClient, m.room.Id), roomTick()}
	if m.events != nil {
		cmds = append(cmds, waitForRoomEvent(m.events))
	}
	return tea.Batch(cmds...)
}

func roomTick() tea.Cmd {
	return tea.Tick(roomPollInterval, func(time.Time) tea.Msg {
		return roomTickMsg{}
	})
}

func fetchRoomState(api *client.APIClient, roomID uint) tea.Cmd {
	return func() tea.Msg {
		room, err := api.GetRoom(roomID)
		if err != nil {
			return roomStateMsg{err: err}
		}
		members, err := api.GetMembers(roomID)
		if err != nil {
			return roomStateMsg{err: err}
		}
		items, total, err := api.GetRoomCart(roomID)
		if err != nil {
			return roomStateMsg{err: err}
		}
		return roomStateMsg{room: room, members: members, items: items, total: total}
	}
}

func waitForRoomEvent(ch <-chan ws.Event) tea.Cmd {
	return func() tea.Msg {
		evt, ok := <-ch
		return roomEventMsg{event: evt, ok: ok}
	}
}

func fetchProducts(api *client.APIClient) tea.Cmd {
	return func() tea.Msg {
		products, err := api.GetProducts()
		return productsMsg{products: products, err: err}
	}
}

// isAdmin reports whether the caller's own roster row carries the admin role.
func (m RoomModel) isAdmin() bool {
	for _, member := range m.members {
		if member.Name == m.username {
			return member.IsAdmin()
		}
	}
	return false
}

func (m RoomModel) leave() (tea.Model, tea.Cmd) {
	if m.cancelWS != nil {
		m.cancelWS()
	}
	next := NewRoomListModel(m.username, m.apiClient)
	return next, next.Init()
}

func (m RoomModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case roomTickMsg:
		return m, tea.Batch(fetchRoomState(m.apiClient, m.room.Id), roomTick())

	case roomStateMsg:
		if msg.err != nil {
			// Room gone or membership revoked: fall back to the list.
			if strings.Contains(msg.err.Error(), "HTTP error: 404") ||
				strings.Contains(msg.err.Error(), "HTTP error: 403") {
				return m.leave()
			}
			m.status = msg.err.Error()
			return m, nil
		}
		m.room = *msg.room
		m.members = msg.members
		m.items = msg.items
		m.total = msg.total
		if m.memberIdx >= len(m.members) {
			m.memberIdx = max(0, len(m.members)-1)
		}
		if m.cartIdx >= len(m.items) {
			m.cartIdx = max(0, len(m.items)-1)
		}
		return m, nil

	case roomEventMsg:
		if !msg.ok {
			return m, nil
		}
		if msg.event.Type == ws.EventRoomDeleted {
			return m.leave()
		}
		return m, tea.Batch(fetchRoomState(m.apiClient, m.room.Id), waitForRoomEvent(m.events))

	case roomActionMsg:
		if msg.err != nil {
			m.status = msg.err.Error()
			return m, nil
		}
		m.status = ""
		return m, fetchRoomState(m.apiClient, m.room.Id)

	case productsMsg:
		if msg.err != nil {
			m.status = msg.err.Error()
			m.pickerOpen = false
			return m, nil
		}
		m.products = msg.products
		if len(m.products) == 0 {
			m.status = "No products in the catalog yet"
			m.pickerOpen = false
		}
		return m, nil

	case tea.KeyMsg:
		if m.promptOpen {
			return m.updatePrompt(msg)
		}
		if m.pickerOpen {
			return m.updatePicker(msg)
		}
		return m.updateKeys(msg)
	}

	return m, nil
}

func (m RoomModel) updatePrompt(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.promptOpen = false
		m.prompt.Reset()
		return m, nil
	case "enter":
		name := strings.TrimSpace(m.prompt.Value())
		m.promptOpen = false
		m.prompt.Reset()
		if name == "" {
			return m, nil
		}
		return m, roomAction(func() error { return m.apiClient.AddMember(m.room.Id, name) })
	}
	var cmd tea.Cmd
	m.prompt, cmd = m.prompt.Update(msg)
	return m, cmd
}

func (m RoomModel) updatePicker(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.pickerOpen = false
		return m, nil
	case "up", "k":
		if m.pickerIdx > 0 {
			m.pickerIdx--
		}
	case "down", "j":
		if m.pickerIdx < len(m.products)-1 {
			m.pickerIdx++
		}
	case "enter":
		if len(m.products) == 0 {
			return m, nil
		}
		product := m.products[m.pickerIdx]
		m.pickerOpen = false
		return m, roomAction(func() error {
			return m.apiClient.AddRoomCartItem(m.room.Id, product.ID, 1)
		})
	}
	return m, nil
}

func (m RoomModel) updateKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		if m.cancelWS != nil {
			m.cancelWS()
		}
		return m, tea.Quit

	case "esc":
		return m.leave()

	case "tab":
		if m.focusPane == paneMembers {
			m.focusPane = paneCart
		} else {
			m.focusPane = paneMembers
		}

	case "up", "k":
		if m.focusPane == paneMembers && m.memberIdx > 0 {
			m.memberIdx--
		} else if m.focusPane == paneCart && m.cartIdx > 0 {
			m.cartIdx--
		}

	case "down", "j":
		if m.focusPane == paneMembers && m.memberIdx < len(m.members)-1 {
			m.memberIdx++
		} else if m.focusPane == paneCart && m.cartIdx < len(m.items)-1 {
			m.cartIdx++
		}

	case "a":
		m.pickerOpen = true
		m.pickerIdx = 0
		if len(m.products) == 0 {
			return m, fetchProducts(m.apiClient)
		}

	case "i":
		if !m.isAdmin() {
			m.status = "Only admins can add members"
			return m, nil
		}
		m.promptOpen = true
		return m, m.prompt.Focus()

	case "p":
		if m.focusPane != paneMembers || len(m.members) == 0 {
			return m, nil
		}
		target := m.members[m.memberIdx]
		return m, roomAction(func() error {
			return m.apiClient.PromoteMember(m.room.Id, target.UserID)
		})

	case "x":
		if m.focusPane == paneMembers {
			if len(m.members) == 0 {
				return m, nil
			}
			target := m.members[m.memberIdx]
			return m, roomAction(func() error {
				return m.apiClient.RemoveMember(m.room.Id, target.UserID)
			})
		}
		if len(m.items) == 0 {
			return m, nil
		}
		item := m.items[m.cartIdx]
		return m, roomAction(func() error { return m.apiClient.RemoveCartItem(item.ID) })

	case "+", "=":
		if m.focusPane == paneCart && len(m.items) > 0 {
			item := m.items[m.cartIdx]
			return m, roomAction(func() error {
				return m.apiClient.UpdateCartItem(item.ID, item.Quantity+1)
			})
		}

	case "-":
		if m.focusPane == paneCart && len(m.items) > 0 {
			item := m.items[m.cartIdx]
			return m, roomAction(func() error {
				// Quantity zero removes the line server-side.
				return m.apiClient.UpdateCartItem(item.ID, item.Quantity-1)
			})
		}

	case "e":
		roomID := m.room.Id
		api := m.apiClient
		if err := api.ExitRoom(roomID); err != nil {
			m.status = err.Error()
			return m, nil
		}
		return m.leave()

	case "D":
		if !m.isAdmin() {
			m.status = "Only admins can delete the room"
			return m, nil
		}
		if err := m.apiClient.DeleteRoom(m.room.Id); err != nil {
			m.status = err.Error()
			return m, nil
		}
		return m.leave()

	case "r":
		return m, fetchRoomState(m.apiClient, m.room.Id)
	}

	return m, nil
}

func roomAction(action func() error) tea.Cmd {
	return func() tea.Msg {
		return roomActionMsg{err: action()}
	}
}

func (m RoomModel) View() string {
	if m.promptOpen {
		return m.renderOverlay("Add Member", m.prompt.View())
	}
	if m.pickerOpen {
		return m.renderPicker()
	}

	header := styles.TitleStyle.Render(m.room.Name) +
		"  " + styles.MutedTextStyle.Render(fmt.Sprintf("code %s · %d/%d members", m.room.Code, m.room.MemberCount, m.room.MaxMembers))

	members := m.renderMembers()
	cart := m.renderCart()
	panes := lipgloss.JoinHorizontal(lipgloss.Top, members, " ", cart)

	statusView := ""
	if m.status != "" {
		statusView = styles.StatusErrorStyle.Render(m.status)
	}

	help := strings.Join([]string{
		styles.RenderKeyBinding("Tab", "Switch pane"),
		styles.RenderKeyBinding("a", "Add item"),
		styles.RenderKeyBinding("+/-", "Quantity"),
		styles.RenderKeyBinding("x", "Remove"),
		styles.RenderKeyBinding("p", "Promote"),
		styles.RenderKeyBinding("i", "Add member"),
		styles.RenderKeyBinding("e", "Exit room"),
		styles.RenderKeyBinding("Esc", "Back"),
	}, "  ")

	sections := []string{header, panes}
	if statusView != "" {
		sections = append(sections, statusView)
	}
	sections = append(sections, styles.HelpStyle.Render(help))

	return styles.ContainerStyle.Render(strings.Join(sections, "\n\n"))
}

func (m RoomModel) renderMembers() string {
	var sb strings.Builder
	sb.WriteString("Members\n")

	for i, member := range m.members {
		label := member.Name
		if member.IsAdmin() {
			label = styles.AdminStyle.Render(label + " (admin)")
		}
		if m.focusPane == paneMembers && i == m.memberIdx {
			sb.WriteString(styles.SelectedItemStyle.Render("> "+label) + "\n")
		} else {
			sb.WriteString("  " + label + "\n")
		}
	}

	style := styles.PaneStyle
	if m.focusPane == paneMembers {
		style = styles.PaneFocusedStyle
	}
	return style.Width(28).Render(sb.String())
}

func (m RoomModel) renderCart() string {
	var sb strings.Builder
	sb.WriteString("Shared Cart\n")

	if len(m.items) == 0 {
		sb.WriteString(styles.MutedTextStyle.Render("Empty. Press a to add an item.") + "\n")
	}

	for i, item := range m.items {
		line := fmt.Sprintf("%-18s x%-3d %8s  %s",
			truncate(item.ProductName, 18),
			item.Quantity,
			formatPrice(item.Subtotal),
			styles.MutedTextStyle.Render(item.AddedBy),
		)
		if m.focusPane == paneCart && i == m.cartIdx {
			sb.WriteString(styles.SelectedItemStyle.Render("> "+line) + "\n")
		} else {
			sb.WriteString("  " + line + "\n")
		}
	}

	sb.WriteString("\n" + styles.TotalStyle.Render(fmt.Sprintf("Total: %s", formatPrice(m.total))))

	style := styles.PaneStyle
	if m.focusPane == paneCart {
		style = styles.PaneFocusedStyle
	}
	return style.Width(52).Render(sb.String())
}

func (m RoomModel) renderPicker() string {
	var sb strings.Builder
	for i, product := range m.products {
		line := fmt.Sprintf("%-24s %s", truncate(product.Name, 24), formatPrice(product.Price))
		if i == m.pickerIdx {
			sb.WriteString(styles.SelectedItemStyle.Render("> "+line) + "\n")
		} else {
			sb.WriteString("  " + line + "\n")
		}
	}
	if len(m.products) == 0 {
		sb.WriteString(styles.MutedTextStyle.Render("Loading catalog..."))
	}
	return m.renderOverlay("Add to Cart", sb.String())
}

func (m RoomModel) renderOverlay(title, body string) string {
	content := strings.Join([]string{
		styles.CardTitleStyle.Render(title),
		body,
		styles.HelpStyle.Render(strings.Join([]string{
			styles.RenderKeyBinding("Enter", "Confirm"),
			styles.RenderKeyBinding("Esc", "Cancel"),
		}, "  ")),
	}, "\n\n")

	card := styles.CardStyle.Render(content)
	if m.width > 0 && m.height > 0 {
		centered := lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, card)
		return styles.AppStyle.Width(m.width).Height(m.height).Render(centered)
	}
	return styles.AppStyle.Render(card)
}
