package utils

import (
	"os"

	"golang.org/x/term"

	tea "github.com/charmbracelet/bubbletea"
)

// GetSizeCmd emits the current terminal size as a WindowSizeMsg so screens
// can lay themselves out before the first resize event arrives.
func GetSizeCmd() tea.Cmd {
	return func() tea.Msg {
		w, h, _ := term.GetSize(int(os.Stdout.Fd()))
		return tea.WindowSizeMsg{Width: w, Height: h}
	}
}
