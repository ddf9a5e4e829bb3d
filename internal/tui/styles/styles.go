package styles

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
)

var (
	PrimaryColor   = lipgloss.Color("#D12182")
	SecondaryColor = lipgloss.Color("#874BFD")
	MutedColor     = lipgloss.Color("#626262")
	AquaColor      = lipgloss.Color("86")
	LimeColor      = lipgloss.Color("#00FF77")

	AppStyle = lipgloss.NewStyle()

	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(PrimaryColor)

	ContainerStyle = lipgloss.NewStyle().
			Padding(1, 2)

	CardStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(SecondaryColor).
			Padding(1, 3)

	CardTitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(PrimaryColor)

	CardSubtitleStyle = lipgloss.NewStyle().
				Foreground(MutedColor)

	PaneStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(MutedColor).
			Padding(0, 1)

	PaneFocusedStyle = lipgloss.NewStyle().
				BorderStyle(lipgloss.RoundedBorder()).
				BorderForeground(SecondaryColor).
				Padding(0, 1)

	SelectedItemStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#FFFFFF")).
				Background(lipgloss.Color("#7D56F4")).
				Bold(true)

	AdminStyle = lipgloss.NewStyle().
			Foreground(AquaColor)

	TotalStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(LimeColor)

	HelpStyle = lipgloss.NewStyle().
			Foreground(MutedColor)

	KeyStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("205"))

	MutedTextStyle = lipgloss.NewStyle().
			Foreground(MutedColor)

	StatusMessageStyle = lipgloss.NewStyle().Foreground(MutedColor)
	StatusInfoStyle    = lipgloss.NewStyle().Foreground(AquaColor)
	StatusSuccessStyle = lipgloss.NewStyle().Foreground(LimeColor)
	StatusErrorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))

	InputPromptStyle        = lipgloss.NewStyle().Foreground(MutedColor)
	InputPromptFocusedStyle = lipgloss.NewStyle().Foreground(PrimaryColor)
	InputTextStyle          = lipgloss.NewStyle().Foreground(lipgloss.Color("250"))
	InputTextFocusedStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#FFFFFF"))
	InputPlaceholderStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))

	InputFieldStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.NormalBorder()).
			BorderForeground(MutedColor).
			Padding(0, 1)

	InputFieldFocusedStyle = lipgloss.NewStyle().
				BorderStyle(lipgloss.NormalBorder()).
				BorderForeground(PrimaryColor).
				Padding(0, 1)

	focusedButtonStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#FFFFFF")).
				Background(PrimaryColor).
				Padding(0, 2).
				Bold(true)

	blurredButtonStyle = lipgloss.NewStyle().
				Foreground(MutedColor).
				Padding(0, 2)
)

func RenderButton(label string, focused bool) string {
	if focused {
		return focusedButtonStyle.Render("[ " + label + " ]")
	}
	return blurredButtonStyle.Render("[ " + label + " ]")
}

func RenderKeyBinding(key, action string) string {
	return fmt.Sprintf("%s %s", KeyStyle.Render(key), HelpStyle.Render(action))
}
