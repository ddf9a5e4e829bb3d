package main

import (
	"github.com/codequest532/vyrona-social/internal/tui/client"
	"github.com/codequest532/vyrona-social/internal/tui/models"
	"github.com/codequest532/vyrona-social/internal/utils"
	tea "github.com/charmbracelet/bubbletea"
)

type mainModel struct {
	currentModel tea.Model
}

func (m mainModel) Init() tea.Cmd {
	return m.currentModel.Init()
}

func (m mainModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	return m.currentModel.Update(msg)
}

func (m mainModel) View() string {
	return m.currentModel.View()
}

func main() {
	apiClient, err := client.NewAPIClient()
	if err != nil {
		program := tea.NewProgram(mainModel{currentModel: models.NewServerDownModel()}, tea.WithAltScreen())
		if _, err := program.Run(); err != nil {
			panic(err)
		}
		return
	}

	var currentModel tea.Model

	// A saved token pair skips the login screen when still valid.
	if tokenPair, err := utils.LoadTokenPair(); err == nil && tokenPair.AccessToken != "" {
		if claims, err := utils.GetClaimsFromToken(tokenPair.AccessToken); err == nil {
			if username, ok := claims["username"].(string); ok {
				apiClient.SetTokenPair(tokenPair.AccessToken, tokenPair.RefreshToken)
				currentModel = models.NewRoomListModel(username, apiClient)
			}
		}
	}

	if currentModel == nil {
		currentModel = models.NewLoginModel(apiClient)
	}

	program := tea.NewProgram(mainModel{currentModel: currentModel}, tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		panic(err)
	}
}
