package ui

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/MrPingoo/iut-jdr-api-2026/internal/client"
	"github.com/MrPingoo/iut-jdr-api-2026/internal/game"
)

func animationTimer() tea.Cmd {
	return tea.Tick(100*time.Millisecond, func(t time.Time) tea.Msg {
		return animationTickMsg{}
	})
}

func startSession(api *client.Client, character game.Character, playerCount int, setting string, companionCount int) tea.Cmd {
	return func() tea.Msg {
		resp, err := api.StartGame(context.Background(), client.StartGameRequest{
			Character:      character,
			PlayerCount:    playerCount,
			Setting:        setting,
			CompanionCount: companionCount,
		})
		return sessionStartedMsg{resp: resp, err: err}
	}
}

func submitAction(api *client.Client, req client.TurnRequest, userLine string) tea.Cmd {
	return func() tea.Msg {
		resp, err := api.Action(context.Background(), req)
		return turnResolvedMsg{userLine: userLine, resp: resp, err: err}
	}
}

func submitDiceRoll(api *client.Client, req client.TurnRequest, userLine string) tea.Cmd {
	return func() tea.Msg {
		resp, err := api.DiceResult(context.Background(), req)
		return turnResolvedMsg{userLine: userLine, resp: resp, err: err}
	}
}
