// Command play is a terminal playtest client for the game master API.
// It opens a session, sends each typed action to the server and renders
// the narrated reply, with a party status bar fed by the extracted
// HP and XP events. Dice are rolled locally with /d4 through /d20 and
// resolved through the dice endpoint.
package main

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
)

func main() {
	model, err := createApp()
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}

	p := tea.NewProgram(model, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		fmt.Printf("Error: %v", err)
	}
}
