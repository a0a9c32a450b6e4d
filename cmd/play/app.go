package main

import (
	"context"
	"flag"
	"fmt"
	"time"

	"github.com/MrPingoo/iut-jdr-api-2026/cmd/play/ui"
	"github.com/MrPingoo/iut-jdr-api-2026/internal/client"
	"github.com/MrPingoo/iut-jdr-api-2026/internal/game"
)

func createApp() (ui.Model, error) {
	var (
		serverURL  string
		name       string
		race       string
		class      string
		level      int
		setting    string
		players    int
		companions int
		debug      bool
	)
	flag.StringVar(&serverURL, "server", "http://localhost:8080", "game master API base URL")
	flag.StringVar(&name, "name", "", "character name (required)")
	flag.StringVar(&race, "race", "", "character race (default Human)")
	flag.StringVar(&class, "class", "", "character class (default Warrior)")
	flag.IntVar(&level, "level", 1, "character level")
	flag.StringVar(&setting, "setting", "", "campaign setting, free text")
	flag.IntVar(&players, "players", 1, "players at the table")
	flag.IntVar(&companions, "companions", 2, "companion NPCs to generate")
	flag.BoolVar(&debug, "debug", false, "show extracted events and session internals")
	flag.Parse()

	if name == "" {
		return ui.Model{}, fmt.Errorf("the character needs a name, pass -name")
	}

	api := client.New(serverURL)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := api.Health(ctx); err != nil {
		return ui.Model{}, err
	}

	character := game.Character{Name: name, Race: race, Class: class, Level: level}
	return ui.NewModel(api, character, players, setting, companions, debug), nil
}
