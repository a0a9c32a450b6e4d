package ui

import (
	"fmt"
	"math/rand"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/MrPingoo/iut-jdr-api-2026/internal/client"
	"github.com/MrPingoo/iut-jdr-api-2026/internal/game"
)

type Model struct {
	messages       []string
	input          string
	width          int
	height         int
	api            *client.Client
	debug          bool
	loading        bool
	animationFrame int
	rng            *rand.Rand

	character      game.Character
	playerCount    int
	setting        string
	companionCount int

	sessionID  string
	npcs       []game.NPC
	history    *game.Transcript
	currentHP  int
	maxHP      int
	xp         int
	companions []game.CompanionStatus
}

// Keep turn payloads bounded to the last eight exchanges.
const historyLimit = 16

func NewModel(
	api *client.Client,
	character game.Character,
	playerCount int,
	setting string,
	companionCount int,
	debug bool,
) Model {
	character = character.Normalized()
	maxHP := game.MaxHP(character.Level)

	messages := []string{}
	if debug {
		messages = append(messages, fmt.Sprintf("[DEBUG] Playing %s, level %d %s %s", character.Name, character.Level, character.Race, character.Class))
		messages = append(messages, "[DEBUG] Commands: /d4 /d6 /d8 /d10 /d12 /d20, /help")
		messages = append(messages, "")
	}
	messages = append(messages, "LOADING_ANIMATION")

	return Model{
		messages:       messages,
		input:          "",
		api:            api,
		debug:          debug,
		loading:        true,
		rng:            rand.New(rand.NewSource(time.Now().UnixNano())),
		character:      character,
		playerCount:    playerCount,
		setting:        setting,
		companionCount: companionCount,
		history:        game.NewTranscript(),
		currentHP:      maxHP,
		maxHP:          maxHP,
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(startSession(m.api, m.character, m.playerCount, m.setting, m.companionCount), animationTimer())
}

// turnRequest snapshots everything the stateless server needs to run
// one turn.
func (m Model) turnRequest() client.TurnRequest {
	hp := m.currentHP
	return client.TurnRequest{
		SessionID:   m.sessionID,
		Character:   m.character,
		NPCs:        m.npcs,
		PlayerCount: m.playerCount,
		Setting:     m.setting,
		History:     m.history.Tail(historyLimit),
		TurnContext: game.TurnContext{
			CurrentHP:  &hp,
			Companions: append([]game.CompanionStatus(nil), m.companions...),
		},
	}
}

type animationTickMsg struct{}

type sessionStartedMsg struct {
	resp *client.StartGameResponse
	err  error
}

type turnResolvedMsg struct {
	// userLine enters the transcript only once the turn succeeds, so a
	// failed request leaves no trace to replay.
	userLine string
	resp     *client.TurnResponse
	err      error
}
