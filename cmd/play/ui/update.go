package ui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/MrPingoo/iut-jdr-api-2026/internal/game"
	"github.com/MrPingoo/iut-jdr-api-2026/internal/game/events"
)

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case sessionStartedMsg:
		return m.handleSessionStarted(msg)
	case turnResolvedMsg:
		return m.handleTurnResolved(msg)

	case tea.WindowSizeMsg:
		return m.handleWindowResize(msg)
	case animationTickMsg:
		return m.handleAnimation(msg)
	case tea.KeyMsg:
		return m.handleKeyPress(msg)
	}
	return m, nil
}

func (m Model) handleSessionStarted(msg sessionStartedMsg) (tea.Model, tea.Cmd) {
	if !m.loading {
		return m, nil
	}
	m.messages = m.messages[:len(m.messages)-1]
	m.loading = false

	if msg.err != nil {
		m.messages = append(m.messages, "Error: "+msg.err.Error())
		m.messages = append(m.messages, "Press enter to retry.")
		m.messages = append(m.messages, "")
		return m, nil
	}

	m.sessionID = msg.resp.SessionID
	m.npcs = msg.resp.NPCs
	m.companions = make([]game.CompanionStatus, 0, len(msg.resp.NPCs))
	for _, npc := range msg.resp.NPCs {
		hp := game.MaxHP(npc.Level)
		m.companions = append(m.companions, game.CompanionStatus{Name: npc.Name, CurrentHP: hp, MaxHP: hp})
	}

	if m.debug {
		m.messages = append(m.messages, fmt.Sprintf("[DEBUG] Session %s, %d companions", m.sessionID, len(m.npcs)))
	}

	m.history.AddNarrator(msg.resp.Narrative)
	m.applyEvents(msg.resp.Events)
	m.appendNarrative(msg.resp.Narrative)
	return m, nil
}

func (m Model) handleTurnResolved(msg turnResolvedMsg) (tea.Model, tea.Cmd) {
	if !m.loading {
		return m, nil
	}
	m.messages = m.messages[:len(m.messages)-1]
	m.loading = false

	if msg.err != nil {
		m.messages = append(m.messages, "Error: "+msg.err.Error())
		m.messages = append(m.messages, "")
		return m, nil
	}

	m.history.AddPlayer(msg.userLine)
	m.history.AddNarrator(msg.resp.Narrative)
	m.applyEvents(msg.resp.Events)
	m.appendNarrative(msg.resp.Narrative)
	return m, nil
}

func (m Model) handleWindowResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.width = msg.Width
	m.height = msg.Height
	return m, nil
}

func (m Model) handleAnimation(msg animationTickMsg) (tea.Model, tea.Cmd) {
	if m.loading {
		m.animationFrame++
		return m, animationTimer()
	}
	return m, nil
}

func (m Model) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "esc":
		return m, tea.Quit

	case "enter":
		if strings.TrimSpace(m.input) == "" || m.loading {
			return m, nil
		}
		userInput := strings.TrimSpace(m.input)
		m.input = ""

		if m.sessionID == "" {
			m.loading = true
			m.animationFrame = 0
			m.messages = append(m.messages, "LOADING_ANIMATION")
			return m, tea.Batch(startSession(m.api, m.character, m.playerCount, m.setting, m.companionCount), animationTimer())
		}

		if strings.HasPrefix(userInput, "/") {
			return m.handleSlashCommand(userInput)
		}

		m.messages = append(m.messages, "> "+userInput)
		m.messages = append(m.messages, "")

		req := m.turnRequest()
		req.Action = userInput
		m.loading = true
		m.animationFrame = 0
		m.messages = append(m.messages, "LOADING_ANIMATION")

		return m, tea.Batch(submitAction(m.api, req, userInput), animationTimer())

	case "backspace":
		if len(m.input) > 0 && !m.loading {
			m.input = m.input[:len(m.input)-1]
		}
		return m, nil

	default:
		if len(msg.String()) == 1 && !m.loading {
			m.input += msg.String()
		}
		return m, nil
	}
}

func (m Model) handleSlashCommand(userInput string) (tea.Model, tea.Cmd) {
	m.messages = append(m.messages, "> "+userInput)

	if strings.EqualFold(userInput, "/help") {
		m.messages = append(m.messages, "Roll dice with /d4, /d6, /d8, /d10, /d12 or /d20.")
		m.messages = append(m.messages, "Add a modifier and a skill check: /d20 +3 picking the lock")
		m.messages = append(m.messages, "")
		return m, nil
	}

	roll, sides, ok := parseDiceCommand(userInput)
	if !ok {
		m.messages = append(m.messages, "Unknown command. Try /help")
		m.messages = append(m.messages, "")
		return m, nil
	}

	roll.Result = rollDie(m.rng, sides)
	roll.Total = roll.Result + roll.Modifier

	m.messages = append(m.messages, rollLine(roll))
	m.messages = append(m.messages, "")

	req := m.turnRequest()
	req.DiceRoll = roll
	m.loading = true
	m.animationFrame = 0
	m.messages = append(m.messages, "LOADING_ANIMATION")

	return m, tea.Batch(submitDiceRoll(m.api, req, rollLine(roll)), animationTimer())
}

// appendNarrative shows the scrubbed text; the raw reply already went
// into history so the narrator keeps seeing its own tag lines.
func (m *Model) appendNarrative(narrative string) {
	scrubbed := events.Scrub(narrative)
	if scrubbed != "" {
		m.messages = append(m.messages, scrubbed)
	}
	m.messages = append(m.messages, "")
}

func (m *Model) applyEvents(evs []events.Event) {
	for _, ev := range evs {
		switch ev.Kind {
		case events.KindHPChange:
			m.applyHPChange(ev)
		case events.KindXPGain:
			if strings.EqualFold(ev.Character, m.character.Name) {
				m.xp += ev.Amount
			}
		}
		if m.debug {
			line := fmt.Sprintf("[DEBUG] %s %s %+d", ev.Kind, ev.Character, ev.Amount)
			if ev.Reason != "" {
				line += " (" + ev.Reason + ")"
			}
			m.messages = append(m.messages, line)
		}
	}
}

func (m *Model) applyHPChange(ev events.Event) {
	if strings.EqualFold(ev.Character, m.character.Name) {
		m.currentHP = clampHP(m.currentHP+ev.Amount, m.maxHP)
		return
	}
	for i := range m.companions {
		if strings.EqualFold(m.companions[i].Name, ev.Character) {
			m.companions[i].CurrentHP = clampHP(m.companions[i].CurrentHP+ev.Amount, m.companions[i].MaxHP)
			return
		}
	}
}

func clampHP(hp, max int) int {
	if hp < 0 {
		return 0
	}
	if hp > max {
		return max
	}
	return hp
}

func rollLine(roll game.DiceRoll) string {
	line := fmt.Sprintf("You roll a %s: %d", roll.Type, roll.Result)
	if roll.Modifier != 0 {
		line = fmt.Sprintf("%s%+d = %d", line, roll.Modifier, roll.Total)
	}
	if roll.SkillCheck != "" {
		line += " (" + roll.SkillCheck + ")"
	}
	return line
}
