package server

import (
	"context"
	"errors"
	"net/http"

	"github.com/google/uuid"

	"github.com/MrPingoo/iut-jdr-api-2026/internal/game"
	"github.com/MrPingoo/iut-jdr-api-2026/internal/game/actors"
	"github.com/MrPingoo/iut-jdr-api-2026/internal/game/events"
	"github.com/MrPingoo/iut-jdr-api-2026/internal/llm"
)

type gameStartRequest struct {
	Character      game.Character `json:"character"`
	PlayerCount    int            `json:"playerCount"`
	Setting        string         `json:"setting"`
	CompanionCount int            `json:"companionCount"`
}

type gameStartResponse struct {
	SessionID    string         `json:"sessionId"`
	NPCs         []game.NPC     `json:"npcs"`
	SystemPrompt string         `json:"systemPrompt"`
	Narrative    string         `json:"narrative"`
	Events       []events.Event `json:"events"`
}

type gameTurnRequest struct {
	SessionID   string           `json:"sessionId"`
	Character   game.Character   `json:"character"`
	NPCs        []game.NPC       `json:"npcs"`
	PlayerCount int              `json:"playerCount"`
	Setting     string           `json:"setting"`
	History     []game.Message   `json:"history"`
	Action      string           `json:"action,omitempty"`
	DiceRoll    game.DiceRoll    `json:"diceRoll,omitempty"`
	GameContext string           `json:"gameContext,omitempty"`
	TurnContext game.TurnContext `json:"turnContext"`
}

type gameTurnResponse struct {
	Narrative string         `json:"narrative"`
	Events    []events.Event `json:"events"`
}

type npcReactRequest struct {
	NPC       game.NPC `json:"npc"`
	Situation string   `json:"situation"`
}

type npcReactResponse struct {
	Reaction string `json:"reaction"`
}

// handleGameStart opens a session: companions are generated, the system
// prompt is assembled, and the narrator writes the opening scene. The
// caller keeps everything returned here and re-supplies it on later
// turns; the server holds no session state.
func (s *Server) handleGameStart(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req gameStartRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if req.Character.Name == "" {
		http.Error(w, "character name is required", http.StatusBadRequest)
		return
	}

	npcs, err := s.generator.Generate(req.Character, req.CompanionCount)
	if err != nil {
		if errors.Is(err, actors.ErrPairSpaceExhausted) {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		http.Error(w, "companion generation failed", http.StatusInternalServerError)
		return
	}

	sessionID := uuid.NewString()
	systemPrompt := s.prompts.BuildSystemPrompt(req.Character, req.PlayerCount, req.Setting, npcs)
	startPrompt := s.prompts.BuildGameStartPrompt(npcs)

	ctx := llm.WithGameContext(r.Context(), map[string]interface{}{
		"setting":      req.Setting,
		"player_count": req.PlayerCount,
		"companions":   len(npcs),
	})

	narrative, err := s.complete(ctx, "game_start", sessionID, startPrompt, systemPrompt, llm.CompletionRequest{
		Messages: []game.Message{
			{Role: game.RoleSystem, Content: systemPrompt},
			{Role: game.RoleUser, Content: startPrompt},
		},
		MaxTokens: s.config.MaxTokens,
	})
	if err != nil {
		http.Error(w, "narrator unavailable: "+err.Error(), http.StatusBadGateway)
		return
	}

	writeJSON(w, http.StatusOK, gameStartResponse{
		SessionID:    sessionID,
		NPCs:         npcs,
		SystemPrompt: systemPrompt,
		Narrative:    narrative,
		Events:       extractEvents(narrative),
	})
}

// handleGameAction narrates one player action. The system prompt is
// rebuilt from the state the caller supplies, so a session survives
// server restarts as long as the client keeps its history.
func (s *Server) handleGameAction(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req gameTurnRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if req.Character.Name == "" {
		http.Error(w, "character name is required", http.StatusBadRequest)
		return
	}
	if req.Action == "" {
		http.Error(w, "action is required", http.StatusBadRequest)
		return
	}

	actionPrompt := s.prompts.BuildPlayerActionPrompt(req.Character, req.Action, req.TurnContext)

	ctx := llm.WithGameContext(r.Context(), map[string]interface{}{
		"action":       req.Action,
		"player_count": req.PlayerCount,
	})

	s.respondTurn(ctx, w, "player_action", req, actionPrompt)
}

// handleDiceResult narrates the outcome of a roll the client already
// resolved. The server never rolls dice.
func (s *Server) handleDiceResult(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req gameTurnRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if req.Character.Name == "" {
		http.Error(w, "character name is required", http.StatusBadRequest)
		return
	}
	if req.DiceRoll.Type == "" {
		http.Error(w, "dice roll is required", http.StatusBadRequest)
		return
	}

	dicePrompt := s.prompts.BuildDiceResultPrompt(req.Character, req.DiceRoll, req.TurnContext, req.GameContext)

	ctx := llm.WithGameContext(r.Context(), map[string]interface{}{
		"dice_type":  req.DiceRoll.Type,
		"dice_total": req.DiceRoll.Total,
	})

	s.respondTurn(ctx, w, "dice_result", req, dicePrompt)
}

// handleNPCReact produces a short in-character reaction from a single
// companion, on a smaller completion budget than full narration.
func (s *Server) handleNPCReact(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req npcReactRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if req.NPC.Name == "" {
		http.Error(w, "npc name is required", http.StatusBadRequest)
		return
	}
	if req.Situation == "" {
		http.Error(w, "situation is required", http.StatusBadRequest)
		return
	}

	personaPrompt := s.prompts.BuildNPCSystemPrompt(req.NPC)
	actionPrompt := s.prompts.BuildNPCActionPrompt(req.Situation)

	reaction, err := s.complete(r.Context(), "npc_reaction", "", actionPrompt, personaPrompt, llm.CompletionRequest{
		Messages: []game.Message{
			{Role: game.RoleSystem, Content: personaPrompt},
			{Role: game.RoleUser, Content: actionPrompt},
		},
		MaxTokens: s.config.NPCMaxTokens,
	})
	if err != nil {
		http.Error(w, "narrator unavailable: "+err.Error(), http.StatusBadGateway)
		return
	}

	writeJSON(w, http.StatusOK, npcReactResponse{Reaction: reaction})
}

// respondTurn rebuilds the session messages, runs the completion, and
// writes the shared turn response shape.
func (s *Server) respondTurn(ctx context.Context, w http.ResponseWriter, kind string, req gameTurnRequest, turnPrompt string) {
	systemPrompt := s.prompts.BuildSystemPrompt(req.Character, req.PlayerCount, req.Setting, req.NPCs)

	messages := make([]game.Message, 0, len(req.History)+2)
	messages = append(messages, game.Message{Role: game.RoleSystem, Content: systemPrompt})
	messages = append(messages, req.History...)
	messages = append(messages, game.Message{Role: game.RoleUser, Content: turnPrompt})

	narrative, err := s.complete(ctx, kind, req.SessionID, turnPrompt, systemPrompt, llm.CompletionRequest{
		Messages:  messages,
		MaxTokens: s.config.MaxTokens,
	})
	if err != nil {
		http.Error(w, "narrator unavailable: "+err.Error(), http.StatusBadGateway)
		return
	}

	writeJSON(w, http.StatusOK, gameTurnResponse{
		Narrative: narrative,
		Events:    extractEvents(narrative),
	})
}

func extractEvents(narrative string) []events.Event {
	extracted := events.Extract(narrative)
	if extracted == nil {
		return []events.Event{}
	}
	return extracted
}
