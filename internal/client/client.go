// Package client is a small HTTP client for the game API, used by the
// terminal playtest tool. Shapes mirror the server's JSON contract.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/MrPingoo/iut-jdr-api-2026/internal/game"
	"github.com/MrPingoo/iut-jdr-api-2026/internal/game/events"
)

type Client struct {
	baseURL string
	http    *http.Client
}

// New builds a client for the API at baseURL. Narration calls can take
// a while, so the timeout is generous.
func New(baseURL string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: 2 * time.Minute},
	}
}

type StartGameRequest struct {
	Character      game.Character `json:"character"`
	PlayerCount    int            `json:"playerCount"`
	Setting        string         `json:"setting"`
	CompanionCount int            `json:"companionCount"`
}

type StartGameResponse struct {
	SessionID    string         `json:"sessionId"`
	NPCs         []game.NPC     `json:"npcs"`
	SystemPrompt string         `json:"systemPrompt"`
	Narrative    string         `json:"narrative"`
	Events       []events.Event `json:"events"`
}

type TurnRequest struct {
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

type TurnResponse struct {
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

func (c *Client) StartGame(ctx context.Context, req StartGameRequest) (*StartGameResponse, error) {
	var resp StartGameResponse
	if err := c.post(ctx, "/api/game/start", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *Client) Action(ctx context.Context, req TurnRequest) (*TurnResponse, error) {
	var resp TurnResponse
	if err := c.post(ctx, "/api/game/action", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *Client) DiceResult(ctx context.Context, req TurnRequest) (*TurnResponse, error) {
	var resp TurnResponse
	if err := c.post(ctx, "/api/game/dice", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *Client) NPCReact(ctx context.Context, npc game.NPC, situation string) (string, error) {
	var resp npcReactResponse
	if err := c.post(ctx, "/api/npc/react", npcReactRequest{NPC: npc, Situation: situation}, &resp); err != nil {
		return "", err
	}
	return resp.Reaction, nil
}

// Health pings the server so the TUI can fail before drawing anything.
func (c *Client) Health(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/healthz", nil)
	if err != nil {
		return err
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("server unreachable: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("server unhealthy: status %d", resp.StatusCode)
	}
	return nil
}

func (c *Client) post(ctx context.Context, path string, payload, out interface{}) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return fmt.Errorf("%s: %s (status %d)", path, strings.TrimSpace(string(msg)), resp.StatusCode)
	}

	return json.NewDecoder(resp.Body).Decode(out)
}
