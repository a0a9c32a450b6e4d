package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/MrPingoo/iut-jdr-api-2026/internal/game"
	"github.com/MrPingoo/iut-jdr-api-2026/internal/game/events"
)

func TestStartGame(t *testing.T) {
	var gotPath string
	var gotBody StartGameRequest

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		if err := json.NewDecoder(r.Body).Decode(&gotBody); err != nil {
			t.Errorf("decode request: %v", err)
		}
		json.NewEncoder(w).Encode(StartGameResponse{
			SessionID: "session-1",
			NPCs:      []game.NPC{{Name: "Borin"}},
			Narrative: "The road begins.",
			Events:    []events.Event{},
		})
	}))
	defer server.Close()

	c := New(server.URL)
	resp, err := c.StartGame(context.Background(), StartGameRequest{
		Character:      game.Character{Name: "Aria"},
		PlayerCount:    1,
		Setting:        "Kel",
		CompanionCount: 1,
	})
	if err != nil {
		t.Fatalf("StartGame() error = %v", err)
	}

	if gotPath != "/api/game/start" {
		t.Errorf("path = %q", gotPath)
	}
	if gotBody.Character.Name != "Aria" || gotBody.CompanionCount != 1 {
		t.Errorf("request body = %+v", gotBody)
	}
	if resp.SessionID != "session-1" || len(resp.NPCs) != 1 {
		t.Errorf("response = %+v", resp)
	}
}

func TestActionAndDicePaths(t *testing.T) {
	var paths []string

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		paths = append(paths, r.URL.Path)
		json.NewEncoder(w).Encode(TurnResponse{Narrative: "ok"})
	}))
	defer server.Close()

	c := New(server.URL)
	if _, err := c.Action(context.Background(), TurnRequest{Action: "look around"}); err != nil {
		t.Fatalf("Action() error = %v", err)
	}
	if _, err := c.DiceResult(context.Background(), TurnRequest{DiceRoll: game.DiceRoll{Type: "d6"}}); err != nil {
		t.Fatalf("DiceResult() error = %v", err)
	}

	want := []string{"/api/game/action", "/api/game/dice"}
	for i, path := range want {
		if paths[i] != path {
			t.Errorf("call %d path = %q, want %q", i, paths[i], path)
		}
	}
}

func TestErrorStatusCarriesBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "action is required", http.StatusBadRequest)
	}))
	defer server.Close()

	c := New(server.URL)
	_, err := c.Action(context.Background(), TurnRequest{})
	if err == nil {
		t.Fatal("Action() error = nil, want failure")
	}
	if !strings.Contains(err.Error(), "action is required") || !strings.Contains(err.Error(), "400") {
		t.Errorf("error = %v, want server message and status", err)
	}
}

func TestHealth(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/healthz" {
			http.NotFound(w, r)
			return
		}
		json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
	}))
	defer server.Close()

	if err := New(server.URL).Health(context.Background()); err != nil {
		t.Errorf("Health() error = %v", err)
	}

	server.Close()
	if err := New(server.URL).Health(context.Background()); err == nil {
		t.Error("Health() against closed server returned nil error")
	}
}

func TestNPCReact(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req npcReactRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("decode request: %v", err)
		}
		if req.NPC.Name != "Borin" {
			t.Errorf("npc = %+v", req.NPC)
		}
		json.NewEncoder(w).Encode(npcReactResponse{Reaction: "I stand my ground."})
	}))
	defer server.Close()

	reaction, err := New(server.URL).NPCReact(context.Background(), game.NPC{Name: "Borin"}, "an ambush")
	if err != nil {
		t.Fatalf("NPCReact() error = %v", err)
	}
	if reaction != "I stand my ground." {
		t.Errorf("reaction = %q", reaction)
	}
}
