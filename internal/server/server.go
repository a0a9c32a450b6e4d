// Package server is the HTTP face of the game master. It owns no game
// logic: handlers decode a request, call into the core packages, relay
// the narrative together with its parsed events, and record the
// exchange in the completion log.
package server

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"

	"github.com/MrPingoo/iut-jdr-api-2026/internal/game/actors"
	"github.com/MrPingoo/iut-jdr-api-2026/internal/game/narration"
	"github.com/MrPingoo/iut-jdr-api-2026/internal/llm"
	"github.com/MrPingoo/iut-jdr-api-2026/internal/logging"
	"github.com/MrPingoo/iut-jdr-api-2026/internal/observability"
	"github.com/MrPingoo/iut-jdr-api-2026/internal/store"
)

// Completer is the slice of the llm gateway the handlers need.
type Completer interface {
	Complete(ctx context.Context, req llm.CompletionRequest) (string, error)
}

type Server struct {
	config     Config
	gateway    Completer
	generator  *actors.Generator
	prompts    *narration.Builder
	characters *store.CharacterStore
	audit      *logging.CompletionLogger
	tracer     trace.Tracer
}

func New(cfg Config, gateway Completer, generator *actors.Generator, prompts *narration.Builder, characters *store.CharacterStore, audit *logging.CompletionLogger) *Server {
	return &Server{
		config:     cfg,
		gateway:    gateway,
		generator:  generator,
		prompts:    prompts,
		characters: characters,
		audit:      audit,
		tracer:     otel.Tracer("http-server"),
	}
}

func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/game/start", s.cors(s.handleGameStart))
	mux.HandleFunc("/api/game/action", s.cors(s.handleGameAction))
	mux.HandleFunc("/api/game/dice", s.cors(s.handleDiceResult))
	mux.HandleFunc("/api/npc/react", s.cors(s.handleNPCReact))
	mux.HandleFunc("/api/characters", s.cors(s.handleCharacters))
	mux.HandleFunc("/api/characters/", s.cors(s.handleCharacterByID))
	mux.HandleFunc("/healthz", s.handleHealth)
	return mux
}

func (s *Server) cors(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", s.config.AllowedOrigin)
		w.Header().Set("Access-Control-Allow-Methods", "POST, GET, OPTIONS, PUT, DELETE")
		w.Header().Set("Access-Control-Allow-Headers", "Accept, Content-Type, Content-Length, Accept-Encoding, Authorization")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}

		next(w, r)
	}
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// complete performs one gateway call under a named span and records the
// exchange in the completion log. userInput and systemPrompt land in
// the audit row; the span groups into the session via the context.
func (s *Server) complete(ctx context.Context, kind, sessionID, userInput, systemPrompt string, req llm.CompletionRequest) (string, error) {
	ctx = llm.WithOperationType(ctx, kind)
	ctx = llm.WithSessionID(ctx, sessionID)

	ctx, span := s.tracer.Start(ctx, kind,
		trace.WithAttributes(observability.CreateLangfuseAttributes(kind, sessionID)...))
	defer span.End()

	started := time.Now()
	narrative, err := s.gateway.Complete(ctx, req)

	metadata := logging.CompletionMetadata{
		Model:        s.config.Model,
		MaxTokens:    req.MaxTokens,
		ResponseTime: time.Since(started),
	}
	if err != nil {
		msg := err.Error()
		metadata.Error = &msg
		span.RecordError(err)
	}
	if logErr := s.audit.LogCompletion(sessionID, kind, userInput, systemPrompt, narrative, metadata); logErr != nil {
		log.Printf("completion log: %v", logErr)
	}

	return narrative, err
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("encode response: %v", err)
	}
}

func decodeJSON(w http.ResponseWriter, r *http.Request, v interface{}) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		http.Error(w, "invalid request body: "+err.Error(), http.StatusBadRequest)
		return false
	}
	return true
}
