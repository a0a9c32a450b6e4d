package server

import (
	"errors"
	"net/http"
	"strings"

	"github.com/MrPingoo/iut-jdr-api-2026/internal/game"
	"github.com/MrPingoo/iut-jdr-api-2026/internal/store"
)

func (s *Server) handleCharacters(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodPost:
		s.createCharacter(w, r)
	case http.MethodGet:
		s.listCharacters(w)
	default:
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
	}
}

func (s *Server) handleCharacterByID(w http.ResponseWriter, r *http.Request) {
	id := strings.TrimPrefix(r.URL.Path, "/api/characters/")
	if id == "" || strings.Contains(id, "/") {
		http.NotFound(w, r)
		return
	}

	switch r.Method {
	case http.MethodGet:
		s.getCharacter(w, id)
	case http.MethodPut:
		s.updateCharacter(w, r, id)
	case http.MethodDelete:
		s.deleteCharacter(w, id)
	default:
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
	}
}

func (s *Server) createCharacter(w http.ResponseWriter, r *http.Request) {
	var character game.Character
	if !decodeJSON(w, r, &character) {
		return
	}
	if character.Name == "" {
		http.Error(w, "character name is required", http.StatusBadRequest)
		return
	}

	record, err := s.characters.Create(character)
	if err != nil {
		http.Error(w, "failed to store character", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusCreated, record)
}

func (s *Server) listCharacters(w http.ResponseWriter) {
	records, err := s.characters.List()
	if err != nil {
		http.Error(w, "failed to list characters", http.StatusInternalServerError)
		return
	}
	if records == nil {
		records = []store.StoredCharacter{}
	}

	writeJSON(w, http.StatusOK, records)
}

func (s *Server) getCharacter(w http.ResponseWriter, id string) {
	record, err := s.characters.Get(id)
	if errors.Is(err, store.ErrNotFound) {
		http.Error(w, "character not found", http.StatusNotFound)
		return
	}
	if err != nil {
		http.Error(w, "failed to load character", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, record)
}

func (s *Server) updateCharacter(w http.ResponseWriter, r *http.Request, id string) {
	var character game.Character
	if !decodeJSON(w, r, &character) {
		return
	}
	if character.Name == "" {
		http.Error(w, "character name is required", http.StatusBadRequest)
		return
	}

	record, err := s.characters.Update(id, character)
	if errors.Is(err, store.ErrNotFound) {
		http.Error(w, "character not found", http.StatusNotFound)
		return
	}
	if err != nil {
		http.Error(w, "failed to update character", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, record)
}

func (s *Server) deleteCharacter(w http.ResponseWriter, id string) {
	err := s.characters.Delete(id)
	if errors.Is(err, store.ErrNotFound) {
		http.Error(w, "character not found", http.StatusNotFound)
		return
	}
	if err != nil {
		http.Error(w, "failed to delete character", http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
