package rest

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/rocketscienceinc/mindgames-backend/internal/apperror"
	"github.com/rocketscienceinc/mindgames-backend/internal/entity"
)

type errorResponse struct {
	Error string `json:"error"`
}

func (that *Server) handleListGames(w http.ResponseWriter, _ *http.Request) {
	that.writeJSON(w, http.StatusOK, entity.Catalog)
}

func (that *Server) handleGetSession(w http.ResponseWriter, r *http.Request) {
	log := that.logger.With("method", "handleGetSession")

	session, err := that.uGame.GetSession(r.Context(), chi.URLParam(r, "id"))
	if errors.Is(err, apperror.ErrSessionNotFound) {
		that.writeJSON(w, http.StatusNotFound, errorResponse{Error: "session not found"})
		return
	}

	if err != nil {
		log.Error("failed to get session", "error", err)
		that.writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "failed to get session"})
		return
	}

	that.writeJSON(w, http.StatusOK, session)
}

func (that *Server) handleScores(w http.ResponseWriter, r *http.Request) {
	log := that.logger.With("method", "handleScores")

	scores, err := that.uGame.Scores(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		log.Error("failed to get scores", "error", err)
		that.writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "failed to get scores"})
		return
	}

	that.writeJSON(w, http.StatusOK, scores)
}

func (that *Server) writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(data); err != nil {
		that.logger.Error("failed to write response", "error", err)
	}
}
