/* handlers.go
 * Contains the HTTP handlers for the pool api
 */

package web

import (
	"encoding/json"
	"errors"
	"net/http"

	"bracket-pool/api/api"
	"bracket-pool/api/shared"

	"github.com/go-chi/chi/v5"
)

// HealthzHandler reports that the server is up
func (s *Server) HealthzHandler(w http.ResponseWriter, r *http.Request) {
	s.respondJSON(w, r, http.StatusOK, map[string]string{"status": "ok"})
}

// LeaderboardHandler returns the standings, highest score first
func (s *Server) LeaderboardHandler(w http.ResponseWriter, r *http.Request) {
	rows, err := s.api.Standings(r.Context())
	if err != nil {
		s.internalError(w, r, err)
		return
	}
	if rows == nil {
		rows = []api.StandingRow{}
	}
	s.respondJSON(w, r, http.StatusOK, rows)
}

// MasterBracketHandler returns the winners and losers of every decided game
func (s *Server) MasterBracketHandler(w http.ResponseWriter, r *http.Request) {
	b, err := s.api.GetMasterBracket(r.Context())
	if err != nil {
		s.internalError(w, r, err)
		return
	}
	s.respondJSON(w, r, http.StatusOK, MasterBracketResponse{
		Master:   b.Master[:],
		Elim:     b.Elim[:],
		Resolved: b.ResolvedCount(),
	})
}

// TeamsHandler returns the first round field in bracket order
func (s *Server) TeamsHandler(w http.ResponseWriter, r *http.Request) {
	teams, err := s.api.GetTeams(r.Context())
	if err != nil {
		s.apiError(w, r, err)
		return
	}
	s.respondJSON(w, r, http.StatusOK, teams)
}

// InfoHandler returns a summary of the pool
func (s *Server) InfoHandler(w http.ResponseWriter, r *http.Request) {
	info, err := s.api.GetTournamentInfo(r.Context())
	if err != nil {
		s.internalError(w, r, err)
		return
	}
	s.respondJSON(w, r, http.StatusOK, info)
}

// ScoreboardHandler returns today's tournament games, live games first
func (s *Server) ScoreboardHandler(w http.ResponseWriter, r *http.Request) {
	games, err := s.api.GetScoreboard(r.Context())
	if err != nil {
		logFromRequest(r, s.log).WithError(err).Warn("scoreboard unavailable")
		s.respondError(w, r, http.StatusBadGateway, "scoreboard unavailable")
		return
	}
	s.respondJSON(w, r, http.StatusOK, games)
}

// GetEntryHandler returns a user's bracket
func (s *Server) GetEntryHandler(w http.ResponseWriter, r *http.Request) {
	entry, picks, err := s.api.GetUserBracket(r.Context(), chi.URLParam(r, "userID"))
	if err != nil {
		s.apiError(w, r, err)
		return
	}
	s.respondJSON(w, r, http.StatusOK, EntryResponse{
		UserID:   entry.UserID,
		Username: entry.Username,
		State:    picks.State.String(),
		Picks:    picks.Slice(),
	})
}

// SetEntryHandler validates and stores a user's bracket, replacing any earlier one
func (s *Server) SetEntryHandler(w http.ResponseWriter, r *http.Request) {
	var req SetBracketRequest
	r.Body = http.MaxBytesReader(w, r.Body, 64<<10)
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.respondError(w, r, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := s.validate.Struct(req); err != nil {
		s.respondError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	user := shared.User{UserID: chi.URLParam(r, "userID"), Username: req.Username}
	if err := s.api.SetUserBracket(r.Context(), user, req.Picks); err != nil {
		s.apiError(w, r, err)
		return
	}
	s.GetEntryHandler(w, r)
}

// EndRoundsHandler returns a user's Final Four, championship game and champion picks as image names
func (s *Server) EndRoundsHandler(w http.ResponseWriter, r *http.Request) {
	images, err := s.api.GetEndRounds(r.Context(), chi.URLParam(r, "userID"))
	if err != nil {
		s.apiError(w, r, err)
		return
	}
	s.respondJSON(w, r, http.StatusOK, images)
}

// apiError maps api errors to status codes
func (s *Server) apiError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, api.ErrNoEntry):
		s.respondError(w, r, http.StatusNotFound, "no bracket submitted")
	case errors.Is(err, api.ErrNoTeams):
		s.respondError(w, r, http.StatusConflict, err.Error())
	case errors.Is(err, api.ErrInvalidBracket):
		s.respondError(w, r, http.StatusUnprocessableEntity, err.Error())
	default:
		s.internalError(w, r, err)
	}
}

func (s *Server) internalError(w http.ResponseWriter, r *http.Request, err error) {
	logFromRequest(r, s.log).WithError(err).Error("request failed")
	s.respondError(w, r, http.StatusInternalServerError, "internal error")
}
