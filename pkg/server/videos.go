package server

import (
	"net/http"
	"strconv"

	"tableflip.dev/planner/pkg/store"
)

func (s *Server) handleVideoSearch(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	q := r.URL.Query()
	query := q.Get("q")
	if query == "" {
		writeError(w, http.StatusBadRequest, "missing q parameter")
		return
	}
	pageSize, _ := strconv.Atoi(q.Get("maxResults"))

	result, err := s.video.Search(r.Context(), query, pageSize, q.Get("pageToken"), q.Get("duration"))
	if err != nil {
		s.videoError(w, "search", err)
		return
	}
	writeJSON(w, result)
}

func (s *Server) handleVideoPopular(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	q := r.URL.Query()
	pageSize, _ := strconv.Atoi(q.Get("maxResults"))

	result, err := s.video.Popular(r.Context(), q.Get("category"), pageSize, q.Get("duration"))
	if err != nil {
		s.videoError(w, "popular", err)
		return
	}
	writeJSON(w, result)
}

func (s *Server) videoError(w http.ResponseWriter, op string, err error) {
	s.log.Printf("video %s: %v", op, err)
	if s.store != nil {
		s.store.AddDebug("video", op+" failed", err.Error(), store.SeverityError)
	}
	writeError(w, http.StatusInternalServerError, "video provider request failed")
}
