package httpserver

import (
	"net/http"

	"github.com/OliveiraNt/tabsmith/internal/utils"
)

func (s *Server) apiGenerate(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, htmlResponse{HTML: s.builder.Generate()})
}

func (s *Server) apiLastGenerated(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, htmlResponse{HTML: s.builder.LastGenerated()})
}

// apiCopy puts the last generated document on the host clipboard.
func (s *Server) apiCopy(w http.ResponseWriter, r *http.Request) {
	copied := s.builder.CopyLastGenerated(r.Context())
	utils.Logger.Debug("api copy output", "copied", copied)
	writeJSON(w, http.StatusOK, copyResponse{Copied: copied})
}
