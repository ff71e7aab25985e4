package httpserver

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/OliveiraNt/tabsmith/internal/domain"
	"github.com/OliveiraNt/tabsmith/internal/utils"
	"github.com/go-playground/validator/v10"

	"github.com/go-chi/chi/v5"
)

// tabsResponse is the JSON view of a snapshot, also pushed over the websocket.
type tabsResponse struct {
	Tabs     []domain.Tab `json:"tabs"`
	ActiveID string       `json:"activeId"`
	Count    int          `json:"count"`
	Max      int          `json:"max"`
}

func newTabsResponse(snap domain.Snapshot) tabsResponse {
	return tabsResponse{Tabs: snap.Tabs, ActiveID: snap.ActiveID, Count: len(snap.Tabs), Max: domain.MaxTabs}
}

type selectRequest struct {
	ID string `json:"id" validate:"required"`
}

type textRequest struct {
	Text *string `json:"text" validate:"required"`
}

type htmlResponse struct {
	HTML string `json:"html"`
}

type copyResponse struct {
	Copied bool `json:"copied"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		utils.Logger.Error("encode response failed", "err", err)
	}
}

// decodeBody decodes and validates a JSON request body into v.
func (s *Server) decodeBody(r *http.Request, v any) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return err
	}
	if err := s.validate.Struct(v); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			fields := make([]string, 0, len(verrs))
			for _, fe := range verrs {
				fields = append(fields, strings.ToLower(fe.Field())+" is "+fe.Tag())
			}
			return errors.New(strings.Join(fields, "; "))
		}
		return err
	}
	return nil
}

func (s *Server) writeSnapshot(w http.ResponseWriter, status int) {
	writeJSON(w, status, newTabsResponse(s.builder.Snapshot()))
}

func (s *Server) apiListTabs(w http.ResponseWriter, _ *http.Request) {
	s.writeSnapshot(w, http.StatusOK)
}

func (s *Server) apiAddTab(w http.ResponseWriter, _ *http.Request) {
	tab, ok := s.builder.Add()
	if !ok {
		utils.Logger.Debug("api add tab ignored, limit reached")
		s.writeSnapshot(w, http.StatusOK)
		return
	}
	utils.Logger.Info("tab added", "tab", tab.ID)
	s.writeSnapshot(w, http.StatusCreated)
}

func (s *Server) apiRemoveActive(w http.ResponseWriter, _ *http.Request) {
	if s.builder.RemoveActive() {
		utils.Logger.Info("active tab removed")
	}
	s.writeSnapshot(w, http.StatusOK)
}

func (s *Server) apiSelectTab(w http.ResponseWriter, r *http.Request) {
	var req selectRequest
	if err := s.decodeBody(r, &req); err != nil {
		utils.Logger.Warn("api select tab bad request", "err", err)
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	s.builder.SelectActive(req.ID)
	s.writeSnapshot(w, http.StatusOK)
}

func (s *Server) apiRenameTab(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "tabID")
	var req textRequest
	if err := s.decodeBody(r, &req); err != nil {
		utils.Logger.Warn("api rename tab bad request", "tab", id, "err", err)
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	s.builder.Rename(id, *req.Text)
	s.writeSnapshot(w, http.StatusOK)
}

func (s *Server) apiEditContent(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "tabID")
	var req textRequest
	if err := s.decodeBody(r, &req); err != nil {
		utils.Logger.Warn("api edit content bad request", "tab", id, "err", err)
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	s.builder.EditContent(id, *req.Text)
	s.writeSnapshot(w, http.StatusOK)
}
