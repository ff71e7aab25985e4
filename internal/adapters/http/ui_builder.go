package httpserver

import (
	"net/http"

	"github.com/OliveiraNt/tabsmith/internal/adapters/http/ui/pages"
	"github.com/OliveiraNt/tabsmith/internal/utils"
	"github.com/a-h/templ"

	"github.com/go-chi/chi/v5"
)

func render(w http.ResponseWriter, r *http.Request, name string, c templ.Component) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := c.Render(r.Context(), w); err != nil {
		utils.Logger.Error("render page failed", "page", name, "err", err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func redirectHome(w http.ResponseWriter, r *http.Request) {
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (s *Server) uiHome(w http.ResponseWriter, r *http.Request) {
	utils.Logger.Debug("render home")
	render(w, r, "home", pages.Builder(s.builder.Snapshot(), s.builder.LastGenerated()))
}

func (s *Server) uiAbout(w http.ResponseWriter, r *http.Request) {
	utils.Logger.Debug("render about")
	render(w, r, "about", pages.About())
}

func (s *Server) uiAddTab(w http.ResponseWriter, r *http.Request) {
	if tab, ok := s.builder.Add(); ok {
		utils.Logger.Info("tab added", "tab", tab.ID)
	}
	redirectHome(w, r)
}

func (s *Server) uiRemoveActive(w http.ResponseWriter, r *http.Request) {
	if s.builder.RemoveActive() {
		utils.Logger.Info("active tab removed")
	}
	redirectHome(w, r)
}

// uiUpdateTab applies the title and content fields present in the submitted form.
func (s *Server) uiUpdateTab(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "tabID")
	if err := r.ParseForm(); err != nil {
		utils.Logger.Warn("ui update tab bad form", "tab", id, "err", err)
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if _, ok := r.PostForm["title"]; ok {
		s.builder.Rename(id, r.PostForm.Get("title"))
	}
	if _, ok := r.PostForm["content"]; ok {
		s.builder.EditContent(id, r.PostForm.Get("content"))
	}
	redirectHome(w, r)
}

func (s *Server) uiSelectTab(w http.ResponseWriter, r *http.Request) {
	s.builder.SelectActive(chi.URLParam(r, "tabID"))
	redirectHome(w, r)
}

func (s *Server) uiGenerate(w http.ResponseWriter, r *http.Request) {
	s.builder.Generate()
	redirectHome(w, r)
}

// uiExport serves a freshly generated document as a download.
func (s *Server) uiExport(w http.ResponseWriter, _ *http.Request) {
	out := s.builder.Generate()
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="tabs.html"`)
	if _, err := w.Write([]byte(out)); err != nil {
		utils.Logger.Error("write export failed", "err", err)
	}
}
