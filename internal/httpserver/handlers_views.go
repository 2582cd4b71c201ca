package httpserver

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/tabula-app/tabula/internal/render"
	"github.com/tabula-app/tabula/pkg/types"
)

const defaultRecentLimit = 10

func (h *handlers) search(w http.ResponseWriter, r *http.Request) {
	urls, err := h.deps.Views.Search(r.URL.Query().Get("q"))
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, urls)
}

func (h *handlers) urlsByTag(w http.ResponseWriter, r *http.Request) {
	urls, err := h.deps.Views.UrlsByTag(chi.URLParam(r, "id"))
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, urls)
}

func (h *handlers) urlsByCategory(w http.ResponseWriter, r *http.Request) {
	urls, err := h.deps.Views.UrlsByCategory(chi.URLParam(r, "id"))
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, urls)
}

func (h *handlers) recent(w http.ResponseWriter, r *http.Request) {
	limit := defaultRecentLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			h.writeError(w, types.ErrInvalidData)
			return
		}
		limit = n
	}
	urls, err := h.deps.Views.RecentUrls(limit)
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, urls)
}

func (h *handlers) themeData(w http.ResponseWriter, r *http.Request) {
	data, err := h.deps.Views.ThemeDataByProfile(chi.URLParam(r, "id"))
	if err != nil {
		h.writeError(w, err)
		return
	}
	if data == nil {
		h.writeError(w, types.ErrNotFound)
		return
	}
	h.writeJSON(w, http.StatusOK, data)
}

// renderPage serves the profile's resolved view as HTML through the
// statically-registered renderer named by its theme. The theme is the
// one reference whose absence is an error: a view cannot render without
// one, so a dangling Theme ID answers 404 instead of degrading. Only an
// existing theme with an unknown Renderer identifier falls back to the
// plain renderer.
func (h *handlers) renderPage(w http.ResponseWriter, r *http.Request) {
	data, err := h.deps.Views.ThemeDataByProfile(chi.URLParam(r, "id"))
	if err != nil {
		h.writeError(w, err)
		return
	}
	if data == nil {
		h.writeError(w, types.ErrNotFound)
		return
	}

	themes, err := h.deps.Store.Collection(types.ThemesCollection)
	if err != nil {
		h.writeError(w, err)
		return
	}
	rec, err := themes.Get(data.ThemeID)
	if err != nil {
		h.writeError(w, err)
		return
	}
	theme := rec.(*types.Theme)

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := render.Lookup(theme.Renderer).Render(w, data, theme.Globals); err != nil {
		h.deps.Logger.Errorf("render page: %v", err)
	}
}
