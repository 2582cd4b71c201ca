package httpserver

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/tabula-app/tabula/internal/logger"
	"github.com/tabula-app/tabula/pkg/types"
)

type handlers struct {
	deps Deps
}

// codec decodes request bodies into the concrete entity or patch struct
// for one collection. Collection returns any, so the decode side is the
// only place the HTTP layer needs per-entity types.
type codec struct {
	entity func(*json.Decoder) (any, error)
	patch  func(*json.Decoder) (any, error)
}

var codecs = map[string]codec{
	types.PicturesCollection: {
		entity: func(d *json.Decoder) (any, error) { v := &types.Picture{}; return v, d.Decode(v) },
		patch:  func(d *json.Decoder) (any, error) { v := &types.PicturePatch{}; return v, d.Decode(v) },
	},
	types.TagsCollection: {
		entity: func(d *json.Decoder) (any, error) { v := &types.Tag{}; return v, d.Decode(v) },
		patch:  func(d *json.Decoder) (any, error) { v := &types.TagPatch{}; return v, d.Decode(v) },
	},
	types.UrlsCollection: {
		entity: func(d *json.Decoder) (any, error) { v := &types.Url{}; return v, d.Decode(v) },
		patch:  func(d *json.Decoder) (any, error) { v := &types.UrlPatch{}; return v, d.Decode(v) },
	},
	types.ThemesCollection: {
		entity: func(d *json.Decoder) (any, error) { v := &types.Theme{}; return v, d.Decode(v) },
		patch:  func(d *json.Decoder) (any, error) { v := &types.ThemePatch{}; return v, d.Decode(v) },
	},
	types.CategoriesCollection: {
		entity: func(d *json.Decoder) (any, error) { v := &types.Category{}; return v, d.Decode(v) },
		patch:  func(d *json.Decoder) (any, error) { v := &types.CategoryPatch{}; return v, d.Decode(v) },
	},
	types.ProfilesCollection: {
		entity: func(d *json.Decoder) (any, error) { v := &types.Profile{}; return v, d.Decode(v) },
		patch:  func(d *json.Decoder) (any, error) { v := &types.ProfilePatch{}; return v, d.Decode(v) },
	},
}

func (h *handlers) register(r chi.Router) {
	r.Get("/healthz", h.healthz)

	for _, name := range types.StandardCollections {
		h.registerCollection(r, name)
	}

	r.Get("/profiles/{id}/themedata", h.themeData)
	r.Get("/profiles/{id}/page", h.renderPage)

	r.Get("/search", h.search)
	r.Get("/tags/{id}/urls", h.urlsByTag)
	r.Get("/categories/{id}/urls", h.urlsByCategory)
	r.Get("/recent", h.recent)

	r.Post("/clicks", h.recordClick)
	r.Get("/clicks", h.listClicks)
	r.Delete("/clicks", h.clearClicks)

	r.Get("/export", h.exportAll)
	r.Get("/profiles/{id}/export", h.exportProfile)
	r.Post("/import", h.importSnapshot)
	r.Post("/reset", h.factoryReset)
}

func (h *handlers) registerCollection(r chi.Router, name string) {
	r.Get("/"+name, h.list(name))
	r.Post("/"+name, h.create(name))
	r.Get("/"+name+"/{id}", h.get(name))
	r.Put("/"+name+"/{id}", h.update(name))
	r.Delete("/"+name+"/{id}", h.del(name))
}

func (h *handlers) healthz(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *handlers) list(name string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		col, err := h.deps.Store.Collection(name)
		if err != nil {
			h.writeError(w, err)
			return
		}
		all, err := col.GetAll()
		if err != nil {
			h.writeError(w, err)
			return
		}
		h.writeJSON(w, http.StatusOK, all)
	}
}

func (h *handlers) get(name string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		col, err := h.deps.Store.Collection(name)
		if err != nil {
			h.writeError(w, err)
			return
		}
		rec, err := col.Get(chi.URLParam(r, "id"))
		if err != nil {
			h.writeError(w, err)
			return
		}
		h.writeJSON(w, http.StatusOK, rec)
	}
}

func (h *handlers) create(name string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		data, err := codecs[name].entity(json.NewDecoder(r.Body))
		if err != nil {
			h.writeError(w, types.ErrInvalidData)
			return
		}
		col, err := h.deps.Store.Collection(name)
		if err != nil {
			h.writeError(w, err)
			return
		}
		rec, err := col.Create(data)
		if err != nil {
			h.writeError(w, err)
			return
		}
		h.writeJSON(w, http.StatusCreated, rec)
	}
}

func (h *handlers) update(name string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		patch, err := codecs[name].patch(json.NewDecoder(r.Body))
		if err != nil {
			h.writeError(w, types.ErrInvalidData)
			return
		}
		col, err := h.deps.Store.Collection(name)
		if err != nil {
			h.writeError(w, err)
			return
		}
		rec, err := col.Update(chi.URLParam(r, "id"), patch)
		if err != nil {
			h.writeError(w, err)
			return
		}
		h.writeJSON(w, http.StatusOK, rec)
	}
}

func (h *handlers) del(name string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		col, err := h.deps.Store.Collection(name)
		if err != nil {
			h.writeError(w, err)
			return
		}
		if err := col.Delete(chi.URLParam(r, "id")); err != nil {
			h.writeError(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

func (h *handlers) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		h.deps.Logger.Error("encode response", logger.Error(err))
	}
}

func (h *handlers) writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, types.ErrNotFound), errors.Is(err, types.ErrCollectionNotFound):
		status = http.StatusNotFound
	case errors.Is(err, types.ErrReadonly):
		status = http.StatusForbidden
	case errors.Is(err, types.ErrInvalidID),
		errors.Is(err, types.ErrInvalidData),
		errors.Is(err, types.ErrInvalidName):
		status = http.StatusBadRequest
	case errors.Is(err, types.ErrStoreDetached):
		status = http.StatusServiceUnavailable
	}
	if status == http.StatusInternalServerError {
		h.deps.Logger.Error("request failed", logger.Error(err))
	}
	h.writeJSON(w, status, map[string]string{"error": err.Error()})
}
