package httpserver

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/tabula-app/tabula/internal/logger"
	"github.com/tabula-app/tabula/pkg/types"
)

func (h *handlers) exportAll(w http.ResponseWriter, r *http.Request) {
	snap, err := h.deps.Transfer.ExportAll()
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, snap)
}

func (h *handlers) exportProfile(w http.ResponseWriter, r *http.Request) {
	snap, err := h.deps.Transfer.ExportByProfile(chi.URLParam(r, "id"))
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, snap)
}

func (h *handlers) importSnapshot(w http.ResponseWriter, r *http.Request) {
	var snap types.Snapshot
	if err := json.NewDecoder(r.Body).Decode(&snap); err != nil {
		h.writeError(w, types.ErrInvalidData)
		return
	}
	report, err := h.deps.Transfer.Import(&snap)
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, report)
}

type clickRequest struct {
	UrlID string `json:"urlId"`
}

func (h *handlers) recordClick(w http.ResponseWriter, r *http.Request) {
	var req clickRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.UrlID == "" {
		h.writeError(w, types.ErrInvalidData)
		return
	}
	clicks, err := h.deps.Store.Clicks()
	if err != nil {
		h.writeError(w, err)
		return
	}
	event, err := clicks.Record(req.UrlID)
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusCreated, event)
}

func (h *handlers) listClicks(w http.ResponseWriter, r *http.Request) {
	clicks, err := h.deps.Store.Clicks()
	if err != nil {
		h.writeError(w, err)
		return
	}

	q := r.URL.Query()
	var events []*types.UrlClickEvent
	switch {
	case q.Get("url") != "":
		events, err = clicks.ByUrl(q.Get("url"))
	case q.Get("from") != "" || q.Get("to") != "":
		var from, to time.Time
		from, to, err = parseClickRange(q.Get("from"), q.Get("to"))
		if err != nil {
			h.writeError(w, types.ErrInvalidData)
			return
		}
		events, err = clicks.Between(from, to)
	default:
		events, err = clicks.GetAll()
	}
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, events)
}

func parseClickRange(fromRaw, toRaw string) (time.Time, time.Time, error) {
	from := time.Time{}
	to := time.Now().UTC()
	if fromRaw != "" {
		t, err := time.Parse(time.RFC3339, fromRaw)
		if err != nil {
			return time.Time{}, time.Time{}, err
		}
		from = t
	}
	if toRaw != "" {
		t, err := time.Parse(time.RFC3339, toRaw)
		if err != nil {
			return time.Time{}, time.Time{}, err
		}
		to = t
	}
	return from, to, nil
}

func (h *handlers) clearClicks(w http.ResponseWriter, r *http.Request) {
	clicks, err := h.deps.Store.Clicks()
	if err != nil {
		h.writeError(w, err)
		return
	}
	if err := clicks.ClearAll(); err != nil {
		h.writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// factoryReset destroys the database and re-attaches, which re-runs the
// seed loader against the fresh store.
func (h *handlers) factoryReset(w http.ResponseWriter, r *http.Request) {
	if err := h.deps.Store.Destroy(); err != nil {
		h.writeError(w, err)
		return
	}
	if err := h.deps.Store.Attach(h.deps.StoreConfig); err != nil {
		h.writeError(w, err)
		return
	}
	h.deps.Logger.Info("factory reset complete", logger.String("dataDir", h.deps.StoreConfig.DataDir))
	h.writeJSON(w, http.StatusOK, map[string]string{"status": "reset"})
}
