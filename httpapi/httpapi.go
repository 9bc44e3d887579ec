// Package httpapi exposes a kvsession.Store over HTTP. Items travel as raw
// request and response bodies, keys in the path are strings.
package httpapi

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/zdnscloud/cement/log"

	"github.com/zdnscloud/kvsession"
)

const maxItemSize = 4 << 20

type Handler struct {
	store  kvsession.Store
	router chi.Router
}

func New(store kvsession.Store) *Handler {
	h := &Handler{store: store}
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(logRequest)

	r.Get("/healthz", h.handleHealth)
	r.Route("/api/v1/databases/{database}", func(r chi.Router) {
		r.Get("/version", h.handleVersion)
		r.Delete("/", h.handleDeleteDatabase)

		r.Route("/collections/{collection}", func(r chi.Router) {
			r.Post("/", h.handleAddCollection)
			r.Get("/items", h.handleReadAll)
			r.Delete("/items", h.handleClearAll)
			r.Get("/items/{key}", h.handleReadOne)
			r.Put("/items/{key}", h.handleWrite)
			r.Patch("/items/{key}", h.handleUpdate)
			r.Delete("/items/{key}", h.handleRemoveOne)
		})
	})
	h.router = r
	return h
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.router.ServeHTTP(w, r)
}

func logRequest(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		log.Debugf("%s %s %d", r.Method, r.URL.Path, ww.Status())
	})
}

func (h *Handler) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// GET /api/v1/databases/{database}/version
func (h *Handler) handleVersion(w http.ResponseWriter, r *http.Request) {
	database := chi.URLParam(r, "database")
	version, err := h.store.CurrentVersion(r.Context(), database)
	if err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"database": database, "version": version})
}

func (h *Handler) handleDeleteDatabase(w http.ResponseWriter, r *http.Request) {
	if err := h.store.DeleteDatabase(r.Context(), chi.URLParam(r, "database")); err != nil {
		writeStoreError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// POST /api/v1/databases/{database}/collections/{collection}?key=seed
// Body: the seed item
func (h *Handler) handleAddCollection(w http.ResponseWriter, r *http.Request) {
	key := r.URL.Query().Get("key")
	if key == "" {
		writeError(w, http.StatusBadRequest, "key query parameter is required")
		return
	}
	item, ok := readItem(w, r)
	if !ok {
		return
	}
	err := h.store.AddCollection(r.Context(), chi.URLParam(r, "database"), chi.URLParam(r, "collection"), item, key)
	if err != nil {
		writeStoreError(w, err)
		return
	}
	w.WriteHeader(http.StatusCreated)
}

// GET /api/v1/databases/{database}/collections/{collection}/items
// Response: {"items": [base64...], "count": N} in key order
func (h *Handler) handleReadAll(w http.ResponseWriter, r *http.Request) {
	items, err := h.store.ReadAll(r.Context(), chi.URLParam(r, "database"), chi.URLParam(r, "collection"))
	if err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"items": items, "count": len(items)})
}

func (h *Handler) handleClearAll(w http.ResponseWriter, r *http.Request) {
	if err := h.store.ClearAll(r.Context(), chi.URLParam(r, "database"), chi.URLParam(r, "collection")); err != nil {
		writeStoreError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) handleReadOne(w http.ResponseWriter, r *http.Request) {
	item, found, err := h.store.ReadOne(r.Context(), chi.URLParam(r, "database"), chi.URLParam(r, "collection"), chi.URLParam(r, "key"))
	if err != nil {
		writeStoreError(w, err)
		return
	}
	if !found {
		writeError(w, http.StatusNotFound, "item not found")
		return
	}
	w.Header().Set("Content-Type", "application/octet-stream")
	w.WriteHeader(http.StatusOK)
	w.Write(item)
}

func (h *Handler) handleWrite(w http.ResponseWriter, r *http.Request) {
	item, ok := readItem(w, r)
	if !ok {
		return
	}
	if err := h.store.Write(r.Context(), chi.URLParam(r, "database"), chi.URLParam(r, "collection"), item, chi.URLParam(r, "key")); err != nil {
		writeStoreError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) handleUpdate(w http.ResponseWriter, r *http.Request) {
	item, ok := readItem(w, r)
	if !ok {
		return
	}
	if err := h.store.Update(r.Context(), chi.URLParam(r, "database"), chi.URLParam(r, "collection"), item, chi.URLParam(r, "key")); err != nil {
		writeStoreError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) handleRemoveOne(w http.ResponseWriter, r *http.Request) {
	if err := h.store.RemoveOne(r.Context(), chi.URLParam(r, "database"), chi.URLParam(r, "collection"), chi.URLParam(r, "key")); err != nil {
		writeStoreError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func readItem(w http.ResponseWriter, r *http.Request) ([]byte, bool) {
	item, err := io.ReadAll(io.LimitReader(r.Body, maxItemSize+1))
	if err != nil {
		writeError(w, http.StatusBadRequest, "read body failed: "+err.Error())
		return nil, false
	}
	if len(item) > maxItemSize {
		writeError(w, http.StatusRequestEntityTooLarge, "item is too large")
		return nil, false
	}
	return item, true
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Warnf("write response failed: %s", err.Error())
	}
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}

func writeStoreError(w http.ResponseWriter, err error) {
	writeError(w, statusOf(err), err.Error())
}

func statusOf(err error) int {
	switch {
	case errors.Is(err, kvsession.ErrCapabilityUnavailable):
		return http.StatusServiceUnavailable
	case errors.Is(err, kvsession.ErrInvalidKey), errors.Is(err, kvsession.ErrInvalidName):
		return http.StatusBadRequest
	case errors.Is(err, kvsession.ErrCollectionNotFound):
		return http.StatusNotFound
	case errors.Is(err, kvsession.ErrVersion):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}
