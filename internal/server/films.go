package server

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"

	"github.com/desertthunder/films/internal/lists"
	"github.com/desertthunder/films/internal/models"
	"github.com/desertthunder/films/internal/shared"
)

type filmsHandler struct {
	lists  lists.Service
	logger *log.Logger
}

func (h *filmsHandler) Mount(r chi.Router) {
	r.Route("/films", func(r chi.Router) {
		r.Get("/", h.list)
		r.Post("/", h.add)
		r.Post("/sort", h.sort)
		r.Delete("/{id}", h.remove)
		r.Put("/{id}/photo", h.setPhoto)
	})
	r.Post("/search", h.search)
}

type addRequest struct {
	Name string `json:"name"`
}

type sortRequest struct {
	IDs []int64 `json:"ids"`
}

type photoRequest struct {
	Photo string `json:"photo"`
}

type searchRequest struct {
	Query string `json:"query"`
}

type listResponse struct {
	Message string         `json:"message,omitempty"`
	Entry   *models.Entry  `json:"entry,omitempty"`
	Films   []models.Entry `json:"films"`
}

type entryResponse struct {
	Message string       `json:"message,omitempty"`
	Entry   models.Entry `json:"entry"`
}

type searchResponse struct {
	Results []models.Film `json:"results"`
}

// list handles GET /v1/films
func (h *filmsHandler) list(w http.ResponseWriter, r *http.Request) {
	userID, err := UserIDFromContext(r.Context())
	if err != nil {
		WriteError(w, h.logger, err)
		return
	}

	page, err := parsePage(r)
	if err != nil {
		WriteError(w, h.logger, err)
		return
	}

	entries, err := h.lists.List(r.Context(), userID, page)
	if err != nil {
		WriteError(w, h.logger, err)
		return
	}

	WriteJSON(w, http.StatusOK, listResponse{Films: entries})
}

// add handles POST /v1/films
func (h *filmsHandler) add(w http.ResponseWriter, r *http.Request) {
	userID, err := UserIDFromContext(r.Context())
	if err != nil {
		WriteError(w, h.logger, err)
		return
	}

	var req addRequest
	if err := DecodeJSON(w, r, &req); err != nil {
		WriteError(w, h.logger, err)
		return
	}

	entry, added, err := h.lists.Add(r.Context(), userID, req.Name)
	if err != nil {
		WriteError(w, h.logger, err)
		return
	}

	entries, err := h.lists.List(r.Context(), userID, models.Page{})
	if err != nil {
		WriteError(w, h.logger, err)
		return
	}

	status := http.StatusOK
	if added {
		status = http.StatusCreated
	}

	WriteJSON(w, status, listResponse{
		Message: fmt.Sprintf("Added %q to the list of films", entry.Name),
		Entry:   &entry,
		Films:   entries,
	})
}

// remove handles DELETE /v1/films/{id}
func (h *filmsHandler) remove(w http.ResponseWriter, r *http.Request) {
	userID, err := UserIDFromContext(r.Context())
	if err != nil {
		WriteError(w, h.logger, err)
		return
	}

	id, err := pathID(r)
	if err != nil {
		WriteError(w, h.logger, err)
		return
	}

	removed, err := h.lists.Remove(r.Context(), userID, id)
	if err != nil {
		WriteError(w, h.logger, err)
		return
	}

	entries, err := h.lists.List(r.Context(), userID, models.Page{})
	if err != nil {
		WriteError(w, h.logger, err)
		return
	}

	WriteJSON(w, http.StatusOK, listResponse{
		Message: fmt.Sprintf("Deleted %q from the list of films", removed.Name),
		Films:   entries,
	})
}

// sort handles POST /v1/films/sort
func (h *filmsHandler) sort(w http.ResponseWriter, r *http.Request) {
	userID, err := UserIDFromContext(r.Context())
	if err != nil {
		WriteError(w, h.logger, err)
		return
	}

	var req sortRequest
	if err := DecodeJSON(w, r, &req); err != nil {
		WriteError(w, h.logger, err)
		return
	}

	entries, err := h.lists.ApplySort(r.Context(), userID, req.IDs)
	if err != nil {
		WriteError(w, h.logger, err)
		return
	}

	WriteJSON(w, http.StatusOK, listResponse{Films: entries})
}

// setPhoto handles PUT /v1/films/{id}/photo
func (h *filmsHandler) setPhoto(w http.ResponseWriter, r *http.Request) {
	userID, err := UserIDFromContext(r.Context())
	if err != nil {
		WriteError(w, h.logger, err)
		return
	}

	id, err := pathID(r)
	if err != nil {
		WriteError(w, h.logger, err)
		return
	}

	var req photoRequest
	if err := DecodeJSON(w, r, &req); err != nil {
		WriteError(w, h.logger, err)
		return
	}

	entry, err := h.lists.SetPhoto(r.Context(), userID, id, req.Photo)
	if err != nil {
		WriteError(w, h.logger, err)
		return
	}

	WriteJSON(w, http.StatusOK, entryResponse{Entry: entry})
}

// search handles POST /v1/search
func (h *filmsHandler) search(w http.ResponseWriter, r *http.Request) {
	userID, err := UserIDFromContext(r.Context())
	if err != nil {
		WriteError(w, h.logger, err)
		return
	}

	var req searchRequest
	if err := DecodeJSON(w, r, &req); err != nil {
		WriteError(w, h.logger, err)
		return
	}

	results, err := h.lists.Search(r.Context(), userID, req.Query)
	if err != nil {
		WriteError(w, h.logger, err)
		return
	}

	WriteJSON(w, http.StatusOK, searchResponse{Results: results})
}

// parsePage reads the optional limit and offset query parameters.
func parsePage(r *http.Request) (models.Page, error) {
	var page models.Page

	for key, dst := range map[string]*int{"limit": &page.Limit, "offset": &page.Offset} {
		raw := r.URL.Query().Get(key)
		if raw == "" {
			continue
		}
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			return models.Page{}, fmt.Errorf("%w: %s %q", shared.ErrInvalidArgument, key, raw)
		}
		*dst = n
	}

	return page, nil
}
