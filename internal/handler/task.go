package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/BuzzLyutic/tasklist/internal/filter"
	"github.com/BuzzLyutic/tasklist/internal/model"
	"github.com/BuzzLyutic/tasklist/internal/repo"
	"github.com/BuzzLyutic/tasklist/internal/service"
	"github.com/BuzzLyutic/tasklist/internal/view"
	"github.com/BuzzLyutic/tasklist/pkg/respond"
)

type createRequest struct {
	Text     string         `json:"text"`
	Category model.Category `json:"category"`
	Priority model.Priority `json:"priority"`
}

type textRequest struct {
	Text string `json:"text"`
}

type TaskHandler struct {
	store  *service.TaskStore
	theme  *service.ThemeService
	logger *zap.Logger
}

func NewTaskHandler(store *service.TaskStore, theme *service.ThemeService, logger *zap.Logger) *TaskHandler {
	return &TaskHandler{
		store:  store,
		theme:  theme,
		logger: logger,
	}
}

// List renders the page for the filters given in the query string.
func (h *TaskHandler) List(w http.ResponseWriter, r *http.Request) {
	respond.JSON(w, r, http.StatusOK, h.page(r))
}

func (h *TaskHandler) Create(w http.ResponseWriter, r *http.Request) {
	if r.ContentLength == 0 {
		respond.Error(w, r, http.StatusBadRequest, "empty request body")
		return
	}

	var req createRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Debug("failed to decode json", zap.Error(err))
		respond.Error(w, r, http.StatusBadRequest, fmt.Sprintf("invalid json: %v", err))
		return
	}

	task, ok, err := h.store.Create(r.Context(), req.Text, req.Category, req.Priority)
	if err != nil {
		h.storageError(w, r, err)
		return
	}
	if !ok {
		respond.NoContent(w, r)
		return
	}

	w.Header().Set("Location", fmt.Sprintf("/api/tasks/%s", task.ID))
	respond.JSON(w, r, http.StatusCreated, task)
}

func (h *TaskHandler) Toggle(w http.ResponseWriter, r *http.Request) {
	if err := h.store.ToggleCompleted(r.Context(), chi.URLParam(r, "id")); err != nil {
		h.storageError(w, r, err)
		return
	}
	respond.JSON(w, r, http.StatusOK, h.page(r))
}

func (h *TaskHandler) UpdateText(w http.ResponseWriter, r *http.Request) {
	var req textRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.Error(w, r, http.StatusBadRequest, "invalid json")
		return
	}

	if _, err := h.store.UpdateText(r.Context(), chi.URLParam(r, "id"), req.Text); err != nil {
		h.storageError(w, r, err)
		return
	}
	respond.JSON(w, r, http.StatusOK, h.page(r))
}

func (h *TaskHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.store.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		h.storageError(w, r, err)
		return
	}
	respond.NoContent(w, r)
}

func (h *TaskHandler) ClearCompleted(w http.ResponseWriter, r *http.Request) {
	removed, err := h.store.ClearCompleted(r.Context())
	if err != nil {
		h.storageError(w, r, err)
		return
	}
	respond.JSON(w, r, http.StatusOK, map[string]int{"removed": removed})
}

func (h *TaskHandler) Stats(w http.ResponseWriter, r *http.Request) {
	respond.JSON(w, r, http.StatusOK, h.store.Stats())
}

func (h *TaskHandler) Theme(w http.ResponseWriter, r *http.Request) {
	respond.JSON(w, r, http.StatusOK, map[string]model.Theme{"theme": h.theme.Current(r.Context())})
}

func (h *TaskHandler) ToggleTheme(w http.ResponseWriter, r *http.Request) {
	theme, err := h.theme.Toggle(r.Context())
	if err != nil {
		h.storageError(w, r, err)
		return
	}
	respond.JSON(w, r, http.StatusOK, map[string]model.Theme{"theme": theme})
}

func (h *TaskHandler) page(r *http.Request) view.Page {
	q := r.URL.Query()
	c := filter.Criteria{
		Status:   filter.ParseStatus(q.Get("status")),
		Category: filter.ParseCategory(q.Get("category")),
		Query:    q.Get("q"),
	}
	return view.Build(h.store.Tasks(), c, "", h.theme.Current(r.Context()))
}

// storageError is the only failure class: domain no-ops never get here.
func (h *TaskHandler) storageError(w http.ResponseWriter, r *http.Request, err error) {
	h.logger.Error("storage error", zap.String("path", r.URL.Path), zap.Error(err))

	switch {
	case errors.Is(err, repo.ErrorUnavailable):
		respond.Error(w, r, http.StatusServiceUnavailable, "storage unavailable")
	default:
		respond.Error(w, r, http.StatusInternalServerError, "internal error")
	}
}
