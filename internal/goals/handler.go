package goals

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/ayush/goalsetter/internal/apperr"
	"github.com/ayush/goalsetter/internal/auth"
	"github.com/ayush/goalsetter/internal/models"
	"github.com/ayush/goalsetter/internal/render"
)

// Handler holds goal HTTP handlers. Every route runs behind the auth
// middleware, so a missing identity is a wiring error answered with 401.
type Handler struct {
	goals    *Service
	exporter *Exporter
}

func NewHandler(goals *Service, exporter *Exporter) *Handler {
	return &Handler{goals: goals, exporter: exporter}
}

func caller(w http.ResponseWriter, r *http.Request) (models.Identity, bool) {
	id, ok := auth.IdentityFrom(r.Context())
	if !ok {
		render.Error(w, r, apperr.Unauthenticated("Not authorized"))
	}
	return id, ok
}

// List returns all goals of the current user.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	me, ok := caller(w, r)
	if !ok {
		return
	}
	goals, err := h.goals.List(r.Context(), me)
	if err != nil {
		render.Error(w, r, err)
		return
	}
	render.JSON(w, http.StatusOK, map[string]any{"goals": goals})
}

// Create adds a goal owned by the current user.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	me, ok := caller(w, r)
	if !ok {
		return
	}
	var req models.GoalRequest
	if err := render.Decode(r, &req); err != nil {
		render.Error(w, r, err)
		return
	}
	goal, err := h.goals.Create(r.Context(), me, req.Text)
	if err != nil {
		render.Error(w, r, err)
		return
	}
	render.JSON(w, http.StatusCreated, map[string]any{
		"message": "Goal created successfully",
		"goal":    goal,
	})
}

// Get returns a single goal.
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	me, ok := caller(w, r)
	if !ok {
		return
	}
	goal, err := h.goals.Get(r.Context(), me, chi.URLParam(r, "id"))
	if err != nil {
		render.Error(w, r, err)
		return
	}
	render.JSON(w, http.StatusOK, map[string]any{"goal": goal})
}

// Update applies a partial update to a goal.
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	me, ok := caller(w, r)
	if !ok {
		return
	}
	var upd models.GoalUpdate
	if err := render.Decode(r, &upd); err != nil {
		render.Error(w, r, err)
		return
	}
	goal, err := h.goals.Update(r.Context(), me, chi.URLParam(r, "id"), upd)
	if err != nil {
		render.Error(w, r, err)
		return
	}
	render.JSON(w, http.StatusOK, map[string]any{
		"message": "Goal updated successfully",
		"goal":    goal,
	})
}

// Delete removes a goal.
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	me, ok := caller(w, r)
	if !ok {
		return
	}
	id := chi.URLParam(r, "id")
	if err := h.goals.Delete(r.Context(), me, id); err != nil {
		render.Error(w, r, err)
		return
	}
	render.JSON(w, http.StatusOK, map[string]string{
		"message": "Goal deleted successfully",
		"id":      id,
	})
}

// Export writes a snapshot of the user's goals to object storage.
func (h *Handler) Export(w http.ResponseWriter, r *http.Request) {
	me, ok := caller(w, r)
	if !ok {
		return
	}
	key, err := h.exporter.Export(r.Context(), me)
	if err != nil {
		render.Error(w, r, err)
		return
	}
	render.JSON(w, http.StatusCreated, map[string]string{
		"message": "Goals exported successfully",
		"key":     key,
	})
}

// DownloadExport streams the user's latest export.
func (h *Handler) DownloadExport(w http.ResponseWriter, r *http.Request) {
	me, ok := caller(w, r)
	if !ok {
		return
	}
	data, ct, err := h.exporter.Latest(r.Context(), me)
	if err != nil {
		render.Error(w, r, err)
		return
	}
	w.Header().Set("Content-Type", ct)
	w.Header().Set("Content-Disposition", "attachment; filename=goals.json")
	w.Write(data)
}
