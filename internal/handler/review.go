package handler

import (
	"context"
	"log/slog"
	"net/http"

	"guidesync/internal/config"
	"guidesync/internal/domain/models"
	"guidesync/internal/domain/services"
	"guidesync/internal/httputil"
)

// ReviewHandler exposes the comparison/review controller actions. Every
// action returns the full controller snapshot so the UI renders from one
// consistent read model.
type ReviewHandler struct {
	reviewService services.ReviewService
	logger        *slog.Logger
}

func NewReviewHandler(reviewService services.ReviewService, logger *slog.Logger) *ReviewHandler {
	return &ReviewHandler{
		reviewService: reviewService,
		logger:        logger,
	}
}

// Open opens (or returns the already-open) review for a ready document.
// POST /api/documents/{id}/review/open
func (h *ReviewHandler) Open(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	id := r.PathValue("id")
	if id == "" {
		httputil.RespondError(w, http.StatusBadRequest, "document ID is required")
		return
	}

	snap, err := h.reviewService.OpenDocument(r.Context(), userID, id)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, snap)
}

// Snapshot returns the current read model.
// GET /api/reviews/{id}
func (h *ReviewHandler) Snapshot(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	snap, err := h.reviewService.Snapshot(r.Context(), userID, r.PathValue("id"))
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, snap)
}

// SetViewMode switches the comparison rendering.
// POST /api/reviews/{id}/view-mode
func (h *ReviewHandler) SetViewMode(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	var req struct {
		Mode string `json:"mode"`
	}
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, err.Error())
		return
	}
	mode, err := models.ParseViewMode(req.Mode)
	if err != nil {
		httputil.RespondError(w, http.StatusBadRequest, err.Error())
		return
	}

	snap, err := h.reviewService.SetViewMode(r.Context(), userID, r.PathValue("id"), mode)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, snap)
}

// ToggleEdit flips the editable surface.
// POST /api/reviews/{id}/edit-toggle
func (h *ReviewHandler) ToggleEdit(w http.ResponseWriter, r *http.Request) {
	h.action(w, r, h.reviewService.ToggleEdit)
}

// ToggleDiffHighlight flips the change markers.
// POST /api/reviews/{id}/diff-toggle
func (h *ReviewHandler) ToggleDiffHighlight(w http.ResponseWriter, r *http.Request) {
	h.action(w, r, h.reviewService.ToggleDiffHighlight)
}

// Edit commits new content into the session history.
// POST /api/reviews/{id}/edit
func (h *ReviewHandler) Edit(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	var req struct {
		Content string `json:"content"`
	}
	if err := httputil.ParseJSONLimit(w, r, &req, config.MaxDocumentBytes*2); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, err.Error())
		return
	}

	snap, err := h.reviewService.Edit(r.Context(), userID, r.PathValue("id"), req.Content)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, snap)
}

// Undo steps the history cursor back.
// POST /api/reviews/{id}/undo
func (h *ReviewHandler) Undo(w http.ResponseWriter, r *http.Request) {
	h.action(w, r, h.reviewService.Undo)
}

// Redo steps the history cursor forward.
// POST /api/reviews/{id}/redo
func (h *ReviewHandler) Redo(w http.ResponseWriter, r *http.Request) {
	h.action(w, r, h.reviewService.Redo)
}

// Save persists the current content.
// POST /api/reviews/{id}/save
func (h *ReviewHandler) Save(w http.ResponseWriter, r *http.Request) {
	h.action(w, r, h.reviewService.Save)
}

// Close discards the controller and its unsaved history.
// DELETE /api/reviews/{id}
func (h *ReviewHandler) Close(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	if err := h.reviewService.Close(r.Context(), userID, r.PathValue("id")); err != nil {
		handleError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

type reviewAction func(ctx context.Context, userID, reviewID string) (*models.ReviewSnapshot, error)

func (h *ReviewHandler) action(w http.ResponseWriter, r *http.Request, fn reviewAction) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	snap, err := fn(r.Context(), userID, r.PathValue("id"))
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, snap)
}
