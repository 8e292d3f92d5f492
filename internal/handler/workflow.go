package handler

import (
	"log/slog"
	"net/http"

	"guidesync/internal/domain/models"
	"guidesync/internal/domain/services"
	"guidesync/internal/handler/sse"
	"guidesync/internal/httputil"
)

// WorkflowHandler handles transform submission and the progress stream.
type WorkflowHandler struct {
	workflowService services.WorkflowService
	docService      services.DocumentService
	sseConfig       *sse.Config
	logger          *slog.Logger
}

func NewWorkflowHandler(workflowService services.WorkflowService, docService services.DocumentService, sseConfig *sse.Config, logger *slog.Logger) *WorkflowHandler {
	return &WorkflowHandler{
		workflowService: workflowService,
		docService:      docService,
		sseConfig:       sseConfig,
		logger:          logger,
	}
}

// Submit starts a transform for an uploaded document.
// POST /api/documents/{id}/submit
// Body: the resolved guideline profile to apply.
func (h *WorkflowHandler) Submit(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	id := r.PathValue("id")
	if id == "" {
		httputil.RespondError(w, http.StatusBadRequest, "document ID is required")
		return
	}

	var profile models.GuidelineProfile
	if err := httputil.ParseJSON(w, r, &profile); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.workflowService.Submit(r.Context(), userID, id, profile); err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusAccepted, map[string]string{
		"document_id": id,
		"status":      string(models.StatusProcessing),
	})
}

// Progress streams transform progress events via SSE.
// GET /api/documents/{id}/progress
// Events: "progress" with {percent}, then a terminal "done" or
// "error". The stream closes after the terminal event.
func (h *WorkflowHandler) Progress(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	id := r.PathValue("id")

	// Ownership check before any stream state is exposed.
	if _, err := h.docService.GetDocument(r.Context(), userID, id); err != nil {
		handleError(w, err)
		return
	}

	stream, err := sse.NewStream(w)
	if err != nil {
		httputil.RespondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	events, unsubscribe := h.workflowService.Subscribe(id)
	defer unsubscribe()

	keepAlive := sse.NewTickerKeepAlive(h.sseConfig.KeepAliveInterval)
	defer keepAlive.Stop()
	keepAliveStopped := keepAlive.Start(stream, h.logger)

	h.logger.Debug("progress stream opened", "document_id", id)

	for {
		select {
		case event, open := <-events:
			if !open {
				h.logger.Debug("progress stream complete", "document_id", id)
				return
			}
			name := "progress"
			if event.Done {
				name = "done"
				if event.Error != "" {
					name = "error"
				}
			}
			if err := stream.WriteEvent(name, event); err != nil {
				h.logger.Debug("progress client gone", "document_id", id, "error", err)
				return
			}
		case <-keepAliveStopped:
			return
		case <-r.Context().Done():
			return
		}
	}
}
