package handler

import (
	"log/slog"
	"net/http"
	"strconv"

	"guidesync/internal/domain/services"
	"guidesync/internal/httputil"
)

// GuidelineHandler handles guideline catalog and resolution requests.
type GuidelineHandler struct {
	guidelineService services.GuidelineService
	workflowService  services.WorkflowService
	logger           *slog.Logger
}

func NewGuidelineHandler(guidelineService services.GuidelineService, workflowService services.WorkflowService, logger *slog.Logger) *GuidelineHandler {
	return &GuidelineHandler{
		guidelineService: guidelineService,
		workflowService:  workflowService,
		logger:           logger,
	}
}

// ListJournals returns the known-journal catalog.
// GET /api/journals
func (h *GuidelineHandler) ListJournals(w http.ResponseWriter, r *http.Request) {
	if _, ok := requireUserID(w, r); !ok {
		return
	}

	journals, err := h.guidelineService.ListJournals(r.Context())
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, journals)
}

type resolveRequest struct {
	Journal string `json:"journal,omitempty"`
	URL     string `json:"url,omitempty"`
}

// Resolve resolves a guideline profile. A journal name answers
// synchronously from the catalog; a custom URL starts a debounced search
// and returns a token to poll. Issuing a new URL search supersedes any
// earlier in-flight one, so a late result from an old search is never
// applied.
// POST /api/guidelines/resolve
func (h *GuidelineHandler) Resolve(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	var req resolveRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, err.Error())
		return
	}

	switch {
	case req.Journal != "":
		profile, err := h.guidelineService.ResolveByName(r.Context(), req.Journal)
		if err != nil {
			handleError(w, err)
			return
		}
		httputil.RespondJSON(w, http.StatusOK, map[string]any{
			"status":  "ready",
			"profile": profile,
		})

	case req.URL != "":
		token, err := h.workflowService.SearchGuidelines(r.Context(), userID, req.URL)
		if err != nil {
			handleError(w, err)
			return
		}
		httputil.RespondJSON(w, http.StatusAccepted, map[string]any{
			"status": "pending",
			"token":  token,
		})

	default:
		httputil.RespondError(w, http.StatusBadRequest, "either journal or url is required")
	}
}

// ResolveResult reports the outcome of a tokenized URL search.
// GET /api/guidelines/resolve/{token}
func (h *GuidelineHandler) ResolveResult(w http.ResponseWriter, r *http.Request) {
	if _, ok := requireUserID(w, r); !ok {
		return
	}

	token, err := strconv.ParseUint(r.PathValue("token"), 10, 64)
	if err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "invalid search token")
		return
	}

	profile, resolveErr, done := h.workflowService.SearchResult(services.SearchToken(token))
	if !done {
		// Pending or superseded; the client keeps its newest token and
		// polls that one.
		httputil.RespondJSON(w, http.StatusOK, map[string]any{"status": "pending"})
		return
	}
	if resolveErr != nil {
		handleError(w, resolveErr)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, map[string]any{
		"status":  "ready",
		"profile": profile,
	})
}
