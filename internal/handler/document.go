package handler

import (
	"io"
	"log/slog"
	"net/http"
	"strconv"

	"guidesync/internal/config"
	"guidesync/internal/domain/services"
	"guidesync/internal/httputil"
)

// DocumentHandler handles document upload, retrieval, and download.
type DocumentHandler struct {
	docService    services.DocumentService
	exportService services.ExportService
	logger        *slog.Logger
}

func NewDocumentHandler(docService services.DocumentService, exportService services.ExportService, logger *slog.Logger) *DocumentHandler {
	return &DocumentHandler{
		docService:    docService,
		exportService: exportService,
		logger:        logger,
	}
}

// HealthCheck reports liveness.
// GET /health
func (h *DocumentHandler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	httputil.RespondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// Upload accepts a multipart source file plus its metadata.
// POST /api/documents
// Form fields: file (required), journal_name, language, text (extracted
// plain text, becomes the immutable original content).
func (h *DocumentHandler) Upload(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, config.MaxUploadBytes+config.MaxDocumentBytes)
	if err := r.ParseMultipartForm(8 << 20); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "invalid multipart form")
		return
	}
	defer r.MultipartForm.RemoveAll()

	file, header, err := r.FormFile("file")
	if err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "file field is required")
		return
	}
	defer file.Close()

	req := &services.UploadRequest{
		UserID:        userID,
		FileName:      header.Filename,
		MimeType:      header.Header.Get("Content-Type"),
		Size:          header.Size,
		Body:          file,
		JournalName:   r.FormValue("journal_name"),
		Language:      r.FormValue("language"),
		ExtractedText: r.FormValue("text"),
	}

	doc, err := h.docService.Upload(r.Context(), req)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusCreated, doc)
}

// GetDocument retrieves a document by ID.
// GET /api/documents/{id}
func (h *DocumentHandler) GetDocument(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	id := r.PathValue("id")
	if id == "" {
		httputil.RespondError(w, http.StatusBadRequest, "document ID is required")
		return
	}

	doc, err := h.docService.GetDocument(r.Context(), userID, id)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, doc)
}

// ListDocuments returns the user's documents, newest first.
// GET /api/documents?limit=&offset=
func (h *DocumentHandler) ListDocuments(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	offset, _ := strconv.Atoi(r.URL.Query().Get("offset"))

	docs, err := h.docService.ListDocuments(r.Context(), userID, limit, offset)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, docs)
}

// Download streams the exported document.
// GET /api/documents/{id}/download?format=html|markdown|text
func (h *DocumentHandler) Download(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	id := r.PathValue("id")
	format := services.ExportFormat(r.URL.Query().Get("format"))
	if format == "" {
		format = services.ExportHTML
	}

	stream, contentType, fileName, err := h.exportService.Export(r.Context(), userID, id, format)
	if err != nil {
		handleError(w, err)
		return
	}
	defer stream.Close()

	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", `attachment; filename="`+fileName+`"`)
	if _, err := io.Copy(w, stream); err != nil {
		h.logger.Warn("download interrupted", "document_id", id, "error", err)
	}
}
