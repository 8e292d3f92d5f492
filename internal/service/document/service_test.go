package document

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"
	"sync"
	"testing"

	"guidesync/internal/domain"
	"guidesync/internal/domain/models"
	"guidesync/internal/domain/services"
	"guidesync/internal/upload"
)

type fakeDocumentRepo struct {
	mu      sync.Mutex
	docs    map[string]*models.Document
	failing bool
}

func newFakeDocumentRepo() *fakeDocumentRepo {
	return &fakeDocumentRepo{docs: make(map[string]*models.Document)}
}

func (r *fakeDocumentRepo) Create(ctx context.Context, doc *models.Document) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failing {
		return &domain.PersistenceError{Message: "insert failed"}
	}
	copied := *doc
	r.docs[doc.ID] = &copied
	return nil
}

func (r *fakeDocumentRepo) GetByID(ctx context.Context, id, userID string) (*models.Document, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	doc, ok := r.docs[id]
	if !ok || doc.UserID != userID {
		return nil, &domain.NotFoundError{Message: "document not found"}
	}
	copied := *doc
	return &copied, nil
}

func (r *fakeDocumentRepo) ListByUser(ctx context.Context, userID string, limit, offset int) ([]models.Document, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.Document
	for _, doc := range r.docs {
		if doc.UserID == userID {
			out = append(out, *doc)
		}
	}
	return out, nil
}

func (r *fakeDocumentRepo) SetTransformResult(ctx context.Context, id string, result *models.TransformResult) error {
	return nil
}

func (r *fakeDocumentRepo) SetStatus(ctx context.Context, id string, status models.DocumentStatus) error {
	return nil
}

func (r *fakeDocumentRepo) PersistContent(ctx context.Context, id, userID, content string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	doc, ok := r.docs[id]
	if !ok || doc.UserID != userID {
		return &domain.NotFoundError{Message: "document not found"}
	}
	doc.SavedContent = content
	return nil
}

type fakeObjectStore struct {
	mu      sync.Mutex
	objects map[string][]byte
}

func newFakeObjectStore() *fakeObjectStore {
	return &fakeObjectStore{objects: make(map[string][]byte)}
}

func (s *fakeObjectStore) Put(ctx context.Context, key string, r io.Reader, size int64, contentType string) error {
	data, err := io.ReadAll(r)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.objects[key] = data
	return nil
}

func (s *fakeObjectStore) Get(ctx context.Context, key string) (io.ReadCloser, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	data, ok := s.objects[key]
	if !ok {
		return nil, &domain.NotFoundError{Message: "object not found"}
	}
	return io.NopCloser(strings.NewReader(string(data))), nil
}

func (s *fakeObjectStore) Remove(ctx context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.objects, key)
	return nil
}

func newTestService() (services.DocumentService, *fakeDocumentRepo, *fakeObjectStore) {
	repo := newFakeDocumentRepo()
	store := newFakeObjectStore()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewService(repo, store, logger), repo, store
}

func docxRequest(body string) *services.UploadRequest {
	return &services.UploadRequest{
		UserID:        "user-1",
		FileName:      "paper.docx",
		MimeType:      upload.MimeDOCX,
		Size:          int64(len(body)),
		Body:          strings.NewReader(body),
		JournalName:   "Nature",
		Language:      "en",
		ExtractedText: "Extracted paper text.",
	}
}

func TestUploadStoresObjectAndCreatesDocument(t *testing.T) {
	svc, repo, store := newTestService()

	doc, err := svc.Upload(context.Background(), docxRequest("file bytes"))
	if err != nil {
		t.Fatalf("Upload: %v", err)
	}

	if doc.ID == "" {
		t.Error("missing server-assigned id")
	}
	if doc.Status != models.StatusUploaded {
		t.Errorf("status = %s, want uploaded", doc.Status)
	}
	if doc.OriginalContent != "Extracted paper text." {
		t.Errorf("original content = %q", doc.OriginalContent)
	}
	if _, ok := repo.docs[doc.ID]; !ok {
		t.Error("document row not created")
	}
	if _, ok := store.objects[doc.ObjectKey]; !ok {
		t.Errorf("source object missing at %q", doc.ObjectKey)
	}
}

func TestUploadInfersMimeFromExtension(t *testing.T) {
	svc, _, _ := newTestService()

	req := docxRequest("file bytes")
	req.MimeType = ""
	doc, err := svc.Upload(context.Background(), req)
	if err != nil {
		t.Fatalf("Upload: %v", err)
	}
	if doc.MimeType != upload.MimeDOCX {
		t.Errorf("mime = %q, want inferred docx", doc.MimeType)
	}
}

func TestUploadRejectsBeforeStorage(t *testing.T) {
	svc, _, store := newTestService()

	req := docxRequest("file bytes")
	req.FileName = "script.exe"
	req.MimeType = "application/octet-stream"

	if _, err := svc.Upload(context.Background(), req); !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("err = %v, want validation error", err)
	}
	if len(store.objects) != 0 {
		t.Error("rejected upload reached the object store")
	}
}

func TestUploadCleansUpObjectWhenCreateFails(t *testing.T) {
	svc, repo, store := newTestService()
	repo.failing = true

	if _, err := svc.Upload(context.Background(), docxRequest("file bytes")); !errors.Is(err, domain.ErrPersistence) {
		t.Fatalf("err = %v, want persistence error", err)
	}
	if len(store.objects) != 0 {
		t.Errorf("orphaned objects left behind: %d", len(store.objects))
	}
}

func TestUploadFlattensFileNamePaths(t *testing.T) {
	svc, _, _ := newTestService()

	req := docxRequest("file bytes")
	req.FileName = "../../etc/passwd.docx"
	doc, err := svc.Upload(context.Background(), req)
	if err != nil {
		t.Fatalf("Upload: %v", err)
	}
	if strings.Contains(doc.ObjectKey, "..") {
		t.Errorf("object key carries traversal: %q", doc.ObjectKey)
	}
	if !strings.HasSuffix(doc.ObjectKey, "/passwd.docx") {
		t.Errorf("object key = %q", doc.ObjectKey)
	}
}

func TestGetDocumentScopedToOwner(t *testing.T) {
	svc, _, _ := newTestService()

	doc, err := svc.Upload(context.Background(), docxRequest("file bytes"))
	if err != nil {
		t.Fatalf("Upload: %v", err)
	}

	if _, err := svc.GetDocument(context.Background(), "user-1", doc.ID); err != nil {
		t.Errorf("owner get: %v", err)
	}
	if _, err := svc.GetDocument(context.Background(), "intruder", doc.ID); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("foreign get err = %v, want not found", err)
	}
}

func TestPersistContentNeverTouchesOriginal(t *testing.T) {
	svc, repo, _ := newTestService()

	doc, err := svc.Upload(context.Background(), docxRequest("file bytes"))
	if err != nil {
		t.Fatalf("Upload: %v", err)
	}

	if err := svc.PersistContent(context.Background(), "user-1", doc.ID, "edited baseline"); err != nil {
		t.Fatalf("PersistContent: %v", err)
	}

	stored := repo.docs[doc.ID]
	if stored.SavedContent != "edited baseline" {
		t.Errorf("saved content = %q", stored.SavedContent)
	}
	if stored.OriginalContent != "Extracted paper text." {
		t.Errorf("original content mutated: %q", stored.OriginalContent)
	}
}
