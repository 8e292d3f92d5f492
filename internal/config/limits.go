package config

const (
	// MaxUploadBytes is the size ceiling for uploaded source files.
	// Enforced before any storage or network call so oversized files
	// fail fast with a local validation error.
	MaxUploadBytes = 50 << 20 // 50MB

	// MaxJournalNameLength is the maximum length for journal names.
	// Limited to 255 to fit in PostgreSQL VARCHAR(255) and provide
	// reasonable UX (names should be short and descriptive).
	MaxJournalNameLength = 255

	// MaxJournalURLLength is the maximum length for custom journal URLs
	// submitted to the guideline resolver.
	MaxJournalURLLength = 2048

	// MaxDocumentBytes is the maximum size of a document's text content
	// accepted through the edit surface. Larger bodies indicate a client
	// bug rather than a real paper.
	MaxDocumentBytes = 10 << 20 // 10MB

	// GuidelineCacheTTLMinutes is how long resolved custom-URL guideline
	// profiles stay in the Redis cache.
	GuidelineCacheTTLMinutes = 60
)
