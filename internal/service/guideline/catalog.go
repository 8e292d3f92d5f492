package guideline

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"guidesync/internal/domain/models"
)

// catalogFile is the on-disk shape of the known-journal catalog.
type catalogFile struct {
	Journals []models.JournalEntry `yaml:"journals"`
}

// LoadCatalog reads and validates the known-journal catalog from a YAML
// file. Every entry is checked at load time so the rest of the service
// works with strict profiles only.
func LoadCatalog(path string) ([]models.JournalEntry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog: %w", err)
	}

	var file catalogFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parse catalog: %w", err)
	}

	for i, entry := range file.Journals {
		if err := entry.Validate(); err != nil {
			return nil, fmt.Errorf("catalog entry %d (%q): %w", i, entry.Name, err)
		}
	}

	return file.Journals, nil
}
