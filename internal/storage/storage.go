package storage

import (
	"testmark/internal/config"
	"testmark/internal/domain"
)

// Storage loads the results document handed over by the Test-Result Provider.
type Storage interface {
	Load() (*domain.ResultsDocument, error)
	// Save writes a results document, e.g. one received on stdin by `record`.
	Save(doc *domain.ResultsDocument) error
}

// JSONStorage stores results in a JSON file under the configured results path.
type JSONStorage struct {
	cfg *config.Config
}

// NewJSONStorage returns a Storage that reads/writes the config's results path.
func NewJSONStorage(cfg *config.Config) *JSONStorage {
	return &JSONStorage{cfg: cfg}
}
