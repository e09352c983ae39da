package badger

import "github.com/docsift/docsift/storage"

// NewMemorySectionRepository creates an in-memory section repository for
// testing. Caller must close both the repo and the backend when done.
func NewMemorySectionRepository() (storage.SectionRepository, *Backend, error) {
	backend, err := OpenBackend("", true)
	if err != nil {
		return nil, nil, err
	}

	repo, err := NewSectionRepository(backend)
	if err != nil {
		backend.Close()
		return nil, nil, err
	}

	return repo, backend, nil
}
