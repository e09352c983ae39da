// Copyright 2025 Docsift Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package badger

import (
	"context"
	"errors"

	"github.com/dgraph-io/badger/v4"
	"github.com/docsift/docsift/core"
	"github.com/docsift/docsift/storage"
)

// SectionRepository implements storage.SectionRepository for BadgerDB.
type SectionRepository struct {
	backend *Backend
}

var _ storage.SectionRepository = (*SectionRepository)(nil)

// NewSectionRepository creates a new SectionRepository.
func NewSectionRepository(backend *Backend) (*SectionRepository, error) {
	if backend == nil || backend.IsClosed() {
		return nil, storage.ErrStorageClosed
	}
	return &SectionRepository{backend: backend}, nil
}

// Close releases repository resources. The backend itself is closed
// separately by its owner.
func (r *SectionRepository) Close() error {
	return nil
}

// WithTransaction delegates to the backend.
func (r *SectionRepository) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return r.backend.WithTransaction(ctx, fn)
}

// PutSections stores one or more sections, superseding any prior value for
// the same id and keeping the platform index consistent.
func (r *SectionRepository) PutSections(ctx context.Context, sections ...*core.Section) error {
	return r.backend.WithTx(func(tx *badger.Txn) error {
		for _, section := range sections {
			section.Id = core.SectionID(section)
			key := makeSectionKey(section.Id)

			// A re-scrape may move a section between platforms; drop the
			// stale index entry before writing the new one.
			old, err := readSection(tx, key)
			if err != nil {
				return err
			}
			if old != nil && old.Platform != section.Platform {
				if err := tx.Delete(makeSectionPlatformKey(old.Platform, old.Id)); err != nil {
					return err
				}
			}

			if err := tx.Set(key, storage.MarshalSection(section)); err != nil {
				return err
			}
			platformKey := makeSectionPlatformKey(section.Platform, section.Id)
			if err := tx.Set(platformKey, storage.MarshalID(section.Id)); err != nil {
				return err
			}
		}
		return tx.Commit()
	}, true)
}

// GetSection retrieves a single section by id.
func (r *SectionRepository) GetSection(ctx context.Context, id core.ID) (*core.Section, error) {
	var section *core.Section
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		var err error
		section, err = readSection(tx, makeSectionKey(id))
		return err
	}, false)
	if err != nil {
		return nil, err
	}
	if section == nil {
		return nil, storage.ErrNotFound
	}
	return section, nil
}

// GetSections retrieves multiple sections by their ids, skipping missing ones.
func (r *SectionRepository) GetSections(ctx context.Context, ids ...core.ID) ([]*core.Section, error) {
	sections := make([]*core.Section, 0, len(ids))
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		for _, id := range ids {
			section, err := readSection(tx, makeSectionKey(id))
			if err != nil {
				return err
			}
			if section != nil {
				sections = append(sections, section)
			}
		}
		return nil
	}, false)
	if err != nil {
		return nil, err
	}
	return sections, nil
}

// ListSections retrieves every stored section.
func (r *SectionRepository) ListSections(ctx context.Context) ([]*core.Section, error) {
	var sections []*core.Section
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = []byte(sectionPrefix + ":")
		iter := tx.NewIterator(opts)
		defer iter.Close()

		for iter.Rewind(); iter.Valid(); iter.Next() {
			err := iter.Item().Value(func(val []byte) error {
				section, err := storage.UnmarshalSection(val)
				if err != nil {
					return err
				}
				sections = append(sections, section)
				return nil
			})
			if err != nil {
				return err
			}
		}
		return nil
	}, false)
	if err != nil {
		return nil, err
	}
	return sections, nil
}

// ListSectionsByPlatform retrieves sections for one platform via the
// platform index.
func (r *SectionRepository) ListSectionsByPlatform(ctx context.Context, platform core.Platform) ([]*core.Section, error) {
	var sections []*core.Section
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = makePartialSectionPlatformKey(platform)
		iter := tx.NewIterator(opts)
		defer iter.Close()

		for iter.Rewind(); iter.Valid(); iter.Next() {
			var id core.ID
			err := iter.Item().Value(func(val []byte) error {
				var err error
				id, err = storage.UnmarshalID(val)
				return err
			})
			if err != nil {
				return err
			}

			section, err := readSection(tx, makeSectionKey(id))
			if err != nil {
				return err
			}
			if section != nil {
				sections = append(sections, section)
			}
		}
		return nil
	}, false)
	if err != nil {
		return nil, err
	}
	return sections, nil
}

// DeleteSections removes sections by their ids, including platform index
// entries. Returns storage.ErrNotFound if any section doesn't exist.
func (r *SectionRepository) DeleteSections(ctx context.Context, ids ...core.ID) error {
	return r.backend.WithTx(func(tx *badger.Txn) error {
		for _, id := range ids {
			key := makeSectionKey(id)
			section, err := readSection(tx, key)
			if err != nil {
				return err
			}
			if section == nil {
				return storage.ErrNotFound
			}
			if err := tx.Delete(key); err != nil {
				return err
			}
			if err := tx.Delete(makeSectionPlatformKey(section.Platform, id)); err != nil {
				return err
			}
		}
		return tx.Commit()
	}, true)
}

// CountSections returns the number of stored sections.
func (r *SectionRepository) CountSections(ctx context.Context) (int, error) {
	count := 0
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = []byte(sectionPrefix + ":")
		opts.PrefetchValues = false
		iter := tx.NewIterator(opts)
		defer iter.Close()

		for iter.Rewind(); iter.Valid(); iter.Next() {
			count++
		}
		return nil
	}, false)
	if err != nil {
		return 0, err
	}
	return count, nil
}

// readSection fetches and deserializes one section, returning nil when the
// key is absent.
func readSection(tx *badger.Txn, key []byte) (*core.Section, error) {
	item, err := tx.Get(key)
	if err != nil {
		if errors.Is(err, badger.ErrKeyNotFound) {
			return nil, nil
		}
		return nil, err
	}

	var section *core.Section
	err = item.Value(func(val []byte) error {
		var err error
		section, err = storage.UnmarshalSection(val)
		return err
	})
	if err != nil {
		return nil, err
	}
	return section, nil
}
