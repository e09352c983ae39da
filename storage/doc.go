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

// Package storage provides the storage abstraction layer for docsift.
//
// This package defines repository interfaces that decouple storage
// implementation from ranking logic, allowing different backends (BadgerDB,
// in-memory) to be used interchangeably.
//
// Public constructors return interfaces to keep consumers decoupled from
// backend specifics:
//
//	repo, backend, err := badger.NewSectionRepository(path)  // storage.SectionRepository
//
// Use in tests with in-memory storage:
//
//	repo, backend, err := badger.NewMemorySectionRepository()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer func() {
//	    repo.Close()
//	    backend.Close()
//	}()
//
// All repository implementations must be thread-safe, and every method
// accepts a context.Context for cancellation and timeout support.
package storage
