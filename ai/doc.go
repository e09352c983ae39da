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


// Package ai provides abstractions for the embedding services used in Docsift.
//
// The ranking engine never reaches into process-wide model state: an
// EmbeddingProvider is constructed once and injected into the indexing and
// scoring components, so tests can substitute a deterministic fake.
//
// # Lifecycle
//
// A provider starts unloaded. Load performs the one-time initialization
// under a short timeout; on failure the provider is marked permanently
// unavailable for the process lifetime and every embedding request returns
// ErrUnavailable. Consumers translate that into zero vectors and degraded
// (non-semantic) scoring, never into a fatal error.
//
// # Implementation Packages
//
//   - ai/openai: production implementation using OpenAI-compatible APIs
//   - ai/mock: test doubles for unit testing without external dependencies
//
// Public constructors (openai.NewProvider) return the interface type to
// enforce abstraction. Mock constructors (mock.NewProvider) return concrete
// types so tests can inject behavior and assert call counts.
package ai
