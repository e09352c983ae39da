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


// Package index maintains the in-memory semantic index: one entry per
// section holding precomputed embeddings for the title, overview,
// guidelines, and full content slices, plus the metadata the non-semantic
// scorers read.
//
// Queries against a built index are pure in-memory computation. Indexing is
// the only blocking phase and runs on a bounded worker pool; entries are
// published atomically and never mutated in place, so reads need no
// coordination with ongoing re-indexing.
package index
