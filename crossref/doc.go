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

// Package crossref maps design concepts to candidate technical symbols.
//
// The mapping table lives in a TOML document (an embedded default, or any
// document supplied at load time) so it can be versioned and tested
// independently of the matching logic. Three strategies produce matches:
// direct table lookups, conceptual matches via shared symbol prefixes, and
// platform-specific matches driven by caller hints.
package crossref
