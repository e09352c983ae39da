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

// Package rank combines semantic, keyword, structure, and contextual signals
// into a single relevance score per documentation section.
//
// Each signal is scored in [0,1] and blended with fixed weights (0.4 / 0.3 /
// 0.2 / 0.1), then multiplicative boosts reward exact title matches, filter
// agreement, and recently updated content. When the embedding provider is
// unavailable, ranking degrades gracefully to the non-semantic signals.
package rank
