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


// Package analyze turns free-text documentation queries into structured
// analyses: recognized entities, filtered keywords, matched concepts, a
// classified intent, and a resolved platform/category.
//
// The heuristic term lists and ordered intent rules live behind the
// Tokenizer and IntentClassifier interfaces so they can be replaced without
// touching any scorer.
package analyze
