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

package core

import (
	"time"

	"github.com/mus-format/mus-go/ord"
	"github.com/mus-format/mus-go/raw"
	"github.com/mus-format/mus-go/varint"
)

// MUS serializers for the types the storage layer persists. Field order is
// the wire format; changing it breaks previously written databases.

var stringSliceMUS = ord.NewSliceSer[string](ord.String)

// IDMUS serializes IDs as varints.
var IDMUS = idMUS{}

type idMUS struct{}

func (idMUS) Marshal(id ID, bs []byte) int {
	return varint.Uint64.Marshal(uint64(id), bs)
}

func (idMUS) Unmarshal(bs []byte) (ID, int, error) {
	v, n, err := varint.Uint64.Unmarshal(bs)
	return ID(v), n, err
}

func (idMUS) Size(id ID) int {
	return varint.Uint64.Size(uint64(id))
}

func (idMUS) Skip(bs []byte) (int, error) {
	return varint.Uint64.Skip(bs)
}

// QualityMetricsMUS serializes quality grades.
var QualityMetricsMUS = qualityMetricsMUS{}

type qualityMetricsMUS struct{}

func (qualityMetricsMUS) Marshal(q QualityMetrics, bs []byte) (n int) {
	n = raw.Float32.Marshal(q.Score, bs)
	n += raw.Float32.Marshal(q.Confidence, bs[n:])
	n += ord.Bool.Marshal(q.IsFallbackContent, bs[n:])
	n += raw.Float32.Marshal(q.StructureScore, bs[n:])
	n += varint.Int.Marshal(q.HeadingCount, bs[n:])
	n += varint.Int.Marshal(q.CodeExampleCount, bs[n:])
	return n
}

func (qualityMetricsMUS) Unmarshal(bs []byte) (q QualityMetrics, n int, err error) {
	var m int
	if q.Score, n, err = raw.Float32.Unmarshal(bs); err != nil {
		return
	}
	if q.Confidence, m, err = raw.Float32.Unmarshal(bs[n:]); err != nil {
		return
	}
	n += m
	if q.IsFallbackContent, m, err = ord.Bool.Unmarshal(bs[n:]); err != nil {
		return
	}
	n += m
	if q.StructureScore, m, err = raw.Float32.Unmarshal(bs[n:]); err != nil {
		return
	}
	n += m
	if q.HeadingCount, m, err = varint.Int.Unmarshal(bs[n:]); err != nil {
		return
	}
	n += m
	if q.CodeExampleCount, m, err = varint.Int.Unmarshal(bs[n:]); err != nil {
		return
	}
	n += m
	return
}

func (qualityMetricsMUS) Size(q QualityMetrics) int {
	return raw.Float32.Size(q.Score) +
		raw.Float32.Size(q.Confidence) +
		ord.Bool.Size(q.IsFallbackContent) +
		raw.Float32.Size(q.StructureScore) +
		varint.Int.Size(q.HeadingCount) +
		varint.Int.Size(q.CodeExampleCount)
}

// StructuredContentMUS serializes parsed section structure.
var StructuredContentMUS = structuredContentMUS{}

type structuredContentMUS struct{}

func (structuredContentMUS) Marshal(sc StructuredContent, bs []byte) (n int) {
	n = ord.String.Marshal(sc.Overview, bs)
	n += stringSliceMUS.Marshal(sc.Guidelines, bs[n:])
	n += stringSliceMUS.Marshal(sc.Examples, bs[n:])
	n += ord.String.Marshal(sc.Specifications, bs[n:])
	return n
}

func (structuredContentMUS) Unmarshal(bs []byte) (sc StructuredContent, n int, err error) {
	var m int
	if sc.Overview, n, err = ord.String.Unmarshal(bs); err != nil {
		return
	}
	if sc.Guidelines, m, err = stringSliceMUS.Unmarshal(bs[n:]); err != nil {
		return
	}
	n += m
	if sc.Examples, m, err = stringSliceMUS.Unmarshal(bs[n:]); err != nil {
		return
	}
	n += m
	if sc.Specifications, m, err = ord.String.Unmarshal(bs[n:]); err != nil {
		return
	}
	n += m
	return
}

func (structuredContentMUS) Size(sc StructuredContent) int {
	return ord.String.Size(sc.Overview) +
		stringSliceMUS.Size(sc.Guidelines) +
		stringSliceMUS.Size(sc.Examples) +
		ord.String.Size(sc.Specifications)
}

// SectionMUS serializes whole sections, including the optional structure and
// quality blocks behind presence flags.
var SectionMUS = sectionMUS{}

type sectionMUS struct{}

func (sectionMUS) Marshal(s Section, bs []byte) (n int) {
	n = IDMUS.Marshal(s.Id, bs)
	n += ord.String.Marshal(s.Title, bs[n:])
	n += ord.String.Marshal(s.URL, bs[n:])
	n += varint.Int.Marshal(int(s.Platform), bs[n:])
	n += varint.Int.Marshal(int(s.Category), bs[n:])
	n += ord.String.Marshal(s.Content, bs[n:])

	n += ord.Bool.Marshal(s.Structured != nil, bs[n:])
	if s.Structured != nil {
		n += StructuredContentMUS.Marshal(*s.Structured, bs[n:])
	}

	n += ord.Bool.Marshal(s.Quality != nil, bs[n:])
	if s.Quality != nil {
		n += QualityMetricsMUS.Marshal(*s.Quality, bs[n:])
	}

	hasTime := !s.LastUpdated.IsZero()
	n += ord.Bool.Marshal(hasTime, bs[n:])
	if hasTime {
		n += varint.Int64.Marshal(s.LastUpdated.UnixNano(), bs[n:])
	}
	return n
}

func (sectionMUS) Unmarshal(bs []byte) (s Section, n int, err error) {
	var m int
	if s.Id, n, err = IDMUS.Unmarshal(bs); err != nil {
		return
	}
	if s.Title, m, err = ord.String.Unmarshal(bs[n:]); err != nil {
		return
	}
	n += m
	if s.URL, m, err = ord.String.Unmarshal(bs[n:]); err != nil {
		return
	}
	n += m

	var enum int
	if enum, m, err = varint.Int.Unmarshal(bs[n:]); err != nil {
		return
	}
	n += m
	s.Platform = Platform(enum)
	if enum, m, err = varint.Int.Unmarshal(bs[n:]); err != nil {
		return
	}
	n += m
	s.Category = Category(enum)

	if s.Content, m, err = ord.String.Unmarshal(bs[n:]); err != nil {
		return
	}
	n += m

	var present bool
	if present, m, err = ord.Bool.Unmarshal(bs[n:]); err != nil {
		return
	}
	n += m
	if present {
		var sc StructuredContent
		if sc, m, err = StructuredContentMUS.Unmarshal(bs[n:]); err != nil {
			return
		}
		n += m
		s.Structured = &sc
	}

	if present, m, err = ord.Bool.Unmarshal(bs[n:]); err != nil {
		return
	}
	n += m
	if present {
		var q QualityMetrics
		if q, m, err = QualityMetricsMUS.Unmarshal(bs[n:]); err != nil {
			return
		}
		n += m
		s.Quality = &q
	}

	if present, m, err = ord.Bool.Unmarshal(bs[n:]); err != nil {
		return
	}
	n += m
	if present {
		var nanos int64
		if nanos, m, err = varint.Int64.Unmarshal(bs[n:]); err != nil {
			return
		}
		n += m
		s.LastUpdated = time.Unix(0, nanos)
	}
	return
}

func (sectionMUS) Size(s Section) int {
	size := IDMUS.Size(s.Id) +
		ord.String.Size(s.Title) +
		ord.String.Size(s.URL) +
		varint.Int.Size(int(s.Platform)) +
		varint.Int.Size(int(s.Category)) +
		ord.String.Size(s.Content)

	size += ord.Bool.Size(s.Structured != nil)
	if s.Structured != nil {
		size += StructuredContentMUS.Size(*s.Structured)
	}

	size += ord.Bool.Size(s.Quality != nil)
	if s.Quality != nil {
		size += QualityMetricsMUS.Size(*s.Quality)
	}

	hasTime := !s.LastUpdated.IsZero()
	size += ord.Bool.Size(hasTime)
	if hasTime {
		size += varint.Int64.Size(s.LastUpdated.UnixNano())
	}
	return size
}
