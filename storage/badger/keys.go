package badger

import (
	"encoding/binary"
	"fmt"

	"github.com/docsift/docsift/core"
)

// Key prefixes for different data types
const (
	sectionPrefix         = "secrec"
	sectionPlatformPrefix = "seplat"
)

// makeSectionKey generates a key for a section by ID.
func makeSectionKey(id core.ID) []byte {
	return []byte(fmt.Sprintf("%s:%d", sectionPrefix, id))
}

// makeSectionPlatformKey generates a composite key for the platform index.
// Format: prefix:platform:id
func makeSectionPlatformKey(platform core.Platform, id core.ID) []byte {
	prefix := sectionPlatformPrefix + ":"
	prefixBytes := []byte(prefix)
	totalSize := len(prefixBytes) + 9 // 1 byte for platform + 8 bytes for ID
	buf := make([]byte, totalSize)
	offset := copy(buf, prefixBytes)
	buf[offset] = byte(platform)
	offset++
	// Write in BigEndian order so lexicographic sort works correctly
	binary.BigEndian.PutUint64(buf[offset:], uint64(id))
	return buf
}

// makePartialSectionPlatformKey generates a partial key for platform scans.
// Format: prefix:platform
func makePartialSectionPlatformKey(platform core.Platform) []byte {
	prefix := sectionPlatformPrefix + ":"
	prefixBytes := []byte(prefix)
	buf := make([]byte, len(prefixBytes)+1)
	offset := copy(buf, prefixBytes)
	buf[offset] = byte(platform)
	return buf
}
