package badger

import (
	"encoding/binary"
	"fmt"

	"github.com/calder-systems/fieldcraft/core"
)

// Key prefixes for different data types
const (
	cardPrefix         = "card"
	cardOrderPrefix    = "cardord"
	cardCategoryPrefix = "cardcat"
	cardChecksumPrefix = "cardsum"
	cardSeqName        = "cardseq"
)

// makeCardKey generates a key for a card by its string ID.
func makeCardKey(id string) []byte {
	return []byte(fmt.Sprintf("%s:%s", cardPrefix, id))
}

// makeOrderKey generates a key for the insertion-order index.
// Format: prefix:seq
func makeOrderKey(seq uint64) []byte {
	prefix := cardOrderPrefix + ":"
	prefixBytes := []byte(prefix)
	buf := make([]byte, len(prefixBytes)+8)
	offset := copy(buf, prefixBytes)
	// Write in BigEndian order so lexicographic sort works correctly
	binary.BigEndian.PutUint64(buf[offset:], seq)
	return buf
}

// makeCategoryKey generates a composite key for the category index.
// Format: prefix:category:seq
func makeCategoryKey(category core.Category, seq uint64) []byte {
	prefix := cardCategoryPrefix + ":"
	prefixBytes := []byte(prefix)
	buf := make([]byte, len(prefixBytes)+16)
	offset := copy(buf, prefixBytes)
	// Write in BigEndian order so lexicographic sort works correctly
	binary.BigEndian.PutUint64(buf[offset:], uint64(category))
	offset += 8
	binary.BigEndian.PutUint64(buf[offset:], seq)
	return buf
}

// makePartialCategoryKey generates a partial key for category scans.
// Format: prefix:category
func makePartialCategoryKey(category core.Category) []byte {
	prefix := cardCategoryPrefix + ":"
	prefixBytes := []byte(prefix)
	buf := make([]byte, len(prefixBytes)+8)
	offset := copy(buf, prefixBytes)
	// Write in BigEndian order so lexicographic sort works correctly
	binary.BigEndian.PutUint64(buf[offset:], uint64(category))
	return buf
}

// makeChecksumKey generates a key for the content-checksum index.
// Format: prefix:checksum
func makeChecksumKey(checksum core.ID) []byte {
	prefix := cardChecksumPrefix + ":"
	prefixBytes := []byte(prefix)
	buf := make([]byte, len(prefixBytes)+8)
	offset := copy(buf, prefixBytes)
	binary.BigEndian.PutUint64(buf[offset:], uint64(checksum))
	return buf
}
