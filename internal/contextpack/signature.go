package contextpack

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

const (
	fnvOffset32 uint32 = 2166136261
	fnvPrime32  uint32 = 16777619
)

// Signature fingerprints a selection from each block's type, id, freshness and
// size, in order. Content bytes are not hashed, so identical selections always
// share a signature.
func Signature(blocks []Block) string {
	parts := make([]string, len(blocks))
	for i, b := range blocks {
		parts[i] = fmt.Sprintf("%s:%s:%s:%d", b.Type, b.ID, signatureTime(b.UpdatedAt), b.Tokens)
	}
	return HashString(strings.Join(parts, "|"))
}

// signatureTime renders UpdatedAt as Unix milliseconds, or "" when unknown.
func signatureTime(t *time.Time) string {
	if t == nil {
		return ""
	}
	return strconv.FormatInt(t.UnixMilli(), 10)
}

// HashString returns the 32-bit FNV-1a hash of s as lowercase hex without
// padding. Each code point is folded into the hash, so text outside the Basic
// Multilingual Plane hashes differently than it would over UTF-16 code units.
func HashString(s string) string {
	h := fnvOffset32
	for _, r := range s {
		h ^= uint32(r)
		h *= fnvPrime32
	}
	return strconv.FormatUint(uint64(h), 16)
}
