package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
	"time"
)

// Cache stores serialized values by key
type Cache interface {
	Get(key string) ([]byte, bool)
	Set(key string, value []byte, ttl time.Duration) error
	Delete(key string) error
	Clear() error
}

// ClaimKey generates a cache key for a claim.
// Claims differing only in case or surrounding/internal whitespace share a key.
func ClaimKey(claim string) string {
	normalized := strings.Join(strings.Fields(strings.ToLower(claim)), " ")
	hash := sha256.Sum256([]byte(normalized))
	return "clipverity:factcheck:v1:" + hex.EncodeToString(hash[:])
}

// New returns a memory cache, or a memory+disk cache when dir is set
func New(ttl time.Duration, dir string) Cache {
	if dir == "" {
		return NewMemoryCache(ttl, 10*time.Minute)
	}
	return NewLayeredCache(ttl, dir, ttl)
}
