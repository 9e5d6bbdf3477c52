// Package cache provides the in-run page cache. Duplicate target URLs are
// fetched once per run; nothing persists across runs.
package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"time"
)

// PageCache stores fetched page bodies keyed by URL
type PageCache interface {
	// Get returns the cached markup for a URL
	Get(url string) (string, bool)

	// Set stores the markup for a URL with the given TTL
	Set(url string, htmlBody string, ttl time.Duration)

	// Clear removes every cached page
	Clear()
}

// Key derives the cache key for a URL. URLs are hashed so arbitrarily long
// or credential-bearing URLs never appear as raw keys.
func Key(url string) string {
	hash := sha256.Sum256([]byte(url))
	return "leaderwatch:v1:" + hex.EncodeToString(hash[:])
}
