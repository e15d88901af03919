package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"time"
)

// Cache defines the interface for caching model responses
type Cache interface {
	Get(key string) ([]byte, bool)
	Set(key string, value []byte, ttl time.Duration) error
	Delete(key string) error
	Clear() error
}

// Key generates a cache key for a model call. Provider and model are part
// of the key so switching backends never serves a stale response.
func Key(provider, model, prompt string) string {
	hash := sha256.Sum256([]byte(provider + "\x00" + model + "\x00" + prompt))
	return "claimwise:v1:" + hex.EncodeToString(hash[:])
}
