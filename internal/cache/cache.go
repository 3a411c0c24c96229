package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"time"
)

// Cache is the get/set contract the pipeline requires from storage.
// Implementations decide where bytes live; callers own serialization.
type Cache interface {
	Get(key string) ([]byte, bool)
	Set(key string, value []byte, ttl time.Duration) error
	Delete(key string) error
	Clear() error
}

// Key builds a namespaced cache key from a normalized lookup name.
func Key(normalized string) string {
	hash := sha256.Sum256([]byte(normalized))
	return "factsheet:v1:" + hex.EncodeToString(hash[:])
}
