package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"time"
)

// Cache defines the interface for caching
type Cache interface {
	Get(key string) ([]byte, bool)
	Set(key string, value []byte, ttl time.Duration) error
	Delete(key string) error
	Clear() error
}

// ClassificationKey generates a cache key for one product classification.
// Name and ABV together decide the category, so both are part of the key.
func ClassificationKey(name string, abv float64) string {
	hash := sha256.Sum256([]byte(fmt.Sprintf("%s_%g", name, abv)))
	return "akviza:classify:v1:" + hex.EncodeToString(hash[:])
}

// ResultKey generates a cache key for a whole processed document, derived
// from the raw document bytes so any upstream change invalidates it.
func ResultKey(document []byte) string {
	hash := sha256.Sum256(document)
	return "akviza:result:v1:" + hex.EncodeToString(hash[:])
}
