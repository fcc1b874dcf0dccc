package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
)

// KeyPrefix prefixes every key built by DefaultKeyer.
const KeyPrefix = "omeda"

// DefaultKeyer builds keys as prefix:sha256(params). Implementations
// embed it to share one key format.
type DefaultKeyer struct {
	// Prefix overrides KeyPrefix when set.
	Prefix string
}

// BuildKey implements Cache.BuildKey.
func (k DefaultKeyer) BuildKey(p KeyParams) string {
	prefix := k.Prefix
	if prefix == "" {
		prefix = KeyPrefix
	}
	return hashKey(prefix, p.Environment, p.Brand, p.Operation, p.Client, p.Endpoint, int64(p.TTL.Seconds()))
}

// hashKey generates a cache key by hashing the components.
// The key format is: prefix:hash(parts...)
func hashKey(prefix string, parts ...any) string {
	data, _ := json.Marshal(parts)
	hash := sha256.Sum256(data)
	// Full SHA-256 (64 hex chars) so distinct endpoints never collide.
	return fmt.Sprintf("%s:%s", prefix, hex.EncodeToString(hash[:]))
}

// Hash computes a SHA-256 hash of the input data.
// Returns the full 64-character hex string.
func Hash(data []byte) string {
	hash := sha256.Sum256(data)
	return hex.EncodeToString(hash[:])
}
