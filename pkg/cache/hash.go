package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
)

// Hash computes the SHA-256 content hash of data as a 64-character hex
// string. Pipeline stages use this to key graphs and artifacts by content.
func Hash(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

// hashKey builds a namespaced cache key from the JSON encoding of its
// parts, so any part change produces a different key.
func hashKey(namespace string, parts ...any) string {
	encoded, _ := json.Marshal(parts)
	return namespace + ":" + Hash(encoded)
}
