package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"strings"
)

// keySchema versions the key layout. Bump it when the serialized form of an
// album, layout, or artifact changes incompatibly; old entries then simply
// miss and age out via their TTLs instead of being deserialized wrongly.
const keySchema = "v1"

// hashKey builds a cache key of the form "stage:schema:hash". The stage
// prefix keeps keys self-describing (FileCache uses it to bucket entries per
// stage) and the hash covers every component that affects the cached value.
func hashKey(stage string, parts ...any) string {
	data, _ := json.Marshal(parts)
	sum := sha256.Sum256(data)
	return fmt.Sprintf("%s:%s:%s", stage, keySchema, hex.EncodeToString(sum[:]))
}

// stageOf extracts the stage prefix from a cache key. Keys without a prefix
// map to "misc" so a malformed key never escapes the cache directory.
func stageOf(key string) string {
	if i := strings.IndexByte(key, ':'); i > 0 {
		return key[:i]
	}
	return "misc"
}

// Hash computes the SHA-256 hash of data as a 64-character hex string.
// Album and layout content hashes used in cache keys come from here.
func Hash(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}
