package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
)

// Hash returns the hex SHA-256 digest of data.
func Hash(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

// HashJSON returns the digest of v's JSON encoding. Values that encode
// identically hash identically, so struct field order is the only thing that
// matters for key stability.
func HashJSON(v any) (string, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return "", err
	}
	return Hash(data), nil
}

// hashKey builds "prefix:digest" from the JSON encoding of parts. parts must
// be encodable; keyer inputs are plain structs so the error is dropped.
func hashKey(prefix string, parts ...any) string {
	digest, _ := HashJSON(parts)
	return prefix + ":" + digest
}
