package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
)

// Hash returns the hex SHA-256 of data.
func Hash(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

// HashValue hashes the JSON encoding of v. Decoded invoices and palettes are
// hashed this way, so source formatting (YAML vs TOML, key order, comments)
// does not change the key.
func HashValue(v any) (string, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return "", err
	}
	return Hash(data), nil
}

// artifactKey is "artifact:" followed by the hash of the input hash and the
// render options.
func artifactKey(inputHash string, opts ArtifactKeyOpts) string {
	data, _ := json.Marshal([]any{inputHash, opts})
	return "artifact:" + Hash(data)
}
