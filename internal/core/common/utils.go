package common

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"

	jsoniter "github.com/json-iterator/go"
)

// compactJSON sorts map keys so equal values always encode to equal text.
var compactJSON = jsoniter.ConfigCompatibleWithStandardLibrary

// Fingerprint returns the hex SHA-256 of content.
func Fingerprint(content string) string {
	sum := sha256.Sum256([]byte(content))
	return hex.EncodeToString(sum[:])
}

// CompactJSON encodes v without insignificant whitespace.
func CompactJSON(v interface{}) (string, error) {
	data, err := compactJSON.Marshal(v)
	if err != nil {
		return "", fmt.Errorf("failed to encode value as JSON: %w", err)
	}
	return string(data), nil
}
