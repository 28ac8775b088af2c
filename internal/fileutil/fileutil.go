// Package fileutil holds small file helpers shared by the CLI and catalog.
package fileutil

import (
	"crypto/sha256"
	"encoding/hex"
)

// DigestBytes returns the hex SHA-256 digest of data.
func DigestBytes(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}
