// Package digest provides the one-way password transform used for
// credential storage. Digest values are compared for equality and never
// reversed; any collision-resistant hash can stand in.
package digest

import (
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
)

// Digest turns a password into an opaque, equality-comparable value.
type Digest interface {
	Sum(password string) string
}

// SHA256 is the default digest: lowercase hex of the SHA-256 sum.
type SHA256 struct{}

// Sum implements Digest.
func (SHA256) Sum(password string) string {
	sum := sha256.Sum256([]byte(password))
	return hex.EncodeToString(sum[:])
}

// Equal compares two digest values in constant time.
func Equal(a, b string) bool {
	return subtle.ConstantTimeCompare([]byte(a), []byte(b)) == 1
}
