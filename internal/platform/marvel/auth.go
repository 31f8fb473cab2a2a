package marvel

import (
	"crypto/md5" //nolint:gosec // the provider mandates md5 request signing
	"encoding/hex"
)

// AuthHash computes the request signature md5(ts + privateKey + publicKey).
// Without a private key the request is unsigned and the hash is empty.
func AuthHash(ts, privateKey, publicKey string) string {
	if privateKey == "" {
		return ""
	}
	sum := md5.Sum([]byte(ts + privateKey + publicKey)) //nolint:gosec
	return hex.EncodeToString(sum[:])
}
