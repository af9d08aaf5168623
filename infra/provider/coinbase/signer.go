package coinbase

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"strconv"
)

// Credentials is an exchange API key pair.
type Credentials struct {
	Key    string
	Secret string
}

// Valid reports whether both halves of the pair are present.
func (c Credentials) Valid() bool {
	return c.Key != "" && c.Secret != ""
}

// Sign returns the hex HMAC-SHA256 of nonce, url and body under secret.
// A nil body signs as the empty string.
func Sign(secret string, nonce int64, url string, body []byte) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(strconv.FormatInt(nonce, 10)))
	mac.Write([]byte(url))
	mac.Write(body)
	return hex.EncodeToString(mac.Sum(nil))
}
