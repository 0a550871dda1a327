// Package auth signs private-channel subscriptions and trading commands
// with HMAC-SHA256 over a caller-supplied nonce, the way the exchange's v2
// API expects.
package auth

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"fmt"
	"strconv"

	"github.com/mselser95/krakenmd/pkg/krakenerr"
)

// Credentials is an opaque API key plus a base64-encoded secret. It is
// immutable once constructed; the secret is decoded fresh on every Sign
// call rather than cached, so a malformed secret surfaces at sign time
// with the offending credentials still redactable in logs.
type Credentials struct {
	Key    string
	Secret string // base64-encoded
}

// Signer produces request tokens from a set of Credentials.
type Signer struct {
	creds Credentials
}

// NewSigner builds a Signer over the given credentials.
func NewSigner(creds Credentials) *Signer {
	return &Signer{creds: creds}
}

// Sign computes HMAC-SHA256 over the ASCII decimal representation of nonce,
// keyed by the base64-decoded secret, and returns the MAC base64-encoded.
// Distinct nonces always yield distinct signatures for the same secret;
// the same (secret, nonce) pair always yields the same signature.
func (s *Signer) Sign(nonce uint64) (string, error) {
	secret, err := base64.StdEncoding.DecodeString(s.creds.Secret)
	if err != nil {
		return "", fmt.Errorf("%w: decode secret: %v", krakenerr.ErrInvalidMessage, err)
	}

	message := strconv.FormatUint(nonce, 10)

	mac := hmac.New(sha256.New, secret)
	mac.Write([]byte(message))

	return base64.StdEncoding.EncodeToString(mac.Sum(nil)), nil
}

// Key returns the API key associated with this signer.
func (s *Signer) Key() string { return s.creds.Key }

// String returns a redacted representation safe for logging.
func (c Credentials) String() string {
	return fmt.Sprintf("Credentials{key=%s, secret=%s}", redact(c.Key), redact(c.Secret))
}

func redact(s string) string {
	if len(s) <= 4 {
		return "****"
	}
	return s[:4] + "****"
}
