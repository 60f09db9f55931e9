// Package auth provides NetSuite token-based authentication.
package auth

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

// SignatureAlgorithm is the only algorithm NetSuite accepts for new integrations.
const SignatureAlgorithm = "HMAC-SHA256"

// Credentials holds token-based authentication (TBA) credentials.
type Credentials struct {
	Account        string
	ConsumerKey    string
	ConsumerSecret string
	TokenKey       string
	TokenSecret    string
}

// Passport is a signed tokenPassport, valid for a single request.
type Passport struct {
	Account     string
	ConsumerKey string
	Token       string
	Nonce       string
	Timestamp   int64
	Signature   string
	Algorithm   string
}

// Valid reports whether credentials are configured.
func (c *Credentials) Valid() bool {
	return c != nil && c.Account != "" &&
		c.ConsumerKey != "" && c.ConsumerSecret != "" &&
		c.TokenKey != "" && c.TokenSecret != ""
}

// NewPassport signs a passport with a fresh nonce and the current time.
func (c *Credentials) NewPassport() Passport {
	return c.Sign(time.Now(), newNonce())
}

// Sign builds a passport for the given time and nonce.
func (c *Credentials) Sign(now time.Time, nonce string) Passport {
	ts := now.Unix()
	base := strings.Join([]string{
		c.Account,
		c.ConsumerKey,
		c.TokenKey,
		nonce,
		strconv.FormatInt(ts, 10),
	}, "&")

	mac := hmac.New(sha256.New, []byte(c.ConsumerSecret+"&"+c.TokenSecret))
	mac.Write([]byte(base))

	return Passport{
		Account:     c.Account,
		ConsumerKey: c.ConsumerKey,
		Token:       c.TokenKey,
		Nonce:       nonce,
		Timestamp:   ts,
		Signature:   base64.StdEncoding.EncodeToString(mac.Sum(nil)),
		Algorithm:   SignatureAlgorithm,
	}
}

// NetSuite limits nonces to 40 characters; a dashless UUID is 32.
func newNonce() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")
}
