package auth

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testCredentials() *Credentials {
	return &Credentials{
		Account:        "1234567_SB1",
		ConsumerKey:    "ck",
		ConsumerSecret: "cs",
		TokenKey:       "tk",
		TokenSecret:    "ts",
	}
}

func TestCredentials_Valid(t *testing.T) {
	assert.True(t, testCredentials().Valid())

	var nilCreds *Credentials
	assert.False(t, nilCreds.Valid())

	partial := testCredentials()
	partial.TokenSecret = ""
	assert.False(t, partial.Valid())
}

func TestCredentials_Sign(t *testing.T) {
	creds := testCredentials()
	now := time.Unix(1700000000, 0)

	p := creds.Sign(now, "abc123")

	mac := hmac.New(sha256.New, []byte("cs&ts"))
	mac.Write([]byte("1234567_SB1&ck&tk&abc123&1700000000"))
	expected := base64.StdEncoding.EncodeToString(mac.Sum(nil))

	assert.Equal(t, expected, p.Signature)
	assert.Equal(t, int64(1700000000), p.Timestamp)
	assert.Equal(t, "abc123", p.Nonce)
	assert.Equal(t, "tk", p.Token)
	assert.Equal(t, SignatureAlgorithm, p.Algorithm)
}

func TestCredentials_NewPassport(t *testing.T) {
	creds := testCredentials()

	first := creds.NewPassport()
	second := creds.NewPassport()

	require.Len(t, first.Nonce, 32)
	assert.NotEqual(t, first.Nonce, second.Nonce)
	assert.NotEmpty(t, first.Signature)
}
