package token

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// Issuer mints HMAC-SHA256 signed tokens carrying the user id, email and an
// expiry. Implements catalog.TokenIssuer.
type Issuer struct {
	secret []byte
	ttl    time.Duration
}

type claims struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Exp   int64  `json:"exp"`
}

// NewIssuer creates an issuer with the given signing secret and token TTL.
func NewIssuer(secret string, ttl time.Duration) *Issuer {
	return &Issuer{secret: []byte(secret), ttl: ttl}
}

// Issue mints a token for the user.
func (i *Issuer) Issue(userID, email string) (string, error) {
	payload, err := json.Marshal(claims{
		ID:    userID,
		Email: email,
		Exp:   time.Now().Add(i.ttl).Unix(),
	})
	if err != nil {
		return "", fmt.Errorf("failed to encode token claims: %w", err)
	}
	body := base64.RawURLEncoding.EncodeToString(payload)
	return body + "." + i.sign(body), nil
}

// Verify checks the signature and expiry and returns the user id.
func (i *Issuer) Verify(token string) (string, error) {
	body, sig, ok := strings.Cut(token, ".")
	if !ok {
		return "", fmt.Errorf("malformed token")
	}
	if !hmac.Equal([]byte(i.sign(body)), []byte(sig)) {
		return "", fmt.Errorf("invalid token signature")
	}
	payload, err := base64.RawURLEncoding.DecodeString(body)
	if err != nil {
		return "", fmt.Errorf("malformed token payload: %w", err)
	}
	var c claims
	if err := json.Unmarshal(payload, &c); err != nil {
		return "", fmt.Errorf("malformed token claims: %w", err)
	}
	if time.Now().Unix() > c.Exp {
		return "", fmt.Errorf("token expired")
	}
	return c.ID, nil
}

func (i *Issuer) sign(body string) string {
	mac := hmac.New(sha256.New, i.secret)
	mac.Write([]byte(body))
	return base64.RawURLEncoding.EncodeToString(mac.Sum(nil))
}
