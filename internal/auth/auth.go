// Package auth is the collaborator boundary for authentication. The
// storefront never trusts a client-supplied user identifier; identity comes
// from a verified token only.
package auth

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"
)

var ErrInvalidToken = errors.New("invalid token")

const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// Identity is the authenticated caller, injected into the request context
// by middleware.
type Identity struct {
	UserID string
	Role   string
}

func (i Identity) IsAdmin() bool {
	return i.Role == RoleAdmin
}

// Verifier turns an opaque token into an Identity. Token issuance lives in
// the user service, not here.
type Verifier interface {
	Verify(token string) (Identity, error)
}

// HMACVerifier verifies tokens of the form
// base64url(userID|role) + "." + base64url(hmac-sha256).
type HMACVerifier struct {
	secret []byte
}

func NewHMACVerifier(secret string) *HMACVerifier {
	return &HMACVerifier{secret: []byte(secret)}
}

func (v *HMACVerifier) Verify(token string) (Identity, error) {
	payloadB64, macB64, ok := strings.Cut(token, ".")
	if !ok {
		return Identity{}, ErrInvalidToken
	}

	payload, err := base64.RawURLEncoding.DecodeString(payloadB64)
	if err != nil {
		return Identity{}, ErrInvalidToken
	}
	gotMAC, err := base64.RawURLEncoding.DecodeString(macB64)
	if err != nil {
		return Identity{}, ErrInvalidToken
	}

	if !hmac.Equal(gotMAC, v.sign(payload)) {
		return Identity{}, ErrInvalidToken
	}

	userID, role, ok := strings.Cut(string(payload), "|")
	if !ok || userID == "" {
		return Identity{}, ErrInvalidToken
	}
	if role != RoleUser && role != RoleAdmin {
		return Identity{}, ErrInvalidToken
	}

	return Identity{UserID: userID, Role: role}, nil
}

// Issue creates a token for the given identity. Used by tests and local
// tooling; production tokens come from the user service sharing the secret.
func (v *HMACVerifier) Issue(identity Identity) string {
	payload := []byte(fmt.Sprintf("%s|%s", identity.UserID, identity.Role))
	return base64.RawURLEncoding.EncodeToString(payload) +
		"." + base64.RawURLEncoding.EncodeToString(v.sign(payload))
}

func (v *HMACVerifier) sign(payload []byte) []byte {
	mac := hmac.New(sha256.New, v.secret)
	mac.Write(payload)
	return mac.Sum(nil)
}
