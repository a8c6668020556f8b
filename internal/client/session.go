// ABOUTME: Best-effort inspection of the stored bearer token for display
// ABOUTME: Decodes JWT claims without verification; request logic never relies on it

package client

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// SessionInfo is what can be read from a token without the signing key
type SessionInfo struct {
	Subject   string    `json:"subject,omitempty" yaml:"subject,omitempty"`
	ExpiresAt time.Time `json:"expires_at,omitempty" yaml:"expires_at,omitempty"`
}

// Expired reports whether the token's exp claim is in the past
func (s SessionInfo) Expired(now time.Time) bool {
	return !s.ExpiresAt.IsZero() && now.After(s.ExpiresAt)
}

// InspectToken reads the sub and exp claims of a JWT. ok is false when the
// token is not a parseable JWT; the token stays valid for requests either way.
func InspectToken(token string) (SessionInfo, bool) {
	if token == "" {
		return SessionInfo{}, false
	}

	claims := jwt.RegisteredClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, &claims); err != nil {
		return SessionInfo{}, false
	}

	info := SessionInfo{Subject: claims.Subject}
	if claims.ExpiresAt != nil {
		info.ExpiresAt = claims.ExpiresAt.Time
	}
	return info, true
}
