// Package identity resolves the identity tokens clients present into device
// ids. The default provider trusts the raw token, matching the legacy
// client-generated device-id scheme; the signed provider demands an HS256
// JWT so that real authentication can be layered in later without touching
// the matcher or ledger contracts.
package identity

import (
	"context"
	"fmt"
	"strings"

	"github.com/golang-jwt/jwt/v5"

	"github.com/climblink/backend/internal/config"
	"github.com/climblink/backend/internal/domain"
)

type Provider interface {
	// Resolve turns a presented token into a device id.
	Resolve(ctx context.Context, presented string) (string, error)
}

// FromConfig selects the provider the configuration asks for.
func FromConfig(cfg *config.IdentityConfig) (Provider, error) {
	switch cfg.Mode {
	case "", "device":
		return DeviceToken{}, nil
	case "signed":
		return &SignedToken{secret: []byte(cfg.Secret)}, nil
	default:
		return nil, fmt.Errorf("unknown identity mode %q", cfg.Mode)
	}
}

// DeviceToken is the pass-through provider: whatever opaque string the
// device presents is its identity.
type DeviceToken struct{}

func (DeviceToken) Resolve(_ context.Context, presented string) (string, error) {
	presented = strings.TrimSpace(presented)
	if presented == "" {
		return "", domain.ErrMissingDeviceID
	}
	return presented, nil
}

// SignedToken verifies an HS256 JWT and extracts its device_id claim.
type SignedToken struct {
	secret []byte
}

func NewSignedToken(secret []byte) *SignedToken {
	return &SignedToken{secret: secret}
}

func (p *SignedToken) Resolve(_ context.Context, presented string) (string, error) {
	presented = strings.TrimSpace(strings.TrimPrefix(presented, "Bearer "))
	if presented == "" {
		return "", domain.ErrMissingDeviceID
	}

	claims := jwt.MapClaims{}
	tok, err := jwt.ParseWithClaims(presented, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return p.secret, nil
	})
	if err != nil || !tok.Valid {
		return "", domain.ErrInvalidIdentity
	}

	deviceID, _ := claims["device_id"].(string)
	if deviceID == "" {
		return "", domain.ErrInvalidIdentity
	}
	return deviceID, nil
}

// Sign issues a token for a device id. The server itself never calls this in
// the request path; it exists for provisioning and tests.
func (p *SignedToken) Sign(deviceID string) (string, error) {
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"device_id": deviceID,
	})
	return tok.SignedString(p.secret)
}
