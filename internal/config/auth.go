package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/simp-lee/jwt"
)

// SetupJWT creates the token service from the provided AuthConfig and
// returns it together with the parsed token expiry. The caller is
// responsible for calling Close() on the returned service.
func SetupJWT(cfg *AuthConfig) (jwt.Service, time.Duration, error) {
	if cfg == nil {
		return nil, 0, errors.New("auth config is nil")
	}

	expiry, err := time.ParseDuration(cfg.TokenExpiry)
	if err != nil {
		return nil, 0, fmt.Errorf("invalid token expiry %q: %w", cfg.TokenExpiry, err)
	}

	svc, err := jwt.New(cfg.JWTSecret)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to create jwt service: %w", err)
	}

	return svc, expiry, nil
}
