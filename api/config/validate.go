package config

import (
	"errors"
	"fmt"
)

const minReleaseSecretLength = 32

// Validate checks the settings that must not fall back to defaults when the
// server runs in release mode.
func (c *Config) Validate() error {
	if c.Server.Mode != "release" {
		return nil
	}
	return c.validateSessionSecret()
}

func (c *Config) validateSessionSecret() error {
	secret := c.Auth.SessionSecret
	switch {
	case secret == "":
		return errors.New("auth.session_secret is required in release mode")
	case secret == DefaultSessionSecret:
		return errors.New("auth.session_secret still holds the placeholder value, generate one with: openssl rand -base64 32")
	case len(secret) < minReleaseSecretLength:
		return fmt.Errorf("auth.session_secret must be at least %d characters in release mode", minReleaseSecretLength)
	}
	return nil
}
