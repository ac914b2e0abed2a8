package service

import (
	"encoding/hex"

	"github.com/MKhiriev/go-auth-portal/internal/config"
	"github.com/MKhiriev/go-auth-portal/internal/crypto"
	"github.com/MKhiriev/go-auth-portal/internal/utils"
)

type csrfService struct {
	key string
}

func NewCSRFService(cfg config.Auth) CSRFService {
	return &csrfService{key: cfg.CSRFKey}
}

// NewSecret returns a fresh hex secret for the CSRF cookie.
func (s *csrfService) NewSecret() (string, error) {
	return crypto.NewHexToken(crypto.TokenBytes)
}

// Token derives the form token of secret: HMAC-SHA256 under the CSRF key.
func (s *csrfService) Token(secret string) string {
	return utils.HashString(secret, s.key)
}

// ValidSecret reports whether secret has the shape NewSecret produces.
func (s *csrfService) ValidSecret(secret string) bool {
	if len(secret) != 2*crypto.TokenBytes {
		return false
	}
	_, err := hex.DecodeString(secret)
	return err == nil
}

// Verify reports whether token was derived from secret.
func (s *csrfService) Verify(secret, token string) bool {
	if !s.ValidSecret(secret) || token == "" {
		return false
	}
	return utils.EqualHash(s.Token(secret), token)
}
