package service

import (
	"fmt"

	"github.com/MKhiriev/go-auth-portal/internal/config"
	"github.com/MKhiriev/go-auth-portal/internal/crypto"
	"github.com/MKhiriev/go-auth-portal/internal/logger"
	"github.com/MKhiriev/go-auth-portal/internal/store"
	"github.com/MKhiriev/go-auth-portal/internal/validators"
	"github.com/MKhiriev/go-auth-portal/models"
)

type Services struct {
	AuthService    AuthService
	SessionService SessionService
	CSRFService    CSRFService
	AppInfoService AppInfoService
}

func NewServices(storages *store.Storages, cfg *config.StructuredConfig, buildInfo models.AppBuildInfo, logger *logger.Logger) (*Services, error) {
	hasher, err := crypto.NewPasswordHasher(cfg.Auth)
	if err != nil {
		return nil, fmt.Errorf("error creating password hasher: %w", err)
	}

	passwordValidator, err := validators.NewPasswordValidator(cfg.Auth.PasswordPolicy)
	if err != nil {
		return nil, fmt.Errorf("error creating password validator: %w", err)
	}

	sessionService := NewSessionService(storages.SessionRepository, cfg.Auth, logger)

	authService, err := NewAuthService(storages.UserRepository, sessionService, hasher, passwordValidator, logger)
	if err != nil {
		return nil, err
	}

	return &Services{
		AuthService:    authService,
		SessionService: sessionService,
		CSRFService:    NewCSRFService(cfg.Auth),
		AppInfoService: NewAppInfoService(cfg.App, buildInfo, logger),
	}, nil
}
