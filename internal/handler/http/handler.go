package http

import (
	"github.com/MKhiriev/go-auth-portal/internal/config"
	"github.com/MKhiriev/go-auth-portal/internal/logger"
	"github.com/MKhiriev/go-auth-portal/internal/service"
)

type Handler struct {
	services *service.Services
	cfg      config.Auth
	pages    *pages

	logger *logger.Logger
}

func NewHandler(services *service.Services, cfg config.Auth, logger *logger.Logger) *Handler {
	logger.Info().Msg("http handler created")
	return &Handler{
		services: services,
		cfg:      cfg,
		pages:    defaultPages,
		logger:   logger,
	}
}
