package handlers

import (
	"log/slog"

	"github.com/BoulehmiHoussem/Logient/internal/config"
	"github.com/BoulehmiHoussem/Logient/internal/services"

	"gorm.io/gorm"
)

type Handler struct {
	cfg         config.Config
	logger      *slog.Logger
	db          *gorm.DB
	linkService *services.LinkService
	qrService   *services.QRService
}

func NewHandler(
	cfg config.Config,
	logger *slog.Logger,
	db *gorm.DB,
	linkService *services.LinkService,
	qrService *services.QRService,
) *Handler {
	return &Handler{
		cfg:         cfg,
		logger:      logger,
		db:          db,
		linkService: linkService,
		qrService:   qrService,
	}
}
