package handler

import (
	"github.com/casalista/internal/config"
	"github.com/casalista/internal/service"
	"gorm.io/gorm"
)

// API bundles shared dependencies for HTTP handlers.
type API struct {
	db          *gorm.DB
	properties  *service.PropertyService
	storefronts *service.StorefrontService
	contacts    *service.ContactService
	tracking    *service.TrackingService
	stats       *service.StatsService
	limiter     *service.RateLimiter
	uploadDir   string
	uploadURL   string
}

// NewAPI constructs a handler set with shared services.
func NewAPI(gdb *gorm.DB, cfg config.AppConfig) *API {
	fingerprinter := service.NewFingerprinter(cfg.FingerprintSecret)

	return &API{
		db:          gdb,
		properties:  service.NewPropertyService(gdb),
		storefronts: service.NewStorefrontService(gdb),
		contacts:    service.NewContactService(gdb),
		tracking:    service.NewTrackingService(gdb, fingerprinter),
		stats:       service.NewStatsService(gdb),
		limiter:     service.NewRateLimiter(service.DefaultLimitPolicies()),
		uploadDir:   cfg.UploadDir,
		uploadURL:   cfg.UploadURLPath,
	}
}

// Tracking exposes the tracking service so the router can schedule cache sweeps.
func (a *API) Tracking() *service.TrackingService {
	return a.tracking
}

// Limiter exposes the rate limiter so the router can schedule counter sweeps.
func (a *API) Limiter() *service.RateLimiter {
	return a.limiter
}
