package settings

import (
	"context"
	"log"

	"kirana-backend/internal/database"
	"kirana-backend/internal/models"
)

// Service reads and writes per-user application settings. A user without a
// settings document gets the defaults written on first read, so later partial
// updates always have a full document to merge into.
type Service struct {
	store database.Store
}

func NewService(store database.Store) *Service {
	return &Service{store: store}
}

// Get loads the user's settings, creating the default document when none
// exists yet.
func (s *Service) Get(ctx context.Context, userID string) (models.AppSettings, error) {
	var settings models.AppSettings
	err := s.store.Get(ctx, database.Settings, userID, &settings)
	if err == nil {
		return settings, nil
	}
	if !database.IsNotFound(err) {
		return models.AppSettings{}, err
	}

	settings = models.DefaultAppSettings(userID)
	if err := s.store.Set(ctx, database.Settings, userID, settings); err != nil {
		return models.AppSettings{}, err
	}
	return settings, nil
}

// Update replaces the user's settings document wholesale. Handlers merge
// request fields into the current document before calling this.
func (s *Service) Update(ctx context.Context, settings models.AppSettings) error {
	return s.store.Set(ctx, database.Settings, settings.UserID, settings)
}

// DefaultGSTFor resolves the GST rate a new cart should start with. Lookup
// failures fall back to the built-in default rather than blocking a sale.
func (s *Service) DefaultGSTFor(ctx context.Context, userID string) float64 {
	settings, err := s.Get(ctx, userID)
	if err != nil {
		log.Println("settings lookup failed, using default GST:", err)
		return models.DefaultAppSettings(userID).DefaultGST
	}
	return settings.DefaultGST
}
