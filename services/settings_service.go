package services

import (
	"context"
	"fmt"
	"promo_store_server/database"
	"promo_store_server/lib"
	"promo_store_server/structs"
	"promo_store_server/structs/tables"
	"strings"
	"time"

	"github.com/MonkyMars/gecho"
)

type SettingsService struct {
	logger *gecho.Logger
	db     *database.DB
}

func NewSettingsService(logger *gecho.Logger, db *database.DB) *SettingsService {
	return &SettingsService{
		logger: logger,
		db:     db,
	}
}

// Get returns the stored theme or the defaults when none has been saved.
func (ss *SettingsService) Get(ctx context.Context) (*tables.SiteSettings, error) {
	settings, err := database.FindByID[tables.SiteSettings](ss.db, ctx, tables.SiteSettingsID)
	if err != nil {
		ss.logger.Error("Failed to load site settings", gecho.Field("error", err))
		return nil, fmt.Errorf("failed to load site settings: %w", err)
	}
	if settings == nil {
		defaults := tables.DefaultSiteSettings()
		return &defaults, nil
	}
	return settings, nil
}

// Update merges the provided colors over the current theme and stores it.
func (ss *SettingsService) Update(ctx context.Context, patch *structs.SettingsPatch) (*tables.SiteSettings, error) {
	if err := lib.Validate(patch); err != nil {
		return nil, err
	}

	current, err := ss.Get(ctx)
	if err != nil {
		return nil, err
	}

	merged := *current
	merged.ID = tables.SiteSettingsID
	if patch.BackgroundColor != nil {
		merged.BackgroundColor = normalizeHSL(*patch.BackgroundColor)
	}
	if patch.TextColor != nil {
		merged.TextColor = normalizeHSL(*patch.TextColor)
	}
	if patch.PrimaryColor != nil {
		merged.PrimaryColor = normalizeHSL(*patch.PrimaryColor)
	}
	merged.UpdatedAt = time.Now().UTC()

	_, err = ss.db.NewInsert().
		Model(&merged).
		On("CONFLICT (id) DO UPDATE").
		Set("background_color = EXCLUDED.background_color").
		Set("text_color = EXCLUDED.text_color").
		Set("primary_color = EXCLUDED.primary_color").
		Set("updated_at = EXCLUDED.updated_at").
		Exec(ctx)
	if err != nil {
		ss.logger.Error("Failed to save site settings", gecho.Field("error", err))
		return nil, fmt.Errorf("failed to save site settings: %w", err)
	}

	ss.logger.Info("Site settings updated")
	return &merged, nil
}

// normalizeHSL collapses runs of whitespace so "221  83%   53%" is stored as
// "221 83% 53%".
func normalizeHSL(value string) string {
	return strings.Join(strings.Fields(value), " ")
}
