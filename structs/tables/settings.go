package tables

import (
	"time"

	"github.com/uptrace/bun"
)

const SiteSettingsID = 1

const (
	DefaultBackgroundColor = "0 0% 100%"
	DefaultTextColor       = "0 0% 0%"
	DefaultPrimaryColor    = "221 83% 53%"
)

// SiteSettings is a single row of theme colors stored as HSL triples.
type SiteSettings struct {
	bun.BaseModel `bun:"table:site_settings,alias:ss"`

	ID              int64     `bun:"id,pk" json:"id"`
	BackgroundColor string    `bun:"background_color,notnull" json:"backgroundColor"`
	TextColor       string    `bun:"text_color,notnull" json:"textColor"`
	PrimaryColor    string    `bun:"primary_color,notnull" json:"primaryColor"`
	UpdatedAt       time.Time `bun:"updated_at,notnull,default:current_timestamp" json:"updatedAt"`
}

func DefaultSiteSettings() SiteSettings {
	return SiteSettings{
		ID:              SiteSettingsID,
		BackgroundColor: DefaultBackgroundColor,
		TextColor:       DefaultTextColor,
		PrimaryColor:    DefaultPrimaryColor,
	}
}
