package settings

import (
	"net/http"
	"promo_store_server/handling"
	"promo_store_server/services"

	"github.com/MonkyMars/gecho"
	"github.com/go-chi/chi/v5"
)

type SettingsRoutesManager struct {
	logger          *gecho.Logger
	settingsService *services.SettingsService
}

func NewSettingsRoutesManager(logger *gecho.Logger, settingsService *services.SettingsService) *SettingsRoutesManager {
	return &SettingsRoutesManager{
		logger:          logger,
		settingsService: settingsService,
	}
}

func (srm *SettingsRoutesManager) RegisterRoutes(r chi.Router) {
	r.Get("/site-settings", srm.GetSettings)
}

func (srm *SettingsRoutesManager) GetSettings(w http.ResponseWriter, r *http.Request) {
	settings, err := srm.settingsService.Get(r.Context())
	if err != nil {
		handling.HandleError(err, "", srm.logger, w)
		return
	}

	gecho.Success(w,
		gecho.WithData(settings),
		gecho.Send(),
	)
}
