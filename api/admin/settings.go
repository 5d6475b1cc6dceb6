package admin

import (
	"net/http"
	"promo_store_server/handling"
	"promo_store_server/lib"
	"promo_store_server/structs"

	"github.com/MonkyMars/gecho"
)

func (ar *AdminRoutesManager) UpdateSettings(w http.ResponseWriter, r *http.Request) {
	body, err := lib.ExtractAndValidateBody[structs.SettingsPatch](r)
	if err != nil {
		handling.HandleError(err, "", ar.logger, w)
		return
	}

	settings, err := ar.settingsService.Update(r.Context(), body)
	if err != nil {
		handling.HandleError(err, "", ar.logger, w)
		return
	}

	gecho.Success(w,
		gecho.WithMessage("Site settings updated"),
		gecho.WithData(settings),
		gecho.Send(),
	)
}
