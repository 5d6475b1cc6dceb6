package auth

import (
	"net/http"
	"promo_store_server/lib"
	"time"

	"github.com/MonkyMars/gecho"
)

const csrfTokenTTL = 24 * time.Hour

// HandleCSRF issues a token for the double-submit check, as a readable
// cookie and in the body.
func (arm *AuthRoutesManager) HandleCSRF(w http.ResponseWriter, r *http.Request) {
	token, err := lib.RandomToken(32)
	if err != nil {
		arm.logger.Error("Failed to generate CSRF token", gecho.Field("error", err))
		gecho.InternalServerError(w,
			gecho.WithMessage("Failed to generate CSRF token"),
			gecho.Send(),
		)
		return
	}

	lib.SetCSRFCookie(token, time.Now().Add(csrfTokenTTL), w)

	arm.logger.Debug("CSRF token issued", gecho.Field("origin", r.Header.Get("Origin")))

	gecho.Success(w,
		gecho.WithData(map[string]string{
			"csrfToken": token,
		}),
		gecho.Send(),
	)
}
