package auth

import (
	"net/http"
	"promo_store_server/api/middleware"
	"promo_store_server/handling"
	"promo_store_server/lib"
	"promo_store_server/structs"

	"github.com/MonkyMars/gecho"
)

// HandleLogin grants the admin role to the caller's session. The session id
// is rotated, so a new cookie is issued; the cart stays with it.
func (arm *AuthRoutesManager) HandleLogin(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	body, err := lib.ExtractAndValidateBody[structs.AdminLoginRequest](r)
	if err != nil {
		handling.HandleError(err, "", arm.logger, w)
		return
	}

	admin, err := arm.authService.Authenticate(ctx, body.Username, body.Password)
	if err != nil {
		handling.HandleError(err, "", arm.logger, w)
		return
	}

	session, err := arm.sessionService.GrantRole(ctx, middleware.SessionFromContext(ctx), structs.RoleAdmin, admin.ID)
	if err != nil {
		handling.HandleError(err, "", arm.logger, w)
		return
	}

	if err := arm.mw.WriteSessionCookie(w, session); err != nil {
		handling.HandleError(err, "", arm.logger, w)
		return
	}

	arm.logger.Info("Admin logged in", gecho.Field("admin_id", admin.ID))

	gecho.Success(w,
		gecho.WithMessage("Login successful"),
		gecho.WithData(structs.AdminStatus{IsAdmin: true, Username: admin.Username}),
		gecho.Send(),
	)
}
