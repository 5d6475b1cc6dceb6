package auth

import (
	"errors"
	"net/http"
	"promo_store_server/api/middleware"
	"promo_store_server/handling"
	"promo_store_server/lib"
	"promo_store_server/structs"

	"github.com/MonkyMars/gecho"
)

// HandleLogout drops the admin role. The session itself and its cart remain.
func (arm *AuthRoutesManager) HandleLogout(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	session := middleware.SessionFromContext(ctx)

	if session.HasRole(structs.RoleAdmin) {
		if _, err := arm.sessionService.RevokeRole(ctx, session, structs.RoleAdmin); err != nil {
			handling.HandleError(err, "", arm.logger, w)
			return
		}
		arm.logger.Info("Admin logged out", gecho.Field("admin_id", session.AdminID))
	}

	gecho.Success(w,
		gecho.WithMessage("Logged out successfully"),
		gecho.WithData(structs.AdminStatus{IsAdmin: false}),
		gecho.Send(),
	)
}

func (arm *AuthRoutesManager) HandleStatus(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	session := middleware.SessionFromContext(ctx)

	var status structs.AdminStatus
	if session.HasRole(structs.RoleAdmin) {
		admin, err := arm.authService.SessionAdmin(ctx, session)
		switch {
		case err == nil:
			status = structs.AdminStatus{IsAdmin: true, Username: admin.Username}
		case errors.Is(err, lib.ErrUnauthorized):
			arm.logger.Warn("Session refers to a missing admin", gecho.Field("admin_id", session.AdminID))
			if _, err := arm.sessionService.RevokeRole(ctx, session, structs.RoleAdmin); err != nil {
				handling.HandleError(err, "", arm.logger, w)
				return
			}
		default:
			handling.HandleError(err, "", arm.logger, w)
			return
		}
	}

	gecho.Success(w,
		gecho.WithData(status),
		gecho.Send(),
	)
}
