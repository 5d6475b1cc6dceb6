package middleware

import (
	"errors"
	"net/http"
	"promo_store_server/handling"
	"promo_store_server/lib"
	"promo_store_server/structs"

	"github.com/MonkyMars/gecho"
)

// RequireRole lets the request through only when the session holds role.
// Every rejection gets the same response, whatever the route. Admin sessions
// must still point at an existing account; a stale one loses the role.
func (mw *Middleware) RequireRole(role structs.Role) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			session := SessionFromContext(ctx)

			reject := func(reason string) {
				mw.logger.Warn("Rejected request without required role",
					gecho.Field("role", role),
					gecho.Field("path", r.URL.Path),
					gecho.Field("reason", reason),
				)
				gecho.Unauthorized(w, gecho.WithMessage(handling.MsgUnauthorized), gecho.Send())
			}

			if !session.HasRole(role) {
				reject("missing role")
				return
			}

			if role == structs.RoleAdmin {
				if _, err := mw.admins.SessionAdmin(ctx, session); err != nil {
					if !errors.Is(err, lib.ErrUnauthorized) {
						handling.HandleError(err, "", mw.logger, w)
						return
					}
					if _, err := mw.sessions.RevokeRole(ctx, session, role); err != nil {
						mw.logger.Error("Failed to revoke stale admin role", gecho.Field("error", err))
					}
					reject("admin account removed")
					return
				}
			}

			next.ServeHTTP(w, r)
		})
	}
}
