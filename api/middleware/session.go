package middleware

import (
	"context"
	"errors"
	"net/http"
	"promo_store_server/lib"
	"promo_store_server/structs"

	"github.com/MonkyMars/gecho"
)

type contextKey string

const SessionContextKey contextKey = "session"

// SessionMiddleware puts the caller's session in the request context. A
// valid cookie resolves to its stored session. Otherwise safe requests see
// an empty, unsaved session and unsafe requests get a new one plus a cookie.
func (mw *Middleware) SessionMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		session, ok, err := mw.loadSession(ctx, r)
		if err != nil {
			mw.logger.Error("Failed to resolve session", gecho.Field("error", err))
			gecho.InternalServerError(w, gecho.WithMessage("Internal server error"), gecho.Send())
			return
		}

		if !ok && isSafeMethod(r.Method) && mw.hasSessionCookie(r) {
			lib.ClearCookie(mw.cfg.Session.CookieName, w)
		}

		if !ok && !isSafeMethod(r.Method) {
			session, err = mw.sessions.Create(ctx)
			if err == nil {
				err = mw.WriteSessionCookie(w, session)
			}
			if err != nil {
				mw.logger.Error("Failed to start session", gecho.Field("error", err))
				gecho.InternalServerError(w, gecho.WithMessage("Internal server error"), gecho.Send())
				return
			}
		}

		next.ServeHTTP(w, r.WithContext(WithSession(ctx, session)))
	})
}

func (mw *Middleware) loadSession(ctx context.Context, r *http.Request) (structs.Session, bool, error) {
	token, err := lib.GetCookieValue(mw.cfg.Session.CookieName, r)
	if err != nil || token == "" {
		return structs.Session{}, false, nil
	}

	session, err := mw.sessions.Load(ctx, token)
	switch {
	case err == nil:
		return session, true, nil
	case errors.Is(err, lib.ErrInvalidToken), errors.Is(err, lib.ErrExpiredToken):
		mw.logger.Debug("Discarding stale session cookie", gecho.Field("reason", err))
		return structs.Session{}, false, nil
	default:
		return structs.Session{}, false, err
	}
}

func (mw *Middleware) hasSessionCookie(r *http.Request) bool {
	_, err := r.Cookie(mw.cfg.Session.CookieName)
	return err == nil
}

// WriteSessionCookie (re)issues the cookie for session.
func (mw *Middleware) WriteSessionCookie(w http.ResponseWriter, session structs.Session) error {
	token, err := mw.sessions.IssueToken(session)
	if err != nil {
		return err
	}
	lib.SetCookie(mw.cfg.Session.CookieName, token, session.ExpiresAt, w)
	return nil
}

func WithSession(ctx context.Context, session structs.Session) context.Context {
	return context.WithValue(ctx, SessionContextKey, session)
}

// SessionFromContext returns the zero Session when none is present.
func SessionFromContext(ctx context.Context) structs.Session {
	session, _ := ctx.Value(SessionContextKey).(structs.Session)
	return session
}

func isSafeMethod(method string) bool {
	switch method {
	case http.MethodGet, http.MethodHead, http.MethodOptions:
		return true
	}
	return false
}
