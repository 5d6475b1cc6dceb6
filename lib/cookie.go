package lib

import (
	"net/http"
	"promo_store_server/config"
	"time"
)

const CSRFCookieName = "csrf"

// SetCookie sets a secure, HttpOnly cookie for session usage
func SetCookie(key, val string, expiry time.Time, w http.ResponseWriter) {
	http.SetCookie(w, newCookie(key, val, expiry, true))
}

func GetCookieValue(key string, r *http.Request) (string, error) {
	cookie, err := r.Cookie(key)
	if err != nil {
		return "", err
	}
	return cookie.Value, nil
}

// ClearCookie removes the cookie from the browser
func ClearCookie(key string, w http.ResponseWriter) {
	cookie := newCookie(key, "", time.Now().Add(-time.Hour), true)
	cookie.MaxAge = -1
	http.SetCookie(w, cookie)
}

// SetCSRFCookie sets a CSRF token cookie that must be readable by JavaScript
func SetCSRFCookie(val string, expiry time.Time, w http.ResponseWriter) {
	cookie := newCookie(CSRFCookieName, val, expiry, false)
	cookie.MaxAge = int(time.Until(expiry).Seconds())
	http.SetCookie(w, cookie)
}

func newCookie(key, val string, expiry time.Time, httpOnly bool) *http.Cookie {
	sameSite := http.SameSiteLaxMode
	secure := false
	domain := ""

	if config.IsProduction() {
		// Required for cross-subdomain cookies (www <-> api)
		sameSite = http.SameSiteNoneMode
		secure = true
		domain = config.GetConfig().Server.CookieDomain
	}

	return &http.Cookie{
		Name:     key,
		Value:    val,
		Expires:  expiry,
		Path:     "/",
		Domain:   domain,
		Secure:   secure,
		SameSite: sameSite,
		HttpOnly: httpOnly,
	}
}
