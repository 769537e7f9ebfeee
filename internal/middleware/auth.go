// Package middleware содержит HTTP middleware сервиса AM Store.
package middleware

import (
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"net/http"
	"strconv"
	"strings"
	"time"
)

const (
	adminCookieName = "admin_token"
	adminCookieTTL  = 24 * time.Hour
)

// AdminAuth выполняет проверку доступа администратора по подписанному cookie.
// Cookie выдаётся после успешного ввода парольной фразы магазина.
type AdminAuth struct {
	secretKey []byte
}

// NewAdminAuth создаёт новый экземпляр AdminAuth с указанным секретным ключом.
func NewAdminAuth(secret string) *AdminAuth {
	key := []byte(secret)
	if len(key) == 0 {
		randomKey := make([]byte, 32)
		if _, err := rand.Read(randomKey); err == nil {
			key = randomKey
		} else {
			key = []byte("default-secret-key")
		}
	}

	return &AdminAuth{
		secretKey: key,
	}
}

// Middleware пропускает запрос дальше только при действительном cookie администратора.
func (a *AdminAuth) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		cookie, err := r.Cookie(adminCookieName)
		if err != nil {
			http.Error(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
			return
		}

		if !a.parseCookie(cookie.Value) {
			http.Error(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// SetAuthCookie устанавливает cookie администратора с подписанной меткой выдачи.
func (a *AdminAuth) SetAuthCookie(w http.ResponseWriter) {
	value := a.signIssuedAt(time.Now())

	cookie := &http.Cookie{
		Name:     adminCookieName,
		Value:    value,
		Path:     "/",
		Expires:  time.Now().Add(adminCookieTTL),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}

	http.SetCookie(w, cookie)
}

func (a *AdminAuth) signIssuedAt(issuedAt time.Time) string {
	tsStr := strconv.FormatInt(issuedAt.Unix(), 10)
	mac := hmac.New(sha256.New, a.secretKey)
	mac.Write([]byte(tsStr))
	signature := mac.Sum(nil)
	return tsStr + "." + hex.EncodeToString(signature)
}

func (a *AdminAuth) parseCookie(cookieValue string) bool {
	parts := strings.Split(cookieValue, ".")
	if len(parts) != 2 {
		return false
	}

	tsStr := parts[0]
	signature := parts[1]

	ts, err := strconv.ParseInt(tsStr, 10, 64)
	if err != nil {
		return false
	}

	issuedAt := time.Unix(ts, 0)
	if time.Since(issuedAt) > adminCookieTTL {
		return false
	}

	mac := hmac.New(sha256.New, a.secretKey)
	mac.Write([]byte(tsStr))
	expected := hex.EncodeToString(mac.Sum(nil))

	return hmac.Equal([]byte(signature), []byte(expected))
}
