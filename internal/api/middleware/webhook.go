package middleware

import (
	"crypto/subtle"
	"net/http"

	"github.com/Phronesis2025/wcs-basketball-go/internal/api/apierr"
)

// webhookSecretHeader is the header the payment processor signs deliveries with
const webhookSecretHeader = "X-Webhook-Secret"

// WebhookSecret creates middleware that gates the payment webhook behind a
// shared secret. An empty configured secret disables the check (local
// development).
func WebhookSecret(secret string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if secret != "" {
				provided := r.Header.Get(webhookSecretHeader)
				if subtle.ConstantTimeCompare([]byte(provided), []byte(secret)) != 1 {
					apierr.WriteError(w, apierr.NewUnauthorizedError())
					return
				}
			}
			next.ServeHTTP(w, r)
		})
	}
}
