package middleware

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"net/http"

	"github.com/a-h/templ"
)

// nonceKey is the context key for storing the generated nonce.
// A separate key from templ's internal one lets SecurityHeaders read the
// nonce back when building the CSP header.
type nonceKey struct{}

// NonceMiddleware generates a random per-request nonce used both by the page
// templates (via templ.GetNonce) and by SecurityHeaders for the CSP header.
func NonceMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		nonce, err := generateNonce()
		if err != nil {
			// Continue without nonce; CSP falls back to blocking inline scripts
			next.ServeHTTP(w, r)
			return
		}

		ctx := templ.WithNonce(r.Context(), nonce)
		ctx = context.WithValue(ctx, nonceKey{}, nonce)

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// GetNonce retrieves the nonce from context for use in middleware
// (templates should use templ.GetNonce() instead)
func GetNonce(ctx context.Context) string {
	nonce, _ := ctx.Value(nonceKey{}).(string)
	return nonce
}

// generateNonce creates a cryptographically secure random nonce
func generateNonce() (string, error) {
	// 16 bytes = 128 bits of entropy (sufficient for CSP nonce)
	b := make([]byte, 16)
	_, err := rand.Read(b)
	if err != nil {
		return "", err
	}
	return base64.StdEncoding.EncodeToString(b), nil
}
