package httpx

import (
	"net/http"
	"strings"

	"github.com/aussiebroadwan/iic/pkg/jwtx"
	"github.com/aussiebroadwan/iic/pkg/slogx"
)

// AuthnMiddleware verifies the access token carried by the request and
// injects its claims into the request context. The accessToken cookie is
// tried first, then the Authorization bearer token; the first one that
// verifies wins, so a stale cookie does not mask a valid header.
func AuthnMiddleware(v jwtx.Verifier) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			log := slogx.FromContext(ctx)

			candidates := accessTokensFromRequest(r)
			if len(candidates) == 0 {
				writeBearerError(w, "missing access token")
				return
			}

			var lastErr error
			for _, raw := range candidates {
				claims, err := v.Verify(raw)
				if err != nil {
					lastErr = err
					continue
				}
				next.ServeHTTP(w, r.WithContext(ContextWithClaims(ctx, claims)))
				return
			}

			log.Warn("jwt verify failed", "err", lastErr, "candidates", len(candidates))
			writeBearerError(w, "invalid or expired access token")
		})
	}
}

func accessTokensFromRequest(r *http.Request) []string {
	var out []string
	if c, err := r.Cookie(CookieAccessToken); err == nil && c.Value != "" {
		out = append(out, c.Value)
	}

	authz := r.Header.Get("Authorization")
	if strings.HasPrefix(authz, "Bearer ") {
		if tok := strings.TrimSpace(strings.TrimPrefix(authz, "Bearer ")); tok != "" {
			out = append(out, tok)
		}
	}
	return out
}

// RFC 6750-compliant challenge header plus the usual failure envelope.
func writeBearerError(w http.ResponseWriter, desc string) {
	w.Header().Set("WWW-Authenticate", `Bearer error="invalid_token", error_description="`+desc+`"`)
	WriteMessage(w, http.StatusUnauthorized, desc)
}
