package chi

import (
	"crypto/subtle"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"github.com/kailas-cloud/metasearch/internal/logger"
)

const bearerPrefix = "Bearer "

// publicPaths never require a token.
var publicPaths = map[string]struct{}{
	"/health":  {},
	"/metrics": {},
}

// BearerAuthMiddleware guards every non-public route with a static bearer token.
// A blank token disables the check.
func BearerAuthMiddleware(token string) func(http.Handler) http.Handler {
	expected := []byte(strings.TrimSpace(token))

	return func(next http.Handler) http.Handler {
		if len(expected) == 0 {
			return next
		}

		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if _, ok := publicPaths[r.URL.Path]; ok {
				next.ServeHTTP(w, r)
				return
			}

			got, reason := bearerToken(r)
			if reason == "" && subtle.ConstantTimeCompare([]byte(got), expected) != 1 {
				reason = "invalid token"
			}
			if reason != "" {
				logger.FromContext(r.Context()).Info("request rejected",
					zap.String("path", r.URL.Path),
					zap.String("reason", reason),
				)
				w.Header().Set("WWW-Authenticate", `Bearer realm="metasearch"`)
				writeError(w, http.StatusUnauthorized, codeUnauthorized, reason)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// bearerToken extracts the token from the Authorization header. A non-empty
// reason explains why no token could be read.
func bearerToken(r *http.Request) (token, reason string) {
	auth := r.Header.Get("Authorization")
	switch {
	case auth == "":
		return "", "missing authorization header"
	case !strings.HasPrefix(auth, bearerPrefix):
		return "", "authorization header must use Bearer scheme"
	}
	return auth[len(bearerPrefix):], ""
}
