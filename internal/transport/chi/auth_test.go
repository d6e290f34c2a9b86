package chi

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func TestAuthMiddleware_BlankToken_PassThrough(t *testing.T) {
	for _, token := range []string{"", "   "} {
		handler := BearerAuthMiddleware(token)(okHandler())

		rr := httptest.NewRecorder()
		handler.ServeHTTP(rr, httptest.NewRequest("POST", "/mcp", http.NoBody))

		if rr.Code != http.StatusOK {
			t.Errorf("token %q: got %d, want %d", token, rr.Code, http.StatusOK)
		}
	}
}

func TestAuthMiddleware_Rejections(t *testing.T) {
	tests := []struct {
		name   string
		header string
		want   string
	}{
		{"missing header", "", "missing authorization header"},
		{"basic scheme", "Basic dXNlcjpwYXNz", "authorization header must use Bearer scheme"},
		{"lowercase scheme", "bearer secret", "authorization header must use Bearer scheme"},
		{"wrong token", "Bearer wrong-token", "invalid token"},
		{"empty token", "Bearer ", "invalid token"},
		{"token prefix", "Bearer secre", "invalid token"},
	}

	handler := BearerAuthMiddleware("secret")(okHandler())
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest("POST", "/mcp", http.NoBody)
			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			}
			rr := httptest.NewRecorder()
			handler.ServeHTTP(rr, req)

			if rr.Code != http.StatusUnauthorized {
				t.Fatalf("got %d, want %d", rr.Code, http.StatusUnauthorized)
			}
			if rr.Header().Get("WWW-Authenticate") == "" {
				t.Error("expected WWW-Authenticate header")
			}

			var errResp errorResponse
			if err := json.NewDecoder(rr.Body).Decode(&errResp); err != nil {
				t.Fatalf("decode error response: %v", err)
			}
			if errResp.Code != codeUnauthorized {
				t.Errorf("error code: got %s, want %s", errResp.Code, codeUnauthorized)
			}
			if errResp.Message != tc.want {
				t.Errorf("error message: got %q, want %q", errResp.Message, tc.want)
			}
		})
	}
}

func TestAuthMiddleware_ValidToken_200(t *testing.T) {
	handler := BearerAuthMiddleware(" secret ")(okHandler())

	for _, path := range []string{"/mcp", "/mcp/session"} {
		req := httptest.NewRequest("POST", path, http.NoBody)
		req.Header.Set("Authorization", "Bearer secret")
		rr := httptest.NewRecorder()
		handler.ServeHTTP(rr, req)

		if rr.Code != http.StatusOK {
			t.Errorf("%s: got %d, want %d", path, rr.Code, http.StatusOK)
		}
	}
}

func TestAuthMiddleware_PublicPaths(t *testing.T) {
	handler := BearerAuthMiddleware("secret")(okHandler())

	for _, path := range []string{"/health", "/metrics"} {
		rr := httptest.NewRecorder()
		handler.ServeHTTP(rr, httptest.NewRequest("GET", path, http.NoBody))

		if rr.Code != http.StatusOK {
			t.Errorf("public path %s: got %d, want %d", path, rr.Code, http.StatusOK)
		}
	}
}
