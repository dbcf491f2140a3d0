package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

const testSecret = "test-secret"

func signToken(t *testing.T, method jwt.SigningMethod, claims jwt.MapClaims) string {
	t.Helper()
	tok, err := jwt.NewWithClaims(method, claims).SignedString([]byte(testSecret))
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	return tok
}

func newAuthRouter() *gin.Engine {
	r := gin.New()
	r.GET("/me", JWTAuth(testSecret), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"user_id": UserID(c)})
	})
	r.GET("/admin", JWTAuth(testSecret), RequireAdmin(), func(c *gin.Context) {
		c.Status(http.StatusNoContent)
	})
	return r
}

func TestJWTAuth(t *testing.T) {
	gin.SetMode(gin.TestMode)
	exp := time.Now().Add(time.Hour).Unix()

	tests := []struct {
		name   string
		path   string
		header string
		want   int
	}{
		{name: "missing header", path: "/me", header: "", want: http.StatusUnauthorized},
		{name: "garbage token", path: "/me", header: "Bearer nope", want: http.StatusUnauthorized},
		{
			name:   "expired token",
			path:   "/me",
			header: "Bearer " + signToken(t, jwt.SigningMethodHS256, jwt.MapClaims{"sub": "u1", "exp": time.Now().Add(-time.Hour).Unix()}),
			want:   http.StatusUnauthorized,
		},
		{
			name:   "token without subject",
			path:   "/me",
			header: "Bearer " + signToken(t, jwt.SigningMethodHS256, jwt.MapClaims{"exp": exp}),
			want:   http.StatusUnauthorized,
		},
		{
			name:   "valid HS512 token",
			path:   "/me",
			header: "Bearer " + signToken(t, jwt.SigningMethodHS512, jwt.MapClaims{"sub": "u1", "exp": exp}),
			want:   http.StatusOK,
		},
		{
			name:   "non admin on admin route",
			path:   "/admin",
			header: "Bearer " + signToken(t, jwt.SigningMethodHS256, jwt.MapClaims{"sub": "u1", "exp": exp, "roles": []string{"USER"}}),
			want:   http.StatusForbidden,
		},
		{
			name:   "admin on admin route",
			path:   "/admin",
			header: "Bearer " + signToken(t, jwt.SigningMethodHS256, jwt.MapClaims{"sub": "u1", "exp": exp, "roles": []string{"USER", "ADMIN"}}),
			want:   http.StatusNoContent,
		},
	}

	r := newAuthRouter()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, tt.path, nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			if w.Code != tt.want {
				t.Fatalf("expected %d, got %d body=%s", tt.want, w.Code, w.Body.String())
			}
		})
	}
}

func TestJWTAuthWithoutSecretRejects(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/me", JWTAuth(""), func(c *gin.Context) { c.Status(http.StatusOK) })

	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set("Authorization", "Bearer "+signToken(t, jwt.SigningMethodHS256, jwt.MapClaims{"sub": "u1"}))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", w.Code)
	}
}

func TestHasRole(t *testing.T) {
	if !hasRole("admin", RoleAdmin) {
		t.Fatalf("string role should match case-insensitively")
	}
	if !hasRole([]interface{}{"USER", "ADMIN"}, RoleAdmin) {
		t.Fatalf("list role should match")
	}
	if hasRole(nil, RoleAdmin) || hasRole(42, RoleAdmin) {
		t.Fatalf("unexpected match")
	}
}
