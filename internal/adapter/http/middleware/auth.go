package middleware

import (
	"fmt"
	"log"
	"net/http"
	"strings"

	"car_marketplace/pkg"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

const (
	ContextUserID  = "user_id"
	ContextIsAdmin = "is_admin"

	RoleAdmin = "ADMIN"
)

// JWTAuth validates an HMAC-signed bearer token and stores the subject as
// the authenticated user id. Roles come from the "roles" claim, which may be
// a string or a list.
func JWTAuth(secret string) gin.HandlerFunc {
	if secret == "" {
		log.Printf("[auth][middleware] JWT_SECRET empty; every authenticated route will answer 401")
	}

	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if !strings.HasPrefix(authHeader, "Bearer ") || secret == "" {
			abortUnauthenticated(c)
			return
		}
		tokenStr := strings.TrimSpace(strings.TrimPrefix(authHeader, "Bearer "))

		token, err := jwt.Parse(tokenStr, func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
			}
			return []byte(secret), nil
		})
		if err != nil || !token.Valid {
			log.Printf("[auth][middleware] invalid token path=%s err=%v", c.FullPath(), err)
			abortUnauthenticated(c)
			return
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			abortUnauthenticated(c)
			return
		}
		sub, _ := claims.GetSubject()
		if sub == "" {
			abortUnauthenticated(c)
			return
		}

		c.Set(ContextUserID, sub)
		c.Set(ContextIsAdmin, hasRole(claims["roles"], RoleAdmin))
		c.Next()
	}
}

// RequireAdmin must run after JWTAuth.
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !c.GetBool(ContextIsAdmin) {
			appErr := pkg.NewDomainErrorSimple("FORBIDDEN", "Admin access only", http.StatusForbidden)
			c.AbortWithStatusJSON(appErr.HTTPStatus, appErr.ToHTTPError())
			return
		}
		c.Next()
	}
}

// UserID returns the authenticated user id, or "" when the request was not
// authenticated.
func UserID(c *gin.Context) string {
	return c.GetString(ContextUserID)
}

func abortUnauthenticated(c *gin.Context) {
	appErr := pkg.NewDomainErrorSimple("UNAUTHENTICATED", "Authentication required", http.StatusUnauthorized)
	c.AbortWithStatusJSON(appErr.HTTPStatus, appErr.ToHTTPError())
}

func hasRole(raw interface{}, role string) bool {
	switch roles := raw.(type) {
	case []interface{}:
		for _, r := range roles {
			if s, ok := r.(string); ok && strings.EqualFold(s, role) {
				return true
			}
		}
	case []string:
		for _, s := range roles {
			if strings.EqualFold(s, role) {
				return true
			}
		}
	case string:
		return strings.EqualFold(roles, role)
	}
	return false
}
