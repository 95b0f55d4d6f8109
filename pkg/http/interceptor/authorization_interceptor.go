package interceptor

import (
	"errors"
	"strings"

	"github.com/gin-gonic/gin"
	goJwt "github.com/golang-jwt/jwt/v5"
	httpx "github.com/justinloveless/hub-page-builder-sub002/pkg/http"
	"github.com/justinloveless/hub-page-builder-sub002/pkg/http/jwt"
	"github.com/justinloveless/hub-page-builder-sub002/pkg/log"
)

// UserIdKey is the gin context key carrying the authenticated user id.
const UserIdKey = "userId"

// AuthorizationInterceptor validates the bearer token and stores the user id.
func AuthorizationInterceptor(secretKey string) gin.HandlerFunc {
	return func(c *gin.Context) {
		aToken := c.Request.Header.Get("Authorization")
		if aToken == "" {
			httpx.WithRepErr(c, httpx.Unauthorized)
			return
		}

		parts := strings.SplitN(aToken, " ", 2)
		if !(len(parts) == 2 && parts[0] == "Bearer") {
			httpx.WithRepErr(c, httpx.Unauthorized)
			return
		}

		claims, err := jwt.ParseToken(parts[1], secretKey)
		if err != nil {
			if errors.Is(err, goJwt.ErrTokenExpired) {
				httpx.WithRepErr(c, httpx.TokenExpired)
				return
			}
			log.Errorf("parse token failed: %v", err)
			httpx.WithRepErr(c, httpx.Unauthorized)
			return
		}

		c.Set(UserIdKey, claims.UserId)
		c.Next()
	}
}

// UserId returns the authenticated user id from the request context.
func UserId(c *gin.Context) string {
	return c.GetString(UserIdKey)
}
