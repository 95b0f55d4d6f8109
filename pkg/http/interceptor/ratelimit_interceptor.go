package interceptor

import (
	"github.com/gin-gonic/gin"
	httpx "github.com/justinloveless/hub-page-builder-sub002/pkg/http"
	"github.com/justinloveless/hub-page-builder-sub002/pkg/log"
	"github.com/justinloveless/hub-page-builder-sub002/pkg/ratelimit"
)

// RateLimitInterceptor keys admission on "action:userId". It runs after the
// authorization interceptor, so an empty user id means an unauthenticated
// route and the check is skipped.
func RateLimitInterceptor(limiter ratelimit.Limiter, action string) gin.HandlerFunc {
	return func(c *gin.Context) {
		userId := UserId(c)
		if userId == "" {
			c.Next()
			return
		}

		ok, err := limiter.Allow(c.Request.Context(), action+":"+userId)
		if err != nil {
			// a broken counter store must not take the API down
			log.Errorw("rate limit check failed", "action", action, "error", err)
			c.Next()
			return
		}
		if !ok {
			httpx.WithRepErr(c, httpx.RateLimited)
			return
		}
		c.Next()
	}
}
