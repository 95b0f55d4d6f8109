package interceptor

import (
	"runtime/debug"

	"github.com/gin-gonic/gin"
	httpx "github.com/justinloveless/hub-page-builder-sub002/pkg/http"
	"github.com/justinloveless/hub-page-builder-sub002/pkg/log"
)

// ExceptionInterceptor converts panics into a JSON internal error.
func ExceptionInterceptor(c *gin.Context) {
	defer func() {
		if err := recover(); err != nil {
			log.Errorf("panic: %v\n%s", err, debug.Stack())
			httpx.WithRepErr(c, httpx.InternalError)
		}
	}()
	c.Next()
}
