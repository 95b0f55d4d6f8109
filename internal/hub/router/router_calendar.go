package router

import (
	"github.com/gin-gonic/gin"
	httpx "github.com/justinloveless/hub-page-builder-sub002/pkg/http"
	"github.com/justinloveless/hub-page-builder-sub002/pkg/http/interceptor"
)

func (rt *Router) calendarRouter(r *gin.RouterGroup, auth gin.HandlerFunc, write func(string) gin.HandlerFunc) {
	calendarGroup := r.Group("/calendar", auth)
	{
		calendarGroup.POST("/sync/:siteId", write("calendar.sync"), rt.syncCalendar)
	}
}

func (rt *Router) syncCalendar(c *gin.Context) {
	n, err := rt.calendarService.SyncSite(c.Request.Context(), c.Param("siteId"), interceptor.UserId(c))
	if err != nil {
		replyErr(c, err)
		return
	}
	httpx.WithRepJSON(c, gin.H{"success": true, "events": n})
}
