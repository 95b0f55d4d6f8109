package router

import (
	"github.com/gin-gonic/gin"
	"github.com/justinloveless/hub-page-builder-sub002/internal/hub/model"
	httpx "github.com/justinloveless/hub-page-builder-sub002/pkg/http"
	"github.com/justinloveless/hub-page-builder-sub002/pkg/http/interceptor"
)

func (rt *Router) templateRouter(r *gin.RouterGroup, auth gin.HandlerFunc, read, write func(string) gin.HandlerFunc) {
	templateGroup := r.Group("/template", auth)
	{
		templateGroup.GET("/list", read("template.list"), rt.listTemplates)
		templateGroup.POST("/submit", write("template.submit"), rt.submitTemplate)
	}
}

func (rt *Router) listTemplates(c *gin.Context) {
	templates, err := rt.templateService.List(c.Query("tag"))
	if err != nil {
		replyErr(c, err)
		return
	}
	httpx.WithRepJSON(c, templates)
}

func (rt *Router) submitTemplate(c *gin.Context) {
	var req model.SubmitTemplateReq
	if err := c.ShouldBindJSON(&req); err != nil {
		httpx.WithRepErrMsg(c, httpx.BadRequest, err.Error())
		return
	}

	tpl, err := rt.templateService.Submit(interceptor.UserId(c), &req)
	if err != nil {
		replyErr(c, err)
		return
	}
	httpx.WithRepJSON(c, tpl)
}
