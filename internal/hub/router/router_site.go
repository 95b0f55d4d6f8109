package router

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/justinloveless/hub-page-builder-sub002/internal/hub/model"
	httpx "github.com/justinloveless/hub-page-builder-sub002/pkg/http"
	"github.com/justinloveless/hub-page-builder-sub002/pkg/http/interceptor"
)

func (rt *Router) siteRouter(r *gin.RouterGroup, auth gin.HandlerFunc, read, write func(string) gin.HandlerFunc) {
	siteGroup := r.Group("/site", auth)
	{
		siteGroup.POST("/create", write("site.create"), rt.createSite)
		siteGroup.GET("/get/:siteId", read("site.get"), rt.getSite)
		siteGroup.GET("/list", read("site.list"), rt.listSites)
		siteGroup.PUT("/update", write("site.update"), rt.updateSite)
		siteGroup.GET("/installation/:siteId", read("site.installation"), rt.getInstallation)
		siteGroup.GET("/activity/:siteId", read("site.activity"), rt.listActivity)

		siteGroup.POST("/files/download", read("site.download"), rt.downloadFiles)
	}
}

func (rt *Router) getSite(c *gin.Context) {
	site, err := rt.siteService.GetSite(c.Param("siteId"), interceptor.UserId(c))
	if err != nil {
		replyErr(c, err)
		return
	}
	httpx.WithRepJSON(c, site)
}

func (rt *Router) createSite(c *gin.Context) {
	var req model.CreateSiteReq
	if err := c.ShouldBindJSON(&req); err != nil {
		httpx.WithRepErrMsg(c, httpx.BadRequest, err.Error())
		return
	}

	site, err := rt.siteService.CreateSite(c.Request.Context(), interceptor.UserId(c), &req)
	if err != nil {
		replyErr(c, err)
		return
	}
	httpx.WithRepJSON(c, site)
}

func (rt *Router) listSites(c *gin.Context) {
	sites, err := rt.siteService.ListSites(interceptor.UserId(c))
	if err != nil {
		replyErr(c, err)
		return
	}
	httpx.WithRepJSON(c, sites)
}

func (rt *Router) updateSite(c *gin.Context) {
	var req model.UpdateSiteReq
	if err := c.ShouldBindJSON(&req); err != nil {
		httpx.WithRepErrMsg(c, httpx.BadRequest, err.Error())
		return
	}

	if err := rt.siteService.UpdateSite(interceptor.UserId(c), &req); err != nil {
		replyErr(c, err)
		return
	}
	httpx.WithRepJSON(c, gin.H{"success": true})
}

func (rt *Router) getInstallation(c *gin.Context) {
	inst, err := rt.siteService.InstallationDetails(c.Request.Context(),
		c.Param("siteId"), interceptor.UserId(c))
	if err != nil {
		replyErr(c, err)
		return
	}
	httpx.WithRepJSON(c, inst)
}

func (rt *Router) listActivity(c *gin.Context) {
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))

	entries, err := rt.activityService.ListBySite(c.Param("siteId"), interceptor.UserId(c), offset, limit)
	if err != nil {
		replyErr(c, err)
		return
	}
	httpx.WithRepJSON(c, entries)
}
