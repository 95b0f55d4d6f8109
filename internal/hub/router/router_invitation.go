package router

import (
	"github.com/gin-gonic/gin"
	"github.com/justinloveless/hub-page-builder-sub002/internal/hub/model"
	httpx "github.com/justinloveless/hub-page-builder-sub002/pkg/http"
	"github.com/justinloveless/hub-page-builder-sub002/pkg/http/interceptor"
)

func (rt *Router) invitationRouter(r *gin.RouterGroup, auth gin.HandlerFunc, read, write func(string) gin.HandlerFunc) {
	invitationGroup := r.Group("/invitation", auth)
	{
		invitationGroup.POST("/create", write("invitation.create"), rt.createInvitation)
		invitationGroup.GET("/list/:siteId", read("invitation.list"), rt.listInvitations)
		invitationGroup.POST("/accept", write("invitation.accept"), rt.acceptInvitation)
	}
}

func (rt *Router) createInvitation(c *gin.Context) {
	var req model.CreateInvitationReq
	if err := c.ShouldBindJSON(&req); err != nil {
		httpx.WithRepErrMsg(c, httpx.BadRequest, err.Error())
		return
	}

	inv, err := rt.invitationService.Create(interceptor.UserId(c), &req)
	if err != nil {
		replyErr(c, err)
		return
	}
	httpx.WithRepJSON(c, inv)
}

func (rt *Router) listInvitations(c *gin.Context) {
	invs, err := rt.invitationService.ListBySite(c.Param("siteId"), interceptor.UserId(c))
	if err != nil {
		replyErr(c, err)
		return
	}
	httpx.WithRepJSON(c, invs)
}

func (rt *Router) acceptInvitation(c *gin.Context) {
	var req model.AcceptInvitationReq
	if err := c.ShouldBindJSON(&req); err != nil {
		httpx.WithRepErrMsg(c, httpx.BadRequest, err.Error())
		return
	}

	resp, err := rt.invitationService.Accept(interceptor.UserId(c), &req)
	if err != nil {
		replyErr(c, err)
		return
	}
	httpx.WithRepJSON(c, resp)
}
