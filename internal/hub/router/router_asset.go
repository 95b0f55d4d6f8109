package router

import (
	"github.com/gin-gonic/gin"
	"github.com/justinloveless/hub-page-builder-sub002/internal/hub/model"
	httpx "github.com/justinloveless/hub-page-builder-sub002/pkg/http"
	"github.com/justinloveless/hub-page-builder-sub002/pkg/http/interceptor"
)

func (rt *Router) assetRouter(r *gin.RouterGroup, auth gin.HandlerFunc, read, write func(string) gin.HandlerFunc) {
	assetGroup := r.Group("/asset", auth)
	{
		assetGroup.POST("/upload", write("asset.upload"), rt.uploadAsset)
		assetGroup.GET("/pending/:siteId", read("asset.pending"), rt.listPendingAssets)
		assetGroup.POST("/discard", write("asset.discard"), rt.discardAsset)

		assetGroup.POST("/pr", write("asset.pr"), rt.createAssetsPr)
		assetGroup.POST("/file", write("asset.file"), rt.createFile)
		assetGroup.DELETE("/file", write("asset.delete"), rt.deleteAsset)
	}
}

func (rt *Router) uploadAsset(c *gin.Context) {
	var req model.UploadAssetReq
	if err := c.ShouldBindJSON(&req); err != nil {
		httpx.WithRepErrMsg(c, httpx.BadRequest, err.Error())
		return
	}

	resp, err := rt.assetService.Upload(c.Request.Context(), interceptor.UserId(c), &req)
	if err != nil {
		replyErr(c, err)
		return
	}
	httpx.WithRepJSON(c, resp)
}

func (rt *Router) listPendingAssets(c *gin.Context) {
	versions, err := rt.assetService.ListPending(c.Param("siteId"), interceptor.UserId(c))
	if err != nil {
		replyErr(c, err)
		return
	}
	httpx.WithRepJSON(c, versions)
}

type discardAssetReq struct {
	SiteId   string `json:"siteId" binding:"required"`
	FilePath string `json:"filePath" binding:"required"`
}

func (rt *Router) discardAsset(c *gin.Context) {
	var req discardAssetReq
	if err := c.ShouldBindJSON(&req); err != nil {
		httpx.WithRepErrMsg(c, httpx.BadRequest, err.Error())
		return
	}

	if err := rt.assetService.Discard(c.Request.Context(), req.SiteId, interceptor.UserId(c), req.FilePath); err != nil {
		replyErr(c, err)
		return
	}
	httpx.WithRepJSON(c, gin.H{"success": true})
}

type createAssetsPrReq struct {
	SiteId string `json:"siteId" binding:"required"`
}

func (rt *Router) createAssetsPr(c *gin.Context) {
	var req createAssetsPrReq
	if err := c.ShouldBindJSON(&req); err != nil {
		httpx.WithRepErrMsg(c, httpx.BadRequest, err.Error())
		return
	}

	resp, err := rt.commitService.CreateAssetsPr(c.Request.Context(), req.SiteId, interceptor.UserId(c))
	if err != nil {
		replyErr(c, err)
		return
	}
	httpx.WithRepJSON(c, resp)
}

type createFileReq struct {
	SiteId   string `json:"siteId" binding:"required"`
	FilePath string `json:"filePath" binding:"required"`
	Content  string `json:"content" binding:"required"` // base64
	Message  string `json:"message"`
}

func (rt *Router) createFile(c *gin.Context) {
	var req createFileReq
	if err := c.ShouldBindJSON(&req); err != nil {
		httpx.WithRepErrMsg(c, httpx.BadRequest, err.Error())
		return
	}

	commitSha, err := rt.commitService.CreateFile(c.Request.Context(), req.SiteId,
		interceptor.UserId(c), req.FilePath, req.Content, req.Message)
	if err != nil {
		replyErr(c, err)
		return
	}
	httpx.WithRepJSON(c, gin.H{"success": true, "commitSha": commitSha})
}

func (rt *Router) deleteAsset(c *gin.Context) {
	var req model.DeleteAssetReq
	if err := c.ShouldBindJSON(&req); err != nil {
		httpx.WithRepErrMsg(c, httpx.BadRequest, err.Error())
		return
	}

	resp, err := rt.commitService.DeleteAsset(c.Request.Context(), interceptor.UserId(c), &req)
	if err != nil {
		replyErr(c, err)
		return
	}
	httpx.WithRepJSON(c, resp)
}

type downloadFilesReq struct {
	SiteId    string `json:"siteId" binding:"required"`
	CommitSha string `json:"commitSha"`
}

func (rt *Router) downloadFiles(c *gin.Context) {
	var req downloadFilesReq
	if err := c.ShouldBindJSON(&req); err != nil {
		httpx.WithRepErrMsg(c, httpx.BadRequest, err.Error())
		return
	}

	files, err := rt.downloadService.DownloadSiteFiles(c.Request.Context(),
		req.SiteId, interceptor.UserId(c), req.CommitSha)
	if err != nil {
		replyErr(c, err)
		return
	}
	httpx.WithRepJSON(c, gin.H{"files": files})
}
