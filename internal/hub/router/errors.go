package router

import (
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/justinloveless/hub-page-builder-sub002/internal/hub/github"
	"github.com/justinloveless/hub-page-builder-sub002/internal/hub/service"
	"github.com/justinloveless/hub-page-builder-sub002/internal/hub/tool"
	httpx "github.com/justinloveless/hub-page-builder-sub002/pkg/http"
	"github.com/justinloveless/hub-page-builder-sub002/pkg/log"
)

// replyErr translates service errors into the response code table.
func replyErr(c *gin.Context, err error) {
	var upstream *github.UpstreamError

	switch {
	case errors.Is(err, service.ErrSiteNotFound),
		errors.Is(err, service.ErrInviteNotFound),
		errors.Is(err, github.ErrNotFound):
		httpx.WithRepErrMsg(c, httpx.NotFound, err.Error())

	case errors.Is(err, service.ErrNotMember):
		httpx.WithRepErr(c, httpx.Forbidden)

	case errors.Is(err, tool.ErrInvalidPath):
		httpx.WithRepErr(c, httpx.InvalidPath)

	case errors.Is(err, service.ErrFileTooLarge):
		httpx.WithRepErr(c, httpx.FileTooLarge)

	case errors.Is(err, service.ErrInvalidRepo):
		httpx.WithRepErr(c, httpx.InvalidRepo)

	case errors.Is(err, service.ErrInviteExpired):
		httpx.WithRepErr(c, httpx.InviteExpired)

	case errors.Is(err, service.ErrInviteUsed),
		errors.Is(err, service.ErrFileExists),
		errors.Is(err, service.ErrNothingPending),
		errors.Is(err, service.ErrNoCalendar):
		httpx.WithRepErrMsg(c, httpx.BadRequest, err.Error())

	case errors.As(err, &upstream):
		httpx.WithRepErrMsg(c, httpx.UpstreamError, upstream.Error())

	default:
		log.Errorw("request failed", "path", c.FullPath(), "error", err)
		httpx.WithRepErr(c, httpx.InternalError)
	}
}
