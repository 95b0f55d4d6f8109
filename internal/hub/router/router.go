package router

import (
	"embed"
	"net/http"

	"github.com/gin-contrib/pprof"
	"github.com/gin-gonic/gin"
	"github.com/justinloveless/hub-page-builder-sub002/internal/hub/service"
	httpx "github.com/justinloveless/hub-page-builder-sub002/pkg/http"
	"github.com/justinloveless/hub-page-builder-sub002/pkg/http/interceptor"
	"github.com/justinloveless/hub-page-builder-sub002/pkg/ratelimit"
	"github.com/justinloveless/hub-page-builder-sub002/pkg/version"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

//go:embed assets
var assets embed.FS

// Router wires every HTTP endpoint to its service.
type Router struct {
	Http *httpx.Http

	siteService       *service.SiteService
	assetService      *service.AssetService
	commitService     *service.CommitService
	downloadService   *service.DownloadService
	templateService   *service.TemplateService
	invitationService *service.InvitationService
	calendarService   *service.CalendarService
	activityService   *service.ActivityService

	defaultLimiter  ratelimit.Limiter
	mutatingLimiter ratelimit.Limiter
}

func NewRouter(
	httpConf *httpx.Http,
	siteService *service.SiteService,
	assetService *service.AssetService,
	commitService *service.CommitService,
	downloadService *service.DownloadService,
	templateService *service.TemplateService,
	invitationService *service.InvitationService,
	calendarService *service.CalendarService,
	activityService *service.ActivityService,
	defaultLimiter ratelimit.Limiter,
	mutatingLimiter ratelimit.Limiter,
) *Router {
	return &Router{
		Http:              httpConf,
		siteService:       siteService,
		assetService:      assetService,
		commitService:     commitService,
		downloadService:   downloadService,
		templateService:   templateService,
		invitationService: invitationService,
		calendarService:   calendarService,
		activityService:   activityService,
		defaultLimiter:    defaultLimiter,
		mutatingLimiter:   mutatingLimiter,
	}
}

func (rt *Router) Router() *gin.Engine {

	gin.SetMode(rt.Http.Mode)

	r := gin.New()

	r.Use(interceptor.CorsInterceptor())
	r.Use(interceptor.ExceptionInterceptor)

	if rt.Http.AccessLog {
		r.Use(httpx.AccessLogInterceptor())
	}

	if rt.Http.PProf {
		pprof.Register(r, "/debug/pprof")
	}

	if rt.Http.ExposeMetrics {
		r.GET("/metrics", gin.WrapH(promhttp.Handler()))
	}

	r.GET("/health", func(c *gin.Context) {
		c.String(http.StatusOK, "ok")
	})

	r.GET("/version", func(c *gin.Context) {
		c.JSON(http.StatusOK, version.GetVersion())
	})

	contextPath := rt.Http.ContextPath
	if contextPath == "" {
		contextPath = "/api/v1"
	}
	api := r.Group(contextPath)
	{
		rt.routerGroup(api)
	}

	return r
}

func (rt *Router) routerGroup(r *gin.RouterGroup) {

	auth := interceptor.AuthorizationInterceptor(rt.Http.Auth.SecretKey)
	read := func(action string) gin.HandlerFunc {
		return interceptor.RateLimitInterceptor(rt.defaultLimiter, action)
	}
	write := func(action string) gin.HandlerFunc {
		return interceptor.RateLimitInterceptor(rt.mutatingLimiter, action)
	}

	// the asset manifest template is public; everything else needs a session
	r.GET("/site-assets.json", rt.siteAssetsManifest)

	rt.siteRouter(r, auth, read, write)
	rt.assetRouter(r, auth, read, write)
	rt.templateRouter(r, auth, read, write)
	rt.invitationRouter(r, auth, read, write)
	rt.calendarRouter(r, auth, write)
}

// siteAssetsManifest serves the embedded asset manifest the editor UI
// renders editable slots from.
func (rt *Router) siteAssetsManifest(c *gin.Context) {
	data, err := assets.ReadFile("assets/site-assets.json")
	if err != nil {
		httpx.WithRepErr(c, httpx.InternalError)
		return
	}
	c.Data(http.StatusOK, "application/json", data)
}
