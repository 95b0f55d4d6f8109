package bootstrap

import (
	"context"
	"fmt"
	"time"

	"github.com/justinloveless/hub-page-builder-sub002/internal/hub/conf"
	"github.com/justinloveless/hub-page-builder-sub002/internal/hub/consts"
	"github.com/justinloveless/hub-page-builder-sub002/internal/hub/github"
	"github.com/justinloveless/hub-page-builder-sub002/internal/hub/repo"
	"github.com/justinloveless/hub-page-builder-sub002/internal/hub/router"
	"github.com/justinloveless/hub-page-builder-sub002/internal/hub/service"
	"github.com/justinloveless/hub-page-builder-sub002/pkg/cache"
	"github.com/justinloveless/hub-page-builder-sub002/pkg/database"
	"github.com/justinloveless/hub-page-builder-sub002/pkg/log"
	"github.com/justinloveless/hub-page-builder-sub002/pkg/ratelimit"
	"github.com/justinloveless/hub-page-builder-sub002/pkg/server"
	"github.com/justinloveless/hub-page-builder-sub002/pkg/storage"
	"github.com/robfig/cron/v3"
)

// Run assembles every component from configuration and blocks until a
// shutdown signal arrives.
func Run(confFile string) error {
	appConf := conf.NewConf(confFile)

	log.MustInit(&appConf.Log)

	redisClient, err := cache.NewRedis(appConf.Redis)
	if err != nil {
		return fmt.Errorf("failed to connect redis: %w", err)
	}
	redisCache := cache.NewRedisCache(redisClient)

	gormDB, err := database.NewDatabase(appConf.Database)
	if err != nil {
		return fmt.Errorf("failed to connect database: %w", err)
	}
	db := database.NewGormDB(gormDB)

	store, err := storage.NewStorage(&appConf.Storage)
	if err != nil {
		return fmt.Errorf("failed to init storage: %w", err)
	}

	app, err := github.NewApp(appConf.GitHub.AppId, appConf.GitHub.PrivateKey, appConf.GitHub.BaseURL)
	if err != nil {
		return fmt.Errorf("failed to init github app: %w", err)
	}

	window := time.Duration(appConf.Limits.WindowSeconds) * time.Second
	defaultLimiter := newLimiter(appConf.Limits.Store, redisCache, appConf.Limits.Default, window)
	mutatingLimiter := newLimiter(appConf.Limits.Store, redisCache, appConf.Limits.Mutating, window)

	siteRepo := repo.NewSiteRepo(db, redisCache)
	assetRepo := repo.NewAssetRepo(db)
	invRepo := repo.NewInvitationRepo(db)
	tplRepo := repo.NewTemplateRepo(db)
	activityRepo := repo.NewActivityRepo(db)

	siteService := service.NewSiteService(siteRepo, activityRepo, app)
	assetService := service.NewAssetService(siteService, assetRepo, activityRepo, store, appConf.Limits.MaxFileBytes)
	commitService := service.NewCommitService(siteService, assetRepo, activityRepo, store, app)
	downloadService := service.NewDownloadService(siteService, app)
	templateService := service.NewTemplateService(tplRepo)
	invitationService := service.NewInvitationService(siteService, invRepo, siteRepo, activityRepo)
	calendarService := service.NewCalendarService(appConf.Calendar, siteService, assetService, siteRepo, activityRepo)
	activityService := service.NewActivityService(siteService, activityRepo)

	scheduler, err := startCalendarScheduler(appConf.Calendar.SyncSchedule, calendarService)
	if err != nil {
		return err
	}

	rt := router.NewRouter(&appConf.Http,
		siteService, assetService, commitService, downloadService,
		templateService, invitationService, calendarService, activityService,
		defaultLimiter, mutatingLimiter)

	shutdown := server.Serve(appConf.Http, rt.Router())
	shutdown()

	if scheduler != nil {
		scheduler.Stop()
	}
	return nil
}

func newLimiter(store string, c cache.ICache, ceiling int, window time.Duration) ratelimit.Limiter {
	if store == "redis" {
		return ratelimit.NewRedisLimiter(c, ceiling, window, consts.RateLimitKey)
	}
	return ratelimit.NewMemoryLimiter(ceiling, window)
}

// startCalendarScheduler runs periodic calendar re-syncs when a cron spec
// is configured.
func startCalendarScheduler(spec string, calendarService *service.CalendarService) (*cron.Cron, error) {
	if spec == "" {
		return nil, nil
	}

	scheduler := cron.New()
	_, err := scheduler.AddFunc(spec, func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
		defer cancel()
		calendarService.SyncAll(ctx)
	})
	if err != nil {
		return nil, fmt.Errorf("invalid calendar sync schedule %q: %w", spec, err)
	}
	scheduler.Start()
	log.Infow("calendar sync scheduled", "spec", spec)
	return scheduler, nil
}
