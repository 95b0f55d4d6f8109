package service

import (
	"context"
	"fmt"

	"github.com/bytedance/sonic"
	"github.com/justinloveless/hub-page-builder-sub002/internal/hub/calendar"
	"github.com/justinloveless/hub-page-builder-sub002/internal/hub/conf"
	"github.com/justinloveless/hub-page-builder-sub002/internal/hub/model"
	"github.com/justinloveless/hub-page-builder-sub002/internal/hub/repo"
	"github.com/justinloveless/hub-page-builder-sub002/internal/hub/tool"
	"github.com/justinloveless/hub-page-builder-sub002/pkg/log"
)

// calendarAssetPath is where the mirrored events land in the site content.
const calendarAssetPath = "content/calendar.json"

type CalendarService struct {
	conf         conf.CalendarConfig
	siteService  *SiteService
	assetService *AssetService
	siteRepo     repo.ISiteRepository
	activityRepo repo.IActivityRepository

	// newProvider is swappable for tests.
	newProvider func(name string, c conf.CalendarConfig) (calendar.Provider, error)
}

func NewCalendarService(
	c conf.CalendarConfig,
	siteService *SiteService,
	assetService *AssetService,
	siteRepo repo.ISiteRepository,
	activityRepo repo.IActivityRepository,
) *CalendarService {
	return &CalendarService{
		conf:         c,
		siteService:  siteService,
		assetService: assetService,
		siteRepo:     siteRepo,
		activityRepo: activityRepo,
		newProvider:  calendar.NewProvider,
	}
}

// SyncSite pulls the site's configured calendar and stages the events as a
// pending content/calendar.json asset, like any other upload.
func (s *CalendarService) SyncSite(ctx context.Context, siteId, userId string) (int, error) {
	site, err := s.siteService.RequireMemberSite(siteId, userId)
	if err != nil {
		return 0, err
	}
	return s.sync(ctx, site, userId)
}

func (s *CalendarService) sync(ctx context.Context, site *model.Site, userId string) (int, error) {
	if site.CalendarProvider == "" {
		return 0, ErrNoCalendar
	}

	provider, err := s.newProvider(site.CalendarProvider, s.conf)
	if err != nil {
		return 0, err
	}
	events, err := provider.Events(ctx, site.CalendarRef)
	if err != nil {
		return 0, fmt.Errorf("failed to fetch %s calendar: %w", site.CalendarProvider, err)
	}

	payload, err := sonic.Marshal(events)
	if err != nil {
		return 0, err
	}
	_, err = s.assetService.Upload(ctx, userId, &model.UploadAssetReq{
		SiteId:   site.SiteId,
		FilePath: calendarAssetPath,
		Content:  tool.EncodeBase64(payload),
	})
	if err != nil {
		return 0, err
	}

	s.logActivity(site.SiteId, userId, model.ActionCalendarSynced,
		fmt.Sprintf("%d events", len(events)))
	return len(events), nil
}

// SyncAll re-syncs every site with a calendar configured. Failures are
// logged per site and never stop the sweep; the cron scheduler calls this.
func (s *CalendarService) SyncAll(ctx context.Context) {
	sites, err := s.siteRepo.ListSitesWithCalendar()
	if err != nil {
		log.Errorw("failed to list sites for calendar sync", "error", err)
		return
	}
	for i := range sites {
		site := &sites[i]
		n, err := s.sync(ctx, site, site.CreatedBy)
		if err != nil {
			log.Errorw("calendar sync failed", "siteId", site.SiteId,
				"provider", site.CalendarProvider, "error", err)
			continue
		}
		log.Infow("calendar synced", "siteId", site.SiteId, "events", n)
	}
}

func (s *CalendarService) logActivity(siteId, userId, action, detail string) {
	err := s.activityRepo.Append(&model.ActivityLog{
		SiteId: siteId,
		UserId: userId,
		Action: action,
		Detail: detail,
	})
	if err != nil {
		log.Errorw("failed to append activity log", "siteId", siteId, "action", action, "error", err)
	}
}
