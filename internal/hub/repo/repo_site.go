package repo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/bytedance/sonic"
	"github.com/justinloveless/hub-page-builder-sub002/internal/hub/consts"
	"github.com/justinloveless/hub-page-builder-sub002/internal/hub/model"
	"github.com/justinloveless/hub-page-builder-sub002/pkg/cache"
	"github.com/justinloveless/hub-page-builder-sub002/pkg/database"
	"github.com/justinloveless/hub-page-builder-sub002/pkg/log"
	"gorm.io/gorm"
)

type ISiteRepository interface {
	AddSite(site *model.Site) error
	GetSite(siteId string) (*model.Site, error)
	UpdateSite(siteId string, site *model.Site) error
	ListSitesByUser(userId string) ([]model.Site, error)
	// ListSitesWithCalendar returns sites with a calendar provider configured.
	ListSitesWithCalendar() ([]model.Site, error)
	AddMember(m *model.SiteMember) error
	GetMember(siteId, userId string) (*model.SiteMember, error)
	IsMember(siteId, userId string) (bool, error)
}

type SiteRepo struct {
	db        database.IDatabase
	cache     cache.ICache
	siteModel *model.Site
}

func NewSiteRepo(db database.IDatabase, cache cache.ICache) ISiteRepository {
	return &SiteRepo{
		db:        db,
		cache:     cache,
		siteModel: &model.Site{},
	}
}

func (sr *SiteRepo) AddSite(site *model.Site) error {
	return sr.db.Database().Create(site).Error
}

// GetSite reads through the redis cache.
func (sr *SiteRepo) GetSite(siteId string) (*model.Site, error) {
	ctx := context.Background()
	key := consts.SiteInfoKey + siteId
	site := &model.Site{}

	if sr.cache != nil {
		siteStr, err := sr.cache.Get(ctx, key).Result()
		if err == nil && siteStr != "" {
			if err := sonic.UnmarshalString(siteStr, site); err != nil {
				log.Errorw("failed to unmarshal cached site", "siteId", siteId, "error", err)
			} else {
				return site, nil
			}
		}
	}

	err := sr.db.Database().Table(sr.siteModel.TableName()).
		Where("site_id = ?", siteId).First(site).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get site: %w", err)
	}

	if sr.cache != nil {
		if siteJson, err := sonic.MarshalString(site); err == nil {
			if err := sr.cache.Set(ctx, key, siteJson, time.Hour).Err(); err != nil {
				log.Errorw("failed to cache site", "siteId", siteId, "error", err)
			}
		}
	}

	return site, nil
}

// UpdateSite updates mutable fields and invalidates the cache entry.
func (sr *SiteRepo) UpdateSite(siteId string, site *model.Site) error {
	err := sr.db.Database().Table(sr.siteModel.TableName()).
		Where("site_id = ?", siteId).
		Omit("site_id", "repo_full_name", "installation_id", "created_by", "created_at").
		Updates(site).Error
	if err != nil {
		return err
	}
	if sr.cache != nil {
		sr.cache.Del(context.Background(), consts.SiteInfoKey+siteId)
	}
	return nil
}

func (sr *SiteRepo) ListSitesByUser(userId string) ([]model.Site, error) {
	var sites []model.Site
	err := sr.db.Database().Table(sr.siteModel.TableName()).
		Joins("JOIN t_site_member ON t_site_member.site_id = t_site.site_id").
		Where("t_site_member.user_id = ?", userId).
		Find(&sites).Error
	return sites, err
}

func (sr *SiteRepo) ListSitesWithCalendar() ([]model.Site, error) {
	var sites []model.Site
	err := sr.db.Database().Table(sr.siteModel.TableName()).
		Where("calendar_provider <> ''").
		Find(&sites).Error
	return sites, err
}

func (sr *SiteRepo) AddMember(m *model.SiteMember) error {
	return sr.db.Database().Create(m).Error
}

func (sr *SiteRepo) GetMember(siteId, userId string) (*model.SiteMember, error) {
	m := &model.SiteMember{}
	err := sr.db.Database().Table(m.TableName()).
		Where("site_id = ? AND user_id = ?", siteId, userId).First(m).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return m, nil
}

func (sr *SiteRepo) IsMember(siteId, userId string) (bool, error) {
	m, err := sr.GetMember(siteId, userId)
	if err != nil {
		return false, err
	}
	return m != nil, nil
}
