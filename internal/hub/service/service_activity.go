package service

import (
	"github.com/justinloveless/hub-page-builder-sub002/internal/hub/model"
	"github.com/justinloveless/hub-page-builder-sub002/internal/hub/repo"
)

type ActivityService struct {
	siteService  *SiteService
	activityRepo repo.IActivityRepository
}

func NewActivityService(siteService *SiteService, activityRepo repo.IActivityRepository) *ActivityService {
	return &ActivityService{
		siteService:  siteService,
		activityRepo: activityRepo,
	}
}

func (s *ActivityService) ListBySite(siteId, userId string, offset, limit int) ([]model.ActivityLog, error) {
	if _, err := s.siteService.RequireMemberSite(siteId, userId); err != nil {
		return nil, err
	}
	return s.activityRepo.ListBySite(siteId, offset, limit)
}
