package service

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/justinloveless/hub-page-builder-sub002/internal/hub/github"
	"github.com/justinloveless/hub-page-builder-sub002/internal/hub/model"
	"github.com/justinloveless/hub-page-builder-sub002/internal/hub/repo"
	"github.com/justinloveless/hub-page-builder-sub002/pkg/log"
)

type SiteService struct {
	siteRepo     repo.ISiteRepository
	activityRepo repo.IActivityRepository
	app          *github.App
}

func NewSiteService(siteRepo repo.ISiteRepository, activityRepo repo.IActivityRepository, app *github.App) *SiteService {
	return &SiteService{
		siteRepo:     siteRepo,
		activityRepo: activityRepo,
		app:          app,
	}
}

// CreateSite binds a repository to a new site and makes the creator owner.
func (s *SiteService) CreateSite(ctx context.Context, userId string, req *model.CreateSiteReq) (*model.Site, error) {
	if !github.ValidRepoFullName(req.RepoFullName) {
		return nil, ErrInvalidRepo
	}

	branch := req.DefaultBranch
	if branch == "" {
		// trust the repository's own default when the caller leaves it blank
		client, err := s.app.InstallationClient(ctx, req.InstallationId)
		if err != nil {
			return nil, err
		}
		repoInfo, err := client.GetRepo(ctx, req.RepoFullName)
		if err != nil {
			return nil, err
		}
		branch = repoInfo.DefaultBranch
	}

	site := &model.Site{
		SiteId:         uuid.NewString(),
		Name:           req.Name,
		RepoFullName:   req.RepoFullName,
		DefaultBranch:  branch,
		InstallationId: req.InstallationId,
		CreatedBy:      userId,
	}
	if err := s.siteRepo.AddSite(site); err != nil {
		return nil, err
	}
	if err := s.siteRepo.AddMember(&model.SiteMember{
		SiteId: site.SiteId,
		UserId: userId,
		Role:   model.SiteRoleOwner,
	}); err != nil {
		return nil, err
	}

	s.logActivity(site.SiteId, userId, model.ActionSiteCreated, req.RepoFullName)
	return site, nil
}

// RequireMemberSite is the authorization gate shared by every operation: it
// loads the site and verifies the caller's membership.
func (s *SiteService) RequireMemberSite(siteId, userId string) (*model.Site, error) {
	site, err := s.siteRepo.GetSite(siteId)
	if err != nil {
		return nil, err
	}
	if site == nil {
		return nil, ErrSiteNotFound
	}
	ok, err := s.siteRepo.IsMember(siteId, userId)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrNotMember
	}
	return site, nil
}

// GetSite returns a site the caller is a member of.
func (s *SiteService) GetSite(siteId, userId string) (*model.Site, error) {
	return s.RequireMemberSite(siteId, userId)
}

func (s *SiteService) ListSites(userId string) ([]model.Site, error) {
	return s.siteRepo.ListSitesByUser(userId)
}

func (s *SiteService) UpdateSite(userId string, req *model.UpdateSiteReq) error {
	if _, err := s.RequireMemberSite(req.SiteId, userId); err != nil {
		return err
	}
	update := &model.Site{
		Name:             strings.TrimSpace(req.Name),
		DefaultBranch:    strings.TrimSpace(req.DefaultBranch),
		CalendarProvider: strings.TrimSpace(req.CalendarProvider),
		CalendarRef:      strings.TrimSpace(req.CalendarRef),
	}
	if err := s.siteRepo.UpdateSite(req.SiteId, update); err != nil {
		return err
	}
	s.logActivity(req.SiteId, userId, model.ActionSiteUpdated, "")
	return nil
}

// InstallationDetails probes the App installation backing a site.
func (s *SiteService) InstallationDetails(ctx context.Context, siteId, userId string) (*github.Installation, error) {
	site, err := s.RequireMemberSite(siteId, userId)
	if err != nil {
		return nil, err
	}
	return s.app.GetInstallation(ctx, site.InstallationId)
}

func (s *SiteService) logActivity(siteId, userId, action, detail string) {
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
