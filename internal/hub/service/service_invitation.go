package service

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/justinloveless/hub-page-builder-sub002/internal/hub/model"
	"github.com/justinloveless/hub-page-builder-sub002/internal/hub/repo"
	"github.com/justinloveless/hub-page-builder-sub002/pkg/log"
)

type InvitationService struct {
	siteService  *SiteService
	invRepo      repo.IInvitationRepository
	siteRepo     repo.ISiteRepository
	activityRepo repo.IActivityRepository
}

func NewInvitationService(
	siteService *SiteService,
	invRepo repo.IInvitationRepository,
	siteRepo repo.ISiteRepository,
	activityRepo repo.IActivityRepository,
) *InvitationService {
	return &InvitationService{
		siteService:  siteService,
		invRepo:      invRepo,
		siteRepo:     siteRepo,
		activityRepo: activityRepo,
	}
}

const defaultInviteExpireDays = 7

// Create issues a new pending invitation with a token and a short code.
func (s *InvitationService) Create(userId string, req *model.CreateInvitationReq) (*model.Invitation, error) {
	if _, err := s.siteService.RequireMemberSite(req.SiteId, userId); err != nil {
		return nil, err
	}

	role := req.Role
	if role == "" {
		role = model.SiteRoleEditor
	}
	days := req.ExpireDays
	if days <= 0 {
		days = defaultInviteExpireDays
	}

	inv := &model.Invitation{
		InvitationId: uuid.NewString(),
		SiteId:       req.SiteId,
		Token:        uuid.NewString(),
		InviteCode:   shortCode(),
		Role:         role,
		InvitedBy:    userId,
		Status:       model.InvitationStatusPending,
		ExpiresAt:    time.Now().Add(time.Duration(days) * 24 * time.Hour),
	}
	if err := s.invRepo.Insert(inv); err != nil {
		return nil, err
	}

	s.logActivity(req.SiteId, userId, model.ActionInviteCreated, inv.InvitationId)
	return inv, nil
}

// Accept resolves an invitation by token or code and adds the caller as a
// member. An expired invitation is marked expired and never yields a
// membership row; accepted and expired are terminal states.
func (s *InvitationService) Accept(userId string, req *model.AcceptInvitationReq) (*model.AcceptInvitationResp, error) {
	var (
		inv *model.Invitation
		err error
	)
	switch {
	case req.Token != "":
		inv, err = s.invRepo.GetByToken(req.Token)
	case req.InviteCode != "":
		inv, err = s.invRepo.GetByCode(req.InviteCode)
	default:
		return nil, ErrInviteNotFound
	}
	if err != nil {
		return nil, err
	}
	if inv == nil {
		return nil, ErrInviteNotFound
	}

	switch inv.Status {
	case model.InvitationStatusAccepted:
		return nil, ErrInviteUsed
	case model.InvitationStatusExpired:
		return nil, ErrInviteExpired
	}

	if time.Now().After(inv.ExpiresAt) {
		if err := s.invRepo.UpdateStatus(inv.InvitationId, model.InvitationStatusExpired); err != nil {
			return nil, err
		}
		return nil, ErrInviteExpired
	}

	if err := s.siteRepo.AddMember(&model.SiteMember{
		SiteId:    inv.SiteId,
		UserId:    userId,
		Role:      inv.Role,
		InvitedBy: inv.InvitedBy,
	}); err != nil {
		return nil, err
	}
	if err := s.invRepo.UpdateStatus(inv.InvitationId, model.InvitationStatusAccepted); err != nil {
		return nil, err
	}

	s.logActivity(inv.SiteId, userId, model.ActionInviteAccepted, inv.InvitationId)

	return &model.AcceptInvitationResp{
		Success: true,
		SiteId:  inv.SiteId,
	}, nil
}

func (s *InvitationService) ListBySite(siteId, userId string) ([]model.Invitation, error) {
	if _, err := s.siteService.RequireMemberSite(siteId, userId); err != nil {
		return nil, err
	}
	return s.invRepo.ListBySite(siteId)
}

// shortCode derives an 8-character invite code.
func shortCode() string {
	return strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:8])
}

func (s *InvitationService) logActivity(siteId, userId, action, detail string) {
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
