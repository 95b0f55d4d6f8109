package repo

import (
	"errors"

	"github.com/justinloveless/hub-page-builder-sub002/internal/hub/model"
	"github.com/justinloveless/hub-page-builder-sub002/pkg/database"
	"gorm.io/gorm"
)

type IInvitationRepository interface {
	Insert(inv *model.Invitation) error
	// GetByToken returns nil when no invitation matches.
	GetByToken(token string) (*model.Invitation, error)
	GetByCode(code string) (*model.Invitation, error)
	UpdateStatus(invitationId string, status int) error
	ListBySite(siteId string) ([]model.Invitation, error)
}

type InvitationRepo struct {
	db       database.IDatabase
	invModel *model.Invitation
}

func NewInvitationRepo(db database.IDatabase) IInvitationRepository {
	return &InvitationRepo{
		db:       db,
		invModel: &model.Invitation{},
	}
}

func (ir *InvitationRepo) Insert(inv *model.Invitation) error {
	return ir.db.Database().Create(inv).Error
}

func (ir *InvitationRepo) GetByToken(token string) (*model.Invitation, error) {
	return ir.getBy("token = ?", token)
}

func (ir *InvitationRepo) GetByCode(code string) (*model.Invitation, error) {
	return ir.getBy("invite_code = ?", code)
}

func (ir *InvitationRepo) getBy(query string, arg any) (*model.Invitation, error) {
	inv := &model.Invitation{}
	err := ir.db.Database().Table(ir.invModel.TableName()).
		Where(query, arg).First(inv).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return inv, nil
}

func (ir *InvitationRepo) UpdateStatus(invitationId string, status int) error {
	return ir.db.Database().Table(ir.invModel.TableName()).
		Where("invitation_id = ?", invitationId).
		Update("status", status).Error
}

func (ir *InvitationRepo) ListBySite(siteId string) ([]model.Invitation, error) {
	var invs []model.Invitation
	err := ir.db.Database().Table(ir.invModel.TableName()).
		Where("site_id = ?", siteId).
		Order("created_at DESC").
		Find(&invs).Error
	return invs, err
}
