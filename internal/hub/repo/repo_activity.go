package repo

import (
	"github.com/justinloveless/hub-page-builder-sub002/internal/hub/model"
	"github.com/justinloveless/hub-page-builder-sub002/pkg/database"
)

type IActivityRepository interface {
	Append(entry *model.ActivityLog) error
	ListBySite(siteId string, offset, limit int) ([]model.ActivityLog, error)
}

type ActivityRepo struct {
	db       database.IDatabase
	logModel *model.ActivityLog
}

func NewActivityRepo(db database.IDatabase) IActivityRepository {
	return &ActivityRepo{
		db:       db,
		logModel: &model.ActivityLog{},
	}
}

func (ar *ActivityRepo) Append(entry *model.ActivityLog) error {
	return ar.db.Database().Create(entry).Error
}

func (ar *ActivityRepo) ListBySite(siteId string, offset, limit int) ([]model.ActivityLog, error) {
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	var entries []model.ActivityLog
	err := ar.db.Database().Table(ar.logModel.TableName()).
		Where("site_id = ?", siteId).
		Order("id DESC").
		Offset(offset).Limit(limit).
		Find(&entries).Error
	return entries, err
}
