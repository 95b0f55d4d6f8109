package repo

import (
	"errors"

	"github.com/justinloveless/hub-page-builder-sub002/internal/hub/model"
	"github.com/justinloveless/hub-page-builder-sub002/pkg/database"
	"gorm.io/gorm"
)

type IAssetRepository interface {
	Insert(v *model.AssetVersion) error
	// GetPendingByPath returns nil when no pending row exists for the path.
	GetPendingByPath(siteId, repoPath string) (*model.AssetVersion, error)
	ListPending(siteId string) ([]model.AssetVersion, error)
	Update(v *model.AssetVersion) error
	UpdateStatus(versionId string, status int) error
	MarkCommitted(versionIds []string) error
}

type AssetRepo struct {
	db         database.IDatabase
	assetModel *model.AssetVersion
}

func NewAssetRepo(db database.IDatabase) IAssetRepository {
	return &AssetRepo{
		db:         db,
		assetModel: &model.AssetVersion{},
	}
}

func (ar *AssetRepo) Insert(v *model.AssetVersion) error {
	return ar.db.Database().Create(v).Error
}

func (ar *AssetRepo) GetPendingByPath(siteId, repoPath string) (*model.AssetVersion, error) {
	v := &model.AssetVersion{}
	err := ar.db.Database().Table(ar.assetModel.TableName()).
		Where("site_id = ? AND repo_path = ? AND status = ?", siteId, repoPath, model.AssetStatusPending).
		First(v).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return v, nil
}

func (ar *AssetRepo) ListPending(siteId string) ([]model.AssetVersion, error) {
	var versions []model.AssetVersion
	err := ar.db.Database().Table(ar.assetModel.TableName()).
		Where("site_id = ? AND status = ?", siteId, model.AssetStatusPending).
		Order("repo_path").
		Find(&versions).Error
	return versions, err
}

func (ar *AssetRepo) Update(v *model.AssetVersion) error {
	return ar.db.Database().Table(ar.assetModel.TableName()).
		Where("version_id = ?", v.VersionId).
		Updates(map[string]any{
			"storage_path": v.StoragePath,
			"size":         v.Size,
			"status":       v.Status,
			"uploaded_by":  v.UploadedBy,
		}).Error
}

func (ar *AssetRepo) UpdateStatus(versionId string, status int) error {
	return ar.db.Database().Table(ar.assetModel.TableName()).
		Where("version_id = ?", versionId).
		Update("status", status).Error
}

func (ar *AssetRepo) MarkCommitted(versionIds []string) error {
	if len(versionIds) == 0 {
		return nil
	}
	return ar.db.Database().Table(ar.assetModel.TableName()).
		Where("version_id IN ?", versionIds).
		Update("status", model.AssetStatusCommitted).Error
}
