package service

import (
	"context"
	"fmt"
	"path"
	"time"

	"github.com/google/uuid"
	"github.com/justinloveless/hub-page-builder-sub002/internal/hub/model"
	"github.com/justinloveless/hub-page-builder-sub002/internal/hub/repo"
	"github.com/justinloveless/hub-page-builder-sub002/internal/hub/tool"
	"github.com/justinloveless/hub-page-builder-sub002/pkg/log"
	"github.com/justinloveless/hub-page-builder-sub002/pkg/storage"
)

// AssetService stages uploads as pending versions in blob storage, holding
// at most one pending row per (site, repo path).
type AssetService struct {
	siteService  *SiteService
	assetRepo    repo.IAssetRepository
	activityRepo repo.IActivityRepository
	store        storage.Provider
	maxFileBytes int64
}

func NewAssetService(
	siteService *SiteService,
	assetRepo repo.IAssetRepository,
	activityRepo repo.IActivityRepository,
	store storage.Provider,
	maxFileBytes int64,
) *AssetService {
	return &AssetService{
		siteService:  siteService,
		assetRepo:    assetRepo,
		activityRepo: activityRepo,
		store:        store,
		maxFileBytes: maxFileBytes,
	}
}

// Upload decodes a base64 body, writes it to a fresh storage key, and
// records or replaces the pending version row for the path. The blob write
// and the row write are not atomic; the insert failure path compensates by
// deleting the fresh blob.
func (s *AssetService) Upload(ctx context.Context, userId string, req *model.UploadAssetReq) (*model.UploadAssetResp, error) {
	site, err := s.siteService.RequireMemberSite(req.SiteId, userId)
	if err != nil {
		return nil, err
	}

	repoPath, err := tool.SanitizePath(req.FilePath)
	if err != nil {
		return nil, err
	}

	data, err := tool.DecodeBase64(req.Content)
	if err != nil {
		return nil, fmt.Errorf("invalid base64 content: %w", err)
	}
	if int64(len(data)) > s.maxFileBytes {
		return nil, ErrFileTooLarge
	}

	storageKey := fmt.Sprintf("staging/%s/%d_%s", site.SiteId, time.Now().UnixNano(), path.Base(repoPath))
	storagePath, err := s.store.PutObject(ctx, storageKey, data, "application/octet-stream")
	if err != nil {
		return nil, fmt.Errorf("failed to store asset: %w", err)
	}

	existing, err := s.assetRepo.GetPendingByPath(site.SiteId, repoPath)
	if err != nil {
		return nil, err
	}

	if existing != nil {
		// replace in place, dropping the superseded blob
		if err := s.store.Delete(ctx, existing.StoragePath); err != nil {
			log.Warnw("failed to delete superseded blob", "path", existing.StoragePath, "error", err)
		}
		existing.StoragePath = storagePath
		existing.Size = int64(len(data))
		existing.UploadedBy = userId
		existing.Status = model.AssetStatusPending
		if err := s.assetRepo.Update(existing); err != nil {
			return nil, err
		}
	} else {
		version := &model.AssetVersion{
			VersionId:   uuid.NewString(),
			SiteId:      site.SiteId,
			RepoPath:    repoPath,
			StoragePath: storagePath,
			Size:        int64(len(data)),
			Status:      model.AssetStatusPending,
			UploadedBy:  userId,
		}
		if err := s.assetRepo.Insert(version); err != nil {
			// best-effort compensation, not a two-phase commit
			if delErr := s.store.Delete(ctx, storagePath); delErr != nil {
				log.Errorw("failed to clean up orphaned blob", "path", storagePath, "error", delErr)
			}
			return nil, err
		}
	}

	s.logActivity(site.SiteId, userId, model.ActionAssetUploaded, repoPath)

	return &model.UploadAssetResp{
		Success:     true,
		StoragePath: storagePath,
	}, nil
}

func (s *AssetService) ListPending(siteId, userId string) ([]model.AssetVersion, error) {
	if _, err := s.siteService.RequireMemberSite(siteId, userId); err != nil {
		return nil, err
	}
	return s.assetRepo.ListPending(siteId)
}

// Discard marks a pending version discarded and deletes its blob.
func (s *AssetService) Discard(ctx context.Context, siteId, userId, filePath string) error {
	if _, err := s.siteService.RequireMemberSite(siteId, userId); err != nil {
		return err
	}

	repoPath, err := tool.SanitizePath(filePath)
	if err != nil {
		return err
	}

	pending, err := s.assetRepo.GetPendingByPath(siteId, repoPath)
	if err != nil {
		return err
	}
	if pending == nil {
		return ErrNothingPending
	}

	if err := s.assetRepo.UpdateStatus(pending.VersionId, model.AssetStatusDiscarded); err != nil {
		return err
	}
	if err := s.store.Delete(ctx, pending.StoragePath); err != nil {
		log.Warnw("failed to delete discarded blob", "path", pending.StoragePath, "error", err)
	}

	s.logActivity(siteId, userId, model.ActionAssetDiscarded, repoPath)
	return nil
}

func (s *AssetService) logActivity(siteId, userId, action, detail string) {
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
