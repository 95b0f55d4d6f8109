package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/justinloveless/hub-page-builder-sub002/internal/hub/github"
	"github.com/justinloveless/hub-page-builder-sub002/internal/hub/model"
	"github.com/justinloveless/hub-page-builder-sub002/internal/hub/repo"
	"github.com/justinloveless/hub-page-builder-sub002/internal/hub/tool"
	"github.com/justinloveless/hub-page-builder-sub002/pkg/log"
	"github.com/justinloveless/hub-page-builder-sub002/pkg/storage"
)

// CommitService turns staged asset versions into branches, commits, and
// pull requests. Every step is a sequential, non-retried network call; a
// failure mid-flow leaves the partial state (e.g. a branch with no PR) for
// the caller to inspect.
type CommitService struct {
	siteService  *SiteService
	assetRepo    repo.IAssetRepository
	activityRepo repo.IActivityRepository
	store        storage.Provider
	app          *github.App
}

func NewCommitService(
	siteService *SiteService,
	assetRepo repo.IAssetRepository,
	activityRepo repo.IActivityRepository,
	store storage.Provider,
	app *github.App,
) *CommitService {
	return &CommitService{
		siteService:  siteService,
		assetRepo:    assetRepo,
		activityRepo: activityRepo,
		store:        store,
		app:          app,
	}
}

// CreateAssetsPr commits every pending asset of the site onto a new branch
// and opens a pull request against the default branch. Committed rows are
// marked committed.
func (s *CommitService) CreateAssetsPr(ctx context.Context, siteId, userId string) (*model.AssetsPrResp, error) {
	site, err := s.siteService.RequireMemberSite(siteId, userId)
	if err != nil {
		return nil, err
	}

	pending, err := s.assetRepo.ListPending(siteId)
	if err != nil {
		return nil, err
	}
	if len(pending) == 0 {
		return nil, ErrNothingPending
	}

	client, err := s.app.InstallationClient(ctx, site.InstallationId)
	if err != nil {
		return nil, err
	}

	branch, err := s.branchOffTip(ctx, client, site, "hub-assets")
	if err != nil {
		return nil, err
	}

	committed := make([]string, 0, len(pending))
	for _, v := range pending {
		data, err := s.store.GetObject(ctx, v.StoragePath)
		if err != nil {
			return nil, fmt.Errorf("failed to read staged blob %s: %w", v.StoragePath, err)
		}

		// existing files need their blob sha to be replaced
		sha := ""
		if existing, err := client.GetContent(ctx, site.RepoFullName, v.RepoPath, branch); err == nil {
			sha = existing.Sha
		} else if !errors.Is(err, github.ErrNotFound) {
			return nil, err
		}

		message := fmt.Sprintf("Update %s", v.RepoPath)
		if _, err := client.PutContent(ctx, site.RepoFullName, v.RepoPath, branch, message, tool.EncodeBase64(data), sha); err != nil {
			return nil, err
		}
		committed = append(committed, v.VersionId)
	}

	pr, err := client.CreatePull(ctx, site.RepoFullName,
		"Staged asset updates", branch, site.DefaultBranch,
		fmt.Sprintf("Commits %d staged asset change(s) from the page builder.", len(committed)))
	if err != nil {
		return nil, err
	}

	if err := s.assetRepo.MarkCommitted(committed); err != nil {
		log.Errorw("PR opened but versions not marked committed", "siteId", siteId, "pr", pr.Number, "error", err)
	}

	s.logActivity(siteId, userId, model.ActionAssetsPrOpened, pr.HtmlUrl)

	return &model.AssetsPrResp{
		PrUrl:    pr.HtmlUrl,
		PrNumber: pr.Number,
		Branch:   branch,
	}, nil
}

// branchOffTip creates a fresh working branch at the default branch tip.
func (s *CommitService) branchOffTip(ctx context.Context, client *github.Client, site *model.Site, prefix string) (string, error) {
	tipSha, err := client.GetBranchSha(ctx, site.RepoFullName, site.DefaultBranch)
	if err != nil {
		return "", err
	}
	branch := fmt.Sprintf("%s-%d", prefix, time.Now().Unix())
	if err := client.CreateBranch(ctx, site.RepoFullName, branch, tipSha); err != nil {
		return "", err
	}
	return branch, nil
}

// CreateFile writes a brand-new file on a fresh branch, failing fast if
// the path already exists so nothing is silently overwritten.
func (s *CommitService) CreateFile(ctx context.Context, siteId, userId, filePath, contentB64, message string) (string, error) {
	site, err := s.siteService.RequireMemberSite(siteId, userId)
	if err != nil {
		return "", err
	}

	repoPath, err := tool.SanitizePath(filePath)
	if err != nil {
		return "", err
	}

	client, err := s.app.InstallationClient(ctx, site.InstallationId)
	if err != nil {
		return "", err
	}

	if _, err := client.GetContent(ctx, site.RepoFullName, repoPath, site.DefaultBranch); err == nil {
		return "", ErrFileExists
	} else if !errors.Is(err, github.ErrNotFound) {
		return "", err
	}

	branch, err := s.branchOffTip(ctx, client, site, "hub-create")
	if err != nil {
		return "", err
	}

	if message == "" {
		message = fmt.Sprintf("Create %s", repoPath)
	}
	commitSha, err := client.PutContent(ctx, site.RepoFullName, repoPath, branch, message, contentB64, "")
	if err != nil {
		return "", err
	}

	s.logActivity(siteId, userId, model.ActionAssetUploaded, repoPath)
	return commitSha, nil
}

// DeleteAsset commits a file deletion on a fresh branch off the default
// branch tip.
func (s *CommitService) DeleteAsset(ctx context.Context, userId string, req *model.DeleteAssetReq) (*model.DeleteAssetResp, error) {
	site, err := s.siteService.RequireMemberSite(req.SiteId, userId)
	if err != nil {
		return nil, err
	}

	repoPath, err := tool.SanitizePath(req.FilePath)
	if err != nil {
		return nil, err
	}

	client, err := s.app.InstallationClient(ctx, site.InstallationId)
	if err != nil {
		return nil, err
	}

	branch, err := s.branchOffTip(ctx, client, site, "hub-delete")
	if err != nil {
		return nil, err
	}

	message := req.Message
	if message == "" {
		message = fmt.Sprintf("Delete %s", repoPath)
	}

	commitSha, err := client.DeleteContent(ctx, site.RepoFullName, repoPath, branch, message, req.Sha)
	if err != nil {
		return nil, err
	}

	s.logActivity(req.SiteId, userId, model.ActionAssetDeleted, repoPath)

	return &model.DeleteAssetResp{
		Success:   true,
		CommitSha: commitSha,
	}, nil
}

func (s *CommitService) logActivity(siteId, userId, action, detail string) {
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
