package service

import (
	"context"

	"github.com/justinloveless/hub-page-builder-sub002/internal/hub/github"
	"github.com/justinloveless/hub-page-builder-sub002/pkg/log"
)

// DownloadService materializes repository files as base64 blobs for
// client-side editing.
type DownloadService struct {
	siteService *SiteService
	app         *github.App
}

func NewDownloadService(siteService *SiteService, app *github.App) *DownloadService {
	return &DownloadService{
		siteService: siteService,
		app:         app,
	}
}

// FileContent is one downloaded file keyed by repository path.
type FileContent struct {
	Content  string `json:"content"`
	Encoding string `json:"encoding"`
}

// DownloadSiteFiles fetches every blob reachable from commitSha (or the
// default branch tip when empty). A blob that fails to fetch is logged and
// omitted; the result is partial rather than the whole call failing.
func (s *DownloadService) DownloadSiteFiles(ctx context.Context, siteId, userId, commitSha string) (map[string]FileContent, error) {
	site, err := s.siteService.RequireMemberSite(siteId, userId)
	if err != nil {
		return nil, err
	}

	client, err := s.app.InstallationClient(ctx, site.InstallationId)
	if err != nil {
		return nil, err
	}

	if commitSha == "" {
		commitSha, err = client.GetBranchSha(ctx, site.RepoFullName, site.DefaultBranch)
		if err != nil {
			return nil, err
		}
	}

	treeSha, err := client.GetCommit(ctx, site.RepoFullName, commitSha)
	if err != nil {
		return nil, err
	}

	entries, err := client.GetTree(ctx, site.RepoFullName, treeSha, true)
	if err != nil {
		return nil, err
	}

	files := make(map[string]FileContent)
	for _, entry := range entries {
		if entry.Type != "blob" {
			continue
		}
		blob, err := client.GetBlob(ctx, site.RepoFullName, entry.Sha)
		if err != nil {
			log.Warnw("skipping unfetchable blob", "path", entry.Path, "sha", entry.Sha, "error", err)
			continue
		}
		files[entry.Path] = FileContent{
			Content:  blob.Content,
			Encoding: blob.Encoding,
		}
	}
	return files, nil
}
