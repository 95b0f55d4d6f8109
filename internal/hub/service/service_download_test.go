package service

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDownloadSiteFiles(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /repos/octocat/site/git/ref/heads/main", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{
			"object": map[string]string{"sha": "tip123", "type": "commit"},
		})
	})
	mux.HandleFunc("GET /repos/octocat/site/git/commits/tip123", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{
			"sha":  "tip123",
			"tree": map[string]string{"sha": "tree1"},
		})
	})
	mux.HandleFunc("GET /repos/octocat/site/git/trees/tree1", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "1", r.URL.Query().Get("recursive"))
		json.NewEncoder(w).Encode(map[string]any{
			"sha": "tree1",
			"tree": []map[string]any{
				{"path": "index.html", "type": "blob", "sha": "b1", "size": 6},
				{"path": "images", "type": "tree", "sha": "t2"},
				{"path": "images/logo.png", "type": "blob", "sha": "b2", "size": 4},
				{"path": "broken.bin", "type": "blob", "sha": "b3", "size": 1},
			},
		})
	})
	mux.HandleFunc("GET /repos/octocat/site/git/blobs/b1", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{
			"sha": "b1", "content": "PGh0bWw+", "encoding": "base64", "size": 6,
		})
	})
	mux.HandleFunc("GET /repos/octocat/site/git/blobs/b2", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{
			"sha": "b2", "content": "cG5n", "encoding": "base64", "size": 4,
		})
	})
	mux.HandleFunc("GET /repos/octocat/site/git/blobs/b3", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		json.NewEncoder(w).Encode(map[string]string{"message": "upstream unavailable"})
	})

	f := newFixture(1 << 20)
	f.siteRepo.sites[testSiteId].InstallationId = testInstallationId
	app := newTestApp(t, mux)
	f.siteService.app = app
	svc := NewDownloadService(f.siteService, app)

	files, err := svc.DownloadSiteFiles(t.Context(), testSiteId, testOwner, "")
	require.NoError(t, err)

	// two fetchable blobs; the tree entry and the failing blob are omitted
	require.Len(t, files, 2)
	assert.Equal(t, "PGh0bWw+", files["index.html"].Content)
	assert.Equal(t, "base64", files["index.html"].Encoding)
	assert.Equal(t, "cG5n", files["images/logo.png"].Content)
}

func TestDownloadSiteFilesRequiresMembership(t *testing.T) {
	f := newFixture(1 << 20)
	svc := NewDownloadService(f.siteService, nil)

	_, err := svc.DownloadSiteFiles(t.Context(), testSiteId, "user-stranger", "")
	assert.ErrorIs(t, err, ErrNotMember)
}
