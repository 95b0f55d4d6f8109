package service

import (
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"encoding/json"
	"encoding/pem"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/justinloveless/hub-page-builder-sub002/internal/hub/github"
	"github.com/justinloveless/hub-page-builder-sub002/internal/hub/model"
	"github.com/justinloveless/hub-page-builder-sub002/internal/hub/tool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testInstallationId = int64(7)

func newTestApp(t *testing.T, mux *http.ServeMux) *github.App {
	t.Helper()

	key, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)
	pemKey := string(pem.EncodeToMemory(&pem.Block{
		Type: "RSA PRIVATE KEY", Bytes: x509.MarshalPKCS1PrivateKey(key),
	}))

	mux.HandleFunc("POST /app/installations/7/access_tokens", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(map[string]string{"token": "ghs_inst"})
	})

	// Mark responses as JSON so the resty client decodes them; the stub
	// handlers encode JSON without setting the header and net/http would
	// otherwise sniff it as text/plain.
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		mux.ServeHTTP(w, r)
	}))
	t.Cleanup(srv.Close)

	app, err := github.NewApp("12345", pemKey, srv.URL)
	require.NoError(t, err)
	return app
}

func newCommitFixture(t *testing.T, mux *http.ServeMux) (*fixture, *CommitService) {
	f := newFixture(1 << 20)
	f.siteRepo.sites[testSiteId].InstallationId = testInstallationId

	app := newTestApp(t, mux)
	f.siteService.app = app
	svc := NewCommitService(f.siteService, f.assetRepo, f.activityRepo, f.store, app)
	return f, svc
}

func TestCreateAssetsPr(t *testing.T) {
	var (
		createdRef string
		putPaths   []string
		prBase     string
	)
	mux := http.NewServeMux()
	mux.HandleFunc("GET /repos/octocat/site/git/ref/heads/main", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{
			"object": map[string]string{"sha": "tip123", "type": "commit"},
		})
	})
	mux.HandleFunc("POST /repos/octocat/site/git/refs", func(w http.ResponseWriter, r *http.Request) {
		var body map[string]string
		json.NewDecoder(r.Body).Decode(&body)
		createdRef = body["ref"]
		assert.Equal(t, "tip123", body["sha"])
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(map[string]string{"ref": body["ref"]})
	})
	mux.HandleFunc("GET /repos/octocat/site/contents/", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		json.NewEncoder(w).Encode(map[string]string{"message": "Not Found"})
	})
	mux.HandleFunc("PUT /repos/octocat/site/contents/", func(w http.ResponseWriter, r *http.Request) {
		putPaths = append(putPaths, strings.TrimPrefix(r.URL.Path, "/repos/octocat/site/contents/"))
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(map[string]any{"commit": map[string]string{"sha": "c1"}})
	})
	mux.HandleFunc("POST /repos/octocat/site/pulls", func(w http.ResponseWriter, r *http.Request) {
		var body map[string]string
		json.NewDecoder(r.Body).Decode(&body)
		prBase = body["base"]
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(map[string]any{
			"number":   31,
			"html_url": "https://github.com/octocat/site/pull/31",
		})
	})

	f, svc := newCommitFixture(t, mux)

	for _, p := range []string{"images/a.png", "index.html"} {
		_, err := f.assetService.Upload(t.Context(), testOwner, uploadReq(p, "content of "+p))
		require.NoError(t, err)
	}

	resp, err := svc.CreateAssetsPr(t.Context(), testSiteId, testOwner)
	require.NoError(t, err)

	assert.Equal(t, 31, resp.PrNumber)
	assert.Equal(t, "https://github.com/octocat/site/pull/31", resp.PrUrl)
	assert.Equal(t, "refs/heads/"+resp.Branch, createdRef)
	assert.Equal(t, "main", prBase)
	assert.ElementsMatch(t, []string{"images/a.png", "index.html"}, putPaths)

	// every staged row moved out of pending
	assert.Equal(t, 0, f.assetRepo.pendingCount(testSiteId))
}

func TestCreateAssetsPrNothingPending(t *testing.T) {
	_, svc := newCommitFixture(t, http.NewServeMux())

	_, err := svc.CreateAssetsPr(t.Context(), testSiteId, testOwner)
	assert.ErrorIs(t, err, ErrNothingPending)
}

func TestCreateFileFailsFastWhenPathExists(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /repos/octocat/site/contents/index.html", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]string{"path": "index.html", "sha": "existing"})
	})

	_, svc := newCommitFixture(t, mux)

	_, err := svc.CreateFile(t.Context(), testSiteId, testOwner, "index.html",
		tool.EncodeBase64([]byte("<html>")), "")
	assert.ErrorIs(t, err, ErrFileExists)
}

func TestDeleteAsset(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /repos/octocat/site/git/ref/heads/main", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{
			"object": map[string]string{"sha": "tip123", "type": "commit"},
		})
	})
	mux.HandleFunc("POST /repos/octocat/site/git/refs", func(w http.ResponseWriter, r *http.Request) {
		var body map[string]string
		json.NewDecoder(r.Body).Decode(&body)
		assert.True(t, strings.HasPrefix(body["ref"], "refs/heads/hub-delete-"), "ref %q", body["ref"])
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(map[string]string{"ref": body["ref"]})
	})
	mux.HandleFunc("DELETE /repos/octocat/site/contents/old.css", func(w http.ResponseWriter, r *http.Request) {
		var body map[string]string
		json.NewDecoder(r.Body).Decode(&body)
		assert.Equal(t, "blob99", body["sha"])
		json.NewEncoder(w).Encode(map[string]any{"commit": map[string]string{"sha": "del1"}})
	})

	_, svc := newCommitFixture(t, mux)

	resp, err := svc.DeleteAsset(t.Context(), testOwner, &model.DeleteAssetReq{
		SiteId:   testSiteId,
		FilePath: "old.css",
		Sha:      "blob99",
	})
	require.NoError(t, err)
	assert.True(t, resp.Success)
	assert.Equal(t, "del1", resp.CommitSha)
}
