package router

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/justinloveless/hub-page-builder-sub002/internal/hub/model"
	"github.com/justinloveless/hub-page-builder-sub002/internal/hub/service"
	httpx "github.com/justinloveless/hub-page-builder-sub002/pkg/http"
	"github.com/justinloveless/hub-page-builder-sub002/pkg/http/jwt"
	"github.com/justinloveless/hub-page-builder-sub002/pkg/log"
	"github.com/justinloveless/hub-page-builder-sub002/pkg/ratelimit"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	log.MustInit(log.SetDefaults())
	os.Exit(m.Run())
}

type stubTemplateRepo struct {
	templates []model.Template
}

func (s *stubTemplateRepo) Insert(t *model.Template) error {
	s.templates = append(s.templates, *t)
	return nil
}

func (s *stubTemplateRepo) List(tag string) ([]model.Template, error) {
	return s.templates, nil
}

const testSecret = "test-secret"

func newTestRouter(t *testing.T) *httptest.Server {
	t.Helper()

	httpConf := &httpx.Http{
		Mode: "test",
		Auth: httpx.Auth{SecretKey: testSecret},
	}
	tplService := service.NewTemplateService(&stubTemplateRepo{
		templates: []model.Template{{TemplateId: "tpl-1", Name: "starter"}},
	})
	limiter := ratelimit.NewMemoryLimiter(100, time.Minute)

	rt := NewRouter(httpConf, nil, nil, nil, nil, tplService, nil, nil, nil, limiter, limiter)
	srv := httptest.NewServer(rt.Router())
	t.Cleanup(srv.Close)
	return srv
}

func bearerGet(t *testing.T, url, token string) *http.Response {
	t.Helper()
	req, err := http.NewRequest(http.MethodGet, url, nil)
	require.NoError(t, err)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func TestAuthRequired(t *testing.T) {
	srv := newTestRouter(t)

	resp := bearerGet(t, srv.URL+"/api/v1/template/list", "")
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	var body httpx.ResponseErr
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.NotEmpty(t, body.Error)
}

func TestAuthorizedTemplateList(t *testing.T) {
	srv := newTestRouter(t)

	token, err := jwt.GenToken("user-1", []byte(testSecret), time.Hour)
	require.NoError(t, err)

	resp := bearerGet(t, srv.URL+"/api/v1/template/list", token)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var templates []model.Template
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&templates))
	require.Len(t, templates, 1)
	assert.Equal(t, "starter", templates[0].Name)
}

func TestExpiredTokenRejected(t *testing.T) {
	srv := newTestRouter(t)

	token, err := jwt.GenToken("user-1", []byte(testSecret), -time.Minute)
	require.NoError(t, err)

	resp := bearerGet(t, srv.URL+"/api/v1/template/list", token)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestSiteAssetsManifest(t *testing.T) {
	srv := newTestRouter(t)

	resp := bearerGet(t, srv.URL+"/api/v1/site-assets.json", "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var manifest struct {
		Version int `json:"version"`
		Slots   []struct {
			Key  string `json:"key"`
			Path string `json:"path"`
		} `json:"slots"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&manifest))
	assert.Equal(t, 1, manifest.Version)
	assert.NotEmpty(t, manifest.Slots)
}

func TestHealthAndVersion(t *testing.T) {
	srv := newTestRouter(t)

	resp := bearerGet(t, srv.URL+"/health", "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp = bearerGet(t, srv.URL+"/version", "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}
