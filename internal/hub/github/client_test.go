package github

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

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testAppKey(t *testing.T) string {
	t.Helper()
	key, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)
	block := &pem.Block{Type: "RSA PRIVATE KEY", Bytes: x509.MarshalPKCS1PrivateKey(key)}
	return string(pem.EncodeToMemory(block))
}

// jsonContentType marks responses as JSON so the resty client decodes
// them; the stub handlers encode JSON without setting the header and
// net/http would otherwise sniff it as text/plain.
func jsonContentType(h http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		h.ServeHTTP(w, r)
	})
}

func newTestApp(t *testing.T, handler http.Handler) (*App, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(jsonContentType(handler))
	t.Cleanup(srv.Close)

	app, err := NewApp("12345", testAppKey(t), srv.URL)
	require.NoError(t, err)
	return app, srv
}

func TestInstallationTokenExchange(t *testing.T) {
	var sawAuth string
	app, _ := newTestApp(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/app/installations/42/access_tokens" && r.Method == http.MethodPost {
			sawAuth = r.Header.Get("Authorization")
			w.WriteHeader(http.StatusCreated)
			json.NewEncoder(w).Encode(map[string]string{"token": "ghs_testtoken"})
			return
		}
		w.WriteHeader(http.StatusNotFound)
	}))

	token, err := app.InstallationToken(t.Context(), 42)
	require.NoError(t, err)
	assert.Equal(t, "ghs_testtoken", token)
	assert.True(t, strings.HasPrefix(sawAuth, "Bearer "), "app JWT not sent: %q", sawAuth)
}

func TestValidRepoFullName(t *testing.T) {
	assert.True(t, ValidRepoFullName("octocat/hello-world"))
	assert.True(t, ValidRepoFullName("a.b/c_d"))
	assert.False(t, ValidRepoFullName("octocat"))
	assert.False(t, ValidRepoFullName("octocat/hello/world"))
	assert.False(t, ValidRepoFullName("octo cat/repo"))
}

func installationMux(t *testing.T) (*http.ServeMux, func(*App) *Client) {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /app/installations/7/access_tokens", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(map[string]string{"token": "ghs_inst"})
	})
	mkClient := func(app *App) *Client {
		c, err := app.InstallationClient(t.Context(), 7)
		require.NoError(t, err)
		return c
	}
	return mux, mkClient
}

func TestClientBranchAndContent(t *testing.T) {
	mux, mkClient := installationMux(t)

	mux.HandleFunc("GET /repos/acme/site/git/ref/heads/main", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{
			"ref":    "refs/heads/main",
			"object": map[string]string{"sha": "abc123", "type": "commit"},
		})
	})
	mux.HandleFunc("GET /repos/acme/site/contents/missing.txt", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		json.NewEncoder(w).Encode(map[string]string{"message": "Not Found"})
	})
	mux.HandleFunc("PUT /repos/acme/site/contents/new.txt", func(w http.ResponseWriter, r *http.Request) {
		var body map[string]string
		json.NewDecoder(r.Body).Decode(&body)
		assert.Equal(t, "feature", body["branch"])
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(map[string]any{"commit": map[string]string{"sha": "def456"}})
	})

	app, _ := newTestApp(t, mux)
	c := mkClient(app)

	sha, err := c.GetBranchSha(t.Context(), "acme/site", "main")
	require.NoError(t, err)
	assert.Equal(t, "abc123", sha)

	_, err = c.GetContent(t.Context(), "acme/site", "missing.txt", "main")
	assert.ErrorIs(t, err, ErrNotFound)

	commit, err := c.PutContent(t.Context(), "acme/site", "new.txt", "feature", "add file", "aGk=", "")
	require.NoError(t, err)
	assert.Equal(t, "def456", commit)
}

func TestClientTreeAndBlob(t *testing.T) {
	mux, mkClient := installationMux(t)

	mux.HandleFunc("GET /repos/acme/site/git/commits/abc123", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{
			"sha":  "abc123",
			"tree": map[string]string{"sha": "tree99"},
		})
	})
	mux.HandleFunc("GET /repos/acme/site/git/trees/tree99", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "1", r.URL.Query().Get("recursive"))
		json.NewEncoder(w).Encode(map[string]any{
			"sha": "tree99",
			"tree": []map[string]any{
				{"path": "index.html", "type": "blob", "sha": "b1", "size": 12},
				{"path": "assets", "type": "tree", "sha": "t2"},
			},
		})
	})
	mux.HandleFunc("GET /repos/acme/site/git/blobs/b1", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{
			"sha": "b1", "content": "aGVsbG8=", "encoding": "base64", "size": 5,
		})
	})

	app, _ := newTestApp(t, mux)
	c := mkClient(app)

	treeSha, err := c.GetCommit(t.Context(), "acme/site", "abc123")
	require.NoError(t, err)

	entries, err := c.GetTree(t.Context(), "acme/site", treeSha, true)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "index.html", entries[0].Path)

	blob, err := c.GetBlob(t.Context(), "acme/site", "b1")
	require.NoError(t, err)
	assert.Equal(t, "base64", blob.Encoding)
}

func TestClientCreatePull(t *testing.T) {
	mux, mkClient := installationMux(t)

	mux.HandleFunc("POST /repos/acme/site/pulls", func(w http.ResponseWriter, r *http.Request) {
		var body map[string]string
		json.NewDecoder(r.Body).Decode(&body)
		assert.Equal(t, "hub-assets-123", body["head"])
		assert.Equal(t, "main", body["base"])
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(map[string]any{
			"number":   17,
			"html_url": "https://github.com/acme/site/pull/17",
		})
	})

	app, _ := newTestApp(t, mux)
	c := mkClient(app)

	pr, err := c.CreatePull(t.Context(), "acme/site", "Staged asset updates", "hub-assets-123", "main", "")
	require.NoError(t, err)
	assert.Equal(t, 17, pr.Number)
	assert.Equal(t, "https://github.com/acme/site/pull/17", pr.HtmlUrl)
}

func TestUpstreamErrorMessageSurfaced(t *testing.T) {
	mux, mkClient := installationMux(t)
	mux.HandleFunc("POST /repos/acme/site/git/refs", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		json.NewEncoder(w).Encode(map[string]string{"message": "Reference already exists"})
	})

	app, _ := newTestApp(t, mux)
	c := mkClient(app)

	err := c.CreateBranch(t.Context(), "acme/site", "main", "abc")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Reference already exists")
}
