package github

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"regexp"

	"github.com/go-resty/resty/v2"
)

var (
	ErrNotFound = errors.New("github: not found")

	repoFullNameRe = regexp.MustCompile(`^[A-Za-z0-9_.-]+/[A-Za-z0-9_.-]+$`)
)

// ValidRepoFullName reports whether name looks like "owner/repo".
func ValidRepoFullName(name string) bool {
	return repoFullNameRe.MatchString(name)
}

// Client issues REST calls authorized by one installation token.
type Client struct {
	rest *resty.Client
}

type apiError struct {
	Message string `json:"message"`
}

// UpstreamError carries the upstream API's own error message.
type UpstreamError struct {
	Op      string
	Message string
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("github: %s: %s", e.Op, e.Message)
}

func upstreamError(op string, resp *resty.Response) error {
	var e apiError
	_ = jsonUnmarshal(resp.Body(), &e)
	if e.Message == "" {
		e.Message = resp.Status()
	}
	return &UpstreamError{Op: op, Message: e.Message}
}

// Repository carries the subset of repo metadata the hub needs.
type Repository struct {
	FullName      string `json:"full_name"`
	DefaultBranch string `json:"default_branch"`
	Private       bool   `json:"private"`
}

func (c *Client) GetRepo(ctx context.Context, repo string) (*Repository, error) {
	var out Repository
	resp, err := c.rest.R().SetContext(ctx).SetResult(&out).
		Get(fmt.Sprintf("/repos/%s", repo))
	if err != nil {
		return nil, err
	}
	if resp.StatusCode() == http.StatusNotFound {
		return nil, ErrNotFound
	}
	if resp.IsError() {
		return nil, upstreamError("get repo", resp)
	}
	return &out, nil
}

type refResp struct {
	Ref    string `json:"ref"`
	Object struct {
		Sha  string `json:"sha"`
		Type string `json:"type"`
	} `json:"object"`
}

// GetBranchSha resolves a branch name to its tip commit SHA.
func (c *Client) GetBranchSha(ctx context.Context, repo, branch string) (string, error) {
	var out refResp
	resp, err := c.rest.R().SetContext(ctx).SetResult(&out).
		Get(fmt.Sprintf("/repos/%s/git/ref/heads/%s", repo, branch))
	if err != nil {
		return "", err
	}
	if resp.StatusCode() == http.StatusNotFound {
		return "", ErrNotFound
	}
	if resp.IsError() {
		return "", upstreamError("get ref", resp)
	}
	return out.Object.Sha, nil
}

// CreateBranch creates refs/heads/branch at sha.
func (c *Client) CreateBranch(ctx context.Context, repo, branch, sha string) error {
	resp, err := c.rest.R().SetContext(ctx).
		SetBody(map[string]string{"ref": "refs/heads/" + branch, "sha": sha}).
		Post(fmt.Sprintf("/repos/%s/git/refs", repo))
	if err != nil {
		return err
	}
	if resp.IsError() {
		return upstreamError("create ref", resp)
	}
	return nil
}

// Content is a single file returned from the contents API.
type Content struct {
	Path     string `json:"path"`
	Sha      string `json:"sha"`
	Content  string `json:"content"`
	Encoding string `json:"encoding"`
}

// GetContent probes a path on a ref. Returns ErrNotFound when absent.
func (c *Client) GetContent(ctx context.Context, repo, path, ref string) (*Content, error) {
	var out Content
	req := c.rest.R().SetContext(ctx).SetResult(&out)
	if ref != "" {
		req.SetQueryParam("ref", ref)
	}
	resp, err := req.Get(fmt.Sprintf("/repos/%s/contents/%s", repo, path))
	if err != nil {
		return nil, err
	}
	if resp.StatusCode() == http.StatusNotFound {
		return nil, ErrNotFound
	}
	if resp.IsError() {
		return nil, upstreamError("get content", resp)
	}
	return &out, nil
}

type commitResp struct {
	Commit struct {
		Sha string `json:"sha"`
	} `json:"commit"`
}

// PutContent writes a file on branch. sha is required when replacing.
func (c *Client) PutContent(ctx context.Context, repo, path, branch, message, contentB64, sha string) (string, error) {
	body := map[string]string{
		"message": message,
		"content": contentB64,
		"branch":  branch,
	}
	if sha != "" {
		body["sha"] = sha
	}

	var out commitResp
	resp, err := c.rest.R().SetContext(ctx).SetBody(body).SetResult(&out).
		Put(fmt.Sprintf("/repos/%s/contents/%s", repo, path))
	if err != nil {
		return "", err
	}
	if resp.IsError() {
		return "", upstreamError("put content", resp)
	}
	return out.Commit.Sha, nil
}

// DeleteContent removes a file on branch.
func (c *Client) DeleteContent(ctx context.Context, repo, path, branch, message, sha string) (string, error) {
	var out commitResp
	resp, err := c.rest.R().SetContext(ctx).
		SetBody(map[string]string{
			"message": message,
			"sha":     sha,
			"branch":  branch,
		}).
		SetResult(&out).
		Delete(fmt.Sprintf("/repos/%s/contents/%s", repo, path))
	if err != nil {
		return "", err
	}
	if resp.StatusCode() == http.StatusNotFound {
		return "", ErrNotFound
	}
	if resp.IsError() {
		return "", upstreamError("delete content", resp)
	}
	return out.Commit.Sha, nil
}

type commitObj struct {
	Sha  string `json:"sha"`
	Tree struct {
		Sha string `json:"sha"`
	} `json:"tree"`
}

// GetCommit resolves a commit SHA to its tree SHA.
func (c *Client) GetCommit(ctx context.Context, repo, sha string) (string, error) {
	var out commitObj
	resp, err := c.rest.R().SetContext(ctx).SetResult(&out).
		Get(fmt.Sprintf("/repos/%s/git/commits/%s", repo, sha))
	if err != nil {
		return "", err
	}
	if resp.StatusCode() == http.StatusNotFound {
		return "", ErrNotFound
	}
	if resp.IsError() {
		return "", upstreamError("get commit", resp)
	}
	return out.Tree.Sha, nil
}

// TreeEntry is one entry of a git tree.
type TreeEntry struct {
	Path string `json:"path"`
	Type string `json:"type"` // blob or tree
	Sha  string `json:"sha"`
	Size int64  `json:"size"`
}

type treeResp struct {
	Sha       string      `json:"sha"`
	Tree      []TreeEntry `json:"tree"`
	Truncated bool        `json:"truncated"`
}

// GetTree lists a tree, optionally recursively.
func (c *Client) GetTree(ctx context.Context, repo, treeSha string, recursive bool) ([]TreeEntry, error) {
	var out treeResp
	req := c.rest.R().SetContext(ctx).SetResult(&out)
	if recursive {
		req.SetQueryParam("recursive", "1")
	}
	resp, err := req.Get(fmt.Sprintf("/repos/%s/git/trees/%s", repo, treeSha))
	if err != nil {
		return nil, err
	}
	if resp.IsError() {
		return nil, upstreamError("get tree", resp)
	}
	return out.Tree, nil
}

// Blob is a raw git object, base64-encoded by the API.
type Blob struct {
	Sha      string `json:"sha"`
	Content  string `json:"content"`
	Encoding string `json:"encoding"`
	Size     int64  `json:"size"`
}

func (c *Client) GetBlob(ctx context.Context, repo, sha string) (*Blob, error) {
	var out Blob
	resp, err := c.rest.R().SetContext(ctx).SetResult(&out).
		Get(fmt.Sprintf("/repos/%s/git/blobs/%s", repo, sha))
	if err != nil {
		return nil, err
	}
	if resp.IsError() {
		return nil, upstreamError("get blob", resp)
	}
	return &out, nil
}

// PullRequest is the subset of the PR payload returned to callers.
type PullRequest struct {
	Number  int    `json:"number"`
	HtmlUrl string `json:"html_url"`
}

// CreatePull opens a pull request from head into base.
func (c *Client) CreatePull(ctx context.Context, repo, title, head, base, body string) (*PullRequest, error) {
	var out PullRequest
	resp, err := c.rest.R().SetContext(ctx).
		SetBody(map[string]string{
			"title": title,
			"head":  head,
			"base":  base,
			"body":  body,
		}).
		SetResult(&out).
		Post(fmt.Sprintf("/repos/%s/pulls", repo))
	if err != nil {
		return nil, err
	}
	if resp.IsError() {
		return nil, upstreamError("create pull", resp)
	}
	return &out, nil
}
