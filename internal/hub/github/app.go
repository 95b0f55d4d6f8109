package github

import (
	"context"
	"crypto/rsa"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/golang-jwt/jwt/v5"
)

const defaultBaseURL = "https://api.github.com"

// App holds a GitHub App credential and mints installation-scoped clients.
type App struct {
	AppId   string
	key     *rsa.PrivateKey
	baseURL string
	rest    *resty.Client
}

// NewApp normalizes and parses the App private key.
func NewApp(appId, rawKey, baseURL string) (*App, error) {
	pemKey, err := NormalizeAppPrivateKey(rawKey)
	if err != nil {
		return nil, err
	}
	key, err := jwt.ParseRSAPrivateKeyFromPEM([]byte(pemKey))
	if err != nil {
		return nil, fmt.Errorf("parse app private key: %w", err)
	}
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	return &App{
		AppId:   appId,
		key:     key,
		baseURL: baseURL,
		rest:    resty.New().SetBaseURL(baseURL).SetHeader("Accept", "application/vnd.github+json"),
	}, nil
}

// appJWT signs the short-lived App JWT used against the App endpoints.
func (a *App) appJWT() (string, error) {
	now := time.Now()
	claims := jwt.RegisteredClaims{
		Issuer:    a.AppId,
		IssuedAt:  jwt.NewNumericDate(now.Add(-time.Minute)),
		ExpiresAt: jwt.NewNumericDate(now.Add(10 * time.Minute)),
	}
	return jwt.NewWithClaims(jwt.SigningMethodRS256, claims).SignedString(a.key)
}

type installationTokenResp struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}

// InstallationToken exchanges the App JWT for a token scoped to one
// installation. Tokens are never cached across requests; every operation
// re-mints.
func (a *App) InstallationToken(ctx context.Context, installationId int64) (string, error) {
	appToken, err := a.appJWT()
	if err != nil {
		return "", err
	}

	var out installationTokenResp
	resp, err := a.rest.R().
		SetContext(ctx).
		SetAuthToken(appToken).
		SetResult(&out).
		Post(fmt.Sprintf("/app/installations/%d/access_tokens", installationId))
	if err != nil {
		return "", err
	}
	if resp.IsError() {
		return "", upstreamError("create installation token", resp)
	}
	return out.Token, nil
}

// Installation describes an App installation target account.
type Installation struct {
	Id      int64  `json:"id"`
	Account struct {
		Login string `json:"login"`
		Type  string `json:"type"`
	} `json:"account"`
	RepositorySelection string `json:"repository_selection"`
}

// GetInstallation fetches installation details with the App JWT.
func (a *App) GetInstallation(ctx context.Context, installationId int64) (*Installation, error) {
	appToken, err := a.appJWT()
	if err != nil {
		return nil, err
	}

	var out Installation
	resp, err := a.rest.R().
		SetContext(ctx).
		SetAuthToken(appToken).
		SetResult(&out).
		Get(fmt.Sprintf("/app/installations/%d", installationId))
	if err != nil {
		return nil, err
	}
	if resp.IsError() {
		return nil, upstreamError("get installation", resp)
	}
	return &out, nil
}

// InstallationClient mints a fresh installation token and binds a REST client.
func (a *App) InstallationClient(ctx context.Context, installationId int64) (*Client, error) {
	token, err := a.InstallationToken(ctx, installationId)
	if err != nil {
		return nil, err
	}
	return &Client{
		rest: resty.New().
			SetBaseURL(a.baseURL).
			SetHeader("Accept", "application/vnd.github+json").
			SetAuthToken(token),
	}, nil
}
