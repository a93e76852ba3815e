package client

import (
	"context"
	"fmt"
	"net/url"
	"time"

	"github.com/go-resty/resty/v2"

	"aimaster-store/internal/config"
	"aimaster-store/internal/model"
)

// Backend is a thin typed wrapper around the remote backend's REST and auth
// APIs. Every call returns a value or an error descriptor; transport
// failures map to model.ErrRemoteUnavailable so callers can tell "backend
// said no" from "backend not reachable".
type Backend interface {
	SignInWithPassword(ctx context.Context, email, password string) (*AuthSession, error)
	SignUp(ctx context.Context, email, password string) (*AuthUser, error)

	Select(ctx context.Context, table, query string, dest interface{}) error
	Insert(ctx context.Context, table string, body, dest interface{}) error
	UpsertIgnoreDuplicates(ctx context.Context, table string, body interface{}) error
	Update(ctx context.Context, table, query string, patch, dest interface{}) error
	Delete(ctx context.Context, table, query string) error
}

type AuthUser struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}

type AuthSession struct {
	AccessToken string   `json:"access_token"`
	User        AuthUser `json:"user"`
}

type backendImpl struct {
	http    *resty.Client
	restURL string
	authURL string
}

func NewBackend(cfg *config.Backend) Backend {
	base := trimSlash(cfg.ProjectURL)

	http := resty.New().
		SetTimeout(30 * time.Second).
		SetHeader("Accept", "application/json").
		SetHeader("Content-Type", "application/json").
		SetHeader("apikey", cfg.AnonKey).
		SetHeader("Authorization", "Bearer "+cfg.AnonKey)

	return &backendImpl{
		http:    http,
		restURL: base + "/rest/v1",
		authURL: base + "/auth/v1",
	}
}

func trimSlash(s string) string {
	for len(s) > 0 && s[len(s)-1] == '/' {
		s = s[:len(s)-1]
	}
	return s
}

func (b *backendImpl) SignInWithPassword(ctx context.Context, email, password string) (*AuthSession, error) {
	var session AuthSession
	resp, err := b.http.R().
		SetContext(ctx).
		SetBody(map[string]string{"email": email, "password": password}).
		SetResult(&session).
		Post(b.authURL + "/token?grant_type=password")
	if err != nil {
		return nil, fmt.Errorf("%w: sign in: %v", model.ErrRemoteUnavailable, err)
	}
	if resp.IsError() {
		if resp.StatusCode() >= 400 && resp.StatusCode() < 500 {
			return nil, model.ErrAuthFailed
		}
		return nil, fmt.Errorf("%w: sign in: status %d", model.ErrRemoteUnavailable, resp.StatusCode())
	}
	if session.User.ID == "" {
		return nil, fmt.Errorf("%w: sign in: empty principal", model.ErrRemoteUnavailable)
	}
	return &session, nil
}

func (b *backendImpl) SignUp(ctx context.Context, email, password string) (*AuthUser, error) {
	var result struct {
		ID    string   `json:"id"`
		Email string   `json:"email"`
		User  AuthUser `json:"user"`
	}
	resp, err := b.http.R().
		SetContext(ctx).
		SetBody(map[string]string{"email": email, "password": password}).
		SetResult(&result).
		Post(b.authURL + "/signup")
	if err != nil {
		return nil, fmt.Errorf("%w: sign up: %v", model.ErrRemoteUnavailable, err)
	}
	if resp.IsError() {
		if resp.StatusCode() >= 400 && resp.StatusCode() < 500 {
			return nil, fmt.Errorf("%w: sign up rejected", model.ErrValidation)
		}
		return nil, fmt.Errorf("%w: sign up: status %d", model.ErrRemoteUnavailable, resp.StatusCode())
	}
	// the signup endpoint returns the user either inline or nested depending
	// on whether email confirmation is enabled
	user := result.User
	if user.ID == "" {
		user = AuthUser{ID: result.ID, Email: result.Email}
	}
	if user.ID == "" {
		return nil, fmt.Errorf("%w: sign up: empty principal", model.ErrRemoteUnavailable)
	}
	return &user, nil
}

func (b *backendImpl) Select(ctx context.Context, table, query string, dest interface{}) error {
	resp, err := b.http.R().
		SetContext(ctx).
		SetResult(dest).
		Get(b.tableURL(table, query))
	if err != nil {
		return fmt.Errorf("%w: select %s: %v", model.ErrRemoteUnavailable, table, err)
	}
	return restError(resp, table)
}

func (b *backendImpl) Insert(ctx context.Context, table string, body, dest interface{}) error {
	resp, err := b.http.R().
		SetContext(ctx).
		SetHeader("Prefer", "return=representation").
		SetBody(body).
		SetResult(dest).
		Post(b.tableURL(table, ""))
	if err != nil {
		return fmt.Errorf("%w: insert %s: %v", model.ErrRemoteUnavailable, table, err)
	}
	return restError(resp, table)
}

// UpsertIgnoreDuplicates inserts a row, treating a duplicate-key outcome as
// success. Used by the profile self-heal so a race against a provisioning
// trigger never surfaces as an error.
func (b *backendImpl) UpsertIgnoreDuplicates(ctx context.Context, table string, body interface{}) error {
	resp, err := b.http.R().
		SetContext(ctx).
		SetHeader("Prefer", "resolution=ignore-duplicates").
		SetBody(body).
		Post(b.tableURL(table, ""))
	if err != nil {
		return fmt.Errorf("%w: upsert %s: %v", model.ErrRemoteUnavailable, table, err)
	}
	if resp.StatusCode() == 409 {
		return nil
	}
	return restError(resp, table)
}

func (b *backendImpl) Update(ctx context.Context, table, query string, patch, dest interface{}) error {
	resp, err := b.http.R().
		SetContext(ctx).
		SetHeader("Prefer", "return=representation").
		SetBody(patch).
		SetResult(dest).
		Patch(b.tableURL(table, query))
	if err != nil {
		return fmt.Errorf("%w: update %s: %v", model.ErrRemoteUnavailable, table, err)
	}
	return restError(resp, table)
}

func (b *backendImpl) Delete(ctx context.Context, table, query string) error {
	resp, err := b.http.R().
		SetContext(ctx).
		Delete(b.tableURL(table, query))
	if err != nil {
		return fmt.Errorf("%w: delete %s: %v", model.ErrRemoteUnavailable, table, err)
	}
	return restError(resp, table)
}

func (b *backendImpl) tableURL(table, query string) string {
	u := b.restURL + "/" + url.PathEscape(table)
	if query != "" {
		u += "?" + query
	}
	return u
}

func restError(resp *resty.Response, table string) error {
	switch {
	case !resp.IsError():
		return nil
	case resp.StatusCode() == 404 || resp.StatusCode() == 406:
		return fmt.Errorf("%w: %s", model.ErrNotFound, table)
	case resp.StatusCode() >= 400 && resp.StatusCode() < 500:
		return fmt.Errorf("%w: %s: status %d: %s", model.ErrValidation, table, resp.StatusCode(), resp.String())
	default:
		return fmt.Errorf("%w: %s: status %d", model.ErrRemoteUnavailable, table, resp.StatusCode())
	}
}
