// Package lineauth exchanges a LINE Login authorization code for tokens and
// the signed-in user's profile.
package lineauth

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"petskub/internal/model"

	"go.uber.org/zap"
	"golang.org/x/oauth2"
)

var (
	ErrMissingParams = errors.New("missing code or redirectUri")
	ErrNotConfigured = errors.New("LINE credentials not configured")
)

// Config holds the LINE channel credentials and endpoints.
type Config struct {
	ClientID     string
	ClientSecret string
	TokenURL     string
	ProfileURL   string
}

// Bridge performs the two upstream calls of a LINE sign-in. It keeps no
// per-request state and is safe for concurrent use.
type Bridge struct {
	cfg    Config
	client *http.Client
	logger *zap.Logger
}

// NewBridge builds a bridge that sends all upstream requests through client.
func NewBridge(cfg Config, client *http.Client, logger *zap.Logger) *Bridge {
	if client == nil {
		client = http.DefaultClient
	}
	return &Bridge{
		cfg:    cfg,
		client: client,
		logger: logger,
	}
}

func (b *Bridge) oauthConfig(redirectURI string) *oauth2.Config {
	return &oauth2.Config{
		ClientID:     b.cfg.ClientID,
		ClientSecret: b.cfg.ClientSecret,
		RedirectURL:  redirectURI,
		Endpoint: oauth2.Endpoint{
			TokenURL:  b.cfg.TokenURL,
			AuthStyle: oauth2.AuthStyleInParams,
		},
	}
}

// Exchange trades code for tokens, then fetches the user's profile with the
// new access token. Nothing is retried: the first upstream failure ends
// the exchange.
func (b *Bridge) Exchange(ctx context.Context, code, redirectURI string) (*model.ExchangeResult, error) {
	if code == "" || redirectURI == "" {
		return nil, ErrMissingParams
	}
	if b.cfg.ClientID == "" || b.cfg.ClientSecret == "" {
		return nil, ErrNotConfigured
	}

	ctx = context.WithValue(ctx, oauth2.HTTPClient, b.client)

	conf := b.oauthConfig(redirectURI)
	token, err := conf.Exchange(ctx, code)
	if err != nil {
		var rerr *oauth2.RetrieveError
		if errors.As(err, &rerr) && rerr.Response != nil {
			b.logger.Error("LINE token exchange error",
				zap.Int("status", rerr.Response.StatusCode),
				zap.ByteString("body", rerr.Body))
			return nil, fmt.Errorf("Failed to exchange code for token: %d", rerr.Response.StatusCode)
		}
		return nil, fmt.Errorf("Failed to exchange code for token: %w", err)
	}

	profile, err := b.fetchProfile(ctx, conf.Client(ctx, token))
	if err != nil {
		return nil, err
	}

	idToken, _ := token.Extra("id_token").(string)
	return &model.ExchangeResult{
		AccessToken: token.AccessToken,
		IDToken:     idToken,
		UserInfo:    *profile,
	}, nil
}

// fetchProfile calls the profile endpoint with a client that already carries
// the access token.
func (b *Bridge) fetchProfile(ctx context.Context, client *http.Client) (*model.LineProfile, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, b.cfg.ProfileURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create profile request: %w", err)
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("Failed to fetch LINE user profile: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		b.logger.Error("LINE profile fetch error", zap.Int("status", resp.StatusCode))
		return nil, errors.New("Failed to fetch LINE user profile")
	}

	// Decoding into the fixed struct drops any extra profile fields.
	var profile model.LineProfile
	if err := json.NewDecoder(resp.Body).Decode(&profile); err != nil {
		return nil, fmt.Errorf("failed to decode LINE user profile: %w", err)
	}
	return &profile, nil
}
