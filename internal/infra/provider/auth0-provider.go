package provider

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"scribe-api/internal/domain/dto"
	"scribe-api/internal/infra/logger"
)

// Auth0Provider talks to the identity provider's tenant API: token
// verification via /userinfo and user management via /api/v2.
type Auth0Provider struct {
	Logger       *logger.Logger
	HttpClient   *http.Client
	BaseURL      string
	ClientID     string
	ClientSecret string
	Audience     string
	Cache        *TokenCache
}

func NewAuth0Provider(logger *logger.Logger, httpClient *http.Client, baseURL, clientID, clientSecret, audience string, cache *TokenCache) *Auth0Provider {
	return &Auth0Provider{
		Logger:       logger,
		HttpClient:   httpClient,
		BaseURL:      baseURL,
		ClientID:     clientID,
		ClientSecret: clientSecret,
		Audience:     audience,
		Cache:        cache,
	}
}

// VerifyToken resolves an access token to the subject it was issued for.
func (p *Auth0Provider) VerifyToken(ctx context.Context, accessToken string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fmt.Sprintf("%s/userinfo", p.BaseURL), nil)
	if err != nil {
		return "", fmt.Errorf("failed to create HTTP request: %w", err)
	}
	req.Header.Set("Authorization", fmt.Sprintf("Bearer %s", accessToken))
	req.Header.Set("Accept", "application/json")

	res, err := p.HttpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("HTTP request failed: %w", err)
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(res.Body)
		p.Logger.Warn(fmt.Sprintf("Token verification rejected with status %s response_body %s", res.Status, string(body)))
		return "", fmt.Errorf("token rejected: %s", res.Status)
	}

	var claims struct {
		Sub string `json:"sub"`
	}
	if err := json.NewDecoder(res.Body).Decode(&claims); err != nil {
		return "", fmt.Errorf("error decoding response JSON: %w", err)
	}
	if claims.Sub == "" {
		return "", fmt.Errorf("no subject in token claims")
	}

	return claims.Sub, nil
}

// UpdateProfile renames a user through the management API.
func (p *Auth0Provider) UpdateProfile(ctx context.Context, userID string, name string) (map[string]any, error) {
	managementToken, err := p.Cache.Token(p.fetchManagementToken)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch management token: %w", err)
	}

	payload, err := json.Marshal(map[string]string{"name": name})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal payload: %w", err)
	}

	url := fmt.Sprintf("%s/api/v2/users/%s", p.BaseURL, userID)
	req, err := http.NewRequestWithContext(ctx, http.MethodPatch, url, bytes.NewBuffer(payload))
	if err != nil {
		return nil, fmt.Errorf("failed to create HTTP request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", fmt.Sprintf("Bearer %s", managementToken))

	res, err := p.HttpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("HTTP request failed: %w", err)
	}
	defer res.Body.Close()

	if res.StatusCode < http.StatusOK || res.StatusCode >= http.StatusMultipleChoices {
		body, _ := io.ReadAll(res.Body)
		p.Logger.Error(fmt.Sprintf("Unexpected HTTP status %s response_body %s", res.Status, string(body)))
		return nil, fmt.Errorf("failed to update user: %s", res.Status)
	}

	var data map[string]any
	if err := json.NewDecoder(res.Body).Decode(&data); err != nil {
		return nil, fmt.Errorf("error decoding response JSON: %w", err)
	}

	return data, nil
}

func (p *Auth0Provider) fetchManagementToken() (dto.TokenResponse, error) {
	p.Logger.Info("Fetching new management API token")

	payload, err := json.Marshal(map[string]string{
		"client_id":     p.ClientID,
		"client_secret": p.ClientSecret,
		"audience":      p.Audience,
		"grant_type":    "client_credentials",
	})
	if err != nil {
		return dto.TokenResponse{}, fmt.Errorf("failed to marshal payload: %w", err)
	}

	req, err := http.NewRequest(http.MethodPost, fmt.Sprintf("%s/oauth/token", p.BaseURL), bytes.NewBuffer(payload))
	if err != nil {
		return dto.TokenResponse{}, fmt.Errorf("failed to create HTTP request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	res, err := p.HttpClient.Do(req)
	if err != nil {
		return dto.TokenResponse{}, fmt.Errorf("failed to send request: %w", err)
	}
	defer res.Body.Close()

	if res.StatusCode < 200 || res.StatusCode >= 300 {
		body, _ := io.ReadAll(res.Body)
		return dto.TokenResponse{}, fmt.Errorf("unexpected HTTP status: %d, response: %s", res.StatusCode, string(body))
	}

	var tokenResponse dto.TokenResponse
	if err := json.NewDecoder(res.Body).Decode(&tokenResponse); err != nil {
		return dto.TokenResponse{}, fmt.Errorf("error decoding response JSON: %w", err)
	}

	return tokenResponse, nil
}
