package payments

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"
	"sync"
	"time"

	"marketplace_pagamentos/internal/domain/entities"
	"marketplace_pagamentos/internal/usecase/interfaces"
)

var ErrCredentialRequest = errors.New("credential request failed")

const (
	tokenRequestTimeout = 5 * time.Second
	// tokenSafetyMargin is subtracted from the reported expiry so a
	// token is refreshed before it actually dies mid-charge.
	tokenSafetyMargin = 30 * time.Second
)

// OAuthTokenManager acquires and caches an OAuth2 client-credentials
// token for one provider. The cache is mutex-guarded but acquisition is
// not serialized: concurrent stale readers may both fetch, which is
// tolerated because issuance is idempotent and cheap next to a charge.
type OAuthTokenManager struct {
	provider     string
	tokenURL     string
	clientID     string
	clientSecret string
	httpClient   *http.Client
	now          func() time.Time

	mu     sync.Mutex
	cached entities.ProviderCredential
}

var _ interfaces.ICredentialManager = (*OAuthTokenManager)(nil)

func NewOAuthTokenManager(provider, tokenURL, clientID, clientSecret string) *OAuthTokenManager {
	return &OAuthTokenManager{
		provider:     provider,
		tokenURL:     tokenURL,
		clientID:     clientID,
		clientSecret: clientSecret,
		httpClient:   newProviderHTTPClient(tokenRequestTimeout),
		now:          time.Now,
	}
}

func (m *OAuthTokenManager) GetToken(ctx context.Context) (entities.ProviderCredential, error) {
	now := m.now().UTC()

	m.mu.Lock()
	cached := m.cached
	m.mu.Unlock()
	if cached.Token != "" && !cached.Expired(now, tokenSafetyMargin) {
		return cached, nil
	}

	log.Printf("[payment][credentials] acquiring token provider=%s", m.provider)
	cred, err := m.fetch(ctx, now)
	if err != nil {
		// Nothing cached on failure; the caller decides whether to retry.
		log.Printf("[payment][credentials] acquisition failed provider=%s err=%v", m.provider, err)
		return entities.ProviderCredential{}, err
	}

	m.mu.Lock()
	m.cached = cred
	m.mu.Unlock()
	log.Printf("[payment][credentials] token cached provider=%s expires_at=%s", m.provider, cred.ExpiresAt.Format(time.RFC3339))
	return cred, nil
}

func (m *OAuthTokenManager) fetch(ctx context.Context, now time.Time) (entities.ProviderCredential, error) {
	body := strings.NewReader(`{"grant_type":"client_credentials"}`)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, m.tokenURL, body)
	if err != nil {
		return entities.ProviderCredential{}, fmt.Errorf("%w: %v", ErrCredentialRequest, err)
	}
	req.SetBasicAuth(m.clientID, m.clientSecret)
	req.Header.Set("Content-Type", "application/json")

	resp, err := m.httpClient.Do(req)
	if err != nil {
		return entities.ProviderCredential{}, fmt.Errorf("%w: %v", ErrCredentialRequest, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return entities.ProviderCredential{}, fmt.Errorf("%w: status=%d body=%s", ErrCredentialRequest, resp.StatusCode, strings.TrimSpace(string(snippet)))
	}

	var payload struct {
		AccessToken string `json:"access_token"`
		TokenType   string `json:"token_type"`
		ExpiresIn   int64  `json:"expires_in"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return entities.ProviderCredential{}, fmt.Errorf("%w: decoding response: %v", ErrCredentialRequest, err)
	}
	if payload.AccessToken == "" {
		return entities.ProviderCredential{}, fmt.Errorf("%w: empty access_token", ErrCredentialRequest)
	}

	return entities.ProviderCredential{
		Provider:  m.provider,
		Token:     payload.AccessToken,
		ExpiresAt: now.Add(time.Duration(payload.ExpiresIn) * time.Second),
	}, nil
}

// StaticTokenCredentials serves a fixed access token (API-key style
// providers). No network, never expires.
type StaticTokenCredentials struct {
	provider string
	token    string
}

var _ interfaces.ICredentialManager = (*StaticTokenCredentials)(nil)

func NewStaticTokenCredentials(provider, token string) *StaticTokenCredentials {
	return &StaticTokenCredentials{provider: provider, token: token}
}

func (c *StaticTokenCredentials) GetToken(_ context.Context) (entities.ProviderCredential, error) {
	if c.token == "" {
		return entities.ProviderCredential{}, fmt.Errorf("%w: missing access token for %s", ErrCredentialRequest, c.provider)
	}
	return entities.ProviderCredential{Provider: c.provider, Token: c.token}, nil
}

// MerchantKeyCredentials serves a merchant id/key pair (header-auth
// acquirers). No network, never expires.
type MerchantKeyCredentials struct {
	provider    string
	merchantID  string
	merchantKey string
}

var _ interfaces.ICredentialManager = (*MerchantKeyCredentials)(nil)

func NewMerchantKeyCredentials(provider, merchantID, merchantKey string) *MerchantKeyCredentials {
	return &MerchantKeyCredentials{provider: provider, merchantID: merchantID, merchantKey: merchantKey}
}

func (c *MerchantKeyCredentials) GetToken(_ context.Context) (entities.ProviderCredential, error) {
	if c.merchantID == "" || c.merchantKey == "" {
		return entities.ProviderCredential{}, fmt.Errorf("%w: missing merchant credentials for %s", ErrCredentialRequest, c.provider)
	}
	return entities.ProviderCredential{Provider: c.provider, MerchantID: c.merchantID, MerchantKey: c.merchantKey}, nil
}
