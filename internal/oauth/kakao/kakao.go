// Package kakao — клиент authorization-code flow провайдера идентификации.
// Из профиля провайдера синтезируется локальный ник вида "<nickname>#<id>".
package kakao

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"golang.org/x/oauth2"
)

const (
	defaultAuthURL     = "https://kauth.kakao.com/oauth/authorize"
	defaultTokenURL    = "https://kauth.kakao.com/oauth/token"
	defaultUserInfoURL = "https://kapi.kakao.com/v2/user/me"
)

type Config struct {
	ClientID     string
	ClientSecret string
	RedirectURL  string

	// Переопределяются в тестах (httptest) и для self-hosted шлюзов
	AuthURL     string
	TokenURL    string
	UserInfoURL string

	HTTPClient *http.Client
}

type Client struct {
	config      *oauth2.Config
	userInfoURL string
	httpClient  *http.Client
}

func NewClient(cfg *Config) (*Client, error) {
	if cfg.ClientID == "" {
		return nil, fmt.Errorf("client ID is required")
	}
	if cfg.RedirectURL == "" {
		return nil, fmt.Errorf("redirect URL is required")
	}

	authURL := cfg.AuthURL
	if authURL == "" {
		authURL = defaultAuthURL
	}
	tokenURL := cfg.TokenURL
	if tokenURL == "" {
		tokenURL = defaultTokenURL
	}
	userInfoURL := cfg.UserInfoURL
	if userInfoURL == "" {
		userInfoURL = defaultUserInfoURL
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		// медленный провайдер не должен вешать обработчик запроса навсегда
		httpClient = &http.Client{
			Timeout: 30 * time.Second,
		}
	}

	return &Client{
		config: &oauth2.Config{
			ClientID:     cfg.ClientID,
			ClientSecret: cfg.ClientSecret,
			RedirectURL:  cfg.RedirectURL,
			Endpoint: oauth2.Endpoint{
				AuthURL:   authURL,
				TokenURL:  tokenURL,
				AuthStyle: oauth2.AuthStyleInParams,
			},
		},
		userInfoURL: userInfoURL,
		httpClient:  httpClient,
	}, nil
}

func (c *Client) ClientID() string {
	return c.config.ClientID
}

func (c *Client) RedirectURL() string {
	return c.config.RedirectURL
}

// AuthorizationURL возвращает URL авторизации провайдера:
// client_id + redirect_uri + response_type=code + state
func (c *Client) AuthorizationURL(state string) string {
	return c.config.AuthCodeURL(state)
}

// Exchange меняет авторизационный код на access token
// (POST grant_type=authorization_code на token endpoint)
func (c *Client) Exchange(ctx context.Context, code string) (*oauth2.Token, error) {
	ctx = context.WithValue(ctx, oauth2.HTTPClient, c.httpClient)

	token, err := c.config.Exchange(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("failed to exchange authorization code: %w", err)
	}

	return token, nil
}

// Profile — ответ userinfo endpoint провайдера
type Profile struct {
	ID         int64 `json:"id"`
	Properties struct {
		Nickname string `json:"nickname"`
	} `json:"properties"`
}

// Nickname синтезирует локальный ник "<displayName>#<providerID>"
func (p *Profile) Nickname() string {
	return fmt.Sprintf("%s#%d", p.Properties.Nickname, p.ID)
}

// UserProfile запрашивает профиль пользователя с Bearer-авторизацией
func (c *Client) UserProfile(ctx context.Context, token *oauth2.Token) (*Profile, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.userInfoURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build userinfo request: %w", err)
	}
	token.SetAuthHeader(req)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch user profile: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("userinfo endpoint returned status %d", resp.StatusCode)
	}

	var profile Profile
	if err := json.NewDecoder(resp.Body).Decode(&profile); err != nil {
		return nil, fmt.Errorf("failed to decode user profile: %w", err)
	}

	return &profile, nil
}
