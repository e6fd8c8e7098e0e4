// Package api — HTTP-клиент для API учётных записей и сообщений.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/magabrotheeeer/account-messenger/internal/models"
)

// Error — ответ сервера с success=false.
type Error struct {
	StatusCode int
	Message    string
}

func (e *Error) Error() string {
	return fmt.Sprintf("api: %d: %s", e.StatusCode, e.Message)
}

// StatusCode возвращает HTTP-статус ошибки API или 0, если err не от сервера.
func StatusCode(err error) int {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode
	}
	return 0
}

type envelope struct {
	Success bool             `json:"success"`
	Message string           `json:"message"`
	User    *models.UserView `json:"user,omitempty"`
}

type Client struct {
	baseURL    string
	httpClient *http.Client
}

// New создаёт клиент для сервера по адресу baseURL, например http://localhost:3000.
// При httpClient == nil используется клиент с таймаутом 10 секунд.
func New(baseURL string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 10 * time.Second}
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: httpClient,
	}
}

// Login входит в учётную запись и возвращает пользователя без пароля.
func (c *Client) Login(ctx context.Context, username, password string) (models.UserView, error) {
	env, err := c.call(ctx, http.MethodPost, "/api/login", map[string]string{
		"username": username,
		"password": password,
	})
	if err != nil {
		return models.UserView{}, err
	}
	if env.User == nil {
		return models.UserView{}, errors.New("api: login response has no user")
	}
	return *env.User, nil
}

// CreateUser создаёт учётную запись со сроком expiryDays дней.
func (c *Client) CreateUser(ctx context.Context, username, password string, expiryDays int) (string, error) {
	env, err := c.call(ctx, http.MethodPost, "/api/admin/create-user", map[string]any{
		"username":   username,
		"password":   password,
		"expiryDays": expiryDays,
	})
	if err != nil {
		return "", err
	}
	return env.Message, nil
}

// Broadcast рассылает сообщение всем обычным пользователям.
func (c *Client) Broadcast(ctx context.Context, text string) (string, error) {
	env, err := c.call(ctx, http.MethodPost, "/api/admin/send-message", map[string]string{"message": text})
	if err != nil {
		return "", err
	}
	return env.Message, nil
}

// Reply отправляет ответ пользователя администратору.
func (c *Client) Reply(ctx context.Context, username, text string) (string, error) {
	env, err := c.call(ctx, http.MethodPost, "/api/user/send-reply", map[string]string{
		"username": username,
		"reply":    text,
	})
	if err != nil {
		return "", err
	}
	return env.Message, nil
}

// GetUser возвращает пользователя по имени.
func (c *Client) GetUser(ctx context.Context, username string) (models.UserView, error) {
	env, err := c.call(ctx, http.MethodGet, "/api/user/"+url.PathEscape(username), nil)
	if err != nil {
		return models.UserView{}, err
	}
	if env.User == nil {
		return models.UserView{}, errors.New("api: user response has no user")
	}
	return *env.User, nil
}

// ListUsers возвращает всю таблицу пользователей.
func (c *Client) ListUsers(ctx context.Context) (models.Users, error) {
	resp, err := c.do(ctx, http.MethodGet, "/api/admin/users", nil)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, decodeError(resp)
	}

	var users models.Users
	if err := json.NewDecoder(resp.Body).Decode(&users); err != nil {
		return nil, fmt.Errorf("api: decode users: %w", err)
	}
	return users, nil
}

// Send передаёт запрос на исходящую отправку.
func (c *Client) Send(ctx context.Context, target, messageType string) (string, error) {
	env, err := c.call(ctx, http.MethodPost, "/api/pesan", map[string]string{
		"target":      target,
		"messageType": messageType,
	})
	if err != nil {
		return "", err
	}
	return env.Message, nil
}

func (c *Client) call(ctx context.Context, method, path string, body any) (envelope, error) {
	resp, err := c.do(ctx, method, path, body)
	if err != nil {
		return envelope{}, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return envelope{}, decodeError(resp)
	}

	var env envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return envelope{}, fmt.Errorf("api: decode response: %w", err)
	}
	if !env.Success {
		return envelope{}, &Error{StatusCode: resp.StatusCode, Message: env.Message}
	}
	return env, nil
}

func (c *Client) do(ctx context.Context, method, path string, body any) (*http.Response, error) {
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			return nil, err
		}
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, &buf)
	if err != nil {
		return nil, err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("api: %s %s: %w", method, path, err)
	}
	return resp, nil
}

func decodeError(resp *http.Response) error {
	b, _ := io.ReadAll(io.LimitReader(resp.Body, 64<<10))
	var env envelope
	if err := json.Unmarshal(b, &env); err == nil && env.Message != "" {
		return &Error{StatusCode: resp.StatusCode, Message: env.Message}
	}
	return &Error{StatusCode: resp.StatusCode, Message: strings.TrimSpace(string(b))}
}
