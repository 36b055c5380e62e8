package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"sort"
	"strings"
	"time"

	"FriendKeeper/internal/cli/repo"
)

// CookieName — имя cookie с auth-токеном, совпадает с серверным.
const CookieName = "auth_token"

// Client — тонкий JSON-клиент FriendKeeper API.
type Client struct {
	BaseURL string
	Token   string
	HTTP    *http.Client
}

// NewClient создаёт клиента с таймаутом по умолчанию.
func NewClient(baseURL, token string) *Client {
	return &Client{
		BaseURL: strings.TrimRight(baseURL, "/"),
		Token:   token,
		HTTP:    &http.Client{Timeout: 15 * time.Second},
	}
}

// StatusError — ответ сервера с кодом вне 2xx.
type StatusError struct {
	Status  int
	Message string
	Fields  map[string]string
}

func (e *StatusError) Error() string {
	msg := e.Message
	if msg == "" {
		msg = http.StatusText(e.Status)
	}
	if len(e.Fields) == 0 {
		return fmt.Sprintf("server status %d: %s", e.Status, msg)
	}
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+e.Fields[k])
	}
	return fmt.Sprintf("server status %d: %s (%s)", e.Status, msg, strings.Join(parts, "; "))
}

// IsStatus сообщает, что err — StatusError с указанным кодом.
func IsStatus(err error, status int) bool {
	var se *StatusError
	return errors.As(err, &se) && se.Status == status
}

type errorBody struct {
	Message string              `json:"message"`
	Error   string              `json:"error"`
	Errors  map[string]string `json:"errors"`
}

// errorFromResponse разбирает тело ошибки вида {message, errors} или {error}.
func errorFromResponse(status int, body []byte) *StatusError {
	se := &StatusError{Status: status}
	var eb errorBody
	if err := json.Unmarshal(body, &eb); err == nil {
		se.Message = eb.Message
		if se.Message == "" {
			se.Message = eb.Error
		}
		se.Fields = eb.Errors
	} else {
		se.Message = strings.TrimSpace(string(body))
	}
	return se
}

// Do отправляет запрос; payload != nil кодируется в JSON.
func (c *Client) Do(ctx context.Context, method, path string, payload any) (*http.Response, []byte, error) {
	var body io.Reader
	if payload != nil {
		b, err := json.Marshal(payload)
		if err != nil {
			return nil, nil, err
		}
		body = bytes.NewReader(b)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.BaseURL+path, body)
	if err != nil {
		return nil, nil, err
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")
	if c.Token != "" {
		req.AddCookie(&http.Cookie{Name: CookieName, Value: c.Token})
	}
	httpClient := c.HTTP
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	resp, err := httpClient.Do(req)
	if err != nil {
		return nil, nil, err
	}
	defer resp.Body.Close()
	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return resp, nil, fmt.Errorf("read body: %w", err)
	}
	return resp, respBody, nil
}

// Call выполняет запрос и декодирует успешный ответ в out (если out != nil).
func (c *Client) Call(ctx context.Context, method, path string, payload, out any) (*http.Response, error) {
	resp, body, err := c.Do(ctx, method, path, payload)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return resp, errorFromResponse(resp.StatusCode, body)
	}
	if out != nil && len(bytes.TrimSpace(body)) > 0 {
		if err := json.Unmarshal(body, out); err != nil {
			return resp, fmt.Errorf("decode: %w", err)
		}
	}
	return resp, nil
}

// PersistAuthFromResponse извлекает auth cookie из ответа и сохраняет его.
func PersistAuthFromResponse(resp *http.Response, store repo.TokenStore) error {
	for _, c := range resp.Cookies() {
		if c.Name == CookieName && c.Value != "" {
			return store.Save(c.Value)
		}
	}
	return fmt.Errorf("no auth cookie in response")
}
