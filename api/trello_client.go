package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"opmltotrello/config"
)

// TrelloClient はTrello APIとのやり取りを処理します
type TrelloClient struct {
	config *config.Config
	client *http.Client
}

// NewTrelloClient は新しいTrelloクライアントを作成します
func NewTrelloClient(cfg *config.Config) *TrelloClient {
	return &TrelloClient{
		config: cfg,
		client: &http.Client{Timeout: 30 * time.Second},
	}
}

// CheckAuth はTrello認証をチェックします
func (t *TrelloClient) CheckAuth(ctx context.Context) (string, error) {
	var me struct {
		Username string `json:"username"`
	}
	if err := t.Get(ctx, "/1/members/me", nil, &me); err != nil {
		return "", fmt.Errorf("認証失敗: %w", err)
	}
	return me.Username, nil
}

// Get はリソースを取得し、レスポンスを out にデコードします
func (t *TrelloClient) Get(ctx context.Context, path string, params url.Values, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, t.buildURL(path, params), nil)
	if err != nil {
		return fmt.Errorf("リクエスト作成エラー: %w", err)
	}

	return t.do(req, out)
}

// Post はリソースを作成し、レスポンスを out にデコードします
func (t *TrelloClient) Post(ctx context.Context, path string, body any, out any) error {
	payloadBytes, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("JSONエンコードエラー: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, t.buildURL(path, nil), bytes.NewBuffer(payloadBytes))
	if err != nil {
		return fmt.Errorf("リクエスト作成エラー: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	return t.do(req, out)
}

// 認証パラメータ (key, token) を付与したURLを作成
func (t *TrelloClient) buildURL(path string, params url.Values) string {
	query := url.Values{}
	for k, v := range params {
		query[k] = v
	}
	query.Set("key", t.config.APIKey)
	query.Set("token", t.config.APIToken)

	return fmt.Sprintf("%s%s?%s", t.config.APIBaseURL, path, query.Encode())
}

func (t *TrelloClient) do(req *http.Request, out any) error {
	req.Header.Set("Accept", "application/json")

	resp, err := t.client.Do(req)
	if err != nil {
		return fmt.Errorf("リクエスト送信エラー: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(resp.Body)
		return &APIError{StatusCode: resp.StatusCode, Body: string(body)}
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("レスポンス解析エラー: %w", err)
	}
	return nil
}

// APIError は2xx以外のレスポンスを表します
type APIError struct {
	StatusCode int
	Body       string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("Trello APIエラー (status %d): %s", e.StatusCode, e.Body)
}
