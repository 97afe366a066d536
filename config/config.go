package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// DefaultConfigPath は設定ファイルのデフォルトパスです
const DefaultConfigPath = "./.5rolliw2t.json"

const defaultAPIBaseURL = "https://api.trello.com"

// Labels は全カードに付与する2つのラベル名です
type Labels struct {
	Issue string `json:"issue" yaml:"issue" toml:"issue"`
	Open  string `json:"open" yaml:"open" toml:"open"`
}

// Config はアプリケーション全体の設定を保持します
type Config struct {
	Labels Labels `json:"labels" yaml:"labels" toml:"labels"`

	// 短縮ラベル → ボード上のラベル名
	LabelAliases map[string]string `json:"labelAliases" yaml:"labelAliases" toml:"labelAliases"`

	// Trello API設定
	APIKey        string `json:"apiKey" yaml:"apiKey" toml:"apiKey"`
	APIToken      string `json:"apiToken" yaml:"apiToken" toml:"apiToken"`
	BoardID       string `json:"boardId" yaml:"boardId" toml:"boardId"`
	InboxListName string `json:"inboxListName" yaml:"inboxListName" toml:"inboxListName"`
	APIBaseURL    string `json:"apiBaseUrl,omitempty" yaml:"apiBaseUrl,omitempty" toml:"apiBaseUrl,omitempty"`
}

// LoadConfig は設定ファイルと環境変数から設定を読み込みます
func LoadConfig(path string) (*Config, error) {
	// .envファイルを読み込む
	_ = godotenv.Load()

	if path == "" {
		path = DefaultConfigPath
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("設定ファイル読み込みエラー: %w", err)
	}

	cfg := &Config{}
	if err := decode(path, data, cfg); err != nil {
		return nil, fmt.Errorf("設定ファイル解析エラー %s: %w", path, err)
	}

	applyEnvOverrides(cfg)
	if cfg.LabelAliases == nil {
		cfg.LabelAliases = map[string]string{}
	}
	cfg.APIBaseURL = strings.TrimRight(getWithDefault(cfg.APIBaseURL, defaultAPIBaseURL), "/")

	return cfg, nil
}

// 拡張子に応じてデコーダを選択 (デフォルトはJSON)
func decode(path string, data []byte, cfg *Config) error {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		_, err := toml.Decode(string(data), cfg)
		return err
	case ".yaml", ".yml":
		return yaml.Unmarshal(data, cfg)
	default:
		return json.Unmarshal(data, cfg)
	}
}

func applyEnvOverrides(cfg *Config) {
	cfg.APIKey = getEnvWithDefault("TRELLO_API_KEY", cfg.APIKey)
	cfg.APIToken = getEnvWithDefault("TRELLO_API_TOKEN", cfg.APIToken)
	cfg.BoardID = getEnvWithDefault("TRELLO_BOARD_ID", cfg.BoardID)
	cfg.InboxListName = getEnvWithDefault("TRELLO_INBOX_LIST", cfg.InboxListName)
	cfg.APIBaseURL = getEnvWithDefault("TRELLO_API_URL", cfg.APIBaseURL)
}

// デフォルト値付きで環境変数を取得
func getEnvWithDefault(key, defaultValue string) string {
	return getWithDefault(os.Getenv(key), defaultValue)
}

func getWithDefault(value, defaultValue string) string {
	if value == "" {
		return defaultValue
	}
	return value
}
