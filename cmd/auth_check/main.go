package main

import (
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"opmltotrello/api"
	"opmltotrello/config"
	"opmltotrello/utils"
)

func main() {
	if err := newAuthCheckCommand().Execute(); err != nil {
		printError(os.Stderr, err)
		os.Exit(1)
	}
}

// 引数エラーも含めてエラーを表示する
func printError(w io.Writer, err error) {
	color.New(color.FgRed).Fprintf(w, "error: %v\n", err)
}

func newAuthCheckCommand() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "auth_check",
		Short: "Trello認証確認ツール",
		Long: `このツールはTrello APIの認証情報が正しく設定されているかを確認します。

環境変数:
  TRELLO_API_KEY      Trello APIキー (設定ファイルより優先)
  TRELLO_API_TOKEN    Trello APIトークン (設定ファイルより優先)`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			utils.LogInfo("Trello認証確認ツール")

			// 設定の読み込み
			cfg, err := config.LoadConfig(configPath)
			if err != nil {
				return fmt.Errorf("設定の読み込みに失敗しました: %w", err)
			}

			// 認証チェック
			utils.LogInfo("Trello APIの認証を確認しています...")
			username, err := api.NewTrelloClient(cfg).CheckAuth(cmd.Context())
			if err != nil {
				utils.LogError("認証情報を確認してください。")
				return fmt.Errorf("Trello認証エラー: %w", err)
			}

			utils.LogInfo("Trello認証成功！ ユーザー: %s", username)
			return nil
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", config.DefaultConfigPath, "設定ファイルのパス")
	return cmd
}
