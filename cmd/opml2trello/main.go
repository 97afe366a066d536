package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"opmltotrello/api"
	"opmltotrello/config"
	"opmltotrello/models"
	"opmltotrello/services"
	"opmltotrello/utils"
)

// Version はビルド時に設定されます
var Version = "dev"

func main() {
	cmd := newRootCommand(os.Stdout)
	if err := cmd.ExecuteContext(context.Background()); err != nil {
		printError(os.Stderr, err)
		os.Exit(1)
	}
}

type rootOptions struct {
	configPath string
	format     string
	output     string
	sendTrello bool
	dryRun     bool
	verbose    bool
}

func newRootCommand(stdout io.Writer) *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:   "opml2trello [オプション] <OPML_FILE>",
		Short: "OPMLのアウトラインをTrelloカードに変換します",
		Example: `  opml2trello /path/to/file.opml                      カードのJSONを標準出力に出力
  opml2trello /path/to/file.opml -o /path/to/file.json カードのJSONをファイルに出力
  opml2trello /path/to/file.opml --send-trello         カードをTrelloに登録`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		Version:       Version,
		RunE: func(cmd *cobra.Command, args []string) error {
			utils.SetVerbose(opts.verbose)

			// 設定の読み込み
			cfg, err := config.LoadConfig(opts.configPath)
			if err != nil {
				return fmt.Errorf("設定の読み込みに失敗しました: %w", err)
			}

			convertService := services.NewConvertService(cfg, api.NewTrelloClient(cfg), stdout)
			return convertService.Run(cmd.Context(), services.ConvertOptions{
				OPMLPath:   args[0],
				Format:     opts.format,
				OutputPath: opts.output,
				SendTrello: opts.sendTrello,
				DryRun:     opts.dryRun,
			})
		},
	}

	flags := cmd.Flags()
	flags.StringVarP(&opts.configPath, "config", "c", config.DefaultConfigPath, "設定ファイルのパス")
	flags.StringVarP(&opts.format, "format", "f", services.FormatTrello, "出力形式 (trello, story)")
	flags.StringVarP(&opts.output, "output", "o", "", "出力ファイルのパス")
	flags.BoolVar(&opts.sendTrello, "send-trello", false, "カードをTrelloに登録する")
	flags.BoolVar(&opts.dryRun, "dry-run", false, "send-trello を検証のみで実行する")
	flags.BoolVarP(&opts.verbose, "verbose", "v", false, "デバッグログを出力する")

	return cmd
}

// 解析エラーは1件ずつ表示する
func printError(w io.Writer, err error) {
	red := color.New(color.FgRed)

	var parseErrs models.ParseErrors
	if errors.As(err, &parseErrs) {
		for _, e := range parseErrs {
			red.Fprintf(w, "ParseError %s\n", e.Error())
		}
		return
	}
	red.Fprintf(w, "error: %v\n", err)
}
