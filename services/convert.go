package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"opmltotrello/config"
	"opmltotrello/utils"
)

const (
	// FormatTrello はTrelloカード形式で出力します
	FormatTrello = "trello"
	// FormatStory はストーリー形式で出力します
	FormatStory = "story"
)

// ErrFormatConflict は send-trello と format=story が同時に指定された場合のエラーです
var ErrFormatConflict = errors.New("send-trello と format=story は同時に指定できません")

// ConvertOptions は変換処理のオプションです
type ConvertOptions struct {
	OPMLPath   string
	Format     string
	OutputPath string
	SendTrello bool
	DryRun     bool
}

// ConvertService はOPMLからTrelloカードへの変換を処理します
type ConvertService struct {
	config *config.Config
	board  BoardAPI
	stdout io.Writer
}

// NewConvertService は新しい変換サービスを作成します
func NewConvertService(cfg *config.Config, board BoardAPI, stdout io.Writer) *ConvertService {
	return &ConvertService{
		config: cfg,
		board:  board,
		stdout: stdout,
	}
}

// Run は変換処理全体を実行します
func (c *ConvertService) Run(ctx context.Context, opts ConvertOptions) error {
	startTime := time.Now()
	defer utils.TrackTime(startTime, "変換処理全体")

	if opts.Format == "" {
		opts.Format = FormatTrello
	}
	if opts.Format != FormatTrello && opts.Format != FormatStory {
		return fmt.Errorf("不明な出力形式です: %s", opts.Format)
	}
	if opts.SendTrello && opts.Format == FormatStory {
		return ErrFormatConflict
	}

	root, err := ReadOPMLFile(opts.OPMLPath)
	if err != nil {
		return err
	}

	stories, err := OpmlToStories(root)
	if err != nil {
		return err
	}
	utils.LogInfo("ストーリーを抽出しました: %d 件", len(stories))

	if opts.Format == FormatStory {
		return c.output(opts.OutputPath, stories)
	}

	cards, err := StoriesToCards(stories, c.config)
	if err != nil {
		return fmt.Errorf("カード変換エラー: %w", err)
	}

	if !opts.SendTrello {
		return c.output(opts.OutputPath, cards)
	}

	result, err := SendTrello(ctx, c.board, cards, c.config, opts.DryRun)
	if err != nil {
		return err
	}

	if opts.DryRun {
		return c.output(opts.OutputPath, result.ValidCards)
	}
	return c.output(opts.OutputPath, result.Responses)
}

func (c *ConvertService) output(path string, v any) error {
	if path != "" {
		return WriteJSONFile(path, v)
	}
	return WriteJSON(c.stdout, v)
}
