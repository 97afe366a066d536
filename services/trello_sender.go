package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"opmltotrello/config"
	"opmltotrello/models"
	"opmltotrello/utils"
)

var (
	// ErrLabelNotFound はカードのラベルがボード上に存在しない場合のエラーです
	ErrLabelNotFound = errors.New("ラベルIDが見つかりません")
	// ErrInboxListNotFound は登録先リストがボード上に存在しない場合のエラーです
	ErrInboxListNotFound = errors.New("登録先リストが見つかりません")
)

// BoardAPI はTrello APIへの読み込みと作成を行うインターフェースです
type BoardAPI interface {
	Get(ctx context.Context, path string, params url.Values, out any) error
	Post(ctx context.Context, path string, body any, out any) error
}

// SendTrello はカードのラベルを解決し、入力順に1件ずつTrelloに登録します。
// dryRun の場合は検証のみを行い、書き込みは行いません。
func SendTrello(ctx context.Context, client BoardAPI, cards []models.Card, cfg *config.Config, dryRun bool) (*models.SendResult, error) {
	if cfg.InboxListName == "" {
		utils.LogWarn("登録先リスト名 (inboxListName) が設定されていません")
	}

	board, err := fetchBoardInfo(ctx, client, cfg.BoardID)
	if err != nil {
		return nil, err
	}

	validCards, err := resolveCards(board, cards, cfg.InboxListName)
	if err != nil {
		return nil, err
	}

	result := &models.SendResult{
		Mode:       models.SendModeValidated,
		ValidCards: validCards,
		Responses:  []json.RawMessage{},
	}
	if dryRun {
		utils.LogInfo("ドライラン: %d 件のカードを検証しました", len(validCards))
		return result, nil
	}

	startTime := time.Now()
	defer utils.TrackTime(startTime, "カード登録")

	// 順序を保証するため、前の登録が完了してから次を送信する
	for i, card := range validCards {
		var res json.RawMessage
		if err := client.Post(ctx, "/1/cards", card, &res); err != nil {
			return nil, fmt.Errorf("カード登録エラー (%d/%d) %q: %w", i+1, len(validCards), card.Name, err)
		}
		utils.LogDebug("カードを登録しました (%d/%d): %s", i+1, len(validCards), card.Name)
		result.Responses = append(result.Responses, res)
	}

	result.Mode = models.SendModePosted
	utils.LogInfo("カードの登録が完了しました: %d 件", len(result.Responses))
	return result, nil
}

// fetchBoardInfo はボードのラベルと未アーカイブのリストを取得します
func fetchBoardInfo(ctx context.Context, client BoardAPI, boardID string) (*models.Board, error) {
	params := url.Values{}
	params.Set("labels", "all")
	params.Set("lists", "open")

	var board models.Board
	if err := client.Get(ctx, "/1/boards/"+boardID, params, &board); err != nil {
		return nil, fmt.Errorf("ボード情報取得エラー: %w", err)
	}
	utils.LogDebug("ボード情報を取得しました: ラベル=%d, リスト=%d", len(board.Labels), len(board.Lists))
	return &board, nil
}

// resolveCards はラベル名をIDに解決して送信用のカードを作成します。
// 1枚でも解決できないラベルがあれば全体を失敗とします。
func resolveCards(board *models.Board, cards []models.Card, inboxListName string) ([]models.CardPayload, error) {
	labelMap := make(map[string]string, len(board.Labels))
	for _, l := range board.Labels {
		if l.Name == "" {
			continue
		}
		labelMap[l.Name] = l.ID
	}

	var inboxList *models.BoardList
	for i := range board.Lists {
		if board.Lists[i].Name == inboxListName {
			inboxList = &board.Lists[i]
			break
		}
	}

	validCards := make([]models.CardPayload, 0, len(cards))
	for _, c := range cards {
		idLabels := make([]string, 0, len(c.Labels))
		for _, name := range c.Labels {
			id, ok := labelMap[name]
			if !ok {
				return nil, fmt.Errorf("%w: %s", ErrLabelNotFound, strings.Join(c.Labels, ","))
			}
			idLabels = append(idLabels, id)
		}

		if inboxList == nil {
			return nil, fmt.Errorf("%w: %q", ErrInboxListNotFound, inboxListName)
		}

		validCards = append(validCards, models.CardPayload{
			Name:     c.Name,
			Desc:     c.Desc,
			IDLabels: strings.Join(idLabels, ","),
			IDList:   inboxList.ID,
		})
	}

	return validCards, nil
}
