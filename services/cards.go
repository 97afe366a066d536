package services

import (
	"fmt"
	"strconv"
	"strings"

	"opmltotrello/config"
	"opmltotrello/models"
)

// StoriesToCards はストーリーをTrelloカードに変換します。
// 現在のルールではエラーになることはありません。
func StoriesToCards(stories []models.Story, cfg *config.Config) ([]models.Card, error) {
	cards := make([]models.Card, 0, len(stories))

	for _, story := range stories {
		labels := []string{}
		if story.ParentID == "" {
			labels = append(labels, cfg.Labels.Issue)
		}
		for _, l := range story.Labels {
			// 未定義のエイリアスは空文字になり、送信時に検出される
			labels = append(labels, cfg.LabelAliases[l])
		}
		labels = append(labels, cfg.Labels.Open)

		cards = append(cards, models.Card{
			Name:   CreateCardName(story),
			Desc:   story.Description,
			Labels: labels,
		})
	}

	return cards, nil
}

// CreateCardName はカード名を "<id>: (<times>) <title> #<parent> &<deps>" の形式で作成します
func CreateCardName(story models.Story) string {
	items := []string{story.ID + ":"}

	if !story.Times.IsEmpty() {
		var times []string
		for _, v := range []*int{story.Times.Spent, story.Times.Es50, story.Times.Es90} {
			if v != nil {
				times = append(times, strconv.Itoa(*v))
			}
		}
		items = append(items, fmt.Sprintf("(%s)", strings.Join(times, "/")))
	}

	items = append(items, story.Title)

	if story.ParentID != "" {
		items = append(items, "#"+story.ParentID)
	}

	if len(story.DependIDs) > 0 {
		deps := make([]string, 0, len(story.DependIDs))
		for _, id := range story.DependIDs {
			deps = append(deps, "&"+id)
		}
		items = append(items, strings.Join(deps, " "))
	}

	return strings.Join(items, " ")
}
