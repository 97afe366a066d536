package services

import (
	"regexp"
	"strconv"
	"strings"

	"opmltotrello/models"
)

var (
	storyPrefixRegex   = regexp.MustCompile(`^#(\d+)_`)
	storyHeaderRegex   = regexp.MustCompile(`^#(\d+)_\s+(.+)$`)
	dependRegex        = regexp.MustCompile(`#(\d+)_`)
	timesRegex         = regexp.MustCompile(`^\((?:(\d+)/)?(\d+)/(\d+)\)\s*(.*)$`)
	leadingLabelRegex  = regexp.MustCompile(`^\[([^\]]*)\]\s*(.*)$`)
	trailingLabelRegex = regexp.MustCompile(`^(.*?)\s+\[([^\]]*)\]$`)
)

// IsStoryHeader はテキストがストーリーヘッダ (#<数字>_) で始まるかを判定します
func IsStoryHeader(text string) bool {
	return storyPrefixRegex.MatchString(text)
}

// ParseStoryText はノードのテキストをストーリーに分解します。
// ヘッダに一致しない場合はIDなし (自由テキスト) のストーリーを返します。
func ParseStoryText(text string) models.Story {
	matches := storyHeaderRegex.FindStringSubmatch(text)
	if matches == nil {
		return models.Story{
			Title:     text,
			Labels:    []string{},
			DependIDs: []string{},
		}
	}

	id, content := matches[1], matches[2]

	title := content
	hasDepends := false
	if loc := dependRegex.FindStringIndex(content); loc != nil {
		title = content[:loc[0]]
		hasDepends = true
	}

	dependIDs := []string{}
	for _, m := range dependRegex.FindAllStringSubmatch(content, -1) {
		dependIDs = append(dependIDs, m[1])
	}

	body, times := parseTimes(title)
	body, labels := parseLabels(body, hasDepends)

	return models.Story{
		ID:        id,
		Title:     body,
		Times:     times,
		Labels:    labels,
		DependIDs: dependIDs,
	}
}

// 先頭の (spent/es50/es90) または (es50/es90) を取り出す
func parseTimes(text string) (string, *models.Times) {
	text = strings.TrimSpace(text)
	matches := timesRegex.FindStringSubmatch(text)
	if matches == nil {
		return text, nil
	}

	return strings.TrimSpace(matches[4]), &models.Times{
		Spent: parseOptionalInt(matches[1]),
		Es50:  parseOptionalInt(matches[2]),
		Es90:  parseOptionalInt(matches[3]),
	}
}

func parseOptionalInt(s string) *int {
	if s == "" {
		return nil
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return nil
	}
	return &n
}

// 先頭の [a, b] を取り出す。
// 依存ID (#<数字>_) の直前に空白区切りで置かれた [a, b] も受け付ける
func parseLabels(text string, beforeDepends bool) (string, []string) {
	text = strings.TrimSpace(text)
	if matches := leadingLabelRegex.FindStringSubmatch(text); matches != nil {
		return strings.TrimSpace(matches[2]), splitLabels(matches[1])
	}
	if !beforeDepends {
		return text, []string{}
	}
	if matches := trailingLabelRegex.FindStringSubmatch(text); matches != nil {
		return strings.TrimSpace(matches[1]), splitLabels(matches[2])
	}
	return text, []string{}
}

func splitLabels(s string) []string {
	labels := []string{}
	for _, l := range strings.Split(s, ",") {
		if l = strings.TrimSpace(l); l != "" {
			labels = append(labels, l)
		}
	}
	return labels
}
