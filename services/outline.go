package services

import (
	"strings"

	"opmltotrello/models"
)

// OpmlToStories はアウトライン全体をストーリーの一覧に変換します。
// トップレベルの各ノードは独立して処理され、解析エラーはすべて集めて
// models.ParseErrors として返します。
func OpmlToStories(root models.OutlineNode) ([]models.Story, error) {
	var errs models.ParseErrors
	stories := []models.Story{}

	for _, item := range root.Children {
		story, descendants, itemErrs := walkOutline(item, "")
		if len(itemErrs) > 0 {
			errs = append(errs, itemErrs...)
			continue
		}
		if story.IsStory() {
			stories = append(stories, story)
		}
		stories = append(stories, descendants...)
	}

	if len(errs) > 0 {
		return nil, errs
	}
	return stories, nil
}

// walkOutline はノードを解析し、ノード自身のストーリーと配下のすべてのストーリーを返します。
// parentID は最も近い祖先ストーリーのIDです。
func walkOutline(node models.OutlineNode, parentID string) (models.Story, []models.Story, []models.ParseError) {
	parsed := ParseStoryText(node.Text)
	if !parsed.IsStory() && IsStoryHeader(node.Text) {
		return models.Story{}, nil, []models.ParseError{{
			Type:    "item",
			Message: "invalid",
			Text:    node.Text,
		}}
	}

	ancestorID := parentID
	if parsed.IsStory() {
		ancestorID = parsed.ID
	}

	var (
		descendants  []models.Story
		descriptions []string
		errs         []models.ParseError
	)
	for _, child := range node.Children {
		childStory, childDescendants, childErrs := walkOutline(child, ancestorID)
		if len(childErrs) > 0 {
			errs = append(errs, childErrs...)
			continue
		}

		if childStory.IsStory() {
			descendants = append(descendants, childStory)
			descendants = append(descendants, childDescendants...)
			continue
		}

		descriptions = append(descriptions, "- "+childStory.Title)
		for _, line := range strings.Split(childStory.Description, "\n") {
			if line != "" {
				descriptions = append(descriptions, "  "+line)
			}
		}
		// 自由テキスト配下のストーリーも祖先ストーリーの子孫として扱う
		descendants = append(descendants, childDescendants...)
	}

	story := parsed
	if story.IsStory() {
		story.ParentID = parentID
	}
	story.Description = strings.Join(descriptions, "\n")

	return story, descendants, errs
}
