package models

import (
	"encoding/json"
	"fmt"
	"strings"
)

// OutlineNode はOPMLアウトラインの1ノードを表します
type OutlineNode struct {
	Text     string
	Children []OutlineNode
}

// Times はストーリーの実績時間と見積もりを表します (nil は未指定)
type Times struct {
	Spent *int `json:"spent,omitempty"`
	Es50  *int `json:"es50,omitempty"`
	Es90  *int `json:"es90,omitempty"`
}

// IsEmpty はいずれの値も指定されていない場合に true を返します
func (t *Times) IsEmpty() bool {
	return t == nil || (t.Spent == nil && t.Es50 == nil && t.Es90 == nil)
}

// Story はアウトラインから抽出したストーリーを表します
type Story struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	Times       *Times   `json:"times"`
	Labels      []string `json:"labels"`
	DependIDs   []string `json:"dependIds"`
	ParentID    string   `json:"parentId,omitempty"`
	Description string   `json:"description"`
}

// IsStory はIDを持つ (自由テキストではない) 場合に true を返します
func (s Story) IsStory() bool {
	return s.ID != ""
}

// Card はTrelloに登録する前のカードを表します
type Card struct {
	Name   string   `json:"name"`
	Desc   string   `json:"desc"`
	Labels []string `json:"labels"`
}

// CardPayload はラベル解決済みでTrelloに送信するカードです
type CardPayload struct {
	Name      string  `json:"name"`
	Desc      string  `json:"desc"`
	Due       *string `json:"due"`
	URLSource *string `json:"urlSource"`
	IDLabels  string  `json:"idLabels"`
	IDList    string  `json:"idList"`
}

// BoardLabel はボード上のラベルです
type BoardLabel struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// BoardList はボード上のリストです
type BoardList struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Board はTrelloボードのラベルとリストを保持します
type Board struct {
	ID     string       `json:"id"`
	Name   string       `json:"name"`
	Labels []BoardLabel `json:"labels"`
	Lists  []BoardList  `json:"lists"`
}

// SendMode は送信結果の種類です
type SendMode string

const (
	// SendModeValidated はドライラン (検証のみ) の結果です
	SendModeValidated SendMode = "validated"
	// SendModePosted は実際にカードを登録した結果です
	SendModePosted SendMode = "posted"
)

// SendResult はTrello送信の結果です
type SendResult struct {
	Mode       SendMode          `json:"-"`
	ValidCards []CardPayload     `json:"validCards"`
	Responses  []json.RawMessage `json:"responses"`
}

// ParseError はアウトライン解析時の構造エラーです
type ParseError struct {
	Type    string `json:"type"`
	Message string `json:"message"`
	Text    string `json:"text"`
}

func (e ParseError) Error() string {
	return fmt.Sprintf("(%s): %s %q", e.Type, e.Message, e.Text)
}

// ParseErrors は複数のParseErrorをまとめたものです
type ParseErrors []ParseError

func (errs ParseErrors) Error() string {
	msgs := make([]string, 0, len(errs))
	for _, e := range errs {
		msgs = append(msgs, e.Error())
	}
	return strings.Join(msgs, "\n")
}
