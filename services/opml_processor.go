package services

import (
	"encoding/json"
	"encoding/xml"
	"fmt"
	"io"
	"os"

	"opmltotrello/models"
	"opmltotrello/utils"
)

type opmlDocument struct {
	XMLName xml.Name `xml:"opml"`
	Head    struct {
		Title string `xml:"title"`
	} `xml:"head"`
	Body struct {
		Outlines []opmlOutline `xml:"outline"`
	} `xml:"body"`
}

type opmlOutline struct {
	Text     string        `xml:"text,attr"`
	Outlines []opmlOutline `xml:"outline"`
}

// ReadOPMLFile はOPMLファイルを読み込みます
func ReadOPMLFile(path string) (models.OutlineNode, error) {
	utils.LogInfo("OPMLファイル '%s' を読み込みます", path)

	file, err := os.Open(path)
	if err != nil {
		return models.OutlineNode{}, fmt.Errorf("OPMLオープンエラー: %w", err)
	}
	defer file.Close()

	return ReadOPML(file)
}

// ReadOPML はOPMLをアウトラインのツリーに変換します。
// ルートノードのテキストは head の title、子は body 直下のアウトラインです。
func ReadOPML(r io.Reader) (models.OutlineNode, error) {
	var doc opmlDocument
	if err := xml.NewDecoder(r).Decode(&doc); err != nil {
		return models.OutlineNode{}, fmt.Errorf("OPML解析エラー: %w", err)
	}

	root := models.OutlineNode{
		Text:     doc.Head.Title,
		Children: toOutlineNodes(doc.Body.Outlines),
	}
	utils.LogDebug("OPMLを読み込みました: トップレベル %d 件", len(root.Children))
	return root, nil
}

func toOutlineNodes(outlines []opmlOutline) []models.OutlineNode {
	nodes := make([]models.OutlineNode, 0, len(outlines))
	for _, o := range outlines {
		nodes = append(nodes, models.OutlineNode{
			Text:     o.Text,
			Children: toOutlineNodes(o.Outlines),
		})
	}
	return nodes
}

// WriteJSON は値を整形したJSONとして書き込みます
func WriteJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("JSONエンコードエラー: %w", err)
	}
	return nil
}

// WriteJSONFile は値を整形したJSONとしてファイルに保存します
func WriteJSONFile(path string, v any) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("出力ファイル作成エラー: %w", err)
	}
	defer file.Close()

	if err := WriteJSON(file, v); err != nil {
		return err
	}

	utils.LogInfo("結果を '%s' に保存しました", path)
	return nil
}
