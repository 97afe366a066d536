package services

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"opmltotrello/models"
)

const sampleOPML = `<?xml version="1.0" encoding="UTF-8"?>
<opml version="2.0">
  <head><title>Sprint 1</title></head>
  <body>
    <outline text="#1_ (2/3/5) [ui] Login screen">
      <outline text="Validate &amp; submit"/>
      <outline text="#2_ Error message #1_"/>
    </outline>
    <outline text="#3_ Logout"/>
  </body>
</opml>`

func TestReadOPML(t *testing.T) {
	root, err := ReadOPML(strings.NewReader(sampleOPML))
	require.NoError(t, err)

	assert.Equal(t, models.OutlineNode{
		Text: "Sprint 1",
		Children: []models.OutlineNode{
			{
				Text: "#1_ (2/3/5) [ui] Login screen",
				Children: []models.OutlineNode{
					{Text: "Validate & submit", Children: []models.OutlineNode{}},
					{Text: "#2_ Error message #1_", Children: []models.OutlineNode{}},
				},
			},
			{Text: "#3_ Logout", Children: []models.OutlineNode{}},
		},
	}, root)
}

func TestReadOPMLInvalid(t *testing.T) {
	_, err := ReadOPML(strings.NewReader("<html></html>"))
	assert.Error(t, err)
}

func TestReadOPMLFileMissing(t *testing.T) {
	_, err := ReadOPMLFile(filepath.Join(t.TempDir(), "missing.opml"))
	assert.Error(t, err)
}

func TestWriteJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteJSON(&buf, []models.CardPayload{{Name: "1: <A>", IDLabels: "x", IDList: "y"}}))

	assert.Equal(t, `[
  {
    "name": "1: <A>",
    "desc": "",
    "due": null,
    "urlSource": null,
    "idLabels": "x",
    "idList": "y"
  }
]
`, buf.String())
}

func TestWriteJSONFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.json")
	require.NoError(t, WriteJSONFile(path, map[string]int{"a": 1}))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.JSONEq(t, `{"a":1}`, string(data))
}
