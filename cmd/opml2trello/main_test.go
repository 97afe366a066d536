package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"opmltotrello/models"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestRootCommandStoryOutput(t *testing.T) {
	dir := t.TempDir()
	cfgPath := writeFile(t, dir, "config.json", `{"labels":{"issue":"Issue","open":"Open"}}`)
	opmlPath := writeFile(t, dir, "in.opml", `<opml><body><outline text="#1_ Hello"><outline text="note"/></outline></body></opml>`)

	var stdout bytes.Buffer
	cmd := newRootCommand(&stdout)
	cmd.SetArgs([]string{"-c", cfgPath, "-f", "story", opmlPath})
	require.NoError(t, cmd.Execute())

	var stories []models.Story
	require.NoError(t, json.Unmarshal(stdout.Bytes(), &stories))
	require.Len(t, stories, 1)
	assert.Equal(t, "Hello", stories[0].Title)
	assert.Equal(t, "- note", stories[0].Description)
}

func TestRootCommandRequiresOneArg(t *testing.T) {
	cmd := newRootCommand(&bytes.Buffer{})
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{})
	assert.Error(t, cmd.Execute())
}

func TestPrintErrorListsParseErrors(t *testing.T) {
	color.NoColor = true

	var buf bytes.Buffer
	printError(&buf, models.ParseErrors{
		{Type: "item", Message: "invalid", Text: "#1_"},
		{Type: "item", Message: "invalid", Text: "#2_x"},
	})
	assert.Equal(t, "ParseError (item): invalid \"#1_\"\nParseError (item): invalid \"#2_x\"\n", buf.String())

	buf.Reset()
	printError(&buf, errors.New("boom"))
	assert.Equal(t, "error: boom\n", buf.String())
}
