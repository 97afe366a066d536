package services

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"opmltotrello/models"
)

func writeOPML(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "input.opml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestConvertServiceStoryFormat(t *testing.T) {
	var stdout bytes.Buffer
	svc := NewConvertService(testConfig(), newFakeBoard(), &stdout)

	err := svc.Run(context.Background(), ConvertOptions{OPMLPath: writeOPML(t, sampleOPML), Format: FormatStory})
	require.NoError(t, err)

	var stories []models.Story
	require.NoError(t, json.Unmarshal(stdout.Bytes(), &stories))
	require.Len(t, stories, 3)
	assert.Equal(t, "Login screen", stories[0].Title)
	assert.Equal(t, "- Validate & submit", stories[0].Description)
	assert.Equal(t, "1", stories[1].ParentID)
	assert.Equal(t, []string{"1"}, stories[1].DependIDs)
}

func TestConvertServiceTrelloFormatToFile(t *testing.T) {
	var stdout bytes.Buffer
	svc := NewConvertService(testConfig(), newFakeBoard(), &stdout)
	output := filepath.Join(t.TempDir(), "cards.json")

	err := svc.Run(context.Background(), ConvertOptions{OPMLPath: writeOPML(t, sampleOPML), OutputPath: output})
	require.NoError(t, err)
	assert.Empty(t, stdout.String())

	data, err := os.ReadFile(output)
	require.NoError(t, err)

	var cards []models.Card
	require.NoError(t, json.Unmarshal(data, &cards))
	require.Len(t, cards, 3)
	assert.Equal(t, "1: (2/3/5) Login screen", cards[0].Name)
	assert.Equal(t, []string{"Issue", "Frontend", "Open"}, cards[0].Labels)
	assert.Equal(t, "2: Error message #1 &1", cards[1].Name)
	assert.Equal(t, []string{"Open"}, cards[1].Labels)
}

func TestConvertServiceSendTrello(t *testing.T) {
	opml := `<opml><body><outline text="#1_ A"/><outline text="#2_ B"/></body></opml>`

	t.Run("dry run prints valid cards", func(t *testing.T) {
		var stdout bytes.Buffer
		fake := newFakeBoard()
		svc := NewConvertService(testConfig(), fake, &stdout)

		err := svc.Run(context.Background(), ConvertOptions{OPMLPath: writeOPML(t, opml), SendTrello: true, DryRun: true})
		require.NoError(t, err)

		var cards []models.CardPayload
		require.NoError(t, json.Unmarshal(stdout.Bytes(), &cards))
		assert.Len(t, cards, 2)
		assert.Empty(t, fake.posted)
	})

	t.Run("live run prints responses", func(t *testing.T) {
		var stdout bytes.Buffer
		fake := newFakeBoard()
		svc := NewConvertService(testConfig(), fake, &stdout)

		err := svc.Run(context.Background(), ConvertOptions{OPMLPath: writeOPML(t, opml), SendTrello: true})
		require.NoError(t, err)

		var responses []map[string]string
		require.NoError(t, json.Unmarshal(stdout.Bytes(), &responses))
		require.Len(t, responses, 2)
		assert.Equal(t, "card1", responses[0]["id"])
		assert.Len(t, fake.posted, 2)
	})
}

func TestConvertServiceErrors(t *testing.T) {
	svc := NewConvertService(testConfig(), newFakeBoard(), &bytes.Buffer{})

	err := svc.Run(context.Background(), ConvertOptions{OPMLPath: "unused", Format: FormatStory, SendTrello: true})
	assert.ErrorIs(t, err, ErrFormatConflict)

	err = svc.Run(context.Background(), ConvertOptions{OPMLPath: "unused", Format: "csv"})
	assert.Error(t, err)

	bad := `<opml><body><outline text="#1_x"/><outline text="#2_ ok"><outline text="#3_"/></outline></body></opml>`
	err = svc.Run(context.Background(), ConvertOptions{OPMLPath: writeOPML(t, bad)})
	var parseErrs models.ParseErrors
	require.True(t, errors.As(err, &parseErrs))
	assert.Len(t, parseErrs, 2)
}
