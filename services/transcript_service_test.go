package services

import (
	"testing"
	"time"

	"github.com/anjiri1684/taskmate/models"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderTranscriptHTML(t *testing.T) {
	title := "Groceries"
	conversation := &models.Conversation{ID: uuid.New(), Title: &title}
	messages := []models.Message{
		{Role: models.RoleUser, Content: "add <milk>", CreatedAt: time.Date(2026, 1, 2, 9, 30, 0, 0, time.UTC)},
		{Role: models.RoleAssistant, Content: "Great!", CreatedAt: time.Date(2026, 1, 2, 9, 31, 0, 0, time.UTC)},
	}

	html, err := renderTranscriptHTML(conversation, messages)
	require.NoError(t, err)
	assert.Contains(t, html, "<title>Groceries</title>")
	assert.Contains(t, html, "2 message(s)")
	assert.Contains(t, html, "add &lt;milk&gt;")
	assert.Contains(t, html, `class="message assistant"`)
	assert.Contains(t, html, "2026-01-02 09:30")
}

func TestTranscriptTitleFallsBackToID(t *testing.T) {
	conversation := &models.Conversation{ID: uuid.New()}
	assert.Equal(t, "Conversation "+conversation.ID.String(), transcriptTitle(conversation))
}

func TestExportTranscriptNotConfigured(t *testing.T) {
	t.Setenv("CLOUDINARY_URL", "")
	_, err := ExportTranscript(t.Context(), &models.Conversation{ID: uuid.New()}, nil)
	assert.ErrorIs(t, err, ErrExportNotConfigured)
}
