package services

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"time"

	config "github.com/anjiri1684/taskmate/configs"
	"github.com/anjiri1684/taskmate/logger"
	"github.com/anjiri1684/taskmate/models"
	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"
	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

var ErrExportNotConfigured = errors.New("transcript export is not configured")

var transcriptTemplate = template.Must(template.New("transcript").Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>{{.Title}}</title>
<style>
body { font-family: sans-serif; margin: 32px; color: #1f2933; }
h1 { font-size: 20px; margin-bottom: 4px; }
.meta { color: #616e7c; font-size: 12px; margin-bottom: 24px; }
.message { margin-bottom: 16px; padding: 8px 12px; border-radius: 6px; white-space: pre-wrap; }
.user { background: #e3f2fd; }
.assistant { background: #f5f5f5; }
.role { font-weight: bold; font-size: 12px; text-transform: uppercase; }
.time { color: #9aa5b1; font-size: 11px; }
</style>
</head>
<body>
<h1>{{.Title}}</h1>
<div class="meta">Exported {{.ExportedAt}} · {{len .Messages}} message(s)</div>
{{range .Messages}}<div class="message {{.Role}}">
<div class="role">{{.Role}} <span class="time">{{.CreatedAt.Format "2006-01-02 15:04"}}</span></div>
<div>{{.Content}}</div>
</div>
{{end}}</body>
</html>
`))

func transcriptTitle(conversation *models.Conversation) string {
	if conversation.Title != nil && *conversation.Title != "" {
		return *conversation.Title
	}
	return "Conversation " + conversation.ID.String()
}

func renderTranscriptHTML(conversation *models.Conversation, messages []models.Message) (string, error) {
	data := struct {
		Title      string
		ExportedAt string
		Messages   []models.Message
	}{
		Title:      transcriptTitle(conversation),
		ExportedAt: time.Now().Format("January 2, 2006 15:04"),
		Messages:   messages,
	}

	var rendered bytes.Buffer
	if err := transcriptTemplate.Execute(&rendered, data); err != nil {
		return "", errors.Wrap(err, "render transcript")
	}
	return rendered.String(), nil
}

func generatePDFFromHTML(ctx context.Context, htmlContent string) ([]byte, error) {
	ctx, cancel := chromedp.NewContext(ctx)
	defer cancel()

	var pdfBuffer []byte
	err := chromedp.Run(ctx,
		chromedp.Navigate("about:blank"),
		chromedp.ActionFunc(func(ctx context.Context) error {
			frameTree, err := page.GetFrameTree().Do(ctx)
			if err != nil {
				return err
			}
			return page.SetDocumentContent(frameTree.Frame.ID, htmlContent).Do(ctx)
		}),
		chromedp.ActionFunc(func(ctx context.Context) error {
			pdf, _, err := page.PrintToPDF().WithPrintBackground(true).Do(ctx)
			if err != nil {
				return err
			}
			pdfBuffer = pdf
			return nil
		}),
	)
	if err != nil {
		return nil, errors.Wrap(err, "print transcript to pdf")
	}
	return pdfBuffer, nil
}

func uploadTranscript(ctx context.Context, fileBytes []byte, conversationID uuid.UUID) (string, error) {
	cloudinaryURL := config.Config("CLOUDINARY_URL")
	if cloudinaryURL == "" {
		return "", ErrExportNotConfigured
	}
	cld, err := cloudinary.NewFromURL(cloudinaryURL)
	if err != nil {
		return "", errors.Wrap(err, "cloudinary client")
	}

	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	uploadResult, err := cld.Upload.Upload(ctx, bytes.NewReader(fileBytes), uploader.UploadParams{
		PublicID:     fmt.Sprintf("%s_%s", conversationID, uuid.New()),
		Folder:       "taskmate_transcripts",
		ResourceType: "raw",
	})
	if err != nil {
		return "", errors.Wrap(err, "upload transcript")
	}
	return uploadResult.SecureURL, nil
}

// ExportTranscript renders the conversation to PDF and uploads it, returning
// the public URL of the uploaded file.
func ExportTranscript(ctx context.Context, conversation *models.Conversation, messages []models.Message) (string, error) {
	if config.Config("CLOUDINARY_URL") == "" {
		return "", ErrExportNotConfigured
	}

	htmlData, err := renderTranscriptHTML(conversation, messages)
	if err != nil {
		return "", err
	}

	pdfBytes, err := generatePDFFromHTML(ctx, htmlData)
	if err != nil {
		return "", err
	}

	url, err := uploadTranscript(ctx, pdfBytes, conversation.ID)
	if err != nil {
		return "", err
	}

	logger.Log.Info("✅ Exported conversation transcript",
		zap.String("conversation_id", conversation.ID.String()),
		zap.Int("messages", len(messages)),
		zap.String("url", url))
	return url, nil
}
