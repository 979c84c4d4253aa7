package routes

import (
	"errors"
	"net/http"
	"strings"
	"testing"

	"github.com/anjiri1684/taskmate/services"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChatReplies(t *testing.T) {
	app := newTestApp(t)

	tests := []struct {
		message string
		want    string
	}{
		{"create and list my tasks", services.SelectReply("create")},
		{"  SHOW my tasks ", services.SelectReply("list")},
		{"hello", services.SelectReply("hey")},
	}
	for _, tt := range tests {
		resp, body := doRequest(t, app, http.MethodPost, "/api/chat", map[string]string{"message": tt.message}, "")
		require.Equal(t, http.StatusOK, resp.StatusCode, string(body))

		var out struct {
			Reply string `json:"reply"`
		}
		decode(t, body, &out)
		assert.Equal(t, tt.want, out.Reply)
	}
}

func TestChatFallbackEchoesInput(t *testing.T) {
	app := newTestApp(t)

	resp, body := doRequest(t, app, http.MethodPost, "/api/chat", map[string]string{"message": "xyzzy"}, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var out struct {
		Reply string `json:"reply"`
	}
	decode(t, body, &out)
	assert.True(t, strings.HasPrefix(out.Reply, `You said: "xyzzy"`))
}

func TestChatRejectsBlankMessages(t *testing.T) {
	app := newTestApp(t)

	for _, body := range []interface{}{
		map[string]string{"message": ""},
		map[string]string{"message": "   \t\n"},
		map[string]string{},
		map[string]interface{}{"message": nil},
	} {
		resp, data := doRequest(t, app, http.MethodPost, "/api/chat", body, "")
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

		var out map[string]string
		decode(t, data, &out)
		assert.Equal(t, "Message cannot be empty", out["error"])
		assert.NotContains(t, string(data), "reply")
	}
}

func TestChatRejectsMalformedJSON(t *testing.T) {
	app := newTestApp(t)

	resp, _ := doRequest(t, app, http.MethodPost, "/api/chat", `{"message":`, "")
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestChatHealth(t *testing.T) {
	app := newTestApp(t)

	for i := 0; i < 2; i++ {
		resp, body := doRequest(t, app, http.MethodGet, "/api/chat/health", nil, "")
		require.Equal(t, http.StatusOK, resp.StatusCode)
		assert.JSONEq(t, `{"status":"chat_api_healthy"}`, string(body))
	}
}

func TestChatWebsocketRequiresUpgrade(t *testing.T) {
	app := newTestApp(t)

	resp, _ := doRequest(t, app, http.MethodGet, "/api/chat/ws", nil, "")
	assert.Equal(t, http.StatusUpgradeRequired, resp.StatusCode)
}

func TestErrorHandlerHidesInternalErrors(t *testing.T) {
	app := newTestApp(t)
	app.Get("/boom", func(c *fiber.Ctx) error {
		return errors.New("pq: relation \"secret_table\" does not exist")
	})
	app.Get("/panic", func(c *fiber.Ctx) error {
		panic("unexpected")
	})

	for _, path := range []string{"/boom", "/panic"} {
		resp, body := doRequest(t, app, http.MethodGet, path, nil, "")
		assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
		assert.NotContains(t, string(body), "secret_table")

		var out map[string]interface{}
		decode(t, body, &out)
		assert.Equal(t, "Internal server error", out["message"])
	}
}
