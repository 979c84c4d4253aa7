package routes

import (
	"net/http"
	"testing"

	"github.com/anjiri1684/taskmate/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegisterAndLogin(t *testing.T) {
	app := newTestApp(t)

	register := map[string]string{"full_name": "Ada Lovelace", "email": "Ada@Example.com", "password": "engine42"}
	resp, body := doRequest(t, app, http.MethodPost, "/api/v1/auth/register", register, "")
	require.Equal(t, http.StatusCreated, resp.StatusCode, string(body))
	var user struct {
		ID    string `json:"id"`
		Email string `json:"email"`
	}
	decode(t, body, &user)
	assert.Equal(t, "ada@example.com", user.Email)
	assert.NotContains(t, string(body), "engine42")

	resp, _ = doRequest(t, app, http.MethodPost, "/api/v1/auth/register", register, "")
	assert.Equal(t, http.StatusConflict, resp.StatusCode)

	resp, body = doRequest(t, app, http.MethodPost, "/api/v1/auth/login", map[string]string{"email": "ada@example.com", "password": "engine42"}, "")
	require.Equal(t, http.StatusOK, resp.StatusCode, string(body))
	var login struct {
		Token string `json:"token"`
	}
	decode(t, body, &login)
	userID, err := utils.ParseToken(login.Token)
	require.NoError(t, err)
	assert.Equal(t, user.ID, userID.String())

	resp, _ = doRequest(t, app, http.MethodGet, "/api/v1/conversations", nil, login.Token)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp, _ = doRequest(t, app, http.MethodPost, "/api/v1/auth/login", map[string]string{"email": "ada@example.com", "password": "wrong"}, "")
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestRegisterValidation(t *testing.T) {
	app := newTestApp(t)

	resp, _ := doRequest(t, app, http.MethodPost, "/api/v1/auth/register", map[string]string{"full_name": "A", "email": "nope", "password": "123456"}, "")
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}
