package webui

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/fatih/color"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
	"go.uber.org/zap/zaptest"

	"github.com/ctow-cli/ctow/configs"
	"github.com/ctow-cli/ctow/converter"
)

type client struct {
	t      *testing.T
	h      http.Handler
	cookie *http.Cookie
}

func (c *client) do(method, target, body string) *httptest.ResponseRecorder {
	c.t.Helper()
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if c.cookie != nil {
		req.AddCookie(c.cookie)
	}
	w := httptest.NewRecorder()
	c.h.ServeHTTP(w, req)
	for _, cookie := range w.Result().Cookies() {
		if cookie.Name == sessionCookie {
			c.cookie = cookie
		}
	}
	return w
}

func (c *client) command(line string) CommandResponse {
	c.t.Helper()
	body, err := json.Marshal(CommandRequest{Command: line})
	require.NoError(c.t, err)
	w := c.do(http.MethodPost, "/api/command", string(body))
	require.Equal(c.t, http.StatusOK, w.Code)

	resp := CommandResponse{}
	require.NoError(c.t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}

func newTestWebApp(t *testing.T) (*WebApp, *client) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	color.NoColor = true
	t.Setenv(configs.EnvOutputFormat, "plain")

	config, err := configs.NewConfig(t.TempDir())
	require.NoError(t, err)
	app := NewWebApp(config, zaptest.NewLogger(t))
	h, err := app.Handler()
	require.NoError(t, err)
	return app, &client{t: t, h: h}
}

func TestCommand(t *testing.T) {
	app, c := newTestWebApp(t)

	resp := c.command("curl -k http://a.test")
	assert.True(t, resp.Success)
	assert.Equal(t, "wget --no-check-certificate 'http://a.test'\n", resp.Output)
	require.NotNil(t, c.cookie)

	resp = c.command("wget http://a.test")
	assert.False(t, resp.Success)
	assert.Equal(t, "Unrecognized command: wget", resp.Error)
	assert.Equal(t, "UnrecognisedCommand", resp.Kind)

	resp = c.command("curl -L")
	assert.Equal(t, "ArgConversion", resp.Kind)

	// same cookie, same session
	assert.Len(t, app.sessions, 1)

	resp = c.command("exit")
	assert.True(t, resp.Success)
	assert.True(t, resp.Ended)
	assert.Empty(t, app.sessions)
}

func TestCommandKeepsLine(t *testing.T) {
	_, c := newTestWebApp(t)
	for _, line := range []string{
		`curl -H X-Path: C:\dir http://a.test`,
		`curl -d #x http://a.test`,
		`curl -k  http://a.test`,
		`curl -k `,
	} {
		expected, err := converter.Convert([]string{line})
		require.NoError(t, err)
		resp := c.command(line)
		assert.True(t, resp.Success, line)
		assert.Equal(t, expected+"\n", resp.Output, line)
	}

	resp := c.command(`curl  -k`)
	assert.False(t, resp.Success)
	assert.Equal(t, "InvalidArgument", resp.Kind)
}

func TestBadRequest(t *testing.T) {
	_, c := newTestWebApp(t)
	w := c.do(http.MethodPost, "/api/command", `{"command":`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestSuggest(t *testing.T) {
	_, c := newTestWebApp(t)
	w := c.do(http.MethodGet, "/api/suggest?input=curl+--ins", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"--insecure":"insecure"}`, w.Body.String())
}

func TestGetCommands(t *testing.T) {
	_, c := newTestWebApp(t)
	w := c.do(http.MethodGet, "/api/commands", "")
	require.Equal(t, http.StatusOK, w.Code)

	var commands []CommandInfo
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &commands))
	require.NotEmpty(t, commands)
	assert.Equal(t, "curl", commands[0].Name)
	assert.Contains(t, commands[0].Arguments, ArgumentInfo{Name: "-T", Description: "upload file"})
}

func TestResetAndExpire(t *testing.T) {
	app, c := newTestWebApp(t)

	c.command("version")
	require.Len(t, app.sessions, 1)

	w := c.do(http.MethodPost, "/api/reset", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, app.sessions)

	c.cookie = nil
	c.command("version")
	require.Len(t, app.sessions, 1)
	assert.Equal(t, 0, app.expireSessions(time.Now()))
	assert.Equal(t, 1, app.expireSessions(time.Now().Add(sessionTimeout+time.Minute)))
	assert.Empty(t, app.sessions)
}

func TestIndex(t *testing.T) {
	_, c := newTestWebApp(t)
	w := c.do(http.MethodGet, "/", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "/api/command")
}

func TestCleanupSessionsStops(t *testing.T) {
	defer goleak.VerifyNone(t, goleak.IgnoreCurrent())
	app, _ := newTestWebApp(t)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		app.cleanupSessions(ctx)
		close(done)
	}()
	cancel()
	<-done
}
