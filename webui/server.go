package webui

import (
	"bytes"
	"context"
	"embed"
	"fmt"
	"io/fs"
	"net/http"
	"sync"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/samber/lo"
	"go.uber.org/zap"

	"github.com/ctow-cli/ctow/configs"
	"github.com/ctow-cli/ctow/converter"
	"github.com/ctow-cli/ctow/framework"
	"github.com/ctow-cli/ctow/states"
)

//go:embed static/*
var staticFiles embed.FS

const (
	sessionCookie   = "ctow_session"
	sessionTimeout  = 30 * time.Minute
	cleanupInterval = 5 * time.Minute
)

// Session is one browser console, with its own application state.
type Session struct {
	id         string
	state      framework.State
	out        *bytes.Buffer
	lastActive time.Time

	// serializes command execution
	mu sync.Mutex
}

func newSession(config *configs.Config, logger *zap.Logger) *Session {
	out := &bytes.Buffer{}
	id := uuid.New().String()
	return &Session{
		id:         id,
		state:      states.Start(config, logger.With(zap.String("session", id)), out),
		out:        out,
		lastActive: time.Now(),
	}
}

// Exec processes one command line and returns what it printed. ended
// reports the session received exit.
func (s *Session) Exec(line string) (output string, ended bool, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.out.Reset()
	next, err := s.state.Process(line)
	output = s.out.String()
	if errors.Is(err, framework.ErrExit) {
		return output, true, nil
	}
	if err != nil {
		return output, false, err
	}
	if next.IsEnding() {
		return output, true, nil
	}
	next.SetupCommands()
	s.state = next
	return output, false, nil
}

// Suggestions completes the input with the session state.
func (s *Session) Suggestions(input string) map[string]string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.Suggestions(input)
}

// WebApp serves the browser console.
type WebApp struct {
	config *configs.Config
	logger *zap.Logger
	port   int

	// sessions map[sessionID]*Session
	sessions map[string]*Session
	mu       sync.RWMutex
}

type CommandRequest struct {
	Command string `json:"command"`
}

type CommandResponse struct {
	Success bool   `json:"success"`
	Output  string `json:"output,omitempty"`
	Error   string `json:"error,omitempty"`
	Kind    string `json:"kind,omitempty"`
	Ended   bool   `json:"ended,omitempty"`
}

type CommandInfo struct {
	Name        string         `json:"name"`
	Description string         `json:"description"`
	Arguments   []ArgumentInfo `json:"arguments"`
}

type ArgumentInfo struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

func NewWebApp(config *configs.Config, logger *zap.Logger) *WebApp {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &WebApp{
		config:   config,
		logger:   logger,
		port:     config.Port,
		sessions: make(map[string]*Session),
	}
}

// Run serves until the listener fails, the start state is not used as
// every session owns its state.
func (app *WebApp) Run(framework.State) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go app.cleanupSessions(ctx)

	r, err := app.Handler()
	if err != nil {
		app.logger.Error("failed to setup web ui", zap.Error(err))
		return
	}

	fmt.Printf("ctow web console listening on http://localhost:%d\n", app.port)
	if err := r.Run(fmt.Sprintf(":%d", app.port)); err != nil {
		app.logger.Error("web ui stopped", zap.Error(err))
	}
}

// Handler returns the gin engine serving the page and the api.
func (app *WebApp) Handler() (*gin.Engine, error) {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(cors.New(cors.Config{
		AllowAllOrigins: true,
		AllowMethods:    []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:    []string{"Origin", "Content-Type"},
		MaxAge:          12 * time.Hour,
	}))

	staticFS, err := fs.Sub(staticFiles, "static")
	if err != nil {
		return nil, errors.Wrap(err, "failed to create static file system")
	}
	r.StaticFS("/static", http.FS(staticFS))
	r.GET("/", func(c *gin.Context) {
		data, err := staticFiles.ReadFile("static/index.html")
		if err != nil {
			c.String(http.StatusInternalServerError, "Failed to read index.html")
			return
		}
		c.Data(http.StatusOK, "text/html; charset=utf-8", data)
	})

	api := r.Group("/api")
	api.Use(app.sessionMiddleware())
	{
		api.POST("/command", app.handleCommand)
		api.GET("/suggest", app.handleSuggest)
		api.GET("/commands", app.handleGetCommands)
		api.POST("/reset", app.handleReset)
	}
	return r, nil
}

func (app *WebApp) cleanupSessions(ctx context.Context) {
	ticker := time.NewTicker(cleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			app.expireSessions(now)
		}
	}
}

// expireSessions drops sessions idle for longer than sessionTimeout and
// returns how many were dropped.
func (app *WebApp) expireSessions(now time.Time) int {
	app.mu.Lock()
	defer app.mu.Unlock()

	expired := 0
	for id, session := range app.sessions {
		if now.Sub(session.lastActive) > sessionTimeout {
			session.state.Close()
			delete(app.sessions, id)
			expired++
			app.logger.Info("session expired", zap.String("session", id))
		}
	}
	return expired
}

func (app *WebApp) sessionMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		var session *Session
		cookie, err := c.Cookie(sessionCookie)

		app.mu.Lock()
		if err == nil && cookie != "" {
			session = app.sessions[cookie]
		}
		if session == nil {
			session = newSession(app.config, app.logger)
			app.sessions[session.id] = session
			app.logger.Info("session created", zap.String("session", session.id))
		}
		session.lastActive = time.Now()
		app.mu.Unlock()

		c.SetCookie(sessionCookie, session.id, int(sessionTimeout.Seconds()), "/", "", false, true)
		c.Set("session", session)
		c.Next()
	}
}

func (app *WebApp) dropSession(session *Session) {
	app.mu.Lock()
	defer app.mu.Unlock()
	if s, ok := app.sessions[session.id]; ok {
		s.state.Close()
		delete(app.sessions, session.id)
	}
}

func (app *WebApp) handleCommand(c *gin.Context) {
	session := c.MustGet("session").(*Session)
	var req CommandRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	output, ended, err := session.Exec(req.Command)
	response := CommandResponse{
		Success: err == nil,
		Output:  output,
		Ended:   ended,
	}
	if err != nil {
		response.Error = err.Error()
		if kind := converter.KindOf(err); kind != 0 {
			response.Kind = kind.String()
		}
	}
	if ended {
		app.dropSession(session)
		c.SetCookie(sessionCookie, "", -1, "/", "", false, true)
	}

	c.JSON(http.StatusOK, response)
}

func (app *WebApp) handleSuggest(c *gin.Context) {
	session := c.MustGet("session").(*Session)
	c.JSON(http.StatusOK, session.Suggestions(c.Query("input")))
}

func (app *WebApp) handleGetCommands(c *gin.Context) {
	curl := CommandInfo{
		Name:        converter.SourceTool,
		Description: "translates a curl command to a wget command",
		Arguments: lo.FlatMap(converter.Table(), func(e converter.Entry, _ int) []ArgumentInfo {
			return lo.Map(e.Flags(), func(flag string, _ int) ArgumentInfo {
				return ArgumentInfo{Name: flag, Description: e.Meaning}
			})
		}),
	}
	c.JSON(http.StatusOK, []CommandInfo{
		curl,
		{Name: "show flags", Description: "lists the supported curl flags", Arguments: []ArgumentInfo{}},
		{Name: "set config", Description: "set ctow config", Arguments: []ArgumentInfo{
			{Name: "--key", Description: "config key, e.g. CTOW_OUTPUT_FORMAT"},
			{Name: "--value", Description: "config value"},
		}},
		{Name: "version", Description: "prints the ctow version", Arguments: []ArgumentInfo{}},
		{Name: "help", Description: "prints this message", Arguments: []ArgumentInfo{}},
		{Name: "exit", Description: "closes the program", Arguments: []ArgumentInfo{}},
	})
}

func (app *WebApp) handleReset(c *gin.Context) {
	session := c.MustGet("session").(*Session)
	app.dropSession(session)

	// Expire cookie on client
	c.SetCookie(sessionCookie, "", -1, "/", "", false, true)
	c.JSON(http.StatusOK, gin.H{"success": true})
}
