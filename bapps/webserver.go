package bapps

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"reflect"
	"strconv"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/gin-gonic/gin"
	"go.uber.org/atomic"
	"go.uber.org/zap"

	"github.com/ctow-cli/ctow/common"
	"github.com/ctow-cli/ctow/configs"
	"github.com/ctow-cli/ctow/converter"
	"github.com/ctow-cli/ctow/framework"
	"github.com/ctow-cli/ctow/states"
)

// WebServerApp serves conversions over http.
type WebServerApp struct {
	port   int
	config *configs.Config
	logger *zap.Logger
	errOut io.Writer

	conversions atomic.Int64
	failures    atomic.Int64
}

type convertRequest struct {
	Command string `json:"command" form:"cmd"`
}

type errorResponse struct {
	Error string `json:"error"`
	Kind  string `json:"kind"`
}

type statsResponse struct {
	Conversions int64 `json:"conversions"`
	Failures    int64 `json:"failures"`
}

func NewWebServerApp(port int, config *configs.Config, opts ...AppOption) *WebServerApp {
	opt := newAppOption(opts...)
	return &WebServerApp{
		port:   port,
		config: config,
		logger: opt.logger,
		errOut: opt.errOut,
	}
}

func (app *WebServerApp) Run(framework.State) {
	addr := fmt.Sprintf(":%d", app.port)
	app.logger.Info("start web server", zap.String("addr", addr))
	if err := app.Handler().Run(addr); err != nil {
		app.logger.Error("web server stopped", zap.Error(err))
		printError(app.errOut, err)
	}
}

// Handler returns the gin engine with every route registered.
func (app *WebServerApp) Handler() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())

	r.GET("/version", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"version": common.Version})
	})
	r.GET("/stats", func(c *gin.Context) {
		c.JSON(http.StatusOK, statsResponse{
			Conversions: app.conversions.Load(),
			Failures:    app.failures.Load(),
		})
	})
	r.GET("/convert", func(c *gin.Context) {
		req := &convertRequest{}
		if err := c.ShouldBindQuery(req); err != nil {
			c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
			return
		}
		app.convert(c, req.Command)
	})
	r.POST("/convert", func(c *gin.Context) {
		req := &convertRequest{}
		if err := c.ShouldBindJSON(req); err != nil {
			c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
			return
		}
		app.convert(c, req.Command)
	})

	app.ParseRouter(r, states.Start(app.config, app.logger, io.Discard))
	return r
}

func (app *WebServerApp) convert(c *gin.Context, line string) {
	result, err := converter.ConvertDetail(states.SplitFragments(line))
	if err != nil {
		app.failures.Inc()
		app.logger.Info("conversion failed", zap.String("command", line), zap.Error(err))
		c.JSON(http.StatusBadRequest, errorResponse{
			Error: err.Error(),
			Kind:  converter.KindOf(err).String(),
		})
		return
	}
	app.conversions.Inc()
	c.JSON(http.StatusOK, result)
}

// ParseRouter exposes every "show" command of the state as a GET route
// named after its last keyword, e.g. "show flags" serves /flags.
func (app *WebServerApp) ParseRouter(r *gin.Engine, s framework.State) {
	v := reflect.ValueOf(s)
	tp := v.Type()

	for i := 0; i < v.NumMethod(); i++ {
		mt := tp.Method(i)

		// parse method like with pattern %Command
		if !strings.HasSuffix(mt.Name, "Command") {
			continue
		}

		app.parseMethod(r, mt)
	}
}

func (app *WebServerApp) parseMethod(r *gin.Engine, mt reflect.Method) {
	t := mt.Type
	// receiver, context.Context, CmdParam
	if t.NumIn() != 3 {
		return
	}
	if !t.In(1).Implements(reflect.TypeOf((*context.Context)(nil)).Elem()) {
		return
	}
	paramType := t.In(2)
	if paramType.Kind() != reflect.Pointer || !paramType.Implements(reflect.TypeOf((*framework.CmdParam)(nil)).Elem()) {
		return
	}
	if t.NumOut() == 0 || !t.Out(0).Implements(reflect.TypeOf((*framework.ResultSet)(nil)).Elem()) {
		return
	}

	cp := reflect.New(paramType.Elem()).Interface().(framework.CmdParam)
	use, _ := cp.Desc()
	fUse, _ := framework.GetCmdFromFlag(cp)
	if len(use) == 0 {
		use = fUse
	}
	if len(use) == 0 {
		fnName := mt.Name
		use = strings.ToLower(fnName[:len(fnName)-len("Command")])
	}
	uses := framework.ParseUseSegments(use)
	// read only commands
	if len(uses) < 2 || uses[0] != "show" {
		return
	}
	lastKw := uses[len(uses)-1]

	r.GET(fmt.Sprintf("/%s", lastKw), func(c *gin.Context) {
		s := states.Start(app.config, app.logger, io.Discard)

		cp := reflect.New(paramType.Elem()).Interface().(framework.CmdParam)
		if err := setupDefaultValue(cp); err != nil {
			c.JSON(http.StatusInternalServerError, errorResponse{Error: err.Error()})
			return
		}
		if err := app.BindCmdParam(c, cp); err != nil {
			c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
			return
		}

		m := reflect.ValueOf(s).MethodByName(mt.Name)
		results := m.Call([]reflect.Value{
			reflect.ValueOf(c.Request.Context()),
			reflect.ValueOf(cp),
		})

		// reverse order, check error first
		for i := 0; i < len(results); i++ {
			result := results[len(results)-i-1]
			switch {
			case result.Type().Implements(reflect.TypeOf((*error)(nil)).Elem()):
				// error nil, skip
				if result.IsNil() {
					continue
				}
				err := result.Interface().(error)
				c.JSON(http.StatusInternalServerError, errorResponse{Error: err.Error()})
				return
			case result.Type().Implements(reflect.TypeOf((*framework.ResultSet)(nil)).Elem()):
				if result.IsNil() {
					continue
				}
				rs := result.Interface().(framework.ResultSet)
				c.JSON(http.StatusOK, rs.Entities())
				return
			}
		}

		c.JSON(http.StatusInternalServerError, errorResponse{Error: "no result set returned"})
	})
}

// BindCmdParam sets param fields from query values keyed by their name tag.
func (app *WebServerApp) BindCmdParam(c *gin.Context, cp framework.CmdParam) error {
	v := reflect.ValueOf(cp)
	if v.Kind() != reflect.Pointer {
		return errors.New("param is not pointer")
	}

	for v.Kind() != reflect.Struct {
		v = v.Elem()
	}
	tp := v.Type()

	for i := 0; i < v.NumField(); i++ {
		f := tp.Field(i)
		if !f.IsExported() {
			continue
		}
		name := f.Tag.Get("name")
		rawStr, ok := c.GetQuery(name)
		if !ok {
			continue
		}
		if err := setField(v.Field(i), f, rawStr); err != nil {
			return err
		}
	}
	return nil
}

func setupDefaultValue(p framework.CmdParam) error {
	v := reflect.ValueOf(p)
	if v.Kind() != reflect.Pointer {
		return errors.New("param is not pointer")
	}

	for v.Kind() != reflect.Struct {
		v = v.Elem()
	}
	tp := v.Type()

	for i := 0; i < v.NumField(); i++ {
		f := tp.Field(i)
		if !f.IsExported() {
			continue
		}
		if err := setField(v.Field(i), f, f.Tag.Get("default")); err != nil {
			return err
		}
	}
	return nil
}

func setField(field reflect.Value, f reflect.StructField, raw string) error {
	switch f.Type.Kind() {
	case reflect.String:
		field.SetString(raw)
	case reflect.Bool:
		dv, _ := strconv.ParseBool(raw)
		field.SetBool(dv)
	case reflect.Struct:
	default:
		return errors.Newf("field %s with kind %s not supported yet", f.Name, f.Type.Kind())
	}
	return nil
}
