package bapps

import (
	"io"
	"os"

	"github.com/fatih/color"
	"go.uber.org/zap"

	"github.com/ctow-cli/ctow/framework"
)

// BApp interface for ctow application
type BApp interface {
	Run(framework.State)
}

// AppOption application setup option function.
type AppOption func(*appOption)

type appOption struct {
	logger *zap.Logger
	out    io.Writer
	errOut io.Writer
}

func newAppOption(opts ...AppOption) *appOption {
	opt := &appOption{
		logger: zap.NewNop(),
		out:    os.Stdout,
		errOut: os.Stderr,
	}
	for _, o := range opts {
		o(opt)
	}
	return opt
}

// WithLogger returns AppOption to setup application logger.
func WithLogger(logger *zap.Logger) AppOption {
	return func(opt *appOption) {
		if logger != nil {
			opt.logger = logger
		}
	}
}

// WithOutput returns AppOption to redirect normal and error output.
func WithOutput(out, errOut io.Writer) AppOption {
	return func(opt *appOption) {
		opt.out = out
		opt.errOut = errOut
	}
}

func printError(w io.Writer, err error) {
	color.New(color.FgRed).Fprintln(w, err.Error())
}
