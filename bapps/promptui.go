package bapps

import (
	"io"

	"github.com/cockroachdb/errors"
	"github.com/manifoldco/promptui"
	"go.uber.org/zap"

	"github.com/ctow-cli/ctow/framework"
)

// simpleApp wraps promptui as BApp.
type simpleApp struct {
	logger *zap.Logger
	errOut io.Writer
}

func NewSimpleApp(opts ...AppOption) BApp {
	opt := newAppOption(opts...)
	return &simpleApp{
		logger: opt.logger,
		errOut: opt.errOut,
	}
}

// Run starts ctow with promptui. (disable suggestion and history)
func (a *simpleApp) Run(start framework.State) {
	app := start
	for {
		p := promptui.Prompt{
			Label: app.Label(),
		}

		line, err := p.Run()
		// ctrl-c or ctrl-d
		if errors.Is(err, promptui.ErrInterrupt) || errors.Is(err, promptui.ErrEOF) {
			return
		}
		if err != nil {
			a.logger.Warn("failed to read line", zap.Error(err))
			return
		}

		next, err := app.Process(line)
		if errors.Is(err, framework.ErrExit) {
			return
		}
		if err != nil {
			printError(a.errOut, err)
			continue
		}
		if next.IsEnding() {
			return
		}
		next.SetupCommands()
		app = next
	}
}
