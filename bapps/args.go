package bapps

import (
	"fmt"
	"io"

	"go.uber.org/zap"

	"github.com/ctow-cli/ctow/converter"
)

// ArgsApp converts the process arguments once. Only the wget command goes
// to the normal output, so the result can be piped.
type ArgsApp struct {
	args   []string
	logger *zap.Logger
	out    io.Writer
	errOut io.Writer
}

func NewArgsApp(args []string, opts ...AppOption) *ArgsApp {
	opt := newAppOption(opts...)
	return &ArgsApp{
		args:   args,
		logger: opt.logger,
		out:    opt.out,
		errOut: opt.errOut,
	}
}

// Run converts the arguments. The returned error has already been
// printed to the error output.
func (a *ArgsApp) Run() error {
	a.logger.Debug("convert arguments", zap.Strings("args", a.args))
	command, err := converter.Convert(a.args)
	if err != nil {
		a.logger.Info("argument conversion failed", zap.Error(err))
		printError(a.errOut, err)
		return err
	}
	fmt.Fprintln(a.out, command)
	return nil
}
