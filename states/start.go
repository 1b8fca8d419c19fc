package states

import (
	"io"

	"go.uber.org/zap"

	"github.com/ctow-cli/ctow/configs"
	"github.com/ctow-cli/ctow/framework"
)

// Start returns the application state ready to process commands. Command
// output goes to out, stdout when nil.
func Start(config *configs.Config, logger *zap.Logger, out io.Writer) framework.State {
	if logger == nil {
		logger = zap.NewNop()
	}
	core := framework.NewCmdState("ctow")
	if out != nil {
		core.SetOutput(out)
	}

	app := &ApplicationState{
		core:   core,
		config: config,
		logger: logger,
	}
	app.SetupCommands()
	return app
}
