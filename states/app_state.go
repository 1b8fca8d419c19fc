package states

import (
	"context"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/ctow-cli/ctow/configs"
	"github.com/ctow-cli/ctow/converter"
	"github.com/ctow-cli/ctow/framework"
)

// ApplicationState is the only interactive state of ctow.
type ApplicationState struct {
	// root *cobra.Command
	core *framework.CmdState

	// config stores configuration items
	config *configs.Config
	logger *zap.Logger
}

func (app *ApplicationState) Ctx() (context.Context, context.CancelFunc) {
	return app.core.Ctx()
}

func (app *ApplicationState) Label() string {
	return app.core.Label()
}

// Process runs one input line. Commands are rebuilt afterwards so flag
// values never leak into the next line.
func (app *ApplicationState) Process(cmd string) (framework.State, error) {
	app.logger.Debug("begin to process command", zap.String("command", cmd))
	defer app.SetupCommands()

	next, err := app.core.Process(cmd)
	if err != nil {
		app.logger.Warn("command failed", zap.String("command", cmd), zap.Error(err))
		return app, err
	}
	if next != nil && next.IsEnding() {
		app.logger.Info("session ended")
		return next, nil
	}
	return app, nil
}

func (app *ApplicationState) Close() {}

func (app *ApplicationState) SetNext(state framework.State) {
	app.core.SetNext(state)
}

func (app *ApplicationState) NextState() framework.State {
	return app.core.NextState()
}

// Suggestions completes command names, and curl flags once the line
// starts with "curl ".
func (app *ApplicationState) Suggestions(input string) map[string]string {
	if !strings.HasPrefix(input, converter.SourceTool+" ") {
		return app.core.Suggestions(input)
	}

	result := make(map[string]string)
	partial := input[strings.LastIndex(input, " ")+1:]
	// typing a flag value
	if partial != "" && !strings.HasPrefix(partial, "-") {
		return result
	}
	for _, entry := range converter.Table() {
		for _, flag := range entry.Flags() {
			if strings.HasPrefix(flag, partial) {
				result[flag] = entry.Meaning
			}
		}
	}
	return result
}

// SetupCommands implements framework.State.
// initialize or reset command after execution.
func (app *ApplicationState) SetupCommands() {
	cmd := app.core.GetCmd()
	cmd.Args = cobra.ArbitraryArgs
	cmd.DisableFlagParsing = true
	cmd.CompletionOptions.DisableDefaultCmd = true
	cmd.RunE = func(_ *cobra.Command, args []string) error {
		words := strings.Fields(strings.Join(args, " "))
		if len(words) == 0 {
			return nil
		}
		return converter.UnrecognisedCommand(words[0])
	}
	cmd.SetHelpCommand(app.helpCommand())

	app.core.UpdateState(cmd, app, app.SetupCommands)
}

func (app *ApplicationState) IsEnding() bool {
	return false
}

// OutputFormat returns the configured format for command results.
func (app *ApplicationState) OutputFormat() framework.Format {
	return framework.NameFormat(app.config.GetGlobalOutputFormat())
}
