package states

import (
	"context"

	"github.com/ctow-cli/ctow/framework"
)

type exitParam struct {
	framework.ParamBase `use:"exit" desc:"closes the program" alias:"quit"`
}

// ExitCommand ends the interactive session.
func (app *ApplicationState) ExitCommand(ctx context.Context, _ *exitParam) {
	app.core.SetNext(framework.NewExitState())
}
