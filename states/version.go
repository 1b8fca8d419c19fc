package states

import (
	"context"
	"fmt"

	"github.com/ctow-cli/ctow/common"
	"github.com/ctow-cli/ctow/framework"
)

type versionParam struct {
	framework.ParamBase `use:"version" desc:"prints the ctow version"`
}

func (app *ApplicationState) VersionCommand(ctx context.Context, _ *versionParam) {
	fmt.Fprintln(app.core.Out(), "ctow version", common.Version)
}
