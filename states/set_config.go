package states

import (
	"context"
	"fmt"

	"github.com/ctow-cli/ctow/configs"
	"github.com/ctow-cli/ctow/framework"
)

var validator map[string]func(string, string) error

func init() {
	validator = make(map[string]func(string, string) error)
	validator[configs.EnvOutputFormat] = func(key string, value string) error {
		if value == "" {
			return nil
		}
		for _, name := range framework.FormatNames() {
			if name == value {
				return nil
			}
		}
		return fmt.Errorf("unknown format, use one of %v", framework.FormatNames())
	}
}

type SetConfigParam struct {
	framework.ParamBase `use:"set config" desc:"set ctow config"`
	Key                 string `name:"key" default:"" desc:"config key, e.g. CTOW_OUTPUT_FORMAT"`
	Value               string `name:"value" default:"" desc:"config value"`
	Source              string `name:"source" default:"env" desc:"config source, default is env"`
}

func (app *ApplicationState) SetConfigCommand(ctx context.Context, p *SetConfigParam) error {
	if validator, ok := validator[p.Key]; ok {
		if err := validator(p.Key, p.Value); err != nil {
			return fmt.Errorf("invalid key-value %s-%s: %w", p.Key, p.Value, err)
		}
	}
	return app.config.SetConfig(p.Source, p.Key, p.Value)
}
