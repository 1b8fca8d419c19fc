package main

import (
	"fmt"
	"os"

	"github.com/mattn/go-isatty"
	"go.uber.org/zap"

	"github.com/ctow-cli/ctow/bapps"
	"github.com/ctow-cli/ctow/configs"
	"github.com/ctow-cli/ctow/log"
	"github.com/ctow-cli/ctow/states"
	"github.com/ctow-cli/ctow/webui"
)

func main() {
	// argument mode, every argument belongs to the curl command
	if len(os.Args) > 1 {
		if err := bapps.NewArgsApp(os.Args[1:]).Run(); err != nil {
			os.Exit(1)
		}
		return
	}

	config, err := configs.NewConfig(configs.DefaultConfigPath)
	if err != nil {
		// run by default, just printing warning.
		fmt.Fprintln(os.Stderr, "[WARN] load config file failed, running in default setting", err.Error())
	}

	logger, err := log.New(config.WorkspacePath, config.LogLevel)
	if err != nil {
		fmt.Fprintln(os.Stderr, "[WARN] failed to create debug log, logging disabled", err.Error())
		logger = zap.NewNop()
	}
	defer logger.Sync()

	start := states.Start(config, logger, nil)

	if !isatty.IsTerminal(os.Stdin.Fd()) && !isatty.IsCygwinTerminal(os.Stdin.Fd()) {
		app := bapps.NewBatchApp(os.Stdin, bapps.WithLogger(logger))
		app.Run(start)
		if app.Failures() > 0 {
			logger.Sync()
			os.Exit(1)
		}
		return
	}

	var app bapps.BApp
	switch ui := config.GetUI(); ui {
	case configs.UISimple:
		app = bapps.NewSimpleApp(bapps.WithLogger(logger))
	case configs.UIRest:
		app = bapps.NewWebServerApp(config.Port, config, bapps.WithLogger(logger))
	case configs.UIWeb:
		app = webui.NewWebApp(config, logger)
	default:
		if ui != configs.UIPrompt {
			fmt.Fprintf(os.Stderr, "[WARN] unknown ui %q, using %s\n", ui, configs.UIPrompt)
		}
		defer bapps.RestoreTerminal()
		app = bapps.NewPromptApp(config, bapps.WithLogger(logger))
	}
	logger.Info("ctow started", zap.String("ui", config.GetUI()))
	app.Run(start)
}
