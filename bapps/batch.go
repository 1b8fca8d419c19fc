package bapps

import (
	"bufio"
	"io"
	"strings"

	"github.com/cockroachdb/errors"
	"go.uber.org/zap"

	"github.com/ctow-cli/ctow/framework"
)

// BatchApp runs one command per line read from a reader, like a script.
// Blank lines and lines starting with "#" are skipped.
type BatchApp struct {
	input    io.Reader
	logger   *zap.Logger
	errOut   io.Writer
	failures int
}

func NewBatchApp(input io.Reader, opts ...AppOption) *BatchApp {
	opt := newAppOption(opts...)
	return &BatchApp{
		input:  input,
		logger: opt.logger,
		errOut: opt.errOut,
	}
}

// Run processes every line, printing failures and moving on to the next
// line. Processing stops when a command ends the session.
func (a *BatchApp) Run(start framework.State) {
	app := start
	a.failures = 0
	scanner := bufio.NewScanner(a.input)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		next, err := app.Process(line)
		if errors.Is(err, framework.ErrExit) {
			return
		}
		if err != nil {
			a.failures++
			a.logger.Info("batch line failed", zap.Int("line", lineNo), zap.Error(err))
			printError(a.errOut, errors.Wrapf(err, "line %d", lineNo))
			continue
		}
		if next.IsEnding() {
			return
		}
		next.SetupCommands()
		app = next
	}
	if err := scanner.Err(); err != nil {
		a.failures++
		printError(a.errOut, errors.Wrap(err, "failed to read input"))
	}
}

// Failures returns the number of lines which failed in the last Run.
func (a *BatchApp) Failures() int {
	return a.failures
}
