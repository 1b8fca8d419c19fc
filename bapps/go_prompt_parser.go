package bapps

import (
	"os"
	"os/exec"

	"github.com/c-bata/go-prompt"
)

// rawModeParser restores the terminal on TearDown, go-prompt leaves it in
// raw mode when the process exits from inside the executor.
type rawModeParser struct {
	*prompt.PosixParser
}

func (p *rawModeParser) TearDown() error {
	err := p.PosixParser.TearDown()
	RestoreTerminal()
	return err
}

// NewBInputParser returns the go-prompt input parser used by PromptApp.
func NewBInputParser() prompt.ConsoleParser {
	return &rawModeParser{
		PosixParser: prompt.NewStandardInputParser(),
	}
}

// RestoreTerminal turns raw mode off and echo back on for stdin.
func RestoreTerminal() {
	rawModeOff := exec.Command("/bin/stty", "-raw", "echo")
	rawModeOff.Stdin = os.Stdin
	_ = rawModeOff.Run()
}
