package framework

import (
	"context"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"
)

// ErrExit is the error indicates user needs to exit application.
var ErrExit = errors.New("exited")

// State is the interface for application state.
type State interface {
	Ctx() (context.Context, context.CancelFunc)
	Label() string
	Process(cmd string) (State, error)
	Close()
	SetNext(state State)
	NextState() State
	Suggestions(input string) map[string]string
	SetupCommands()
	IsEnding() bool
}

// SetupFunc function type for setup commands.
type SetupFunc func()

// CmdState wraps cobra command as State interface.
type CmdState struct {
	label     string
	RootCmd   *cobra.Command
	nextState State
	signal    <-chan os.Signal
	out       io.Writer

	SetupFn func()
}

// NewCmdState returns a CmdState with provided label.
func NewCmdState(label string) *CmdState {
	return &CmdState{
		label: label,
	}
}

// SetLabel updates label value.
func (s *CmdState) SetLabel(label string) {
	s.label = label
}

// SetOutput sets the writer commands print to, stdout when unset.
func (s *CmdState) SetOutput(out io.Writer) {
	s.out = out
	if s.RootCmd != nil {
		s.RootCmd.SetOut(out)
	}
}

// Out returns the writer commands print to.
func (s *CmdState) Out() io.Writer {
	if s.out == nil {
		return os.Stdout
	}
	return s.out
}

// GetCmd returns a fresh root command for SetupCommands().
func (s *CmdState) GetCmd() *cobra.Command {
	return &cobra.Command{
		SilenceErrors: true,
		SilenceUsage:  true,
	}
}

// UpdateState replaces the command tree with cmd plus all commands parsed
// from state methods.
func (s *CmdState) UpdateState(cmd *cobra.Command, state State, fn SetupFunc) {
	s.MergeFunctionCommands(cmd, state)
	if s.out != nil {
		cmd.SetOut(s.out)
	}
	s.RootCmd = cmd
	s.SetupFn = fn
}

// Ctx returns context which bind to sigint handler.
func (s *CmdState) Ctx() (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		defer cancel()
		select {
		case <-s.signal:
		case <-ctx.Done():
		}
	}()
	return ctx, cancel
}

// SetupCommands perform command setup & reset.
func (s *CmdState) SetupCommands() {
	if s.SetupFn != nil {
		s.SetupFn()
	}
}

// MergeFunctionCommands parses all member methods for provided state and add it into cmd.
func (s *CmdState) MergeFunctionCommands(cmd *cobra.Command, state State) {
	items := parseFunctionCommands(state)
	for _, item := range items {
		target := cmd
		for _, kw := range item.kws {
			node, _, err := target.Find([]string{kw})
			if err != nil || node == nil || node == target {
				newNode := &cobra.Command{Use: kw}
				target.AddCommand(newNode)
				node = newNode
			}
			target = node
		}
		target.AddCommand(item.cmd)
	}
}

// Label returns the display label for current cli.
func (s *CmdState) Label() string {
	return s.label
}

func (s *CmdState) Suggestions(input string) map[string]string {
	if s.RootCmd == nil {
		return map[string]string{}
	}
	return SuggestInputCommands(input, s.RootCmd.Commands())
}

// Process is the main entry for processing command.
func (s *CmdState) Process(cmd string) (State, error) {
	args := strings.Split(cmd, " ")

	target, _, err := s.RootCmd.Find(args)
	if err == nil && target != nil {
		defer target.SetArgs(nil)
	}

	signal.Reset(syscall.SIGINT)
	c := make(chan os.Signal, 1)
	signal.Notify(c, syscall.SIGINT)
	s.signal = c

	s.RootCmd.SetArgs(args)
	err = s.RootCmd.Execute()
	signal.Reset(syscall.SIGINT)

	if errors.Is(err, ErrExit) {
		return s.nextState, ErrExit
	}
	if err != nil {
		return s, err
	}
	if s.nextState != nil {
		nextState := s.nextState
		s.nextState = nil
		return nextState, nil
	}

	return s, nil
}

// SetNext simple method to set next state.
func (s *CmdState) SetNext(state State) {
	s.nextState = state
}

func (s *CmdState) NextState() State {
	return s.nextState
}

// Close empty method to implement State.
func (s *CmdState) Close() {}

// IsEnding checks state is ending state.
func (s *CmdState) IsEnding() bool { return false }

// ExitState simple exit state.
type ExitState struct {
	*CmdState
}

// NewExitState returns the ending state.
func NewExitState() *ExitState {
	return &ExitState{CmdState: NewCmdState("Exited")}
}

// SetupCommands is a no-op, the exit state accepts no commands.
func (s *ExitState) SetupCommands() {}

// Process refuses every command once the session ended.
func (s *ExitState) Process(string) (State, error) {
	return s, ErrExit
}

// IsEnding returns true for exit State
func (s *ExitState) IsEnding() bool { return true }
