package bapps

import (
	"fmt"
	"os"
	"os/exec"
	"sort"
	"strings"
	"time"

	"github.com/c-bata/go-prompt"
	"github.com/samber/lo"
	"go.uber.org/zap"

	"github.com/ctow-cli/ctow/configs"
	"github.com/ctow-cli/ctow/framework"
	"github.com/ctow-cli/ctow/history"
)

// PromptApp wraps go-prompt as application.
type PromptApp struct {
	exited          bool
	currentState    framework.State
	sugguestHistory bool
	historyHelper   *history.Helper
	logger          *zap.Logger
	prompt          *prompt.Prompt
	config          *configs.Config
}

func NewPromptApp(config *configs.Config, opts ...AppOption) BApp {
	opt := newAppOption(opts...)

	// use workspace path to open&store history log
	hh := history.NewHistoryHelper(config.WorkspacePath, opt.logger)
	pa := &PromptApp{
		historyHelper: hh,
		config:        config,
		logger:        opt.logger,
	}

	historyItems := hh.List("")
	sort.Slice(historyItems, func(i, j int) bool {
		return historyItems[i].Ts < historyItems[j].Ts
	})

	p := prompt.New(pa.promptExecute, pa.completeInput,
		prompt.OptionTitle("ctow"),
		prompt.OptionHistory(lo.Map(historyItems, func(hi history.Item, _ int) string { return hi.Cmd })),
		prompt.OptionLivePrefix(pa.livePrefix),
		prompt.OptionPrefixTextColor(prompt.Yellow),
		prompt.OptionPreviewSuggestionTextColor(prompt.Blue),
		prompt.OptionSelectedSuggestionBGColor(prompt.LightGray),
		prompt.OptionSuggestionBGColor(prompt.DarkGray),
		prompt.OptionSetExitCheckerOnInput(func(in string, breakline bool) bool {
			return breakline && isExitInput(in)
		}),
		prompt.OptionAddKeyBind(prompt.KeyBind{
			Key: prompt.ControlR,
			Fn: func(buffer *prompt.Buffer) {
				pa.sugguestHistory = !pa.sugguestHistory
			},
		}),
		// setup InputParser with `TearDown` overrided
		prompt.OptionParser(NewBInputParser()),
	)
	pa.prompt = p
	return pa
}

func isExitInput(in string) bool {
	switch strings.ToLower(strings.TrimSpace(in)) {
	case "exit", "quit":
		return true
	}
	return false
}

func (a *PromptApp) Run(start framework.State) {
	a.currentState = start
	defer a.historyHelper.Close()
	a.prompt.Run()
}

// promptExecute actual execution logic entry. The line is processed as
// typed, the converter keeps empty words.
func (a *PromptApp) promptExecute(in string) {
	restore := a.pipeToPager(os.Getenv("PAGER"))
	nextState, err := a.currentState.Process(in)
	restore()

	a.historyHelper.AddLog(in)
	a.sugguestHistory = false

	if err != nil {
		printError(os.Stdout, err)
		return
	}

	nextState.SetupCommands()
	a.currentState = nextState

	if a.currentState.IsEnding() {
		fmt.Println("Bye!")
		a.exited = true
	}
}

// pipeToPager sends os.Stdout through pager until the returned function
// is called. Output stays on stdout when pager is empty or cannot start.
func (a *PromptApp) pipeToPager(pager string) func() {
	if pager == "" {
		return func() {}
	}
	var args []string
	if pager == "less" {
		// don't page one screen, don't clear the screen on start
		args = []string{"-F", "--no-init"}
	}

	r, w, err := os.Pipe()
	if err != nil {
		a.logger.Warn("failed to create pager pipe", zap.Error(err))
		return func() {}
	}
	stdout := os.Stdout
	// #nosec args audit for less
	cmd := exec.Command(pager, args...)
	cmd.Stdin = r
	cmd.Stdout = stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Start(); err != nil {
		fmt.Fprintf(stdout, "[WARNING] Cannot use %%PAGER(%s), set output back to stdout\n", pager)
		r.Close()
		w.Close()
		return func() {}
	}

	os.Stdout = w
	done := make(chan struct{})
	go func() {
		defer close(done)
		err := cmd.Wait()
		a.logger.Debug("pager done", zap.String("pager", pager), zap.Error(err))
	}()
	return func() {
		w.Close()
		<-done
		r.Close()
		os.Stdout = stdout
	}
}

// completeInput auto-complete logic entry.
func (a *PromptApp) completeInput(d prompt.Document) []prompt.Suggest {
	input := d.CurrentLineBeforeCursor()
	if a.sugguestHistory {
		return a.historySuggestions(input)
	}
	if input == "" {
		return nil
	}
	return toSuggests(a.currentState.Suggestions(input))
}

func toSuggests(r map[string]string) []prompt.Suggest {
	s := make([]prompt.Suggest, 0, len(r))
	for usage, short := range r {
		s = append(s, prompt.Suggest{
			Text:        usage,
			Description: short,
		})
	}
	sort.Slice(s, func(i, j int) bool {
		return s[i].Text < s[j].Text
	})
	return s
}

// historySuggestions returns suggestion from command history.
func (a *PromptApp) historySuggestions(input string) []prompt.Suggest {
	items := a.historyHelper.List(input)
	sort.Slice(items, func(i, j int) bool {
		return items[i].Ts > items[j].Ts
	})

	lastIdx := strings.LastIndex(input, " ") + 1
	return lo.Map(items, func(item history.Item, _ int) prompt.Suggest {
		t := time.Unix(item.Ts, 0)
		return prompt.Suggest{
			Text:        item.Cmd[lastIdx:],
			Description: t.Format("2006-01-02 15:04:05"),
		}
	})
}

// livePrefix implements dynamic change prefix.
func (a *PromptApp) livePrefix() (string, bool) {
	if a.exited {
		return "", false
	}
	return fmt.Sprintf("%s > ", a.currentState.Label()), true
}
