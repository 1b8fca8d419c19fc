package history

import (
	"bufio"
	"encoding/json"
	"os"
	"path"
	"strings"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/samber/lo"
	"go.uber.org/zap"
)

const historyFile = ".ctow_history"

// Item is one history line, stored as json.
type Item struct {
	Cmd string
	Ts  int64
}

// Helper keeps the command history of the prompt app in memory and
// appends every new command to the history file.
type Helper struct {
	items  []Item
	hFile  *os.File
	logger *zap.Logger
}

// NewHistoryHelper loads the history file under dirPath and keeps it open
// for appending. A missing or unwritable file only disables persistence.
func NewHistoryHelper(dirPath string, logger *zap.Logger) *Helper {
	if logger == nil {
		logger = zap.NewNop()
	}
	filePath := path.Join(dirPath, historyFile)
	h := &Helper{logger: logger}

	items, err := load(filePath)
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		logger.Warn("failed to load history", zap.String("file", filePath), zap.Error(err))
	}
	h.items = items

	if err := os.MkdirAll(dirPath, os.ModePerm); err != nil {
		logger.Warn("failed to create workspace", zap.String("path", dirPath), zap.Error(err))
	}
	h.hFile, err = os.OpenFile(filePath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		logger.Warn("failed to open history file", zap.String("file", filePath), zap.Error(err))
		h.hFile = nil
	}
	return h
}

// load reads every well formed line of the history file.
func load(filePath string) ([]Item, error) {
	f, err := os.Open(filePath)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var items []Item
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		item := Item{}
		if json.Unmarshal(scanner.Bytes(), &item) == nil && item.Cmd != "" {
			items = append(items, item)
		}
	}
	return items, errors.Wrap(scanner.Err(), "failed to read history")
}

// AddLog records cmd. Blank lines and a repeat of the previous command
// are not recorded.
func (h *Helper) AddLog(cmd string) {
	cmd = strings.TrimSpace(cmd)
	if cmd == "" {
		return
	}
	if last, err := lo.Last(h.items); err == nil && last.Cmd == cmd {
		return
	}

	item := Item{Cmd: cmd, Ts: time.Now().Unix()}
	h.items = append(h.items, item)
	if h.hFile == nil {
		return
	}
	bs, err := json.Marshal(item)
	if err == nil {
		_, err = h.hFile.Write(append(bs, '\n'))
	}
	if err != nil {
		h.logger.Warn("failed to write history", zap.Error(err))
	}
}

// List returns the items starting with input, oldest first.
func (h *Helper) List(input string) []Item {
	return lo.Filter(h.items, func(item Item, _ int) bool {
		return strings.HasPrefix(item.Cmd, input)
	})
}

func (h *Helper) Close() {
	if h.hFile != nil {
		h.hFile.Close()
	}
}
