package prompt

import (
	"errors"
	"io"
	"os"
	"strings"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"github.com/peterh/liner"
)

// Terminal is a line-editing Prompter for interactive sessions. It keeps a
// history of answers and can complete words from a fixed list.
type Terminal struct {
	state   *liner.State
	history string
	words   []string
	logger  log.Logger
}

// historyStore is the part of liner.State that persists history.
type historyStore interface {
	ReadHistory(r io.Reader) (int, error)
	WriteHistory(w io.Writer) (int, error)
}

// NewTerminal takes over the terminal. history names a file to load and
// persist answers in; empty disables persistence. Close must be called to
// restore the terminal. History failures are logged at debug level.
func NewTerminal(history string, words []string, logger log.Logger) *Terminal {
	if logger == nil {
		logger = log.NewNopLogger()
	}
	t := &Terminal{state: liner.NewLiner(), history: history, words: words, logger: logger}
	t.state.SetCtrlCAborts(true)
	t.state.SetCompleter(t.complete)
	if history != "" {
		loadHistory(t.state, history, logger)
	}
	return t
}

func (t *Terminal) Prompt(label string) (string, error) {
	line, err := t.state.Prompt(label)
	if err != nil {
		if errors.Is(err, liner.ErrPromptAborted) {
			return "", ErrAborted
		}
		return "", err
	}
	if strings.TrimSpace(line) != "" {
		t.state.AppendHistory(line)
	}
	return line, nil
}

// Close saves history and restores the terminal mode.
func (t *Terminal) Close() error {
	if t.history != "" {
		saveHistory(t.state, t.history, t.logger)
	}
	return t.state.Close()
}

func loadHistory(h historyStore, path string, logger log.Logger) {
	f, err := os.Open(path)
	if errors.Is(err, os.ErrNotExist) {
		return
	}
	if err != nil {
		level.Debug(logger).Log("msg", "cannot open history", "path", path, "err", err)
		return
	}
	defer f.Close()
	if _, err := h.ReadHistory(f); err != nil {
		level.Debug(logger).Log("msg", "cannot read history", "path", path, "err", err)
	}
}

func saveHistory(h historyStore, path string, logger log.Logger) {
	f, err := os.Create(path)
	if err != nil {
		level.Debug(logger).Log("msg", "cannot create history", "path", path, "err", err)
		return
	}
	if _, err := h.WriteHistory(f); err != nil {
		level.Debug(logger).Log("msg", "cannot write history", "path", path, "err", err)
	}
	if err := f.Close(); err != nil {
		level.Debug(logger).Log("msg", "cannot close history", "path", path, "err", err)
	}
}

func (t *Terminal) complete(line string) []string {
	var out []string
	for _, w := range t.words {
		if strings.HasPrefix(w, line) {
			out = append(out, w)
		}
	}
	return out
}
