package logx

import (
	"fmt"
	"io"
	"strings"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
)

// DefaultLevel keeps the interactive shell quiet unless something is wrong.
const DefaultLevel = "warn"

// New returns a logfmt logger writing to w and filtered at lvl
// (debug, info, warn or error).
func New(w io.Writer, lvl string) (log.Logger, error) {
	opt, err := levelOption(lvl)
	if err != nil {
		return nil, err
	}
	logger := log.NewLogfmtLogger(log.NewSyncWriter(w))
	logger = log.With(logger, "ts", log.DefaultTimestampUTC, "caller", log.DefaultCaller)

	// Must put the level filter last for efficiency.
	return level.NewFilter(logger, opt), nil
}

// ValidLevel reports whether lvl is accepted by New.
func ValidLevel(lvl string) bool {
	_, err := levelOption(lvl)
	return err == nil
}

func levelOption(lvl string) (level.Option, error) {
	switch strings.ToLower(strings.TrimSpace(lvl)) {
	case "debug":
		return level.AllowDebug(), nil
	case "info":
		return level.AllowInfo(), nil
	case "", "warn", "warning":
		return level.AllowWarn(), nil
	case "error":
		return level.AllowError(), nil
	case "none", "off":
		return level.AllowNone(), nil
	}
	return nil, fmt.Errorf("invalid log level %q (want debug, info, warn, error or none)", lvl)
}
