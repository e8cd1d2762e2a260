package logbridge

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/launchdarkly/go-sdk-common/v3/ldlog"
)

// ldlog puts "LEVEL:" in front of each message; the report line already carries the level.
var ldlogLevelPrefix = regexp.MustCompile(`^(DEBUG|INFO|WARN|ERROR):\s*`) //nolint:gochecknoglobals

type ldlogBaseLogger struct {
	bridge *Bridge
	source string
	level  ldlog.LogLevel
}

func (l ldlogBaseLogger) Println(values ...interface{}) {
	l.forward(strings.TrimRight(fmt.Sprintln(values...), "\r\n"))
}

func (l ldlogBaseLogger) Printf(format string, values ...interface{}) {
	l.forward(fmt.Sprintf(format, values...))
}

func (l ldlogBaseLogger) forward(message string) {
	l.bridge.Handle(LogEvent{
		Level:   strings.ToUpper(l.level.Name()),
		Source:  l.source,
		Message: ldlogLevelPrefix.ReplaceAllLiteralString(message, ""),
	})
}

// NewLDLoggers returns ldlog.Loggers that forward every level from Debug up through the bridge
// under the given source name. This is how components that log through ldlog get their output
// into a test report.
func NewLDLoggers(bridge *Bridge, source string) ldlog.Loggers {
	var loggers ldlog.Loggers
	for _, level := range []ldlog.LogLevel{ldlog.Debug, ldlog.Info, ldlog.Warn, ldlog.Error} {
		loggers.SetBaseLoggerForLevel(level, ldlogBaseLogger{bridge: bridge, source: source, level: level})
	}
	loggers.SetMinLevel(ldlog.Debug)
	return loggers
}
