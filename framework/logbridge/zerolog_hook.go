package logbridge

import (
	"fmt"
	"strings"

	"github.com/rs/zerolog"
)

// ZerologHook is a zerolog.Hook that forwards every event through a Bridge, using a fixed
// source name. Install it with logger.Hook(hook).
//
// A panic from the sink is reported to zerolog.ErrorHandler if one is set, and otherwise
// dropped.
type ZerologHook struct {
	bridge *Bridge
	source string
}

func NewZerologHook(bridge *Bridge, source string) ZerologHook {
	return ZerologHook{bridge: bridge, source: source}
}

func (h ZerologHook) Run(_ *zerolog.Event, level zerolog.Level, message string) {
	defer func() {
		if p := recover(); p != nil && zerolog.ErrorHandler != nil {
			zerolog.ErrorHandler(fmt.Errorf("could not add log entry to report: %v", p))
		}
	}()
	h.bridge.Handle(LogEvent{Level: strings.ToUpper(level.String()), Source: h.source, Message: message})
}
