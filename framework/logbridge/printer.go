package logbridge

import (
	"fmt"
	"strings"
)

// Printer is a framework.Logger that forwards each printed line through a Bridge at a fixed
// level and source.
type Printer struct {
	bridge *Bridge
	level  string
	source string
}

func NewPrinter(bridge *Bridge, level, source string) Printer {
	return Printer{bridge: bridge, level: level, source: source}
}

func (p Printer) Println(args ...interface{}) {
	p.bridge.Handle(LogEvent{Level: p.level, Source: p.source, Message: strings.TrimRight(fmt.Sprintln(args...), "\r\n")})
}

func (p Printer) Printf(message string, args ...interface{}) {
	p.bridge.Handle(LogEvent{Level: p.level, Source: p.source, Message: fmt.Sprintf(message, args...)})
}
