package logbridge

import (
	"github.com/stepreport/stepreport/framework"
	"github.com/stepreport/stepreport/framework/report"
)

// Sinks sends each attachment to every sink in the list, in order.
type Sinks []report.Sink

func (s Sinks) AddAttachment(title, mediaType, content string) {
	for _, sink := range s {
		sink.AddAttachment(title, mediaType, content)
	}
}

// LoggerSink writes the content of each attachment as one line to a framework.Logger.
type LoggerSink struct {
	Logger framework.Logger
}

func (s LoggerSink) AddAttachment(_, _, content string) {
	s.Logger.Println(content)
}
