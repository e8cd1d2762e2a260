package logbridge

import (
	"fmt"

	"github.com/stepreport/stepreport/framework/helpers"
	"github.com/stepreport/stepreport/framework/report"
)

const (
	// AttachmentTitle is the name given to every attachment the bridge creates.
	AttachmentTitle = "Log Entry"

	// MediaTypeText is the media type declared for every attachment the bridge creates.
	MediaTypeText = "text/plain"
)

// LogEvent is a single log record: a severity name, the name of the logger that produced it,
// and the already-interpolated message text.
type LogEvent struct {
	Level   string
	Source  string
	Message string
}

// Format renders an event as "[<level>] <source> - <message>".
func Format(event LogEvent) string {
	return fmt.Sprintf("[%s] %s - %s", event.Level, event.Source, event.Message)
}

// Bridge forwards log events to a report sink. It holds no state besides its configuration, so
// it can be shared between goroutines as long as the sink can.
type Bridge struct {
	sink  report.Sink
	title string
}

// Option is a configuration option for New.
type Option helpers.ConfigOption[Bridge]

// WithTitle overrides the attachment title, which is AttachmentTitle by default.
func WithTitle(title string) Option {
	return helpers.OptionFunc[Bridge](func(b *Bridge) error {
		b.title = title
		return nil
	})
}

// New creates a Bridge bound to sink.
func New(sink report.Sink, options ...Option) *Bridge {
	b := &Bridge{sink: sink, title: AttachmentTitle}
	_ = helpers.ApplyOptions(b, options...)
	return b
}

// Handle formats the event and adds it to the sink as one attachment. It does not validate
// anything, retry, or deduplicate: every call produces exactly one AddAttachment call, and
// whatever the sink does (including panicking) happens to the caller.
func (b *Bridge) Handle(event LogEvent) {
	b.sink.AddAttachment(b.title, MediaTypeText, Format(event))
}
