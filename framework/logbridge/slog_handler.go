package logbridge

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/stepreport/stepreport/framework/helpers"
	"github.com/stepreport/stepreport/framework/report"
)

// SourceKey is the attribute that names the originating logger, as in
// logger.With(logbridge.SourceKey, "org.example.Steps").
const SourceKey = "logger"

// LevelTrace is the slog level reported as TRACE.
const LevelTrace = slog.Level(-8)

// LevelName maps a slog level to the severity name used in report lines.
func LevelName(level slog.Level) string {
	switch {
	case level < slog.LevelDebug:
		return "TRACE"
	case level < slog.LevelInfo:
		return "DEBUG"
	case level < slog.LevelWarn:
		return "INFO"
	case level < slog.LevelError:
		return "WARN"
	default:
		return "ERROR"
	}
}

// ParseLevel is the inverse of LevelName. It accepts the names in any case.
func ParseLevel(name string) (slog.Level, error) {
	switch strings.ToUpper(name) {
	case "TRACE":
		return LevelTrace, nil
	case "DEBUG":
		return slog.LevelDebug, nil
	case "INFO":
		return slog.LevelInfo, nil
	case "WARN":
		return slog.LevelWarn, nil
	case "ERROR":
		return slog.LevelError, nil
	}
	return 0, fmt.Errorf("unknown log level %q", name)
}

// Handler is a slog.Handler that forwards every record through a Bridge.
//
// Only the record's message is forwarded; attributes other than SourceKey are not part of the
// report line. If the sink panics, Handle returns the panic as an error instead, so that a
// broken report never takes down the code that was logging.
type Handler struct {
	bridge   *Bridge
	source   string
	minLevel slog.Leveler
	grouped  bool
}

// HandlerOption is a configuration option for NewHandler.
type HandlerOption helpers.ConfigOption[Handler]

// HandlerSource sets the source name used when a record has no SourceKey attribute.
func HandlerSource(source string) HandlerOption {
	return helpers.OptionFunc[Handler](func(h *Handler) error {
		h.source = source
		return nil
	})
}

// HandlerMinLevel drops records below level. By default every level is forwarded.
func HandlerMinLevel(level slog.Leveler) HandlerOption {
	return helpers.OptionFunc[Handler](func(h *Handler) error {
		h.minLevel = level
		return nil
	})
}

func NewHandler(bridge *Bridge, options ...HandlerOption) *Handler {
	h := &Handler{bridge: bridge}
	_ = helpers.ApplyOptions(h, options...)
	return h
}

// NewLogger is a shortcut for a slog.Logger that writes into sink under the given source name.
func NewLogger(sink report.Sink, source string) *slog.Logger {
	return slog.New(NewHandler(New(sink), HandlerSource(source)))
}

func (h *Handler) Enabled(_ context.Context, level slog.Level) bool {
	return h.minLevel == nil || level >= h.minLevel.Level()
}

func (h *Handler) Handle(_ context.Context, r slog.Record) (err error) {
	source := h.source
	if !h.grouped {
		r.Attrs(func(a slog.Attr) bool {
			if a.Key == SourceKey {
				source = a.Value.String()
				return false
			}
			return true
		})
	}

	defer func() {
		if p := recover(); p != nil {
			err = fmt.Errorf("could not add log entry to report: %v", p)
		}
	}()
	h.bridge.Handle(LogEvent{Level: LevelName(r.Level), Source: source, Message: r.Message})
	return nil
}

func (h *Handler) WithAttrs(attrs []slog.Attr) slog.Handler {
	h2 := *h
	if !h.grouped {
		for _, a := range attrs {
			if a.Key == SourceKey {
				h2.source = a.Value.String()
			}
		}
	}
	return &h2
}

func (h *Handler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}
	h2 := *h
	h2.grouped = true
	return &h2
}
