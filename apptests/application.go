package apptests

import (
	"errors"
	"io"

	"github.com/stepreport/stepreport/framework"
	"github.com/stepreport/stepreport/framework/logbridge"

	"github.com/launchdarkly/go-sdk-common/v3/ldlog"
	"github.com/rs/zerolog"
)

const (
	applicationSource = "org.example.Application"
	sessionSource     = "org.example.Session"
	auditSource       = "org.example.Audit"
)

type appState int

const (
	appClosed appState = iota
	appOpen
	appLoggedIn
)

var (
	errNotOpen     = errors.New("application is not open")
	errAlreadyOpen = errors.New("application is already open")
	errNotLoggedIn = errors.New("no user is logged in")
)

// Application is a stand-in for the system under test. Its window lifecycle logs through zerolog,
// its session handling through ldlog, and its audit trail through a framework.Logger, so that
// output from each of those pipelines ends up in the report alongside the test's own log lines.
type Application struct {
	log     zerolog.Logger
	session ldlog.Loggers
	audit   framework.Logger
	state   appState
	user    string
	actions []string
}

// NewApplication creates a closed Application whose log output goes through bridge. Output below
// minLevel is dropped.
func NewApplication(bridge *logbridge.Bridge, minLevel zerolog.Level) *Application {
	session := logbridge.NewLDLoggers(bridge, sessionSource)
	session.SetMinLevel(ldlogLevel(minLevel))
	audit := framework.NullLogger()
	if minLevel <= zerolog.DebugLevel {
		audit = logbridge.NewPrinter(bridge, "DEBUG", auditSource)
	}
	return &Application{
		log:     zerolog.New(io.Discard).Level(minLevel).Hook(logbridge.NewZerologHook(bridge, applicationSource)),
		session: session,
		audit:   audit,
	}
}

func ldlogLevel(level zerolog.Level) ldlog.LogLevel {
	switch {
	case level <= zerolog.DebugLevel:
		return ldlog.Debug
	case level == zerolog.InfoLevel:
		return ldlog.Info
	case level == zerolog.WarnLevel:
		return ldlog.Warn
	default:
		return ldlog.Error
	}
}

func (a *Application) Open() error {
	if a.state != appClosed {
		return errAlreadyOpen
	}
	a.state = appOpen
	a.log.Debug().Msg("main window shown")
	return nil
}

func (a *Application) Login(user string) error {
	if a.state != appOpen {
		return errNotOpen
	}
	a.state = appLoggedIn
	a.user = user
	a.session.Infof("session started for %s", user)
	return nil
}

func (a *Application) Perform(action string) error {
	if a.state != appLoggedIn {
		return errNotLoggedIn
	}
	a.actions = append(a.actions, action)
	a.audit.Printf("%s: %s", a.user, action)
	a.log.Info().Str("user", a.user).Msgf("performed %s", action)
	return nil
}

func (a *Application) Logout() error {
	if a.state != appLoggedIn {
		return errNotLoggedIn
	}
	a.state = appOpen
	a.session.Infof("session closed for %s", a.user)
	a.user = ""
	return nil
}

// Close shuts the application down from any state. Closing an application that is already closed
// is an error.
func (a *Application) Close() error {
	if a.state == appClosed {
		return errNotOpen
	}
	if a.state == appLoggedIn {
		a.session.Warn("closing with an active session")
	}
	a.state = appClosed
	a.log.Debug().Msg("main window closed")
	return nil
}

// Actions returns the user actions performed so far.
func (a *Application) Actions() []string {
	return append([]string(nil), a.actions...)
}
