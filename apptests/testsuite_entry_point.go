package apptests

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/stepreport/stepreport/framework/ldtest"
	"github.com/stepreport/stepreport/framework/logbridge"
	"github.com/stepreport/stepreport/framework/report"

	"github.com/rs/zerolog"
)

// SuiteConfig holds the settings that affect how the application tests log.
type SuiteConfig struct {
	// AttachmentTitle is the title of each log entry added to a report.
	AttachmentTitle string

	// LogLevel is the lowest level that is added to reports: trace, debug, info, warn or error.
	LogLevel string

	// Labels are added to the report of every test.
	Labels []report.Label
}

type suiteContext struct {
	attachmentTitle string
	level           slog.Level
	appLevel        zerolog.Level
}

func requireContext(t *ldtest.T) suiteContext {
	ctx, ok := t.Context().(suiteContext)
	if !ok {
		t.Errorf("test was not started by RunAppTestSuite")
		t.FailNow()
	}
	return ctx
}

// RunAppTestSuite runs the application tests and returns their results.
func RunAppTestSuite(
	config SuiteConfig,
	filter ldtest.Filter,
	testLogger ldtest.TestLogger,
) (ldtest.Results, error) {
	level, err := logbridge.ParseLevel(config.LogLevel)
	if err != nil {
		return ldtest.Results{}, err
	}
	appLevel, err := zerolog.ParseLevel(strings.ToLower(config.LogLevel))
	if err != nil {
		return ldtest.Results{}, err
	}
	title := config.AttachmentTitle
	if title == "" {
		title = logbridge.AttachmentTitle
	}

	fmt.Println("Running application test suite")
	fmt.Println()
	if d, ok := filter.(interface{ Describe(io.Writer) }); ok {
		d.Describe(os.Stdout)
	}

	testConfig := ldtest.TestConfiguration{
		Filter:     filter,
		TestLogger: testLogger,
		Labels:     config.Labels,
		Context: suiteContext{
			attachmentTitle: title,
			level:           level,
			appLevel:        appLevel,
		},
	}
	return ldtest.Run(testConfig, func(t *ldtest.T) {
		t.Run("AppTest", doAppTests)
	}), nil
}

func doAppTests(t *ldtest.T) {
	t.Run("someTest", someTest)
}

func someTest(t *ldtest.T) {
	steps := newSteps(t)
	steps.OpenApplication()
	t.Defer(steps.CloseApplication)

	steps.Login()
	steps.PerformUserActions()
	steps.Logout()
}
