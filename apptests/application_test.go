package apptests

import (
	"testing"

	"github.com/stepreport/stepreport/framework/logbridge"
	"github.com/stepreport/stepreport/framework/report"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
)

func newTestApplication(level zerolog.Level) (*Application, *report.TestCase) {
	tc := report.NewTestCase("app", "app")
	return NewApplication(logbridge.New(tc), level), tc
}

func contents(tc *report.TestCase) []string {
	var ret []string
	for _, a := range tc.Result().AllAttachments() {
		ret = append(ret, a.Content)
	}
	return ret
}

func TestApplicationLifecycle(t *testing.T) {
	app, tc := newTestApplication(zerolog.DebugLevel)
	assert.NoError(t, app.Open())
	assert.NoError(t, app.Login("alice"))
	assert.NoError(t, app.Perform("search"))
	assert.NoError(t, app.Perform("checkout"))
	assert.NoError(t, app.Logout())
	assert.NoError(t, app.Close())

	assert.Equal(t, []string{"search", "checkout"}, app.Actions())
	assert.Equal(t, []string{
		"[DEBUG] org.example.Application - main window shown",
		"[INFO] org.example.Session - session started for alice",
		"[DEBUG] org.example.Audit - alice: search",
		"[INFO] org.example.Application - performed search",
		"[DEBUG] org.example.Audit - alice: checkout",
		"[INFO] org.example.Application - performed checkout",
		"[INFO] org.example.Session - session closed for alice",
		"[DEBUG] org.example.Application - main window closed",
	}, contents(tc))
}

func TestApplicationStateErrors(t *testing.T) {
	app, _ := newTestApplication(zerolog.DebugLevel)
	assert.Equal(t, errNotOpen, app.Login("alice"))
	assert.Equal(t, errNotLoggedIn, app.Perform("search"))
	assert.Equal(t, errNotLoggedIn, app.Logout())
	assert.Equal(t, errNotOpen, app.Close())

	assert.NoError(t, app.Open())
	assert.Equal(t, errAlreadyOpen, app.Open())
}

func TestApplicationCloseWithActiveSessionWarns(t *testing.T) {
	app, tc := newTestApplication(zerolog.WarnLevel)
	assert.NoError(t, app.Open())
	assert.NoError(t, app.Login("alice"))
	assert.NoError(t, app.Close())

	assert.Equal(t, []string{"[WARN] org.example.Session - closing with an active session"}, contents(tc))
}
