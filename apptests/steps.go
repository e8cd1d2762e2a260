package apptests

import (
	"log/slog"

	"github.com/stepreport/stepreport/framework/ldtest"
	"github.com/stepreport/stepreport/framework/logbridge"

	"github.com/stretchr/testify/require"
)

const stepsSource = "org.example.Steps"

const defaultUser = "demo"

// Steps are the user-level actions of the application tests. Each one is recorded as a step of
// the current test and logs one line when it completes.
type Steps struct {
	t   *ldtest.T
	log *slog.Logger
	app *Application
}

func newSteps(t *ldtest.T) *Steps {
	ctx := requireContext(t)
	sink := logbridge.Sinks{t.Report(), logbridge.LoggerSink{Logger: t.DebugLogger()}}
	bridge := logbridge.New(sink, logbridge.WithTitle(ctx.attachmentTitle))
	handler := logbridge.NewHandler(bridge,
		logbridge.HandlerSource(stepsSource),
		logbridge.HandlerMinLevel(ctx.level),
	)
	return &Steps{
		t:   t,
		log: slog.New(handler),
		app: NewApplication(bridge, ctx.appLevel),
	}
}

func (s *Steps) OpenApplication() {
	s.t.Step("Открываем приложение", func() {
		require.NoError(s.t, s.app.Open())
		s.log.Info("Приложение открыто.")
	})
}

func (s *Steps) Login() {
	s.t.Step("Авторизуемся в приложении", func() {
		require.NoError(s.t, s.app.Login(defaultUser))
		s.log.Info("Выполнен вход в приложение.")
	})
}

func (s *Steps) PerformUserActions() {
	s.t.Step("Выполняем действия пользователя", func() {
		require.NoError(s.t, s.app.Perform("search"))
		s.log.Info("Выполняются действия пользователя.")
	})
}

func (s *Steps) Logout() {
	s.t.Step("Выходим из приложения", func() {
		require.NoError(s.t, s.app.Logout())
		s.log.Info("Выполнен выход из приложения.")
	})
}

func (s *Steps) CloseApplication() {
	s.t.Step("Закрываем приложение", func() {
		require.NoError(s.t, s.app.Close())
		s.log.Info("Приложение закрыто.")
	})
}
