package startuplog_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	startuplog "github.com/lks-go/startup-log"
	"github.com/lks-go/startup-log/home"
)

type testApp struct {
	runErr error
	banner string
	runs   int
}

func (a *testApp) Run() error {
	a.runs++
	return a.runErr
}

func (a *testApp) Banner() string {
	return a.banner
}

type plainApp struct{}

func (plainApp) Run() error { return nil }

func newRunConfig(log *sink, stdout *bytes.Buffer) *startuplog.RunConfig {
	return &startuplog.RunConfig{
		Name: "demo",
		NewLogger: func(pid string) startuplog.Logger {
			return log
		},
		Stdout: stdout,
		Probes: &startuplog.Probes{
			Hostname: func() (string, error) { return "host1", nil },
		},
		Home: &home.Options{SkipSource: true},
	}
}

func TestRun(t *testing.T) {
	log := &sink{}
	stdout := &bytes.Buffer{}
	app := &testApp{banner: "meow"}

	err := startuplog.Run(func() (startuplog.Application, error) {
		return app, nil
	}, newRunConfig(log, stdout))

	require.NoError(t, err)
	require.Equal(t, 1, app.runs)
	require.Len(t, log.infos, 2)
	require.True(t, strings.HasPrefix(log.infos[0], "Starting demo"))
	require.True(t, strings.HasPrefix(log.infos[1], "Started demo in"))
	require.Equal(t, "meow\n", stdout.String())
}

func TestRun_NoBannerProvider(t *testing.T) {
	log := &sink{}
	stdout := &bytes.Buffer{}

	err := startuplog.Run(func() (startuplog.Application, error) {
		return plainApp{}, nil
	}, newRunConfig(log, stdout))

	require.NoError(t, err)
	require.Len(t, log.infos, 2)
	require.Empty(t, stdout.String())
}

func TestRun_EmptyBanner(t *testing.T) {
	log := &sink{}
	stdout := &bytes.Buffer{}

	err := startuplog.Run(func() (startuplog.Application, error) {
		return &testApp{}, nil
	}, newRunConfig(log, stdout))

	require.NoError(t, err)
	require.Empty(t, stdout.String())
}

func TestRun_RunErrorPropagates(t *testing.T) {
	log := &sink{}
	stdout := &bytes.Buffer{}
	app := &testApp{runErr: ErrAny, banner: "meow"}

	err := startuplog.Run(func() (startuplog.Application, error) {
		return app, nil
	}, newRunConfig(log, stdout))

	require.ErrorIs(t, err, ErrAny)

	// only the starting line, no started message and no banner
	require.Len(t, log.infos, 1)
	require.True(t, strings.HasPrefix(log.infos[0], "Starting demo"))
	require.Empty(t, stdout.String())
}

func TestRun_FactoryErrorPropagates(t *testing.T) {
	log := &sink{}
	stdout := &bytes.Buffer{}

	err := startuplog.Run(func() (startuplog.Application, error) {
		return nil, ErrAny
	}, newRunConfig(log, stdout))

	require.ErrorIs(t, err, ErrAny)
	require.Len(t, log.infos, 1)
}
