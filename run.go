package startuplog

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/lks-go/startup-log/home"
)

// Application is the user-supplied entry point. Run blocks until the
// application's startup work is done; any error aborts the startup
// sequence and propagates unchanged to the caller of Run.
type Application interface {
	Run() error
}

// BannerProvider is optionally implemented by applications that want a
// banner printed to stdout once startup completes. An empty string means
// no banner.
type BannerProvider interface {
	Banner() string
}

type RunConfig struct {
	Name    string
	Version string

	// NewLogger builds the logger sink for the startup lines. It gets
	// the process id explicitly, so logging setups that template the
	// pid don't need to read it from process-global state. The default
	// is a logrus logger carrying a "pid" field.
	NewLogger func(pid string) Logger

	// Stdout receives the optional banner, os.Stdout when nil.
	Stdout io.Writer

	Probes                *Probes
	Home                  *home.Options
	HostnameWarnThreshold time.Duration
}

// Run drives the application lifecycle: it logs the starting message,
// builds the application via newApp, invokes its Run, then logs the
// started message and prints the optional banner. Errors from newApp or
// from the application propagate as is, and the started message is never
// logged on failure.
func Run(newApp func() (Application, error), cfg *RunConfig) error {
	if cfg == nil {
		cfg = &RunConfig{}
	}

	probes := cfg.Probes.withDefaults()
	pid := strconv.Itoa(probes.PID())

	newLogger := cfg.NewLogger
	if newLogger == nil {
		newLogger = defaultLogger
	}
	log := newLogger(pid)

	reporter := New(
		&Config{
			Name:                  cfg.Name,
			Version:               cfg.Version,
			HostnameWarnThreshold: cfg.HostnameWarnThreshold,
		},
		&Deps{
			Log:    log,
			Probes: probes,
			Home:   cfg.Home,
		},
	)

	stopWatch := StopWatch{}

	reporter.LogStarting(log)
	stopWatch.Start()

	app, err := newApp()
	if err != nil {
		return err
	}

	if err := app.Run(); err != nil {
		return err
	}

	stopWatch.Stop()
	reporter.LogStarted(log, &stopWatch)

	if provider, ok := app.(BannerProvider); ok {
		if banner := provider.Banner(); banner != "" {
			stdout := cfg.Stdout
			if stdout == nil {
				stdout = os.Stdout
			}

			fmt.Fprintln(stdout, banner)
		}
	}

	return nil
}

func defaultLogger(pid string) Logger {
	return logrus.New().WithField("pid", pid)
}
