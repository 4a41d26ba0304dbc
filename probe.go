package startuplog

import (
	"os"
	"os/user"
	"runtime"
	"runtime/debug"
	"time"
)

var processStart = time.Now()

// Probes are the environment lookups the reporter composes its messages
// from. Every field is optional, a nil field gets the OS-backed default.
// Each probe fails independently: a failed lookup drops its own fragment
// and nothing else.
type Probes struct {
	Hostname       func() (string, error)
	RuntimeVersion func() string
	PID            func() int
	Username       func() (string, error)
	WorkingDir     func() (string, error)
	Uptime         func() (time.Duration, bool)
	OSName         func() string
	Now            func() time.Time
}

func (p *Probes) withDefaults() *Probes {
	probes := Probes{}
	if p != nil {
		probes = *p
	}

	if probes.Hostname == nil {
		probes.Hostname = os.Hostname
	}

	if probes.RuntimeVersion == nil {
		probes.RuntimeVersion = runtime.Version
	}

	if probes.PID == nil {
		probes.PID = os.Getpid
	}

	if probes.Username == nil {
		probes.Username = currentUsername
	}

	if probes.WorkingDir == nil {
		probes.WorkingDir = os.Getwd
	}

	if probes.Uptime == nil {
		probes.Uptime = processUptime
	}

	if probes.OSName == nil {
		probes.OSName = func() string { return runtime.GOOS }
	}

	if probes.Now == nil {
		probes.Now = time.Now
	}

	return &probes
}

func currentUsername() (string, error) {
	u, err := user.Current()
	if err != nil {
		return "", err
	}

	return u.Username, nil
}

func processUptime() (time.Duration, bool) {
	return time.Since(processStart), true
}

// buildVersion reads the main module version from the build info. Binaries
// built without module metadata report nothing.
func buildVersion() string {
	info, ok := debug.ReadBuildInfo()
	if !ok {
		return ""
	}

	v := info.Main.Version
	if v == "(devel)" {
		return ""
	}

	return v
}
