// Package startuplog logs application information on startup: a
// "Starting" line with process, host, runtime and source-location
// metadata, and a "Started" line with the measured startup time. Line
// emission goes through a caller-supplied logger sink, the package never
// defines a logging transport of its own.
package startuplog

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/lks-go/startup-log/home"
)

const defaultHostnameWarnThreshold = 200 * time.Millisecond

// Logger is the external sink startup lines are emitted to.
// *logrus.Logger and *logrus.Entry both satisfy it.
type Logger interface {
	Info(args ...interface{})
	Warn(args ...interface{})
}

type Config struct {
	// Name is the application name, "application" when empty.
	Name string
	// Version overrides the main module version from the build info.
	Version string
	// HostnameWarnThreshold is how long the hostname lookup may take
	// before an advisory warning is emitted, 200ms when zero.
	HostnameWarnThreshold time.Duration
}

type Deps struct {
	// Log receives the slow-hostname advisory, the logrus standard
	// logger when nil.
	Log    Logger
	Probes *Probes
	Home   *home.Options
}

func New(cfg *Config, d *Deps) *Reporter {
	if cfg == nil {
		cfg = &Config{}
	}

	deps := Deps{}
	if d != nil {
		deps = *d
	}

	name := cfg.Name
	if name == "" {
		name = "application"
	}

	version := cfg.Version
	if version == "" {
		version = buildVersion()
	}

	threshold := cfg.HostnameWarnThreshold
	if threshold <= 0 {
		threshold = defaultHostnameWarnThreshold
	}

	if deps.Log == nil {
		deps.Log = logrus.StandardLogger()
	}

	return &Reporter{
		name:      name,
		version:   version,
		threshold: threshold,
		log:       deps.Log,
		probes:    deps.Probes.withDefaults(),
		home:      deps.Home,
	}
}

type Reporter struct {
	name      string
	version   string
	threshold time.Duration
	log       Logger
	probes    *Probes
	home      *home.Options
}

func (r *Reporter) LogStarting(log Logger) {
	log.Info(r.StartingMessage())
}

func (r *Reporter) LogStarted(log Logger, sw *StopWatch) {
	log.Info(r.StartedMessage(sw))
}

// StartingMessage composes the "Starting ..." line. A slow hostname
// lookup emits an advisory warning to the sink as a side effect.
func (r *Reporter) StartingMessage() string {
	message := &strings.Builder{}
	message.WriteString("Starting ")
	message.WriteString(r.name)
	appendField(message, "v", strings.TrimPrefix(r.version, "v"))
	appendField(message, "using ", r.probes.RuntimeVersion())
	appendField(message, "on ", r.hostname())
	appendField(message, "with PID ", strconv.Itoa(r.probes.PID()))
	r.appendContext(message)

	return message.String()
}

// StartedMessage composes the "Started ..." line from a stopped watch.
func (r *Reporter) StartedMessage(sw *StopWatch) string {
	message := &strings.Builder{}
	message.WriteString("Started ")
	message.WriteString(r.name)
	message.WriteString(" in ")
	message.WriteString(formatSeconds(sw.TotalMillis()))
	message.WriteString(" seconds")

	if uptime, ok := r.probes.Uptime(); ok {
		message.WriteString(" (process running for ")
		message.WriteString(formatSeconds(uptime.Milliseconds()))
		message.WriteString(")")
	}

	return message.String()
}

func (r *Reporter) hostname() string {
	started := r.probes.Now()
	name, err := r.probes.Hostname()
	took := r.probes.Now().Sub(started)

	if took > r.threshold {
		r.warnSlowHostname(took)
	}

	if err != nil {
		return "localhost"
	}

	return name
}

func (r *Reporter) warnSlowHostname(took time.Duration) {
	warning := &strings.Builder{}
	fmt.Fprintf(warning, "hostname lookup took %d milliseconds to respond. Please verify your network configuration", took.Milliseconds())

	osName := strings.ToLower(r.probes.OSName())
	if strings.Contains(osName, "mac") || strings.Contains(osName, "darwin") {
		warning.WriteString(" (macOS machines may need to add entries to /etc/hosts)")
	}

	warning.WriteString(".")
	r.log.Warn(warning.String())
}

func (r *Reporter) appendContext(message *strings.Builder) {
	context := &strings.Builder{}

	h := home.Locate(r.home)
	context.WriteString(h.Source())

	if username, err := r.probes.Username(); err == nil {
		appendField(context, "started by ", username)
	}

	if wd, err := r.probes.WorkingDir(); err == nil {
		appendField(context, "in ", wd)
	}

	if context.Len() > 0 {
		message.WriteString(" (")
		message.WriteString(context.String())
		message.WriteString(")")
	}
}

// appendField writes " <prefix><value>", the leading space only when the
// message already has content. An empty value contributes nothing, so no
// stray separators end up in the line.
func appendField(message *strings.Builder, prefix, value string) {
	if value == "" {
		return
	}

	if message.Len() > 0 {
		message.WriteByte(' ')
	}

	message.WriteString(prefix)
	message.WriteString(value)
}

// formatSeconds renders a millisecond count as seconds with the shortest
// exact representation: 3200 -> "3.2".
func formatSeconds(millis int64) string {
	return strconv.FormatFloat(float64(millis)/1000.0, 'f', -1, 64)
}
