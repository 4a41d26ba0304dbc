// Package home resolves the on-disk location an application was started
// from: the binary itself and a home directory. It attempts to pick a
// sensible home for installed binaries, unpacked distributions and
// directly running applications, and never fails - every probe error
// degrades to the next fallback.
package home

import (
	"os"
	"path/filepath"
	"strings"
)

// archiveSeparator marks the boundary between an outer archive path and a
// path nested inside it, e.g. "/srv/app.zip!/lib/inner".
const archiveSeparator = "!/"

type Home struct {
	source string
	dir    string
}

// Source returns the binary or directory the application was loaded from.
// Empty when it cannot be determined, e.g. under a test binary.
func (h *Home) Source() string {
	return h.source
}

// Dir returns the application home directory, always absolute, never empty.
func (h *Home) Dir() string {
	return h.dir
}

func (h *Home) String() string {
	return h.dir
}

type Options struct {
	// SkipSource treats the source as unknown. When left false the
	// executable path is still ignored if it looks like a test binary,
	// so tests don't report their build cache as the application home.
	SkipSource bool

	Executable func() (string, error)
	Getwd      func() (string, error)
	Stat       func(string) (os.FileInfo, error)
}

func (o *Options) withDefaults() *Options {
	opts := Options{}
	if o != nil {
		opts = *o
	}

	if opts.Executable == nil {
		opts.Executable = os.Executable
	}

	if opts.Getwd == nil {
		opts.Getwd = os.Getwd
	}

	if opts.Stat == nil {
		opts.Stat = os.Stat
	}

	return &opts
}

// Locate resolves the application source and home directory. A nil opts
// locates the home of the current process.
func Locate(opts *Options) *Home {
	o := opts.withDefaults()

	source := findSource(o)

	return &Home{
		source: source,
		dir:    findHomeDir(source, o),
	}
}

func findSource(o *Options) string {
	if o.SkipSource {
		return ""
	}

	path, err := o.Executable()
	if err != nil || path == "" {
		return ""
	}

	path = stripNested(path)

	if abs, err := filepath.Abs(path); err == nil {
		path = abs
	}

	if isTestBinary(path) {
		return ""
	}

	if _, err := o.Stat(path); err != nil {
		return ""
	}

	return path
}

// stripNested keeps only the outer archive of a nested reference such as
// "/srv/app.zip!/lib/inner".
func stripNested(path string) string {
	if i := strings.Index(path, archiveSeparator); i > 0 {
		return path[:i]
	}

	return path
}

func isTestBinary(path string) bool {
	base := filepath.Base(path)
	if strings.HasSuffix(base, ".test") || strings.HasSuffix(base, ".test.exe") {
		return true
	}

	// `go test` and `go run` build into the toolchain's temp dir
	return strings.Contains(path, string(filepath.Separator)+"go-build")
}

func findHomeDir(source string, o *Options) string {
	dir := source

	if dir != "" {
		if info, err := o.Stat(dir); err == nil && !info.IsDir() {
			dir = filepath.Dir(dir)
		}
	}

	if dir == "" {
		if wd, err := o.Getwd(); err == nil {
			dir = wd
		}
	}

	if dir == "" {
		dir = "."
	}

	if _, err := o.Stat(dir); err != nil {
		dir = "."
	}

	if abs, err := filepath.Abs(dir); err == nil {
		dir = abs
	}

	return dir
}
