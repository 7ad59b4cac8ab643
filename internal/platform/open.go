// Package platform wraps the operating-system actions the app triggers after
// an export.
package platform

import (
	"os/exec"
	"path/filepath"
	"runtime"

	"github.com/pkg/errors"
)

// Operating system constants
const (
	OSDarwin  = "darwin"
	OSWindows = "windows"
	OSLinux   = "linux"
)

// Command constants
const (
	OpenCommand    = "open"
	CmdCommand     = "cmd"
	CmdFlag        = "/c"
	StartCommand   = "start"
	XDGOpenCommand = "xdg-open"
)

// Opener opens a file with whatever application the OS associates with it.
type Opener interface {
	Open(path string) error
}

// OpenerFunc adapts a plain function to Opener.
type OpenerFunc func(path string) error

func (f OpenerFunc) Open(path string) error { return f(path) }

// Command returns the command line that opens path with the default
// application on goos.
func Command(goos, path string) (string, []string, error) {
	switch goos {
	case OSDarwin:
		return OpenCommand, []string{path}, nil
	case OSWindows:
		// The empty argument is the window title start expects before a quoted path.
		return CmdCommand, []string{CmdFlag, StartCommand, "", path}, nil
	case OSLinux, "freebsd", "openbsd", "netbsd", "dragonfly":
		return XDGOpenCommand, []string{path}, nil
	default:
		return "", nil, errors.Errorf("unsupported operating system: %s", goos)
	}
}

// SystemOpener launches the OS default application. It does not wait for the
// viewer to exit.
type SystemOpener struct {
	GOOS  string
	start func(name string, args ...string) error
}

// NewSystemOpener returns an opener for the running OS.
func NewSystemOpener() *SystemOpener {
	return &SystemOpener{GOOS: runtime.GOOS, start: startDetached}
}

func (o *SystemOpener) Open(path string) error {
	abs, err := filepath.Abs(path)
	if err != nil {
		return errors.Wrap(err, "failed to get absolute path")
	}
	name, args, err := Command(o.GOOS, abs)
	if err != nil {
		return err
	}
	return errors.Wrapf(o.start(name, args...), "open %s", abs)
}

func startDetached(name string, args ...string) error {
	cmd := exec.Command(name, args...)
	if err := cmd.Start(); err != nil {
		return err
	}
	go cmd.Wait()
	return nil
}
