package platform

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCommand(t *testing.T) {
	tests := []struct {
		goos string
		name string
		args []string
	}{
		{OSDarwin, "open", []string{"/tmp/a.png"}},
		{OSWindows, "cmd", []string{"/c", "start", "", "/tmp/a.png"}},
		{OSLinux, "xdg-open", []string{"/tmp/a.png"}},
		{"freebsd", "xdg-open", []string{"/tmp/a.png"}},
	}
	for _, tt := range tests {
		t.Run(tt.goos, func(t *testing.T) {
			name, args, err := Command(tt.goos, "/tmp/a.png")
			require.NoError(t, err)
			assert.Equal(t, tt.name, name)
			assert.Equal(t, tt.args, args)
		})
	}

	_, _, err := Command("plan9", "/tmp/a.png")
	assert.Error(t, err)
}

func TestSystemOpener_UsesAbsolutePath(t *testing.T) {
	var gotName string
	var gotArgs []string
	o := &SystemOpener{GOOS: OSLinux, start: func(name string, args ...string) error {
		gotName, gotArgs = name, args
		return nil
	}}

	require.NoError(t, o.Open("out.png"))
	assert.Equal(t, "xdg-open", gotName)
	require.Len(t, gotArgs, 1)
	assert.True(t, filepath.IsAbs(gotArgs[0]))
	assert.Equal(t, "out.png", filepath.Base(gotArgs[0]))
}

func TestSystemOpener_PropagatesFailure(t *testing.T) {
	boom := errors.New("no viewer")
	o := &SystemOpener{GOOS: OSDarwin, start: func(string, ...string) error { return boom }}

	err := o.Open("/tmp/x.jpg")
	assert.ErrorIs(t, err, boom)

	o.GOOS = "plan9"
	assert.Error(t, o.Open("/tmp/x.jpg"))
}

func TestOpenerFunc(t *testing.T) {
	var seen string
	var o Opener = OpenerFunc(func(p string) error { seen = p; return nil })
	require.NoError(t, o.Open("/x"))
	assert.Equal(t, "/x", seen)
}
