package notify

import (
	"errors"
	"fmt"
	"os/exec"
	"runtime"
)

var ErrDisabled = errors.New("notify: desktop notifications disabled")

type Permission int

const (
	PermissionDenied Permission = iota
	PermissionGranted
)

func (p Permission) Granted() bool { return p == PermissionGranted }

func (p Permission) String() string {
	switch p {
	case PermissionGranted:
		return "granted"
	case PermissionDenied:
		return "denied"
	default:
		return fmt.Sprintf("permission(%d)", int(p))
	}
}

// LookPathFunc matches exec.LookPath.
type LookPathFunc func(file string) (string, error)

// HelperFor names the binary ExecDesktopNotifier shells out to on goos.
func HelperFor(goos string) (string, bool) {
	switch goos {
	case "linux":
		return "notify-send", true
	case "darwin":
		return "osascript", true
	default:
		return "", false
	}
}

// RequestPermission is asked once per session. Desktop delivery is granted
// when enabled and the platform helper is installed.
func RequestPermission(enabled bool, lookPath LookPathFunc) (Permission, error) {
	return requestPermission(enabled, runtime.GOOS, lookPath)
}

func requestPermission(enabled bool, goos string, lookPath LookPathFunc) (Permission, error) {
	if !enabled {
		return PermissionDenied, ErrDisabled
	}
	helper, ok := HelperFor(goos)
	if !ok {
		return PermissionDenied, ErrUnsupportedPlatform
	}
	if lookPath == nil {
		lookPath = exec.LookPath
	}
	if _, err := lookPath(helper); err != nil {
		return PermissionDenied, fmt.Errorf("notify: %s not available: %w", helper, err)
	}
	return PermissionGranted, nil
}
