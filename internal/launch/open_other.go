//go:build !windows

package launch

import (
	"os/exec"
	"runtime"
)

// openURI opens uri with the desktop's default handler.
func openURI(uri string) error {
	name := "xdg-open"
	if runtime.GOOS == "darwin" {
		name = "open"
	}
	return exec.Command(name, uri).Start()
}

// killClient is unsupported: the client only runs natively on Windows.
func killClient() error {
	return ErrKillUnsupported
}
