//go:build windows

package launch

import (
	"os/exec"

	"golang.org/x/sys/windows"
)

// openURI hands uri to the shell, which resolves the registered protocol handler.
func openURI(uri string) error {
	verb, err := windows.UTF16PtrFromString("open")
	if err != nil {
		return err
	}
	file, err := windows.UTF16PtrFromString(uri)
	if err != nil {
		return err
	}
	return windows.ShellExecute(0, verb, file, nil, nil, windows.SW_SHOWNORMAL)
}

// killClient force-stops every running client process.
func killClient() error {
	return exec.Command("taskkill", "/F", "/IM", ClientProcessName).Run()
}
