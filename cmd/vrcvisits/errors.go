package main

import (
	"errors"
	"fmt"

	"github.com/graaaaa/vrcvisits/internal/logscan"
	"github.com/graaaaa/vrcvisits/internal/singleinstance"
	"github.com/graaaaa/vrcvisits/internal/visit"
)

var errQuickSaveConflict = errors.New("--quick-save and --quick-save-http are mutually exclusive")

// optionError reports an unknown option or a positional argument that is not a file.
type optionError struct {
	Arg string
}

func (e *optionError) Error() string {
	return "invalid option or file: " + e.Arg
}

// indexError reports an --index past the end of the filtered history.
type indexError struct {
	Index int
	Err   error
}

func (e *indexError) Error() string {
	return fmt.Sprintf("index %d: %v", e.Index, e.Err)
}

func (e *indexError) Unwrap() error {
	return e.Err
}

// quickSaveError wraps failures while writing the save directory.
type quickSaveError struct {
	Err error
}

func (e *quickSaveError) Error() string {
	return "quick save: " + e.Err.Error()
}

func (e *quickSaveError) Unwrap() error {
	return e.Err
}

// describe maps an error to the message shown to the user.
func describe(err error) string {
	var (
		oerr *optionError
		ierr *indexError
		qerr *quickSaveError
	)
	switch {
	case errors.As(err, &oerr):
		return "Unknown option or invalid file.: " + oerr.Arg
	case errors.Is(err, errQuickSaveConflict):
		return "The combination of --quick-save and --quick-save-http cannot be used."
	case errors.Is(err, logscan.ErrLogDirNotFound):
		return "Failed to lookup VRChat log directory."
	case errors.Is(err, logscan.ErrNoLogFiles):
		return "Could not find VRChat log."
	case errors.Is(err, logscan.ErrSourceUnavailable):
		return "Could not read VRChat log.: " + err.Error()
	case errors.Is(err, visit.ErrNoVisits):
		return "Could not find visits from VRChat log."
	case errors.As(err, &ierr):
		return fmt.Sprintf("Out of bounds index: %d", ierr.Index)
	case errors.Is(err, singleinstance.ErrAlreadyRunning):
		return "Another quick save is already running."
	case errors.As(err, &qerr):
		return "[QuickSave] " + qerr.Err.Error()
	default:
		return err.Error()
	}
}
