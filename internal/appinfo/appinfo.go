// Package appinfo provides application identity constants.
// These are used across packages for consistent naming.
package appinfo

const (
	// AppName is the display name of the application.
	AppName = "VRC Visits"

	// DirName is the directory name used for storing application data.
	// Location: %LOCALAPPDATA%/vrcvisits/ (Windows) or ~/.config/vrcvisits/ (other)
	DirName = "vrcvisits"

	// MutexName is the Windows mutex name guarding the save directory.
	// "Local\" prefix scopes the mutex to the current user session.
	MutexName = "Local\\vrcvisits"

	// ConfigFileName is the configuration file name.
	ConfigFileName = "config.json"

	// SaveDirName is the default directory name for quick-save shortcuts,
	// created next to the executable.
	SaveDirName = "saves"

	// LogFileGlob matches VRChat client log files inside the log directory.
	LogFileGlob = "output_log_*.txt"

	// LaunchRef is sent as the ref parameter of launch URIs.
	LaunchRef = "vrcvisits"
)
