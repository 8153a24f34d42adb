//go:build !windows

package config

import "os"

// replaceFile moves src over dst. On POSIX, rename atomically replaces dst.
func replaceFile(src, dst string) error {
	return os.Rename(src, dst)
}
