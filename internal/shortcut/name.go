package shortcut

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
)

// ErrUnsafeName is returned when a shortcut name would leave the save
// directory or is not a valid Windows file name.
var ErrUnsafeName = errors.New("unsafe shortcut name")

// invalidNameChars are rejected in file names on Windows. ':' would also
// address an NTFS alternate data stream.
const invalidNameChars = `<>:"/\|?*`

// ValidateName checks that name is a single plain file name.
func ValidateName(name string) error {
	if name == "" || name == "." || name == ".." || filepath.Base(name) != name {
		return fmt.Errorf("%w: %q", ErrUnsafeName, name)
	}
	if i := strings.IndexAny(name, invalidNameChars); i >= 0 {
		return fmt.Errorf("%w: %q contains %q", ErrUnsafeName, name, name[i])
	}
	for _, r := range name {
		if r < 0x20 || r == 0x7f {
			return fmt.Errorf("%w: %q contains a control character", ErrUnsafeName, name)
		}
	}
	return nil
}
