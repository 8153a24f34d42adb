package shortcut

import (
	"os"
	"path/filepath"
	"time"

	"github.com/graaaaa/vrcvisits/internal/launch"
	"github.com/graaaaa/vrcvisits/internal/visit"
)

// FileLinker is the default Linker. It writes the launch URI of the variant
// as the shortcut body; a platform shell-link writer can replace it through
// WithLinker.
type FileLinker struct{}

// Touch sets both access and modification time of path to t.
func (FileLinker) Touch(path string, t time.Time) error {
	return os.Chtimes(path, t, t)
}

// Create writes the shortcut atomically using a temp file in the same directory.
func (FileLinker) Create(path string, v visit.Visit, variant Variant) error {
	uri := launch.DirectURI(v.Instance)
	if variant == Web {
		uri = launch.WebURI(v.Instance)
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), ".shortcut.tmp-*")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()

	success := false
	defer func() {
		if !success {
			os.Remove(tmpName)
		}
	}()

	if _, err := tmp.WriteString(uri + "\n"); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	if err := os.Rename(tmpName, path); err != nil {
		return err
	}

	success = true
	return nil
}
