// Package shortcut decides whether a quick save updates an existing shortcut
// or creates a new one, and carries that decision out on disk.
package shortcut

import (
	"strings"

	"github.com/graaaaa/vrcvisits/internal/visit"
)

const (
	// WebPrefix starts the name of every web-variant shortcut.
	WebPrefix = "web-"
	// Ext is the file extension of shortcut artifacts.
	Ext = ".lnk"
	// NameTimeLayout formats the visit time at the front of a new shortcut
	// name. 24-hour so that names sort by time.
	NameTimeLayout = "20060102-150405-"
)

// Variant selects what a shortcut opens.
type Variant int

const (
	// Direct shortcuts open the client through its vrchat:// protocol.
	Direct Variant = iota
	// Web shortcuts open the vrchat.com launch page in a browser.
	Web
)

// String implements fmt.Stringer.
func (v Variant) String() string {
	if v == Web {
		return "web"
	}
	return "direct"
}

// prefix returns the name prefix reserved for the variant.
func (v Variant) prefix() string {
	if v == Web {
		return WebPrefix
	}
	return ""
}

// ActionKind tells the caller what to do with a shortcut.
type ActionKind int

const (
	// Touch means the shortcut exists; update its modification time.
	Touch ActionKind = iota + 1
	// Create means no matching shortcut exists; create Name.
	Create
)

// String implements fmt.Stringer.
func (k ActionKind) String() string {
	switch k {
	case Touch:
		return "touch"
	case Create:
		return "create"
	default:
		return "none"
	}
}

// Action is the outcome of Resolve: a file name and what to do with it.
type Action struct {
	Kind ActionKind
	Name string
}

// Resolve picks the action for saving target as a shortcut of the given
// variant, given the names of the shortcuts already present.
//
// A name matches when it carries the variant's prefix (web names only for Web,
// non-web names only for Direct) and ends with the instance key plus Ext. The
// first match in existing wins. Without a match, a new name is built from the
// visit time, the variant prefix and the key.
func Resolve(target visit.Visit, variant Variant, existing []string) Action {
	key := target.Instance.Key()
	tail := key + Ext

	for _, name := range existing {
		isWeb := strings.HasPrefix(name, WebPrefix)
		if isWeb != (variant == Web) {
			continue
		}
		if strings.HasSuffix(name, tail) {
			return Action{Kind: Touch, Name: name}
		}
	}

	return Action{Kind: Create, Name: NewName(target, variant)}
}

// NewName returns the file name for a new shortcut to target.
func NewName(target visit.Visit, variant Variant) string {
	return variant.prefix() + target.Timestamp.Format(NameTimeLayout) + target.Instance.Key() + Ext
}
