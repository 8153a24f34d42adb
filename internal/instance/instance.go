// Package instance decodes VRChat instance identifiers such as
// "wrld_abc:12345~private(usr_x)~region(jp)" into structured fields.
package instance

import (
	"errors"
	"regexp"
	"strings"
)

// WorldIDPrefix starts every world id.
const WorldIDPrefix = "wrld_"

// ErrNoIdentifierFound is returned by Decode when the input holds no world id.
var ErrNoIdentifierFound = errors.New("no instance identifier found")

var identifierPattern = regexp.MustCompile(`wrld_\S+`)

// Instance is a decoded instance identifier.
type Instance struct {
	// WorldID identifies the world template, e.g. "wrld_abc".
	WorldID string
	// Suffix is everything after the first ':' of the identifier. Empty when
	// the identifier names only a world.
	Suffix string
	// Name is the instance name segment of the suffix (before the first '~').
	Name string
	// Region is the value of the region tag, if any.
	Region     string
	Permission Permission
}

// Key returns the deduplication key: the world id, followed by "-" and the
// suffix when the suffix is non-empty.
func (i Instance) Key() string {
	if i.Suffix == "" {
		return i.WorldID
	}
	return i.WorldID + "-" + i.Suffix
}

// Raw returns the identifier in the form it appears in logs.
func (i Instance) Raw() string {
	if i.Suffix == "" {
		return i.WorldID
	}
	return i.WorldID + ":" + i.Suffix
}

// String implements fmt.Stringer.
func (i Instance) String() string {
	return i.Raw()
}

// FindIdentifier returns the first identifier token in s.
func FindIdentifier(s string) (string, bool) {
	loc := identifierPattern.FindStringIndex(s)
	if loc == nil {
		return "", false
	}
	return s[loc[0]:loc[1]], true
}

// Decode extracts the first identifier token from raw and decodes it.
// Once a world id is present decoding always succeeds; suffixes that do not
// follow the known tag grammar produce Permission Unknown.
func Decode(raw string) (Instance, error) {
	token, ok := FindIdentifier(raw)
	if !ok {
		return Instance{}, ErrNoIdentifierFound
	}

	worldID, suffix, hasSuffix := strings.Cut(token, ":")
	if worldID == WorldIDPrefix {
		return Instance{}, ErrNoIdentifierFound
	}

	inst := Instance{WorldID: worldID, Suffix: suffix}
	if !hasSuffix {
		inst.Permission = Public
		return inst, nil
	}

	t := parseSuffix(suffix)
	inst.Name = t.name
	inst.Region = t.region
	inst.Permission = t.permission()
	return inst, nil
}
