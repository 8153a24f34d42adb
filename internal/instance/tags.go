package instance

import "strings"

// Tag keys understood by the decoder.
const (
	tagHidden           = "hidden"
	tagFriends          = "friends"
	tagPrivate          = "private"
	tagGroup            = "group"
	tagGroupAccessType  = "groupAccessType"
	tagCanRequestInvite = "canRequestInvite"
	tagRegion           = "region"
	tagNonce            = "nonce"
	tagStrict           = "strict"
	tagAgeGate          = "ageGate"
)

// tagTakesArg lists every known tag and whether it carries a "(arg)".
var tagTakesArg = map[string]bool{
	tagHidden:           true,
	tagFriends:          true,
	tagPrivate:          true,
	tagGroup:            true,
	tagGroupAccessType:  true,
	tagRegion:           true,
	tagNonce:            true,
	tagCanRequestInvite: false,
	tagStrict:           false,
	tagAgeGate:          false,
}

// suffixTags is the parsed form of "name~tag(arg)~tag...".
type suffixTags struct {
	name             string
	region           string
	access           string // hidden, friends, private or group
	groupAccessType  string
	canRequestInvite bool
	malformed        bool
}

func parseSuffix(suffix string) suffixTags {
	segments := strings.Split(suffix, "~")
	t := suffixTags{name: segments[0]}
	if t.name == "" || strings.ContainsAny(t.name, "()") {
		t.malformed = true
	}

	seen := make(map[string]bool, len(segments))
	for _, seg := range segments[1:] {
		key, arg, hasArg, ok := splitTag(seg)
		if !ok {
			t.malformed = true
			continue
		}
		takesArg, known := tagTakesArg[key]
		if !known || takesArg != hasArg || seen[key] {
			t.malformed = true
			continue
		}
		seen[key] = true

		switch key {
		case tagHidden, tagFriends, tagPrivate, tagGroup:
			if t.access != "" {
				t.malformed = true
			}
			t.access = key
		case tagGroupAccessType:
			t.groupAccessType = arg
		case tagCanRequestInvite:
			t.canRequestInvite = true
		case tagRegion:
			t.region = arg
		}
	}
	return t
}

// splitTag splits "key(arg)" or "key". ok is false for empty keys,
// unbalanced parentheses or nested parentheses.
func splitTag(seg string) (key, arg string, hasArg, ok bool) {
	open := strings.IndexByte(seg, '(')
	if open < 0 {
		if seg == "" || strings.ContainsRune(seg, ')') {
			return "", "", false, false
		}
		return seg, "", false, true
	}
	if open == 0 || !strings.HasSuffix(seg, ")") {
		return "", "", false, false
	}
	arg = seg[open+1 : len(seg)-1]
	if arg == "" || strings.ContainsAny(arg, "()") {
		return "", "", false, false
	}
	return seg[:open], arg, true, true
}

func (t suffixTags) permission() Permission {
	if t.malformed {
		return Unknown
	}

	switch t.access {
	case "":
		if t.canRequestInvite || t.groupAccessType != "" {
			return Unknown
		}
		if isNumeric(t.name) {
			return Public
		}
		return PublicWithIdentifier
	case tagHidden, tagFriends:
		if t.canRequestInvite || t.groupAccessType != "" {
			return Unknown
		}
		if t.access == tagHidden {
			return FriendsPlus
		}
		return Friends
	case tagPrivate:
		if t.groupAccessType != "" {
			return Unknown
		}
		if t.canRequestInvite {
			return InvitePlus
		}
		return Invite
	case tagGroup:
		if t.canRequestInvite {
			return Unknown
		}
		switch t.groupAccessType {
		case "members":
			return Group
		case "plus":
			return GroupPlus
		case "public":
			return GroupPublic
		}
	}
	return Unknown
}

func isNumeric(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}
